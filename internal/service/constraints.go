package service

import (
	"context"
	"fmt"
	"log"

	"homematch/internal/model"
	"homematch/internal/utils"
)

const constraintSystemPrompt = "You are a helpful assistant that extracts search parameters from user preferences."

const constraintInstructions = `Extract the following information from the user preferences:

User Preferences: %s

Extract bedrooms and bathrooms if explicitly mentioned. If not mentioned, include the field with an empty string value. Always include both fields in your response, even if empty.

Important: Return valid JSON without any comments or trailing commas.

Respond with a JSON object containing exactly these keys:
- "bedrooms": the number of bedrooms required, as a string, or "" if not mentioned
- "bathrooms": the number of bathrooms required, as a string, or "" if not mentioned`

// ConstraintExtractor derives coarse index filters from a free-text buyer
// preference statement via a structured LLM call.
type ConstraintExtractor struct {
	ai AIClient
}

// NewConstraintExtractor creates a new constraint extractor
func NewConstraintExtractor(ai AIClient) *ConstraintExtractor {
	return &ConstraintExtractor{ai: ai}
}

// extractedConstraints is the two-key schema the model is instructed to emit.
type extractedConstraints struct {
	Bedrooms  string `json:"bedrooms"`
	Bathrooms string `json:"bathrooms"`
}

// Extract returns the constraints the model found. Extraction failure always
// degrades to an empty set: a search without coarse filters is still a valid
// search, so a misbehaving model must never block retrieval.
func (e *ConstraintExtractor) Extract(ctx context.Context, preferenceText string) model.ConstraintSet {
	filters := model.ConstraintSet{}

	if e.ai == nil || !e.ai.IsEnabled() {
		log.Printf("LLM is not enabled, skipping constraint extraction")
		return filters
	}

	resp, err := e.ai.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: constraintSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(constraintInstructions, preferenceText)},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		log.Printf("Constraint extraction call failed: %v", err)
		return filters
	}
	if len(resp.Choices) == 0 {
		log.Printf("Constraint extraction returned no choices")
		return filters
	}

	content := resp.Choices[0].Message.Content
	var extracted extractedConstraints
	if err := utils.ParseAIJSON(content, &extracted); err != nil {
		log.Printf("Failed to parse constraint response: %v, content: %s", err, content)
		return filters
	}

	// Empty values are dropped, never stored.
	if extracted.Bedrooms != "" {
		filters["bedrooms"] = extracted.Bedrooms
	}
	if extracted.Bathrooms != "" {
		filters["bathrooms"] = extracted.Bathrooms
	}

	return filters
}
