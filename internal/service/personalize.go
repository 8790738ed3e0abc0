package service

import (
	"context"
	"fmt"

	"homematch/internal/model"
)

const personalizePrompt = `You are a real estate agent tasked with creating a personalized property description for a potential buyer.

Original Property Listing:
Borough: %s
Price: %s
Bedrooms: %s
Bathrooms: %s
Size: %s

Original Description:
%s

Buyer's Preferences:
%s

Your task is to rewrite the property description to highlight aspects that would appeal to this specific buyer based on their preferences.
The personalized description should:
1. Be approximately the same length as the original
2. Emphasize features that match the buyer's preferences
3. Maintain a professional, enthusiastic tone
4. Include all the basic property information (borough, price, bedrooms, bathrooms, size)
5. Be factual and only include information from the original listing

Personalized Description:`

// Personalizer rewrites a matched listing's description to emphasize the
// features a buyer asked for.
type Personalizer struct {
	ai AIClient
}

// NewPersonalizer creates a new personalizer
func NewPersonalizer(ai AIClient) *Personalizer {
	return &Personalizer{ai: ai}
}

// Personalize returns the rewritten description for one listing.
func (p *Personalizer) Personalize(ctx context.Context, rec model.ListingRecord, preferences string) (string, error) {
	if p.ai == nil || !p.ai.IsEnabled() {
		return "", fmt.Errorf("LLM is not enabled, cannot personalize descriptions")
	}

	meta := func(key string) string {
		if v, ok := rec.Metadata[key]; ok {
			return v.String()
		}
		return ""
	}

	prompt := fmt.Sprintf(personalizePrompt,
		meta("borough"), meta("price"), meta("bedrooms"), meta("bathrooms"), meta("size"),
		rec.Content, preferences)

	resp, err := p.ai.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("personalization call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty personalization completion")
	}

	return resp.Choices[0].Message.Content, nil
}
