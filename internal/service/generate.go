package service

import (
	"context"
	"fmt"
	"log"
)

const listingPrompt = `Generate a detailed real estate listing for a property in Berlin, Germany with the following components:
1. Basic information (borough, price, bedrooms, bathrooms, apartment size in square meters)
2. A detailed property description highlighting unique features
3. A neighborhood description specific to that Berlin borough

The listing should be for a %s in the %s borough of Berlin with %d bedrooms.

Use the metric system (square meters, not square feet) and Euros (€) for the price. Match price and apartment sizes to what's more or less common for each borough.

Format the output exactly like this example, but with different content specific to Berlin:

Borough: Kreuzberg
Price: €450,000
Bedrooms: %d
Bathrooms: 1
Size: 85 m²

Description: Welcome to this stylish Altbau apartment in the heart of vibrant Kreuzberg. This beautifully renovated home features high ceilings, original hardwood floors, and large windows that flood the space with natural light. The modern kitchen opens to a cozy balcony overlooking a quiet courtyard.

Neighborhood Description: Kreuzberg is one of Berlin's most diverse and culturally rich boroughs, known for its alternative scene, vibrant nightlife, and multicultural atmosphere. With excellent public transportation connections via the nearby Görlitzer Bahnhof U-Bahn station, you can easily reach all parts of Berlin.`

var propertyTypes = []string{
	"Old building (Altbau) apartment",
	"modern penthouse",
	"garden apartment",
	"converted loft",
	"luxury Neubau apartment",
	"historic Berliner Zimmer flat",
	"canal-side apartment",
	"artist studio apartment",
	"east-german (Plattenbau) apartment",
}

var generatorBoroughs = []string{
	"Mitte",
	"Kreuzberg",
	"Prenzlauer Berg",
	"Charlottenburg",
	"Neukölln",
	"Friedrichshain",
	"Schöneberg",
	"Wedding",
	"Moabit",
	"Wilmersdorf",
}

var bedroomCounts = []int{1, 2, 3, 4}

// ListingGenerator synthesizes fictitious listing texts via the LLM, cycling
// through property types, boroughs, and bedroom counts for variety.
type ListingGenerator struct {
	ai AIClient
}

// NewListingGenerator creates a new listing generator
func NewListingGenerator(ai AIClient) *ListingGenerator {
	return &ListingGenerator{ai: ai}
}

// Generate produces count listing texts. Calls run sequentially; one failed
// call fails the batch.
func (g *ListingGenerator) Generate(ctx context.Context, count int) ([]string, error) {
	if g.ai == nil || !g.ai.IsEnabled() {
		return nil, fmt.Errorf("LLM is not enabled, cannot generate listings")
	}

	listings := make([]string, 0, count)
	for i := 0; i < count; i++ {
		propertyType := propertyTypes[i%len(propertyTypes)]
		borough := generatorBoroughs[i%len(generatorBoroughs)]
		bedrooms := bedroomCounts[i%len(bedroomCounts)]

		prompt := fmt.Sprintf(listingPrompt, propertyType, borough, bedrooms, bedrooms)
		resp, err := g.ai.ChatCompletion(ctx, ChatCompletionRequest{
			Messages: []ChatMessage{{Role: "user", Content: prompt}},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to generate listing %d: %w", i+1, err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("empty completion for listing %d", i+1)
		}

		listings = append(listings, resp.Choices[0].Message.Content)
		log.Printf("Generated listing %d/%d (%s, %s)", i+1, count, borough, propertyType)
	}

	return listings, nil
}
