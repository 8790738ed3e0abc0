package service

import (
	"strings"

	"homematch/internal/model"
)

// bedroomPhrases are checked in priority order; the first hit wins. Counts of
// four and above are deliberately not detected.
var bedroomPhrases = []struct {
	count   string
	phrases []string
}{
	{"1", []string{"one bedroom", "1 bedroom"}},
	{"2", []string{"two bedroom", "2 bedroom"}},
	{"3", []string{"three bedroom", "3 bedroom"}},
}

// boroughs is the fixed list scanned for borough mentions. Iteration keeps
// overwriting, so the last listed borough mentioned in the text wins.
var boroughs = []string{"Mitte", "Kreuzberg", "Prenzlauer Berg", "Neukölln", "Wedding", "Charlottenburg"}

// amenityKeywords is the fixed amenity vocabulary matched by substring.
var amenityKeywords = []string{"balcony", "garden", "terrace", "elevator", "parking"}

// ExtractRequirements scans query text for explicit constraints using literal
// pattern matching. Pure function, case-insensitive throughout.
func ExtractRequirements(queryText string) model.RequirementSet {
	lowered := strings.ToLower(queryText)
	reqs := model.RequirementSet{}

	if strings.Contains(lowered, "bedroom") {
	bedrooms:
		for _, entry := range bedroomPhrases {
			for _, phrase := range entry.phrases {
				if strings.Contains(lowered, phrase) {
					reqs.Bedrooms = entry.count
					break bedrooms
				}
			}
		}
	}

	for _, borough := range boroughs {
		if strings.Contains(lowered, strings.ToLower(borough)) {
			reqs.Borough = borough
		}
	}

	for _, amenity := range amenityKeywords {
		if strings.Contains(lowered, amenity) {
			reqs.Amenities = append(reqs.Amenities, amenity)
		}
	}

	return reqs
}
