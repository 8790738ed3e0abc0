package listing

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads the listings file: a JSON array of either raw listing strings
// or objects carrying a listing_text field. Both shapes are accepted because
// different generator versions wrote both.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings file: %w", err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("listings file is not a JSON array: %w", err)
	}

	texts := make([]string, 0, len(entries))
	for i, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			texts = append(texts, s)
			continue
		}
		var obj struct {
			ListingText string `json:"listing_text"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil || obj.ListingText == "" {
			return nil, fmt.Errorf("listings file entry %d has no usable text", i)
		}
		texts = append(texts, obj.ListingText)
	}

	return texts, nil
}

// SaveFile writes generated listings as a JSON array of raw strings.
func SaveFile(path string, texts []string) error {
	data, err := json.MarshalIndent(texts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal listings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write listings file: %w", err)
	}
	return nil
}
