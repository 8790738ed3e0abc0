// Package listing turns raw listing text into typed records and handles the
// on-disk listings file produced by the generator.
package listing

import (
	"regexp"
	"strconv"
	"strings"

	"homematch/internal/model"
)

// Listings put their structured fields on the first few lines, before the
// description sections.
const headerLines = 5

var (
	digitsRe = regexp.MustCompile(`(\d+)`)
	priceRe  = regexp.MustCompile(`€([\d,]+)`)
)

// Parse extracts a ListingRecord from one raw listing text block. The block
// starts with Key: Value header lines (borough, price, bedrooms, bathrooms,
// size, in any order) followed by "Description:" and "Neighborhood
// Description:" sections. Parsing never fails: a field whose value does not
// match its expected shape is kept as the raw string, and stray trailing lines
// are accumulated into the content body.
func Parse(raw string) model.ListingRecord {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	metadata := model.Metadata{}
	var parts []string

	for i, line := range lines {
		switch {
		case strings.Contains(line, ":") && i < headerLines:
			key, value, _ := strings.Cut(line, ":")
			key = strings.ToLower(strings.TrimSpace(key))
			metadata[key] = parseField(key, strings.TrimSpace(value))
		case strings.HasPrefix(line, "Description:"):
			parts = append(parts, strings.TrimSpace(strings.TrimPrefix(line, "Description:")))
		case strings.HasPrefix(line, "Neighborhood Description:"):
			parts = append(parts, strings.TrimSpace(strings.TrimPrefix(line, "Neighborhood Description:")))
		case i > headerLines:
			parts = append(parts, line)
		}
	}

	return model.ListingRecord{
		Content:  strings.Join(parts, " "),
		Metadata: metadata,
	}
}

// parseField applies the per-field parsing rules. Only the leading integer of
// a numeric field survives; non-numeric remainders are dropped on purpose.
func parseField(key, value string) model.MetaValue {
	switch key {
	case "bedrooms", "bathrooms":
		// Kept as strings so index filters compare like for like.
		if m := digitsRe.FindString(value); m != "" {
			return model.StringValue(m)
		}
	case "size":
		if m := digitsRe.FindString(value); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				return model.IntValue(n)
			}
		}
	case "price":
		if m := priceRe.FindStringSubmatch(value); m != nil {
			if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
				return model.IntValue(n)
			}
		}
	default:
		return model.StringValue(value)
	}
	return model.StringValue(value)
}

// ParseAll parses a batch of raw listings, assigning the deterministic
// per-batch ids the index store expects.
func ParseAll(raws []string) []model.ListingRecord {
	records := make([]model.ListingRecord, len(raws))
	for i, raw := range raws {
		rec := Parse(raw)
		rec.ID = "listing_" + strconv.Itoa(i)
		records[i] = rec
	}
	return records
}
