package model

// ListingRecord is one property listing: a free-text body used for embedding
// and keyword checks, plus the structured fields parsed out of the listing
// header. Records are created once at ingestion and never mutated afterwards.
type ListingRecord struct {
	ID       string   `json:"id" db:"id"`
	Content  string   `json:"content" db:"content"`
	Metadata Metadata `json:"metadata" db:"metadata"`
}

// ScoredListing pairs a record with its retrieval score. Scores are distances:
// lower is better, and reranking may only push a score upward.
type ScoredListing struct {
	Listing ListingRecord `json:"listing"`
	Score   float64       `json:"score"`
}

// ConstraintSet holds coarse filters extracted from a preference statement by
// the LLM. Keys are constraint names (bedrooms, bathrooms); empty values are
// never stored. A set is built per query and discarded after retrieval.
type ConstraintSet map[string]string

// RequirementSet holds fine-grained signals found by literal keyword scanning
// of the query text. Consumed at the re-ranking stage, not at the index filter.
type RequirementSet struct {
	Bedrooms  string   `json:"bedrooms,omitempty"`
	Borough   string   `json:"borough,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

// Empty reports whether no requirement was detected.
func (r RequirementSet) Empty() bool {
	return r.Bedrooms == "" && r.Borough == "" && len(r.Amenities) == 0
}
