package model

// SearchRequest represents a buyer-preference search request
type SearchRequest struct {
	Query       string `json:"query" binding:"required"`
	N           int    `json:"n,omitempty"`
	SkipFilters bool   `json:"skip_filters,omitempty"`
	Personalize bool   `json:"personalize,omitempty"`
}

// MatchResult is one matched listing in a search response. Score is the
// retrieval distance; Similarity is 1-score, the display-friendly form the
// personalization stage expects.
type MatchResult struct {
	ID           string   `json:"id"`
	Metadata     Metadata `json:"metadata"`
	Content      string   `json:"content"`
	Score        float64  `json:"score"`
	Similarity   float64  `json:"similarity"`
	Personalized string   `json:"personalized,omitempty"`
}

// SearchResponse represents a search result response
type SearchResponse struct {
	Results []MatchResult `json:"results"`
	Filters ConstraintSet `json:"filters,omitempty"`
	Took    int64         `json:"took_ms"`
}

// IngestRequest represents an index build request
type IngestRequest struct {
	Force bool `json:"force,omitempty"`
}

// IngestResponse reports how the ingest call resolved
type IngestResponse struct {
	Ingested int    `json:"ingested"`
	Loaded   bool   `json:"loaded"`
	Message  string `json:"message,omitempty"`
}

// GenerateRequest represents a listing synthesis request
type GenerateRequest struct {
	Count int `json:"count,omitempty"`
}

// GenerateResponse reports the synthesized listings
type GenerateResponse struct {
	Generated int      `json:"generated"`
	Listings  []string `json:"listings,omitempty"`
}
