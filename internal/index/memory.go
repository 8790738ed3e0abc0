package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"homematch/internal/model"
)

// Memory is a brute-force in-memory store. It backs tests and the
// no-Postgres local mode; a few dozen listings do not need an ANN structure.
type Memory struct {
	embedder Embedder
	records  []model.ListingRecord
	vectors  [][]float32
}

// NewMemory creates an empty in-memory store.
func NewMemory(embedder Embedder) *Memory {
	return &Memory{embedder: embedder}
}

// Ready reports whether any records have been stored.
func (s *Memory) Ready(ctx context.Context) (bool, error) {
	return len(s.records) > 0, nil
}

// Count returns the number of stored records.
func (s *Memory) Count(ctx context.Context) (int, error) {
	return len(s.records), nil
}

// Clear drops all stored records.
func (s *Memory) Clear(ctx context.Context) error {
	s.records = nil
	s.vectors = nil
	return nil
}

// Upsert embeds and stores the records, replacing any with matching ids.
func (s *Memory) Upsert(ctx context.Context, records []model.ListingRecord) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = rec.Content
	}

	vectors, err := s.embedder.CreateEmbeddings(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embedding provider error: %v", ErrUnavailable, err)
	}
	if len(vectors) != len(records) {
		return fmt.Errorf("%w: embedding count mismatch", ErrUnavailable)
	}

	for i, rec := range records {
		if j := s.find(rec.ID); j >= 0 {
			s.records[j] = rec
			s.vectors[j] = vectors[i]
			continue
		}
		s.records = append(s.records, rec)
		s.vectors = append(s.vectors, vectors[i])
	}
	return nil
}

// Query returns up to k nearest neighbors by cosine distance.
func (s *Memory) Query(ctx context.Context, text string, k int, filter model.ConstraintSet) ([]model.ScoredListing, error) {
	vectors, err := s.embedder.CreateEmbeddings(ctx, []string{text})
	if err != nil || len(vectors) != 1 {
		return nil, fmt.Errorf("%w: embedding provider error: %v", ErrQuery, err)
	}
	query := vectors[0]

	var results []model.ScoredListing
	for i, rec := range s.records {
		if !matchesFilter(rec.Metadata, filter) {
			continue
		}
		results = append(results, model.ScoredListing{
			Listing: rec,
			Score:   cosineDistance(query, s.vectors[i]),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Get retrieves one record by id, or nil when unknown.
func (s *Memory) Get(ctx context.Context, id string) (*model.ListingRecord, error) {
	if i := s.find(id); i >= 0 {
		rec := s.records[i]
		return &rec, nil
	}
	return nil, nil
}

func (s *Memory) find(id string) int {
	for i, rec := range s.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func matchesFilter(metadata model.Metadata, filter model.ConstraintSet) bool {
	for key, want := range filter {
		got, ok := metadata[key]
		if !ok || got.String() != want {
			return false
		}
	}
	return true
}

// cosineDistance is 1 - cosine similarity, so lower means closer.
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
