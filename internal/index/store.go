// Package index wraps the vector-embedding index the listings live in.
package index

import (
	"context"
	"errors"
	"fmt"

	"homematch/internal/model"
)

var (
	// ErrUnavailable means the index backend could not be reached while
	// building or loading. Fatal to the calling operation.
	ErrUnavailable = errors.New("index backend unavailable")

	// ErrQuery means the backend failed at query time. The retriever
	// recovers from it by retrying without a filter.
	ErrQuery = errors.New("index query failed")

	// ErrNoListings means a build was requested with no listings while no
	// existing index data is present. This is a configuration error.
	ErrNoListings = errors.New("no listings supplied and no existing index to load")
)

// Embedder turns text into vectors. Implemented by the OpenAI client.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// Store is a vector index over listing records. Scores returned by Query are
// distances: lower is better.
type Store interface {
	// Ready reports whether the index already holds data.
	Ready(ctx context.Context) (bool, error)

	// Upsert embeds each record's content and stores it under the record id.
	Upsert(ctx context.Context, records []model.ListingRecord) error

	// Query returns up to k nearest neighbors of the query text. When filter
	// is non-empty, only candidates whose metadata exactly equals every
	// filter key/value are eligible.
	Query(ctx context.Context, text string, k int, filter model.ConstraintSet) ([]model.ScoredListing, error)

	// Get returns one stored record, or nil when the id is unknown.
	Get(ctx context.Context, id string) (*model.ListingRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Clear removes all stored records.
	Clear(ctx context.Context) error
}

// EnsureBuilt drives the index through its two states, Uninitialized and
// Built. An index that already holds data is authoritative and is loaded
// as-is; otherwise it is built from the supplied records, which must be
// non-empty. With force set, existing data is dropped and rebuilt. Returns
// true when existing data was reused.
func EnsureBuilt(ctx context.Context, s Store, records []model.ListingRecord, force bool) (bool, error) {
	if force {
		if len(records) == 0 {
			return false, ErrNoListings
		}
		if err := s.Clear(ctx); err != nil {
			return false, fmt.Errorf("failed to clear index: %w", err)
		}
		return false, s.Upsert(ctx, records)
	}

	ready, err := s.Ready(ctx)
	if err != nil {
		return false, err
	}
	if ready {
		return true, nil
	}

	if len(records) == 0 {
		return false, ErrNoListings
	}
	return false, s.Upsert(ctx, records)
}
