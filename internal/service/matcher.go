package service

import (
	"context"
	"log"
	"time"

	"homematch/internal/index"
	"homematch/internal/listing"
	"homematch/internal/model"
)

// Matcher handles the end-to-end match flow: constraint extraction, hybrid
// retrieval, and optional description personalization.
type Matcher struct {
	store        index.Store
	constraints  *ConstraintExtractor
	retriever    *Retriever
	personalizer *Personalizer
}

// NewMatcher creates a new matcher service
func NewMatcher(store index.Store, constraints *ConstraintExtractor, retriever *Retriever, personalizer *Personalizer) *Matcher {
	return &Matcher{
		store:        store,
		constraints:  constraints,
		retriever:    retriever,
		personalizer: personalizer,
	}
}

// Match runs one buyer-preference search and returns ranked results. The
// response reports both the raw distance score and 1-score as a
// display-friendly similarity.
func (m *Matcher) Match(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	startTime := time.Now()

	var filters model.ConstraintSet
	if !req.SkipFilters {
		filters = m.constraints.Extract(ctx, req.Query)
		for key, value := range filters {
			log.Printf("Applying metadata filter %s = %s", key, value)
		}
	}

	candidates, err := m.retriever.Retrieve(ctx, req.Query, req.N, filters)
	if err != nil {
		return nil, err
	}

	results := make([]model.MatchResult, 0, len(candidates))
	for _, cand := range candidates {
		result := model.MatchResult{
			ID:         cand.Listing.ID,
			Metadata:   cand.Listing.Metadata,
			Content:    cand.Listing.Content,
			Score:      cand.Score,
			Similarity: 1 - cand.Score,
		}
		if req.Personalize {
			personalized, err := m.personalizer.Personalize(ctx, cand.Listing, req.Query)
			if err != nil {
				log.Printf("Personalization failed for %s: %v", cand.Listing.ID, err)
			} else {
				result.Personalized = personalized
			}
		}
		results = append(results, result)
	}

	return &model.SearchResponse{
		Results: results,
		Filters: filters,
		Took:    time.Since(startTime).Milliseconds(),
	}, nil
}

// GetListing retrieves a single stored listing by id.
func (m *Matcher) GetListing(ctx context.Context, id string) (*model.ListingRecord, error) {
	return m.store.Get(ctx, id)
}

// Ingestor loads the listings file and drives the index build.
type Ingestor struct {
	store        index.Store
	listingsFile string
}

// NewIngestor creates a new ingestor
func NewIngestor(store index.Store, listingsFile string) *Ingestor {
	return &Ingestor{store: store, listingsFile: listingsFile}
}

// Ingest parses the listings file and builds the index if it is not already
// built. Existing index data is authoritative unless force is set. Returns
// the number of records considered and whether existing data was reused.
func (i *Ingestor) Ingest(ctx context.Context, force bool) (int, bool, error) {
	var records []model.ListingRecord
	texts, err := listing.LoadFile(i.listingsFile)
	if err != nil {
		// A missing file only matters if the index also needs building;
		// EnsureBuilt reports that as ErrNoListings.
		log.Printf("Could not load listings file %s: %v", i.listingsFile, err)
	} else {
		records = listing.ParseAll(texts)
	}

	loaded, err := index.EnsureBuilt(ctx, i.store, records, force)
	if err != nil {
		return 0, false, err
	}
	if loaded {
		count, err := i.store.Count(ctx)
		if err != nil {
			return 0, true, err
		}
		return count, true, nil
	}
	return len(records), false, nil
}
