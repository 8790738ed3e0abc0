package service

import (
	"context"
	"log"

	"homematch/internal/index"
	"homematch/internal/model"
)

// Retriever runs the hybrid query: a metadata-filtered index query with a
// single unfiltered retry, candidate over-fetch, and requirement-based
// reranking.
type Retriever struct {
	store     index.Store
	reranker  *Reranker
	overfetch int
}

// NewRetriever creates a retriever over the given store.
func NewRetriever(store index.Store, reranker *Reranker, overfetch int) *Retriever {
	if overfetch <= 0 {
		overfetch = 3
	}
	return &Retriever{
		store:     store,
		reranker:  reranker,
		overfetch: overfetch,
	}
}

// Retrieve returns up to n candidates for the query text, best (lowest
// distance) first. The index is over-fetched by the configured factor so that
// reranking can reorder without truncating good candidates. A filtered query
// that fails or comes back empty is retried exactly once without the filter;
// the backend is never hit more than twice per call.
func (r *Retriever) Retrieve(ctx context.Context, queryText string, n int, coarseFilters model.ConstraintSet) ([]model.ScoredListing, error) {
	reqs := ExtractRequirements(queryText)
	k := n * r.overfetch

	var candidates []model.ScoredListing
	var err error

	if len(coarseFilters) > 0 {
		candidates, err = r.store.Query(ctx, queryText, k, coarseFilters)
		if err != nil {
			log.Printf("Filtered query failed (%v), falling back to semantic search without filters", err)
		} else if len(candidates) == 0 {
			log.Printf("No matches with metadata filters, falling back to semantic search without filters")
		}
		if err != nil || len(candidates) == 0 {
			candidates, err = r.store.Query(ctx, queryText, k, nil)
		}
	} else {
		candidates, err = r.store.Query(ctx, queryText, k, nil)
	}
	if err != nil {
		return nil, err
	}

	if !reqs.Empty() {
		candidates = r.reranker.Rerank(candidates, reqs)
	}

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}
