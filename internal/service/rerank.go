package service

import (
	"sort"
	"strings"

	"homematch/internal/model"
)

// Reranker adjusts retrieval distances with penalties for requirements a
// candidate contradicts. Penalties only ever increase a score.
type Reranker struct {
	metadataPenalty float64
	amenityPenalty  float64
}

// NewReranker creates a reranker with the given penalty weights.
func NewReranker(metadataPenalty, amenityPenalty float64) *Reranker {
	return &Reranker{
		metadataPenalty: metadataPenalty,
		amenityPenalty:  amenityPenalty,
	}
}

// Rerank applies penalties per requirement and stable-sorts ascending by the
// adjusted score, so ties keep their original order. A candidate whose
// metadata lacks a required key entirely is not penalized for it; only a
// present-but-mismatched value is.
func (r *Reranker) Rerank(candidates []model.ScoredListing, reqs model.RequirementSet) []model.ScoredListing {
	reranked := make([]model.ScoredListing, len(candidates))

	for i, cand := range candidates {
		score := cand.Score

		if reqs.Bedrooms != "" {
			if v, ok := cand.Listing.Metadata["bedrooms"]; ok && v.String() != reqs.Bedrooms {
				score += r.metadataPenalty
			}
		}

		if reqs.Borough != "" {
			if v, ok := cand.Listing.Metadata["borough"]; ok && v.String() != reqs.Borough {
				score += r.metadataPenalty
			}
		}

		if len(reqs.Amenities) > 0 {
			content := strings.ToLower(cand.Listing.Content)
			for _, amenity := range reqs.Amenities {
				if !strings.Contains(content, amenity) {
					score += r.amenityPenalty
				}
			}
		}

		reranked[i] = model.ScoredListing{Listing: cand.Listing, Score: score}
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].Score < reranked[j].Score
	})

	return reranked
}
