package service

import (
	"math"
	"testing"

	"homematch/internal/model"
)

func scored(id string, score float64, content string, meta map[string]string) model.ScoredListing {
	metadata := model.Metadata{}
	for k, v := range meta {
		metadata[k] = model.StringValue(v)
	}
	return model.ScoredListing{
		Listing: model.ListingRecord{ID: id, Content: content, Metadata: metadata},
		Score:   score,
	}
}

func TestRerank_BedroomMismatchPenalty(t *testing.T) {
	r := NewReranker(0.10, 0.05)

	candidates := []model.ScoredListing{
		scored("a", 0.5, "flat", map[string]string{"bedrooms": "3"}),
		scored("b", 0.5, "flat", map[string]string{"bedrooms": "2"}),
	}

	got := r.Rerank(candidates, model.RequirementSet{Bedrooms: "2"})

	if got[0].Listing.ID != "b" {
		t.Errorf("Expected matching candidate first, got %s", got[0].Listing.ID)
	}
	if math.Abs(got[1].Score-0.6) > 1e-9 {
		t.Errorf("Expected mismatched candidate at 0.6, got %f", got[1].Score)
	}
	if got[0].Score != 0.5 {
		t.Errorf("Expected matching candidate untouched at 0.5, got %f", got[0].Score)
	}
}

func TestRerank_MissingKeyNotPenalized(t *testing.T) {
	r := NewReranker(0.10, 0.05)

	candidates := []model.ScoredListing{
		scored("no-key", 0.5, "flat", nil),
		scored("wrong-value", 0.5, "flat", map[string]string{"bedrooms": "3"}),
	}

	got := r.Rerank(candidates, model.RequirementSet{Bedrooms: "2"})

	if got[0].Listing.ID != "no-key" || got[0].Score != 0.5 {
		t.Errorf("Expected absent metadata to go unpenalized, got %s at %f", got[0].Listing.ID, got[0].Score)
	}
}

func TestRerank_BoroughPenalty(t *testing.T) {
	r := NewReranker(0.10, 0.05)

	candidates := []model.ScoredListing{
		scored("a", 0.4, "flat", map[string]string{"borough": "Mitte"}),
		scored("b", 0.45, "flat", map[string]string{"borough": "Kreuzberg"}),
	}

	got := r.Rerank(candidates, model.RequirementSet{Borough: "Kreuzberg"})

	if got[0].Listing.ID != "b" {
		t.Errorf("Expected borough match to overtake, got %s first", got[0].Listing.ID)
	}
}

func TestRerank_AmenityPenaltiesStack(t *testing.T) {
	r := NewReranker(0.10, 0.05)

	candidates := []model.ScoredListing{
		scored("a", 0.5, "flat with balcony", nil),
	}

	got := r.Rerank(candidates, model.RequirementSet{Amenities: []string{"balcony", "garden", "parking"}})

	// balcony present, garden and parking missing: two 0.05 penalties
	if math.Abs(got[0].Score-0.6) > 1e-9 {
		t.Errorf("Expected score 0.6 after two amenity penalties, got %f", got[0].Score)
	}
}

func TestRerank_PenaltiesStackAcrossRequirements(t *testing.T) {
	r := NewReranker(0.10, 0.05)

	candidates := []model.ScoredListing{
		scored("a", 0.2, "plain flat", map[string]string{"bedrooms": "1", "borough": "Mitte"}),
	}

	reqs := model.RequirementSet{
		Bedrooms:  "2",
		Borough:   "Kreuzberg",
		Amenities: []string{"garden"},
	}
	got := r.Rerank(candidates, reqs)

	// 0.2 + 0.10 + 0.10 + 0.05
	if math.Abs(got[0].Score-0.45) > 1e-9 {
		t.Errorf("Expected score 0.45, got %f", got[0].Score)
	}
}

func TestRerank_StableOnTies(t *testing.T) {
	r := NewReranker(0.10, 0.05)

	candidates := []model.ScoredListing{
		scored("first", 0.5, "flat", nil),
		scored("second", 0.5, "flat", nil),
		scored("third", 0.5, "flat", nil),
	}

	got := r.Rerank(candidates, model.RequirementSet{Bedrooms: "2"})

	for i, want := range []string{"first", "second", "third"} {
		if got[i].Listing.ID != want {
			t.Errorf("Expected %s at position %d, got %s", want, i, got[i].Listing.ID)
		}
	}
}

func TestRerank_NeverLowersScores(t *testing.T) {
	r := NewReranker(0.10, 0.05)

	candidates := []model.ScoredListing{
		scored("a", 0.3, "flat with balcony and garden in Kreuzberg", map[string]string{"bedrooms": "2", "borough": "Kreuzberg"}),
	}

	reqs := model.RequirementSet{Bedrooms: "2", Borough: "Kreuzberg", Amenities: []string{"balcony", "garden"}}
	got := r.Rerank(candidates, reqs)

	if got[0].Score != 0.3 {
		t.Errorf("Expected fully matching candidate to keep its raw score, got %f", got[0].Score)
	}
}

func TestRerank_PreservesMembership(t *testing.T) {
	r := NewReranker(0.10, 0.05)

	candidates := []model.ScoredListing{
		scored("a", 0.9, "flat", map[string]string{"bedrooms": "2"}),
		scored("b", 0.1, "flat", map[string]string{"bedrooms": "3"}),
	}

	got := r.Rerank(candidates, model.RequirementSet{Bedrooms: "2"})

	if len(got) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, cand := range got {
		seen[cand.Listing.ID] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("Expected same membership, got %v", seen)
	}
}
