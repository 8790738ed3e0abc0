package service

import (
	"context"
	"errors"
	"testing"

	"homematch/internal/model"
)

// fakeStore is a scripted index.Store that records every query.
type fakeStore struct {
	filteredResults   []model.ScoredListing
	unfilteredResults []model.ScoredListing
	filteredErr       error
	unfilteredErr     error

	queries []queryCall
}

type queryCall struct {
	k      int
	filter model.ConstraintSet
}

func (f *fakeStore) Ready(ctx context.Context) (bool, error) { return true, nil }
func (f *fakeStore) Upsert(ctx context.Context, records []model.ListingRecord) error {
	return nil
}
func (f *fakeStore) Get(ctx context.Context, id string) (*model.ListingRecord, error) {
	return nil, nil
}
func (f *fakeStore) Count(ctx context.Context) (int, error) { return 0, nil }
func (f *fakeStore) Clear(ctx context.Context) error        { return nil }

func (f *fakeStore) Query(ctx context.Context, text string, k int, filter model.ConstraintSet) ([]model.ScoredListing, error) {
	f.queries = append(f.queries, queryCall{k: k, filter: filter})
	if len(filter) > 0 {
		return f.filteredResults, f.filteredErr
	}
	return f.unfilteredResults, f.unfilteredErr
}

func newTestRetriever(store *fakeStore) *Retriever {
	return NewRetriever(store, NewReranker(0.10, 0.05), 3)
}

func TestRetrieve_FilteredQuerySucceeds(t *testing.T) {
	store := &fakeStore{
		filteredResults: []model.ScoredListing{scored("a", 0.1, "flat", nil)},
	}
	r := newTestRetriever(store)

	got, err := r.Retrieve(context.Background(), "a nice flat", 5, model.ConstraintSet{"bedrooms": "2"})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if len(store.queries) != 1 {
		t.Fatalf("Expected exactly 1 backend query, got %d", len(store.queries))
	}
	if len(store.queries[0].filter) == 0 {
		t.Error("Expected first query to carry the filter")
	}
	if len(got) != 1 || got[0].Listing.ID != "a" {
		t.Errorf("Unexpected results: %v", got)
	}
}

func TestRetrieve_FallbackOnEmptyFilteredResult(t *testing.T) {
	store := &fakeStore{
		filteredResults:   nil,
		unfilteredResults: []model.ScoredListing{scored("b", 0.2, "flat", nil)},
	}
	r := newTestRetriever(store)

	got, err := r.Retrieve(context.Background(), "a nice flat", 5, model.ConstraintSet{"bedrooms": "2"})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if len(store.queries) != 2 {
		t.Fatalf("Expected exactly 2 backend queries, got %d", len(store.queries))
	}
	if len(store.queries[1].filter) != 0 {
		t.Error("Expected the retry to drop the filter")
	}
	if len(got) != 1 || got[0].Listing.ID != "b" {
		t.Errorf("Unexpected results: %v", got)
	}
}

func TestRetrieve_FallbackOnFilteredError(t *testing.T) {
	store := &fakeStore{
		filteredErr:       errors.New("filter type mismatch"),
		unfilteredResults: []model.ScoredListing{scored("c", 0.3, "flat", nil)},
	}
	r := newTestRetriever(store)

	got, err := r.Retrieve(context.Background(), "a nice flat", 5, model.ConstraintSet{"bedrooms": "2"})
	if err != nil {
		t.Fatalf("Expected the fallback to recover, got %v", err)
	}
	if len(store.queries) != 2 {
		t.Fatalf("Expected exactly 2 backend queries, got %d", len(store.queries))
	}
	if len(got) != 1 || got[0].Listing.ID != "c" {
		t.Errorf("Unexpected results: %v", got)
	}
}

func TestRetrieve_UnfilteredFailureIsFatal(t *testing.T) {
	store := &fakeStore{
		filteredErr:   errors.New("backend down"),
		unfilteredErr: errors.New("backend down"),
	}
	r := newTestRetriever(store)

	if _, err := r.Retrieve(context.Background(), "a nice flat", 5, model.ConstraintSet{"bedrooms": "2"}); err == nil {
		t.Error("Expected an error when both queries fail")
	}
	if len(store.queries) != 2 {
		t.Errorf("Expected exactly 2 backend queries, got %d", len(store.queries))
	}
}

func TestRetrieve_NoFiltersSingleQuery(t *testing.T) {
	store := &fakeStore{
		unfilteredResults: []model.ScoredListing{scored("a", 0.1, "flat", nil)},
	}
	r := newTestRetriever(store)

	if _, err := r.Retrieve(context.Background(), "a nice flat", 5, nil); err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(store.queries) != 1 {
		t.Errorf("Expected exactly 1 backend query, got %d", len(store.queries))
	}
}

func TestRetrieve_OverfetchFactor(t *testing.T) {
	store := &fakeStore{}
	r := newTestRetriever(store)

	_, _ = r.Retrieve(context.Background(), "a nice flat", 5, nil)

	if store.queries[0].k != 15 {
		t.Errorf("Expected k=15 for n=5 with 3x over-fetch, got %d", store.queries[0].k)
	}
}

func TestRetrieve_TruncatesToN(t *testing.T) {
	store := &fakeStore{
		unfilteredResults: []model.ScoredListing{
			scored("a", 0.1, "flat", nil),
			scored("b", 0.2, "flat", nil),
			scored("c", 0.3, "flat", nil),
		},
	}
	r := newTestRetriever(store)

	got, err := r.Retrieve(context.Background(), "a nice flat", 2, nil)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 results, got %d", len(got))
	}
}

func TestRetrieve_FewerThanNReturnsAll(t *testing.T) {
	store := &fakeStore{
		unfilteredResults: []model.ScoredListing{scored("a", 0.1, "flat", nil)},
	}
	r := newTestRetriever(store)

	got, err := r.Retrieve(context.Background(), "a nice flat", 5, nil)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Expected all 1 result, got %d", len(got))
	}
}

func TestRetrieve_RerankAppliedWhenRequirementsPresent(t *testing.T) {
	store := &fakeStore{
		unfilteredResults: []model.ScoredListing{
			scored("wrong", 0.5, "flat", map[string]string{"bedrooms": "3"}),
			scored("right", 0.5, "flat", map[string]string{"bedrooms": "2"}),
		},
	}
	r := newTestRetriever(store)

	got, err := r.Retrieve(context.Background(), "a 2 bedroom flat", 2, nil)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if got[0].Listing.ID != "right" {
		t.Errorf("Expected reranking to promote the matching candidate, got %s first", got[0].Listing.ID)
	}
}

func TestRetrieve_ScoresUntouchedWithoutRequirements(t *testing.T) {
	store := &fakeStore{
		unfilteredResults: []model.ScoredListing{
			scored("a", 0.5, "flat", map[string]string{"bedrooms": "3"}),
		},
	}
	r := newTestRetriever(store)

	got, err := r.Retrieve(context.Background(), "somewhere nice to live", 1, nil)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if got[0].Score != 0.5 {
		t.Errorf("Expected raw score to pass through, got %f", got[0].Score)
	}
}
