package articles

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ivmanto/site/internal/backend"
	"github.com/ivmanto/site/internal/content"
)

// fakeSource records calls and returns canned responses.
type fakeSource struct {
	mu        sync.Mutex
	listCalls int
	list      []content.ArticleMeta
	listErr   error
	articles  map[string]*content.Article
	getErr    error
	block     chan struct{}
}

func (f *fakeSource) ListArticles(ctx context.Context) ([]content.ArticleMeta, error) {
	f.mu.Lock()
	f.listCalls++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list, f.listErr
}

func (f *fakeSource) GetArticle(ctx context.Context, slug string) (*content.Article, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.articles[slug]
	if !ok {
		return nil, backend.ErrNotFound
	}
	return a, nil
}

func (f *fakeSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func sampleList() []content.ArticleMeta {
	return []content.ArticleMeta{
		{Slug: "jan", Title: "Jan", Date: "2024-01-01", Published: true},
		{Slug: "mar", Title: "Mar", Date: "2024-03-01", Published: true},
		{Slug: "feb", Title: "Feb", Date: "2024-02-01", Published: true},
	}
}

func TestFetchAllIsIdempotent(t *testing.T) {
	src := &fakeSource{list: sampleList()}
	a := New(src, nil, nil)

	a.FetchAll(t.Context())
	a.FetchAll(t.Context())

	if src.calls() != 1 {
		t.Errorf("expected exactly one request, got %d", src.calls())
	}
	if len(a.Articles()) != 3 {
		t.Errorf("expected 3 cached articles, got %d", len(a.Articles()))
	}
	if a.Err() != "" {
		t.Errorf("expected empty error slot, got %q", a.Err())
	}
}

func TestFetchAllFailureAllowsRetry(t *testing.T) {
	src := &fakeSource{listErr: errors.New("Failed to fetch articles: 500")}
	a := New(src, nil, nil)

	a.FetchAll(t.Context())
	if a.Err() != "Failed to fetch articles: 500" {
		t.Errorf("unexpected error slot %q", a.Err())
	}
	if len(a.Articles()) != 0 {
		t.Error("cache must stay empty after a failed fetch")
	}

	src.mu.Lock()
	src.listErr = nil
	src.list = sampleList()
	src.mu.Unlock()

	a.FetchAll(t.Context())
	if src.calls() != 2 {
		t.Errorf("expected a retry after failure, got %d calls", src.calls())
	}
	if a.Err() != "" {
		t.Errorf("error slot should be cleared by a new fetch, got %q", a.Err())
	}
	if len(a.Articles()) != 3 {
		t.Errorf("expected 3 cached articles, got %d", len(a.Articles()))
	}
}

func TestFetchAllConcurrentCallsShareRequest(t *testing.T) {
	src := &fakeSource{list: sampleList(), block: make(chan struct{})}
	a := New(src, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.FetchAll(context.Background())
		}()
	}

	deadline := time.Now().Add(2 * time.Second)
	for src.calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !a.Loading() {
		t.Error("expected Loading while the fetch is blocked")
	}
	close(src.block)
	wg.Wait()

	if src.calls() != 1 {
		t.Errorf("expected concurrent fetches to share one request, got %d", src.calls())
	}
	if a.Loading() {
		t.Error("Loading should be false after the fetch completes")
	}
}

func TestSortedByDateDescending(t *testing.T) {
	a := New(&fakeSource{list: sampleList()}, nil, nil)
	a.FetchAll(t.Context())

	got := a.Sorted()
	want := []string{"2024-03-01", "2024-02-01", "2024-01-01"}
	for i, w := range want {
		if got[i].Date != w {
			t.Errorf("position %d: got %s, want %s", i, got[i].Date, w)
		}
	}

	// The cache itself keeps source order.
	if a.Articles()[0].Slug != "jan" {
		t.Error("Sorted must not reorder the cache")
	}
}

func TestSortedIsStable(t *testing.T) {
	list := []content.ArticleMeta{
		{Slug: "a", Date: "2024-01-01"},
		{Slug: "b", Date: "2024-02-01"},
		{Slug: "c", Date: "2024-01-01"},
	}
	a := New(&fakeSource{list: list}, nil, nil)
	a.FetchAll(t.Context())

	got := a.Sorted()
	if got[0].Slug != "b" || got[1].Slug != "a" || got[2].Slug != "c" {
		t.Errorf("unexpected order: %v, %v, %v", got[0].Slug, got[1].Slug, got[2].Slug)
	}
}

func TestGet(t *testing.T) {
	a := New(&fakeSource{list: sampleList()}, nil, nil)
	a.FetchAll(t.Context())

	for _, m := range sampleList() {
		got, ok := a.Get(m.Slug)
		if !ok || got.Slug != m.Slug {
			t.Errorf("Get(%q) = %+v, %v", m.Slug, got, ok)
		}
	}
	if _, ok := a.Get("absent"); ok {
		t.Error("expected absent slug to be missing")
	}
}

func TestFetchOneNotFoundIsNotAnError(t *testing.T) {
	a := New(&fakeSource{}, nil, nil)

	if got := a.FetchOne(t.Context(), "does-not-exist"); got != nil {
		t.Errorf("expected nil article, got %+v", got)
	}
	if a.Err() != "" {
		t.Errorf("not-found must not set the error slot, got %q", a.Err())
	}
}

func TestFetchOneFailureSetsErrorSlot(t *testing.T) {
	a := New(&fakeSource{getErr: errors.New("Failed to fetch article: 503")}, nil, nil)

	if got := a.FetchOne(t.Context(), "x"); got != nil {
		t.Errorf("expected nil article, got %+v", got)
	}
	if a.Err() != "Failed to fetch article: 503" {
		t.Errorf("unexpected error slot %q", a.Err())
	}
}

func TestLookupDistinguishesNotFoundFromFailure(t *testing.T) {
	a := New(&fakeSource{}, nil, nil)
	got, err := a.Lookup(t.Context(), "does-not-exist")
	if got != nil || err != nil {
		t.Errorf("not-found: got (%v, %v), want (nil, nil)", got, err)
	}

	failing := New(&fakeSource{getErr: errors.New("Failed to fetch article: 500")}, nil, nil)
	got, err = failing.Lookup(t.Context(), "x")
	if got != nil || err == nil {
		t.Errorf("failure: got (%v, %v), want (nil, error)", got, err)
	}
	if failing.Err() != "Failed to fetch article: 500" {
		t.Errorf("failure must also reach the error slot, got %q", failing.Err())
	}
}

func TestFetchOneFound(t *testing.T) {
	src := &fakeSource{articles: map[string]*content.Article{
		"dama-principles": {ArticleMeta: content.ArticleMeta{Slug: "dama-principles"}, Content: "<p>x</p>"},
	}}
	a := New(src, nil, nil)

	got := a.FetchOne(t.Context(), "dama-principles")
	if got == nil || got.Content != "<p>x</p>" {
		t.Errorf("unexpected article %+v", got)
	}
}

func TestStaticSource(t *testing.T) {
	reg, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load failed: %v", err)
	}
	a := New(NewStaticSource(reg), reg, nil)
	a.FetchAll(t.Context())

	if _, ok := a.Get("lakehouse-notes"); ok {
		t.Error("unpublished articles must not be listed")
	}
	if got := a.FetchOne(t.Context(), "lakehouse-notes"); got != nil {
		t.Error("unpublished articles must not be readable")
	}

	sorted := a.Sorted()
	if len(sorted) == 0 || sorted[0].Slug != "dama-principles" {
		t.Errorf("expected dama-principles first, got %+v", sorted)
	}

	full := a.FetchOne(t.Context(), "dama-principles")
	if full == nil || full.Content == "" {
		t.Fatal("expected rendered article content")
	}

	if _, ok := a.ServiceByID("ml-engineering"); !ok {
		t.Error("expected service lookup through the accessor")
	}
	if len(a.Services()) != 5 {
		t.Errorf("expected 5 services, got %d", len(a.Services()))
	}
}
