package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"
)

type cachedLink struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestReadThrough_Hit(t *testing.T) {
	t.Parallel()
	p, _, cache, _ := newTestPipeline()
	cache.data["link:1"] = []byte(`{"id":"1","title":"cached"}`)

	calls := 0
	got, err := ReadThrough(context.Background(), p, "link:1", time.Minute, func(_ context.Context) (cachedLink, error) {
		calls++
		return cachedLink{}, nil
	})
	if err != nil {
		t.Fatalf("ReadThrough() error = %v, want nil", err)
	}
	if calls != 0 {
		t.Errorf("producer called %d times on hit, want 0", calls)
	}
	if got.Title != "cached" {
		t.Errorf("got.Title = %q, want %q", got.Title, "cached")
	}
}

func TestReadThrough_MissProducesAndStores(t *testing.T) {
	t.Parallel()
	p, _, cache, _ := newTestPipeline()

	calls := 0
	got, err := ReadThrough(context.Background(), p, "link:1", time.Minute, func(_ context.Context) (cachedLink, error) {
		calls++
		return cachedLink{ID: "1", Title: "fresh"}, nil
	})
	if err != nil {
		t.Fatalf("ReadThrough() error = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("producer called %d times on miss, want 1", calls)
	}
	if got.Title != "fresh" {
		t.Errorf("got.Title = %q, want %q", got.Title, "fresh")
	}

	if _, ok := cache.data["link:1"]; !ok {
		t.Fatal("value not stored after miss")
	}
	if ttl := cache.ttls["link:1"]; ttl != time.Minute {
		t.Errorf("stored TTL = %v, want %v", ttl, time.Minute)
	}
}

func TestReadThrough_SecondReadServedFromCache(t *testing.T) {
	t.Parallel()
	p, _, _, _ := newTestPipeline()

	calls := 0
	producer := func(_ context.Context) (cachedLink, error) {
		calls++
		return cachedLink{ID: "1", Title: "fresh"}, nil
	}

	for range 2 {
		if _, err := ReadThrough(context.Background(), p, "link:1", time.Minute, producer); err != nil {
			t.Fatalf("ReadThrough() error = %v, want nil", err)
		}
	}
	if calls != 1 {
		t.Errorf("producer called %d times across two reads, want 1", calls)
	}
}

func TestReadThrough_ProducerErrorNotCached(t *testing.T) {
	t.Parallel()
	p, _, cache, _ := newTestPipeline()
	wantErr := errors.New("row not found")

	_, err := ReadThrough(context.Background(), p, "link:1", time.Minute, func(_ context.Context) (cachedLink, error) {
		return cachedLink{}, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("ReadThrough() error = %v, want producer error", err)
	}
	if _, ok := cache.data["link:1"]; ok {
		t.Error("error result was cached")
	}
}

func TestReadThrough_CacheFailureDegradesToProducer(t *testing.T) {
	t.Parallel()
	p, _, cache, _ := newTestPipeline()
	cache.getErr = errors.New("connection refused")

	got, err := ReadThrough(context.Background(), p, "link:1", time.Minute, func(_ context.Context) (cachedLink, error) {
		return cachedLink{ID: "1", Title: "from db"}, nil
	})
	if err != nil {
		t.Fatalf("ReadThrough() error = %v, want nil during cache outage", err)
	}
	if got.Title != "from db" {
		t.Errorf("got.Title = %q, want %q", got.Title, "from db")
	}
}

func TestReadThrough_UndecodableEntryTreatedAsMiss(t *testing.T) {
	t.Parallel()
	p, _, cache, _ := newTestPipeline()
	cache.data["link:1"] = []byte("not json{")

	calls := 0
	got, err := ReadThrough(context.Background(), p, "link:1", time.Minute, func(_ context.Context) (cachedLink, error) {
		calls++
		return cachedLink{ID: "1", Title: "rebuilt"}, nil
	})
	if err != nil {
		t.Fatalf("ReadThrough() error = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("producer called %d times for corrupt entry, want 1", calls)
	}
	if got.Title != "rebuilt" {
		t.Errorf("got.Title = %q, want %q", got.Title, "rebuilt")
	}

	// The corrupt entry is overwritten with the fresh encoding.
	if string(cache.data["link:1"]) == "not json{" {
		t.Error("corrupt cache entry was not overwritten")
	}
}

func TestReadThrough_SetFailureIsBestEffort(t *testing.T) {
	t.Parallel()
	p, _, cache, _ := newTestPipeline()
	cache.setErr = errors.New("cache full")

	got, err := ReadThrough(context.Background(), p, "link:1", time.Minute, func(_ context.Context) (cachedLink, error) {
		return cachedLink{ID: "1", Title: "fresh"}, nil
	})
	if err != nil {
		t.Fatalf("ReadThrough() error = %v, want nil when store fails", err)
	}
	if got.Title != "fresh" {
		t.Errorf("got.Title = %q, want %q", got.Title, "fresh")
	}
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		segments []string
		want     string
	}{
		{[]string{"link", "42"}, "link:42"},
		{[]string{"product_links", "7", "active"}, "product_links:7:active"},
		{[]string{"marketplaces"}, "marketplaces"},
	}
	for _, tt := range tests {
		if got := CacheKey(tt.segments...); got != tt.want {
			t.Errorf("CacheKey(%v) = %q, want %q", tt.segments, got, tt.want)
		}
	}
}
