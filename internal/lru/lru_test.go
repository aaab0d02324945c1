package lru

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
)

type blob int64

func (b blob) SizeBytes() int64 { return int64(b) }

// countingLoader serves sizes from a fixed table and records every load.
type countingLoader struct {
	mu    sync.Mutex
	sizes map[string]blob
	loads []string
}

func (l *countingLoader) Load(_ context.Context, key string) (blob, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads = append(l.loads, key)
	v, ok := l.sizes[key]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

func newCache(t *testing.T, capacity int64, sizes map[string]blob) (*Cache[string, blob], *countingLoader) {
	t.Helper()
	l := &countingLoader{sizes: sizes}
	c, err := New[string, blob](capacity, l)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, l
}

func keys(c *Cache[string, blob]) []string {
	var out []string
	for k := range c.All() {
		out = append(out, k)
	}
	return out
}

func TestGetLoadsOnce(t *testing.T) {
	t.Parallel()
	c, l := newCache(t, 100, map[string]blob{"a": 10})
	ctx := context.Background()

	for range 3 {
		v, err := c.Get(ctx, "a")
		if err != nil {
			t.Fatalf("Get(a): %v", err)
		}
		if v != 10 {
			t.Errorf("Get(a) = %d, want 10", v)
		}
	}
	if len(l.loads) != 1 {
		t.Errorf("loader called %d times, want 1", len(l.loads))
	}
	if s := c.Stats(); s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Stats() = %+v, want 2 hits, 1 miss", s)
	}
	if got := c.Size(); got != 10 {
		t.Errorf("Size() = %d, want 10", got)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()
	c, _ := newCache(t, 30, map[string]blob{"a": 10, "b": 10, "c": 10, "d": 15})
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c", "a"} {
		if _, err := c.Get(ctx, k); err != nil {
			t.Fatalf("Get(%s): %v", k, err)
		}
	}
	if got, want := keys(c), []string{"b", "c", "a"}; !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	// d needs 15 bytes: b and c must go.
	if _, err := c.Get(ctx, "d"); err != nil {
		t.Fatalf("Get(d): %v", err)
	}
	if got, want := keys(c), []string{"a", "d"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if got := c.Size(); got != 25 {
		t.Errorf("Size() = %d, want 25", got)
	}
	if got := c.Stats().Evictions; got != 2 {
		t.Errorf("Evictions = %d, want 2", got)
	}
}

func TestInsufficientSpace(t *testing.T) {
	t.Parallel()
	c, _ := newCache(t, 10, map[string]blob{"big": 11, "a": 5})
	ctx := context.Background()
	if _, err := c.Get(ctx, "a"); err != nil {
		t.Fatalf("Get(a): %v", err)
	}
	_, err := c.Get(ctx, "big")
	if !errors.Is(err, ErrInsufficientSpace) {
		t.Fatalf("Get(big) error = %v, want ErrInsufficientSpace", err)
	}
	if _, ok := c.Peek("a"); !ok {
		t.Error("oversized value evicted existing entries")
	}
}

func TestNotFoundNotCached(t *testing.T) {
	t.Parallel()
	c, l := newCache(t, 10, map[string]blob{})
	ctx := context.Background()
	for range 2 {
		if _, err := c.Get(ctx, "x"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Get(x) error = %v, want ErrNotFound", err)
		}
	}
	if len(l.loads) != 2 {
		t.Errorf("loader called %d times, want 2", len(l.loads))
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestSetCapacity(t *testing.T) {
	t.Parallel()
	c, _ := newCache(t, 30, map[string]blob{"a": 10, "b": 10, "c": 10})
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		c.Get(ctx, k)
	}

	if err := c.SetCapacity(0); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("SetCapacity(0) error = %v, want ErrInvalidCapacity", err)
	}
	if err := c.SetCapacity(15); err != nil {
		t.Fatalf("SetCapacity(15): %v", err)
	}
	if got, want := keys(c), []string{"c"}; !slices.Equal(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
	if c.Capacity() != 15 || c.Size() != 10 {
		t.Errorf("Capacity() = %d, Size() = %d, want 15, 10", c.Capacity(), c.Size())
	}
}

func TestNewRejectsBadCapacity(t *testing.T) {
	t.Parallel()
	if _, err := New[string, blob](-1, nil); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("New(-1) error = %v, want ErrInvalidCapacity", err)
	}
}

func TestLoaderSwap(t *testing.T) {
	t.Parallel()
	c, err := New[string, blob](10, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrNoLoader) {
		t.Fatalf("Get without loader error = %v, want ErrNoLoader", err)
	}
	c.SetLoader(LoaderFunc[string, blob](func(_ context.Context, key string) (blob, error) {
		return blob(len(key)), nil
	}))
	if v, err := c.Get(ctx, "abc"); err != nil || v != 3 {
		t.Errorf("Get(abc) = (%d, %v), want (3, nil)", v, err)
	}
	if !c.Invalidate("abc") || c.Invalidate("abc") {
		t.Error("Invalidate results wrong")
	}
}

func TestConcurrentGet(t *testing.T) {
	t.Parallel()
	c, _ := newCache(t, 20, map[string]blob{"a": 5, "b": 5, "c": 5, "d": 5, "e": 5})
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				k := string(rune('a' + (i+j)%5))
				if _, err := c.Get(ctx, k); err != nil {
					t.Errorf("Get(%s): %v", k, err)
				}
			}
		}()
	}
	wg.Wait()
	if c.Size() > 20 {
		t.Errorf("Size() = %d exceeds capacity", c.Size())
	}
}
