package cache

import (
	"errors"
	"sync"
	"testing"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](0)
	if _, ok := c.Get("a"); ok {
		t.Fatal("Get() on empty cache succeeded")
	}
	c.Set("a", 1)
	c.Set("a", 2)
	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Errorf("Get(a) = %d, %v, want 2, true", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if st := c.Stats(); st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Stats() = %+v, want 1 hit and 1 miss", st)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Get(1) // 2 is now the oldest
	c.Set(3, 3)

	if _, ok := c.Get(2); ok {
		t.Error("key 2 survived eviction")
	}
	for _, k := range []int{1, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d was evicted", k)
		}
	}
	if st := c.Stats(); st.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", st.Evictions)
	}
}

func TestCacheLoad(t *testing.T) {
	c := New[string, int](4)
	calls := 0
	load := func() (int, error) {
		calls++
		return 42, nil
	}
	for range 3 {
		v, err := c.Load("k", load)
		if err != nil || v != 42 {
			t.Fatalf("Load() = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("loader ran %d times, want 1", calls)
	}

	errBroken := errors.New("broken")
	if _, err := c.Load("bad", func() (int, error) { return 0, errBroken }); !errors.Is(err, errBroken) {
		t.Errorf("Load(bad) = %v, want errBroken", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("failed load was cached")
	}
}

func TestCacheConcurrentLoad(t *testing.T) {
	c := New[int, int](0)
	var mu sync.Mutex
	calls := map[int]int{}

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := i % 4
			_, _ = c.Load(key, func() (int, error) {
				mu.Lock()
				calls[key]++
				mu.Unlock()
				return key * 10, nil
			})
		}()
	}
	wg.Wait()

	for k, n := range calls {
		if n != 1 {
			t.Errorf("key %d loaded %d times", k, n)
		}
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
}
