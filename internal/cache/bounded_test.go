package cache

import "testing"

func TestBoundedCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewBoundedCache[string, int](3)

	for i, key := range []string{"a", "b", "c"} {
		if _, _, evicted := c.Put(key, i); evicted {
			t.Fatalf("Put(%q) evicted below capacity", key)
		}
	}

	key, value, evicted := c.Put("d", 3)
	if !evicted {
		t.Fatal("Put over capacity did not evict")
	}
	if key != "a" || value != 0 {
		t.Errorf("evicted (%q, %d), want (a, 0)", key, value)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d after eviction, want 3", c.Len())
	}
}

func TestBoundedCacheGetRefreshesRecency(t *testing.T) {
	c := NewBoundedCache[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = (%d, %v), want (1, true)", v, ok)
	}

	// "b" is now least recently used and must be the one evicted.
	key, _, evicted := c.Put("c", 3)
	if !evicted || key != "b" {
		t.Errorf("evicted %q, want b", key)
	}
	if !c.Contains("a") {
		t.Error("recently read key a was evicted")
	}
}

func TestBoundedCacheReinsertExistingKey(t *testing.T) {
	c := NewBoundedCache[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	if _, _, evicted := c.Put("a", 10); evicted {
		t.Error("re-inserting a present key evicted an entry")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d after re-insert, want 2", c.Len())
	}
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("Get(a) = %d after re-insert, want 10", v)
	}

	keys := c.Keys()
	if keys[0] != "a" {
		t.Errorf("most recent key = %q, want a", keys[0])
	}
}

func TestBoundedCacheKeysRecencyOrder(t *testing.T) {
	c := NewBoundedCache[int, string](4)
	for i := 1; i <= 4; i++ {
		c.Put(i, "")
	}
	c.Get(2)

	keys := c.Keys()
	want := []int{2, 4, 3, 1}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", keys, want)
		}
	}
}

func TestBoundedCacheMissReturnsZero(t *testing.T) {
	c := NewBoundedCache[string, int](1)
	if v, ok := c.Get("nope"); ok || v != 0 {
		t.Errorf("Get on miss = (%d, %v), want (0, false)", v, ok)
	}
	if c.Contains("nope") {
		t.Error("Contains() true for missing key")
	}
}
