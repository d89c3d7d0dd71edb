package cache

import (
	"fmt"
	"sync"
	"testing"

	"salesdash/domain/core"
)

// TestCachePutGet tests basic storage and retrieval
func TestCachePutGet(t *testing.T) {
	c := New()

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}

	c.Put("k", 42)
	v, ok := c.Get("k")
	if !ok {
		t.Fatal("Expected hit after Put")
	}
	if v.(int) != 42 {
		t.Errorf("Expected 42, got %v", v)
	}
}

// TestCacheClear tests full invalidation
func TestCacheClear(t *testing.T) {
	c := New()
	c.Put("a", 1)
	c.Put("b", 2)
	if c.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d entries", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Expected miss after Clear")
	}
}

// TestCacheKey tests key construction from operation, fingerprint, and args
func TestCacheKey(t *testing.T) {
	fp := core.NewFingerprint([]byte("content"))

	plain := Key("monthly", fp)
	if plain != "monthly:"+fp.String() {
		t.Errorf("Unexpected key format: %s", plain)
	}

	withArgs := Key("topProducts", fp, "10")
	if withArgs != "topProducts:"+fp.String()+":10" {
		t.Errorf("Unexpected key format with args: %s", withArgs)
	}

	otherFP := core.NewFingerprint([]byte("other content"))
	if Key("monthly", fp) == Key("monthly", otherFP) {
		t.Error("Expected different fingerprints to yield different keys")
	}
	if Key("monthly", fp) == Key("yearly", fp) {
		t.Error("Expected different operations to yield different keys")
	}
}

// TestCacheConcurrentAccess tests that concurrent readers and writers do
// not race
func TestCacheConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			c.Put(fmt.Sprintf("k%d", i%10), i)
		}(i)
		go func(i int) {
			defer wg.Done()
			c.Get(fmt.Sprintf("k%d", i%10))
		}(i)
	}
	wg.Wait()

	if c.Len() == 0 {
		t.Error("Expected entries after concurrent writes")
	}
}
