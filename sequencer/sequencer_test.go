package sequencer

import (
	"sort"
	"sync"
	"testing"
)

func TestNextIsStrictlyIncreasing(t *testing.T) {
	s := New()
	prev := uint64(0)
	for i := 0; i < 100; i++ {
		id := s.Next()
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
}

func TestNextIssueInvalidatesOlderIds(t *testing.T) {
	s := New()
	a := s.Next()
	if !s.IsLatest(a) {
		t.Fatal("freshly issued id should be latest")
	}
	b := s.Next()
	if s.IsLatest(a) {
		t.Fatal("older id must be stale once a newer id is issued")
	}
	if !s.IsLatest(b) {
		t.Fatal("newest id should be latest")
	}
}

func TestConcurrentNextYieldsDistinctGaplessIds(t *testing.T) {
	const n = 64
	s := New()
	ids := make([]uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			ids[slot] = s.Next()
		}(i)
	}
	wg.Wait()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		if id != uint64(i+1) {
			t.Fatalf("expected id %d at position %d, got %d (duplicate or gap)", i+1, i, id)
		}
	}
}
