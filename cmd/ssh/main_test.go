package main

import (
	"sync"
	"testing"
)

func TestSizeTrackerReportsLatestSize(t *testing.T) {
	st := newSizeTracker(80, 24)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			st.update(100+n, 40)
		}(i)
	}
	wg.Wait()
	st.update(120, 50)

	w, h, err := st.getSize()
	if err != nil {
		t.Fatalf("getSize() error = %v", err)
	}
	if w != 120 || h != 50 {
		t.Errorf("getSize() = %dx%d, want 120x50", w, h)
	}
}
