package status

import (
	"sync"
	"testing"
)

func TestMetricMapCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("gen.particles")
	b := r.Ints.Get("gen.particles")
	if a != b {
		t.Fatal("Expected the same pointer for repeated Get")
	}
	a.Store(42)
	if got := b.Load(); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if _, ok := r.Ints.Lookup("gen.particles"); !ok {
		t.Error("Lookup missed a registered key")
	}
	if _, ok := r.Ints.Lookup("missing"); ok {
		t.Error("Lookup found an unregistered key")
	}
	r.Ints.Get("gen.chords")
	if got := r.Ints.Keys(); len(got) != 2 || got[0] != "gen.chords" || got[1] != "gen.particles" {
		t.Errorf("Keys = %v, want sorted [gen.chords gen.particles]", got)
	}
}

func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if got := f.Get(); got != 4000 {
		t.Errorf("Expected 4000, got %f", got)
	}
}

func TestEntriesSorted(t *testing.T) {
	r := NewRegistry()
	r.Strings.Get("render.backend").Store("vector")
	r.Floats.Get("render.fps").Set(59.5)
	r.Ints.Get("gen.chords").Store(3)
	r.Bools.Get("advice.accelerate").Store(true)

	entries := r.Entries()
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(entries))
	}
	want := []Entry{
		{"advice.accelerate", "true"},
		{"gen.chords", "3"},
		{"render.backend", "vector"},
		{"render.fps", "59.50"},
	}
	for i, e := range entries {
		if e != want[i] {
			t.Errorf("Entry %d: expected %+v, got %+v", i, want[i], e)
		}
	}
}
