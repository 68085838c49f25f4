package random

import "testing"

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed failed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed failed: %v", err)
	}
	if a == b {
		t.Errorf("Expected two seeds to differ, both were %d", a)
	}
}

func TestNew_SameSeedSameSequence(t *testing.T) {
	r1 := New(42)
	r2 := New(42)

	for i := 0; i < 100; i++ {
		if x, y := r1.IntN(1000), r2.IntN(1000); x != y {
			t.Fatalf("Sequences diverged at draw %d: %d != %d", i, x, y)
		}
	}
}
