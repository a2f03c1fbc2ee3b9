package random

import (
	"errors"
	"testing"
)

func TestResolveSeedUsesRequestedSeed(t *testing.T) {
	requested := int64(77)
	seed, source, err := ResolveSeed(&requested, func() (int64, error) {
		return 123, nil
	})
	if err != nil {
		t.Fatalf("ResolveSeed returned error: %v", err)
	}
	if seed != 77 {
		t.Fatalf("seed = %d, want 77", seed)
	}
	if source != SeedSourceReplay {
		t.Fatalf("seed source = %q, want %q", source, SeedSourceReplay)
	}
}

func TestResolveSeedGeneratesWhenMissing(t *testing.T) {
	seed, source, err := ResolveSeed(nil, func() (int64, error) {
		return 123, nil
	})
	if err != nil {
		t.Fatalf("ResolveSeed returned error: %v", err)
	}
	if seed != 123 {
		t.Fatalf("seed = %d, want 123", seed)
	}
	if source != SeedSourceGenerated {
		t.Fatalf("seed source = %q, want %q", source, SeedSourceGenerated)
	}
}

func TestResolveSeedPropagatesGeneratorError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := ResolveSeed(nil, func() (int64, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
}

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Fatalf("NewSeed returned error: %v", err)
	}
}

func TestNewStreamIsDeterministic(t *testing.T) {
	a := NewStream(42)
	b := NewStream(42)
	for i := 0; i < 50; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("float %d differs: %v vs %v", i, x, y)
		}
	}
}

var _ Source = NewStream(1)
