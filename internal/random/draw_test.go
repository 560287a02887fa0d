package random

import (
	"errors"
	"math"
	"testing"
)

func TestChanceBounds(t *testing.T) {
	e := NewSeededFastRandom(1)
	got, err := Chance(e, 0)
	if err != nil || got {
		t.Fatalf("p=0 should never hit; got=%v err=%v", got, err)
	}
	got, err = Chance(e, 1)
	if err != nil || !got {
		t.Fatalf("p=1 should always hit; got=%v err=%v", got, err)
	}
	for _, p := range []float64{-0.1, 1.1, math.NaN(), math.Inf(1)} {
		if _, err := Chance(e, p); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("p=%v must error, got %v", p, err)
		}
	}
}

func TestChanceStatApprox(t *testing.T) {
	const p = 0.3
	const n = 100000
	for _, tc := range engines {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.new(42)
			hit := 0
			for i := 0; i < n; i++ {
				ok, err := Chance(e, p)
				if err != nil {
					t.Fatal(err)
				}
				if ok {
					hit++
				}
			}
			freq := float64(hit) / float64(n)
			if diff := freq - p; diff > 0.01 || diff < -0.01 {
				t.Fatalf("freq=%f not close to p=%f", freq, p)
			}
		})
	}
}
