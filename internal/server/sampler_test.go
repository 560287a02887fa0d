package server

import (
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/xtding233/gamerand/internal/random"
)

func f64(v float64) *float64 { return &v }

func newTestSampler(t *testing.T) (*Sampler, *Metrics) {
	t.Helper()
	m := NewMetrics()
	return NewSampler(random.NewSeededFastRandom(42), 1000, m), m
}

func TestSamplerKinds(t *testing.T) {
	s, m := newTestSampler(t)
	cases := []struct {
		req  Request
		keys []string
	}{
		{Request{Kind: KindFloat}, []string{"value"}},
		{Request{Kind: KindInt}, []string{"value"}},
		{Request{Kind: KindRange, Min: f64(-2), Max: f64(2)}, []string{"value"}},
		{Request{Kind: KindRangeInt, Min: f64(1), Max: f64(7)}, []string{"value"}},
		{Request{Kind: KindCircle, Radius: f64(3)}, []string{"x", "y"}},
		{Request{Kind: KindSphere}, []string{"x", "y", "z"}},
		{Request{Kind: KindVector2}, []string{"x", "y"}},
		{Request{Kind: KindVector3}, []string{"x", "y", "z"}},
		{Request{Kind: KindRotation}, []string{"x", "y", "z", "w"}},
		{Request{Kind: KindSurface, X: 1, Y: 2, Z: 3}, []string{"x", "y", "z", "w"}},
		{Request{Kind: KindChance, P: f64(0.5)}, []string{"hit"}},
		{Request{Kind: KindStats}, []string{"count", "mean", "p99"}},
	}
	for _, tc := range cases {
		out, err := s.Sample("test", tc.req)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.req.Kind, err)
		}
		for _, k := range tc.keys {
			if _, ok := out[k]; !ok {
				t.Fatalf("%s: missing key %q in %v", tc.req.Kind, k, out)
			}
		}
	}
	if got := testutil.ToFloat64(m.Samples.WithLabelValues(KindFloat, "test")); got != 1 {
		t.Fatalf("float samples counter = %v, want 1", got)
	}
}

func TestSamplerValues(t *testing.T) {
	s, _ := newTestSampler(t)
	ref := random.NewSeededFastRandom(42)

	out, _ := s.Sample("test", Request{Kind: KindFloat})
	if out["value"] != float64(ref.Float()) {
		t.Fatalf("float = %v, want engine sequence", out["value"])
	}
	out, _ = s.Sample("test", Request{Kind: KindSurface, X: -1, Y: 0.5, Z: 8})
	if out["x"] != -1.0 || out["y"] != 0.5 || out["z"] != 8.0 {
		t.Fatalf("surface xyz = %v", out)
	}
	for i := 0; i < 200; i++ {
		out, _ = s.Sample("test", Request{Kind: KindRangeInt, Min: f64(1), Max: f64(7)})
		if v := out["value"].(float64); v < 1 || v >= 7 {
			t.Fatalf("range_int = %v out of [1,7)", v)
		}
	}
}

func TestSamplerRejects(t *testing.T) {
	s, m := newTestSampler(t)
	bad := []Request{
		{Kind: KindRange},
		{Kind: KindRange, Min: f64(5), Max: f64(1)},
		{Kind: KindRangeInt, Min: f64(0.5), Max: f64(3)},
		{Kind: KindRangeInt, Min: f64(0), Max: f64(1e12)},
		{Kind: KindCircle, Radius: f64(-1)},
		{Kind: KindChance},
		{Kind: KindChance, P: f64(2)},
		{Kind: KindStats, N: func() *int { n := 5000; return &n }()},
	}
	for _, req := range bad {
		if _, err := s.Sample("test", req); !errors.Is(err, random.ErrInvalidArgument) {
			t.Fatalf("%+v: error = %v, want %v", req, err, random.ErrInvalidArgument)
		}
	}
	if _, err := s.Sample("test", Request{Kind: "dice"}); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("unknown kind error = %v", err)
	}
	if got := testutil.ToFloat64(m.Rejected.WithLabelValues(KindRange, "test")); got != 2 {
		t.Fatalf("rejected range counter = %v, want 2", got)
	}
}

func TestSamplerRejectsNonFiniteFloat32(t *testing.T) {
	s, m := newTestSampler(t)
	nan := math.NaN()
	for _, req := range []Request{
		{Kind: KindSurface, X: nan},
		{Kind: KindSurface, Y: 1e39},
		{Kind: KindSurface, Z: -1e39},
		{Kind: KindCircle, Radius: f64(1e39)},
		{Kind: KindSphere, Radius: f64(math.Inf(1))},
	} {
		if _, err := s.Sample("test", req); !errors.Is(err, random.ErrInvalidArgument) {
			t.Fatalf("%+v: err = %v, want ErrInvalidArgument", req, err)
		}
	}
	if got := testutil.ToFloat64(m.Rejected.WithLabelValues(KindSurface, "test")); got != 3 {
		t.Fatalf("surface rejected counter = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.Samples.WithLabelValues(KindSurface, "test")); got != 0 {
		t.Fatalf("surface samples counter = %v, want 0", got)
	}
}

func TestSamplerReseedAndSwap(t *testing.T) {
	s, m := newTestSampler(t)
	first, _ := s.Sample("test", Request{Kind: KindFloat})
	v := int32(42)
	if err := s.Reseed(&v); err != nil {
		t.Fatal(err)
	}
	again, _ := s.Sample("test", Request{Kind: KindFloat})
	if first["value"] != again["value"] {
		t.Fatalf("reseed to 42 should restart sequence: %v != %v", first, again)
	}
	if err := s.Reseed(nil); err != nil {
		t.Fatalf("crypto reseed returned error: %v", err)
	}

	s.Swap(random.NewSeededSystemRandom(42))
	ref := random.NewSeededSystemRandom(42)
	out, _ := s.Sample("test", Request{Kind: KindFloat})
	if out["value"] != float64(ref.Float()) {
		t.Fatalf("swapped engine not used")
	}
	if got := testutil.ToFloat64(m.Reseeds.WithLabelValues("request")); got != 2 {
		t.Fatalf("request reseeds = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Reseeds.WithLabelValues("reload")); got != 1 {
		t.Fatalf("reload reseeds = %v, want 1", got)
	}
}
