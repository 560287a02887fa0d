package random

import (
	"math"
	"sort"
)

// Stats summarizes a run of uniform samples.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// Summarize computes mean, population variance and percentiles of xs.
func Summarize(xs []float64) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range xs {
		d := v - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return cp[0]
		}
		if p >= 1 {
			return cp[n-1]
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return cp[i]
		}
		return cp[i]*(1-f) + cp[i+1]*f
	}

	return Stats{
		Count:  n,
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		Min:    cp[0],
		Max:    cp[n-1],
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
	}
}

// Profile draws n uniform samples from e and summarizes them.
// A uniform [0,1) source should give mean ~0.5 and variance ~1/12.
func Profile(e Engine, n int) Stats {
	if n <= 0 {
		return Stats{}
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(e.Float())
	}
	return Summarize(xs)
}
