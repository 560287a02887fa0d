package server

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/xtding233/gamerand/internal/random"
)

var ErrUnknownKind = errors.New("unknown sample kind")

// Sample kinds accepted by the HTTP and gRPC transports.
const (
	KindFloat    = "float"
	KindInt      = "int"
	KindRange    = "range"
	KindRangeInt = "range_int"
	KindCircle   = "circle"
	KindSphere   = "sphere"
	KindVector2  = "vector2"
	KindVector3  = "vector3"
	KindRotation = "rotation"
	KindSurface  = "surface"
	KindChance   = "chance"
	KindStats    = "stats"
)

const defaultProfile = 10000

// Request carries the parameters of one sample call. Nil pointers mean
// "not provided".
type Request struct {
	Kind    string
	Min     *float64
	Max     *float64
	Radius  *float64
	P       *float64
	N       *int
	X, Y, Z float64 // surface point for KindSurface
}

// Sampler serializes access to one engine shared by all transports.
type Sampler struct {
	mu         sync.Mutex
	engine     random.Engine
	maxProfile int
	metrics    *Metrics
}

// NewSampler wraps engine. metrics may be nil.
func NewSampler(engine random.Engine, maxProfile int, metrics *Metrics) *Sampler {
	if maxProfile <= 0 {
		maxProfile = defaultProfile
	}
	return &Sampler{engine: engine, maxProfile: maxProfile, metrics: metrics}
}

// Swap replaces the served engine, e.g. after a config reload.
func (s *Sampler) Swap(engine random.Engine) {
	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()
	s.countReseed("reload")
}

// Reseed reseeds the engine with v, or from its seed source if v is nil.
func (s *Sampler) Reseed(v *int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v != nil {
		s.engine.Seed(*v)
	} else if err := s.engine.NewSeed(); err != nil {
		return err
	}
	s.countReseed("request")
	return nil
}

func (s *Sampler) countReseed(cause string) {
	if s.metrics != nil {
		s.metrics.Reseeds.WithLabelValues(cause).Inc()
	}
}

// Sample runs one request and returns a JSON-friendly result. Errors wrap
// random.ErrInvalidArgument or ErrUnknownKind.
func (s *Sampler) Sample(transport string, req Request) (map[string]any, error) {
	out, err := s.sample(req)
	if s.metrics != nil {
		kind := req.Kind
		if errors.Is(err, ErrUnknownKind) {
			// keep label cardinality bounded
			kind = "unknown"
		}
		if err != nil {
			s.metrics.Rejected.WithLabelValues(kind, transport).Inc()
		} else {
			s.metrics.Samples.WithLabelValues(kind, transport).Inc()
		}
	}
	return out, err
}

func (s *Sampler) sample(req Request) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.engine

	switch req.Kind {
	case KindFloat:
		return value(float64(e.Float())), nil
	case KindInt:
		return value(float64(e.Int())), nil
	case KindRange:
		lo, hi, err := bounds(req)
		if err != nil {
			return nil, err
		}
		v, err := e.Range(float32(lo), float32(hi))
		if err != nil {
			return nil, err
		}
		return value(float64(v)), nil
	case KindRangeInt:
		lo, hi, err := bounds(req)
		if err != nil {
			return nil, err
		}
		ilo, err := toInt32("min", lo)
		if err != nil {
			return nil, err
		}
		ihi, err := toInt32("max", hi)
		if err != nil {
			return nil, err
		}
		v, err := e.RangeInt(ilo, ihi)
		if err != nil {
			return nil, err
		}
		return value(float64(v)), nil
	case KindCircle:
		r, err := radius(req)
		if err != nil {
			return nil, err
		}
		return vec2(e.InsideCircle(r)), nil
	case KindSphere:
		r, err := radius(req)
		if err != nil {
			return nil, err
		}
		return vec3(e.InsideSphere(r)), nil
	case KindVector2:
		return vec2(e.Vector2()), nil
	case KindVector3:
		return vec3(e.Vector3()), nil
	case KindRotation:
		return quat(e.Rotation()), nil
	case KindSurface:
		var p random.Vector3
		var err error
		if p.X, err = toFloat32("x", req.X); err != nil {
			return nil, err
		}
		if p.Y, err = toFloat32("y", req.Y); err != nil {
			return nil, err
		}
		if p.Z, err = toFloat32("z", req.Z); err != nil {
			return nil, err
		}
		return quat(e.RotationOnSurface(p)), nil
	case KindChance:
		if req.P == nil {
			return nil, fmt.Errorf("%w: missing p", random.ErrInvalidArgument)
		}
		hit, err := random.Chance(e, *req.P)
		if err != nil {
			return nil, err
		}
		return map[string]any{"hit": hit}, nil
	case KindStats:
		n := defaultProfile
		if req.N != nil {
			n = *req.N
		}
		if n <= 0 || n > s.maxProfile {
			return nil, fmt.Errorf("%w: n must be in [1, %d]", random.ErrInvalidArgument, s.maxProfile)
		}
		return statsMap(random.Profile(e, n)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
}

func bounds(req Request) (float64, float64, error) {
	if req.Min == nil || req.Max == nil {
		return 0, 0, fmt.Errorf("%w: min and max are required", random.ErrInvalidArgument)
	}
	return *req.Min, *req.Max, nil
}

func toInt32(name string, v float64) (int32, error) {
	if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s=%v is not an int32", random.ErrInvalidArgument, name, v)
	}
	return int32(v), nil
}

func radius(req Request) (float32, error) {
	if req.Radius == nil {
		return 1, nil
	}
	r, err := toFloat32("radius", *req.Radius)
	if err != nil {
		return 0, err
	}
	if r < 0 {
		return 0, fmt.Errorf("%w: radius must be >= 0", random.ErrInvalidArgument)
	}
	return r, nil
}

// toFloat32 narrows v, rejecting values that are not finite as float32.
func toFloat32(name string, v float64) (float32, error) {
	f := float32(v)
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return 0, fmt.Errorf("%w: %s=%v is not a finite float32", random.ErrInvalidArgument, name, v)
	}
	return f, nil
}

func value(v float64) map[string]any { return map[string]any{"value": v} }

func vec2(v random.Vector2) map[string]any {
	return map[string]any{"x": float64(v.X), "y": float64(v.Y)}
}

func vec3(v random.Vector3) map[string]any {
	return map[string]any{"x": float64(v.X), "y": float64(v.Y), "z": float64(v.Z)}
}

func quat(q random.Quaternion) map[string]any {
	return map[string]any{"x": float64(q.X), "y": float64(q.Y), "z": float64(q.Z), "w": float64(q.W)}
}

func statsMap(st random.Stats) map[string]any {
	return map[string]any{
		"count":  float64(st.Count),
		"mean":   st.Mean,
		"var":    st.Var,
		"stddev": st.StdDev,
		"min":    st.Min,
		"max":    st.Max,
		"p50":    st.P50,
		"p90":    st.P90,
		"p99":    st.P99,
	}
}
