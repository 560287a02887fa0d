// Package random provides interchangeable pseudo-random engines for games.
//
// FastRandom is a multiplicative congruential generator tuned for speed.
// SystemRandom wraps math/rand/v2 for better statistical quality. Both
// satisfy Engine, so call sites can swap one for the other.
//
// Engines are not safe for concurrent use. Use one engine per goroutine or
// guard a shared engine with a lock.
package random

import (
	"errors"
	"fmt"

	"github.com/xtding233/gamerand/internal/seed"
)

// Vector2 is a 2D point.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a 3D point.
type Vector3 struct {
	X, Y, Z float32
}

// Quaternion is a rotation shaped like a unit quaternion. Values produced by
// this package are not normalized.
type Quaternion struct {
	X, Y, Z, W float32
}

// Engine is the capability contract shared by all generators.
type Engine interface {
	// NewSeed reseeds from the engine's seed source (crypto by default).
	// On error the engine state is left unchanged.
	NewSeed() error
	// Seed reseeds deterministically.
	Seed(s int32)

	// Float returns a uniform sample in [0, 1]. Narrowing to float32 can
	// round the largest samples up to exactly 1.
	Float() float32
	// Int returns a value spanning the int32 range, [MinInt32, MaxInt32).
	Int() int32
	// Range returns a value in [min, max].
	Range(min, max float32) (float32, error)
	// RangeInt returns a value in [min, max); min when min == max.
	RangeInt(min, max int32) (int32, error)

	// Vector2 returns a point with both components in the int32 range.
	Vector2() Vector2
	// InsideCircle scales independent per-axis samples by radius, so each
	// component lies in [0, radius] (mirrored to [radius, 0] when negative).
	// Points cover the bounding square, not the disc area.
	InsideCircle(radius float32) Vector2
	// Vector3 returns a point with all components in the int32 range.
	Vector3() Vector3
	// InsideSphere is the 3D analogue of InsideCircle.
	InsideSphere(radius float32) Vector3

	// Rotation builds a rotation from InsideSphere(1) and a uniform W.
	Rotation() Quaternion
	// RotationOnSurface uses p as X, Y, Z and a uniform sample as W.
	RotationOnSurface(p Vector3) Quaternion
}

// Kind selects an engine implementation.
type Kind string

const (
	KindFast   Kind = "fast"
	KindSystem Kind = "system"
)

var ErrUnknownEngine = errors.New("unknown engine kind")

// New builds a deterministically seeded engine of the given kind.
func New(kind Kind, s int32) (Engine, error) {
	switch kind {
	case "", KindFast:
		return NewSeededFastRandom(s), nil
	case KindSystem:
		return NewSeededSystemRandom(s), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
	}
}

// NewFromSource builds an engine of the given kind seeded by src. src is
// kept and used again by NewSeed.
func NewFromSource(kind Kind, src seed.Func) (Engine, error) {
	if src == nil {
		src = seed.Crypto
	}
	var e Engine
	switch kind {
	case "", KindFast:
		e = &FastRandom{SeedFunc: src}
	case KindSystem:
		e = &SystemRandom{SeedFunc: src}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
	}
	if err := e.NewSeed(); err != nil {
		return nil, fmt.Errorf("seed %s engine: %w", kind, err)
	}
	return e, nil
}
