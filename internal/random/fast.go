package random

import (
	"math"

	"github.com/xtding233/gamerand/internal/seed"
)

const (
	modulus           uint64 = 2147483647 // 2^31 - 1
	multiplier        uint64 = 1132489760
	modulusReciprocal        = 1.0 / float64(modulus)
)

// FastRandom is a multiplicative congruential generator over the Mersenne
// prime 2^31-1. The multiplier is a primitive root, so every nonzero state
// is visited before the sequence repeats. Not suitable for cryptography.
type FastRandom struct {
	state    uint64    // in [1, modulus-1] once seeded
	SeedFunc seed.Func // used by NewSeed; nil means seed.Crypto
}

// NewFastRandom returns a FastRandom seeded from the crypto source.
func NewFastRandom() (*FastRandom, error) {
	f := &FastRandom{}
	if err := f.NewSeed(); err != nil {
		return nil, err
	}
	return f, nil
}

// NewSeededFastRandom returns a FastRandom with a fixed seed.
func NewSeededFastRandom(s int32) *FastRandom {
	f := &FastRandom{}
	f.Seed(s)
	return f
}

func (f *FastRandom) NewSeed() error {
	src := f.SeedFunc
	if src == nil {
		src = seed.Crypto
	}
	s, err := src()
	if err != nil {
		return err
	}
	f.Seed(s)
	return nil
}

// Seed sets the state to s mod 2^31-1. A zero residue (seed 0, MaxInt32,
// -4) is replaced by 1 since zero is a fixed point of the recurrence.
func (f *FastRandom) Seed(s int32) {
	f.state = seedState(s)
}

func seedState(s int32) uint64 {
	st := uint64(int64(s)) % modulus
	if st == 0 {
		st = 1
	}
	return st
}

// step advances a multiplicative congruential state.
func step(state, mul, mod uint64) uint64 {
	return state * mul % mod
}

func (f *FastRandom) sample() float64 {
	if f.state == 0 {
		// zero value behaves like Seed(0)
		f.state = 1
	}
	ret := float64(f.state) * modulusReciprocal
	f.state = step(f.state, multiplier, modulus)
	return ret
}

func (f *FastRandom) Float() float32 {
	return float32(f.sample())
}

func (f *FastRandom) Int() int32 {
	return remapInt(f.sample, math.MinInt32, math.MaxInt32)
}

func (f *FastRandom) Range(min, max float32) (float32, error) {
	if err := validateRange(min, max); err != nil {
		return 0, err
	}
	return remap(f.sample, min, max), nil
}

func (f *FastRandom) RangeInt(min, max int32) (int32, error) {
	if err := validateRangeInt(min, max); err != nil {
		return 0, err
	}
	return remapInt(f.sample, min, max), nil
}

func (f *FastRandom) Vector2() Vector2 { return vector2(f.sample) }

func (f *FastRandom) InsideCircle(radius float32) Vector2 { return insideCircle(f.sample, radius) }

func (f *FastRandom) Vector3() Vector3 { return vector3(f.sample) }

func (f *FastRandom) InsideSphere(radius float32) Vector3 { return insideSphere(f.sample, radius) }

func (f *FastRandom) Rotation() Quaternion { return rotation(f.sample) }

func (f *FastRandom) RotationOnSurface(p Vector3) Quaternion { return onSurface(f.sample, p) }
