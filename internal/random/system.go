package random

import (
	"math"
	"math/rand/v2"

	"github.com/xtding233/gamerand/internal/seed"
)

// SystemRandom wraps a math/rand/v2 PCG generator behind Engine. It is
// slower than FastRandom but has a far longer period.
type SystemRandom struct {
	r        *rand.Rand
	SeedFunc seed.Func // used by NewSeed; nil means seed.Crypto
}

// NewSystemRandom returns a SystemRandom seeded from the crypto source.
func NewSystemRandom() (*SystemRandom, error) {
	s := &SystemRandom{}
	if err := s.NewSeed(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSeededSystemRandom returns a SystemRandom with a fixed seed.
func NewSeededSystemRandom(v int32) *SystemRandom {
	s := &SystemRandom{}
	s.Seed(v)
	return s
}

func (s *SystemRandom) NewSeed() error {
	src := s.SeedFunc
	if src == nil {
		src = seed.Crypto
	}
	v, err := src()
	if err != nil {
		return err
	}
	s.Seed(v)
	return nil
}

func (s *SystemRandom) Seed(v int32) {
	s.r = rand.New(rand.NewPCG(uint64(int64(v)), 0))
}

func (s *SystemRandom) rng() *rand.Rand {
	if s.r == nil {
		s.Seed(0)
	}
	return s.r
}

func (s *SystemRandom) sample() float64 {
	return s.rng().Float64()
}

func (s *SystemRandom) Float() float32 {
	return float32(s.sample())
}

func (s *SystemRandom) Int() int32 {
	return s.intN(math.MinInt32, math.MaxInt32)
}

func (s *SystemRandom) Range(min, max float32) (float32, error) {
	if err := validateRange(min, max); err != nil {
		return 0, err
	}
	return remap(s.sample, min, max), nil
}

func (s *SystemRandom) RangeInt(min, max int32) (int32, error) {
	if err := validateRangeInt(min, max); err != nil {
		return 0, err
	}
	return s.intN(min, max), nil
}

// intN delegates to the wrapped source's bounded integer primitive.
func (s *SystemRandom) intN(min, max int32) int32 {
	span := int64(max) - int64(min)
	if span <= 0 {
		s.rng().Uint64()
		return min
	}
	return int32(int64(min) + s.rng().Int64N(span))
}

func (s *SystemRandom) Vector2() Vector2 { return vector2(s.sample) }

func (s *SystemRandom) InsideCircle(radius float32) Vector2 { return insideCircle(s.sample, radius) }

func (s *SystemRandom) Vector3() Vector3 { return vector3(s.sample) }

func (s *SystemRandom) InsideSphere(radius float32) Vector3 { return insideSphere(s.sample, radius) }

func (s *SystemRandom) Rotation() Quaternion { return rotation(s.sample) }

func (s *SystemRandom) RotationOnSurface(p Vector3) Quaternion { return onSurface(s.sample, p) }
