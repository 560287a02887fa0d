package random

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidArgument = errors.New("invalid argument")

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Errorf("%w: probability %v must be finite", ErrInvalidArgument, p)
	}
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: probability %v must be in [0,1]", ErrInvalidArgument, p)
	}
	return nil
}

func validateRange(min, max float32) error {
	a, b := float64(min), float64(max)
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return fmt.Errorf("%w: range bounds must be finite, got [%v, %v]", ErrInvalidArgument, min, max)
	}
	if min > max {
		return fmt.Errorf("%w: reversed range [%v, %v]", ErrInvalidArgument, min, max)
	}
	return nil
}

func validateRangeInt(min, max int32) error {
	if min > max {
		return fmt.Errorf("%w: reversed range [%d, %d]", ErrInvalidArgument, min, max)
	}
	return nil
}
