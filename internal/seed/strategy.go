package seed

import (
	"errors"
	"fmt"
)

// Strategy names a seed derivation method.
type Strategy string

const (
	StrategyCrypto     Strategy = "crypto"
	StrategyTime       Strategy = "time"
	StrategyIdentifier Strategy = "identifier"
)

var ErrUnknownStrategy = errors.New("unknown seed strategy")

// Fixed returns a Func that always yields v.
func Fixed(v int32) Func {
	return func() (int32, error) { return v, nil }
}

// ByName resolves a strategy against src. An empty name means crypto.
func (src Source) ByName(name Strategy) (Func, error) {
	switch name {
	case "", StrategyCrypto:
		return src.Crypto, nil
	case StrategyTime:
		return func() (int32, error) { return src.Time(), nil }, nil
	case StrategyIdentifier:
		return func() (int32, error) { return src.Identifier(), nil }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// ByName resolves a strategy against the default source.
func ByName(name Strategy) (Func, error) { return Default.ByName(name) }
