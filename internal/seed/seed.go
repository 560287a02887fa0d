// Package seed produces 32-bit seeds for the random engines.
//
// Three strategies are offered: wall-clock time, a tick/UUID mix and the
// operating system's cryptographic source. Crypto is the default used by the
// engines whenever they are constructed without an explicit seed.
package seed

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrEntropyUnavailable is returned when the crypto source cannot supply bytes.
var ErrEntropyUnavailable = errors.New("entropy source unavailable")

// Func produces one seed. Engines consume seeds through this boundary only.
type Func func() (int32, error)

// process-wide crypto reader, created on first use
var cryptoReader = sync.OnceValue(func() io.Reader { return cryptoRand.Reader })

var processStart = time.Now()

// Source bundles the external collaborators used to derive seeds.
// Nil fields fall back to the process defaults.
type Source struct {
	Reader io.Reader        // crypto byte source
	Now    func() time.Time // wall clock
	NewID  func() uuid.UUID // unique identifier generator
	Ticks  func() int64     // monotonic milliseconds since process start
}

// Default is the source behind the package-level functions.
var Default = Source{}

func (s Source) reader() io.Reader {
	if s.Reader != nil {
		return s.Reader
	}
	return cryptoReader()
}

func (s Source) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s Source) newID() uuid.UUID {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.New()
}

func (s Source) ticks() int64 {
	if s.Ticks != nil {
		return s.Ticks()
	}
	return time.Since(processStart).Milliseconds()
}

// Time derives a seed from the current UTC instant. Successive calls within
// the same clock tick return the same value.
func (s Source) Time() int32 {
	return fold64(uint64(s.now().UTC().UnixNano()))
}

// Identifier mixes the process tick counter with the hash of a fresh UUID.
func (s Source) Identifier() int32 {
	id := s.newID()
	h := fnv.New32a()
	_, _ = h.Write(id[:])
	return int32(uint32(s.ticks())) ^ int32(h.Sum32())
}

// Crypto reads 4 bytes from the crypto source, little-endian.
func (s Source) Crypto() (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(s.reader(), buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

// Time derives a seed from the current UTC instant using the default source.
func Time() int32 { return Default.Time() }

// Identifier derives a seed from ticks and a UUID using the default source.
func Identifier() int32 { return Default.Identifier() }

// Crypto draws a seed from the OS cryptographic source.
func Crypto() (int32, error) { return Default.Crypto() }

// WithFallback returns a Func that tries primary first and, only if it
// fails, logs the failure and uses fallback.
func WithFallback(primary, fallback Func) Func {
	return func() (int32, error) {
		v, err := primary()
		if err == nil {
			return v, nil
		}
		log.Printf("seed: primary source failed, using fallback: %v", err)
		return fallback()
	}
}

// fold64 xors the two halves of a 64-bit value.
func fold64(v uint64) int32 {
	return int32(uint32(v)) ^ int32(uint32(v>>32))
}
