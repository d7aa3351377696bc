package rabin

import (
	"errors"
	"fmt"
)

const (
	DefaultBase    = 256 // Positional multiplier, one step per 8-bit symbol
	DefaultModulus = 101 // Small prime, keeps the hash space tiny and collisions frequent
	maxParam       = 1 << 31
)

// ErrInvalidParams is returned when a base or modulus is outside the supported range.
var ErrInvalidParams = errors.New("rabin: invalid hash parameters")

// Symbol is the set of element types a window can be made of.
type Symbol interface {
	~byte | ~rune
}

// Params fixes the polynomial hash: hash(s) = Σ s[k]·Base^(len(s)-1-k) mod Modulus.
type Params struct {
	Base    int64
	Modulus int64
}

// DefaultParams returns base 256, modulus 101.
func DefaultParams() Params {
	return Params{Base: DefaultBase, Modulus: DefaultModulus}
}

// Validate keeps every intermediate product of Hash and Roll inside int64.
func (p Params) Validate() error {
	if p.Base < 1 || p.Base > maxParam {
		return fmt.Errorf("%w: base %d must be in [1, %d]", ErrInvalidParams, p.Base, maxParam)
	}
	if p.Modulus < 1 || p.Modulus > maxParam {
		return fmt.Errorf("%w: modulus %d must be in [1, %d]", ErrInvalidParams, p.Modulus, maxParam)
	}
	return nil
}

// Hash computes the polynomial hash of s under p. Horner's rule gives the same
// residue as summing the explicit powers.
func Hash[T Symbol](s []T, p Params) int64 {
	var h int64
	for _, c := range s {
		h = (h*p.Base + int64(c)) % p.Modulus
	}
	return norm(h, p.Modulus)
}

// Pow returns Base^n mod Modulus.
func Pow(n int, p Params) int64 {
	result, sq := int64(1)%p.Modulus, p.Base%p.Modulus
	for ; n > 0; n >>= 1 {
		if n&1 != 0 {
			result = result * sq % p.Modulus
		}
		sq = sq * sq % p.Modulus
	}
	return result
}

// Rolling is the hash of a fixed-length window that slides one symbol at a time.
type Rolling struct {
	params Params
	pow    int64 // Base^(window-1) mod Modulus
	sum    int64
}

// NewRolling hashes the initial window. The window length stays fixed for the
// lifetime of the returned value.
func NewRolling[T Symbol](window []T, p Params) *Rolling {
	pow := int64(0)
	if len(window) > 0 {
		pow = Pow(len(window)-1, p)
	}
	return &Rolling{
		params: p,
		pow:    pow,
		sum:    Hash(window, p),
	}
}

// Sum returns the hash of the current window, always in [0, Modulus).
func (r *Rolling) Sum() int64 {
	return r.sum
}

// Multiplier returns Base^(window-1) mod Modulus.
func (r *Rolling) Multiplier() int64 {
	return r.pow
}

// Roll drops the symbol out from the front of the window and appends in.
func (r *Rolling) Roll(out, in int64) {
	m := r.params.Modulus
	h := (r.sum - out%m*r.pow) % m
	h = (norm(h, m)*r.params.Base + in) % m
	r.sum = norm(h, m)
}

// Go's % keeps the sign of the dividend.
func norm(h, m int64) int64 {
	if h < 0 {
		h += m
	}
	return h
}
