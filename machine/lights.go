package machine

import (
	"fmt"
	"strings"
)

// MaxLights is the maximum number of indicator lights a machine can have.
const MaxLights = 64

// Lights is a light pattern: a fixed-length vector of on/off indicator lights.
// Lights values are comparable and can be used as map keys.
type Lights struct {
	n    uint8  // Number of lights
	bits uint64 // Bit i is set iff light i is on
}

// Off returns a pattern of n lights, all off.
// It panics if n is not in [0, MaxLights].
func Off(n int) Lights {
	if n < 0 || n > MaxLights {
		panic(fmt.Sprintf("invalid number of lights %d", n))
	}
	return Lights{n: uint8(n)}
}

// NewLights returns the pattern described by vals, where vals[i] is true iff light i is on.
func NewLights(vals []bool) (Lights, error) {
	if len(vals) > MaxLights {
		return Lights{}, fmt.Errorf("%w: %d lights, at most %d supported", ErrMalformed, len(vals), MaxLights)
	}
	l := Lights{n: uint8(len(vals))}
	for i, on := range vals {
		if on {
			l.bits |= 1 << uint(i)
		}
	}
	return l, nil
}

// ParseLights parses a pattern such as ".##.", where '#' is a light that is on and '.' one that is off.
func ParseLights(s string) (Lights, error) {
	vals := make([]bool, len(s))
	for i, c := range s {
		switch c {
		case '#':
			vals[i] = true
		case '.':
		default:
			return Lights{}, fmt.Errorf("%w: invalid light %q in %q", ErrMalformed, c, s)
		}
	}
	return NewLights(vals)
}

// Len returns the number of lights in l.
func (l Lights) Len() int {
	return int(l.n)
}

// On returns true iff light i is on.
func (l Lights) On(i int) bool {
	return l.bits&(1<<uint(i)) != 0
}

// Toggle returns the pattern obtained by flipping, in l, every light that is on in mask.
// Toggling twice with the same mask yields l again.
func (l Lights) Toggle(mask Lights) Lights {
	return Lights{n: l.n, bits: l.bits ^ mask.bits}
}

// Equal returns true iff both patterns have the same length and the same lights on.
func (l Lights) Equal(other Lights) bool {
	return l == other
}

// Count returns the number of lights that are on.
func (l Lights) Count() int {
	res := 0
	for b := l.bits; b != 0; b &= b - 1 {
		res++
	}
	return res
}

func (l Lights) String() string {
	var sb strings.Builder
	for i := 0; i < l.Len(); i++ {
		if l.On(i) {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
