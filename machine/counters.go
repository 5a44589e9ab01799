package machine

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// Counters is a vector of non-negative counter values, one per joltage requirement.
// Counters never decrease when a button is pressed.
type Counters []int

// Zero returns a vector of n counters, all set to 0.
func Zero(n int) Counters {
	return make(Counters, n)
}

// Press returns the vector obtained after pressing b once. c is not modified.
func (c Counters) Press(b Button) Counters {
	res := make(Counters, len(c))
	for i, v := range c {
		res[i] = v + b.Increments[i]
	}
	return res
}

// Exceeds returns true iff at least one counter of c is greater than the matching counter in target.
// Once a counter overshoots its target, no sequence of presses can bring it back.
func (c Counters) Exceeds(target Counters) bool {
	for i, v := range c {
		if v > target[i] {
			return true
		}
	}
	return false
}

// Equal returns true iff both vectors have the same length and values.
func (c Counters) Equal(other Counters) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Sum returns the sum of all counters.
func (c Counters) Sum() int {
	res := 0
	for _, v := range c {
		res += v
	}
	return res
}

// Key returns a packed representation of c, suitable as a map key.
// Two vectors have the same key iff they are equal.
func (c Counters) Key() string {
	buf := make([]byte, 0, len(c)*2)
	for _, v := range c {
		buf = binary.AppendUvarint(buf, uint64(v))
	}
	return string(buf)
}

func (c Counters) String() string {
	strs := make([]string, len(c))
	for i, v := range c {
		strs[i] = strconv.Itoa(v)
	}
	return "{" + strings.Join(strs, ",") + "}"
}
