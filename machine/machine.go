// Package machine describes toggle-button machines: a target light pattern,
// a list of buttons, and a target joltage vector.
//
// Each button, when pressed, toggles a fixed set of indicator lights and adds 1 to a fixed set of counters.
// Machines are built once, validated, and never modified afterwards.
package machine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a machine description is inconsistent,
// e.g when a button does not have the same dimensions as its machine.
var ErrMalformed = errors.New("malformed machine")

// A Button is the effect of one press: lights to toggle and counter increments.
type Button struct {
	Toggles    Lights // Lights flipped by a press
	Increments []int  // Value added to each counter by a press
}

// NewButton returns the button wired to the given indices.
// A press toggles each wired light and adds 1 to each wired counter.
// Indices that are valid lights but not valid counters (or conversely) only affect the dimension they exist in,
// but each index must exist in at least one of them.
func NewButton(wiring []int, nbLights, nbCounters int) (Button, error) {
	if nbLights > MaxLights {
		return Button{}, fmt.Errorf("%w: %d lights, at most %d supported", ErrMalformed, nbLights, MaxLights)
	}
	b := Button{Toggles: Off(nbLights), Increments: make([]int, nbCounters)}
	seen := make(map[int]bool, len(wiring))
	for _, idx := range wiring {
		if idx < 0 || (idx >= nbLights && idx >= nbCounters) {
			return Button{}, fmt.Errorf("%w: wiring index %d out of range", ErrMalformed, idx)
		}
		if seen[idx] {
			return Button{}, fmt.Errorf("%w: wiring index %d appears twice", ErrMalformed, idx)
		}
		seen[idx] = true
		if idx < nbLights {
			b.Toggles.bits |= 1 << uint(idx)
		}
		if idx < nbCounters {
			b.Increments[idx] = 1
		}
	}
	return b, nil
}

// CounterButton returns a button that only increments counters, as described by incs.
// Its light component is empty.
func CounterButton(incs ...int) Button {
	return Button{Increments: incs}
}

// LightButton returns a button that only toggles lights, as described by toggles.
// Its counter component is empty.
func LightButton(toggles Lights) Button {
	return Button{Toggles: toggles}
}

func (b Button) String() string {
	var wires []string
	for i := 0; i < b.Toggles.Len() || i < len(b.Increments); i++ {
		if (i < b.Toggles.Len() && b.Toggles.On(i)) || (i < len(b.Increments) && b.Increments[i] != 0) {
			wires = append(wires, strconv.Itoa(i))
		}
	}
	return "(" + strings.Join(wires, ",") + ")"
}

// A Machine is a target light pattern, an ordered list of buttons and a target joltage vector.
// The index of a button in Buttons is its label.
type Machine struct {
	Lights  Lights   // Target light pattern
	Buttons []Button // Available buttons
	Joltage Counters // Target counter values
}

// New returns a machine after checking that all its components have consistent dimensions.
// It takes ownership of buttons and joltage.
func New(lights Lights, buttons []Button, joltage Counters) (*Machine, error) {
	m := &Machine{Lights: lights, Buttons: buttons, Joltage: joltage}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate returns an error wrapping ErrMalformed if m's components have inconsistent dimensions
// or negative values.
func (m *Machine) Validate() error {
	if len(m.Buttons) == 0 {
		return fmt.Errorf("%w: no button", ErrMalformed)
	}
	for i, v := range m.Joltage {
		if v < 0 {
			return fmt.Errorf("%w: negative joltage %d for counter %d", ErrMalformed, v, i)
		}
	}
	for i, b := range m.Buttons {
		if err := CheckButton(b, m.Lights.Len(), len(m.Joltage)); err != nil {
			return fmt.Errorf("button %d: %w", i, err)
		}
	}
	return nil
}

// CheckButton returns an error wrapping ErrMalformed if b does not have the given dimensions
// or has a negative increment.
func CheckButton(b Button, nbLights, nbCounters int) error {
	if b.Toggles.Len() != nbLights {
		return fmt.Errorf("%w: %d lights, expected %d", ErrMalformed, b.Toggles.Len(), nbLights)
	}
	if len(b.Increments) != nbCounters {
		return fmt.Errorf("%w: %d counters, expected %d", ErrMalformed, len(b.Increments), nbCounters)
	}
	for i, inc := range b.Increments {
		if inc < 0 {
			return fmt.Errorf("%w: negative increment %d for counter %d", ErrMalformed, inc, i)
		}
	}
	return nil
}

func (m *Machine) String() string {
	parts := make([]string, 0, len(m.Buttons)+2)
	parts = append(parts, "["+m.Lights.String()+"]")
	for _, b := range m.Buttons {
		parts = append(parts, b.String())
	}
	parts = append(parts, m.Joltage.String())
	return strings.Join(parts, " ")
}
