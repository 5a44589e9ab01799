package ilp

import (
	"fmt"

	"github.com/crillab/gophermachine/machine"
)

// Formulate returns the program whose optimal solutions are the fewest presses of buttons
// bringing all counters from 0 to target: one variable per button (its number of presses),
// one constraint per counter, and the total number of presses as objective.
// Light toggles are ignored.
func Formulate(target machine.Counters, buttons []machine.Button) (*Program, error) {
	if len(buttons) == 0 {
		return nil, fmt.Errorf("%w: no button", machine.ErrMalformed)
	}
	for i, b := range buttons {
		if len(b.Increments) != len(target) {
			return nil, fmt.Errorf("%w: button %d has %d counters, expected %d", machine.ErrMalformed, i, len(b.Increments), len(target))
		}
	}
	p := NewProgram(len(buttons))
	ones := make([]int, len(buttons))
	for i := range ones {
		ones[i] = 1
	}
	if err := p.Minimize(ones...); err != nil {
		return nil, err
	}
	coeffs := make([]int, len(buttons))
	for j, t := range target {
		if t < 0 {
			return nil, fmt.Errorf("%w: negative target %d for counter %d", machine.ErrMalformed, t, j)
		}
		for i, b := range buttons {
			if b.Increments[j] < 0 {
				return nil, fmt.Errorf("%w: button %d has negative increment for counter %d", machine.ErrMalformed, i, j)
			}
			coeffs[i] = b.Increments[j]
		}
		if err := p.AddEq(coeffs, t); err != nil {
			return nil, err
		}
	}
	for i, ub := range p.Bounds {
		if ub == Unbounded { // Button has no effect on counters: never worth pressing
			p.Bound(i, 0)
		}
	}
	return p, nil
}

// MinimumPresses returns, for each button, how many times it must be pressed so that all counters go
// from 0 to exactly target with the fewest presses overall.
// The total number of presses is the solution's cost.
// If s is nil, a PBSolver is used.
// If target cannot be reached, ErrInfeasible is returned.
func MinimumPresses(target machine.Counters, buttons []machine.Button, s Solver) (Solution, error) {
	p, err := Formulate(target, buttons)
	if err != nil {
		return Solution{}, err
	}
	if s == nil {
		s = PBSolver{}
	}
	return s.Solve(p)
}
