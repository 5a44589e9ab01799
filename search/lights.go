package search

import (
	"fmt"

	"github.com/crillab/gophermachine/machine"
)

// ShortestPresses returns the minimum number of presses needed to go from the start pattern to the target one.
// Each press toggles the lights wired to the pressed button.
// If the target cannot be reached, ErrUnreachable is returned.
func ShortestPresses(target, start machine.Lights, buttons []machine.Button, opts ...Option) (Result, error) {
	if target.Len() != start.Len() {
		return Result{}, fmt.Errorf("%w: target has %d lights, start has %d", machine.ErrMalformed, target.Len(), start.Len())
	}
	if len(buttons) == 0 {
		return Result{}, fmt.Errorf("%w: no button", machine.ErrMalformed)
	}
	for i, b := range buttons {
		if b.Toggles.Len() != target.Len() {
			return Result{}, fmt.Errorf("%w: button %d has %d lights, expected %d", machine.ErrMalformed, i, b.Toggles.Len(), target.Len())
		}
	}
	sp := space[machine.Lights, machine.Lights]{
		key:  func(s machine.Lights) machine.Lights { return s },
		done: func(s machine.Lights) bool { return s == target },
		next: func(s machine.Lights, b machine.Button) (machine.Lights, bool) { return s.Toggle(b.Toggles), true },
	}
	return bfs(sp, start, buttons, newOptions(opts))
}
