package search

import (
	"fmt"

	"github.com/crillab/gophermachine/machine"
)

// ShortestCounterPresses returns the minimum number of presses needed for all counters, starting from 0,
// to reach exactly the target values.
// Buttons may be pressed any number of times.
// If the target cannot be reached, ErrUnreachable is returned.
func ShortestCounterPresses(target machine.Counters, buttons []machine.Button, opts ...Option) (Result, error) {
	if err := checkCounters(target, buttons); err != nil {
		return Result{}, err
	}
	sp := space[machine.Counters, string]{
		key:  machine.Counters.Key,
		done: target.Equal,
		next: counterSuccessor(target),
	}
	return bfs(sp, machine.Zero(len(target)), buttons, newOptions(opts))
}

// joint is a state made of both lights and counters.
type joint struct {
	lights   machine.Lights
	counters machine.Counters
}

type jointKey struct {
	lights   machine.Lights
	counters string
}

// ShortestJointPresses returns the minimum number of presses needed to go from the start pattern to the target one
// while, at the same time, bringing all counters from 0 to exactly the target values.
// If both targets cannot be reached by the same sequence, ErrUnreachable is returned.
func ShortestJointPresses(targetLights machine.Lights, targetCounters machine.Counters, start machine.Lights, buttons []machine.Button, opts ...Option) (Result, error) {
	if targetLights.Len() != start.Len() {
		return Result{}, fmt.Errorf("%w: target has %d lights, start has %d", machine.ErrMalformed, targetLights.Len(), start.Len())
	}
	if err := checkCounters(targetCounters, buttons); err != nil {
		return Result{}, err
	}
	for i, b := range buttons {
		if b.Toggles.Len() != targetLights.Len() {
			return Result{}, fmt.Errorf("%w: button %d has %d lights, expected %d", machine.ErrMalformed, i, b.Toggles.Len(), targetLights.Len())
		}
	}
	nextCounters := counterSuccessor(targetCounters)
	sp := space[joint, jointKey]{
		key: func(s joint) jointKey { return jointKey{lights: s.lights, counters: s.counters.Key()} },
		done: func(s joint) bool {
			return s.lights == targetLights && s.counters.Equal(targetCounters)
		},
		next: func(s joint, b machine.Button) (joint, bool) {
			counters, ok := nextCounters(s.counters, b)
			return joint{lights: s.lights.Toggle(b.Toggles), counters: counters}, ok
		},
	}
	return bfs(sp, joint{lights: start, counters: machine.Zero(len(targetCounters))}, buttons, newOptions(opts))
}

// counterSuccessor returns a successor function that presses a button and prunes any vector
// overshooting target.
func counterSuccessor(target machine.Counters) func(machine.Counters, machine.Button) (machine.Counters, bool) {
	return func(c machine.Counters, b machine.Button) (machine.Counters, bool) {
		next := c.Press(b)
		if next.Exceeds(target) {
			return nil, false
		}
		return next, true
	}
}

func checkCounters(target machine.Counters, buttons []machine.Button) error {
	if len(buttons) == 0 {
		return fmt.Errorf("%w: no button", machine.ErrMalformed)
	}
	for j, v := range target {
		if v < 0 {
			return fmt.Errorf("%w: negative target %d for counter %d", machine.ErrMalformed, v, j)
		}
	}
	for i, b := range buttons {
		if len(b.Increments) != len(target) {
			return fmt.Errorf("%w: button %d has %d counters, expected %d", machine.ErrMalformed, i, len(b.Increments), len(target))
		}
		for j, inc := range b.Increments {
			if inc < 0 {
				return fmt.Errorf("%w: button %d has negative increment for counter %d", machine.ErrMalformed, i, j)
			}
		}
	}
	return nil
}
