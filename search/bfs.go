package search

import (
	"errors"

	"github.com/crillab/gophermachine/machine"
)

var (
	// ErrUnreachable is returned when the target cannot be reached with the given buttons.
	ErrUnreachable = errors.New("target unreachable")
	// ErrAbandoned is returned when the search visited more states than allowed.
	ErrAbandoned = errors.New("search abandoned: too many states")
)

// A Result is the outcome of a successful search.
type Result struct {
	Presses  int   // Minimum number of presses
	Sequence []int // Indices of the pressed buttons, in order; len(Sequence) == Presses
	Explored int   // Number of states expanded before the target was found
}

// An Option changes the behavior of a search.
type Option func(*options)

type options struct {
	maxStates int
	enqueued  func(state interface{}) // Called each time a state is enqueued; for tests
}

// WithMaxStates bounds the number of distinct states a search may visit.
// A value <= 0 means no bound.
func WithMaxStates(n int) Option {
	return func(o *options) { o.maxStates = n }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// A node is a state in the search tree.
type node[S any] struct {
	state  S
	parent int // Index of the parent node, -1 for the root
	button int // Button pressed to go from parent to this node
	depth  int
}

// space describes a state space explored by bfs.
// key must return equal values for equal states.
// next returns the state reached by pressing b from s, or false if that state must be pruned.
type space[S any, K comparable] struct {
	key  func(s S) K
	done func(s S) bool
	next func(s S, b machine.Button) (S, bool)
}

// bfs explores sp from start, breadth first, until a state satisfying sp.done is dequeued.
func bfs[S any, K comparable](sp space[S, K], start S, buttons []machine.Button, o options) (Result, error) {
	nodes := []node[S]{{state: start, parent: -1, button: -1}} // nodes[head:] is the queue
	visited := map[K]struct{}{sp.key(start): {}}
	for head := 0; head < len(nodes); head++ {
		cur := nodes[head]
		if sp.done(cur.state) {
			return Result{Presses: cur.depth, Sequence: sequence(nodes, head), Explored: head}, nil
		}
		for i, b := range buttons {
			s, ok := sp.next(cur.state, b)
			if !ok {
				continue
			}
			k := sp.key(s)
			if _, ok := visited[k]; ok {
				continue
			}
			if o.maxStates > 0 && len(visited) >= o.maxStates {
				return Result{Explored: head}, ErrAbandoned
			}
			visited[k] = struct{}{}
			nodes = append(nodes, node[S]{state: s, parent: head, button: i, depth: cur.depth + 1})
			if o.enqueued != nil {
				o.enqueued(s)
			}
		}
	}
	return Result{Explored: len(nodes)}, ErrUnreachable
}

// sequence returns the buttons pressed to reach nodes[idx] from the root.
func sequence[S any](nodes []node[S], idx int) []int {
	res := make([]int, nodes[idx].depth)
	for i := len(res) - 1; i >= 0; i-- {
		res[i] = nodes[idx].button
		idx = nodes[idx].parent
	}
	return res
}
