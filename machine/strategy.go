package machine

import "fmt"

// A Strategy selects how a machine is solved.
type Strategy byte

const (
	// LightsStrategy finds the fewest presses reaching the target light pattern (breadth-first search).
	LightsStrategy = Strategy(iota)
	// CountersStrategy finds the fewest presses reaching the target joltage (breadth-first search with overshoot pruning).
	CountersStrategy
	// IntegerStrategy finds the fewest presses reaching the target joltage by solving an integer program.
	IntegerStrategy
	// JointStrategy finds the fewest presses reaching both the target lights and the target joltage.
	JointStrategy
)

var strategyNames = [...]string{
	LightsStrategy:   "lights",
	CountersStrategy: "counters",
	IntegerStrategy:  "integer",
	JointStrategy:    "joint",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", byte(s))
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if int(s) >= len(strategyNames) {
		return nil, fmt.Errorf("invalid strategy %d", byte(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	res, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = res
	return nil
}
