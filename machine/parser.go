package machine

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse parses a single machine description such as
//
//	[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
//
// The bracketed part is the target light pattern, each parenthesized part is the wiring of a button,
// and the braced part is the target joltage.
func Parse(line string) (*Machine, error) {
	var (
		lights    *Lights
		joltage   Counters
		hasJolt   bool
		wirings   [][]int
		nbButtons int
	)
	for _, field := range strings.Fields(line) {
		if len(field) < 2 {
			return nil, fmt.Errorf("%w: invalid field %q", ErrMalformed, field)
		}
		body := field[1 : len(field)-1]
		switch first, last := field[0], field[len(field)-1]; {
		case first == '[' && last == ']':
			if lights != nil {
				return nil, fmt.Errorf("%w: several light patterns", ErrMalformed)
			}
			l, err := ParseLights(body)
			if err != nil {
				return nil, err
			}
			lights = &l
		case first == '(' && last == ')':
			if hasJolt {
				return nil, fmt.Errorf("%w: button %q after joltage", ErrMalformed, field)
			}
			wiring, err := parseInts(body)
			if err != nil {
				return nil, fmt.Errorf("button %d: %w", nbButtons, err)
			}
			wirings = append(wirings, wiring)
			nbButtons++
		case first == '{' && last == '}':
			if hasJolt {
				return nil, fmt.Errorf("%w: several joltage vectors", ErrMalformed)
			}
			vals, err := parseInts(body)
			if err != nil {
				return nil, fmt.Errorf("joltage: %w", err)
			}
			joltage = Counters(vals)
			hasJolt = true
		default:
			return nil, fmt.Errorf("%w: invalid field %q", ErrMalformed, field)
		}
	}
	if lights == nil {
		return nil, fmt.Errorf("%w: no light pattern", ErrMalformed)
	}
	if !hasJolt {
		return nil, fmt.Errorf("%w: no joltage vector", ErrMalformed)
	}
	buttons := make([]Button, len(wirings))
	for i, wiring := range wirings {
		b, err := NewButton(wiring, lights.Len(), len(joltage))
		if err != nil {
			return nil, fmt.Errorf("button %d: %w", i, err)
		}
		buttons[i] = b
	}
	return New(*lights, buttons, joltage)
}

// ParseAll parses one machine per line from r.
// Empty lines and lines starting with '#' are ignored.
func ParseAll(r io.Reader) ([]*Machine, error) {
	scanner := bufio.NewScanner(r)
	var (
		machines []*Machine
		lineNb   int
	)
	for scanner.Scan() {
		lineNb++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		m, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNb, err)
		}
		machines = append(machines, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read machines: %v", err)
	}
	return machines, nil
}

// parseInts parses a comma-separated list of non-negative integers. An empty string is an empty list.
func parseInts(s string) ([]int, error) {
	if s == "" {
		return []int{}, nil
	}
	fields := strings.Split(s, ",")
	res := make([]int, len(fields))
	for i, field := range fields {
		val, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("%w: %q not an int", ErrMalformed, field)
		}
		if val < 0 {
			return nil, fmt.Errorf("%w: negative value %d", ErrMalformed, val)
		}
		res[i] = val
	}
	return res, nil
}
