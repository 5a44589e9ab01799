package ilp

import (
	"errors"
	"fmt"
)

var (
	// ErrInfeasible is returned when no assignment satisfies all the constraints of a program.
	ErrInfeasible = errors.New("infeasible integer program")
	// ErrUnbounded is returned when a variable has no upper bound.
	ErrUnbounded = errors.New("unbounded variable")
)

// Unbounded is the bound of a variable that has no known upper bound.
const Unbounded = -1

// A Constr is a linear equality constraint: the sum of Coeffs[i] * x_i must be exactly Rhs.
type Constr struct {
	Coeffs []int // One coeff per variable
	Rhs    int
}

// A Program is an integer program: minimize the sum of Objective[i] * x_i, with each x_i an integer
// in [0, Bounds[i]], subject to all Constrs.
type Program struct {
	NbVars    int
	Objective []int    // Coefficient of each variable in the function to minimize; all must be >= 0
	Constrs   []Constr // Equality constraints
	Bounds    []int    // Upper bound of each variable, or Unbounded
}

// NewProgram returns a program with nbVars unbounded variables, no constraint, and a null objective.
func NewProgram(nbVars int) *Program {
	p := &Program{
		NbVars:    nbVars,
		Objective: make([]int, nbVars),
		Bounds:    make([]int, nbVars),
	}
	for i := range p.Bounds {
		p.Bounds[i] = Unbounded
	}
	return p
}

// Minimize sets the objective function. There must be as many coeffs as variables.
func (p *Program) Minimize(coeffs ...int) error {
	if len(coeffs) != p.NbVars {
		return fmt.Errorf("objective has %d coeffs, expected %d", len(coeffs), p.NbVars)
	}
	for i, c := range coeffs {
		if c < 0 {
			return fmt.Errorf("negative objective coeff %d for variable %d", c, i)
		}
	}
	copy(p.Objective, coeffs)
	return nil
}

// AddEq adds the constraint sum(coeffs[i] * x_i) == rhs.
// If all coeffs are non-negative, the bounds of the involved variables are tightened accordingly.
func (p *Program) AddEq(coeffs []int, rhs int) error {
	if len(coeffs) != p.NbVars {
		return fmt.Errorf("constraint has %d coeffs, expected %d", len(coeffs), p.NbVars)
	}
	c := Constr{Coeffs: make([]int, len(coeffs)), Rhs: rhs}
	copy(c.Coeffs, coeffs)
	p.Constrs = append(p.Constrs, c)
	for _, coeff := range coeffs {
		if coeff < 0 {
			return nil
		}
	}
	for i, coeff := range coeffs {
		if coeff == 0 {
			continue
		}
		ub := rhs / coeff
		if rhs < 0 {
			ub = 0 // Cannot be satisfied anyway
		}
		p.Bound(i, ub)
	}
	return nil
}

// Bound states that x_i must be at most ub.
// If x_i already had a smaller bound, it is kept.
func (p *Program) Bound(i, ub int) {
	if ub < 0 {
		ub = 0
	}
	if p.Bounds[i] == Unbounded || ub < p.Bounds[i] {
		p.Bounds[i] = ub
	}
}

// Cost returns the value of the objective function for the given assignment.
func (p *Program) Cost(values []int) int {
	res := 0
	for i, v := range values {
		res += p.Objective[i] * v
	}
	return res
}

// Check returns an error if values is not a valid assignment of p.
func (p *Program) Check(values []int) error {
	if len(values) != p.NbVars {
		return fmt.Errorf("%d values for %d variables", len(values), p.NbVars)
	}
	for i, v := range values {
		if v < 0 {
			return fmt.Errorf("variable %d is negative (%d)", i, v)
		}
		if ub := p.Bounds[i]; ub != Unbounded && v > ub {
			return fmt.Errorf("variable %d is %d, over its bound %d", i, v, ub)
		}
	}
	for j, c := range p.Constrs {
		sum := 0
		for i, coeff := range c.Coeffs {
			sum += coeff * values[i]
		}
		if sum != c.Rhs {
			return fmt.Errorf("constraint %d: sum is %d, expected %d", j, sum, c.Rhs)
		}
	}
	return nil
}

// A Solution is an optimal assignment of a program.
type Solution struct {
	Values []int // Value of each variable
	Cost   int   // Value of the objective function
}

// A Solver finds optimal solutions to integer programs.
type Solver interface {
	// Solve returns an optimal solution to p, or ErrInfeasible if p has none.
	Solve(p *Program) (Solution, error)
}
