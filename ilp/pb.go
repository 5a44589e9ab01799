package ilp

import (
	"fmt"
	"math/bits"

	"github.com/crillab/gophersat/solver"
)

// PBSolver is a Solver that translates programs into pseudo-boolean optimization problems,
// solved by gophersat.
// All variables must be bounded.
type PBSolver struct {
	Verbose bool // Makes the underlying solver print its progress on stdout
}

// encoding associates each integer variable with the boolean variables of its binary representation.
type encoding struct {
	bits  [][]int // For each integer variable, the boolean vars of its bits, least significant first
	nbVar int     // Number of boolean vars
}

func encode(p *Program) (*encoding, error) {
	enc := &encoding{bits: make([][]int, p.NbVars)}
	for i, ub := range p.Bounds {
		if ub == Unbounded {
			return nil, fmt.Errorf("%w: variable %d", ErrUnbounded, i)
		}
		enc.bits[i] = make([]int, bits.Len(uint(ub)))
		for k := range enc.bits[i] {
			enc.nbVar++
			enc.bits[i][k] = enc.nbVar
		}
	}
	return enc, nil
}

// constrs returns the PB constraints equivalent to p's bounds and constraints.
func (enc *encoding) constrs(p *Program) ([]solver.PBConstr, error) {
	var res []solver.PBConstr
	for i, vars := range enc.bits {
		if len(vars) == 0 {
			continue
		}
		lits := make([]int, len(vars))
		weights := make([]int, len(vars))
		for k, v := range vars {
			lits[k] = v
			weights[k] = 1 << uint(k)
		}
		// Always added, even when trivially true, so that every var is known to the solver.
		res = append(res, solver.LtEq(lits, weights, p.Bounds[i]))
	}
	for j, c := range p.Constrs {
		var lits, weights []int
		for i, coeff := range c.Coeffs {
			if coeff == 0 {
				continue
			}
			for k, v := range enc.bits[i] {
				lits = append(lits, v)
				weights = append(weights, coeff<<uint(k))
			}
		}
		if len(lits) == 0 {
			if c.Rhs != 0 {
				return nil, fmt.Errorf("%w: constraint %d has no variable but must sum to %d", ErrInfeasible, j, c.Rhs)
			}
			continue
		}
		res = append(res, solver.Eq(lits, weights, c.Rhs)...)
	}
	return res, nil
}

// costFunc returns the literals and weights of the objective function.
// If the objective is null, every assignment is optimal: all bits get a weight of 1 so that
// the solver still has something to minimize.
func (enc *encoding) costFunc(p *Program) ([]solver.Lit, []int) {
	var (
		lits    []solver.Lit
		weights []int
	)
	null := true
	for _, c := range p.Objective {
		if c != 0 {
			null = false
			break
		}
	}
	for i, vars := range enc.bits {
		for k, v := range vars {
			w := p.Objective[i] << uint(k)
			if null {
				w = 1
			}
			if w == 0 {
				continue
			}
			lits = append(lits, solver.IntToLit(int32(v)))
			weights = append(weights, w)
		}
	}
	return lits, weights
}

// values decodes the boolean model into integer values.
func (enc *encoding) values(model []bool) []int {
	res := make([]int, len(enc.bits))
	for i, vars := range enc.bits {
		for k, v := range vars {
			if model[v-1] {
				res[i] |= 1 << uint(k)
			}
		}
	}
	return res
}

// Solve implements Solver.
func (s PBSolver) Solve(p *Program) (Solution, error) {
	enc, err := encode(p)
	if err != nil {
		return Solution{}, err
	}
	constrs, err := enc.constrs(p)
	if err != nil {
		return Solution{}, err
	}
	if enc.nbVar == 0 { // All variables are 0: nothing to solve
		values := make([]int, p.NbVars)
		if err := p.Check(values); err != nil {
			return Solution{}, fmt.Errorf("%w: %v", ErrInfeasible, err)
		}
		return Solution{Values: values, Cost: 0}, nil
	}
	prob := solver.ParsePBConstrs(constrs)
	prob.SetCostFunc(enc.costFunc(p))
	pbs := solver.New(prob)
	pbs.Verbose = s.Verbose
	if cost := pbs.Minimize(); cost == -1 {
		return Solution{}, ErrInfeasible
	}
	values := enc.values(pbs.Model())
	if err := p.Check(values); err != nil {
		return Solution{}, fmt.Errorf("invalid model returned by solver: %v", err)
	}
	return Solution{Values: values, Cost: p.Cost(values)}, nil
}
