/*
Package ilp minimizes linear objectives over bounded non-negative integer variables
subject to linear equality constraints, and uses it to find the fewest button presses
reaching a joltage target.

A Program is built once, then handed to a Solver.
Any type implementing Solver can be used; PBSolver, the default one,
encodes each integer variable in binary over boolean variables and delegates optimization
to gophersat's pseudo-boolean solver.

# Describing a program

To minimize x0 + x1 + x2 subject to x0 + x2 = 3 and x1 + x2 = 2:

	p := ilp.NewProgram(3)
	p.Minimize(1, 1, 1)
	p.AddEq([]int{1, 0, 1}, 3)
	p.AddEq([]int{0, 1, 1}, 2)
	sol, err := ilp.PBSolver{}.Solve(p)

sol.Values is then [1 0 2] and sol.Cost is 3.
If no assignment satisfies all constraints, ErrInfeasible is returned.
*/
package ilp
