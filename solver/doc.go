/*
Package solver implements a CDCL (conflict-driven clause learning) solver
for propositional satisfiability problems in conjunctive normal form.

A problem is described by its number of variables and its clauses, each a
list of non-zero signed integers:

	clauses := [][]int{
		{1, 2, 3},
		{-1, -2},
		{-2, -3},
		{-1, -3},
	}
	pb, err := solver.NewProblem(3, clauses)

Parsing textual formats such as DIMACS CNF is the job of other packages;
the solver only accepts the structured form above, and rejects malformed
input (empty clause, zero literal, variable out of range) before any
search starts.

Solving creates a solver instance owning all search state, then runs it:

	s := solver.New(pb)
	res := s.Solve(context.Background())

The result is a definitive classification: Sat with a model binding every
variable, Unsat, or Aborted when the context is cancelled first.
Cancellation is cooperative and checked after each conflict and restart.

Restart and clause-database-reduction policies can be tuned through
Options; they affect performance, never the verdict:

	opts := solver.DefaultOptions()
	opts.RestartPolicy = solver.RestartLuby
	s, err := solver.NewWithOptions(pb, opts)
*/
package solver
