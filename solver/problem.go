package solver

import (
	"errors"
	"fmt"
)

// ErrMalformedProblem is returned when a problem description is not a valid
// CNF: an explicitly empty clause, a zero literal, or a variable outside
// [1, NbVars]. A malformed problem is rejected before any solving starts.
var ErrMalformedProblem = errors.New("malformed problem")

// A Problem is a validated CNF instance, ready to be solved.
// Load-time simplification has already removed satisfied clauses,
// propagated units and dropped tautologies, so Clauses only contains
// clauses with at least two unassigned literals.
type Problem struct {
	NbVars  int       // Total nb of vars
	Clauses []*Clause // List of non-empty, non-unit clauses
	Status  Status    // Can be trivially Unsat (contradicting units) or Sat (no clause left); Indet otherwise.
	Units   []Lit     // Literals implied at level 0 during the load.
	assigns []int8    // For each var, its inferred binding: 1 true, -1 false, 0 unbound.
}

// NewProblem validates the structured form of a CNF instance and returns
// the equivalent Problem. Clauses are given as lists of non-zero signed
// integers whose magnitude is at most nbVars. A validation failure wraps
// ErrMalformedProblem.
func NewProblem(nbVars int, clauses [][]int) (*Problem, error) {
	if nbVars < 0 {
		return nil, fmt.Errorf("%w: negative variable count %d", ErrMalformedProblem, nbVars)
	}
	pb := &Problem{
		NbVars:  nbVars,
		assigns: make([]int8, nbVars),
	}
	for i, clause := range clauses {
		if len(clause) == 0 {
			return nil, fmt.Errorf("%w: empty clause at index %d", ErrMalformedProblem, i)
		}
		lits, tautology, err := pb.makeLits(clause)
		if err != nil {
			return nil, fmt.Errorf("%w: clause at index %d: %s", ErrMalformedProblem, i, err)
		}
		if tautology {
			continue
		}
		if len(lits) == 1 {
			pb.addUnit(lits[0])
			if pb.Status == Unsat {
				return pb, nil
			}
			continue
		}
		pb.Clauses = append(pb.Clauses, NewClause(lits))
	}
	pb.simplify()
	return pb, nil
}

// makeLits converts a raw clause, removing duplicate literals.
// tautology is true iff the clause contains a literal and its complement,
// making it trivially satisfied.
func (pb *Problem) makeLits(clause []int) (lits []Lit, tautology bool, err error) {
	lits = make([]Lit, 0, len(clause))
	for _, val := range clause {
		if val == 0 {
			return nil, false, errors.New("zero literal")
		}
		if val > pb.NbVars || -val > pb.NbVars {
			return nil, false, fmt.Errorf("literal %d out of range for %d vars", val, pb.NbVars)
		}
		lit := IntToLit(val)
		dup := false
		for _, l := range lits {
			if l == lit {
				dup = true
				break
			}
			if l == lit.Negation() {
				return nil, true, nil
			}
		}
		if !dup {
			lits = append(lits, lit)
		}
	}
	return lits, false, nil
}

// addUnit records a level-0 fact. Two contradicting units make the whole
// problem Unsat.
func (pb *Problem) addUnit(lit Lit) {
	v := lit.Var()
	if lit.IsPositive() {
		if pb.assigns[v] == -1 {
			pb.Status = Unsat
			return
		}
		if pb.assigns[v] == 0 {
			pb.assigns[v] = 1
			pb.Units = append(pb.Units, lit)
		}
	} else {
		if pb.assigns[v] == 1 {
			pb.Status = Unsat
			return
		}
		if pb.assigns[v] == 0 {
			pb.assigns[v] = -1
			pb.Units = append(pb.Units, lit)
		}
	}
}

// simplify runs unit propagation over the clause list until fixpoint:
// satisfied clauses are removed, false literals are stripped, and clauses
// reduced to a single literal become new units.
func (pb *Problem) simplify() {
	if pb.Status == Unsat {
		return
	}
	nbClauses := len(pb.Clauses)
	i := 0
	for i < nbClauses {
		c := pb.Clauses[i]
		nbLits := c.Len()
		clauseSat := false
		j := 0
		for j < nbLits {
			lit := c.Get(j)
			if pb.assigns[lit.Var()] == 0 {
				j++
			} else if (pb.assigns[lit.Var()] == 1) == lit.IsPositive() {
				clauseSat = true
				break
			} else {
				nbLits--
				c.Set(j, c.Get(nbLits))
			}
		}
		if clauseSat {
			nbClauses--
			pb.Clauses[i] = pb.Clauses[nbClauses]
		} else if nbLits == 0 {
			pb.Status = Unsat
			return
		} else if nbLits == 1 {
			pb.addUnit(c.Get(0))
			if pb.Status == Unsat {
				return
			}
			nbClauses--
			pb.Clauses[i] = pb.Clauses[nbClauses]
			i = 0 // Must restart, since this unit might have made another clause unit or satisfied.
		} else {
			if c.Len() != nbLits {
				c.Shrink(nbLits)
			}
			i++
		}
	}
	pb.Clauses = pb.Clauses[:nbClauses]
	if pb.Status == Indet && nbClauses == 0 {
		pb.Status = Sat
	}
}

// CNF returns a DIMACS CNF representation of the problem.
func (pb *Problem) CNF() string {
	res := fmt.Sprintf("p cnf %d %d\n", pb.NbVars, len(pb.Clauses))
	for _, clause := range pb.Clauses {
		res += fmt.Sprintf("%s\n", clause.CNF())
	}
	return res
}
