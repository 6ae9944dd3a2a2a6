package solver

// Describes basic types and constants that are used in the solver

// Status is the outcome of a solve, or the state of a problem at a given moment.
type Status byte

const (
	// Indet means the problem is not proven sat or unsat yet.
	Indet = Status(iota)
	// Sat means the problem is satisfied.
	Sat
	// Unsat means the problem cannot be satisfied.
	Unsat
	// Aborted means the solve was cancelled before an answer was found.
	Aborted
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	case Aborted:
		return "ABORTED"
	default:
		panic("invalid status")
	}
}

// Var start at 0 ; thus the CNF variable 1 is encoded as the Var 0.
type Var int32

// Lit start at 0 and are positive ; the sign is the last bit.
// Thus the CNF literal -3 is encoded as 2 * (3-1) + 1 = 5.
type Lit int32

// litUndef means "no literal". It is used, e.g, when no branching literal remains.
const litUndef = Lit(-1)

// IntToLit converts a CNF literal to a Lit.
func IntToLit(i int) Lit {
	if i < 0 {
		return Lit(2*(-i-1) + 1)
	}
	return Lit(2 * (i - 1))
}

// Lit returns the positive Lit associated to v.
func (v Var) Lit() Lit {
	return Lit(v * 2)
}

// SignedLit returns the Lit associated to v, negated if 'signed', positive else.
func (v Var) SignedLit(signed bool) Lit {
	if signed {
		return Lit(v*2) + 1
	}
	return Lit(v * 2)
}

// Var returns the variable of l.
func (l Lit) Var() Var {
	return Var(l / 2)
}

// Int returns the equivalent CNF literal.
func (l Lit) Int() int {
	sign := l&1 == 1
	res := int(l/2 + 1)
	if sign {
		return -res
	}
	return res
}

// IsPositive is true iff l is > 0
func (l Lit) IsPositive() bool {
	return l%2 == 0
}

// Negation returns -l, i.e the positive version of l if it is negative,
// or the negative version otherwise.
func (l Lit) Negation() Lit {
	return l ^ 1
}

// A Result is the definitive answer to one solve call.
// Model is only set when Status is Sat; it then binds every variable of the
// problem. Reason is only set when Status is Aborted and tells why the
// solve was given up.
type Result struct {
	Status Status
	Model  []bool
	Reason string
	Stats  Stats
}

// Stats are statistics about the resolution of the problem.
// They are provided for information purpose only.
type Stats struct {
	NbRestarts    int
	NbConflicts   int
	NbDecisions   int
	NbUnitLearned int // How many unit clauses were learned
	NbLearned     int // How many clauses were learned
	NbDeleted     int // How many learned clauses were deleted
}
