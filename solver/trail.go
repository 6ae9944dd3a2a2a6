package solver

// The trail records every assignment in chronological order, together with
// the decision level it was made at and, for propagated literals, the
// clause that forced it. Decision levels start at 0; level-0 entries are
// unconditional facts and survive every backtrack.
type trail struct {
	assigns []int8      // For each var: 1 if true, -1 if false, 0 if unassigned.
	level   []int32     // For each var: the decision level it was assigned at.
	reason  []ClauseRef // For each var: the forcing clause, or NoClause for decisions.
	phase   []bool      // For each var: last assigned polarity, used for phase saving.
	lits    []Lit       // Assignment stack, in the order assignments were made.
	lim     []int       // For each decision level > 0, the stack index of its decision.
}

func newTrail(nbVars int, defaultPhase bool) *trail {
	t := &trail{
		assigns: make([]int8, nbVars),
		level:   make([]int32, nbVars),
		reason:  make([]ClauseRef, nbVars),
		phase:   make([]bool, nbVars),
		lits:    make([]Lit, 0, nbVars),
		lim:     make([]int, 0, nbVars),
	}
	for v := range t.reason {
		t.reason[v] = NoClause
		t.phase[v] = defaultPhase
	}
	return t
}

// decisionLevel returns the current decision level.
func (t *trail) decisionLevel() int {
	return len(t.lim)
}

// valueLit returns 1 if l is true, -1 if it is false, 0 if it is unassigned.
func (t *trail) valueLit(l Lit) int8 {
	assign := t.assigns[l.Var()]
	if assign == 0 {
		return 0
	}
	if (assign > 0) == l.IsPositive() {
		return 1
	}
	return -1
}

// assigned is true iff v currently has a binding.
func (t *trail) assigned(v Var) bool {
	return t.assigns[v] != 0
}

func (t *trail) levelOf(v Var) int {
	return int(t.level[v])
}

func (t *trail) reasonOf(v Var) ClauseRef {
	return t.reason[v]
}

// savedPhase returns the polarity v had the last time it was assigned.
func (t *trail) savedPhase(v Var) bool {
	return t.phase[v]
}

func (t *trail) assign(l Lit, reason ClauseRef) {
	v := l.Var()
	if l.IsPositive() {
		t.assigns[v] = 1
	} else {
		t.assigns[v] = -1
	}
	t.level[v] = int32(len(t.lim))
	t.reason[v] = reason
	t.lits = append(t.lits, l)
}

// pushDecision opens a new decision level and assigns l there.
// It returns the new level.
func (t *trail) pushDecision(l Lit) int {
	t.lim = append(t.lim, len(t.lits))
	t.assign(l, NoClause)
	return len(t.lim)
}

// pushPropagated assigns l at the current level, forced by the given clause.
// A learned unit is pushed with NoClause at level 0.
func (t *trail) pushPropagated(l Lit, reason ClauseRef) {
	t.assign(l, reason)
}

// backtrackTo undoes every assignment made at a level strictly greater than
// lvl, in O(number of undone assignments). onUndo is called for each undone
// variable with its former reason, letting the caller release reason locks
// and requeue the variable for branching.
func (t *trail) backtrackTo(lvl int, onUndo func(v Var, reason ClauseRef)) {
	if lvl >= t.decisionLevel() {
		return
	}
	bound := t.lim[lvl]
	for i := len(t.lits) - 1; i >= bound; i-- {
		l := t.lits[i]
		v := l.Var()
		t.assigns[v] = 0
		t.phase[v] = l.IsPositive()
		reason := t.reason[v]
		t.reason[v] = NoClause
		if onUndo != nil {
			onUndo(v, reason)
		}
	}
	t.lits = t.lits[:bound]
	t.lim = t.lim[:lvl]
}

// size returns the number of assigned literals.
func (t *trail) size() int {
	return len(t.lits)
}
