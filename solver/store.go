package solver

import (
	"math"
	"sort"
)

// A ClauseRef is an opaque handle into the clause store. Watcher lists and
// reasons hold refs, never clause pointers, so a deleted clause cannot be
// reached through stale aliases.
type ClauseRef uint32

// NoClause means "no clause": the reason of a decision literal, or the
// absence of a conflict.
const NoClause ClauseRef = math.MaxUint32

// A watcher ties a clause to one of its two watched literals.
// blocker is another lit from the clause: if it is already true, the clause
// cannot be unit nor conflicting and does not need to be inspected at all.
type watcher struct {
	ref     ClauseRef
	blocker Lit
}

// A store owns every clause, original and learned, and the watcher
// bookkeeping over them. All other components refer to clauses through refs.
type store struct {
	clauses   []*Clause   // Indexed by ClauseRef. A nil entry is a free slot.
	free      []ClauseRef // Slots available for reuse.
	watches   [][]watcher // For each literal, watchers of the clauses in which its negation is watched.
	learned   []ClauseRef // Refs of all live learned clauses.
	nbMax     int         // Max # of learned clauses at the current moment.
	idxReduce int         // # of calls to reduce + 1.
}

// newStore makes a store over the given original clauses.
// Each clause must have at least two literals: units are handled by the
// trail, empty clauses are rejected at problem load.
//
// The clauses are deep-copied: the solve reorders literals and flips lock
// bits in place, and copying keeps that private to this store so several
// solvers may share one problem.
func newStore(nbVars int, clauses []*Clause, maxLearned int) *store {
	st := &store{
		clauses:   make([]*Clause, 0, len(clauses)*2),
		watches:   make([][]watcher, nbVars*2),
		nbMax:     maxLearned,
		idxReduce: 1,
	}
	for _, c := range clauses {
		lits := append(make([]Lit, 0, c.Len()), c.lits...)
		st.clauses = append(st.clauses, NewClause(lits))
	}
	for ref := range st.clauses {
		st.watch(ClauseRef(ref))
	}
	return st
}

// clause dereferences a ref. Refs held by watcher lists and reasons always
// point at live clauses, so there is no liveness check here.
func (st *store) clause(ref ClauseRef) *Clause {
	return st.clauses[ref]
}

// watch registers the clause's two watched literals (positions 0 and 1).
func (st *store) watch(ref ClauseRef) {
	c := st.clauses[ref]
	first := c.First()
	second := c.Second()
	neg0 := first.Negation()
	neg1 := second.Negation()
	st.watches[neg0] = append(st.watches[neg0], watcher{ref: ref, blocker: second})
	st.watches[neg1] = append(st.watches[neg1], watcher{ref: ref, blocker: first})
}

// unwatch removes ref from the watcher list of the given literal.
// The ref *must* be present in that list.
func (st *store) unwatch(ref ClauseRef, l Lit) {
	ws := st.watches[l]
	i := 0
	for ws[i].ref != ref {
		i++
	}
	last := len(ws) - 1
	ws[i] = ws[last]
	st.watches[l] = ws[:last]
}

// watchersOf returns the watchers to inspect when l becomes true, i.e the
// clauses in which the negation of l is currently watched.
func (st *store) watchersOf(l Lit) []watcher {
	return st.watches[l]
}

// addLearned inserts a learned clause and returns its ref.
// Freed slots are reused so that refs stay dense.
func (st *store) addLearned(c *Clause) ClauseRef {
	var ref ClauseRef
	if n := len(st.free); n > 0 {
		ref = st.free[n-1]
		st.free = st.free[:n-1]
		st.clauses[ref] = c
	} else {
		ref = ClauseRef(len(st.clauses))
		st.clauses = append(st.clauses, c)
	}
	st.learned = append(st.learned, ref)
	st.watch(ref)
	return ref
}

// delete removes the clause from the watcher lists and frees its slot.
// Must only be called between propagation rounds, never on a locked clause.
func (st *store) delete(ref ClauseRef) {
	c := st.clauses[ref]
	st.unwatch(ref, c.First().Negation())
	st.unwatch(ref, c.Second().Negation())
	st.clauses[ref] = nil
	st.free = append(st.free, ref)
}

// nbLearned returns the number of live learned clauses.
func (st *store) nbLearned() int {
	return len(st.learned)
}

// bumpNbMax increases the max nb of learned clauses kept.
// It is typically called after a reduction.
func (st *store) bumpNbMax(incr int) {
	st.nbMax += incr
}

// reduceLearned deletes roughly half of the learned clauses, keeping the
// ones that are glued (lbd <= 2) or currently serve as a reason on the
// trail. Returns the number of deleted clauses.
func (st *store) reduceLearned() int {
	sort.Slice(st.learned, func(i, j int) bool {
		ci := st.clauses[st.learned[i]]
		cj := st.clauses[st.learned[j]]
		// Sort by lbd, break ties by activity: worst clauses first.
		return ci.lbd() > cj.lbd() || (ci.lbd() == cj.lbd() && ci.activity < cj.activity)
	})
	length := len(st.learned) / 2
	nbRemoved := 0
	j := 0
	for i, ref := range st.learned {
		c := st.clauses[ref]
		if i >= length || c.lbd() <= 2 || c.isLocked() {
			st.learned[j] = ref
			j++
			continue
		}
		st.delete(ref)
		nbRemoved++
	}
	st.learned = st.learned[:j]
	return nbRemoved
}
