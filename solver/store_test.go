package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lits(vals ...int) []Lit {
	res := make([]Lit, len(vals))
	for i, v := range vals {
		res[i] = IntToLit(v)
	}
	return res
}

// watched returns the refs found in the watcher list of l.
func watched(st *store, l Lit) []ClauseRef {
	var refs []ClauseRef
	for _, w := range st.watchersOf(l) {
		refs = append(refs, w.ref)
	}
	return refs
}

func TestStoreWatchesBothLiterals(t *testing.T) {
	c := NewClause(lits(1, -2, 3))
	st := newStore(3, []*Clause{c}, 10)

	// A clause watches its two first literals: it appears in the watcher
	// lists of their complements, and nowhere else.
	require.Equal(t, []ClauseRef{0}, watched(st, IntToLit(-1)))
	require.Equal(t, []ClauseRef{0}, watched(st, IntToLit(2)))
	require.Empty(t, watched(st, IntToLit(-3)))
	require.Empty(t, watched(st, IntToLit(1)))
}

func TestStoreCopiesOriginalClauses(t *testing.T) {
	orig := NewClause(lits(1, -2, 3))
	st := newStore(3, []*Clause{orig}, 10)

	// The store works on private copies: reordering literals or locking a
	// clause during a solve must leave the caller's clause untouched.
	c := st.clause(0)
	require.NotSame(t, orig, c)
	c.swap(0, 2)
	c.lock()
	require.Equal(t, lits(1, -2, 3), orig.lits)
	require.Zero(t, orig.header)
}

func TestStoreAddAndDeleteLearned(t *testing.T) {
	orig := NewClause(lits(1, 2))
	st := newStore(4, []*Clause{orig}, 10)

	learned := NewLearnedClause(lits(-3, 4))
	ref := st.addLearned(learned)
	require.Equal(t, learned, st.clause(ref))
	require.Equal(t, 1, st.nbLearned())
	require.Contains(t, watched(st, IntToLit(3)), ref)
	require.Contains(t, watched(st, IntToLit(-4)), ref)

	st.delete(ref)
	require.Equal(t, 1, len(st.learned)) // learned list is pruned by reduceLearned, not delete
	require.NotContains(t, watched(st, IntToLit(3)), ref)
	require.NotContains(t, watched(st, IntToLit(-4)), ref)
}

func TestStoreReusesFreedSlots(t *testing.T) {
	st := newStore(4, []*Clause{NewClause(lits(1, 2))}, 10)
	ref1 := st.addLearned(NewLearnedClause(lits(3, 4)))
	st.delete(ref1)
	st.learned = st.learned[:0]
	ref2 := st.addLearned(NewLearnedClause(lits(-3, -4)))
	require.Equal(t, ref1, ref2, "freed slot must be reused")
}

func TestReduceLearnedKeepsLockedAndGlued(t *testing.T) {
	st := newStore(20, nil, 10)

	locked := NewLearnedClause(lits(1, 2, 3))
	locked.setLbd(8)
	locked.lock()
	lockedRef := st.addLearned(locked)

	glued := NewLearnedClause(lits(4, 5, 6))
	glued.setLbd(2)
	gluedRef := st.addLearned(glued)

	var bad []ClauseRef
	for i := 0; i < 6; i++ {
		c := NewLearnedClause(lits(7+i, -(8 + i)))
		c.setLbd(10 + i)
		bad = append(bad, st.addLearned(c))
	}

	removed := st.reduceLearned()
	require.Greater(t, removed, 0)
	require.NotNil(t, st.clause(lockedRef), "a reason clause must never be deleted")
	require.NotNil(t, st.clause(gluedRef), "glued clauses are kept")
	require.Contains(t, st.learned, lockedRef)
	require.Contains(t, st.learned, gluedRef)
	deleted := 0
	for _, ref := range bad {
		alive := false
		for _, l := range st.learned {
			if l == ref {
				alive = true
				break
			}
		}
		if !alive {
			deleted++
		}
	}
	require.Equal(t, removed, deleted)
}
