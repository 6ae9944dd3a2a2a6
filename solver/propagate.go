package solver

// propagate derives every forced assignment implied by the literals pushed
// since the last call, repeating until fixpoint or conflict. It returns the
// conflicting clause, or NoClause if saturation was reached.
//
// Only clauses watching the complement of a newly assigned literal are
// inspected; this bounds per-assignment work to the watch-list size.
func (s *Solver) propagate() ClauseRef {
	for s.qhead < s.trail.size() {
		p := s.trail.lits[s.qhead] // p has just become true; clauses watching its negation may have become unit.
		s.qhead++
		ws := s.st.watchersOf(p)
		i, j := 0, 0
		for i < len(ws) {
			w := ws[i]
			if s.trail.valueLit(w.blocker) > 0 { // Clause already satisfied: nothing to do.
				ws[j] = w
				i++
				j++
				continue
			}
			c := s.st.clause(w.ref)
			// Make sure the falsified watched literal is at position 1.
			if c.First() == p.Negation() {
				c.swap(0, 1)
			}
			first := c.First()
			if first != w.blocker && s.trail.valueLit(first) > 0 {
				ws[j] = watcher{ref: w.ref, blocker: first}
				i++
				j++
				continue
			}
			// Look for an unassigned or true literal to watch instead.
			swapped := false
			for k := 2; k < c.Len(); k++ {
				if s.trail.valueLit(c.Get(k)) >= 0 {
					c.swap(1, k)
					neg := c.Second().Negation()
					s.st.watches[neg] = append(s.st.watches[neg], watcher{ref: w.ref, blocker: first})
					swapped = true
					break
				}
			}
			if swapped { // The clause left this watch list.
				i++
				continue
			}
			// No replacement: the clause is unit or conflicting.
			ws[j] = watcher{ref: w.ref, blocker: first}
			i++
			j++
			if s.trail.valueLit(first) < 0 { // Conflict: every literal is false.
				for i < len(ws) {
					ws[j] = ws[i]
					i++
					j++
				}
				s.st.watches[p] = ws[:j]
				s.qhead = s.trail.size()
				return w.ref
			}
			s.trail.pushPropagated(first, w.ref)
			c.lock()
		}
		s.st.watches[p] = ws[:j]
	}
	return NoClause
}
