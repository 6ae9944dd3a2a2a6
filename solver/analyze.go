package solver

// analyze walks the implication graph backward from the conflicting clause
// and derives a learned clause by the first-UIP scheme: literals of the
// current decision level are resolved away, most recent first, until a
// single one remains. The walk is iterative over the trail, so its depth
// never grows the call stack.
//
// The returned slice has the asserting literal in position 0 and the
// literal of the backtrack level in position 1 (when longer than one lit).
// btLevel is the second-highest decision level in the clause, 0 for a unit.
// The slice is only valid until the next call.
func (s *Solver) analyze(confl ClauseRef) (learnt []Lit, btLevel int) {
	curLevel := s.trail.decisionLevel()
	learnt = s.learntBuf[:1] // Position 0 is reserved for the asserting literal.
	counter := 0             // Nb of unresolved vars from the current level.
	p := litUndef
	idx := s.trail.size() - 1
	for {
		c := s.st.clause(confl)
		if c.Learned() {
			s.clauseBumpActivity(c)
		}
		begin := 0
		if p != litUndef {
			begin = 1 // Position 0 of a reason clause holds the propagated literal itself.
		}
		for i := begin; i < c.Len(); i++ {
			q := c.Get(i)
			v := q.Var()
			if s.seen[v] || s.trail.levelOf(v) == 0 {
				continue
			}
			s.seen[v] = true
			s.toClear = append(s.toClear, v)
			s.varBumpActivity(v)
			if s.trail.levelOf(v) >= curLevel {
				counter++
			} else {
				learnt = append(learnt, q)
			}
		}
		// Select the most recently assigned var still to resolve.
		for !s.seen[s.trail.lits[idx].Var()] {
			idx--
		}
		p = s.trail.lits[idx]
		idx--
		counter--
		if counter == 0 { // p is the first UIP.
			break
		}
		confl = s.trail.reasonOf(p.Var())
	}
	learnt[0] = p.Negation()
	learnt = learnt[:s.minimizeLearned(learnt)]
	btLevel = s.prepareBacktrack(learnt)
	for _, v := range s.toClear {
		s.seen[v] = false
	}
	s.toClear = s.toClear[:0]
	return learnt, btLevel
}

// minimizeLearned reduces (if possible) the length of the learned clause
// and returns its new size: a literal whose reason clause only contains
// literals already in the learned clause (or level-0 facts) is redundant.
func (s *Solver) minimizeLearned(learnt []Lit) int {
	sz := 1
	for i := 1; i < len(learnt); i++ {
		v := learnt[i].Var()
		reason := s.trail.reasonOf(v)
		if reason == NoClause {
			learnt[sz] = learnt[i]
			sz++
			continue
		}
		c := s.st.clause(reason)
		for k := 0; k < c.Len(); k++ {
			lit := c.Get(k)
			if !s.seen[lit.Var()] && s.trail.levelOf(lit.Var()) > 0 {
				learnt[sz] = learnt[i]
				sz++
				break
			}
		}
	}
	return sz
}

// prepareBacktrack moves the literal with the highest decision level (the
// asserting literal excepted) into position 1 and returns that level,
// which is where the search will backjump to. A unit learned clause
// backjumps to level 0.
func (s *Solver) prepareBacktrack(learnt []Lit) int {
	if len(learnt) == 1 {
		return 0
	}
	maxIdx := 1
	maxLvl := s.trail.levelOf(learnt[1].Var())
	for i := 2; i < len(learnt); i++ {
		if lvl := s.trail.levelOf(learnt[i].Var()); lvl > maxLvl {
			maxIdx = i
			maxLvl = lvl
		}
	}
	learnt[1], learnt[maxIdx] = learnt[maxIdx], learnt[1]
	return maxLvl
}

// computeLbd returns the nb of distinct decision levels among the given
// literals. Lower is better: a clause spanning few levels propagates more.
func (s *Solver) computeLbd(lits []Lit) int {
	levels := make(map[int]struct{}, len(lits))
	for _, lit := range lits {
		levels[s.trail.levelOf(lit.Var())] = struct{}{}
	}
	return len(levels)
}
