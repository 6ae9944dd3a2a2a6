package solver

import "context"

// A Solver holds the entire state of one solve: clause store, trail,
// activity scores and policies. It is the main data structure.
//
// A Solver is not safe for concurrent use; concurrent solves must each use
// their own instance. Nothing is shared between instances, so creating one
// per request is the intended pattern.
type Solver struct {
	nbVars    int
	status    Status
	opts      Options
	st        *store
	trail     *trail
	qhead     int       // Next trail position to propagate.
	activity  []float64 // How often each var is involved in conflicts.
	varQueue  queue
	varInc    float64 // On each var bump, how big the increment should be.
	varDecay  float64 // Raised slowly towards 0.95 as conflicts accumulate.
	clauseInc float32
	seen      []bool // Scratch space for conflict analysis.
	toClear   []Var  // Vars whose seen flag must be reset after analysis.
	learntBuf []Lit  // Reusable buffer for learned clauses.
	lbdStats  lbdStats
	lubyIdx   uint
	budget    int // Conflicts remaining before a Luby restart.

	// Stats describe the solving process. For information purpose only.
	Stats Stats
}

// New makes a solver for the given problem, with default options.
func New(pb *Problem) *Solver {
	s, err := NewWithOptions(pb, DefaultOptions())
	if err != nil {
		panic(err) // Default options are always valid.
	}
	return s
}

// NewWithOptions makes a solver for the given problem with the given
// tunables. The solver takes its own copy of the clauses, so any number of
// solvers may share one problem, including concurrently.
func NewWithOptions(pb *Problem, opts Options) (*Solver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{
		nbVars:    pb.NbVars,
		status:    pb.Status,
		opts:      opts,
		st:        newStore(pb.NbVars, pb.Clauses, opts.MaxLearned),
		trail:     newTrail(pb.NbVars, opts.DefaultPhase),
		activity:  make([]float64, pb.NbVars),
		varInc:    1.0,
		varDecay:  opts.VarDecay,
		clauseInc: 1.0,
		seen:      make([]bool, pb.NbVars),
		learntBuf: make([]Lit, pb.NbVars+1),
		lubyIdx:   1,
	}
	s.budget = opts.LubyFactor * int(luby(s.lubyIdx))
	s.varQueue = newQueue(s.activity)
	for _, lit := range pb.Units {
		s.trail.pushPropagated(lit, NoClause)
	}
	return s, nil
}

// Solve searches for a satisfying assignment and returns the definitive
// classification of the problem: Sat with a full model, Unsat, or Aborted
// if ctx was cancelled first. Cancellation is cooperative: the context is
// polled after each conflict and each restart, and an aborted solve leaves
// no observable partial state behind.
func (s *Solver) Solve(ctx context.Context) Result {
	switch s.status {
	case Unsat: // Contradiction found at load time.
		return Result{Status: Unsat, Stats: s.Stats}
	case Sat: // No clause survived the load: any assignment works.
		return Result{Status: Sat, Model: s.model(), Stats: s.Stats}
	}
	if err := ctx.Err(); err != nil {
		return s.abortedResult(err)
	}
	for {
		if confl := s.propagate(); confl != NoClause {
			s.Stats.NbConflicts++
			if s.trail.decisionLevel() == 0 { // Conflict without any assumption: the formula is unsat.
				s.status = Unsat
				return Result{Status: Unsat, Stats: s.Stats}
			}
			s.handleConflict(confl)
			if err := ctx.Err(); err != nil {
				return s.abortedResult(err)
			}
			continue
		}
		if s.shouldRestart() {
			s.restart()
			if err := ctx.Err(); err != nil {
				return s.abortedResult(err)
			}
			continue
		}
		if s.Stats.NbConflicts >= s.st.idxReduce*s.st.nbMax {
			s.st.idxReduce = s.Stats.NbConflicts/s.st.nbMax + 1
			s.Stats.NbDeleted += s.st.reduceLearned()
			s.st.bumpNbMax(s.opts.LearnedIncr)
		}
		lit := s.chooseLit()
		if lit == litUndef { // All vars assigned without conflict: model found.
			s.status = Sat
			return Result{Status: Sat, Model: s.model(), Stats: s.Stats}
		}
		s.Stats.NbDecisions++
		s.trail.pushDecision(lit)
	}
}

// handleConflict learns a clause from the conflict, backjumps to its
// assertion level and asserts the learned literal there.
func (s *Solver) handleConflict(confl ClauseRef) {
	lits, btLevel := s.analyze(confl)
	lbd := s.computeLbd(lits) // Levels are still intact here.
	s.backtrackTo(btLevel)
	if len(lits) == 1 { // Unit learned: a fact that holds unconditionally.
		s.Stats.NbUnitLearned++
		s.trail.pushPropagated(lits[0], NoClause)
	} else {
		c := NewLearnedClause(append(make([]Lit, 0, len(lits)), lits...))
		c.setLbd(lbd)
		ref := s.st.addLearned(c)
		s.Stats.NbLearned++
		s.clauseBumpActivity(c)
		s.trail.pushPropagated(lits[0], ref)
		c.lock()
	}
	s.lbdStats.addLbd(lbd)
	s.varDecayActivity()
	s.clauseDecayActivity()
	if s.Stats.NbConflicts%5000 == 0 && s.varDecay < 0.95 {
		s.varDecay += 0.01
	}
	s.budget--
}

// backtrackTo unwinds the trail to the given level, unlocking reason
// clauses and requeueing the freed variables for branching.
func (s *Solver) backtrackTo(lvl int) {
	s.trail.backtrackTo(lvl, func(v Var, reason ClauseRef) {
		if reason != NoClause {
			s.st.clause(reason).unlock()
		}
		if !s.varQueue.contains(int(v)) {
			s.varQueue.insert(int(v))
		}
	})
	s.qhead = s.trail.size()
}

func (s *Solver) shouldRestart() bool {
	if s.opts.RestartPolicy == RestartLuby {
		return s.budget <= 0
	}
	return s.lbdStats.mustRestart()
}

// restart abandons the current search path but keeps all learned clauses
// and activity scores.
func (s *Solver) restart() {
	s.Stats.NbRestarts++
	s.backtrackTo(0)
	s.lbdStats.clear()
	s.lubyIdx++
	s.budget = s.opts.LubyFactor * int(luby(s.lubyIdx))
}

// chooseLit returns the branching literal with the highest activity, or
// litUndef if every variable is already assigned. The polarity is the
// saved phase of the variable.
func (s *Solver) chooseLit() Lit {
	for !s.varQueue.empty() {
		if v := Var(s.varQueue.removeMin()); !s.trail.assigned(v) {
			return v.SignedLit(!s.trail.savedPhase(v))
		}
	}
	return litUndef
}

// model returns a binding for every variable of the problem. Variables
// that are left unassigned (possible when clauses were simplified away at
// load) keep their phase default: any value satisfies.
func (s *Solver) model() []bool {
	res := make([]bool, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		if s.trail.assigns[v] != 0 {
			res[v] = s.trail.assigns[v] > 0
		} else {
			res[v] = s.trail.phase[v]
		}
	}
	return res
}

func (s *Solver) abortedResult(err error) Result {
	return Result{Status: Aborted, Reason: err.Error(), Stats: s.Stats}
}

func (s *Solver) varDecayActivity() {
	s.varInc *= 1 / s.varDecay
}

func (s *Solver) varBumpActivity(v Var) {
	s.activity[v] += s.varInc
	if s.activity[v] > 1e100 { // Rescaling is needed to avoid overflowing.
		for i := range s.activity {
			s.activity[i] *= 1e-100
		}
		s.varInc *= 1e-100
	}
	if s.varQueue.contains(int(v)) {
		s.varQueue.decrease(int(v))
	}
}

// clauseDecayActivity decays each learned clause's activity.
func (s *Solver) clauseDecayActivity() {
	s.clauseInc *= 1 / float32(s.opts.ClauseDecay)
}

// clauseBumpActivity bumps the given clause's activity.
func (s *Solver) clauseBumpActivity(c *Clause) {
	if !c.Learned() {
		return
	}
	c.activity += s.clauseInc
	if c.activity > 1e30 { // Rescale to avoid overflow.
		for _, ref := range s.st.learned {
			s.st.clause(ref).activity *= 1e-30
		}
		s.clauseInc *= 1e-30
	}
}
