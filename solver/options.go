package solver

import "fmt"

// A RestartPolicy decides when the search abandons its current path and
// starts over from level 0, keeping learned clauses.
type RestartPolicy string

const (
	// RestartLuby restarts after a conflict budget following the Luby sequence.
	RestartLuby = RestartPolicy("luby")
	// RestartLBD restarts when recent learned clauses are of poor quality
	// compared to the long-run average (Glucose-style adaptive trigger).
	RestartLBD = RestartPolicy("lbd")
)

const (
	defaultMaxLearned  = 2000  // Maximum # of learned clauses, at first.
	defaultLearnedIncr = 300   // By how much the budget grows after each reduction.
	defaultClauseDecay = 0.999 // By how much clause bumping decays over time.
	defaultVarDecay    = 0.8   // On each var decay, how much the varInc should be decayed at startup.
	defaultLubyFactor  = 100   // Base conflict budget multiplied by the Luby sequence.
)

// Options are the tunable parameters of a solve. They trade search
// diversification against propagation cost but never affect correctness.
// The zero value is not usable; start from DefaultOptions.
type Options struct {
	// RestartPolicy selects the restart trigger. Default is RestartLBD.
	RestartPolicy RestartPolicy
	// LubyFactor is the base restart interval, in conflicts, multiplied by
	// the Luby sequence. Only used by RestartLuby.
	LubyFactor int
	// VarDecay is the starting decay factor for variable activities. The
	// solver slowly raises it towards 0.95 as conflicts accumulate.
	VarDecay float64
	// ClauseDecay is the decay factor for learned-clause activities.
	ClauseDecay float64
	// MaxLearned is the initial learned-clause budget before a database
	// reduction is triggered.
	MaxLearned int
	// LearnedIncr is by how much the budget grows after each reduction.
	LearnedIncr int
	// DefaultPhase is the polarity used the first time a variable is
	// branched on. After that, the last assigned phase is preferred.
	DefaultPhase bool
}

// DefaultOptions returns the options used when none are provided.
func DefaultOptions() Options {
	return Options{
		RestartPolicy: RestartLBD,
		LubyFactor:    defaultLubyFactor,
		VarDecay:      defaultVarDecay,
		ClauseDecay:   defaultClauseDecay,
		MaxLearned:    defaultMaxLearned,
		LearnedIncr:   defaultLearnedIncr,
	}
}

// Validate checks the options are usable.
func (o Options) Validate() error {
	if o.RestartPolicy != RestartLuby && o.RestartPolicy != RestartLBD {
		return fmt.Errorf("unknown restart policy %q", o.RestartPolicy)
	}
	if o.LubyFactor <= 0 {
		return fmt.Errorf("luby factor must be positive, got %d", o.LubyFactor)
	}
	if o.VarDecay <= 0 || o.VarDecay >= 1 {
		return fmt.Errorf("var decay must be in (0, 1), got %f", o.VarDecay)
	}
	if o.ClauseDecay <= 0 || o.ClauseDecay >= 1 {
		return fmt.Errorf("clause decay must be in (0, 1), got %f", o.ClauseDecay)
	}
	if o.MaxLearned <= 0 || o.LearnedIncr < 0 {
		return fmt.Errorf("invalid learned-clause budget %d/%d", o.MaxLearned, o.LearnedIncr)
	}
	return nil
}
