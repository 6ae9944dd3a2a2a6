// Package config loads the satbot service configuration from YAML files.
package config

import (
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/satbot/satbot/solver"
)

// Server holds the HTTP front-end settings.
type Server struct {
	Addr         string        `mapstructure:"addr"`
	SolveTimeout time.Duration `mapstructure:"solve_timeout"`
}

// Solver holds the search parameters handed to each solve.
type Solver struct {
	RestartPolicy string  `mapstructure:"restart_policy"`
	LubyFactor    int     `mapstructure:"luby_factor"`
	VarDecay      float64 `mapstructure:"var_decay"`
	ClauseDecay   float64 `mapstructure:"clause_decay"`
	MaxLearned    int     `mapstructure:"max_learned"`
	LearnedIncr   int     `mapstructure:"learned_incr"`
	DefaultPhase  bool    `mapstructure:"default_phase"`
}

// Config is the full satbot configuration.
type Config struct {
	Server Server `mapstructure:"server"`
	Solver Solver `mapstructure:"solver"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	opts := solver.DefaultOptions()
	return Config{
		Server: Server{
			Addr:         ":8080",
			SolveTimeout: 30 * time.Second,
		},
		Solver: Solver{
			RestartPolicy: string(opts.RestartPolicy),
			LubyFactor:    opts.LubyFactor,
			VarDecay:      opts.VarDecay,
			ClauseDecay:   opts.ClauseDecay,
			MaxLearned:    opts.MaxLearned,
			LearnedIncr:   opts.LearnedIncr,
			DefaultPhase:  opts.DefaultPhase,
		},
	}
}

// Load reads a YAML file and overlays it on the defaults. Fields absent
// from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "cannot read config %q", path)
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return cfg, errors.Wrapf(err, "cannot parse config %q", path)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &cfg,
	})
	if err != nil {
		return cfg, errors.Wrap(err, "cannot build config decoder")
	}
	if err := dec.Decode(normalize(tree)); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %q", path)
	}
	return cfg, nil
}

// normalize rewrites the map[interface{}]interface{} trees produced by
// yaml.v2 into the map[string]interface{} shape mapstructure expects.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		res := make(map[string]interface{}, len(t))
		for k, val := range t {
			if s, ok := k.(string); ok {
				res[s] = normalize(val)
			}
		}
		return res
	case map[string]interface{}:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}

// Options converts the solver section into search options, validating
// the restart policy name.
func (s Solver) Options() (solver.Options, error) {
	opts := solver.Options{
		RestartPolicy: solver.RestartPolicy(s.RestartPolicy),
		LubyFactor:    s.LubyFactor,
		VarDecay:      s.VarDecay,
		ClauseDecay:   s.ClauseDecay,
		MaxLearned:    s.MaxLearned,
		LearnedIncr:   s.LearnedIncr,
		DefaultPhase:  s.DefaultPhase,
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
