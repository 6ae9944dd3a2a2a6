// Package bot exposes the solver as a bot-style command service: a request
// carries one CNF problem, the reply carries the definitive verdict. Every
// request gets its own solver instance, so any number of requests may be
// served concurrently without shared state.
package bot

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/satbot/satbot/solver"
)

// DefaultTimeout bounds a solve when neither the service nor the request
// specify one.
const DefaultTimeout = 30 * time.Second

// A Request is one solve command.
type Request struct {
	NbVars  int     `json:"nb_vars"`
	Clauses [][]int `json:"clauses"`
	// TimeoutMs overrides the service solve timeout when positive.
	TimeoutMs int `json:"timeout_ms,omitempty"`
}

// A Response reports the verdict for one Request.
type Response struct {
	// Status is SAT, UNSAT or ABORTED.
	Status string `json:"status"`
	// Model lists one signed literal per variable when Status is SAT,
	// in DIMACS convention: 3 means variable 3 is true, -3 false.
	Model []int `json:"model,omitempty"`
	// Reason tells why an aborted solve was given up.
	Reason    string `json:"reason,omitempty"`
	Conflicts int    `json:"conflicts"`
	Decisions int    `json:"decisions"`
	Restarts  int    `json:"restarts"`
}

// A Service solves requests with a fixed set of solver options.
// It is safe for concurrent use.
type Service struct {
	log      *logrus.Logger
	opts     solver.Options
	timeout  time.Duration
	registry *prometheus.Registry
	metrics  *metrics
}

// NewService returns a service solving with the given options. A
// non-positive timeout falls back to DefaultTimeout.
func NewService(log *logrus.Logger, opts solver.Options, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	registry := prometheus.NewRegistry()
	return &Service{
		log:      log,
		opts:     opts,
		timeout:  timeout,
		registry: registry,
		metrics:  newMetrics(registry),
	}
}

// Solve runs one request to completion. The returned error is non-nil only
// for malformed problems; an aborted or unsat solve is a normal Response.
func (s *Service) Solve(ctx context.Context, req Request) (Response, error) {
	pb, err := solver.NewProblem(req.NbVars, req.Clauses)
	if err != nil {
		s.metrics.malformed.Inc()
		return Response{}, errors.Wrap(err, "rejecting request")
	}
	sv, err := solver.NewWithOptions(pb, s.opts)
	if err != nil {
		return Response{}, errors.Wrap(err, "building solver")
	}

	timeout := s.timeout
	if req.TimeoutMs > 0 {
		timeout = time.Duration(req.TimeoutMs) * time.Millisecond
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	res := sv.Solve(ctx)
	elapsed := time.Since(start)

	s.metrics.solves.WithLabelValues(res.Status.String()).Inc()
	s.metrics.duration.Observe(elapsed.Seconds())
	s.log.WithFields(logrus.Fields{
		"status":    res.Status,
		"vars":      req.NbVars,
		"clauses":   len(req.Clauses),
		"conflicts": res.Stats.NbConflicts,
		"elapsed":   elapsed,
	}).Info("solve finished")

	resp := Response{
		Status:    res.Status.String(),
		Reason:    res.Reason,
		Conflicts: res.Stats.NbConflicts,
		Decisions: res.Stats.NbDecisions,
		Restarts:  res.Stats.NbRestarts,
	}
	if res.Status == solver.Sat {
		resp.Model = lo.Map(res.Model, func(val bool, i int) int {
			if val {
				return i + 1
			}
			return -(i + 1)
		})
	}
	return resp, nil
}
