package bot

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/satbot/satbot/solver"
)

func testService() *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(log, solver.DefaultOptions(), time.Minute)
}

// pigeonhole encodes "p pigeons in h holes", unsatisfiable when p > h.
func pigeonhole(p, h int) ([]int, [][]int) {
	nbVars := p * h
	lit := func(pigeon, hole int) int { return pigeon*h + hole + 1 }
	var clauses [][]int
	for pigeon := 0; pigeon < p; pigeon++ {
		cl := make([]int, h)
		for hole := 0; hole < h; hole++ {
			cl[hole] = lit(pigeon, hole)
		}
		clauses = append(clauses, cl)
	}
	for hole := 0; hole < h; hole++ {
		for p1 := 0; p1 < p; p1++ {
			for p2 := p1 + 1; p2 < p; p2++ {
				clauses = append(clauses, []int{-lit(p1, hole), -lit(p2, hole)})
			}
		}
	}
	return []int{nbVars}, clauses
}

func TestServiceSolveSat(t *testing.T) {
	s := testService()
	resp, err := s.Solve(context.Background(), Request{
		NbVars:  3,
		Clauses: [][]int{{1, 2}, {-1}, {-2, 3}},
	})
	require.NoError(t, err)
	require.Equal(t, "SAT", resp.Status)
	require.Len(t, resp.Model, 3)
	require.Equal(t, -1, resp.Model[0])
	require.Equal(t, 2, resp.Model[1])
	require.Equal(t, 3, resp.Model[2])
}

func TestServiceSolveUnsat(t *testing.T) {
	s := testService()
	resp, err := s.Solve(context.Background(), Request{
		NbVars:  2,
		Clauses: [][]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}},
	})
	require.NoError(t, err)
	require.Equal(t, "UNSAT", resp.Status)
	require.Empty(t, resp.Model)
}

func TestServiceSolveMalformed(t *testing.T) {
	s := testService()
	_, err := s.Solve(context.Background(), Request{
		NbVars:  2,
		Clauses: [][]int{{1, 0}},
	})
	require.Error(t, err)
	require.ErrorIs(t, err, solver.ErrMalformedProblem)
}

func TestServiceSolveTimeout(t *testing.T) {
	s := testService()
	hdr, clauses := pigeonhole(10, 9)
	resp, err := s.Solve(context.Background(), Request{
		NbVars:    hdr[0],
		Clauses:   clauses,
		TimeoutMs: 1,
	})
	require.NoError(t, err)
	// A 1ms budget is not always enough to even start, but whatever the
	// outcome it must be one of the two legal terminal states here.
	require.Contains(t, []string{"ABORTED", "UNSAT"}, resp.Status)
}
