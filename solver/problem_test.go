package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProblemMalformed(t *testing.T) {
	cases := []struct {
		name    string
		nbVars  int
		clauses [][]int
	}{
		{"empty clause", 3, [][]int{{1, 2}, {}}},
		{"zero literal", 3, [][]int{{1, 0, 2}}},
		{"var above range", 3, [][]int{{1, 4}}},
		{"negative var above range", 3, [][]int{{-4}}},
		{"negative var count", -1, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewProblem(c.nbVars, c.clauses)
			require.ErrorIs(t, err, ErrMalformedProblem)
		})
	}
}

func TestNewProblemDropsTautologies(t *testing.T) {
	pb, err := NewProblem(2, [][]int{{1, -1}, {1, 2, -1}})
	require.NoError(t, err)
	require.Empty(t, pb.Clauses)
	require.Equal(t, Sat, pb.Status)
}

func TestNewProblemDeduplicatesLiterals(t *testing.T) {
	pb, err := NewProblem(2, [][]int{{1, 1, 2}})
	require.NoError(t, err)
	require.Len(t, pb.Clauses, 1)
	require.Equal(t, 2, pb.Clauses[0].Len())
}

func TestNewProblemUnitCascade(t *testing.T) {
	// 1 forces -2, -2 forces 3: everything is decided at load time.
	pb, err := NewProblem(3, [][]int{{1}, {-1, -2}, {2, 3}})
	require.NoError(t, err)
	require.Equal(t, Sat, pb.Status)
	require.Empty(t, pb.Clauses)

	res := New(pb).Solve(context.Background())
	require.Equal(t, Sat, res.Status)
	require.Equal(t, []bool{true, false, true}, res.Model)
}

func TestNewProblemUnitConflict(t *testing.T) {
	pb, err := NewProblem(2, [][]int{{1}, {-2}, {-1, 2}})
	require.NoError(t, err)
	require.Equal(t, Unsat, pb.Status)
	res := New(pb).Solve(context.Background())
	require.Equal(t, Unsat, res.Status)
}

func TestProblemCNF(t *testing.T) {
	pb, err := NewProblem(3, [][]int{{1, -2, 3}, {-1, 2}})
	require.NoError(t, err)
	require.Equal(t, "p cnf 3 2\n1 -2 3 0\n-1 2 0\n", pb.CNF())
}
