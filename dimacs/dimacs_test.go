package dimacs

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satbot/satbot/solver"
)

const sampleCNF = `c sample instance
p cnf 6 7
1 2 3 0
4 5 6 0
-1 -4 0
-2 -5 0
-3 -6 0
-1 -3 0
-4 -6 0
`

func TestParse(t *testing.T) {
	pb, err := Parse(strings.NewReader(sampleCNF))
	require.NoError(t, err)
	require.Equal(t, 6, pb.NbVars)
	require.Len(t, pb.Clauses, 7)

	res := solver.New(pb).Solve(context.Background())
	require.Equal(t, solver.Sat, res.Status)
}

func TestParseMultilineClause(t *testing.T) {
	pb, err := Parse(strings.NewReader("p cnf 3 1\n1\n2 3 0\n"))
	require.NoError(t, err)
	require.Len(t, pb.Clauses, 1)
	require.Equal(t, 3, pb.Clauses[0].Len())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"no header", "1 2 0\n"},
		{"bad header", "p foo 3 1\n1 2 0\n"},
		{"header not ints", "p cnf three 1\n"},
		{"unfinished clause", "p cnf 3 1\n1 2\n"},
		{"garbage token", "p cnf 3 1\n1 x 0\n"},
		{"duplicate header", "p cnf 3 1\np cnf 3 1\n1 2 0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(c.input))
			require.Error(t, err)
		})
	}
}

func TestParseMalformedProblem(t *testing.T) {
	// Syntactically valid DIMACS, semantically out of range.
	_, err := Parse(strings.NewReader("p cnf 2 1\n1 3 0\n"))
	require.ErrorIs(t, err, solver.ErrMalformedProblem)

	// An explicitly empty clause is rejected, not treated as unsat.
	_, err = Parse(strings.NewReader("p cnf 2 1\n0\n"))
	require.ErrorIs(t, err, solver.ErrMalformedProblem)
}

func TestFormatRoundTrip(t *testing.T) {
	pb, err := Parse(strings.NewReader(sampleCNF))
	require.NoError(t, err)
	pb2, err := Parse(strings.NewReader(Format(pb)))
	require.NoError(t, err)
	require.Equal(t, pb.NbVars, pb2.NbVars)
	require.Len(t, pb2.Clauses, len(pb.Clauses))
}

func TestWriteResult(t *testing.T) {
	var sb strings.Builder
	err := WriteResult(&sb, solver.Result{Status: solver.Sat, Model: []bool{true, false, true}})
	require.NoError(t, err)
	require.Equal(t, "s SATISFIABLE\nv 1 -2 3 0\n", sb.String())

	sb.Reset()
	require.NoError(t, WriteResult(&sb, solver.Result{Status: solver.Unsat}))
	require.Equal(t, "s UNSATISFIABLE\n", sb.String())

	sb.Reset()
	require.NoError(t, WriteResult(&sb, solver.Result{Status: solver.Aborted, Reason: "deadline"}))
	require.Equal(t, "s UNKNOWN\n", sb.String())
}
