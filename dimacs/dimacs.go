// Package dimacs reads and writes the DIMACS CNF format used to exchange
// satisfiability problems, translating between the textual form and the
// structured problems the solver consumes.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/satbot/satbot/solver"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads an int from r.
// 'b' is the last read byte. It can be a space, a '-' or a digit.
// The int can be negated.
// All spaces before the int value are ignored.
// Can return EOF.
func readInt(b *byte, r *bufio.Reader) (res int, err error) {
	for err == nil && isSpace(*b) {
		*b, err = r.ReadByte()
	}
	if err == io.EOF {
		return res, io.EOF
	}
	if err != nil {
		return res, fmt.Errorf("could not read digit: %v", err)
	}
	neg := 1
	if *b == '-' {
		neg = -1
		*b, err = r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("cannot read int: %v", err)
		}
	}
	for err == nil {
		if *b < '0' || *b > '9' {
			return 0, fmt.Errorf("cannot read int: %q is not a digit", *b)
		}
		res = 10*res + int(*b-'0')
		*b, err = r.ReadByte()
		if isSpace(*b) {
			break
		}
	}
	res *= neg
	return res, err
}

func parseHeader(r *bufio.Reader) (nbVars, nbClauses int, err error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, 0, fmt.Errorf("cannot read header: %v", err)
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, fmt.Errorf("invalid syntax %q in header", line)
	}
	if fields[0] != "cnf" {
		return 0, 0, fmt.Errorf("unknown problem type %q, expected \"cnf\"", fields[0])
	}
	nbVars, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("nbvars not an int : %q", fields[1])
	}
	nbClauses, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, fmt.Errorf("nbClauses not an int : %q", fields[2])
	}
	return nbVars, nbClauses, nil
}

// Parse parses a DIMACS CNF stream and returns the corresponding Problem.
// Comment lines are ignored; clause validation (range checks, empty
// clauses) is delegated to solver.NewProblem, so a syntactically valid
// file describing a malformed problem returns ErrMalformedProblem.
func Parse(f io.Reader) (*solver.Problem, error) {
	r := bufio.NewReader(f)
	var (
		nbVars    int
		sawHeader bool
		clauses   [][]int
		curClause []int
	)
	b, err := r.ReadByte()
	for err == nil {
		if b == 'c' { // Ignore comment
			b, err = r.ReadByte()
			for err == nil && b != '\n' {
				b, err = r.ReadByte()
			}
		} else if b == 'p' { // Parse header
			if sawHeader {
				return nil, fmt.Errorf("duplicate header")
			}
			var nbClauses int
			nbVars, nbClauses, err = parseHeader(r)
			if err != nil {
				return nil, fmt.Errorf("cannot parse CNF header: %v", err)
			}
			sawHeader = true
			clauses = make([][]int, 0, nbClauses)
		} else if isSpace(b) {
			b, err = r.ReadByte()
			continue
		} else {
			if !sawHeader {
				return nil, fmt.Errorf("clause found before header")
			}
			for {
				val, errRead := readInt(&b, r)
				if errRead == io.EOF {
					if len(curClause) != 0 {
						return nil, fmt.Errorf("unfinished clause while EOF found")
					}
					break
				}
				if errRead != nil {
					return nil, fmt.Errorf("cannot parse clause: %v", errRead)
				}
				if val == 0 {
					clauses = append(clauses, curClause)
					curClause = nil
					break
				}
				curClause = append(curClause, val)
			}
		}
		b, err = r.ReadByte()
	}
	if err != io.EOF {
		return nil, err
	}
	if !sawHeader {
		return nil, fmt.Errorf("no header found")
	}
	if len(curClause) != 0 {
		return nil, fmt.Errorf("unfinished clause while EOF found")
	}
	return solver.NewProblem(nbVars, clauses)
}

// Format returns the problem in DIMACS CNF syntax.
func Format(pb *solver.Problem) string {
	return pb.CNF()
}

// WriteResult writes res on w in the DIMACS output format: an 's' status
// line, followed by a 'v' values line when a model was found.
func WriteResult(w io.Writer, res solver.Result) error {
	switch res.Status {
	case solver.Sat:
		var builder strings.Builder
		builder.WriteString("s SATISFIABLE\nv ")
		for i, val := range res.Model {
			if val {
				fmt.Fprintf(&builder, "%d ", i+1)
			} else {
				fmt.Fprintf(&builder, "%d ", -i-1)
			}
		}
		builder.WriteString("0\n")
		_, err := io.WriteString(w, builder.String())
		return err
	case solver.Unsat:
		_, err := io.WriteString(w, "s UNSATISFIABLE\n")
		return err
	default:
		_, err := io.WriteString(w, "s UNKNOWN\n")
		return err
	}
}
