package solver

import "fmt"

// A Clause is a disjunction of Lit, associated with learning metadata.
// Original and learned clauses share the same layout; the difference is a
// flag in the header word, not a separate type.
type Clause struct {
	lits []Lit
	// header's bits are as follow:
	// leftmost bit: learned flag.
	// second bit: locked flag (set while the clause is the reason for a trail entry).
	// last 30 bits: LBD value (learned clauses only).
	header   uint32
	activity float32
}

const (
	learnedMask uint32 = 1 << 31
	lockedMask  uint32 = 1 << 30
	bothMasks   uint32 = learnedMask | lockedMask
)

// NewClause returns a clause whose lits are given as an argument.
func NewClause(lits []Lit) *Clause {
	return &Clause{lits: lits}
}

// NewLearnedClause returns a new clause marked as learned.
func NewLearnedClause(lits []Lit) *Clause {
	return &Clause{lits: lits, header: learnedMask}
}

// Learned returns true iff c was a learned clause.
func (c *Clause) Learned() bool {
	return c.header&learnedMask == learnedMask
}

func (c *Clause) lock() {
	c.header = c.header | lockedMask
}

func (c *Clause) unlock() {
	c.header = c.header & ^lockedMask
}

// isLocked is true iff c is a learned clause currently serving as the
// reason for a literal on the trail. Such a clause must not be deleted.
func (c *Clause) isLocked() bool {
	return c.header&bothMasks == bothMasks
}

func (c *Clause) lbd() int {
	return int(c.header & ^bothMasks)
}

func (c *Clause) setLbd(lbd int) {
	c.header = (c.header & bothMasks) | uint32(lbd)
}

// Len returns the nb of lits in the clause.
func (c *Clause) Len() int {
	return len(c.lits)
}

// First returns the first lit from the clause.
func (c *Clause) First() Lit {
	return c.lits[0]
}

// Second returns the second lit from the clause.
func (c *Clause) Second() Lit {
	return c.lits[1]
}

// Get returns the ith literal from the clause.
func (c *Clause) Get(i int) Lit {
	return c.lits[i]
}

// Set sets the ith literal of the clause.
func (c *Clause) Set(i int, l Lit) {
	c.lits[i] = l
}

// swap swaps the ith and jth lits from the clause.
func (c *Clause) swap(i, j int) {
	c.lits[i], c.lits[j] = c.lits[j], c.lits[i]
}

// Shrink reduces the length of the clauses, by removing all lits
// starting from position newLen.
func (c *Clause) Shrink(newLen int) {
	c.lits = c.lits[:newLen]
}

// CNF returns a DIMACS CNF representation of the clause.
func (c *Clause) CNF() string {
	res := ""
	for _, lit := range c.lits {
		res += fmt.Sprintf("%d ", lit.Int())
	}
	return fmt.Sprintf("%s0", res)
}
