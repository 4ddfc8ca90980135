// Package circuit implements the shared-circuit data model and the
// simulation-set solver: the DAG of wires with their algebraic normal forms,
// and sim_set, which reduces a probed-wire set down to the minimal input
// shares it statistically depends on.
package circuit

import "fmt"

// VarIdx indexes a wire in a Circuit's flat variable sequence.
type VarIdx int

// Kind tags the source of a wire. Kept as an integer tag rather than an
// interface hierarchy: ANF construction and sim_set are hot paths that
// switch on this value directly.
type Kind int

const (
	KindInput Kind = iota
	KindRandom
	KindSum
	KindProduct
	KindNot
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "Input"
	case KindRandom:
		return "Random"
	case KindSum:
		return "Sum"
	case KindProduct:
		return "Product"
	case KindNot:
		return "Not"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// PortShare names an (port, share) pair tagging an input or output wire.
type PortShare struct {
	Port  int
	Share int
}

// Src is the source of a wire: a kind plus its operands. Input and Random
// carry no operands; Not carries one; Sum and Product carry two. For Input,
// the embedding Var's InPort identifies the input sharing it reads.
type Src struct {
	Kind Kind
	Ops  [2]VarIdx
	NOps int
}

// Operands returns the wire's operand indices, truncated to its real arity.
func (s Src) Operands() []VarIdx {
	return s.Ops[:s.NOps]
}

// InputSrc builds the source for an Input(port, share) wire.
func InputSrc() Src { return Src{Kind: KindInput} }

// RandomSrc builds the source for an independent-random wire.
func RandomSrc() Src { return Src{Kind: KindRandom} }

// NotSrc builds the source for a Not(a) wire.
func NotSrc(a VarIdx) Src { return Src{Kind: KindNot, Ops: [2]VarIdx{a}, NOps: 1} }

// SumSrc builds the source for a Sum(a, b) wire.
func SumSrc(a, b VarIdx) Src { return Src{Kind: KindSum, Ops: [2]VarIdx{a, b}, NOps: 2} }

// ProductSrc builds the source for a Product(a, b) wire.
func ProductSrc(a, b VarIdx) Src { return Src{Kind: KindProduct, Ops: [2]VarIdx{a, b}, NOps: 2} }

// Var is a single named wire: its source, and optional input/output tags.
type Var struct {
	Name     string
	Src      Src
	InPort   *PortShare
	OutPort  *PortShare
}
