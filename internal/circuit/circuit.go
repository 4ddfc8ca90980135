package circuit

import (
	"fmt"
	"strings"

	"github.com/cassiers-crypto/straps/internal/gf2"
)

// Circuit is the validated, immutable description of a shared gadget: its
// wires in topological order, plus the precomputed ANF of each wire in
// terms of the leaf (Input/Random) variables.
type Circuit struct {
	vars          []Var
	nShares       int
	nInputPorts   int
	nOutputPorts  int
	anfs          []gf2.Polynomial
	inputPorts    []PortShare
	outputPorts   []PortShare
}

// New validates the invariants of the data model (unique non-reserved
// names, topological operand order, arity per kind, and exactly one wire per
// (port, share) for both input and output tags) and builds the Circuit,
// including each wire's ANF. Returns a human-readable error on any
// violation, mirroring the teacher's constructor-returns-Result idiom.
func New(vars []Var, nShares, nInputPorts, nOutputPorts int) (*Circuit, error) {
	if err := checkNoIO(vars); err != nil {
		return nil, err
	}
	if err := checkUniqueNames(vars); err != nil {
		return nil, err
	}
	if err := checkTopological(vars); err != nil {
		return nil, err
	}
	if err := checkArity(vars); err != nil {
		return nil, err
	}
	inputPorts, err := checkCompleteness(vars, nShares, nInputPorts, true)
	if err != nil {
		return nil, err
	}
	outputPorts, err := checkCompleteness(vars, nShares, nOutputPorts, false)
	if err != nil {
		return nil, err
	}

	anfs := buildANFs(vars)

	return &Circuit{
		vars:         append([]Var(nil), vars...),
		nShares:      nShares,
		nInputPorts:  nInputPorts,
		nOutputPorts: nOutputPorts,
		anfs:         anfs,
		inputPorts:   inputPorts,
		outputPorts:  outputPorts,
	}, nil
}

func checkNoIO(vars []Var) error {
	for _, v := range vars {
		lower := strings.ToLower(v.Name)
		if strings.HasPrefix(lower, "input") || strings.HasPrefix(lower, "output") {
			return fmt.Errorf("circuit: wire name %q is reserved (must not start with input/output)", v.Name)
		}
	}
	return nil
}

func checkUniqueNames(vars []Var) error {
	seen := make(map[string]struct{}, len(vars))
	for _, v := range vars {
		if _, ok := seen[v.Name]; ok {
			return fmt.Errorf("circuit: duplicate wire name %q", v.Name)
		}
		seen[v.Name] = struct{}{}
	}
	return nil
}

func checkTopological(vars []Var) error {
	for i, v := range vars {
		for _, op := range v.Src.Operands() {
			if int(op) >= i {
				return fmt.Errorf("circuit: wire %d (%q) has operand %d not strictly preceding it", i, v.Name, op)
			}
			if op < 0 {
				return fmt.Errorf("circuit: wire %d (%q) has negative operand", i, v.Name)
			}
		}
	}
	return nil
}

func checkArity(vars []Var) error {
	for i, v := range vars {
		want := 0
		switch v.Src.Kind {
		case KindInput, KindRandom:
			want = 0
		case KindNot:
			want = 1
		case KindSum, KindProduct:
			want = 2
		default:
			return fmt.Errorf("circuit: wire %d (%q) has unknown kind %d", i, v.Name, int(v.Src.Kind))
		}
		if v.Src.NOps != want {
			return fmt.Errorf("circuit: wire %d (%q) of kind %s expects %d operands, got %d", i, v.Name, v.Src.Kind, want, v.Src.NOps)
		}
	}
	return nil
}

// checkCompleteness validates that, for input tags (input=true, checking
// wires of KindInput) or output tags (input=false, checking OutPort on any
// kind), exactly one wire exists per (port, share) and no stray tags exist
// on the wrong kind of wire. Returns the tags in (port, share) order.
func checkCompleteness(vars []Var, nShares, nPorts int, input bool) ([]PortShare, error) {
	seen := make(map[PortShare]int)
	for i, v := range vars {
		var tag *PortShare
		if input {
			if v.Src.Kind != KindInput {
				if v.InPort != nil {
					return nil, fmt.Errorf("circuit: wire %d (%q) is not Input but has an input tag", i, v.Name)
				}
				continue
			}
			tag = v.InPort
			if tag == nil {
				return nil, fmt.Errorf("circuit: Input wire %d (%q) is missing its input tag", i, v.Name)
			}
		} else {
			tag = v.OutPort
			if tag == nil {
				continue
			}
		}
		if tag.Port < 0 || tag.Port >= nPorts || tag.Share < 0 || tag.Share >= nShares {
			return nil, fmt.Errorf("circuit: wire %d (%q) has out-of-range tag %+v", i, v.Name, *tag)
		}
		if prev, ok := seen[*tag]; ok {
			return nil, fmt.Errorf("circuit: tag %+v used by both wire %d and wire %d", *tag, prev, i)
		}
		seen[*tag] = i
	}
	tags := make([]PortShare, 0, nPorts*nShares)
	for p := 0; p < nPorts; p++ {
		for s := 0; s < nShares; s++ {
			ps := PortShare{Port: p, Share: s}
			if _, ok := seen[ps]; !ok {
				kindName := "output"
				if input {
					kindName = "input"
				}
				return nil, fmt.Errorf("circuit: no wire tagged as %s (port=%d, share=%d)", kindName, p, s)
			}
			tags = append(tags, ps)
		}
	}
	return tags, nil
}

func buildANFs(vars []Var) []gf2.Polynomial {
	anfs := make([]gf2.Polynomial, len(vars))
	for i, v := range vars {
		switch v.Src.Kind {
		case KindInput, KindRandom:
			anfs[i] = gf2.FromVarPoly[int](i)
		case KindNot:
			a := v.Src.Operands()[0]
			anfs[i] = anfs[a].Not()
		case KindSum:
			ops := v.Src.Operands()
			anfs[i] = anfs[ops[0]].Add(anfs[ops[1]])
		case KindProduct:
			ops := v.Src.Operands()
			anfs[i] = anfs[ops[0]].Mul(anfs[ops[1]])
		}
	}
	return anfs
}

// NVars returns the number of wires in the circuit.
func (c *Circuit) NVars() int { return len(c.vars) }

// NShares returns the sharing order.
func (c *Circuit) NShares() int { return c.nShares }

// NInputPorts returns the number of input ports.
func (c *Circuit) NInputPorts() int { return c.nInputPorts }

// NOutputPorts returns the number of output ports.
func (c *Circuit) NOutputPorts() int { return c.nOutputPorts }

// Name returns the name of wire i.
func (c *Circuit) Name(i VarIdx) string { return c.vars[i].Name }

// VarKind returns the source kind of wire i.
func (c *Circuit) VarKind(i VarIdx) Kind { return c.vars[i].Src.Kind }

// VarInputs returns the operand indices of wire i.
func (c *Circuit) VarInputs(i VarIdx) []VarIdx { return c.vars[i].Src.Operands() }

// Var returns the wire descriptor at index i.
func (c *Circuit) Var(i VarIdx) Var { return c.vars[i] }

// ANF returns the algebraic normal form of wire i in terms of leaf
// (Input/Random) variable indices.
func (c *Circuit) ANF(i VarIdx) gf2.Polynomial { return c.anfs[i] }

// InputPorts returns every (port, share) input tag in canonical order.
func (c *Circuit) InputPorts() []PortShare { return c.inputPorts }

// OutputPorts returns every (port, share) output tag in canonical order.
func (c *Circuit) OutputPorts() []PortShare { return c.outputPorts }

// InputShareIndex maps an (port, share) pair to the flat index used by
// sim_set's returned input-share set.
func (c *Circuit) InputShareIndex(port, share int) int { return port*c.nShares + share }
