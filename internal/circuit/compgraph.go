package circuit

import (
	"sort"

	"github.com/cassiers-crypto/straps/internal/gf2"
)

// CompGraphWork is the mutable working copy of a circuit used by sim_set: a
// probed subset drives pruning of dead wires, then masking absorption
// rewrites invertible randoms into erasures, and finally the surviving
// leaves are read back as the minimal required input shares.
type CompGraphWork struct {
	circuit    *Circuit
	src        []Src
	probed     []bool
	alive      []bool
	successors [][]VarIdx
}

func newCompGraphWork(c *Circuit, probes []VarIdx) *CompGraphWork {
	n := c.NVars()
	src := make([]Src, n)
	for i := 0; i < n; i++ {
		src[i] = c.Var(VarIdx(i)).Src
	}
	probed := make([]bool, n)
	maxIdx := -1
	for _, p := range probes {
		probed[p] = true
		if int(p) > maxIdx {
			maxIdx = int(p)
		}
	}
	alive := make([]bool, n)
	for i := 0; i <= maxIdx; i++ {
		alive[i] = true
	}

	g := &CompGraphWork{
		circuit:    c,
		src:        src,
		probed:     probed,
		alive:      alive,
		successors: make([][]VarIdx, n),
	}
	for i := 0; i <= maxIdx; i++ {
		for _, op := range src[i].Operands() {
			if g.alive[op] {
				g.successors[op] = append(g.successors[op], VarIdx(i))
			}
		}
	}
	return g
}

// prune drops every alive, non-probed wire whose successor list has become
// empty, cascading the edge removal to its own operands. A single
// decreasing sweep over indices suffices because operands always precede
// their wire, so a dependent is always resolved before its dependency is
// examined.
func (g *CompGraphWork) prune() {
	for i := len(g.src) - 1; i >= 0; i-- {
		idx := VarIdx(i)
		if !g.alive[idx] || g.probed[idx] {
			continue
		}
		if len(g.successors[idx]) == 0 {
			g.alive[idx] = false
			for _, op := range g.src[idx].Operands() {
				g.removeSuccessor(op, idx)
			}
		}
	}
}

func (g *CompGraphWork) removeSuccessor(parent, child VarIdx) {
	succs := g.successors[parent]
	for i, s := range succs {
		if s == child {
			g.successors[parent] = append(succs[:i], succs[i+1:]...)
			return
		}
	}
}

func (g *CompGraphWork) aliveSuccessors(i VarIdx) []VarIdx {
	all := g.successors[i]
	res := make([]VarIdx, 0, len(all))
	for _, s := range all {
		if g.alive[s] {
			res = append(res, s)
		}
	}
	return res
}

// impdom finds the immediate post-dominator of v over the alive subgraph,
// treating probed wires as sinks. It merges the converging successor
// frontiers in increasing index order, tracking the largest frontier index
// seen (maxn) and the smallest probed index seen (bound); if a path can
// still reach past bound without having converged, no single impdom exists.
func (g *CompGraphWork) impdom(v VarIdx) (VarIdx, bool) {
	succs := g.aliveSuccessors(v)
	if len(succs) == 0 {
		return 0, false
	}

	inf := VarIdx(len(g.src) + 1)
	pending := make(map[VarIdx]int, len(succs))
	maxn := VarIdx(0)
	for _, s := range succs {
		pending[s]++
		if s > maxn {
			maxn = s
		}
	}
	bound := inf
	open := len(pending)

	for {
		d := minPending(pending)
		if g.probed[d] && d < bound {
			bound = d
		}
		cnt := pending[d]
		delete(pending, d)
		open--

		if open == 0 {
			if maxn > bound && d != bound {
				return 0, false
			}
			return d, true
		}

		if !g.probed[d] {
			for _, s := range g.aliveSuccessors(d) {
				if s > maxn {
					maxn = s
				}
				if _, ok := pending[s]; !ok {
					open++
				}
				pending[s] += cnt
			}
		}
		if maxn > bound {
			return 0, false
		}
	}
}

func minPending(m map[VarIdx]int) VarIdx {
	first := true
	var min VarIdx
	for k := range m {
		if first || k < min {
			min = k
			first = false
		}
	}
	return min
}

// anfErased computes the ANF of wire i over the current (possibly mutated
// by erasure) source array, treating every Input or Random wire as an
// opaque leaf variable named by its own index. Erased wires are exactly the
// ones whose src has been rewritten to Random, so this recursion
// automatically stops descending through them.
func (g *CompGraphWork) anfErased(i VarIdx) gf2.Polynomial {
	memo := make(map[VarIdx]gf2.Polynomial, len(g.src))
	var rec func(VarIdx) gf2.Polynomial
	rec = func(idx VarIdx) gf2.Polynomial {
		if p, ok := memo[idx]; ok {
			return p
		}
		var p gf2.Polynomial
		switch g.src[idx].Kind {
		case KindInput, KindRandom:
			p = gf2.FromVarPoly[VarIdx](idx)
		case KindNot:
			p = rec(g.src[idx].Operands()[0]).Not()
		case KindSum:
			ops := g.src[idx].Operands()
			p = rec(ops[0]).Add(rec(ops[1]))
		case KindProduct:
			ops := g.src[idx].Operands()
			p = rec(ops[0]).Mul(rec(ops[1]))
		}
		memo[idx] = p
		return p
	}
	return rec(i)
}

func (g *CompGraphWork) collectIndependentRandoms() []VarIdx {
	var res []VarIdx
	for i := 0; i < len(g.src); i++ {
		idx := VarIdx(i)
		if g.alive[idx] && !g.probed[idx] && g.src[idx].Kind == KindRandom {
			res = append(res, idx)
		}
	}
	return res
}

// simplify repeatedly finds an independent random r whose invertible
// successor w exists (w's ANF, restricted to the alive graph, has r as a
// primitive monomial), then erases w into a fresh independent random and
// cascades the resulting edge removals. It terminates because each rewrite
// strictly reduces the alive non-random wire count.
func (g *CompGraphWork) simplify() {
	worklist := g.collectIndependentRandoms()
	inWork := make(map[VarIdx]bool, len(worklist))
	for _, r := range worklist {
		inWork[r] = true
	}

	push := func(idx VarIdx) {
		if !inWork[idx] {
			worklist = append(worklist, idx)
			inWork[idx] = true
		}
	}

	for len(worklist) > 0 {
		r := worklist[0]
		worklist = worklist[1:]
		inWork[r] = false

		if !g.alive[r] || g.probed[r] || g.src[r].Kind != KindRandom {
			continue
		}
		d, ok := g.impdom(r)
		if !ok {
			continue
		}

		anf := g.anfErased(d)
		isPrimitive := false
		for _, m := range anf.PrimitiveMonomials() {
			if m.Equal(gf2.FromVar[VarIdx](r)) {
				isPrimitive = true
				break
			}
		}
		if !isPrimitive {
			continue
		}

		oldOps := append([]VarIdx(nil), g.src[d].Operands()...)
		g.src[d] = RandomSrc()
		for _, op := range oldOps {
			g.removeSuccessor(op, d)
		}
		g.prune()

		if g.alive[d] {
			push(d)
		}
		for _, op := range oldOps {
			if g.alive[op] && !g.probed[op] && g.src[op].Kind == KindRandom {
				push(op)
			}
		}
	}
}

// remainingInputs recomputes the erased ANF of every still-probed wire and
// collects the Input leaves, mapped to flat (port*n_shares+share) indices.
func (g *CompGraphWork) remainingInputs() []int {
	seen := make(map[VarIdx]bool)
	var leaves []VarIdx
	for i := 0; i < len(g.src); i++ {
		idx := VarIdx(i)
		if !g.probed[idx] {
			continue
		}
		anf := g.anfErased(idx)
		for _, v := range gf2.Variables[VarIdx](anf) {
			if !seen[v] {
				seen[v] = true
				leaves = append(leaves, v)
			}
		}
	}

	res := make([]int, 0, len(leaves))
	for _, v := range leaves {
		if g.circuit.VarKind(v) != KindInput {
			continue
		}
		tag := g.circuit.Var(v).InPort
		res = append(res, g.circuit.InputShareIndex(tag.Port, tag.Share))
	}
	sort.Ints(res)
	return dedupSorted(res)
}

func dedupSorted(xs []int) []int {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// SimSet returns the minimal set of input-share indices (port*n_shares+share)
// that the joint distribution of probes depends on.
func SimSet(c *Circuit, probes []VarIdx) []int {
	g := newCompGraphWork(c, probes)
	g.prune()
	g.simplify()
	return g.remainingInputs()
}

// SimSet is the Circuit-level entry point for the simulation-set solver.
func (c *Circuit) SimSet(probes []VarIdx) []int {
	return SimSet(c, probes)
}
