package evalctx

import (
	"container/heap"
	"encoding/hex"
	"math/big"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/curve"
)

// EvalContext is the flat, deduplicated, topologically sorted translation
// of a set of AST roots (spec.md §3, §4.5). ConstScalars/ConstPoints are
// the pooled constant tables Ops entries index into; Finals records, for
// each translated root, the position evaluators must read the result from.
type EvalContext struct {
	Ops          []EvalOps
	ConstScalars []curve.Scalar
	ConstPoints  []curve.Point
	Finals       []EvalPos
}

// Translate builds an EvalContext covering every root in roots, sharing
// structure across roots exactly as the underlying AST shares it (pointer
// identity memoization for transcripts, per spec.md §9 Design Notes; value
// equality for constants and scalar/point subexpressions).
func Translate(roots []*ast.Point) *EvalContext {
	tr := newTranslator()
	finals := make([]EvalPos, len(roots))
	for i, r := range roots {
		finals[i] = tr.translatePoint(r)
	}
	return tr.finish(finals)
}

type translator struct {
	ops      []EvalOps
	opsCache map[string]int

	scalarMemo     map[*ast.Scalar]EvalPos
	pointMemo      map[*ast.Point]EvalPos
	transcriptMemo map[*ast.Transcript]EvalPos

	constScalarCache map[string]int
	constScalars     []curve.Scalar

	constPointCache map[string]int
	constPoints     []curve.Point
}

func newTranslator() *translator {
	return &translator{
		opsCache:         make(map[string]int),
		scalarMemo:       make(map[*ast.Scalar]EvalPos),
		pointMemo:        make(map[*ast.Point]EvalPos),
		transcriptMemo:   make(map[*ast.Transcript]EvalPos),
		constScalarCache: make(map[string]int),
		constPointCache:  make(map[string]int),
	}
}

// pushOp interns op, returning the position of an existing structurally
// equal op when present (spec.md §4.5 common-subexpression elimination,
// property P2).
func (t *translator) pushOp(op EvalOps) EvalPos {
	k := op.key()
	if idx, ok := t.opsCache[k]; ok {
		return Ops(idx)
	}
	idx := len(t.ops)
	t.ops = append(t.ops, op)
	t.opsCache[k] = idx
	return Ops(idx)
}

func (t *translator) internConstScalar(v *big.Int) EvalPos {
	k := v.String()
	if idx, ok := t.constScalarCache[k]; ok {
		return Constant(idx)
	}
	idx := len(t.constScalars)
	t.constScalars = append(t.constScalars, curve.NewScalar(v))
	t.constScalarCache[k] = idx
	return Constant(idx)
}

func (t *translator) internConstPoint(p curve.Point) EvalPos {
	k := hex.EncodeToString(p.Bytes())
	if idx, ok := t.constPointCache[k]; ok {
		return Constant(idx)
	}
	idx := len(t.constPoints)
	t.constPoints = append(t.constPoints, p)
	t.constPointCache[k] = idx
	return Constant(idx)
}

// translateTranscript translates a transcript chain node, memoized on
// pointer identity: two scalar/point leaves that read from the exact same
// transcript node collapse onto the same position even though the Rust
// port's structural derive(Eq) would not, by design (spec.md §9).
func (t *translator) translateTranscript(tc *ast.Transcript) EvalPos {
	if pos, ok := t.transcriptMemo[tc]; ok {
		return pos
	}
	var pos EvalPos
	switch tc.Kind() {
	case ast.TranscriptInit:
		pos = Empty()
	case ast.TranscriptCommonScalar:
		prev := t.translateTranscript(tc.Prev())
		payload := t.translateScalar(tc.AbsorbedScalar())
		pos = t.pushOp(EvalOps{Kind: OpCommonScalar, TranscriptIdx: tc.Index(), Prev: prev, Payload: payload})
	case ast.TranscriptCommonPoint:
		prev := t.translateTranscript(tc.Prev())
		payload := t.translatePoint(tc.AbsorbedPoint())
		pos = t.pushOp(EvalOps{Kind: OpCommonPoint, TranscriptIdx: tc.Index(), Prev: prev, Payload: payload})
	case ast.TranscriptReadScalar:
		prev := t.translateTranscript(tc.Prev())
		pos = t.pushOp(EvalOps{Kind: OpReadScalar, TranscriptIdx: tc.Index(), Prev: prev})
	case ast.TranscriptReadPoint:
		prev := t.translateTranscript(tc.Prev())
		pos = t.pushOp(EvalOps{Kind: OpReadPoint, TranscriptIdx: tc.Index(), Prev: prev})
	case ast.TranscriptSqueeze:
		prev := t.translateTranscript(tc.Prev())
		pos = t.pushOp(EvalOps{Kind: OpSqueeze, TranscriptIdx: tc.Index(), Prev: prev})
	default:
		panic("evalctx: unreachable transcript kind")
	}
	t.transcriptMemo[tc] = pos
	return pos
}

func (t *translator) translateScalar(s *ast.Scalar) EvalPos {
	if pos, ok := t.scalarMemo[s]; ok {
		return pos
	}
	var pos EvalPos
	switch s.Kind() {
	case ast.ScalarFromConst:
		v, _ := s.Const()
		pos = t.internConstScalar(v)
	case ast.ScalarFromTranscript, ast.ScalarFromChallenge:
		pos = t.translateTranscript(s.Transcript())
	case ast.ScalarAdd:
		l, r := s.Operands()
		pos = t.pushOp(EvalOps{Kind: OpScalarAdd, A: t.translateScalar(l), B: t.translateScalar(r)})
	case ast.ScalarSub:
		l, r := s.Operands()
		pos = t.pushOp(EvalOps{Kind: OpScalarSub, A: t.translateScalar(l), B: t.translateScalar(r)})
	case ast.ScalarMul:
		l, r := s.Operands()
		pos = t.pushOp(EvalOps{Kind: OpScalarMul, A: t.translateScalar(l), B: t.translateScalar(r), ContinueGroup: s.ContinueGroup()})
	case ast.ScalarDiv:
		l, r := s.Operands()
		pos = t.pushOp(EvalOps{Kind: OpScalarDiv, A: t.translateScalar(l), B: t.translateScalar(r)})
	case ast.ScalarPow:
		base, _ := s.Operands()
		pos = t.pushOp(EvalOps{Kind: OpScalarPow, A: t.translateScalar(base), Exponent: s.Exponent()})
	case ast.ScalarCheckPoint:
		inner, _ := s.Operands()
		pos = t.pushOp(EvalOps{Kind: OpCheckPoint, A: t.translateScalar(inner), Label: s.Label(), ValueIsPoint: false})
	default:
		panic("evalctx: unreachable scalar kind")
	}
	t.scalarMemo[s] = pos
	return pos
}

func (t *translator) translatePoint(p *ast.Point) EvalPos {
	if pos, ok := t.pointMemo[p]; ok {
		return pos
	}
	var pos EvalPos
	switch p.Kind() {
	case ast.PointFromConst:
		v, _ := p.Const()
		pos = t.internConstPoint(v)
	case ast.PointFromTranscript:
		pos = t.translateTranscript(p.Transcript())
	case ast.PointFromInstance:
		proofIdx, colIdx := p.Instance()
		pos = Instance(proofIdx, colIdx)
	case ast.PointMultiScalarMul:
		pos = t.translateMSM(p)
	case ast.PointCheckPoint:
		pos = t.pushOp(EvalOps{Kind: OpCheckPoint, A: t.translatePoint(p.Inner()), Label: p.Label(), ValueIsPoint: true})
	default:
		panic("evalctx: unreachable point kind")
	}
	t.pointMemo[p] = pos
	return pos
}

// translateMSM expands a multi-scalar-multiplication node into a chain of
// MSMSlice ops (one per term, threading PrevSlice so the dependency graph
// sees each accumulation step) capped by a single MSM op that back-ends
// consume directly via its Pairs list (spec.md §4.5, mirroring the
// original AstPoint::MultiExp translation).
func (t *translator) translateMSM(p *ast.Point) EvalPos {
	astPairs, group := p.Pairs()
	pairs := make([]MSMPair, len(astPairs))
	prevSlice := Empty()
	hasPrev := false
	for i, ap := range astPairs {
		pointPos := t.translatePoint(ap.Point)
		scalarPos := t.translateScalar(ap.Scalar)
		pairs[i] = MSMPair{Point: pointPos, Scalar: scalarPos}
		slicePos := t.pushOp(EvalOps{
			Kind:         OpMSMSlice,
			Pair:         pairs[i],
			HasPrevSlice: hasPrev,
			PrevSlice:    prevSlice,
			Group:        group,
		})
		prevSlice = slicePos
		hasPrev = true
	}
	return t.pushOp(EvalOps{Kind: OpMSM, Last: prevSlice, Pairs: pairs, Group: group})
}

func (t *translator) finish(finals []EvalPos) *EvalContext {
	order, reverseOrder := topoSort(t.ops)
	newOps := make([]EvalOps, len(t.ops))
	for newPos, oldIdx := range order {
		newOps[newPos] = t.ops[oldIdx].remap(reverseOrder)
	}
	remappedFinals := make([]EvalPos, len(finals))
	for i, f := range finals {
		remappedFinals[i] = f.remap(reverseOrder)
	}
	return &EvalContext{
		Ops:          newOps,
		ConstScalars: t.constScalars,
		ConstPoints:  t.constPoints,
		Finals:       remappedFinals,
	}
}

// topoSort computes a deterministic topological order of ops: among all
// currently-ready (in-degree-zero) indices it always schedules the
// smallest one next, guaranteeing the same ordering for identically
// constructed inputs (spec.md §4.5 property P3, digest/contract-hash
// stability). Ties are broken by construction index, so the order depends
// on the order in which ops were pushed. It returns order (new position ->
// old index) and reverseOrder (old index -> new position).
func topoSort(ops []EvalOps) (order []int, reverseOrder []int) {
	n := len(ops)
	inDeg := make([]int, n)
	adj := make([][]int, n)
	for i := range ops {
		for _, d := range ops[i].deps() {
			if d.IsOps() {
				adj[d.Index] = append(adj[d.Index], i)
				inDeg[i]++
			}
		}
	}

	ready := &indexHeap{}
	for i := 0; i < n; i++ {
		if inDeg[i] == 0 {
			heap.Push(ready, i)
		}
	}

	order = make([]int, 0, n)
	for ready.Len() > 0 {
		i := heap.Pop(ready).(int)
		order = append(order, i)
		for _, next := range adj[i] {
			inDeg[next]--
			if inDeg[next] == 0 {
				heap.Push(ready, next)
			}
		}
	}
	if len(order) != n {
		panic("evalctx: dependency graph contains a cycle")
	}

	reverseOrder = make([]int, n)
	for newPos, oldIdx := range order {
		reverseOrder[oldIdx] = newPos
	}
	return order, reverseOrder
}

// indexHeap is a min-heap of op indices, giving topoSort its
// smallest-ready-index-first determinism guarantee.
type indexHeap []int

func (h indexHeap) Len() int            { return len(h) }
func (h indexHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *indexHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *indexHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
