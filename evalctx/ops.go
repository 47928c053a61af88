package evalctx

import (
	"fmt"
	"strings"
)

// OpKind tags the variant of an EvalOps DAG node (spec.md §3).
type OpKind int

const (
	OpReadScalar OpKind = iota
	OpReadPoint
	OpCommonScalar
	OpCommonPoint
	OpSqueeze
	OpScalarAdd
	OpScalarSub
	OpScalarMul
	OpScalarDiv
	OpScalarPow
	OpMSM
	OpMSMSlice
	OpCheckPoint
)

// MSMPair is one (point, scalar) operand pair of an MSM/MSMSlice op.
type MSMPair struct {
	Point  EvalPos
	Scalar EvalPos
}

// EvalOps is a single DAG node (spec.md §3).
type EvalOps struct {
	Kind OpKind

	// Transcript ops: TranscriptIdx identifies which concurrently-threaded
	// transcript this op belongs to; Prev is the predecessor transcript
	// state; Payload is the absorbed scalar/point for Common*.
	TranscriptIdx int
	Prev          EvalPos
	Payload       EvalPos

	// Scalar binary ops (Add/Sub/Mul/Div): A, B.
	A, B          EvalPos
	ContinueGroup bool // ScalarMul only

	// ScalarPow: A is the base, Exponent the power.
	Exponent uint32

	// MSM: Pairs lists every (point, scalar) term; Last references the
	// final MSMSlice in the dependency chain.
	Pairs []MSMPair
	Last  EvalPos

	// MSMSlice: Pair is this slice's term, HasPrevSlice/PrevSlice chain
	// slices in construction order, Group is the back-end batching tag.
	Pair         MSMPair
	HasPrevSlice bool
	PrevSlice    EvalPos
	Group        int

	// CheckPoint: Label names the debug checkpoint, A is the wrapped
	// value. ValueIsPoint disambiguates which domain A resolves in, since
	// a single OpCheckPoint kind serves both ast.Scalar and ast.Point
	// checkpoints and A's own EvalPos (Constant/Instance) does not by
	// itself disclose which constant pool or domain it belongs to.
	Label        string
	ValueIsPoint bool
}

// Deps returns every EvalPos operand op references, exported for
// consumers outside this package (package codegen's Arena) that need to
// trace an op's operands without duplicating this switch.
func (op *EvalOps) Deps() []EvalPos { return op.deps() }

// deps returns every EvalPos operand this op references, used both to
// build the dependency graph during translation and to find every Ops(i)
// reference that must be rewritten after topological sorting.
func (op *EvalOps) deps() []EvalPos {
	switch op.Kind {
	case OpReadScalar, OpReadPoint, OpSqueeze:
		return []EvalPos{op.Prev}
	case OpCommonScalar, OpCommonPoint:
		return []EvalPos{op.Prev, op.Payload}
	case OpScalarAdd, OpScalarSub, OpScalarMul, OpScalarDiv:
		return []EvalPos{op.A, op.B}
	case OpScalarPow:
		return []EvalPos{op.A}
	case OpMSM:
		deps := make([]EvalPos, 0, 1+2*len(op.Pairs))
		deps = append(deps, op.Last)
		for _, p := range op.Pairs {
			deps = append(deps, p.Point, p.Scalar)
		}
		return deps
	case OpMSMSlice:
		deps := []EvalPos{op.Pair.Point, op.Pair.Scalar}
		if op.HasPrevSlice {
			deps = append(deps, op.PrevSlice)
		}
		return deps
	case OpCheckPoint:
		return []EvalPos{op.A}
	default:
		panic("evalctx: unreachable op kind")
	}
}

// remap rewrites every Ops(i) operand through reverseOrder, the final step
// of topological sorting (spec.md §4.5 step 4).
func (op EvalOps) remap(reverseOrder []int) EvalOps {
	r := op
	switch op.Kind {
	case OpReadScalar, OpReadPoint, OpSqueeze:
		r.Prev = op.Prev.remap(reverseOrder)
	case OpCommonScalar, OpCommonPoint:
		r.Prev = op.Prev.remap(reverseOrder)
		r.Payload = op.Payload.remap(reverseOrder)
	case OpScalarAdd, OpScalarSub, OpScalarMul, OpScalarDiv:
		r.A = op.A.remap(reverseOrder)
		r.B = op.B.remap(reverseOrder)
	case OpScalarPow:
		r.A = op.A.remap(reverseOrder)
	case OpMSM:
		r.Last = op.Last.remap(reverseOrder)
		pairs := make([]MSMPair, len(op.Pairs))
		for i, p := range op.Pairs {
			pairs[i] = MSMPair{Point: p.Point.remap(reverseOrder), Scalar: p.Scalar.remap(reverseOrder)}
		}
		r.Pairs = pairs
	case OpMSMSlice:
		r.Pair = MSMPair{Point: op.Pair.Point.remap(reverseOrder), Scalar: op.Pair.Scalar.remap(reverseOrder)}
		if op.HasPrevSlice {
			r.PrevSlice = op.PrevSlice.remap(reverseOrder)
		}
	case OpCheckPoint:
		r.A = op.A.remap(reverseOrder)
	}
	return r
}

// key returns a canonical string encoding of op's structure, used as the
// push_op dedup cache key (spec.md §4.5: "push_op consults a keyed lookup
// on the operator structure"). Two structurally equal ops always produce
// the same key and vice versa.
func (op EvalOps) key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|", op.Kind)
	switch op.Kind {
	case OpReadScalar, OpReadPoint, OpSqueeze:
		fmt.Fprintf(&b, "%d|%v", op.TranscriptIdx, op.Prev)
	case OpCommonScalar, OpCommonPoint:
		fmt.Fprintf(&b, "%d|%v|%v", op.TranscriptIdx, op.Prev, op.Payload)
	case OpScalarAdd, OpScalarSub, OpScalarDiv:
		fmt.Fprintf(&b, "%v|%v", op.A, op.B)
	case OpScalarMul:
		fmt.Fprintf(&b, "%v|%v|%v", op.A, op.B, op.ContinueGroup)
	case OpScalarPow:
		fmt.Fprintf(&b, "%v|%d", op.A, op.Exponent)
	case OpMSM:
		fmt.Fprintf(&b, "%v|", op.Last)
		for _, p := range op.Pairs {
			fmt.Fprintf(&b, "(%v,%v)", p.Point, p.Scalar)
		}
	case OpMSMSlice:
		fmt.Fprintf(&b, "%v|%v|%v|%d", op.Pair.Point, op.Pair.Scalar, op.HasPrevSlice && true, op.Group)
		if op.HasPrevSlice {
			fmt.Fprintf(&b, "|%v", op.PrevSlice)
		}
	case OpCheckPoint:
		fmt.Fprintf(&b, "%s|%v|%v", op.Label, op.A, op.ValueIsPoint)
	}
	return b.String()
}
