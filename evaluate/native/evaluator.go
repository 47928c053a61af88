// Package native is the reference DAG-evaluator back-end (spec.md §4.6): a
// direct, sequential walk of an evalctx.EvalContext's op list against
// package curve's scalar/point arithmetic and package transcript's Native
// adapter. It is the back-end package orchestrate drives to produce a
// concrete pairing-check input.
package native

import (
	"fmt"
	"math/big"

	"github.com/halo2agg/verifier-dag/curve"
	"github.com/halo2agg/verifier-dag/evalctx"
	"github.com/halo2agg/verifier-dag/transcript"
)

// InstanceKey identifies one proof's instance-column commitment, the
// externally supplied table an EvalPos of kind Instance resolves against.
type InstanceKey struct {
	Proof, Col int
}

// slot is an op's result: at most one of Scalar/Point is meaningful,
// determined by which op produced it (spec.md §4.6's result-slot table).
type slot struct {
	Scalar curve.Scalar
	Point  curve.Point
}

// Evaluator walks one EvalContext's ops in order, routing transcript ops
// to the indexed Adapter and resolving every other op via package curve.
type Evaluator struct {
	ctx         *evalctx.EvalContext
	transcripts []transcript.Adapter
	instances   map[InstanceKey]curve.Point
	slots       []slot
}

// New builds an Evaluator for ctx. transcripts is indexed by the
// TranscriptIdx every transcript op in ctx carries; instances supplies the
// externally-provided commitment for every Instance-kind EvalPos ctx
// references.
func New(ctx *evalctx.EvalContext, transcripts []transcript.Adapter, instances map[InstanceKey]curve.Point) *Evaluator {
	return &Evaluator{ctx: ctx, transcripts: transcripts, instances: instances}
}

// Eval walks every op in ctx.Ops and resolves ctx.Finals, in order,
// returning the evaluated point for each final root (Translate only ever
// accepts *ast.Point roots, so every final resolves in the point domain).
func (e *Evaluator) Eval() ([]curve.Point, error) {
	e.slots = make([]slot, len(e.ctx.Ops))
	for i, op := range e.ctx.Ops {
		if err := e.step(i, op); err != nil {
			return nil, fmt.Errorf("evaluate/native: op %d (kind %d): %w", i, op.Kind, err)
		}
	}
	out := make([]curve.Point, len(e.ctx.Finals))
	for i, f := range e.ctx.Finals {
		out[i] = e.resolvePoint(f)
	}
	return out, nil
}

func (e *Evaluator) step(i int, op evalctx.EvalOps) error {
	switch op.Kind {
	case evalctx.OpReadScalar:
		s, err := e.transcript(op.TranscriptIdx).ReadScalar()
		if err != nil {
			return err
		}
		e.slots[i].Scalar = s
	case evalctx.OpReadPoint:
		p, err := e.transcript(op.TranscriptIdx).ReadPoint()
		if err != nil {
			return err
		}
		e.slots[i].Point = p
	case evalctx.OpCommonScalar:
		if err := e.transcript(op.TranscriptIdx).CommonScalar(e.resolveScalar(op.Payload)); err != nil {
			return err
		}
	case evalctx.OpCommonPoint:
		if err := e.transcript(op.TranscriptIdx).CommonPoint(e.resolvePoint(op.Payload)); err != nil {
			return err
		}
	case evalctx.OpSqueeze:
		e.slots[i].Scalar = e.transcript(op.TranscriptIdx).Squeeze()
	case evalctx.OpScalarAdd:
		e.slots[i].Scalar = e.resolveScalar(op.A).Add(e.resolveScalar(op.B))
	case evalctx.OpScalarSub:
		e.slots[i].Scalar = e.resolveScalar(op.A).Sub(e.resolveScalar(op.B))
	case evalctx.OpScalarMul:
		e.slots[i].Scalar = e.resolveScalar(op.A).Mul(e.resolveScalar(op.B))
	case evalctx.OpScalarDiv:
		q, err := e.resolveScalar(op.A).Div(e.resolveScalar(op.B))
		if err != nil {
			return err
		}
		e.slots[i].Scalar = q
	case evalctx.OpScalarPow:
		e.slots[i].Scalar = e.resolveScalar(op.A).Pow(op.Exponent)
	case evalctx.OpMSM:
		points := make([]curve.Point, len(op.Pairs))
		scalars := make([]*big.Int, len(op.Pairs))
		for j, p := range op.Pairs {
			points[j] = e.resolvePoint(p.Point)
			scalars[j] = e.resolveScalar(p.Scalar).BigInt()
		}
		p, err := curve.MSM(points, scalars)
		if err != nil {
			return err
		}
		e.slots[i].Point = p
	case evalctx.OpMSMSlice:
		// Ignored by this batched back-end (spec.md §4.6): the native
		// evaluator reads op.Pairs directly off the capping OpMSM node
		// instead of threading a running accumulator through the chain.
	case evalctx.OpCheckPoint:
		if op.ValueIsPoint {
			e.slots[i].Point = e.resolvePoint(op.A)
		} else {
			e.slots[i].Scalar = e.resolveScalar(op.A)
		}
	default:
		panic("evaluate/native: unreachable op kind")
	}
	return nil
}

func (e *Evaluator) transcript(idx int) transcript.Adapter {
	return e.transcripts[idx]
}

func (e *Evaluator) resolveScalar(pos evalctx.EvalPos) curve.Scalar {
	switch pos.Kind {
	case evalctx.PosConstant:
		return e.ctx.ConstScalars[pos.Index]
	case evalctx.PosOps:
		return e.slots[pos.Index].Scalar
	default:
		panic(fmt.Sprintf("evaluate/native: scalar operand cannot resolve EvalPos kind %d", pos.Kind))
	}
}

func (e *Evaluator) resolvePoint(pos evalctx.EvalPos) curve.Point {
	switch pos.Kind {
	case evalctx.PosConstant:
		return e.ctx.ConstPoints[pos.Index]
	case evalctx.PosInstance:
		p, ok := e.instances[InstanceKey{Proof: pos.Proof, Col: pos.Col}]
		if !ok {
			panic(fmt.Sprintf("evaluate/native: missing instance commitment for proof %d column %d", pos.Proof, pos.Col))
		}
		return p
	case evalctx.PosOps:
		return e.slots[pos.Index].Point
	default:
		panic(fmt.Sprintf("evaluate/native: point operand cannot resolve EvalPos kind %d", pos.Kind))
	}
}
