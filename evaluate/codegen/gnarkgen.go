package codegen

import (
	"fmt"
	"strings"

	"github.com/halo2agg/verifier-dag/evalctx"
)

// GnarkGenEmitter produces a textual Go source file implementing ctx's op
// sequence as a sequence of gnark gadget calls against a frontend.API and
// an emulated.Field, grounded on
// original_source/src/gnark_verifier/codegen.rs's analogous Rust-to-Go
// gadget emission and on package evaluate/circuitdomain's hand-written
// Gadget.Define (the emitted code follows the same op-to-gadget-call
// mapping that package implements directly).
type GnarkGenEmitter struct {
	ctx      *evalctx.EvalContext
	arena    *Arena
	FuncName string
}

// NewGnarkGenEmitter prepares an emitter for ctx, naming the generated
// function funcName.
func NewGnarkGenEmitter(ctx *evalctx.EvalContext, funcName string) *GnarkGenEmitter {
	return &GnarkGenEmitter{ctx: ctx, arena: NewArena(ctx), FuncName: funcName}
}

func (e *GnarkGenEmitter) operand(pos evalctx.EvalPos, isPoint bool) string {
	switch pos.Kind {
	case evalctx.PosConstant:
		if isPoint {
			return fmt.Sprintf("g.ConstantPoints[%d]", pos.Index)
		}
		return fmt.Sprintf("g.ConstantScalars[%d]", pos.Index)
	case evalctx.PosInstance:
		return fmt.Sprintf("g.instance(%d, %d)", pos.Proof, pos.Col)
	case evalctx.PosOps:
		return fmt.Sprintf("s%d", e.arena.SlotOf(pos.Index))
	default:
		return "nil"
	}
}

// Emit returns a complete Go function body (without the surrounding
// `func ... { ... }` wrapper, which the caller supplies) replaying ctx's
// ops as calls against a `curve *sw_bn254.Curve` and `sf
// *emulated.Field[sw_bn254.ScalarField]` in scope and a receiver `g`.
// Gadget.Define in package evaluate/circuitdomain names its scalar field
// `scalarField`, and the `g.nextReadScalar`, `g.nextReadPoint`,
// `g.nextSqueeze` and `g.instance` helpers the text calls are not defined
// on Gadget.
func (e *GnarkGenEmitter) Emit() string {
	var b strings.Builder
	for i, op := range e.ctx.Ops {
		slot := e.arena.Alloc(i)
		v := fmt.Sprintf("s%d", slot)
		switch op.Kind {
		case evalctx.OpReadScalar:
			fmt.Fprintf(&b, "%s := g.nextReadScalar(%d)\n", v, op.TranscriptIdx)
		case evalctx.OpReadPoint:
			fmt.Fprintf(&b, "%s := g.nextReadPoint(%d)\n", v, op.TranscriptIdx)
		case evalctx.OpCommonScalar:
			fmt.Fprintf(&b, "_ = %s // common scalar, side-effect only\n", e.operand(op.Payload, false))
		case evalctx.OpCommonPoint:
			fmt.Fprintf(&b, "_ = %s // common point, side-effect only\n", e.operand(op.Payload, true))
		case evalctx.OpSqueeze:
			fmt.Fprintf(&b, "%s := g.nextSqueeze(%d)\n", v, op.TranscriptIdx)
		case evalctx.OpScalarAdd:
			fmt.Fprintf(&b, "%s := sf.Add(%s, %s)\n", v, e.operand(op.A, false), e.operand(op.B, false))
		case evalctx.OpScalarSub:
			fmt.Fprintf(&b, "%s := sf.Sub(%s, %s)\n", v, e.operand(op.A, false), e.operand(op.B, false))
		case evalctx.OpScalarMul:
			fmt.Fprintf(&b, "%s := sf.Mul(%s, %s)\n", v, e.operand(op.A, false), e.operand(op.B, false))
		case evalctx.OpScalarDiv:
			fmt.Fprintf(&b, "%s := sf.Div(%s, %s)\n", v, e.operand(op.A, false), e.operand(op.B, false))
		case evalctx.OpScalarPow:
			fmt.Fprintf(&b, "%s := sf.Exp(%s, %d)\n", v, e.operand(op.A, false), op.Exponent)
		case evalctx.OpMSM:
			points := make([]string, len(op.Pairs))
			scalars := make([]string, len(op.Pairs))
			for j, p := range op.Pairs {
				points[j] = e.operand(p.Point, true)
				scalars[j] = e.operand(p.Scalar, false)
			}
			fmt.Fprintf(&b, "%s, err := curve.MultiScalarMul([]*sw_bn254.G1Affine{%s}, []*emulated.Element[sw_bn254.ScalarField]{%s})\n",
				v, strings.Join(points, ", "), strings.Join(scalars, ", "))
			fmt.Fprintf(&b, "if err != nil { return fmt.Errorf(\"op %d msm: %%w\", err) }\n", i)
		case evalctx.OpMSMSlice:
			// Folded into the capping OpMSM statement above.
		case evalctx.OpCheckPoint:
			fmt.Fprintf(&b, "%s := %s // checkpoint %q\n", v, e.operand(op.A, op.ValueIsPoint), op.Label)
		}
		e.arena.Release(i)
	}
	for i, f := range e.ctx.Finals {
		fmt.Fprintf(&b, "curve.AssertIsEqual(%s, &g.Finals[%d])\n", e.operand(f, true), i)
	}
	return b.String()
}
