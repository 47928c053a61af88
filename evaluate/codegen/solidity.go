package codegen

import (
	"fmt"
	"strings"

	"github.com/halo2agg/verifier-dag/evalctx"
)

// SolidityEmitter walks an evalctx.EvalContext and produces a `.sol`
// verifier function body, grounded on
// original_source/src/solidity_verifier/codegen.rs's SolidityEvalContext:
// value-producing ops become `buf[i] = ...;` assignment statements
// referencing their operands by arena-assigned buffer slot, constant pool
// entries by CONST_SCALAR_n / CONST_POINT_n names, and transcript
// reads/squeezes as `transcript.*()` calls.
type SolidityEmitter struct {
	ctx   *evalctx.EvalContext
	arena *Arena
}

// NewSolidityEmitter prepares an emitter for ctx; call Emit to produce the
// function body text.
func NewSolidityEmitter(ctx *evalctx.EvalContext) *SolidityEmitter {
	return &SolidityEmitter{ctx: ctx, arena: NewArena(ctx)}
}

func (e *SolidityEmitter) operand(pos evalctx.EvalPos, isPoint bool) string {
	switch pos.Kind {
	case evalctx.PosConstant:
		if isPoint {
			return fmt.Sprintf("CONST_POINT_%d", pos.Index)
		}
		return fmt.Sprintf("CONST_SCALAR_%d", pos.Index)
	case evalctx.PosInstance:
		return fmt.Sprintf("instanceCommitments[%d][%d]", pos.Proof, pos.Col)
	case evalctx.PosOps:
		return fmt.Sprintf("buf[%d]", e.arena.SlotOf(pos.Index))
	default:
		return "0"
	}
}

// Emit returns the Solidity statement list implementing ctx's op sequence:
// at most one statement per op (OpMSMSlice emits none, common ops emit a
// bare transcript call), followed by one `finals[i] = ...;` line per
// final, with buffer slots freed and reused once an op's last consumer has
// been emitted.
func (e *SolidityEmitter) Emit() string {
	var b strings.Builder
	for i, op := range e.ctx.Ops {
		slot := e.arena.Alloc(i)
		switch op.Kind {
		case evalctx.OpReadScalar:
			fmt.Fprintf(&b, "buf[%d] = transcript.readScalar();\n", slot)
		case evalctx.OpReadPoint:
			fmt.Fprintf(&b, "buf[%d] = transcript.readPoint();\n", slot)
		case evalctx.OpCommonScalar:
			fmt.Fprintf(&b, "transcript.commonScalar(%s);\n", e.operand(op.Payload, false))
		case evalctx.OpCommonPoint:
			fmt.Fprintf(&b, "transcript.commonPoint(%s);\n", e.operand(op.Payload, true))
		case evalctx.OpSqueeze:
			fmt.Fprintf(&b, "buf[%d] = transcript.squeeze();\n", slot)
		case evalctx.OpScalarAdd:
			fmt.Fprintf(&b, "buf[%d] = addmod(%s, %s, Q);\n", slot, e.operand(op.A, false), e.operand(op.B, false))
		case evalctx.OpScalarSub:
			fmt.Fprintf(&b, "buf[%d] = addmod(%s, Q - %s, Q);\n", slot, e.operand(op.A, false), e.operand(op.B, false))
		case evalctx.OpScalarMul:
			fmt.Fprintf(&b, "buf[%d] = mulmod(%s, %s, Q);\n", slot, e.operand(op.A, false), e.operand(op.B, false))
		case evalctx.OpScalarDiv:
			fmt.Fprintf(&b, "buf[%d] = mulmod(%s, invert(%s), Q);\n", slot, e.operand(op.A, false), e.operand(op.B, false))
		case evalctx.OpScalarPow:
			fmt.Fprintf(&b, "buf[%d] = powmod(%s, %d, Q);\n", slot, e.operand(op.A, false), op.Exponent)
		case evalctx.OpMSM:
			terms := make([]string, len(op.Pairs))
			for j, p := range op.Pairs {
				terms[j] = fmt.Sprintf("%s, %s", e.operand(p.Point, true), e.operand(p.Scalar, false))
			}
			fmt.Fprintf(&b, "buf[%d] = msm(%s);\n", slot, strings.Join(terms, ", "))
		case evalctx.OpMSMSlice:
			// Batched emission folds every pair into the capping OpMSM
			// statement above; no standalone statement is emitted here.
		case evalctx.OpCheckPoint:
			fmt.Fprintf(&b, "buf[%d] = %s; // checkpoint %q\n", slot, e.operand(op.A, op.ValueIsPoint), op.Label)
		}
		e.arena.Release(i)
	}
	for i, f := range e.ctx.Finals {
		fmt.Fprintf(&b, "finals[%d] = %s;\n", i, e.operand(f, true))
	}
	return b.String()
}
