// Package circuitdomain implements the In-circuit Back-end (SPEC_FULL.md
// §4.10, C10): the same DAG walk package evaluate/native performs against
// concrete curve.Scalar/curve.Point values, replayed instead as a gnark
// frontend.Circuit over emulated BN254 field arithmetic, so an aggregator
// circuit can assert "this proof family verifies" as a constraint rather
// than as a Go-side boolean. Grounded on the teacher's
// circuits/aggregator/aggregator.go: the same std/algebra/emulated/sw_bn254
// + std/math/emulated + vocdoni mimc7 stack, generalized from verifying a
// fixed groth16 recursion layer to replaying an arbitrary evalctx.EvalContext.
package circuitdomain

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/emulated/sw_bn254"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/vocdoni/gnark-crypto-primitives/emulated/bn254/twistededwards/mimc7"

	"github.com/halo2agg/verifier-dag/evalctx"
)

// ScalarField is the emulated field the circuit's scalar-domain values
// live in: BN254's Fr, the same field package curve.Scalar wraps natively.
type ScalarField = sw_bn254.ScalarField

// Scalar is one scalar-domain slot value inside the circuit.
type Scalar = emulated.Element[ScalarField]

// Point is one point-domain slot value inside the circuit, BN254's G1.
type Point = sw_bn254.G1Affine

// TranscriptWitness is the in-circuit analogue of a transcript.Adapter: the
// caller supplies every value the transcript would have read or squeezed,
// in the exact order evalctx.Translate scheduled them, as circuit inputs.
// Unlike the native back-end, the in-circuit gadget cannot itself parse a
// byte stream or run a sponge permutation cheaply per constraint, so the
// witness carries the already-extracted values and the gadget only asserts
// that the constants pool was absorbed correctly (via ConstantsHash below).
type TranscriptWitness struct {
	ReadScalars []Scalar
	ReadPoints  []Point
	Squeezes    []Scalar
}

// Gadget is the in-circuit DAG Evaluator. Ctx is baked in at circuit-compile
// time (it is a fixed property of the verifier family being aggregated, not
// a witness value), so it is excluded from the gnark schema via the
// `gnark:"-"` tag. ConstantsHash is the public input exposing the MiMC7
// digest of the translated constant scalars; constant points are not
// hashed (SPEC_FULL.md §4.10 "aggregator
// circuit remains uniform over changing constants"): the aggregator circuit
// checks this digest rather than hard-wiring the constants themselves,
// letting the same circuit serve any EvalContext sharing its op shape.
type Gadget struct {
	Ctx *evalctx.EvalContext `gnark:"-"`

	Transcripts []TranscriptWitness
	Instances   map[evalctx.EvalPos]Point `gnark:"-"`

	ConstantScalars []Scalar
	ConstantPoints  []Point

	ConstantsHash frontend.Variable `gnark:",public"`

	// Finals are asserted equal to the evaluator's resolved finals rather
	// than returned, matching Define's error-only return convention.
	Finals []Point `gnark:",public"`
}

type slot struct {
	scalar *Scalar
	point  *Point
}

// checkConstantsHash recomputes the MiMC7 digest over the translated
// constant scalar pool and asserts it matches the public ConstantsHash
// input, the same "recompute and AssertSumIsEqual" shape as the teacher's
// checkInputsHash.
func (g *Gadget) checkConstantsHash(api frontend.API) error {
	hFn, err := mimc7.NewMiMC(api)
	if err != nil {
		return fmt.Errorf("circuitdomain: constructing mimc7: %w", err)
	}
	for _, c := range g.ConstantScalars {
		limbs := make([]frontend.Variable, len(c.Limbs))
		copy(limbs, c.Limbs)
		if err := hFn.Write(limbs...); err != nil {
			return fmt.Errorf("circuitdomain: hashing constant pool: %w", err)
		}
	}
	hFn.AssertSumIsEqual(g.ConstantsHash)
	return nil
}

// Define replays Ctx.Ops exactly as evaluate/native.Evaluator.step does,
// substituting gadget calls for curve.Scalar/curve.Point methods.
func (g *Gadget) Define(api frontend.API) error {
	curve, err := sw_bn254.NewCurve(api)
	if err != nil {
		return fmt.Errorf("circuitdomain: constructing bn254 curve gadget: %w", err)
	}
	scalarField, err := emulated.NewField[ScalarField](api)
	if err != nil {
		return fmt.Errorf("circuitdomain: constructing scalar field gadget: %w", err)
	}
	if err := g.checkConstantsHash(api); err != nil {
		return err
	}

	slots := make([]slot, len(g.Ctx.Ops))
	readCursors := make([]int, len(g.Transcripts))
	squeezeCursors := make([]int, len(g.Transcripts))
	pointCursors := make([]int, len(g.Transcripts))

	resolveScalar := func(pos evalctx.EvalPos) *Scalar {
		switch pos.Kind {
		case evalctx.PosConstant:
			return &g.ConstantScalars[pos.Index]
		case evalctx.PosOps:
			return slots[pos.Index].scalar
		default:
			panic("circuitdomain: scalar position not resolvable in-circuit")
		}
	}
	resolvePoint := func(pos evalctx.EvalPos) *Point {
		switch pos.Kind {
		case evalctx.PosConstant:
			return &g.ConstantPoints[pos.Index]
		case evalctx.PosInstance:
			p, ok := g.Instances[pos]
			if !ok {
				panic("circuitdomain: missing instance commitment witness")
			}
			return &p
		case evalctx.PosOps:
			return slots[pos.Index].point
		default:
			panic("circuitdomain: point position not resolvable in-circuit")
		}
	}

	for i, op := range g.Ctx.Ops {
		switch op.Kind {
		case evalctx.OpReadScalar:
			v := g.Transcripts[op.TranscriptIdx].ReadScalars[readCursors[op.TranscriptIdx]]
			readCursors[op.TranscriptIdx]++
			slots[i].scalar = &v
		case evalctx.OpReadPoint:
			v := g.Transcripts[op.TranscriptIdx].ReadPoints[pointCursors[op.TranscriptIdx]]
			pointCursors[op.TranscriptIdx]++
			slots[i].point = &v
		case evalctx.OpCommonScalar, evalctx.OpCommonPoint:
			// No constraint is emitted: absorbed values are not hashed
			// in-circuit, and read/squeeze outputs enter as the
			// TranscriptWitness values.
		case evalctx.OpSqueeze:
			v := g.Transcripts[op.TranscriptIdx].Squeezes[squeezeCursors[op.TranscriptIdx]]
			squeezeCursors[op.TranscriptIdx]++
			slots[i].scalar = &v
		case evalctx.OpScalarAdd:
			slots[i].scalar = scalarField.Add(resolveScalar(op.A), resolveScalar(op.B))
		case evalctx.OpScalarSub:
			slots[i].scalar = scalarField.Sub(resolveScalar(op.A), resolveScalar(op.B))
		case evalctx.OpScalarMul:
			slots[i].scalar = scalarField.Mul(resolveScalar(op.A), resolveScalar(op.B))
		case evalctx.OpScalarDiv:
			slots[i].scalar = scalarField.Div(resolveScalar(op.A), resolveScalar(op.B))
		case evalctx.OpScalarPow:
			acc := scalarField.One()
			base := resolveScalar(op.A)
			for e := op.Exponent; e > 0; e >>= 1 {
				if e&1 == 1 {
					acc = scalarField.Mul(acc, base)
				}
				base = scalarField.Mul(base, base)
			}
			slots[i].scalar = acc
		case evalctx.OpMSM:
			points := make([]*Point, len(op.Pairs))
			scalars := make([]*Scalar, len(op.Pairs))
			for j, p := range op.Pairs {
				points[j] = resolvePoint(p.Point)
				scalars[j] = resolveScalar(p.Scalar)
			}
			res, err := curve.MultiScalarMul(points, scalars)
			if err != nil {
				return fmt.Errorf("circuitdomain: op %d multi-scalar-mul: %w", i, err)
			}
			slots[i].point = res
		case evalctx.OpMSMSlice:
			// Ignored, same as the native back-end (spec.md §4.6): only a
			// streaming back-end materializes intermediate MSM partials.
		case evalctx.OpCheckPoint:
			if op.ValueIsPoint {
				slots[i].point = resolvePoint(op.A)
			} else {
				slots[i].scalar = resolveScalar(op.A)
			}
		default:
			return fmt.Errorf("circuitdomain: op %d: unsupported op kind %d", i, op.Kind)
		}
	}

	for i, f := range g.Ctx.Finals {
		curve.AssertIsEqual(resolvePoint(f), &g.Finals[i])
	}
	return nil
}
