// Package ast defines the symbolic building blocks of the verifier
// expression DAG: scalar nodes with math/big constants and point nodes with
// BN254 curve.Point constants,
// and the linear-history transcript chain that threads Fiat-Shamir state
// through verifier assembly.
//
// Every node is an immutable, shared handle: operator constructors never
// mutate an operand, they return a new node referencing it. Deduplication
// and topological ordering are the job of package evalctx; this package
// only builds the tree.
package ast

import "math/big"

// Scalar is an immutable symbolic scalar-field expression node.
type Scalar struct {
	kind ScalarKind

	// FromConst
	constVal *big.Int

	// FromTranscript / FromChallenge
	transcript *Transcript

	// Add / Sub / Mul / Div
	left, right *Scalar
	continueMSM bool // Mul only: "is_cg" — see evalctx.EvalOps.ContinueGroup

	// Pow
	exponent uint32

	// CheckPoint
	label string
	inner *Scalar
}

// ScalarKind tags the variant of a Scalar node.
type ScalarKind int

const (
	ScalarFromConst ScalarKind = iota
	ScalarFromTranscript
	ScalarFromChallenge
	ScalarAdd
	ScalarSub
	ScalarMul
	ScalarDiv
	ScalarPow
	ScalarCheckPoint
)

// ConstScalar builds a constant scalar leaf.
func ConstScalar(v *big.Int) *Scalar {
	return &Scalar{kind: ScalarFromConst, constVal: new(big.Int).Set(v)}
}

// ScalarFromTranscriptRead builds a scalar bound to the next value read from
// a transcript (see Transcript.ReadScalar).
func ScalarFromTranscriptRead(t *Transcript) *Scalar {
	return &Scalar{kind: ScalarFromTranscript, transcript: t}
}

// ScalarFromSqueeze builds a scalar bound to a squeezed challenge.
func ScalarFromSqueeze(t *Transcript) *Scalar {
	return &Scalar{kind: ScalarFromChallenge, transcript: t}
}

// Add returns a new node for a + b.
func (a *Scalar) Add(b *Scalar) *Scalar {
	return &Scalar{kind: ScalarAdd, left: a, right: b}
}

// Sub returns a new node for a - b.
func (a *Scalar) Sub(b *Scalar) *Scalar {
	return &Scalar{kind: ScalarSub, left: a, right: b}
}

// Mul returns a new node for a * b. continueGroup is the "continue a
// running MSM group" flag threaded through to evalctx.EvalOps.ContinueGroup; it has no
// effect on the scalar's value, only on how batched back-ends may fuse the
// multiplication with an adjacent MSM.
func (a *Scalar) Mul(b *Scalar, continueGroup bool) *Scalar {
	return &Scalar{kind: ScalarMul, left: a, right: b, continueMSM: continueGroup}
}

// Div returns a new node for a / b.
func (a *Scalar) Div(b *Scalar) *Scalar {
	return &Scalar{kind: ScalarDiv, left: a, right: b}
}

// Pow returns a new node for a^n, n a known-at-translation-time exponent.
func (a *Scalar) Pow(n uint32) *Scalar {
	return &Scalar{kind: ScalarPow, left: a, exponent: n}
}

// CheckPoint wraps a with a debug label. It is semantically transparent:
// evaluation of a CheckPoint node always yields the inner node's value
// (property P8).
func (a *Scalar) CheckPoint(label string) *Scalar {
	return &Scalar{kind: ScalarCheckPoint, label: label, inner: a}
}

// Kind reports the node's variant.
func (a *Scalar) Kind() ScalarKind { return a.kind }

// Const returns the constant value and true if a is a FromConst leaf.
func (a *Scalar) Const() (*big.Int, bool) {
	if a.kind != ScalarFromConst {
		return nil, false
	}
	return a.constVal, true
}

// Transcript returns the bound transcript for FromTranscript/FromChallenge
// leaves.
func (a *Scalar) Transcript() *Transcript { return a.transcript }

// Operands returns (left, right) for binary nodes, (inner, nil) for Pow and
// CheckPoint, (nil, nil) for leaves.
func (a *Scalar) Operands() (*Scalar, *Scalar) {
	switch a.kind {
	case ScalarAdd, ScalarSub, ScalarMul, ScalarDiv:
		return a.left, a.right
	case ScalarPow, ScalarCheckPoint:
		if a.kind == ScalarPow {
			return a.left, nil
		}
		return a.inner, nil
	default:
		return nil, nil
	}
}

// ContinueGroup reports the Mul node's continue-group flag.
func (a *Scalar) ContinueGroup() bool { return a.continueMSM }

// Exponent reports the Pow node's exponent.
func (a *Scalar) Exponent() uint32 { return a.exponent }

// Label reports a CheckPoint node's debug label.
func (a *Scalar) Label() string { return a.label }
