package ast

import "github.com/halo2agg/verifier-dag/curve"

// Point is an immutable symbolic curve-point expression node.
type Point struct {
	kind PointKind

	// FromConst
	constVal curve.Point

	// FromTranscript
	transcript *Transcript

	// FromInstance
	proofIdx, colIdx int

	// MultiScalarMul
	pairs []MSMPair
	group int

	// CheckPoint
	label string
	inner *Point
}

// PointKind tags the variant of a Point node.
type PointKind int

const (
	PointFromConst PointKind = iota
	PointFromTranscript
	PointFromInstance
	PointMultiScalarMul
	PointCheckPoint
)

// MSMPair is one (point, scalar) term of a multi-scalar multiplication.
type MSMPair struct {
	Point  *Point
	Scalar *Scalar
}

// ConstPoint builds a constant point leaf.
func ConstPoint(p curve.Point) *Point {
	return &Point{kind: PointFromConst, constVal: p}
}

// PointFromTranscriptRead builds a point bound to the next value read from
// a transcript.
func PointFromTranscriptRead(t *Transcript) *Point {
	return &Point{kind: PointFromTranscript, transcript: t}
}

// InstancePoint references one of the externally supplied per-proof
// instance-column commitments.
func InstancePoint(proofIdx, colIdx int) *Point {
	return &Point{kind: PointFromInstance, proofIdx: proofIdx, colIdx: colIdx}
}

// MSM builds a multi-scalar-multiplication node over pairs, tagged with a
// back-end-defined batching group (spec.md §4.5: "group is a user-controlled
// tag that lets the back-end batch multiple logically-distinct MSMs").
func MSM(pairs []MSMPair, group int) *Point {
	cp := make([]MSMPair, len(pairs))
	copy(cp, pairs)
	return &Point{kind: PointMultiScalarMul, pairs: cp, group: group}
}

// CheckPoint wraps p with a debug label; semantically transparent (P8).
func (p *Point) CheckPoint(label string) *Point {
	return &Point{kind: PointCheckPoint, label: label, inner: p}
}

// Kind reports the node's variant.
func (p *Point) Kind() PointKind { return p.kind }

// Const returns the constant value and true for FromConst leaves.
func (p *Point) Const() (curve.Point, bool) {
	if p.kind != PointFromConst {
		return curve.Point{}, false
	}
	return p.constVal, true
}

// Transcript returns the bound transcript for FromTranscript leaves.
func (p *Point) Transcript() *Transcript { return p.transcript }

// Instance returns (proofIdx, colIdx) for FromInstance leaves.
func (p *Point) Instance() (int, int) { return p.proofIdx, p.colIdx }

// Pairs returns the MSM operand list and group tag for MultiScalarMul
// nodes.
func (p *Point) Pairs() ([]MSMPair, int) { return p.pairs, p.group }

// Inner returns the wrapped node for CheckPoint nodes.
func (p *Point) Inner() *Point { return p.inner }

// Label reports a CheckPoint node's debug label.
func (p *Point) Label() string { return p.label }
