package ast

// Transcript is an immutable, linear-history Fiat-Shamir chain node. Each
// non-init node references the prior node, so branching uses of a
// transcript share a common prefix; evalctx memoizes on the pointer
// identity of these nodes, not their structure (spec.md §4.5, §9 Design
// Notes), because verifier assembly deliberately reuses transcript
// prefixes.
type Transcript struct {
	kind TranscriptKind
	idx  int // which transcript this chain belongs to (multi-proof aggregation)
	prev *Transcript

	scalar *Scalar
	point  *Point
}

// TranscriptKind tags the variant of a Transcript node.
type TranscriptKind int

const (
	TranscriptInit TranscriptKind = iota
	TranscriptCommonScalar
	TranscriptCommonPoint
	TranscriptReadScalar
	TranscriptReadPoint
	TranscriptSqueeze
)

// Init starts a new transcript chain identified by idx (distinguishing
// concurrently threaded transcripts during multi-proof aggregation).
func Init(idx int) *Transcript {
	return &Transcript{kind: TranscriptInit, idx: idx}
}

// CommonScalar absorbs a public scalar into the transcript.
func (t *Transcript) CommonScalar(s *Scalar) *Transcript {
	return &Transcript{kind: TranscriptCommonScalar, idx: t.idx, prev: t, scalar: s}
}

// CommonPoint absorbs a public point into the transcript.
func (t *Transcript) CommonPoint(p *Point) *Transcript {
	return &Transcript{kind: TranscriptCommonPoint, idx: t.idx, prev: t, point: p}
}

// ReadScalar advances the transcript by reading the next scalar from the
// underlying proof byte stream, returning the new transcript state; pair
// with Scalar.Transcript-producing helpers to obtain the read value itself.
func (t *Transcript) ReadScalar() *Transcript {
	return &Transcript{kind: TranscriptReadScalar, idx: t.idx, prev: t}
}

// ReadPoint advances the transcript by reading the next point.
func (t *Transcript) ReadPoint() *Transcript {
	return &Transcript{kind: TranscriptReadPoint, idx: t.idx, prev: t}
}

// SqueezeChallenge advances the transcript by squeezing a challenge.
func (t *Transcript) SqueezeChallenge() *Transcript {
	return &Transcript{kind: TranscriptSqueeze, idx: t.idx, prev: t}
}

// Index reports which concurrently-threaded transcript this chain belongs
// to.
func (t *Transcript) Index() int { return t.idx }

// Kind reports the node's variant.
func (t *Transcript) Kind() TranscriptKind { return t.kind }

// Prev returns the prior transcript state, or nil for Init.
func (t *Transcript) Prev() *Transcript { return t.prev }

// AbsorbedScalar returns the scalar absorbed by a CommonScalar node.
func (t *Transcript) AbsorbedScalar() *Scalar { return t.scalar }

// AbsorbedPoint returns the point absorbed by a CommonPoint node.
func (t *Transcript) AbsorbedPoint() *Point { return t.point }

// ReadScalarValue is sugar combining ReadScalar's state transition with the
// AstScalar leaf that reads its value, the idiom verifier assembly uses
// throughout §4.3.
func (t *Transcript) ReadScalarValue() (*Transcript, *Scalar) {
	next := t.ReadScalar()
	return next, ScalarFromTranscriptRead(next)
}

// ReadPointValue is the point analogue of ReadScalarValue.
func (t *Transcript) ReadPointValue() (*Transcript, *Point) {
	next := t.ReadPoint()
	return next, PointFromTranscriptRead(next)
}

// Squeeze is sugar combining SqueezeChallenge's state transition with the
// AstScalar leaf that reads the squeezed challenge.
func (t *Transcript) Squeeze() (*Transcript, *Scalar) {
	next := t.SqueezeChallenge()
	return next, ScalarFromSqueeze(next)
}
