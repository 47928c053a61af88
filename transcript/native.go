package transcript

import (
	"fmt"
	"math/big"

	"github.com/halo2agg/verifier-dag/curve"
)

// Native is the reference Adapter implementation: a duplex sponge over a
// proof's byte stream. Every ReadScalar/ReadPoint call advances a cursor
// into the stream using the curve's canonical encodings; any decoding
// failure surfaces curve.ErrBadEncoding (spec.md §7 BadProofEncoding) and
// never panics, so a malformed proof degrades to a clean verification
// failure rather than a crash.
type Native struct {
	sponge Sponge
	proof  []byte
	cursor int
}

// NewNative builds a Native transcript reading from proof, using sponge as
// its duplex hash state (config.HashKind selects the concrete Sponge).
func NewNative(proof []byte, sponge Sponge) *Native {
	return &Native{sponge: sponge, proof: proof}
}

func (n *Native) take(size int) ([]byte, error) {
	if n.cursor+size > len(n.proof) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", curve.ErrBadEncoding, size, n.cursor, len(n.proof))
	}
	b := n.proof[n.cursor : n.cursor+size]
	n.cursor += size
	return b, nil
}

// ReadScalar reads the next canonical scalar from the byte stream and
// absorbs it as common input, mirroring a halo2-style transcript where
// every read value also becomes part of the sponge state.
func (n *Native) ReadScalar() (curve.Scalar, error) {
	raw, err := n.take(curve.ScalarByteLen)
	if err != nil {
		return curve.Scalar{}, err
	}
	s, err := curve.SetScalarBytes(raw)
	if err != nil {
		return curve.Scalar{}, err
	}
	n.sponge.Absorb(s.BigInt())
	return s, nil
}

// ReadPoint reads the next canonical compressed point.
func (n *Native) ReadPoint() (curve.Point, error) {
	raw, err := n.take(curve.PointByteLen)
	if err != nil {
		return curve.Point{}, err
	}
	p, err := curve.SetBytes(raw)
	if err != nil {
		return curve.Point{}, err
	}
	if sponge, ok := n.sponge.(pointAbsorber); ok {
		sponge.AbsorbPointLimbs(splitPointToLimbs(p))
	}
	return p, nil
}

// CommonScalar absorbs an externally-supplied (not read from the proof)
// public scalar, e.g. a verification-key digest (spec.md §4.3 step 1).
func (n *Native) CommonScalar(s curve.Scalar) error {
	n.sponge.Absorb(s.BigInt())
	return nil
}

// CommonPoint absorbs an externally-supplied public point, e.g. an
// instance-column commitment.
func (n *Native) CommonPoint(p curve.Point) error {
	if sponge, ok := n.sponge.(pointAbsorber); ok {
		sponge.AbsorbPointLimbs(splitPointToLimbs(p))
		return nil
	}
	x, y := p.XY()
	n.sponge.Absorb(x)
	n.sponge.Absorb(y)
	return nil
}

// Squeeze derives the next challenge from the sponge.
func (n *Native) Squeeze() curve.Scalar {
	return curve.NewScalar(n.sponge.Squeeze())
}

// pointAbsorber is implemented by sponges (PoseidonSponge) that know how
// to absorb a point's limb decomposition directly.
type pointAbsorber interface {
	AbsorbPointLimbs(limbs [3]*big.Int)
}
