// Package curve adapts gnark-crypto's BN254 group and pairing arithmetic to
// the narrow capability surface the verifier expression DAG's native
// evaluator (package evaluate/native) consumes. It is the concrete,
// in-scope default for the "curve primitives" collaborator that spec.md §6
// lists as externally supplied.
package curve

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// PointByteLen is the canonical compressed encoding length of a G1 point.
const PointByteLen = bn254.SizeOfG1AffineCompressed

// Point wraps a BN254 G1 affine point. The zero value is the identity.
type Point struct {
	inner bn254.G1Affine
}

// NewPoint wraps a raw gnark-crypto affine point.
func NewPoint(p bn254.G1Affine) Point { return Point{inner: p} }

// Generator returns the canonical BN254 G1 generator.
func Generator() Point {
	_, _, g1, _ := bn254.Generators()
	return Point{inner: g1}
}

// Identity returns the group identity element.
func Identity() Point { return Point{} }

// Affine exposes the underlying gnark-crypto point.
func (p Point) Affine() bn254.G1Affine { return p.inner }

// XY returns the affine coordinates as big.Ints, used by the transcript
// adapter's limb decomposition (package transcript) and by codegen.
func (p Point) XY() (*big.Int, *big.Int) {
	x := new(big.Int)
	y := new(big.Int)
	p.inner.X.BigInt(x)
	p.inner.Y.BigInt(y)
	return x, y
}

// Equal reports whether p and q represent the same group element.
func (p Point) Equal(q Point) bool { return p.inner.Equal(&q.inner) }

// Bytes returns the compressed canonical encoding (§4.7, §6).
func (p Point) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

// SetBytes decodes a compressed canonical encoding, returning
// ErrBadEncoding on malformed input (§7 BadProofEncoding).
func SetBytes(buf []byte) (Point, error) {
	var a bn254.G1Affine
	if _, err := a.SetBytes(buf); err != nil {
		return Point{}, fmt.Errorf("%w: %v", ErrBadEncoding, err)
	}
	return Point{inner: a}, nil
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	var r bn254.G1Affine
	r.Add(&p.inner, &q.inner)
	return Point{inner: r}
}

// ScalarMul returns s*p.
func (p Point) ScalarMul(s *big.Int) Point {
	var r bn254.G1Affine
	r.ScalarMultiplication(&p.inner, s)
	return Point{inner: r}
}

// MSM computes the multi-scalar multiplication Σ sᵢ·Pᵢ, the concrete
// "batched" point-domain MSM operation the §4.6 evaluator dispatches to.
func MSM(points []Point, scalars []*big.Int) (Point, error) {
	if len(points) != len(scalars) {
		return Point{}, fmt.Errorf("curve: MSM length mismatch: %d points, %d scalars", len(points), len(scalars))
	}
	if len(points) == 0 {
		return Identity(), nil
	}
	affine := make([]bn254.G1Affine, len(points))
	frScalars := make([]fr.Element, len(points))
	for i := range points {
		affine[i] = points[i].inner
		frScalars[i].SetBigInt(scalars[i])
	}
	var r bn254.G1Affine
	if _, err := r.MultiExp(affine, frScalars, ecc.MultiExpConfig{}); err != nil {
		return Point{}, fmt.Errorf("curve: MSM failed: %w", err)
	}
	return Point{inner: r}, nil
}
