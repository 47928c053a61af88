package curve

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ScalarByteLen is the canonical encoded length of a scalar-field element.
const ScalarByteLen = fr.Bytes

// Scalar wraps a BN254 scalar-field element.
type Scalar struct {
	inner fr.Element
}

// NewScalar reduces v modulo the scalar field.
func NewScalar(v *big.Int) Scalar {
	var s Scalar
	s.inner.SetBigInt(v)
	return s
}

// ScalarFromUint64 builds a small constant scalar.
func ScalarFromUint64(v uint64) Scalar {
	var s Scalar
	s.inner.SetUint64(v)
	return s
}

// BigInt materializes the scalar as a canonical-range big.Int.
func (s Scalar) BigInt() *big.Int {
	out := new(big.Int)
	s.inner.BigInt(out)
	return out
}

// Bytes returns the canonical big-endian encoding.
func (s Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

// SetScalarBytes decodes a canonical scalar encoding.
func SetScalarBytes(buf []byte) (Scalar, error) {
	var s Scalar
	if len(buf) != fr.Bytes {
		return Scalar{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrBadEncoding, fr.Bytes, len(buf))
	}
	var arr [fr.Bytes]byte
	copy(arr[:], buf)
	s.inner.SetBytes(arr[:])
	return s, nil
}

func (s Scalar) Add(t Scalar) Scalar { var r Scalar; r.inner.Add(&s.inner, &t.inner); return r }
func (s Scalar) Sub(t Scalar) Scalar { var r Scalar; r.inner.Sub(&s.inner, &t.inner); return r }
func (s Scalar) Mul(t Scalar) Scalar { var r Scalar; r.inner.Mul(&s.inner, &t.inner); return r }

// Div returns s/t, surfacing ErrArithmetic if t is zero.
func (s Scalar) Div(t Scalar) (Scalar, error) {
	if t.inner.IsZero() {
		return Scalar{}, ErrArithmetic
	}
	var r Scalar
	r.inner.Div(&s.inner, &t.inner)
	return r, nil
}

// Pow computes s^n via square-and-multiply (fr.Element.Exp already does
// this; wrapped here so the native back-end's ScalarPow dispatch matches
// the §4.6 capability surface one-to-one).
func (s Scalar) Pow(n uint32) Scalar {
	var r Scalar
	r.inner.Exp(s.inner, new(big.Int).SetUint64(uint64(n)))
	return r
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool { return s.inner.IsZero() }

// Equal reports value equality.
func (s Scalar) Equal(t Scalar) bool { return s.inner.Equal(&t.inner) }

// ScalarMulPoint is a convenience used by the query-schema evaluator to
// scale a commitment point by its folded coefficient.
func ScalarMulPoint(s Scalar, p Point) Point {
	return p.ScalarMul(s.BigInt())
}
