package curve

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// G2Point wraps a BN254 G2 affine point, used only for the two fixed
// pairing bases [s]₂ and -[1]₂ in the final pairing check (spec.md §1).
type G2Point struct {
	inner bn254.G2Affine
}

// NewG2Point wraps a raw gnark-crypto G2 affine point.
func NewG2Point(p bn254.G2Affine) G2Point { return G2Point{inner: p} }

// NegG2Generator returns -[1]₂, the negated G2 generator §6 lists as a
// required curve primitive.
func NegG2Generator() G2Point {
	_, _, _, g2 := bn254.Generators()
	g2.Neg(&g2)
	return G2Point{inner: g2}
}

// PairingCheck evaluates e(wX, s2) * e(wG, negG1) == 1_GT via a single
// multi-Miller-loop + final-exponentiation call, the concrete realization
// of spec.md §1's aggregation pairing check.
func PairingCheck(wX Point, s2 G2Point, wG Point, negG1 G2Point) (bool, error) {
	p := []bn254.G1Affine{wX.inner, wG.inner}
	q := []bn254.G2Affine{s2.inner, negG1.inner}
	ok, err := bn254.PairingCheck(p, q)
	if err != nil {
		return false, err
	}
	return ok, nil
}
