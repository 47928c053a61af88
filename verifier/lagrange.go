package verifier

import (
	"math/big"

	"github.com/halo2agg/verifier-dag/ast"
)

// lagrangePoint returns ω^i·x for signed i (negative i uses ω⁻¹), the
// evaluation-domain point at rotation i relative to x.
func lagrangePoint(omega, omegaInv, x *ast.Scalar, i int32) *ast.Scalar {
	return omegaPower(omega, omegaInv, i).Mul(x, false)
}

func omegaPower(omega, omegaInv *ast.Scalar, i int32) *ast.Scalar {
	if i >= 0 {
		return omega.Pow(uint32(i))
	}
	return omegaInv.Pow(uint32(-i))
}

// lagrangeBasis returns l_{-i}(x) = ω^{-i}·(xⁿ-1) / (n·(x-ω^{-i})), the
// standard PLONK Lagrange basis polynomial evaluated at x (spec.md §4.3
// "Lagrange polynomials").
func lagrangeBasis(n, omega, omegaInv, x, xn *ast.Scalar, i int) *ast.Scalar {
	wi := omegaPower(omega, omegaInv, int32(-i))
	one := ast.ConstScalar(big.NewInt(1))
	numerator := wi.Mul(xn.Sub(one), false)
	denominator := n.Mul(x.Sub(wi), false)
	return numerator.Div(denominator)
}

// lagrangeSet builds ls[] for rows 0, -1, ..., -(blindingFactors+1) in
// descending-row order, so ls[0] = l_last and ls[len-1] = l_0, matching
// the original verifier's indexing convention.
func lagrangeSet(n, omega, omegaInv, x, xn *ast.Scalar, blindingFactors int) []*ast.Scalar {
	ls := make([]*ast.Scalar, blindingFactors+2)
	for k, i := 0, blindingFactors+1; i >= 0; k, i = k+1, i-1 {
		ls[k] = lagrangeBasis(n, omega, omegaInv, x, xn, i)
	}
	return ls
}
