package verifier

import (
	"math/big"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/query"
)

// vanishingArg is the vanishing-argument commitments and openings for a
// single proof, grounded on the original `vanish::Evaluated`.
type vanishingArg struct {
	key string

	hPieces         []*ast.Point
	randomPoly      *ast.Point
	randomEval      *ast.Scalar
	expectedHEval   *ast.Scalar
}

// readVanishing reads the quotient-polynomial piece commitments and the
// random-polynomial commitment (spec.md §4.3 step 6).
func readVanishing(tr *ast.Transcript, key string, quotientDegree int) (*ast.Transcript, *vanishingArg) {
	va := &vanishingArg{key: key}
	va.hPieces = make([]*ast.Point, quotientDegree)
	for i := range va.hPieces {
		tr, va.hPieces[i] = tr.ReadPointValue()
	}
	tr, va.randomPoly = tr.ReadPointValue()
	return tr, va
}

// readVanishingRandomEval reads the random polynomial's opening at x
// (spec.md §4.3 step 7).
func readVanishingRandomEval(tr *ast.Transcript, va *vanishingArg) (*ast.Transcript, *vanishingArg) {
	tr, va.randomEval = tr.ReadScalarValue()
	return tr, va
}

// buildExpectedHEval folds every gate/permutation/lookup/shuffle constraint
// expression by the y challenge and divides by (xn - 1), the expected value
// of h(x) if the quotient polynomial is well-formed (spec.md §4.3 step 8,
// grounded on `vanish::Evaluated::build_from_verifier_params`).
func buildExpectedHEval(exprs []*ast.Scalar, y, xn *ast.Scalar) *ast.Scalar {
	one := ast.ConstScalar(big.NewInt(1))
	acc := ast.ConstScalar(big.NewInt(0))
	for _, e := range exprs {
		acc = acc.Mul(y, false).Add(e)
	}
	return acc.Div(xn.Sub(one))
}

// hCommitmentSchema folds the quotient pieces h_0..h_{d-1} in reverse order
// by xn into a single query.Schema, per spec.md §4.3 step 9: the quotient
// commitment is reconstructed as h_0 + xn·(h_1 + xn·(h_2 + ...)).
func hCommitmentSchema(va *vanishingArg, xn *ast.Scalar) *query.Schema {
	n := len(va.hPieces)
	schemas := make([]*query.Schema, n)
	for i, p := range va.hPieces {
		q := &query.CommitQuery{Key: hCommitmentKey(va.key, i), Commitment: p}
		schemas[i] = query.Commitment(q)
	}
	acc := schemas[n-1]
	for i := n - 2; i >= 0; i-- {
		acc = query.Add(schemas[i], query.MustMul(query.Scalar(xn), acc))
	}
	return acc
}

// vanishingQueries yields the vanishing argument's opening specifications
// (spec.md §4.3): the folded h commitment opens to expectedHEval at x, and
// the random polynomial commitment opens to randomEval at x.
func vanishingQueries(va *vanishingArg, x, xn *ast.Scalar) []query.EvaluationQuery {
	hSchema := query.Add(hCommitmentSchema(va, xn), query.Scalar(va.expectedHEval))
	return []query.EvaluationQuery{
		query.NewEvaluationQueryWithSchema(0, x, hSchema),
		query.NewEvaluationQuery(0, x, randomCommitmentKey(va.key), va.randomPoly, va.randomEval),
	}
}
