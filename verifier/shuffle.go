package verifier

import (
	"math/big"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/query"
)

// shuffleEvaluated is one shuffle argument's commitment and openings for a
// single proof, grounded on the original `shuffle::Evaluated`.
type shuffleEvaluated struct {
	key string

	product *ast.Point

	productEval     *ast.Scalar
	productNextEval *ast.Scalar
}

// readShuffleProduct reads the shuffle's grand-product commitment (spec.md
// §4.3 step 5, alongside the permutation and lookup product commitments).
func readShuffleProduct(tr *ast.Transcript, key string) (*ast.Transcript, *shuffleEvaluated) {
	se := &shuffleEvaluated{key: key}
	tr, se.product = tr.ReadPointValue()
	return tr, se
}

// readShuffleEvals reads the shuffle's two eval scalars (spec.md §4.3 step 7).
func readShuffleEvals(tr *ast.Transcript, se *shuffleEvaluated) (*ast.Transcript, *shuffleEvaluated) {
	tr, se.productEval = tr.ReadScalarValue()
	tr, se.productNextEval = tr.ReadScalarValue()
	return tr, se
}

// shuffleExpressions yields the shuffle argument's three constraint
// polynomials, grounded on `shuffle::Evaluated::expressions`: the grand
// product's boundary value at l_0, the l_last check that z is 0 or 1, and,
// on active rows, the row-update equation balancing the θ-folded input
// expression plus γ against the θ-folded shuffle expression plus γ.
func shuffleExpressions(
	se *shuffleEvaluated,
	inputExpr, shuffleExpr *ast.Scalar,
	gamma *ast.Scalar,
	l0, lLast, lBlind *ast.Scalar,
) []*ast.Scalar {
	one := ast.ConstScalar(big.NewInt(1))

	var res []*ast.Scalar

	// l_0(1 - z(X)) = 0
	res = append(res, l0.Mul(one.Sub(se.productEval), false))

	// l_last(z(X)^2 - z(X)) = 0
	res = append(res, lLast.Mul(se.productEval.Mul(se.productEval, false).Sub(se.productEval), false))

	// (1 - (l_last + l_blind)) * (z(wX)(input+gamma) - z(X)(shuffle+gamma)) = 0
	activeRows := one.Sub(lLast.Add(lBlind))
	left := se.productNextEval.Mul(inputExpr.Add(gamma), false)
	right := se.productEval.Mul(shuffleExpr.Add(gamma), false)
	res = append(res, activeRows.Mul(left.Sub(right), false))

	return res
}

// shuffleQueries yields the shuffle argument's opening specifications
// (spec.md §4.3): product at x and x_next.
func shuffleQueries(se *shuffleEvaluated, x, xNext *ast.Scalar) []query.EvaluationQuery {
	return []query.EvaluationQuery{
		query.NewEvaluationQuery(0, x, se.key+"_product", se.product, se.productEval),
		query.NewEvaluationQuery(1, xNext, se.key+"_product", se.product, se.productNextEval),
	}
}
