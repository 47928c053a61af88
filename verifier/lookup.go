package verifier

import (
	"math/big"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/query"
	"github.com/halo2agg/verifier-dag/vkey"
)

// lookupEvaluated is one lookup argument's commitments and openings for a
// single proof, grounded on the original `lookup::PermutedCommitments` and
// `lookup::Evaluated`.
type lookupEvaluated struct {
	key string

	permutedInput *ast.Point
	permutedTable *ast.Point
	product       *ast.Point

	productEval         *ast.Scalar
	productNextEval     *ast.Scalar
	permutedInputEval   *ast.Scalar
	permutedInputInvEval *ast.Scalar
	permutedTableEval   *ast.Scalar
}

// readLookupPermuted reads the permuted input/table commitments for one
// lookup argument (spec.md §4.3 step 3).
func readLookupPermuted(tr *ast.Transcript, key string) (*ast.Transcript, *lookupEvaluated) {
	le := &lookupEvaluated{key: key}
	tr, le.permutedInput = tr.ReadPointValue()
	tr, le.permutedTable = tr.ReadPointValue()
	return tr, le
}

// readLookupProduct reads the lookup's grand-product commitment (spec.md
// §4.3 step 5, alongside the permutation product commitments).
func readLookupProduct(tr *ast.Transcript, le *lookupEvaluated) (*ast.Transcript, *lookupEvaluated) {
	tr, le.product = tr.ReadPointValue()
	return tr, le
}

// readLookupEvals reads the lookup's five eval scalars (spec.md §4.3 step 7),
// grounded on `lookup::Evaluated::build_from_transcript`.
func readLookupEvals(tr *ast.Transcript, le *lookupEvaluated) (*ast.Transcript, *lookupEvaluated) {
	tr, le.productEval = tr.ReadScalarValue()
	tr, le.productNextEval = tr.ReadScalarValue()
	tr, le.permutedInputEval = tr.ReadScalarValue()
	tr, le.permutedInputInvEval = tr.ReadScalarValue()
	tr, le.permutedTableEval = tr.ReadScalarValue()
	return tr, le
}

// foldByTheta combines a lookup input/table's expression list into a single
// polynomial using the θ challenge, θ-folded so that each row's tuple of
// column values collapses to one scalar (standard halo2 lookup argument
// encoding, shared with the shuffle argument's foldByTheta).
func foldByTheta(exprs []*ast.Scalar, theta *ast.Scalar, evalCtx *vkey.EvalContext) *ast.Scalar {
	if len(exprs) == 0 {
		return ast.ConstScalar(big.NewInt(0))
	}
	acc := exprs[0]
	for _, e := range exprs[1:] {
		acc = acc.Mul(theta, false).Add(e)
	}
	return acc
}

// lookupExpressions yields the lookup argument's five constraint polynomials
// (the standard halo2 "permuted" lookup verifier equations: grand-product
// boundary conditions at l_0 and l_last, continuity of the grand-product
// update, and positivity of the permuted columns). The original source left
// this `todo!()`; this follows the well-known halo2 `Evaluated::expressions`
// formula.
func lookupExpressions(
	le *lookupEvaluated,
	inputExpr, tableExpr *ast.Scalar,
	beta, gamma *ast.Scalar,
	l0, lLast, lBlind *ast.Scalar,
) []*ast.Scalar {
	one := ast.ConstScalar(big.NewInt(1))

	var res []*ast.Scalar

	// l_0(z(X) - 1) = 0
	res = append(res, l0.Mul(one.Sub(le.productEval), false))

	// l_last(z(X)^2 - z(X)) = 0
	res = append(res, lLast.Mul(le.productEval.Mul(le.productEval, false).Sub(le.productEval), false))

	// (1 - (l_last + l_blind)) * (
	//   z(wX)(a'(X)+beta)(s'(X)+gamma) - z(X)(theta-folded input+beta)(theta-folded table+gamma)
	// ) = 0
	activeRows := one.Sub(lLast.Add(lBlind))
	left := le.productNextEval.
		Mul(le.permutedInputEval.Add(beta), false).
		Mul(le.permutedTableEval.Add(gamma), false)
	right := le.productEval.
		Mul(inputExpr.Add(beta), false).
		Mul(tableExpr.Add(gamma), false)
	res = append(res, activeRows.Mul(left.Sub(right), false))

	// l_0(a'(X) - s'(X)) = 0
	res = append(res, l0.Mul(le.permutedInputEval.Sub(le.permutedTableEval), false))

	// (1 - (l_last + l_blind)) * (a'(X)-s'(X)) * (a'(X)-a'(wX)^-1) = 0
	res = append(res, activeRows.
		Mul(le.permutedInputEval.Sub(le.permutedTableEval), false).
		Mul(le.permutedInputEval.Sub(le.permutedInputInvEval), false))

	return res
}

// lookupQueries yields the lookup argument's opening specifications (spec.md
// §4.3), grounded on `lookup::Evaluated::queries`: product at x and x_next,
// permuted input at x and x_inv (rotation -1), permuted table at x.
func lookupQueries(le *lookupEvaluated, x, xNext, xInv *ast.Scalar) []query.EvaluationQuery {
	return []query.EvaluationQuery{
		query.NewEvaluationQuery(0, x, le.key+"_product", le.product, le.productEval),
		query.NewEvaluationQuery(0, x, le.key+"_permuted_input", le.permutedInput, le.permutedInputEval),
		query.NewEvaluationQuery(0, x, le.key+"_permuted_table", le.permutedTable, le.permutedTableEval),
		query.NewEvaluationQuery(-1, xInv, le.key+"_permuted_input", le.permutedInput, le.permutedInputInvEval),
		query.NewEvaluationQuery(1, xNext, le.key+"_product", le.product, le.productNextEval),
	}
}
