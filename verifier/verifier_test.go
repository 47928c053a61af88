package verifier

import (
	"math/big"
	"testing"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/curve"
	"github.com/halo2agg/verifier-dag/query"
	"github.com/halo2agg/verifier-dag/vkey"
	"github.com/stretchr/testify/require"
)

func TestCircuitKeyAndSubKeysAreStable(t *testing.T) {
	ck := CircuitKey(3)
	require.Equal(t, "circuit_3", ck)
	require.Equal(t, "circuit_3_advice_commitments_2", adviceKey(ck, 2))
	require.Equal(t, "circuit_3_w_0", wKey(ck, 0))
}

func TestLagrangeSetOrdering(t *testing.T) {
	omega := ast.ConstScalar(big.NewInt(3))
	omegaInv := ast.ConstScalar(big.NewInt(5)) // not a genuine inverse, just exercising wiring
	x := ast.ConstScalar(big.NewInt(7))
	n := ast.ConstScalar(big.NewInt(4))
	xn := x.Pow(4)

	ls := lagrangeSet(n, omega, omegaInv, x, xn, 2)
	require.Len(t, ls, 4)
	// ls[0] is l_last (row blindingFactors+1), ls[len-1] is l_0 (row 0).
	require.Equal(t, ast.ScalarDiv, ls[0].Kind())
	require.Equal(t, ast.ScalarDiv, ls[len(ls)-1].Kind())
}

func TestOmegaPowerHandlesNegativeRotation(t *testing.T) {
	omega := ast.ConstScalar(big.NewInt(3))
	omegaInv := ast.ConstScalar(big.NewInt(5))
	require.Equal(t, ast.ScalarPow, omegaPower(omega, omegaInv, 2).Kind())
	require.Equal(t, ast.ScalarPow, omegaPower(omega, omegaInv, -2).Kind())
}

func TestColEvalOfDispatchesByColumnKind(t *testing.T) {
	ctx := &vkey.EvalContext{
		Advice:   []*ast.Scalar{ast.ConstScalar(big.NewInt(1))},
		Fixed:    []*ast.Scalar{ast.ConstScalar(big.NewInt(2))},
		Instance: []*ast.Scalar{ast.ConstScalar(big.NewInt(3))},
	}
	require.Same(t, ctx.Fixed[0], colEvalOf(nil, ctx, vkey.PermColumn{Kind: vkey.ColFixed, QueryIndex: 0}))
	require.Same(t, ctx.Instance[0], colEvalOf(nil, ctx, vkey.PermColumn{Kind: vkey.ColInstance, QueryIndex: 0}))
}

func TestPermutationExpressionsCountMatchesSetsAndChunks(t *testing.T) {
	x := ast.ConstScalar(big.NewInt(7))
	xNext := ast.ConstScalar(big.NewInt(21))
	one := ast.ConstScalar(big.NewInt(1))

	mkPoint := func() *ast.Point { return ast.ConstPoint(curve.Generator()) }

	p := &permutationArg{
		key:             "c0",
		blindingFactors: 2,
		x:               x,
		xNext:           xNext,
		delta:           ast.ConstScalar(big.NewInt(5)),
		beta:            ast.ConstScalar(big.NewInt(2)),
		gamma:           ast.ConstScalar(big.NewInt(3)),
		chunkLen:        2,
		ls:              []*ast.Scalar{one, one, one, one},
		lBlind:          one,
		colEvals: []*ast.Scalar{
			ast.ConstScalar(big.NewInt(10)), ast.ConstScalar(big.NewInt(11)),
		},
		sigmaEvals: []*ast.Scalar{
			ast.ConstScalar(big.NewInt(20)), ast.ConstScalar(big.NewInt(21)),
		},
		sets: []permutationSet{
			{commitment: mkPoint(), eval: ast.ConstScalar(big.NewInt(1)), nextEval: ast.ConstScalar(big.NewInt(2))},
		},
	}

	exprs := p.expressions()
	// boundary (l0), boundary (llast), one chunk identity: 3 expressions for a single set.
	require.Len(t, exprs, 3)

	queries := p.queries()
	require.Len(t, queries, 2) // eval at x, eval at x_next; no lastEval query for the only/final set
}

func TestGroupQueriesByRotationOrdersAscending(t *testing.T) {
	mkQuery := func(rot int32, point *ast.Scalar) query.EvaluationQuery {
		q := &query.CommitQuery{Key: "k", Commitment: ast.ConstPoint(curve.Generator()), Eval: ast.ConstScalar(big.NewInt(1))}
		return query.NewEvaluationQueryWithSchema(rot, point, query.Add(query.Commitment(q), query.Eval(q)))
	}
	queries := []query.EvaluationQuery{
		mkQuery(1, ast.ConstScalar(big.NewInt(2))),
		mkQuery(-1, ast.ConstScalar(big.NewInt(3))),
		mkQuery(0, ast.ConstScalar(big.NewInt(4))),
	}
	v := ast.ConstScalar(big.NewInt(9))
	ws := []*ast.Point{ast.ConstPoint(curve.Generator()), ast.ConstPoint(curve.Generator()), ast.ConstPoint(curve.Generator())}

	proofs := groupQueriesByRotation(queries, v, ws)
	require.Len(t, proofs, 3)
	require.Same(t, queries[1].Point, proofs[0].point) // rotation -1 sorts first
	require.Same(t, queries[2].Point, proofs[1].point) // rotation 0
	require.Same(t, queries[0].Point, proofs[2].point) // rotation 1
}

func TestBatchMultiOpenProofsFoldsIntoSinglePair(t *testing.T) {
	mkQuery := func(rot int32) query.EvaluationQuery {
		q := &query.CommitQuery{Key: "k", Commitment: ast.ConstPoint(curve.Generator()), Eval: ast.ConstScalar(big.NewInt(1))}
		return query.NewEvaluationQueryWithSchema(rot, ast.ConstScalar(big.NewInt(int64(rot+10))), query.Add(query.Commitment(q), query.Eval(q)))
	}
	queries := []query.EvaluationQuery{mkQuery(0), mkQuery(1)}
	v := ast.ConstScalar(big.NewInt(3))
	u := ast.ConstScalar(big.NewInt(5))
	ws := []*ast.Point{ast.ConstPoint(curve.Generator()), ast.ConstPoint(curve.Generator())}

	wx, wg := batchMultiOpenProofs("c0", queries, v, u, ws)
	require.Equal(t, query.SchemaAdd, wx.Kind())
	require.Equal(t, query.SchemaAdd, wg.Kind())
}
