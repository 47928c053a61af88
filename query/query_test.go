package query

import (
	"math/big"
	"testing"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/curve"
	"github.com/stretchr/testify/require"
)

func TestMulRejectsBothCommitmentOperands(t *testing.T) {
	qa := &CommitQuery{Key: "a", Commitment: ast.ConstPoint(curve.Generator()), Eval: ast.ConstScalar(big.NewInt(1))}
	qb := &CommitQuery{Key: "b", Commitment: ast.ConstPoint(curve.Generator()), Eval: ast.ConstScalar(big.NewInt(2))}

	left := Add(Commitment(qa), Eval(qa))
	right := Add(Commitment(qb), Eval(qb))

	_, err := Mul(left, right)
	require.ErrorIs(t, err, ErrSchemaShape)
}

func TestMulAllowsOneScalarOnlyOperand(t *testing.T) {
	qa := &CommitQuery{Key: "a", Commitment: ast.ConstPoint(curve.Generator()), Eval: ast.ConstScalar(big.NewInt(1))}
	left := Add(Commitment(qa), Eval(qa))
	challenge := Scalar(ast.ConstScalar(big.NewInt(5)))

	m, err := Mul(challenge, left)
	require.NoError(t, err)
	require.True(t, m.ContainsCommitment())
}

func TestNewEvaluationQueryEncodesCommitmentPlusEval(t *testing.T) {
	p := ast.ConstPoint(curve.Generator())
	e := ast.ConstScalar(big.NewInt(42))
	x := ast.ConstScalar(big.NewInt(7))

	q := NewEvaluationQuery(0, x, "advice_0", p, e)
	require.Equal(t, SchemaAdd, q.Schema.Kind())
	l, r := q.Schema.Operands()
	require.Equal(t, SchemaCommitment, l.Kind())
	require.Equal(t, SchemaEval, r.Kind())
	require.Same(t, p, l.CommitQueryOf().Commitment)
	require.Same(t, e, r.CommitQueryOf().Eval)
}

func TestReplaceRewritesMatchingKeyOnly(t *testing.T) {
	pa := ast.ConstPoint(curve.Generator())
	pb := ast.ConstPoint(curve.Generator())
	qa := &CommitQuery{Key: "proof0_col0", Commitment: pa, Eval: ast.ConstScalar(big.NewInt(1))}
	qOther := &CommitQuery{Key: "proof0_col1", Commitment: pb, Eval: ast.ConstScalar(big.NewInt(2))}

	s := Add(Commitment(qa), Commitment(qOther))
	replaced := Replace(s, "proof0_col0", "proof1_col0", pb)

	l, r := replaced.Operands()
	require.Equal(t, "proof1_col0", l.CommitQueryOf().Key)
	require.Equal(t, "proof0_col1", r.CommitQueryOf().Key)
}
