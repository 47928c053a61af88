package vkey

import (
	"math/big"
	"testing"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/stretchr/testify/require"
)

func sampleVK() *VerificationKey {
	return &VerificationKey{
		NumAdvice:          2,
		NumFixed:           1,
		NumInstance:        1,
		PermutationColumns: []PermColumn{{Kind: ColAdvice, QueryIndex: 0}, {Kind: ColAdvice, QueryIndex: 1}},
		BlindingFactors:    5,
		DomainDegree:       4,
		QuotientDegree:     3,
		Omega:              big.NewInt(7),
		AdviceQueries:      []ColumnQuery{{Column: 0, Rotation: 0}, {Column: 1, Rotation: 0}},
	}
}

func TestDigestIsDeterministic(t *testing.T) {
	vk1 := sampleVK()
	vk2 := sampleVK()
	require.Equal(t, vk1.Digest(), vk2.Digest())
}

func TestDigestChangesWithShape(t *testing.T) {
	vk1 := sampleVK()
	vk2 := sampleVK()
	vk2.NumAdvice = 3
	require.NotEqual(t, vk1.Digest(), vk2.Digest())
}

func TestExpressionToASTBuildsGateEquation(t *testing.T) {
	// (advice0 + advice1) * fixed0 - constant(5)
	expr := Advice(0).Add(Advice(1)).Mul(Fixed(0)).Sub(Constant(big.NewInt(5)))

	ctx := &EvalContext{
		Advice: []*ast.Scalar{ast.ConstScalar(big.NewInt(2)), ast.ConstScalar(big.NewInt(3))},
		Fixed:  []*ast.Scalar{ast.ConstScalar(big.NewInt(10))},
	}

	node := expr.ToAST(ctx)
	// Sub is lowered as Add(lhs, Negated(rhs)), and Negated as 0 - rhs.
	require.Equal(t, ast.ScalarAdd, node.Kind())
	_, r := node.Operands()
	require.Equal(t, ast.ScalarSub, r.Kind())
}
