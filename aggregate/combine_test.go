package aggregate

import (
	"math/big"
	"testing"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/curve"
	"github.com/halo2agg/verifier-dag/query"
	"github.com/halo2agg/verifier-dag/verifier"
	"github.com/stretchr/testify/require"
)

func mkProof(t *testing.T, idx int, advice0 *ast.Point) *verifier.Proof {
	t.Helper()
	q := &query.CommitQuery{Key: verifier.AdviceKey(verifier.CircuitKey(idx), 0), Commitment: advice0, Eval: ast.ConstScalar(big.NewInt(1))}
	schema := query.Add(query.Commitment(q), query.Eval(q))
	return &verifier.Proof{
		CircuitKey:        verifier.CircuitKey(idx),
		WX:                schema,
		WG:                schema,
		AdviceCommitments: []*ast.Point{advice0},
		FinalTranscript:   ast.Init(idx),
	}
}

func TestCombineRequiresAtLeastOneProof(t *testing.T) {
	_, err := Combine(nil, nil)
	require.Error(t, err)
}

func TestCombineFoldsMultipleProofsWithoutError(t *testing.T) {
	a0 := ast.ConstPoint(curve.Generator())
	a1 := ast.ConstPoint(curve.Generator())
	proofs := []*verifier.Proof{mkProof(t, 0, a0), mkProof(t, 1, a1)}

	res, err := Combine(proofs, nil)
	require.NoError(t, err)
	require.Equal(t, ast.PointCheckPoint, res.WX.Kind())
	require.Equal(t, ast.PointCheckPoint, res.WG.Kind())
	require.Equal(t, "w_x", res.WX.Label())
	require.Equal(t, "w_g", res.WG.Label())
}

func TestCombineAppliesCommitmentSubstitution(t *testing.T) {
	a0 := ast.ConstPoint(curve.Generator())
	a1 := ast.ConstPoint(curve.Generator())
	proofs := []*verifier.Proof{mkProof(t, 0, a0), mkProof(t, 1, a1)}

	checks := []CommitmentCheck{{ProofA: 0, ColA: 0, ProofB: 1, ColB: 0}}
	res, err := Combine(proofs, checks)
	require.NoError(t, err)
	require.NotNil(t, res.WX)
	// Generator term plus one merged advice term; without the substitution
	// the two proofs' advice keys would stay separate (three pairs).
	wxPairs, _ := res.WX.Inner().Pairs()
	require.Len(t, wxPairs, 2)
	wgPairs, _ := res.WG.Inner().Pairs()
	require.Len(t, wgPairs, 2)
}

func TestCombineRejectsOutOfRangeCheck(t *testing.T) {
	a0 := ast.ConstPoint(curve.Generator())
	proofs := []*verifier.Proof{mkProof(t, 0, a0)}
	checks := []CommitmentCheck{{ProofA: 0, ColA: 0, ProofB: 5, ColB: 0}}

	_, err := Combine(proofs, checks)
	require.Error(t, err)
}
