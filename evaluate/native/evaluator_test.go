package native

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/curve"
	"github.com/halo2agg/verifier-dag/evalctx"
	"github.com/halo2agg/verifier-dag/transcript"
)

func encodeScalar(v int64) []byte {
	return curve.NewScalar(big.NewInt(v)).Bytes()
}

func TestEvalResolvesConstantMSM(t *testing.T) {
	root := ast.MSM([]ast.MSMPair{
		{Point: ast.ConstPoint(curve.Generator()), Scalar: ast.ConstScalar(big.NewInt(3))},
	}, 0)
	ctx := evalctx.Translate([]*ast.Point{root})

	ev := New(ctx, nil, nil)
	out, err := ev.Eval()
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.True(t, out[0].Equal(curve.Generator().ScalarMul(big.NewInt(3))))
}

func TestEvalReadsAndSqueezesFromTranscript(t *testing.T) {
	proof := encodeScalar(5)
	tr0 := ast.Init(0)
	tr1, v := tr0.ReadScalarValue()
	tr2, c := tr1.Squeeze()
	sum := v.Add(c)
	root := ast.MSM([]ast.MSMPair{
		{Point: ast.ConstPoint(curve.Generator()), Scalar: sum},
	}, 0)
	_ = tr2
	ctx := evalctx.Translate([]*ast.Point{root})

	native := transcript.NewNative(proof, transcript.NewSponge(transcript.HashPoseidon))
	ev := New(ctx, []transcript.Adapter{native}, nil)
	out, err := ev.Eval()
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.False(t, out[0].Equal(curve.Identity()))
}

func TestEvalResolvesInstanceCommitment(t *testing.T) {
	root := ast.MSM([]ast.MSMPair{
		{Point: ast.InstancePoint(0, 2), Scalar: ast.ConstScalar(big.NewInt(1))},
	}, 0)
	ctx := evalctx.Translate([]*ast.Point{root})

	want := curve.Generator().ScalarMul(big.NewInt(7))
	ev := New(ctx, nil, map[InstanceKey]curve.Point{{Proof: 0, Col: 2}: want})
	out, err := ev.Eval()
	require.NoError(t, err)
	require.True(t, out[0].Equal(want))
}

func TestEvalCheckPointPropagatesPointValue(t *testing.T) {
	root := ast.ConstPoint(curve.Generator()).CheckPoint("g")
	ctx := evalctx.Translate([]*ast.Point{root})

	ev := New(ctx, nil, nil)
	out, err := ev.Eval()
	require.NoError(t, err)
	require.True(t, out[0].Equal(curve.Generator()))
}

func TestEvalPropagatesDivisionByZero(t *testing.T) {
	zero := ast.ConstScalar(big.NewInt(0))
	one := ast.ConstScalar(big.NewInt(1))
	bad := one.Div(zero)
	root := ast.MSM([]ast.MSMPair{
		{Point: ast.ConstPoint(curve.Generator()), Scalar: bad},
	}, 0)
	ctx := evalctx.Translate([]*ast.Point{root})

	ev := New(ctx, nil, nil)
	_, err := ev.Eval()
	require.ErrorIs(t, err, curve.ErrArithmetic)
}
