package ast

import (
	"math/big"
	"testing"

	"github.com/halo2agg/verifier-dag/curve"
	"github.com/stretchr/testify/require"
)

func TestTranscriptLinearHistorySharesPrefix(t *testing.T) {
	init0 := Init(0)
	t1, s1 := init0.ReadScalarValue()
	t2 := t1.SqueezeChallenge()

	// two branches both built on t1 should share t1 as their common prefix
	branchA := t1.CommonScalar(s1)
	branchB := t1.CommonPoint(nil)

	require.Same(t, t1, branchA.Prev())
	require.Same(t, t1, branchB.Prev())
	require.Equal(t, 0, t2.Index())
}

func TestScalarCheckPointIsTransparentWrapper(t *testing.T) {
	c := ConstScalar(big.NewInt(7))
	cp := c.CheckPoint("seven")
	require.Equal(t, ScalarCheckPoint, cp.Kind())
	inner, _ := cp.Operands()
	require.Same(t, c, inner)
	require.Equal(t, "seven", cp.Label())
}

func TestPointMSMPreservesPairOrder(t *testing.T) {
	p1 := ConstPoint(curve.Generator())
	p2 := ConstPoint(curve.Generator())
	s1 := ConstScalar(big.NewInt(1))
	s2 := ConstScalar(big.NewInt(2))

	m := MSM([]MSMPair{{Point: p1, Scalar: s1}, {Point: p2, Scalar: s2}}, 3)
	pairs, group := m.Pairs()
	require.Equal(t, 3, group)
	require.Len(t, pairs, 2)
	require.Same(t, p1, pairs[0].Point)
	require.Same(t, s2, pairs[1].Scalar)
}

func TestScalarArithmeticBuildsNewNodes(t *testing.T) {
	a := ConstScalar(big.NewInt(3))
	b := ConstScalar(big.NewInt(4))
	sum := a.Add(b)
	require.Equal(t, ScalarAdd, sum.Kind())
	l, r := sum.Operands()
	require.Same(t, a, l)
	require.Same(t, b, r)

	mul := a.Mul(b, true)
	require.True(t, mul.ContinueGroup())

	pow := a.Pow(5)
	require.EqualValues(t, 5, pow.Exponent())
}
