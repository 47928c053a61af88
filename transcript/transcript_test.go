package transcript

import (
	"math/big"
	"testing"

	"github.com/halo2agg/verifier-dag/curve"
	"github.com/stretchr/testify/require"
)

func proofBytes(t *testing.T, scalars []curve.Scalar, points []curve.Point) []byte {
	t.Helper()
	var buf []byte
	for _, p := range points {
		buf = append(buf, p.Bytes()...)
	}
	for _, s := range scalars {
		buf = append(buf, s.Bytes()...)
	}
	return buf
}

func TestNativeReadScalarAndPointRoundTrip(t *testing.T) {
	p := curve.Generator()
	s := curve.NewScalar(big.NewInt(123))
	buf := proofBytes(t, []curve.Scalar{s}, []curve.Point{p})

	tr := NewNative(buf, NewPoseidonSponge())
	gotPoint, err := tr.ReadPoint()
	require.NoError(t, err)
	require.True(t, gotPoint.Equal(p))

	gotScalar, err := tr.ReadScalar()
	require.NoError(t, err)
	require.True(t, gotScalar.Equal(s))
}

func TestNativeReadPastEndIsBadEncoding(t *testing.T) {
	tr := NewNative([]byte{1, 2, 3}, NewPoseidonSponge())
	_, err := tr.ReadScalar()
	require.ErrorIs(t, err, curve.ErrBadEncoding)
}

func TestSqueezeIsDeterministicAndStateDependent(t *testing.T) {
	tr1 := NewNative(nil, NewPoseidonSponge())
	tr2 := NewNative(nil, NewPoseidonSponge())

	c1 := tr1.Squeeze()
	c2 := tr2.Squeeze()
	require.True(t, c1.Equal(c2), "same initial state must squeeze the same challenge")

	require.NoError(t, tr1.CommonScalar(curve.NewScalar(big.NewInt(99))))
	c3 := tr1.Squeeze()
	require.False(t, c1.Equal(c3), "absorbing a scalar must change subsequent squeezes")
}

func TestAllHashKindsProduceSponges(t *testing.T) {
	for _, kind := range []HashKind{HashPoseidon, HashSha, HashBlake2b} {
		sp := NewSponge(kind)
		sp.Absorb(big.NewInt(1))
		require.NotNil(t, sp.Squeeze())
	}
}
