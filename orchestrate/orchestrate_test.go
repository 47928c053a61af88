package orchestrate

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/stretchr/testify/require"

	"github.com/halo2agg/verifier-dag/config"
	"github.com/halo2agg/verifier-dag/curve"
	"github.com/halo2agg/verifier-dag/vkey"
)

// fixedG2 returns an arbitrary valid G2 affine point (the G2 generator)
// to stand in for a KZG SRS's [s]₂ element in this pipeline smoke test.
func fixedG2() curve.G2Point {
	_, _, _, g2 := bn254.Generators()
	return curve.NewG2Point(g2)
}

// fixedSeed is a RandomSource that always returns the same seed, enough
// for the native back-end which never consults it.
type fixedSeed struct{}

func (fixedSeed) Int63() int64 { return 1 }

// minimalVK is a gate-less, lookup-less, permutation-less circuit: the
// smallest shape that still exercises every step of AssembleProof's
// transcript sequence (vanishing h-pieces, the random-polynomial opening,
// and one multi-open w commitment).
func minimalVK() *vkey.VerificationKey {
	return &vkey.VerificationKey{
		BlindingFactors: 0,
		DomainDegree:    1,
		QuotientDegree:  2,
		Omega:           big.NewInt(7),
		Delta:           big.NewInt(5),
	}
}

// minimalProofBytes builds a byte stream matching minimalVK's exact read
// sequence: two h-piece points, the random-polynomial commitment, the
// random polynomial's evaluation, then one multi-open w commitment.
func minimalProofBytes() []byte {
	g := curve.Generator()
	scalar := curve.NewScalar(big.NewInt(3))
	var buf []byte
	buf = append(buf, g.Bytes()...) // h0
	buf = append(buf, g.Bytes()...) // h1
	buf = append(buf, g.Bytes()...) // randomPoly
	buf = append(buf, scalar.Bytes()...)
	buf = append(buf, g.Bytes()...) // w0
	return buf
}

func TestVerifyAggregateRejectsEmptyProofList(t *testing.T) {
	_, err := VerifyAggregate(config.Default(), nil, curve.G2Point{}, fixedSeed{})
	require.Error(t, err)
}

func TestVerifyAggregateRunsMinimalSingleProof(t *testing.T) {
	input := ProofInput{VK: minimalVK(), ProofBytes: minimalProofBytes()}
	res, err := VerifyAggregate(config.Default(), []ProofInput{input}, fixedG2(), fixedSeed{})
	require.NoError(t, err)
	require.NotNil(t, res)
}
