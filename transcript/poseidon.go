package transcript

import (
	"math/big"

	"github.com/iden3/go-iden3-crypto/poseidon"
)

// PoseidonSponge is a duplex sponge over the Poseidon permutation
// (github.com/iden3/go-iden3-crypto/poseidon, the same dependency the
// teacher repo uses for its own multi-input hashing in
// crypto/hash/poseidon). State is a fixed-size capacity register hashed
// together with the absorbed/prefix value on every operation; this is a
// sponge built *from* Poseidon, not a reimplementation of Poseidon's
// internal permutation, matching spec.md §1's "Poseidon sponge internals"
// exclusion.
type PoseidonSponge struct {
	state *big.Int
}

// NewPoseidonSponge returns a sponge initialized to the zero state.
func NewPoseidonSponge() *PoseidonSponge {
	return &PoseidonSponge{state: big.NewInt(0)}
}

func (s *PoseidonSponge) absorbPrefixed(prefix int64, x *big.Int) {
	h, err := poseidon.Hash([]*big.Int{s.state, big.NewInt(prefix), x})
	if err != nil {
		panic("transcript: poseidon hash failed: " + err.Error())
	}
	s.state = h
}

// Absorb folds x into the state under the scalar-absorb domain prefix.
func (s *PoseidonSponge) Absorb(x *big.Int) {
	s.absorbPrefixed(prefixAbsorbScalar, x)
}

// AbsorbPointLimbs folds a point's limb decomposition in under the
// point-absorb domain prefix.
func (s *PoseidonSponge) AbsorbPointLimbs(limbs [3]*big.Int) {
	for _, l := range limbs {
		s.absorbPrefixed(prefixAbsorbPoint, l)
	}
}

// Squeeze derives a challenge under the squeeze domain prefix and updates
// the state so consecutive squeezes yield distinct outputs.
func (s *PoseidonSponge) Squeeze() *big.Int {
	h, err := poseidon.Hash([]*big.Int{s.state, big.NewInt(prefixSqueeze)})
	if err != nil {
		panic("transcript: poseidon hash failed: " + err.Error())
	}
	s.state = h
	return new(big.Int).Set(h)
}

// Reset returns the sponge to its initial state.
func (s *PoseidonSponge) Reset() { s.state = big.NewInt(0) }
