// Package transcript implements the Fiat-Shamir duplex-sponge contract of
// spec.md §4.7: three domain-separated prefixes absorbed before a
// challenge squeeze / point absorb / scalar absorb, with points split into
// fixed-width limbs so native and in-circuit transcripts stay byte-wise
// equivalent.
package transcript

import (
	"math/big"

	"github.com/halo2agg/verifier-dag/curve"
)

// Domain-separation prefixes absorbed immediately before the
// corresponding operation (spec.md §4.7).
const (
	prefixSqueeze      = 0
	prefixAbsorbPoint  = 1
	prefixAbsorbScalar = 2
)

// LimbWidth is the configurable constant width (in bits) used to split a
// point coordinate into scalar-field chunks before absorption, matching
// the in-circuit integer decomposition (spec.md §4.7). 128 bits keeps each
// limb comfortably inside the BN254 scalar field.
const LimbWidth = 128

// Sponge is the minimal hash-state abstraction the duplex transcript is
// built from. It is a narrow interface so Poseidon, SHA-256 and Blake2b
// can all back it (config.HashKind), keeping the actual sponge-internals
// implementation an external collaborator as spec.md §1 requires.
type Sponge interface {
	// Absorb folds in one scalar-field element's canonical bytes.
	Absorb(x *big.Int)
	// Squeeze derives the next scalar-field element from the current
	// state and replaces the state with it, so repeated squeezes between
	// absorptions yield successive elements.
	Squeeze() *big.Int
	// Reset returns the sponge to its initial state.
	Reset()
}

// splitPointToLimbs decomposes a point's two coordinates into 3 scalar
// chunks as spec.md §4.7 requires ("Points are absorbed as three scalar
// chunks computed by splitting each coordinate into fixed-width limbs").
// X is split into a low/high pair at LimbWidth bits; Y is not split and is
// absorbed whole as the third chunk, so that chunk is not bounded by
// LimbWidth.
func splitPointToLimbs(p curve.Point) [3]*big.Int {
	x, y := p.XY()
	mask := new(big.Int).Lsh(big.NewInt(1), LimbWidth)
	xLo := new(big.Int).Mod(x, mask)
	xHi := new(big.Int).Rsh(x, LimbWidth)
	return [3]*big.Int{xLo, xHi, new(big.Int).Set(y)}
}
