package transcript

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// HashKind selects the concrete sponge-state hash backing a Native
// transcript, per the Config object's "hash: Poseidon|Sha|Blake2b" option
// (spec.md §9 Design Notes).
type HashKind int

const (
	HashPoseidon HashKind = iota
	HashSha
	HashBlake2b
)

// NewSponge constructs the Sponge implementation selected by kind.
func NewSponge(kind HashKind) Sponge {
	switch kind {
	case HashPoseidon:
		return NewPoseidonSponge()
	case HashSha:
		return newDigestSponge(sha256.New())
	case HashBlake2b:
		h, err := blake2b.New256(nil)
		if err != nil {
			panic("transcript: blake2b init failed: " + err.Error())
		}
		return newDigestSponge(h)
	default:
		panic(fmt.Sprintf("transcript: unknown hash kind %d", kind))
	}
}

// digestHash is the subset of hash.Hash the digestSponge needs.
type digestHash interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
	Reset()
}

// digestSponge adapts a standard streaming hash.Hash (SHA-256, Blake2b)
// into the Sponge contract by re-hashing state||prefix||input on every
// operation, the same duplex discipline PoseidonSponge uses.
type digestSponge struct {
	h     digestHash
	state []byte
}

func newDigestSponge(h digestHash) *digestSponge {
	return &digestSponge{h: h, state: make([]byte, 32)}
}

func (d *digestSponge) absorbPrefixed(prefix byte, x *big.Int) {
	d.h.Reset()
	d.h.Write(d.state)
	d.h.Write([]byte{prefix})
	xb := x.Bytes()
	var buf [32]byte
	copy(buf[32-len(xb):], xb)
	d.h.Write(buf[:])
	d.state = d.h.Sum(nil)
}

func (d *digestSponge) Absorb(x *big.Int) { d.absorbPrefixed(prefixAbsorbScalar, x) }

func (d *digestSponge) AbsorbPointLimbs(limbs [3]*big.Int) {
	for _, l := range limbs {
		d.absorbPrefixed(prefixAbsorbPoint, l)
	}
}

func (d *digestSponge) Squeeze() *big.Int {
	d.h.Reset()
	d.h.Write(d.state)
	d.h.Write([]byte{prefixSqueeze})
	d.state = d.h.Sum(nil)
	return new(big.Int).SetBytes(d.state)
}

func (d *digestSponge) Reset() { d.state = make([]byte, 32) }
