package vkey

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	"github.com/halo2agg/verifier-dag/curve"
)

// LookupArgument is one halo2-style lookup: every Input expression is
// checked to appear, row by row, among the evaluations of the Table
// expressions (spec.md §4.3 step 3-4).
type LookupArgument struct {
	Input []*Expression
	Table []*Expression
}

// ShuffleArgument is one shuffle argument: Input and Shuffle expression
// lists are checked to be a row permutation of one another.
type ShuffleArgument struct {
	Input   []*Expression
	Shuffle []*Expression
}

// PermColumn is one column participating in the copy-permutation argument,
// identified by kind and its position within that kind's rotation-0 query
// list (the index the permutation argument's per-column eval is read
// from — mirrors halo2's `get_any_query_index(column, Rotation::cur())`).
type PermColumn struct {
	Kind       ColumnKind
	QueryIndex int
}

// VerificationKey is the per-circuit metadata package verifier needs to
// assemble a proof's AST (spec.md §6 "Verification-key schema").
type VerificationKey struct {
	NumAdvice   int
	NumFixed    int
	NumInstance int

	Gates []*Expression

	// InstanceQueries, AdviceQueries, FixedQueries list every (column,
	// rotation) pair read from the transcript for that column kind, in
	// read order (spec.md §4.3 step 7). Lengths determine how many eval
	// scalars of each kind are read.
	InstanceQueries []ColumnQuery
	AdviceQueries   []ColumnQuery
	FixedQueries    []ColumnQuery

	// PermutationColumns lists every column participating in the
	// copy-permutation argument, in the circuit's column order.
	PermutationColumns []PermColumn

	LookupArguments  []LookupArgument
	ShuffleArguments []ShuffleArgument

	BlindingFactors int
	DomainDegree    uint32 // k: domain size is 2^k
	QuotientDegree  int
	Omega           *big.Int // generator of the evaluation domain
	Delta           *big.Int // coset generator distinguishing permutation-chunk identities

	// FixedCommitments and PermutationCommitments are absorbed into the
	// transcript as part of the verification-key digest, not read from
	// the proof (they are fixed once the circuit is compiled).
	FixedCommitments       []curve.Point
	PermutationCommitments []curve.Point
}

// N returns the domain size 2^DomainDegree.
func (vk *VerificationKey) N() uint64 { return uint64(1) << vk.DomainDegree }

// Digest returns a canonical SHA-256 digest of vk's pinned form, the value
// absorbed as a common scalar at transcript init (spec.md §4.3 step 1).
// It is reduced mod the scalar field when evalctx pools it as a constant
// (curve.NewScalar).
func (vk *VerificationKey) Digest() *big.Int {
	h := sha256.New()
	writeInt := func(n int) { binary.Write(h, binary.BigEndian, int64(n)) }
	writeInt(vk.NumAdvice)
	writeInt(vk.NumFixed)
	writeInt(vk.NumInstance)
	writeInt(len(vk.Gates))
	writeInt(len(vk.PermutationColumns))
	for _, c := range vk.PermutationColumns {
		writeInt(int(c.Kind))
		writeInt(c.QueryIndex)
	}
	writeInt(len(vk.LookupArguments))
	writeInt(len(vk.ShuffleArguments))
	writeInt(vk.BlindingFactors)
	binary.Write(h, binary.BigEndian, uint64(vk.DomainDegree))
	writeInt(vk.QuotientDegree)
	if vk.Omega != nil {
		h.Write(vk.Omega.Bytes())
	}
	if vk.Delta != nil {
		h.Write(vk.Delta.Bytes())
	}
	for _, p := range vk.FixedCommitments {
		h.Write(p.Bytes())
	}
	for _, p := range vk.PermutationCommitments {
		h.Write(p.Bytes())
	}
	sum := h.Sum(nil)
	return new(big.Int).SetBytes(sum)
}
