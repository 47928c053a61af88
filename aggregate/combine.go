// Package aggregate implements the Aggregation Combiner (spec.md §4.4, C4):
// it folds the per-proof (w_x, w_g) schema pairs package verifier produces
// into a single cross-proof pair using a challenge squeezed from an
// aggregator transcript, substitutes commitments the caller has declared
// equal across proofs to shrink the final MSM, and realizes the result as
// the two group elements a pairing check compares.
package aggregate

import (
	"fmt"
	"math/big"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/query"
	"github.com/halo2agg/verifier-dag/verifier"
)

// CommitmentCheck declares that proof A's advice column ColA and proof B's
// advice column ColB commit to the same polynomial (spec.md §4.4
// "commitment-identification substitution"), so the combiner may collapse
// them to a single MSM term.
type CommitmentCheck struct {
	ProofA, ColA int
	ProofB, ColB int
}

// Result is the realized pairing-check input: the two final group elements
// an aggregate proof's verifier compares via e(WX, [τ]₂) = e(WG, [1]₂).
type Result struct {
	WX, WG *ast.Point
}

// Combine folds proofs' opening schemas into a single cross-proof pair
// (spec.md §4.4), grounded on `verify_aggregation_proofs`: absorb each
// proof's own post-assembly transcript challenge into a fresh aggregator
// transcript keyed by the proof count, squeeze the cross-proof challenge s,
// fold (w_x, w_g) left-to-right by s, apply every declared commitment
// substitution, then realize against +G and -G.
func Combine(proofs []*verifier.Proof, checks []CommitmentCheck) (*Result, error) {
	if len(proofs) == 0 {
		return nil, fmt.Errorf("aggregate: Combine requires at least one proof")
	}

	tr := ast.Init(len(proofs))
	for _, p := range proofs {
		var challenge *ast.Scalar
		_, challenge = p.FinalTranscript.Squeeze()
		tr = tr.CommonScalar(challenge)
	}
	var s *ast.Scalar
	_, s = tr.Squeeze()

	wx := proofs[0].WX
	wg := proofs[0].WG
	for _, p := range proofs[1:] {
		wx = query.Add(query.MustMul(query.Scalar(s), wx), p.WX)
		wg = query.Add(query.MustMul(query.Scalar(s), wg), p.WG)
	}

	for _, c := range checks {
		fromProof, fromCol, toProof, toCol := c.ProofB, c.ColB, c.ProofA, c.ColA
		if c.ProofA > c.ProofB {
			fromProof, fromCol, toProof, toCol = c.ProofA, c.ColA, c.ProofB, c.ColB
		}
		if fromProof >= len(proofs) || toProof >= len(proofs) {
			return nil, fmt.Errorf("aggregate: commitment check references proof index out of range")
		}
		fromKey := verifier.AdviceKey(verifier.CircuitKey(fromProof), fromCol)
		toKey := verifier.AdviceKey(verifier.CircuitKey(toProof), toCol)
		toPoint := proofs[toProof].AdviceCommitments[toCol]

		wx = query.Replace(wx, fromKey, toKey, toPoint)
		wg = query.Replace(wg, fromKey, toKey, toPoint)
	}

	one := ast.ConstScalar(big.NewInt(1))
	negOne := ast.ConstScalar(new(big.Int).Neg(big.NewInt(1)))

	resWX := wx.Eval(one).CheckPoint("w_x")
	resWG := wg.Eval(negOne).CheckPoint("w_g")

	return &Result{WX: resWX, WG: resWG}, nil
}
