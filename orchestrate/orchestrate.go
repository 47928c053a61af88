// Package orchestrate implements the Orchestration Wrapper (SPEC_FULL.md
// §4.12, C12): a thin driver gluing packages verifier, aggregate, evalctx
// and evaluate/native together for a caller-supplied list of proofs,
// modeled on the teacher's prover/prover.go DefaultProver dispatch shape.
package orchestrate

import (
	"errors"
	"fmt"

	"github.com/halo2agg/verifier-dag/aggregate"
	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/config"
	"github.com/halo2agg/verifier-dag/curve"
	"github.com/halo2agg/verifier-dag/evalctx"
	"github.com/halo2agg/verifier-dag/evaluate"
	"github.com/halo2agg/verifier-dag/evaluate/native"
	"github.com/halo2agg/verifier-dag/log"
	"github.com/halo2agg/verifier-dag/transcript"
	"github.com/halo2agg/verifier-dag/verifier"
	"github.com/halo2agg/verifier-dag/vkey"
)

// maxRetries is the "≤100 retries" bound spec.md §7 places on the
// UnsafeError retry policy.
const maxRetries = 100

// ProofInput is one circuit's material VerifyAggregate needs: its pinned
// verification key, the raw proof byte stream a transcript.Native reads
// from, and the already-computed instance-column commitments (the
// "instance-commitment function" collaborator of spec.md §6, computed by
// the caller since it depends on an external KZG commitment key).
type ProofInput struct {
	VK                   *vkey.VerificationKey
	ProofBytes           []byte
	InstanceCommitments  []curve.Point
}

// Result is the realized aggregate-verification outcome: the final
// (w_x, w_g) group elements plus the pairing-check boolean spec.md §6
// lists as the native back-end's produced output.
type Result struct {
	WX, WG         curve.Point
	PairingCheckOK bool
}

// RandomSource supplies the seed VerifyAggregate draws for each retry
// attempt (spec.md §7); the native back-end does not use the seed, so no
// blinding is re-randomized between attempts. It is the narrow subset of
// math/rand.Source the orchestration wrapper needs, kept as an interface
// so callers can inject a deterministic source in tests.
type RandomSource interface {
	Int63() int64
}

// VerifyAggregate assembles each proof's verifier AST, combines them into
// a single cross-proof opening pair, translates and evaluates that pair
// against the native back-end, and performs the final pairing check.
// srsG2 is the KZG structured reference string's [s]₂ element (an
// external curve primitive per spec.md §6, shared across every proof in
// the family and supplied by the caller rather than held on a
// VerificationKey). Whenever a back-end raises evaluate.ErrUnsafe the
// whole build is retried, up to maxRetries times, drawing a fresh seed
// from rnd each attempt (spec.md §7 UnsafeError).
func VerifyAggregate(cfg *config.Config, proofs []ProofInput, srsG2 curve.G2Point, rnd RandomSource) (*Result, error) {
	if len(proofs) == 0 {
		return nil, fmt.Errorf("orchestrate: VerifyAggregate requires at least one proof")
	}

	checks := make([]aggregate.CommitmentCheck, len(cfg.CommitmentCheck))
	for i, c := range cfg.CommitmentCheck {
		checks[i] = aggregate.CommitmentCheck{ProofA: c.ProofA, ColA: c.ColA, ProofB: c.ProofB, ColB: c.ColB}
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		seed := rnd.Int63()
		res, err := attemptVerify(cfg, proofs, checks, srsG2, seed)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, evaluate.ErrUnsafe) {
			return nil, err
		}
		lastErr = err
		log.Retryf(attempt, maxRetries, err, "retrying aggregate verification after unsafe back-end exception")
	}
	return nil, fmt.Errorf("orchestrate: exceeded %d retries: %w", maxRetries, lastErr)
}

// attemptVerify runs one full, deterministic build-and-check pass. seed is
// accepted but unused: the native back-end's verification is a pure
// function of proofs and never consults it.
func attemptVerify(cfg *config.Config, proofs []ProofInput, checks []aggregate.CommitmentCheck, srsG2 curve.G2Point, seed int64) (*Result, error) {
	_ = seed

	vProofs := make([]*verifier.Proof, len(proofs))
	for i, p := range proofs {
		vProofs[i] = verifier.AssembleProof(i, p.VK)
	}

	combined, err := aggregate.Combine(vProofs, checks)
	if err != nil {
		return nil, err
	}

	ctx := evalctx.Translate([]*ast.Point{combined.WX, combined.WG})

	transcripts := make([]transcript.Adapter, len(proofs)+1)
	for i, p := range proofs {
		transcripts[i] = transcript.NewNative(p.ProofBytes, transcript.NewSponge(cfg.HashKind()))
	}
	// aggregate.Combine's own transcript is keyed by len(proofs) and never
	// reads from a proof byte stream (it only absorbs/squeezes), so its
	// Native backing proof is empty.
	transcripts[len(proofs)] = transcript.NewNative(nil, transcript.NewSponge(cfg.HashKind()))

	instances := make(map[native.InstanceKey]curve.Point)
	for i, p := range proofs {
		for col, c := range p.InstanceCommitments {
			instances[native.InstanceKey{Proof: i, Col: col}] = c
		}
	}

	out, err := native.New(ctx, transcripts, instances).Eval()
	if err != nil {
		return nil, err
	}
	if len(out) != 2 {
		return nil, fmt.Errorf("orchestrate: expected 2 finals (w_x, w_g), got %d", len(out))
	}
	wx, wg := out[0], out[1]

	ok, err := curve.PairingCheck(wx, srsG2, wg, curve.NegG2Generator())
	if err != nil {
		return nil, fmt.Errorf("orchestrate: pairing check: %w", err)
	}

	return &Result{WX: wx, WG: wg, PairingCheckOK: ok}, nil
}
