package vkey

import (
	"fmt"

	"github.com/halo2agg/verifier-dag/curve"
)

// CommitmentKey commits a column of evaluations in Lagrange basis to a G1
// point. It is the "instance-commitment function"'s curve-primitive
// dependency (spec.md §6): a KZG-style commitment key computed from the
// structured reference string, supplied externally and out of scope here.
type CommitmentKey interface {
	CommitLagrange(values []curve.Scalar) (curve.Point, error)
}

// InstanceCommitments computes one G1 commitment per instance column of a
// single proof, the external collaborator spec.md §6 names as
// "given (verifier_params, vk, instances) -> list of G1 points".
// instances is column-major: instances[col] holds that column's values,
// padded to the domain size.
func InstanceCommitments(ck CommitmentKey, vk *VerificationKey, instances [][]curve.Scalar) ([]curve.Point, error) {
	if len(instances) != vk.NumInstance {
		return nil, fmt.Errorf("vkey: expected %d instance columns, got %d", vk.NumInstance, len(instances))
	}
	out := make([]curve.Point, vk.NumInstance)
	for col, values := range instances {
		c, err := ck.CommitLagrange(values)
		if err != nil {
			return nil, fmt.Errorf("vkey: committing instance column %d: %w", col, err)
		}
		out[col] = c
	}
	return out, nil
}
