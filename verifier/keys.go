// Package verifier implements the per-proof PLONK verifier assembly
// (spec.md §4.3, C3): it drives a symbolic transcript through the
// canonical read/squeeze sequence, builds the gate/permutation/lookup/
// shuffle/vanishing sub-argument expressions and opening queries, and
// reduces them via the multi-open protocol into a pair of query-schema
// roots ready for cross-proof aggregation.
package verifier

import "fmt"

// CircuitKey returns the stable per-proof key prefix every commitment
// query derives its identity from (spec.md §4.4 commitment-identification
// substitution relies on these being stable across proofs of the same
// shape).
func CircuitKey(proofIdx int) string { return fmt.Sprintf("circuit_%d", proofIdx) }

// AdviceKey returns the stable commitment key for one proof's advice
// column, the identity aggregate.Combine's commitment substitution keys
// off of.
func AdviceKey(circuitKey string, col int) string {
	return fmt.Sprintf("%s_advice_commitments_%d", circuitKey, col)
}

func adviceKey(circuitKey string, col int) string { return AdviceKey(circuitKey, col) }

func instanceKey(circuitKey string, col int) string {
	return fmt.Sprintf("%s_instance_commitments_%d", circuitKey, col)
}

func fixedKey(circuitKey string, col int) string {
	return fmt.Sprintf("%s_fixed_commitments_%d", circuitKey, col)
}

func hCommitmentKey(circuitKey string, i int) string {
	return fmt.Sprintf("%s_h_commitment_%d", circuitKey, i)
}

func randomCommitmentKey(circuitKey string) string {
	return fmt.Sprintf("%s_random_commitment", circuitKey)
}

func permutationProductKey(circuitKey string, i int) string {
	return fmt.Sprintf("%s_permutation_product_commitment_%d", circuitKey, i)
}

func lookupKey(circuitKey string, idx int) string {
	return fmt.Sprintf("%s_lookup_%d", circuitKey, idx)
}

func shuffleKey(circuitKey string, idx int) string {
	return fmt.Sprintf("%s_shuffle_%d", circuitKey, idx)
}

func wKey(circuitKey string, i int) string {
	return fmt.Sprintf("%s_w_%d", circuitKey, i)
}
