// Package evaluate implements the back-end-agnostic DAG Evaluator
// (spec.md §4.6, C6): given an evalctx.EvalContext and a concrete
// scalar/point/transcript capability surface, walk every op in
// topological order and resolve the caller's requested final points.
// Package evaluate/native is the direct reference implementation;
// evaluate/circuitdomain and evaluate/codegen (SPEC_FULL.md §4.10-4.11)
// replace the same walk's primitive calls with gadget calls or textual
// emission.
package evaluate

import "errors"

// ErrUnsafe is the UnsafeError error kind from spec.md §7: a back-end
// specific, non-deterministic exception (e.g. the in-circuit MSM gadget's
// points-equal exception) independent of proof correctness. The
// orchestration wrapper (package orchestrate) retries an entire build,
// drawing a fresh seed each attempt, whenever a back-end raises it; the
// native back-end ignores the seed, so no blinding is re-randomized.
var ErrUnsafe = errors.New("evaluate: unsafe back-end exception")
