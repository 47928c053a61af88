// Package query implements the polynomial-commitment opening algebra
// (spec.md §4.2): a commutative ring-like expression tree over
// (commitment, eval, scalar) leaves, plus the multi-open reduction that
// folds a schema tree into a single MSM expression.
package query

import (
	"fmt"

	"github.com/halo2agg/verifier-dag/ast"
)

// CommitQuery bundles a human-readable key, an optional commitment point,
// and an optional claimed evaluation. Keys are the identity by which
// externally-controlled commitment substitutions (aggregate.Combine) are
// applied.
type CommitQuery struct {
	Key        string
	Commitment *ast.Point
	Eval       *ast.Scalar
}

// SchemaKind tags the variant of a Schema node.
type SchemaKind int

const (
	SchemaCommitment SchemaKind = iota
	SchemaEval
	SchemaScalar
	SchemaAdd
	SchemaMul
)

// Schema is an immutable node of the query-schema expression tree.
type Schema struct {
	kind SchemaKind

	commit *CommitQuery // Commitment, Eval
	scalar *ast.Scalar  // Scalar

	left, right    *Schema // Add, Mul
	containsCommit bool
}

// Commitment builds a leaf contributing q's point to the final MSM.
func Commitment(q *CommitQuery) *Schema {
	return &Schema{kind: SchemaCommitment, commit: q, containsCommit: true}
}

// Eval builds a leaf contributing q's claimed evaluation as a pure scalar.
func Eval(q *CommitQuery) *Schema {
	return &Schema{kind: SchemaEval, commit: q}
}

// Scalar builds a pure-scalar leaf.
func Scalar(s *ast.Scalar) *Schema {
	return &Schema{kind: SchemaScalar, scalar: s}
}

// Add returns l + r. The contains_commitment bit is the precomputed OR
// across both operands (spec.md §3): true iff either side still carries an
// uncollapsed commitment leaf.
func Add(l, r *Schema) *Schema {
	return &Schema{kind: SchemaAdd, left: l, right: r, containsCommit: l.ContainsCommitment() || r.ContainsCommitment()}
}

// Mul returns l * r. At least one operand must be scalar-only; this
// invariant (P4) is validated here rather than deferred to evaluation, per
// spec.md §4.2: "An implementer MUST validate this at Mul construction and
// signal a logic error otherwise."
func Mul(l, r *Schema) (*Schema, error) {
	if l.ContainsCommitment() && r.ContainsCommitment() {
		return nil, fmt.Errorf("%w: both operands of Mul contain a commitment", ErrSchemaShape)
	}
	return &Schema{kind: SchemaMul, left: l, right: r, containsCommit: l.ContainsCommitment() || r.ContainsCommitment()}, nil
}

// MustMul panics on the P4 invariant violation; used by verifier-assembly
// call sites that construct Mul nodes from statically-known-safe shapes
// (challenge * query), where a violation indicates a genuine programmer
// error rather than malformed input.
func MustMul(l, r *Schema) *Schema {
	s, err := Mul(l, r)
	if err != nil {
		panic(err)
	}
	return s
}

// Kind reports the node's variant.
func (s *Schema) Kind() SchemaKind { return s.kind }

// ContainsCommitment reports the precomputed contains_commitment bit
// (spec.md §3).
func (s *Schema) ContainsCommitment() bool { return s.containsCommit }

// CommitQueryOf returns the bound CommitQuery for Commitment/Eval leaves.
func (s *Schema) CommitQueryOf() *CommitQuery { return s.commit }

// ScalarOf returns the bound ast.Scalar for Scalar leaves.
func (s *Schema) ScalarOf() *ast.Scalar { return s.scalar }

// Operands returns the left/right children for Add/Mul nodes.
func (s *Schema) Operands() (*Schema, *Schema) { return s.left, s.right }
