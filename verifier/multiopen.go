package verifier

import (
	"sort"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/query"
)

// pointSchemaProof is one rotation group's folded opening: every query
// sharing a rotation collapses into a single schema via the v challenge,
// paired with the w commitment the prover supplied for that group.
type pointSchemaProof struct {
	point *ast.Scalar
	s     *query.Schema
	w     *ast.Point
}

// groupQueriesByRotation groups queries by rotation in ascending order
// (spec.md §4.3 step 9, grounded on `VerifierParams::get_point_schemas`'s
// BTreeMap grouping), folding each group's schemas by v via a left fold
// acc = v*acc + q.
func groupQueriesByRotation(queries []query.EvaluationQuery, v *ast.Scalar, ws []*ast.Point) []pointSchemaProof {
	type group struct {
		point   *ast.Scalar
		schemas []*query.Schema
	}
	groups := map[int32]*group{}
	var rotations []int32
	for _, q := range queries {
		g, ok := groups[q.Rotation]
		if !ok {
			g = &group{point: q.Point}
			groups[q.Rotation] = g
			rotations = append(rotations, q.Rotation)
		}
		g.schemas = append(g.schemas, q.Schema)
	}
	sort.Slice(rotations, func(i, j int) bool { return rotations[i] < rotations[j] })

	proofs := make([]pointSchemaProof, len(rotations))
	for i, r := range rotations {
		g := groups[r]
		acc := g.schemas[0]
		for _, s := range g.schemas[1:] {
			acc = query.Add(query.MustMul(query.Scalar(v), acc), s)
		}
		proofs[i] = pointSchemaProof{point: g.point, s: acc, w: ws[i]}
	}
	return proofs
}

// batchMultiOpenProofs folds every rotation group's proof into the final
// (w_x, w_g) schema pair via the u challenge (spec.md §4.3 step 10, grounded
// on `VerifierParams::batch_multi_open_proofs`).
func batchMultiOpenProofs(circuitKey string, queries []query.EvaluationQuery, v, u *ast.Scalar, ws []*ast.Point) (wx, wg *query.Schema) {
	proofs := groupQueriesByRotation(queries, v, ws)

	for i, p := range proofs {
		wq := &query.CommitQuery{Key: wKey(circuitKey, i), Commitment: p.w}
		wCommit := query.Commitment(wq)

		if wx == nil {
			wx = wCommit
		} else {
			wx = query.Add(query.MustMul(query.Scalar(u), wx), wCommit)
		}

		pointW := query.MustMul(query.Scalar(p.point), wCommit)
		if wg == nil {
			wg = query.Add(pointW, p.s)
		} else {
			wg = query.Add(query.Add(query.MustMul(query.Scalar(u), wg), pointW), p.s)
		}
	}

	return wx, wg
}
