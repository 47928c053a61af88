package query

import (
	"math/big"
	"sort"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/curve"
)

// EvaluationQuery is a single polynomial-commitment opening specification:
// "the polynomial underlying schema opens to its claimed value at point,
// which is the evaluation-domain element x·ω^rotation" (spec.md §3).
type EvaluationQuery struct {
	Rotation int32
	Point    *ast.Scalar
	Schema   *Schema
}

// NewEvaluationQuery builds the canonical "commitment with known evaluation"
// query: Commitment(q) + Eval(q), per spec.md §4.2.
func NewEvaluationQuery(rotation int32, point *ast.Scalar, key string, commitment *ast.Point, eval *ast.Scalar) EvaluationQuery {
	q := &CommitQuery{Key: key, Commitment: commitment, Eval: eval}
	return EvaluationQuery{Rotation: rotation, Point: point, Schema: Add(Commitment(q), Eval(q))}
}

// NewEvaluationQueryWithSchema builds a query from an already-assembled
// schema, used for the vanishing-argument query whose schema is a raw
// combination of gate expressions rather than a single commitment.
func NewEvaluationQueryWithSchema(rotation int32, point *ast.Scalar, s *Schema) EvaluationQuery {
	return EvaluationQuery{Rotation: rotation, Point: point, Schema: s}
}

// Eval reduces schema against the additional scalar coefficient sCoeff,
// returning the MSM point sCoeff·s·G + Σ aᵢ·Cᵢ (spec.md §4.2 "Final
// evaluation").
func (s *Schema) Eval(sCoeff *ast.Scalar) *ast.Point {
	one := ast.ConstScalar(big.NewInt(1))
	pointCoeffs, pureScalar := s.evalPrepare(one)

	keys := make([]string, 0, len(pointCoeffs))
	for k := range pointCoeffs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]ast.MSMPair, 0, len(keys)+1)
	pairs = append(pairs, ast.MSMPair{
		Point:  ast.ConstPoint(curve.Generator()),
		Scalar: sCoeff.Mul(pureScalar, false),
	})
	for _, k := range keys {
		pc := pointCoeffs[k]
		pairs = append(pairs, ast.MSMPair{Point: pc.point, Scalar: pc.coeff})
	}
	return ast.MSM(pairs, 0)
}

type pointCoeff struct {
	point *ast.Point
	coeff *ast.Scalar
}

// evalPrepare implements the eval_prepare algorithm of spec.md §4.2,
// returning a map from commitment key to its (point, combined coefficient)
// plus the accumulated pure-scalar remainder.
func (s *Schema) evalPrepare(coeff *ast.Scalar) (map[string]pointCoeff, *ast.Scalar) {
	switch s.kind {
	case SchemaCommitment:
		return map[string]pointCoeff{
			s.commit.Key: {point: s.commit.Commitment, coeff: coeff},
		}, ast.ConstScalar(big.NewInt(0))

	case SchemaEval:
		return map[string]pointCoeff{}, coeff.Mul(s.commit.Eval, false)

	case SchemaScalar:
		return map[string]pointCoeff{}, coeff.Mul(s.scalar, false)

	case SchemaAdd:
		lMap, lScalar := s.left.evalPrepare(coeff)
		rMap, rScalar := s.right.evalPrepare(coeff)
		merged := lMap
		for k, rv := range rMap {
			if lv, ok := merged[k]; ok {
				merged[k] = pointCoeff{point: lv.point, coeff: lv.coeff.Add(rv.coeff)}
			} else {
				merged[k] = rv
			}
		}
		return merged, lScalar.Add(rScalar)

	case SchemaMul:
		var scalarOnly, other *Schema
		if s.left.ContainsCommitment() {
			scalarOnly, other = s.right, s.left
		} else {
			scalarOnly, other = s.left, s.right
		}
		_, pureScalar := scalarOnly.evalPrepare(coeff)
		return other.evalPrepare(coeff.Mul(pureScalar, false))

	default:
		panic("query: unreachable schema kind")
	}
}

// Replace performs a structural walk swapping every Commitment leaf whose
// key matches fromKey for one keyed toKey pointing at toPoint (spec.md
// §4.2 "Commitment substitution"), used to force equal-in-meaning
// commitments across proofs to share a single MSM entry.
func Replace(s *Schema, fromKey, toKey string, toPoint *ast.Point) *Schema {
	switch s.kind {
	case SchemaCommitment, SchemaEval:
		if s.commit.Key != fromKey {
			return s
		}
		nq := &CommitQuery{Key: toKey, Commitment: toPoint, Eval: s.commit.Eval}
		if s.kind == SchemaCommitment {
			nq.Commitment = toPoint
			return Commitment(nq)
		}
		return Eval(nq)
	case SchemaScalar:
		return s
	case SchemaAdd:
		return Add(Replace(s.left, fromKey, toKey, toPoint), Replace(s.right, fromKey, toKey, toPoint))
	case SchemaMul:
		return MustMul(Replace(s.left, fromKey, toKey, toPoint), Replace(s.right, fromKey, toKey, toPoint))
	default:
		panic("query: unreachable schema kind")
	}
}
