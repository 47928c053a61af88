package verifier

import (
	"math/big"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/query"
	"github.com/halo2agg/verifier-dag/vkey"
)

// permutationSet is one permutation-product commitment's evaluations
// (spec.md §4.3 step 5: "Read permutation product commitments"), grounded
// on the original `permutation::EvaluatedSet`.
type permutationSet struct {
	commitment *ast.Point
	eval       *ast.Scalar
	nextEval   *ast.Scalar
	lastEval   *ast.Scalar // nil for the final set
}

// permutationArg is the fully-assembled copy-permutation argument for one
// proof, grounded on the original `permutation::Evaluated`.
type permutationArg struct {
	key             string
	blindingFactors int
	x, xNext, xLast *ast.Scalar
	delta           *ast.Scalar
	beta, gamma     *ast.Scalar
	sets            []permutationSet
	colEvals        []*ast.Scalar // the permutation columns' own identity values (advice/fixed/instance evals)
	sigmaEvals      []*ast.Scalar // the fixed permutation polynomials' evaluations at x, read from the proof
	chunkLen        int
	ls              []*ast.Scalar
	lBlind          *ast.Scalar
}

// readPermutationEvals reads the product/next/last eval scalars for each
// already-read permutation product commitment (spec.md §4.3 step 7,
// grounded on `permutation::Evaluated::build_from_transcript`).
func readPermutationEvals(tr *ast.Transcript, commitments []*ast.Point) (*ast.Transcript, []permutationSet) {
	sets := make([]permutationSet, len(commitments))
	n := len(commitments)
	for i, c := range commitments {
		var s permutationSet
		s.commitment = c
		tr, s.eval = tr.ReadScalarValue()
		tr, s.nextEval = tr.ReadScalarValue()
		if i+1 < n {
			tr, s.lastEval = tr.ReadScalarValue()
		}
		sets[i] = s
	}
	return tr, sets
}

// readSigmaEvals reads the fixed permutation polynomials' evaluations at x,
// one per permutation column, in the same order as
// VerificationKey.PermutationColumns (spec.md §4.3 step 7, "permutation
// evals (common...)" — distinct from the column identity values, grounded
// on `VerifierParams.permutation_evals`).
func readSigmaEvals(tr *ast.Transcript, count int) (*ast.Transcript, []*ast.Scalar) {
	evals := make([]*ast.Scalar, count)
	for i := range evals {
		tr, evals[i] = tr.ReadScalarValue()
	}
	return tr, evals
}

// colEvalOf resolves a PermColumn to its already-read eval scalar.
func colEvalOf(vk *vkey.VerificationKey, evalCtx *vkey.EvalContext, pc vkey.PermColumn) *ast.Scalar {
	switch pc.Kind {
	case vkey.ColAdvice:
		return evalCtx.Advice[pc.QueryIndex]
	case vkey.ColFixed:
		return evalCtx.Fixed[pc.QueryIndex]
	case vkey.ColInstance:
		return evalCtx.Instance[pc.QueryIndex]
	default:
		panic("verifier: unreachable column kind")
	}
}

// expressions yields the permutation argument's constraint polynomials
// (spec.md §4.3), grounded on `permutation::Evaluated::expressions`.
func (p *permutationArg) expressions() []*ast.Scalar {
	one := ast.ConstScalar(big.NewInt(1))
	l0 := p.ls[len(p.ls)-1]
	lLast := p.ls[0]

	var res []*ast.Scalar

	if len(p.sets) > 0 {
		zx := p.sets[0].eval
		res = append(res, l0.Mul(one.Sub(zx), false))
	}
	if len(p.sets) > 0 {
		zx := p.sets[len(p.sets)-1].eval
		res = append(res, lLast.Mul(zx.Mul(zx, false).Sub(zx), false))
	}
	for i := 1; i < len(p.sets); i++ {
		s := p.sets[i].eval
		prevLast := p.sets[i-1].lastEval
		res = append(res, s.Sub(prevLast).Mul(l0, false))
	}

	t0 := p.beta.Mul(p.x, false)
	t1 := one.Sub(lLast.Add(p.lBlind))

	for chunkIdx, set := range p.sets {
		left := set.nextEval
		right := set.eval

		var deltaPow *ast.Scalar
		if chunkIdx == 0 {
			deltaPow = one
		} else {
			deltaPow = p.delta.Pow(uint32(chunkIdx * p.chunkLen))
		}
		d := t0.Mul(deltaPow, false)

		start := chunkIdx * p.chunkLen
		end := start + p.chunkLen
		if end > len(p.colEvals) {
			end = len(p.colEvals)
		}
		colChunk := p.colEvals[start:end]
		sigmaChunk := p.sigmaEvals[start:end]
		for i, eval := range colChunk {
			sigmaEval := sigmaChunk[i]
			left = eval.Add(p.gamma).Add(p.beta.Mul(sigmaEval, false)).Mul(left, false)
			right = eval.Add(p.gamma).Add(d).Mul(right, false)
			d = p.delta.Mul(d, false)
		}
		res = append(res, left.Sub(right).Mul(t1, false))
	}

	return res
}

// queries yields the permutation argument's opening specifications
// (spec.md §4.3), grounded on `permutation::Evaluated::queries`.
func (p *permutationArg) queries() []query.EvaluationQuery {
	var out []query.EvaluationQuery
	for i, s := range p.sets {
		key := permutationProductKey(p.key, i)
		out = append(out, query.NewEvaluationQuery(0, p.x, key, s.commitment, s.eval))
		out = append(out, query.NewEvaluationQuery(1, p.xNext, key, s.commitment, s.nextEval))
	}
	for i := len(p.sets) - 1; i > 0; i-- {
		s := p.sets[i-1]
		key := permutationProductKey(p.key, i-1)
		out = append(out, query.NewEvaluationQuery(-int32(p.blindingFactors+1), p.xLast, key, s.commitment, s.lastEval))
	}
	return out
}
