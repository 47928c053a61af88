package verifier

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/query"
	"github.com/halo2agg/verifier-dag/vkey"
)

// invertScalarField returns v's multiplicative inverse modulo the BN254
// scalar field, used once at assembly time to derive ω⁻¹ from the domain
// generator stored on the verification key.
func invertScalarField(v *big.Int) *big.Int {
	var e fr.Element
	e.SetBigInt(v)
	e.Inverse(&e)
	out := new(big.Int)
	e.BigInt(out)
	return out
}

// Proof is one circuit's fully-assembled verifier output: the pair of
// query schemas a multi-proof aggregation combines across circuits
// (spec.md §4.3, the C3 "verifier assembly" output; §4.4 consumes WX/WG).
// AdviceCommitments and FinalTranscript are exposed for aggregate.Combine,
// which substitutes shared commitments across proofs and squeezes one more
// challenge from each proof's own transcript before combining.
type Proof struct {
	CircuitKey        string
	WX, WG            *query.Schema
	AdviceCommitments []*ast.Point
	FinalTranscript   *ast.Transcript
}

// permutationChunkLen is the halo2 convention that a copy-permutation
// grand-product chunk spans (max gate degree - 2) columns, so each chunk's
// product identity fits within the quotient polynomial's degree bound.
func permutationChunkLen(vk *vkey.VerificationKey) int {
	if vk.QuotientDegree <= 2 {
		return len(vk.PermutationColumns)
	}
	return vk.QuotientDegree - 2
}

func numPermutationChunks(vk *vkey.VerificationKey) int {
	chunkLen := permutationChunkLen(vk)
	n := len(vk.PermutationColumns)
	if chunkLen == 0 {
		return 0
	}
	return (n + chunkLen - 1) / chunkLen
}

// AssembleProof drives the symbolic transcript for one proof through the
// canonical PLONK verifier sequence (spec.md §4.3 steps 1-10) and returns
// its reduced (w_x, w_g) opening schemas, ready for aggregate.Combine.
func AssembleProof(proofIdx int, vk *vkey.VerificationKey) *Proof {
	ck := CircuitKey(proofIdx)
	omega := ast.ConstScalar(vk.Omega)
	omegaInv := ast.ConstScalar(invertScalarField(vk.Omega))

	// Step 1: init transcript, absorb the verification-key digest and the
	// externally supplied instance commitments.
	tr := ast.Init(proofIdx)
	tr = tr.CommonScalar(ast.ConstScalar(vk.Digest()))

	instanceCommitments := make([]*ast.Point, vk.NumInstance)
	for i := range instanceCommitments {
		instanceCommitments[i] = ast.InstancePoint(proofIdx, i)
		tr = tr.CommonPoint(instanceCommitments[i])
	}

	// Step 2: read advice commitments.
	adviceCommitments := make([]*ast.Point, vk.NumAdvice)
	for i := range adviceCommitments {
		tr, adviceCommitments[i] = tr.ReadPointValue()
	}

	// Step 3: read lookup permuted commitments.
	lookups := make([]*lookupEvaluated, len(vk.LookupArguments))
	for i := range lookups {
		tr, lookups[i] = readLookupPermuted(tr, lookupKey(ck, i))
	}

	// Step 4: squeeze beta, gamma, theta.
	var beta, gamma, theta *ast.Scalar
	tr, theta = tr.Squeeze()
	tr, beta = tr.Squeeze()
	tr, gamma = tr.Squeeze()

	// Step 5: read permutation/lookup/shuffle grand-product commitments.
	chunkLen := permutationChunkLen(vk)
	permChunks := numPermutationChunks(vk)
	permCommitments := make([]*ast.Point, permChunks)
	for i := range permCommitments {
		tr, permCommitments[i] = tr.ReadPointValue()
	}
	for i, le := range lookups {
		tr, lookups[i] = readLookupProduct(tr, le)
	}
	shuffles := make([]*shuffleEvaluated, len(vk.ShuffleArguments))
	for i := range shuffles {
		tr, shuffles[i] = readShuffleProduct(tr, shuffleKey(ck, i))
	}

	delta := ast.ConstScalar(vk.Delta)

	// Step 6: squeeze y, read vanishing-argument commitments.
	var y *ast.Scalar
	tr, y = tr.Squeeze()
	var vanishing *vanishingArg
	tr, vanishing = readVanishing(tr, ck, vk.QuotientDegree)

	// Step 7: squeeze x, read every evaluation.
	var x *ast.Scalar
	tr, x = tr.Squeeze()

	instanceEvals := make([]*ast.Scalar, len(vk.InstanceQueries))
	for i := range instanceEvals {
		tr, instanceEvals[i] = tr.ReadScalarValue()
	}
	adviceEvals := make([]*ast.Scalar, len(vk.AdviceQueries))
	for i := range adviceEvals {
		tr, adviceEvals[i] = tr.ReadScalarValue()
	}
	fixedEvals := make([]*ast.Scalar, len(vk.FixedQueries))
	for i := range fixedEvals {
		tr, fixedEvals[i] = tr.ReadScalarValue()
	}
	tr, vanishing = readVanishingRandomEval(tr, vanishing)

	var permSets []permutationSet
	tr, permSets = readPermutationEvals(tr, permCommitments)
	var sigmaEvals []*ast.Scalar
	tr, sigmaEvals = readSigmaEvals(tr, len(vk.PermutationColumns))

	for i, le := range lookups {
		tr, lookups[i] = readLookupEvals(tr, le)
	}
	for i, se := range shuffles {
		tr, se = readShuffleEvals(tr, se)
		shuffles[i] = se
	}

	evalCtx := &vkey.EvalContext{Advice: adviceEvals, Fixed: fixedEvals, Instance: instanceEvals}

	// Step 8: derive x_next, x_last, x_inv, xn and the Lagrange basis set.
	xNext := lagrangePoint(omega, omegaInv, x, 1)
	xLast := lagrangePoint(omega, omegaInv, x, -int32(vk.BlindingFactors+1))
	xInv := lagrangePoint(omega, omegaInv, x, -1)
	n := ast.ConstScalar(new(big.Int).SetUint64(vk.N()))
	xn := x.Pow(uint32(vk.N()))

	ls := lagrangeSet(n, omega, omegaInv, x, xn, vk.BlindingFactors)
	l0 := ls[len(ls)-1]
	lLast := ls[0]
	lBlind := sumScalars(ls[1 : vk.BlindingFactors+1])

	colEvals := make([]*ast.Scalar, len(vk.PermutationColumns))
	for i, pc := range vk.PermutationColumns {
		colEvals[i] = colEvalOf(vk, evalCtx, pc)
	}

	perm := &permutationArg{
		key:             ck,
		blindingFactors: vk.BlindingFactors,
		x:               x,
		xNext:           xNext,
		xLast:           xLast,
		delta:           delta,
		beta:            beta,
		gamma:           gamma,
		sets:            permSets,
		colEvals:        colEvals,
		sigmaEvals:      sigmaEvals,
		chunkLen:        chunkLen,
		ls:              ls,
		lBlind:          lBlind,
	}

	// Step 9 (expressions): gate, permutation, lookup, shuffle, vanishing.
	var allExprs []*ast.Scalar
	for _, g := range vk.Gates {
		allExprs = append(allExprs, g.ToAST(evalCtx))
	}
	allExprs = append(allExprs, perm.expressions()...)

	for i, arg := range vk.LookupArguments {
		inputExprs := exprsToAST(arg.Input, evalCtx)
		tableExprs := exprsToAST(arg.Table, evalCtx)
		inputExpr := foldByTheta(inputExprs, theta, evalCtx)
		tableExpr := foldByTheta(tableExprs, theta, evalCtx)
		allExprs = append(allExprs, lookupExpressions(lookups[i], inputExpr, tableExpr, beta, gamma, l0, lLast, lBlind)...)
	}
	for i, arg := range vk.ShuffleArguments {
		inputExprs := exprsToAST(arg.Input, evalCtx)
		shuffleExprs := exprsToAST(arg.Shuffle, evalCtx)
		inputExpr := foldByTheta(inputExprs, theta, evalCtx)
		shuffleExpr := foldByTheta(shuffleExprs, theta, evalCtx)
		allExprs = append(allExprs, shuffleExpressions(shuffles[i], inputExpr, shuffleExpr, gamma, l0, lLast, lBlind)...)
	}

	vanishing.expectedHEval = buildExpectedHEval(allExprs, y, xn)

	// Step 9 (queries): collect every opening specification.
	var queries []query.EvaluationQuery
	for i, cq := range vk.InstanceQueries {
		point := lagrangePoint(omega, omegaInv, x, cq.Rotation)
		queries = append(queries, query.NewEvaluationQuery(cq.Rotation, point, instanceKey(ck, cq.Column), instanceCommitments[cq.Column], instanceEvals[i]))
	}
	for i, cq := range vk.AdviceQueries {
		point := lagrangePoint(omega, omegaInv, x, cq.Rotation)
		queries = append(queries, query.NewEvaluationQuery(cq.Rotation, point, adviceKey(ck, cq.Column), adviceCommitments[cq.Column], adviceEvals[i]))
	}
	for i, cq := range vk.FixedQueries {
		point := lagrangePoint(omega, omegaInv, x, cq.Rotation)
		queries = append(queries, query.NewEvaluationQuery(cq.Rotation, point, fixedKey(ck, cq.Column), ast.ConstPoint(vk.FixedCommitments[cq.Column]), fixedEvals[i]))
	}
	queries = append(queries, perm.queries()...)
	for _, le := range lookups {
		queries = append(queries, lookupQueries(le, x, xNext, xInv)...)
	}
	for _, se := range shuffles {
		queries = append(queries, shuffleQueries(se, x, xNext)...)
	}
	queries = append(queries, vanishingQueries(vanishing, x, xn)...)

	distinctRotations := map[int32]struct{}{}
	for _, q := range queries {
		distinctRotations[q.Rotation] = struct{}{}
	}

	// Step 10: squeeze v, read w[], squeeze u, fold into (w_x, w_g).
	var v *ast.Scalar
	tr, v = tr.Squeeze()

	ws := make([]*ast.Point, len(distinctRotations))
	for i := range ws {
		tr, ws[i] = tr.ReadPointValue()
	}

	var u *ast.Scalar
	tr, u = tr.Squeeze()

	wx, wg := batchMultiOpenProofs(ck, queries, v, u, ws)

	return &Proof{
		CircuitKey:        ck,
		WX:                wx,
		WG:                wg,
		AdviceCommitments: adviceCommitments,
		FinalTranscript:   tr,
	}
}

func exprsToAST(exprs []*vkey.Expression, ctx *vkey.EvalContext) []*ast.Scalar {
	out := make([]*ast.Scalar, len(exprs))
	for i, e := range exprs {
		out[i] = e.ToAST(ctx)
	}
	return out
}

func sumScalars(ss []*ast.Scalar) *ast.Scalar {
	if len(ss) == 0 {
		return ast.ConstScalar(big.NewInt(0))
	}
	acc := ss[0]
	for _, s := range ss[1:] {
		acc = acc.Add(s)
	}
	return acc
}
