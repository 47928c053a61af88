package codegen

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halo2agg/verifier-dag/ast"
	"github.com/halo2agg/verifier-dag/curve"
	"github.com/halo2agg/verifier-dag/evalctx"
)

func buildSampleContext() *evalctx.EvalContext {
	x := ast.ConstScalar(big.NewInt(3))
	y := ast.ConstScalar(big.NewInt(4))
	root := ast.MSM([]ast.MSMPair{
		{Point: ast.ConstPoint(curve.Generator()), Scalar: x.Add(y)},
	}, 0).CheckPoint("final")
	return evalctx.Translate([]*ast.Point{root})
}

func TestArenaReusesSlotsAfterLastUse(t *testing.T) {
	ctx := buildSampleContext()
	a := NewArena(ctx)
	for i := range ctx.Ops {
		a.Alloc(i)
		a.Release(i)
	}
	require.Less(t, a.next, len(ctx.Ops), "arena must reuse a released slot")
}

func TestSolidityEmitterProducesOneStatementPerCheckpoint(t *testing.T) {
	ctx := buildSampleContext()
	out := NewSolidityEmitter(ctx).Emit()
	require.Contains(t, out, "checkpoint \"final\"")
	require.True(t, strings.Contains(out, "finals[0]"))
}

func TestGnarkGenEmitterReferencesScalarFieldGadget(t *testing.T) {
	ctx := buildSampleContext()
	out := NewGnarkGenEmitter(ctx, "VerifyInCircuit").Emit()
	require.Contains(t, out, "sf.Add")
	require.Contains(t, out, "AssertIsEqual")
}
