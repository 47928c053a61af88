// Package vkey implements the verification-key schema (spec.md §6): the
// per-circuit metadata — column counts, argument specifications, query
// index, domain parameters, and a canonical digest — that package verifier
// drives to assemble the per-proof AST.
package vkey

import (
	"math/big"

	"github.com/halo2agg/verifier-dag/ast"
)

// ExprKind tags the variant of a gate/lookup/shuffle constraint expression,
// the halo2-style "custom gate" polynomial tree.
type ExprKind int

const (
	ExprConstant ExprKind = iota
	ExprFixed
	ExprAdvice
	ExprInstance
	ExprNegated
	ExprSum
	ExprProduct
	ExprScaled
)

// ColumnKind distinguishes which of a circuit's three column families a
// query or permutation entry refers to.
type ColumnKind int

const (
	ColAdvice ColumnKind = iota
	ColFixed
	ColInstance
)

// ColumnQuery identifies one entry of a circuit's per-kind query list: the
// column index and rotation queried, in the order that list is read from
// the transcript (spec.md §4.3 step 7). Expression leaves reference a
// query by its position within the matching EvalContext slice, exactly as
// halo2's Expression::{Fixed,Advice,Instance}{query_index} does.
type ColumnQuery struct {
	Column   int
	Rotation int32
}

// Expression is an immutable constraint-polynomial node, built once per
// verification key and shared by every proof that key verifies.
type Expression struct {
	kind ExprKind

	constVal   *big.Int
	queryIndex int // position within the matching EvalContext slice

	left, right *Expression
	scale       *big.Int
}

// Constant builds a literal leaf.
func Constant(v *big.Int) *Expression {
	return &Expression{kind: ExprConstant, constVal: new(big.Int).Set(v)}
}

// Fixed references the queryIndex-th entry of EvalContext.Fixed.
func Fixed(queryIndex int) *Expression { return &Expression{kind: ExprFixed, queryIndex: queryIndex} }

// Advice references the queryIndex-th entry of EvalContext.Advice.
func Advice(queryIndex int) *Expression {
	return &Expression{kind: ExprAdvice, queryIndex: queryIndex}
}

// Instance references the queryIndex-th entry of EvalContext.Instance.
func Instance(queryIndex int) *Expression {
	return &Expression{kind: ExprInstance, queryIndex: queryIndex}
}

func (e *Expression) Negated() *Expression { return &Expression{kind: ExprNegated, left: e} }
func (e *Expression) Add(o *Expression) *Expression {
	return &Expression{kind: ExprSum, left: e, right: o}
}
func (e *Expression) Sub(o *Expression) *Expression { return e.Add(o.Negated()) }
func (e *Expression) Mul(o *Expression) *Expression {
	return &Expression{kind: ExprProduct, left: e, right: o}
}
func (e *Expression) Scale(c *big.Int) *Expression {
	return &Expression{kind: ExprScaled, left: e, scale: new(big.Int).Set(c)}
}

// EvalContext supplies the concrete evaluated leaves an Expression tree
// bottoms out at: the scalar AST nodes already read from the transcript
// during verifier assembly (spec.md §4.3 step 7), one slice per column
// kind, indexed the same way the originating query list was built.
type EvalContext struct {
	Fixed    []*ast.Scalar
	Advice   []*ast.Scalar
	Instance []*ast.Scalar
}

// ToAST lowers the expression tree into a scalar AST node against ctx,
// mirroring halo2's Expression::evaluate dispatch.
func (e *Expression) ToAST(ctx *EvalContext) *ast.Scalar {
	switch e.kind {
	case ExprConstant:
		return ast.ConstScalar(e.constVal)
	case ExprFixed:
		return ctx.Fixed[e.queryIndex]
	case ExprAdvice:
		return ctx.Advice[e.queryIndex]
	case ExprInstance:
		return ctx.Instance[e.queryIndex]
	case ExprNegated:
		zero := ast.ConstScalar(big.NewInt(0))
		return zero.Sub(e.left.ToAST(ctx))
	case ExprSum:
		return e.left.ToAST(ctx).Add(e.right.ToAST(ctx))
	case ExprProduct:
		return e.left.ToAST(ctx).Mul(e.right.ToAST(ctx), false)
	case ExprScaled:
		return e.left.ToAST(ctx).Mul(ast.ConstScalar(e.scale), false)
	default:
		panic("vkey: unreachable expression kind")
	}
}
