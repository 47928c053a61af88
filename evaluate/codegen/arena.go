// Package codegen implements the Code-emitting Back-ends (SPEC_FULL.md
// §4.11, C11): instead of evaluating an evalctx.EvalContext against live
// curve/circuit values, these back-ends emit source text that performs the
// same walk in another language or toolchain. Grounded on the teacher's
// solidity/solidity.go for the general shape of a Go-side artifact
// generator, and on original_source/src/solidity_verifier/codegen.rs /
// gnark_verifier/codegen.rs for the operation-by-operation emission
// strategy: a free-list-backed slot allocator reusing a variable's name
// once its last consumer has been emitted.
package codegen

import "github.com/halo2agg/verifier-dag/evalctx"

// Arena assigns a variable name to each live op result and recycles the
// name once the op's last consumer in program order has been emitted,
// mirroring original_source's temp_idx_allocator: a free set plus a
// monotonic next-index counter, biased towards reuse.
type Arena struct {
	lastUse []int
	free    []int
	next    int
	slotOf  map[int]int // op index -> allocated arena slot
}

// NewArena precomputes, for every op in ctx.Ops, the index of the last op
// that consumes it as an operand (original_source's tag_lifetime pass):
// a forward scan recording, for each Ops(i) dependency an op at position j
// references, lastUse[i] = j whenever j is later than any prior record.
func NewArena(ctx *evalctx.EvalContext) *Arena {
	lastUse := make([]int, len(ctx.Ops))
	for i := range lastUse {
		lastUse[i] = i
	}
	for j, op := range ctx.Ops {
		for _, dep := range op.Deps() {
			if dep.Kind == evalctx.PosOps && dep.Index < j {
				lastUse[dep.Index] = j
			}
		}
	}
	for _, f := range ctx.Finals {
		if f.Kind == evalctx.PosOps {
			lastUse[f.Index] = len(ctx.Ops)
		}
	}
	return &Arena{lastUse: lastUse, slotOf: make(map[int]int)}
}

// Alloc returns the arena slot op i's result should be written to, pulling
// from the free list before growing the arena.
func (a *Arena) Alloc(i int) int {
	var slot int
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		slot = a.next
		a.next++
	}
	a.slotOf[i] = slot
	return slot
}

// Release frees every op's slot whose last consumer is op j, called after
// emitting op j so those slots become available to ops after it.
func (a *Arena) Release(j int) {
	for i, slot := range a.slotOf {
		if a.lastUse[i] == j && i != j {
			a.free = append(a.free, slot)
			delete(a.slotOf, i)
		}
	}
}

// SlotOf returns the arena slot previously allocated to op i, panicking if
// i was never allocated (an emitter bug: every Ops(i) operand must be
// allocated before it is read, by the topological-order invariant).
func (a *Arena) SlotOf(i int) int {
	slot, ok := a.slotOf[i]
	if !ok {
		panic("codegen: reading unallocated arena slot")
	}
	return slot
}
