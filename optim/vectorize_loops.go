// Copyright 2026 go-tensorc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package optim

import (
	"fmt"

	"github.com/ajroetker/go-tensorc/compile"
	"github.com/ajroetker/go-tensorc/ir"
)

// VectorizedForLoopCounter is the context counter incremented once per
// vectorized for-loop the driver encounters.
const VectorizedForLoopCounter = "vectorized_forloop_count"

// Widen lifts an expression to the given lane count. A value already at
// that width is returned unchanged, a broadcast is re-broadcast when the
// widths divide, and a scalar is wrapped in a Broadcast. Anything else
// cannot be widened; the vectorizer answers that error by scalarizing.
func Widen(e ir.Expr, lanes int) (ir.Expr, error) {
	if e.Type().Lanes == lanes {
		return e, nil
	}
	if b, ok := e.(*ir.Broadcast); ok && lanes%b.Lanes == 0 {
		return ir.NewBroadcast(b.Value, lanes), nil
	}
	if e.Type().Lanes != 1 {
		return nil, fmt.Errorf("optim: cannot widen %s from %d to %d lanes", e, e.Type().Lanes, lanes)
	}
	return ir.NewBroadcast(e, lanes), nil
}

// Vectorizer rewrites a loop body so that every reference to one scalar
// loop variable becomes the identity ramp and all surrounding
// arithmetic is lifted to the ramp's width. Changed subtrees are
// rebuilt; untouched ones are shared, so pointer identity tells a
// caller whether anything happened.
type Vectorizer struct {
	loopVar *ir.Var
	lanes   int

	// ramp is the identity ramp substituted for the loop variable.
	ramp *ir.Ramp

	ctx *compile.Context

	// needScalarize is edge-triggered: raised by any subtree the
	// rewriter cannot lift, consumed once at the root.
	needScalarize bool
}

// NewVectorizer returns a vectorizer eliminating v at the given width.
func NewVectorizer(v *ir.Var, lanes int) *Vectorizer {
	return newVectorizer(v, lanes, compile.Global())
}

func newVectorizer(v *ir.Var, lanes int, ctx *compile.Context) *Vectorizer {
	return &Vectorizer{
		loopVar: v,
		lanes:   lanes,
		ramp:    ir.NewRamp(ir.NewIntImm(v.T, 0), ir.NewIntImm(v.T, 1), lanes),
		ctx:     ctx,
	}
}

// Visit rewrites an expression and returns the result. If any subtree
// raised the scalarize flag, the original expression is re-emitted as a
// serial loop over the lane count instead.
func (v *Vectorizer) Visit(e ir.Expr) ir.Expr {
	out := v.visit(e)
	if v.needScalarize {
		v.needScalarize = false
		return v.scalarize(e)
	}
	return out
}

// Vectorize is the low-level entry used by tests: rewrite a single
// expression, replacing v by the identity ramp of the given width.
func Vectorize(v *ir.Var, lanes int, e ir.Expr) ir.Expr {
	return NewVectorizer(v, lanes).Visit(e)
}

func (v *Vectorizer) visit(e ir.Expr) ir.Expr {
	if v.needScalarize {
		return e
	}
	switch x := e.(type) {
	case *ir.Var:
		if x.Name == v.loopVar.Name {
			return v.ramp
		}
		return e

	case *ir.Ramp:
		// Terminal: ramps were produced by this pass or upstream.
		return e

	case *ir.IntImm, *ir.FloatImm, *ir.Buffer:
		return e

	case *ir.Cast:
		value := v.visit(x.Value)
		if value == x.Value {
			return e
		}
		return ir.NewCast(x.T.WithLanes(value.Type().Lanes), value)

	case *ir.Binary:
		switch x.Op {
		case ir.Add, ir.Sub:
			return v.visitAddSub(x)
		case ir.Mul, ir.Div:
			return v.visitMulDiv(x)
		default:
			return v.visitBinary(x)
		}

	case *ir.Select:
		cond := v.visit(x.Cond)
		t := v.visit(x.TrueValue)
		f := v.visit(x.FalseValue)
		if cond == x.Cond && t == x.TrueValue && f == x.FalseValue {
			return e
		}
		lanes := max(cond.Type().Lanes, t.Type().Lanes, f.Type().Lanes)
		t, tok := v.widen(t, lanes)
		f, fok := v.widen(f, lanes)
		if !tok || !fok {
			return e
		}
		// The condition keeps its own width: one decision for all lanes
		// when scalar, per-lane otherwise.
		return &ir.Select{Cond: cond, TrueValue: t, FalseValue: f}

	case *ir.Load:
		// The predicate is left alone: predicated vector loads are not
		// rewritten by this pass.
		indices, changed := v.visitSlice(x.Indices)
		if !changed {
			return e
		}
		lanes := 1
		for _, idx := range indices {
			lanes = max(lanes, idx.Type().Lanes)
		}
		widened, ok := v.widenSlice(indices, lanes)
		if !ok {
			return e
		}
		return &ir.Load{Tensor: x.Tensor, Indices: widened, Predicate: x.Predicate}

	case *ir.Store:
		value := v.visit(x.Value)
		indices, changed := v.visitSlice(x.Indices)
		if !changed && value == x.Value {
			return e
		}
		lanes := value.Type().Lanes
		for _, idx := range indices {
			lanes = max(lanes, idx.Type().Lanes)
		}
		value, vok := v.widen(value, lanes)
		widened, iok := v.widenSlice(indices, lanes)
		if !vok || !iok {
			return e
		}
		return &ir.Store{Tensor: x.Tensor, Value: value, Indices: widened, Predicate: x.Predicate}

	case *ir.Call:
		v.ctx.Diagf("cannot widen call to %s; node left scalar", x.Name)
		return e

	case *ir.Let:
		v.ctx.Diagf("cannot vectorize let binding of %s", x.Var.Name)
		return e

	case *ir.IfThenElse:
		cond := v.visit(x.Cond)
		t := v.visit(x.TrueCase)
		var f ir.Expr = x.FalseCase
		if x.FalseCase != nil {
			f = v.visit(x.FalseCase)
		}
		v.ctx.Diagf("cannot widen if-then-else on %s", x.Cond)
		if cond == x.Cond && t == x.TrueCase && f == x.FalseCase {
			return e
		}
		return &ir.IfThenElse{Cond: cond, TrueCase: t, FalseCase: f}

	case *ir.For:
		// Nested loops are left to the driver; only their bodies are
		// rewritten here.
		body := v.visit(x.Body)
		if body == x.Body {
			return e
		}
		return &ir.For{LoopVar: x.LoopVar, Min: x.Min, Extent: x.Extent, Kind: x.Kind, VecInfo: x.VecInfo, Body: body}

	case *ir.Block:
		stmts, changed := v.visitSlice(x.Stmts)
		if !changed {
			return e
		}
		return &ir.Block{Stmts: stmts}

	case *ir.Broadcast:
		// Broadcast values are scalar; a rewrite under one means the
		// loop variable leaked into it, which cannot stay a broadcast.
		if value := v.visit(x.Value); value != x.Value {
			v.raiseScalarize("loop variable inside broadcast %s", x)
		}
		return e
	}
	return e
}

// visitAddSub rewrites Add/Sub with the ramp fast path:
// scalar op Ramp(base, stride, n) folds to Ramp(op(scalar, base), stride, n).
func (v *Vectorizer) visitAddSub(x *ir.Binary) ir.Expr {
	a, b := v.visit(x.A), v.visit(x.B)
	if a == x.A && b == x.B {
		return x
	}
	lanes := max(a.Type().Lanes, b.Type().Lanes)
	if lanes != 1 {
		if ramp, ok := b.(*ir.Ramp); ok && a.Type().IsScalar() {
			return ir.NewRamp(ir.NewBinary(x.Op, a, ramp.Base), ramp.Stride, ramp.Lanes)
		}
		if ramp, ok := a.(*ir.Ramp); ok && b.Type().IsScalar() {
			return ir.NewRamp(ir.NewBinary(x.Op, b, ramp.Base), ramp.Stride, ramp.Lanes)
		}
	}
	return v.widenBinary(x, a, b, lanes)
}

// visitMulDiv rewrites Mul/Div with the ramp fast path:
// scalar * Ramp(base, stride, n) folds to Ramp(scalar*base, scalar*stride, n)
// and symmetrically with the ramp on the left. Division folds only when
// the divisor is the scalar; scalar/ramp must widen.
func (v *Vectorizer) visitMulDiv(x *ir.Binary) ir.Expr {
	a, b := v.visit(x.A), v.visit(x.B)
	if a == x.A && b == x.B {
		return x
	}
	lanes := max(a.Type().Lanes, b.Type().Lanes)
	if lanes != 1 {
		if ramp, ok := b.(*ir.Ramp); ok && a.Type().IsScalar() && x.Op == ir.Mul {
			return ir.NewRamp(
				ir.NewBinary(x.Op, a, ramp.Base),
				ir.NewBinary(x.Op, a, ramp.Stride),
				ramp.Lanes)
		}
		if ramp, ok := a.(*ir.Ramp); ok && b.Type().IsScalar() {
			return ir.NewRamp(
				ir.NewBinary(x.Op, ramp.Base, b),
				ir.NewBinary(x.Op, ramp.Stride, b),
				ramp.Lanes)
		}
	}
	return v.widenBinary(x, a, b, lanes)
}

// visitBinary rewrites the remaining binary ops (Mod, Min, Max,
// comparisons, And, Or) by widening both operands; no algebraic folding.
func (v *Vectorizer) visitBinary(x *ir.Binary) ir.Expr {
	a, b := v.visit(x.A), v.visit(x.B)
	if a == x.A && b == x.B {
		return x
	}
	return v.widenBinary(x, a, b, max(a.Type().Lanes, b.Type().Lanes))
}

func (v *Vectorizer) widenBinary(x *ir.Binary, a, b ir.Expr, lanes int) ir.Expr {
	a, aok := v.widen(a, lanes)
	b, bok := v.widen(b, lanes)
	if !aok || !bok {
		return x
	}
	return ir.NewBinary(x.Op, a, b)
}

// widen lifts e to the given width, raising the scalarize flag when the
// expression cannot be widened.
func (v *Vectorizer) widen(e ir.Expr, lanes int) (ir.Expr, bool) {
	w, err := Widen(e, lanes)
	if err != nil {
		v.raiseScalarize("%v", err)
		return e, false
	}
	return w, true
}

func (v *Vectorizer) widenSlice(exprs []ir.Expr, lanes int) ([]ir.Expr, bool) {
	out := make([]ir.Expr, len(exprs))
	for i, e := range exprs {
		w, ok := v.widen(e, lanes)
		if !ok {
			return nil, false
		}
		out[i] = w
	}
	return out, true
}

func (v *Vectorizer) visitSlice(exprs []ir.Expr) ([]ir.Expr, bool) {
	changed := false
	out := make([]ir.Expr, len(exprs))
	for i, e := range exprs {
		out[i] = v.visit(e)
		if out[i] != e {
			changed = true
		}
	}
	if !changed {
		return exprs, false
	}
	return out, true
}

func (v *Vectorizer) raiseScalarize(format string, args ...any) {
	if !v.needScalarize {
		v.ctx.Diagf("scalarizing loop over %s: "+format, append([]any{v.loopVar.Name}, args...)...)
	}
	v.needScalarize = true
}

// scalarize re-emits an unvectorizable expression as a serial loop over
// the lane count, substituting the vectorized variable by a fresh
// index. Correctness is preserved by sequential re-execution.
func (v *Vectorizer) scalarize(e ir.Expr) ir.Expr {
	idx := ir.NewVar(v.loopVar.Name+"_s", ir.Int32Type())
	body := ReplaceVarWithExpr(e, v.loopVar, idx)
	return ir.NewFor(idx, ir.ConstInt(0), ir.ConstInt(int64(v.lanes)), body)
}

// VectorizeLoops finds every for-loop marked Vectorized under root,
// splits it by its lane factor, and rewrites the inner body into
// SIMD-wide operations. The tree is mutated in place; the returned root
// is the same node. The target is carried for width policy and reserved
// for target-specific widening rules.
func VectorizeLoops(root ir.Expr, target compile.Target) (ir.Expr, error) {
	return VectorizeLoopsWithContext(root, target, compile.Global())
}

// VectorizeLoopsWithContext runs the pass against an explicit
// compilation context, for callers that keep per-pipeline state.
func VectorizeLoopsWithContext(root ir.Expr, target compile.Target, ctx *compile.Context) (ir.Expr, error) {
	lv := &loopVectorizer{target: target, ctx: ctx}
	out := lv.visit(root)
	return out, lv.err
}

type loopVectorizer struct {
	target compile.Target
	ctx    *compile.Context
	err    error
}

// visit walks statements top-down so an outer vectorized loop is
// transformed before anything it contains.
func (lv *loopVectorizer) visit(e ir.Expr) ir.Expr {
	if lv.err != nil {
		return e
	}
	switch x := e.(type) {
	case *ir.For:
		if !x.IsVectorized() {
			x.Body = lv.visit(x.Body)
			return x
		}
		lv.ctx.Counters().Incr(VectorizedForLoopCounter)

		if !x.VecInfo.Valid() {
			lv.err = fmt.Errorf("optim: vectorized loop over %s has no factor", x.LoopVar.Name)
			return x
		}
		inner, err := splitForLoop(x, x.VecInfo.Factor, lv.ctx)
		if err != nil {
			lv.err = err
			return x
		}
		if inner == nil {
			// Split declined: the loop minimum is not 0. Continue into
			// the body without vectorizing this loop.
			lv.ctx.Diagf("loop over %s not vectorized: min %s is not the literal 0", x.LoopVar.Name, x.Min)
			x.Body = lv.visit(x.Body)
			return x
		}

		extentImm, ok := inner.Extent.(*ir.IntImm)
		if !ok {
			lv.err = fmt.Errorf("optim: vectorized loop over %s has non-constant extent %s", inner.LoopVar.Name, inner.Extent)
			return x
		}
		extent := int(extentImm.Value)
		if extent <= 1 {
			lv.err = fmt.Errorf("optim: loop over %s has extent %d; can only vectorize a constant extent > 1", inner.LoopVar.Name, extent)
			return x
		}

		compile.Debugf("vectorizing %s extent %d on %s", inner.LoopVar.Name, extent, lv.target)
		compile.Debugf("body before: %s", inner.Body)

		body := newVectorizer(inner.LoopVar, extent, lv.ctx).Visit(inner.Body)

		compile.Debugf("body after: %s", body)

		// Drop the inner for-loop node: its induction variable is now
		// the identity ramp inside the body.
		x.Body = body
		return x

	case *ir.Block:
		for i, s := range x.Stmts {
			x.Stmts[i] = lv.visit(s)
		}
		return x

	case *ir.IfThenElse:
		x.TrueCase = lv.visit(x.TrueCase)
		if x.FalseCase != nil {
			x.FalseCase = lv.visit(x.FalseCase)
		}
		return x

	case *ir.Let:
		x.Body = lv.visit(x.Body)
		return x
	}
	return e
}

// splitForLoop rewrites a vectorized loop over [0, extent) into an
// outer serial loop over extent/factor whose body is a fresh inner loop
// of extent factor, still marked Vectorized. The outer loop is mutated
// in place and the inner loop returned. A loop whose minimum is not the
// literal 0 declines the split: the return is nil, nil and the loop is
// left as it was.
func splitForLoop(fl *ir.For, factor int, ctx *compile.Context) (*ir.For, error) {
	if factor <= 1 {
		return nil, fmt.Errorf("optim: vectorize factor on loop over %s must be > 1, got %d", fl.LoopVar.Name, factor)
	}
	minImm, ok := fl.Min.(*ir.IntImm)
	if !ok || minImm.Value != 0 {
		return nil, nil
	}

	times := Simplify(ir.NewBinary(ir.Div, fl.Extent, ir.NewIntImm(fl.Extent.Type(), int64(factor))))

	// The input loop becomes the outer loop, no longer vectorized.
	fl.Extent = times
	fl.Kind = ir.Serial
	fl.VecInfo = ir.VectorizeInfo{}

	// Rewrite every use of the original variable to v*factor + vi and
	// wrap the body in the new inner loop.
	vi := ir.NewVar(ctx.NewName("vi"), fl.LoopVar.T)
	newIndex := ir.NewBinary(ir.Add,
		ir.NewBinary(ir.Mul, fl.LoopVar, ir.NewIntImm(fl.LoopVar.T, int64(factor))),
		vi)
	body := ReplaceVarWithExpr(fl.Body, fl.LoopVar, newIndex)

	inner := ir.NewVectorizedFor(vi, ir.NewIntImm(fl.LoopVar.T, 0), ir.NewIntImm(fl.LoopVar.T, int64(factor)), body, factor)
	fl.Body = ir.NewBlock(inner)
	return inner, nil
}
