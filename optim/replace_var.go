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

// Package optim implements the compiler's IR transformation passes:
// expression simplification, variable substitution, and loop
// vectorization.
package optim

import "github.com/ajroetker/go-tensorc/ir"

// ReplaceVarWithExpr replaces every reference to the named variable in
// e by a copy of repl, returning the rewritten tree. Unchanged subtrees
// are shared with the input. When repl is itself a variable, for-loops
// iterating over the replaced variable are rebound to it.
func ReplaceVarWithExpr(e ir.Expr, v *ir.Var, repl ir.Expr) ir.Expr {
	r := varReplacer{name: v.Name, repl: repl}
	return r.visit(e)
}

type varReplacer struct {
	name string
	repl ir.Expr
}

func (r *varReplacer) visit(e ir.Expr) ir.Expr {
	switch x := e.(type) {
	case *ir.Var:
		if x.Name == r.name {
			return ir.Copy(r.repl)
		}
		return e

	case *ir.IntImm, *ir.FloatImm, *ir.Buffer:
		return e

	case *ir.Cast:
		value := r.visit(x.Value)
		if value == x.Value {
			return e
		}
		return ir.NewCast(x.T, value)

	case *ir.Binary:
		a, b := r.visit(x.A), r.visit(x.B)
		if a == x.A && b == x.B {
			return e
		}
		return ir.NewBinary(x.Op, a, b)

	case *ir.Select:
		cond := r.visit(x.Cond)
		t := r.visit(x.TrueValue)
		f := r.visit(x.FalseValue)
		if cond == x.Cond && t == x.TrueValue && f == x.FalseValue {
			return e
		}
		return ir.NewSelect(cond, t, f)

	case *ir.Load:
		indices, changed := r.visitSlice(x.Indices)
		if !changed {
			return e
		}
		return &ir.Load{Tensor: x.Tensor, Indices: indices, Predicate: x.Predicate}

	case *ir.Store:
		value := r.visit(x.Value)
		indices, changed := r.visitSlice(x.Indices)
		if value == x.Value && !changed {
			return e
		}
		return &ir.Store{Tensor: x.Tensor, Value: value, Indices: indices, Predicate: x.Predicate}

	case *ir.Ramp:
		base, stride := r.visit(x.Base), r.visit(x.Stride)
		if base == x.Base && stride == x.Stride {
			return e
		}
		return ir.NewRamp(base, stride, x.Lanes)

	case *ir.Broadcast:
		value := r.visit(x.Value)
		if value == x.Value {
			return e
		}
		return ir.NewBroadcast(value, x.Lanes)

	case *ir.Let:
		value := r.visit(x.Value)
		body := r.visit(x.Body)
		if value == x.Value && body == x.Body {
			return e
		}
		return ir.NewLet(x.Var, value, body)

	case *ir.IfThenElse:
		cond := r.visit(x.Cond)
		t := r.visit(x.TrueCase)
		var f ir.Expr
		if x.FalseCase != nil {
			f = r.visit(x.FalseCase)
		}
		if cond == x.Cond && t == x.TrueCase && f == x.FalseCase {
			return e
		}
		return ir.NewIfThenElse(cond, t, f)

	case *ir.For:
		min := r.visit(x.Min)
		extent := r.visit(x.Extent)
		body := r.visit(x.Body)

		// Rebind the loop var only for var-for-var substitution; a loop
		// cannot iterate over a compound expression.
		loopVar := x.LoopVar
		if replVar, ok := r.repl.(*ir.Var); ok && x.LoopVar.Name == r.name {
			loopVar = ir.Copy(replVar).(*ir.Var)
		}
		if min == x.Min && extent == x.Extent && body == x.Body && loopVar == x.LoopVar {
			return e
		}
		return &ir.For{LoopVar: loopVar, Min: min, Extent: extent, Kind: x.Kind, VecInfo: x.VecInfo, Body: body}

	case *ir.Block:
		stmts, changed := r.visitSlice(x.Stmts)
		if !changed {
			return e
		}
		return &ir.Block{Stmts: stmts}

	case *ir.Call:
		args, changed := r.visitSlice(x.Args)
		if !changed {
			return e
		}
		return &ir.Call{T: x.T, Name: x.Name, Args: args}
	}
	return e
}

func (r *varReplacer) visitSlice(exprs []ir.Expr) ([]ir.Expr, bool) {
	changed := false
	out := make([]ir.Expr, len(exprs))
	for i, e := range exprs {
		out[i] = r.visit(e)
		if out[i] != e {
			changed = true
		}
	}
	if !changed {
		return exprs, false
	}
	return out, true
}
