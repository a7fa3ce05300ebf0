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

import "github.com/ajroetker/go-tensorc/ir"

// Simplify canonicalizes an expression: integer immediates are folded
// through arithmetic, comparisons, logical ops, and casts to integer
// kinds; float immediates are folded through +, -, *, /, min, and max
// only (float comparisons and float casts are left as they are). The
// identities 0+x, x+0, x-0, 1*x, x*1, 0*x, x*0, and x/1 are applied. The result is
// semantically equal to the input and running Simplify on its own output
// changes nothing. Unchanged subtrees are shared with the input.
func Simplify(e ir.Expr) ir.Expr {
	switch x := e.(type) {
	case *ir.Cast:
		value := Simplify(x.Value)
		if x.T == value.Type() {
			return value
		}
		if imm, ok := value.(*ir.IntImm); ok && isIntKind(x.T.Kind) {
			return ir.NewIntImm(x.T, imm.Value)
		}
		if value == x.Value {
			return e
		}
		return ir.NewCast(x.T, value)

	case *ir.Binary:
		a, b := Simplify(x.A), Simplify(x.B)
		if folded := foldBinary(x.Op, a, b); folded != nil {
			return folded
		}
		if a == x.A && b == x.B {
			return e
		}
		return ir.NewBinary(x.Op, a, b)

	case *ir.Select:
		cond := Simplify(x.Cond)
		t, f := Simplify(x.TrueValue), Simplify(x.FalseValue)
		if imm, ok := cond.(*ir.IntImm); ok && cond.Type().IsScalar() {
			if imm.Value != 0 {
				return t
			}
			return f
		}
		if cond == x.Cond && t == x.TrueValue && f == x.FalseValue {
			return e
		}
		return ir.NewSelect(cond, t, f)

	case *ir.Load:
		indices, changed := simplifySlice(x.Indices)
		if !changed {
			return e
		}
		return &ir.Load{Tensor: x.Tensor, Indices: indices, Predicate: x.Predicate}

	case *ir.Store:
		value := Simplify(x.Value)
		indices, changed := simplifySlice(x.Indices)
		if value == x.Value && !changed {
			return e
		}
		return &ir.Store{Tensor: x.Tensor, Value: value, Indices: indices, Predicate: x.Predicate}

	case *ir.Ramp:
		base, stride := Simplify(x.Base), Simplify(x.Stride)
		if base == x.Base && stride == x.Stride {
			return e
		}
		return ir.NewRamp(base, stride, x.Lanes)

	case *ir.Broadcast:
		value := Simplify(x.Value)
		if value == x.Value {
			return e
		}
		return ir.NewBroadcast(value, x.Lanes)

	case *ir.Let:
		value, body := Simplify(x.Value), Simplify(x.Body)
		if value == x.Value && body == x.Body {
			return e
		}
		return ir.NewLet(x.Var, value, body)

	case *ir.IfThenElse:
		cond := Simplify(x.Cond)
		t := Simplify(x.TrueCase)
		var f ir.Expr
		if x.FalseCase != nil {
			f = Simplify(x.FalseCase)
		}
		if cond == x.Cond && t == x.TrueCase && f == x.FalseCase {
			return e
		}
		return ir.NewIfThenElse(cond, t, f)

	case *ir.For:
		min, extent := Simplify(x.Min), Simplify(x.Extent)
		body := Simplify(x.Body)
		if min == x.Min && extent == x.Extent && body == x.Body {
			return e
		}
		return &ir.For{LoopVar: x.LoopVar, Min: min, Extent: extent, Kind: x.Kind, VecInfo: x.VecInfo, Body: body}

	case *ir.Block:
		stmts, changed := simplifySlice(x.Stmts)
		if !changed {
			return e
		}
		return &ir.Block{Stmts: stmts}

	case *ir.Call:
		args, changed := simplifySlice(x.Args)
		if !changed {
			return e
		}
		return &ir.Call{T: x.T, Name: x.Name, Args: args}
	}
	return e
}

func simplifySlice(exprs []ir.Expr) ([]ir.Expr, bool) {
	changed := false
	out := make([]ir.Expr, len(exprs))
	for i, e := range exprs {
		out[i] = Simplify(e)
		if out[i] != e {
			changed = true
		}
	}
	if !changed {
		return exprs, false
	}
	return out, true
}

func isIntKind(k ir.ScalarKind) bool {
	return k == ir.KindInt32 || k == ir.KindInt64 || k == ir.KindBool
}

// foldBinary returns the folded form of op(a, b), or nil when no rule
// applies.
func foldBinary(op ir.BinOp, a, b ir.Expr) ir.Expr {
	ai, aInt := a.(*ir.IntImm)
	bi, bInt := b.(*ir.IntImm)

	if aInt && bInt {
		if v, ok := foldIntImm(op, ai.Value, bi.Value); ok {
			t := ai.T
			if op.IsComparison() || op == ir.And || op == ir.Or {
				t = ir.BoolType()
			}
			return ir.NewIntImm(t, v)
		}
		return nil
	}

	af, aFloat := a.(*ir.FloatImm)
	bf, bFloat := b.(*ir.FloatImm)
	if aFloat && bFloat {
		if v, ok := foldFloatImm(op, af.Value, bf.Value); ok {
			return ir.NewFloatImm(af.T, v)
		}
		return nil
	}

	// Identity rules on an immediate operand.
	switch op {
	case ir.Add:
		if aInt && ai.Value == 0 {
			return b
		}
		if bInt && bi.Value == 0 {
			return a
		}
	case ir.Sub:
		if bInt && bi.Value == 0 {
			return a
		}
	case ir.Mul:
		if aInt && ai.Value == 1 {
			return b
		}
		if bInt && bi.Value == 1 {
			return a
		}
		if aInt && ai.Value == 0 {
			return a
		}
		if bInt && bi.Value == 0 {
			return b
		}
	case ir.Div:
		if bInt && bi.Value == 1 {
			return a
		}
	}
	return nil
}

func foldIntImm(op ir.BinOp, x, y int64) (int64, bool) {
	switch op {
	case ir.Add:
		return x + y, true
	case ir.Sub:
		return x - y, true
	case ir.Mul:
		return x * y, true
	case ir.Div:
		if y == 0 {
			return 0, false
		}
		return x / y, true
	case ir.Mod:
		if y == 0 {
			return 0, false
		}
		return x % y, true
	case ir.Min:
		return min(x, y), true
	case ir.Max:
		return max(x, y), true
	case ir.EQ:
		return b2i(x == y), true
	case ir.NE:
		return b2i(x != y), true
	case ir.LT:
		return b2i(x < y), true
	case ir.LE:
		return b2i(x <= y), true
	case ir.GT:
		return b2i(x > y), true
	case ir.GE:
		return b2i(x >= y), true
	case ir.And:
		return b2i(x != 0 && y != 0), true
	case ir.Or:
		return b2i(x != 0 || y != 0), true
	}
	return 0, false
}

func foldFloatImm(op ir.BinOp, x, y float64) (float64, bool) {
	switch op {
	case ir.Add:
		return x + y, true
	case ir.Sub:
		return x - y, true
	case ir.Mul:
		return x * y, true
	case ir.Div:
		if y == 0 {
			return 0, false
		}
		return x / y, true
	case ir.Min:
		return min(x, y), true
	case ir.Max:
		return max(x, y), true
	}
	return 0, false
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
