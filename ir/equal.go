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

package ir

// Equal reports whether two expression trees are structurally identical:
// same node kinds, same operator tags and literals, same variable and
// buffer names, lane for lane. Pointer identity is not required.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	switch x := a.(type) {
	case *IntImm:
		y, ok := b.(*IntImm)
		return ok && x.T == y.T && x.Value == y.Value
	case *FloatImm:
		y, ok := b.(*FloatImm)
		return ok && x.T == y.T && x.Value == y.Value
	case *Var:
		y, ok := b.(*Var)
		return ok && x.T == y.T && x.Name == y.Name
	case *Buffer:
		y, ok := b.(*Buffer)
		return ok && x.Name == y.Name && x.Elem == y.Elem
	case *Cast:
		y, ok := b.(*Cast)
		return ok && x.T == y.T && Equal(x.Value, y.Value)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.A, y.A) && Equal(x.B, y.B)
	case *Select:
		y, ok := b.(*Select)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.TrueValue, y.TrueValue) && Equal(x.FalseValue, y.FalseValue)
	case *Load:
		y, ok := b.(*Load)
		return ok && Equal(x.Tensor, y.Tensor) && equalSlices(x.Indices, y.Indices) && Equal(x.Predicate, y.Predicate)
	case *Store:
		y, ok := b.(*Store)
		return ok && Equal(x.Tensor, y.Tensor) && Equal(x.Value, y.Value) &&
			equalSlices(x.Indices, y.Indices) && Equal(x.Predicate, y.Predicate)
	case *Ramp:
		y, ok := b.(*Ramp)
		return ok && x.Lanes == y.Lanes && Equal(x.Base, y.Base) && Equal(x.Stride, y.Stride)
	case *Broadcast:
		y, ok := b.(*Broadcast)
		return ok && x.Lanes == y.Lanes && Equal(x.Value, y.Value)
	case *Let:
		y, ok := b.(*Let)
		return ok && Equal(x.Var, y.Var) && Equal(x.Value, y.Value) && Equal(x.Body, y.Body)
	case *IfThenElse:
		y, ok := b.(*IfThenElse)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.TrueCase, y.TrueCase) && Equal(x.FalseCase, y.FalseCase)
	case *For:
		y, ok := b.(*For)
		return ok && x.Kind == y.Kind && x.VecInfo == y.VecInfo && Equal(x.LoopVar, y.LoopVar) &&
			Equal(x.Min, y.Min) && Equal(x.Extent, y.Extent) && Equal(x.Body, y.Body)
	case *Block:
		y, ok := b.(*Block)
		return ok && equalSlices(x.Stmts, y.Stmts)
	case *Call:
		y, ok := b.(*Call)
		return ok && x.T == y.T && x.Name == y.Name && equalSlices(x.Args, y.Args)
	}
	return false
}

func equalSlices(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
