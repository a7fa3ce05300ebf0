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

// Copy returns a deep copy of an expression tree. Substitution passes
// copy the replacement at every insertion point so the output tree never
// aliases a subtree into two parents.
func Copy(e Expr) Expr {
	switch x := e.(type) {
	case nil:
		return nil
	case *IntImm:
		c := *x
		return &c
	case *FloatImm:
		c := *x
		return &c
	case *Var:
		c := *x
		c.LowerBound = copyOrNil(x.LowerBound)
		c.UpperBound = copyOrNil(x.UpperBound)
		return &c
	case *Buffer:
		c := *x
		return &c
	case *Cast:
		return &Cast{T: x.T, Value: Copy(x.Value)}
	case *Binary:
		return &Binary{Op: x.Op, A: Copy(x.A), B: Copy(x.B)}
	case *Select:
		return &Select{Cond: Copy(x.Cond), TrueValue: Copy(x.TrueValue), FalseValue: Copy(x.FalseValue)}
	case *Load:
		return &Load{Tensor: x.Tensor, Indices: copySlice(x.Indices), Predicate: copyOrNil(x.Predicate)}
	case *Store:
		return &Store{Tensor: x.Tensor, Value: Copy(x.Value), Indices: copySlice(x.Indices), Predicate: copyOrNil(x.Predicate)}
	case *Ramp:
		return &Ramp{Base: Copy(x.Base), Stride: Copy(x.Stride), Lanes: x.Lanes}
	case *Broadcast:
		return &Broadcast{Value: Copy(x.Value), Lanes: x.Lanes}
	case *Let:
		return &Let{Var: Copy(x.Var).(*Var), Value: Copy(x.Value), Body: Copy(x.Body)}
	case *IfThenElse:
		return &IfThenElse{Cond: Copy(x.Cond), TrueCase: Copy(x.TrueCase), FalseCase: copyOrNil(x.FalseCase)}
	case *For:
		c := *x
		c.LoopVar = Copy(x.LoopVar).(*Var)
		c.Min = Copy(x.Min)
		c.Extent = Copy(x.Extent)
		c.Body = Copy(x.Body)
		return &c
	case *Block:
		return &Block{Stmts: copySlice(x.Stmts)}
	case *Call:
		return &Call{T: x.T, Name: x.Name, Args: copySlice(x.Args)}
	}
	return e
}

func copyOrNil(e Expr) Expr {
	if e == nil {
		return nil
	}
	return Copy(e)
}

func copySlice(exprs []Expr) []Expr {
	if exprs == nil {
		return nil
	}
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = Copy(e)
	}
	return out
}
