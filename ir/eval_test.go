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

import (
	"slices"
	"testing"
)

// TestEvalExpr verifies lane-wise evaluation of vector expressions.
func TestEvalExpr(t *testing.T) {
	i := NewVar("i", Int32Type())

	tests := []struct {
		name string
		expr Expr
		want []int64
	}{
		{"literal", ConstInt(7), []int64{7}},
		{"variable", i, []int64{3}},
		{"arith", NewBinary(Add, NewBinary(Mul, i, ConstInt(2)), ConstInt(1)), []int64{7}},
		{"ramp", NewRamp(ConstInt(5), ConstInt(2), 4), []int64{5, 7, 9, 11}},
		{"broadcast", NewBroadcast(i, 3), []int64{3, 3, 3}},
		{"min", NewBinary(Min, i, ConstInt(2)), []int64{2}},
		{"compare", NewBinary(LT, NewRamp(ConstInt(0), ConstInt(1), 4), NewBroadcast(ConstInt(2), 4)), []int64{1, 1, 0, 0}},
		{
			"select",
			NewSelect(
				NewBinary(GE, NewRamp(ConstInt(0), ConstInt(1), 4), NewBroadcast(ConstInt(2), 4)),
				NewRamp(ConstInt(0), ConstInt(1), 4),
				NewBroadcast(ConstInt(-1), 4)),
			[]int64{-1, -1, 2, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewEnv().Bind("i", 3)
			got, err := Eval(tt.expr, env)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Eval = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestEvalLoad verifies gather loads through a ramp index.
func TestEvalLoad(t *testing.T) {
	b := NewBuffer("B", Int32Type())
	env := NewEnv()
	env.Buffers["B"] = []int64{10, 20, 30, 40}

	got, err := Eval(NewLoad(b, NewRamp(ConstInt(1), ConstInt(1), 3)), env)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !slices.Equal(got, []int64{20, 30, 40}) {
		t.Errorf("Eval = %v, want [20 30 40]", got)
	}

	if _, err := Eval(NewLoad(b, ConstInt(9)), env); err == nil {
		t.Error("out-of-range load should fail")
	}
}

// TestExecLoop verifies serial loop execution with stores.
func TestExecLoop(t *testing.T) {
	i := NewVar("i", Int32Type())
	a := NewBuffer("A", Int32Type())
	b := NewBuffer("B", Int32Type())

	// for i in [0,4): A[i] = B[i] * 2
	loop := NewFor(i, ConstInt(0), ConstInt(4),
		NewStore(a, NewBinary(Mul, NewLoad(b, i), ConstInt(2)), i))

	env := NewEnv()
	env.Buffers["A"] = make([]int64, 4)
	env.Buffers["B"] = []int64{1, 2, 3, 4}

	if err := Exec(loop, env); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if !slices.Equal(env.Buffers["A"], []int64{2, 4, 6, 8}) {
		t.Errorf("A = %v, want [2 4 6 8]", env.Buffers["A"])
	}
	if _, bound := env.Vars["i"]; bound {
		t.Error("loop variable should be unbound after the loop")
	}
}

// TestExecVectorStore verifies a SIMD-wide store: a vector value
// scattered through a ramp index in one statement.
func TestExecVectorStore(t *testing.T) {
	a := NewBuffer("A", Int32Type())

	store := NewStore(a,
		NewBinary(Add, NewRamp(ConstInt(0), ConstInt(1), 4), NewBroadcast(ConstInt(10), 4)),
		NewRamp(ConstInt(0), ConstInt(1), 4))

	env := NewEnv()
	env.Buffers["A"] = make([]int64, 4)
	if err := Exec(store, env); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if !slices.Equal(env.Buffers["A"], []int64{10, 11, 12, 13}) {
		t.Errorf("A = %v, want [10 11 12 13]", env.Buffers["A"])
	}
}

// TestExecIfThenElse verifies conditional execution.
func TestExecIfThenElse(t *testing.T) {
	a := NewBuffer("A", Int32Type())
	env := NewEnv()
	env.Buffers["A"] = make([]int64, 1)

	stmt := NewIfThenElse(
		NewBinary(GT, ConstInt(2), ConstInt(1)),
		NewStore(a, ConstInt(5), ConstInt(0)),
		NewStore(a, ConstInt(9), ConstInt(0)))
	if err := Exec(stmt, env); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if env.Buffers["A"][0] != 5 {
		t.Errorf("A[0] = %d, want 5", env.Buffers["A"][0])
	}
}

// TestEvalDivByZero verifies the divide-by-zero guard.
func TestEvalDivByZero(t *testing.T) {
	if _, err := Eval(NewBinary(Div, ConstInt(1), ConstInt(0)), NewEnv()); err == nil {
		t.Error("division by zero should fail")
	}
	if _, err := Eval(NewBinary(Mod, ConstInt(1), ConstInt(0)), NewEnv()); err == nil {
		t.Error("modulo by zero should fail")
	}
}
