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

package lang

import (
	"testing"

	"github.com/ajroetker/go-tensorc/ir"
)

// TestComputeElementwise declares a 1-D tensor and checks shape,
// domain, and axes.
func TestComputeElementwise(t *testing.T) {
	b := ir.NewBuffer("B", ir.Int32Type())

	tensor, err := Compute1([]ir.Expr{ir.ConstInt(16)}, func(i ir.Expr) ir.Expr {
		return ir.NewBinary(ir.Add, ir.NewLoad(b, i), ir.ConstInt(1))
	}, "T", nil)
	if err != nil {
		t.Fatalf("Compute1: %v", err)
	}

	if tensor.Name != "T" {
		t.Errorf("name = %q, want %q", tensor.Name, "T")
	}
	if len(tensor.Shape) != 1 || !ir.Equal(tensor.Shape[0], ir.ConstInt(16)) {
		t.Errorf("shape = %v, want [16]", tensor.Shape)
	}
	if len(tensor.Domain) != 1 || !ir.Equal(tensor.Domain[0], ir.ConstInt(16)) {
		t.Errorf("domain = %v, want [16]", tensor.Domain)
	}
	if len(tensor.Axis) != 1 || tensor.Axis[0].Name != "i" {
		t.Errorf("axes = %v, want [i]", tensor.Axis)
	}

	// The body is the indexing function applied to the default axis.
	add, ok := tensor.Body.(*ir.Binary)
	if !ok || add.Op != ir.Add {
		t.Fatalf("body = %s, want an add", tensor.Body)
	}
	if load := add.A.(*ir.Load); load.Indices[0].(*ir.Var).Name != "i" {
		t.Error("body should index the buffer by the default axis")
	}
}

// TestComputeWithReduceAxis checks that reduce axes extend the domain
// past the shape.
func TestComputeWithReduceAxis(t *testing.T) {
	b := ir.NewBuffer("B", ir.Float32Type())
	k := ir.NewReduceAxis("k", ir.ConstInt(0), ir.ConstInt(8))

	tensor, err := Compute1([]ir.Expr{ir.ConstInt(16)}, func(i ir.Expr) ir.Expr {
		return ir.NewLoad(b, i)
	}, "T", []*ir.Var{k})
	if err != nil {
		t.Fatalf("Compute1: %v", err)
	}

	if len(tensor.Shape) != 1 {
		t.Errorf("shape = %v, want [16]", tensor.Shape)
	}
	if len(tensor.Domain) != 2 || !ir.Equal(tensor.Domain[1], ir.ConstInt(8)) {
		t.Errorf("domain = %v, want [16 8]", tensor.Domain)
	}
	if len(tensor.Axis) != 2 || tensor.Axis[1] != k {
		t.Errorf("axes = %v, want [i k]", tensor.Axis)
	}
}

// TestComputeReduceAxisLowerBound requires reduce axes to start at 0.
func TestComputeReduceAxisLowerBound(t *testing.T) {
	bad := ir.NewReduceAxis("k", ir.ConstInt(1), ir.ConstInt(8))
	_, err := Compute1([]ir.Expr{ir.ConstInt(16)}, func(i ir.Expr) ir.Expr {
		return i
	}, "T", []*ir.Var{bad})
	if err == nil {
		t.Error("reduce axis with lower bound 1 should be rejected")
	}

	unbounded := ir.NewVar("k", ir.Int32Type())
	_, err = Compute1([]ir.Expr{ir.ConstInt(16)}, func(i ir.Expr) ir.Expr {
		return i
	}, "T", []*ir.Var{unbounded})
	if err == nil {
		t.Error("reduce axis without bounds should be rejected")
	}
}

// TestComputeSimplifiesDims verifies that dimension expressions are
// canonicalized into the shape.
func TestComputeSimplifiesDims(t *testing.T) {
	dim := ir.NewBinary(ir.Mul, ir.ConstInt(4), ir.ConstInt(4))
	tensor, err := Compute1([]ir.Expr{dim}, func(i ir.Expr) ir.Expr { return i }, "T", nil)
	if err != nil {
		t.Fatalf("Compute1: %v", err)
	}
	if !ir.Equal(tensor.Shape[0], ir.ConstInt(16)) {
		t.Errorf("shape = %s, want 16", tensor.Shape[0])
	}
}

// TestComputeArity verifies the fixed-arity wrappers and their
// dimension checks.
func TestComputeArity(t *testing.T) {
	id2 := func(i, j ir.Expr) ir.Expr { return ir.NewBinary(ir.Add, i, j) }

	tensor, err := Compute2([]ir.Expr{ir.ConstInt(4), ir.ConstInt(8)}, id2, "M", nil)
	if err != nil {
		t.Fatalf("Compute2: %v", err)
	}
	if len(tensor.Axis) != 2 || tensor.Axis[0].Name != "i" || tensor.Axis[1].Name != "j" {
		t.Errorf("axes = %v, want [i j]", tensor.Axis)
	}

	if _, err := Compute2([]ir.Expr{ir.ConstInt(4)}, id2, "M", nil); err == nil {
		t.Error("Compute2 with one dim should be rejected")
	}

	tensor5, err := Compute5(
		[]ir.Expr{ir.ConstInt(2), ir.ConstInt(2), ir.ConstInt(2), ir.ConstInt(2), ir.ConstInt(2)},
		func(i, j, k, l, m ir.Expr) ir.Expr { return i },
		"T5", nil)
	if err != nil {
		t.Fatalf("Compute5: %v", err)
	}
	if got := len(tensor5.Axis); got != 5 {
		t.Errorf("axes = %d, want 5", got)
	}
	if tensor5.Axis[4].Name != "m" {
		t.Errorf("fifth axis = %q, want %q", tensor5.Axis[4].Name, "m")
	}
}

// TestComputeUniqueName verifies that unnamed tensors draw fresh names.
func TestComputeUniqueName(t *testing.T) {
	mk := func() *Tensor {
		tensor, err := Compute1([]ir.Expr{ir.ConstInt(4)}, func(i ir.Expr) ir.Expr { return i }, "", nil)
		if err != nil {
			t.Fatalf("Compute1: %v", err)
		}
		return tensor
	}
	a, b := mk(), mk()
	if a.Name == "" || b.Name == "" {
		t.Error("unnamed tensors should be given names")
	}
	if a.Name == b.Name {
		t.Errorf("names should be unique, both %q", a.Name)
	}
}
