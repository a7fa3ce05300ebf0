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

// Package lang is the tensor-compute declaration surface: a dimension
// list plus an indexing function yield a tensor node, whose loop nests
// are later lowered and handed to the optimization passes.
package lang

import (
	"fmt"

	"github.com/ajroetker/go-tensorc/compile"
	"github.com/ajroetker/go-tensorc/ir"
	"github.com/ajroetker/go-tensorc/optim"
)

// Tensor is a declared computation over an iteration domain. Shape is
// the output extent per output axis; Domain additionally covers the
// reduce axes; Axis lists output axes followed by reduce axes.
type Tensor struct {
	Name   string
	Shape  []ir.Expr
	Domain []ir.Expr
	Axis   []*ir.Var

	// Body is the indexing function applied to the default axes.
	Body ir.Expr

	// Fn is the stored indexing function.
	Fn func(axes []ir.Expr) ir.Expr
}

// Compute declares a tensor with the given output dimensions and
// indexing function. The function receives one axis variable per
// dimension. Each reduce axis must iterate from the literal 0; its
// upper bound is appended to the iteration domain. An empty name draws
// a unique one from the global context.
func Compute(dims []ir.Expr, fn func(axes []ir.Expr) ir.Expr, name string, reduceAxis []*ir.Var) (*Tensor, error) {
	axes := defaultAxes(len(dims))
	axisExprs := make([]ir.Expr, len(axes))
	for i, a := range axes {
		axisExprs[i] = a
	}
	body := fn(axisExprs)

	shape := make([]ir.Expr, len(dims))
	for i, dim := range dims {
		shape[i] = optim.Simplify(dim)
	}

	// The domain ranges over every loop variable: output axes first,
	// then the reduce axes' upper bounds.
	domain := make([]ir.Expr, len(shape), len(shape)+len(reduceAxis))
	copy(domain, shape)
	for _, axis := range reduceAxis {
		lower, ok := axis.LowerBound.(*ir.IntImm)
		if !ok || lower.Value != 0 {
			return nil, fmt.Errorf("lang: reduce axis %s must have lower bound 0, got %s", axis.Name, axis.LowerBound)
		}
		domain = append(domain, axis.UpperBound)
		axes = append(axes, axis)
	}

	if name == "" {
		name = compile.Global().NewName("tensor")
	}

	return &Tensor{
		Name:   name,
		Shape:  shape,
		Domain: domain,
		Axis:   axes,
		Body:   body,
		Fn:     fn,
	}, nil
}

// Compute1 declares a one-dimensional tensor.
func Compute1(dims []ir.Expr, fn func(i ir.Expr) ir.Expr, name string, reduceAxis []*ir.Var) (*Tensor, error) {
	if err := checkArity(dims, 1); err != nil {
		return nil, err
	}
	return Compute(dims, func(axes []ir.Expr) ir.Expr {
		return fn(axes[0])
	}, name, reduceAxis)
}

// Compute2 declares a two-dimensional tensor.
func Compute2(dims []ir.Expr, fn func(i, j ir.Expr) ir.Expr, name string, reduceAxis []*ir.Var) (*Tensor, error) {
	if err := checkArity(dims, 2); err != nil {
		return nil, err
	}
	return Compute(dims, func(axes []ir.Expr) ir.Expr {
		return fn(axes[0], axes[1])
	}, name, reduceAxis)
}

// Compute3 declares a three-dimensional tensor.
func Compute3(dims []ir.Expr, fn func(i, j, k ir.Expr) ir.Expr, name string, reduceAxis []*ir.Var) (*Tensor, error) {
	if err := checkArity(dims, 3); err != nil {
		return nil, err
	}
	return Compute(dims, func(axes []ir.Expr) ir.Expr {
		return fn(axes[0], axes[1], axes[2])
	}, name, reduceAxis)
}

// Compute4 declares a four-dimensional tensor.
func Compute4(dims []ir.Expr, fn func(i, j, k, l ir.Expr) ir.Expr, name string, reduceAxis []*ir.Var) (*Tensor, error) {
	if err := checkArity(dims, 4); err != nil {
		return nil, err
	}
	return Compute(dims, func(axes []ir.Expr) ir.Expr {
		return fn(axes[0], axes[1], axes[2], axes[3])
	}, name, reduceAxis)
}

// Compute5 declares a five-dimensional tensor.
func Compute5(dims []ir.Expr, fn func(i, j, k, l, m ir.Expr) ir.Expr, name string, reduceAxis []*ir.Var) (*Tensor, error) {
	if err := checkArity(dims, 5); err != nil {
		return nil, err
	}
	return Compute(dims, func(axes []ir.Expr) ir.Expr {
		return fn(axes[0], axes[1], axes[2], axes[3], axes[4])
	}, name, reduceAxis)
}

func checkArity(dims []ir.Expr, arity int) error {
	if len(dims) != arity {
		return fmt.Errorf("lang: indexing function takes %d axes but %d dims given", arity, len(dims))
	}
	return nil
}

// defaultAxisNames seeds axis naming for the leading dimensions;
// further dimensions are numbered.
var defaultAxisNames = []string{"i", "j", "k", "l", "m"}

func defaultAxes(n int) []*ir.Var {
	axes := make([]*ir.Var, n)
	for i := range axes {
		name := fmt.Sprintf("axis_%d", i)
		if i < len(defaultAxisNames) {
			name = defaultAxisNames[i]
		}
		axes[i] = ir.NewVar(name, ir.Int32Type())
	}
	return axes
}
