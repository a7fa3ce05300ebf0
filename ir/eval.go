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

import "fmt"

// Env holds the variable bindings and named buffers a program executes
// against. Values are lane vectors; scalars have length 1. The evaluator
// works over the integer domain only, which is what the pass's
// round-trip checks need.
type Env struct {
	Vars    map[string][]int64
	Buffers map[string][]int64
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{
		Vars:    make(map[string][]int64),
		Buffers: make(map[string][]int64),
	}
}

// Bind sets a scalar variable binding and returns the env for chaining.
func (env *Env) Bind(name string, value int64) *Env {
	env.Vars[name] = []int64{value}
	return env
}

// Eval evaluates an integer-domain expression to one value per lane.
func Eval(e Expr, env *Env) ([]int64, error) {
	switch x := e.(type) {
	case *IntImm:
		return []int64{x.Value}, nil

	case *Var:
		v, ok := env.Vars[x.Name]
		if !ok {
			return nil, fmt.Errorf("ir: unbound variable %q", x.Name)
		}
		return v, nil

	case *Cast:
		// Integer domain: casts change the kind tag only.
		return Eval(x.Value, env)

	case *Binary:
		a, err := Eval(x.A, env)
		if err != nil {
			return nil, err
		}
		b, err := Eval(x.B, env)
		if err != nil {
			return nil, err
		}
		return evalBinary(x.Op, a, b)

	case *Select:
		cond, err := Eval(x.Cond, env)
		if err != nil {
			return nil, err
		}
		t, err := Eval(x.TrueValue, env)
		if err != nil {
			return nil, err
		}
		f, err := Eval(x.FalseValue, env)
		if err != nil {
			return nil, err
		}
		out := make([]int64, len(t))
		for i := range t {
			if lane(cond, i) != 0 {
				out[i] = t[i]
			} else {
				out[i] = f[i]
			}
		}
		return out, nil

	case *Load:
		buf, ok := env.Buffers[x.Tensor.Name]
		if !ok {
			return nil, fmt.Errorf("ir: unknown buffer %q", x.Tensor.Name)
		}
		idx, err := flatIndex(x.Indices, env)
		if err != nil {
			return nil, err
		}
		out := make([]int64, len(idx))
		for i, j := range idx {
			if j < 0 || int(j) >= len(buf) {
				return nil, fmt.Errorf("ir: load from %s out of range: index %d, size %d", x.Tensor.Name, j, len(buf))
			}
			out[i] = buf[j]
		}
		return out, nil

	case *Ramp:
		base, err := Eval(x.Base, env)
		if err != nil {
			return nil, err
		}
		stride, err := Eval(x.Stride, env)
		if err != nil {
			return nil, err
		}
		out := make([]int64, x.Lanes)
		for i := range out {
			out[i] = base[0] + int64(i)*stride[0]
		}
		return out, nil

	case *Broadcast:
		v, err := Eval(x.Value, env)
		if err != nil {
			return nil, err
		}
		out := make([]int64, x.Lanes)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil

	case *Let:
		v, err := Eval(x.Value, env)
		if err != nil {
			return nil, err
		}
		saved, had := env.Vars[x.Var.Name]
		env.Vars[x.Var.Name] = v
		out, err := Eval(x.Body, env)
		if had {
			env.Vars[x.Var.Name] = saved
		} else {
			delete(env.Vars, x.Var.Name)
		}
		return out, err

	default:
		return nil, fmt.Errorf("ir: cannot evaluate %T", e)
	}
}

// Exec executes a statement against the environment.
func Exec(stmt Expr, env *Env) error {
	switch x := stmt.(type) {
	case *Store:
		buf, ok := env.Buffers[x.Tensor.Name]
		if !ok {
			return fmt.Errorf("ir: unknown buffer %q", x.Tensor.Name)
		}
		value, err := Eval(x.Value, env)
		if err != nil {
			return err
		}
		idx, err := flatIndex(x.Indices, env)
		if err != nil {
			return err
		}
		for i, j := range idx {
			if j < 0 || int(j) >= len(buf) {
				return fmt.Errorf("ir: store to %s out of range: index %d, size %d", x.Tensor.Name, j, len(buf))
			}
			buf[j] = lane(value, i)
		}
		return nil

	case *Block:
		for _, s := range x.Stmts {
			if err := Exec(s, env); err != nil {
				return err
			}
		}
		return nil

	case *For:
		min, err := Eval(x.Min, env)
		if err != nil {
			return err
		}
		extent, err := Eval(x.Extent, env)
		if err != nil {
			return err
		}
		saved, had := env.Vars[x.LoopVar.Name]
		for i := min[0]; i < min[0]+extent[0]; i++ {
			env.Vars[x.LoopVar.Name] = []int64{i}
			if err := Exec(x.Body, env); err != nil {
				return err
			}
		}
		if had {
			env.Vars[x.LoopVar.Name] = saved
		} else {
			delete(env.Vars, x.LoopVar.Name)
		}
		return nil

	case *IfThenElse:
		cond, err := Eval(x.Cond, env)
		if err != nil {
			return err
		}
		if cond[0] != 0 {
			return Exec(x.TrueCase, env)
		}
		if x.FalseCase != nil {
			return Exec(x.FalseCase, env)
		}
		return nil

	case *Let:
		v, err := Eval(x.Value, env)
		if err != nil {
			return err
		}
		saved, had := env.Vars[x.Var.Name]
		env.Vars[x.Var.Name] = v
		err = Exec(x.Body, env)
		if had {
			env.Vars[x.Var.Name] = saved
		} else {
			delete(env.Vars, x.Var.Name)
		}
		return err

	default:
		return fmt.Errorf("ir: cannot execute %T as a statement", stmt)
	}
}

// flatIndex evaluates a buffer index list. Only one-dimensional indexing
// is supported: a list with any other number of indices is an error, and
// multi-dimensional indices are not linearized.
func flatIndex(indices []Expr, env *Env) ([]int64, error) {
	if len(indices) != 1 {
		return nil, fmt.Errorf("ir: evaluator supports 1-D indexing, got %d indices", len(indices))
	}
	return Eval(indices[0], env)
}

// lane reads lane i of a value, broadcasting scalars.
func lane(v []int64, i int) int64 {
	if len(v) == 1 {
		return v[0]
	}
	return v[i]
}

func evalBinary(op BinOp, a, b []int64) ([]int64, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]int64, n)
	for i := range out {
		x, y := lane(a, i), lane(b, i)
		switch op {
		case Add:
			out[i] = x + y
		case Sub:
			out[i] = x - y
		case Mul:
			out[i] = x * y
		case Div:
			if y == 0 {
				return nil, fmt.Errorf("ir: division by zero")
			}
			out[i] = x / y
		case Mod:
			if y == 0 {
				return nil, fmt.Errorf("ir: modulo by zero")
			}
			out[i] = x % y
		case Min:
			out[i] = min(x, y)
		case Max:
			out[i] = max(x, y)
		case EQ:
			out[i] = boolToInt(x == y)
		case NE:
			out[i] = boolToInt(x != y)
		case LT:
			out[i] = boolToInt(x < y)
		case LE:
			out[i] = boolToInt(x <= y)
		case GT:
			out[i] = boolToInt(x > y)
		case GE:
			out[i] = boolToInt(x >= y)
		case And:
			out[i] = boolToInt(x != 0 && y != 0)
		case Or:
			out[i] = boolToInt(x != 0 || y != 0)
		default:
			return nil, fmt.Errorf("ir: unknown binary op %v", op)
		}
	}
	return out, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
