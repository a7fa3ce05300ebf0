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
	"fmt"
	"strconv"
	"strings"
)

// Compact single-line debug printers. Diagnostics and debug traces embed
// these; they are not a parseable serialization format.

func (e *IntImm) String() string { return strconv.FormatInt(e.Value, 10) }

func (e *FloatImm) String() string { return strconv.FormatFloat(e.Value, 'g', -1, 64) }

func (e *Var) String() string { return e.Name }

func (e *Buffer) String() string { return e.Name }

func (e *Cast) String() string { return fmt.Sprintf("%s(%s)", e.T, e.Value) }

func (e *Binary) String() string {
	if e.Op == Min || e.Op == Max {
		return fmt.Sprintf("%s(%s, %s)", e.Op, e.A, e.B)
	}
	return fmt.Sprintf("(%s %s %s)", e.A, e.Op, e.B)
}

func (e *Select) String() string {
	return fmt.Sprintf("select(%s, %s, %s)", e.Cond, e.TrueValue, e.FalseValue)
}

func (e *Load) String() string {
	return fmt.Sprintf("%s[%s]", e.Tensor.Name, joinExprs(e.Indices))
}

func (e *Store) String() string {
	return fmt.Sprintf("%s[%s] = %s", e.Tensor.Name, joinExprs(e.Indices), e.Value)
}

func (e *Ramp) String() string {
	return fmt.Sprintf("ramp(%s, %s, %d)", e.Base, e.Stride, e.Lanes)
}

func (e *Broadcast) String() string {
	return fmt.Sprintf("broadcast(%s, %d)", e.Value, e.Lanes)
}

func (e *Let) String() string {
	return fmt.Sprintf("let %s = %s in %s", e.Var.Name, e.Value, e.Body)
}

func (e *IfThenElse) String() string {
	if e.FalseCase == nil {
		return fmt.Sprintf("if (%s) { %s }", e.Cond, e.TrueCase)
	}
	return fmt.Sprintf("if (%s) { %s } else { %s }", e.Cond, e.TrueCase, e.FalseCase)
}

func (e *For) String() string {
	if e.Kind == Serial {
		return fmt.Sprintf("for (%s, %s, %s) { %s }", e.LoopVar.Name, e.Min, e.Extent, e.Body)
	}
	return fmt.Sprintf("for<%s> (%s, %s, %s) { %s }", e.Kind, e.LoopVar.Name, e.Min, e.Extent, e.Body)
}

func (e *Block) String() string {
	parts := make([]string, len(e.Stmts))
	for i, s := range e.Stmts {
		parts[i] = fmt.Sprint(s)
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func (e *Call) String() string {
	return fmt.Sprintf("%s(%s)", e.Name, joinExprs(e.Args))
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = fmt.Sprint(e)
	}
	return strings.Join(parts, ", ")
}
