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

// Expr is the interface implemented by every IR node. Expression trees
// are acyclic and owned by their parent. The expression rewriters
// (Simplify, ReplaceVarWithExpr, the Vectorizer) replace a changed
// subtree with a freshly built one, so a rewrite returning the same
// pointer means the subtree is untouched; the VectorizeLoops driver
// instead mutates For and Block nodes in place.
type Expr interface {
	// Type returns the node's value type. Statement nodes (Store, For,
	// Block, IfThenElse) return VoidType.
	Type() Type

	isExpr()
}

// BinOp identifies the operation of a Binary node.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Min
	Max
	EQ
	NE
	LT
	LE
	GT
	GE
	And
	Or
)

// String returns the operator's source form (e.g. "+", "<=", "min").
func (op BinOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Min:
		return "min"
	case Max:
		return "max"
	case EQ:
		return "=="
	case NE:
		return "!="
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	case And:
		return "&&"
	case Or:
		return "||"
	default:
		return fmt.Sprintf("BinOp(%d)", int(op))
	}
}

// IsComparison reports whether the op yields a boolean result.
func (op BinOp) IsComparison() bool {
	switch op {
	case EQ, NE, LT, LE, GT, GE:
		return true
	}
	return false
}

// ForKind classifies how a for-loop's iterations are to be executed.
type ForKind int

const (
	Serial ForKind = iota
	Parallel
	Vectorized
	Unrolled
)

// String returns a human-readable name for the ForKind.
func (k ForKind) String() string {
	switch k {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	case Vectorized:
		return "vectorized"
	case Unrolled:
		return "unrolled"
	default:
		return fmt.Sprintf("ForKind(%d)", int(k))
	}
}

// VectorizeInfo annotates a Vectorized loop with its lane factor.
type VectorizeInfo struct {
	Factor int
}

// Valid reports whether the annotation carries a usable factor.
func (vi VectorizeInfo) Valid() bool { return vi.Factor > 0 }

// IntImm is an integer literal.
type IntImm struct {
	T     Type
	Value int64
}

func (e *IntImm) Type() Type { return e.T }
func (e *IntImm) isExpr()    {}

// NewIntImm builds an integer literal of the given type.
func NewIntImm(t Type, value int64) *IntImm {
	return &IntImm{T: t, Value: value}
}

// ConstInt builds an int32 literal, the default integer type for loop
// bounds and indices.
func ConstInt(value int64) *IntImm {
	return &IntImm{T: Int32Type(), Value: value}
}

// FloatImm is a floating-point literal.
type FloatImm struct {
	T     Type
	Value float64
}

func (e *FloatImm) Type() Type { return e.T }
func (e *FloatImm) isExpr()    {}

// NewFloatImm builds a float literal of the given type.
func NewFloatImm(t Type, value float64) *FloatImm {
	return &FloatImm{T: t, Value: value}
}

// Var is a variable reference. Reduce axes additionally carry their
// iteration bounds.
type Var struct {
	T    Type
	Name string

	// LowerBound and UpperBound are set for reduce axes; nil otherwise.
	LowerBound Expr
	UpperBound Expr
}

func (e *Var) Type() Type { return e.T }
func (e *Var) isExpr()    {}

// NewVar builds a scalar variable of the given type.
func NewVar(name string, t Type) *Var {
	return &Var{T: t, Name: name}
}

// NewReduceAxis builds an int32 reduce-axis variable iterating
// [lower, upper).
func NewReduceAxis(name string, lower, upper Expr) *Var {
	return &Var{T: Int32Type(), Name: name, LowerBound: lower, UpperBound: upper}
}

// Cast converts a value to another scalar kind. The target type's lane
// count always matches the operand's.
type Cast struct {
	T     Type
	Value Expr
}

func (e *Cast) Type() Type { return e.T }
func (e *Cast) isExpr()    {}

// NewCast builds a cast of value to type t.
func NewCast(t Type, value Expr) *Cast {
	if t.Lanes != value.Type().Lanes {
		panic(fmt.Sprintf("ir: cast to %s from %s changes lanes", t, value.Type()))
	}
	return &Cast{T: t, Value: value}
}

// Binary is a two-operand operation. Both operands always have the same
// lane count; mixed-width arithmetic is expressed by widening an operand
// first.
type Binary struct {
	Op BinOp
	A  Expr
	B  Expr
}

func (e *Binary) Type() Type {
	t := e.A.Type()
	if e.Op.IsComparison() {
		return BoolType().WithLanes(t.Lanes)
	}
	if e.Op == And || e.Op == Or {
		return BoolType().WithLanes(t.Lanes)
	}
	return t
}

func (e *Binary) isExpr() {}

// NewBinary builds a binary operation. Operand lane counts must match.
func NewBinary(op BinOp, a, b Expr) *Binary {
	ta, tb := a.Type(), b.Type()
	if ta.Lanes != tb.Lanes {
		panic(fmt.Sprintf("ir: %s operands have mismatched lanes: %s vs %s", op, ta, tb))
	}
	if !ta.CompatibleWith(tb) {
		panic(fmt.Sprintf("ir: %s operands have incompatible kinds: %s vs %s", op, ta, tb))
	}
	return &Binary{Op: op, A: a, B: b}
}

// Select is the ternary operator: per-lane cond ? t : f. The condition
// may be scalar (one decision for all lanes) or match the result width.
type Select struct {
	Cond       Expr
	TrueValue  Expr
	FalseValue Expr
}

func (e *Select) Type() Type { return e.TrueValue.Type() }
func (e *Select) isExpr()    {}

// NewSelect builds a select node.
func NewSelect(cond, trueValue, falseValue Expr) *Select {
	tl, fl := trueValue.Type().Lanes, falseValue.Type().Lanes
	if tl != fl {
		panic(fmt.Sprintf("ir: select branches have mismatched lanes: %d vs %d", tl, fl))
	}
	if cl := cond.Type().Lanes; cl != 1 && cl != tl {
		panic(fmt.Sprintf("ir: select condition has %d lanes, want 1 or %d", cl, tl))
	}
	return &Select{Cond: cond, TrueValue: trueValue, FalseValue: falseValue}
}

// Buffer names a tensor's storage. Load and Store nodes reference it;
// the element type determines the loaded value's scalar kind.
type Buffer struct {
	Name string
	Elem Type
}

func (e *Buffer) Type() Type { return HandleType() }
func (e *Buffer) isExpr()    {}

// NewBuffer builds a buffer reference with a scalar element type.
func NewBuffer(name string, elem Type) *Buffer {
	if !elem.IsScalar() {
		panic(fmt.Sprintf("ir: buffer %s element type %s is not scalar", name, elem))
	}
	return &Buffer{Name: name, Elem: elem}
}

// Load reads from a buffer. All indices share one lane count, and the
// result is that many lanes wide. The predicate, when present, masks
// inactive lanes; the vectorizer does not rewrite it.
type Load struct {
	Tensor    *Buffer
	Indices   []Expr
	Predicate Expr
}

func (e *Load) Type() Type {
	return e.Tensor.Elem.WithLanes(e.Indices[0].Type().Lanes)
}

func (e *Load) isExpr() {}

// NewLoad builds a load of tensor at the given indices.
func NewLoad(tensor *Buffer, indices ...Expr) *Load {
	if len(indices) == 0 {
		panic("ir: load needs at least one index")
	}
	lanes := indices[0].Type().Lanes
	for _, idx := range indices[1:] {
		if idx.Type().Lanes != lanes {
			panic(fmt.Sprintf("ir: load indices have mismatched lanes: %d vs %d", idx.Type().Lanes, lanes))
		}
	}
	return &Load{Tensor: tensor, Indices: indices}
}

// Store writes a value into a buffer. The value's lane count matches
// each index's. The predicate, when present, masks inactive lanes; the
// vectorizer does not rewrite it.
type Store struct {
	Tensor    *Buffer
	Value     Expr
	Indices   []Expr
	Predicate Expr
}

func (e *Store) Type() Type { return VoidType() }
func (e *Store) isExpr()    {}

// NewStore builds a store of value into tensor at the given indices.
func NewStore(tensor *Buffer, value Expr, indices ...Expr) *Store {
	if len(indices) == 0 {
		panic("ir: store needs at least one index")
	}
	lanes := value.Type().Lanes
	for _, idx := range indices {
		if idx.Type().Lanes != lanes {
			panic(fmt.Sprintf("ir: store index has %d lanes, value has %d", idx.Type().Lanes, lanes))
		}
	}
	return &Store{Tensor: tensor, Value: value, Indices: indices}
}

// Ramp is a vector whose i-th lane is base + i*stride. Base and stride
// are scalar.
type Ramp struct {
	Base   Expr
	Stride Expr
	Lanes  int
}

func (e *Ramp) Type() Type { return e.Base.Type().WithLanes(e.Lanes) }
func (e *Ramp) isExpr()    {}

// NewRamp builds a ramp vector.
func NewRamp(base, stride Expr, lanes int) *Ramp {
	if !base.Type().IsScalar() || !stride.Type().IsScalar() {
		panic(fmt.Sprintf("ir: ramp base/stride must be scalar, got %s and %s", base.Type(), stride.Type()))
	}
	if lanes < 2 {
		panic(fmt.Sprintf("ir: ramp needs at least 2 lanes, got %d", lanes))
	}
	return &Ramp{Base: base, Stride: stride, Lanes: lanes}
}

// Broadcast is a vector whose every lane equals a scalar value.
type Broadcast struct {
	Value Expr
	Lanes int
}

func (e *Broadcast) Type() Type { return e.Value.Type().WithLanes(e.Lanes) }
func (e *Broadcast) isExpr()    {}

// NewBroadcast builds a broadcast vector.
func NewBroadcast(value Expr, lanes int) *Broadcast {
	if !value.Type().IsScalar() {
		panic(fmt.Sprintf("ir: broadcast value must be scalar, got %s", value.Type()))
	}
	if lanes < 2 {
		panic(fmt.Sprintf("ir: broadcast needs at least 2 lanes, got %d", lanes))
	}
	return &Broadcast{Value: value, Lanes: lanes}
}

// Let binds a variable to a value within a body expression.
type Let struct {
	Var   *Var
	Value Expr
	Body  Expr
}

func (e *Let) Type() Type { return e.Body.Type() }
func (e *Let) isExpr()    {}

// NewLet builds a let binding.
func NewLet(v *Var, value, body Expr) *Let {
	return &Let{Var: v, Value: value, Body: body}
}

// IfThenElse is a statement-level conditional. FalseCase may be nil.
type IfThenElse struct {
	Cond      Expr
	TrueCase  Expr
	FalseCase Expr
}

func (e *IfThenElse) Type() Type { return VoidType() }
func (e *IfThenElse) isExpr()    {}

// NewIfThenElse builds a conditional statement.
func NewIfThenElse(cond, trueCase, falseCase Expr) *IfThenElse {
	return &IfThenElse{Cond: cond, TrueCase: trueCase, FalseCase: falseCase}
}

// For is a loop statement over [Min, Min+Extent). Vectorized loops carry
// a VectorizeInfo naming the lane factor.
type For struct {
	LoopVar *Var
	Min     Expr
	Extent  Expr
	Kind    ForKind
	VecInfo VectorizeInfo
	Body    Expr
}

func (e *For) Type() Type { return VoidType() }
func (e *For) isExpr()    {}

// IsVectorized reports whether the loop is marked for vectorization.
func (e *For) IsVectorized() bool { return e.Kind == Vectorized }

// NewFor builds a serial loop.
func NewFor(loopVar *Var, min, extent, body Expr) *For {
	return &For{LoopVar: loopVar, Min: min, Extent: extent, Kind: Serial, Body: body}
}

// NewVectorizedFor builds a loop annotated for vectorization with the
// given lane factor.
func NewVectorizedFor(loopVar *Var, min, extent, body Expr, factor int) *For {
	return &For{
		LoopVar: loopVar,
		Min:     min,
		Extent:  extent,
		Kind:    Vectorized,
		VecInfo: VectorizeInfo{Factor: factor},
		Body:    body,
	}
}

// Block is a statement sequence.
type Block struct {
	Stmts []Expr
}

func (e *Block) Type() Type { return VoidType() }
func (e *Block) isExpr()    {}

// NewBlock builds a block from the given statements.
func NewBlock(stmts ...Expr) *Block {
	return &Block{Stmts: stmts}
}

// Call is an opaque function call. The vectorizer cannot widen calls and
// leaves them untouched with a diagnostic.
type Call struct {
	T    Type
	Name string
	Args []Expr
}

func (e *Call) Type() Type { return e.T }
func (e *Call) isExpr()    {}

// NewCall builds a call returning the given type.
func NewCall(t Type, name string, args ...Expr) *Call {
	return &Call{T: t, Name: name, Args: args}
}
