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

// Package ir defines the expression trees the tensor compiler's
// optimization passes operate on. A value's type carries a scalar kind
// and a lane count; lanes == 1 denotes a scalar, lanes > 1 a SIMD vector
// of that width. Expression rewrites rebuild changed subtrees and share
// unchanged ones, so pointer identity doubles as a cheap dirty check; the
// loop vectorization driver is the exception and mutates loops in place.
package ir

import "fmt"

// ScalarKind enumerates the element kinds a Type can carry.
type ScalarKind int

const (
	// KindVoid is the type of statement nodes (Store, For, Block, ...).
	KindVoid ScalarKind = iota

	// KindBool is the result kind of comparisons and logical ops.
	KindBool

	KindInt32
	KindInt64
	KindFloat32
	KindFloat64

	// KindHandle marks buffer references (the tensor operand of
	// Load/Store nodes).
	KindHandle
)

// String returns a human-readable name for the ScalarKind.
func (k ScalarKind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindHandle:
		return "handle"
	default:
		return fmt.Sprintf("ScalarKind(%d)", int(k))
	}
}

// Bits returns the width of the scalar kind in bits, or 0 for kinds
// without a storage width.
func (k ScalarKind) Bits() int {
	switch k {
	case KindBool:
		return 8
	case KindInt32, KindFloat32:
		return 32
	case KindInt64, KindFloat64:
		return 64
	default:
		return 0
	}
}

// Type is a (scalar kind, lanes) pair. Lanes >= 1 always; vectorization
// preserves the scalar kind and only changes lanes.
type Type struct {
	Kind  ScalarKind
	Lanes int
}

// Scalar type constructors.

func VoidType() Type    { return Type{Kind: KindVoid, Lanes: 1} }
func BoolType() Type    { return Type{Kind: KindBool, Lanes: 1} }
func Int32Type() Type   { return Type{Kind: KindInt32, Lanes: 1} }
func Int64Type() Type   { return Type{Kind: KindInt64, Lanes: 1} }
func Float32Type() Type { return Type{Kind: KindFloat32, Lanes: 1} }
func Float64Type() Type { return Type{Kind: KindFloat64, Lanes: 1} }
func HandleType() Type  { return Type{Kind: KindHandle, Lanes: 1} }

// IsScalar reports whether the type has a single lane.
func (t Type) IsScalar() bool { return t.Lanes == 1 }

// IsVector reports whether the type has more than one lane.
func (t Type) IsVector() bool { return t.Lanes > 1 }

// WithLanes returns a copy of the type with the given lane count.
func (t Type) WithLanes(lanes int) Type {
	if lanes < 1 {
		panic(fmt.Sprintf("ir: invalid lane count %d", lanes))
	}
	return Type{Kind: t.Kind, Lanes: lanes}
}

// CompatibleWith reports whether two types share a scalar kind.
// Lane counts are not compared; widening a value never changes its kind.
func (t Type) CompatibleWith(other Type) bool { return t.Kind == other.Kind }

// String returns a human-readable form like "int32" or "float32x8".
func (t Type) String() string {
	if t.Lanes == 1 {
		return t.Kind.String()
	}
	return fmt.Sprintf("%sx%d", t.Kind, t.Lanes)
}
