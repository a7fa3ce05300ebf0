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

package compile

import (
	"fmt"
	"runtime"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Target describes the machine the compiled loops will run on. The
// vectorization driver carries it for target-specific widening policy;
// MaxLanes is the policy hook.
type Target struct {
	// Arch is the GOARCH-style architecture name.
	Arch string

	// VectorBits is the widest SIMD register the target offers.
	VectorBits int
}

// Native returns a target describing the host machine, with the vector
// width detected from CPU features.
func Native() Target {
	return Target{Arch: runtime.GOARCH, VectorBits: nativeVectorBits()}
}

// MaxLanes returns how many elements of the given bit width fit in one
// vector register, at least 1.
func (t Target) MaxLanes(elemBits int) int {
	if elemBits <= 0 || t.VectorBits < elemBits {
		return 1
	}
	return t.VectorBits / elemBits
}

// DisplayName returns the architecture name title-cased for reports.
func (t Target) DisplayName() string {
	return cases.Title(language.English).String(t.Arch)
}

// String returns a human-readable description of the target.
func (t Target) String() string {
	return fmt.Sprintf("%s/%d-bit vectors", t.Arch, t.VectorBits)
}
