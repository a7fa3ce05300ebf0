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

import "testing"

// TestNewName verifies fresh-name generation per prefix.
func TestNewName(t *testing.T) {
	ctx := NewContext()

	got := []string{ctx.NewName("vi"), ctx.NewName("vi"), ctx.NewName("vi"), ctx.NewName("tensor")}
	want := []string{"vi", "vi_1", "vi_2", "tensor"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NewName call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestCounters verifies the counter registry.
func TestCounters(t *testing.T) {
	ctx := NewContext()
	if got := ctx.Counters().Get("missing"); got != 0 {
		t.Errorf("unset counter = %d, want 0", got)
	}
	ctx.Counters().Incr("passes")
	ctx.Counters().Incr("passes")
	if got := ctx.Counters().Get("passes"); got != 2 {
		t.Errorf("counter = %d, want 2", got)
	}
}

// TestDiagnostics verifies diagnostic recording and reset.
func TestDiagnostics(t *testing.T) {
	ctx := NewContext()
	ctx.Diagf("unsupported %s", "call")
	ctx.Diagf("declined split")

	diags := ctx.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("diagnostics = %d, want 2", len(diags))
	}
	if diags[0] != "unsupported call" {
		t.Errorf("diags[0] = %q", diags[0])
	}

	ctx.Reset()
	if len(ctx.Diagnostics()) != 0 {
		t.Error("Reset should clear diagnostics")
	}
	if got := ctx.NewName("vi"); got != "vi" {
		t.Errorf("NewName after Reset = %q, want %q", got, "vi")
	}
}

// TestTargetMaxLanes verifies the lane policy arithmetic.
func TestTargetMaxLanes(t *testing.T) {
	tests := []struct {
		vectorBits int
		elemBits   int
		want       int
	}{
		{256, 32, 8},
		{256, 64, 4},
		{128, 32, 4},
		{128, 64, 2},
		{128, 256, 1},
		{0, 32, 1},
	}
	for _, tt := range tests {
		tgt := Target{Arch: "amd64", VectorBits: tt.vectorBits}
		if got := tgt.MaxLanes(tt.elemBits); got != tt.want {
			t.Errorf("Target{%d}.MaxLanes(%d) = %d, want %d", tt.vectorBits, tt.elemBits, got, tt.want)
		}
	}
}

// TestTargetNames verifies target formatting.
func TestTargetNames(t *testing.T) {
	tgt := Target{Arch: "arm64", VectorBits: 128}
	if got := tgt.DisplayName(); got != "Arm64" {
		t.Errorf("DisplayName = %q, want %q", got, "Arm64")
	}
	if got := tgt.String(); got != "arm64/128-bit vectors" {
		t.Errorf("String = %q", got)
	}
}

// TestNative verifies host detection yields a usable width.
func TestNative(t *testing.T) {
	tgt := Native()
	if tgt.Arch == "" {
		t.Error("Native target has no arch")
	}
	if tgt.VectorBits < 64 {
		t.Errorf("Native vector width = %d, want >= 64", tgt.VectorBits)
	}
}
