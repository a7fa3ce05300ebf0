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

//go:build arm64

package compile

import "golang.org/x/sys/cpu"

// nativeVectorBits reports the widest vector register the host CPU
// offers. NEON is 128-bit; SVE lengths are not discoverable through
// x/sys/cpu, so SVE hosts are reported at the NEON width.
func nativeVectorBits() int {
	if cpu.ARM64.HasASIMD {
		return 128
	}
	return 64
}
