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

// Package compile holds the shared compilation state the passes lean
// on: the fresh-name generator, the pass counter registry, the
// diagnostics sink, and the target descriptor.
package compile

import (
	"fmt"

	"github.com/xyproto/env/v2"
)

// debugPasses enables debug output for the compiler passes.
// Set TENSORC_DEBUG=1 to enable.
var debugPasses = env.Bool("TENSORC_DEBUG")

// Debugf prints a pass-debugging message when TENSORC_DEBUG is set.
func Debugf(format string, args ...any) {
	if debugPasses {
		fmt.Printf("[tensorc] "+format+"\n", args...)
	}
}

// Context carries the mutable state shared across one compilation:
// fresh-name counters, diagnostic counters, and recorded diagnostics.
// A Context is not safe for concurrent use; passes running in parallel
// on independent IR roots must each be given their own.
type Context struct {
	nameIDs  map[string]int
	counters Counters
	diags    []string
}

// NewContext returns an empty compilation context.
func NewContext() *Context {
	return &Context{
		nameIDs:  make(map[string]int),
		counters: Counters{m: make(map[string]int)},
	}
}

var global = NewContext()

// Global returns the process-wide context. Name and counter state
// persists across pass invocations until Reset.
func Global() *Context { return global }

// NewName returns a fresh name with the given prefix. The first request
// for a prefix returns it verbatim; later requests append a counter.
func (c *Context) NewName(prefix string) string {
	id := c.nameIDs[prefix]
	c.nameIDs[prefix]++
	if id == 0 {
		return prefix
	}
	return fmt.Sprintf("%s_%d", prefix, id)
}

// Counters returns the context's counter registry.
func (c *Context) Counters() *Counters { return &c.counters }

// Diagf records a non-fatal diagnostic and echoes it to the debug log.
func (c *Context) Diagf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.diags = append(c.diags, msg)
	Debugf("diagnostic: %s", msg)
}

// Diagnostics returns the diagnostics recorded so far.
func (c *Context) Diagnostics() []string { return c.diags }

// Reset clears names, counters, and diagnostics. Meant for tests that
// need a deterministic fresh-name seed on the global context.
func (c *Context) Reset() {
	c.nameIDs = make(map[string]int)
	c.counters = Counters{m: make(map[string]int)}
	c.diags = nil
}

// Counters is a registry of named integer counters, observable between
// pass invocations.
type Counters struct {
	m map[string]int
}

// Incr adds one to the named counter.
func (r *Counters) Incr(name string) { r.m[name]++ }

// Get returns the named counter's value, zero if never incremented.
func (r *Counters) Get(name string) int { return r.m[name] }
