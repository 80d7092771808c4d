// Copyright 2025 The Rivaas Authors
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

package navigator

import "maps"

// ChainEntry pairs one matched route with its resolved view handle.
// The view may be nil for transparent routes that neither accepted a
// result nor declare a Component.
type ChainEntry struct {
	Match *Match
	View  any
}

// Chain is the root-to-leaf sequence of matched routes considered active,
// together with their view handles. Chains are replaced wholesale by the
// next committed render, never mutated in place.
type Chain []*ChainEntry

// Routes returns the chain's routes, root first.
func (c Chain) Routes() []*Route {
	routes := make([]*Route, len(c))
	for i, e := range c {
		routes[i] = e.Match.Route
	}

	return routes
}

// deepest returns the last entry, or nil for an empty chain.
func (c Chain) deepest() *ChainEntry {
	if len(c) == 0 {
		return nil
	}

	return c[len(c)-1]
}

// divergenceIndex returns the length of the common reusable prefix of two
// chains. Entries are compared by route identity and resolved params, not
// by pattern text: the same pattern reached through a different branch is
// a different position.
func divergenceIndex(old, next Chain) int {
	i := 0
	for i < len(old) && i < len(next) {
		if old[i].Match.Route != next[i].Match.Route {
			break
		}
		if !maps.Equal(old[i].Match.Params, next[i].Match.Params) {
			break
		}
		i++
	}

	return i
}

// parentView returns the nearest non-nil view above index i, or nil when
// the entry mounts at the host root.
func (c Chain) parentView(i int) any {
	for j := i - 1; j >= 0; j-- {
		if c[j].View != nil {
			return c[j].View
		}
	}

	return nil
}
