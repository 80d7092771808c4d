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

// Context is the snapshot threaded through one action invocation. It is
// valid for the duration of the call; actions must not retain it.
type Context struct {
	// Pathname, Search and Hash are the parts of the path being resolved.
	// During a redirect these reflect the redirect target, not the
	// originally requested path.
	Pathname string
	Search   string
	Hash     string

	// Match is the route match this action runs for.
	Match *Match

	// Params is shorthand for Match.Params: this node's captures merged
	// over all ancestor parameters.
	Params Params

	// Chain holds the ancestor entries resolved so far, root first,
	// excluding this node.
	Chain Chain

	// Generation identifies the render attempt for cancellation purposes.
	Generation uint64

	// Router is the orchestrator running this navigation.
	Router *Router
}
