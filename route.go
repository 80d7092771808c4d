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

import (
	"context"
	"sync/atomic"

	"rivaas.dev/navigator/pattern"
)

// Params maps route parameter names to captured string values.
type Params map[string]string

// Get returns the value for name, or "" when absent.
func (p Params) Get(name string) string {
	return p[name]
}

// Has reports whether name was captured.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// ActionFunc is a per-route handler invoked while a navigation resolves.
//
// An action receives the navigation context and a Commands capability
// object. Its result steers resolution:
//
//   - nil: pass through, resolution continues to the next match;
//   - cmd.Redirect(path): restart resolution at a new path;
//   - cmd.Prevent(): abort the navigation, the previous chain stays active;
//   - any other non-nil value: the accepted view handle for this route,
//     which stops resolution.
//
// A returned error terminates the render attempt.
type ActionFunc func(ctx context.Context, c *Context, cmd *Commands) (any, error)

// ComponentFactory materializes the view handle for a route's Component
// shorthand. The handle is opaque to the navigator; only the optional
// lifecycle interfaces in view.go are consulted.
type ComponentFactory func(name string) (any, error)

// Route is one node of the declarative route tree.
//
// Routes are supplied to Router.SetRoutes and treated as immutable
// snapshots while a render is in flight. A node's identity is positional:
// the same *Route pointer appearing in consecutive resolved chains marks a
// reusable position.
//
// Children order is significant: earlier siblings win over later ones.
// A route "has children" when either Children or ChildrenFunc is set, even
// if the list is empty; such a route prefix-matches the remaining path,
// while a childless route must match it exactly.
type Route struct {
	// Path is the pattern for this node (see package pattern). An unset
	// Path is the empty pattern, which consumes nothing.
	Path string

	// Name optionally names the route for reverse URL generation.
	// Names must be unique across distinct routes of the tree.
	Name string

	// Component declares the view to materialize for this node via the
	// router's ComponentFactory. Actions take precedence for the deepest
	// (accepting) node.
	Component string

	// Action is the node's handler, invoked in tree order during
	// resolution. Optional.
	Action ActionFunc

	// Children is the ordered list of child routes.
	Children []*Route

	// ChildrenFunc lazily produces the child routes. It is consulted when
	// Children is nil and re-evaluated once per traversal, never cached
	// across renders.
	ChildrenFunc func() []*Route

	compiled atomic.Pointer[pattern.Pattern]
}

// hasChildren reports whether the node uses prefix matching.
// Truthiness of the child source decides, not the length of the list.
func (r *Route) hasChildren() bool {
	return r.Children != nil || r.ChildrenFunc != nil
}

// childRoutes resolves the node's child source for one traversal.
func (r *Route) childRoutes() []*Route {
	if r.Children != nil {
		return r.Children
	}
	if r.ChildrenFunc != nil {
		return r.ChildrenFunc()
	}

	return nil
}

// pattern returns the node's compiled path pattern, compiling it on first
// use. Compiled patterns are immutable and shared across traversals.
func (r *Route) pattern() (*pattern.Pattern, error) {
	if p := r.compiled.Load(); p != nil {
		return p, nil
	}

	p, err := pattern.Compile(r.Path)
	if err != nil {
		return nil, err
	}
	r.compiled.Store(p)

	return p, nil
}
