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
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger {
	return noopLogger
}

// Option defines functional options for router configuration.
type Option func(*Router)

// Router is the navigation orchestrator. It resolves navigable paths
// against the installed route tree, runs actions and view lifecycle
// callbacks in order, and guarantees that when renders race, only the most
// recent one's side effects become observable.
//
// A Router is safe for concurrent use. Concurrent Render calls are
// serialized only at commit time; an action stalling one generation never
// blocks a newer generation from starting, progressing, and committing.
//
// Example:
//
//	r := navigator.MustNew()
//	err := r.SetRoutes(
//	    &navigator.Route{Path: "/", Action: showHome},
//	    &navigator.Route{Path: "/users", Children: []*navigator.Route{
//	        {Path: "/:id", Name: "user", Action: showUser},
//	    }},
//	)
//	loc, err := r.Render(ctx, "/users/42?tab=posts")
type Router struct {
	mu       sync.Mutex // guards roots, names, active, location
	roots    []*Route
	names    map[string]*namedRoute
	active   Chain
	location *Location

	generation atomic.Uint64

	notifyMu    sync.Mutex
	notifiedGen uint64 // newest generation that delivered a location-changed notification

	// Configuration, fixed after New.
	logger            *slog.Logger
	recorder          NavigationRecorder
	diagnostics       DiagnosticHandler
	mounter           Mounter
	factory           ComponentFactory
	redirectLimit     int
	onLocationChanged LocationChangedFunc
	onError           NavigationErrorFunc
}

// defaultRedirectLimit bounds redirect recursion per render attempt.
const defaultRedirectLimit = 16

// New creates a router with optional configuration.
//
// The router is ready to use once SetRoutes installs a route tree.
// Configuration is validated immediately rather than at render time; an
// invalid option surfaces as an error here. For a version that panics
// instead, use MustNew.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		logger:        noopLogger,
		mounter:       noopMounter{},
		redirectLimit: defaultRedirectLimit,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.redirectLimit <= 0 {
		return nil, ErrRedirectLimitInvalid
	}

	return r, nil
}

// MustNew is like New but panics on configuration errors.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("navigator: MustNew: %v", err))
	}

	return r
}

// SetRoutes installs the route forest the router resolves against.
//
// The statically declared tree is validated eagerly: every pattern must
// compile and a name may map to at most one distinct route. Routes behind
// a ChildrenFunc are discovered lazily during traversal and are not
// validated or name-indexed here.
//
// The tree is treated as an immutable snapshot while a render is in
// flight; mutating it mid-render is undefined behavior, though previously
// returned match records are never corrupted.
func (r *Router) SetRoutes(routes ...*Route) error {
	names := make(map[string]*namedRoute)
	for _, rt := range routes {
		if rt == nil {
			continue
		}
		if err := indexRoutes(rt, "", names); err != nil {
			return err
		}
	}

	r.mu.Lock()
	r.roots = routes
	r.names = names
	r.mu.Unlock()

	r.emitDiagnostic(DiagRoutesSet, "route tree installed", map[string]any{
		"roots": len(routes),
		"named": len(names),
	})
	r.logger.Debug("navigator: routes set", "roots", len(routes), "named", len(names))

	return nil
}

// indexRoutes validates rt's subtree and records named routes with their
// accumulated full patterns.
func indexRoutes(rt *Route, prefix string, names map[string]*namedRoute) error {
	if _, err := rt.pattern(); err != nil {
		return err
	}

	full := joinPaths(prefix, rt.Path)
	if rt.Name != "" {
		if existing, ok := names[rt.Name]; ok && existing.route != rt {
			return fmt.Errorf("%w: %q", ErrDuplicateRouteName, rt.Name)
		}
		names[rt.Name] = &namedRoute{route: rt, fullPath: full}
	}

	for _, child := range rt.Children {
		if child == nil {
			continue
		}
		if err := indexRoutes(child, full, names); err != nil {
			return err
		}
	}

	return nil
}

// Location returns the location of the last committed render, or nil
// before the first one.
func (r *Router) Location() *Location {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.location
}

// Chain returns the routes of the currently active chain, root first.
// The returned slice is a copy.
func (r *Router) Chain() []*Route {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.active.Routes()
}

// snapshot returns the current roots and active chain under the lock.
func (r *Router) snapshot() ([]*Route, Chain, *Location) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.roots, r.active, r.location
}

// checkpoint enforces the cooperative cancellation protocol. It is called
// after every suspension point: a generation that is no longer the newest
// abandons its remaining work in place.
func (r *Router) checkpoint(gen uint64) error {
	if r.generation.Load() != gen {
		r.emitDiagnostic(DiagRenderSuperseded, "render superseded", map[string]any{
			"generation": gen,
		})
		return ErrNavigationSuperseded
	}

	return nil
}
