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

// Package navigator provides a client-side navigation engine for
// single-page applications.
//
// Unlike a request router that dispatches independent stateless requests,
// the navigator manages transitions between application states: it resolves
// a navigable path against a hierarchical route tree, runs route actions in
// order, diffs the resulting view chain against the currently displayed
// one, and drives the view lifecycle so that reusable ancestors survive a
// navigation untouched.
//
// # Key Features
//
//   - Hierarchical route trees with nested children and lazy subtrees
//   - Pattern matching with named, optional, and regex parameters
//   - Route actions with redirect, prevent, and pass-through control flow
//   - Chain diffing: unchanged ancestor views are reused, not re-created
//   - Ordered lifecycle callbacks (before/after enter and leave)
//   - At-most-one winning navigation under concurrent renders
//   - Reverse routing from route names (URLFor)
//   - OpenTelemetry tracing and metrics integration
//
// # Quick Start
//
//	r := navigator.MustNew()
//	err := r.SetRoutes(
//	    &navigator.Route{Path: "/", Action: showHome},
//	    &navigator.Route{Path: "/users", Action: showUsers, Children: []*navigator.Route{
//	        {Path: "/:id", Name: "user", Action: showUser},
//	    }},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	loc, err := r.Render(ctx, "/users/42?tab=posts")
//
// # Resolution
//
// Render walks the route tree depth-first in declaration order and invokes
// each matching route's action. An action returning nil passes through:
// the route contributes context (and its parameters) but resolution
// continues deeper. The first action returning a usable result wins, and
// the path of matches leading to it becomes the new chain. Actions can
// also return instructions from the Commands parameter:
//
//	func requireAuth(ctx context.Context, c *navigator.Context, cmd *navigator.Commands) (any, error) {
//	    if !loggedIn(ctx) {
//	        return cmd.Redirect("/login"), nil
//	    }
//	    return nil, nil
//	}
//
// Redirects restart resolution at the new path, bounded per render by
// WithRedirectLimit. If the tree is exhausted without a usable result, the
// render fails with ErrNotFound.
//
// # Chain Diffing and Lifecycle
//
// After resolution the new chain is compared with the active one. The
// longest prefix with identical routes and parameters is reused: those
// views keep their handles and see no mount/unmount churn. For the
// diverging suffix the navigator runs, in order: OnBeforeLeave on leaving
// views (deepest first), OnBeforeEnter on entering views (root first), the
// commit (unmount leaving, mount entering), then OnAfterEnter and
// OnAfterLeave. Before-phase observers can prevent the navigation, and
// entering observers can redirect it.
//
// # Concurrent Renders
//
// Every Render call gets a strictly increasing generation number. After
// each suspension point (action, lifecycle callback, component factory
// call) the render checks whether a newer generation has started; if so it
// abandons its remaining work and returns ErrNavigationSuperseded. The
// commit itself re-checks the generation under the router lock, so at most
// one racing render updates the active chain, fires notifications, and
// settles successfully. A slow action never blocks a newer navigation.
//
// # Constructor Pattern
//
// New returns an error because options are validated at construction time
// rather than at render time; MustNew panics instead for wiring code where
// configuration is static. All options use the "With" prefix.
//
// # Observability
//
// WithObservability accepts a NavigationRecorder that sees every settled
// render. NewOTelRecorder provides an OpenTelemetry implementation with
// spans, counters, and a duration histogram labeled by route pattern
// rather than raw pathname, keeping metric cardinality bounded.
// WithDiagnostics surfaces informational events such as followed redirects
// and superseded renders.
package navigator
