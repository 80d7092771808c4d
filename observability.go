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
	"strings"
	"time"
)

// NavigationRecorder provides unified observability lifecycle hooks for
// navigations. Implementations typically combine metrics collection,
// distributed tracing, and structured logging.
//
// Lifecycle:
//  1. The router calls OnNavigationStart(ctx, loc) → (enrichedCtx, state)
//     before resolution begins. The enriched context is used for the whole
//     render, so trace propagation reaches actions and lifecycle hooks.
//  2. After the render settles, the router calls
//     OnNavigationEnd(ctx, state, outcome) exactly once — including for
//     superseded generations, which are reported with Outcome.Superseded
//     set instead of a failure.
//
// Returning state == nil from OnNavigationStart excludes the navigation
// from recording: OnNavigationEnd is skipped, but the enriched context is
// still used.
//
// Thread safety: all methods must be safe for concurrent use.
type NavigationRecorder interface {
	OnNavigationStart(ctx context.Context, loc *Location) (context.Context, any)
	OnNavigationEnd(ctx context.Context, state any, outcome Outcome)
}

// Outcome summarizes one settled render attempt for observability.
type Outcome struct {
	// Location is the resolved location for committed renders, or the
	// requested one otherwise.
	Location *Location

	// RoutePattern is the declared pattern chain of the resolved route
	// ("/users/:id" style), or "" when nothing resolved. Recorders should
	// prefer it over the raw pathname to keep metric cardinality bounded.
	RoutePattern string

	// Err is the terminal failure, nil for committed renders. Superseded
	// generations carry a nil Err.
	Err error

	// Superseded marks a generation abandoned in favor of a newer one.
	Superseded bool

	// Prevented marks a navigation aborted by a prevent instruction.
	Prevented bool

	// Duration covers the whole render attempt.
	Duration time.Duration
}

// routePattern joins the chain's declared patterns into one diagnostic
// string, e.g. "/users" + "/:id" → "/users/:id".
func routePattern(c Chain) string {
	joined := ""
	for _, e := range c {
		joined = joinPaths(joined, e.Match.Path)
	}

	return joined
}

// joinPaths concatenates two declared patterns without doubling or
// dropping separators.
func joinPaths(parent, child string) string {
	switch {
	case child == "":
		return parent
	case parent == "":
		return child
	case strings.HasSuffix(parent, "/"):
		// A "/" root already supplies the separator for relative children.
		return parent + strings.TrimPrefix(child, "/")
	case child[0] == '/':
		return parent + child
	default:
		return parent + "/" + child
	}
}
