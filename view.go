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

import "context"

// View handles are opaque to the navigator: an action or ComponentFactory
// may return any value. The orchestrator consults only the optional
// capability interfaces below, probed by type assertion per handle.
//
// The before-phase hooks may steer the navigation through the Commands
// they receive: OnBeforeEnter may prevent or redirect, OnBeforeLeave may
// only prevent (redirect instructions returned from it are ignored). The
// after-phase hooks are informational; they receive no commands and any
// return value is discarded.

// BeforeEnterObserver is implemented by view handles that want a veto or
// reroute opportunity before their route is committed.
type BeforeEnterObserver interface {
	OnBeforeEnter(ctx context.Context, loc *Location, cmd *Commands, r *Router) (any, error)
}

// BeforeLeaveObserver is implemented by view handles that want a veto
// opportunity before their route is left.
type BeforeLeaveObserver interface {
	OnBeforeLeave(ctx context.Context, loc *Location, cmd *Commands, r *Router) (any, error)
}

// AfterEnterObserver is notified after its route's view was committed.
type AfterEnterObserver interface {
	OnAfterEnter(ctx context.Context, loc *Location, r *Router)
}

// AfterLeaveObserver is notified after its route's view was detached.
type AfterLeaveObserver interface {
	OnAfterLeave(ctx context.Context, loc *Location, r *Router)
}

// Mounter bridges committed chain changes to the host environment's view
// hierarchy. Mount attaches a view under its nearest materialized ancestor
// (parent is nil at the host root); Unmount detaches it. The navigator
// calls Unmount deepest first and Mount root first, and never calls either
// for reused entries.
type Mounter interface {
	Mount(view, parent any) error
	Unmount(view any) error
}

// noopMounter is the default Mounter: chains commit without any host
// environment wiring.
type noopMounter struct{}

func (noopMounter) Mount(_, _ any) error { return nil }

func (noopMounter) Unmount(_ any) error { return nil }
