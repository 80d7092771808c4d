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

import "log/slog"

// WithLogger sets the structured logger for the router. Without it, logs
// are discarded.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	r := navigator.MustNew(navigator.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObservability sets a unified navigation recorder (metrics, tracing,
// logging). See NavigationRecorder and NewOTelRecorder.
//
// Example:
//
//	rec, _ := navigator.NewOTelRecorder()
//	r := navigator.MustNew(navigator.WithObservability(rec))
func WithObservability(rec NavigationRecorder) Option {
	return func(r *Router) {
		r.recorder = rec
	}
}

// WithDiagnostics sets a diagnostic handler for the router.
//
// Diagnostic events are optional informational events that may indicate
// configuration issues. The router functions correctly whether diagnostics
// are collected or not.
//
// Example with logging:
//
//	handler := navigator.DiagnosticHandlerFunc(func(e navigator.DiagnosticEvent) {
//	    slog.Debug(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := navigator.MustNew(navigator.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}

// WithMounter sets the host environment bridge that attaches and detaches
// committed view handles. Without it, commits happen without host wiring.
func WithMounter(m Mounter) Option {
	return func(r *Router) {
		if m != nil {
			r.mounter = m
		}
	}
}

// WithComponentFactory sets the factory that materializes Route.Component
// declarations into view handles. Resolving a route that declares a
// Component without a configured factory fails the render.
func WithComponentFactory(f ComponentFactory) Option {
	return func(r *Router) {
		r.factory = f
	}
}

// WithRedirectLimit bounds redirect recursion per render attempt. When the
// bound is exceeded the render fails with ErrRedirectLoop.
//
// Default: 16. Must be positive or New fails.
func WithRedirectLimit(limit int) Option {
	return func(r *Router) {
		r.redirectLimit = limit
	}
}

// WithLocationChangedHandler registers the "location changed"
// notification, fired exactly once after each committed navigation.
func WithLocationChangedHandler(fn LocationChangedFunc) Option {
	return func(r *Router) {
		r.onLocationChanged = fn
	}
}

// WithErrorHandler registers the "error" notification, fired exactly once
// per terminally failed navigation. Prevented and superseded navigations
// do not fire it.
func WithErrorHandler(fn NavigationErrorFunc) Option {
	return func(r *Router) {
		r.onError = fn
	}
}
