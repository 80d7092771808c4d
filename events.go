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

// LocationChangedFunc receives the "location changed" notification, fired
// exactly once after a navigation commits, for the committing generation
// only.
type LocationChangedFunc func(r *Router, loc *Location)

// NavigationErrorFunc receives the "error" notification, fired exactly
// once when a navigation terminally fails. Prevented navigations and
// superseded generations do not fire it.
type NavigationErrorFunc func(r *Router, err *NavigationError)

// DiagnosticEvent represents a navigator diagnostic or anomaly.
// These are informational events that may indicate configuration issues.
// The navigator functions correctly whether diagnostics are collected or
// not.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRoutesSet fires when a route tree is installed.
	DiagRoutesSet DiagnosticKind = "routes_set"

	// DiagRedirectFollowed fires for every redirect taken during
	// resolution, including those issued by OnBeforeEnter hooks.
	DiagRedirectFollowed DiagnosticKind = "redirect_followed"

	// DiagRenderSuperseded fires when an in-flight generation is abandoned
	// because a newer navigation started.
	DiagRenderSuperseded DiagnosticKind = "render_superseded"

	// DiagChainReused fires when a committed render reused the previous
	// chain's view handles instead of remounting them.
	DiagChainReused DiagnosticKind = "chain_reused"
)

// DiagnosticHandler receives diagnostic events from the navigator.
// Implementations may log, emit metrics, trace events, or ignore them.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := navigator.DiagnosticHandlerFunc(func(e navigator.DiagnosticEvent) {
//	    slog.Debug(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := navigator.MustNew(navigator.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}

// emitDiagnostic delivers e to the configured handler, if any.
func (r *Router) emitDiagnostic(kind DiagnosticKind, message string, fields map[string]any) {
	if r.diagnostics == nil {
		return
	}
	r.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: message, Fields: fields})
}
