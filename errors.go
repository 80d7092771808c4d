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
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that no route produced a usable result for the
	// pathname. This covers both "no pattern matched anything" and
	// "patterns matched but no action accepted".
	ErrNotFound = errors.New("page not found")

	// ErrNavigationPrevented indicates that an action or lifecycle callback
	// intentionally aborted the navigation. The previously active chain
	// stays displayed; this outcome is a no-op, not a terminal failure.
	ErrNavigationPrevented = errors.New("navigation prevented")

	// ErrRedirectLoop indicates that the redirect recursion bound was
	// exceeded while resolving a navigation.
	ErrRedirectLoop = errors.New("too many redirects")

	// ErrNavigationSuperseded indicates that a newer navigation was
	// requested while this one was in flight. Supersession is silent: it is
	// never reported through the error notification and commits nothing.
	ErrNavigationSuperseded = errors.New("navigation superseded")

	// ErrRoutesNotSet indicates that the router has no route tree yet.
	ErrRoutesNotSet = errors.New("routes not set")

	// ErrRouteNotFound indicates that no route carries the requested name.
	ErrRouteNotFound = errors.New("route not found")

	// ErrDuplicateRouteName indicates that two distinct routes share a name.
	ErrDuplicateRouteName = errors.New("duplicate route name")

	// ErrMissingParameter indicates that a required pattern parameter has
	// no supplied value during URL generation.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrNoComponentFactory indicates that a route declares a Component but
	// no ComponentFactory was configured.
	ErrNoComponentFactory = errors.New("component factory not configured")

	// ErrRedirectLimitInvalid indicates that the redirect limit option must
	// be positive.
	ErrRedirectLimitInvalid = errors.New("redirect limit must be positive")
)

// NavigationError is the terminal failure of one render attempt, carrying
// the pathname that was requested. It is the payload of the router's error
// notification.
type NavigationError struct {
	// Pathname is the path whose navigation failed, as requested.
	Pathname string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation to %q failed: %v", e.Pathname, e.Err)
}

// Unwrap returns the underlying cause for errors.Is / errors.As.
func (e *NavigationError) Unwrap() error {
	return e.Err
}
