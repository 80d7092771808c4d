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
	"net/url"
	"strings"
)

// Location is one resolved point in the navigation history: the parsed
// parts of the navigated path plus, once resolved, the matched route chain
// and its accumulated parameters.
//
// Locations are immutable once published through Router.Location or a
// notification.
type Location struct {
	// Pathname is the path component, e.g. "/users/42".
	Pathname string

	// Search is the raw query string without the leading "?", e.g. "tab=posts".
	Search string

	// Hash is the fragment without the leading "#".
	Hash string

	// Routes is the matched chain, root first. Empty until resolved.
	Routes []*Route

	// Route is the deepest matched route, or nil until resolved.
	Route *Route

	// Params holds the deepest match's accumulated parameters.
	Params Params

	// RedirectFrom is the originally requested pathname when this location
	// was reached through a redirect, "" otherwise.
	RedirectFrom string
}

// parseLocation splits a navigable path of the form path[?search][#hash].
func parseLocation(path string) (*Location, error) {
	u, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	return &Location{
		Pathname: u.Path,
		Search:   u.RawQuery,
		Hash:     u.Fragment,
	}, nil
}

// URL reassembles the location into a navigable string.
func (l *Location) URL() string {
	var b strings.Builder
	b.WriteString(l.Pathname)
	if l.Search != "" {
		b.WriteByte('?')
		b.WriteString(l.Search)
	}
	if l.Hash != "" {
		b.WriteByte('#')
		b.WriteString(l.Hash)
	}

	return b.String()
}

// Query parses the search string into url.Values. Errors surface as an
// empty set; the raw string stays available in Search.
func (l *Location) Query() url.Values {
	v, err := url.ParseQuery(l.Search)
	if err != nil {
		return url.Values{}
	}

	return v
}
