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
	"strconv"
	"strings"
)

// namedRoute is one entry of the reverse-routing index built by SetRoutes.
// fullPath is the route's pattern accumulated from the root.
type namedRoute struct {
	route    *Route
	fullPath string
	reverse  *ReversePattern
}

// URLFor generates a URL from a route name and parameters.
//
// Parameters are matched by name for ":name" placeholders and by positional
// key ("0", "1", ...) for parenthesized regex groups. Optional parameters
// may be omitted; their segment disappears from the result. Query values,
// when provided, are appended encoded.
//
// Example:
//
//	url, err := r.URLFor("user", map[string]string{"id": "42"}, nil)
//	// "/users/42"
func (r *Router) URLFor(routeName string, params map[string]string, query url.Values) (string, error) {
	r.mu.Lock()
	if r.names == nil {
		r.mu.Unlock()
		return "", ErrRoutesNotSet
	}
	nr, ok := r.names[routeName]
	if ok && nr.reverse == nil {
		nr.reverse = ParseReversePattern(nr.fullPath)
	}
	r.mu.Unlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, routeName)
	}

	return nr.reverse.BuildURL(params, query)
}

// MustURLFor generates a URL from a route name and parameters, panicking on
// error.
func (r *Router) MustURLFor(routeName string, params map[string]string, query url.Values) string {
	url, err := r.URLFor(routeName, params, query)
	if err != nil {
		panic(fmt.Sprintf("MustURLFor failed: %v", err))
	}

	return url
}

// segmentKind discriminates reverse-pattern segments.
type segmentKind int

const (
	segStatic segmentKind = iota
	segParam
	segGroup
)

// Segment represents one token of a route pattern for URL building.
type Segment struct {
	Kind     segmentKind
	Value    string // static text, parameter name, or positional group key
	Optional bool   // parameter declared with a trailing "?"
}

// ReversePattern represents a compiled route pattern for URL building
// (reverse routing). It stores token positions to avoid string replacement
// at build time.
type ReversePattern struct {
	Segments []Segment
}

// ParseReversePattern parses a route pattern into segments for URL
// building. Example: "/users/:id" -> [{static:"/users/"}, {param:"id"}].
// Parenthesized regex groups get positional keys in order of appearance.
func ParseReversePattern(path string) *ReversePattern {
	var (
		segments []Segment
		literal  strings.Builder
		group    int
	)

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, Segment{Kind: segStatic, Value: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(path); {
		switch path[i] {
		case ':':
			j := i + 1
			for j < len(path) && isNameByte(path[j]) {
				j++
			}
			if j == i+1 {
				literal.WriteByte(path[i])
				i++
				continue
			}
			seg := Segment{Kind: segParam, Value: path[i+1 : j]}
			if j < len(path) && path[j] == '?' {
				seg.Optional = true
				j++
			}
			flush()
			segments = append(segments, seg)
			i = j
		case '(':
			end := closingParen(path, i)
			if end < 0 {
				literal.WriteString(path[i:])
				i = len(path)
				continue
			}
			flush()
			segments = append(segments, Segment{Kind: segGroup, Value: strconv.Itoa(group)})
			group++
			i = end + 1
		default:
			literal.WriteByte(path[i])
			i++
		}
	}
	flush()

	return &ReversePattern{Segments: segments}
}

// BuildURL builds a URL from the reverse pattern and parameters.
//
// A missing required parameter fails with ErrMissingParameter. A missing
// optional parameter drops its segment, including the separator in front
// of it.
func (p *ReversePattern) BuildURL(params map[string]string, query url.Values) (string, error) {
	var buf strings.Builder

	for _, seg := range p.Segments {
		switch seg.Kind {
		case segStatic:
			buf.WriteString(seg.Value)
		case segParam, segGroup:
			val, ok := params[seg.Value]
			if !ok || val == "" {
				if seg.Optional {
					trimTrailingSlash(&buf)
					continue
				}
				return "", fmt.Errorf("%w: %s", ErrMissingParameter, seg.Value)
			}
			buf.WriteString(url.PathEscape(val))
		}
	}

	if len(query) > 0 {
		buf.WriteByte('?')
		buf.WriteString(query.Encode())
	}

	return buf.String(), nil
}

// trimTrailingSlash removes the separator left dangling when an optional
// parameter is omitted, keeping a lone root "/" intact.
func trimTrailingSlash(buf *strings.Builder) {
	s := buf.String()
	if len(s) > 1 && strings.HasSuffix(s, "/") {
		buf.Reset()
		buf.WriteString(s[:len(s)-1])
	}
}

// isNameByte reports whether c can appear in a ":name" placeholder.
func isNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// closingParen returns the index of the parenthesis closing the group that
// opens at open, honoring backslash escapes, or -1 when unbalanced.
func closingParen(raw string, open int) int {
	depth := 0
	for i := open; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
