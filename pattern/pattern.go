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

package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidPattern indicates that a path pattern could not be compiled.
var ErrInvalidPattern = errors.New("invalid path pattern")

// Pattern is a compiled route path pattern.
// A Pattern is immutable and safe for concurrent use.
type Pattern struct {
	raw    string
	keys   []string
	groups []int // indexes into keys holding positional group captures
	re     *regexp.Regexp
}

// Result describes a successful match.
type Result struct {
	// Consumed is the number of bytes of the input covered by the match.
	// The caller slices the input at Consumed to obtain the residual path
	// for child matching.
	Consumed int

	// Params maps parameter names to captured values. Optional parameters
	// that did not participate in the match are absent from the map, not
	// present with an empty value.
	Params map[string]string
}

// Compile parses a path pattern and returns a matcher for it.
func Compile(raw string) (*Pattern, error) {
	src, keys, groups, err := translate(raw)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, raw, err)
	}

	return &Pattern{raw: raw, keys: keys, groups: groups, re: re}, nil
}

// MustCompile is like Compile but panics on error.
// It simplifies safe initialization of package-level patterns.
func MustCompile(raw string) *Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(fmt.Sprintf("pattern: MustCompile(%q): %v", raw, err))
	}

	return p
}

// Raw returns the pattern text as declared.
func (p *Pattern) Raw() string {
	return p.raw
}

// Keys returns the ordered parameter names captured by this pattern.
// The returned slice is shared and must not be modified.
func (p *Pattern) Keys() []string {
	return p.keys
}

// GroupKeyIndexes returns the positions in Keys occupied by positional
// regex-group captures ("0", "1", …) rather than named parameters.
// The returned slice is shared and must not be modified.
func (p *Pattern) GroupKeyIndexes() []int {
	return p.groups
}

// Match tests the pattern against path.
//
// In exact mode the pattern must cover the whole path; one extra trailing
// slash is tolerated for non-empty patterns that do not end in a slash.
// In prefix mode the pattern consumes a leading portion of the path, and
// the match must end on a segment boundary.
func (p *Pattern) Match(path string, exact bool) (*Result, bool) {
	// Absolute patterns only match absolute paths and vice versa.
	// The empty pattern is transparent to this rule.
	if p.raw != "" && path != "" && (p.raw[0] == '/') != (path[0] == '/') {
		return nil, false
	}

	loc := p.re.FindStringSubmatchIndex(path)
	if loc == nil || loc[0] != 0 {
		return nil, false
	}
	end := loc[1]

	if exact {
		switch rest := path[end:]; {
		case rest == "":
			// Full cover.
		case rest == "/" && p.raw != "" && !strings.HasSuffix(p.raw, "/"):
			// Trailing-slash tolerance.
			end = len(path)
		default:
			return nil, false
		}
	} else if end != 0 && end < len(path) && path[end] != '/' && path[end-1] != '/' {
		// A prefix match inside a segment is not a match: "/a" must not
		// prefix-match "/ab".
		return nil, false
	}

	params := make(map[string]string, len(p.keys))
	for i, k := range p.keys {
		s, e := loc[2+2*i], loc[3+2*i]
		if s < 0 {
			continue
		}
		params[k] = path[s:e]
	}

	return &Result{Consumed: end, Params: params}, true
}

// translate converts a path pattern into anchored regexp source, the
// ordered list of capture keys, and the key positions held by positional
// groups.
func translate(raw string) (string, []string, []int, error) {
	var b strings.Builder
	b.WriteString("^")

	var keys []string
	var groups []int
	var pending strings.Builder
	group := 0

	// flush emits the pending literal run. When trimSlash is set and the
	// run ends in a separator, the separator is folded into the optional
	// group that follows so "/a/:b?" can match "/a".
	flush := func(trimSlash bool) bool {
		lit := pending.String()
		pending.Reset()
		trimmed := false
		if trimSlash && strings.HasSuffix(lit, "/") {
			lit = lit[:len(lit)-1]
			trimmed = true
		}
		if lit != "" {
			b.WriteString(regexp.QuoteMeta(lit))
		}

		return trimmed
	}

	i := 0
	for i < len(raw) {
		switch raw[i] {
		case ':':
			j := i + 1
			for j < len(raw) && isNameByte(raw[j]) {
				j++
			}
			if j == i+1 {
				return "", nil, nil, fmt.Errorf("%w: missing parameter name at offset %d in %q", ErrInvalidPattern, i, raw)
			}
			name := raw[i+1 : j]
			optional := j < len(raw) && raw[j] == '?'
			if optional {
				j++
				if flush(true) {
					b.WriteString(`(?:/([^/]+))?`)
				} else {
					b.WriteString(`([^/]+)?`)
				}
			} else {
				flush(false)
				b.WriteString(`([^/]+)`)
			}
			keys = append(keys, name)
			i = j
		case '(':
			end, err := closingParen(raw, i)
			if err != nil {
				return "", nil, nil, err
			}
			flush(false)
			b.WriteString("(")
			b.WriteString(neutralizeGroups(raw[i+1 : end]))
			b.WriteString(")")
			i = end + 1
			if i < len(raw) && raw[i] == '?' {
				b.WriteString("?")
				i++
			}
			keys = append(keys, strconv.Itoa(group))
			groups = append(groups, len(keys)-1)
			group++
		case ')':
			return "", nil, nil, fmt.Errorf("%w: unbalanced parenthesis in %q", ErrInvalidPattern, raw)
		default:
			pending.WriteByte(raw[i])
			i++
		}
	}
	flush(false)

	return b.String(), keys, groups, nil
}

// isNameByte reports whether c may appear in a parameter name.
func isNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// closingParen returns the index of the parenthesis closing the group that
// opens at open, honoring backslash escapes.
func closingParen(raw string, open int) (int, error) {
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
				return i, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: unbalanced parenthesis in %q", ErrInvalidPattern, raw)
}

// neutralizeGroups rewrites bare capturing groups inside a raw regex source
// into non-capturing ones, so one declared group always maps to exactly one
// capture key.
func neutralizeGroups(src string) string {
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\\' && i+1 < len(src) {
			b.WriteByte(c)
			i++
			b.WriteByte(src[i])
			continue
		}
		if c == '(' && (i+1 >= len(src) || src[i+1] != '?') {
			b.WriteString("(?:")
			continue
		}
		b.WriteByte(c)
	}

	return b.String()
}
