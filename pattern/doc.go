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

// Package pattern compiles route path patterns into matchers.
//
// A pattern is a path template made of literal text, named parameters, and
// raw regular-expression groups:
//
//   - Literal segments match themselves: "/users"
//   - Named parameters capture one path segment: "/users/:id"
//   - Optional parameters may be absent entirely: "/users/:id?"
//   - Parenthesized groups embed raw regular expressions and capture under
//     positional keys "0", "1", …: "/files/(.*)"
//
// A compiled Pattern matches in one of two modes. Exact mode requires the
// pattern to consume the whole input (tolerating one extra trailing slash
// for non-empty patterns that do not themselves end in a slash). Prefix
// mode consumes a leading portion of the input and reports how many bytes
// were consumed; a prefix match must end on a segment boundary, so "/a"
// never prefix-matches "/ab".
//
// Two invariants shape matching:
//
//   - Absolute and relative patterns never cross: a pattern with a leading
//     slash only matches input with a leading slash, and vice versa. The
//     empty pattern is transparent to this rule.
//   - The empty pattern consumes zero bytes and, in exact mode, matches
//     only the empty input. A pattern of "/" requires and consumes exactly
//     one separator.
//
// Example:
//
//	p := pattern.MustCompile("/users/:id")
//	res, ok := p.Match("/users/42", true)
//	// ok == true, res.Params["id"] == "42"
package pattern
