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
	"iter"
	"maps"
	"slices"
	"strconv"

	"rivaas.dev/navigator/pattern"
)

// Match records one route node's successful pattern match against a
// pathname. Matches are yielded root first, parent before child.
type Match struct {
	// Route is the matched node.
	Route *Route

	// Path is the node's pattern as declared.
	Path string

	// Keys lists the parameter names captured by this node's own pattern,
	// in declaration order. Inherited parameters are not listed.
	Keys []string

	// Params holds this node's captures merged on top of all ancestor
	// parameters. An optional parameter absent from this node's match
	// never clobbers an inherited value. Positional regex-group captures
	// are numbered across the whole chain, root first, so a child's groups
	// continue its ancestors' sequence. The map is owned by the Match and
	// never mutated afterwards.
	Params Params

	// depth is the number of ancestors above this node in the traversal.
	// The resolver uses it to rewind the candidate chain when the walk
	// backtracks to a sibling.
	depth int
}

// matchRoutes returns the lazy match sequence for pathname over a route
// forest. Each call starts a fresh traversal; no traversal state is shared
// between calls, and the consumer may stop early.
//
// The walk is depth-first and pre-order: a node's own match is yielded
// before its children are tried, and siblings run in declaration order.
// For the tree {"/a" [{"/b"} {"/:id"}]} against "/a/b" the sequence is
// /a, /b, /:id: after a child subtree is exhausted the walk moves on to
// the next sibling, so priority between overlapping siblings is decided
// by the consumer stopping, not by the generator.
func matchRoutes(roots []*Route, pathname string) iter.Seq[*Match] {
	return func(yield func(*Match) bool) {
		for _, rt := range roots {
			if rt == nil {
				continue
			}
			if !matchNode(rt, pathname, nil, 0, 0, yield) {
				return
			}
		}
	}
}

// matchNode matches one node and, on success, its descendants against the
// remaining path. It reports whether the consumer wants the traversal to
// continue.
func matchNode(rt *Route, remaining string, inherited Params, depth, groupBase int, yield func(*Match) bool) bool {
	pat, err := rt.pattern()
	if err != nil {
		// An uncompilable pattern from a lazy child source matches
		// nothing. Static trees surface the error at SetRoutes.
		return true
	}

	res, ok := pat.Match(remaining, !rt.hasChildren())
	if !ok {
		return true
	}

	keys, own := rebaseGroupKeys(pat, res.Params, groupBase)
	params := mergeParams(inherited, own)
	m := &Match{
		Route:  rt,
		Path:   rt.Path,
		Keys:   keys,
		Params: params,
		depth:  depth,
	}
	if !yield(m) {
		return false
	}

	if !rt.hasChildren() {
		return true
	}

	// Children always get a chance, even on an empty residual: empty and
	// bare-separator patterns consume zero or one byte and may still match.
	residual := remaining[res.Consumed:]
	childBase := groupBase + len(pat.GroupKeyIndexes())
	for _, child := range rt.childRoutes() {
		if child == nil {
			continue
		}
		if !matchNode(child, residual, params, depth+1, childBase, yield) {
			return false
		}
	}

	return true
}

// rebaseGroupKeys renumbers this node's positional group captures to
// continue its ancestors' sequence, so the merged parameter map carries one
// "0", "1", … numbering per chain. That is the same numbering reverse URL
// generation derives from the accumulated full pattern, letting resolved
// params feed URLFor unchanged.
func rebaseGroupKeys(pat *pattern.Pattern, own map[string]string, base int) ([]string, map[string]string) {
	idxs := pat.GroupKeyIndexes()
	if base == 0 || len(idxs) == 0 {
		return pat.Keys(), own
	}

	keys := slices.Clone(pat.Keys())
	// Highest local group first: with base >= 1 every renamed key is
	// strictly larger than any key still waiting to be renamed.
	for n := len(idxs) - 1; n >= 0; n-- {
		idx := idxs[n]
		renamed := strconv.Itoa(base + n)
		if v, ok := own[keys[idx]]; ok {
			delete(own, keys[idx])
			own[renamed] = v
		}
		keys[idx] = renamed
	}

	return keys, own
}

// mergeParams layers own captures over inherited ancestor parameters
// without mutating either input.
func mergeParams(inherited Params, own map[string]string) Params {
	merged := make(Params, len(inherited)+len(own))
	maps.Copy(merged, inherited)
	maps.Copy(merged, own)

	return merged
}
