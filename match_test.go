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

//go:build !integration

package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectMatches(roots []*Route, pathname string) []*Match {
	var out []*Match
	for m := range matchRoutes(roots, pathname) {
		out = append(out, m)
	}

	return out
}

func matchedPaths(ms []*Match) []string {
	paths := make([]string, len(ms))
	for i, m := range ms {
		paths[i] = m.Path
	}

	return paths
}

func TestMatchRoutes_SiblingOrder(t *testing.T) {
	t.Parallel()

	tree := &Route{Path: "/a", Children: []*Route{
		{Path: "/b"},
		{Path: "/:id"},
	}}

	ms := collectMatches([]*Route{tree}, "/a/b")
	require.Len(t, ms, 3, "both overlapping siblings are yielded, in order")
	assert.Equal(t, []string{"/a", "/b", "/:id"}, matchedPaths(ms))
	assert.Equal(t, "b", ms[2].Params.Get("id"))
}

func TestMatchRoutes_ParentBeforeChild(t *testing.T) {
	t.Parallel()

	tree := &Route{Path: "/app", Children: []*Route{
		{Path: "/users", Children: []*Route{
			{Path: "/:id"},
		}},
	}}

	ms := collectMatches([]*Route{tree}, "/app/users/42")
	assert.Equal(t, []string{"/app", "/users", "/:id"}, matchedPaths(ms))
	assert.Equal(t, "42", ms[2].Params.Get("id"))
}

func TestMatchRoutes_ParamInheritance(t *testing.T) {
	t.Parallel()

	tree := &Route{Path: "/:lang", Children: []*Route{
		{Path: "/:page"},
	}}

	ms := collectMatches([]*Route{tree}, "/en/home")
	require.Len(t, ms, 2)

	assert.Equal(t, Params{"lang": "en"}, ms[0].Params)
	assert.Equal(t, Params{"lang": "en", "page": "home"}, ms[1].Params)
	assert.Equal(t, []string{"page"}, ms[1].Keys, "inherited names are not listed in Keys")

	// The ancestor's own record must stay untouched by the child merge.
	assert.Equal(t, Params{"lang": "en"}, ms[0].Params)
}

func TestMatchRoutes_DescendantOverridesWithoutMutatingAncestor(t *testing.T) {
	t.Parallel()

	tree := &Route{Path: "/:id", Children: []*Route{
		{Path: "/:id"},
	}}

	ms := collectMatches([]*Route{tree}, "/parent/child")
	require.Len(t, ms, 2)
	assert.Equal(t, "parent", ms[0].Params.Get("id"))
	assert.Equal(t, "child", ms[1].Params.Get("id"))
}

func TestMatchRoutes_AbsentOptionalDoesNotClobberInherited(t *testing.T) {
	t.Parallel()

	tree := &Route{Path: "/u/:name", Children: []*Route{
		{Path: "/:name?"},
	}}

	ms := collectMatches([]*Route{tree}, "/u/bob")
	require.Len(t, ms, 2)
	assert.Equal(t, "bob", ms[1].Params.Get("name"),
		"optional-and-absent capture must not override the inherited value")
}

func TestMatchRoutes_GroupCapturesNumberAcrossChain(t *testing.T) {
	t.Parallel()

	tree := &Route{Path: `/(\d+)`, Children: []*Route{
		{Path: `/(\w+)`},
	}}

	ms := collectMatches([]*Route{tree}, "/12/ab")
	require.Len(t, ms, 2)
	assert.Equal(t, Params{"0": "12"}, ms[0].Params)
	assert.Equal(t, Params{"0": "12", "1": "ab"}, ms[1].Params,
		"a child's groups continue the ancestors' numbering instead of clobbering it")
	assert.Equal(t, []string{"1"}, ms[1].Keys)
}

func TestMatchRoutes_ExactForLeaves(t *testing.T) {
	t.Parallel()

	roots := []*Route{{Path: "/a"}}
	assert.Empty(t, collectMatches(roots, "/a/b"),
		"childless routes match exactly, never as a prefix")
}

func TestMatchRoutes_ParentYieldsEvenWhenChildrenFail(t *testing.T) {
	t.Parallel()

	tree := &Route{Path: "/a", Children: []*Route{
		{Path: "/x"},
	}}

	ms := collectMatches([]*Route{tree}, "/a")
	require.Len(t, ms, 1)
	assert.Equal(t, "/a", ms[0].Path)
}

func TestMatchRoutes_EmptyPatternChild(t *testing.T) {
	t.Parallel()

	tree := &Route{Path: "/a", Children: []*Route{
		{Path: ""},
	}}

	ms := collectMatches([]*Route{tree}, "/a")
	assert.Equal(t, []string{"/a", ""}, matchedPaths(ms),
		"an empty-pattern child still matches an empty residual")
}

func TestMatchRoutes_EmptyPatternParentIsTransparent(t *testing.T) {
	t.Parallel()

	tree := &Route{Path: "", Children: []*Route{
		{Path: "/users"},
	}}

	ms := collectMatches([]*Route{tree}, "/users")
	assert.Equal(t, []string{"", "/users"}, matchedPaths(ms))
}

func TestMatchRoutes_LazyChildrenPerTraversal(t *testing.T) {
	t.Parallel()

	calls := 0
	tree := &Route{Path: "/a", ChildrenFunc: func() []*Route {
		calls++
		return []*Route{{Path: "/b"}}
	}}
	roots := []*Route{tree}

	require.Len(t, collectMatches(roots, "/a/b"), 2)
	require.Len(t, collectMatches(roots, "/a/b"), 2)
	assert.Equal(t, 2, calls, "child source is re-evaluated once per traversal")
}

func TestMatchRoutes_EarlyStop(t *testing.T) {
	t.Parallel()

	tree := &Route{Path: "/a", Children: []*Route{
		{Path: "/b"},
		{Path: "/:id"},
	}}
	roots := []*Route{tree}

	var first []*Match
	for m := range matchRoutes(roots, "/a/b") {
		first = append(first, m)
		if len(first) == 2 {
			break
		}
	}
	require.Len(t, first, 2)

	// A new call starts a fresh traversal regardless of the earlier stop.
	assert.Len(t, collectMatches(roots, "/a/b"), 3)
}

func TestMatchRoutes_DepthTracksBacktracking(t *testing.T) {
	t.Parallel()

	tree := &Route{Path: "/a", Children: []*Route{
		{Path: "/b"},
		{Path: "/:id"},
	}}

	ms := collectMatches([]*Route{tree}, "/a/b")
	require.Len(t, ms, 3)
	assert.Equal(t, 0, ms[0].depth)
	assert.Equal(t, 1, ms[1].depth)
	assert.Equal(t, 1, ms[2].depth, "sibling stays at its own depth")
}

func TestMatchRoutes_UncompilableLazyChildMatchesNothing(t *testing.T) {
	t.Parallel()

	tree := &Route{Path: "/a", Children: []*Route{
		{Path: "/(bad"},
		{Path: "/ok"},
	}}

	ms := collectMatches([]*Route{tree}, "/a/ok")
	assert.Equal(t, []string{"/a", "/ok"}, matchedPaths(ms))
}

func TestMatchRoutes_Forest(t *testing.T) {
	t.Parallel()

	roots := []*Route{
		{Path: "/a"},
		{Path: "/b"},
		{Path: "/:id"},
	}

	ms := collectMatches(roots, "/b")
	assert.Equal(t, []string{"/b", "/:id"}, matchedPaths(ms),
		"later roots are still tried after an earlier one matched")
}
