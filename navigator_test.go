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
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	r, err := New()
	require.NoError(t, err)
	assert.Same(t, noopLogger, r.logger)
	assert.Equal(t, defaultRedirectLimit, r.redirectLimit)
	assert.Nil(t, r.Location())
	assert.Empty(t, r.Chain())
}

func TestNew_InvalidRedirectLimit(t *testing.T) {
	t.Parallel()

	_, err := New(WithRedirectLimit(0))
	require.ErrorIs(t, err, ErrRedirectLimitInvalid)

	_, err = New(WithRedirectLimit(-1))
	require.ErrorIs(t, err, ErrRedirectLimitInvalid)
}

func TestMustNew_PanicsOnInvalidOption(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNew(WithRedirectLimit(0)) })
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	logger := slog.Default()
	r := MustNew(WithLogger(logger))
	assert.Same(t, logger, r.logger)

	r = MustNew(WithLogger(nil))
	assert.Same(t, noopLogger, r.logger, "nil logger keeps the noop default")
}

// mockDiagnosticHandler implements the DiagnosticHandler interface for testing
type mockDiagnosticHandler struct {
	events []DiagnosticEvent
}

func (m *mockDiagnosticHandler) OnDiagnostic(e DiagnosticEvent) {
	m.events = append(m.events, e)
}

func TestSetRoutes_EmitsDiagnostic(t *testing.T) {
	t.Parallel()

	handler := &mockDiagnosticHandler{}
	r := MustNew(WithDiagnostics(handler))
	require.NoError(t, r.SetRoutes(
		&Route{Path: "/a"},
		&Route{Path: "/b", Name: "b"},
	))

	require.Len(t, handler.events, 1)
	assert.Equal(t, DiagRoutesSet, handler.events[0].Kind)
	assert.Equal(t, 2, handler.events[0].Fields["roots"])
	assert.Equal(t, 1, handler.events[0].Fields["named"])
}

func TestSetRoutes_RejectsInvalidPattern(t *testing.T) {
	t.Parallel()

	r := MustNew()
	err := r.SetRoutes(&Route{Path: "/a", Children: []*Route{
		{Path: "/(broken"},
	}})
	require.Error(t, err)
}

func TestSetRoutes_RejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	r := MustNew()
	err := r.SetRoutes(
		&Route{Path: "/a", Name: "dup"},
		&Route{Path: "/b", Name: "dup"},
	)
	require.ErrorIs(t, err, ErrDuplicateRouteName)
}

func TestSetRoutes_ReplacesTree(t *testing.T) {
	t.Parallel()

	r := MustNew()
	require.NoError(t, r.SetRoutes(&Route{Path: "/old", Action: accept("old")}))
	require.NoError(t, r.SetRoutes(&Route{Path: "/new", Action: accept("new")}))

	_, err := r.Render(context.Background(), "/old")
	assert.ErrorIs(t, err, ErrNotFound)

	loc, err := r.Render(context.Background(), "/new")
	require.NoError(t, err)
	assert.Equal(t, "/new", loc.Pathname)
}

func TestLocation_URLAndQuery(t *testing.T) {
	t.Parallel()

	loc, err := parseLocation("/users/7?tab=posts&sort=asc#top")
	require.NoError(t, err)
	assert.Equal(t, "/users/7", loc.Pathname)
	assert.Equal(t, "tab=posts&sort=asc", loc.Search)
	assert.Equal(t, "top", loc.Hash)
	assert.Equal(t, "/users/7?tab=posts&sort=asc#top", loc.URL())
	assert.Equal(t, "posts", loc.Query().Get("tab"))
}

func TestDivergenceIndex(t *testing.T) {
	t.Parallel()

	a := &Route{Path: "/a"}
	b := &Route{Path: "/b"}
	entry := func(rt *Route, params Params) *ChainEntry {
		return &ChainEntry{Match: &Match{Route: rt, Params: params}}
	}

	old := Chain{entry(a, Params{}), entry(b, Params{"id": "1"})}
	next := Chain{entry(a, Params{}), entry(b, Params{"id": "2"})}
	assert.Equal(t, 1, divergenceIndex(old, next),
		"same route with different params diverges")

	same := Chain{entry(a, Params{}), entry(b, Params{"id": "1"})}
	assert.Equal(t, 2, divergenceIndex(old, same))

	assert.Equal(t, 0, divergenceIndex(nil, next))
}
