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

import "context"

// pause is the cooperative cancellation checkpoint placed after every
// suspension point (action, lifecycle callback, component factory call).
func (r *Router) pause(ctx context.Context, gen uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.checkpoint(gen)
}

// resolveOnce walks the match sequence for loc and invokes actions in
// order until one accepts, redirects, or prevents. It returns the resolved
// chain on acceptance, or the redirect instruction to follow.
//
// Actions run strictly sequentially, parent before child, siblings in
// declaration order. The sequence is consumed lazily, so an accepting
// action stops the tree walk without exploring deeper.
func (r *Router) resolveOnce(ctx context.Context, roots []*Route, loc *Location, gen uint64) (Chain, *Redirect, error) {
	var chain Chain
	cmd := &Commands{from: loc.Pathname}

	for m := range matchRoutes(roots, loc.Pathname) {
		// The walk may backtrack to a sibling; the candidate chain is the
		// ancestor path of the current match, not every match seen so far.
		entry := &ChainEntry{Match: m}
		chain = append(chain[:m.depth], entry)

		if m.Route.Action == nil {
			continue
		}

		c := &Context{
			Pathname:   loc.Pathname,
			Search:     loc.Search,
			Hash:       loc.Hash,
			Match:      m,
			Params:     m.Params,
			Chain:      chain[:len(chain)-1],
			Generation: gen,
			Router:     r,
		}

		result, err := m.Route.Action(ctx, c, cmd)
		if perr := r.pause(ctx, gen); perr != nil {
			return nil, nil, perr
		}
		if err != nil {
			return nil, nil, err
		}

		switch v := result.(type) {
		case nil:
			// Contextual pass-through.
		case *Redirect:
			if v != nil {
				r.logger.Debug("navigator: action redirected",
					"path", m.Path, "target", v.Path)
				return nil, v, nil
			}
		case *Prevent:
			if v != nil {
				return nil, nil, ErrNavigationPrevented
			}
		default:
			// First usable result wins; deeper and sibling matches are
			// not attempted for this render.
			entry.View = v
			return chain, nil, nil
		}
	}

	return nil, nil, ErrNotFound
}

// resolveChain runs resolution for loc, following action redirects within
// the shared per-render redirect budget. It returns the accepted chain and
// the location it finally resolved at.
func (r *Router) resolveChain(ctx context.Context, roots []*Route, loc *Location, gen uint64, redirects *int) (Chain, *Location, error) {
	for {
		chain, redir, err := r.resolveOnce(ctx, roots, loc, gen)
		if err != nil {
			return nil, loc, err
		}
		if redir == nil {
			return chain, loc, nil
		}

		next, err := r.followRedirect(loc, redir, redirects)
		if err != nil {
			return nil, loc, err
		}
		loc = next
	}
}

// followRedirect validates and parses one redirect hop against the shared
// per-render budget.
func (r *Router) followRedirect(from *Location, redir *Redirect, redirects *int) (*Location, error) {
	*redirects++
	if *redirects > r.redirectLimit {
		return nil, ErrRedirectLoop
	}

	next, err := parseLocation(redir.Path)
	if err != nil {
		return nil, err
	}
	if from.RedirectFrom != "" {
		next.RedirectFrom = from.RedirectFrom
	} else {
		next.RedirectFrom = from.Pathname
	}

	r.emitDiagnostic(DiagRedirectFollowed, "redirect followed", map[string]any{
		"from":   redir.From,
		"target": redir.Path,
		"hop":    *redirects,
	})

	return next, nil
}

// materializeViews fills in component views for entries that have none.
// The deepest entry keeps its accepting action's result; other entries
// with a Component declaration go through the configured factory. Entries
// with neither stay transparent (nil view).
//
// Only entries at or beyond reuseFrom are materialized; earlier entries
// reuse the previous chain's handles.
func (r *Router) materializeViews(ctx context.Context, chain Chain, reuseFrom int, gen uint64) error {
	for i := reuseFrom; i < len(chain); i++ {
		entry := chain[i]
		if entry.View != nil || entry.Match.Route.Component == "" {
			continue
		}
		if r.factory == nil {
			return ErrNoComponentFactory
		}

		view, err := r.factory(entry.Match.Route.Component)
		if perr := r.pause(ctx, gen); perr != nil {
			return perr
		}
		if err != nil {
			return err
		}
		entry.View = view
	}

	return nil
}
