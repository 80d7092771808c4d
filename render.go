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
	"context"
	"errors"
	"time"
)

// Render navigates to path, resolving it against the installed route tree
// and committing the resulting chain.
//
// Every call is assigned a strictly increasing generation. When renders
// race, only the newest generation commits and emits notifications; older
// in-flight generations abandon their remaining work at the next
// suspension point and return ErrNavigationSuperseded, which is a silent
// outcome rather than a failure. A generation overtaken only after its
// commit keeps the commit and still returns success, but skips its
// location-changed notification once a newer generation has delivered one,
// so notifications always arrive in commit order.
//
// A navigation aborted by a prevent instruction returns the previously
// committed location together with ErrNavigationPrevented; the previous
// chain stays displayed and no notification fires. Terminal failures
// (ErrNotFound, ErrRedirectLoop, action and callback errors) fire the
// error notification exactly once.
func (r *Router) Render(ctx context.Context, path string) (*Location, error) {
	gen := r.generation.Add(1)
	start := time.Now()

	loc, err := parseLocation(path)
	if err != nil {
		r.notifyError(path, err)
		return nil, err
	}

	var state any
	if r.recorder != nil {
		ctx, state = r.recorder.OnNavigationStart(ctx, loc)
	}

	finalLoc, pattern, err := r.renderGeneration(ctx, gen, loc)

	if r.recorder != nil && state != nil {
		out := Outcome{
			Location:     finalLoc,
			RoutePattern: pattern,
			Duration:     time.Since(start),
		}
		if out.Location == nil {
			out.Location = loc
		}
		switch {
		case errors.Is(err, ErrNavigationSuperseded):
			out.Superseded = true
		case errors.Is(err, ErrNavigationPrevented):
			out.Prevented = true
		default:
			out.Err = err
		}
		r.recorder.OnNavigationEnd(ctx, state, out)
	}

	switch {
	case err == nil:
		r.logger.Debug("navigator: committed", "pathname", finalLoc.Pathname, "pattern", pattern)
		r.notifyLocationChanged(gen, finalLoc)
		return finalLoc, nil

	case errors.Is(err, ErrNavigationSuperseded):
		r.logger.Debug("navigator: superseded", "pathname", loc.Pathname, "generation", gen)
		return nil, err

	case errors.Is(err, ErrNavigationPrevented):
		r.logger.Debug("navigator: prevented", "pathname", loc.Pathname)
		return r.Location(), err

	default:
		r.logger.Debug("navigator: failed", "pathname", loc.Pathname, "error", err)
		r.notifyError(loc.Pathname, err)
		return nil, err
	}
}

// renderGeneration runs one generation's render protocol: resolve actions
// for the whole target chain, diff against the active chain, run the
// before-phase lifecycle, commit, then run the after-phase lifecycle.
func (r *Router) renderGeneration(ctx context.Context, gen uint64, loc *Location) (*Location, string, error) {
	roots, oldChain, _ := r.snapshot()
	if len(roots) == 0 {
		return nil, "", ErrRoutesNotSet
	}

	redirects := 0

resolve:
	for {
		// (1) Actions for the entire newly targeted chain, root to leaf.
		chain, resolvedLoc, err := r.resolveChain(ctx, roots, loc, gen, &redirects)
		if err != nil {
			return nil, "", err
		}

		d := divergenceIndex(oldChain, chain)
		structural := d != len(oldChain) || d != len(chain)

		// Reusable prefix keeps its view handles; nothing is recreated
		// for it.
		for i := range d {
			chain[i].View = oldChain[i].View
		}
		if err := r.materializeViews(ctx, chain, d, gen); err != nil {
			return nil, "", err
		}

		finalizeLocation(resolvedLoc, chain)

		var leaveTargets, enterTargets Chain
		if structural {
			leaveTargets, enterTargets = oldChain[d:], chain[d:]
		} else {
			// No structural divergence: the whole chain gets the short
			// lifecycle pair, with zero mount/unmount churn.
			leaveTargets, enterTargets = chain, chain
		}

		// (2) onBeforeLeave, deepest to shallowest. Leaving views may only
		// prevent; redirect instructions from them are ignored.
		leaveCmd := &Commands{from: resolvedLoc.Pathname}
		for i := len(leaveTargets) - 1; i >= 0; i-- {
			v, ok := leaveTargets[i].View.(BeforeLeaveObserver)
			if !ok {
				continue
			}
			result, err := v.OnBeforeLeave(ctx, resolvedLoc, leaveCmd, r)
			if perr := r.pause(ctx, gen); perr != nil {
				return nil, "", perr
			}
			if err != nil {
				return nil, "", err
			}
			if p, ok := result.(*Prevent); ok && p != nil {
				return nil, "", ErrNavigationPrevented
			}
		}

		// (3) onBeforeEnter, root to leaf. Entering views may prevent or
		// redirect; a redirect restarts resolution within this render's
		// redirect budget.
		enterCmd := &Commands{from: resolvedLoc.Pathname}
		for i := range enterTargets {
			v, ok := enterTargets[i].View.(BeforeEnterObserver)
			if !ok {
				continue
			}
			result, err := v.OnBeforeEnter(ctx, resolvedLoc, enterCmd, r)
			if perr := r.pause(ctx, gen); perr != nil {
				return nil, "", perr
			}
			if err != nil {
				return nil, "", err
			}
			switch t := result.(type) {
			case *Prevent:
				if t != nil {
					return nil, "", ErrNavigationPrevented
				}
			case *Redirect:
				if t != nil {
					next, err := r.followRedirect(resolvedLoc, t, &redirects)
					if err != nil {
						return nil, "", err
					}
					loc = next
					continue resolve
				}
			}
		}

		// (4) Commit: the active chain is exclusive to the winning
		// generation, enforced by a final generation check under the lock.
		exited, entered := leaveTargets, enterTargets
		r.mu.Lock()
		if cerr := r.checkpoint(gen); cerr != nil {
			r.mu.Unlock()
			return nil, "", cerr
		}
		if structural {
			for i := len(exited) - 1; i >= 0; i-- {
				if exited[i].View == nil {
					continue
				}
				if err := r.mounter.Unmount(exited[i].View); err != nil {
					r.logger.Debug("navigator: unmount failed", "error", err)
				}
			}
			for i := range entered {
				if entered[i].View == nil {
					continue
				}
				if err := r.mounter.Mount(entered[i].View, chain.parentView(d+i)); err != nil {
					r.logger.Debug("navigator: mount failed", "error", err)
				}
			}
		} else {
			r.emitDiagnostic(DiagChainReused, "chain reused", map[string]any{
				"pathname": resolvedLoc.Pathname,
				"length":   len(chain),
			})
		}
		r.active = chain
		r.location = resolvedLoc
		r.mu.Unlock()

		// (5) onAfterEnter root to leaf, (6) onAfterLeave deepest to
		// shallowest. These fire only for structural changes; reused
		// entries already ran their short pair. A supersession here stops
		// the remaining hooks but the commit above stands.
		if structural {
			for i := range entered {
				if v, ok := entered[i].View.(AfterEnterObserver); ok {
					v.OnAfterEnter(ctx, resolvedLoc, r)
					if perr := r.pause(ctx, gen); perr != nil && !errors.Is(perr, ErrNavigationSuperseded) {
						return nil, "", perr
					} else if perr != nil {
						return resolvedLoc, routePattern(chain), nil
					}
				}
			}
			for i := len(exited) - 1; i >= 0; i-- {
				if v, ok := exited[i].View.(AfterLeaveObserver); ok {
					v.OnAfterLeave(ctx, resolvedLoc, r)
					if perr := r.pause(ctx, gen); perr != nil && !errors.Is(perr, ErrNavigationSuperseded) {
						return nil, "", perr
					} else if perr != nil {
						return resolvedLoc, routePattern(chain), nil
					}
				}
			}
		}

		return resolvedLoc, routePattern(chain), nil
	}
}

// finalizeLocation copies the resolved chain into the location record.
func finalizeLocation(loc *Location, chain Chain) {
	loc.Routes = chain.Routes()
	if deepest := chain.deepest(); deepest != nil {
		loc.Route = deepest.Match.Route
		loc.Params = deepest.Match.Params
	}
}

// notifyLocationChanged delivers the success notification, keeping delivery
// order monotonic in generation: a generation superseded only after its
// commit must not notify behind the newer winner that already has.
func (r *Router) notifyLocationChanged(gen uint64, loc *Location) {
	if r.onLocationChanged == nil {
		return
	}

	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	if gen <= r.notifiedGen {
		return
	}
	r.notifiedGen = gen
	r.onLocationChanged(r, loc)
}

// notifyError delivers the terminal failure notification.
func (r *Router) notifyError(pathname string, err error) {
	if r.onError == nil {
		return
	}
	r.onError(r, &NavigationError{Pathname: pathname, Err: err})
}
