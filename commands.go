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

// Redirect is the control instruction that restarts resolution at a new
// path within the same render attempt. Produce it through
// Commands.Redirect; returning it from an OnBeforeLeave hook has no effect,
// since leaving routes may only prevent.
type Redirect struct {
	// Path is the redirect target, path[?search][#hash].
	Path string

	// From is the pathname whose resolution produced the redirect.
	From string
}

// Prevent is the control instruction that aborts the navigation and keeps
// the previous chain active. Produce it through Commands.Prevent.
type Prevent struct{}

// Commands is the capability object handed to actions and before-phase
// lifecycle callbacks. It constructs the control instructions the caller
// is allowed to return.
type Commands struct {
	from string
}

// Redirect builds a redirect instruction targeting path.
func (c *Commands) Redirect(path string) *Redirect {
	return &Redirect{Path: path, From: c.from}
}

// Prevent builds a prevent instruction.
func (c *Commands) Prevent() *Prevent {
	return &Prevent{}
}
