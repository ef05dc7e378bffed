// Copyright 2024 Google Inc.
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

package styx

import "strings"

// pathKind records whether an assigned path led to an object (may
// still gain children) or a terminal value (may not).
type pathKind int

const (
	pathObject pathKind = iota
	pathTerminal
)

type pathAssignment struct {
	kind pathKind
	span Span
}

// pathTracker implements the dotted-path bookkeeping of spec §4.4: no
// duplicate key, no reopening a path once a sibling has closed it, no
// nesting into a path that already holds a terminal value. The parser
// builds one tracker for the document's top-level body only; entries
// inside a `{...}` body are deduplicated by a flat key check instead.
type pathTracker struct {
	currentPath   []string
	closedPaths   map[string]bool
	assignedPaths map[string]pathAssignment
}

func newPathTracker() *pathTracker {
	return &pathTracker{
		closedPaths:   make(map[string]bool),
		assignedPaths: make(map[string]pathAssignment),
	}
}

func joinPath(segments []string) string {
	return strings.Join(segments, "\x00")
}

// checkAndUpdate validates path against the rules of spec §4.4, in
// the normative order: duplicate, reopened prefix, nest-into-terminal,
// close siblings, record intermediates, assign. span is attached to
// any error and to newly-recorded path entries.
func (t *pathTracker) checkAndUpdate(path []string, span Span, kind pathKind) error {
	key := joinPath(path)

	// 1. Duplicate.
	if _, ok := t.assignedPaths[key]; ok {
		return newError(span, "%s", ErrDuplicateKey)
	}

	// 2. Reopened prefix, and 3. nest into terminal. These are checked
	// together per prefix rather than as two full passes. A terminal
	// prefix may also be closed (a terminal followed by a sibling);
	// the closed check runs first, so rule 2's error wins for it, and
	// no closed path can sit below a terminal prefix, so the result is
	// the same as two full passes.
	for i := 1; i < len(path); i++ {
		prefixKey := joinPath(path[:i])
		if t.closedPaths[prefixKey] {
			return newError(span, "%s", ErrDuplicateKey)
		}
		if a, ok := t.assignedPaths[prefixKey]; ok && a.kind == pathTerminal {
			return newError(span, "cannot nest into a key that already has a value")
		}
	}

	// 4. Close prior siblings past the common prefix with currentPath.
	commonLen := 0
	for commonLen < len(t.currentPath) && commonLen < len(path) && t.currentPath[commonLen] == path[commonLen] {
		commonLen++
	}
	for i := commonLen; i < len(t.currentPath); i++ {
		t.closedPaths[joinPath(t.currentPath[:i+1])] = true
	}

	// 5. Record intermediate prefixes as objects, if not already
	// recorded.
	for i := 1; i < len(path); i++ {
		prefixKey := joinPath(path[:i])
		if _, ok := t.assignedPaths[prefixKey]; !ok {
			t.assignedPaths[prefixKey] = pathAssignment{kind: pathObject, span: span}
		}
	}

	// 6. Assign and update current path.
	t.assignedPaths[key] = pathAssignment{kind: kind, span: span}
	t.currentPath = path

	return nil
}
