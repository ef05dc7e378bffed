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

// This file has functions that search the document tree for entries
// by key, the way the teacher's pkg/yang/find.go searches the YANG AST
// for named groupings — here over Document/Object entries instead of
// module-scoped statements, since there is no schema-level prefix or
// import graph at this layer.

import (
	"strconv"
	"strings"
)

// Lookup walks doc's top-level entries along the dot-separated
// segments of path, following nested objects, and returns the value
// assigned at that path. A dotted top-level key (spec §4.4) is stored
// as a chain of single-entry objects, so a lookup for "foo.bar.x"
// descends exactly as the parser nested it. Every entry whose key
// matches a segment is followed, so sibling dotted keys that repeat a
// leading segment ("foo.bar.x" and "foo.baz") are all reachable; at the
// last segment the first matching entry wins.
func (doc *Document) Lookup(path string) (*Value, bool) {
	segments := strings.Split(path, ".")
	entries := doc.Entries
	var found *Value
	for i, seg := range segments {
		found = nil
		var next []*Entry
		for _, e := range entries {
			if entryKeyText(e.Key) == seg {
				found = e.Value
				if i == len(segments)-1 {
					break
				}
				if found.PayloadKind == PayloadObject {
					next = append(next, found.Object.Entries...)
				}
			}
		}
		if found == nil {
			return nil, false
		}
		entries = next
	}
	return found, true
}

// entryKeyText returns the plain text identifying key, or "" if key
// has no simple text form (a unit, tagged, or composite key — Lookup
// only resolves untagged scalar keys).
func entryKeyText(key *Value) string {
	if key.PayloadKind == PayloadScalar && key.Tag == nil {
		return key.Scalar.Text
	}
	return ""
}

// Walk calls fn once for every entry reachable from doc, in document
// order, depth-first, with path being the dot-joined chain of bare
// scalar keys leading to that entry (segments that have no plain text
// form — unit, tagged, or sequence-valued keys — are rendered as
// "<n>", their index among siblings). Walk stops early if fn returns
// false.
func Walk(doc *Document, fn func(path string, v *Value) bool) {
	walkEntries(doc.Entries, "", fn)
}

func walkEntries(entries []*Entry, prefix string, fn func(path string, v *Value) bool) bool {
	for i, e := range entries {
		seg := entryKeyText(e.Key)
		if seg == "" {
			seg = "<" + strconv.Itoa(i) + ">"
		}
		path := seg
		if prefix != "" {
			path = prefix + "." + seg
		}
		if !fn(path, e.Value) {
			return false
		}
		if e.Value.PayloadKind == PayloadObject {
			if !walkEntries(e.Value.Object.Entries, path, fn) {
				return false
			}
		}
	}
	return true
}
