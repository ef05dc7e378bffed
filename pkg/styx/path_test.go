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

import "testing"

func TestPathTrackerSiblingClosure(t *testing.T) {
	// Scenario A: foo.bar.x 1, foo.bar.y 2, foo.baz 3.
	tr := newPathTracker()
	if err := tr.checkAndUpdate([]string{"foo", "bar", "x"}, Span{0, 1}, pathTerminal); err != nil {
		t.Fatalf("foo.bar.x: %v", err)
	}
	if err := tr.checkAndUpdate([]string{"foo", "bar", "y"}, Span{1, 2}, pathTerminal); err != nil {
		t.Fatalf("foo.bar.y: %v", err)
	}
	if err := tr.checkAndUpdate([]string{"foo", "baz"}, Span{2, 3}, pathTerminal); err != nil {
		t.Fatalf("foo.baz: %v", err)
	}
	// Reopening foo.bar must now fail: it was closed when foo.baz
	// diverged from it.
	if err := tr.checkAndUpdate([]string{"foo", "bar", "z"}, Span{3, 4}, pathTerminal); err == nil {
		t.Errorf("reopening foo.bar should have failed")
	}
}

func TestPathTrackerDuplicate(t *testing.T) {
	tr := newPathTracker()
	if err := tr.checkAndUpdate([]string{"a", "b"}, Span{0, 1}, pathTerminal); err != nil {
		t.Fatalf("a.b: %v", err)
	}
	err := tr.checkAndUpdate([]string{"a", "b"}, Span{1, 2}, pathTerminal)
	if err == nil {
		t.Fatalf("expected duplicate key error")
	}
	pe, ok := AsParseError(err)
	if !ok || pe.Message != ErrDuplicateKey {
		t.Errorf("got error %v, want %s", err, ErrDuplicateKey)
	}
}

func TestPathTrackerNestIntoTerminal(t *testing.T) {
	tr := newPathTracker()
	if err := tr.checkAndUpdate([]string{"a"}, Span{0, 1}, pathTerminal); err != nil {
		t.Fatalf("a: %v", err)
	}
	if err := tr.checkAndUpdate([]string{"a", "b"}, Span{1, 2}, pathTerminal); err == nil {
		t.Errorf("nesting into a terminal path should have failed")
	}
}
