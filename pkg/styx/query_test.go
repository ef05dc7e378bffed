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

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestLookup(t *testing.T) {
	doc, err := Parse("foo.bar.x 1\nfoo.baz 3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	v, ok := doc.Lookup("foo.bar.x")
	if !ok {
		t.Fatalf("Lookup(foo.bar.x) not found")
	}
	if v.Scalar.Text != "1" {
		t.Errorf("Lookup(foo.bar.x) = %q, want 1", v.Scalar.Text)
	}

	if _, ok := doc.Lookup("foo.bar.z"); ok {
		t.Errorf("Lookup(foo.bar.z) unexpectedly found")
	}
	if _, ok := doc.Lookup("foo.bar.x.nope"); ok {
		t.Errorf("Lookup descending past a scalar should fail")
	}
}

func TestWalk(t *testing.T) {
	doc, err := Parse("foo.bar.x 1\nfoo.baz 3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var paths []string
	Walk(doc, func(path string, v *Value) bool {
		paths = append(paths, path)
		return true
	})
	want := []string{"foo", "foo.bar", "foo.bar.x", "foo", "foo.baz"}
	if diff := pretty.Compare(want, paths); diff != "" {
		t.Errorf("Walk() visitation order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkStopsEarly(t *testing.T) {
	doc, err := Parse("a 1\nb 2\nc 3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var count int
	Walk(doc, func(path string, v *Value) bool {
		count++
		return path != "b"
	})
	if count != 2 {
		t.Errorf("Walk() visited %d entries before stopping, want 2", count)
	}
}
