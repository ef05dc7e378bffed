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

	"github.com/google/go-cmp/cmp"
)

func TestWriteSExpr(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		want string
	}{
		{line(), "a 1", `(document [-1, -1] (entry (scalar [0, 1] bare "a") (scalar [2, 3] bare "1")))`},
		{line(), "a @ok", `(document [-1, -1] (entry (scalar [0, 1] bare "a") (tag [2, 5] "ok")))`},
	} {
		doc, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("line %d: Parse(%q): %v", tt.line, tt.in, err)
		}
		got := WriteSExpr(doc)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("line %d: WriteSExpr(%q) mismatch (-want +got):\n%s", tt.line, tt.in, diff)
		}
	}
}

func TestWriteErrorSExpr(t *testing.T) {
	_, err := Parse("{ a 1")
	if err == nil {
		t.Fatal("expected an error")
	}
	pe, ok := AsParseError(err)
	if !ok {
		t.Fatalf("expected a *ParseError, got %v", err)
	}
	got := WriteErrorSExpr(pe)
	want := "(error [0, 1] \"parse error at 0-1: unclosed object (missing `}`)\")"
	if got != want {
		t.Errorf("WriteErrorSExpr() = %q, want %q", got, want)
	}
}

func TestJSONStringEscaping(t *testing.T) {
	got := jsonString("a\nb\tc\"d\\e\x01")
	want := "\"a\\nb\\tc\\\"d\\\\e\\u0001\""
	if got != want {
		t.Errorf("jsonString() = %q, want %q", got, want)
	}
}
