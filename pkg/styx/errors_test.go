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

	"github.com/juju/errors"
)

func TestParseErrorMessage(t *testing.T) {
	pe := &ParseError{Span: Span{3, 5}, Message: ErrDuplicateKey}
	want := "parse error at 3-5: duplicate key"
	if got := pe.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAsParseErrorUnwrapsAnnotation(t *testing.T) {
	base := newError(Span{0, 1}, "%s", ErrInvalidKey)
	wrapped := errors.Annotate(base, "while parsing")
	pe, ok := AsParseError(wrapped)
	if !ok {
		t.Fatalf("AsParseError did not find the underlying *ParseError")
	}
	if pe.Message != ErrInvalidKey {
		t.Errorf("Message = %q, want %q", pe.Message, ErrInvalidKey)
	}
}

func TestAsParseErrorRejectsOtherErrors(t *testing.T) {
	if _, ok := AsParseError(errors.New("not a parse error")); ok {
		t.Errorf("AsParseError should not match an unrelated error")
	}
}
