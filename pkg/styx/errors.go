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
	"fmt"

	"github.com/juju/errors"
)

// Error code prefixes. These are the stable, user-visible message
// prefixes a diagnostics renderer matches on; the suffix after the
// prefix may carry offending-token detail.
const (
	ErrDuplicateKey        = "duplicate key"
	ErrInvalidKey          = "invalid key"
	ErrInvalidTagName      = "invalid tag name"
	ErrInvalidEscape       = "invalid escape sequence"
	ErrMixedSeparators     = "mixed separators (use either commas or newlines)"
	ErrUnexpectedToken     = "unexpected token"
	ErrUnexpectedComma     = "unexpected `,` in sequence"
	ErrUnclosedObject      = "unclosed object (missing `}`)"
	ErrUnclosedSequence    = "unclosed sequence (missing `)`)"
	ErrExpectedValue       = "expected a value"
	ErrHeredocNotUppercase = "heredoc delimiter must start with uppercase letter"
	ErrHeredocTooLong      = "heredoc delimiter too long"
	ErrUnterminatedString  = "unterminated string"
	ErrUnterminatedHeredoc = "unterminated heredoc"
)

// ParseError is the single error kind produced by this package: a
// structured record of a span and a message drawn from (or prefixed
// by) the codes above. The parser is not a recovering parser: Parse
// returns the first ParseError it hits and produces no partial tree.
type ParseError struct {
	Span    Span
	Message string
}

// Error implements the error interface, rendering the exact form
// required by the compliance s-expression error output (spec §6):
// "parse error at S-E: MESSAGE".
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Span, e.Message)
}

// newError constructs a ParseError, routed through juju/errors so that
// any wrapping layer (such as ParseAll) can annotate
// or unwrap causes with errors.Cause / errors.Annotate without losing
// the underlying *ParseError.
func newError(span Span, format string, args ...interface{}) error {
	pe := &ParseError{Span: span, Message: fmt.Sprintf(format, args...)}
	return errors.Trace(pe)
}

// AsParseError unwraps err (which may have been annotated by
// juju/errors along the way) back to the *ParseError at its root, if
// any.
func AsParseError(err error) (*ParseError, bool) {
	cause := errors.Cause(err)
	pe, ok := cause.(*ParseError)
	return pe, ok
}
