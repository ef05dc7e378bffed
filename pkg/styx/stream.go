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

// tokenStream buffers the current and next token from a lexer,
// offering the one-token lookahead the parser needs (spec §4.3). It
// deliberately does not support pushing arbitrary tokens back (unlike
// the teacher's parser.push/pop stack) because Styx's grammar never
// needs more than the single token of lookahead peek already gives.
type tokenStream struct {
	lex     *lexer
	current *Token
	peeked  *Token
}

func newTokenStream(lex *lexer) *tokenStream {
	s := &tokenStream{lex: lex}
	s.current = lex.next()
	return s
}

// peek returns, without consuming, the token after current.
func (s *tokenStream) peek() *Token {
	if s.peeked == nil {
		s.peeked = s.lex.next()
	}
	return s.peeked
}

// advance returns the current token and moves the stream forward.
func (s *tokenStream) advance() *Token {
	prev := s.current
	if s.peeked != nil {
		s.current = s.peeked
		s.peeked = nil
	} else {
		s.current = s.lex.next()
	}
	return prev
}

// check reports whether the current token's kind is among kinds.
func (s *tokenStream) check(kinds ...TokenKind) bool {
	for _, k := range kinds {
		if s.current.Kind == k {
			return true
		}
	}
	return false
}
