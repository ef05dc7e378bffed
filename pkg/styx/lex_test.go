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
	"runtime"
	"testing"
)

// line returns the line number from which it was called, so failures
// can be traced back to a table entry even after reformatting.
func line() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}

func allTokens(src string) []*Token {
	l := newLexer(src, resolveOptions(nil))
	var toks []*Token
	for {
		tok := l.next()
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks
		}
	}
}

func tk(kind TokenKind, text string) *Token {
	return &Token{Kind: kind, Text: text}
}

func equalToks(a, b *Token) bool {
	return a.Kind == b.Kind && a.Text == b.Text
}

func TestLexBasic(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		want []*Token
	}{
		{line(), "", []*Token{tk(TokenEOF, "")}},
		{line(), "bob", []*Token{tk(TokenBare, "bob"), tk(TokenEOF, "")}},
		{line(), "{bob}", []*Token{
			tk(TokenLBrace, "{"),
			tk(TokenBare, "bob"),
			tk(TokenRBrace, "}"),
			tk(TokenEOF, ""),
		}},
		{line(), "a 1, b 2", []*Token{
			tk(TokenBare, "a"),
			tk(TokenBare, "1"),
			tk(TokenComma, ","),
			tk(TokenBare, "b"),
			tk(TokenBare, "2"),
			tk(TokenEOF, ""),
		}},
		{line(), `"abc"`, []*Token{tk(TokenQuoted, "abc"), tk(TokenEOF, "")}},
		{line(), `r"abc"`, []*Token{tk(TokenRaw, "abc"), tk(TokenEOF, "")}},
		{line(), `r#"a"b"#`, []*Token{tk(TokenRaw, `a"b`), tk(TokenEOF, "")}},
		{line(), "@ok", []*Token{tk(TokenTag, "ok"), tk(TokenEOF, "")}},
		{line(), "@ok@", []*Token{tk(TokenTag, "ok@"), tk(TokenEOF, "")}},
		{line(), "@ {}", []*Token{tk(TokenAt, "@"), tk(TokenLBrace, "{"), tk(TokenRBrace, "}"), tk(TokenEOF, "")}},
		{line(), "key>value", []*Token{
			tk(TokenBare, "key"),
			tk(TokenGT, ">"),
			tk(TokenBare, "value"),
			tk(TokenEOF, ""),
		}},
		{line(), "// a comment\nbob", []*Token{tk(TokenBare, "bob"), tk(TokenEOF, "")}},
	} {
		got := allTokens(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("line %d: %q: got %d tokens, want %d (%v)", tt.line, tt.in, len(got), len(tt.want), got)
			continue
		}
		for i := range got {
			if !equalToks(got[i], tt.want[i]) {
				t.Errorf("line %d: %q: token %d = %v, want %v", tt.line, tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestLexAdjacency(t *testing.T) {
	toks := allTokens("a\nb")
	if toks[0].HadNewlineBefore {
		t.Errorf("first token should not have a leading newline")
	}
	if !toks[1].HadNewlineBefore {
		t.Errorf("second token should have had_newline_before = true")
	}

	toks = allTokens("a@tag{}")
	// '@' may continue a bare scalar, so "a@tag" is a single bare
	// token; "{" immediately follows it, and "}" immediately follows "{".
	if toks[1].HadWhitespaceBefore {
		t.Errorf("adjacent `{` should not report whitespace before it")
	}
	if toks[2].HadWhitespaceBefore {
		t.Errorf("adjacent `}` should not report whitespace before it")
	}
}

func TestLexHeredoc(t *testing.T) {
	src := "<<SRC,rust\n    fn main() {}\n    SRC\n"
	toks := allTokens(src)
	if toks[0].Kind != TokenHeredoc {
		t.Fatalf("got kind %v, want heredoc", toks[0].Kind)
	}
	if want := "fn main() {}\n"; toks[0].Text != want {
		t.Errorf("heredoc text = %q, want %q", toks[0].Text, want)
	}
	if toks[1].Kind != TokenEOF {
		t.Fatalf("expected EOF after heredoc, got %v", toks[1].Kind)
	}
}

func TestLexHeredocForcesNewline(t *testing.T) {
	src := "a <<D\nfoo\nD\nb"
	toks := allTokens(src)
	// toks: a, heredoc, b, EOF
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4: %v", len(toks), toks)
	}
	if !toks[2].HadNewlineBefore {
		t.Errorf("token after heredoc close must carry had_newline_before = true")
	}
}

func TestLexErrors(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		want string
	}{
		{line(), `"unterminated`, ErrUnterminatedString},
		{line(), "\"a\nb\"", ErrUnterminatedString},
		{line(), `"bad \x escape"`, ErrInvalidEscape + ": \\x"},
		{line(), "<", ErrUnexpectedToken},
		{line(), "<x", ErrUnexpectedToken},
		{line(), "<<src", ErrUnexpectedToken},
		{line(), "<<SRC\nunterminated", ErrUnterminatedHeredoc},
	} {
		toks := allTokens(tt.in)
		var found *Token
		for _, tok := range toks {
			if tok.Kind == TokenError {
				found = tok
				break
			}
		}
		if found == nil {
			t.Errorf("line %d: %q: expected a lex error, got none", tt.line, tt.in)
			continue
		}
		if found.Message != tt.want {
			t.Errorf("line %d: %q: error = %q, want %q", tt.line, tt.in, found.Message, tt.want)
		}
	}
}
