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

import "fmt"

// TokenKind identifies the lexical class of a token (spec §4.2).
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenBare
	TokenQuoted
	TokenRaw
	TokenHeredoc
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenComma
	TokenGT
	TokenAt
	TokenTag
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "error"
	case TokenBare:
		return "bare scalar"
	case TokenQuoted:
		return "quoted scalar"
	case TokenRaw:
		return "raw scalar"
	case TokenHeredoc:
		return "heredoc scalar"
	case TokenLBrace:
		return "`{`"
	case TokenRBrace:
		return "`}`"
	case TokenLParen:
		return "`(`"
	case TokenRParen:
		return "`)`"
	case TokenComma:
		return "`,`"
	case TokenGT:
		return "`>`"
	case TokenAt:
		return "`@`"
	case TokenTag:
		return "tag"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// isScalarKind reports whether k is one of the four scalar token
// kinds.
func (k TokenKind) isScalarKind() bool {
	switch k {
	case TokenBare, TokenQuoted, TokenRaw, TokenHeredoc:
		return true
	}
	return false
}

// Token is one lexical unit read from the input, carrying its source
// span, interpreted text, and the two adjacency flags (spec §4.2) that
// let the parser resolve Styx's context-sensitive grammar rules
// without unbounded lookahead.
type Token struct {
	Kind TokenKind
	Span Span
	Text string

	// HadWhitespaceBefore is true iff any whitespace or comment was
	// skipped between the previous token and this one.
	HadWhitespaceBefore bool

	// HadNewlineBefore is true iff at least one line terminator was
	// skipped between the previous token and this one. This includes
	// the synthetic newline credited to the token following a closed
	// heredoc (spec §4.2).
	HadNewlineBefore bool

	// Message carries the lexer's error text when Kind == TokenError.
	Message string
}

func (t *Token) String() string {
	if t == nil {
		return "<nil token>"
	}
	if t.Text == "" {
		return fmt.Sprintf("%s@%s", t.Kind, t.Span)
	}
	return fmt.Sprintf("%s@%s %q", t.Kind, t.Span, t.Text)
}
