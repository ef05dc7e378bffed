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

// This file implements the lexical tokenization of Styx source (spec
// §4.2). Unlike a classic stateFn-chained lexer, next() dispatches
// directly on the first rune of each token: Styx's grammar needs only
// short lookahead past the dispatch point (one rune for `//`, and a scan
// over the `#` run to tell a raw-scalar opener from a bare scalar
// starting with `r`), so a channel of pending states buys nothing a
// direct dispatch doesn't already give us.

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	maxHeredocDelimiter = 16
)

// lexer produces one Token per call to next.
type lexer struct {
	cur  *cursor
	opts Options

	// forceNextNewline is set after a heredoc closes; the token
	// following a closed heredoc must report HadNewlineBefore = true
	// because the closing delimiter line's own newline belongs to it
	// (spec §4.2).
	forceNextNewline bool

	// inPattern mirrors the teacher's lexer.inPattern switch: Styx has
	// no analogous dual-escape context, but the field is kept as the
	// hook a schema-aware caller (out of this package's scope) would
	// need to toggle escape handling for a pattern-like scalar.
	inPattern bool
}

func newLexer(src string, opts Options) *lexer {
	return &lexer{cur: newCursor(src), opts: opts}
}

// next returns the next token, which is TokenEOF once input is
// exhausted and TokenError if a lexical error was encountered. It
// never returns nil.
func (l *lexer) next() *Token {
	hadWS, hadNL := l.skipTrivia()

	start := l.cur.bytePosition()
	r := l.cur.peek(0)

	l.opts.trace(logrus.Fields{"pos": start, "rune": string(r)}, "lex.next")

	mk := func(kind TokenKind, span Span, text string) *Token {
		return &Token{Kind: kind, Span: span, Text: text, HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
	}

	switch r {
	case noRune:
		return mk(TokenEOF, Span{start, start}, "")
	case '{':
		l.cur.advance()
		return mk(TokenLBrace, Span{start, l.cur.bytePosition()}, "{")
	case '}':
		l.cur.advance()
		return mk(TokenRBrace, Span{start, l.cur.bytePosition()}, "}")
	case '(':
		l.cur.advance()
		return mk(TokenLParen, Span{start, l.cur.bytePosition()}, "(")
	case ')':
		l.cur.advance()
		return mk(TokenRParen, Span{start, l.cur.bytePosition()}, ")")
	case ',':
		l.cur.advance()
		return mk(TokenComma, Span{start, l.cur.bytePosition()}, ",")
	case '>':
		l.cur.advance()
		return mk(TokenGT, Span{start, l.cur.bytePosition()}, ">")
	case '"':
		return l.lexQuoted(hadWS, hadNL)
	case '@':
		return l.lexAtOrTag(hadWS, hadNL)
	case '<':
		return l.lexAngle(hadWS, hadNL)
	}

	if r == 'r' && l.looksLikeRawOpener() {
		return l.lexRaw(hadWS, hadNL)
	}

	if isBareStart(r) {
		return l.lexBare(hadWS, hadNL)
	}

	l.cur.advance()
	return &Token{
		Kind:                TokenError,
		Span:                Span{start, l.cur.bytePosition()},
		Message:             ErrUnexpectedToken,
		HadWhitespaceBefore: hadWS,
		HadNewlineBefore:    hadNL,
	}
}

// skipTrivia consumes whitespace and line comments, reporting whether
// any was seen and whether a line terminator was among it. A forced
// newline credit left over from closing a heredoc is folded in here so
// callers never have to special-case it.
func (l *lexer) skipTrivia() (hadWhitespace, hadNewline bool) {
	if l.forceNextNewline {
		hadWhitespace = true
		hadNewline = true
		l.forceNextNewline = false
	}
	for {
		r := l.cur.peek(0)
		if isWhitespace(r) {
			l.cur.advance()
			hadWhitespace = true
			if r == '\n' {
				hadNewline = true
			}
			continue
		}
		if r == '/' && l.cur.peek(1) == '/' {
			l.cur.advance()
			l.cur.advance()
			for {
				c := l.cur.peek(0)
				if c == noRune || c == '\n' {
					break
				}
				l.cur.advance()
			}
			hadWhitespace = true
			continue
		}
		return hadWhitespace, hadNewline
	}
}

// lexBare reads a bare scalar per the character classes in spec §4.1.
func (l *lexer) lexBare(hadWS, hadNL bool) *Token {
	start := l.cur.bytePosition()
	l.cur.advance()
	for isBareCont(l.cur.peek(0)) {
		l.cur.advance()
	}
	end := l.cur.bytePosition()
	text := l.cur.src[start:end]
	return &Token{Kind: TokenBare, Span: Span{start, end}, Text: text, HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
}

// lexAtOrTag implements the `@` / tag dispatch of spec §4.2, including
// the `@ok@` quirk: the lexer scans a bare-scalar-like run after the
// `@` (which is why an embedded `@` can appear in the run — `@` is a
// legal bare-continuation character) and leaves splitting that run at
// its first embedded `@` to the parser.
func (l *lexer) lexAtOrTag(hadWS, hadNL bool) *Token {
	start := l.cur.bytePosition()
	l.cur.advance() // consume '@'

	if !isBareCont(l.cur.peek(0)) {
		return &Token{Kind: TokenAt, Span: Span{start, l.cur.bytePosition()}, Text: "@", HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
	}

	nameStart := l.cur.bytePosition()
	for isBareCont(l.cur.peek(0)) {
		l.cur.advance()
	}
	end := l.cur.bytePosition()
	return &Token{Kind: TokenTag, Span: Span{start, end}, Text: l.cur.src[nameStart:end], HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
}

// lexAngle handles `<` at token position: either the start of a
// heredoc opener (`<<` followed by an uppercase letter) or a lexer
// error (spec §4.2).
func (l *lexer) lexAngle(hadWS, hadNL bool) *Token {
	start := l.cur.bytePosition()
	l.cur.advance() // first '<'

	if l.cur.peek(0) != '<' {
		return &Token{Kind: TokenError, Span: Span{start, l.cur.bytePosition()}, Message: ErrUnexpectedToken, HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
	}
	l.cur.advance() // second '<'

	if !isUpper(l.cur.peek(0)) {
		return &Token{Kind: TokenError, Span: Span{start, l.cur.bytePosition()}, Message: ErrUnexpectedToken, HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
	}
	return l.lexHeredoc(start, hadWS, hadNL)
}

// lexHeredoc scans a heredoc body once the `<<` opener and its
// uppercase first delimiter character have been confirmed. openStart
// is the byte offset of the first `<`.
func (l *lexer) lexHeredoc(openStart int, hadWS, hadNL bool) *Token {
	delimStart := l.cur.bytePosition()
	l.cur.advance() // first delimiter char, already confirmed uppercase
	for {
		r := l.cur.peek(0)
		if isUpper(r) || isDigit(r) || r == '_' {
			l.cur.advance()
			continue
		}
		break
	}
	delimEnd := l.cur.bytePosition()
	if delimEnd-delimStart > maxHeredocDelimiter {
		return &Token{Kind: TokenError, Span: Span{delimStart, delimEnd}, Message: ErrHeredocTooLong, HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
	}
	delimiter := l.cur.src[delimStart:delimEnd]

	if l.cur.peek(0) == ',' {
		l.cur.advance()
		for {
			r := l.cur.peek(0)
			if isLower(r) || isDigit(r) || r == '_' || r == '.' || r == '-' {
				l.cur.advance()
				continue
			}
			break
		}
	}

	if l.cur.peek(0) == '\r' {
		l.cur.advance()
	}
	if l.cur.peek(0) == '\n' {
		l.cur.advance()
	}

	contentStart := l.cur.bytePosition()
	for {
		lineStart := l.cur.bytePosition()
		for {
			c := l.cur.peek(0)
			if c == noRune || c == '\n' {
				break
			}
			l.cur.advance()
		}
		lineEnd := l.cur.bytePosition()
		hasNL := l.cur.peek(0) == '\n'
		line := l.cur.src[lineStart:lineEnd]
		trimmed := strings.TrimLeft(line, " \t")

		if trimmed == delimiter {
			dedent := len(line) - len(trimmed)
			if hasNL {
				l.cur.advance()
			}
			text := dedentHeredoc(l.cur.src[contentStart:lineStart], dedent)
			l.forceNextNewline = true
			return &Token{Kind: TokenHeredoc, Span: Span{openStart, l.cur.bytePosition()}, Text: text, HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
		}

		if !hasNL {
			return &Token{Kind: TokenError, Span: Span{contentStart, l.cur.bytePosition()}, Message: ErrUnterminatedHeredoc, HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
		}
		l.cur.advance() // consume the line's newline, keep scanning
	}
}

// dedentHeredoc strips up to dedent leading space/tab bytes from each
// line of content, never more than a given line actually has, while
// preserving every line's trailing newline.
func dedentHeredoc(content string, dedent int) string {
	if content == "" {
		return ""
	}
	var b strings.Builder
	rest := content
	for {
		idx := strings.IndexByte(rest, '\n')
		var line string
		var hasNL bool
		if idx < 0 {
			line = rest
		} else {
			line = rest[:idx]
			hasNL = true
		}
		n := 0
		for n < len(line) && n < dedent && (line[n] == ' ' || line[n] == '\t') {
			n++
		}
		b.WriteString(line[n:])
		if hasNL {
			b.WriteByte('\n')
			rest = rest[idx+1:]
			continue
		}
		break
	}
	return b.String()
}

// looksLikeRawOpener reports whether the cursor is positioned at an
// `r`, followed by zero or more `#`, followed by `"` — the raw-scalar
// opener (spec §4.2) — without consuming anything.
func (l *lexer) looksLikeRawOpener() bool {
	offset := 1 // past 'r'
	for l.cur.peek(offset) == '#' {
		offset++
	}
	return l.cur.peek(offset) == '"'
}

// lexRaw reads a raw scalar: `r`, zero or more `#`, `"`, literal
// content, then `"` followed by exactly the same number of `#`.
func (l *lexer) lexRaw(hadWS, hadNL bool) *Token {
	start := l.cur.bytePosition()
	l.cur.advance() // 'r'
	hashes := 0
	for l.cur.peek(0) == '#' {
		l.cur.advance()
		hashes++
	}
	l.cur.advance() // opening '"'

	contentStart := l.cur.bytePosition()
	for {
		r := l.cur.peek(0)
		if r == noRune {
			return &Token{Kind: TokenError, Span: Span{start, l.cur.bytePosition()}, Message: ErrUnterminatedString, HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
		}
		if r == '"' && l.closesRaw(hashes) {
			contentEnd := l.cur.bytePosition()
			l.cur.advance() // closing '"'
			for i := 0; i < hashes; i++ {
				l.cur.advance()
			}
			text := l.cur.src[contentStart:contentEnd]
			return &Token{Kind: TokenRaw, Span: Span{start, l.cur.bytePosition()}, Text: text, HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
		}
		l.cur.advance()
	}
}

// closesRaw reports whether the `"` at the cursor is followed by
// exactly n `#` characters, without consuming anything.
func (l *lexer) closesRaw(n int) bool {
	for i := 0; i < n; i++ {
		if l.cur.peek(1+i) != '#' {
			return false
		}
	}
	// The character after the hashes must not itself be a '#' (that
	// would mean more than n hashes followed the quote, which is not
	// the close sequence for this opener).
	return l.cur.peek(1+n) != '#'
}

// lexQuoted reads a quoted scalar, processing escape sequences per
// spec §4.2.
func (l *lexer) lexQuoted(hadWS, hadNL bool) *Token {
	start := l.cur.bytePosition()
	l.cur.advance() // opening '"'

	var text strings.Builder
	for {
		r := l.cur.peek(0)
		switch r {
		case noRune:
			return &Token{Kind: TokenError, Span: Span{start, l.cur.bytePosition()}, Message: ErrUnterminatedString, HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
		case '"':
			l.cur.advance()
			return &Token{Kind: TokenQuoted, Span: Span{start, l.cur.bytePosition()}, Text: text.String(), HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
		case '\n':
			l.cur.advance()
			return &Token{Kind: TokenError, Span: Span{start, l.cur.bytePosition()}, Message: ErrUnterminatedString, HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
		case '\\':
			escStart := l.cur.bytePosition()
			l.cur.advance()
			c := l.cur.peek(0)
			switch c {
			case '\\':
				l.cur.advance()
				text.WriteByte('\\')
			case '"':
				l.cur.advance()
				text.WriteByte('"')
			case 'n':
				l.cur.advance()
				text.WriteByte('\n')
			case 'r':
				l.cur.advance()
				text.WriteByte('\r')
			case 't':
				l.cur.advance()
				text.WriteByte('\t')
			case 'u':
				l.cur.advance()
				r, ok := l.lexUnicodeEscape()
				if !ok {
					return &Token{Kind: TokenError, Span: Span{escStart, l.cur.bytePosition()}, Message: ErrInvalidEscape + ": \\u", HadWhitespaceBefore: hadWS, HadNewlineBefore: hadNL}
				}
				text.WriteRune(r)
			default:
				badEnd := l.cur.bytePosition()
				if c != noRune {
					_, w := l.cur.advance()
					badEnd += w
				}
				return &Token{
					Kind:                TokenError,
					Span:                Span{escStart, badEnd},
					Message:             ErrInvalidEscape + ": \\" + string(c),
					HadWhitespaceBefore: hadWS,
					HadNewlineBefore:    hadNL,
				}
			}
		default:
			l.cur.advance()
			text.WriteRune(r)
		}
	}
}

// lexUnicodeEscape reads the body of a \u escape (the 'u' has already
// been consumed): either exactly four hex digits, or 1-6 hex digits
// between braces.
func (l *lexer) lexUnicodeEscape() (rune, bool) {
	if l.cur.peek(0) == '{' {
		l.cur.advance()
		start := l.cur.bytePosition()
		for isHexDigit(l.cur.peek(0)) {
			l.cur.advance()
		}
		digits := l.cur.src[start:l.cur.bytePosition()]
		if len(digits) < 1 || len(digits) > 6 || l.cur.peek(0) != '}' {
			return 0, false
		}
		l.cur.advance() // '}'
		v, err := strconv.ParseInt(digits, 16, 32)
		if err != nil {
			return 0, false
		}
		return rune(v), true
	}

	start := l.cur.bytePosition()
	for i := 0; i < 4; i++ {
		if !isHexDigit(l.cur.peek(0)) {
			return 0, false
		}
		l.cur.advance()
	}
	digits := l.cur.src[start:l.cur.bytePosition()]
	v, err := strconv.ParseInt(digits, 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
