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

import "unicode/utf8"

// noRune is returned by peek and advance once the cursor has run off
// the end of input. It is not a valid Unicode scalar value.
const noRune = -1

// cursor is a byte-indexed walker over UTF-8 source. All positions it
// reports are byte offsets, so spans built from them line up with the
// original source exactly; advancing over a multi-byte rune moves the
// byte position by that rune's UTF-8 width, never by 1.
type cursor struct {
	src string
	pos int // byte offset of the next unread byte
}

func newCursor(src string) *cursor {
	return &cursor{src: src}
}

// bytePosition returns the current byte offset into the source.
func (c *cursor) bytePosition() int {
	return c.pos
}

// atEOF reports whether the cursor has consumed all input.
func (c *cursor) atEOF() bool {
	return c.pos >= len(c.src)
}

// peek returns the rune offset runes ahead of the cursor without
// consuming it, and noRune if that position is at or past EOF. offset
// 0 means "the next rune to be read".
func (c *cursor) peek(offset int) rune {
	pos := c.pos
	for offset > 0 {
		if pos >= len(c.src) {
			return noRune
		}
		_, w := utf8.DecodeRuneInString(c.src[pos:])
		pos += w
		offset--
	}
	if pos >= len(c.src) {
		return noRune
	}
	r, _ := utf8.DecodeRuneInString(c.src[pos:])
	return r
}

// advance consumes and returns the next rune, along with the number of
// bytes it occupied. It returns (noRune, 0) at EOF.
func (c *cursor) advance() (rune, int) {
	if c.pos >= len(c.src) {
		return noRune, 0
	}
	r, w := utf8.DecodeRuneInString(c.src[c.pos:])
	c.pos += w
	return r, w
}

// Character classification, locked by the compliance corpus (spec
// §4.1). These are free functions, not cursor methods, since the
// lexer needs to classify runes it has already peeked without
// re-reading them.

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// isBareStart reports whether r may begin a bare scalar.
func isBareStart(r rune) bool {
	switch r {
	case noRune, '{', '}', '(', ')', ',', '"', '=', '@', '>', '\n', ' ', '\t', '\r':
		return false
	}
	return true
}

// isBareCont reports whether r may continue a bare scalar once
// started. Unlike isBareStart, '@' and '=' are permitted.
func isBareCont(r rune) bool {
	switch r {
	case noRune, '{', '}', '(', ')', ',', '"', '>', '\n', ' ', '\t', '\r':
		return false
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return isUpper(r) || isLower(r) || r == '_'
}
