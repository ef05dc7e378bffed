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

// This file implements the recursive-descent parser of spec §4.5: it
// turns a token stream into a Document. Parse is not a recovering
// parser — it returns the first ParseError encountered and produces no
// partial tree (spec §4.6).

import (
	"strings"

	"github.com/alecthomas/repr"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
)

// Parse parses source and returns the document tree, or the first
// ParseError encountered.
func Parse(source string, opts ...Option) (*Document, error) {
	resolved := resolveOptions(opts)
	p := &parser{stream: newTokenStream(newLexer(source, resolved))}
	doc, err := p.parseDocument()
	if resolved.Debug && err == nil {
		resolved.trace(logrus.Fields{"tree": repr.String(doc)}, "parsed document")
	}
	return doc, err
}

// ParseAll is a multi-source wrapper of the kind spec §4.6 leaves to a
// "higher level collaborator": it runs Parse once on each source, with
// no retry. Parse itself never recovers from an error, but
// a caller juggling several independent source buffers often wants to
// collect every document it can and every error it hits rather than
// stopping at the first failure. Each error is annotated with the
// index of the source that produced it via juju/errors.
func ParseAll(sources []string, opts ...Option) ([]*Document, []error) {
	docs := make([]*Document, len(sources))
	var errs []error
	for i, src := range sources {
		doc, err := Parse(src, opts...)
		if err != nil {
			errs = append(errs, errors.Annotatef(err, "source %d", i))
			continue
		}
		docs[i] = doc
	}
	return docs, errs
}

type parser struct {
	stream *tokenStream
}

func (p *parser) opts() Options {
	return p.stream.lex.opts
}

func (p *parser) trace(msg string, fields logrus.Fields) {
	p.opts().trace(fields, msg)
}

// parseDocument implements the document-root rule of spec §4.5: a
// document that opens with `{` is a single explicit root object
// wrapped in one synthetic-keyed entry; otherwise it is a sequence of
// top-level entries sharing the object separator rules.
func (p *parser) parseDocument() (*Document, error) {
	if p.stream.check(TokenLBrace) {
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		if !p.stream.check(TokenEOF) {
			return nil, newError(p.stream.current.Span, "%s", ErrUnexpectedToken)
		}
		rootValue := &Value{Span: obj.Span, PayloadKind: PayloadObject, Object: obj}
		unitKey := &Value{Span: SyntheticSpan}
		return &Document{
			Entries: []*Entry{{Key: unitKey, Value: rootValue}},
			Span:    obj.Span,
		}, nil
	}

	entries, _, err := p.parseBody(true)
	if err != nil {
		return nil, err
	}
	return &Document{Entries: entries, Span: SyntheticSpan}, nil
}

// separatorMode tracks which separator style has been locked in for
// the body currently being parsed.
type separatorMode int

const (
	separatorUndetermined separatorMode = iota
	separatorFixedComma
	separatorFixedNewline
)

// parseBody parses a run of entries, either the document's top-level
// list (topLevel true, terminated only by EOF) or an object's body
// (topLevel false, terminated by `}` or EOF). It enforces the uniform
// separator invariant (spec §3, §4.5) at each entry boundary: a comma
// immediately followed by a newline-leading next token is an instant
// contradiction (spec Scenario B); otherwise the first boundary locks
// the mode and every later boundary must agree with it.
func (p *parser) parseBody(topLevel bool) ([]*Entry, Separator, error) {
	var entries []*Entry
	var tracker *pathTracker
	var seen map[string]Span
	if topLevel {
		tracker = newPathTracker()
	} else {
		seen = make(map[string]Span)
	}

	atEnd := func() bool {
		if topLevel {
			return p.stream.check(TokenEOF)
		}
		return p.stream.check(TokenRBrace, TokenEOF)
	}

	mode := separatorUndetermined
	for !atEnd() {
		entry, err := p.parseEntry(tracker, seen)
		if err != nil {
			return nil, 0, err
		}
		if entry != nil {
			entries = append(entries, entry)
		}
		if atEnd() {
			break
		}

		if p.stream.check(TokenComma) {
			commaSpan := p.stream.current.Span
			p.stream.advance()
			if p.stream.current.HadNewlineBefore {
				return nil, 0, newError(commaSpan, "%s", ErrMixedSeparators)
			}
			if mode == separatorFixedNewline {
				return nil, 0, newError(commaSpan, "%s", ErrMixedSeparators)
			}
			mode = separatorFixedComma
		} else if !atEnd() {
			if !p.stream.current.HadNewlineBefore {
				// Same line, no comma, not a closing/end token: a
				// dangling atom with no way to attach it to the next
				// entry (spec Scenario C's `key @tag {}` case).
				return nil, 0, newError(p.stream.current.Span, "%s", ErrUnexpectedToken)
			}
			if mode == separatorFixedComma {
				return nil, 0, newError(p.stream.current.Span, "%s", ErrMixedSeparators)
			}
			mode = separatorFixedNewline
		}
	}

	sep := SeparatorComma
	if mode == separatorFixedNewline {
		sep = SeparatorNewline
	}
	return entries, sep, nil
}

// parseEntry parses one `key value?` entry (spec §4.5). Exactly one of
// tracker (top-level document scope) or seen (a nested object body) is
// non-nil; which is set decides whether a dotted bare-scalar key
// expands into a nested-object chain tracked by the full path tracker,
// or is treated as one flat, literal key deduplicated against its
// siblings — see DESIGN.md for why nested object bodies do not expand
// dotted keys.
func (p *parser) parseEntry(tracker *pathTracker, seen map[string]Span) (*Entry, error) {
	key, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if key.Tag == nil && key.PayloadKind == PayloadObject {
		return &Entry{Key: &Value{Span: SyntheticSpan}, Value: key}, nil
	}

	if err := validateKey(key); err != nil {
		return nil, err
	}

	if tracker != nil {
		return p.parseTrackedEntry(key, tracker)
	}
	return p.parseFlatEntry(key, seen)
}

// parseTrackedEntry handles top-level entries, including dotted-path
// expansion into a nested-object chain.
func (p *parser) parseTrackedEntry(key *Value, tracker *pathTracker) (*Entry, error) {
	// segments holds tracker keys, not raw text: splitDottedKey encodes
	// each bare segment through bareScalarKey, the same identity
	// keyEquality uses for a plain bare-scalar key, so a dotted
	// segment `a` and a plain key `a` collide in the tracker exactly
	// as spec §4.4 requires.
	var segments []string
	if key.PayloadKind == PayloadScalar && key.Scalar.Kind == ScalarBare && strings.Contains(key.Scalar.Text, ".") {
		segs, err := splitDottedKey(key.Scalar.Text, key.Span)
		if err != nil {
			return nil, err
		}
		segments = segs
	} else {
		segments = []string{keyEquality(key)}
	}

	leaf, leafSpan, err := p.parseEntryValue(key.Span)
	if err != nil {
		return nil, err
	}

	kind := pathTerminal
	if leaf.PayloadKind == PayloadObject {
		kind = pathObject
	}
	if err := tracker.checkAndUpdate(segments, key.Span, kind); err != nil {
		return nil, err
	}

	if len(segments) == 1 {
		return &Entry{Key: key, Value: leaf}, nil
	}
	return buildDottedChain(key.Scalar, leaf, leafSpan), nil
}

// parseFlatEntry handles entries inside a `{...}` body: a flat
// duplicate-key check under the §3 key-equality rule, no dotted-path
// expansion.
func (p *parser) parseFlatEntry(key *Value, seen map[string]Span) (*Entry, error) {
	eq := keyEquality(key)
	if _, ok := seen[eq]; ok {
		return nil, newError(key.Span, "%s", ErrDuplicateKey)
	}
	seen[eq] = key.Span

	leaf, _, err := p.parseEntryValue(key.Span)
	if err != nil {
		return nil, err
	}
	return &Entry{Key: key, Value: leaf}, nil
}

// parseEntryValue implements spec §4.5 steps 6-7: an implicit unit
// value when the next token starts a new line (or closes the
// enclosing construct), otherwise one explicit value.
func (p *parser) parseEntryValue(keySpan Span) (*Value, Span, error) {
	if p.stream.current.HadNewlineBefore || p.stream.check(TokenEOF, TokenRBrace) {
		return &Value{Span: keySpan}, keySpan, nil
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, Span{}, err
	}
	return v, v.Span, nil
}

// validateKey rejects the payload shapes spec §4.5 disallows at key
// position: sequences and heredoc scalars.
func validateKey(key *Value) error {
	if key.PayloadKind == PayloadSequence {
		return newError(key.Span, "%s", ErrInvalidKey)
	}
	if key.PayloadKind == PayloadScalar && key.Scalar.Kind == ScalarHeredoc {
		return newError(key.Span, "%s", ErrInvalidKey)
	}
	return nil
}

// splitDottedKey splits a dotted bare-scalar key's text into tracker
// keys, rejecting empty segments (spec §4.5 step 4). Each segment is
// encoded through bareScalarKey, not returned as raw text, so it
// unifies with a plain bare-scalar key sharing the same name.
func splitDottedKey(text string, span Span) ([]string, error) {
	raw := strings.Split(text, ".")
	segments := make([]string, len(raw))
	for i, s := range raw {
		if s == "" {
			return nil, newError(span, "%s", ErrInvalidKey)
		}
		segments[i] = bareScalarKey(s)
	}
	return segments, nil
}

// buildDottedChain builds the nested-object chain a dotted key
// expands into (spec §4.5 step 4, §9): each intermediate segment
// becomes a single-entry object with separator newline, and spans are
// derived from the original key span by walking UTF-8 byte offsets
// per segment rather than reusing the parsed tree's own spans.
func buildDottedChain(keyScalar *Scalar, leaf *Value, leafSpan Span) *Entry {
	text := keyScalar.Text
	segments := strings.Split(text, ".")
	segSpans := make([]Span, len(segments))
	offset := keyScalar.Span.Start
	for i, seg := range segments {
		segSpans[i] = Span{offset, offset + len(seg)}
		offset += len(seg) + 1 // +1 for the '.'
	}

	lastKeyEnd := segSpans[len(segments)-1].End
	result := leaf
	for i := len(segments) - 1; i > 0; i-- {
		segSpan := segSpans[i]
		segKey := &Value{
			Span:        segSpan,
			PayloadKind: PayloadScalar,
			Scalar:      &Scalar{Text: segments[i], Kind: ScalarBare, Span: segSpan},
		}
		objSpan := Span{segSpans[i-1].Start, lastKeyEnd}
		result = &Value{
			Span:        objSpan,
			PayloadKind: PayloadObject,
			Object: &Object{
				Entries:   []*Entry{{Key: segKey, Value: result}},
				Separator: SeparatorNewline,
				Span:      objSpan,
			},
		}
	}

	firstSpan := segSpans[0]
	outerKey := &Value{
		Span:        firstSpan,
		PayloadKind: PayloadScalar,
		Scalar:      &Scalar{Text: segments[0], Kind: ScalarBare, Span: firstSpan},
	}
	return &Entry{Key: outerKey, Value: result}
}

// parseValue dispatches on the current token (spec §4.5 "Values").
func (p *parser) parseValue() (*Value, error) {
	tok := p.stream.current

	switch tok.Kind {
	case TokenError:
		return nil, newError(tok.Span, "%s", tok.Message)

	case TokenAt:
		p.stream.advance()
		// A lone `@` can never be immediately followed by a `tag`
		// token with no whitespace between them: the lexer always
		// folds an adjacent tag name into the `@` token itself (spec
		// §4.2), so this is simply the unit value.
		return &Value{Span: tok.Span}, nil

	case TokenTag:
		return p.parseTagged()

	case TokenLBrace:
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		return &Value{Span: obj.Span, PayloadKind: PayloadObject, Object: obj}, nil

	case TokenLParen:
		seq, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		return &Value{Span: seq.Span, PayloadKind: PayloadSequence, Sequence: seq}, nil

	case TokenBare:
		p.stream.advance()
		scalarTok := tok
		if p.stream.check(TokenGT) && !p.stream.current.HadWhitespaceBefore {
			return p.parseAttributeShorthand(scalarTok)
		}
		return &Value{
			Span:        scalarTok.Span,
			PayloadKind: PayloadScalar,
			Scalar:      &Scalar{Text: scalarTok.Text, Kind: ScalarBare, Span: scalarTok.Span},
		}, nil

	case TokenQuoted, TokenRaw, TokenHeredoc:
		return p.parseScalarValue()
	}

	return nil, newError(tok.Span, "expected a value, got %s", tok.Kind)
}

func (p *parser) parseScalarValue() (*Value, error) {
	tok := p.stream.advance()
	var kind ScalarKind
	switch tok.Kind {
	case TokenQuoted:
		kind = ScalarQuoted
	case TokenRaw:
		kind = ScalarRaw
	case TokenHeredoc:
		kind = ScalarHeredoc
	default:
		kind = ScalarBare
	}
	return &Value{
		Span:        tok.Span,
		PayloadKind: PayloadScalar,
		Scalar:      &Scalar{Text: tok.Text, Kind: kind, Span: tok.Span},
	}, nil
}

// splitTagRun recovers (tag_name, trailing_at_present) from the text
// the lexer scanned after a `@` (spec §4.2): the `@ok@` quirk is the
// only place an embedded `@` is legal, and only when it is the very
// last byte of the run — anything scanned after an embedded `@` is an
// invalid tag name, since `@` never belongs to the tag-name grammar
// itself.
func splitTagRun(text string) (name string, trailingAt bool, trailingGarbage bool) {
	idx := strings.IndexByte(text, '@')
	if idx < 0 {
		return text, false, false
	}
	rest := text[idx+1:]
	return text[:idx], true, rest != ""
}

// validTagName reports whether name matches the tag grammar
// [A-Za-z_][A-Za-z0-9_-]* (spec §4.2).
func validTagName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if !isAlpha(r) {
				return false
			}
			continue
		}
		if !isAlpha(r) && !isDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

// parseTagged parses a tag and its optionally-adjacent payload (spec
// §4.5 "Tagged values").
func (p *parser) parseTagged() (*Value, error) {
	tagTok := p.stream.advance()
	name, trailingAt, garbage := splitTagRun(tagTok.Text)
	if garbage || !validTagName(name) {
		return nil, newError(tagTok.Span, "%s", ErrInvalidTagName)
	}
	tag := &Tag{Name: name, Span: tagTok.Span}

	if trailingAt {
		atSpan := Span{tagTok.Span.End - 1, tagTok.Span.End}
		return &Value{Span: atSpan, Tag: tag}, nil
	}

	next := p.stream.current
	if !next.HadWhitespaceBefore {
		switch next.Kind {
		case TokenLBrace:
			obj, err := p.parseObject()
			if err != nil {
				return nil, err
			}
			return &Value{Span: obj.Span, Tag: tag, PayloadKind: PayloadObject, Object: obj}, nil
		case TokenLParen:
			seq, err := p.parseSequence()
			if err != nil {
				return nil, err
			}
			return &Value{Span: seq.Span, Tag: tag, PayloadKind: PayloadSequence, Sequence: seq}, nil
		case TokenQuoted, TokenRaw, TokenHeredoc:
			v, err := p.parseScalarValue()
			if err != nil {
				return nil, err
			}
			v.Tag = tag
			return v, nil
		case TokenAt:
			atTok := p.stream.advance()
			return &Value{Span: atTok.Span, Tag: tag}, nil
		}
	}

	return &Value{Span: tag.Span, Tag: tag}, nil
}

// parseObject parses a `{...}` block (spec §4.5 "Objects").
func (p *parser) parseObject() (*Object, error) {
	open := p.stream.advance() // consume '{'
	entries, sep, err := p.parseBody(false)
	if err != nil {
		return nil, err
	}
	if p.stream.check(TokenEOF) {
		return nil, newError(open.Span, "%s", ErrUnclosedObject)
	}
	closeTok := p.stream.advance() // consume '}'
	return &Object{Entries: entries, Separator: sep, Span: Span{open.Span.Start, closeTok.Span.End}}, nil
}

// parseSequence parses a `(...)` block (spec §4.5 "Sequences").
func (p *parser) parseSequence() (*Sequence, error) {
	open := p.stream.advance() // consume '('
	var items []*Value
	for !p.stream.check(TokenRParen, TokenEOF) {
		if p.stream.check(TokenComma) {
			return nil, newError(p.stream.current.Span, "%s", ErrUnexpectedComma)
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if p.stream.check(TokenEOF) {
		return nil, newError(open.Span, "%s", ErrUnclosedSequence)
	}
	closeTok := p.stream.advance() // consume ')'
	return &Sequence{Items: items, Span: Span{open.Span.Start, closeTok.Span.End}}, nil
}

// parseAttributeShorthand parses the `key>value ...` inline-object
// extension (spec §4.5 "Attribute shorthand"), having already
// confirmed firstKey is immediately followed by an adjacent `>`.
func (p *parser) parseAttributeShorthand(firstKey *Token) (*Value, error) {
	var entries []*Entry
	start := firstKey.Span.Start
	end := firstKey.Span.End

	key := &Value{
		Span:        firstKey.Span,
		PayloadKind: PayloadScalar,
		Scalar:      &Scalar{Text: firstKey.Text, Kind: ScalarBare, Span: firstKey.Span},
	}

	gt := p.stream.advance() // consume '>'
	if err := p.checkAttributeValuePosition(gt.Span); err != nil {
		return nil, err
	}
	value, err := p.parseAttributeValue()
	if err != nil {
		return nil, err
	}
	entries = append(entries, &Entry{Key: key, Value: value})
	end = value.Span.End

	for p.stream.check(TokenBare) && !p.stream.current.HadNewlineBefore {
		keyTok := p.stream.current
		gtAhead := p.stream.peek()
		if gtAhead.Kind != TokenGT || gtAhead.HadWhitespaceBefore {
			break
		}
		p.stream.advance() // consume key
		gt := p.stream.advance()
		if err := p.checkAttributeValuePosition(gt.Span); err != nil {
			return nil, err
		}
		attrKey := &Value{
			Span:        keyTok.Span,
			PayloadKind: PayloadScalar,
			Scalar:      &Scalar{Text: keyTok.Text, Kind: ScalarBare, Span: keyTok.Span},
		}
		attrValue, err := p.parseAttributeValue()
		if err != nil {
			return nil, err
		}
		entries = append(entries, &Entry{Key: attrKey, Value: attrValue})
		end = attrValue.Span.End
	}

	objSpan := Span{start, end}
	return &Value{Span: objSpan, PayloadKind: PayloadObject, Object: &Object{Entries: entries, Separator: SeparatorComma, Span: objSpan}}, nil
}

// checkAttributeValuePosition rejects a trailing `>` with nothing
// valid after it (spec §4.5: "A trailing `>` with no value ... is an
// error `expected a value`").
func (p *parser) checkAttributeValuePosition(gtSpan Span) error {
	cur := p.stream.current
	if cur.HadNewlineBefore || cur.HadWhitespaceBefore || p.stream.check(TokenEOF, TokenRBrace, TokenRParen, TokenComma) {
		return newError(gtSpan, "%s", ErrExpectedValue)
	}
	return nil
}

// parseAttributeValue parses one attribute's value: unlike parseValue,
// a bare scalar here is never itself the start of a further attribute
// shorthand (spec §9's disallowed bare sequence-element position
// carries the same reasoning: a nested `>` chain here would be
// ambiguous).
func (p *parser) parseAttributeValue() (*Value, error) {
	switch p.stream.current.Kind {
	case TokenLBrace:
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		return &Value{Span: obj.Span, PayloadKind: PayloadObject, Object: obj}, nil
	case TokenLParen:
		seq, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		return &Value{Span: seq.Span, PayloadKind: PayloadSequence, Sequence: seq}, nil
	case TokenTag:
		return p.parseTagged()
	case TokenAt:
		tok := p.stream.advance()
		return &Value{Span: tok.Span}, nil
	case TokenError:
		tok := p.stream.current
		return nil, newError(tok.Span, "%s", tok.Message)
	default:
		return p.parseScalarValue()
	}
}
