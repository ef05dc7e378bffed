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

// This file defines the document tree (spec §3). The tree exclusively
// owns its nodes; spans are plain byte-index value types, and the
// source the tree was parsed from is not retained inside it. There is
// no mutation API here: the parser builds the tree once and hands it
// to read-only downstream collaborators.

// ScalarKind identifies how a scalar's text was written in source.
type ScalarKind int

const (
	ScalarBare ScalarKind = iota
	ScalarQuoted
	ScalarRaw
	ScalarHeredoc
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarBare:
		return "bare"
	case ScalarQuoted:
		return "quoted"
	case ScalarRaw:
		return "raw"
	case ScalarHeredoc:
		return "heredoc"
	default:
		return "unknown"
	}
}

// Separator identifies the uniform separator style used within one
// object.
type Separator int

const (
	SeparatorComma Separator = iota
	SeparatorNewline
)

func (s Separator) String() string {
	switch s {
	case SeparatorComma:
		return "comma"
	case SeparatorNewline:
		return "newline"
	default:
		return "unknown"
	}
}

// PayloadKind identifies which of the four payload shapes a Value
// carries.
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadScalar
	PayloadSequence
	PayloadObject
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadNone:
		return "none"
	case PayloadScalar:
		return "scalar"
	case PayloadSequence:
		return "sequence"
	case PayloadObject:
		return "object"
	default:
		return "unknown"
	}
}

// Scalar is an opaque text payload: the lexer has already processed
// escapes (quoted), left content literal (raw), or dedented it
// (heredoc). Parsers attach no further typed semantics here — a
// scalar's text is just text until a schema layer interprets it.
type Scalar struct {
	Text string
	Kind ScalarKind
	Span Span
}

// Tag is a `@name` annotation, optionally carrying a payload recorded
// on the enclosing Value.
type Tag struct {
	Name string
	Span Span
}

// Value is the sum over the four payload shapes, with an optional tag.
// A Value with no tag and PayloadNone is the unit value. Span reflects
// the payload's own source extent (the tag's, for a tagged unit with no
// written payload; the `@`'s, for a tagged unit with an explicit `@`);
// see spec §3 for why the two can differ from what a caller might
// naively expect.
type Value struct {
	Span        Span
	Tag         *Tag
	PayloadKind PayloadKind
	Scalar      *Scalar
	Sequence    *Sequence
	Object      *Object
}

// IsUnit reports whether v carries neither a tag nor a payload.
func (v *Value) IsUnit() bool {
	return v.Tag == nil && v.PayloadKind == PayloadNone
}

// Entry is an unordered (key, value) pair within an Object or at
// document top level. Value may itself be the unit value.
type Entry struct {
	Key   *Value
	Value *Value
}

// Sequence is an ordered, whitespace-separated list of values.
type Sequence struct {
	Items []*Value
	Span  Span
}

// Object is an ordered list of entries with a uniform separator.
type Object struct {
	Entries   []*Entry
	Separator Separator
	Span      Span
}

// Document is the root of a parsed Styx source: an ordered list of
// top-level entries. Span is SyntheticSpan unless the document is a
// single explicit root object, in which case Entries holds exactly one
// entry whose key is the synthetic unit value.
type Document struct {
	Entries []*Entry
	Span    Span
}

// bareScalarKey is the path-tracker/key-equality identity for a bare
// scalar's text on its own, shared by keyEquality's scalar branch and
// by a dotted key's individual segments so that a plain key `a` and a
// dotted segment `a` collide in the tracker exactly as spec §4.4
// requires.
func bareScalarKey(text string) string {
	return "\x00scalar:" + text
}

// keyEquality is the parsed-form identity used both by the path
// tracker for a non-dotted key (a dotted key's segments go through
// bareScalarKey, its scalar branch) and by Object's duplicate-key invariant
// (spec §3, §4.4): scalar text after escape processing, unit as a
// distinguished value, and tagged keys as (tag name, payload).
func keyEquality(v *Value) string {
	switch {
	case v.IsUnit():
		return "\x00unit"
	case v.Tag != nil:
		return "\x00tag:" + v.Tag.Name + ":" + payloadEquality(v)
	case v.PayloadKind == PayloadScalar:
		return bareScalarKey(v.Scalar.Text)
	default:
		return "\x00payload:" + payloadEquality(v)
	}
}

func payloadEquality(v *Value) string {
	switch v.PayloadKind {
	case PayloadNone:
		return "none"
	case PayloadScalar:
		return "scalar:" + v.Scalar.Kind.String() + ":" + v.Scalar.Text
	case PayloadSequence:
		s := "sequence:("
		for _, item := range v.Sequence.Items {
			s += keyEquality(item) + ","
		}
		return s + ")"
	case PayloadObject:
		s := "object:{"
		for _, e := range v.Object.Entries {
			s += keyEquality(e.Key) + "=" + keyEquality(e.Value) + ","
		}
		return s + "}"
	default:
		return ""
	}
}
