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

// This file implements the compliance s-expression output of spec §6,
// used to diff this implementation's parse trees against other
// conforming implementations over a shared corpus. The grammar is
// fixed by the spec; nothing here is configurable.

import (
	"fmt"
	"strconv"
	"strings"
)

// WriteSExpr renders doc in the compliance s-expression form (spec
// §6).
func WriteSExpr(doc *Document) string {
	var b strings.Builder
	b.WriteString("(document ")
	writeSpan(&b, doc.Span)
	for _, e := range doc.Entries {
		b.WriteByte(' ')
		writeEntrySExpr(&b, e)
	}
	b.WriteByte(')')
	return b.String()
}

// WriteErrorSExpr renders a parse error in the compliance form: `(error
// [start, end] "parse error at S-E: MESSAGE")`, quoting err.Error().
func WriteErrorSExpr(err *ParseError) string {
	var b strings.Builder
	b.WriteString("(error ")
	writeSpan(&b, err.Span)
	b.WriteByte(' ')
	b.WriteString(jsonString(err.Error()))
	b.WriteByte(')')
	return b.String()
}

func writeSpan(b *strings.Builder, s Span) {
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(s.Start))
	b.WriteString(", ")
	b.WriteString(strconv.Itoa(s.End))
	b.WriteByte(']')
}

func writeEntrySExpr(b *strings.Builder, e *Entry) {
	b.WriteString("(entry ")
	writeValueSExpr(b, e.Key)
	b.WriteByte(' ')
	writeValueSExpr(b, e.Value)
	b.WriteByte(')')
}

func writeValueSExpr(b *strings.Builder, v *Value) {
	if v.Tag != nil {
		writeTagSExpr(b, v)
		return
	}
	switch v.PayloadKind {
	case PayloadNone:
		writeUnitSExpr(b, v.Span)
	case PayloadScalar:
		writeScalarSExpr(b, v.Scalar)
	case PayloadSequence:
		writeSequenceSExpr(b, v.Sequence)
	case PayloadObject:
		writeObjectSExpr(b, v.Object)
	}
}

func writeUnitSExpr(b *strings.Builder, span Span) {
	b.WriteString("(unit ")
	writeSpan(b, span)
	b.WriteByte(')')
}

func writeScalarSExpr(b *strings.Builder, s *Scalar) {
	b.WriteString("(scalar ")
	writeSpan(b, s.Span)
	b.WriteByte(' ')
	b.WriteString(s.Kind.String())
	b.WriteByte(' ')
	b.WriteString(jsonString(s.Text))
	b.WriteByte(')')
}

func writeTagSExpr(b *strings.Builder, v *Value) {
	b.WriteString("(tag ")
	writeSpan(b, v.Span)
	b.WriteByte(' ')
	b.WriteString(jsonString(v.Tag.Name))
	if v.PayloadKind != PayloadNone {
		b.WriteByte(' ')
		writeValueSExpr(b, &Value{Span: v.Span, PayloadKind: v.PayloadKind, Scalar: v.Scalar, Sequence: v.Sequence, Object: v.Object})
	}
	b.WriteByte(')')
}

func writeSequenceSExpr(b *strings.Builder, seq *Sequence) {
	b.WriteString("(sequence ")
	writeSpan(b, seq.Span)
	for _, item := range seq.Items {
		b.WriteByte(' ')
		writeValueSExpr(b, item)
	}
	b.WriteByte(')')
}

func writeObjectSExpr(b *strings.Builder, obj *Object) {
	b.WriteString("(object ")
	writeSpan(b, obj.Span)
	b.WriteByte(' ')
	b.WriteString(obj.Separator.String())
	for _, e := range obj.Entries {
		b.WriteByte(' ')
		writeEntrySExpr(b, e)
	}
	b.WriteByte(')')
}

// jsonString renders s as a JSON-escaped double-quoted string (spec
// §6: `\"`, `\\`, `\n`, `\t`, `\r`, `\uXXXX` for other control bytes).
func jsonString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
