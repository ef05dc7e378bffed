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

// Span is a half-open byte range [Start, End) into the source that was
// given to Parse. SyntheticSpan is used for nodes with no source
// origin: the document's implicit root, the implicit unit value of a
// key with no written value, and other fabricated structure.
type Span struct {
	Start int
	End   int
}

// SyntheticSpan is the span recorded on tree nodes the parser
// fabricates rather than reads from source.
var SyntheticSpan = Span{-1, -1}

// IsSynthetic reports whether s carries no source origin.
func (s Span) IsSynthetic() bool {
	return s.Start < 0 || s.End < 0
}

// String renders s the way diagnostics in this package do: "S-E", or
// "synthetic" for SyntheticSpan.
func (s Span) String() string {
	if s.IsSynthetic() {
		return "synthetic"
	}
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// cover returns the smallest span containing both a and b. Neither a
// nor b may be synthetic.
func cover(a, b Span) Span {
	return Span{a.Start, b.End}
}
