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

// Package styx implements the front-end pipeline of the Styx
// configuration language: a source cursor, a lexer, a token stream, a
// path tracker, and a recursive-descent parser that together turn UTF-8
// source bytes into a byte-spanned document tree.
//
// The package is a pure function from bytes to a tree: Parse performs
// no I/O, holds no global state, and the tree it returns is immutable
// by contract. Downstream collaborators — schema validation, an LSP,
// a formatter, a JSON bridge — consume the tree produced here; none of
// that is implemented in this package.
package styx
