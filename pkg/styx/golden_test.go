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
	"testing"

	"gopkg.in/yaml.v3"
)

// goldenCase is one entry of the YAML-encoded corpus below: an input
// source and the compliance s-expression it must produce (spec §6).
type goldenCase struct {
	Name  string `yaml:"name"`
	Input string `yaml:"input"`
	Want  string `yaml:"want"`
}

// goldenCorpus is kept as YAML rather than Go literals so it reads the
// same way a hand-maintained fixture file would: one short block per
// case, no struct-literal noise.
const goldenCorpus = `
- name: bare_scalar_pair
  input: "a 1"
  want: '(document [-1, -1] (entry (scalar [0, 1] bare "a") (scalar [2, 3] bare "1")))'
- name: implicit_unit
  input: "a"
  want: '(document [-1, -1] (entry (scalar [0, 1] bare "a") (unit [0, 1])))'
- name: tagged_scalar
  input: "a @t\"x\""
  want: '(document [-1, -1] (entry (scalar [0, 1] bare "a") (tag [4, 7] "t" (scalar [4, 7] quoted "x"))))'
`

func TestGoldenCorpus(t *testing.T) {
	var cases []goldenCase
	if err := yaml.Unmarshal([]byte(goldenCorpus), &cases); err != nil {
		t.Fatalf("yaml.Unmarshal(goldenCorpus): %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("goldenCorpus decoded to zero cases")
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			doc, err := Parse(tc.Input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.Input, err)
			}
			if got := WriteSExpr(doc); got != tc.Want {
				t.Errorf("WriteSExpr(Parse(%q)) = %q, want %q", tc.Input, got, tc.Want)
			}
		})
	}
}
