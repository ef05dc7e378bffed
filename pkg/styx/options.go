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
	"os"

	"github.com/sirupsen/logrus"
)

// Options controls optional behavior of Parse that has no bearing on
// the produced tree's semantics: tracing and the logger it is written
// to.
type Options struct {
	// Debug, when true, causes the lexer to emit a structured trace
	// event to Logger each time it starts a token, and Parse to log a
	// dump of the tree after a successful parse.
	Debug bool

	// Logger receives debug trace events when Debug is set. If nil, a
	// package-default logrus.Logger writing to os.Stderr is used.
	Logger *logrus.Logger
}

// Option configures an Options value.
type Option func(*Options)

// WithDebug enables structured trace logging during the parse.
func WithDebug(logger *logrus.Logger) Option {
	return func(o *Options) {
		o.Debug = true
		o.Logger = logger
	}
}

func defaultLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.SetLevel(logrus.DebugLevel)
	return l
}

func resolveOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Debug && o.Logger == nil {
		o.Logger = defaultLogger()
	}
	return o
}

// trace emits a structured debug event if tracing is enabled; it is a
// no-op otherwise, so call sites need no branch of their own.
func (o Options) trace(fields logrus.Fields, msg string) {
	if !o.Debug {
		return
	}
	o.Logger.WithFields(fields).Debug(msg)
}
