// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: logging/logging.go
// Summary: File-backed structured logging. The panel shares a terminal with
// the host, so log output must never reach stdout/stderr.

package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Logger and Fields re-export the underlying types so callers do not import
// logrus directly.
type Logger = logrus.Logger
type Fields = logrus.Fields

var root = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SetupFile redirects the shared logger to the given file, creating parent
// directories as needed. Returns a closer for the underlying file.
func SetupFile(path string, debug bool) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(f)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	root = l
	return f, nil
}

// Root returns the shared logger. Until SetupFile is called it discards
// everything, which keeps tests and embedded use quiet by default.
func Root() *Logger {
	return root
}

// Named returns an entry tagged with a component field.
func Named(component string) *logrus.Entry {
	entry := logrus.NewEntry(root)
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}
