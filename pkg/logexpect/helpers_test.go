// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package logexpect_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/holomush/logexpect/internal/logging"
)

// recordingT collects failures instead of failing the running test.
type recordingT struct {
	mu      sync.Mutex
	errors  []string
	stopped bool
}

func (r *recordingT) Helper() {}

func (r *recordingT) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
}

func (r *recordingT) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors) > 0 || r.stopped
}

func (r *recordingT) Output() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.errors, "\n")
}

// safeBuffer is a bytes.Buffer usable from concurrent log calls.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	//nolint:wrapcheck // bytes.Buffer never fails
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// installConsole makes a text logger writing to the returned buffer the
// process default for the duration of the test. It stands in for the
// real console so tests can observe original logging behavior.
func installConsole(t *testing.T) *safeBuffer {
	t.Helper()
	buf := &safeBuffer{}
	restore, err := logging.Install(logging.Options{
		Service: "logexpect-test",
		Format:  logging.FormatText,
		Level:   slog.LevelDebug,
	}, buf)
	require.NoError(t, err)
	t.Cleanup(restore)
	return buf
}
