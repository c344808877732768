// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package logexpect

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/logexpect/pkg/errutil"
)

// TestingT is the subset of *testing.T the helpers report through.
// *testing.T, *rapid.T and ginkgo's GinkgoT() all satisfy it.
type TestingT interface {
	Errorf(format string, args ...any)
	FailNow()
}

type tHelper interface {
	Helper()
}

// policy is what an assertion requires of the recorded calls.
type policy int

const (
	atLeastOnce policy = iota
	never
)

// ExpectLogged runs fn with ch intercepted and fails t unless fn logged on
// ch at least once. Each non-empty fragment must also appear in at least
// one recorded message.
func ExpectLogged(t TestingT, ch Channel, fn func(), fragments ...string) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	expect(t, ch, atLeastOnce, fn, fragments)
}

// ExpectNotLogged runs fn with ch intercepted and fails t if fn logged on ch.
func ExpectNotLogged(t TestingT, ch Channel, fn func()) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	expect(t, ch, never, fn, nil)
}

// ExpectError is ExpectLogged on the error channel.
func ExpectError(t TestingT, fn func(), fragments ...string) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	expect(t, Error, atLeastOnce, fn, fragments)
}

// ExpectWarn is ExpectLogged on the warn channel.
func ExpectWarn(t TestingT, fn func(), fragments ...string) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	expect(t, Warn, atLeastOnce, fn, fragments)
}

// ExpectNoError is ExpectNotLogged on the error channel.
func ExpectNoError(t TestingT, fn func()) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	expect(t, Error, never, fn, nil)
}

// ExpectNoWarn is ExpectNotLogged on the warn channel.
func ExpectNoWarn(t TestingT, fn func()) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	expect(t, Warn, never, fn, nil)
}

func expect(t TestingT, ch Channel, p policy, fn func(), fragments []string) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	in, err := Intercept(ch)
	if err != nil {
		require.NoError(t, err, "intercept %s channel", ch)
		return
	}

	if err := observe(in, fn); err != nil {
		assert.Fail(t, err.Error())
	}

	switch p {
	case atLeastOnce:
		err = in.Called(fragments...)
	case never:
		err = in.NotCalled()
	}
	if err != nil {
		assert.Fail(t, err.Error())
	}
}

// observe runs fn and restores the interception however fn exits:
// return, panic or runtime.Goexit. A restore error on an abnormal exit
// cannot be returned, so it goes to the restored default logger.
func observe(in *Interception, fn func()) (err error) {
	completed := false
	defer func() {
		restoreErr := in.Restore()
		switch {
		case restoreErr == nil:
		case completed:
			err = restoreErr
		default:
			errutil.LogError(nil, "restore log interception", restoreErr)
		}
	}()
	fn()
	completed = true
	return nil
}
