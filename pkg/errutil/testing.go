// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package errutil

import (
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorCode asserts that err is an oops error with the given code.
// t may be *testing.T, *rapid.T or GinkgoT().
func AssertErrorCode(t require.TestingT, err error, code string) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T", err)
	assert.Equal(t, code, oopsErr.Code())
}

// AssertErrorContext asserts that err is an oops error whose context
// holds value under key.
func AssertErrorContext(t require.TestingT, err error, key string, value any) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T", err)
	ctx := oopsErr.Context()
	require.Contains(t, ctx, key)
	assert.Equal(t, value, ctx[key])
}
