// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package logexpect asserts on the warnings and errors code under test
// writes to the process default slog logger.
//
// The helpers swap slog.Default for a recording stand-in while a callback
// runs, restore the original logger, and then check what was recorded:
//
//	logexpect.ExpectWarn(t, func() {
//		cfg.Load("legacy.yaml")
//	}, "deprecated")
//
//	logexpect.ExpectNoError(t, func() {
//		svc.Start()
//	})
//
// The default logger is process-wide state. Tests that intercept the same
// channel must not run in parallel.
package logexpect
