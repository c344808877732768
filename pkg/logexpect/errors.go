// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package logexpect

// Error codes carried by the oops errors this package returns.
const (
	CodeUnknownChannel         = "UNKNOWN_CHANNEL"
	CodeInterceptionActive     = "INTERCEPTION_ACTIVE"
	CodeRestoreOutOfOrder      = "RESTORE_OUT_OF_ORDER"
	CodeUnmetCallExpectation   = "UNMET_CALL_EXPECTATION"
	CodeUnexpectedCallDetected = "UNEXPECTED_CALL_DETECTED"
)
