// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package custodian

import "errors"

// Sentinel errors returned by [Custodian] implementations. Callers should
// match against them with [errors.Is].
var (
	// ErrCustodianUnavailable is returned when the custodian cannot be
	// reached or answers with a server-side failure. No local recovery is
	// attempted; the error propagates to the caller.
	ErrCustodianUnavailable = errors.New("key custodian unavailable")

	// ErrKeyUnwrapFailed is returned when the custodian refuses to unwrap a
	// data key — unknown key id, malformed ciphertext, or a wrapping-key
	// mismatch.
	ErrKeyUnwrapFailed = errors.New("data key unwrap failed")

	// ErrKeyNotFound is returned when an operation references a signing key
	// the custodian does not hold.
	ErrKeyNotFound = errors.New("signing key not found")

	// ErrEmptyResponse is returned when the custodian answers 200 but the
	// response body is missing the expected field (ciphertext, plaintext,
	// signature, or public key).
	ErrEmptyResponse = errors.New("empty response from key custodian")
)
