package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrSenderNotFound is returned when the order sender cannot be resolved.
	ErrSenderNotFound = errors.New("sender not found")

	// ErrForbiddenOperation is returned when an administrative account
	// attempts to create a transaction order.
	ErrForbiddenOperation = errors.New("an administrator cannot create a transaction order")

	// ErrMissingSigningKeys is returned when the sender has no registered
	// signing-key identifier or public key.
	ErrMissingSigningKeys = errors.New("sender has no registered signing keys")

	// ErrEmptyPayload is returned when the submitted video payload is empty.
	ErrEmptyPayload = errors.New("empty video payload")

	// ErrOrderNotFound is returned when the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNotAuthorized is returned when the requesting user's display name
	// does not match the order's recipient name.
	ErrNotAuthorized = errors.New("this order is not addressed to you")

	// ErrArtifactMissing is returned when either stored artifact is absent or
	// empty at validation time.
	ErrArtifactMissing = errors.New("order artifact missing or empty")

	// ErrCorruptArtifact is returned when the encrypted artifact is too short
	// to hold a nonce or when its authentication tag does not verify.
	ErrCorruptArtifact = errors.New("video file corrupted")

	// ErrSignerKeyUnavailable is returned when the sender or the sender's
	// current signing key cannot be resolved at validation time.
	ErrSignerKeyUnavailable = errors.New("sender signing key unavailable")

	// ErrTamperedContent is returned when the payload decrypts cleanly but
	// the signature over its digest does not verify against the sender's
	// live signing key.
	ErrTamperedContent = errors.New("video corrupted")
)
