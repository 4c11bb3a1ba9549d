// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package custodian implements clients for the external key custodian
// holding the platform's private key material. The production backend is
// HashiCorp Vault's Transit secrets engine; an in-memory implementation is
// provided for tests and local development.
package custodian

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/go-resty/resty/v2"
)

// TransitConfig carries the connection settings of the Vault Transit client.
type TransitConfig struct {
	// Address is the base URL of the Vault server, e.g. "http://vault:8200".
	Address string

	// Token is the Vault token sent in the X-Vault-Token header.
	Token string

	// Timeout bounds every single custodian call. Defaults to 15s.
	Timeout time.Duration
}

// transitCustodian talks to Vault's Transit engine over its REST API:
//
//	POST /v1/transit/keys/{key}              — create signing key
//	GET  /v1/transit/export/public-key/{key} — export public key
//	POST /v1/transit/encrypt/{key}           — wrap data key
//	POST /v1/transit/decrypt/{key}           — unwrap data key
//	POST /v1/transit/sign/{key}              — sign digest
//	POST /v1/transit/verify/{key}            — verify signature
type transitCustodian struct {
	client *resty.Client
	logger *logger.Logger
}

// transitResponse is the generic success envelope of the Transit engine.
// Only the fields this client consumes are declared.
type transitResponse struct {
	Data struct {
		Ciphertext string            `json:"ciphertext"`
		Plaintext  string            `json:"plaintext"`
		Signature  string            `json:"signature"`
		Valid      bool              `json:"valid"`
		Keys       map[string]string `json:"keys"`
	} `json:"data"`
}

// NewTransitCustodian constructs a [Custodian] backed by Vault Transit.
func NewTransitCustodian(cfg TransitConfig, logger *logger.Logger) Custodian {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Address, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("X-Vault-Token", cfg.Token)

	logger.Debug().Str("address", cfg.Address).Msg("creating vault transit custodian")
	return &transitCustodian{client: cli, logger: logger}
}

// CreateSigningKey implements [Custodian]. It provisions a named Ed25519
// key in the Transit engine. Creating a key that already exists is a no-op
// on the Vault side.
func (t *transitCustodian) CreateSigningKey(ctx context.Context, keyID string) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"type": "ed25519"}).
		Post("/v1/transit/keys/" + keyID)
	if err != nil {
		return fmt.Errorf("%w: create signing key: %w", ErrCustodianUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: create signing key %q: status %d", ErrCustodianUnavailable, keyID, resp.StatusCode())
	}

	return nil
}

// ExportPublicKey implements [Custodian]. It reads the first key version
// from the export endpoint, matching the behaviour consumers rely on: the
// signing keys are created once and never rotated by this application.
func (t *transitCustodian) ExportPublicKey(ctx context.Context, keyID string) (string, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		Get("/v1/transit/export/public-key/" + keyID)
	if err != nil {
		return "", fmt.Errorf("%w: export public key: %w", ErrCustodianUnavailable, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, keyID)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: export public key %q: status %d", ErrCustodianUnavailable, keyID, resp.StatusCode())
	}

	body, err := parseTransitResponse(resp.Body())
	if err != nil {
		return "", err
	}

	publicKey, ok := body.Data.Keys["1"]
	if !ok || publicKey == "" {
		return "", fmt.Errorf("%w: no exported public key for %q", ErrEmptyResponse, keyID)
	}

	return publicKey, nil
}

// WrapDataKey implements [Custodian]. The raw DEK is base64-encoded for
// transport; the returned ciphertext (e.g. "vault:v1:...") is treated as an
// opaque blob by the rest of the system.
func (t *transitCustodian) WrapDataKey(ctx context.Context, keyID string, dek []byte) (string, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"plaintext": base64.StdEncoding.EncodeToString(dek)}).
		Post("/v1/transit/encrypt/" + keyID)
	if err != nil {
		return "", fmt.Errorf("%w: wrap data key: %w", ErrCustodianUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: wrap data key under %q: status %d", ErrCustodianUnavailable, keyID, resp.StatusCode())
	}

	body, err := parseTransitResponse(resp.Body())
	if err != nil {
		return "", err
	}
	if body.Data.Ciphertext == "" {
		return "", fmt.Errorf("%w: no ciphertext in wrap response", ErrEmptyResponse)
	}

	return body.Data.Ciphertext, nil
}

// UnwrapDataKey implements [Custodian]. A 4xx answer from Vault means the
// ciphertext or key id was rejected and maps to [ErrKeyUnwrapFailed]; any
// transport or server-side failure maps to [ErrCustodianUnavailable].
func (t *transitCustodian) UnwrapDataKey(ctx context.Context, keyID string, wrapped string) ([]byte, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"ciphertext": wrapped}).
		Post("/v1/transit/decrypt/" + keyID)
	if err != nil {
		return nil, fmt.Errorf("%w: unwrap data key: %w", ErrCustodianUnavailable, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest && resp.StatusCode() < http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: key %q: status %d", ErrKeyUnwrapFailed, keyID, resp.StatusCode())
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: unwrap data key under %q: status %d", ErrCustodianUnavailable, keyID, resp.StatusCode())
	}

	body, err := parseTransitResponse(resp.Body())
	if err != nil {
		return nil, err
	}
	if body.Data.Plaintext == "" {
		return nil, fmt.Errorf("%w: no plaintext in unwrap response", ErrEmptyResponse)
	}

	dek, err := base64.StdEncoding.DecodeString(body.Data.Plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: decode unwrapped data key: %w", ErrKeyUnwrapFailed, err)
	}

	return dek, nil
}

// Sign implements [Custodian]. digestBase64 is passed as the Transit
// "input" with prehashed=false: with Ed25519 keys Vault signs the input
// bytes directly, and the /sha2-256 URL suffix is reserved for RSA/ECDSA.
func (t *transitCustodian) Sign(ctx context.Context, keyID string, digestBase64 string) (string, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"input": digestBase64, "prehashed": false}).
		Post("/v1/transit/sign/" + keyID)
	if err != nil {
		return "", fmt.Errorf("%w: sign: %w", ErrCustodianUnavailable, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, keyID)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: sign with %q: status %d", ErrCustodianUnavailable, keyID, resp.StatusCode())
	}

	body, err := parseTransitResponse(resp.Body())
	if err != nil {
		return "", err
	}
	if body.Data.Signature == "" {
		return "", fmt.Errorf("%w: no signature in sign response", ErrEmptyResponse)
	}

	return body.Data.Signature, nil
}

// Verify implements [Custodian]. Any failure — transport, non-2xx status,
// undecodable body — resolves to false rather than an error, so the order
// workflow can report a uniform "corrupted" outcome.
func (t *transitCustodian) Verify(ctx context.Context, keyID string, digestBase64 string, signature string) bool {
	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"input": digestBase64, "signature": signature, "prehashed": false}).
		Post("/v1/transit/verify/" + keyID)
	if err != nil {
		t.logger.Err(err).Str("key_id", keyID).Msg("custodian verify request failed")
		return false
	}
	if resp.IsError() {
		t.logger.Error().Str("key_id", keyID).Int("status", resp.StatusCode()).Msg("custodian verify rejected")
		return false
	}

	body, err := parseTransitResponse(resp.Body())
	if err != nil {
		t.logger.Err(err).Str("key_id", keyID).Msg("custodian verify response undecodable")
		return false
	}

	return body.Data.Valid
}

func parseTransitResponse(raw []byte) (transitResponse, error) {
	var body transitResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return transitResponse{}, fmt.Errorf("%w: decode transit response: %w", ErrEmptyResponse, err)
	}
	return body, nil
}
