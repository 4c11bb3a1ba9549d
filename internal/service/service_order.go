// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-video-vault/internal/config"
	"github.com/MKhiriev/go-video-vault/internal/crypto"
	"github.com/MKhiriev/go-video-vault/internal/custodian"
	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/MKhiriev/go-video-vault/internal/store"
	"github.com/MKhiriev/go-video-vault/models"
)

// orderValidityWindow is the fixed interval after which an order is marked
// expired. Recorded on the record; validation does not check it.
const orderValidityWindow = 2 * time.Hour

// orderService is the concrete implementation of OrderService. It orchestrates
// the envelope-encryption workflow: hashing, encryption, key wrapping and
// signing through the custodian, artifact persistence, and the order record.
type orderService struct {
	users  store.UserRepository
	orders store.OrderRepository
	blobs  store.BlobStorage

	envelope crypto.EnvelopeService
	keeper   custodian.Custodian
	audit    AuditService

	// dataKeyID is the system-wide wrapping key name under which every
	// order's data key is wrapped. Distinct from the senders' signing keys.
	dataKeyID string

	logger *logger.Logger
}

// NewOrderService constructs an OrderService wired to the given storages,
// envelope cipher, and key custodian. The shared data-key name comes from the
// custodian configuration section.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewOrderService(storages *store.Storages, envelope crypto.EnvelopeService, keeper custodian.Custodian, audit AuditService, cfg config.Custodian, logger *logger.Logger) OrderService {
	return &orderService{
		users:     storages.UserRepository,
		orders:    storages.OrderRepository,
		blobs:     storages.BlobStorage,
		envelope:  envelope,
		keeper:    keeper,
		audit:     audit,
		dataKeyID: cfg.DataKeyID,
		logger:    logger,
	}
}

// CreateOrder creates an order addressed to recipientName.
//
// Sequence: resolve and authorize the sender, hash the plaintext, encrypt it
// under a fresh data key, wrap the key and sign the digest through the
// custodian, write both artifacts, then persist the record. Artifacts are
// written before the record: a record never references artifacts that do not
// exist. A record failure after the artifacts were written leaves them
// orphaned on disk.
//
// Returns the new order id and the ordered step labels, or:
//   - ErrSenderNotFound if the sender does not exist.
//   - ErrForbiddenOperation if the sender is an administrative account.
//   - ErrMissingSigningKeys if the sender has no signing key or public key.
//   - ErrEmptyPayload if video is empty.
//   - A wrapped custodian or storage error otherwise.
func (s *orderService) CreateOrder(ctx context.Context, senderID int64, recipientName, amount, videoName string, video []byte) (models.CreateOrderResponse, error) {
	log := logger.FromContext(ctx)

	sender, err := s.users.FindUserByID(ctx, senderID)
	if err != nil {
		log.Err(err).Int64("sender_id", senderID).Msg("sender lookup failed")
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.CreateOrderResponse{}, ErrSenderNotFound
		}
		return models.CreateOrderResponse{}, fmt.Errorf("sender lookup failed: %w", err)
	}

	if sender.IsAdmin {
		log.Error().Int64("sender_id", senderID).Msg("admin attempted to create an order")
		return models.CreateOrderResponse{}, ErrForbiddenOperation
	}

	if strings.TrimSpace(sender.SigningKeyID) == "" || strings.TrimSpace(sender.PublicKey) == "" {
		log.Error().Int64("sender_id", senderID).Msg("sender has no signing keys registered")
		return models.CreateOrderResponse{}, ErrMissingSigningKeys
	}

	if len(video) == 0 {
		return models.CreateOrderResponse{}, ErrEmptyPayload
	}

	// Digest of the plaintext, before encryption. The same digest is both
	// stored (hex) and signed (base64).
	digest := crypto.HashPayload(video)

	dek, err := s.envelope.GenerateDEK()
	if err != nil {
		log.Err(err).Msg("data key generation failed")
		return models.CreateOrderResponse{}, fmt.Errorf("data key generation failed: %w", err)
	}

	artifact, err := s.envelope.Seal(video, dek)
	if err != nil {
		log.Err(err).Msg("payload encryption failed")
		return models.CreateOrderResponse{}, fmt.Errorf("payload encryption failed: %w", err)
	}

	wrappedKey, err := s.keeper.WrapDataKey(ctx, s.dataKeyID, dek)
	if err != nil {
		log.Err(err).Str("key_id", s.dataKeyID).Msg("data key wrapping failed")
		return models.CreateOrderResponse{}, fmt.Errorf("data key wrapping failed: %w", err)
	}

	signature, err := s.keeper.Sign(ctx, sender.SigningKeyID, digest.Base64())
	if err != nil {
		log.Err(err).Str("key_id", sender.SigningKeyID).Msg("digest signing failed")
		return models.CreateOrderResponse{}, fmt.Errorf("digest signing failed: %w", err)
	}

	encPath, keyPath, err := s.blobs.SaveArtifacts(ctx, senderID, artifact, wrappedKey)
	if err != nil {
		log.Err(err).Msg("artifact persistence failed")
		return models.CreateOrderResponse{}, fmt.Errorf("artifact persistence failed: %w", err)
	}

	now := time.Now()
	order := models.Order{
		SenderID:        senderID,
		RecipientName:   strings.TrimSpace(recipientName),
		Amount:          amount,
		VideoName:       strings.TrimSpace(videoName),
		VideoHash:       digest.Hex(),
		EncryptedPath:   encPath,
		WrappedKeyPath:  keyPath,
		ExpiresAt:       now.Add(orderValidityWindow),
		Active:          true,
		SenderPublicKey: sender.PublicKey,
		Signature:       signature,
		SignedAt:        now,
		CreatedAt:       now,
	}

	created, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		// The artifacts are already on disk at this point and are not
		// cleaned up. See DESIGN.md on orphaned artifacts.
		log.Err(err).Msg("order record persistence failed")
		return models.CreateOrderResponse{}, fmt.Errorf("order record persistence failed: %w", err)
	}

	s.audit.Record(ctx, models.AuditEntry{
		ActorID:  senderID,
		Action:   models.AuditOrderCreated,
		Entity:   order.TableName(),
		EntityID: created.ID,
		Message: fmt.Sprintf("%s created an order for %s (amount: $%s, video: %s)",
			actorLabel(sender), order.RecipientName, order.Amount, order.VideoName),
	})

	return models.CreateOrderResponse{
		ID:    created.ID,
		Steps: []string{"video encrypted", "video hash signed"},
	}, nil
}

// OrdersReceived lists the orders addressed to the given user's display name,
// newest first.
//
// Returns ErrSenderNotFound if the user does not exist, or a wrapped storage
// error if the listing query fails.
func (s *orderService) OrdersReceived(ctx context.Context, userID int64) ([]models.ReceivedOrder, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user lookup failed")
		if errors.Is(err, store.ErrNoUserWasFound) {
			return nil, ErrSenderNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	orders, err := s.orders.FindOrdersByRecipient(ctx, strings.TrimSpace(user.Name))
	if err != nil {
		log.Err(err).Str("recipient", user.Name).Msg("received orders listing failed")
		return nil, fmt.Errorf("received orders listing failed: %w", err)
	}

	received := make([]models.ReceivedOrder, 0, len(orders))
	for _, order := range orders {
		received = append(received, models.ReceivedOrder{
			ID:        order.ID,
			VideoName: order.VideoName,
			VideoHash: order.VideoHash,
			Amount:    order.Amount,
			ExpiresAt: order.ExpiresAt.Format(time.RFC3339),
			Active:    order.Active,
			SignedAt:  order.SignedAt.Format(time.RFC3339),
			CreatedAt: order.CreatedAt.Format(time.RFC3339),
		})
	}

	return received, nil
}

// ValidateOrder retrieves and proves an order addressed to the requesting
// user: scan the artifacts, unwrap the data key under the shared wrapping
// key, decrypt, recompute the digest, and verify the stored signature against
// the sender's current signing key — not the public-key snapshot taken at
// creation.
//
// Neither expiresAt nor active is checked here; both are recorded at creation
// only.
//
// Returns the decrypted payload base64-encoded, or:
//   - ErrOrderNotFound if the order does not exist.
//   - ErrNotAuthorized if the caller is not the designated recipient.
//   - ErrArtifactMissing if either artifact is absent or empty.
//   - ErrCorruptArtifact if the artifact is truncated or fails authentication.
//   - ErrSignerKeyUnavailable if the sender's signing key cannot be resolved.
//   - ErrTamperedContent if the signature does not verify over the digest.
//   - A wrapped custodian or storage error otherwise.
func (s *orderService) ValidateOrder(ctx context.Context, orderID int64, userID int64) (models.ValidateOrderResponse, error) {
	log := logger.FromContext(ctx)

	order, err := s.orders.FindOrderByID(ctx, orderID)
	if err != nil {
		log.Err(err).Int64("order_id", orderID).Msg("order lookup failed")
		if errors.Is(err, store.ErrOrderNotFound) {
			return models.ValidateOrderResponse{}, ErrOrderNotFound
		}
		return models.ValidateOrderResponse{}, fmt.Errorf("order lookup failed: %w", err)
	}

	// A missing caller account resolves to an empty name, which then fails
	// the recipient check rather than erroring out separately.
	requestingName := ""
	if user, err := s.users.FindUserByID(ctx, userID); err == nil {
		requestingName = user.Name
	}

	if strings.TrimSpace(requestingName) != strings.TrimSpace(order.RecipientName) {
		log.Error().
			Int64("order_id", orderID).
			Int64("user_id", userID).
			Msg("order requested by someone other than the recipient")
		return models.ValidateOrderResponse{}, ErrNotAuthorized
	}

	if err := s.blobs.Scan(ctx, order.EncryptedPath, order.WrappedKeyPath); err != nil {
		log.Err(err).Int64("order_id", orderID).Msg("artifact scan failed")
		return models.ValidateOrderResponse{}, ErrArtifactMissing
	}

	wrappedKey, err := s.blobs.LoadWrappedKey(ctx, order.WrappedKeyPath)
	if err != nil {
		log.Err(err).Int64("order_id", orderID).Msg("wrapped key read failed")
		return models.ValidateOrderResponse{}, fmt.Errorf("wrapped key read failed: %w", err)
	}

	dek, err := s.keeper.UnwrapDataKey(ctx, s.dataKeyID, wrappedKey)
	if err != nil {
		log.Err(err).Str("key_id", s.dataKeyID).Msg("data key unwrapping failed")
		return models.ValidateOrderResponse{}, fmt.Errorf("data key unwrapping failed: %w", err)
	}

	artifact, err := s.blobs.LoadEncrypted(ctx, order.EncryptedPath)
	if err != nil {
		log.Err(err).Int64("order_id", orderID).Msg("encrypted artifact read failed")
		return models.ValidateOrderResponse{}, fmt.Errorf("encrypted artifact read failed: %w", err)
	}

	if len(artifact) <= crypto.NonceLength {
		log.Error().Int64("order_id", orderID).Int("size", len(artifact)).Msg("encrypted artifact shorter than nonce")
		return models.ValidateOrderResponse{}, fmt.Errorf("%w: size", ErrCorruptArtifact)
	}

	video, err := s.envelope.Open(artifact, dek)
	if err != nil {
		log.Err(err).Int64("order_id", orderID).Msg("payload decryption failed")
		if errors.Is(err, crypto.ErrAuthenticationFailed) || errors.Is(err, crypto.ErrArtifactTooShort) {
			return models.ValidateOrderResponse{}, fmt.Errorf("%w: %w", ErrCorruptArtifact, err)
		}
		return models.ValidateOrderResponse{}, fmt.Errorf("payload decryption failed: %w", err)
	}

	digest := crypto.HashPayload(video)

	// The signature is checked against the sender's live signing key, not
	// the public-key snapshot stored on the order. After a sender key
	// rotation, old orders stop verifying.
	sender, err := s.users.FindUserByID(ctx, order.SenderID)
	if err != nil {
		log.Err(err).Int64("sender_id", order.SenderID).Msg("sender lookup failed at validation")
		return models.ValidateOrderResponse{}, ErrSignerKeyUnavailable
	}
	if strings.TrimSpace(sender.SigningKeyID) == "" {
		log.Error().Int64("sender_id", order.SenderID).Msg("sender has no signing key at validation")
		return models.ValidateOrderResponse{}, ErrSignerKeyUnavailable
	}

	if !s.keeper.Verify(ctx, sender.SigningKeyID, digest.Base64(), order.Signature) {
		log.Error().Int64("order_id", orderID).Msg("signature verification failed")
		return models.ValidateOrderResponse{}, ErrTamperedContent
	}

	s.audit.Record(ctx, models.AuditEntry{
		ActorID:  userID,
		Action:   models.AuditOrderValidated,
		Entity:   order.TableName(),
		EntityID: orderID,
		Message: fmt.Sprintf("%s validated order #%d (video decrypted and signature verified)",
			strings.TrimSpace(requestingName), orderID),
	})

	return models.ValidateOrderResponse{
		Success:     true,
		VideoBase64: base64.StdEncoding.EncodeToString(video),
	}, nil
}

// actorLabel is the display form of a user in audit messages.
func actorLabel(user models.User) string {
	if name := strings.TrimSpace(user.Name); name != "" {
		return name
	}
	return fmt.Sprintf("User #%d", user.UserID)
}
