package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-video-vault/models"
)

// OrderService is the envelope-encryption order workflow: submit an encrypted
// video addressed to a named recipient, list received orders, and validate
// (decrypt + verify) a received order.
type OrderService interface {
	// CreateOrder hashes, encrypts and signs the video payload, persists the
	// two artifacts and the order record, and returns the new order id plus
	// the human-readable step labels performed.
	CreateOrder(ctx context.Context, senderID int64, recipientName, amount, videoName string, video []byte) (models.CreateOrderResponse, error)

	// OrdersReceived lists the orders addressed to the given user's display
	// name, newest first.
	OrdersReceived(ctx context.Context, userID int64) ([]models.ReceivedOrder, error)

	// ValidateOrder checks the caller is the designated recipient, unwraps
	// the data key, decrypts the payload and verifies the sender's signature
	// over its digest. Returns the decrypted payload base64-encoded.
	ValidateOrder(ctx context.Context, orderID int64, userID int64) (models.ValidateOrderResponse, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AuditService records user-visible actions to the append-only audit trail.
// Recording is best-effort: failures are logged, never propagated.
type AuditService interface {
	Record(ctx context.Context, entry models.AuditEntry)
}
