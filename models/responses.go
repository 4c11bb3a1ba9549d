package models

// CreateOrderResponse is returned by POST /api/orders after a successful
// creation. Steps is the ordered list of human-readable labels of the
// operations performed — display material for the UI, not a protocol
// contract.
type CreateOrderResponse struct {
	ID    int64    `json:"id"`
	Steps []string `json:"steps"`
}

// ValidateOrderResponse is returned by POST /api/orders/{id}/validate.
// VideoBase64 carries the decrypted payload; JSON cannot hold raw bytes,
// so the plaintext is base64-encoded for transport only.
type ValidateOrderResponse struct {
	Success     bool   `json:"success"`
	VideoBase64 string `json:"videoBase64"`
}

// ReceivedOrder is the listing shape for GET /api/orders/received.
// It exposes the order metadata without the artifact contents.
type ReceivedOrder struct {
	ID        int64  `json:"id"`
	VideoName string `json:"video_name"`
	VideoHash string `json:"video_hash"`
	Amount    string `json:"amount"`
	ExpiresAt string `json:"expires_at"`
	Active    bool   `json:"active"`
	SignedAt  string `json:"signed_at"`
	CreatedAt string `json:"created_at"`
}

// ErrorResponse is the uniform JSON error body returned by the HTTP layer.
type ErrorResponse struct {
	Error string `json:"error"`
}
