package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"
	"time"

	"github.com/MKhiriev/go-video-vault/internal/config"
	"github.com/MKhiriev/go-video-vault/internal/crypto"
	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/MKhiriev/go-video-vault/internal/mock"
	"github.com/MKhiriev/go-video-vault/internal/store"
	"github.com/MKhiriev/go-video-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testDataKeyID = "video-dek"

func newTestOrderSvc(ctrl *gomock.Controller) (
	*orderService,
	*mock.MockUserRepository,
	*mock.MockOrderRepository,
	*mock.MockBlobStorage,
	*mock.MockCustodian,
	*mock.MockAuditRepository,
) {
	mockUsers := mock.NewMockUserRepository(ctrl)
	mockOrders := mock.NewMockOrderRepository(ctrl)
	mockBlobs := mock.NewMockBlobStorage(ctrl)
	mockKeeper := mock.NewMockCustodian(ctrl)
	mockAudit := mock.NewMockAuditRepository(ctrl)

	storages := &store.Storages{
		UserRepository:  mockUsers,
		OrderRepository: mockOrders,
		BlobStorage:     mockBlobs,
		AuditRepository: mockAudit,
	}

	svc := NewOrderService(
		storages,
		crypto.NewEnvelopeService(),
		mockKeeper,
		NewAuditService(mockAudit, logger.Nop()),
		config.Custodian{DataKeyID: testDataKeyID},
		logger.Nop(),
	).(*orderService)

	return svc, mockUsers, mockOrders, mockBlobs, mockKeeper, mockAudit
}

func testSender() models.User {
	return models.User{
		UserID:       42,
		Login:        "alice",
		Name:         "Alice",
		SigningKeyID: "user-key-alice",
		PublicKey:    "alice-public-key",
	}
}

func TestCreateOrder_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, mockOrders, mockBlobs, mockKeeper, mockAudit := newTestOrderSvc(ctrl)

	video := []byte("hello-video")
	digest := sha256.Sum256(video)
	wantHashHex := hex.EncodeToString(digest[:])
	wantHashBase64 := base64.StdEncoding.EncodeToString(digest[:])

	sender := testSender()
	var savedOrder models.Order

	mockUsers.EXPECT().FindUserByID(gomock.Any(), sender.UserID).Return(sender, nil)
	mockKeeper.EXPECT().WrapDataKey(gomock.Any(), testDataKeyID, gomock.Len(crypto.DEKLength)).Return("wrapped-dek", nil)
	mockKeeper.EXPECT().Sign(gomock.Any(), sender.SigningKeyID, wantHashBase64).Return("signature", nil)
	mockBlobs.EXPECT().SaveArtifacts(gomock.Any(), sender.UserID, gomock.Any(), "wrapped-dek").
		Return("/blobs/42_1_a.enc", "/blobs/42_1_a.enc.dek", nil)
	mockOrders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order models.Order) (models.Order, error) {
			savedOrder = order
			order.ID = 7
			return order, nil
		})
	mockAudit.EXPECT().Append(gomock.Any(), gomock.Any()).Return(models.AuditEntry{}, nil)

	resp, err := svc.CreateOrder(context.Background(), sender.UserID, " Bob ", "10.00", " clip.mp4 ", video)

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, []string{"video encrypted", "video hash signed"}, resp.Steps)

	assert.Equal(t, sender.UserID, savedOrder.SenderID)
	assert.Equal(t, "Bob", savedOrder.RecipientName)
	assert.Equal(t, "10.00", savedOrder.Amount)
	assert.Equal(t, "clip.mp4", savedOrder.VideoName)
	assert.Equal(t, wantHashHex, savedOrder.VideoHash)
	assert.Equal(t, "/blobs/42_1_a.enc", savedOrder.EncryptedPath)
	assert.Equal(t, "/blobs/42_1_a.enc.dek", savedOrder.WrappedKeyPath)
	assert.Equal(t, "signature", savedOrder.Signature)
	assert.Equal(t, sender.PublicKey, savedOrder.SenderPublicKey)
	assert.True(t, savedOrder.Active)
	assert.Equal(t, 2*time.Hour, savedOrder.ExpiresAt.Sub(savedOrder.CreatedAt))
}

func TestCreateOrder_SenderNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, _, _, _, _ := newTestOrderSvc(ctrl)

	mockUsers.EXPECT().FindUserByID(gomock.Any(), int64(99)).Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.CreateOrder(context.Background(), 99, "Bob", "10.00", "clip.mp4", []byte("x"))
	assert.ErrorIs(t, err, ErrSenderNotFound)
}

func TestCreateOrder_AdminForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, _, _, _, _ := newTestOrderSvc(ctrl)

	admin := testSender()
	admin.IsAdmin = true
	mockUsers.EXPECT().FindUserByID(gomock.Any(), admin.UserID).Return(admin, nil)

	_, err := svc.CreateOrder(context.Background(), admin.UserID, "Bob", "10.00", "clip.mp4", []byte("x"))
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestCreateOrder_MissingSigningKeys(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.User)
	}{
		{"no signing key id", func(u *models.User) { u.SigningKeyID = "" }},
		{"no public key", func(u *models.User) { u.PublicKey = "" }},
		{"blank signing key id", func(u *models.User) { u.SigningKeyID = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, mockUsers, _, _, _, _ := newTestOrderSvc(ctrl)

			sender := testSender()
			tt.mutate(&sender)
			mockUsers.EXPECT().FindUserByID(gomock.Any(), sender.UserID).Return(sender, nil)

			_, err := svc.CreateOrder(context.Background(), sender.UserID, "Bob", "10.00", "clip.mp4", []byte("x"))
			assert.ErrorIs(t, err, ErrMissingSigningKeys)
		})
	}
}

func TestCreateOrder_EmptyPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, _, _, _, _ := newTestOrderSvc(ctrl)

	sender := testSender()
	mockUsers.EXPECT().FindUserByID(gomock.Any(), sender.UserID).Return(sender, nil)

	_, err := svc.CreateOrder(context.Background(), sender.UserID, "Bob", "10.00", "clip.mp4", nil)
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestCreateOrder_WrapFailure_NoArtifactsWritten(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, _, _, mockKeeper, _ := newTestOrderSvc(ctrl)

	sender := testSender()
	mockUsers.EXPECT().FindUserByID(gomock.Any(), sender.UserID).Return(sender, nil)
	mockKeeper.EXPECT().WrapDataKey(gomock.Any(), testDataKeyID, gomock.Any()).Return("", assert.AnError)

	// No SaveArtifacts or CreateOrder expectations: the controller fails the
	// test if either is reached.
	_, err := svc.CreateOrder(context.Background(), sender.UserID, "Bob", "10.00", "clip.mp4", []byte("x"))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCreateOrder_RecordFailure_AfterArtifactsWritten(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, mockOrders, mockBlobs, mockKeeper, _ := newTestOrderSvc(ctrl)

	sender := testSender()
	mockUsers.EXPECT().FindUserByID(gomock.Any(), sender.UserID).Return(sender, nil)
	mockKeeper.EXPECT().WrapDataKey(gomock.Any(), testDataKeyID, gomock.Any()).Return("wrapped-dek", nil)
	mockKeeper.EXPECT().Sign(gomock.Any(), sender.SigningKeyID, gomock.Any()).Return("signature", nil)
	mockBlobs.EXPECT().SaveArtifacts(gomock.Any(), sender.UserID, gomock.Any(), "wrapped-dek").
		Return("/blobs/a.enc", "/blobs/a.enc.dek", nil)
	mockOrders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(models.Order{}, assert.AnError)

	_, err := svc.CreateOrder(context.Background(), sender.UserID, "Bob", "10.00", "clip.mp4", []byte("x"))
	assert.ErrorIs(t, err, assert.AnError)
}

// validateFixture wires the happy-path mocks for ValidateOrder up to (and
// excluding) signature verification, returning the plaintext it encrypts.
type validateFixture struct {
	order     models.Order
	recipient models.User
	sender    models.User
	video     []byte
	artifact  []byte
	dek       []byte
}

func newValidateFixture(t *testing.T) validateFixture {
	t.Helper()

	envelope := crypto.NewEnvelopeService()
	video := []byte("hello-video")
	dek, err := envelope.GenerateDEK()
	require.NoError(t, err)
	artifact, err := envelope.Seal(video, dek)
	require.NoError(t, err)

	sender := testSender()
	digest := sha256.Sum256(video)

	return validateFixture{
		order: models.Order{
			ID:             7,
			SenderID:       sender.UserID,
			RecipientName:  "Bob",
			EncryptedPath:  "/blobs/a.enc",
			WrappedKeyPath: "/blobs/a.enc.dek",
			VideoHash:      hex.EncodeToString(digest[:]),
			Signature:      "signature",
		},
		recipient: models.User{UserID: 77, Login: "bob", Name: "Bob"},
		sender:    sender,
		video:     video,
		artifact:  artifact,
		dek:       dek,
	}
}

func TestValidateOrder_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, mockOrders, mockBlobs, mockKeeper, mockAudit := newTestOrderSvc(ctrl)
	f := newValidateFixture(t)

	digest := sha256.Sum256(f.video)
	wantDigestBase64 := base64.StdEncoding.EncodeToString(digest[:])

	mockOrders.EXPECT().FindOrderByID(gomock.Any(), f.order.ID).Return(f.order, nil)
	mockUsers.EXPECT().FindUserByID(gomock.Any(), f.recipient.UserID).Return(f.recipient, nil)
	mockBlobs.EXPECT().Scan(gomock.Any(), f.order.EncryptedPath, f.order.WrappedKeyPath).Return(nil)
	mockBlobs.EXPECT().LoadWrappedKey(gomock.Any(), f.order.WrappedKeyPath).Return("wrapped-dek", nil)
	mockKeeper.EXPECT().UnwrapDataKey(gomock.Any(), testDataKeyID, "wrapped-dek").Return(f.dek, nil)
	mockBlobs.EXPECT().LoadEncrypted(gomock.Any(), f.order.EncryptedPath).Return(f.artifact, nil)
	mockUsers.EXPECT().FindUserByID(gomock.Any(), f.sender.UserID).Return(f.sender, nil)
	mockKeeper.EXPECT().Verify(gomock.Any(), f.sender.SigningKeyID, wantDigestBase64, f.order.Signature).Return(true)
	mockAudit.EXPECT().Append(gomock.Any(), gomock.Any()).Return(models.AuditEntry{}, nil)

	resp, err := svc.ValidateOrder(context.Background(), f.order.ID, f.recipient.UserID)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, base64.StdEncoding.EncodeToString(f.video), resp.VideoBase64)
}

func TestValidateOrder_OrderNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, mockOrders, _, _, _ := newTestOrderSvc(ctrl)

	mockOrders.EXPECT().FindOrderByID(gomock.Any(), int64(404)).Return(models.Order{}, store.ErrOrderNotFound)

	_, err := svc.ValidateOrder(context.Background(), 404, 77)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestValidateOrder_NotAuthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, mockOrders, _, _, _ := newTestOrderSvc(ctrl)
	f := newValidateFixture(t)

	eve := models.User{UserID: 66, Login: "eve", Name: "Eve"}

	mockOrders.EXPECT().FindOrderByID(gomock.Any(), f.order.ID).Return(f.order, nil)
	mockUsers.EXPECT().FindUserByID(gomock.Any(), eve.UserID).Return(eve, nil)

	_, err := svc.ValidateOrder(context.Background(), f.order.ID, eve.UserID)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestValidateOrder_RecipientNameTrimmed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, mockOrders, mockBlobs, mockKeeper, mockAudit := newTestOrderSvc(ctrl)
	f := newValidateFixture(t)

	f.order.RecipientName = "  Bob  "
	f.recipient.Name = "Bob "

	mockOrders.EXPECT().FindOrderByID(gomock.Any(), f.order.ID).Return(f.order, nil)
	mockUsers.EXPECT().FindUserByID(gomock.Any(), f.recipient.UserID).Return(f.recipient, nil)
	mockBlobs.EXPECT().Scan(gomock.Any(), f.order.EncryptedPath, f.order.WrappedKeyPath).Return(nil)
	mockBlobs.EXPECT().LoadWrappedKey(gomock.Any(), f.order.WrappedKeyPath).Return("wrapped-dek", nil)
	mockKeeper.EXPECT().UnwrapDataKey(gomock.Any(), testDataKeyID, "wrapped-dek").Return(f.dek, nil)
	mockBlobs.EXPECT().LoadEncrypted(gomock.Any(), f.order.EncryptedPath).Return(f.artifact, nil)
	mockUsers.EXPECT().FindUserByID(gomock.Any(), f.sender.UserID).Return(f.sender, nil)
	mockKeeper.EXPECT().Verify(gomock.Any(), f.sender.SigningKeyID, gomock.Any(), f.order.Signature).Return(true)
	mockAudit.EXPECT().Append(gomock.Any(), gomock.Any()).Return(models.AuditEntry{}, nil)

	_, err := svc.ValidateOrder(context.Background(), f.order.ID, f.recipient.UserID)
	assert.NoError(t, err)
}

func TestValidateOrder_ArtifactMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, mockOrders, mockBlobs, _, _ := newTestOrderSvc(ctrl)
	f := newValidateFixture(t)

	mockOrders.EXPECT().FindOrderByID(gomock.Any(), f.order.ID).Return(f.order, nil)
	mockUsers.EXPECT().FindUserByID(gomock.Any(), f.recipient.UserID).Return(f.recipient, nil)
	mockBlobs.EXPECT().Scan(gomock.Any(), f.order.EncryptedPath, f.order.WrappedKeyPath).Return(store.ErrArtifactMissing)

	_, err := svc.ValidateOrder(context.Background(), f.order.ID, f.recipient.UserID)
	assert.ErrorIs(t, err, ErrArtifactMissing)
}

func TestValidateOrder_ArtifactTooShort(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, mockOrders, mockBlobs, mockKeeper, _ := newTestOrderSvc(ctrl)
	f := newValidateFixture(t)

	mockOrders.EXPECT().FindOrderByID(gomock.Any(), f.order.ID).Return(f.order, nil)
	mockUsers.EXPECT().FindUserByID(gomock.Any(), f.recipient.UserID).Return(f.recipient, nil)
	mockBlobs.EXPECT().Scan(gomock.Any(), f.order.EncryptedPath, f.order.WrappedKeyPath).Return(nil)
	mockBlobs.EXPECT().LoadWrappedKey(gomock.Any(), f.order.WrappedKeyPath).Return("wrapped-dek", nil)
	mockKeeper.EXPECT().UnwrapDataKey(gomock.Any(), testDataKeyID, "wrapped-dek").Return(f.dek, nil)
	mockBlobs.EXPECT().LoadEncrypted(gomock.Any(), f.order.EncryptedPath).Return(make([]byte, crypto.NonceLength), nil)

	_, err := svc.ValidateOrder(context.Background(), f.order.ID, f.recipient.UserID)
	assert.ErrorIs(t, err, ErrCorruptArtifact)
}

func TestValidateOrder_TamperedCiphertext(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, mockOrders, mockBlobs, mockKeeper, _ := newTestOrderSvc(ctrl)
	f := newValidateFixture(t)

	// Flip one byte past the nonce.
	tampered := append([]byte(nil), f.artifact...)
	tampered[crypto.NonceLength] ^= 0xff

	mockOrders.EXPECT().FindOrderByID(gomock.Any(), f.order.ID).Return(f.order, nil)
	mockUsers.EXPECT().FindUserByID(gomock.Any(), f.recipient.UserID).Return(f.recipient, nil)
	mockBlobs.EXPECT().Scan(gomock.Any(), f.order.EncryptedPath, f.order.WrappedKeyPath).Return(nil)
	mockBlobs.EXPECT().LoadWrappedKey(gomock.Any(), f.order.WrappedKeyPath).Return("wrapped-dek", nil)
	mockKeeper.EXPECT().UnwrapDataKey(gomock.Any(), testDataKeyID, "wrapped-dek").Return(f.dek, nil)
	mockBlobs.EXPECT().LoadEncrypted(gomock.Any(), f.order.EncryptedPath).Return(tampered, nil)

	_, err := svc.ValidateOrder(context.Background(), f.order.ID, f.recipient.UserID)
	assert.ErrorIs(t, err, ErrCorruptArtifact)
}

func TestValidateOrder_SignerKeyUnavailable(t *testing.T) {
	tests := []struct {
		name         string
		senderErr    error
		signingKeyID string
	}{
		{"sender lookup fails", store.ErrNoUserWasFound, "user-key-alice"},
		{"sender has no signing key", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, mockUsers, mockOrders, mockBlobs, mockKeeper, _ := newTestOrderSvc(ctrl)
			f := newValidateFixture(t)

			sender := f.sender
			sender.SigningKeyID = tt.signingKeyID

			mockOrders.EXPECT().FindOrderByID(gomock.Any(), f.order.ID).Return(f.order, nil)
			mockUsers.EXPECT().FindUserByID(gomock.Any(), f.recipient.UserID).Return(f.recipient, nil)
			mockBlobs.EXPECT().Scan(gomock.Any(), f.order.EncryptedPath, f.order.WrappedKeyPath).Return(nil)
			mockBlobs.EXPECT().LoadWrappedKey(gomock.Any(), f.order.WrappedKeyPath).Return("wrapped-dek", nil)
			mockKeeper.EXPECT().UnwrapDataKey(gomock.Any(), testDataKeyID, "wrapped-dek").Return(f.dek, nil)
			mockBlobs.EXPECT().LoadEncrypted(gomock.Any(), f.order.EncryptedPath).Return(f.artifact, nil)
			mockUsers.EXPECT().FindUserByID(gomock.Any(), f.sender.UserID).Return(sender, tt.senderErr)

			_, err := svc.ValidateOrder(context.Background(), f.order.ID, f.recipient.UserID)
			assert.ErrorIs(t, err, ErrSignerKeyUnavailable)
		})
	}
}

func TestValidateOrder_TamperedContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, mockOrders, mockBlobs, mockKeeper, _ := newTestOrderSvc(ctrl)
	f := newValidateFixture(t)

	mockOrders.EXPECT().FindOrderByID(gomock.Any(), f.order.ID).Return(f.order, nil)
	mockUsers.EXPECT().FindUserByID(gomock.Any(), f.recipient.UserID).Return(f.recipient, nil)
	mockBlobs.EXPECT().Scan(gomock.Any(), f.order.EncryptedPath, f.order.WrappedKeyPath).Return(nil)
	mockBlobs.EXPECT().LoadWrappedKey(gomock.Any(), f.order.WrappedKeyPath).Return("wrapped-dek", nil)
	mockKeeper.EXPECT().UnwrapDataKey(gomock.Any(), testDataKeyID, "wrapped-dek").Return(f.dek, nil)
	mockBlobs.EXPECT().LoadEncrypted(gomock.Any(), f.order.EncryptedPath).Return(f.artifact, nil)
	mockUsers.EXPECT().FindUserByID(gomock.Any(), f.sender.UserID).Return(f.sender, nil)
	mockKeeper.EXPECT().Verify(gomock.Any(), f.sender.SigningKeyID, gomock.Any(), f.order.Signature).Return(false)

	_, err := svc.ValidateOrder(context.Background(), f.order.ID, f.recipient.UserID)
	assert.ErrorIs(t, err, ErrTamperedContent)
}

func TestOrdersReceived_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, mockOrders, _, _, _ := newTestOrderSvc(ctrl)

	bob := models.User{UserID: 77, Login: "bob", Name: " Bob "}
	now := time.Now()
	orders := []models.Order{
		{ID: 2, VideoName: "second.mp4", VideoHash: "bb", Amount: "5.00", Active: true, ExpiresAt: now.Add(2 * time.Hour), SignedAt: now, CreatedAt: now},
		{ID: 1, VideoName: "first.mp4", VideoHash: "aa", Amount: "10.00", Active: true, ExpiresAt: now.Add(2 * time.Hour), SignedAt: now, CreatedAt: now.Add(-time.Minute)},
	}

	mockUsers.EXPECT().FindUserByID(gomock.Any(), bob.UserID).Return(bob, nil)
	mockOrders.EXPECT().FindOrdersByRecipient(gomock.Any(), "Bob").Return(orders, nil)

	received, err := svc.OrdersReceived(context.Background(), bob.UserID)

	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, int64(2), received[0].ID)
	assert.Equal(t, "second.mp4", received[0].VideoName)
	assert.Equal(t, "5.00", received[0].Amount)
	assert.True(t, received[0].Active)
	assert.Equal(t, now.Format(time.RFC3339), received[0].SignedAt)
}

func TestOrdersReceived_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, _, _, _, _ := newTestOrderSvc(ctrl)

	mockUsers.EXPECT().FindUserByID(gomock.Any(), int64(99)).Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.OrdersReceived(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSenderNotFound)
}

func TestOrdersReceived_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockUsers, mockOrders, _, _, _ := newTestOrderSvc(ctrl)

	bob := models.User{UserID: 77, Login: "bob", Name: "Bob"}
	mockUsers.EXPECT().FindUserByID(gomock.Any(), bob.UserID).Return(bob, nil)
	mockOrders.EXPECT().FindOrdersByRecipient(gomock.Any(), "Bob").Return(nil, nil)

	received, err := svc.OrdersReceived(context.Background(), bob.UserID)

	require.NoError(t, err)
	assert.Empty(t, received)
}
