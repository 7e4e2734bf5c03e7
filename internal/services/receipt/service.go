// Package receipt implements payment receipt uploads, verification, and the
// QR passes minted for verified players.
package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/masego-dev/clubctl/internal/dependencies/clock"
	"github.com/masego-dev/clubctl/internal/model"
	"github.com/masego-dev/clubctl/internal/storage"
)

// Service handles receipt management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new receipt service
func New(storage storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		logger:  logger,
	}
}

// qrPayload is the document embedded in a player's QR pass. Scanning decodes
// it to recover the player identity.
type qrPayload struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	TeamName string `json:"team_name"`
}

// Upload stores a receipt file against a player on behalf of the uploader
func (s *Service) Upload(ctx context.Context, uploadedBy, playerID model.UserID, file *model.Attachment, note string) (*model.StoredReceipt, error) {
	player, err := s.storage.GetAccount(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.Player == nil {
		return nil, model.ErrNoPlayerProfile
	}

	blob := &model.Blob{
		ID:          "b_" + uuid.NewString(),
		ContentType: file.ContentType,
		Filename:    file.Filename,
		Data:        file.Data,
	}
	if err := s.storage.SaveBlob(ctx, blob); err != nil {
		return nil, err
	}

	receipt := &model.StoredReceipt{
		ID:           model.ReceiptID("r_" + uuid.NewString()),
		PlayerID:     playerID,
		UploadedByID: uploadedBy,
		FileBlobID:   blob.ID,
		Note:         note,
		UploadedAt:   s.clock.Now(),
	}
	if err := s.storage.SaveReceipt(ctx, receipt); err != nil {
		return nil, err
	}

	s.logger.Info("receipt uploaded",
		slog.String("receipt_id", string(receipt.ID)),
		slog.String("player_id", string(playerID)),
	)
	return receipt, nil
}

// Verify marks a receipt verified and mints the player's QR pass
func (s *Service) Verify(ctx context.Context, id model.ReceiptID) (*model.StoredReceipt, error) {
	receipt, err := s.storage.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt.Verified {
		return receipt, nil
	}

	player, err := s.storage.GetAccount(ctx, receipt.PlayerID)
	if err != nil {
		return nil, err
	}

	payload := qrPayload{
		UserID: string(player.ID),
		Name:   player.FullName(),
	}
	if player.Player != nil {
		payload.TeamName = player.Player.TeamName
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	blob := &model.Blob{
		ID:          "b_" + uuid.NewString(),
		ContentType: "application/json",
		Filename:    "qr-pass.json",
		Data:        data,
	}
	if err := s.storage.SaveBlob(ctx, blob); err != nil {
		return nil, err
	}

	receipt.Verified = true
	receipt.QRBlobID = blob.ID
	if err := s.storage.SaveReceipt(ctx, receipt); err != nil {
		return nil, err
	}

	s.logger.Info("receipt verified",
		slog.String("receipt_id", string(receipt.ID)),
		slog.String("player_id", string(receipt.PlayerID)),
	)
	return receipt, nil
}

// All returns every receipt in upload order
func (s *Service) All(ctx context.Context) ([]*model.StoredReceipt, error) {
	return s.storage.ListReceipts(ctx)
}

// Unverified returns the receipts still awaiting verification
func (s *Service) Unverified(ctx context.Context) ([]*model.StoredReceipt, error) {
	receipts, err := s.storage.ListReceipts(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]*model.StoredReceipt, 0, len(receipts))
	for _, r := range receipts {
		if !r.Verified {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

// QRBlobID returns the blob backing the player's QR pass, or "" when no
// verified receipt exists for them yet
func (s *Service) QRBlobID(ctx context.Context, playerID model.UserID) (string, error) {
	receipts, err := s.storage.ListReceipts(ctx)
	if err != nil {
		return "", err
	}

	blobID := ""
	for _, r := range receipts {
		if r.PlayerID == playerID && r.Verified && r.QRBlobID != "" {
			blobID = r.QRBlobID
		}
	}
	return blobID, nil
}

// Scan decodes an uploaded QR pass and reports the player's payment status
func (s *Service) Scan(ctx context.Context, image *model.Attachment) (*model.Account, bool, error) {
	var payload qrPayload
	if err := json.Unmarshal(image.Data, &payload); err != nil || payload.UserID == "" {
		return nil, false, model.ErrUnreadableQR
	}

	account, err := s.storage.GetAccount(ctx, model.UserID(payload.UserID))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, false, model.ErrUnreadableQR
		}
		return nil, false, err
	}

	paid := false
	receipts, err := s.storage.ListReceipts(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, r := range receipts {
		if r.PlayerID == account.ID && r.Verified {
			paid = true
			break
		}
	}
	return account, paid, nil
}
