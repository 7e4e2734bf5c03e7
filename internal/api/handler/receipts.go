package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/masego-dev/clubctl/internal/api/middleware"
	"github.com/masego-dev/clubctl/internal/api/response"
	"github.com/masego-dev/clubctl/internal/model"
	"github.com/masego-dev/clubctl/internal/services/account"
	"github.com/masego-dev/clubctl/internal/services/receipt"
)

// ReceiptsHandler handles receipt upload, listing, verification, and the QR
// pass endpoints
type ReceiptsHandler struct {
	accounts *account.Service
	receipts *receipt.Service
}

// NewReceiptsHandler creates a new receipts handler
func NewReceiptsHandler(accounts *account.Service, receipts *receipt.Service) *ReceiptsHandler {
	return &ReceiptsHandler{
		accounts: accounts,
		receipts: receipts,
	}
}

// Upload handles POST /users/receipts/upload/ (multipart)
// Receipts are uploaded by team admins or umpires on behalf of players.
func (h *ReceiptsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	acct := middleware.MustGetAccount(r.Context())
	if !acct.IsClubAdmin && !acct.IsUmpire && (acct.Player == nil || !acct.Player.IsTeamAdmin) {
		WriteError(w, NewForbiddenError())
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteError(w, NewInvalidRequestError("invalid multipart body"))
		return
	}

	file, err := formAttachment(r, "file")
	if err != nil {
		WriteError(w, err)
		return
	}
	if file == nil {
		WriteError(w, NewValidationError(map[string]string{"file": "No file was submitted."}))
		return
	}

	playerID := model.UserID(r.FormValue("player"))
	if playerID == "" {
		WriteError(w, NewValidationError(map[string]string{"player": "This field is required."}))
		return
	}

	stored, err := h.receipts.Upload(r.Context(), acct.ID, playerID, file, r.FormValue("note"))
	if err != nil {
		WriteError(w, err)
		return
	}

	views, err := h.receiptViews(r.Context(), []*model.StoredReceipt{stored})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, views[0])
}

// Verify handles POST /users/receipts/verify/{id}/
func (h *ReceiptsHandler) Verify(w http.ResponseWriter, r *http.Request) {
	acct := middleware.MustGetAccount(r.Context())
	if !acct.IsClubAdmin {
		WriteError(w, NewForbiddenError())
		return
	}

	id := model.ReceiptID(mux.Vars(r)["id"])
	if _, err := h.receipts.Verify(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Confirmation{Message: "Receipt verified"})
}

// All handles GET /users/receipts/all/
func (h *ReceiptsHandler) All(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.receipts.All)
}

// Unverified handles GET /users/receipts/unverified/
func (h *ReceiptsHandler) Unverified(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.receipts.Unverified)
}

func (h *ReceiptsHandler) list(w http.ResponseWriter, r *http.Request, fetch func(context.Context) ([]*model.StoredReceipt, error)) {
	acct := middleware.MustGetAccount(r.Context())
	if !acct.IsClubAdmin {
		WriteError(w, NewForbiddenError())
		return
	}

	stored, err := fetch(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	views, err := h.receiptViews(r.Context(), stored)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, views)
}

// QRCode handles GET /users/player/qr-code/
// Reports null until a receipt for the player has been verified.
func (h *ReceiptsHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	acct := middleware.MustGetAccount(r.Context())
	if acct.Player == nil {
		WriteError(w, model.ErrNoPlayerProfile)
		return
	}

	blobID, err := h.receipts.QRBlobID(r.Context(), acct.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	var body response.QRCode
	if blobID != "" {
		url := response.MediaURL(blobID)
		body.URL = &url
	}
	response.JSON(w, http.StatusOK, body)
}

// Scan handles POST /users/scan-qr/ (multipart)
func (h *ReceiptsHandler) Scan(w http.ResponseWriter, r *http.Request) {
	acct := middleware.MustGetAccount(r.Context())
	if !acct.IsUmpire && !acct.IsClubAdmin {
		WriteError(w, NewForbiddenError())
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteError(w, NewInvalidRequestError("invalid multipart body"))
		return
	}

	image, err := formAttachment(r, "qr_code")
	if err != nil {
		WriteError(w, err)
		return
	}
	if image == nil {
		WriteError(w, NewValidationError(map[string]string{"qr_code": "No file was submitted."}))
		return
	}

	player, paid, err := h.receipts.Scan(r.Context(), image)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ScanResultFromAccount(player, paid))
}

// receiptViews enriches stored receipts with the names and team placement of
// the accounts they reference
func (h *ReceiptsHandler) receiptViews(ctx context.Context, stored []*model.StoredReceipt) ([]model.Receipt, error) {
	cache := map[model.UserID]*model.Account{}
	lookup := func(id model.UserID) *model.Account {
		if acct, ok := cache[id]; ok {
			return acct
		}
		acct, err := h.accounts.Get(ctx, id)
		if err != nil {
			acct = nil
		}
		cache[id] = acct
		return acct
	}

	views := make([]model.Receipt, 0, len(stored))
	for _, receipt := range stored {
		views = append(views, response.ReceiptFromStored(receipt, lookup(receipt.PlayerID), lookup(receipt.UploadedByID)))
	}
	return views, nil
}
