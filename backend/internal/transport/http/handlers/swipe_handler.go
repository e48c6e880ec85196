package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/datemarket/app/backend/internal/domain/enums"
	authsvc "github.com/datemarket/app/backend/internal/services/auth"
	ledgersvc "github.com/datemarket/app/backend/internal/services/ledger"
	"github.com/datemarket/app/backend/internal/transport/http/dto"
	httperrors "github.com/datemarket/app/backend/internal/transport/http/errors"
)

type SwipeHandler struct {
	service *ledgersvc.Service
}

func NewSwipeHandler(service *ledgersvc.Service) *SwipeHandler {
	return &SwipeHandler{service: service}
}

func (h *SwipeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LEDGER_SERVICE_UNAVAILABLE", "ledger service is unavailable")
		return
	}

	var req dto.SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	raw := req.Direction
	if strings.TrimSpace(raw) == "" {
		raw = req.Action
	}
	if req.TargetID == uuid.Nil || strings.TrimSpace(raw) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id and direction are required")
		return
	}

	direction, isSuper, err := enums.ParseSwipeDirection(raw)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "unsupported direction")
		return
	}

	var result ledgersvc.SwipeResult
	if isSuper {
		result, err = h.service.SuperLike(r.Context(), identity.UserID, req.TargetID)
	} else {
		result, err = h.service.RecordSwipe(r.Context(), identity.UserID, req.TargetID, direction)
	}
	if err != nil {
		writeLedgerError(w, err, "failed to process swipe")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SwipeResponse{OK: true, IsMatch: result.IsMatch})
}

func (h *SwipeHandler) SuperLike(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LEDGER_SERVICE_UNAVAILABLE", "ledger service is unavailable")
		return
	}

	var req dto.SuperLikeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.TargetID == uuid.Nil {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id is required")
		return
	}

	result, err := h.service.SuperLike(r.Context(), identity.UserID, req.TargetID)
	if err != nil {
		writeLedgerError(w, err, "failed to process superlike")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SwipeResponse{OK: true, IsMatch: result.IsMatch})
}

// List returns the caller's current swipe targets for ?direction=left|right.
func (h *SwipeHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LEDGER_SERVICE_UNAVAILABLE", "ledger service is unavailable")
		return
	}

	direction, isSuper, err := enums.ParseSwipeDirection(r.URL.Query().Get("direction"))
	if err != nil || isSuper {
		writeBadRequest(w, "VALIDATION_ERROR", "direction must be left or right")
		return
	}

	items, err := h.service.ListSwipedTargets(r.Context(), identity.UserID, direction)
	if err != nil {
		writeLedgerError(w, err, "failed to load swipes")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UserIDsResponse{Items: items})
}
