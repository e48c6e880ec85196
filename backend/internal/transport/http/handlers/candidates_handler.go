package handlers

import (
	"net/http"

	authsvc "github.com/datemarket/app/backend/internal/services/auth"
	ledgersvc "github.com/datemarket/app/backend/internal/services/ledger"
	"github.com/datemarket/app/backend/internal/transport/http/dto"
	httperrors "github.com/datemarket/app/backend/internal/transport/http/errors"
)

const maxUndecidedCandidates = 500

type CandidatesHandler struct {
	service *ledgersvc.Service
}

func NewCandidatesHandler(service *ledgersvc.Service) *CandidatesHandler {
	return &CandidatesHandler{service: service}
}

// Undecided filters a feed page down to profiles the caller has not swiped.
func (h *CandidatesHandler) Undecided(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LEDGER_SERVICE_UNAVAILABLE", "ledger service is unavailable")
		return
	}

	var req dto.UndecidedCandidatesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if len(req.CandidateIDs) > maxUndecidedCandidates {
		writeBadRequest(w, "VALIDATION_ERROR", "too many candidate_ids")
		return
	}

	items, err := h.service.FilterUndecided(r.Context(), identity.UserID, req.CandidateIDs)
	if err != nil {
		writeLedgerError(w, err, "failed to filter candidates")
		return
	}

	retryAfter, err := h.service.SwipeCooldown(r.Context(), identity.UserID)
	if err != nil {
		writeLedgerError(w, err, "failed to read swipe cooldown")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UndecidedCandidatesResponse{
		Items:         items,
		RetryAfterSec: retryAfter,
	})
}
