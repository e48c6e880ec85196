package handlers

import (
	"net/http"

	authsvc "github.com/datemarket/app/backend/internal/services/auth"
	ledgersvc "github.com/datemarket/app/backend/internal/services/ledger"
	"github.com/datemarket/app/backend/internal/transport/http/dto"
	httperrors "github.com/datemarket/app/backend/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *ledgersvc.Service
}

func NewMatchesHandler(service *ledgersvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

func (h *MatchesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LEDGER_SERVICE_UNAVAILABLE", "ledger service is unavailable")
		return
	}

	items, err := h.service.ListMatches(r.Context(), identity.UserID)
	if err != nil {
		writeLedgerError(w, err, "failed to load matches")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UserIDsResponse{Items: items})
}
