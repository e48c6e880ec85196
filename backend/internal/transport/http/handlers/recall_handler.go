package handlers

import (
	"net/http"

	authsvc "github.com/datemarket/app/backend/internal/services/auth"
	ledgersvc "github.com/datemarket/app/backend/internal/services/ledger"
	"github.com/datemarket/app/backend/internal/transport/http/dto"
	httperrors "github.com/datemarket/app/backend/internal/transport/http/errors"
)

type RecallHandler struct {
	service *ledgersvc.Service
}

func NewRecallHandler(service *ledgersvc.Service) *RecallHandler {
	return &RecallHandler{service: service}
}

func (h *RecallHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LEDGER_SERVICE_UNAVAILABLE", "ledger service is unavailable")
		return
	}

	result, err := h.service.Recall(r.Context(), identity.UserID)
	if err != nil {
		writeLedgerError(w, err, "failed to process recall")
		return
	}

	resp := dto.RecallResponse{
		OK:             true,
		Recalled:       result.Recalled,
		MatchDissolved: result.MatchDissolved,
	}
	if result.Recalled {
		target := result.TargetID
		resp.TargetID = &target
	}
	httperrors.Write(w, http.StatusOK, resp)
}
