package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	analyticsvc "github.com/datemarket/app/backend/internal/services/analytics"
	authsvc "github.com/datemarket/app/backend/internal/services/auth"
	"github.com/datemarket/app/backend/internal/transport/http/dto"
	httperrors "github.com/datemarket/app/backend/internal/transport/http/errors"
)

type EventsHandler struct {
	service *analyticsvc.Service
}

func NewEventsHandler(service *analyticsvc.Service) *EventsHandler {
	return &EventsHandler{service: service}
}

func (h *EventsHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "EVENTS_SERVICE_UNAVAILABLE", "events service is unavailable")
		return
	}

	var req dto.EventsBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	input := make([]analyticsvc.BatchEvent, 0, len(req.Events))
	for _, item := range req.Events {
		input = append(input, analyticsvc.BatchEvent{
			Name:  item.Name,
			TS:    item.TS,
			Props: item.Props,
		})
	}

	var userID *uuid.UUID
	if identity, ok := authsvc.IdentityFromContext(r.Context()); ok && identity.UserID != uuid.Nil {
		uid := identity.UserID
		userID = &uid
	}

	if err := h.service.IngestBatch(r.Context(), userID, input); err != nil {
		switch {
		case errors.Is(err, analyticsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid events batch: each event needs a non-empty name and the batch must fit the size limit")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to ingest events")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.EventsBatchResponse{
		OK:       true,
		Accepted: len(input),
	})
}
