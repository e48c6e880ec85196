package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	ledgersvc "github.com/datemarket/app/backend/internal/services/ledger"
	httperrors "github.com/datemarket/app/backend/internal/transport/http/errors"
)

// Persistence failures are surfaced as retryable; the ledger itself never retries.
const tempUnavailableRetrySec = 5

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}

func writeTempUnavailable(w http.ResponseWriter, message string) {
	httperrors.Write(w, http.StatusServiceUnavailable, httperrors.RateLimitError{
		Code:          "TEMP_UNAVAILABLE",
		Message:       message,
		RetryAfterSec: tempUnavailableRetrySec,
	})
}

// writeLedgerError maps ledger failures onto the API error body.
func writeLedgerError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, ledgersvc.ErrInvalidOperation) {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid ledger operation")
		return
	}
	if tf, ok := ledgersvc.IsTooFast(err); ok {
		httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
			Code:          "TOO_FAST",
			Message:       "too many swipes, slow down",
			RetryAfterSec: tf.RetryAfter(),
		})
		return
	}
	if _, ok := ledgersvc.IsPersistence(err); ok {
		writeTempUnavailable(w, "storage is temporarily unavailable, try again")
		return
	}
	writeInternal(w, "INTERNAL_ERROR", fallback)
}
