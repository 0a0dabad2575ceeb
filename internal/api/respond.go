package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Ritpra93/wanderlust/internal/auth"
	"github.com/Ritpra93/wanderlust/internal/occ"
	"github.com/Ritpra93/wanderlust/internal/service"
	"github.com/Ritpra93/wanderlust/internal/split"
	"github.com/Ritpra93/wanderlust/internal/storage"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondError maps domain errors onto the HTTP error contract:
// 422 {"errors":[{field,message}]} for validation, 409 with both
// version stamps for edit conflicts, and {"error": msg} otherwise.
func respondError(w http.ResponseWriter, err error) {
	var verrs split.ValidationErrors
	if errors.As(err, &verrs) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verrs})
		return
	}

	var conflict *occ.Conflict
	if errors.As(err, &conflict) {
		respondJSON(w, http.StatusConflict, conflict)
		return
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrOwnerOnly):
		respondMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		respondMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrEmailExists):
		respondMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrWeakPassword):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"errors": split.ValidationErrors{{Field: "password", Message: err.Error()}},
		})
	default:
		slog.Error("Unhandled error", "error", err)
		respondMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
