package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"MoneySmartz/internal/fund"
	"MoneySmartz/internal/sim"
)

var errSessionNotFound = errors.New("session not found")

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// statusFor maps domain errors onto HTTP status codes and stable error codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errSessionNotFound), errors.Is(err, sim.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, sim.ErrInvalidChoice):
		return http.StatusUnprocessableEntity, "invalid_choice"
	case errors.Is(err, sim.ErrValidation):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, sim.ErrAwaitingChoice):
		return http.StatusConflict, "awaiting_choice"
	case errors.Is(err, sim.ErrGameOver):
		return http.StatusConflict, "game_over"
	case errors.Is(err, sim.ErrNoBankAccount):
		return http.StatusConflict, "no_bank_account"
	case errors.Is(err, sim.ErrAlreadyExists):
		return http.StatusConflict, "already_exists"
	case errors.Is(err, sim.ErrNotEligible):
		return http.StatusUnprocessableEntity, "not_eligible"
	case errors.Is(err, sim.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, "insufficient_funds"
	}
	return http.StatusInternalServerError, "internal_error"
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Warn("encode response")
	}
}

// writeError never leaks the text of internal errors.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	body := errorBody{Error: code}
	if status != http.StatusInternalServerError {
		body.Description = err.Error()
	}
	h.writeJSON(w, status, body)
}

// decode reads a JSON body into T. An empty body yields the zero value.
func decode[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return v, fmt.Errorf("%w: decode body: %w", sim.ErrValidation, err)
	}
	return v, nil
}

func parseSource(s string) (fund.Source, error) {
	src, err := fund.ParseSource(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", sim.ErrValidation, err)
	}
	return src, nil
}
