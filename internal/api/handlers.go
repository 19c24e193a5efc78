package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/quizzical/internal/errors"
	"github.com/vytor/quizzical/internal/logger"
	"github.com/vytor/quizzical/internal/models"
	"github.com/vytor/quizzical/internal/services"
)

// BankInfo describes the loaded question bank.
type BankInfo interface {
	Len() int
	Summary() models.BankSummary
}

// StorageChecker reports whether storage is reachable.
type StorageChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	QuizService    services.QuizService
	HistoryService services.HistoryService
	Bank           BankInfo
	Storage        StorageChecker
	Now            func() time.Time
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewValidationError("body", err.Error())
	}
	return nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(name, fmt.Sprintf("%q is not an integer", raw))
	}
	return n, nil
}

// boolQuery reads an optional boolean query parameter.
func boolQuery(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.NewValidationError(name, fmt.Sprintf("%q is not a boolean", raw))
	}
	return b, nil
}
