package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// storeError maps quiz.ErrNotFound to 404 and anything else to 500.
func storeError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	if errors.Is(err, quiz.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	serverError(w, log, op, err)
}

func serverError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	log.Error(op+" failed", zap.Error(err))
	http.Error(w, op+" failed", http.StatusInternalServerError)
}
