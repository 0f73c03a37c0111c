package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-quiz/internal/quiz"
	"github.com/mind-engage/mindengage-quiz/internal/validate"
)

type incompleteResp struct {
	Error   string                     `json:"error"`
	Reports map[string]validate.Report `json:"reports"`
}

// POST /quizzes
func CreateQuizHandler(svc *quiz.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q quiz.Quiz
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		saved, err := svc.SaveQuiz(r.Context(), q)
		var ie *quiz.IncompleteError
		switch {
		case errors.As(err, &ie):
			writeJSON(w, http.StatusUnprocessableEntity, incompleteResp{Error: ie.Error(), Reports: ie.Reports})
			return
		case errors.Is(err, quiz.ErrNoQuestions):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			serverError(w, log, "save quiz", err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	}
}

// GET /quizzes/{quizID}/submissions?userId=&limit=&offset=
func ListSubmissionsHandler(svc *quiz.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID := strings.TrimSpace(chi.URLParam(r, "quizID"))
		if quizID == "" {
			http.Error(w, "quizID required", http.StatusBadRequest)
			return
		}
		q := r.URL.Query()
		opts := quiz.SubmissionListOpts{QuizID: quizID, UserID: q.Get("userId")}
		var err error
		if v := q.Get("limit"); v != "" {
			if opts.Limit, err = strconv.Atoi(v); err != nil {
				http.Error(w, "bad limit", http.StatusBadRequest)
				return
			}
		}
		if v := q.Get("offset"); v != "" {
			if opts.Offset, err = strconv.Atoi(v); err != nil || opts.Offset < 0 {
				http.Error(w, "bad offset", http.StatusBadRequest)
				return
			}
		}
		if _, err := svc.GetQuiz(r.Context(), quizID); err != nil {
			storeError(w, log, "get quiz", err)
			return
		}
		subs, err := svc.ListSubmissions(r.Context(), opts)
		if err != nil {
			serverError(w, log, "list submissions", err)
			return
		}
		writeJSON(w, http.StatusOK, subs)
	}
}
