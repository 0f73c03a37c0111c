package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-quiz/internal/answer"
	authmw "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
	"github.com/mind-engage/mindengage-quiz/internal/rbac"
)

// GET /quizzes/{quizID}
//
// Authors (quiz:create) get the full quiz; everyone else the student-safe view.
func GetQuizHandler(svc *quiz.Service, checker *rbac.Checker, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID := strings.TrimSpace(chi.URLParam(r, "quizID"))
		get := svc.GetQuiz
		if checker.Can(r.Context(), rbac.PermQuizCreate) {
			get = svc.GetQuizAdmin
		}
		q, err := get(r.Context(), quizID)
		if err != nil {
			storeError(w, log, "get quiz", err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

type submitReq struct {
	Answers []answer.Answer `json:"answers"`
}

// POST /quizzes/{quizID}/submissions
func SubmitHandler(svc *quiz.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID := strings.TrimSpace(chi.URLParam(r, "quizID"))
		var req submitReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		sub, err := svc.Submit(r.Context(), quizID, authmw.SubjectFromContext(r.Context()), req.Answers)
		if err != nil {
			storeError(w, log, "submit", err)
			return
		}
		writeJSON(w, http.StatusCreated, sub)
	}
}

// GET /submissions/{submissionID}
func GetSubmissionHandler(svc *quiz.Service, checker *rbac.Checker, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "submissionID"))
		sub, err := svc.GetSubmission(r.Context(), id)
		if err != nil {
			storeError(w, log, "get submission", err)
			return
		}
		own := sub.UserID == authmw.SubjectFromContext(r.Context())
		if !checker.Can(r.Context(), rbac.PermSubmissionViewAll) &&
			!(own && checker.Can(r.Context(), rbac.PermSubmissionViewOwn)) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}
