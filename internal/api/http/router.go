package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authmw "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
	"github.com/mind-engage/mindengage-quiz/internal/rbac"
)

type mountConfig struct {
	submitLimit *RateLimiter
}

type MountOption func(*mountConfig)

// WithSubmitLimit throttles submission creation per user.
func WithSubmitLimit(l *RateLimiter) MountOption {
	return func(c *mountConfig) { c.submitLimit = l }
}

// Mount registers the protected quiz API on r (JWT → role in context → RBAC).
func Mount(r chi.Router, svc *quiz.Service, authSvc *authmw.AuthService, checker *rbac.Checker, log *zap.Logger, opts ...MountOption) {
	if log == nil {
		log = zap.NewNop()
	}
	var mc mountConfig
	for _, o := range opts {
		o(&mc)
	}
	submit := []func(http.Handler) http.Handler{checker.Require(rbac.PermSubmissionCreate)}
	if mc.submitLimit != nil {
		submit = append(submit, mc.submitLimit.Middleware)
	}
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		pr.With(checker.Require(rbac.PermQuestionValidate)).
			Post("/questions/validate", ValidateQuestionHandler(svc))
		pr.With(checker.Require(rbac.PermQuestionValidate)).
			Post("/questions/preview", PreviewQuestionHandler(svc))

		pr.With(checker.Require(rbac.PermQuizCreate)).
			Post("/quizzes", CreateQuizHandler(svc, log))
		pr.With(checker.Require(rbac.PermQuizView)).
			Get("/quizzes/{quizID}", GetQuizHandler(svc, checker, log))

		pr.With(submit...).
			Post("/quizzes/{quizID}/submissions", SubmitHandler(svc, log))
		pr.With(checker.Require(rbac.PermSubmissionViewAll)).
			Get("/quizzes/{quizID}/submissions", ListSubmissionsHandler(svc, log))
		// owner check happens in the handler once the submission is loaded
		pr.With(checker.RequireAny(rbac.PermSubmissionViewOwn, rbac.PermSubmissionViewAll)).
			Get("/submissions/{submissionID}", GetSubmissionHandler(svc, checker, log))
	})
}
