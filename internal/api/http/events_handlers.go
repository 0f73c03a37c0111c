package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authmw "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/rbac"
	syncx "github.com/mind-engage/mindengage-quiz/internal/sync"
)

type eventsResp struct {
	Events []syncx.Event `json:"events"`
	Next   int64         `json:"next"` // pass as ?after= to continue
}

// GET /events?after=0&limit=100
//
// Replication feed of saved quizzes and recorded submissions, oldest first.
func ListEventsHandler(events *syncx.EventRepo, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var after int64
		if v := q.Get("after"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				http.Error(w, "bad after", http.StatusBadRequest)
				return
			}
			after = n
		}
		limit, _ := strconv.Atoi(q.Get("limit"))

		evs, err := events.Since(r.Context(), after, limit)
		if err != nil {
			serverError(w, log, "list events", err)
			return
		}
		resp := eventsResp{Events: evs, Next: after}
		if resp.Events == nil {
			resp.Events = []syncx.Event{}
		}
		if n := len(evs); n > 0 {
			resp.Next = evs[n-1].Seq
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func MountEvents(r chi.Router, events *syncx.EventRepo, authSvc *authmw.AuthService, checker *rbac.Checker, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	r.With(authmw.JWTMiddleware(authSvc), checker.Require(rbac.PermEventsRead)).
		Get("/events", ListEventsHandler(events, log))
}
