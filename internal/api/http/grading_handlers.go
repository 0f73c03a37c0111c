package http

import (
	"encoding/json"
	"math/rand"
	"net/http"

	"github.com/mind-engage/mindengage-quiz/internal/dropdown"
	"github.com/mind-engage/mindengage-quiz/internal/ordering"
	"github.com/mind-engage/mindengage-quiz/internal/question"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
	"github.com/mind-engage/mindengage-quiz/internal/validate"

	authmw "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
)

// POST /questions/validate
func ValidateQuestionHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q question.Question
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, svc.ValidateQuestion(q))
	}
}

type previewResp struct {
	Question question.Question  `json:"question"`
	Prompt   string             `json:"prompt"`
	Report   validate.Report    `json:"report"`
	Dropdown *dropdown.Rendered `json:"dropdown,omitempty"`
	Order    []string           `json:"order,omitempty"`
}

// POST /questions/preview?lang=sl
//
// Shows a question the way a student would first see it: answer key removed,
// dropdown template split into segments, ordering items shuffled.
func PreviewQuestionHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q question.Question
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		lang := r.URL.Query().Get("lang")
		safe := q.Redacted()
		resp := previewResp{
			Question: safe,
			Prompt:   q.Prompt(lang),
			Report:   svc.ValidateQuestion(q),
		}
		if rendered, ok := dropdown.RenderQuestion(safe, lang, nil); ok {
			resp.Dropdown = &rendered
		}
		if p, ok := q.OrderingData(); ok {
			pr := ordering.New(p)
			seed := ordering.SeedFor(authmw.SubjectFromContext(r.Context()), q.ID)
			pr.Shuffle(rand.New(rand.NewSource(seed)))
			resp.Order = pr.Order()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
