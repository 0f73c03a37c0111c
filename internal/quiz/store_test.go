package quiz

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-quiz/internal/answer"
	"github.com/mind-engage/mindengage-quiz/internal/db"
	"github.com/mind-engage/mindengage-quiz/internal/grading"
	"github.com/mind-engage/mindengage-quiz/internal/question"
	syncx "github.com/mind-engage/mindengage-quiz/internal/sync"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := db.Open(context.Background(), db.DriverSQLite, "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sampleQuiz(id string) Quiz {
	return Quiz{
		ID:    id,
		Title: "Basics",
		Questions: []question.Question{
			question.NewSingleChoice("sc", "2+2?").Option("a", "4", true).Option("b", "5", false).Build(),
			question.NewOrdering("or", "Sort", "Smallest first").
				Item("one", "1", 1).Item("two", "2", 2).Item("three", "3", 3).Build(),
		},
	}
}

func stores(t *testing.T) map[string]Store {
	conn := openTestDB(t)
	return map[string]Store{
		"memory": NewInMemoryStore(),
		"sql":    NewSQLStore(conn, "sqlite", syncx.NewEventRepo(conn, "")),
	}
}

func TestStore_QuizRoundTrip(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := st.GetQuizAdmin(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			in := sampleQuiz("qz")
			in.UpdatedAt = 100
			require.NoError(t, st.PutQuiz(ctx, in))

			full, err := st.GetQuizAdmin(ctx, "qz")
			require.NoError(t, err)
			assert.Equal(t, in.Questions, full.Questions)
			assert.NotZero(t, full.CreatedAt)

			safe, err := st.GetQuiz(ctx, "qz")
			require.NoError(t, err)
			for _, o := range safe.Questions[0].Options() {
				assert.False(t, o.IsCorrect)
			}
			p, _ := safe.Questions[1].OrderingData()
			for _, it := range p.Items {
				assert.Zero(t, it.CorrectPosition)
			}

			// upsert keeps the creation time
			in.Title = "Renamed"
			in.UpdatedAt = 200
			require.NoError(t, st.PutQuiz(ctx, in))
			again, err := st.GetQuizAdmin(ctx, "qz")
			require.NoError(t, err)
			assert.Equal(t, "Renamed", again.Title)
			assert.Equal(t, full.CreatedAt, again.CreatedAt)
		})
	}
}

func TestStore_StoredQuizIsDetached(t *testing.T) {
	st := NewInMemoryStore()
	ctx := context.Background()
	in := sampleQuiz("qz")
	require.NoError(t, st.PutQuiz(ctx, in))

	p, _ := in.Questions[1].OrderingData()
	p.Items[0].CorrectPosition = 9

	got, err := st.GetQuizAdmin(ctx, "qz")
	require.NoError(t, err)
	gp, _ := got.Questions[1].OrderingData()
	assert.Equal(t, 1, gp.Items[0].CorrectPosition)
}

func TestStore_Submissions(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			q := sampleQuiz("qz")
			require.NoError(t, st.PutQuiz(ctx, q))

			sum := grading.Score(grading.NewDefaultGrader(), q.Questions, []answer.Answer{
				{QuestionID: "sc", Response: answer.SingleChoice{OptionID: "a"}},
				{QuestionID: "or", Response: answer.Ordering{Order: []string{"two", "one", "three"}}},
			})
			mk := func(id, user string, at int64) Submission {
				return Submission{ID: id, QuizID: "qz", UserID: user, Answers: sum.Results,
					TotalScore: sum.TotalScore, MaxScore: sum.MaxScore, SubmittedAt: at}
			}
			require.NoError(t, st.PutSubmission(ctx, mk("s1", "u1", 10)))
			require.NoError(t, st.PutSubmission(ctx, mk("s2", "u2", 20)))
			require.NoError(t, st.PutSubmission(ctx, mk("s3", "u1", 30)))

			err := st.PutSubmission(ctx, Submission{ID: "x", QuizID: "nope", UserID: "u1"})
			assert.ErrorIs(t, err, ErrNotFound)

			got, err := st.GetSubmission(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, mk("s1", "u1", 10), got)

			_, err = st.GetSubmission(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			all, err := st.ListSubmissions(ctx, SubmissionListOpts{QuizID: "qz"})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "s3", all[0].ID)

			mine, err := st.ListSubmissions(ctx, SubmissionListOpts{QuizID: "qz", UserID: "u1", Limit: 1, Offset: 1})
			require.NoError(t, err)
			require.Len(t, mine, 1)
			assert.Equal(t, "s1", mine[0].ID)

			none, err := st.ListSubmissions(ctx, SubmissionListOpts{QuizID: "other"})
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestSQLStore_AppendsEvents(t *testing.T) {
	conn := openTestDB(t)
	events := syncx.NewEventRepo(conn, "site-a")
	st := NewSQLStore(conn, "sqlite", events)
	ctx := context.Background()

	require.NoError(t, st.PutQuiz(ctx, sampleQuiz("qz")))
	require.NoError(t, st.PutSubmission(ctx, Submission{ID: "s1", QuizID: "qz", UserID: "u1", SubmittedAt: 1}))

	got, err := events.Since(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, syncx.TypeQuizSaved, got[0].Type)
	assert.Equal(t, syncx.TypeSubmissionRecorded, got[1].Type)
	assert.Equal(t, "s1", got[1].Key)
	assert.Equal(t, "site-a", got[1].SiteID)
	assert.Contains(t, got[1].DataJSON, `"quizId":"qz"`)
}
