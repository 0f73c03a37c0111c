package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	syncx "github.com/mind-engage/mindengage-quiz/internal/sync"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	events *syncx.EventRepo
}

func NewSQLStore(db *sql.DB, driver string, events *syncx.EventRepo) *SQLStore {
	return &SQLStore{db: db, driver: driver, events: events}
}

func (s *SQLStore) PutQuiz(ctx context.Context, q Quiz) error {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	now := q.UpdatedAt
	if now == 0 {
		now = time.Now().Unix()
	}
	if q.CreatedAt == 0 {
		q.CreatedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO quizzes (id,title,questions_json,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, questions_json=EXCLUDED.questions_json, updated_at=EXCLUDED.updated_at`,
		q.ID, q.Title, string(qj), q.CreatedAt, now)
	if err != nil {
		return fmt.Errorf("put quiz %s: %w", q.ID, err)
	}
	if s.events != nil {
		ev := map[string]any{"id": q.ID, "title": q.Title, "questions": len(q.Questions)}
		if err := s.events.AppendTx(ctx, tx, syncx.TypeQuizSaved, q.ID, ev); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	q, err := s.GetQuizAdmin(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	return q.Redacted(), nil
}

func (s *SQLStore) GetQuizAdmin(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,questions_json,created_at,updated_at FROM quizzes WHERE id=$1`, id)
	var q Quiz
	var qjson string
	if err := row.Scan(&q.ID, &q.Title, &qjson, &q.CreatedAt, &q.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &q.Questions); err != nil {
		return Quiz{}, fmt.Errorf("quiz %s: decode questions: %w", id, err)
	}
	return q, nil
}

func (s *SQLStore) PutSubmission(ctx context.Context, sub Submission) error {
	aj, err := json.Marshal(sub.Answers)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exist int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM quizzes WHERE id=$1`, sub.QuizID).Scan(&exist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO submissions (id,quiz_id,user_id,answers_json,total_score,max_score,submitted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		sub.ID, sub.QuizID, sub.UserID, string(aj), sub.TotalScore, sub.MaxScore, sub.SubmittedAt)
	if err != nil {
		return fmt.Errorf("put submission %s: %w", sub.ID, err)
	}
	if s.events != nil {
		ev := map[string]any{
			"id":         sub.ID,
			"quizId":     sub.QuizID,
			"userId":     sub.UserID,
			"totalScore": sub.TotalScore,
			"maxScore":   sub.MaxScore,
		}
		if err := s.events.AppendTx(ctx, tx, syncx.TypeSubmissionRecorded, sub.ID, ev); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const submissionCols = `id,quiz_id,user_id,answers_json,total_score,max_score,submitted_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(r scanner) (Submission, error) {
	var sub Submission
	var aj string
	if err := r.Scan(&sub.ID, &sub.QuizID, &sub.UserID, &aj, &sub.TotalScore, &sub.MaxScore, &sub.SubmittedAt); err != nil {
		return Submission{}, err
	}
	if err := json.Unmarshal([]byte(aj), &sub.Answers); err != nil {
		return Submission{}, fmt.Errorf("submission %s: decode answers: %w", sub.ID, err)
	}
	return sub, nil
}

func (s *SQLStore) GetSubmission(ctx context.Context, id string) (Submission, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+submissionCols+` FROM submissions WHERE id=$1`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	return sub, err
}

func (s *SQLStore) ListSubmissions(ctx context.Context, opts SubmissionListOpts) ([]Submission, error) {
	var where []string
	var args []any
	if opts.QuizID != "" {
		args = append(args, opts.QuizID)
		where = append(where, fmt.Sprintf("quiz_id=$%d", len(args)))
	}
	if opts.UserID != "" {
		args = append(args, opts.UserID)
		where = append(where, fmt.Sprintf("user_id=$%d", len(args)))
	}
	q := `SELECT ` + submissionCols + ` FROM submissions`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += fmt.Sprintf(` ORDER BY submitted_at DESC, id ASC LIMIT %d OFFSET %d`, opts.limit(), max(opts.Offset, 0))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}
