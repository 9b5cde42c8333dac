package store

import (
	"context"
	"fmt"
	"time"

	"github.com/w0uf/rangetrainer/internal/ranges"
)

// SessionRecord is the stored summary of one quiz session.
type SessionRecord struct {
	ID        string     `json:"id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Total     int        `json:"total"`
	Correct   int        `json:"correct"`
}

// AnswerRecord is one stored answer within a session.
type AnswerRecord struct {
	SessionID     string        `json:"session_id"`
	SituationID   int64         `json:"situation_id"`
	Hand          string        `json:"hand"`
	Level         int           `json:"level"`
	Given         ranges.Action `json:"given"`
	CorrectAnswer ranges.Action `json:"correct_answer"`
	IsCorrect     bool          `json:"is_correct"`
	AnsweredAt    time.Time     `json:"answered_at"`
}

func toMillis(t time.Time) int64    { return t.UTC().UnixMilli() }
func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// CreateSession records the start of a quiz session.
func (s *Store) CreateSession(ctx context.Context, id string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quiz_sessions (id, started_at) VALUES (?, ?)`, id, toMillis(startedAt))
	if err != nil {
		return fmt.Errorf("create session %s: %w", id, err)
	}
	return nil
}

// RecordAnswer stores one answer and bumps the session counters.
func (s *Store) RecordAnswer(ctx context.Context, a AnswerRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO quiz_answers (session_id, situation_id, hand, level, given, correct_answer, is_correct, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.SessionID, a.SituationID, a.Hand, a.Level,
		string(a.Given), string(a.CorrectAnswer), a.IsCorrect, toMillis(a.AnsweredAt)); err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE quiz_sessions SET total = total + 1, correct = correct + ? WHERE id = ?`,
		boolInt(a.IsCorrect), a.SessionID); err != nil {
		return fmt.Errorf("update session counters: %w", err)
	}
	return tx.Commit()
}

// FinishSession stamps the session end time.
func (s *Store) FinishSession(ctx context.Context, id string, endedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE quiz_sessions SET ended_at = ? WHERE id = ?`, toMillis(endedAt), id)
	if err != nil {
		return fmt.Errorf("finish session %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish session %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("finish session %s: not found", id)
	}
	return nil
}

// RecentSessions returns the most recent sessions, newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, ended_at, total, correct
		FROM quiz_sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var started int64
		var ended *int64
		if err := rows.Scan(&rec.ID, &started, &ended, &rec.Total, &rec.Correct); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt = fromMillis(started)
		if ended != nil {
			t := fromMillis(*ended)
			rec.EndedAt = &t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SessionAnswers returns every answer of one session in the order they
// were given.
func (s *Store) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, situation_id, hand, level, given, correct_answer, is_correct, answered_at
		FROM quiz_answers WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list answers for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var a AnswerRecord
		var given, correct string
		var answered int64
		if err := rows.Scan(&a.SessionID, &a.SituationID, &a.Hand, &a.Level,
			&given, &correct, &a.IsCorrect, &answered); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		a.Given = ranges.Action(given)
		a.CorrectAnswer = ranges.Action(correct)
		a.AnsweredAt = fromMillis(answered)
		out = append(out, a)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
