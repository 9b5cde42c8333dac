package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/w0uf/rangetrainer/internal/conflict"
	"github.com/w0uf/rangetrainer/internal/hands"
	"github.com/w0uf/rangetrainer/internal/quiz"
	"github.com/w0uf/rangetrainer/internal/ranges"
	"github.com/w0uf/rangetrainer/internal/store"
)

// maxQuestionAttempts bounds the retry loop over situations when a
// build returns the no-question outcome.
const maxQuestionAttempts = 10

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleListSituations(w http.ResponseWriter, r *http.Request) {
	sums, err := s.store.ListSituations(r.Context())
	if err != nil {
		s.serverError(w, "list situations", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"situations": sums})
}

func (s *Server) handleConflicts(w http.ResponseWriter, r *http.Request) {
	sits, err := s.store.LoadAllSituations(r.Context())
	if err != nil {
		s.serverError(w, "load situations", err)
		return
	}
	report := conflict.Detect(sits)
	s.logger.Info("conflict scan", "situations", len(sits), "conflicts", len(report.Entries))
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := quiz.NewSession(s.clock)
	if err := s.store.CreateSession(r.Context(), sess.ID.String(), sess.StartedAt()); err != nil {
		s.serverError(w, "create session", err)
		return
	}
	s.addSession(sess)
	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": sess.ID.String(),
		"started_at": sess.StartedAt(),
	})
}

func (s *Server) handleRecentSessions(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.RecentSessions(r.Context(), 20)
	if err != nil {
		s.serverError(w, "list sessions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": recs})
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, ok := s.session(id)
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	if err := s.store.FinishSession(r.Context(), id, s.clock.Now()); err != nil {
		s.serverError(w, "finish session", err)
		return
	}
	s.removeSession(id)
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"total":      sess.Total,
		"correct":    sess.Correct,
		"score":      sess.Score(),
	})
}

type questionRequest struct {
	SessionID   string `json:"session_id"`
	SituationID int64  `json:"context_id,omitempty"`
	Type        string `json:"type,omitempty"`
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	sess, ok := s.session(req.SessionID)
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	q, err := s.buildQuestion(r.Context(), req, sess)
	switch {
	case errors.Is(err, quiz.ErrNoQuestion):
		http.Error(w, "no question available", http.StatusNotFound)
		return
	case err != nil:
		s.serverError(w, "build question", err)
		return
	}
	sess.MarkUsed(q.Hand)
	writeJSON(w, http.StatusOK, q)
}

// buildQuestion tries situations until one yields a question. A fixed
// situation id is tried once; otherwise random situations are drawn
// with a bounded number of attempts.
func (s *Server) buildQuestion(ctx context.Context, req questionRequest, sess *quiz.Session) (*quiz.Question, error) {
	if req.SituationID != 0 {
		sit, err := s.store.LoadSituation(ctx, req.SituationID)
		if err != nil {
			return nil, err
		}
		return s.buildFor(sit, req.Type, sess)
	}

	sums, err := s.store.ListSituations(ctx)
	if err != nil {
		return nil, err
	}
	if len(sums) == 0 {
		return nil, quiz.ErrNoQuestion
	}

	for attempt := 0; attempt < maxQuestionAttempts; attempt++ {
		sum := sums[s.builder.Rand().IntN(len(sums))]
		sit, err := s.store.LoadSituation(ctx, sum.ID)
		if err != nil {
			return nil, err
		}
		q, err := s.buildFor(sit, req.Type, sess)
		if errors.Is(err, quiz.ErrNoQuestion) || errors.Is(err, ranges.ErrMalformedSituation) {
			s.logger.Debug("skipping situation", "situation", sum.ID, "err", err)
			continue
		}
		return q, err
	}
	return nil, quiz.ErrNoQuestion
}

func (s *Server) buildFor(sit *ranges.Situation, kind string, sess *quiz.Session) (*quiz.Question, error) {
	if kind == quiz.TypeDrillDown {
		return s.builder.DrillDown(sit, sess)
	}
	return s.builder.Simple(sit, sess)
}

type answerRequest struct {
	SessionID     string        `json:"session_id"`
	SituationID   int64         `json:"context_id"`
	Hand          string        `json:"hand"`
	Level         int           `json:"level"`
	Given         ranges.Action `json:"given"`
	CorrectAnswer ranges.Action `json:"correct_answer"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	sess, ok := s.session(req.SessionID)
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	if !hands.IsValid(hands.Hand(req.Hand)) {
		http.Error(w, "invalid hand", http.StatusBadRequest)
		return
	}

	correct := req.Given == req.CorrectAnswer
	sess.Record(correct)
	rec := store.AnswerRecord{
		SessionID:     req.SessionID,
		SituationID:   req.SituationID,
		Hand:          req.Hand,
		Level:         req.Level,
		Given:         req.Given,
		CorrectAnswer: req.CorrectAnswer,
		IsCorrect:     correct,
		AnsweredAt:    s.clock.Now(),
	}
	if err := s.store.RecordAnswer(r.Context(), rec); err != nil {
		s.serverError(w, "record answer", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"correct": correct,
		"total":   sess.Total,
		"score":   sess.Score(),
	})
}

func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op, "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
