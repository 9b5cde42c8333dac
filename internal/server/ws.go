package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/w0uf/rangetrainer/internal/quiz"
	"github.com/w0uf/rangetrainer/internal/ranges"
	"github.com/w0uf/rangetrainer/internal/store"
)

// wsRequest is a client message on the quiz socket.
type wsRequest struct {
	Op          string        `json:"op"`
	SituationID int64         `json:"context_id,omitempty"`
	Type        string        `json:"type,omitempty"`
	Hand        string        `json:"hand,omitempty"`
	Level       int           `json:"level,omitempty"`
	Given       ranges.Action `json:"given,omitempty"`
	Correct     ranges.Action `json:"correct_answer,omitempty"`
}

// wsResponse is a server message on the quiz socket.
type wsResponse struct {
	Op       string         `json:"op"`
	Error    string         `json:"error,omitempty"`
	Question *quiz.Question `json:"question,omitempty"`
	Correct  *bool          `json:"correct,omitempty"`
	Total    int            `json:"total,omitempty"`
	Score    float64        `json:"score,omitempty"`
}

// handleQuizSocket runs a live quiz session over one WebSocket
// connection. The session lives exactly as long as the socket.
func (s *Server) handleQuizSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	sess := quiz.NewSession(s.clock)
	if err := s.store.CreateSession(r.Context(), sess.ID.String(), sess.StartedAt()); err != nil {
		s.logger.Error("create session", "err", err)
		return
	}
	s.logger.Info("quiz socket opened", "session", sess.ID)
	defer s.finishSocketSession(sess)

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("quiz socket read", "err", err)
			}
			return
		}
		resp := s.dispatchSocket(r.Context(), req, sess)
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Warn("quiz socket write", "err", err)
			return
		}
	}
}

func (s *Server) dispatchSocket(ctx context.Context, req wsRequest, sess *quiz.Session) wsResponse {
	switch req.Op {
	case "question":
		return s.socketQuestion(ctx, req, sess)
	case "answer":
		return s.socketAnswer(ctx, req, sess)
	case "score":
		return wsResponse{Op: "score", Total: sess.Total, Score: sess.Score()}
	default:
		return wsResponse{Op: req.Op, Error: "unknown op"}
	}
}

func (s *Server) socketQuestion(ctx context.Context, req wsRequest, sess *quiz.Session) wsResponse {
	q, err := s.buildQuestion(ctx, questionRequest{
		SessionID:   sess.ID.String(),
		SituationID: req.SituationID,
		Type:        req.Type,
	}, sess)
	switch {
	case errors.Is(err, quiz.ErrNoQuestion):
		return wsResponse{Op: "question", Error: "no question available"}
	case err != nil:
		s.logger.Error("build question", "err", err)
		return wsResponse{Op: "question", Error: "internal error"}
	}
	sess.MarkUsed(q.Hand)
	return wsResponse{Op: "question", Question: q}
}

func (s *Server) socketAnswer(ctx context.Context, req wsRequest, sess *quiz.Session) wsResponse {
	correct := req.Given == req.Correct
	sess.Record(correct)
	rec := store.AnswerRecord{
		SessionID:     sess.ID.String(),
		SituationID:   req.SituationID,
		Hand:          req.Hand,
		Level:         req.Level,
		Given:         req.Given,
		CorrectAnswer: req.Correct,
		IsCorrect:     correct,
		AnsweredAt:    s.clock.Now(),
	}
	if err := s.store.RecordAnswer(ctx, rec); err != nil {
		s.logger.Error("record answer", "err", err)
		return wsResponse{Op: "answer", Error: "internal error"}
	}
	return wsResponse{Op: "answer", Correct: &correct, Total: sess.Total, Score: sess.Score()}
}

// finishSocketSession stamps the session end once the socket closes.
// The request context is gone by then, so a background context is
// used.
func (s *Server) finishSocketSession(sess *quiz.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.FinishSession(ctx, sess.ID.String(), s.clock.Now()); err != nil {
		s.logger.Warn("finish session", "session", sess.ID, "err", err)
	}
	s.logger.Info("quiz socket closed", "session", sess.ID, "total", sess.Total, "score", sess.Score())
}
