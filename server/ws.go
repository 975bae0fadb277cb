package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	ai "github.com/brandkit/brandkit"
)

// wsRequest is one inbound chat frame.
type wsRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// wsReply is one outbound frame: a streamed delta, the completed response,
// or an error.
type wsReply struct {
	Type      string `json:"type"`
	Delta     string `json:"delta,omitempty"`
	Response  string `json:"response,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

const (
	wsTypeDelta = "delta"
	wsTypeDone  = "done"
	wsTypeError = "error"
)

// handleWS upgrades the connection and serves chat frames until the client
// goes away. Each connection gets its own session unless frames name one,
// so history accumulates across messages but not across clients.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	wsConnectionsActive.Inc()
	defer wsConnectionsActive.Dec()

	ctx := r.Context()
	sessionID := uuid.NewString()

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket closed", "session_id", sessionID, "error", err)
			}
			return
		}
		if req.SessionID != "" {
			sessionID = req.SessionID
		}
		if strings.TrimSpace(req.Message) == "" {
			if err := conn.WriteJSON(wsReply{Type: wsTypeError, SessionID: sessionID, Error: "message is required"}); err != nil {
				return
			}
			continue
		}

		if err := s.streamChatTurn(ctx, conn, sessionID, req.Message); err != nil {
			s.logger.Error("websocket chat failed", "session_id", sessionID, "error", err)
			if werr := conn.WriteJSON(wsReply{Type: wsTypeError, SessionID: sessionID, Error: err.Error()}); werr != nil {
				return
			}
		}
	}
}

// streamChatTurn streams one exchange to the client, then persists both
// sides of it.
func (s *Server) streamChatTurn(ctx context.Context, conn *websocket.Conn, sessionID, message string) error {
	history, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		return err
	}

	var turn []ai.Message
	if len(history) == 0 {
		turn = append(turn, ai.NewMessage(ai.RoleSystem, chatSystemPrompt))
	}
	turn = append(turn, ai.NewMessage(ai.RoleUser, message))

	events, err := s.client.ChatStream(ctx, append(history, turn...),
		ai.WithModel(s.chatModel),
		ai.WithTemperature(0.6),
	)
	if err != nil {
		return err
	}

	var full strings.Builder
	for ev := range events {
		if ev.Err != nil {
			return ev.Err
		}
		if ev.Delta == "" {
			continue
		}
		full.WriteString(ev.Delta)
		if err := conn.WriteJSON(wsReply{Type: wsTypeDelta, Delta: ev.Delta}); err != nil {
			return err
		}
	}
	chatMessagesTotal.Inc()

	turn = append(turn, ai.NewMessage(ai.RoleAssistant, full.String()))
	if err := s.sessions.Append(ctx, sessionID, turn...); err != nil {
		s.logger.Warn("session append failed", "session_id", sessionID, "error", err)
	}

	return conn.WriteJSON(wsReply{Type: wsTypeDone, Response: full.String(), SessionID: sessionID})
}
