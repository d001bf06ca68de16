package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// wsWriteTimeout bounds a single response write; plan payloads are small.
const wsWriteTimeout = 10 * time.Second

// wsPlanRequest is one client message on the mentor socket.
type wsPlanRequest struct {
	UserID        string `json:"user_id"`
	ExamCode      string `json:"exam_code"`
	DaysAvailable int    `json:"days_available"`
}

// wsPlanResponse is the server's reply. Exactly one of Plan or Error is set.
type wsPlanResponse struct {
	Plan  any    `json:"plan,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleMentorWS serves study plans over a WebSocket. Each inbound message is
// an independent plan request; the connection stays open until the client
// closes it. Transport only; there is no conversational layer here.
func (s *Server) handleMentorWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	for {
		var req wsPlanRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return
			}
			if ctx.Err() != nil {
				return
			}
			slog.Debug("websocket read ended", "error", err)
			return
		}

		resp := s.planOverWS(ctx, req)
		writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
		err := wsjson.Write(writeCtx, conn, resp)
		cancel()
		if err != nil {
			slog.Debug("websocket write failed", "error", err)
			return
		}
	}
}

func (s *Server) planOverWS(ctx context.Context, req wsPlanRequest) wsPlanResponse {
	if req.UserID == "" || req.ExamCode == "" || req.DaysAvailable <= 0 {
		return wsPlanResponse{Error: "user_id, exam_code and positive days_available are required"}
	}

	if cached, ok := s.plans.Get(ctx, req.UserID, req.ExamCode, req.DaysAvailable); ok {
		return wsPlanResponse{Plan: cached}
	}

	result, err := s.mentor.StudyPlanForUser(req.UserID, req.ExamCode, req.DaysAvailable)
	if err != nil {
		if isNotFound(err) {
			return wsPlanResponse{Error: "user or exam not found"}
		}
		slog.Error("websocket plan generation failed", "user_id", req.UserID, "error", err)
		return wsPlanResponse{Error: "internal error"}
	}
	s.plans.Put(ctx, req.UserID, result)
	return wsPlanResponse{Plan: result}
}
