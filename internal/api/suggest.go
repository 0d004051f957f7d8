package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"drinkingman/internal/suggest"
)

type suggestRequest struct {
	Preferences suggest.Preferences `json:"preferences"`
	Sliders     *suggest.Sliders    `json:"sliders,omitempty"`
	Locale      string              `json:"locale"`
	Unavailable []string            `json:"unavailable,omitempty"`
	Desired     []string            `json:"desired,omitempty"`
}

// resolve fills the flavor profile from the sliders when the caller sent
// raw slider positions instead of descriptor strings.
func (r *suggestRequest) resolve() {
	if r.Sliders != nil && len(r.Preferences.FlavorProfile) == 0 {
		r.Preferences.FlavorProfile = r.Sliders.Descriptors()
	}
	if r.Locale == "" {
		r.Locale = "en"
	}
}

// Suggest handles POST /api/suggest. Model and parse failures are reported
// as recoverable errors the client can retry, never as a crash.
func (s *Server) Suggest(c *gin.Context) {
	if s.Suggester == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recommendation service not configured"})
		return
	}

	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.resolve()

	start := time.Now()
	rec, err := s.Suggester.Ask(c.Request.Context(), req.Preferences, req.Locale, req.Unavailable, req.Desired)
	if err != nil {
		switch {
		case suggest.IsParseFailure(err):
			if s.Metrics != nil {
				s.Metrics.ObserveParseFailure()
			}
			s.observeSuggestion(start, "parse_failure")
			c.JSON(http.StatusBadGateway, gin.H{"error": "assistant unavailable", "retry": true})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			s.observeSuggestion(start, "model_error")
			c.JSON(http.StatusBadGateway, gin.H{"error": "assistant unavailable", "retry": true})
		}
		return
	}

	s.observeSuggestion(start, "ok")
	c.JSON(http.StatusOK, rec)
}

func isValidationError(err error) bool {
	return errors.Is(err, suggest.ErrMissingField)
}

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsEvent is one message on the streaming suggestion socket.
type wsEvent struct {
	Type           string                  `json:"type"` // "chunk", "result", "error"
	Chunk          string                  `json:"chunk,omitempty"`
	Recommendation *suggest.Recommendation `json:"recommendation,omitempty"`
	Error          string                  `json:"error,omitempty"`
}

// SuggestWS handles GET /ws/suggest. The client sends one suggestRequest
// frame; the server streams raw model chunks followed by the parsed
// recommendation, or an error event.
func (s *Server) SuggestWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if s.Suggester == nil {
		conn.WriteJSON(wsEvent{Type: "error", Error: "recommendation service not configured"})
		return
	}

	var req suggestRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(wsEvent{Type: "error", Error: "invalid request frame"})
		return
	}
	req.resolve()

	start := time.Now()
	rec, err := s.Suggester.AskStreaming(c.Request.Context(), req.Preferences, req.Locale, req.Unavailable, req.Desired,
		func(chunk string) error {
			return conn.WriteJSON(wsEvent{Type: "chunk", Chunk: chunk})
		})
	if err != nil {
		if suggest.IsParseFailure(err) && s.Metrics != nil {
			s.Metrics.ObserveParseFailure()
		}
		s.observeSuggestion(start, "error")
		conn.WriteJSON(wsEvent{Type: "error", Error: "assistant unavailable"})
		return
	}

	s.observeSuggestion(start, "ok")
	conn.WriteJSON(wsEvent{Type: "result", Recommendation: rec})
}
