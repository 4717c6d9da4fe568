// Package server exposes the recall agent over HTTP: REST endpoints
// for ingesting analyses and inspecting memory, plus a websocket chat
// endpoint that streams agent responses.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/recallhq/recall-go-sdk/core"
	"github.com/recallhq/recall-go-sdk/engine"
	"github.com/recallhq/recall-go-sdk/memory"
)

// Server wires the memory manager and agent engine to HTTP handlers.
type Server struct {
	manager  *memory.Manager
	engine   *engine.Engine
	upgrader websocket.Upgrader
}

// New creates a Server. The engine may be nil, in which case the
// query and chat endpoints respond 503.
func New(manager *memory.Manager, eng *engine.Engine) *Server {
	return &Server{
		manager: manager,
		engine:  eng,
		upgrader: websocket.Upgrader{
			// The desktop UI runs on a different local port.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/memory", s.handleMemory)
	mux.HandleFunc("GET /api/context", s.handleContext)
	mux.HandleFunc("GET /api/videos", s.handleVideos)
	mux.HandleFunc("POST /api/ingest", s.handleIngest)
	mux.HandleFunc("POST /api/agent_query", s.handleQuery)
	mux.HandleFunc("GET /ws/chat", s.handleChat)
	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"processed_video_count": s.manager.ListVideos().Count,
	})
}

func (s *Server) handleMemory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"short_term_memory": s.manager.ShortTerm(),
		"working_memory":    s.manager.Working(),
		"long_term_memory":  s.manager.Profile(),
		"memory_context":    s.manager.Context(),
	})
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.manager.Context())
}

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.manager.ListVideos())
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var record core.AnalysisRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid analysis JSON: " + err.Error()})
		return
	}
	if err := s.manager.AddVideoAnalysis(r.Context(), &record); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "analysis ingested",
		"memory_context": s.manager.Context(),
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "agent engine not configured"})
		return
	}

	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request JSON: " + err.Error()})
		return
	}

	output, err := s.engine.Run(r.Context(), &engine.Input{UserMessage: body.Query})
	if err != nil {
		log.Printf("[SERVER] Agent query failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"response": output.Text})
}

// chatRequest is one inbound websocket message.
type chatRequest struct {
	Query string `json:"query"`
}

// chatEvent is one outbound websocket message. Type is "chunk" while
// streaming, then "done" with the full text, or "error".
type chatEvent struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleChat runs a streaming conversation over one websocket. Each
// inbound query runs the agent with the connection's accumulated
// history, forwarding text deltas as they arrive.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		http.Error(w, "agent engine not configured", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SERVER] Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	log.Printf("[SERVER] Chat connected: %s", r.RemoteAddr)

	input := engine.Input{}
	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[SERVER] Chat read error: %v", err)
			}
			return
		}

		input.UserMessage = req.Query
		input.StreamCallback = func(chunk string, done bool) {
			if done || chunk == "" {
				return
			}
			if err := conn.WriteJSON(chatEvent{Type: "chunk", Text: chunk}); err != nil {
				log.Printf("[SERVER] Chat write error: %v", err)
			}
		}

		output, err := s.engine.Run(r.Context(), &input)
		if err != nil {
			log.Printf("[SERVER] Chat query failed: %v", err)
			if err := conn.WriteJSON(chatEvent{Type: "error", Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		// Carry the conversation forward for the next query.
		input.History = output.History
		if err := conn.WriteJSON(chatEvent{Type: "done", Text: output.Text}); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[SERVER] Error encoding response: %v", err)
	}
}
