package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/slide2048/game/engine"
	"github.com/wricardo/slide2048/game/service"
	"github.com/wricardo/slide2048/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil to disable live updates.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	// Must be registered before the {id} pattern
	api.HandleFunc("/sessions/unified", s.handleUnifiedSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Game operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/sessions/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/sessions/{id}/bulk-move", s.handleBulkMove).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// Scores
	api.HandleFunc("/leaderboard", s.handleLeaderboard).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"error": message, "code": status})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidDirection):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConfigUnavailable):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string  `json:"config_id,omitempty"`
		ConfigName string  `json:"config_name,omitempty"` // Deprecated, use config_id
		Seed       *uint64 `json:"seed,omitempty"`
	}

	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	configID := req.ConfigID
	if configID == "" {
		configID = req.ConfigName
	}

	session, err := s.service.CreateSession(r.Context(), configID, req.Seed)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default), "score"
	order := query.Get("order")    // "asc", "desc" (default)
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "created":
			less = sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
		case "score":
			less = sessions[i].GameState.Score < sessions[j].GameState.Score
		default:
			less = sessions[i].LastAccessedAt.Before(sessions[j].LastAccessedAt)
		}
		if order == "asc" {
			return less
		}
		return !less && !sameSortKey(sortBy, sessions[i], sessions[j])
	})

	total := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			sessions = sessions[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func sameSortKey(sortBy string, a, b *service.SessionInfo) bool {
	switch sortBy {
	case "created":
		return a.CreatedAt.Equal(b.CreatedAt)
	case "score":
		return a.GameState.Score == b.GameState.Score
	default:
		return a.LastAccessedAt.Equal(b.LastAccessedAt)
	}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Game Operation Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.GetGameState(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Direction string `json:"direction"`
		Reset     bool   `json:"reset,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Move(r.Context(), sessionID, req.Direction, req.Reset)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	s.broadcast(sessionID, result.GameState, result.Events)

	// Compact server log for observability
	if step := result.Step; step != nil {
		status := "BLOCKED"
		if step.Changed {
			status = "OK"
		}
		log.Printf("[MOVE] session=%s %s score=%d->%d max=%d empty=%d status=%s",
			sessionID, step.Dir, step.ScoreBefore, step.ScoreAfter, step.MaxTile, step.EmptyCells, status)
	} else {
		log.Printf("[MOVE] session=%s %s ignored: game over", sessionID, req.Direction)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleBulkMove(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Moves []string `json:"moves"`
		Reset bool     `json:"reset,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Moves) == 0 {
		respondError(w, http.StatusBadRequest, "At least one move is required")
		return
	}

	result, err := s.service.BulkMove(r.Context(), sessionID, req.Moves, req.Reset)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	s.broadcast(sessionID, result.GameState, result.Events)

	stop := result.StopReasonCode
	if stop == "" {
		stop = "none"
	}
	log.Printf("[BULK] session=%s exec=%d/%d blocked=%d stop=%s score=%d (+%d) max=%d",
		sessionID, result.MovesExecuted, result.RequestedMoves, result.BlockedMoves, stop,
		result.EndScore, result.ScoreDelta, result.EndMaxTile)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.Reset(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToSession(sessionID, state)
		s.hub.BroadcastEvent(sessionID, service.EventReset, nil)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Game reset successfully",
		"state":   state,
	})
}

// broadcast pushes the new board and any milestone events to WebSocket clients
func (s *Server) broadcast(sessionID string, state *engine.GameState, events []service.GameEvent) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToSession(sessionID, state)
	for _, ev := range events {
		switch ev.Type {
		case service.EventVictory, service.EventGameOver:
			s.hub.BroadcastEvent(sessionID, ev.Type, ev)
		}
	}
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetMoveHistory(r.Context(), sessionID, opts)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string `json:"config_id,omitempty"`
		engine.GameConfig
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	configID := req.ConfigID
	if configID == "" {
		configID = req.Name
	}
	if configID == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}
	if err := engine.ValidateGameConfig(&req.GameConfig); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.service.SaveConfig(r.Context(), configID, &req.GameConfig); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": configID,
	})
}

// Scores

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	configName := query.Get("config")

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = l
	}

	entries, err := s.service.Leaderboard(r.Context(), configName, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"config": configName,
		"count":  len(entries),
		"scores": entries,
	})
}

// Unified Sessions Handler

func (s *Server) handleUnifiedSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var sessions []*service.SessionInfo

	if sessionIDs := query.Get("sessionIds"); sessionIDs != "" {
		ids := strings.Split(sessionIDs, ",")
		sessions = make([]*service.SessionInfo, 0, len(ids))
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if session, err := s.service.GetSession(r.Context(), id); err == nil {
				sessions = append(sessions, session)
			}
		}
	} else {
		allSessions, err := s.service.ListSessions(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		configName := query.Get("configName")
		sessions = make([]*service.SessionInfo, 0, len(allSessions))
		for _, session := range allSessions {
			if configName == "" || session.ConfigName == configName {
				sessions = append(sessions, session)
			}
		}
	}

	configName := ""
	var targetTile uint32
	if len(sessions) > 0 {
		configName = sessions[0].ConfigName
		targetTile = sessions[0].GameConfig.Target()
	}

	entries := make([]map[string]interface{}, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, map[string]interface{}{
			"session_id":    session.ID,
			"config_name":   session.ConfigName,
			"game_state":    session.GameState,
			"rows":          engine.FormatRows(session.GameState.Size, session.GameState.Cells),
			"created_at":    session.CreatedAt,
			"last_accessed": session.LastAccessedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"config_name": configName,
		"target_tile": targetTile,
		"sessions":    entries,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "live updates disabled", http.StatusServiceUnavailable)
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
