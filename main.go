package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type StatusResponse struct {
	GameID          string            `json:"game_id"`
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	BoardSize       int               `json:"board_size"`
	Status          string            `json:"status"`
	Board           [][]int           `json:"board"`
	Locations       []locationDTO     `json:"locations"`
	History         []historyEntryDTO `json:"history"`
	AgentThinking   bool              `json:"agent_thinking"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
	BoardSize   int    `json:"board_size"`
	TurnTimeMs  int    `json:"turn_time_ms"`
}

type apiMove struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type locationDTO struct {
	Player int `json:"player"`
	Row    int `json:"row"`
	Col    int `json:"col"`
}

type historyEntryDTO struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAgent   bool    `json:"is_agent"`
	Depth     int     `json:"depth"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type resetPayload struct {
	GameID          string            `json:"game_id"`
	History         []historyEntryDTO `json:"history"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	BoardSize       int               `json:"board_size"`
	Board           [][]int           `json:"board"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

func NewLogger() (*zap.SugaredLogger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func main() {
	logger, err := NewLogger()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	serverCfg, err := LoadServerConfig(".env")
	if err != nil {
		logger.Warnw("no server config, using defaults", "error", err)
		serverCfg = &ServerConfig{ServerPort: "8080"}
	}

	controller := NewGameController(DefaultGameSettings(), logger)
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if controller.Tick() {
					if entry, ok := controller.LatestHistoryEntry(); ok {
						hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
					}
					hub.broadcastBoard <- boardFromController(controller)
					hub.broadcastStatus <- controllerStatus(controller)
				}
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		controller.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		settings := controller.Settings()
		controller.Reset(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			if _, err := agentFromConfig(*payload.Config); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			configStore.Update(*payload.Config)
		}
		if payload.Settings != nil {
			settings := settingsFromDTO(*payload.Settings, controller.Settings())
			controller.UpdateSettings(settings, false)
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: settingsToDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(NewMove(payload.Row, payload.Col))
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	server := &http.Server{
		Addr:    ":" + serverCfg.ServerPort,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	logger.Infow("backend listening", "port", serverCfg.ServerPort)
	select {
	case <-sigCtx.Done():
		logger.Infow("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			logger.Errorw("server error", "error", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorw("graceful shutdown failed", "error", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			logger.Errorw("forced close failed", "error", closeErr)
		}
	}
	cancel()
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		GameID:          controller.GameID(),
		Settings:        settingsToDTO(controller.Settings()),
		Config:          GetConfig(),
		NextPlayer:      playerToInt(state.ActivePlayer()),
		Winner:          winnerFromStatus(controller.Status()),
		BoardSize:       state.Size(),
		Status:          statusToString(controller.Status()),
		Board:           boardToSlice(state),
		Locations:       locationsFromBoard(state),
		History:         historyToDTO(controller.History()),
		AgentThinking:   controller.AgentThinking(),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	switch dto.Mode {
	case "agent_vs_agent":
		settings.PlayerOneType = PlayerAgent
		settings.PlayerTwoType = PlayerAgent
	case "human_vs_human":
		settings.PlayerOneType = PlayerHuman
		settings.PlayerTwoType = PlayerHuman
	case "agent_vs_human":
		if dto.HumanPlayer == 2 {
			settings.PlayerOneType = PlayerAgent
			settings.PlayerTwoType = PlayerHuman
		} else {
			settings.PlayerOneType = PlayerHuman
			settings.PlayerTwoType = PlayerAgent
		}
	}
	if dto.BoardSize > 0 {
		settings.BoardSize = dto.BoardSize
	}
	if dto.TurnTimeMs > 0 {
		settings.TurnTimeMs = dto.TurnTimeMs
	}
	return settings
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	mode := "agent_vs_human"
	humanPlayer := 0
	switch {
	case settings.PlayerOneType == PlayerAgent && settings.PlayerTwoType == PlayerAgent:
		mode = "agent_vs_agent"
	case settings.PlayerOneType == PlayerHuman && settings.PlayerTwoType == PlayerHuman:
		mode = "human_vs_human"
		humanPlayer = 1
	case settings.PlayerOneType == PlayerHuman:
		humanPlayer = 1
	default:
		humanPlayer = 2
	}
	return GameSettingsDTO{
		Mode:        mode,
		HumanPlayer: humanPlayer,
		BoardSize:   settings.BoardSize,
		TurnTimeMs:  settings.TurnTimeMs,
	}
}

// boardToSlice encodes the position for clients: 0 blank, 3 blocked, 1 and 2
// mark where the players stand.
func boardToSlice(board *Board) [][]int {
	size := board.Size()
	rows := make([][]int, size)
	for row := 0; row < size; row++ {
		rows[row] = make([]int, size)
		for col := 0; col < size; col++ {
			if board.At(row, col) == CellBlocked {
				rows[row][col] = 3
			}
		}
	}
	for p := PlayerOne; p <= PlayerTwo; p++ {
		location := board.PlayerLocation(p)
		if location.IsValid(size) {
			rows[location.Row][location.Col] = playerToInt(p)
		}
	}
	return rows
}

func locationsFromBoard(board *Board) []locationDTO {
	locations := make([]locationDTO, 0, 2)
	for p := PlayerOne; p <= PlayerTwo; p++ {
		location := board.PlayerLocation(p)
		locations = append(locations, locationDTO{
			Player: playerToInt(p),
			Row:    location.Row,
			Col:    location.Col,
		})
	}
	return locations
}

func playerToInt(p Player) int {
	if p == PlayerOne {
		return 1
	}
	return 2
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusPlayerOneWon:
		return 1
	case StatusPlayerTwoWon:
		return 2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusPlayerOneWon:
		return "player_one_won"
	case StatusPlayerTwoWon:
		return "player_two_won"
	default:
		return "running"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		Row:       entry.Move.Row,
		Col:       entry.Move.Col,
		Player:    playerToInt(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAgent:   entry.IsAgent,
		Depth:     entry.Depth,
	}
}

func boardFromController(controller *GameController) boardPayload {
	state := controller.State()
	return boardPayload{
		Board:         boardToSlice(state),
		NextPlayer:    playerToInt(state.ActivePlayer()),
		Winner:        winnerFromStatus(controller.Status()),
		MoveCount:     state.MoveCount(),
		Status:        statusToString(controller.Status()),
		AgentThinking: controller.AgentThinking(),
		History:       historyToDTO(controller.History()),
	}
}

func resetFromController(controller *GameController) resetPayload {
	state := controller.State()
	return resetPayload{
		GameID:          controller.GameID(),
		History:         historyToDTO(controller.History()),
		NextPlayer:      playerToInt(state.ActivePlayer()),
		Winner:          winnerFromStatus(controller.Status()),
		Status:          statusToString(controller.Status()),
		BoardSize:       state.Size(),
		Board:           boardToSlice(state),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
