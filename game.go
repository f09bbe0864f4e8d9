package main

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Game runs one Isolation match. The tick loop drives it: human moves are
// queued through SubmitHumanMove and applied on the next tick, agent moves
// are computed in the background and applied when ready. A player whose
// turn clock runs out forfeits.
type Game struct {
	settings  GameSettings
	id        string
	board     *Board
	status    GameStatus
	history   MoveHistory
	playerOne IPlayer
	playerTwo IPlayer
	turnStart time.Time
	logger    *zap.SugaredLogger
}

func NewGame(settings GameSettings, logger *zap.SugaredLogger) Game {
	g := Game{logger: logger}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.settings = settings
	g.id = uuid.NewString()
	g.board = NewBoard(settings.BoardSize)
	g.status = StatusNotStarted
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
}

func (g *Game) Start() {
	if g.status == StatusNotStarted {
		g.status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) Status() GameStatus {
	return g.status
}

// State returns an independent snapshot of the position.
func (g *Game) State() *Board {
	return g.board.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// turnClock fixes the deadline of the current turn and returns the oracle
// the search polls. The deadline does not move while the agent thinks.
func (g *Game) turnClock() Clock {
	deadline := g.turnStart.Add(time.Duration(g.settings.TurnTimeMs) * time.Millisecond)
	return func() float64 {
		return float64(time.Until(deadline)) / float64(time.Millisecond)
	}
}

func (g *Game) remainingMs() float64 {
	return g.turnClock()()
}

func (g *Game) TryApplyMove(move Move) (bool, string) {
	if g.status != StatusRunning {
		return false, "game not running"
	}
	active := g.board.ActivePlayer()
	if !containsMove(g.board.LegalMoves(active), move) {
		return false, "illegal move"
	}
	player := g.currentPlayer()
	isAgentMove := player != nil && !player.IsHuman()
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())

	g.board = g.board.ForecastMove(move).(*Board)
	g.history.Push(HistoryEntry{
		Move:      move,
		Player:    active,
		ElapsedMs: elapsedMs,
		IsAgent:   isAgentMove,
		Depth:     move.Depth,
	})
	g.logger.Infow("move played",
		"game_id", g.id,
		"player", int(active)+1,
		"move", move,
		"elapsed_ms", elapsedMs,
		"agent", isAgentMove,
	)
	if g.board.IsWinner(active) {
		g.declareWinner(active, "opponent trapped")
		return true, ""
	}
	g.turnStart = time.Now()
	return true, ""
}

// Tick advances the game once. It reports whether the visible state changed.
func (g *Game) Tick() bool {
	if g.status != StatusRunning {
		return false
	}
	if g.remainingMs() <= 0 {
		g.declareWinner(otherPlayer(g.board.ActivePlayer()), "turn clock expired")
		return true
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	if human, ok := player.(*HumanPlayer); ok {
		if human.HasPendingMove() {
			applied, _ := g.TryApplyMove(human.TakePendingMove())
			return applied
		}
		return false
	}
	if agent, ok := player.(*AgentPlayer); ok {
		if agent.HasMoveReady() {
			move := agent.TakeMove()
			if move.Equals(NoMove) {
				g.declareWinner(otherPlayer(g.board.ActivePlayer()), "no legal moves")
				return true
			}
			applied, _ := g.TryApplyMove(move)
			return applied
		}
		if !agent.IsThinking() {
			agent.StartThinking(g.board.Clone(), g.turnClock())
		}
		return false
	}
	move := player.ChooseMove(g.board.Clone(), g.turnClock())
	applied, _ := g.TryApplyMove(move)
	return applied
}

func (g *Game) declareWinner(winner Player, reason string) {
	if winner == PlayerOne {
		g.status = StatusPlayerOneWon
	} else {
		g.status = StatusPlayerTwoWon
	}
	g.logger.Infow("game over",
		"game_id", g.id,
		"winner", int(winner)+1,
		"reason", reason,
		"moves", g.history.Size(),
	)
}

func (g *Game) SubmitHumanMove(move Move) bool {
	player := g.currentPlayer()
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AgentThinking() bool {
	if agent, ok := g.currentPlayer().(*AgentPlayer); ok {
		return agent.IsThinking()
	}
	return false
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerFor(g.board.ActivePlayer())
}

func (g *Game) playerFor(p Player) IPlayer {
	if p == PlayerOne {
		return g.playerOne
	}
	return g.playerTwo
}

func (g *Game) createPlayers() {
	if g.settings.PlayerOneType == PlayerHuman {
		g.playerOne = NewHumanPlayer()
	} else {
		g.playerOne = NewAgentPlayer(g.logger)
	}
	if g.settings.PlayerTwoType == PlayerHuman {
		g.playerTwo = NewHumanPlayer()
	} else {
		g.playerTwo = NewAgentPlayer(g.logger)
	}
}

func (g *Game) logMatchup() {
	label := func(t PlayerType) string {
		if t == PlayerAgent {
			return "agent"
		}
		return "human"
	}
	g.logger.Infow("new game",
		"game_id", g.id,
		"board_size", g.settings.BoardSize,
		"turn_time_ms", g.settings.TurnTimeMs,
		"player_one", label(g.settings.PlayerOneType),
		"player_two", label(g.settings.PlayerTwoType),
	)
}
