package main

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// AgentPlayer wraps an Agent behind the IPlayer interface. The game loop
// calls StartThinking once per turn and polls HasMoveReady on each tick, so
// the search runs off the tick goroutine.
type AgentPlayer struct {
	logger *zap.SugaredLogger

	mu        sync.Mutex
	readyMove Move
	thinking  atomic.Bool
	moveReady atomic.Bool
}

func NewAgentPlayer(logger *zap.SugaredLogger) *AgentPlayer {
	return &AgentPlayer{logger: logger}
}

func (p *AgentPlayer) IsHuman() bool {
	return false
}

// ChooseMove runs the search synchronously and returns the chosen move.
// NoMove means the agent has no legal move and forfeits.
func (p *AgentPlayer) ChooseMove(state GameState, clock Clock) Move {
	config := GetConfig()
	agent, err := agentFromConfig(config)
	if err != nil {
		p.logger.Warnw("invalid agent config, using defaults", "error", err)
		agent, _ = NewAgent(DefaultAgentConfig())
	}
	stats := &SearchStats{Start: time.Now()}
	legal := state.LegalMoves(state.ActivePlayer())
	move := agent.GetMoveWithStats(state, legal, clock, stats)
	move.Depth = stats.CompletedDepth
	if config.LogSearchStats {
		p.logger.Infow("search finished",
			"move", move,
			"nodes", stats.Nodes,
			"depth", stats.CompletedDepth,
			"elapsed", time.Since(stats.Start),
			"depth_durations", stats.DepthDurations,
		)
	}
	return move
}

// StartThinking launches ChooseMove in the background. Calls while a search
// is already running are ignored.
func (p *AgentPlayer) StartThinking(state GameState, clock Clock) {
	if !p.thinking.CompareAndSwap(false, true) {
		return
	}
	p.moveReady.Store(false)
	go func() {
		move := p.ChooseMove(state, clock)
		p.mu.Lock()
		p.readyMove = move
		p.mu.Unlock()
		p.moveReady.Store(true)
		p.thinking.Store(false)
	}()
}

func (p *AgentPlayer) IsThinking() bool {
	return p.thinking.Load()
}

func (p *AgentPlayer) HasMoveReady() bool {
	return p.moveReady.Load()
}

func (p *AgentPlayer) TakeMove() Move {
	p.moveReady.Store(false)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readyMove
}
