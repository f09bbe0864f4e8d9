package main

import (
	"fmt"
	"math"
	"time"
)

type SearchMethod string

const (
	SearchMinimax   SearchMethod = "minimax"
	SearchAlphaBeta SearchMethod = "alphabeta"
)

// deepeningMarginMs is how much clock must remain before the driver starts
// another full-depth pass. Starting a pass below this tends to waste the
// remaining budget on a search that gets aborted anyway.
const deepeningMarginMs = 600.0

type AgentConfig struct {
	// SearchDepth is the fixed depth used when Iterative is false.
	SearchDepth int
	// MaxDepth caps iterative deepening. Zero means no cap, which only
	// terminates through the clock.
	MaxDepth int
	Score    ScoreFn
	// Iterative selects depth-by-depth deepening against the clock instead
	// of a single fixed-depth search.
	Iterative bool
	Method    SearchMethod
	// TimeoutMarginMs is the clock reading below which search nodes stop
	// expanding and return immediately.
	TimeoutMarginMs float64
}

func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		SearchDepth:     3,
		MaxDepth:        25,
		Score:           ImprovedScore,
		Iterative:       true,
		Method:          SearchMinimax,
		TimeoutMarginMs: 10,
	}
}

// Agent selects moves for one turn at a time. It is stateless between
// turns: every GetMove builds a fresh Searcher.
type Agent struct {
	config AgentConfig
}

func NewAgent(config AgentConfig) (*Agent, error) {
	if config.SearchDepth < 1 {
		return nil, fmt.Errorf("agent: search depth must be at least 1, got %d", config.SearchDepth)
	}
	if config.MaxDepth < 0 {
		return nil, fmt.Errorf("agent: max depth must not be negative, got %d", config.MaxDepth)
	}
	if config.Score == nil {
		return nil, fmt.Errorf("agent: score function is required")
	}
	switch config.Method {
	case SearchMinimax, SearchAlphaBeta:
	default:
		return nil, fmt.Errorf("agent: unknown search method %q", config.Method)
	}
	if config.TimeoutMarginMs <= 0 {
		return nil, fmt.Errorf("agent: timeout margin must be positive, got %v", config.TimeoutMarginMs)
	}
	return &Agent{config: config}, nil
}

// GetMove picks a move for the active player of state. legalMoves is the
// caller's view of the available moves; a result outside it, or an empty
// list, yields NoMove. A nil clock searches without a deadline.
func (a *Agent) GetMove(state GameState, legalMoves []Move, clock Clock) Move {
	return a.GetMoveWithStats(state, legalMoves, clock, nil)
}

func (a *Agent) GetMoveWithStats(state GameState, legalMoves []Move, clock Clock, stats *SearchStats) Move {
	if len(legalMoves) == 0 {
		return NoMove
	}
	searcher := &Searcher{
		Self:     state.ActivePlayer(),
		Score:    a.config.Score,
		Clock:    clock,
		MarginMs: a.config.TimeoutMarginMs,
		Stats:    stats,
	}
	result := a.drive(searcher, state)
	if containsMove(legalMoves, result.Move) {
		return result.Move
	}
	return NoMove
}

// drive runs either a single fixed-depth search or the deepening loop.
// Deepening keeps the result of the last depth that ran to completion;
// an aborted pass never replaces it.
func (a *Agent) drive(searcher *Searcher, state GameState) SearchResult {
	if !a.config.Iterative {
		result, completed := a.searchAt(searcher, state, a.config.SearchDepth)
		if completed {
			recordCompleted(searcher.Stats, a.config.SearchDepth)
		}
		return result
	}
	best, completed := a.searchAt(searcher, state, 1)
	if !completed {
		return best
	}
	recordCompleted(searcher.Stats, 1)
	for depth := 2; a.config.MaxDepth == 0 || depth <= a.config.MaxDepth; depth++ {
		if searcher.Clock != nil && searcher.Clock() < deepeningMarginMs {
			break
		}
		result, ok := a.searchAt(searcher, state, depth)
		if !ok {
			break
		}
		best = result
		recordCompleted(searcher.Stats, depth)
	}
	return best
}

func (a *Agent) searchAt(searcher *Searcher, state GameState, depth int) (SearchResult, bool) {
	started := time.Now()
	var result SearchResult
	var completed bool
	if a.config.Method == SearchAlphaBeta {
		result, completed = searcher.AlphaBeta(state, depth, math.Inf(-1), math.Inf(1), true)
	} else {
		result, completed = searcher.Minimax(state, depth, true)
	}
	if searcher.Stats != nil {
		searcher.Stats.DepthDurations = append(searcher.Stats.DepthDurations, time.Since(started))
	}
	return result, completed
}

func recordCompleted(stats *SearchStats, depth int) {
	if stats != nil && depth > stats.CompletedDepth {
		stats.CompletedDepth = depth
	}
}
