package main

import (
	"testing"
)

func TestNewAgentValidatesConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*AgentConfig)
	}{
		{"zero depth", func(c *AgentConfig) { c.SearchDepth = 0 }},
		{"negative depth", func(c *AgentConfig) { c.SearchDepth = -2 }},
		{"negative max depth", func(c *AgentConfig) { c.MaxDepth = -1 }},
		{"nil score", func(c *AgentConfig) { c.Score = nil }},
		{"unknown method", func(c *AgentConfig) { c.Method = "negamax" }},
		{"zero margin", func(c *AgentConfig) { c.TimeoutMarginMs = 0 }},
	}
	for _, tc := range cases {
		config := DefaultAgentConfig()
		tc.mutate(&config)
		if _, err := NewAgent(config); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
	if _, err := NewAgent(DefaultAgentConfig()); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestGetMoveEmptyLegalMovesReturnsSentinel(t *testing.T) {
	agent, err := NewAgent(DefaultAgentConfig())
	if err != nil {
		t.Fatal(err)
	}
	b := makeBoard(3, NewMove(0, 0), NewMove(2, 2), nil, PlayerTwo)
	if got := agent.GetMove(b, nil, nil); !got.Equals(NoMove) {
		t.Fatalf("expected sentinel for empty legal moves, got %v", got)
	}
}

func TestGetMoveReturnsLegalMove(t *testing.T) {
	for _, method := range []SearchMethod{SearchMinimax, SearchAlphaBeta} {
		config := DefaultAgentConfig()
		config.Iterative = false
		config.SearchDepth = 2
		config.Method = method
		agent, err := NewAgent(config)
		if err != nil {
			t.Fatal(err)
		}
		b := makeBoard(3, NewMove(0, 0), NewMove(2, 2), nil, PlayerTwo)
		legal := b.LegalMoves(PlayerTwo)
		got := agent.GetMove(b, legal, nil)
		if !containsMove(legal, got) {
			t.Fatalf("%s: move %v not in legal set %v", method, got, legal)
		}
	}
}

func fixedDepthMove(t *testing.T, state *Board, depth int) Move {
	t.Helper()
	config := DefaultAgentConfig()
	config.Iterative = false
	config.SearchDepth = depth
	agent, err := NewAgent(config)
	if err != nil {
		t.Fatal(err)
	}
	return agent.GetMove(state, state.LegalMoves(state.ActivePlayer()), nil)
}

func TestIterativeWithDepthCapMatchesFixedDepth(t *testing.T) {
	b := midgameBoard()
	for depth := 1; depth <= 3; depth++ {
		config := DefaultAgentConfig()
		config.Iterative = true
		config.MaxDepth = depth
		agent, err := NewAgent(config)
		if err != nil {
			t.Fatal(err)
		}
		got := agent.GetMove(b, b.LegalMoves(PlayerOne), nil)
		want := fixedDepthMove(t, b, depth)
		if !got.Equals(want) {
			t.Fatalf("cap %d: iterative move %v != fixed-depth move %v", depth, got, want)
		}
	}
}

func TestIterativeKeepsLastCompletedDepth(t *testing.T) {
	// Depth 1 runs on a generous clock; the driver's pre-deepening check then
	// sees too little time left and stops.
	b := makeBoard(3, NewMove(0, 0), NewMove(2, 2), nil, PlayerTwo)
	calls := 0
	clock := Clock(func() float64 {
		calls++
		if calls <= 4 {
			return 10000
		}
		return 500
	})
	agent, err := NewAgent(DefaultAgentConfig())
	if err != nil {
		t.Fatal(err)
	}
	stats := &SearchStats{}
	got := agent.GetMoveWithStats(b, b.LegalMoves(PlayerTwo), clock, stats)
	want := fixedDepthMove(t, b, 1)
	if !got.Equals(want) {
		t.Fatalf("expected retained depth-1 move %v, got %v", want, got)
	}
	if stats.CompletedDepth != 1 {
		t.Fatalf("expected completed depth 1, got %d", stats.CompletedDepth)
	}
}

func TestIterativeDiscardsAbortedDeeperPass(t *testing.T) {
	// Depth 1 completes, depth 2 aborts at its first clock check.
	b := makeBoard(3, NewMove(0, 0), NewMove(2, 2), nil, PlayerTwo)
	calls := 0
	clock := Clock(func() float64 {
		calls++
		if calls <= 5 {
			return 10000
		}
		return 0
	})
	agent, err := NewAgent(DefaultAgentConfig())
	if err != nil {
		t.Fatal(err)
	}
	stats := &SearchStats{}
	got := agent.GetMoveWithStats(b, b.LegalMoves(PlayerTwo), clock, stats)
	want := fixedDepthMove(t, b, 1)
	if !got.Equals(want) {
		t.Fatalf("aborted pass should not replace depth-1 move %v, got %v", want, got)
	}
	if stats.CompletedDepth != 1 {
		t.Fatalf("expected completed depth 1, got %d", stats.CompletedDepth)
	}
}

func TestGetMoveUnderImmediateTimeoutIsLegal(t *testing.T) {
	b := midgameBoard()
	expired := Clock(func() float64 { return 0 })
	agent, err := NewAgent(DefaultAgentConfig())
	if err != nil {
		t.Fatal(err)
	}
	legal := b.LegalMoves(PlayerOne)
	got := agent.GetMove(b, legal, expired)
	if !containsMove(legal, got) {
		t.Fatalf("rushed move %v not in legal set %v", got, legal)
	}
}
