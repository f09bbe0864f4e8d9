package main

import (
	"math"
	"time"
)

// Clock reports the milliseconds remaining before the current turn is
// forfeited. The search polls it at the entry of every node.
type Clock func() float64

type SearchResult struct {
	Score float64
	Move  Move
}

type SearchStats struct {
	Nodes          int64
	CompletedDepth int
	DepthDurations []time.Duration
	Start          time.Time
}

// Searcher holds the context of one move selection. Self is the player the
// search optimizes for; it stays fixed while the turn alternates down the
// tree. A nil Clock never times out.
type Searcher struct {
	Self     Player
	Score    ScoreFn
	Clock    Clock
	MarginMs float64
	Stats    *SearchStats
}

func (s *Searcher) timedOut() bool {
	return s.Clock != nil && s.Clock() < s.MarginMs
}

// rushedMove is the answer under time pressure: the current position's score
// and the first of Self's legal moves, with no expansion.
func (s *Searcher) rushedMove(state GameState) SearchResult {
	move := NoMove
	if moves := state.LegalMoves(s.Self); len(moves) > 0 {
		move = moves[0]
	}
	return SearchResult{Score: s.Score(state, s.Self), Move: move}
}

// movesFor enumerates the side a node branches on: Self when the node's
// min/max role matches the root's, the opponent otherwise.
func (s *Searcher) movesFor(state GameState, nodeMax, rootMax bool) []Move {
	if nodeMax == rootMax {
		return state.LegalMoves(s.Self)
	}
	return state.LegalMoves(state.Opponent(s.Self))
}

func (s *Searcher) terminal(state GameState, ply, depth int) bool {
	return ply == depth || state.IsWinner(s.Self) || state.IsLoser(s.Self)
}

func (s *Searcher) countNode() {
	if s.Stats != nil {
		s.Stats.Nodes++
	}
}

// Minimax searches to the given depth and returns the best score and move
// for Self. The second return is false when the clock fired: the result then
// holds the best fully evaluated move so far, or a rushed fallback if the
// deadline hit before any child finished. With no legal moves the move is
// NoMove and the score is -Inf (maximizing) or +Inf (minimizing).
func (s *Searcher) Minimax(state GameState, depth int, maximizing bool) (SearchResult, bool) {
	if s.timedOut() {
		return s.rushedMove(state), false
	}
	s.countNode()
	bestScore := math.Inf(-1)
	if !maximizing {
		bestScore = math.Inf(1)
	}
	bestMove := NoMove
	for _, move := range s.movesFor(state, maximizing, maximizing) {
		score, ok := s.minimaxValue(state.ForecastMove(move), 1, depth, !maximizing, maximizing)
		if !ok {
			return SearchResult{Score: bestScore, Move: bestMove}, false
		}
		if maximizing {
			if score > bestScore {
				bestScore = score
				bestMove = move
			}
		} else if score < bestScore {
			bestScore = score
			bestMove = move
		}
	}
	return SearchResult{Score: bestScore, Move: bestMove}, true
}

func (s *Searcher) minimaxValue(state GameState, ply, depth int, nodeMax, rootMax bool) (float64, bool) {
	if s.timedOut() {
		return s.Score(state, s.Self), false
	}
	if s.terminal(state, ply, depth) {
		return s.Score(state, s.Self), true
	}
	s.countNode()
	best := math.Inf(-1)
	if !nodeMax {
		best = math.Inf(1)
	}
	for _, move := range s.movesFor(state, nodeMax, rootMax) {
		score, ok := s.minimaxValue(state.ForecastMove(move), ply+1, depth, !nodeMax, rootMax)
		if !ok {
			return best, false
		}
		if nodeMax {
			if score > best {
				best = score
			}
		} else if score < best {
			best = score
		}
	}
	return best, true
}

// AlphaBeta is Minimax with pruning. The root best score starts at alpha
// (maximizing) or beta (minimizing), so with an open window it returns the
// same score Minimax would and never more node expansions.
func (s *Searcher) AlphaBeta(state GameState, depth int, alpha, beta float64, maximizing bool) (SearchResult, bool) {
	if s.timedOut() {
		return s.rushedMove(state), false
	}
	s.countNode()
	bestScore := alpha
	if !maximizing {
		bestScore = beta
	}
	bestMove := NoMove
	for _, move := range s.movesFor(state, maximizing, maximizing) {
		score, ok := s.alphaBetaValue(state.ForecastMove(move), 1, depth, alpha, beta, !maximizing, maximizing)
		if !ok {
			return SearchResult{Score: bestScore, Move: bestMove}, false
		}
		if maximizing {
			if score > bestScore {
				bestScore = score
				bestMove = move
			}
			if bestScore >= beta {
				break
			}
			if bestScore > alpha {
				alpha = bestScore
			}
		} else {
			if score < bestScore {
				bestScore = score
				bestMove = move
			}
			if bestScore <= alpha {
				break
			}
			if bestScore < beta {
				beta = bestScore
			}
		}
	}
	return SearchResult{Score: bestScore, Move: bestMove}, true
}

func (s *Searcher) alphaBetaValue(state GameState, ply, depth int, alpha, beta float64, nodeMax, rootMax bool) (float64, bool) {
	if s.timedOut() {
		return s.Score(state, s.Self), false
	}
	if s.terminal(state, ply, depth) {
		return s.Score(state, s.Self), true
	}
	s.countNode()
	if nodeMax {
		value := math.Inf(-1)
		for _, move := range s.movesFor(state, nodeMax, rootMax) {
			score, ok := s.alphaBetaValue(state.ForecastMove(move), ply+1, depth, alpha, beta, false, rootMax)
			if !ok {
				return value, false
			}
			if score > value {
				value = score
			}
			if value >= beta {
				return value, true
			}
			if value > alpha {
				alpha = value
			}
		}
		return value, true
	}
	value := math.Inf(1)
	for _, move := range s.movesFor(state, nodeMax, rootMax) {
		score, ok := s.alphaBetaValue(state.ForecastMove(move), ply+1, depth, alpha, beta, true, rootMax)
		if !ok {
			return value, false
		}
		if score < value {
			value = score
		}
		if value <= alpha {
			return value, true
		}
		if value < beta {
			beta = value
		}
	}
	return value, true
}
