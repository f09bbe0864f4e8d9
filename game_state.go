package main

type Player int

type GameStatus int

const (
	PlayerOne Player = iota
	PlayerTwo
)

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusPlayerOneWon
	StatusPlayerTwoWon
)

// GameState is the snapshot of a position that move selection consumes.
// Implementations never mutate in place: ForecastMove returns an
// independent successor and leaves the receiver untouched.
type GameState interface {
	// LegalMoves lists the moves available to p in this position. A player
	// that has not been placed yet may enter any blank cell.
	LegalMoves(p Player) []Move
	// ForecastMove applies a move for the active player and returns the
	// resulting position with the turn passed to the opponent.
	ForecastMove(m Move) GameState
	// IsWinner reports whether p has won: the opponent is to move and has
	// no legal moves.
	IsWinner(p Player) bool
	// IsLoser reports whether p has lost: p is to move and has no legal
	// moves.
	IsLoser(p Player) bool
	Opponent(p Player) Player
	PlayerLocation(p Player) Move
	BlankSpaces() []Move
	ActivePlayer() Player
}

func otherPlayer(p Player) Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}
