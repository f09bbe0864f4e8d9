package main

// ScoreFn evaluates a position from the point of view of player.
// Higher is better for player.
type ScoreFn func(state GameState, player Player) float64

// OpenMoveScore is the mobility difference: own moves minus opponent moves.
func OpenMoveScore(state GameState, player Player) float64 {
	own := len(state.LegalMoves(player))
	opp := len(state.LegalMoves(state.Opponent(player)))
	return float64(own - opp)
}

// ImprovedScore scales the mobility difference by how crowded the board is
// and how far apart the players stand. Early positions with many blanks and
// distant players score near zero, so the search prefers concrete mobility
// advantages in tight endgames.
func ImprovedScore(state GameState, player Player) float64 {
	opponent := state.Opponent(player)
	own := len(state.LegalMoves(player))
	opp := len(state.LegalMoves(opponent))
	dist := ManhattanDistance(state.PlayerLocation(player), state.PlayerLocation(opponent))
	blanks := len(state.BlankSpaces())
	return float64(own-opp) / float64(1+dist+blanks)
}
