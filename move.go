package main

// Move is a board coordinate. Depth carries the search depth that produced
// the move, for history reporting; it is ignored by equality.
type Move struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Depth int `json:"depth,omitempty"`
}

// NoMove is the sentinel returned when no move can be produced.
var NoMove = Move{Row: -1, Col: -1}

func NewMove(row, col int) Move {
	return Move{Row: row, Col: col}
}

func (m Move) IsValid(boardSize int) bool {
	return m.Row >= 0 && m.Col >= 0 && m.Row < boardSize && m.Col < boardSize
}

func (m Move) Equals(other Move) bool {
	return m.Row == other.Row && m.Col == other.Col
}

// ManhattanDistance is |r1-r2| + |c1-c2|.
func ManhattanDistance(a, b Move) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

func containsMove(moves []Move, m Move) bool {
	for _, candidate := range moves {
		if candidate.Equals(m) {
			return true
		}
	}
	return false
}
