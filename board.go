package main

import "strings"

type Cell int

const (
	CellBlank Cell = iota
	CellBlocked
)

// moveDirections are the eight single-step king moves.
var moveDirections = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Board is the concrete GameState. Cells a player has visited stay blocked
// for the rest of the game, including the cells the players stand on.
type Board struct {
	size      int
	cells     []Cell
	locations [2]Move
	toMove    Player
	moveCount int
}

func NewBoard(boardSize int) *Board {
	b := &Board{}
	b.Reset(boardSize)
	return b
}

func (b *Board) Reset(boardSize int) {
	b.size = boardSize
	b.cells = make([]Cell, boardSize*boardSize)
	b.locations = [2]Move{NoMove, NoMove}
	b.toMove = PlayerOne
	b.moveCount = 0
}

func (b *Board) At(row, col int) Cell {
	return b.cells[b.index(row, col)]
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.size && col < b.size
}

func (b *Board) IsBlank(row, col int) bool {
	return b.InBounds(row, col) && b.At(row, col) == CellBlank
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) MoveCount() int {
	return b.moveCount
}

func (b *Board) ActivePlayer() Player {
	return b.toMove
}

func (b *Board) Opponent(p Player) Player {
	return otherPlayer(p)
}

func (b *Board) PlayerLocation(p Player) Move {
	return b.locations[p]
}

func (b *Board) BlankSpaces() []Move {
	blanks := make([]Move, 0, len(b.cells))
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.At(row, col) == CellBlank {
				blanks = append(blanks, NewMove(row, col))
			}
		}
	}
	return blanks
}

// LegalMoves lists the blank cells p may step onto. Before p's opening
// placement every blank cell is legal.
func (b *Board) LegalMoves(p Player) []Move {
	location := b.locations[p]
	if !location.IsValid(b.size) {
		return b.BlankSpaces()
	}
	moves := make([]Move, 0, len(moveDirections))
	for _, dir := range moveDirections {
		row, col := location.Row+dir[0], location.Col+dir[1]
		if b.IsBlank(row, col) {
			moves = append(moves, NewMove(row, col))
		}
	}
	return moves
}

// ForecastMove returns the position after the active player takes m. The
// receiver is left untouched.
func (b *Board) ForecastMove(m Move) GameState {
	clone := b.Clone()
	clone.Place(clone.toMove, m)
	clone.toMove = otherPlayer(clone.toMove)
	clone.moveCount++
	return clone
}

// Place puts p on m and blocks the cell. The cell p departs stays blocked
// from when it was entered.
func (b *Board) Place(p Player, m Move) {
	b.cells[b.index(m.Row, m.Col)] = CellBlocked
	b.locations[p] = NewMove(m.Row, m.Col)
}

func (b *Board) Block(m Move) {
	b.cells[b.index(m.Row, m.Col)] = CellBlocked
}

func (b *Board) SetToMove(p Player) {
	b.toMove = p
}

// IsWinner reports whether p has won: the opponent is to move and stuck.
func (b *Board) IsWinner(p Player) bool {
	opponent := otherPlayer(p)
	return b.placed() && b.toMove == opponent && len(b.LegalMoves(opponent)) == 0
}

// IsLoser reports whether p has lost: p is to move and stuck.
func (b *Board) IsLoser(p Player) bool {
	return b.placed() && b.toMove == p && len(b.LegalMoves(p)) == 0
}

func (b *Board) placed() bool {
	return b.locations[PlayerOne].IsValid(b.size) && b.locations[PlayerTwo].IsValid(b.size)
}

func (b *Board) Clone() *Board {
	clone := &Board{
		size:      b.size,
		locations: b.locations,
		toMove:    b.toMove,
		moveCount: b.moveCount,
	}
	clone.cells = make([]Cell, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

func (b *Board) index(row, col int) int {
	return row*b.size + col
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			current := NewMove(row, col)
			switch {
			case b.locations[PlayerOne].Equals(current):
				sb.WriteByte('1')
			case b.locations[PlayerTwo].Equals(current):
				sb.WriteByte('2')
			case b.At(row, col) == CellBlocked:
				sb.WriteByte('x')
			default:
				sb.WriteByte('.')
			}
			if col < b.size-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
