package main

import "testing"

func makeBoard(size int, p1, p2 Move, blocked []Move, toMove Player) *Board {
	b := NewBoard(size)
	b.Place(PlayerOne, p1)
	b.Place(PlayerTwo, p2)
	for _, m := range blocked {
		b.Block(m)
	}
	b.SetToMove(toMove)
	return b
}

func TestLegalMovesSingleStepAdjacency(t *testing.T) {
	b := makeBoard(3, NewMove(0, 0), NewMove(2, 2), nil, PlayerTwo)
	got := b.LegalMoves(PlayerTwo)
	want := []Move{NewMove(1, 1), NewMove(1, 2), NewMove(2, 1)}
	if len(got) != len(want) {
		t.Fatalf("expected %d legal moves, got %d: %v", len(want), len(got), got)
	}
	for _, m := range want {
		if !containsMove(got, m) {
			t.Fatalf("expected %v in legal moves %v", m, got)
		}
	}
}

func TestLegalMovesExcludeBlockedCells(t *testing.T) {
	b := makeBoard(3, NewMove(0, 0), NewMove(2, 2), []Move{NewMove(1, 1), NewMove(1, 2)}, PlayerTwo)
	got := b.LegalMoves(PlayerTwo)
	if len(got) != 1 || !got[0].Equals(NewMove(2, 1)) {
		t.Fatalf("expected only (2,1), got %v", got)
	}
}

func TestUnplacedPlayerMayEnterAnyBlank(t *testing.T) {
	b := NewBoard(3)
	got := b.LegalMoves(PlayerOne)
	if len(got) != 9 {
		t.Fatalf("expected 9 opening moves on empty 3x3, got %d", len(got))
	}
	b.Place(PlayerOne, NewMove(1, 1))
	b.SetToMove(PlayerTwo)
	got = b.LegalMoves(PlayerTwo)
	if len(got) != 8 {
		t.Fatalf("expected 8 opening moves after one placement, got %d", len(got))
	}
	if containsMove(got, NewMove(1, 1)) {
		t.Fatalf("occupied cell should not be enterable: %v", got)
	}
}

func TestForecastMoveDoesNotMutateOriginal(t *testing.T) {
	b := makeBoard(3, NewMove(0, 0), NewMove(2, 2), nil, PlayerTwo)
	before := b.String()
	child := b.ForecastMove(NewMove(1, 1))
	if b.String() != before {
		t.Fatalf("forecast mutated original board:\n%s", b)
	}
	if b.ActivePlayer() != PlayerTwo {
		t.Fatalf("forecast changed active player of original")
	}
	if child.ActivePlayer() != PlayerOne {
		t.Fatalf("forecast should pass the turn, active = %v", child.ActivePlayer())
	}
	if !child.PlayerLocation(PlayerTwo).Equals(NewMove(1, 1)) {
		t.Fatalf("forecast should move the player, location = %v", child.PlayerLocation(PlayerTwo))
	}
}

func TestDepartedCellStaysBlocked(t *testing.T) {
	b := makeBoard(3, NewMove(0, 0), NewMove(2, 2), nil, PlayerTwo)
	child := b.ForecastMove(NewMove(1, 1)).(*Board)
	if child.At(2, 2) != CellBlocked {
		t.Fatalf("departed cell (2,2) should stay blocked")
	}
	if containsMove(child.LegalMoves(PlayerTwo), NewMove(2, 2)) {
		t.Fatalf("player should not be able to return to a departed cell")
	}
}

func TestWinnerAndLoser(t *testing.T) {
	// Player two is surrounded and to move.
	blocked := []Move{NewMove(1, 1), NewMove(1, 2), NewMove(2, 1)}
	b := makeBoard(3, NewMove(0, 0), NewMove(2, 2), blocked, PlayerTwo)
	if !b.IsLoser(PlayerTwo) {
		t.Fatalf("player two is stuck and to move, expected loser")
	}
	if !b.IsWinner(PlayerOne) {
		t.Fatalf("expected player one to be winner")
	}
	if b.IsLoser(PlayerOne) || b.IsWinner(PlayerTwo) {
		t.Fatalf("win/loss should not apply to both sides")
	}
}

func TestNoWinnerBeforeBothPlaced(t *testing.T) {
	b := NewBoard(3)
	if b.IsWinner(PlayerOne) || b.IsLoser(PlayerOne) {
		t.Fatalf("empty board should have no winner or loser")
	}
}

func TestBlankSpacesShrinkWithMoves(t *testing.T) {
	b := makeBoard(3, NewMove(0, 0), NewMove(2, 2), nil, PlayerTwo)
	if got := len(b.BlankSpaces()); got != 7 {
		t.Fatalf("expected 7 blanks, got %d", got)
	}
	child := b.ForecastMove(NewMove(1, 1))
	if got := len(child.BlankSpaces()); got != 6 {
		t.Fatalf("expected 6 blanks after a move, got %d", got)
	}
}
