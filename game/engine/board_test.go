package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wricardo/slide2048/game/random"
)

// lastRand never shuffles and always picks the last candidate, so spawns land
// on the highest empty index.
type lastRand struct{}

func (lastRand) IntN(n int) int                     { return n - 1 }
func (lastRand) Shuffle(n int, swap func(i, j int)) {}

func mustBoard(t *testing.T, size int, cells []uint32) *Board {
	t.Helper()
	b, err := NewBoardFromCells(size, cells, lastRand{})
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}
	return b
}

func row(b *Board, r int) []uint32 {
	return b.Cells()[r*b.Size() : (r+1)*b.Size()]
}

func TestNewBoard(t *testing.T) {
	b, err := NewBoard(4, random.New(1))
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	if b.Size() != 4 {
		t.Errorf("Expected size 4, got %d", b.Size())
	}
	cells := b.Cells()
	if len(cells) != 16 {
		t.Fatalf("Expected 16 cells, got %d", len(cells))
	}
	if CountTiles(cells) != StartTiles {
		t.Errorf("Expected %d tiles, got %d", StartTiles, CountTiles(cells))
	}
	for i, v := range cells {
		if v != EmptyCell && v != SpawnValue {
			t.Errorf("Cell %d: expected 0 or %d, got %d", i, SpawnValue, v)
		}
	}
	if b.IsEnd() {
		t.Error("A fresh board must not be terminal")
	}
}

func TestNewBoard_UsesShuffleOrder(t *testing.T) {
	b, err := NewBoard(3, lastRand{})
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	// An identity shuffle seeds the first two indices
	expected := []uint32{2, 2, 0, 0, 0, 0, 0, 0, 0}
	if !reflect.DeepEqual(b.Cells(), expected) {
		t.Errorf("Expected %v, got %v", expected, b.Cells())
	}
}

func TestNewBoard_InvalidSize(t *testing.T) {
	for _, size := range []int{-1, 0, 1, MaxGridSize + 1} {
		_, err := NewBoard(size, random.New(1))
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("size %d: expected ErrInvalidSize, got %v", size, err)
		}
	}
}

func TestNewBoard_NilRandom(t *testing.T) {
	if _, err := NewBoard(4, nil); !errors.Is(err, ErrNilRandom) {
		t.Errorf("Expected ErrNilRandom, got %v", err)
	}
}

func TestNewBoard_SameSeedSameBoard(t *testing.T) {
	a, _ := NewBoard(4, random.New(99))
	b, _ := NewBoard(4, random.New(99))
	if !reflect.DeepEqual(a.Cells(), b.Cells()) {
		t.Errorf("Expected identical boards, got %v and %v", a.Cells(), b.Cells())
	}
}

func TestNewBoardFromCells_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		cells []uint32
		want  error
	}{
		{"wrong length", 2, []uint32{2, 2, 2}, ErrInvalidCells},
		{"not a power of two", 2, []uint32{2, 3, 0, 0}, ErrInvalidCells},
		{"size too small", 1, []uint32{2}, ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoardFromCells(tt.size, tt.cells, lastRand{})
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewBoardFromCells_CopiesInput(t *testing.T) {
	cells := []uint32{2, 0, 0, 0}
	b := mustBoard(t, 2, cells)
	cells[0] = 8
	if b.At(0, 0) != 2 {
		t.Errorf("Board aliased the input slice")
	}
}

func TestSlide_RowOfOnes(t *testing.T) {
	cells := make([]uint32, 16)
	copy(cells, []uint32{1, 1, 1, 1})

	left := mustBoard(t, 4, cells)
	if !left.Slide(Left) {
		t.Fatal("Expected Left to change the board")
	}
	if got := row(left, 0); !reflect.DeepEqual(got, []uint32{2, 2, 0, 0}) {
		t.Errorf("Left: expected [2 2 0 0], got %v", got)
	}

	right := mustBoard(t, 4, cells)
	if !right.Slide(Right) {
		t.Fatal("Expected Right to change the board")
	}
	if got := row(right, 0); !reflect.DeepEqual(got, []uint32{0, 0, 2, 2}) {
		t.Errorf("Right: expected [0 0 2 2], got %v", got)
	}
}

func TestSlide_AlternatingBoardIsStable(t *testing.T) {
	cells := []uint32{
		1, 2, 1, 2,
		2, 1, 2, 1,
		1, 2, 1, 2,
		2, 1, 2, 1,
	}
	b := mustBoard(t, 4, cells)

	for _, dir := range Directions {
		if b.Slide(dir) {
			t.Errorf("%s: expected no change", dir)
		}
		if !reflect.DeepEqual(b.Cells(), cells) {
			t.Errorf("%s: board changed to %v", dir, b.Cells())
		}
	}
}

func TestSlide_BlockedMoveDoesNotSpawn(t *testing.T) {
	cells := []uint32{
		2, 0, 0, 0,
		4, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	b := mustBoard(t, 4, cells)

	if b.Slide(Left) {
		t.Error("Expected Left to be blocked")
	}
	if !reflect.DeepEqual(b.Cells(), cells) {
		t.Errorf("Blocked move mutated the board: %v", b.Cells())
	}
	if b.Score() != 0 {
		t.Errorf("Blocked move changed the score to %d", b.Score())
	}
}

func TestSlide_ChangingMoveSpawnsExactlyOne(t *testing.T) {
	cells := []uint32{
		0, 0, 0, 2,
		0, 4, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	b := mustBoard(t, 4, cells)
	before := CountTiles(b.Cells())

	if !b.Slide(Left) {
		t.Fatal("Expected Left to change the board")
	}
	if after := CountTiles(b.Cells()); after != before+1 {
		t.Errorf("Expected %d tiles after the move, got %d", before+1, after)
	}
	// lastRand spawns on the highest empty index
	if b.At(3, 3) != SpawnValue {
		t.Errorf("Expected spawn at (3,3), got %v", b.Cells())
	}
}

func TestSlide_MergeScores(t *testing.T) {
	cells := []uint32{
		2, 2, 0, 0,
		4, 0, 4, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	b := mustBoard(t, 4, cells)

	if !b.Slide(Left) {
		t.Fatal("Expected Left to change the board")
	}
	if b.Score() != 4+8 {
		t.Errorf("Expected score 12, got %d", b.Score())
	}
	if got := row(b, 0); !reflect.DeepEqual(got, []uint32{4, 0, 0, 0}) {
		t.Errorf("Row 0: expected [4 0 0 0], got %v", got)
	}
	if got := row(b, 1); !reflect.DeepEqual(got, []uint32{8, 0, 0, 0}) {
		t.Errorf("Row 1: expected [8 0 0 0], got %v", got)
	}
}

func TestSlide_Vertical(t *testing.T) {
	cells := []uint32{
		2, 0, 0,
		2, 0, 0,
		4, 0, 0,
	}

	up := mustBoard(t, 3, cells)
	if !up.Slide(Up) {
		t.Fatal("Expected Up to change the board")
	}
	if up.At(0, 0) != 4 || up.At(1, 0) != 4 || up.At(2, 0) != 0 {
		t.Errorf("Up: unexpected column %v", up.Cells())
	}

	down := mustBoard(t, 3, cells)
	if !down.Slide(Down) {
		t.Fatal("Expected Down to change the board")
	}
	if down.At(0, 0) != 0 || down.At(1, 0) != 4 || down.At(2, 0) != 4 {
		t.Errorf("Down: unexpected column %v", down.Cells())
	}
}

func TestSlide_FullBoardMergeStillSpawns(t *testing.T) {
	cells := []uint32{
		2, 2,
		4, 8,
	}
	b := mustBoard(t, 2, cells)

	if !b.Slide(Left) {
		t.Fatal("Expected Left to merge")
	}
	expected := []uint32{4, 2, 4, 8}
	if !reflect.DeepEqual(b.Cells(), expected) {
		t.Errorf("Expected %v, got %v", expected, b.Cells())
	}
}

func TestCanSlide_DoesNotMutate(t *testing.T) {
	cells := []uint32{
		0, 2, 0, 2,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	b := mustBoard(t, 4, cells)

	tests := map[Direction]bool{Up: false, Down: true, Left: true, Right: true}
	for dir, want := range tests {
		if got := b.CanSlide(dir); got != want {
			t.Errorf("CanSlide(%s) = %v, want %v", dir, got, want)
		}
	}
	if !reflect.DeepEqual(b.Cells(), cells) {
		t.Errorf("CanSlide mutated the board: %v", b.Cells())
	}
}

func TestSpawnNewNumber_FullBoard(t *testing.T) {
	b := mustBoard(t, 2, []uint32{2, 4, 8, 16})
	if b.spawnNewNumber() {
		t.Error("Expected spawn to fail on a full board")
	}

	b = mustBoard(t, 2, []uint32{2, 4, 8, 0})
	if !b.spawnNewNumber() {
		t.Fatal("Expected spawn to succeed")
	}
	if b.At(1, 1) != SpawnValue {
		t.Errorf("Expected spawn at the only empty cell, got %v", b.Cells())
	}
}

func TestIsEnd(t *testing.T) {
	tests := []struct {
		name     string
		cells    []uint32
		expected bool
	}{
		{"empty board", make([]uint32, 16), false},
		{"full of equal tiles", []uint32{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}, false},
		{"full with no pairs", []uint32{
			2, 4, 8, 16,
			32, 64, 128, 256,
			2, 4, 8, 16,
			32, 64, 128, 256,
		}, true},
		{"row pair", []uint32{
			2, 4, 8, 16,
			32, 64, 128, 256,
			2, 4, 8, 8,
			32, 64, 128, 256,
		}, false},
		{"column pair", []uint32{
			2, 4, 8, 16,
			32, 64, 128, 256,
			2, 4, 8, 16,
			32, 64, 128, 16,
		}, false},
		{"one empty cell", []uint32{
			2, 4, 8, 16,
			32, 64, 128, 256,
			2, 4, 8, 16,
			32, 64, 128, 0,
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, 4, tt.cells)
			if got := b.IsEnd(); got != tt.expected {
				t.Errorf("IsEnd() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsEnd_TerminalBoardHasNoMoves(t *testing.T) {
	b := mustBoard(t, 2, []uint32{2, 4, 4, 2})
	if !b.IsEnd() {
		t.Fatal("Expected terminal board")
	}
	for _, dir := range Directions {
		if b.CanSlide(dir) {
			t.Errorf("Terminal board can still slide %s", dir)
		}
	}
}

func TestTranspose(t *testing.T) {
	cells := []uint32{
		1, 2, 4,
		8, 16, 32,
		64, 128, 256,
	}
	b := mustBoard(t, 3, cells)

	b.transpose()
	expected := []uint32{
		1, 8, 64,
		2, 16, 128,
		4, 32, 256,
	}
	if !reflect.DeepEqual(b.Cells(), expected) {
		t.Errorf("Expected %v, got %v", expected, b.Cells())
	}

	b.transpose()
	if !reflect.DeepEqual(b.Cells(), cells) {
		t.Errorf("Double transpose: expected %v, got %v", cells, b.Cells())
	}
}

func TestSlide_SameSeedSameGame(t *testing.T) {
	moves := []Direction{Left, Up, Right, Down, Left, Left, Up, Right}

	play := func() []uint32 {
		b, err := NewBoard(4, random.New(2024))
		if err != nil {
			t.Fatalf("Failed to create board: %v", err)
		}
		for _, m := range moves {
			b.Slide(m)
		}
		return b.Cells()
	}

	if a, b := play(), play(); !reflect.DeepEqual(a, b) {
		t.Errorf("Same seed produced different boards: %v vs %v", a, b)
	}
}

func TestSlide_TilesStayPowersOfTwo(t *testing.T) {
	rnd := random.New(7)
	b, err := NewBoard(4, rnd)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	for i := 0; i < 500 && !b.IsEnd(); i++ {
		before := CountTiles(b.Cells())
		changed := b.Slide(Directions[rnd.IntN(len(Directions))])
		after := CountTiles(b.Cells())

		if !changed && after != before {
			t.Fatalf("Move %d: blocked move changed tile count %d -> %d", i, before, after)
		}
		if after > before+1 {
			t.Fatalf("Move %d: tile count grew by more than one (%d -> %d)", i, before, after)
		}
		for idx, v := range b.Cells() {
			if v != EmptyCell && !IsPowerOfTwo(v) {
				t.Fatalf("Move %d: cell %d holds %d", i, idx, v)
			}
		}
	}
}

func TestFormatRows(t *testing.T) {
	rows := FormatRows(2, []uint32{2, 0, 16, 4})
	expected := []string{"| 2|  |", "|16| 4|"}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Expected %q, got %q", expected, rows)
	}
}
