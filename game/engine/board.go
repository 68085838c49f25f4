package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Rand is the randomness a Board draws on. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Board is a size×size grid of tiles stored row-major in a flat slice.
// A Board is owned by a single caller and is not safe for concurrent use.
type Board struct {
	size  int
	cells []uint32
	score int
	rnd   Rand
}

// NewBoard creates a board with StartTiles tiles of SpawnValue placed on the
// first positions of a uniform shuffle of all cells.
func NewBoard(size int, rnd Rand) (*Board, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}
	if rnd == nil {
		return nil, ErrNilRandom
	}

	b := &Board{
		size:  size,
		cells: make([]uint32, size*size),
		rnd:   rnd,
	}

	indices := make([]int, len(b.cells))
	for i := range indices {
		indices[i] = i
	}
	rnd.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	for _, idx := range indices[:StartTiles] {
		b.cells[idx] = SpawnValue
	}

	return b, nil
}

// NewBoardFromCells restores a board from a row-major cell slice. The slice is copied.
func NewBoardFromCells(size int, cells []uint32, rnd Rand) (*Board, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}
	if rnd == nil {
		return nil, ErrNilRandom
	}
	if len(cells) != size*size {
		return nil, fmt.Errorf("%w: expected %d cells for size %d, got %d", ErrInvalidCells, size*size, size, len(cells))
	}
	for i, v := range cells {
		if v != EmptyCell && !IsPowerOfTwo(v) {
			return nil, fmt.Errorf("%w: cell %d holds %d, not a power of two", ErrInvalidCells, i, v)
		}
	}

	b := &Board{
		size:  size,
		cells: make([]uint32, len(cells)),
		rnd:   rnd,
	}
	copy(b.cells, cells)
	return b, nil
}

func validateSize(size int) error {
	if size < MinGridSize || size > MaxGridSize {
		return fmt.Errorf("%w: must be between %d and %d, got %d", ErrInvalidSize, MinGridSize, MaxGridSize, size)
	}
	return nil
}

// Size returns the side length of the grid.
func (b *Board) Size() int {
	return b.size
}

// Cells returns a row-major copy of the grid.
func (b *Board) Cells() []uint32 {
	out := make([]uint32, len(b.cells))
	copy(out, b.cells)
	return out
}

// At returns the value at row, col.
func (b *Board) At(row, col int) uint32 {
	return b.cells[row*b.size+col]
}

// Score returns the sum of every tile produced by a merge so far.
func (b *Board) Score() int {
	return b.score
}

// MaxTile returns the largest value on the board.
func (b *Board) MaxTile() uint32 {
	return MaxTile(b.cells)
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	n := 0
	for _, v := range b.cells {
		if v == EmptyCell {
			n++
		}
	}
	return n
}

// Slide moves every tile toward the edge named by dir, merging equal
// neighbours once per move. It reports whether the grid changed; a changed
// grid with room left gets one new SpawnValue tile. A blocked move spawns nothing.
func (b *Board) Slide(dir Direction) bool {
	changed, gained := b.slideLines(dir)
	if !changed {
		return false
	}
	b.score += int(gained)
	b.spawnNewNumber()
	return true
}

// CanSlide reports whether Slide(dir) would change the board, without mutating it.
func (b *Board) CanSlide(dir Direction) bool {
	trial := &Board{size: b.size, cells: b.Cells()}
	changed, _ := trial.slideLines(dir)
	return changed
}

// slideLines compacts every row of the working orientation. Vertical moves
// run on the transposed grid so only rows are ever compacted.
func (b *Board) slideLines(dir Direction) (bool, uint32) {
	if dir.vertical() {
		b.transpose()
		defer b.transpose()
	}

	toEnd := dir.towardEnd()
	changed := false
	var gained uint32

	for r := 0; r < b.size; r++ {
		line := b.cells[r*b.size : (r+1)*b.size]
		if toEnd {
			reverseLine(line)
		}
		if lineChanges(line) {
			gained += compactLine(line)
			changed = true
		}
		if toEnd {
			reverseLine(line)
		}
	}

	return changed, gained
}

// spawnNewNumber places SpawnValue on a uniformly chosen empty cell.
// It returns false when the board is full.
func (b *Board) spawnNewNumber() bool {
	empty := make([]int, 0, len(b.cells))
	for i, v := range b.cells {
		if v == EmptyCell {
			empty = append(empty, i)
		}
	}
	if len(empty) == 0 {
		return false
	}

	b.cells[empty[b.rnd.IntN(len(empty))]] = SpawnValue
	return true
}

// IsEnd reports whether no move can change the board: every cell is filled
// and no two row- or column-adjacent cells are equal.
func (b *Board) IsEnd() bool {
	for _, v := range b.cells {
		if v == EmptyCell {
			return false
		}
	}

	n := b.size
	for a := 0; a < n; a++ {
		for c := 0; c+1 < n; c++ {
			// a is the row, c the column
			if b.cells[a*n+c] == b.cells[a*n+c+1] {
				return false
			}
			// a is the column, c the row
			if b.cells[c*n+a] == b.cells[(c+1)*n+a] {
				return false
			}
		}
	}

	return true
}

// transpose swaps (r, c) with (c, r) in place.
func (b *Board) transpose() {
	n := b.size
	for r := 0; r < n; r++ {
		for c := r + 1; c < n; c++ {
			b.cells[r*n+c], b.cells[c*n+r] = b.cells[c*n+r], b.cells[r*n+c]
		}
	}
}

// String renders the board as pipe-separated rows, one per line.
func (b *Board) String() string {
	return strings.Join(FormatRows(b.size, b.cells), "\n")
}

// FormatRows renders a row-major grid as fixed-width text rows; empty cells are blank.
func FormatRows(size int, cells []uint32) []string {
	width := 1
	for _, v := range cells {
		if l := len(strconv.FormatUint(uint64(v), 10)); l > width {
			width = l
		}
	}

	rows := make([]string, 0, size)
	for r := 0; r < size; r++ {
		var sb strings.Builder
		for c := 0; c < size; c++ {
			v := cells[r*size+c]
			sb.WriteByte('|')
			if v == EmptyCell {
				sb.WriteString(strings.Repeat(" ", width))
			} else {
				fmt.Fprintf(&sb, "%*d", width, v)
			}
		}
		sb.WriteByte('|')
		rows = append(rows, sb.String())
	}
	return rows
}
