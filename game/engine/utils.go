package engine

// IsPowerOfTwo reports whether v is a positive power of two.
func IsPowerOfTwo(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

// CountTiles counts the non-empty cells in a row-major grid.
func CountTiles(cells []uint32) int {
	count := 0
	for _, v := range cells {
		if v != EmptyCell {
			count++
		}
	}
	return count
}

// TileHistogram counts how many cells hold each non-empty value
func TileHistogram(cells []uint32) map[uint32]int {
	hist := make(map[uint32]int)
	for _, v := range cells {
		if v != EmptyCell {
			hist[v]++
		}
	}
	return hist
}

// MaxTile returns the largest value in a row-major grid.
func MaxTile(cells []uint32) uint32 {
	var top uint32
	for _, v := range cells {
		if v > top {
			top = v
		}
	}
	return top
}
