package engine

// compactLine packs the non-zero values of line toward index 0, merging equal
// neighbours at most once per resulting tile. It returns the sum of the merged
// tiles.
//
// pos is the write cursor. Everything strictly between pos and the scan index
// is empty, so an incoming value only ever meets the tile sitting at pos.
func compactLine(line []uint32) uint32 {
	var gained uint32
	pos := 0

	for i := 0; i < len(line); i++ {
		v := line[i]
		if v == EmptyCell || i == pos {
			continue
		}

		if line[pos] == v {
			line[pos] += v
			line[i] = EmptyCell
			gained += line[pos]
			pos++
			continue
		}

		for pos != i && line[pos] != EmptyCell {
			pos++
		}
		if pos != i {
			line[pos] = v
			line[i] = EmptyCell
		}
	}

	return gained
}

// lineChanges reports whether compactLine would modify line: either a gap
// precedes a tile or two equal tiles touch.
func lineChanges(line []uint32) bool {
	for i := 1; i < len(line); i++ {
		prev := line[i-1]
		if prev == EmptyCell {
			for _, v := range line[i:] {
				if v != EmptyCell {
					return true
				}
			}
			return false
		}
		if prev == line[i] {
			return true
		}
	}
	return false
}

func reverseLine(line []uint32) {
	for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
		line[i], line[j] = line[j], line[i]
	}
}
