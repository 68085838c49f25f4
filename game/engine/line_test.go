package engine

import (
	"reflect"
	"testing"
)

func TestCompactLine_TowardStart(t *testing.T) {
	tests := []struct {
		name     string
		input    []uint32
		expected []uint32
		gained   uint32
	}{
		{"empty line", []uint32{}, []uint32{}, 0},
		{"single cell", []uint32{2}, []uint32{2}, 0},
		{"pair merges", []uint32{1, 1, 0, 0}, []uint32{2, 0, 0, 0}, 2},
		{"three equal", []uint32{1, 1, 1, 0}, []uint32{2, 1, 0, 0}, 2},
		{"four equal", []uint32{1, 1, 1, 1}, []uint32{2, 2, 0, 0}, 4},
		{"alternating stays", []uint32{1, 2, 1, 2}, []uint32{1, 2, 1, 2}, 0},
		{"merge after distinct", []uint32{1, 2, 2, 2}, []uint32{1, 4, 2, 0}, 4},
		{"merge then shift", []uint32{2, 2, 2, 1}, []uint32{4, 2, 1, 0}, 4},
		{"gaps between equals", []uint32{2, 0, 2, 0, 2, 0, 1}, []uint32{4, 2, 1, 0, 0, 0, 0}, 4},
		{"merged tile does not merge again", []uint32{4, 4, 8, 0}, []uint32{8, 8, 0, 0}, 8},
		{"shift only", []uint32{0, 0, 0, 2}, []uint32{2, 0, 0, 0}, 0},
		{"two merges", []uint32{2, 2, 4, 4}, []uint32{4, 8, 0, 0}, 12},
		{"far apart equals", []uint32{8, 0, 0, 8}, []uint32{16, 0, 0, 0}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := append([]uint32(nil), tt.input...)
			gained := compactLine(line)
			if len(tt.expected) == 0 && len(line) == 0 {
				return
			}
			if !reflect.DeepEqual(line, tt.expected) {
				t.Errorf("compactLine(%v) = %v, want %v", tt.input, line, tt.expected)
			}
			if gained != tt.gained {
				t.Errorf("compactLine(%v) gained %d, want %d", tt.input, gained, tt.gained)
			}
		})
	}
}

func TestCompactLine_TowardEnd(t *testing.T) {
	tests := []struct {
		input    []uint32
		expected []uint32
	}{
		{[]uint32{0, 0, 1, 1}, []uint32{0, 0, 0, 2}},
		{[]uint32{0, 1, 1, 1}, []uint32{0, 0, 1, 2}},
		{[]uint32{1, 1, 1, 1}, []uint32{0, 0, 2, 2}},
		{[]uint32{1, 2, 1, 2}, []uint32{1, 2, 1, 2}},
		{[]uint32{1, 2, 2, 2}, []uint32{0, 1, 2, 4}},
	}

	for _, tt := range tests {
		line := append([]uint32(nil), tt.input...)
		reverseLine(line)
		compactLine(line)
		reverseLine(line)
		if !reflect.DeepEqual(line, tt.expected) {
			t.Errorf("compact toward end %v = %v, want %v", tt.input, line, tt.expected)
		}
	}
}

func TestLineChanges(t *testing.T) {
	tests := []struct {
		input   []uint32
		toStart bool
		toEnd   bool
	}{
		{[]uint32{}, false, false},
		{[]uint32{1}, false, false},
		{[]uint32{0}, false, false},
		{[]uint32{1, 1}, true, true},
		{[]uint32{1, 2}, false, false},
		{[]uint32{1, 2, 0, 0}, false, true},
		{[]uint32{0, 0, 1, 2}, true, false},
		{[]uint32{0, 1, 2, 1}, true, false},
		{[]uint32{1, 0, 0, 1}, true, true},
		{[]uint32{0, 0, 0, 0}, false, false},
	}

	for _, tt := range tests {
		line := append([]uint32(nil), tt.input...)
		if got := lineChanges(line); got != tt.toStart {
			t.Errorf("lineChanges(%v) toward start = %v, want %v", tt.input, got, tt.toStart)
		}

		reverseLine(line)
		if got := lineChanges(line); got != tt.toEnd {
			t.Errorf("lineChanges(%v) toward end = %v, want %v", tt.input, got, tt.toEnd)
		}
	}
}

// lineChanges must agree with what compactLine actually does.
func TestLineChanges_MatchesCompaction(t *testing.T) {
	values := []uint32{0, 2, 4}
	line := make([]uint32, 4)

	var walk func(i int)
	walk = func(i int) {
		if i == len(line) {
			before := append([]uint32(nil), line...)
			after := append([]uint32(nil), line...)
			compactLine(after)
			predicted := lineChanges(before)
			actual := !reflect.DeepEqual(before, after)
			if predicted != actual {
				t.Errorf("line %v: lineChanges = %v but compaction changed = %v", before, predicted, actual)
			}
			return
		}
		for _, v := range values {
			line[i] = v
			walk(i + 1)
		}
	}
	walk(0)
}

func TestReverseLine(t *testing.T) {
	line := []uint32{1, 2, 4, 8, 16}
	reverseLine(line)
	if !reflect.DeepEqual(line, []uint32{16, 8, 4, 2, 1}) {
		t.Errorf("unexpected reverse: %v", line)
	}
}
