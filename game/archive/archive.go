// Package archive stores finished games as Parquet files, one row per move.
//
// Rows are self-contained board snapshots taken after each move, so an
// archive can be analysed without replaying the engine.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// SchemaVersion is written to the file metadata under the "schema" key.
const SchemaVersion = "turn_v1"

// ErrSchemaMismatch is returned when a file was written with a different row layout.
var ErrSchemaMismatch = errors.New("archive schema mismatch")

// TurnRow is the board after one move of one game.
//
// Cells is row-major with 0 for empty cells. Direction is the lowercase
// move name; a blocked move has Changed=false and an unchanged board.
type TurnRow struct {
	GameID    string  `parquet:"game_id,dict"`
	Turn      int32   `parquet:"turn"`
	Size      int32   `parquet:"size"`
	Cells     []int32 `parquet:"cells"`
	Direction string  `parquet:"direction,dict"`
	Changed   bool    `parquet:"changed"`
	Score     int64   `parquet:"score"`
	MaxTile   int32   `parquet:"max_tile"`
	Terminal  bool    `parquet:"terminal"`
	Strategy  string  `parquet:"strategy,dict"`
	Seed      int64   `parquet:"seed"`
}

// WriteFile writes rows to path through a temporary file that is renamed into place.
func WriteFile(path string, rows []TurnRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadFile loads every row of an archive written by WriteFile.
func ReadFile(path string) ([]TurnRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	if schema, ok := pf.Lookup("schema"); !ok || schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %q", ErrSchemaMismatch, schema)
	}

	reader := parquet.NewGenericReader[TurnRow](pf)
	defer reader.Close()

	rows := make([]TurnRow, 0, reader.NumRows())
	buf := make([]TurnRow, 256)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return rows, nil
}

// Games groups rows by game id, preserving first-seen order and turn order within a game.
func Games(rows []TurnRow) [][]TurnRow {
	index := make(map[string]int)
	var games [][]TurnRow
	for _, row := range rows {
		i, ok := index[row.GameID]
		if !ok {
			i = len(games)
			index[row.GameID] = i
			games = append(games, nil)
		}
		games[i] = append(games[i], row)
	}
	return games
}
