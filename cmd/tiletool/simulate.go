package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/wricardo/slide2048/game/archive"
	"github.com/wricardo/slide2048/game/engine"
	"github.com/wricardo/slide2048/game/random"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Strategy picks the next direction for an autoplayed game.
// Choose is only called when at least one move is possible.
type Strategy interface {
	Name() string
	Choose(state *engine.GameState) string
}

// randomStrategy picks uniformly among the moves that change the board.
type randomStrategy struct {
	rnd *rand.Rand
}

func (s *randomStrategy) Name() string { return "random" }

func (s *randomStrategy) Choose(state *engine.GameState) string {
	return state.PossibleMoves[s.rnd.IntN(len(state.PossibleMoves))]
}

// greedyStrategy looks one move ahead and takes the largest merge gain,
// breaking ties by the number of empty cells left behind.
type greedyStrategy struct {
	scratch *rand.Rand
}

func (s *greedyStrategy) Name() string { return "greedy" }

func (s *greedyStrategy) Choose(state *engine.GameState) string {
	best := state.PossibleMoves[0]
	bestGain, bestEmpty := -1, -1

	for _, move := range state.PossibleMoves {
		dir, err := engine.ParseDirection(move)
		if err != nil {
			continue
		}
		board, err := engine.NewBoardFromCells(state.Size, state.Cells, s.scratch)
		if err != nil {
			continue
		}
		board.Slide(dir)

		gain, empty := board.Score(), board.EmptyCount()
		if gain > bestGain || (gain == bestGain && empty > bestEmpty) {
			best, bestGain, bestEmpty = move, gain, empty
		}
	}
	return best
}

// cornerStrategy keeps large tiles in the bottom-left corner by trying
// directions in a fixed preference order.
type cornerStrategy struct{}

var cornerOrder = []string{"down", "left", "right", "up"}

func (cornerStrategy) Name() string { return "corner" }

func (cornerStrategy) Choose(state *engine.GameState) string {
	for _, move := range cornerOrder {
		if slices.Contains(state.PossibleMoves, move) {
			return move
		}
	}
	return state.PossibleMoves[0]
}

// StrategyNames lists the strategies accepted by newStrategy.
var StrategyNames = []string{"random", "greedy", "corner"}

// newStrategy builds a named strategy. Randomised strategies draw from seed.
func newStrategy(name string, seed uint64) (Strategy, error) {
	switch name {
	case "random":
		return &randomStrategy{rnd: random.New(seed)}, nil
	case "greedy":
		return &greedyStrategy{scratch: random.New(seed)}, nil
	case "corner":
		return cornerStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", name, StrategyNames)
	}
}

// GameResult is the outcome of one autoplayed game.
type GameResult struct {
	Seed    uint64
	Score   int
	MaxTile uint32
	Moves   int
	Victory bool
	Rows    []archive.TurnRow
}

// playGame runs one game to the end or until maxMoves moves were made.
// Turn rows are only collected when record is set.
func playGame(config *engine.GameConfig, seed uint64, strategy Strategy, maxMoves int, record bool) (GameResult, error) {
	eng, err := engine.NewEngine(config, seed)
	if err != nil {
		return GameResult{}, fmt.Errorf("start game: %w", err)
	}

	gameID := fmt.Sprintf("%s-%s-%d", config.Name, strategy.Name(), seed)
	result := GameResult{Seed: seed}

	for !eng.IsGameOver() && result.Moves < maxMoves {
		state := eng.GetState()
		if len(state.PossibleMoves) == 0 {
			break
		}

		move := strategy.Choose(state)
		changed := eng.Move(move)
		result.Moves++

		if record {
			state = eng.GetState()
			result.Rows = append(result.Rows, archive.TurnRow{
				GameID:    gameID,
				Turn:      int32(result.Moves),
				Size:      int32(state.Size),
				Cells:     toInt32(state.Cells),
				Direction: move,
				Changed:   changed,
				Score:     int64(state.Score),
				MaxTile:   int32(state.MaxTile),
				Terminal:  state.GameOver,
				Strategy:  strategy.Name(),
				Seed:      int64(seed),
			})
		}
	}

	final := eng.GetState()
	result.Score = final.Score
	result.MaxTile = final.MaxTile
	result.Victory = final.Victory
	return result, nil
}

func toInt32(cells []uint32) []int32 {
	out := make([]int32, len(cells))
	for i, v := range cells {
		out[i] = int32(v)
	}
	return out
}

// Summary aggregates a batch of game results.
type Summary struct {
	Games     int
	Mean      float64
	StdDev    float64
	Median    float64
	Max       float64
	Min       float64
	MeanMoves float64
	Victories int
	// MaxTiles counts games by the largest tile they reached.
	MaxTiles map[uint32]int
}

// summarize computes score statistics over results.
func summarize(results []GameResult) Summary {
	summary := Summary{Games: len(results), MaxTiles: make(map[uint32]int)}
	if len(results) == 0 {
		return summary
	}

	scores := make([]float64, len(results))
	moves := make([]float64, len(results))
	for i, r := range results {
		scores[i] = float64(r.Score)
		moves[i] = float64(r.Moves)
		summary.MaxTiles[r.MaxTile]++
		if r.Victory {
			summary.Victories++
		}
	}

	summary.Mean, summary.StdDev = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		summary.StdDev = 0
	}
	summary.MeanMoves = stat.Mean(moves, nil)
	summary.Max = floats.Max(scores)
	summary.Min = floats.Min(scores)

	sort.Float64s(scores)
	summary.Median = stat.Quantile(0.5, stat.Empirical, scores, nil)

	return summary
}

// writeSummary prints a summary in a fixed, human-readable layout.
func writeSummary(w io.Writer, configName, strategy string, s Summary) {
	fmt.Fprintf(w, "Config: %s  Strategy: %s  Games: %d\n", configName, strategy, s.Games)
	fmt.Fprintf(w, "Score  mean %.1f  stddev %.1f  median %.0f  min %.0f  max %.0f\n", s.Mean, s.StdDev, s.Median, s.Min, s.Max)
	fmt.Fprintf(w, "Moves  mean %.1f\n", s.MeanMoves)
	fmt.Fprintf(w, "Victories: %d/%d\n", s.Victories, s.Games)

	tiles := make([]uint32, 0, len(s.MaxTiles))
	for tile := range s.MaxTiles {
		tiles = append(tiles, tile)
	}
	slices.Sort(tiles)

	fmt.Fprintln(w, "Max tile distribution:")
	for _, tile := range tiles {
		count := s.MaxTiles[tile]
		fmt.Fprintf(w, "  %6d  %4d  %5.1f%%\n", tile, count, 100*float64(count)/float64(s.Games))
	}
}
