// Command tiletool runs offline checks against game configurations.
//
//	tiletool validate --dir configs
//	tiletool simulate --config classic --strategy greedy --games 200 --seed 1 --archive out/games.parquet
//
// simulate autoplays games with a simple strategy and prints score
// statistics; with --archive every move is written to a Parquet file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/slide2048/game/archive"
	"github.com/wricardo/slide2048/game/config"
	"github.com/wricardo/slide2048/game/engine"
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree writing reports to out.
func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "tiletool",
		Usage:     "validate and autoplay sliding-tile game configurations",
		Writer:    out,
		ErrWriter: out,
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "validate every config JSON file in a directory",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Value: "configs", Usage: "directory containing config files"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runValidate(out, cmd.String("dir"))
				},
			},
			{
				Name:  "simulate",
				Usage: "autoplay games and report score statistics",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "directory containing config files"},
					&cli.StringFlag{Name: "config", Value: "", Usage: "config name (default config when empty)"},
					&cli.StringFlag{Name: "strategy", Value: "greedy", Usage: "random, greedy or corner"},
					&cli.IntFlag{Name: "games", Value: 100, Usage: "number of games to play"},
					&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "seed of the first game; game i uses seed+i"},
					&cli.IntFlag{Name: "max-moves", Value: 100000, Usage: "move cap per game"},
					&cli.StringFlag{Name: "archive", Value: "", Usage: "write every move to this Parquet file"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runSimulate(ctx, out, simulateOptions{
						ConfigDir: cmd.String("config-dir"),
						Config:    cmd.String("config"),
						Strategy:  cmd.String("strategy"),
						Games:     int(cmd.Int("games")),
						Seed:      cmd.Uint64("seed"),
						MaxMoves:  int(cmd.Int("max-moves")),
						Archive:   cmd.String("archive"),
					})
				},
			},
		},
	}
}

var errInvalidConfigs = errors.New("some configurations have errors")

func runValidate(out io.Writer, dir string) error {
	results, err := validateDir(dir)
	if err != nil {
		return err
	}
	if !writeValidation(out, results) {
		return errInvalidConfigs
	}
	return nil
}

type simulateOptions struct {
	ConfigDir string
	Config    string
	Strategy  string
	Games     int
	Seed      uint64
	MaxMoves  int
	Archive   string
}

func runSimulate(ctx context.Context, out io.Writer, opts simulateOptions) error {
	if opts.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", opts.Games)
	}
	if opts.MaxMoves <= 0 {
		return fmt.Errorf("max-moves must be positive, got %d", opts.MaxMoves)
	}

	gameConfig, err := loadGameConfig(opts.ConfigDir, opts.Config)
	if err != nil {
		return err
	}

	strategy, err := newStrategy(opts.Strategy, opts.Seed)
	if err != nil {
		return err
	}

	record := opts.Archive != ""
	results := make([]GameResult, 0, opts.Games)
	var rows []archive.TurnRow

	for i := 0; i < opts.Games; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := playGame(gameConfig, opts.Seed+uint64(i), strategy, opts.MaxMoves, record)
		if err != nil {
			return err
		}
		rows = append(rows, result.Rows...)
		result.Rows = nil
		results = append(results, result)
	}

	writeSummary(out, gameConfig.Name, strategy.Name(), summarize(results))

	if record {
		if err := archive.WriteFile(opts.Archive, rows); err != nil {
			return fmt.Errorf("write archive: %w", err)
		}
		fmt.Fprintf(out, "Archived %d moves to %s\n", len(rows), opts.Archive)
	}
	return nil
}

// loadGameConfig resolves a config by name, falling back to the built-in
// default when name is empty and the directory has no default config.
func loadGameConfig(dir, name string) (*engine.GameConfig, error) {
	manager, err := config.NewManager(dir)
	if err != nil {
		if name == "" {
			return engine.DefaultGameConfig(), nil
		}
		return nil, err
	}
	if name == "" {
		return manager.GetDefault(), nil
	}
	gameConfig, err := manager.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", name, err)
	}
	return gameConfig, nil
}
