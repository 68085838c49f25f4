package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// serverEnv holds settings read from the environment. Flags override them.
type serverEnv struct {
	Mode           string        `env:"SLIDE_MODE" envDefault:"server"`
	Port           int           `env:"PORT" envDefault:"8080"`
	Host           string        `env:"HOST" envDefault:"localhost"`
	ConfigDir      string        `env:"CONFIG_DIR" envDefault:"configs"`
	SessionsDir    string        `env:"SESSIONS_DIR" envDefault:"sessions"`
	ScoresDB       string        `env:"SCORES_DB" envDefault:"scores.db"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	Debug          bool          `env:"DEBUG"`
	NgrokEnabled   bool          `env:"NGROK_ENABLED"`
	NgrokAuthToken string        `env:"NGROK_AUTHTOKEN"`
	NgrokDomain    string        `env:"NGROK_DOMAIN"`
}

// loadEnv parses serverEnv from the process environment.
func loadEnv() (serverEnv, error) {
	var cfg serverEnv
	if err := env.Parse(&cfg); err != nil {
		return serverEnv{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.NgrokAuthToken == "" {
		cfg.NgrokAuthToken = os.Getenv("NGROK_AUTH_TOKEN")
	}
	return cfg, nil
}

// options is the effective configuration after flags are applied.
type options struct {
	serverEnv
	Version bool
}

// parseOptions parses command line flags on top of the environment defaults.
func parseOptions(name string, args []string, defaults serverEnv, output io.Writer) (options, error) {
	opts := options{serverEnv: defaults}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.Mode, "mode", defaults.Mode, "Server mode: 'server' (HTTP + WebSocket + MCP) or 'stdio-mcp' (MCP over stdio)")
	fs.IntVar(&opts.Port, "port", defaults.Port, "HTTP server port")
	fs.StringVar(&opts.Host, "host", defaults.Host, "HTTP server host")
	fs.StringVar(&opts.ConfigDir, "config-dir", defaults.ConfigDir, "Directory containing game configurations")
	fs.StringVar(&opts.SessionsDir, "sessions-dir", defaults.SessionsDir, "Directory for persisted sessions")
	fs.StringVar(&opts.ScoresDB, "scores-db", defaults.ScoresDB, "SQLite file for the leaderboard (empty disables it)")
	fs.DurationVar(&opts.SessionTTL, "session-ttl", defaults.SessionTTL, "Idle time before a session is dropped from memory")
	fs.BoolVar(&opts.Debug, "debug", defaults.Debug, "Enable debug logging")
	fs.BoolVar(&opts.Version, "version", false, "Show version information")
	fs.BoolVar(&opts.NgrokEnabled, "ngrok", defaults.NgrokEnabled, "Enable ngrok tunnel for public access")
	fs.StringVar(&opts.NgrokAuthToken, "ngrok-auth", defaults.NgrokAuthToken, "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	fs.StringVar(&opts.NgrokDomain, "ngrok-domain", defaults.NgrokDomain, "Custom ngrok domain (optional)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.Port < 0 || opts.Port > 65535 {
		return options{}, fmt.Errorf("invalid port %d", opts.Port)
	}
	return opts, nil
}
