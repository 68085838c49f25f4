// Command slide2048 starts the sliding-tile game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Settings come from the environment (optionally a .env file) and can be
// overridden with flags. Finished games are kept in a SQLite leaderboard.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/slide2048/api"
	"github.com/wricardo/slide2048/game/config"
	"github.com/wricardo/slide2048/game/scores"
	"github.com/wricardo/slide2048/game/service"
	"github.com/wricardo/slide2048/game/session"
	"github.com/wricardo/slide2048/transport/mcp"
	"github.com/wricardo/slide2048/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Slide 2048 Server"
)

// main loads settings, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	envCfg, err := loadEnv()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	opts, err := parseOptions(os.Args[0], os.Args[1:], envCfg, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if opts.Version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	if opts.Debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	log.Printf("Starting %s v%s (mode: %s)", AppName, Version, opts.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := initializeServices(ctx, opts)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	defer svc.Close()

	switch opts.Mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCPWithInternalServer(ctx, svc.Game, opts)

	case "server", "http":
		runHTTPServer(ctx, svc.Game, opts)

	default:
		log.Fatalf("Unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", opts.Mode)
	}
}

// services bundles the wired game service with the resources it holds open.
type services struct {
	Game     service.GameService
	Sessions *session.Manager
	Files    *session.FilePersistence
	scores   *scores.Store
}

// Close flushes sessions to disk and closes the leaderboard.
func (s *services) Close() {
	if err := s.Sessions.SaveAllSessions(); err != nil {
		log.Printf("Warning: Failed to save sessions on shutdown: %v", err)
	}
	if s.scores != nil {
		if err := s.scores.Close(); err != nil {
			log.Printf("Warning: Failed to close score store: %v", err)
		}
	}
}

// initializeServices wires config, session and score storage into the game service.
// It also starts background routines that stop when ctx is done.
func initializeServices(ctx context.Context, opts options) (*services, error) {
	configManager, err := config.NewManager(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	log.Printf("Loaded %d game configurations from %s", configManager.Count(), opts.ConfigDir)

	persistence, err := session.NewFilePersistence(opts.SessionsDir, configManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Printf("Warning: Failed to load persisted sessions: %v", err)
	}

	out := &services{Sessions: sessionManager, Files: persistence}

	// A nil *scores.Store must not reach the interface
	var scoreStore service.ScoreStore
	if opts.ScoresDB != "" {
		store, err := scores.Open(opts.ScoresDB)
		if err != nil {
			return nil, fmt.Errorf("failed to open score store: %w", err)
		}
		out.scores = store
		scoreStore = store
		log.Printf("Recording finished games in %s", opts.ScoresDB)
	} else {
		log.Println("Leaderboard disabled (no scores database configured)")
	}

	out.Game = service.NewGameService(sessionManager, configManager, scoreStore)

	go sessionCleanupRoutine(ctx, sessionManager, opts.SessionTTL)
	go filesystemSyncRoutine(ctx, sessionManager, persistence)

	return out, nil
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, gameService service.GameService, opts options) {
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := newRouter(api.NewServer(gameService, hub), mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if opts.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, mainRouter, opts)
		}()
	}

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

// newRouter mounts the REST API at the root and the MCP JSON-RPC endpoint at /mcp.
func newRouter(apiServer http.Handler, mcpClient *mcp.Client) *http.ServeMux {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runNgrokTunnel serves handler through an ngrok endpoint until ctx is done.
func runNgrokTunnel(ctx context.Context, handler http.Handler, opts options) {
	if opts.NgrokAuthToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if opts.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.NgrokDomain))
		log.Printf("Using custom ngrok domain: %s", opts.NgrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.NgrokAuthToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	// Closing the listener ends http.Serve below
	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// sessionCleanupRoutine periodically drops sessions idle for longer than ttl
// from memory. Their files stay on disk and reload on next access.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, ttl time.Duration) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// filesystemSyncRoutine removes sessions from memory when their files were deleted.
func filesystemSyncRoutine(ctx context.Context, manager *session.Manager, persistence session.SessionPersistence) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pruned := pruneDeletedSessions(manager, persistence); pruned > 0 {
				log.Printf("Filesystem sync: pruned %d orphaned sessions from memory", pruned)
			}
		}
	}
}

func pruneDeletedSessions(manager *session.Manager, persistence session.SessionPersistence) int {
	pruned := 0
	for _, sess := range manager.List() {
		if persistence.Exists(sess.ID) {
			continue
		}
		if err := manager.DeleteFromMemory(sess.ID); err == nil {
			pruned++
			log.Printf("Pruned session %s from memory (file deleted)", sess.ID)
		}
	}
	return pruned
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It reuses an API already listening on the configured host and port; otherwise it
// starts an internal HTTP API on a random loopback port and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, gameService service.GameService, opts options) {
	externalURL := fmt.Sprintf("http://%s:%d", opts.Host, opts.Port)
	baseURL := externalURL

	log.Printf("Checking for external API server at %s...", externalURL)
	if !apiAvailable(externalURL) {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatalf("Failed to get available port: %v", err)
		}
		internalAddr := listener.Addr().String()

		hub := websocket.NewHub()
		go hub.Run()
		defer hub.Stop()

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Close()

		baseURL = "http://" + internalAddr
		log.Printf("Internal HTTP server for MCP stdio on %s", internalAddr)
	} else {
		log.Printf("External API server found at %s, using it for MCP", externalURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Println("MCP stdio server ready")

	stdio := server.NewStdioServer(mcpClient.GetMCPServer())
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		log.Fatalf("MCP stdio server error: %v", err)
	}
}

// apiAvailable reports whether a game API answers its health check at baseURL.
func apiAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
