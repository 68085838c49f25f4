// Package service provides the business logic layer for the tile game server.
//
// The service package implements:
//   - Multi-session game management
//   - Move processing with per-step events
//   - Bulk moves with stop reasons
//   - Move history paging
//   - Recording finished games for the leaderboard
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
// ScoreStore keeps finished games.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session maintains its own engine; the service
// serializes access to them.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, scoreStore)
//
//	sessionInfo, err := gameService.CreateSession(ctx, "classic", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, sessionInfo.ID, "left", false)
//
// Bulk Moves:
//
// A blocked move never stops a bulk run; it is counted in BlockedMoves.
// The run stops with code "game_over" once no move is left, or with
// "invalid_direction" at the first unknown direction.
package service
