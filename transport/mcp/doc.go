// Package mcp exposes the game to AI agents over the Model Context Protocol.
//
// Client is a thin proxy: every tool call becomes a request against the
// REST API and the JSON reply is rendered as plain text, with the board
// drawn as aligned columns of numbers and "." for empty cells.
//
// MCP Tools:
//   - create_session: New board, optional config_name and seed
//   - list_sessions, get_session: Session overview and details
//   - game_state: Board, score, max tile and possible moves
//   - move: Single slide
//   - bulk_move: Up to 100 slides with a per-step trace
//   - reset_game: Fresh board in the same session
//   - move_history: Paginated history
//   - list_configs: Board sizes and target tiles
//   - leaderboard: Best finished games
//   - game_instructions: Rules and strategy notes
//
// Transport Modes:
//   - Stdio, for local MCP clients
//   - JSON-RPC over HTTP POST, mounted at /mcp by the main server
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
