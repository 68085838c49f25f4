package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/slide2048/game/engine"
	"github.com/wricardo/slide2048/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Slide 2048",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Slide 2048 - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide the tiles on a square board. Equal tiles that collide merge into their sum
and add it to your score. Reach the target tile (2048 on the classic board) to win;
the game ends when no move changes the board.

AVAILABLE TOOLS:
- create_session: Start a new board (optional config_name and seed)
- game_state: Current board, score and possible moves
- move: One slide (up/down/left/right)
- bulk_move: Several slides in one call (max 100)
- reset_game: New board in the same session
- move_history: Past moves with pagination
- get_session / list_sessions: Session details
- list_configs: Board sizes and targets
- leaderboard: Best finished games
- game_instructions: Full rules and strategy notes`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

var directionEnum = []string{"up", "down", "left", "right"}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection and seed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Config ID to use, see list_configs (optional)",
				},
				"seed": map[string]interface{}{
					"type":        []string{"integer", "string"},
					"description": "Seed for a reproducible game (optional). Pass seeds above 2^53 as a decimal string",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, score and possible moves",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide every tile in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        directionEnum,
					"description": "Direction to slide",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute multiple slides in sequence. Blocked slides are counted and skipped; the run stops at game over or an unknown direction.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": directionEnum,
					},
					"description": "Array of directions",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Start a fresh board in the same session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "leaderboard",
		Description: "Show the best finished games",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Restrict to one config (optional)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Number of entries (default 10)",
				},
			},
		},
	}, c.handleLeaderboard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the tool call arguments, tolerating a missing map
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	body := map[string]interface{}{}
	if configName, _ := args["config_name"].(string); configName != "" {
		body["config_id"] = configName
	}
	if raw, ok := args["seed"]; ok && raw != nil {
		seed, err := parseSeed(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body["seed"] = seed
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

// maxExactSeed is the largest integer a JSON number decoded as float64 holds exactly
const maxExactSeed = 1 << 53

// parseSeed accepts a seed as a decimal string, a json.Number or a float64.
// Floats above 2^53 are rejected since they have already lost precision.
func parseSeed(raw interface{}) (uint64, error) {
	switch v := raw.(type) {
	case string:
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("seed must be an unsigned 64-bit integer, got %q", v)
		}
		return seed, nil
	case json.Number:
		return parseSeed(v.String())
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("seed must not be negative")
		}
		if v > maxExactSeed {
			return 0, fmt.Errorf("seed %.0f is above 2^53 and may have lost precision; pass it as a string", v)
		}
		if v != float64(uint64(v)) {
			return 0, fmt.Errorf("seed must be a whole number, got %v", v)
		}
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("seed must be a number or a decimal string, got %T", raw)
	}
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		score, status := 0, "playing"
		if s.GameState != nil {
			score = s.GameState.Score
			if s.GameState.GameOver {
				status = "over"
			}
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Score: %d, %s, Created: %s)\n",
			s.ID, s.ConfigName, score, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	reset, _ := args["reset"].(bool)

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	reset, _ := args["reset"].(bool)

	moves := make([]string, 0, len(movesRaw))
	for i, m := range movesRaw {
		move, ok := m.(string)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("move %d must be a direction string, got %v", i+1, m)), nil
		}
		moves = append(moves, move)
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/bulk-move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := args["page"].(float64); ok {
		params.Set("page", strconv.Itoa(int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		params.Set("limit", strconv.Itoa(int(limit)))
	}
	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Grid: %dx%d, Target: %d\n\n",
			config.ConfigID, config.Name, config.Description, config.GridSize, config.GridSize, config.TargetTile)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	params := url.Values{}
	configName, _ := args["config_name"].(string)
	if configName != "" {
		params.Set("config", configName)
	}
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		params.Set("limit", strconv.Itoa(int(limit)))
	}
	path := "/api/leaderboard"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var response struct {
		Scores []service.ScoreEntry `json:"scores"`
	}
	if err := c.apiCall(ctx, "GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatLeaderboard(configName, response.Scores)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Slide 2048 - Complete Instructions

GAME OBJECTIVE:
Merge tiles until one of them reaches the target value of your config
(2048 on the classic 4x4 board). Reaching it is a victory, and you may keep
playing for a higher score afterwards.

BOARD:
• A square grid, 4x4 by default (see list_configs for other sizes)
• Empty cells are shown as "."
• Every tile is a power of two; new tiles always appear as 2

MOVES:
• up, down, left, right slide every tile as far as it goes toward that edge
• Two equal tiles that meet merge into one tile with their sum
• A tile produced by a merge cannot merge again in the same move
• When three equal tiles line up, the pair nearest the edge merges first
• Each merge adds the new tile's value to your score
• After a move that changed the board, one new 2 appears on a random empty cell
• A move that changes nothing is "blocked": no tile appears and nothing is scored

GAME OVER:
The game ends when no direction would change the board: the grid is full
and no two neighbours (horizontally or vertically) are equal.

STRATEGY:
• Keep your largest tile in a corner and build toward it
• Prefer two directions (for example left and down) and use a third sparingly
• Check possible_moves in game_state before a bulk_move
• Use bulk_move for repetitive sequences; blocked moves are skipped, not fatal

MOVEMENT COMMANDS:
• move: one direction per call, with optional reset
• bulk_move: up to 100 directions per call, stops at game over
• reset_game: fresh board, same session

REPRODUCIBILITY:
Pass a seed to create_session to get the same tile placements for the same moves.

Good luck reaching 2048!`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nConfig: %s\nCreated: %s\n",
		session.ID, session.ConfigName, session.CreatedAt.Format("2006-01-02 15:04:05"))
	if session.BestScore > 0 {
		fmt.Fprintf(&b, "Best score for this config: %d\n", session.BestScore)
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(session.GameState))
	return b.String()
}

// formatBoard renders the cells with the same fixed-width rows the API returns
func formatBoard(size int, cells []uint32) string {
	if size <= 0 || len(cells) != size*size {
		return ""
	}
	return strings.Join(engine.FormatRows(size, cells), "\n") + "\n"
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Score: %d | Max tile: %d/%d | Moves: %d\n\n",
		state.Score, state.MaxTile, state.TargetTile, state.TotalMoves)

	result.WriteString(formatBoard(state.Size, state.Cells))

	if len(state.PossibleMoves) > 0 {
		fmt.Fprintf(&result, "\nPossible moves: %s", strings.Join(state.PossibleMoves, ","))
	}

	switch {
	case state.GameOver && state.Victory:
		result.WriteString("\n🎉 VICTORY! No moves left.")
	case state.GameOver:
		result.WriteString("\n💀 GAME OVER")
	case state.Victory:
		result.WriteString("\n🎉 VICTORY! Keep going for a higher score.")
	}

	if state.Message != "" {
		fmt.Fprintf(&result, "\nMessage: %s", state.Message)
	}

	return result.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Move successful\n")
	} else {
		b.WriteString("✗ Board unchanged\n")
	}

	if s := result.Step; s != nil {
		fmt.Fprintf(&b, "Step: %s score %d→%d (+%d) max=%d empty=%d\n",
			s.Dir, s.ScoreBefore, s.ScoreAfter, s.Gained, s.MaxTile, s.EmptyCells)
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	size := 0
	configName := ""
	if result.GameState != nil {
		size = result.GameState.Size
		configName = result.GameState.ConfigName
	}
	fmt.Fprintf(&b, "Session: %s • Config: %s • Grid: %dx%d\n", sessionID, configName, size, size)

	fmt.Fprintf(&b, "Executed %d/%d moves (%d blocked)\n",
		result.MovesExecuted, result.RequestedMoves, result.BlockedMoves)
	if result.Truncated {
		fmt.Fprintf(&b, "Truncated to the first %d moves\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped: %s\n", result.StoppedReason)
	}
	fmt.Fprintf(&b, "Score: %d → %d (+%d) • Max tile: %d → %d\n",
		result.StartScore, result.EndScore, result.ScoreDelta, result.StartMaxTile, result.EndMaxTile)

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, s := range result.Steps {
			b.WriteString(formatStepLine(s))
		}
	}

	var milestones []string
	for _, event := range result.Events {
		switch event.Type {
		case service.EventVictory, service.EventGameOver, service.EventReset:
			milestones = append(milestones, fmt.Sprintf("- %s: %s", event.Type, event.Message))
		}
	}
	if len(milestones) > 0 {
		b.WriteString("\nEvents:\n")
		b.WriteString(strings.Join(milestones, "\n"))
		b.WriteString("\n")
	}

	if len(result.PossibleMoves) > 0 {
		fmt.Fprintf(&b, "\nPossible moves: %s\n", strings.Join(result.PossibleMoves, ","))
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatStepLine(s service.StepInfo) string {
	status := "ok"
	if !s.Changed {
		status = "blocked"
	}
	line := fmt.Sprintf("%d) %-5s %-7s score=%d", s.Idx, s.Dir, status, s.ScoreAfter)
	if s.Gained > 0 {
		line += fmt.Sprintf(" (+%d)", s.Gained)
	}
	if s.Victory {
		line += " victory"
	}
	if s.GameOver {
		line += " game-over"
	}
	return line + "\n"
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d, Total: %d):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		status := "✓"
		if !move.Changed {
			status = "✗"
		}
		fmt.Fprintf(&b, "#%d: %s %s score=%d (+%d) max=%d empty=%d\n",
			move.MoveNumber, move.Action, status, move.Score, move.ScoreGained, move.MaxTile, move.EmptyCells)
	}

	if history.HasNext {
		fmt.Fprintf(&b, "\nMore moves on page %d", history.Page+1)
	}
	return b.String()
}

func formatLeaderboard(configName string, entries []service.ScoreEntry) string {
	var b strings.Builder
	if configName == "" {
		b.WriteString("Leaderboard (all configs):\n\n")
	} else {
		fmt.Fprintf(&b, "Leaderboard (%s):\n\n", configName)
	}
	if len(entries) == 0 {
		b.WriteString("No finished games yet.\n")
		return b.String()
	}
	for i, e := range entries {
		won := ""
		if e.Victory {
			won = " ★"
		}
		fmt.Fprintf(&b, "%2d. %6d  max %-5d %-8s session %s, %d moves%s\n",
			i+1, e.Score, e.MaxTile, e.ConfigID, e.SessionID, e.Moves, won)
	}
	return b.String()
}
