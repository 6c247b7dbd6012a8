package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"
	"github.com/wricardo/mcp-training/connectfour/game/engine"
	"github.com/wricardo/mcp-training/connectfour/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string, version string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer(version)
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer(version string) {
	c.mcpServer = server.NewMCPServer(
		"Connect Four",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Connect Four - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Two players take turns dropping pieces into columns. A piece falls to the
lowest empty cell. The first player to line up connect_n pieces in a row,
column or diagonal wins the round; the first to win target_score rounds wins
the match.

AVAILABLE TOOLS:
- create_session: Start a new match from a preset
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Show the board, scores and whose turn it is
- drop_piece: Drop a piece for the player to move - requires intent explanation
- next_round: Clear the board after a won round or a full board
- reset_match: Start the match over
- move_history: View past drops
- list_configs: List available presets
- game_instructions: Get the full rules

NOTE: The 'intent' parameter on drop_piece serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new match session with optional preset selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Preset to use, see list_configs (optional, defaults to classic)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active match sessions",
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
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Match operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, scores and the player to move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "drop_piece",
		Description: "Drop a piece into a column for the player whose turn it is",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"column": map[string]interface{}{
					"type":        "integer",
					"minimum":     0,
					"description": "0-based column index, left to right",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this drop (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "column"},
		},
	}, c.handleDropPiece)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "next_round",
		Description: "Clear the board and start the next round after a round was won",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleNextRound)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_match",
		Description: "Reset scores and board and start the match over",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the drop history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest first (asc) or newest first (desc, default)",
				},
				"round": map[string]interface{}{
					"type":        "integer",
					"description": "Only show drops from this round",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available match presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete rules of the game",
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
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

func requireSession(args map[string]interface{}) (string, error) {
	sessionID := strings.TrimSpace(cast.ToString(args["session_id"]))
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return sessionID, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body := map[string]string{}
	if configID := cast.ToString(args["config_id"]); configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s", session.ID, session.ConfigName, formatMatchState(session.GameState))
	return mcp.NewToolResultText(result), nil
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
		status := ""
		if s.GameState != nil {
			status = fmt.Sprintf(", Round %d, %s", s.GameState.Round, formatScores(s.GameState))
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Created: %s%s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), status)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requireSession(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requireSession(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.MatchState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMatchState(&state)), nil
}

func (c *Client) handleDropPiece(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, err := requireSession(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if args["column"] == nil {
		return mcp.NewToolResultError("column is required"), nil
	}
	column, err := cast.ToIntE(args["column"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("column must be an integer, got %v", args["column"])), nil
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), map[string]int{"column": column}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleNextRound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requireSession(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string             `json:"message"`
		State   *engine.MatchState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/next-round"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMatchState(response.State)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requireSession(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string             `json:"message"`
		State   *engine.MatchState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatMatchState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, err := requireSession(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	for _, key := range []string{"page", "limit", "round"} {
		if n := cast.ToInt(args[key]); n > 0 {
			params.Set(key, cast.ToString(n))
		}
	}
	if order := cast.ToString(args["order"]); order != "" {
		params.Set("order", order)
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
	for _, cfg := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Board: %dx%d, Connect %d, First to %d\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.Rows, cfg.Cols, cfg.ConnectN, cfg.TargetScore)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `🎮 Connect Four - Complete Instructions

GAME OBJECTIVE:
Line up connect_n of your pieces before your opponent does. The classic
preset is a 6x7 board, four in a row, and the first player to win three
rounds takes the match.

HOW A DROP WORKS:
• Pick a column by its 0-based index, counted from the left
• The piece falls to the lowest empty cell of that column
• A full column, or a column off the board, rejects the drop and the same
  player keeps the turn
• Players alternate after every accepted drop

BOARD LEGEND:
• . - Empty cell
• R - Red piece
• Y - Yellow piece
The board is printed top row first; the bottom row is where pieces land first.

WINNING A ROUND:
• connect_n pieces of one color in a row, a column, or either diagonal
• Only the piece just dropped can complete a line, so check the lines
  through your landing cell
• The winner scores one point and the won board stays on display
• Call next_round to clear the board, or simply drop the next piece: the
  next round starts on a cleared board with the first player to move

WINNING THE MATCH:
• The first player to reach target_score round wins takes the match
• After that every drop is rejected until reset_match is called

A FULL BOARD:
• There are no draws. When every column is full no drop is possible; call
  next_round to clear the board. Nobody scores for that round

🤖 STRATEGY TIPS:
- Read the board column by column before choosing; count from 0
- Block any opponent line that is one piece short of connect_n
- The centre columns take part in the most lines
- Watch the cell above a threat: dropping below it can hand your opponent
  the winning cell

TOOLS:
- game_state shows whose turn it is and which columns are still open
- drop_piece plays for the player to move
- move_history lists every drop with its landing row

Good luck! 🔴🟡`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatMatchState(session.GameState))
}

func formatScores(state *engine.MatchState) string {
	parts := make([]string, 0, len(state.Players))
	for _, p := range state.Players {
		parts = append(parts, fmt.Sprintf("%s %d", p.Name, state.Scores[p.Name]))
	}
	return strings.Join(parts, " - ")
}

// formatBoard prints the board top row first under a row of column indices
func formatBoard(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	var b strings.Builder
	for c := range lines[0] {
		fmt.Fprintf(&b, "%d", c%10)
	}
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func formatMatchState(state *engine.MatchState) string {
	if state == nil {
		return "No match state available"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Round %d | %s | Score: %s | Connect %d, first to %d\n\n",
		state.Round, state.Status, formatScores(state), state.ConnectN, state.TargetScore)

	b.WriteString(formatBoard(state.Board))
	b.WriteString("\n")

	switch state.Status {
	case engine.MatchWon:
		fmt.Fprintf(&b, "🏆 MATCH WON by %s\n", state.MatchWinner)
	case engine.RoundWon:
		fmt.Fprintf(&b, "🎉 ROUND WON by %s\n", state.RoundWinner)
	default:
		fmt.Fprintf(&b, "To move: %s (%s)\n", state.CurrentPlayer.Name, state.CurrentPlayer.Color)
		fmt.Fprintf(&b, "Open columns: %v\n", state.OpenColumns)
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "Message: %s", state.Message)
	}

	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Piece placed\n")
	} else {
		fmt.Fprintf(&b, "✗ Drop rejected (%s): %s\n", result.Code, result.Message)
	}

	if t := result.Turn; t != nil {
		fmt.Fprintf(&b, "Drop: %s (%s) → column %d, landed on row %d (move %d of round %d)\n",
			t.Player.Name, t.Player.Color, t.Column, t.Row, t.MoveNumber, t.Round)
	}

	if len(result.FinalBoard) > 0 {
		b.WriteString("\nWinning board:\n")
		b.WriteString(formatBoard(result.FinalBoard))
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n" + formatMatchState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d, Total: %d moves):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, m := range history.Moves {
		win := ""
		if m.Winning {
			win = " ★ winning"
		}
		fmt.Fprintf(&b, "Round %d, move %d: %s (%s) → column %d, row %d%s\n",
			m.Round, m.MoveNumber, m.Player, m.Color, m.Column, m.Row, win)
	}

	if history.HasNext {
		fmt.Fprintf(&b, "\nMore moves on page %d", history.Page+1)
	}

	return b.String()
}
