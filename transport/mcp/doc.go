// Package mcp exposes Connect Four to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a REST request against
// the api package, and the JSON answer is rendered as plain text an agent can
// read. Running the MCP server in front of the HTTP server keeps spectators on
// the WebSocket hub in sync with moves made by agents.
//
// MCP Tools:
//   - create_session: Start a match from a preset (config_id)
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details
//   - game_state: Board, scores and the player to move
//   - drop_piece: Drop a piece into a column (column, intent)
//   - next_round: Clear the board after a won round
//   - reset_match: Start the match over
//   - move_history: Paginated drop history (page, limit, order, round)
//   - list_configs: List available presets
//   - game_instructions: Full rules and strategy notes
//
// Transport Modes:
//
//	// Stdio mode
//	client := mcp.NewClient("http://127.0.0.1:8080", version)
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	client.GetMCPServer().HandleMessage(ctx, body)
package mcp
