// Package api provides the HTTP REST API for the Connect Four server.
//
// The api package implements:
//   - Session management endpoints
//   - Piece drops, round progression and match reset
//   - Paginated move history
//   - Preset listing, lookup and creation
//   - WebSocket upgrade for spectators
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session, body {"config_id": "classic"} (optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=n)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Match Operations:
//   - GET /api/sessions/{id}/state - Current match state
//   - POST /api/sessions/{id}/move - Drop a piece, body {"column": 3}
//   - POST /api/sessions/{id}/next-round - Clear the board after a won round
//   - POST /api/sessions/{id}/reset - Start a new match
//   - GET /api/sessions/{id}/history - Move history (?page&limit&order&round)
//
// Configuration:
//   - GET /api/configs - List presets
//   - POST /api/configs - Save a preset
//   - GET /api/configs/{name} - Get a preset
//
// Other:
//   - GET /api/health - Liveness and session count
//   - GET /ws?session={id} - WebSocket state updates
//
// Rejected drops (full column, column off the board, match already decided)
// are not HTTP errors: the move endpoint answers 200 with success=false and
// a code such as "column_full". Unknown sessions answer 404.
//
// Errors are returned as JSON:
//
//	{"error": "session not found"}
package api
