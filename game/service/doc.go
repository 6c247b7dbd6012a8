// Package service provides the business logic layer for the Connect Four server.
//
// The service package implements:
//   - Multi-session match management
//   - Preset selection when a session is created
//   - Piece drops with rule violations reported as result codes
//   - Round progression and match reset
//   - Paginated move history
//
// Core Interfaces:
//
// GameService is the main service interface used by every transport.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads, lists and saves match presets.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and the
// engine. Each session owns one engine.Match driving its own board, and all
// calls into a match are serialized by the service.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, 3)
//
// Round flow:
//
// When a drop completes a line the result carries the finished board in
// FinalBoard and the service starts the next round straight away, with the
// first player to move. Once a player reaches the target score further drops
// are rejected with CodeMatchOver until the match is reset.
package service
