package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/connectfour/game/engine"
	"github.com/wricardo/mcp-training/connectfour/game/service"
)

func testState() *engine.MatchState {
	return &engine.MatchState{
		Rows:        4,
		Cols:        5,
		ConnectN:    3,
		TargetScore: 2,
		Board:       []string{".....", ".....", ".....", "..R.."},
		Players: []engine.Player{
			{Name: "Alice", Color: engine.Red},
			{Name: "Bob", Color: engine.Yellow},
		},
		Scores:        map[string]int{"Alice": 1, "Bob": 0},
		CurrentPlayer: engine.Player{Name: "Bob", Color: engine.Yellow},
		Status:        engine.RoundInProgress,
		Round:         2,
		OpenColumns:   []int{0, 1, 2, 3, 4},
		Message:       "Bob to move",
	}
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/", "test")

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected JSON content type, got %q", r.Header.Get("Content-Type"))
		}
		var body map[string]int
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"echo": body["column"]})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test")

	var response map[string]int
	err := client.apiCall(context.Background(), "POST", "/api", map[string]int{"column": 4}, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["echo"] != 4 {
		t.Errorf("Expected echo 4, got %d", response["echo"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999", "test")

	err := client.apiCall(context.Background(), "GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"plain body", "Internal Server Error", "API error: 500"},
		{"json error", `{"error": "session not found"}`, "session not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "test")

			err := client.apiCall(context.Background(), "GET", "/api", nil, nil)
			if err == nil {
				t.Fatal("Expected error for HTTP 500 response")
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("Expected %q in error message, got: %v", tt.expected, err)
			}
		})
	}
}

func TestClient_createSession(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		resp := service.SessionInfo{
			ID:         "ab12",
			ConfigName: "blitz",
			GameState:  testState(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test")

	result, err := client.handleCreateSession(context.Background(), callRequest("create_session", map[string]interface{}{
		"config_id": "blitz",
	}))
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	text := textOf(t, result)
	if !strings.Contains(text, "Created session: ab12") {
		t.Errorf("Expected session ID in result, got: %s", text)
	}
	if gotBody["config_id"] != "blitz" {
		t.Errorf("Expected config_id blitz in request body, got %v", gotBody)
	}
}

func TestClient_dropPiece(t *testing.T) {
	var gotColumn int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/ab12/move" {
			t.Errorf("Expected move path, got %s", r.URL.Path)
		}
		var body map[string]int
		json.NewDecoder(r.Body).Decode(&body)
		gotColumn = body["column"]

		resp := service.MoveResult{
			Success:   true,
			Code:      service.CodeOK,
			GameState: testState(),
			Turn: &engine.TurnResult{
				Player:     engine.Player{Name: "Alice", Color: engine.Red},
				Row:        3,
				Column:     2,
				Round:      2,
				MoveNumber: 1,
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test")

	// MCP clients often send numbers as floats or strings
	for _, column := range []interface{}{2, 2.0, "2"} {
		result, err := client.handleDropPiece(context.Background(), callRequest("drop_piece", map[string]interface{}{
			"session_id": "ab12",
			"column":     column,
			"intent":     "take the centre",
		}))
		if err != nil {
			t.Fatalf("dropPiece failed: %v", err)
		}

		text := textOf(t, result)
		if result.IsError {
			t.Fatalf("Expected success for column %v, got: %s", column, text)
		}
		if gotColumn != 2 {
			t.Errorf("Expected column 2 sent for %v, got %d", column, gotColumn)
		}
		if !strings.Contains(text, "Alice (red) → column 2, landed on row 3") {
			t.Errorf("Expected drop summary, got: %s", text)
		}
	}
}

func TestClient_dropPiece_BadArguments(t *testing.T) {
	client := NewClient("http://localhost:0", "test")

	tests := []struct {
		name     string
		args     map[string]interface{}
		expected string
	}{
		{"missing session", map[string]interface{}{"column": 1}, "session_id is required"},
		{"missing column", map[string]interface{}{"session_id": "ab12"}, "column is required"},
		{"non numeric column", map[string]interface{}{"session_id": "ab12", "column": "left"}, "column must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := client.handleDropPiece(context.Background(), callRequest("drop_piece", tt.args))
			if err != nil {
				t.Fatalf("Expected tool error result, got error %v", err)
			}
			if !result.IsError {
				t.Error("Expected IsError result")
			}
			if text := textOf(t, result); !strings.Contains(text, tt.expected) {
				t.Errorf("Expected %q, got %q", tt.expected, text)
			}
		})
	}
}

func TestClient_moveHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "5" || q.Get("order") != "asc" || q.Get("round") != "1" {
			t.Errorf("Unexpected query %s", r.URL.RawQuery)
		}
		resp := service.HistoryResponse{
			Moves: []engine.MoveRecord{
				{Round: 1, MoveNumber: 5, Player: "Alice", Color: engine.Red, Column: 0, Row: 1, Winning: true},
			},
			TotalMoves: 6,
			Page:       2,
			PageSize:   5,
			TotalPages: 2,
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test")

	result, err := client.handleMoveHistory(context.Background(), callRequest("move_history", map[string]interface{}{
		"session_id": "ab12",
		"page":       2,
		"limit":      5.0,
		"order":      "asc",
		"round":      "1",
	}))
	if err != nil {
		t.Fatalf("moveHistory failed: %v", err)
	}

	text := textOf(t, result)
	for _, want := range []string{"Page 2/2", "Total: 6", "Round 1, move 5: Alice (red) → column 0, row 1 ★ winning"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in history, got: %s", want, text)
		}
	}
}

func TestFormatMatchState(t *testing.T) {
	result := formatMatchState(testState())

	expectedFields := []string{
		"Round 2",
		"Score: Alice 1 - Bob 0",
		"Connect 3, first to 2",
		"01234\n.....\n.....\n.....\n..R..\n",
		"To move: Bob (yellow)",
		"Open columns: [0 1 2 3 4]",
		"Bob to move",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatMatchState_Won(t *testing.T) {
	state := testState()
	state.Status = engine.MatchWon
	state.MatchWinner = "Alice"

	result := formatMatchState(state)

	if !strings.Contains(result, "🏆 MATCH WON by Alice") {
		t.Errorf("Expected match winner in result, got: %s", result)
	}
	if strings.Contains(result, "To move:") {
		t.Errorf("Did not expect a player to move after the match, got: %s", result)
	}

	if formatMatchState(nil) != "No match state available" {
		t.Error("Expected placeholder for nil state")
	}
}

func TestFormatMoveResult(t *testing.T) {
	moveResult := &service.MoveResult{
		Success:    true,
		Code:       service.CodeRoundWon,
		GameState:  testState(),
		FinalBoard: []string{".....", "R....", "RY...", "RY..."},
		Events: []service.GameEvent{
			{Type: "round_won", Message: "Alice wins round 1"},
		},
	}

	result := formatMoveResult(moveResult)

	expectedFields := []string{
		"✓ Piece placed",
		"Winning board:",
		"RY...",
		"- round_won: Alice wins round 1",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatMoveResult_Failed(t *testing.T) {
	moveResult := &service.MoveResult{
		Success:   false,
		Code:      service.CodeColumnFull,
		Message:   "column 0 is full",
		GameState: testState(),
	}

	result := formatMoveResult(moveResult)

	if !strings.Contains(result, "✗ Drop rejected (column_full): column 0 is full") {
		t.Errorf("Expected rejection in result, got: %s", result)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080", "test")

	result, err := client.handleGameInstructions(context.Background(), callRequest("game_instructions", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text := textOf(t, result)
	expectedContent := []string{
		"Connect Four - Complete Instructions",
		"GAME OBJECTIVE:",
		"BOARD LEGEND:",
		"WINNING A ROUND:",
		"WINNING THE MATCH:",
		"There are no draws",
	}

	for _, content := range expectedContent {
		if !strings.Contains(text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, text)
		}
	}
}
