package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/connectfour/game/engine"
)

// GameService defines all match-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Match Operations
	Move(ctx context.Context, sessionID string, column int) (*MoveResult, error)
	NextRound(ctx context.Context, sessionID string) (*engine.MatchState, error)
	Reset(ctx context.Context, sessionID string) (*engine.MatchState, error)

	// Match State
	GetGameState(ctx context.Context, sessionID string) (*engine.MatchState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles match preset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active match with its own board
type Session struct {
	ID             string
	ConfigID       string
	Match          *engine.Match
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
