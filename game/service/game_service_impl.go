package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wricardo/mcp-training/connectfour/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.Mutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new match session from a preset
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
		configName = s.getConfigID(config.Name)
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.ConfigID = configName

	log.WithFields(log.Fields{
		"session": session.ID,
		"config":  configName,
	}).Info("Session created")

	return s.sessionInfo(session), nil
}

// getConfigID returns the config_id for a preset display name
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(session *Session) *SessionInfo {
	state := session.Match.State()
	state.ConfigName = session.ConfigID
	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     session.ConfigID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      state,
		GameConfig:     session.Config,
	}
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	log.WithField("session", sessionID).Info("Session deleted")
	return nil
}

// Move drops a piece in column for the player whose turn it is. Rule
// violations are reported in the result; only a missing session is an error.
// A winning drop leaves the match on the won board until NextRound is called
// or the next Move starts the following round.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, column int) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	match := sess.Match
	now := time.Now()

	var events []GameEvent
	if match.Status() == engine.RoundWon {
		if err := match.NextRound(); err == nil {
			events = append(events, nextRoundEvent(match, now))
		}
	}

	mover := match.CurrentPlayer()
	turn, err := match.Turn(column)
	if err != nil {
		result := &MoveResult{
			Success: false,
			Code:    rejectionCode(err),
			Message: err.Error(),
			Events:  events,
		}
		if result.Code == "" {
			return nil, fmt.Errorf("move failed: %w", err)
		}
		result.GameState = s.stateOf(sess)

		log.WithFields(log.Fields{
			"session": sess.ID,
			"player":  mover.Name,
			"column":  column,
			"code":    result.Code,
		}).Debug("Move rejected")
		return result, nil
	}

	result := &MoveResult{
		Success: true,
		Code:    CodeOK,
		Turn:    turn,
		Events: append(events, GameEvent{
			Type:      "move",
			Message:   fmt.Sprintf("%s dropped %s into column %d, landing on row %d", turn.Player.Name, turn.Player.Color, turn.Column, turn.Row),
			Timestamp: now,
			Player:    turn.Player.Name,
			Row:       turn.Row,
			Column:    turn.Column,
		}),
	}
	result.GameState = s.stateOf(sess)
	result.Message = result.GameState.Message

	if turn.RoundWon {
		result.Code = CodeRoundWon
		result.FinalBoard = result.GameState.Board
		result.Message = fmt.Sprintf("%s won round %d (%d/%d)", turn.Player.Name, turn.Round, turn.Score, match.TargetScore())
		result.Events = append(result.Events, GameEvent{
			Type:      "round_won",
			Message:   result.Message,
			Timestamp: now,
			Player:    turn.Player.Name,
			Row:       turn.Row,
			Column:    turn.Column,
		})

		if turn.MatchWon {
			result.Code = CodeMatchWon
			result.Events = append(result.Events, GameEvent{
				Type:      "match_won",
				Message:   fmt.Sprintf("%s won the match", turn.Player.Name),
				Timestamp: now,
				Player:    turn.Player.Name,
			})
		}

		log.WithFields(log.Fields{
			"session": sess.ID,
			"player":  turn.Player.Name,
			"round":   turn.Round,
			"score":   turn.Score,
			"match":   turn.MatchWon,
		}).Info("Round won")
	}

	return result, nil
}

func nextRoundEvent(match *engine.Match, now time.Time) GameEvent {
	return GameEvent{
		Type:      "next_round",
		Message:   fmt.Sprintf("Round %d started, %s to move", match.Round(), match.CurrentPlayer().Name),
		Timestamp: now,
	}
}

// rejectionCode maps engine errors to result codes; empty means unexpected
func rejectionCode(err error) string {
	var moveErr *engine.MoveError
	switch {
	case errors.As(err, &moveErr) && moveErr.Reason == engine.ReasonColumnFull:
		return CodeColumnFull
	case errors.Is(err, engine.ErrInvalidMove):
		return CodeInvalidMove
	case errors.Is(err, engine.ErrMatchOver), errors.Is(err, engine.ErrRoundOver):
		return CodeMatchOver
	}
	return ""
}

func (s *gameServiceImpl) stateOf(sess *Session) *engine.MatchState {
	state := sess.Match.State()
	state.ConfigName = sess.ConfigID
	return state
}

// NextRound starts the next round after a won round
func (s *gameServiceImpl) NextRound(ctx context.Context, sessionID string) (*engine.MatchState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	if err := sess.Match.NextRound(); err != nil {
		return nil, err
	}
	return s.stateOf(sess), nil
}

// Reset starts a new match in the session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.MatchState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.Match.Reset()

	log.WithField("session", sess.ID).Info("Match reset")
	return s.stateOf(sess), nil
}

// GetGameState retrieves the current match state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.MatchState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.stateOf(sess), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Match.History()
	if opts.Round > 0 {
		filtered := make([]engine.MoveRecord, 0, len(history))
		for _, rec := range history {
			if rec.Round == opts.Round {
				filtered = append(filtered, rec)
			}
		}
		history = filtered
	}
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > engine.MaxHistoryPage {
		opts.Limit = engine.MaxHistoryPage
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveRecord{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available match presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific match preset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a match preset to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}
