package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type sessionRepo interface {
	Save(ctx context.Context, id string, snapshot *entity.GameSnapshot) error
	GetByID(ctx context.Context, id string) (*entity.GameSnapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// session is a live controller and the time its game last reached the store.
type session struct {
	controller *tictactoe.GameController
	savedAt    time.Time
}

// SessionManager owns one GameController per browser session. Controllers are only touched
// under mu, so each game still sees one operation at a time.
//
// A live session is dropped from memory once ttl has passed since its last save, the same
// moment the store lets it expire. A ttl of zero keeps sessions until EndSession.
type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	gameOpts    []entity.GameOption
	ttl         time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewSessionManager(
	logger *slog.Logger, sessionRepo sessionRepo, ttl time.Duration, gameOpts ...entity.GameOption,
) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session_manager"),
		sessionRepo: sessionRepo,
		gameOpts:    gameOpts,
		ttl:         ttl,
		now:         time.Now,

		sessions: make(map[string]*session),
	}
}

// CreateSession starts a NEW game under a fresh session id.
func (that *SessionManager) CreateSession(ctx context.Context) (string, *entity.GameSnapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.evictExpired()

	id := uuid.NewString()
	live := &session{controller: that.newController(entity.NewGame(that.gameOpts...))}

	if err := that.save(ctx, id, live); err != nil {
		return "", nil, err
	}

	that.sessions[id] = live
	that.logger.Info("session created", "session", id)

	return id, live.controller.Game().Snapshot(), nil
}

func (that *SessionManager) GetState(ctx context.Context, id string) (*entity.GameSnapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	live, err := that.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	return live.controller.Game().Snapshot(), nil
}

func (that *SessionManager) StartRound(ctx context.Context, id, nameA, nameB string) (*entity.GameSnapshot, error) {
	return that.apply(ctx, id, func(controller *tictactoe.GameController) error {
		return controller.StartRound(nameA, nameB)
	})
}

func (that *SessionManager) PlaceMarker(ctx context.Context, id string, row, col int) (*entity.GameSnapshot, error) {
	return that.apply(ctx, id, func(controller *tictactoe.GameController) error {
		_, err := controller.PlaceMarker(row, col)
		return err
	})
}

func (that *SessionManager) ResetGame(ctx context.Context, id string) (*entity.GameSnapshot, error) {
	return that.apply(ctx, id, func(controller *tictactoe.GameController) error {
		controller.Reset()
		return nil
	})
}

// EndSession drops the session from memory and from the store.
func (that *SessionManager) EndSession(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, inMemory := that.sessions[id]
	delete(that.sessions, id)

	err := that.sessionRepo.DeleteByID(ctx, id)
	if errors.Is(err, apperror.ErrSessionNotFound) && inMemory {
		err = nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "session", id)

	return nil
}

func (that *SessionManager) apply(
	ctx context.Context, id string, operation func(*tictactoe.GameController) error,
) (*entity.GameSnapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	live, err := that.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = operation(live.controller); err != nil {
		return nil, err
	}

	if err = that.save(ctx, id, live); err != nil {
		// the game moved on in memory only; the next call reloads what the store holds
		delete(that.sessions, id)
		that.logger.Warn("session dropped after failed save", "session", id, "error", err)

		return nil, err
	}

	return live.controller.Game().Snapshot(), nil
}

// getSession returns the live session, restoring it from the store after a restart or expiry.
func (that *SessionManager) getSession(ctx context.Context, id string) (*session, error) {
	if live, ok := that.sessions[id]; ok {
		if !that.expired(live) {
			return live, nil
		}

		delete(that.sessions, id)
		that.logger.Debug("session expired in memory", "session", id)
	}

	snapshot, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	game, err := entity.RestoreGame(snapshot, that.gameOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}

	live := &session{controller: that.newController(game)}

	// saving again restarts the store TTL, so memory and store expire together
	if err = that.save(ctx, id, live); err != nil {
		return nil, err
	}

	that.sessions[id] = live
	that.logger.Info("session restored", "session", id, "state", game.State())

	return live, nil
}

func (that *SessionManager) save(ctx context.Context, id string, live *session) error {
	if err := that.sessionRepo.Save(ctx, id, live.controller.Game().Snapshot()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	live.savedAt = that.now()

	return nil
}

func (that *SessionManager) expired(live *session) bool {
	return that.ttl > 0 && that.now().Sub(live.savedAt) >= that.ttl
}

func (that *SessionManager) evictExpired() {
	for id, live := range that.sessions {
		if that.expired(live) {
			delete(that.sessions, id)
		}
	}
}

func (that *SessionManager) newController(game *entity.Game) *tictactoe.GameController {
	return tictactoe.NewGameController(that.logger, game)
}
