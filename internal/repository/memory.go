package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type memoryEntry struct {
	snapshotJSON []byte
	expiresAt    time.Time
}

// memorySession is used when session.store is memory. Sessions end with the process, or
// earlier when ttl passes without a save, like the Redis keys do.
type memorySession struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memorySession{
		ttl: ttl,
		now: time.Now,

		entries: make(map[string]memoryEntry),
	}
}

func (that *memorySession) Save(_ context.Context, id string, snapshot *entity.GameSnapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal game snapshot: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	for key, entry := range that.entries {
		if that.expired(entry, now) {
			delete(that.entries, key)
		}
	}

	entry := memoryEntry{snapshotJSON: snapshotJSON}
	if that.ttl > 0 {
		entry.expiresAt = now.Add(that.ttl)
	}
	that.entries[id] = entry

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.GameSnapshot, error) {
	that.mu.Lock()
	entry, ok := that.entries[id]
	if ok && that.expired(entry, that.now()) {
		delete(that.entries, id)
		ok = false
	}
	that.mu.Unlock()

	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	var snapshot entity.GameSnapshot
	if err := json.Unmarshal(entry.snapshotJSON, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game snapshot: %w", err)
	}

	return &snapshot, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.entries[id]
	if !ok || that.expired(entry, that.now()) {
		delete(that.entries, id)
		return apperror.ErrSessionNotFound
	}

	delete(that.entries, id)

	return nil
}

func (that *memorySession) expired(entry memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}
