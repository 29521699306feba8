package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bowl-game/bowl/internal/game"
)

// Key layout of the bowl namespace.
const (
	Namespace        = "bowl:"
	SessionKeyPrefix = Namespace + "session:"
	LastActiveKey    = Namespace + "lastActiveGameId"
)

// SessionKey returns the key a session is stored under.
func SessionKey(id string) string {
	return SessionKeyPrefix + id
}

// GameStorage reads and writes sessions through a KV. Loaded sessions are
// always migrated to the current schema.
type GameStorage struct {
	kv       KV
	migrator game.Migrator
	logger   zerolog.Logger
}

// NewGameStorage wraps kv. Undecodable sessions are reported on logger.
func NewGameStorage(kv KV, logger zerolog.Logger) *GameStorage {
	return &GameStorage{kv: kv, logger: logger}
}

// WithMigrator returns a copy of g that migrates loaded sessions with m.
func (g *GameStorage) WithMigrator(m game.Migrator) *GameStorage {
	c := *g
	c.migrator = m
	return &c
}

// LoadSession loads and migrates the session with the given id.
// It returns nil, nil when the session is absent or cannot be read.
func (g *GameStorage) LoadSession(ctx context.Context, id string) (*game.Session, error) {
	data, err := g.kv.Get(ctx, SessionKey(id))
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	s, err := g.migrator.DecodeSession(data)
	if err != nil {
		g.logger.Warn().Err(err).Str("session", id).Msg("discarding unreadable session")
		return nil, nil
	}
	return &s, nil
}

// SaveSession writes s under its id.
func (g *GameStorage) SaveSession(ctx context.Context, s game.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := g.kv.Set(ctx, SessionKey(s.ID), data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// DeleteSessions removes the given sessions.
func (g *GameStorage) DeleteSessions(ctx context.Context, ids ...string) error {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, SessionKey(id))
	}
	if err := g.kv.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}

// LoadLastActiveID returns the id of the last active game, or "".
func (g *GameStorage) LoadLastActiveID(ctx context.Context) (string, error) {
	data, err := g.kv.Get(ctx, LastActiveKey)
	if err != nil {
		return "", fmt.Errorf("load last active id: %w", err)
	}
	return string(data), nil
}

// SaveLastActiveID records id as the last active game. An empty id removes the record.
func (g *GameStorage) SaveLastActiveID(ctx context.Context, id string) error {
	var err error
	if id == "" {
		err = g.kv.Delete(ctx, LastActiveKey)
	} else {
		err = g.kv.Set(ctx, LastActiveKey, []byte(id))
	}
	if err != nil {
		return fmt.Errorf("save last active id: %w", err)
	}
	return nil
}

// ClearAll removes every key in the bowl namespace.
func (g *GameStorage) ClearAll(ctx context.Context) error {
	keys, err := g.kv.Keys(ctx, Namespace)
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	if err := g.kv.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	return nil
}

// ListSessions loads every readable stored session, newest first.
func (g *GameStorage) ListSessions(ctx context.Context) ([]game.Session, error) {
	keys, err := g.kv.Keys(ctx, SessionKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	var sessions []game.Session
	for _, k := range keys {
		s, err := g.LoadSession(ctx, strings.TrimPrefix(k, SessionKeyPrefix))
		if err != nil {
			return nil, err
		}
		if s != nil {
			sessions = append(sessions, *s)
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt > sessions[j].CreatedAt
	})
	return sessions, nil
}
