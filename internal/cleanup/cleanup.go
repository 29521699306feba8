// Package cleanup implements pruning of old stored bowl sessions.
package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/bowl-game/bowl/internal/game"
)

// Sessions is the storage cleanup prunes.
type Sessions interface {
	ListSessions(ctx context.Context) ([]game.Session, error)
	DeleteSessions(ctx context.Context, ids ...string) error
	LoadLastActiveID(ctx context.Context) (string, error)
}

// PruneByAge removes sessions created more than maxAgeDays ago.
// If dryRun is true, nothing is deleted; the function only returns the ids
// that would be removed. The last active session is never pruned.
func PruneByAge(ctx context.Context, src Sessions, maxAgeDays int, dryRun bool) ([]string, error) {
	sessions, active, err := load(ctx, src)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays).UnixMilli()
	var pruned []string
	for _, s := range sessions {
		if s.ID == active {
			continue
		}
		if s.CreatedAt < cutoff {
			pruned = append(pruned, s.ID)
		}
	}

	return remove(ctx, src, pruned, dryRun)
}

// PruneKeepRecent removes all sessions except the keep most recent ones.
// The last active session is always kept and counts toward keep.
func PruneKeepRecent(ctx context.Context, src Sessions, keep int, dryRun bool) ([]string, error) {
	sessions, active, err := load(ctx, src)
	if err != nil {
		return nil, err
	}

	budget := keep
	for _, s := range sessions {
		if s.ID == active && budget > 0 {
			budget--
		}
	}

	// ListSessions is newest first.
	var pruned []string
	for _, s := range sessions {
		if s.ID == active {
			continue
		}
		if budget > 0 {
			budget--
			continue
		}
		pruned = append(pruned, s.ID)
	}

	return remove(ctx, src, pruned, dryRun)
}

func load(ctx context.Context, src Sessions) ([]game.Session, string, error) {
	sessions, err := src.ListSessions(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("listing sessions: %w", err)
	}
	active, err := src.LoadLastActiveID(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reading last active session: %w", err)
	}
	return sessions, active, nil
}

func remove(ctx context.Context, src Sessions, ids []string, dryRun bool) ([]string, error) {
	if dryRun || len(ids) == 0 {
		return ids, nil
	}
	if err := src.DeleteSessions(ctx, ids...); err != nil {
		return nil, fmt.Errorf("removing sessions: %w", err)
	}
	return ids, nil
}
