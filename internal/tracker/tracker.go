// Package tracker owns the notification lifecycle of stored postings.
package tracker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/logger"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/store"
)

// Tracker moves postings through the unnotified → notified transition and
// keeps legacy rows out of the delivery queue.
type Tracker struct {
	store  store.Store
	logger *zap.Logger

	// migrated guards the per-user legacy backfill so it runs at most once
	// per process. The SQL itself is idempotent; this only saves round trips.
	migrated sync.Map
}

func New(s store.Store, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{store: s, logger: log}
}

// PendingForUser returns the postings still awaiting delivery, oldest first.
// Postings left unnotified by an earlier failed cycle show up here again.
func (t *Tracker) PendingForUser(ctx context.Context, userID string) ([]*posting.Posting, error) {
	pending, err := t.store.ListByState(ctx, userID, posting.StateUnnotified)
	if err != nil {
		return nil, fmt.Errorf("list pending postings: %w", err)
	}
	return pending, nil
}

// MarkNotified records a successful delivery. It is idempotent: when another
// writer already moved the posting, the call succeeds without effect.
func (t *Tracker) MarkNotified(ctx context.Context, p *posting.Posting) error {
	if !posting.IsTransitionAllowed(p.State, posting.StateNotified) {
		if p.State == posting.StateNotified {
			return nil
		}
		return fmt.Errorf("posting %s: transition %s -> %s not allowed",
			p.ID, p.State, posting.StateNotified)
	}

	moved, err := t.store.UpdateNotificationState(ctx, p.ID, p.State, posting.StateNotified)
	if err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}
	if !moved {
		t.logger.Debug("posting already marked notified",
			zap.String(logger.FieldPosting, p.ID),
		)
	}
	p.State = posting.StateNotified
	return nil
}

// MigrateLegacy backfills rows predating the notification state so they are
// never delivered as new. Safe to call every cycle; the store call runs once
// per user per process.
func (t *Tracker) MigrateLegacy(ctx context.Context, userID string) error {
	if _, done := t.migrated.Load(userID); done {
		return nil
	}

	n, err := t.store.MigrateLegacy(ctx, userID)
	if err != nil {
		return fmt.Errorf("migrate legacy postings: %w", err)
	}
	if n > 0 {
		t.logger.Info("marked legacy postings as notified",
			zap.String(logger.FieldUser, userID),
			zap.Int64("count", n),
		)
	}

	t.migrated.Store(userID, struct{}{})
	return nil
}
