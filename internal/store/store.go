// Package store persists postings. The unique indexes on the backing table
// are the authoritative arbiter of deduplication: concurrent inserts of the
// same opportunity resolve to exactly one row.
package store

import (
	"context"
	"errors"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
)

var (
	// ErrNotFound is returned by lookups that match no row.
	ErrNotFound = errors.New("posting not found")

	// ErrDuplicateKey is returned by Insert when a unique constraint on the
	// posting's identity is violated. The caller treats the posting as
	// already known.
	ErrDuplicateKey = errors.New("posting already exists")

	// ErrUnavailable marks a store that cannot be reached. Cycle-level logic
	// aborts on it rather than misclassifying postings as new.
	ErrUnavailable = errors.New("store unavailable")
)

// Store is the persistence boundary of the engine.
type Store interface {
	// Insert stores a new posting, returning ErrDuplicateKey when another
	// row already claims the same link or title+company for the user.
	Insert(ctx context.Context, p *posting.Posting) error

	// FindByLink returns the user's posting with the given link, or
	// ErrNotFound.
	FindByLink(ctx context.Context, userID, link string) (*posting.Posting, error)

	// FindByTitleCompany matches case-insensitively on title and company,
	// with inner whitespace collapsed on both sides.
	FindByTitleCompany(ctx context.Context, userID, title, company string) (*posting.Posting, error)

	// UpdateNotificationState moves a posting from one state to another as a
	// compare-and-set. It reports whether this call performed the
	// transition; false with a nil error means another writer got there
	// first or the posting was not in the expected state.
	UpdateNotificationState(ctx context.Context, id string, from, to posting.State) (bool, error)

	// ListByState returns the user's postings in the given state, oldest
	// first.
	ListByState(ctx context.Context, userID string, state posting.State) ([]*posting.Posting, error)

	// MigrateLegacy backfills rows predating the notification state column,
	// marking them notified so they are never re-delivered. Returns the
	// number of rows touched; running it again is a no-op.
	MigrateLegacy(ctx context.Context, userID string) (int64, error)
}
