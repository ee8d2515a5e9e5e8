// Package dedup decides whether a scraped posting is new or already known.
//
// The store's unique constraints are the authoritative arbiter: the Check
// fast path can only say "existing" early, never "new" with certainty, so
// every posting that passes Check is still settled by Insert. Two concurrent
// cycles racing on the same opportunity therefore resolve to exactly one row.
package dedup

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/logger"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/store"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/util"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusExisting Status = "existing"
)

// Match reasons, persisted in logs for explainability.
const (
	ReasonLink         = "link"
	ReasonTitleCompany = "title_company"
)

// Result is the gate's verdict for one posting.
type Result struct {
	Status     Status
	Reason     string
	ExistingID string
}

// Gate combines the authoritative store with an optional non-authoritative
// seen-cache.
type Gate struct {
	store  store.Store
	cache  *SeenCache
	logger *zap.Logger
}

func New(s store.Store, cache *SeenCache, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{store: s, cache: cache, logger: log}
}

// Check is the fast path: it reports Existing when the posting is already
// known. A New verdict is provisional until Insert confirms it.
func (g *Gate) Check(ctx context.Context, userID string, raw *posting.RawPosting) (Result, error) {
	link := strings.TrimSpace(raw.Link)

	if link != "" {
		if g.cache.Seen(ctx, userID, link) {
			return Result{Status: StatusExisting, Reason: ReasonLink}, nil
		}

		p, err := g.store.FindByLink(ctx, userID, link)
		switch {
		case err == nil:
			return Result{Status: StatusExisting, Reason: ReasonLink, ExistingID: p.ID}, nil
		case !errors.Is(err, store.ErrNotFound):
			return Result{}, err
		}
	}

	// Case and inner whitespace do not distinguish opportunities: a
	// re-scraped "Backend  Intern" is the same posting as "Backend Intern".
	title := util.NormalizeToken(raw.Title)
	company := util.NormalizeToken(raw.Company)
	if title != "" {
		p, err := g.store.FindByTitleCompany(ctx, userID, title, company)
		switch {
		case err == nil:
			return Result{Status: StatusExisting, Reason: ReasonTitleCompany, ExistingID: p.ID}, nil
		case !errors.Is(err, store.ErrNotFound):
			return Result{}, err
		}
	}

	return Result{Status: StatusNew}, nil
}

// Insert stores the posting and settles the race: a unique-key violation
// means another writer won, and the posting is reported as existing rather
// than as an error.
func (g *Gate) Insert(ctx context.Context, p *posting.Posting) (Result, error) {
	err := g.store.Insert(ctx, p)
	switch {
	case err == nil:
		g.cache.Mark(ctx, p.UserID, p.Link)
		return Result{Status: StatusNew}, nil
	case errors.Is(err, store.ErrDuplicateKey):
		g.logger.Debug("posting lost the insert race",
			zap.String(logger.FieldUser, p.UserID),
			zap.String("link", p.Link),
		)
		return g.settleDuplicate(ctx, p), nil
	default:
		return Result{}, err
	}
}

// settleDuplicate names the constraint that rejected the insert. The verdict
// is already settled, so a failing lookup only leaves the reason empty.
func (g *Gate) settleDuplicate(ctx context.Context, p *posting.Posting) Result {
	if link := strings.TrimSpace(p.Link); link != "" {
		if existing, err := g.store.FindByLink(ctx, p.UserID, link); err == nil {
			return Result{Status: StatusExisting, Reason: ReasonLink, ExistingID: existing.ID}
		}
	}
	if title := util.NormalizeToken(p.Title); title != "" {
		existing, err := g.store.FindByTitleCompany(ctx, p.UserID, title, util.NormalizeToken(p.Company))
		if err == nil {
			return Result{Status: StatusExisting, Reason: ReasonTitleCompany, ExistingID: existing.ID}
		}
	}
	return Result{Status: StatusExisting}
}
