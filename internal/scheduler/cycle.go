package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/ai"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/dedup"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/logger"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/matching"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/notify"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/profile"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/scraper"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/tracker"
)

const (
	defaultQueryTimeout  = 45 * time.Second
	defaultNotifyTimeout = 15 * time.Second
	defaultDraftTimeout  = 30 * time.Second
)

// Summary is the outcome of one polling cycle.
type Summary struct {
	NewFound    int
	Duplicates  int
	Sent        int
	Failed      int
	QueryErrors int
}

// Engine runs one full discover-score-deliver cycle for a single user.
type Engine struct {
	UserID string

	Profiles   profile.Source
	Scrapers   []scraper.Scraper
	Gate       *dedup.Gate
	Tracker    *tracker.Tracker
	Notifier   notify.Notifier
	Drafter    ai.Drafter
	Classifier matching.CompetitionClassifier

	MaxQueries int
	MaxResults int

	// Weights and ProbabilityCeiling override the scoring defaults when set.
	Weights            matching.Weights
	ProbabilityCeiling float64

	QueryTimeout  time.Duration
	NotifyTimeout time.Duration
	DraftTimeout  time.Duration

	Logger *zap.Logger

	// Now is replaceable in tests.
	Now func() time.Time
}

func (e *Engine) init() {
	if e.QueryTimeout <= 0 {
		e.QueryTimeout = defaultQueryTimeout
	}
	if e.NotifyTimeout <= 0 {
		e.NotifyTimeout = defaultNotifyTimeout
	}
	if e.DraftTimeout <= 0 {
		e.DraftTimeout = defaultDraftTimeout
	}
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	if e.Classifier == nil {
		e.Classifier = matching.Heuristic{}
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.Weights == (matching.Weights{}) {
		e.Weights = matching.DefaultWeights
	}
	if e.ProbabilityCeiling <= 0 {
		e.ProbabilityCeiling = matching.DefaultProbabilityCeiling
	}
}

// RunCycle executes one cycle. Store failures abort the cycle: without the
// store, a scraped posting cannot be told apart from a duplicate. Scraper
// and notifier failures are contained per query and per posting.
func (e *Engine) RunCycle(ctx context.Context) (*Summary, error) {
	e.init()
	summary := &Summary{}

	if err := e.Tracker.MigrateLegacy(ctx, e.UserID); err != nil {
		return summary, err
	}

	prof, err := e.Profiles.GetProfile(ctx, e.UserID)
	if err != nil {
		return summary, fmt.Errorf("load profile: %w", err)
	}
	features, err := profile.Extract(prof)
	if err != nil {
		return summary, fmt.Errorf("extract profile features: %w", err)
	}

	// Postings left over from earlier failed deliveries go first.
	pending, err := e.Tracker.PendingForUser(ctx, e.UserID)
	if err != nil {
		return summary, err
	}

	queries := profile.GenerateQueries(features, e.MaxQueries)
	e.Logger.Info("cycle started",
		zap.String(logger.FieldUser, e.UserID),
		zap.Strings("queries", queries),
		zap.Int("pending", len(pending)),
	)

	var fresh []*posting.Posting
	for _, query := range queries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		found, err := e.runQuery(ctx, query, prof, features, summary)
		if err != nil {
			return summary, err
		}
		fresh = append(fresh, found...)
	}

	e.deliver(ctx, append(pending, fresh...), summary)

	e.Logger.Info("cycle finished",
		zap.String(logger.FieldUser, e.UserID),
		zap.Int("new", summary.NewFound),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed),
		zap.Int("query_errors", summary.QueryErrors),
	)
	return summary, nil
}

// runQuery scrapes one query across all sources. A failing source is logged
// and skipped; a store error is returned and aborts the cycle.
func (e *Engine) runQuery(
	ctx context.Context,
	query string,
	prof *profile.Profile,
	features *profile.FeatureSet,
	summary *Summary,
) ([]*posting.Posting, error) {
	var fresh []*posting.Posting

	for _, src := range e.Scrapers {
		queryCtx, cancel := context.WithTimeout(ctx, e.QueryTimeout)
		raws, err := src.Search(queryCtx, query, e.MaxResults)
		cancel()
		if err != nil {
			summary.QueryErrors++
			e.Logger.Warn("query failed, continuing with remaining queries",
				zap.String(logger.FieldQuery, query),
				zap.Error(err),
			)
			continue
		}

		for _, raw := range raws {
			if err := ctx.Err(); err != nil {
				return fresh, err
			}

			p, err := e.admit(ctx, raw, prof, features, summary)
			if err != nil {
				return fresh, err
			}
			if p != nil {
				fresh = append(fresh, p)
			}
		}
	}

	return fresh, nil
}

// admit runs one raw posting through validation, the dedup gate, and
// scoring. It returns the stored posting when the gate admitted it as new.
func (e *Engine) admit(
	ctx context.Context,
	raw *posting.RawPosting,
	prof *profile.Profile,
	features *profile.FeatureSet,
	summary *Summary,
) (*posting.Posting, error) {
	if err := raw.Validate(); err != nil {
		e.Logger.Debug("dropping malformed posting", zap.Error(err))
		return nil, nil
	}

	res, err := e.Gate.Check(ctx, e.UserID, raw)
	if err != nil {
		return nil, err
	}
	if res.Status == dedup.StatusExisting {
		summary.Duplicates++
		return nil, nil
	}

	p := e.score(raw, features)

	if e.Drafter != nil {
		draftCtx, cancel := context.WithTimeout(ctx, e.DraftTimeout)
		draft, err := e.Drafter.Draft(draftCtx, prof, p)
		cancel()
		if err != nil {
			e.Logger.Warn("draft generation failed, notifying without draft",
				zap.String(logger.FieldPosting, p.ID),
				zap.Error(err),
			)
		} else {
			p.DraftMessage = draft
		}
	}

	res, err = e.Gate.Insert(ctx, p)
	if err != nil {
		return nil, err
	}
	if res.Status == dedup.StatusExisting {
		summary.Duplicates++
		return nil, nil
	}

	summary.NewFound++
	return p, nil
}

// score builds the stored posting from a raw one. Scores are computed once
// here and never recomputed.
func (e *Engine) score(raw *posting.RawPosting, features *profile.FeatureSet) *posting.Posting {
	req := matching.ExtractRequirements(raw.Title, raw.Description)
	breakdown := matching.ScoreWith(req, features, e.Weights)

	tier := e.Classifier.Classify(raw.Title, raw.Company, raw.Description)
	timing := matching.TimingMultiplier(raw.PublishedAt, e.Now())
	estimate := matching.EstimateAcceptanceWith(
		breakdown.Total, tier, timing, features.Completeness, e.ProbabilityCeiling,
	)

	return &posting.Posting{
		ID:         uuid.NewString(),
		UserID:     e.UserID,
		Link:       raw.Link,
		Title:      raw.Title,
		Company:    raw.Company,
		Location:   raw.Location,
		Employment: raw.Employment,

		Description: raw.Description,
		Source:      raw.Source,

		RequiredSkills:     req.Required,
		PreferredSkills:    req.Preferred,
		RequiredEducation:  req.Education,
		RequiredExperience: req.Experience,

		TechnicalScore:  breakdown.Technical,
		ExperienceScore: breakdown.Experience,
		EducationScore:  breakdown.Education,
		Compatibility:   breakdown.Total,

		AcceptanceProbability: estimate.Probability * 100,
		ProbabilityLow:        estimate.Low,
		ProbabilityHigh:       estimate.High,

		State:        posting.StateUnnotified,
		DiscoveredAt: e.Now(),
	}
}

// deliver sends every pending posting. A failed send leaves the posting
// unnotified so the next cycle retries it.
func (e *Engine) deliver(ctx context.Context, batch []*posting.Posting, summary *Summary) {
	for _, p := range batch {
		if err := ctx.Err(); err != nil {
			return
		}

		sendCtx, cancel := context.WithTimeout(ctx, e.NotifyTimeout)
		err := e.Notifier.Send(sendCtx, p)
		cancel()
		if err != nil {
			summary.Failed++
			e.Logger.Warn("notification failed, will retry next cycle",
				append(logger.PostingFields(p.UserID, p.ID), zap.Error(err))...)
			continue
		}

		if err := e.Tracker.MarkNotified(ctx, p); err != nil {
			// Delivered but not recorded. The posting may be sent again
			// next cycle; better a duplicate message than a silent drop.
			summary.Failed++
			e.Logger.Error("delivered but failed to record notification",
				append(logger.PostingFields(p.UserID, p.ID), zap.Error(err))...)
			continue
		}
		summary.Sent++
	}
}
