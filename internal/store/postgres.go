package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/profile"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/util"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

const postingColumns = `id, user_id, link, title, company, location, employment,
	description, source, required_skills, preferred_skills,
	required_education, required_experience,
	technical_score, experience_score, education_score, compatibility,
	acceptance_probability, probability_low, probability_high,
	draft_message, notification_state, discovered_at`

// Postgres is the production Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects, verifies the connection, and applies the schema.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s := &Postgres{pool: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema applies the embedded DDL. All statements are idempotent.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Postgres) Close() {
	s.pool.Close()
}

func (s *Postgres) Insert(ctx context.Context, p *posting.Posting) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO postings (`+postingColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		         $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		p.ID, p.UserID, p.Link, p.Title, p.Company, p.Location, p.Employment,
		p.Description, p.Source, p.RequiredSkills, p.PreferredSkills,
		string(p.RequiredEducation), string(p.RequiredExperience),
		p.TechnicalScore, p.ExperienceScore, p.EducationScore, p.Compatibility,
		p.AcceptanceProbability, p.ProbabilityLow, p.ProbabilityHigh,
		p.DraftMessage, string(p.State), p.DiscoveredAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert posting: %w", err)
	}
	return nil
}

func (s *Postgres) FindByLink(ctx context.Context, userID, link string) (*posting.Posting, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+postingColumns+` FROM postings
		 WHERE user_id = $1 AND link = $2`,
		userID, link,
	)
	return scanPosting(row)
}

func (s *Postgres) FindByTitleCompany(ctx context.Context, userID, title, company string) (*posting.Posting, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+postingColumns+` FROM postings
		 WHERE user_id = $1
		   AND lower(regexp_replace(title, '\s+', ' ', 'g')) = $2
		   AND lower(regexp_replace(company, '\s+', ' ', 'g')) = $3`,
		userID, util.NormalizeToken(title), util.NormalizeToken(company),
	)
	return scanPosting(row)
}

func (s *Postgres) UpdateNotificationState(ctx context.Context, id string, from, to posting.State) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE postings SET notification_state = $1
		 WHERE id = $2 AND notification_state = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return false, fmt.Errorf("update notification state: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Postgres) ListByState(ctx context.Context, userID string, state posting.State) ([]*posting.Posting, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+postingColumns+` FROM postings
		 WHERE user_id = $1 AND notification_state = $2
		 ORDER BY discovered_at`,
		userID, string(state),
	)
	if err != nil {
		return nil, fmt.Errorf("query postings: %w", err)
	}
	defer rows.Close()

	var postings []*posting.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

func (s *Postgres) MigrateLegacy(ctx context.Context, userID string) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE postings SET notification_state = $1
		 WHERE user_id = $2 AND notification_state IS NULL`,
		string(posting.StateNotified), userID,
	)
	if err != nil {
		return 0, fmt.Errorf("migrate legacy postings: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPosting(row pgx.Row) (*posting.Posting, error) {
	var p posting.Posting
	var education, experience string
	// Legacy rows carry a NULL state until MigrateLegacy backfills them.
	var state *string

	err := row.Scan(
		&p.ID, &p.UserID, &p.Link, &p.Title, &p.Company, &p.Location, &p.Employment,
		&p.Description, &p.Source, &p.RequiredSkills, &p.PreferredSkills,
		&education, &experience,
		&p.TechnicalScore, &p.ExperienceScore, &p.EducationScore, &p.Compatibility,
		&p.AcceptanceProbability, &p.ProbabilityLow, &p.ProbabilityHigh,
		&p.DraftMessage, &state, &p.DiscoveredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan posting: %w", err)
	}

	p.RequiredEducation = profile.EducationLevel(education)
	p.RequiredExperience = profile.ExperienceLevel(experience)
	if state != nil {
		p.State = posting.State(*state)
	}
	return &p, nil
}
