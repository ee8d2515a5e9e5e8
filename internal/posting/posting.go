// Package posting defines the stored job posting model and its notification
// state machine.
package posting

import (
	"errors"
	"strings"
	"time"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/profile"
)

// ErrMalformed marks a scraped posting that carries no usable identity
// (neither link nor title). Such postings are dropped, not stored.
var ErrMalformed = errors.New("posting has no link and no title")

// RawPosting is a posting as returned by a scraper, before deduplication and
// scoring.
type RawPosting struct {
	Title       string `json:"title" mapstructure:"title"`
	Company     string `json:"company" mapstructure:"company"`
	Location    string `json:"location" mapstructure:"location"`
	Link        string `json:"link" mapstructure:"link"`
	Employment  string `json:"employment" mapstructure:"employment"`
	Description string `json:"description" mapstructure:"description"`
	Source      string `json:"source" mapstructure:"source"`
	PublishedAt string `json:"published_at" mapstructure:"published_at"`
}

// Validate checks the identity fields required for deduplication.
func (r *RawPosting) Validate() error {
	if strings.TrimSpace(r.Link) == "" && strings.TrimSpace(r.Title) == "" {
		return ErrMalformed
	}
	return nil
}

// Posting is one stored opportunity. Exactly one row exists per distinct
// opportunity; score fields are set once at creation and never recomputed.
type Posting struct {
	ID         string
	UserID     string
	Link       string
	Title      string
	Company    string
	Location   string
	Employment string

	Description string
	Source      string

	RequiredSkills     []string
	PreferredSkills    []string
	RequiredEducation  profile.EducationLevel
	RequiredExperience profile.ExperienceLevel

	TechnicalScore  int
	ExperienceScore int
	EducationScore  int
	Compatibility   int

	// AcceptanceProbability is stored in score points (0-85) together with
	// its confidence band bounds.
	AcceptanceProbability float64
	ProbabilityLow        float64
	ProbabilityHigh       float64

	// DraftMessage is an optional AI-drafted application message attached to
	// the notification.
	DraftMessage string

	State        State
	DiscoveredAt time.Time
}
