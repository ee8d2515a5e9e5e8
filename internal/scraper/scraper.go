// Package scraper retrieves raw postings from external job boards.
package scraper

import (
	"context"
	"errors"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
)

// ErrUnavailable marks a source that cannot be reached or refuses to serve.
// A cycle skips the failing query and carries on with the rest.
var ErrUnavailable = errors.New("job source unavailable")

// Scraper searches one job source. Implementations return at most maxResults
// postings and must leave fields they cannot fill empty rather than guessing.
type Scraper interface {
	Search(ctx context.Context, query string, maxResults int) ([]*posting.RawPosting, error)
}
