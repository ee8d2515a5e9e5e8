// Package ai defines the optional application-message drafting boundary.
package ai

import (
	"context"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/profile"
)

// Drafter produces a short application message for a posting. A failing
// drafter never blocks delivery; the notification goes out without a draft.
type Drafter interface {
	Draft(ctx context.Context, prof *profile.Profile, p *posting.Posting) (string, error)
}
