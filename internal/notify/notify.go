// Package notify delivers posting notifications to the user.
package notify

import (
	"context"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
)

// Notifier sends one message per posting. Send must return an error on any
// delivery failure so the posting stays pending for the next cycle.
type Notifier interface {
	Send(ctx context.Context, p *posting.Posting) error
}
