package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
)

// FormatPosting renders one posting as a Telegram HTML message. All
// user-controlled fields are escaped.
func FormatPosting(p *posting.Posting) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(p.Title))
	if p.Company != "" {
		fmt.Fprintf(&b, "%s", html.EscapeString(p.Company))
		if p.Location != "" {
			fmt.Fprintf(&b, " · %s", html.EscapeString(p.Location))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nCompatibility: <b>%d/100</b>\n", p.Compatibility)
	fmt.Fprintf(&b, "Acceptance estimate: %.0f%% (range %.0f-%.0f%%)\n",
		p.AcceptanceProbability, p.ProbabilityLow, p.ProbabilityHigh)

	if p.Link != "" {
		fmt.Fprintf(&b, "\n%s\n", html.EscapeString(p.Link))
	}

	if p.DraftMessage != "" {
		fmt.Fprintf(&b, "\n<i>Suggested message:</i>\n%s\n", html.EscapeString(p.DraftMessage))
	}

	return b.String()
}
