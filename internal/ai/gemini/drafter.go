package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/logger"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/profile"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/util"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	// maxDraftRunes bounds the stored draft; anything longer is truncated
	// rather than rejected.
	maxDraftRunes = 1200
)

// Drafter asks Gemini for an application message tailored to one posting.
type Drafter struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewDrafter(generator contentGenerator, log *zap.Logger, maxLogLength int) *Drafter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Drafter{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (d *Drafter) Draft(ctx context.Context, prof *profile.Profile, p *posting.Posting) (string, error) {
	if prof == nil {
		return "", fmt.Errorf("profile is required")
	}
	if p == nil {
		return "", fmt.Errorf("posting is required")
	}

	profileJSON, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile payload: %w", err)
	}

	postingPayload := map[string]any{
		"title":            p.Title,
		"company":          p.Company,
		"location":         p.Location,
		"description":      util.TruncateForLog(p.Description, 2000),
		"required_skills":  p.RequiredSkills,
		"preferred_skills": p.PreferredSkills,
	}
	postingJSON, err := json.MarshalIndent(postingPayload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal posting payload: %w", err)
	}

	prompt := buildPrompt(string(profileJSON), string(postingJSON))

	d.logger.Debug("gemini generate content request",
		zap.String(logger.FieldPosting, p.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, d.maxLogLen)),
	)

	raw, err := d.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	d.logger.Debug("gemini generate content response",
		zap.String(logger.FieldPosting, p.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, d.maxLogLen)),
	)

	return cleanDraft(raw), nil
}

func buildPrompt(profileJSON, postingJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Profile:\n{{PROFILE_JSON}}\n\nPosting:\n{{POSTING_JSON}}\n\nMessage:"
	}
	prompt := strings.ReplaceAll(template, "{{PROFILE_JSON}}", profileJSON)
	prompt = strings.ReplaceAll(prompt, "{{POSTING_JSON}}", postingJSON)
	return prompt
}

// cleanDraft strips code fences the model sometimes wraps plain text in and
// bounds the length.
func cleanDraft(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```text")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
		if idx := strings.LastIndex(cleaned, "```"); idx != -1 {
			cleaned = cleaned[:idx]
		}
	}
	cleaned = strings.TrimSpace(strings.Trim(cleaned, "`"))

	runes := []rune(cleaned)
	if len(runes) > maxDraftRunes {
		cleaned = string(runes[:maxDraftRunes])
	}
	return cleaned
}
