package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/profile"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestDrafterDraft(t *testing.T) {
	stub := &stubGenerator{response: "Dear team, I am excited to apply."}
	drafter := NewDrafter(stub, zap.NewNop(), 0)

	prof := &profile.Profile{Skills: []string{"python", "sql"}}
	p := &posting.Posting{
		ID:             "p1",
		Title:          "Data Intern",
		Company:        "Acme",
		RequiredSkills: []string{"python"},
	}

	draft, err := drafter.Draft(context.Background(), prof, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if draft != "Dear team, I am excited to apply." {
		t.Fatalf("unexpected draft: %q", draft)
	}

	if !strings.Contains(stub.lastPrompt, "Data Intern") {
		t.Fatalf("expected posting title in prompt: %s", stub.lastPrompt)
	}
	if !strings.Contains(stub.lastPrompt, "python") {
		t.Fatalf("expected profile skills in prompt: %s", stub.lastPrompt)
	}
}

func TestDrafterStripsCodeFences(t *testing.T) {
	stub := &stubGenerator{response: "```text\nHello hiring team.\n```"}
	drafter := NewDrafter(stub, zap.NewNop(), 0)

	draft, err := drafter.Draft(context.Background(), &profile.Profile{}, &posting.Posting{ID: "p1", Title: "X"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft != "Hello hiring team." {
		t.Fatalf("unexpected draft: %q", draft)
	}
}

func TestDrafterTruncatesLongDrafts(t *testing.T) {
	stub := &stubGenerator{response: strings.Repeat("a", maxDraftRunes+100)}
	drafter := NewDrafter(stub, zap.NewNop(), 0)

	draft, err := drafter.Draft(context.Background(), &profile.Profile{}, &posting.Posting{ID: "p1", Title: "X"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len([]rune(draft)) != maxDraftRunes {
		t.Fatalf("draft length = %d, want %d", len([]rune(draft)), maxDraftRunes)
	}
}

func TestDrafterPropagatesGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exceeded")}
	drafter := NewDrafter(stub, zap.NewNop(), 0)

	_, err := drafter.Draft(context.Background(), &profile.Profile{}, &posting.Posting{ID: "p1", Title: "X"})
	if err == nil {
		t.Fatalf("expected error from generator")
	}
}
