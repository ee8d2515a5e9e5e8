package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/logger"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
)

// Console logs notifications instead of delivering them. Used for dry runs.
type Console struct {
	logger *zap.Logger
}

func NewConsole(log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{logger: log}
}

func (c *Console) Send(_ context.Context, p *posting.Posting) error {
	c.logger.Info("would notify",
		zap.String(logger.FieldPosting, p.ID),
		zap.String("title", p.Title),
		zap.String("company", p.Company),
		zap.Int("compatibility", p.Compatibility),
		zap.Float64("acceptance_probability", p.AcceptanceProbability),
	)
	return nil
}
