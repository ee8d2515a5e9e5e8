package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/logger"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/util"
)

const (
	telegramAPIURL  = "https://api.telegram.org"
	telegramTimeout = 10 * time.Second
)

// Telegram delivers postings over the Bot API sendMessage method.
type Telegram struct {
	Token  string
	ChatID string

	HTTPClient *http.Client
	BaseURL    string

	logger *zap.Logger
}

func NewTelegram(token, chatID string, log *zap.Logger) *Telegram {
	if log == nil {
		log = zap.NewNop()
	}
	return &Telegram{
		Token:      token,
		ChatID:     chatID,
		HTTPClient: &http.Client{Timeout: telegramTimeout},
		BaseURL:    telegramAPIURL,
		logger:     log,
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (t *Telegram) Send(ctx context.Context, p *posting.Posting) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                t.ChatID,
		Text:                  FormatPosting(p),
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read telegram response: %w", err)
	}

	var apiResp sendMessageResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("bad status: %s: %s", resp.Status, util.TruncateForLog(string(body), 200))
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram refused message: %s", apiResp.Description)
	}

	t.logger.Debug("notification delivered",
		zap.String(logger.FieldPosting, p.ID),
		zap.String(logger.FieldUser, p.UserID),
	)
	return nil
}
