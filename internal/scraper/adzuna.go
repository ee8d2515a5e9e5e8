package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
)

const (
	adzunaBaseURL  = "https://api.adzuna.com/v1/api/jobs"
	adzunaPageSize = 50
	adzunaTimeout  = 15 * time.Second
)

// Adzuna fetches postings from the Adzuna public API. With empty credentials
// Search returns nothing rather than failing, so the source can stay
// configured but dormant.
type Adzuna struct {
	AppID   string
	AppKey  string
	Country string

	HTTPClient *http.Client
	BaseURL    string

	logger *zap.Logger
}

func NewAdzuna(appID, appKey, country string, log *zap.Logger) *Adzuna {
	if country == "" {
		country = "us"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Adzuna{
		AppID:      appID,
		AppKey:     appKey,
		Country:    country,
		HTTPClient: &http.Client{Timeout: adzunaTimeout},
		BaseURL:    adzunaBaseURL,
		logger:     log,
	}
}

type adzunaResponse struct {
	Results []any `json:"results"`
	Count   int   `json:"count"`
}

type adzunaResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	RedirectURL  string `json:"redirect_url"`
	Created      string `json:"created"`
	ContractTime string `json:"contract_time"`
}

func (a *Adzuna) Search(ctx context.Context, query string, maxResults int) ([]*posting.RawPosting, error) {
	if a.AppID == "" || a.AppKey == "" {
		a.logger.Debug("adzuna credentials not set, skipping source")
		return nil, nil
	}

	perPage := adzunaPageSize
	if maxResults > 0 && maxResults < perPage {
		perPage = maxResults
	}

	q := url.Values{}
	q.Set("app_id", a.AppID)
	q.Set("app_key", a.AppKey)
	q.Set("results_per_page", strconv.Itoa(perPage))
	q.Set("what", query)
	q.Set("sort_by", "date")

	endpoint := fmt.Sprintf("%s/%s/search/1", a.BaseURL, a.Country)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	a.logger.Debug("make request", zap.String("url", endpoint))

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: adzuna returned %d", ErrUnavailable, resp.StatusCode)
	}

	var apiResp adzunaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	var results []*adzunaResult
	decoder, _ := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &results,
		TagName: "json",
	})
	if err := decoder.Decode(apiResp.Results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}

	postings := make([]*posting.RawPosting, 0, len(results))
	for _, r := range results {
		if maxResults > 0 && len(postings) >= maxResults {
			break
		}
		postings = append(postings, &posting.RawPosting{
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			Link:        r.RedirectURL,
			Employment:  r.ContractTime,
			Description: r.Description,
			Source:      "adzuna",
			PublishedAt: r.Created,
		})
	}

	return postings, nil
}
