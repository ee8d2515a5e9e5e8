package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/util"
)

const (
	linkedinSearchURL = "https://www.linkedin.com/jobs/search"
	linkedinTimeout   = 20 * time.Second
	detailFetchDelay  = 1500 * time.Millisecond

	// Guest pages serve a desktop browser markup; a bare Go user agent gets
	// a challenge page instead.
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// LinkedIn scrapes the public guest job search. No authentication is used;
// only fields present on the result cards are filled.
type LinkedIn struct {
	HTTPClient *http.Client
	UserAgent  string

	// BaseURL overrides the endpoint, for tests.
	BaseURL string

	// FetchDescriptions enables one extra request per posting to pull the
	// full description from the job page.
	FetchDescriptions bool

	logger *zap.Logger
}

func NewLinkedIn(log *zap.Logger) *LinkedIn {
	if log == nil {
		log = zap.NewNop()
	}
	return &LinkedIn{
		HTTPClient: &http.Client{Timeout: linkedinTimeout},
		UserAgent:  defaultUserAgent,
		BaseURL:    linkedinSearchURL,
		logger:     log,
	}
}

func (l *LinkedIn) Search(ctx context.Context, query string, maxResults int) ([]*posting.RawPosting, error) {
	q := url.Values{}
	q.Set("keywords", query)
	q.Set("f_TPR", "r86400") // last 24 hours

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", l.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	l.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: bad status: %s", ErrUnavailable, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	postings := l.parseCards(doc, maxResults)

	if l.FetchDescriptions {
		for i, p := range postings {
			// Pace the per-posting requests so guest pages do not start
			// masking results.
			if i > 0 {
				if err := util.WaitFor(ctx, detailFetchDelay); err != nil {
					return postings, err
				}
			}
			l.fillDescription(ctx, p)
		}
	}

	l.logger.Debug("parsed search results",
		zap.String("query", query),
		zap.Int("count", len(postings)),
	)
	return postings, nil
}

func (l *LinkedIn) parseCards(doc *goquery.Document, maxResults int) []*posting.RawPosting {
	var postings []*posting.RawPosting

	doc.Find("div.base-card").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := strings.TrimSpace(card.Find("h3.base-search-card__title").Text())
		company := strings.TrimSpace(card.Find("h4.base-search-card__subtitle").Text())
		location := strings.TrimSpace(card.Find("span.job-search-card__location").Text())
		link, _ := card.Find("a.base-card__full-link").Attr("href")

		// Rate-limited guest pages mask card contents with asterisks.
		if strings.Contains(title, "***") || strings.Contains(company, "***") {
			return true
		}
		if title == "" && link == "" {
			return true
		}

		publishedAt, _ := card.Find("time.job-search-card__listdate").Attr("datetime")

		postings = append(postings, &posting.RawPosting{
			Title:       title,
			Company:     company,
			Location:    location,
			Link:        stripTracking(link),
			Source:      "linkedin",
			PublishedAt: publishedAt,
		})
		return maxResults <= 0 || len(postings) < maxResults
	})

	return postings
}

// fillDescription pulls the job page and extracts the description block.
// Failures leave the posting without a description; scoring degrades
// gracefully.
func (l *LinkedIn) fillDescription(ctx context.Context, p *posting.RawPosting) {
	if p.Link == "" {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Link, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", l.UserAgent)

	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		l.logger.Debug("description fetch failed", zap.String("link", p.Link), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return
	}

	p.Description = strings.TrimSpace(doc.Find(".show-more-less-html__markup").First().Text())
}

// stripTracking drops the query string from a result link. LinkedIn appends
// per-request tracking parameters that would break link-based deduplication.
func stripTracking(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return strings.TrimSpace(link)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
