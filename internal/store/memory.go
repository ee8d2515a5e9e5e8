package store

import (
	"context"
	"sync"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/posting"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/util"
)

// Memory is an in-process Store used by tests and dry runs. It enforces the
// same uniqueness rules as the SQL schema.
type Memory struct {
	mu    sync.Mutex
	byID  map[string]*posting.Posting
	order []string

	fail error
}

func NewMemory() *Memory {
	return &Memory{byID: make(map[string]*posting.Posting)}
}

// Fail makes every subsequent call return err. Used to exercise the
// store-outage path.
func (m *Memory) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

func linkKey(userID, link string) string {
	return userID + "\x00" + link
}

func titleCompanyKey(userID, title, company string) string {
	return userID + "\x00" + util.NormalizeToken(title) + "\x00" + util.NormalizeToken(company)
}

func (m *Memory) Insert(ctx context.Context, p *posting.Posting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}

	for _, existing := range m.byID {
		if existing.UserID != p.UserID {
			continue
		}
		if p.Link != "" && existing.Link == p.Link {
			return ErrDuplicateKey
		}
		if p.Title != "" &&
			titleCompanyKey(existing.UserID, existing.Title, existing.Company) ==
				titleCompanyKey(p.UserID, p.Title, p.Company) {
			return ErrDuplicateKey
		}
	}

	clone := *p
	m.byID[p.ID] = &clone
	m.order = append(m.order, p.ID)
	return nil
}

func (m *Memory) FindByLink(ctx context.Context, userID, link string) (*posting.Posting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}

	for _, id := range m.order {
		p := m.byID[id]
		if p.UserID == userID && p.Link == link {
			clone := *p
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) FindByTitleCompany(ctx context.Context, userID, title, company string) (*posting.Posting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}

	want := titleCompanyKey(userID, title, company)
	for _, id := range m.order {
		p := m.byID[id]
		if p.UserID == userID && titleCompanyKey(p.UserID, p.Title, p.Company) == want {
			clone := *p
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateNotificationState(ctx context.Context, id string, from, to posting.State) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}

	p, ok := m.byID[id]
	if !ok || p.State != from {
		return false, nil
	}
	p.State = to
	return true, nil
}

func (m *Memory) ListByState(ctx context.Context, userID string, state posting.State) ([]*posting.Posting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}

	var postings []*posting.Posting
	for _, id := range m.order {
		p := m.byID[id]
		if p.UserID == userID && p.State == state {
			clone := *p
			postings = append(postings, &clone)
		}
	}
	return postings, nil
}

// MigrateLegacy marks rows with an empty state as notified, mirroring the
// SQL backfill of NULL states.
func (m *Memory) MigrateLegacy(ctx context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return 0, m.fail
	}

	var n int64
	for _, id := range m.order {
		p := m.byID[id]
		if p.UserID == userID && p.State == "" {
			p.State = posting.StateNotified
			n++
		}
	}
	return n, nil
}
