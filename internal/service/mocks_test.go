package service

import (
	"context"
	"sync"
	"time"

	"github.com/andy/salesdesk/internal/domain"
	"github.com/andy/salesdesk/internal/notify"
	"github.com/andy/salesdesk/internal/repository"
	"github.com/google/uuid"
)

// mockClientRepo behaves like the store, including the unique name index
type mockClientRepo struct {
	mu      sync.Mutex
	clients []*domain.Client

	findErrs  []error // returned by successive FindByName calls, then nil
	insertErr error
	updateErr error

	findCalls   int
	insertCalls int
	updateCalls int
}

func (m *mockClientRepo) seed(in domain.ClientInput) *domain.Client {
	c := domain.NewClient(in)
	c.ID = uuid.NewString()
	m.clients = append(m.clients, c)
	return c
}

func (m *mockClientRepo) byName(name string) *domain.Client {
	key := domain.NormalizeName(name)
	for _, c := range m.clients {
		if domain.NormalizeName(c.CompanyName) == key {
			return c
		}
	}
	return nil
}

func (m *mockClientRepo) Search(ctx context.Context, term string) ([]*domain.Client, error) {
	return nil, nil
}

func (m *mockClientRepo) FindByName(ctx context.Context, name string) (*domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	if len(m.findErrs) > 0 {
		err := m.findErrs[0]
		m.findErrs = m.findErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return m.byName(name), nil
}

func (m *mockClientRepo) Insert(ctx context.Context, client *domain.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertCalls++
	if m.insertErr != nil {
		return m.insertErr
	}
	if m.byName(client.CompanyName) != nil {
		return &repository.StoreError{Op: "insert client", Err: repository.ErrDuplicateName}
	}
	client.ID = uuid.NewString()
	m.clients = append(m.clients, client)
	return nil
}

func (m *mockClientRepo) Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	for _, c := range m.clients {
		if c.ID != id {
			continue
		}
		if patch.CompanyName != nil {
			if other := m.byName(*patch.CompanyName); other != nil && other.ID != id {
				return nil, &repository.StoreError{Op: "update client", Err: repository.ErrDuplicateName}
			}
		}
		updated := *c
		patch.Apply(&updated)
		updated.UpdatedAt = time.Now().UTC()
		*c = updated
		return &updated, nil
	}
	return nil, &repository.StoreError{Op: "update client", Err: repository.ErrNotFound}
}

func (m *mockClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, &repository.StoreError{Op: "get client", Err: repository.ErrNotFound}
}

func (m *mockClientRepo) List(ctx context.Context, limit int) ([]*domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Client, len(m.clients))
	copy(out, m.clients)
	return out, nil
}

func (m *mockClientRepo) Stats(ctx context.Context, since time.Time) (*repository.ClientStats, error) {
	return &repository.ClientStats{Total: len(m.clients)}, nil
}

type mockMailer struct {
	sent []notify.Message
	err  error
}

func (m *mockMailer) Send(ctx context.Context, msg notify.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type mockLogRepo struct {
	entries []*domain.NotificationLog
	err     error
}

func (m *mockLogRepo) Insert(ctx context.Context, entry *domain.NotificationLog) error {
	if m.err != nil {
		return m.err
	}
	entry.ID = uuid.NewString()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockLogRepo) ListRecent(ctx context.Context, limit int) ([]*domain.NotificationLog, error) {
	return m.entries, nil
}

type mockPrefsRepo struct {
	saved   *domain.Preferences
	saveErr error
}

func (m *mockPrefsRepo) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	if m.saved != nil {
		return m.saved, nil
	}
	return domain.DefaultPreferences(userID), nil
}

func (m *mockPrefsRepo) Save(ctx context.Context, prefs *domain.Preferences) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = prefs
	return nil
}
