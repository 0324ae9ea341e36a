package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hyperjump/bogoseo/internal/models"
)

// MemoryStore keeps templates and reports in process memory. It is the
// default backend; contents live for the process lifetime.
type MemoryStore struct {
	templates *memoryTemplates
	reports   *memoryReports
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: &memoryTemplates{byID: make(map[string]*models.Template)},
		reports:   &memoryReports{byID: make(map[string]*models.Report)},
	}
}

func (s *MemoryStore) Templates() TemplateRegistry { return s.templates }
func (s *MemoryStore) Reports() ReportRegistry     { return s.reports }
func (s *MemoryStore) Close() error                { return nil }

type memoryTemplates struct {
	mu    sync.RWMutex
	byID  map[string]*models.Template
	order []string
}

func (m *memoryTemplates) Put(_ context.Context, t *models.Template) (string, error) {
	if err := ValidateTemplate(t); err != nil {
		return "", err
	}
	stored := t.Clone()
	stored.ID = uuid.New().String()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	m.mu.Lock()
	m.byID[stored.ID] = stored
	m.order = append(m.order, stored.ID)
	m.mu.Unlock()
	return stored.ID, nil
}

func (m *memoryTemplates) PutWithID(_ context.Context, id string, t *models.Template) error {
	if id == "" {
		return fmt.Errorf("template id cannot be empty")
	}
	if err := ValidateTemplate(t); err != nil {
		return err
	}
	stored := t.Clone()
	stored.ID = id
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	m.mu.Lock()
	if _, exists := m.byID[id]; !exists {
		m.order = append(m.order, id)
	}
	m.byID[id] = stored
	m.mu.Unlock()
	return nil
}

func (m *memoryTemplates) Get(_ context.Context, id string) (*models.Template, error) {
	m.mu.RLock()
	t, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return t.Clone(), nil
}

func (m *memoryTemplates) List(_ context.Context) ([]*models.Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Template, 0, len(m.order))
	for _, id := range m.order {
		if t, ok := m.byID[id]; ok {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

func (m *memoryTemplates) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	delete(m.byID, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memoryTemplates) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.byID)), nil
}

type memoryReports struct {
	mu    sync.RWMutex
	byID  map[string]*models.Report
	order []string
}

func (m *memoryReports) Put(_ context.Context, r *models.Report) (string, error) {
	if err := validateReport(r); err != nil {
		return "", err
	}
	stored := *r
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	stored.Template = r.Template.Clone()
	m.mu.Lock()
	if _, exists := m.byID[stored.ID]; !exists {
		m.order = append(m.order, stored.ID)
	}
	m.byID[stored.ID] = &stored
	m.mu.Unlock()
	return stored.ID, nil
}

func (m *memoryReports) Get(_ context.Context, id string) (*models.Report, error) {
	m.mu.RLock()
	r, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	out := *r
	out.Template = r.Template.Clone()
	return &out, nil
}

func (m *memoryReports) List(_ context.Context) ([]*models.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Report, 0, len(m.order))
	for _, id := range m.order {
		if r, ok := m.byID[id]; ok {
			c := *r
			c.Template = r.Template.Clone()
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memoryReports) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.byID)), nil
}
