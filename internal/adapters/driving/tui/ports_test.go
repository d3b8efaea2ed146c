package tui

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/cvboard/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/services"
)

// MockSessionService implements driving.SessionService for testing.
type MockSessionService struct {
	mu            sync.Mutex
	authenticated bool
	checks        int
	stops         int
	extended      int
	onExpired     func()
}

func (m *MockSessionService) CheckAuthentication(context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

func (m *MockSessionService) Authenticate(_ context.Context, username, password string) error {
	if username != domain.DefaultUsername || password != domain.DefaultPassword {
		return domain.ErrAuthInvalid
	}
	m.mu.Lock()
	m.authenticated = true
	m.mu.Unlock()
	return nil
}

func (m *MockSessionService) Login(context.Context) error {
	m.mu.Lock()
	m.authenticated = true
	m.mu.Unlock()
	return nil
}

func (m *MockSessionService) Logout(context.Context) error {
	m.mu.Lock()
	m.authenticated = false
	m.mu.Unlock()
	return nil
}

func (m *MockSessionService) ExtendSession(context.Context) error {
	m.mu.Lock()
	m.extended++
	m.mu.Unlock()
	return nil
}

func (m *MockSessionService) Remaining(context.Context) time.Duration { return time.Hour }

func (m *MockSessionService) StartSessionCheck(onExpired func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks++
	m.onExpired = onExpired
	return func() {
		m.mu.Lock()
		m.stops++
		m.mu.Unlock()
	}
}

// expire fires the callback handed to the last session check.
func (m *MockSessionService) expire() {
	m.mu.Lock()
	fn := m.onExpired
	m.authenticated = false
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// MockExportService implements driving.ExportService for testing.
type MockExportService struct {
	generating bool
	err        error
}

func (m *MockExportService) ExportPDF(_ context.Context, w io.Writer, doc domain.Document) error {
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, "%PDF-1.4\n% "+doc.Title+"\n")
	return err
}

func (m *MockExportService) Generating() bool { return m.generating }

func newTestEditor(t *testing.T) *services.EditorService {
	t.Helper()
	doc := domain.Document{
		Title: "Jane Doe",
		Theme: domain.ThemeLight,
		Sections: []domain.Section{
			{ID: "a", Type: domain.SectionCustom, Title: "About", Content: domain.CustomContent{Text: "alpha"}},
		},
	}
	ed := services.NewEditorService(doc, services.NewPersistenceService(memory.NewKVStore()), time.Hour)
	t.Cleanup(func() { _ = ed.Close(context.Background()) })
	return ed
}

func TestNewPorts(t *testing.T) {
	ed := newTestEditor(t)
	session := &MockSessionService{}

	ports := NewPorts(ed, session)

	assert.Equal(t, ed, ports.Editor)
	assert.Equal(t, session, ports.Session)
	assert.Nil(t, ports.Export)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	ed := newTestEditor(t)

	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing editor", &Ports{Session: &MockSessionService{}}, ErrMissingEditorService},
		{"missing session", &Ports{Editor: ed}, ErrMissingSessionService},
		{"complete", &Ports{Editor: ed, Session: &MockSessionService{}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.want)
		})
	}
}
