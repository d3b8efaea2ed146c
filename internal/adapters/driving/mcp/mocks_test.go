package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/custodia-labs/cvboard/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/services"
)

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	authenticated bool
}

func (m *mockSessionService) CheckAuthentication(_ context.Context) bool { return m.authenticated }

func (m *mockSessionService) Authenticate(_ context.Context, _, _ string) error { return nil }

func (m *mockSessionService) Login(_ context.Context) error {
	m.authenticated = true
	return nil
}

func (m *mockSessionService) Logout(_ context.Context) error {
	m.authenticated = false
	return nil
}

func (m *mockSessionService) ExtendSession(_ context.Context) error { return nil }

func (m *mockSessionService) Remaining(_ context.Context) time.Duration { return 0 }

func (m *mockSessionService) StartSessionCheck(_ func()) func() { return func() {} }

func testDocument() domain.Document {
	return domain.Document{
		Title:    "Test CV",
		Subtitle: "cv-test",
		Theme:    domain.ThemeLight,
		Sections: []domain.Section{
			{ID: "a", Type: domain.SectionCustom, Title: "A", Order: 0, Content: domain.CustomContent{Text: "alpha"}},
			{ID: "b", Type: domain.SectionSkills, Title: "B", Order: 1, Content: domain.DefaultContent(domain.SectionSkills)},
			{ID: "c", Type: domain.SectionCustom, Title: "C", Order: 2, Content: domain.CustomContent{Text: "gamma"}},
		},
	}
}

func newTestEditor(t *testing.T) *services.EditorService {
	t.Helper()
	persistence := services.NewPersistenceService(memory.NewKVStore())
	ed := services.NewEditorService(testDocument(), persistence, time.Hour)
	t.Cleanup(func() { _ = ed.Close(context.Background()) })
	return ed
}

func newTestServer(t *testing.T, session *mockSessionService) (*Server, *services.EditorService) {
	t.Helper()
	ed := newTestEditor(t)
	ports := &Ports{Editor: ed}
	if session != nil {
		ports.Session = session
	}
	server, err := NewServer(ports)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return server, ed
}
