package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/custodia-labs/cvboard/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cvboard/internal/adapters/driven/render"
	"github.com/custodia-labs/cvboard/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cvboard/internal/core/domain"
	coresvc "github.com/custodia-labs/cvboard/internal/core/services"
)

// testEnv wires real services over an in-memory store.
type testEnv struct {
	store       *memory.KVStore
	editor      *coresvc.EditorService
	persistence *coresvc.PersistenceService
	session     *coresvc.SessionService
	config      *file.ConfigStore
}

func testDocument() domain.Document {
	return domain.Document{
		Title:    "Jane Doe",
		Subtitle: "Engineer",
		Theme:    domain.ThemeLight,
		Sections: []domain.Section{
			{ID: "aaa-1", Type: domain.SectionCustom, Title: "About", Order: 0, Content: domain.CustomContent{Text: "alpha"}},
			{ID: "bbb-2", Type: domain.SectionInterests, Title: "Hobbies", Order: 1,
				Content: domain.InterestsContent{Interests: []string{"chess"}}},
			{ID: "ccc-3", Type: domain.SectionCustom, Title: "Contact", Order: 2, Content: domain.CustomContent{Text: "gamma"}},
		},
	}
}

func newTestEnv(t *testing.T, loggedIn bool) *testEnv {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(domain.DefaultPassword), bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.NewKVStore()
	persistence := coresvc.NewPersistenceService(store)
	ed := coresvc.NewEditorService(testDocument(), persistence, time.Hour)
	session := coresvc.NewSessionService(store, domain.SessionSettings{PasswordHash: string(hash)})
	config, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	if loggedIn {
		require.NoError(t, session.Login(context.Background()))
	}

	env := &testEnv{
		store:       store,
		editor:      ed,
		persistence: persistence,
		session:     session,
		config:      config,
	}
	SetServices(&Services{
		Editor:      ed,
		Persistence: persistence,
		Session:     session,
		Export: coresvc.NewExportService(nil,
			render.NewRasterizer(domain.ExportSettings{Scale: 1}), render.NewPDFWriter(), domain.A4),
		Settings:  coresvc.NewSettingsService(config),
		Config:    config,
		StorePath: "memory://test",
	})
	t.Cleanup(func() {
		_ = ed.Close(context.Background())
		SetServices(nil)
		resetFlags()
	})
	return env
}

// resetFlags restores package-level flag values between runs.
func resetFlags() {
	sectionAddTitle = ""
	sectionEditFile = "-"
	exportOutput = ""
	resetYes = false
	clearYes = false
	showJSON = false
	loginUsername = domain.DefaultUsername
	exportDir = ""
}

// run executes the root command with args and stdin, returning its output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func orderedIDs(env *testEnv) []string {
	var ids []string
	for _, s := range env.editor.Document().Ordered() {
		ids = append(ids, s.ID)
	}
	return ids
}
