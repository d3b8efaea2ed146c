package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/views/board"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/views/edit"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/views/login"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/views/picker"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/views/prompt"
	"github.com/custodia-labs/cvboard/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	statusbar  *status.Bar
	boardView  *board.View
	editView   *edit.View
	loginView  *login.View
	pickerView *picker.View
	promptView *prompt.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// editMode mirrors the session gate.
	editMode bool

	// theme is the CV theme the styles were built from.
	theme domain.Theme

	// stopSessionCheck cancels the running expiry poll, if any.
	stopSessionCheck func()
	expired          chan struct{}

	// changes carries keys written by other processes.
	changes <-chan string

	exporting bool

	// err holds the last error that occurred.
	err    error
	notice string

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	theme := ports.Editor.Document().Theme
	s := styles.NewStyles(styles.ForCVTheme(theme))
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        help.New(),
		statusbar:   status.NewBar(s, km),
		boardView:   board.NewView(s, km, ports.Editor),
		editView:    edit.NewView(s, ports.Editor),
		loginView:   login.NewView(s, ports.Session),
		pickerView:  picker.NewView(s),
		promptView:  prompt.NewView(s),
		currentView: messages.ViewBoard,
		theme:       theme,
		expired:     make(chan struct{}, 1),
		width:       80,
		height:      24,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.loginView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("cvboard"),
		a.checkSession(),
		a.watchStore(),
		a.waitSave(),
	)
}

// checkSession reports the current state of the edit-mode gate.
func (a *App) checkSession() tea.Cmd {
	session := a.ports.Session
	ctx := a.ctx
	return func() tea.Msg {
		return messages.SessionChecked{Authenticated: session.CheckAuthentication(ctx)}
	}
}

// startSessionCheck arms the expiry poll. The poll stops after it fires,
// so it is armed again on every login.
func (a *App) startSessionCheck() tea.Cmd {
	if a.stopSessionCheck != nil {
		return nil
	}
	expired := a.expired
	a.stopSessionCheck = a.ports.Session.StartSessionCheck(func() {
		select {
		case expired <- struct{}{}:
		default:
		}
	})
	return a.waitExpiry()
}

func (a *App) waitExpiry() tea.Cmd {
	expired := a.expired
	done := a.ctx.Done()
	return func() tea.Msg {
		select {
		case <-expired:
			return messages.SessionExpired{}
		case <-done:
			return nil
		}
	}
}

func (a *App) stopSession() {
	if a.stopSessionCheck != nil {
		a.stopSessionCheck()
		a.stopSessionCheck = nil
	}
}

// watchStore subscribes to writes made by other processes.
func (a *App) watchStore() tea.Cmd {
	if a.ports.Watcher == nil {
		return nil
	}
	ch, err := a.ports.Watcher.Watch(a.ctx)
	if err != nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: fmt.Errorf("watching store: %w", err)}
		}
	}
	a.changes = ch
	return a.waitChange()
}

func (a *App) waitChange() tea.Cmd {
	ch := a.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		key, ok := <-ch
		if !ok {
			return nil
		}
		return messages.StoreChanged{Key: key}
	}
}

func (a *App) waitSave() tea.Cmd {
	ch := a.ports.SaveEvents
	if ch == nil {
		return nil
	}
	done := a.ctx.Done()
	return func() tea.Msg {
		select {
		case ok, open := <-ch:
			if !open {
				return nil
			}
			return messages.SaveCompleted{OK: ok}
		case <-done:
			return nil
		}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		if a.currentView != messages.ViewBoard {
			return a, nil
		}
		a.boardView, cmd = a.boardView.Update(msg)
		a.syncStatus()
		return a, cmd

	case messages.SessionChecked:
		a.setEditMode(msg.Authenticated)
		if msg.Authenticated {
			return a, a.startSessionCheck()
		}
		a.stopSession()
		if a.currentView == messages.ViewEdit || a.currentView == messages.ViewPrompt ||
			a.currentView == messages.ViewPicker {
			a.currentView = messages.ViewBoard
		}
		return a, nil

	case messages.SessionExpired:
		a.stopSessionCheck = nil
		a.setEditMode(false)
		if a.currentView != messages.ViewLogin {
			a.currentView = messages.ViewBoard
		}
		a.notice = "session expired"
		a.syncStatus()
		return a, nil

	case messages.LoginCompleted:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err != nil {
			return a, cmd
		}
		a.setEditMode(true)
		a.currentView = messages.ViewBoard
		a.notice = "edit mode enabled"
		a.syncStatus()
		return a, tea.Batch(cmd, a.startSessionCheck())

	case messages.StoreChanged:
		switch msg.Key {
		case domain.KeyDocument:
			if a.ports.Editor.Reload(a.ctx) {
				a.refresh()
			}
		case domain.KeyAuthenticated, domain.KeyAuthTimestamp:
			return a, tea.Batch(a.checkSession(), a.waitChange())
		}
		return a, a.waitChange()

	case messages.SaveCompleted:
		a.setSaved(msg.OK)
		return a, a.waitSave()

	case flushed:
		a.setSaved(msg.ok)
		return a, nil

	case messages.DocumentChanged:
		a.refresh()
		a.statusbar.SetSave(status.SavePending)
		if a.editMode {
			// A failed extension leaves the expiry poll to end the session.
			_ = a.ports.Session.ExtendSession(a.ctx)
		}
		return a, nil

	case messages.EditRequested:
		a.currentView = messages.ViewEdit
		return a, a.editView.SetSection(msg.SectionID)

	case messages.EditApplied:
		if msg.Err != nil {
			a.notice = "rejected, reverted"
			a.syncStatus()
			return a, nil
		}
		a.currentView = messages.ViewBoard
		a.boardView.SelectSection(msg.SectionID)
		a.notice = "saved"
		return a, emit(messages.DocumentChanged{})

	case messages.PromptRequested:
		a.currentView = messages.ViewPrompt
		return a, a.promptView.Open(msg)

	case messages.PromptSubmitted:
		a.currentView = messages.ViewBoard
		if err := a.applyPrompt(msg); err != nil {
			a.err = err
			a.syncStatus()
			return a, nil
		}
		return a, emit(messages.DocumentChanged{})

	case messages.SectionTypeChosen:
		a.currentView = messages.ViewBoard
		s, err := a.ports.Editor.AddSection(msg.Type, msg.Type.Description())
		if err != nil {
			a.err = err
			a.syncStatus()
			return a, nil
		}
		a.boardView.SelectSection(s.ID)
		return a, emit(messages.DocumentChanged{})

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewPicker:
			a.pickerView.Reset()
		case messages.ViewLogin:
			a.loginView.Reset()
			return a, a.loginView.Init()
		case messages.ViewBoard, messages.ViewEdit, messages.ViewPrompt, messages.ViewHelp:
		}
		a.syncStatus()
		return a, nil

	case messages.ExportCompleted:
		a.exporting = false
		if msg.Err != nil {
			a.err = msg.Err
		} else {
			a.notice = "exported " + msg.Path
		}
		a.syncStatus()
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.syncStatus()
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewBoard:
		a.boardView, cmd = a.boardView.Update(msg)
	case messages.ViewEdit:
		a.editView, cmd = a.editView.Update(msg)
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewPicker:
		a.pickerView, cmd = a.pickerView.Update(msg)
	case messages.ViewPrompt:
		a.promptView, cmd = a.promptView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	k := msg.String()

	// Global quit with ctrl+c
	if k == "ctrl+c" {
		return a, tea.Quit
	}
	a.err = nil
	a.notice = ""

	switch a.currentView {
	case messages.ViewBoard:
		if !a.boardView.Busy() {
			if next, handled := a.boardKey(k); handled {
				a.syncStatus()
				return a, next
			}
		}
		a.boardView, cmd = a.boardView.Update(msg)

	case messages.ViewHelp:
		if k == "esc" || k == "q" || k == "?" {
			a.currentView = messages.ViewBoard
		}

	case messages.ViewEdit:
		a.editView, cmd = a.editView.Update(msg)

	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)

	case messages.ViewPicker:
		a.pickerView, cmd = a.pickerView.Update(msg)

	case messages.ViewPrompt:
		a.promptView, cmd = a.promptView.Update(msg)
	}

	a.syncStatus()
	return a, cmd
}

// boardKey handles the application-level bindings of the idle board.
func (a *App) boardKey(k string) (tea.Cmd, bool) {
	switch {
	case keymap.Matches(k, a.keymap.Quit):
		a.stopSession()
		return tea.Quit, true

	case keymap.Matches(k, a.keymap.Help):
		a.currentView = messages.ViewHelp
		return nil, true

	case keymap.Matches(k, a.keymap.Export):
		return a.export(), true

	case keymap.Matches(k, a.keymap.Save):
		editor := a.ports.Editor
		ctx := a.ctx
		a.statusbar.SetSave(status.SavePending)
		return func() tea.Msg {
			return flushed{ok: editor.Flush(ctx)}
		}, true

	case keymap.Matches(k, a.keymap.Login):
		if a.editMode {
			a.notice = "already in edit mode"
			return nil, true
		}
		a.currentView = messages.ViewLogin
		a.loginView.Reset()
		return a.loginView.Init(), true

	case keymap.Matches(k, a.keymap.Logout):
		a.stopSession()
		if err := a.ports.Session.Logout(a.ctx); err != nil {
			a.err = err
			return nil, true
		}
		a.setEditMode(false)
		a.notice = "logged out"
		return nil, true
	}
	return nil, false
}

// export writes the PDF next to the working directory. The file is
// renamed into place only once rendering succeeds.
func (a *App) export() tea.Cmd {
	svc := a.ports.Export
	if svc == nil {
		a.err = domain.ErrExportUnavailable
		return nil
	}
	if a.exporting || svc.Generating() {
		a.err = domain.ErrExportInProgress
		return nil
	}
	a.exporting = true

	ctx := a.ctx
	doc := a.ports.Editor.Document()
	dir := a.ports.ExportDir
	return func() tea.Msg {
		path, err := writePDF(ctx, svc.ExportPDF, dir, doc)
		return messages.ExportCompleted{Path: path, Err: err}
	}
}

func writePDF(
	ctx context.Context,
	render func(context.Context, io.Writer, domain.Document) error,
	dir string,
	doc domain.Document,
) (string, error) {
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, ".cvboard-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if err := render(ctx, tmp, doc); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}

	path := exportPath(dir, doc.Title)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("saving export file: %w", err)
	}
	return path, nil
}

func (a *App) applyPrompt(msg messages.PromptSubmitted) error {
	switch msg.Target {
	case messages.PromptRename:
		a.ports.Editor.RenameSection(msg.SectionID, msg.Value)
		return nil
	case messages.PromptTitle:
		return a.ports.Editor.SetHeader(domain.HeaderTitle, msg.Value)
	case messages.PromptSubtitle:
		return a.ports.Editor.SetHeader(domain.HeaderSubtitle, msg.Value)
	}
	return fmt.Errorf("unknown prompt target %d", msg.Target)
}

// flushed reports a save forced from the keyboard.
type flushed struct{ ok bool }

func (a *App) setSaved(ok bool) {
	if ok {
		a.statusbar.SetSave(status.SaveDone)
	} else {
		a.statusbar.SetSave(status.SaveFailed)
	}
}

func (a *App) setEditMode(on bool) {
	a.editMode = on
	a.boardView.SetEditMode(on)
	a.syncStatus()
}

// refresh redraws the board and rebuilds the styles when the CV theme moved.
func (a *App) refresh() {
	theme := a.ports.Editor.Document().Theme
	if theme != a.theme {
		a.theme = theme
		*a.styles = *styles.NewStyles(styles.ForCVTheme(theme))
		a.boardView.SetStyles(a.styles)
		a.statusbar.SetStyles(a.styles)
	}
	a.boardView.Refresh()
}

// syncStatus derives the status bar from the app state.
func (a *App) syncStatus() {
	switch {
	case a.err != nil:
		a.statusbar.SetState(status.StateError)
		a.statusbar.SetMessage(a.err.Error())
	case a.exporting:
		a.statusbar.SetState(status.StateExporting)
		a.statusbar.SetMessage(a.notice)
	case a.currentView == messages.ViewBoard && a.boardView.Busy():
		a.statusbar.SetState(status.StateGesture)
		a.statusbar.SetMessage(a.boardView.Gesture())
	case a.editMode:
		a.statusbar.SetState(status.StateEditing)
		a.statusbar.SetMessage(a.notice)
	default:
		a.statusbar.SetState(status.StateViewing)
		a.statusbar.SetMessage(a.notice)
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewEdit:
		body = a.editView.View()
	case messages.ViewLogin:
		body = a.loginView.View()
	case messages.ViewPicker:
		body = a.pickerView.View()
	case messages.ViewPrompt:
		body = a.promptView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.boardView.View()
	}

	h := a.height - 1
	if h < 1 {
		h = 1
	}
	body = lipgloss.NewStyle().Height(h).MaxHeight(h).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusbar.View())
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	a.help.Width = a.width
	return a.styles.Title.Render("Help") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Help.Render("[esc] back to board")
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.stopSession()
	p := tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(a.ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// EditMode reports whether mutations are unlocked.
func (a *App) EditMode() bool {
	return a.editMode
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Notice returns the last status notice.
func (a *App) Notice() string {
	return a.notice
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	body := height - 1
	a.boardView.SetDimensions(width, body)
	a.editView.SetDimensions(width, body)
	a.loginView.SetDimensions(width, body)
	a.pickerView.SetDimensions(width, body)
	a.promptView.SetDimensions(width, body)
	a.statusbar.SetWidth(width)
}

// exportPath is where a finished export for title lands.
func exportPath(dir, title string) string {
	return filepath.Join(dir, domain.PDFFilename(title))
}
