// Package login provides the edit-mode login view for the TUI.
package login

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driving"
)

// View asks for the edit-mode username and password.
type View struct {
	styles   *styles.Styles
	session  driving.SessionService
	ctx      context.Context
	username *input.Field
	password *input.Field
	focus    int
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new login view.
func NewView(s *styles.Styles, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:   s,
		session:  session,
		ctx:      context.Background(),
		username: input.NewField(s, "Username", input.WithPlaceholder(domain.DefaultUsername)),
		password: input.NewField(s, "Password", input.WithMask()),
		width:    80,
		height:   24,
	}
	v.password.Blur()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.username.Init()
}

// Reset clears both fields and focuses the username.
func (v *View) Reset() {
	v.username.Reset()
	v.password.Reset()
	v.err = nil
	v.setFocus(0)
}

func (v *View) setFocus(i int) {
	v.focus = i
	if i == 0 {
		v.password.Blur()
		v.username.Focus()
		return
	}
	v.username.Blur()
	v.password.Focus()
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.LoginCompleted:
		v.err = msg.Err
		if msg.Err != nil {
			v.password.Reset()
			v.setFocus(1)
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewBoard}
			}
		case "tab", "shift+tab", "up", "down":
			v.setFocus(1 - v.focus)
			return v, nil
		case "enter":
			if v.focus == 0 {
				v.setFocus(1)
				return v, nil
			}
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.username, cmd = v.username.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

// submit checks the credentials off the update loop.
func (v *View) submit() tea.Cmd {
	user := v.username.Value()
	if user == "" {
		user = domain.DefaultUsername
	}
	pass := v.password.Value()
	ctx, session := v.ctx, v.session
	return func() tea.Msg {
		return messages.LoginCompleted{Err: session.Authenticate(ctx, user, pass)}
	}
}

// View renders the login form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Edit mode"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Log in to change the CV. The login lasts two hours."))
	b.WriteString("\n\n")
	b.WriteString(v.username.View())
	b.WriteString("\n")
	b.WriteString(v.password.View())
	b.WriteString("\n\n")

	if v.err != nil {
		text := v.err.Error()
		if errors.Is(v.err, domain.ErrAuthInvalid) {
			text = "invalid username or password"
		}
		b.WriteString(v.styles.Error.Render(text))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[tab] switch field  [enter] log in  [esc] cancel"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.username.SetWidth(width)
	v.password.SetWidth(width)
}

// Focus returns 0 when the username is focused and 1 for the password.
func (v *View) Focus() int {
	return v.focus
}

// Err returns the last login error.
func (v *View) Err() error {
	return v.err
}
