package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start an edit session",
	Long: `Start an edit session. Commands that change the CV require one.

The session lasts two hours by default and is extended by every edit. The
password is read from the terminal without echo, or from the first line of
standard input when it is not a terminal.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the edit session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session and storage status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var loginUsername string

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", domain.DefaultUsername, "User name")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Session == nil {
		return errors.New("session service not configured")
	}
	ctx := commandContext(cmd)

	cmd.Print("Password: ")
	password := readSecret(cmd)
	cmd.Println()

	if err := services.Session.Authenticate(ctx, loginUsername, password); err != nil {
		if errors.Is(err, domain.ErrAuthInvalid) {
			return errors.New("invalid username or password")
		}
		return fmt.Errorf("failed to log in: %w", err)
	}
	cmd.Printf("Logged in. Session valid for %s.\n", formatDuration(services.Session.Remaining(ctx)))
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Session == nil {
		return errors.New("session service not configured")
	}
	if err := services.Session.Logout(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	cmd.Println("Logged out.")
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ed, err := editor()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	doc := ed.Document()

	cmd.Println("Session")
	if services.Session != nil && services.Session.CheckAuthentication(ctx) {
		cmd.Printf("  Edit mode: on (%s left)\n", formatDuration(services.Session.Remaining(ctx)))
	} else {
		cmd.Println("  Edit mode: off")
	}
	cmd.Println()

	cmd.Println("Storage")
	cmd.Printf("  Location:   %s\n", orDefault(services.StorePath, "(memory)"))
	if services.Persistence != nil {
		if at, ok := services.Persistence.LastSaved(ctx); ok {
			cmd.Printf("  Last saved: %s\n", at.Local().Format("2006-01-02 15:04:05"))
		} else {
			cmd.Println("  Last saved: never")
		}
	}
	cmd.Println()

	cmd.Println("Document")
	cmd.Printf("  Title:    %s\n", doc.Title)
	cmd.Printf("  Sections: %d\n", len(doc.Sections))
	cmd.Printf("  Theme:    %s\n", displayTheme(doc.Theme))
	return nil
}

// readSecret reads a password without echo from a terminal, or one line
// from the command's input otherwise.
func readSecret(cmd *cobra.Command) string {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(cmd)
}

// readLine reads one line from the command's input.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readLine(cmd *cobra.Command) string {
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
