package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/envsync-cli/envsync/internal/auth"
	"github.com/envsync-cli/envsync/internal/configs"
	"github.com/envsync-cli/envsync/internal/ui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login using your GitHub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if session, err := configs.LoadSession(); err == nil {
			fmt.Println("👤 Already logged in as " + ui.Highlight.Sprint(session.Login))
			return nil
		}

		client, settings, err := newBackendClient()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		loginURL := client.LoginURL()
		fmt.Println("🔓 Opening browser for GitHub login...")
		fmt.Println(ui.Muted.Sprint("If the browser does not open, visit: ") + ui.Path.Sprint(loginURL))
		if err := open.Run(loginURL); err != nil {
			// Opening the browser is best effort; the URL is printed above.
			Logger.Warnf("Could not open browser: %v", err)
		}

		s, cleanup := startSpinner("Waiting for login...", verbose)
		defer cleanup()

		poller := &auth.Poller{
			Backend:  client,
			Interval: time.Duration(settings.Login.PollIntervalSeconds) * time.Second,
			Timeout:  time.Duration(settings.Login.PollTimeoutSeconds) * time.Second,
			Logger:   Logger,
		}
		user, err := poller.Wait(cmd.Context())
		if err != nil {
			s.FinalMSG = color.RedString("✗") + " Login failed: " + err.Error()
			return err
		}

		session := &configs.Session{
			AccessToken: user.AccessToken,
			Login:       user.Login,
			Name:        user.Name,
			Email:       user.Email,
			CreatedAt:   user.CreatedAt,
		}
		if err := configs.SaveSession(session); err != nil {
			s.FinalMSG = color.RedString("✗") + " Failed to save session: " + err.Error()
			return err
		}

		finalMessage := color.GreenString("✓") + " Successfully logged in as " + ui.Highlight.Sprint(user.Login) + "\n"
		if user.Name != "" {
			finalMessage += ui.Muted.Sprint("✍️ Name: "+user.Name) + "\n"
		}
		if user.Email != "" {
			finalMessage += ui.Muted.Sprint("📧 Email: "+user.Email) + "\n"
		}
		s.FinalMSG = finalMessage
		return nil
	},
}
