package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/envsync-cli/envsync/internal/configs"
	eserrors "github.com/envsync-cli/envsync/internal/errors"
	"github.com/envsync-cli/envsync/internal/ui"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := configs.LoadSession()
		if err != nil {
			if errors.Is(err, eserrors.ErrNotLoggedIn) {
				fmt.Println("👤 Not logged in")
				return nil
			}
			return Logger.ErrorfAndReturn("%v", err)
		}

		client, _, err := newBackendClient()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		// Invalidate the remote session first; the local credential is
		// only removed once the backend has confirmed.
		if err := client.Logout(cmd.Context()); err != nil {
			return Logger.ErrorfAndReturn("logout failed: %v", err)
		}
		if err := configs.DeleteSession(); err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		fmt.Println(color.GreenString("✓") + " Successfully logged out as " + ui.Highlight.Sprint(session.Login))
		return nil
	},
}
