package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envsync-cli/envsync/internal/configs"
	"github.com/envsync-cli/envsync/internal/ui"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged in user",
	Run: func(cmd *cobra.Command, args []string) {
		session, err := configs.LoadSession()
		if err != nil {
			fmt.Println("👤 Not logged in")
			fmt.Println(ui.Muted.Sprint("Run ") + ui.Code.Sprint("envsync login") + ui.Muted.Sprint(" to authenticate"))
			return
		}

		fmt.Println("👤 Logged in as " + ui.Highlight.Sprint(session.Login))
		if session.Name != "" {
			fmt.Println(ui.Muted.Sprint("🖊️ Name:  " + session.Name))
		}
		if session.Email != "" {
			fmt.Println(ui.Muted.Sprint("📧 Email: " + session.Email))
		}
		if session.CreatedAt != "" {
			fmt.Println(ui.Muted.Sprint("📅 Member since: " + session.CreatedAt))
		}
	},
}
