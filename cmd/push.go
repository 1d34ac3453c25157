package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	eserrors "github.com/envsync-cli/envsync/internal/errors"
	"github.com/envsync-cli/envsync/internal/sync"
	"github.com/envsync-cli/envsync/internal/ui"
	"github.com/envsync-cli/envsync/internal/utils"
)

var pushProfile string

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push a profile's environment variables from local to cloud",
	Long: `Encrypts the selected profile's environment file with a passphrase you
choose and uploads it. The passphrase is not stored anywhere: losing it
means the pushed data cannot be recovered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := workingDir()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		client, _, err := newBackendClient()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		profile, err := sync.Push(cmd.Context(), client, sync.PushOptions{
			Dir:        wd,
			Profile:    pushProfile,
			ReadSecret: utils.ReadPassphrase,
			Logger:     Logger,
		})
		if err != nil {
			printSyncHint(err)
			return err
		}

		cmd.Println(color.GreenString("✓") + " Successfully pushed " +
			ui.Highlight.Sprint(profile) + " profile to the cloud!")
		return nil
	},
}

func init() {
	pushCmd.Flags().StringVar(&pushProfile, "profile", "", "profile to push (defaults to the project's default profile)")
}

// printSyncHint points the user at the command that fixes the precondition
// a push or pull just failed on.
func printSyncHint(err error) {
	switch {
	case errors.Is(err, eserrors.ErrNotLoggedIn):
		Logger.Errorf("No user logged in. Run %s first.", ui.Code.Sprint("envsync login"))
	case errors.Is(err, eserrors.ErrProjectNotLinked), errors.Is(err, eserrors.ErrConfigInvalid):
		Logger.Errorf("No valid project found. Run %s first.", ui.Code.Sprint("envsync init"))
	default:
		Logger.Errorf("%v", err)
	}
}
