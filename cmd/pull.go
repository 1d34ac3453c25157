package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/envsync-cli/envsync/internal/sync"
	"github.com/envsync-cli/envsync/internal/ui"
	"github.com/envsync-cli/envsync/internal/utils"
)

var pullProfile string

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull a profile's environment variables from cloud to local",
	Long: `Downloads the selected profile's encrypted environment, decrypts it with
your passphrase, and writes it to the profile's local file.

When the directory has no envsync configuration, pull recovers by listing
your cloud projects and matching on the git remote URL, then offers to
re-link the project for future runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := workingDir()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		client, _, err := newBackendClient()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		result, err := sync.Pull(cmd.Context(), client, sync.PullOptions{
			Dir:        wd,
			Profile:    pullProfile,
			ReadSecret: utils.ReadPassphraseFromTTY,
			Prompter:   ui.NewStdinPrompter(os.Stdin, os.Stdout),
			GitURL:     utils.GitRemoteURL,
			Logger:     Logger,
		})
		if err != nil {
			printSyncHint(err)
			return err
		}

		fmt.Println(color.GreenString("✓") + " Profile " + ui.Highlight.Sprint(result.Profile) +
			" pulled and written successfully")
		fmt.Println(ui.Muted.Sprint("Saved to: ") + ui.Path.Sprint(result.OutputPath))
		if result.RecordSaved {
			fmt.Println(color.GreenString("✓") + " Project re-linked.")
		}
		return nil
	},
}

func init() {
	pullCmd.Flags().StringVar(&pullProfile, "profile", "", "profile to pull (prompts when unset)")
}
