package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/envsync-cli/envsync/internal/link"
	"github.com/envsync-cli/envsync/internal/ui"
	"github.com/envsync-cli/envsync/internal/utils"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Link this directory to a cloud project",
	Long: `Initializes envsync in the current directory.

With no existing configuration, init first tries to recover an existing
cloud project by the directory's git remote URL, then by a project
recovery token, before creating a fresh project. The resulting link is
written to ` + ".envsync.json" + ` and kept out of version control.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		wd, err := workingDir()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		client, _, err := newBackendClient()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		prompter := ui.NewStdinPrompter(os.Stdin, os.Stdout)
		engine := &link.Engine{
			Dir:      wd,
			Backend:  client,
			Prompter: prompter,
			Configurator: &link.InteractiveConfigurator{
				Dir:      wd,
				Prompter: prompter,
			},
			GitURL: utils.GitRemoteURL,
			Logger: Logger,
		}

		result, err := engine.Run(cmd.Context())
		if err != nil {
			return Logger.ErrorfAndReturn("init failed: %v", err)
		}

		switch result.Outcome {
		case link.OutcomeCancelled:
			fmt.Println(color.YellowString("✗") + " Init cancelled.")
		case link.OutcomeRelinked:
			fmt.Println(color.GreenString("✓") + " Project " +
				ui.Highlight.Sprint(result.Record.ProjectName) + " re-linked and configured successfully!")
		case link.OutcomeInitialized:
			fmt.Println(color.GreenString("✓") + " Project initialized successfully with " +
				ui.Path.Sprint(".envsync.json") + "!")
			fmt.Println(ui.Muted.Sprint("You can now push and pull environments with this project."))
			fmt.Println()
			fmt.Println("🔐 Project Token: " + ui.Highlight.Sprint(result.ProjectToken))
			fmt.Println(ui.Muted.Sprint("Save this token somewhere safe. It is the only way to recover this project without a matching git remote."))
		}
		return nil
	},
}
