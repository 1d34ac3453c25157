package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/envsync-cli/envsync/internal/api"
	"github.com/envsync-cli/envsync/internal/configs"
	logger "github.com/envsync-cli/envsync/internal/logging"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// RootCmd is the envsync root command.
	RootCmd = &cobra.Command{
		Use:   "envsync",
		Short: "envsync - Sync encrypted environment variables between your machine and the cloud.",
		Long: `envsync links a local project directory to a cloud project record and
synchronizes named environment-variable profiles under passphrase-derived
encryption. Environment content is encrypted on your machine before it
leaves it; the passphrase is never stored anywhere.

Available Commands:
  init       Link this directory to a cloud project
  login      Login using your GitHub account
  logout     Logout from your account
  whoami     Show the currently logged in user
  push       Push a profile's environment variables to the cloud
  pull       Pull a profile's environment variables from the cloud

Run 'envsync help <command>' for more details on a specific command.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing envsync with verbose=%t, debug=%t", verbose, debug)
			if debug {
				cmd.Flags().VisitAll(func(flag *pflag.Flag) {
					Logger.Debugf("flag %s=%s (changed=%t)", flag.Name, flag.Value.String(), flag.Changed)
				})
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			banner := figure.NewColorFigure("envsync", "alligator2", "green", true)
			banner.Print()
			fmt.Println("\nRun 'envsync --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(loginCmd)
	RootCmd.AddCommand(logoutCmd)
	RootCmd.AddCommand(whoamiCmd)
	RootCmd.AddCommand(pushCmd)
	RootCmd.AddCommand(pullCmd)
}

// newBackendClient builds the API client from user settings, attaching the
// cached session token to authenticated calls when one exists.
func newBackendClient() (*api.Client, *configs.Settings, error) {
	settings, err := configs.EnsureSettings()
	if err != nil {
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}
	creds := func() (string, bool) {
		session, err := configs.LoadSession()
		if err != nil {
			return "", false
		}
		return session.AccessToken, true
	}
	client := api.New(settings.EffectiveBaseURL(), creds, &http.Client{Timeout: 30 * time.Second})
	return client, settings, nil
}

func workingDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	pushProfile = ""
	pullProfile = ""
	RootCmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
