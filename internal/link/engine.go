package link

import (
	"context"
	"fmt"
	"strings"

	"github.com/envsync-cli/envsync/internal/api"
	"github.com/envsync-cli/envsync/internal/configs"
	eserrors "github.com/envsync-cli/envsync/internal/errors"
	logger "github.com/envsync-cli/envsync/internal/logging"
	"github.com/envsync-cli/envsync/internal/ui"
)

// state is one node of the reconciliation state machine. Transitions are
// driven exclusively by Engine.Run; no state short of statePersist touches
// the local record.
type state int

const (
	stateStart state = iota
	stateConfirmReinit
	stateGitRecovery
	stateTokenRecovery
	stateFreshConfigure
	statePersist
)

// Outcome is the terminal result of one init invocation.
type Outcome int

const (
	// OutcomeInitialized means a fresh project was created in the cloud
	// and linked locally.
	OutcomeInitialized Outcome = iota

	// OutcomeRelinked means an existing cloud project was re-linked via
	// git remote or recovery token.
	OutcomeRelinked

	// OutcomeCancelled means the user declined to re-initialize; nothing
	// was touched.
	OutcomeCancelled
)

// Backend is the subset of the API client the engine drives.
type Backend interface {
	FindProjectByGitURL(ctx context.Context, gitURL string) (*api.Project, error)
	FindProjectByToken(ctx context.Context, token string) (*api.Project, error)
	CreateProject(ctx context.Context, name, gitURL string) (*api.Project, error)
}

// ProfileSelection is the outcome of the profile configuration sub-flow.
type ProfileSelection struct {
	Profiles       map[string]string
	DefaultProfile string
}

// Configurator runs the profile discovery and selection sub-flow.
type Configurator interface {
	ConfigureProfiles(ctx context.Context) (*ProfileSelection, error)
}

// Engine reconciles the working directory with its cloud project record.
// All collaborators are injected; the engine owns only the branching.
type Engine struct {
	// Dir is the working directory holding (or receiving) the link record.
	Dir string

	Backend      Backend
	Prompter     ui.Prompter
	Configurator Configurator

	// GitURL reports the directory's git remote URL, "" when absent.
	GitURL func() string

	Logger logger.Logger
}

// Result is the terminal outcome of Engine.Run. Record is nil for
// OutcomeCancelled. ProjectToken is set only for OutcomeInitialized, where
// it is the user's sole recovery credential and must be displayed.
type Result struct {
	Outcome      Outcome
	Record       *configs.ProjectConfig
	ProjectToken string
}

// Run executes the reconciliation state machine once. Every error return
// leaves any pre-existing record untouched.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	current := stateStart

	// Populated by the recovery states; a non-nil relink target routes
	// statePersist to OutcomeRelinked instead of fresh creation.
	var relinkTarget *api.Project
	var gitURL string
	var selection *ProfileSelection

	for {
		switch current {
		case stateStart:
			if configs.ProjectExists(e.Dir) {
				current = stateConfirmReinit
			} else {
				current = stateGitRecovery
			}

		case stateConfirmReinit:
			reinit, err := e.Prompter.Confirm("Project already initialized. Do you want to re-init?", false)
			if err != nil {
				return nil, err
			}
			if !reinit {
				return &Result{Outcome: OutcomeCancelled}, nil
			}
			current = stateFreshConfigure

		case stateGitRecovery:
			gitURL = e.GitURL()
			if gitURL == "" {
				e.Logger.Infof("No git remote detected")
				current = stateTokenRecovery
				continue
			}
			e.Logger.Infof("Git remote detected, attempting auto-link")
			project, err := e.Backend.FindProjectByGitURL(ctx, gitURL)
			if err != nil {
				return nil, fmt.Errorf("looking up project by git URL: %w", err)
			}
			if project == nil {
				current = stateTokenRecovery
				continue
			}
			relink, err := e.Prompter.Confirm(
				fmt.Sprintf("Found project %q in the cloud. Re-link it?", project.ProjectName), true)
			if err != nil {
				return nil, err
			}
			if !relink {
				// A declined git match is final; fall through to a
				// fresh project without offering token recovery.
				relinkTarget = nil
				current = stateFreshConfigure
				continue
			}
			if project.GitRemoteURL == "" {
				project.GitRemoteURL = gitURL
			}
			relinkTarget = project
			current = stateFreshConfigure

		case stateTokenRecovery:
			hasToken, err := e.Prompter.Confirm("Do you have a project token to link an existing project?", false)
			if err != nil {
				return nil, err
			}
			if !hasToken {
				current = stateFreshConfigure
				continue
			}
			token, err := e.Prompter.Input("Enter your project token", "", func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("token cannot be empty")
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			project, err := e.Backend.FindProjectByToken(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("looking up project by token: %w", err)
			}
			if project == nil {
				e.Logger.WarnfAlways("Invalid token or project not found")
				current = stateFreshConfigure
				continue
			}
			if project.ProjectToken == "" {
				project.ProjectToken = token
			}
			relinkTarget = project
			current = stateFreshConfigure

		case stateFreshConfigure:
			var err error
			selection, err = e.Configurator.ConfigureProfiles(ctx)
			if err != nil {
				return nil, err
			}
			current = statePersist

		case statePersist:
			if relinkTarget != nil {
				record := &configs.ProjectConfig{
					ProjectID:      relinkTarget.ProjectID,
					GitRemoteURL:   relinkTarget.GitRemoteURL,
					ProjectName:    relinkTarget.ProjectName,
					ProjectToken:   relinkTarget.ProjectToken,
					DefaultProfile: selection.DefaultProfile,
					Profiles:       selection.Profiles,
				}
				if err := configs.SaveProject(e.Dir, record); err != nil {
					return nil, err
				}
				return &Result{Outcome: OutcomeRelinked, Record: record}, nil
			}

			name, err := e.Prompter.Input("What would you like to name this project?", "", func(s string) error {
				if strings.TrimSpace(s) == "" {
					return eserrors.ErrEmptyProjectName
				}
				return nil
			})
			if err != nil {
				return nil, err
			}

			if gitURL == "" {
				gitURL = e.GitURL()
			}
			project, err := e.Backend.CreateProject(ctx, name, gitURL)
			if err != nil {
				return nil, fmt.Errorf("creating project in the cloud: %w", err)
			}

			record := &configs.ProjectConfig{
				ProjectID:      project.ProjectID,
				GitRemoteURL:   gitURL,
				ProjectName:    name,
				ProjectToken:   project.ProjectToken,
				DefaultProfile: selection.DefaultProfile,
				Profiles:       selection.Profiles,
			}
			if err := configs.SaveProject(e.Dir, record); err != nil {
				return nil, err
			}
			return &Result{
				Outcome:      OutcomeInitialized,
				Record:       record,
				ProjectToken: project.ProjectToken,
			}, nil
		}
	}
}
