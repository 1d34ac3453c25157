package link

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eserrors "github.com/envsync-cli/envsync/internal/errors"
)

func TestConfigureProfiles(t *testing.T) {
	prompter := &scriptPrompter{
		t:            t,
		selects:      []int{0, 1}, // scan dir "./", then default profile "prod"
		multiSelects: [][]int{{0, 1}},
		inputs:       []string{"dev", "prod"},
	}
	configurator := &InteractiveConfigurator{
		Dir:      t.TempDir(),
		Prompter: prompter,
		FindEnvFiles: func(baseDir string) ([]string, error) {
			return []string{".env", ".env.production"}, nil
		},
	}

	selection, err := configurator.ConfigureProfiles(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"dev":  ".env",
		"prod": ".env.production",
	}, selection.Profiles)
	assert.Equal(t, "prod", selection.DefaultProfile)
}

func TestConfigureProfilesSubsetSelection(t *testing.T) {
	prompter := &scriptPrompter{
		t:            t,
		selects:      []int{0, 0},
		multiSelects: [][]int{{1}}, // only the second file
		inputs:       []string{"staging"},
	}
	configurator := &InteractiveConfigurator{
		Dir:      t.TempDir(),
		Prompter: prompter,
		FindEnvFiles: func(baseDir string) ([]string, error) {
			return []string{".env", "apps/web/.env.staging"}, nil
		},
	}

	selection, err := configurator.ConfigureProfiles(context.Background())
	require.NoError(t, err)

	require.Len(t, selection.Profiles, 1)
	assert.Equal(t, "apps/web/.env.staging", selection.Profiles["staging"])
	assert.Equal(t, "staging", selection.DefaultProfile)
}

func TestConfigureProfilesNoEnvFiles(t *testing.T) {
	prompter := &scriptPrompter{t: t, selects: []int{0}, inputs: []string{"."}}
	configurator := &InteractiveConfigurator{
		Dir:      t.TempDir(),
		Prompter: prompter,
		FindEnvFiles: func(baseDir string) ([]string, error) {
			return nil, nil
		},
	}

	_, err := configurator.ConfigureProfiles(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, eserrors.ErrNoEnvFiles))
}
