package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-web-platform/pkg/registry"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "check", "ideate", "registry"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestRegistryExportAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")

	out, err := execute(t, "registry", "export", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 6 activities")

	out, err = execute(t, "registry", "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Registry is valid")
}

func TestRegistryValidate_Drift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	reg := registry.Default()
	reg.Activities[0].Path = "/api/agents/idea"
	require.NoError(t, reg.Save(path))

	_, err := execute(t, "registry", "validate", "--path", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ideation: changed")
}

func TestRegistryValidate_MissingFile(t *testing.T) {
	_, err := execute(t, "registry", "validate", "--path", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestRegistryList(t *testing.T) {
	out, err := execute(t, "registry", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "POST /api/agents/code/update")
	assert.Contains(t, out, "documentation-update-agent")
}

func TestIdeate_RequiresPrompt(t *testing.T) {
	_, err := execute(t, "ideate")
	assert.Error(t, err)
}

func TestCompareRoutes(t *testing.T) {
	got := registry.Default()
	got.Activities = got.Activities[1:]

	assert.Equal(t, []string{"ideation: missing"}, compareRoutes(registry.Default(), got))
	assert.Empty(t, compareRoutes(registry.Default(), registry.Default()))
}
