package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaffoldWorkspace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "workspace")
	ctx := ProjectContext{UserName: "Ada", Timezone: "UTC", AgentName: "Claw", Style: "Balanced."}

	rep, err := ScaffoldWorkspace(dir, ctx)
	require.NoError(t, err)
	assert.Equal(t, ScaffoldReport{CreatedDirs: 5, CreatedFiles: 8}, rep)

	for _, d := range workspaceDirs {
		assert.DirExists(t, filepath.Join(dir, d))
	}
	for name := range workspaceFiles(ctx) {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestScaffoldWorkspaceKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	custom := []byte("# my own soul\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SOUL.md"), custom, 0o644))

	rep, err := ScaffoldWorkspace(dir, ProjectContext{AgentName: "Claw"})
	require.NoError(t, err)
	assert.Equal(t, 7, rep.CreatedFiles)
	assert.Equal(t, 1, rep.SkippedFiles)

	data, err := os.ReadFile(filepath.Join(dir, "SOUL.md"))
	require.NoError(t, err)
	assert.Equal(t, custom, data)

	again, err := ScaffoldWorkspace(dir, ProjectContext{AgentName: "Other"})
	require.NoError(t, err)
	assert.Equal(t, ScaffoldReport{SkippedFiles: 8}, again)
}

func TestProjectContextDefaults(t *testing.T) {
	t.Setenv("USER", "")
	a := newTestAnswers(t)
	ctx := a.projectContext()
	assert.Equal(t, "User", ctx.UserName)
	assert.Equal(t, "UTC", ctx.Timezone)
	assert.Equal(t, "ZeroClaw", ctx.AgentName)
	assert.Equal(t, StyleText(1, ""), ctx.Style)

	t.Setenv("USER", "grace")
	assert.Equal(t, "grace", a.projectContext().UserName)
}

func TestStyleTextCustom(t *testing.T) {
	assert.Equal(t, "my way", StyleText(CustomStyleIndex, "my way"))
	assert.NotEqual(t, "my way", StyleText(0, "my way"))
}
