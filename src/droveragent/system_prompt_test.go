package droveragent

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildToolboxRegistersBuiltins(t *testing.T) {
	toolbox, err := BuildToolbox(ToolboxConfig{FS: afero.NewMemMapFs()})
	require.NoError(t, err)

	assert.True(t, toolbox.HasTool("echo"))
	assert.True(t, toolbox.HasTool("read_file"))
	assert.True(t, toolbox.HasTool("list_dir"))
	assert.False(t, toolbox.HasTool("fetch_url"))
}

func TestBuildToolboxNetworkOptIn(t *testing.T) {
	toolbox, err := BuildToolbox(ToolboxConfig{FS: afero.NewMemMapFs(), EnableNetwork: true})
	require.NoError(t, err)
	assert.True(t, toolbox.HasTool("fetch_url"))
}

func TestGenerateSystemPrompt(t *testing.T) {
	toolbox, err := BuildToolbox(ToolboxConfig{FS: afero.NewMemMapFs(), EnableNetwork: true})
	require.NoError(t, err)

	prompt := GenerateSystemPrompt(toolbox)

	assert.True(t, strings.HasPrefix(prompt, "You are Drover"))
	assert.Contains(t, prompt, "Working directory:")
	assert.Contains(t, prompt, "# Available tools")

	// Tools listed sorted by name, one line each.
	echoIdx := strings.Index(prompt, "- echo:")
	fetchIdx := strings.Index(prompt, "- fetch_url:")
	readIdx := strings.Index(prompt, "- read_file:")
	require.True(t, echoIdx >= 0 && fetchIdx >= 0 && readIdx >= 0)
	assert.Less(t, echoIdx, fetchIdx)
	assert.Less(t, fetchIdx, readIdx)
}

func TestGenerateSystemPromptWithoutToolbox(t *testing.T) {
	prompt := GenerateSystemPrompt(nil)
	assert.NotContains(t, prompt, "# Available tools")
	assert.Contains(t, prompt, "You are Drover")
}
