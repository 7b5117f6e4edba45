package tool_readfile

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/elee1766/drover/src/aisdk"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileTool(t *testing.T) {
	tests := []struct {
		name         string
		setupFS      func(afero.Fs) error
		args         map[string]interface{}
		expectError  bool
		checkContent func(t *testing.T, out ReadFileOutput)
	}{
		{
			name: "read simple text file",
			setupFS: func(fs afero.Fs) error {
				return afero.WriteFile(fs, "/test.txt", []byte("Hello, World!"), 0644)
			},
			args: map[string]interface{}{"path": "/test.txt"},
			checkContent: func(t *testing.T, out ReadFileOutput) {
				assert.Equal(t, "Hello, World!", out.Content)
				assert.Equal(t, int64(13), out.Size)
			},
		},
		{
			name:        "read non-existent file",
			args:        map[string]interface{}{"path": "/nonexistent.txt"},
			expectError: true,
		},
		{
			name:        "unsafe path rejected",
			args:        map[string]interface{}{"path": "../../../etc/passwd"},
			expectError: true,
		},
		{
			name: "binary file rejected",
			setupFS: func(fs afero.Fs) error {
				return afero.WriteFile(fs, "/bin.dat", []byte{0x7f, 'E', 'L', 'F', 0x00}, 0644)
			},
			args:        map[string]interface{}{"path": "/bin.dat"},
			expectError: true,
		},
		{
			name: "directory rejected",
			setupFS: func(fs afero.Fs) error {
				return fs.MkdirAll("/some/dir", 0755)
			},
			args:        map[string]interface{}{"path": "/some/dir"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.setupFS != nil {
				require.NoError(t, tt.setupFS(fs))
			}

			tool, err := Tool(fs)
			require.NoError(t, err)

			argsJSON, err := json.Marshal(tt.args)
			require.NoError(t, err)

			resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
				Function: aisdk.FunctionCall{Arguments: argsJSON},
			})
			require.NoError(t, err)

			if tt.expectError {
				assert.True(t, resp.IsError)
				return
			}

			require.False(t, resp.IsError, "unexpected tool error: %s", resp.Content)
			var out ReadFileOutput
			require.NoError(t, json.Unmarshal(resp.Content, &out))
			if tt.checkContent != nil {
				tt.checkContent(t, out)
			}
		})
	}
}
