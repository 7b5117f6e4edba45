package tool_readfile

import (
	"context"
	"fmt"

	"github.com/elee1766/drover/src/agent"
	"github.com/elee1766/drover/src/droveragent/toolsutil"
	"github.com/spf13/afero"
)

// Tool name constant
const Name = "read_file"

const readFilePrompt = `Reads a text file from the local filesystem.

Usage:
- The path parameter can be absolute or relative to the current working directory
- Binary files are rejected; only text content is returned
- Files larger than the size limit are rejected`

// ReadFileInput represents the parameters for read_file
type ReadFileInput struct {
	Path string `json:"path" required:"true" description:"The file path to read (absolute or relative to current working directory)"`
}

// ReadFileOutput represents the response from read_file
type ReadFileOutput struct {
	Content string `json:"content" description:"The file contents"`
	Path    string `json:"path" description:"The file path that was read"`
	Size    int64  `json:"size" description:"File size in bytes"`
}

// Tool returns the read_file tool definition backed by the given filesystem.
func Tool(fs afero.Fs) (agent.Tool, error) {
	return agent.NewGenericTool(Name, readFilePrompt, makeReadFileHandler(fs))
}

func makeReadFileHandler(fs afero.Fs) func(ctx context.Context, input ReadFileInput) (ReadFileOutput, error) {
	return func(ctx context.Context, input ReadFileInput) (ReadFileOutput, error) {
		logger := toolsutil.GetLogger()

		if !toolsutil.IsPathSafe(input.Path) {
			logger.Error("unsafe path rejected", "path", input.Path)
			return ReadFileOutput{}, fmt.Errorf("%w: %s", toolsutil.ErrUnsafePath, input.Path)
		}

		info, err := fs.Stat(input.Path)
		if err != nil {
			logger.Error("file not found", "path", input.Path, "error", err)
			return ReadFileOutput{}, fmt.Errorf("file not found: %s", input.Path)
		}
		if info.IsDir() {
			return ReadFileOutput{}, fmt.Errorf("path is a directory: %s", input.Path)
		}
		if err := toolsutil.ValidateFileSize(info.Size()); err != nil {
			logger.Error("file too large", "path", input.Path, "size", info.Size())
			return ReadFileOutput{}, err
		}

		content, err := afero.ReadFile(fs, input.Path)
		if err != nil {
			logger.Error("failed to read file", "path", input.Path, "error", err)
			return ReadFileOutput{}, fmt.Errorf("failed to read file: %v", err)
		}

		if !toolsutil.IsTextFile(content) {
			return ReadFileOutput{}, fmt.Errorf("%w: %s", toolsutil.ErrNotTextFile, input.Path)
		}

		logger.Info("file read", "path", input.Path, "size", info.Size())

		return ReadFileOutput{
			Content: string(content),
			Path:    input.Path,
			Size:    info.Size(),
		}, nil
	}
}
