package tool_listdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/elee1766/drover/src/agent"
	"github.com/elee1766/drover/src/droveragent/toolsutil"
	"github.com/spf13/afero"
)

// Tool name constant
const Name = "list_dir"

const listDirPrompt = `Lists files and directories in a given path. The path parameter can be an absolute path or a relative path (relative to the current working directory). Set recursive to walk the whole subtree.`

// ListDirInput represents the input for listing a directory
type ListDirInput struct {
	Path      string `json:"path" required:"true" description:"The directory path to list"`
	Recursive bool   `json:"recursive,omitempty" description:"Whether to list recursively"`
}

// FileInfo describes one entry in a listing
type FileInfo struct {
	Name    string `json:"name" description:"The name of the file or directory"`
	Path    string `json:"path" description:"The path to the file or directory"`
	IsDir   bool   `json:"is_dir" description:"Whether this is a directory"`
	Size    int64  `json:"size" description:"File size in bytes"`
	ModTime string `json:"mod_time" description:"Last modification time in RFC3339 format"`
}

// ListDirOutput represents the output of listing a directory
type ListDirOutput struct {
	Path  string     `json:"path" description:"The directory path that was listed"`
	Files []FileInfo `json:"files" description:"List of files and directories"`
	Count int        `json:"count" description:"Total number of items found"`
}

// Tool returns the list_dir tool definition backed by the given filesystem.
func Tool(fs afero.Fs) (agent.Tool, error) {
	return agent.NewGenericTool(Name, listDirPrompt, makeListDirHandler(fs))
}

func makeListDirHandler(fs afero.Fs) func(ctx context.Context, input ListDirInput) (ListDirOutput, error) {
	return func(ctx context.Context, input ListDirInput) (ListDirOutput, error) {
		logger := toolsutil.GetLogger()

		if !toolsutil.IsPathSafe(input.Path) {
			logger.Error("unsafe path rejected", "path", input.Path)
			return ListDirOutput{}, fmt.Errorf("%w: %s", toolsutil.ErrUnsafePath, input.Path)
		}

		var files []FileInfo

		if input.Recursive {
			err := afero.Walk(fs, input.Path, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return nil // skip unreadable entries
				}
				files = append(files, FileInfo{
					Name:    info.Name(),
					Path:    path,
					IsDir:   info.IsDir(),
					Size:    info.Size(),
					ModTime: info.ModTime().Format(time.RFC3339),
				})
				return nil
			})
			if err != nil {
				logger.Error("failed to walk directory", "path", input.Path, "error", err)
				return ListDirOutput{}, fmt.Errorf("failed to walk directory: %v", err)
			}
		} else {
			entries, err := afero.ReadDir(fs, input.Path)
			if err != nil {
				logger.Error("failed to read directory", "path", input.Path, "error", err)
				return ListDirOutput{}, fmt.Errorf("failed to read directory: %v", err)
			}
			for _, info := range entries {
				files = append(files, FileInfo{
					Name:    info.Name(),
					Path:    filepath.Join(input.Path, info.Name()),
					IsDir:   info.IsDir(),
					Size:    info.Size(),
					ModTime: info.ModTime().Format(time.RFC3339),
				})
			}
		}

		logger.Info("directory listed", "path", input.Path, "count", len(files))

		return ListDirOutput{
			Path:  input.Path,
			Files: files,
			Count: len(files),
		}, nil
	}
}
