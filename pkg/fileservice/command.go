package fileservice

import (
	"context"

	"github.com/datatug/filepane/pkg/files"
)

// Command names one user action a shell can ask the service to perform.
type Command string

const (
	CommandList    Command = "list"
	CommandOpen    Command = "open"
	CommandEdit    Command = "edit"
	CommandSave    Command = "save"
	CommandRename  Command = "rename"
	CommandNewFile Command = "new-file"
)

// Request carries the arguments of a Command.
// Path is the target entry, or the parent directory for CommandNewFile.
type Request struct {
	Command Command
	Path    string
	Name    string
	Content string
}

// Result is the outcome of Execute: Err is nil on success and a *files.Error otherwise.
type Result struct {
	Command Command
	Path    string
	Content string
	Entries []files.DirEntry
	Err     error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Execute dispatches req to the matching Service method.
func (s *Service) Execute(ctx context.Context, req Request) Result {
	result := Result{Command: req.Command, Path: req.Path}
	switch req.Command {
	case CommandList:
		listing, err := s.ListDirectory(ctx, req.Path)
		if err != nil {
			result.Err = err
			break
		}
		result.Path = listing.Path()
		result.Entries = listing.Entries()
	case CommandOpen:
		result.Err = s.Launch(ctx, req.Path)
	case CommandEdit:
		result.Content, result.Err = s.ReadTextFile(ctx, req.Path)
	case CommandSave:
		result.Err = s.WriteTextFile(ctx, req.Path, req.Content)
	case CommandRename:
		newPath, err := s.Rename(ctx, req.Path, req.Name)
		if err == nil {
			result.Path = newPath
		}
		result.Err = err
	case CommandNewFile:
		newPath, err := s.CreateFile(ctx, req.Path, req.Name)
		if err == nil {
			result.Path = newPath
		}
		result.Err = err
	default:
		result.Err = s.fail(string(req.Command), req.Path, invalidArgument("unknown command %q", req.Command))
	}
	return result
}
