package filepane

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/datatug/filepane/pkg/chroma2ansi"
	"github.com/datatug/filepane/pkg/dirwatch"
	"github.com/datatug/filepane/pkg/files"
	"github.com/datatug/filepane/pkg/fileservice"
	"github.com/datatug/filepane/pkg/fpstate"
	"github.com/spf13/cobra"
)

var timeNow = time.Now
var watchDir = dirwatch.Watch
var colorizeFile = chroma2ansi.ColorizeFile
var lastDir = fpstate.GetCurrentDir
var saveLastDir = fpstate.SaveCurrentDir

func newLsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [dir | -]",
		Short: "List a directory, folders first",
		Long:  "List a directory, folders first. \"-\" lists the directory shown by the previous ls.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "-" {
				if dir = lastDir(); dir == "" {
					return files.NewError(files.KindInvalidArgument, "list", "-", errors.New("no previous directory"))
				}
			}
			result, err := app.run(cmd.Context(), fileservice.Request{Command: fileservice.CommandList, Path: dir})
			if err != nil {
				return err
			}
			if err = saveLastDir(result.Path); err != nil {
				app.ui.Warning("failed to remember directory: " + err.Error())
			}
			sortEntries(result.Entries)
			return writeEntries(cmd.OutOrStdout(), result.Entries, app.service.IsEditable, timeNow())
		},
	}
}

func newRenameCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a file or directory in place",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.run(cmd.Context(), fileservice.Request{
				Command: fileservice.CommandRename,
				Path:    args[0],
				Name:    args[1],
			})
			if err != nil {
				return err
			}
			app.ui.Successf("renamed to %s", result.Path)
			return printPath(cmd.OutOrStdout(), result.Path)
		},
	}
}

func newNewCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new <dir> <name>",
		Short: "Create an empty file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.run(cmd.Context(), fileservice.Request{
				Command: fileservice.CommandNewFile,
				Path:    args[0],
				Name:    args[1],
			})
			if err != nil {
				return err
			}
			app.ui.Successf("created %s", result.Path)
			return printPath(cmd.OutOrStdout(), result.Path)
		},
	}
}

func newCatCommand(app *App) *cobra.Command {
	var highlight bool
	var style string
	cmd := &cobra.Command{
		Use:   "cat <file>",
		Short: "Print an editable text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.run(cmd.Context(), fileservice.Request{Command: fileservice.CommandEdit, Path: args[0]})
			if err != nil {
				return err
			}
			text := result.Content
			if highlight {
				if text, err = colorizeFile(result.Path, text, style); err != nil {
					return fmt.Errorf("failed to highlight %s: %w", result.Path, err)
				}
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().BoolVar(&highlight, "highlight", false, "colour the output by file type")
	cmd.Flags().StringVar(&style, "style", "dracula", "chroma style used with --highlight")
	return cmd
}

func newEditCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <file>",
		Short: "Replace an editable text file with stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			result, err := app.run(cmd.Context(), fileservice.Request{
				Command: fileservice.CommandSave,
				Path:    args[0],
				Content: string(data),
			})
			if err != nil {
				return err
			}
			app.ui.Successf("saved %s", result.Path)
			return nil
		},
	}
}

func newOpenCommand(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Open a file or directory with the desktop default application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := app.confirm(fmt.Sprintf("Open %s?", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					app.ui.Warning("cancelled")
					return nil
				}
			}
			_, err := app.run(cmd.Context(), fileservice.Request{Command: fileservice.CommandOpen, Path: args[0]})
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newWatchCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Print changes to a directory until interrupted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			ctx, stop := notifyContext(cmd.Context())
			defer stop()
			events, err := watchDir(ctx, dir)
			if err != nil {
				return err
			}
			app.ui.Info("watching " + dir)
			out := cmd.OutOrStdout()
			for event := range events {
				if event.Err != nil {
					app.ui.Error(event.Err)
					continue
				}
				if _, err = fmt.Fprintf(out, "%s %-6s %s\n", timeNow().Format("15:04:05"), event.Op, event.Name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
