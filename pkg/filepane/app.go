// Package filepane is the command-line shell over fileservice.
package filepane

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/datatug/filepane/pkg/files"
	"github.com/datatug/filepane/pkg/files/osfile"
	"github.com/datatug/filepane/pkg/fileservice"
	"github.com/datatug/filepane/pkg/fpsettings"
	"github.com/datatug/filepane/pkg/logging"
	"github.com/datatug/filepane/pkg/profiling"
	"github.com/spf13/cobra"
)

var loadSettings = fpsettings.Load
var initLogging = logging.Init
var doCPUProfiling = profiling.DoCPUProfiling
var doMemProfiling = profiling.DoMemProfiling

var notifyContext = func(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

// App holds what every subcommand needs. A zero App is configured from
// settings in the root command's pre-run hook.
type App struct {
	service  *fileservice.Service
	ui       *UI
	confirm  func(prompt string) (bool, error)
	closeLog func() error
	onClose  []func()
}

type rootFlags struct {
	configPath string
	logLevel   string
	logFile    string
	cpuProfile string
	memProfile string
}

// Run executes the command tree with args and then releases log files and profiles.
func Run(ctx context.Context, args []string) error {
	app := &App{}
	cmd := newRootCommand(app)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if closeErr := app.close(); err == nil {
		err = closeErr
	}
	return err
}

func newRootCommand(app *App) *cobra.Command {
	var flags rootFlags
	rootCmd := &cobra.Command{
		Use:           "filepane",
		Short:         "Browse and edit local files from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd, flags)
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "settings file (default ~/.filepane/filepane-settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "also write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flags.cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	rootCmd.PersistentFlags().StringVar(&flags.memProfile, "memprofile", "", "write memory profile to `file` on exit")

	rootCmd.AddCommand(
		newLsCommand(app),
		newRenameCommand(app),
		newNewCommand(app),
		newCatCommand(app),
		newEditCommand(app),
		newOpenCommand(app),
		newWatchCommand(app),
	)
	return rootCmd
}

func (a *App) setup(cmd *cobra.Command, flags rootFlags) error {
	if a.ui == nil {
		a.ui = NewUI(cmd.ErrOrStderr())
	}
	if a.confirm == nil {
		a.confirm = promptYesNo
	}
	if flags.cpuProfile != "" {
		a.onClose = append(a.onClose, doCPUProfiling(flags.cpuProfile))
	}
	if flags.memProfile != "" {
		a.onClose = append(a.onClose, doMemProfiling(flags.memProfile))
	}
	if a.service != nil {
		return nil
	}

	settings, err := loadSettings(flags.configPath)
	if err != nil {
		return err
	}
	if flags.logLevel != "" {
		settings.Log.Level = flags.logLevel
	}
	if flags.logFile != "" {
		settings.Log.File = flags.logFile
	}
	if err = settings.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := initLogging(settings.Log.Level, settings.Log.File)
	if err != nil {
		return err
	}
	a.closeLog = closeLog

	storeOptions := []osfile.StoreOption{osfile.WithLockTimeout(settings.LockTimeout)}
	if settings.LockDir != "" {
		storeOptions = append(storeOptions, osfile.WithLockDir(settings.LockDir))
	}
	store := osfile.NewStore("/", storeOptions...)
	a.service = fileservice.New(store,
		fileservice.WithEditableExtensions(settings.EditableExtensions...),
		fileservice.WithLogger(logger),
	)
	logger.Debug("filepane started", "store", store.RootTitle(), "editable", settings.EditableExtensions)
	return nil
}

func (a *App) close() error {
	for i := len(a.onClose) - 1; i >= 0; i-- {
		a.onClose[i]()
	}
	a.onClose = nil
	if a.closeLog == nil {
		return nil
	}
	closeLog := a.closeLog
	a.closeLog = nil
	return closeLog()
}

// run executes req as a cancellable operation; an interrupt cancels it.
func (a *App) run(ctx context.Context, req fileservice.Request) (fileservice.Result, error) {
	ctx, stop := notifyContext(ctx)
	defer stop()
	result := a.service.Start(ctx, req).Wait()
	return result, result.Err
}

func printPath(w io.Writer, path string) error {
	_, err := fmt.Fprintln(w, path)
	return err
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch files.KindOf(err) {
	case files.KindUnknown:
		if err == nil {
			return 0
		}
		return 1
	case files.KindNotFound:
		return 2
	case files.KindPermission:
		return 3
	case files.KindConflict, files.KindBusy:
		return 4
	case files.KindInvalidArgument:
		return 64
	default:
		return 1
	}
}
