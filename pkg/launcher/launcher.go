// Package launcher hands files to the operating system's default application.
package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens a path with whatever the host OS associates with it.
type Launcher interface {
	Launch(ctx context.Context, path string) error
}

// Func adapts a function to Launcher.
type Func func(ctx context.Context, path string) error

func (f Func) Launch(ctx context.Context, path string) error {
	return f(ctx, path)
}

var runCommand = func(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if out := strings.TrimSpace(string(output)); out != "" {
			return fmt.Errorf("%s: %w: %s", name, err, out)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// OSLauncher runs the platform's "open with default application" helper.
type OSLauncher struct {
	goos string
}

func NewLauncher() *OSLauncher {
	return &OSLauncher{goos: runtime.GOOS}
}

func (l *OSLauncher) Launch(ctx context.Context, path string) error {
	name, args, err := command(l.goos, path)
	if err != nil {
		return err
	}
	return runCommand(ctx, name, args...)
}

func command(goos, path string) (name string, args []string, err error) {
	switch goos {
	case "darwin":
		return "open", []string{path}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos":
		return "xdg-open", []string{path}, nil
	default:
		return "", nil, fmt.Errorf("no default application launcher for %s", goos)
	}
}
