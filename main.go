package main

import (
	"context"
	"fmt"
	"os"

	"github.com/datatug/filepane/pkg/filepane"
)

var osExit = os.Exit

var run = filepane.Run

func main() {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			osExit(1)
		}
	}()
	if err := run(context.Background(), os.Args[1:]); err != nil {
		filepane.NewUI(os.Stderr).Error(err)
		osExit(filepane.ExitCode(err))
	}
}
