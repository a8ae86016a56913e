package filepane

import (
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
)

// UI writes status messages for the user; command output goes to the command's stdout.
type UI struct {
	output       io.Writer
	colorInfo    *color.Color
	colorSuccess *color.Color
	colorWarning *color.Color
	colorError   *color.Color
}

func NewUI(w io.Writer) *UI {
	return &UI{
		output:       w,
		colorInfo:    color.New(color.FgBlue),
		colorSuccess: color.New(color.FgGreen),
		colorWarning: color.New(color.FgYellow),
		colorError:   color.New(color.FgRed),
	}
}

func (u *UI) Info(msg string) {
	_, _ = u.colorInfo.Fprintf(u.output, "%s\n", msg)
}

func (u *UI) Successf(format string, args ...interface{}) {
	_, _ = u.colorSuccess.Fprintf(u.output, "✓ %s\n", fmt.Sprintf(format, args...))
}

func (u *UI) Warning(msg string) {
	_, _ = u.colorWarning.Fprintf(u.output, "! %s\n", msg)
}

func (u *UI) Error(err error) {
	_, _ = u.colorError.Fprintf(u.output, "✗ %v\n", err)
}

// promptYesNo asks on the terminal and defaults to no.
func promptYesNo(prompt string) (bool, error) {
	var result bool
	p := &survey.Confirm{
		Message: prompt,
		Default: false,
	}
	err := survey.AskOne(p, &result)
	return result, err
}
