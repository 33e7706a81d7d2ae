// Package prompt talks to the operator: text input, menus, yes/no questions
// and failure notices.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the operator interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Driver abstracts the terminal so callers can be tested without one.
type Driver interface {
	Input(ctx context.Context, message, def string) (string, error)
	Select(ctx context.Context, message string, options []string) (int, error)
	Confirm(ctx context.Context, message string) (bool, error)
	Notify(message string)
}

var noticeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))

type surveyDriver struct {
	stdio  terminal.Stdio
	errOut io.Writer
}

// NewSurvey returns a Driver reading from in and drawing prompts on out.
// Notifications go to errOut.
func NewSurvey(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) Driver {
	return &surveyDriver{stdio: terminal.Stdio{In: in, Out: out, Err: errOut}, errOut: errOut}
}

func (d *surveyDriver) Input(ctx context.Context, message, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	if err := survey.AskOne(&survey.Input{Message: message, Default: def}, &out, d.opts()...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Select(ctx context.Context, message string, options []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out int
	prompt := &survey.Select{Message: message, Options: options, PageSize: 15}
	if err := survey.AskOne(prompt, &out, d.opts()...); err != nil {
		return 0, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	if err := survey.AskOne(&survey.Confirm{Message: message}, &out, d.opts()...); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Notify(message string) {
	fmt.Fprintln(d.errOut, noticeStyle.Render("! "+message))
}

func (d *surveyDriver) opts() []survey.AskOpt {
	return []survey.AskOpt{survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err)}
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
