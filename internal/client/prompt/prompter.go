package prompt

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Prompter adapts a Driver to the controller's blocking confirm/notify
// capability. A confirmation that cannot be asked counts as a "no".
type Prompter struct {
	ctx    context.Context
	driver Driver
	logger *slog.Logger
}

func NewPrompter(ctx context.Context, driver Driver, logger *slog.Logger) *Prompter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prompter{ctx: ctx, driver: driver, logger: logger}
}

func (p *Prompter) Confirm(message string) bool {
	ok, err := p.driver.Confirm(p.ctx, message)
	if err != nil {
		p.logger.Debug("confirmation not answered", "error", err)
		return false
	}
	return ok
}

func (p *Prompter) Notify(message string) { p.driver.Notify(message) }

// Static answers every confirmation with the same value and writes
// notifications to out. It serves non-interactive commands.
type Static struct {
	Answer bool
	Out    io.Writer
}

func (s Static) Confirm(string) bool { return s.Answer }

func (s Static) Notify(message string) { fmt.Fprintln(s.Out, "error: "+message) }
