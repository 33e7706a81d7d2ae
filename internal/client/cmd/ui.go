package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"userdesk/internal/client/prompt"
	"userdesk/internal/client/session"
)

func newUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive users screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errors.New("ui needs an interactive terminal; use the users subcommands instead")
			}
			driver := prompt.NewSurvey(os.Stdin, os.Stdout, cmd.ErrOrStderr())
			cmd.SetOut(os.Stdout)
			w, err := opts.wire(cmd, prompt.NewPrompter(cmd.Context(), driver, nil))
			if err != nil {
				return err
			}
			return session.New(w.ctrl, w.table, driver, w.logger).Run(cmd.Context())
		},
	}
}
