package cmd

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"userdesk/internal/client/api"
	"userdesk/internal/client/config"
	"userdesk/internal/client/controller"
	"userdesk/internal/client/view"
)

type rootOptions struct {
	apiURL     string
	configPath string
	verbose    bool
}

func NewRootCmd(version, buildDate string) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "userdesk",
		Short:         "Browse and edit users through the users REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Users collection URL (default "+config.DefaultAPIURL+")")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "INI config file (default ~/.userdesk.ini)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log HTTP traffic to stderr")

	root.AddCommand(newVersionCmd(version, buildDate))
	root.AddCommand(newUsersCmd(opts))
	root.AddCommand(newUICmd(opts))
	return root
}

// wiring is what every users command needs: a controller bound to the
// configured endpoint and the table it renders into.
type wiring struct {
	ctrl   *controller.Controller
	table  *view.Table
	logger *slog.Logger
}

func (o *rootOptions) wire(cmd *cobra.Command, prompter controller.Prompter) (*wiring, error) {
	cfg, err := config.Load(o.configPath, o.apiURL)
	if err != nil {
		return nil, err
	}
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	client := api.New(cfg.APIURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		api.WithLogger(logger),
	)
	logger.Debug("users endpoint", "url", client.BaseURL(), "timeout", cfg.Timeout)
	table := view.NewTable(cmd.OutOrStdout(), isTerminal(cmd.OutOrStdout()))
	return &wiring{
		ctrl:   controller.New(client, table, prompter, logger),
		table:  table,
		logger: logger,
	}, nil
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
