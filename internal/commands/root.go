package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nivesh-dev/nivesh/internal/buildinfo"
	"github.com/nivesh-dev/nivesh/internal/config"
	"github.com/nivesh-dev/nivesh/internal/logging"
	"github.com/nivesh-dev/nivesh/internal/query"
	"github.com/nivesh-dev/nivesh/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "nivesh",
		Short:   "Personal investment tracking",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().String("config", "nivesh.yaml", "path to nivesh.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountsCommand())
	rootCmd.AddCommand(newSecuritiesCommand())
	rootCmd.AddCommand(newTransactionsCommand())
	rootCmd.AddCommand(newPricesCommand())
	rootCmd.AddCommand(newImportCommand())

	return rootCmd
}

// openStore loads the config named by --config, initializes logging, and
// opens the database.
func openStore(cmd *cobra.Command) (*store.Store, *config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s (run 'nivesh init' first?): %w", path, err)
	}
	logging.Init(cfg.Log.Level, cfg.Log.Format)

	s, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// compileQuery joins positional args with spaces and compiles them for ctx.
func compileQuery(args []string, ctx query.Context) (*query.Query, error) {
	return query.Compile(strings.Join(args, " "), ctx)
}
