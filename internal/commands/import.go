package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nivesh-dev/nivesh/internal/importer"
	"github.com/nivesh-dev/nivesh/internal/model"
	"github.com/nivesh-dev/nivesh/internal/store"
)

func newImportCommand() *cobra.Command {
	var parserKey string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a statement file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			registry := importer.DefaultRegistry()

			var factory importer.Factory
			if parserKey != "" {
				factory = registry.Get(parserKey)
				if factory == nil {
					return fmt.Errorf("unknown parser %q (available: %s)",
						parserKey, strings.Join(registry.Keys(), ", "))
				}
			} else {
				factory = registry.Lookup(path)
				if factory == nil {
					return fmt.Errorf("no parser recognizes %s; use --parser (available: %s)",
						path, strings.Join(registry.Keys(), ", "))
				}
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening statement: %w", err)
			}
			defer f.Close()

			st, err := factory.New().Parse(f)
			if err != nil {
				return fmt.Errorf("parsing with %s: %w", factory.Info().Key, err)
			}

			s, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := importStatement(s, st); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions, %d securities, %d accounts from %s\n",
				len(st.Transactions), len(st.Securities), len(st.Accounts), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&parserKey, "parser", "", "statement format key (auto-detected by default)")

	return cmd
}

// importStatement stores a parsed statement: securities are upserted,
// accounts resolved or created, and transactions inserted as one batch.
func importStatement(s *store.Store, st *importer.Statement) error {
	for _, sec := range st.Securities {
		if err := s.UpsertSecurity(sec); err != nil {
			return err
		}
	}

	accountIDs := make(map[string]int64, len(st.Accounts))
	for _, a := range st.Accounts {
		stored, err := s.GetOrCreateAccount(a.Name, a.Institution)
		if err != nil {
			return err
		}
		accountIDs[a.Name+"\x00"+a.Institution] = stored.ID
	}

	txns := make([]model.Transaction, 0, len(st.Transactions))
	for _, pt := range st.Transactions {
		id, ok := accountIDs[pt.AccountName+"\x00"+pt.Institution]
		if !ok {
			return fmt.Errorf("statement transaction references unknown account %s/%s",
				pt.AccountName, pt.Institution)
		}
		tx := pt.Tx
		tx.AccountID = id
		txns = append(txns, tx)
	}
	return s.AddTransactions(txns)
}
