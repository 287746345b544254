package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nivesh-dev/nivesh/internal/model"
	"github.com/nivesh-dev/nivesh/internal/query"
)

func newAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts [query...]",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := compileQuery(args, query.Accounts)
			if err != nil {
				return err
			}

			s, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			accounts, err := s.ListAccounts(q)
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No accounts found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tINSTITUTION")
			for _, a := range accounts {
				fmt.Fprintf(w, "%d\t%s\t%s\n", a.ID, a.Name, a.Institution)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(newAccountsAddCommand())
	return cmd
}

func newAccountsAddCommand() *cobra.Command {
	var institution string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			a, err := s.AddAccount(model.Account{Name: args[0], Institution: institution})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added account %d: %s (%s)\n", a.ID, a.Name, a.Institution)
			return nil
		},
	}

	cmd.Flags().StringVar(&institution, "institution", "", "institution name (required)")
	_ = cmd.MarkFlagRequired("institution")

	return cmd
}
