package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nivesh-dev/nivesh/internal/model"
	"github.com/nivesh-dev/nivesh/internal/query"
)

func newSecuritiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "securities [query...]",
		Short: "List securities",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := compileQuery(args, query.Securities)
			if err != nil {
				return err
			}

			s, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			securities, err := s.ListSecurities(q)
			if err != nil {
				return err
			}
			if len(securities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No securities found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tTYPE\tCATEGORY")
			for _, sec := range securities {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sec.Key, sec.Name, sec.Type, sec.Category)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(newSecuritiesAddCommand())
	return cmd
}

func newSecuritiesAddCommand() *cobra.Command {
	var name string
	var secType string
	var category string

	cmd := &cobra.Command{
		Use:   "add <key>",
		Short: "Add a security",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			sec := model.Security{
				Key:      args[0],
				Name:     name,
				Type:     model.SecurityType(secType),
				Category: model.SecurityCategory(category),
			}
			if err := s.AddSecurity(sec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added security %s: %s\n", sec.Key, sec.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "security name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&secType, "type", "other", "instrument type: stock, bond, etf, mutual_fund, other")
	cmd.Flags().StringVar(&category, "category", "other", "asset category: equity, debt, commodity, other")

	return cmd
}
