package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nivesh-dev/nivesh/internal/model"
	"github.com/nivesh-dev/nivesh/internal/query"
)

func newTransactionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions [query...]",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := compileQuery(args, query.Transactions)
			if err != nil {
				return err
			}

			s, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			details, err := s.ListTransactions(q)
			if err != nil {
				return err
			}
			if len(details) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tTYPE\tSECURITY\tACCOUNT\tAMOUNT\tUNITS\tDESCRIPTION")
			for _, d := range details {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					d.Tx.Date.Format("2006-01-02"), d.Tx.Type, d.Security.Name,
					d.Account.Name, d.Tx.Amount.String(), d.Tx.Units.String(), d.Tx.Description)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(newTransactionsAddCommand())
	return cmd
}

func newTransactionsAddCommand() *cobra.Command {
	var (
		dateStr     string
		txType      string
		description string
		amountStr   string
		unitsStr    string
		securityKey string
		accountID   int64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("parsing --date: %w", err)
			}
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing --amount: %w", err)
			}
			units, err := decimal.NewFromString(unitsStr)
			if err != nil {
				return fmt.Errorf("parsing --units: %w", err)
			}
			switch model.TransactionType(txType) {
			case model.TransactionPurchase, model.TransactionSale:
			default:
				return fmt.Errorf("--type must be purchase or sale, got %q", txType)
			}

			s, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, found, err := s.GetSecurity(securityKey); err != nil {
				return err
			} else if !found {
				return fmt.Errorf("unknown security %s (add it with 'nivesh securities add')", securityKey)
			}

			id, err := s.AddTransaction(model.Transaction{
				Date:        date,
				Type:        model.TransactionType(txType),
				Description: description,
				Amount:      amount,
				Units:       units,
				SecurityKey: securityKey,
				AccountID:   accountID,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added transaction %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "transaction date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&txType, "type", "", "purchase or sale (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.Flags().StringVar(&amountStr, "amount", "", "transaction amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&unitsStr, "units", "", "units bought or sold (required)")
	_ = cmd.MarkFlagRequired("units")
	cmd.Flags().StringVar(&securityKey, "security", "", "security key (required)")
	_ = cmd.MarkFlagRequired("security")
	cmd.Flags().Int64Var(&accountID, "account", 0, "account ID (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
