package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nivesh-dev/nivesh/internal/model"
	"github.com/nivesh-dev/nivesh/internal/provider"
	"github.com/nivesh-dev/nivesh/internal/query"
)

func newPricesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices [query...]",
		Short: "List stored prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := compileQuery(args, query.Prices)
			if err != nil {
				return err
			}

			s, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			details, err := s.ListPrices(q)
			if err != nil {
				return err
			}
			if len(details) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No prices found. Try 'nivesh prices sync'.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SECURITY\tDATE\tOPEN\tHIGH\tLOW\tCLOSE")
			for _, d := range details {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					d.Security.Name, d.Price.Date.Format("2006-01-02"),
					d.Price.Open.String(), d.Price.High.String(),
					d.Price.Low.String(), d.Price.Close.String())
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(newPricesSyncCommand())
	cmd.AddCommand(newPricesUpdateCommand())
	return cmd
}

func newPricesSyncCommand() *cobra.Command {
	var fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "sync [query...]",
		Short: "Fetch prices from providers",
		Long: `Fetch prices from installed providers for securities in the portfolio,
optionally filtered by a query. Without flags the latest price is fetched;
--from/--to fetch a historical range.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := compileQuery(args, query.Securities)
			if err != nil {
				return err
			}
			if (fromStr == "") != (toStr == "") {
				return fmt.Errorf("--from and --to must be given together")
			}

			s, cfg, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			secs, err := s.ListSecurities(q)
			if err != nil {
				return err
			}
			if len(secs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No securities to sync.")
				return nil
			}

			ctx := cmd.Context()
			if cfg.Sync.TimeoutSeconds > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Sync.TimeoutSeconds)*time.Second)
				defer cancel()
			}

			syncer := provider.NewSyncer(provider.DefaultRegistry(), s)
			var res provider.Result
			if fromStr != "" {
				from, err := time.Parse("2006-01-02", fromStr)
				if err != nil {
					return fmt.Errorf("parsing --from: %w", err)
				}
				to, err := time.Parse("2006-01-02", toStr)
				if err != nil {
					return fmt.Errorf("parsing --to: %w", err)
				}
				res = syncer.Historical(ctx, secs, from, to)
			} else {
				res = syncer.Latest(ctx, secs)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d, skipped %d, failed %d\n",
				res.Synced, res.Skipped, res.Failed)
			if res.Failed > 0 {
				return fmt.Errorf("%d securities failed to sync", res.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "start date for historical sync, YYYY-MM-DD")
	cmd.Flags().StringVar(&toStr, "to", "", "end date for historical sync, YYYY-MM-DD")

	return cmd
}

// newPricesUpdateCommand records a manual quote. OHLC takes one value
// (close), two (open, close), or four (open, high, low, close).
func newPricesUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <security> <date> <ohlc...>",
		Short: "Record a price manually",
		Args:  cobra.RangeArgs(3, 6),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			date, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("parsing date: %w", err)
			}

			values := make([]decimal.Decimal, 0, len(args)-2)
			for _, a := range args[2:] {
				v, err := decimal.NewFromString(a)
				if err != nil {
					return fmt.Errorf("parsing price %q: %w", a, err)
				}
				values = append(values, v)
			}

			price := model.Price{SecurityKey: key, Date: date}
			switch len(values) {
			case 1:
				price.Open, price.High, price.Low, price.Close = values[0], values[0], values[0], values[0]
			case 2:
				price.Open, price.Close = values[0], values[1]
				price.High = decimal.Max(values[0], values[1])
				price.Low = decimal.Min(values[0], values[1])
			case 4:
				price.Open, price.High, price.Low, price.Close = values[0], values[1], values[2], values[3]
			default:
				return fmt.Errorf("provide 1 (close), 2 (open, close), or 4 (open, high, low, close) values")
			}

			s, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, found, err := s.GetSecurity(key); err != nil {
				return err
			} else if !found {
				return fmt.Errorf("unknown security %s", key)
			}

			if err := s.UpsertPrice(price); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded price for %s on %s\n", key, args[1])
			return nil
		},
	}
	return cmd
}
