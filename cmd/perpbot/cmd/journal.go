package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/perpbot/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the trade journal",
	Long: `Query and display closed trades from a SQLite journal.

Subcommands:
  trade  - Get details of a specific trade by ID
  list   - List all recorded trades
  day    - List trades closed on a specific day

Examples:
  perpbot journal trade <trade-id>
  perpbot journal list
  perpbot journal day 2026-08-23`,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded trades",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades closed on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalDayCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./perpbot.sqlite", "path to SQLite journal DB")
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	rec, err := j.GetTrade(args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	printTrade(rec)
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListTrades()
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	printTrades(recs)
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	start, end, err := dayBounds(time.Local, args[0])
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListTradesBetween(start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	printTrades(recs)
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.Add(24 * time.Hour), nil
}

func printTrade(r journal.TradeRecord) {
	fmt.Printf("Trade %s\n", r.TradeID)
	fmt.Printf("  Closed:      %s\n", r.Time.Format(time.RFC3339))
	fmt.Printf("  Symbol:      %s\n", r.Symbol)
	fmt.Printf("  Direction:   %s\n", r.Direction)
	fmt.Printf("  Size:        %.6f\n", r.OrderSize)
	fmt.Printf("  Entry:       %.6f\n", r.EntryPrice)
	fmt.Printf("  Exit:        %.6f\n", r.ExitPrice)
	fmt.Printf("  Stop Loss:   %.6f\n", r.StopLoss)
	fmt.Printf("  Take Profit: %.6f\n", r.TakeProfit)
}

func printTrades(recs []journal.TradeRecord) {
	if len(recs) == 0 {
		fmt.Println("no trades recorded")
		return
	}

	fmt.Printf("%-27s %-20s %-16s %-5s %12s %12s %12s\n",
		"TRADE ID", "CLOSED", "SYMBOL", "SIDE", "SIZE", "ENTRY", "EXIT")
	for _, r := range recs {
		fmt.Printf("%-27s %-20s %-16s %-5s %12.4f %12.4f %12.4f\n",
			r.TradeID, r.Time.Format("2006-01-02 15:04:05"),
			r.Symbol, r.Direction, r.OrderSize, r.EntryPrice, r.ExitPrice)
	}
	fmt.Printf("\n%d trade(s)\n", len(recs))
}
