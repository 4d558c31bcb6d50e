package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "perpbot",
	Short: "An automated perpetual futures trading bot",
	Long: `Perpbot trades perpetual futures contracts on a fixed cycle.

Each cycle it:
  - Fetches recent candles and evaluates a moving-average crossover signal
  - Reconciles the signal against its open-position ledger
  - Places and closes market orders with a bounded retry policy
  - Monitors open positions for stop-loss and take-profit exits
  - Journals every closed trade to CSV or SQLite

Complete documentation is available at https://github.com/rustyeddy/perpbot`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
