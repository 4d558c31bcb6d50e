package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the perpbot CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("perpbot version %s\n", version)
		fmt.Println("An automated perpetual futures trading bot")
		fmt.Println("https://github.com/rustyeddy/perpbot")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
