package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fintrack CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fintrack version %s\n", version)
		fmt.Println("A personal finance ledger and stock portfolio tracker")
		fmt.Println("https://github.com/rustyeddy/fintrack")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
