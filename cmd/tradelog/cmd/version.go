package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the tradelog CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tradelog version %s\n", version)
		fmt.Println("A personal perpetual-futures trading journal")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
