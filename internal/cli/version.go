package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags "-X ...cli.version=".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hourbill version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hourbill", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
