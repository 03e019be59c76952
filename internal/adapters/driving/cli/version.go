package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folio version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("folio %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
