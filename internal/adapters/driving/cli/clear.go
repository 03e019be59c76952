package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all indexed portfolio chunks",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		if err := initServices(); err != nil {
			return err
		}
	}

	if !clearForce {
		cmd.Print("This removes every indexed chunk. Continue? [y/N] ")
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := ingestService.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear the index: %w", err)
	}
	cmd.Println("Index cleared.")
	return nil
}
