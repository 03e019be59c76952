package cli

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index and model status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if gateway == nil {
		if err := initServices(); err != nil {
			return err
		}
	}

	count, err := chunkStore.Count(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Index:      %d chunks\n", count)
	cmd.Printf("Data dir:   %s\n", cfg.DataDir)
	cmd.Printf("Embedding:  %s (%d dimensions)\n", gateway.ModelName(), gateway.Dimensions())
	cmd.Printf("State:      %s\n", gateway.State())
	if assistantService != nil {
		if model := assistantService.LLMModelName(); model != "" {
			cmd.Printf("Chat model: %s\n", model)
		} else {
			cmd.Println("Chat model: not configured")
		}
	}
	return nil
}
