package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

var askShowContext bool

var (
	answerStyle = lipgloss.NewStyle().Width(80)
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the portfolio assistant a question",
	Long: `Retrieves the most relevant portfolio chunks for the question and
asks the configured language model for a grounded answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved chunks below the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		if err := initServices(); err != nil {
			return err
		}
	}

	answer, err := assistantService.Answer(cmd.Context(), args[0])
	switch {
	case errors.Is(err, domain.ErrLLMUnavailable):
		// Degraded mode: no chat model, show the raw context instead.
		cmd.Println("No language model configured; showing retrieved context only.")
		cmd.Println()
		printContext(cmd, answer.Context)
		return nil
	case errors.Is(err, domain.ErrModelUnavailable):
		return fmt.Errorf("the assistant failed to initialise: %w", err)
	case err != nil:
		return err
	}

	cmd.Println(answerStyle.Render(answer.Text))
	if askShowContext {
		cmd.Println()
		printContext(cmd, answer.Context)
	}
	return nil
}

func printContext(cmd *cobra.Command, results []domain.SimilarityResult) {
	if len(results) == 0 {
		cmd.Println(sourceStyle.Render("No relevant portfolio context was found."))
		return
	}
	cmd.Println(sourceStyle.Render("Context:"))
	for _, r := range results {
		cmd.Println(sourceStyle.Render(fmt.Sprintf("  [%s] (%.3f) %s", r.Chunk.Source, r.Score, snippet(r.Chunk.Text, 100))))
	}
}
