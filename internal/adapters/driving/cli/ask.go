package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a single question",
	Long: `Ask the shopping assistant one question and print the reply.

Unlike 'chat', this runs a single turn and exits. Useful for scripting:

  shoptalk ask "do you have any laptops under 5000?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	assistant, cleanup, err := resolveAssistant(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := assistant.Ask(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Println(reply)
	return nil
}
