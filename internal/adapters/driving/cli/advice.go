package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var adviceCmd = &cobra.Command{
	Use:   "advice [product-id]",
	Short: "Get purchase advice for a product",
	Long: `Ask the assistant for brief purchase advice on one product.

The product's details are fed to the model as a single completion, so this
works without a running conversation:

  shoptalk advice 1`,
	Args: cobra.ExactArgs(1),
	RunE: runAdvice,
}

func init() {
	rootCmd.AddCommand(adviceCmd)
}

func runAdvice(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	assistant, cleanup, err := resolveAssistant(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	advice, err := assistant.Advise(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Println(advice)
	return nil
}
