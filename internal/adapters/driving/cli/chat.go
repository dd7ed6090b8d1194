package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the shopping assistant",
	Long: `Start an interactive conversation with the shopping assistant.

The assistant answers questions about the product catalog: it can search for
products, look up details, and give purchase advice. Conversation history is
kept for the whole session, so follow-up questions work.

Type 'exit' or 'quit' (or press Ctrl-D) to leave.`,
	RunE: runChat,
}

// chatOnce holds a single question asked with --once.
var chatOnce string

func init() {
	chatCmd.Flags().StringVar(&chatOnce, "once", "", "ask a single question and exit")
	rootCmd.AddCommand(chatCmd)
}

// exitTokens end the chat loop when typed on their own line.
var exitTokens = map[string]bool{
	"exit": true,
	"quit": true,
}

func runChat(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	assistant, cleanup, err := resolveAssistant(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	if chatOnce != "" {
		reply, err := assistant.Ask(cmd.Context(), chatOnce)
		if err != nil {
			return err
		}
		cmd.Println(reply)
		return nil
	}

	cmd.Printf("Shopping assistant ready (model: %s). Type 'exit' to leave.\n", assistant.ModelName())
	cmd.Println()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("you> ")
		if !scanner.Scan() {
			// EOF (Ctrl-D) or read error ends the session.
			cmd.Println()
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if exitTokens[strings.ToLower(input)] {
			break
		}

		reply, err := assistant.Ask(cmd.Context(), input)
		if err != nil {
			// A failed turn is reported but does not end the session, and
			// leaves no trace in history.
			cmd.Printf("error: %v\n\n", err)
			continue
		}

		cmd.Printf("assistant> %s\n\n", reply)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	cmd.Println("Goodbye!")
	return nil
}
