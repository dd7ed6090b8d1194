package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/counterline-labs/shoptalk/internal/adapters/driving/tui"
	"github.com/counterline-labs/shoptalk/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for shoptalk.

The TUI provides a chat view for talking to the shopping assistant and a
catalog browser with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Send
  Esc      - Back / Cancel
  q        - Quit (from menu)`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ports := &tui.Ports{
		Catalog:  catalogService,
		Settings: settingsService,
	}

	// The chat view needs a reachable LLM provider. Launch without it rather
	// than refusing to start; the view explains how to configure one.
	assistant, cleanup, err := resolveAssistant(cmd.Context())
	if err != nil {
		logger.Warn("chat disabled: %v", err)
	} else {
		defer cleanup()
		ports.Assistant = assistant
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
