package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/leadpilot/leadpilot/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive terminal UI",
	Long: `Open the full-screen interactive UI.

The UI signs you in if needed, walks through onboarding on first use,
and gives keyboard-driven access to the dashboard, campaigns, and leads.

Keys:
  1 / 2 / 3   dashboard, campaigns, leads
  ctrl+l      sign out
  ctrl+c      quit

Examples:
  leadpilot ui`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := tui.NewApp(cmd.Context(), rt.ctrl, rt.client)

		program := tea.NewProgram(app,
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)

		if _, err := program.Run(); err != nil {
			return fmt.Errorf("ui failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
