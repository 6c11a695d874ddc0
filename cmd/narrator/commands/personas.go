package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/offbeam/narrator/pkg/persona"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the built-in personas",
	RunE: func(cmd *cobra.Command, args []string) error {
		nameStyle := lipgloss.NewStyle().Bold(true)
		dimStyle := lipgloss.NewStyle().Faint(true)

		for _, name := range []string{persona.Herzog, persona.Adorno, persona.Zizek} {
			p := persona.Defaults()[name]
			fmt.Fprintln(cmd.OutOrStdout(), nameStyle.Render(p.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", dimStyle.Render("voice:"), p.VoiceID)
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %v\n", dimStyle.Render("aliases:"), p.Aliases)
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", dimStyle.Render("tone:"), p.Tone)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(personasCmd)
}
