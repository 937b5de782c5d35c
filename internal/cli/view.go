package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"bubblemap/internal/tui"
)

func (a *app) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [outline]",
		Short: "Explore the map in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// the terminal belongs to the viewer; logs go to --log-file only
			if err := a.setup(cmd, nil); err != nil {
				return err
			}
			defer a.close()
			if len(args) == 1 {
				a.cfg.Outline = args[0]
			}
			m := tui.New(tui.Options{
				Config: a.cfg,
				Logger: a.log,
			})
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
			return err
		},
	}
}
