package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layerflow/pkg/config"
	"github.com/matzehuels/layerflow/pkg/pipeline"
)

func (c *CLI) newViewCmd() *cobra.Command {
	var input, configPath string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Interactively browse a computed layout, layer by layer",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("opening input graph: %w", err)
			}
			defer f.Close()

			view, err := parseGraph(f)
			if err != nil {
				return fmt.Errorf("parsing graph: %w", err)
			}

			opts := pipeline.Options{}
			if configPath != "" {
				file, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				opts = file.ToOptions()
			}

			g, err := pipeline.Run(cmd.Context(), view, opts)
			if err != nil {
				return fmt.Errorf("running layout: %w", err)
			}

			p := tea.NewProgram(newLayoutModel(*g))
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "path to the graph description file (required)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML layout configuration file")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
