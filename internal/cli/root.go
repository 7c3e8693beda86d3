package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Execute builds the root cobra command and runs it under ctx with args,
// logging to w. Canceling ctx (e.g. on SIGINT/SIGTERM) stops a layout run
// at the next checkpoint between pipeline passes; a pass already running
// completes first.
func Execute(ctx context.Context, w io.Writer, args []string) error {
	c := New(w, LogInfo)
	var verbose bool

	root := &cobra.Command{
		Use:           appName,
		Short:         "Compute and render two-dimensional layouts of directed graphs",
		Long:          fmt.Sprintf("%s lays out directed graphs into a renderer-agnostic intermediate representation, and renders that representation to JSON, Unicode, SVG, or DOT.", appName),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			c.setLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.SetVersionTemplate(fmt.Sprintf("%s {{.Version}}\n", appName))

	root.AddCommand(c.newLayoutCmd())
	root.AddCommand(c.newStoreCmd())
	root.AddCommand(c.newViewCmd())

	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
