package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layerflow/pkg/config"
	"github.com/matzehuels/layerflow/pkg/errors"
	"github.com/matzehuels/layerflow/pkg/ir"
	"github.com/matzehuels/layerflow/pkg/pipeline"
	"github.com/matzehuels/layerflow/render/dot"
	rjson "github.com/matzehuels/layerflow/render/json"
	"github.com/matzehuels/layerflow/render/svg"
	"github.com/matzehuels/layerflow/render/unicode"
)

type layoutOpts struct {
	input      string
	output     string
	format     string
	configPath string
	pretty     bool
	dummies    bool
	cellSize   float64
}

func (c *CLI) newLayoutCmd() *cobra.Command {
	var o layoutOpts

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a layout from a graph file and render it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), o)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.input, "input", "i", "", "path to the graph description file (required)")
	flags.StringVarP(&o.output, "output", "o", "", "output path (defaults to stdout)")
	flags.StringVarP(&o.format, "format", "f", "json", "output format: json, unicode, svg, dot")
	flags.StringVarP(&o.configPath, "config", "c", "", "path to a TOML layout configuration file")
	flags.BoolVar(&o.pretty, "pretty", false, "pretty-print JSON output")
	flags.BoolVar(&o.dummies, "show-dummy-nodes", false, "render dummy nodes in unicode/svg output")
	flags.Float64Var(&o.cellSize, "cell-size", 1, "SVG pixels per layout cell")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, o layoutOpts) error {
	logger := loggerFromContext(ctx)

	f, err := os.Open(o.input)
	if err != nil {
		return fmt.Errorf("opening input graph: %w", err)
	}
	defer f.Close()

	view, err := parseGraph(f)
	if err != nil {
		return fmt.Errorf("parsing graph: %w", err)
	}

	opts := pipeline.Options{}
	if o.configPath != "" {
		file, err := config.Load(o.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		opts = file.ToOptions()
	}

	p := newProgress(logger, "layout")
	g, err := pipeline.Run(ctx, view, opts)
	if err != nil {
		return fmt.Errorf("running layout: %w", err)
	}
	p.done()

	out, err := render(*g, o)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	w := os.Stdout
	if o.output != "" {
		file, err := os.Create(o.output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer file.Close()
		w = file
	}
	_, err = w.Write(out)
	return err
}

func render(g ir.Graph[int], o layoutOpts) ([]byte, error) {
	switch o.format {
	case "json":
		var opts []rjson.Option
		if o.pretty {
			opts = append(opts, rjson.WithPrettyPrint())
		}
		return rjson.Render(g, opts...)
	case "unicode":
		var opts []unicode.Option
		if o.dummies {
			opts = append(opts, unicode.WithDummyNodes())
		}
		s, err := unicode.Render(g, opts...)
		return []byte(s), err
	case "svg":
		var opts []svg.Option
		opts = append(opts, svg.WithCellSize(o.cellSize))
		if o.dummies {
			opts = append(opts, svg.WithDummyNodes())
		}
		return svg.Render(g.ToFloat(), opts...), nil
	case "dot":
		return []byte(dot.ToDOT(g, dot.Options{IncludeDummyNodes: o.dummies})), nil
	default:
		return nil, errors.New(errors.ErrCodeRenderUnsupported, "unknown format %q", o.format)
	}
}
