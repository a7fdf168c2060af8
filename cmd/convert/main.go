// Command convert turns a floor plan scene document into a GeoJSON bundle
// without touching the server. It reads the same document shape the API
// stores and writes the per-floor feature collections to a file or stdout.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/floorcast/floorcast/backend-go/internal/convert"
	"github.com/floorcast/floorcast/backend-go/internal/document"
	"github.com/floorcast/floorcast/backend-go/internal/sink"
)

type convertOpts struct {
	in       string
	out      string
	ids      string
	ellipses string
	sample   bool
}

func main() {
	opts := convertOpts{ids: "verbatim", ellipses: "point"}

	cmd := &cobra.Command{
		Use:          "convert",
		Short:        "Convert a floor plan document to GeoJSON",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVar(&opts.in, "in", "", "path to a scene document JSON file (reads stdin if empty)")
	cmd.Flags().StringVar(&opts.out, "out", "", "path to write the GeoJSON bundle (writes stdout if empty)")
	cmd.Flags().StringVar(&opts.ids, "ids", "verbatim", "feature id policy: verbatim or parsed")
	cmd.Flags().StringVar(&opts.ellipses, "ellipses", "point", "ellipse policy: point or polygon")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "convert the built-in sample plan instead of reading input")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts convertOpts) error {
	convOpts, err := conversionOptions(opts)
	if err != nil {
		return err
	}

	plan, err := loadPlan(opts)
	if err != nil {
		return err
	}
	if plan.Root == nil {
		return fmt.Errorf("document has no root node")
	}

	var out sink.Capture
	convert.Build([]document.Node{*plan.Root}, convOpts, &out)

	for _, n := range out.Notices {
		slog.Warn("conversion notice", "notice", n)
	}

	if out.Payload == nil {
		return fmt.Errorf("conversion produced no result")
	}
	if out.Payload.Kind == sink.KindError {
		return fmt.Errorf("%s", out.Payload.Message)
	}

	if opts.out == "" {
		_, err = os.Stdout.Write(out.Payload.Floors)
		return err
	}
	if err := os.WriteFile(opts.out, out.Payload.Floors, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	slog.Info("export written", "file", opts.out, "suggested_name", out.Payload.Filename)
	return nil
}

func conversionOptions(opts convertOpts) (convert.Options, error) {
	var c convert.Options

	switch opts.ids {
	case "verbatim":
		c.IDs = convert.IDVerbatim
	case "parsed":
		c.IDs = convert.IDParsed
	default:
		return c, fmt.Errorf("unknown ids policy %q", opts.ids)
	}

	switch opts.ellipses {
	case "point":
		c.Ellipses = convert.EllipseAsPoint
	case "polygon":
		c.Ellipses = convert.EllipseAsPolygon
	default:
		return c, fmt.Errorf("unknown ellipses policy %q", opts.ellipses)
	}

	return c, nil
}

func loadPlan(opts convertOpts) (*document.Plan, error) {
	if opts.sample {
		return document.NewSamplePlan("plan_sample"), nil
	}

	in := os.Stdin
	if opts.in != "" {
		f, err := os.Open(opts.in)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var plan document.Plan
	if err := json.NewDecoder(in).Decode(&plan); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &plan, nil
}
