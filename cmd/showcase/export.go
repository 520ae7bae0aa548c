package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/showcase/pkg/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a slide diagram as SVG, Mermaid or text",
	Long: `Renders the diagram of one slide in a given state. Without --step or --focus the idle
diagram is rendered. With --walk every step of the chain is described as JSON.`,
	Example: `  showcase export --slide architecture --step 2 -o architecture.svg
  showcase export --slide patterns --mode planning --format mermaid
  showcase export --slide workflow --scenario cnc --walk`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPresentation()
		if err != nil {
			return err
		}

		var req export.Request
		req.Slide, _ = cmd.Flags().GetString("slide")
		req.Mode, _ = cmd.Flags().GetString("mode")
		req.Scenario, _ = cmd.Flags().GetString("scenario")
		req.Step, _ = cmd.Flags().GetInt("step")
		req.Focus, _ = cmd.Flags().GetString("focus")
		cols, _ := cmd.Flags().GetInt("cols")
		rows, _ := cmd.Flags().GetInt("rows")
		walk, _ := cmd.Flags().GetBool("walk")
		output, _ := cmd.Flags().GetString("output")

		ex := export.New(p.Entries, export.WithTextSize(cols, rows))

		var w io.Writer = cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}

		if walk {
			frames, err := ex.Walk(req)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(frames)
		}

		format, err := exportFormat(cmd, output)
		if err != nil {
			return err
		}
		if err := ex.Render(w, req, format); err != nil {
			return err
		}
		if output != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
		}
		return nil
	},
}

// exportFormat takes --format, else the output extension, else svg.
func exportFormat(cmd *cobra.Command, output string) (export.Format, error) {
	if cmd.Flags().Changed("format") || output == "" {
		name, _ := cmd.Flags().GetString("format")
		return export.ParseFormat(name)
	}
	return export.ParseFormat(filepath.Ext(output))
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("slide", "", "Slide id")
	exportCmd.Flags().String("mode", "", "Mode of a multi-mode slide")
	exportCmd.Flags().String("scenario", "", "Scenario key of the workflow slide")
	exportCmd.Flags().Int("step", -1, "Chain step to highlight (-1: idle)")
	exportCmd.Flags().String("focus", "", "Node to focus; takes precedence over --step")
	exportCmd.Flags().StringP("format", "f", "svg", "Output format: svg, mermaid or ascii")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().Int("cols", export.DefaultCols, "Width of the ascii format")
	exportCmd.Flags().Int("rows", export.DefaultRows, "Height of the ascii format")
	exportCmd.Flags().Bool("walk", false, "Describe every step of the chain as JSON")
	_ = exportCmd.MarkFlagRequired("slide")
}
