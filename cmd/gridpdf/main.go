// Command gridpdf renders grid layout templates to PDF.
//
//	gridpdf render invoice.json --data invoice-data.json --items lines.xlsx -o invoice.pdf
//	gridpdf check invoice.json
//	gridpdf pages invoice.json --items lines.xlsx
//	gridpdf mcp
//
// The mcp subcommand serves the same operations as an MCP server over stdio.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lvillar/gridpdf"
	"github.com/lvillar/gridpdf/doctpl"
	"github.com/lvillar/gridpdf/mcp"
	"github.com/lvillar/gridpdf/render"
)

var version = "dev"

type options struct {
	output     string
	data       string
	items      string
	sheet      string
	debug      string
	stationery string
	strict     bool
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "gridpdf: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "gridpdf",
		Short:         "Render grid layout templates to PDF",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log layout decisions to stderr")

	renderCmd := &cobra.Command{
		Use:   "render TEMPLATE.json",
		Short: "Render a template with a data model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}
	renderCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path (default: stdout)")
	renderCmd.Flags().StringVar(&opts.debug, "debug", "", "Debug overlays: grid, layout, hide, fonts, text")
	renderCmd.Flags().StringVar(&opts.stationery, "stationery", "", "PDF whose first page is drawn under every page")
	renderCmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail instead of clamping or dropping content")
	addModelFlags(renderCmd, opts)

	checkCmd := &cobra.Command{
		Use:   "check TEMPLATE.json",
		Short: "Validate a template and list its styles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := loadTemplate(args[0])
			if err != nil {
				return err
			}
			rows, cols := tpl.GridSize()
			fmt.Fprintf(cmd.OutOrStdout(), "grid %dx%d\n", rows, cols)
			for _, name := range tpl.StyleNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	pagesCmd := &cobra.Command{
		Use:   "pages TEMPLATE.json",
		Short: "Print the page count a data model produces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := loadTemplate(args[0])
			if err != nil {
				return err
			}
			model, err := loadModel(opts)
			if err != nil {
				return err
			}
			n, err := tpl.PageCount(model)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	addModelFlags(pagesCmd, opts)

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the template tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := mcp.NewServer(
				mcp.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
				mcp.WithLogger(newLogger(cmd.ErrOrStderr(), opts.verbose)),
				mcp.WithInfo("gridpdf", version),
			)
			mcp.RegisterDefaultTools(s)
			mcp.RegisterDefaultResources(s)
			return s.Run(cmd.Context())
		},
	}

	root.AddCommand(renderCmd, checkCmd, pagesCmd, mcpCmd)
	return root
}

func addModelFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.data, "data", "", "JSON file with the data model")
	cmd.Flags().StringVar(&opts.items, "items", "", "Spreadsheet (.xlsx) whose rows become the grid items")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Worksheet of --items (default: first)")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runRender(cmd *cobra.Command, path string, opts *options) error {
	tpl, err := loadTemplate(path)
	if err != nil {
		return err
	}
	model, err := loadModel(opts)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	genOpts := append(tpl.Options(), gridpdf.WithLogger(logger))
	if opts.debug != "" {
		mode, unknown := render.ParseDebugMode(opts.debug)
		if len(unknown) > 0 {
			return fmt.Errorf("unknown debug flags: %s", strings.Join(unknown, ", "))
		}
		genOpts = append(genOpts, gridpdf.WithDebug(mode))
	}
	if opts.stationery != "" {
		genOpts = append(genOpts, gridpdf.WithStationery(opts.stationery, 1))
	}
	if opts.strict {
		genOpts = append(genOpts, gridpdf.WithStrictGeometry())
	}

	pdf, err := gridpdf.New(tpl, genOpts...).Build(model)
	if err != nil {
		return err
	}
	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(pdf)
		return err
	}
	if err := os.WriteFile(opts.output, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("wrote PDF", "path", opts.output, "bytes", len(pdf))
	return nil
}

func loadTemplate(path string) (*doctpl.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := doctpl.Parse(data)
	if err != nil {
		return nil, err
	}
	return doctpl.Compile(doc)
}

func loadModel(opts *options) (map[string]any, error) {
	model := map[string]any{}
	if opts.data != "" {
		data, err := os.ReadFile(opts.data)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &model); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", opts.data, err)
		}
	}
	if opts.items != "" {
		f, err := os.Open(opts.items)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		items, err := doctpl.ItemsFromXLSX(f, opts.sheet)
		if err != nil {
			return nil, err
		}
		model["items"] = items
	}
	return model, nil
}
