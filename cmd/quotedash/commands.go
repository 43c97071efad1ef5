package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/komsit37/quotedash/pkg/dash/filter"
	"github.com/komsit37/quotedash/pkg/dash/pipeline"
	"github.com/komsit37/quotedash/pkg/dash/server"
	"github.com/komsit37/quotedash/pkg/dash/snapshot"
	"github.com/komsit37/quotedash/pkg/dash/watch"
)

func newAnalyzeCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "analyze <name|ticker>",
		Short: "Analyze one stock and print the dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), cmd, args[0], format, out)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, html, json, symbol")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write output to file instead of stdout")
	return cmd
}

func runOnce(ctx context.Context, cmd *cobra.Command, query, format, out string) error {
	runner, err := newRunner(ctx)
	if err != nil {
		return err
	}
	if runner.Renderer, err = rendererFor(format); err != nil {
		return err
	}
	w, closeOut, err := openOutput(out)
	if err != nil {
		return err
	}
	runner.Writer = w

	opts := pipeline.ExecuteOptions{PrettyJSON: true}
	if out == "" {
		opts.Color = colorEnabled(cmd)
		opts.Width = detectTerminalWidth()
	}
	if err := runner.Execute(ctx, query, opts); err != nil {
		closeOut()
		return userFacing(err)
	}
	return closeOut()
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard page and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd.Context())
			if err != nil {
				return err
			}
			srv := server.New(runner)
			srv.Verbose = viper.GetBool("verbose")
			return srv.ListenAndServe(cmd.Context(), viper.GetString("addr"))
		},
	}
	cmd.Flags().String("addr", ":8501", "listen address")
	_ = viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func newWatchCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "watch <name|ticker>",
		Short: "Re-run the analysis on a cron schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := newRunner(ctx)
			if err != nil {
				return err
			}
			if runner.Renderer, err = rendererFor(format); err != nil {
				return err
			}
			runner.Writer = os.Stdout
			opts := pipeline.ExecuteOptions{
				Color:      colorEnabled(cmd),
				PrettyJSON: true,
				Width:      detectTerminalWidth(),
			}
			query := args[0]
			s := watch.NewScheduler(ctx)
			return s.Run(viper.GetString("schedule"), func(ctx context.Context) error {
				return runner.Execute(ctx, query, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, html, json, symbol")
	cmd.Flags().String("schedule", "@every 5m", "cron spec or @every interval")
	_ = viper.BindPFlag("schedule", cmd.Flags().Lookup("schedule"))
	return cmd
}

func newSnapshotCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "snapshot <name|ticker>",
		Short: "Capture the dashboard page as a PNG with headless Chrome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := newRunner(ctx)
			if err != nil {
				return err
			}
			rep, err := runner.Analyze(ctx, args[0])
			if err != nil {
				return userFacing(err)
			}
			if rep == nil {
				return fmt.Errorf("no data for %q", args[0])
			}
			c := snapshot.New()
			c.Debug = viper.GetBool("verbose")
			return c.CaptureFile(ctx, rep, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dash.png", "PNG file to write")
	return cmd
}

func newSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols [filter]",
		Short: "List the name→symbol table",
		Long: "List the name→symbol table. The filter is a comma-separated list of exact\n" +
			"names or symbols, a glob (*.NS), a /regex/ or a substring.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := loadResolver(cmd.Context())
			if err != nil {
				return err
			}
			expr := ""
			if len(args) == 1 {
				expr = args[0]
			}
			f, err := filter.Parse(expr)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			if colorEnabled(cmd) {
				tw.SetStyle(table.StyleColoredDark)
			} else {
				tw.SetStyle(table.StyleLight)
			}
			tw.Style().Options.DrawBorder = false
			tw.Style().Options.SeparateRows = false
			tw.Style().Options.SeparateColumns = false
			tw.AppendHeader(table.Row{"NAME", "SYMBOL"})
			for _, e := range filter.Apply(f, resolver.Entries()) {
				tw.AppendRow(table.Row{e.Name, e.Symbol})
			}
			tw.Render()
			return nil
		},
	}
}
