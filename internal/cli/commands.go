package cli

import (
	"fmt"
	"io"

	"github.com/hrutik5321/leaguedash/internal/app"
	"github.com/hrutik5321/leaguedash/internal/report"
	"github.com/hrutik5321/leaguedash/internal/ui/table"
	gotable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func addUIFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while the dashboard runs")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 10, "rows per result page")
}

func newUICommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive dashboard. Pick a section and a report from the
menu, set its parameters, then page through the result or switch to the
bar chart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts)
		},
	}
	addUIFlags(cmd, opts)
	return cmd
}

func runUI(cmd *cobra.Command, opts *options) error {
	logFile, err := openLogFile(opts.logFile)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer func() { _ = logFile.Close() }()
	}

	// The terminal belongs to the dashboard; logs only go to --log-file.
	var logOut io.Writer
	if logFile != nil {
		logOut = logFile
	}
	cmdCtx, cleanup, err := newCommandContext(cmd, opts, logOut)
	if err != nil {
		return err
	}
	defer cleanup()

	program := app.NewProgram(cmd.Context(), cmdCtx.Runner, cmd.InOrStdin(), cmd.OutOrStdout(),
		app.WithLogger(cmdCtx.Logger),
		app.WithPageSize(opts.pageSize),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

func newReportsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List the report catalog",
		Example: `  # List every report id with its parameters
  leaguedash reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := gotable.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(gotable.StyleLight)
			t.Style().Format.Header = text.FormatDefault
			t.AppendHeader(gotable.Row{"id", "section", "title", "parameters"})
			for _, r := range report.All() {
				t.AppendRow(gotable.Row{r.ID, r.Section, r.Title, describeParams(r)})
			}
			t.Render()
			return nil
		},
	}
}

func describeParams(r *report.Report) string {
	s := ""
	for i, p := range r.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Name + " (" + p.Kind.String()
		if p.Kind == report.Number {
			s += fmt.Sprintf(" %d-%d, default %s", p.Min, p.Max, p.Default)
		}
		s += ")"
	}
	return s
}

func newRunCommand(opts *options) *cobra.Command {
	var (
		params []string
		format string
	)
	cmd := &cobra.Command{
		Use:   "run <report>",
		Short: "Run one report and print the result",
		Long: `Run one report from the catalog and print its result. Parameters are
given as name=value; list parameters accept comma-separated values or a
repeated --param. Omitted parameters take their defaults.`,
		Example: `  # Top scorers of two teams as CSV
  leaguedash run players/top-scorers --param teams=Arsenal,Chelsea --format csv

  # Older goalscorers as JSON
  leaguedash run players/older-scorers -p min_age=33 -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, ok := report.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown report %q (see 'leaguedash reports')", args[0])
			}
			f, err := table.ParseFormat(format)
			if err != nil {
				return err
			}
			input, err := report.ParseAssignments(params)
			if err != nil {
				return err
			}
			for name := range input {
				if _, ok := rep.Param(name); !ok {
					return fmt.Errorf("report %s has no parameter %q", rep.ID, name)
				}
			}

			cmdCtx, cleanup, err := newCommandContext(cmd, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			result, _, err := cmdCtx.Runner.Run(cmd.Context(), rep, input)
			if err != nil {
				return err
			}
			return table.Write(cmd.OutOrStdout(), result, rep.Formats, f)
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "report parameter as name=value (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", string(table.FormatTable), "output format (table|json|csv|md)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "csv", "md"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newTablesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables of the connected database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, _ := report.Lookup("home/tables")
			p, _ := rep.Param("table")

			cmdCtx, cleanup, err := newCommandContext(cmd, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			names, err := cmdCtx.Runner.Options(cmd.Context(), p, report.Values{})
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
