// Package cli provides the command-line interface for leaguedash.
package cli

import (
	"fmt"
	"os"

	"github.com/hrutik5321/leaguedash/internal/config"
	"github.com/hrutik5321/leaguedash/internal/query"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// options holds the persistent flags that are not connection settings.
// Connection and commit flags are read by config.Decode and config.Lookup
// straight from the flag set.
type options struct {
	configFile string
	section    string
	logFile    string
	verbose    bool
	pageSize   int

	connectors connectorFactory
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newConnectors)
}

func newRootCmd(connectors connectorFactory) *cobra.Command {
	opts := &options{connectors: connectors}

	rootCmd := &cobra.Command{
		Use:   "leaguedash",
		Short: "Football league analytics dashboard",
		Long: `leaguedash runs a fixed catalog of football league reports against a
PostgreSQL database and shows the results as tables and bar charts.

Without a subcommand it opens the interactive dashboard. Connection
settings come from a section of an INI (or YAML) file, overridden by
LEAGUEDASH_* environment variables and then by flags.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", config.DefaultSource, "connection settings file (.ini, .yaml)")
	pf.StringVar(&opts.section, "section", config.DefaultSection, "section of the settings file to use")
	pf.String("host", "", "database host")
	pf.Int("port", 0, "database port")
	pf.String("user", "", "database user")
	pf.String("dbname", "", "database name")
	pf.String("driver", "", "database driver (pgxpool, pgx, postgres)")
	pf.String("sslmode", "", "sslmode passed to the server")
	pf.String("commit", "", "when to commit: writes or always (default writes)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging on stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("driver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"pgxpool", "pgx", "postgres"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("commit", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{query.CommitWrites.String(), query.CommitAlways.String()}, cobra.ShellCompDirectiveNoFileComp
	})

	addUIFlags(rootCmd, opts)

	rootCmd.AddCommand(newUICommand(opts))
	rootCmd.AddCommand(newReportsCommand())
	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newTablesCommand(opts))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
