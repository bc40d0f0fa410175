package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set by the linker at release time.
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "crackedice",
		Short:   "NHL fantasy schedule complements and roster fit",
		Version: version,
	}
	cobra.OnInitialize(initViper)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default: config.yaml in current directory)")
	pf.String("data-path", "", "Path to the schedule artifact")
	pf.Int("slots", 0, "Lineup slots per day")
	pf.String("log-level", "", "Log level: debug or info or warn or error")
	pf.String("log-format", "", "Log format: text or json")
	pf.String("format", "text", "Output format: text or json or csv")
	pf.Int("precision", 3, "Decimal precision for shares and scores")
	pf.String("color", "auto", "Color tier names: auto or yes or no")
	if err := viper.BindPFlags(pf); err != nil {
		fmt.Fprintf(os.Stderr, "binding flags: %v\n", err)
		os.Exit(1)
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Inspect the schedule artifact",
	}
	validateCmd := &cobra.Command{
		Use:          "validate [schedule.json]",
		Short:        "Check a schedule artifact for malformed or suspicious data",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := cfg.Data.Path
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(path)
		},
	}
	dataCmd.AddCommand(validateCmd)

	var win windowFlags
	complementsCmd := &cobra.Command{
		Use:   "complements <TEAM>",
		Short: "Rank every team by how well it fills a seed team's off days",
		Long: `Rank every other team by the dates it plays while the seed team is idle.

Examples:
  # Best complements for Boston over the whole season
  crackedice complements BOS

  # Only look at December, as JSON
  crackedice complements BOS --start 2024-12-01 --end 2024-12-31 --format json`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error { return a.runComplements(args[0], win) })
		},
	}
	win.register(complementsCmd)

	var addedWin windowFlags
	var rosterFlag, candidate string
	addedStartsCmd := &cobra.Command{
		Use:   "added-starts",
		Short: "Count the starts a candidate team adds to a roster",
		Long: `Count the days a candidate plays while a lineup slot is still free.

Examples:
  crackedice added-starts --roster BOS,TOR --candidate MTL
  crackedice added-starts --roster BOS,TOR,EDM --candidate SEA --slots 3`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				return a.runAddedStarts(splitCodes(rosterFlag), candidate, addedWin)
			})
		},
	}
	addedWin.register(addedStartsCmd)
	addedStartsCmd.PersistentFlags().StringVar(&rosterFlag, "roster", "", "Comma-separated team codes already on the roster")
	addedStartsCmd.Flags().StringVar(&candidate, "candidate", "", "Team code being considered")

	var bulkWin windowFlags
	bulkCmd := &cobra.Command{
		Use:          "bulk",
		Short:        "Score every team outside the roster",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				return a.runAddedStartsBulk(splitCodes(rosterFlag), bulkWin)
			})
		},
	}
	bulkWin.register(bulkCmd)
	addedStartsCmd.AddCommand(bulkCmd)

	var bestWin windowFlags
	bestCmd := &cobra.Command{
		Use:          "best <k>",
		Short:        "List the team combinations of size k with the most usable starts",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error { return a.runBest(args[0], bestWin) })
		},
	}
	bestWin.register(bestCmd)

	var tf tierFlags
	tiersCmd := &cobra.Command{
		Use:   "tiers",
		Short: "Grade every team around the fantasy playoff boundary",
		Long: `Classify every team into cyan, blue, green or red by how its schedule
scores before and after the fantasy playoffs begin.

Examples:
  crackedice tiers --playoff-week 21
  crackedice tiers --playoff-start 2025-03-03 --strategy off_night`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error { return a.runTiers(cmd, tf) })
		},
	}
	tf.register(tiersCmd)

	var ef exportFlags
	exportCmd := &cobra.Command{
		Use:          "export",
		Short:        "Write the season summaries to an Excel workbook and Parquet files",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error { return a.runExport(cmd, ef) })
		},
	}
	ef.register(exportCmd)

	serveCmd := &cobra.Command{
		Use:          "serve",
		Short:        "Serve the schedule operations over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		fmt.Fprintf(os.Stderr, "binding flags: %v\n", err)
		os.Exit(1)
	}

	mcpCmd := &cobra.Command{
		Use:          "mcp",
		Short:        "Start the MCP tool server on stdio",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP()
		},
	}

	rootCmd.AddCommand(initCmd, dataCmd, complementsCmd, addedStartsCmd, bestCmd, tiersCmd, exportCmd, serveCmd, mcpCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// splitCodes turns a comma list into codes, dropping empty entries.
func splitCodes(s string) []string {
	var codes []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}
