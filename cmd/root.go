package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/matheuskafuri/hnsearch/internal/output"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagQuery  string
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "hnsearch",
	Short: "Search Hacker News stories from the terminal",
	Long:  "hnsearch queries the Hacker News search API, pages through results and lets you dismiss stories you don't care about.",
	RunE:  runTUI,

	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "write debug logs")
	rootCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "initial search term (default from config)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(configCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hnsearch %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := execute(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree and reports a failure on errOut.
func execute(out, errOut io.Writer, args []string) error {
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil {
		output.NewPrinter(out, errOut).Error("%v", err)
	}
	return err
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
