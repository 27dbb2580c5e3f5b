// Package cli provides the command-line interface for readwell.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/readwell/readwell/internal/config"
	"github.com/readwell/readwell/internal/version"
)

var (
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "readwell",
		Short: "Audit and repair text contrast",
		Long: `Readwell audits the text of a web page against WCAG contrast targets and
repairs failing foreground colours with the smallest perceptible shift.

It works from an offline style snapshot or from a live page driven through
headless Chrome, resolving each element's effective background across
stacked layers before judging and correcting it.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a YAML config file")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(gateCmd)
}

// newLogger builds the process logger from the verbosity flags.
func newLogger() hclog.Logger {
	level := hclog.Info
	if flagQuiet {
		level = hclog.Error
	}
	if flagVerbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "readwell",
		Level:  level,
		Output: os.Stderr,
	})
}

// loadConfig reads the configured YAML file, or defaults when none is set.
func loadConfig() (config.Config, error) {
	return config.Load(flagConfig)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
