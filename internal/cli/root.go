// Package cli provides the command-line interface for polycache.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polycache/polycache/internal/build"
)

var buildInfo build.Info

// configFile holds the --config flag value shared by all subcommands.
var configFile string

// SetBuildInfo stores the build metadata shown by the version command.
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd creates the root command for polycache.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "polycache",
		Short: "A capacity-bounded key-value cache with pluggable eviction policies",
		Long: `polycache serves a fixed-capacity key-value cache over HTTP.

The eviction policy (fifo, lifo, lru, mru, lfu) and capacity are chosen in the
config file; entries are persisted to SQLite and reloaded on startup.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/polycache/config.yaml)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("polycache %s\n", buildInfo.Version)
			fmt.Printf("commit: %s\n", buildInfo.Commit)
			fmt.Printf("built: %s\n", buildInfo.BuildDate)
			fmt.Printf("go: %s\n", buildInfo.GoVersion)
		},
	}
}
