package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/atomicwriter/internal/version"
	"github.com/arthur-debert/atomicwriter/pkg/logging"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "atomicwriter",
		Short: "Atomically write files to a target path",
		Long: `atomicwriter writes files atomically: content is staged in a private
temporary directory next to the destination and published with a single
atomic rename, so readers never observe a partially written file. Parent
directories are created on demand with configurable permissions and
ownership.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for atomicwriter`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("atomicwriter version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
