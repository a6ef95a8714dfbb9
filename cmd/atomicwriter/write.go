package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/atomicwriter/pkg/config"
	"github.com/arthur-debert/atomicwriter/pkg/writer"
)

var (
	flagOverwrite bool
	flagDirPerms  string
	flagFilePerms string
	flagUser      string
	flagGroup     string
)

var writeCmd = &cobra.Command{
	Use:   "write DESTINATION",
	Short: "Atomically write stdin to a destination path",
	Long: `Read content from stdin and atomically publish it at DESTINATION.

Missing parent directories are created with the configured directory
permissions; the destination receives the configured file permissions and
ownership. Without --overwrite the command fails if the destination already
exists. Flags override the defaults loaded from the config file and
ATOMICWRITER_* environment variables.`,
	Example: `  echo "hello" | atomicwriter write /tmp/x/y/file.txt
  cat report.pdf | atomicwriter write --overwrite --file-perms 644 ~/reports/latest.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(cmd)
		if err != nil {
			return err
		}

		destination := args[0]
		err = writer.Write(destination, opts, func(staging string) error {
			f, err := os.OpenFile(staging, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, cmd.InOrStdin()); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), destination)
		return nil
	},
}

// resolveOptions layers command-line flags over the configured defaults.
func resolveOptions(cmd *cobra.Command) (writer.Options, error) {
	defaults, err := config.Load()
	if err != nil {
		return writer.Options{}, err
	}
	opts, err := defaults.Options()
	if err != nil {
		return writer.Options{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("overwrite") {
		opts.Overwrite = flagOverwrite
	}
	if flags.Changed("dir-perms") {
		if opts.DirPerms, err = config.ParsePerms(flagDirPerms); err != nil {
			return opts, fmt.Errorf("invalid --dir-perms %q: %w", flagDirPerms, err)
		}
	}
	if flags.Changed("file-perms") {
		if opts.FilePerms, err = config.ParsePerms(flagFilePerms); err != nil {
			return opts, fmt.Errorf("invalid --file-perms %q: %w", flagFilePerms, err)
		}
	}
	if flags.Changed("user") {
		opts.User = flagUser
	}
	if flags.Changed("group") {
		opts.Group = flagGroup
	}
	return opts, nil
}

func init() {
	writeCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "Replace the destination if it already exists")
	writeCmd.Flags().StringVar(&flagDirPerms, "dir-perms", "", "Octal permissions for created parent directories (default 750)")
	writeCmd.Flags().StringVar(&flagFilePerms, "file-perms", "", "Octal permissions for the destination file (default 600)")
	writeCmd.Flags().StringVar(&flagUser, "user", "", "Owner of created directories and the destination file")
	writeCmd.Flags().StringVar(&flagGroup, "group", "", "Group of created directories and the destination file")
}
