package cmd

import (
	"fmt"
	"io"

	cobra "github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Display version information for the assistant host.`,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func printVersion(w io.Writer) {
	info := GetVersionInfo()
	_, _ = fmt.Fprintf(w, "assistant %s\n", info)
	_, _ = fmt.Fprintf(w, "commit: %s\n", info.Commit)
	_, _ = fmt.Fprintf(w, "built at: %s\n", info.Date)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
