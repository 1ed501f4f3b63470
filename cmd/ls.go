package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/user/vidcut-cli/library"
)

var lsCmd = &cobra.Command{
	Use:   "ls [folder]",
	Short: "List the videos in a folder",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		dir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}

		entries, err := library.List(dir)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Printf("No videos in %s\n", dir)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\n", e.Name, humanize.Bytes(uint64(e.Size)))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
