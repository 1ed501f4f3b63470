package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/user/vidcut-cli/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent exports",
	Long:  `List the most recent exports recorded in the session database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		database, err := openDB()
		if err != nil {
			return err
		}
		if database == nil {
			return errNoDatabase
		}
		defer database.Close()

		exports, err := db.SelectRecentExports(database, limit)
		if err != nil {
			return fmt.Errorf("failed to query exports: %w", err)
		}
		if len(exports) == 0 {
			fmt.Println("No exports recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tSOURCE\tOUTPUT\tSTART\tFRAMES\tSEEK\tSIZE")
		for _, e := range exports {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
				humanize.Time(e.CreatedAt),
				filepath.Base(e.SourcePath),
				filepath.Base(e.OutputPath),
				e.StartFrame,
				e.DurationFrames,
				e.SeekMode,
				humanize.Bytes(uint64(e.SizeBytes)),
			)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of exports to show")
	rootCmd.AddCommand(historyCmd)
}
