package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/vidcut-cli/deps"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that ffmpeg and ffprobe can be found next to vidcut or on the PATH.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true
		check := func(name string, find func(string) (string, error), override string) {
			path, err := find(override)
			if err != nil {
				fmt.Printf("✗ %s: NOT FOUND\n", name)
				var depErr *deps.DependencyError
				if errors.As(err, &depErr) {
					fmt.Printf("  Install from: %s\n", depErr.InstallURL)
				}
				allGood = false
				return
			}
			fmt.Printf("✓ %s: %s\n", name, path)
		}
		check("ffmpeg", deps.FindFfmpeg, settings.FfmpegBin)
		check("ffprobe", deps.FindFfprobe, settings.FfprobeBin)

		fmt.Println()
		if allGood {
			fmt.Println("All dependencies are installed!")
		} else {
			fmt.Println("Some dependencies are missing. Please install them to use all features.")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
