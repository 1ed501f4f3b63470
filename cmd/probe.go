package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/user/vidcut-cli/pkg/timeutil"
)

var probeCmd = &cobra.Command{
	Use:   "probe <video-file>",
	Short: "Print the frame rate, frame count and duration of a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
		info, err := probe(cmd.Context(), source)
		if err != nil {
			return err
		}

		fmt.Printf("File:     %s\n", filepath.Base(source))
		fmt.Printf("Codec:    %s\n", info.Codec)
		fmt.Printf("Size:     %dx%d\n", info.Width, info.Height)
		fmt.Printf("FPS:      %.3f\n", info.FPS)
		fmt.Printf("Frames:   %d\n", info.Frames)
		fmt.Printf("Duration: %s\n", timeutil.FormatClock(info.Duration))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
