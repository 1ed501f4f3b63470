package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/user/vidcut-cli/cut"
	"github.com/user/vidcut-cli/db"
	"github.com/user/vidcut-cli/deps"
	"github.com/user/vidcut-cli/logging"
	"github.com/user/vidcut-cli/media"
	"github.com/user/vidcut-cli/playback"
	"github.com/user/vidcut-cli/tui/forms"
)

const probeTimeout = 15 * time.Second

var cutCmd = &cobra.Command{
	Use:   "cut <video-file>",
	Short: "Export a clip without re-encoding",
	Long: `Resolve a cut window from two of start, duration and end and write it
next to the source as <name><suffix><ext> using ffmpeg stream copy.

Start and end accept a frame number or a timecode (m:ss, h:mm:ss.ms).
Examples:
  vidcut cut match.mp4 --start 0:30 --duration 10
  vidcut cut match.mp4 --mode start+end --start 900 --end 1200
  vidcut cut match.mp4 --mode duration+end --duration 2 --unit minutes --end 5:00`,
	Args: cobra.ExactArgs(1),
	RunE: runCut,
}

func init() {
	f := cutCmd.Flags()
	f.String("mode", cut.ModeStartDuration.String(), "cut mode: start+duration, duration+end, start+end")
	f.String("start", "", "start frame or timecode")
	f.String("duration", "", "duration in --unit")
	f.String("unit", cut.UnitSeconds.String(), "duration unit: seconds, frames, minutes")
	f.String("end", "", "end frame or timecode")
	f.String("suffix", "", "output suffix (default from VIDCUT_SUFFIX or _cut)")
	f.Bool("accurate", false, "seek after opening the input (slower, closer to the requested start)")
	f.BoolP("yes", "y", false, "overwrite an existing output without asking")

	rootCmd.AddCommand(cutCmd)
}

func runCut(cmd *cobra.Command, args []string) error {
	source, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(source); err != nil {
		return fmt.Errorf("video file not found: %s", source)
	}

	flags := cmd.Flags()
	modeStr, _ := flags.GetString("mode")
	unitStr, _ := flags.GetString("unit")
	start, _ := flags.GetString("start")
	duration, _ := flags.GetString("duration")
	end, _ := flags.GetString("end")
	suffix, _ := flags.GetString("suffix")
	accurate, _ := flags.GetBool("accurate")
	yes, _ := flags.GetBool("yes")

	mode, err := cut.ParseMode(modeStr)
	if err != nil {
		return err
	}
	unit, err := cut.ParseUnit(unitStr)
	if err != nil {
		return err
	}
	if suffix == "" {
		suffix = settings.Suffix
	}

	info, err := probe(cmd.Context(), source)
	if err != nil {
		return err
	}
	fps := info.FPS
	if fps <= 0 {
		fps = playback.DefaultFPS
	}

	in, err := cut.ParseInput(mode, cut.Text{Start: start, Duration: duration, End: end}, unit, fps)
	if err != nil {
		return err
	}
	window, err := cut.Resolve(in, fps, info.Frames)
	if err != nil {
		return err
	}

	req := cut.Request{Source: source, Window: window, FPS: fps, Suffix: suffix}
	if accurate {
		req.Seek = cut.SeekAccurate
	}

	output := cut.OutputPath(source, suffix)
	if _, err := os.Stat(output); err == nil {
		ok, err := confirmOverwrite(output, yes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Export aborted.")
			return nil
		}
		req.Overwrite = true
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var progress func(float64)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		progress = func(f float64) {
			fmt.Printf("\rExporting %s ... %3.0f%%", filepath.Base(output), f*100)
		}
	}

	startSec, durSec := window.Seconds(fps)
	fmt.Printf("Cutting %s: frames %d-%d (%.3fs + %.3fs)\n",
		filepath.Base(source), window.StartFrame, window.EndFrame(), startSec, durSec)

	x := cut.NewExporter(settings.FfmpegBin, logging.WithComponent("cut"))
	res, err := x.Export(ctx, req, progress)
	if progress != nil {
		fmt.Println()
	}
	if err != nil {
		return exportError(err)
	}

	recordExport(req, res)
	fmt.Printf("Saved: %s (%s in %s)\n", res.Output, humanize.Bytes(uint64(res.Size)), res.Elapsed.Round(time.Millisecond))
	return nil
}

func probe(ctx context.Context, source string) (media.Info, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ffprobe, err := deps.FindFfprobe(settings.FfprobeBin)
	if err != nil {
		return media.Info{}, exportError(err)
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	return media.Probe(ctx, ffprobe, source)
}

// confirmOverwrite decides whether an existing output may be replaced:
// --yes always may, a terminal user is asked, anything else is refused.
func confirmOverwrite(output string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false, fmt.Errorf("%w: %s (use --yes to overwrite)", cut.ErrOutputExists, output)
	}
	var ok bool
	if err := forms.NewConfirmOverwriteForm(output, &ok).Run(); err != nil {
		return false, fmt.Errorf("confirm failed: %w", err)
	}
	return ok, nil
}

// exportError adds remediation text and encoder output to err.
func exportError(err error) error {
	var depErr *deps.DependencyError
	var encErr *cut.EncoderError
	switch {
	case errors.As(err, &depErr):
		return fmt.Errorf("%w\n\n%s", err, depErr.Hint())
	case errors.As(err, &encErr) && encErr.Output != "":
		return fmt.Errorf("%w\n%s", err, encErr.Output)
	}
	return err
}

// recordExport stores a finished export when a session database is set.
func recordExport(req cut.Request, res cut.Result) {
	database, err := openDB()
	if err != nil || database == nil {
		return
	}
	defer database.Close()

	logger := logging.WithComponent("cmd")
	_, err = db.InsertExport(database, db.Export{
		SourcePath:     req.Source,
		OutputPath:     res.Output,
		StartFrame:     req.Window.StartFrame,
		DurationFrames: req.Window.DurationFrames,
		FPS:            req.FPS,
		SeekMode:       req.Seek.String(),
		SizeBytes:      res.Size,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("recording export")
	}
}
