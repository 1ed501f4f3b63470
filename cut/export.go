package cut

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/user/vidcut-cli/deps"
)

// DefaultSuffix names the exported clip when the user leaves the suffix empty.
const DefaultSuffix = "_cut"

// maxDiagnostic is how much of the encoder's stderr is kept for error reports.
const maxDiagnostic = 8000

var (
	// ErrEncoderUnavailable matches a missing or unlaunchable encoder.
	ErrEncoderUnavailable = deps.ErrEncoderUnavailable
	// ErrOutputExists is returned when the destination exists and overwrite
	// was not confirmed.
	ErrOutputExists = errors.New("output file already exists")
	// ErrExportCanceled is returned when the context ends the encoder early.
	ErrExportCanceled = errors.New("export canceled")
)

// SeekMode picks where the time seek goes on the encoder command line.
type SeekMode int

const (
	// SeekFast seeks before the input: quick, snapped to a keyframe.
	SeekFast SeekMode = iota
	// SeekAccurate seeks after the input: slower, closer to the requested frame.
	SeekAccurate
)

func (s SeekMode) String() string {
	if s == SeekAccurate {
		return "accurate"
	}
	return "fast"
}

// Toggle flips between fast and accurate.
func (s SeekMode) Toggle() SeekMode {
	if s == SeekAccurate {
		return SeekFast
	}
	return SeekAccurate
}

// ParseSeekMode accepts "fast" or "accurate" (also "slow").
func ParseSeekMode(s string) (SeekMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fast":
		return SeekFast, nil
	case "accurate", "slow":
		return SeekAccurate, nil
	}
	return 0, fmt.Errorf("unknown seek mode %q", s)
}

// EncoderError reports a non-zero encoder exit with its diagnostic output.
type EncoderError struct {
	ExitCode int
	Output   string
}

func (e *EncoderError) Error() string {
	return fmt.Sprintf("ffmpeg exited with status %d", e.ExitCode)
}

// Request describes one export.
type Request struct {
	Source    string
	Window    Window
	FPS       float64
	Seek      SeekMode
	Suffix    string
	Overwrite bool
}

// Result describes a finished export.
type Result struct {
	Output  string
	Size    int64
	Elapsed time.Duration
}

// unsafeChars matches characters not safe in a file name: / \ : * ? < > | and whitespace
var unsafeChars = regexp.MustCompile(`[/\\:*?<>|\s]`)

// OutputPath returns <stem><suffix><ext> next to source. Unsafe characters
// in suffix become underscores so the clip never leaves the source folder.
func OutputPath(source, suffix string) string {
	suffix = strings.TrimSpace(suffix)
	if suffix == "" {
		suffix = DefaultSuffix
	}
	suffix = unsafeChars.ReplaceAllString(suffix, "_")
	dir := filepath.Dir(source)
	base := filepath.Base(source)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+suffix+ext)
}

// Args builds the stream-copy trim command line (without the binary).
func Args(req Request, output string) []string {
	startSec, durSec := req.Window.Seconds(req.FPS)
	ss := strconv.FormatFloat(startSec, 'f', 3, 64)
	t := strconv.FormatFloat(durSec, 'f', 3, 64)

	if req.Seek == SeekAccurate {
		return []string{"-y", "-i", req.Source, "-ss", ss, "-t", t, "-c", "copy", output}
	}
	return []string{"-y", "-ss", ss, "-i", req.Source, "-t", t, "-c", "copy", output}
}

// Exporter runs ffmpeg to produce clips.
type Exporter struct {
	// FindEncoder locates the ffmpeg binary.
	FindEncoder func() (string, error)
	Logger      zerolog.Logger
}

// NewExporter returns an Exporter that resolves ffmpeg through deps,
// honouring override when it is set.
func NewExporter(override string, logger zerolog.Logger) *Exporter {
	return &Exporter{
		FindEncoder: func() (string, error) { return deps.FindFfmpeg(override) },
		Logger:      logger,
	}
}

// Export trims req.Window out of req.Source. progress, when non-nil, is
// called with the completed fraction in [0, 1] as ffmpeg reports it.
func (x *Exporter) Export(ctx context.Context, req Request, progress func(float64)) (Result, error) {
	if req.FPS <= 0 {
		return Result{}, ErrInvalidFPS
	}
	if req.Window.DurationFrames <= 0 || req.Window.StartFrame < 0 {
		return Result{}, ErrInvalidRange
	}

	bin, err := x.FindEncoder()
	if err != nil {
		return Result{}, err
	}

	out := OutputPath(req.Source, req.Suffix)
	if _, err := os.Stat(out); err == nil && !req.Overwrite {
		return Result{}, fmt.Errorf("%w: %s", ErrOutputExists, out)
	}

	args := Args(req, out)
	if progress != nil {
		args = append([]string{"-progress", "pipe:1", "-nostats"}, args...)
	}

	logger := x.Logger.With().Str("source", req.Source).Str("output", out).Logger()
	logger.Info().
		Int("start_frame", req.Window.StartFrame).
		Int("duration_frames", req.Window.DurationFrames).
		Str("seek", req.Seek.String()).
		Strs("args", args).
		Msg("starting export")

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.WaitDelay = 2 * time.Second
	stderr := &tailBuffer{max: maxDiagnostic}
	cmd.Stderr = stderr

	var stdout io.ReadCloser
	if progress != nil {
		stdout, err = cmd.StdoutPipe()
		if err != nil {
			return Result{}, fmt.Errorf("ffmpeg stdout: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrExportCanceled, err)
	}
	started := time.Now()
	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEncoderUnavailable, err)
	}

	if stdout != nil {
		_, durSec := req.Window.Seconds(req.FPS)
		readProgress(stdout, durSec, progress)
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			logger.Info().Msg("export canceled")
			return Result{}, fmt.Errorf("%w: %v", ErrExportCanceled, ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Warn().Int("exit_code", exitErr.ExitCode()).Msg("ffmpeg failed")
			return Result{}, &EncoderError{ExitCode: exitErr.ExitCode(), Output: stderr.String()}
		}
		return Result{}, fmt.Errorf("ffmpeg: %w", err)
	}

	res := Result{Output: out, Elapsed: time.Since(started)}
	if info, err := os.Stat(out); err == nil {
		res.Size = info.Size()
	}
	logger.Info().Int64("bytes", res.Size).Dur("elapsed", res.Elapsed).Msg("export finished")
	return res, nil
}

// readProgress consumes ffmpeg -progress key=value lines until EOF.
func readProgress(r io.Reader, durationSec float64, progress func(float64)) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "out_time_us", "out_time_ms":
			// Both keys carry microseconds.
			us, err := strconv.ParseInt(value, 10, 64)
			if err != nil || durationSec <= 0 {
				continue
			}
			progress(clampFraction(float64(us) / 1e6 / durationSec))
		case "progress":
			if value == "end" {
				progress(1)
			}
		}
	}
	_, _ = io.Copy(io.Discard, r)
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	buf []byte
	max int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}
