package media

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os/exec"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/user/vidcut-cli/deps"
	"github.com/user/vidcut-cli/playback"
)

const probeTimeout = 15 * time.Second

// Binaries holds optional overrides for the external tools.
type Binaries struct {
	Ffmpeg  string
	Ffprobe string
}

// Decoder streams scaled rgb24 frames out of ffmpeg. It implements
// playback.Source. A Decoder is used from one goroutine at a time.
type Decoder struct {
	bin    string
	path   string
	info   Info
	width  int
	height int
	logger zerolog.Logger

	cmd    *exec.Cmd
	stdout io.ReadCloser
	r      *bufio.Reader
	buf    []byte
	pos    int
	dirty  bool
}

var _ playback.Source = (*Decoder)(nil)

// NewDecoder prepares a decoder for path. No process is started until the
// first Read.
func NewDecoder(ffmpegBin, path string, info Info, previewWidth int, logger zerolog.Logger) *Decoder {
	w, h := PreviewSize(info.Width, info.Height, previewWidth)
	return &Decoder{
		bin:    ffmpegBin,
		path:   path,
		info:   info,
		width:  w,
		height: h,
		logger: logger,
		buf:    make([]byte, w*h*3),
		dirty:  true,
	}
}

// NewOpener returns a playback.Opener that probes with ffprobe and decodes
// with ffmpeg, both resolved through deps.
func NewOpener(bins Binaries, previewWidth int, logger zerolog.Logger) playback.Opener {
	return func(path string) (playback.Source, error) {
		ffprobe, err := deps.FindFfprobe(bins.Ffprobe)
		if err != nil {
			return nil, err
		}
		ffmpeg, err := deps.FindFfmpeg(bins.Ffmpeg)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		info, err := Probe(ctx, ffprobe, path)
		if err != nil {
			return nil, err
		}
		if info.Width <= 0 || info.Height <= 0 {
			return nil, fmt.Errorf("%w: no frame size", ErrNoVideoStream)
		}

		logger.Debug().
			Str("path", path).
			Str("codec", info.Codec).
			Int("width", info.Width).
			Int("height", info.Height).
			Float64("fps", info.FPS).
			Int("frames", info.Frames).
			Msg("probed video")
		return NewDecoder(ffmpeg, path, info, previewWidth, logger), nil
	}
}

// Info returns the probed metadata.
func (d *Decoder) Info() Info { return d.info }

// Size returns the dimensions of decoded frames.
func (d *Decoder) Size() (int, int) { return d.width, d.height }

func (d *Decoder) FPS() float64 { return d.info.FPS }

func (d *Decoder) FrameCount() int { return d.info.Frames }

// Seek repositions the decoder. The ffmpeg process is restarted on the
// next Read unless index is already the next frame.
func (d *Decoder) Seek(index int) error {
	if index < 0 {
		return fmt.Errorf("seek to negative frame %d", index)
	}
	if index == d.pos && d.cmd != nil && !d.dirty {
		return nil
	}
	d.stop()
	d.pos = index
	d.dirty = true
	return nil
}

// Read returns the next frame or io.EOF once ffmpeg has no more output.
func (d *Decoder) Read() (*image.RGBA, error) {
	if d.dirty {
		if err := d.start(); err != nil {
			return nil, err
		}
	}
	if _, err := io.ReadFull(d.r, d.buf); err != nil {
		d.stop()
		d.dirty = true
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	d.pos++
	return rgbToRGBA(d.buf, d.width, d.height), nil
}

// Close kills any running ffmpeg process.
func (d *Decoder) Close() error {
	d.stop()
	return nil
}

func (d *Decoder) start() error {
	fps := playback.EffectiveFPS(d.info.FPS)
	args := DecodeArgs(d.path, float64(d.pos)/fps, d.width, d.height)

	cmd := exec.Command(d.bin, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", deps.ErrEncoderUnavailable, err)
	}

	d.logger.Debug().Int("frame", d.pos).Strs("args", args).Msg("decoder started")
	d.cmd = cmd
	d.stdout = stdout
	d.r = bufio.NewReaderSize(stdout, len(d.buf))
	d.dirty = false
	return nil
}

func (d *Decoder) stop() {
	if d.cmd == nil {
		return
	}
	if d.cmd.Process != nil {
		_ = d.cmd.Process.Kill()
	}
	_ = d.stdout.Close()
	_ = d.cmd.Wait()
	d.cmd, d.stdout, d.r = nil, nil, nil
}

// DecodeArgs builds the ffmpeg arguments that stream rgb24 frames of
// width x height starting at seconds.
func DecodeArgs(path string, seconds float64, width, height int) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-ss", strconv.FormatFloat(seconds, 'f', 3, 64),
		"-i", path,
		"-an", "-sn",
		"-vf", fmt.Sprintf("scale=%d:%d", width, height),
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	}
}

// PreviewSize scales srcW x srcH down to at most maxWidth columns keeping
// the aspect ratio. Both results are even and at least 2.
func PreviewSize(srcW, srcH, maxWidth int) (int, int) {
	if maxWidth < 2 {
		maxWidth = 2
	}
	if srcW <= 0 || srcH <= 0 {
		return even(maxWidth), even(maxWidth * 9 / 16)
	}
	w := srcW
	if w > maxWidth {
		w = maxWidth
	}
	h := int(math.Round(float64(srcH) * float64(w) / float64(srcW)))
	return even(w), even(h)
}

func even(v int) int {
	v -= v % 2
	if v < 2 {
		return 2
	}
	return v
}

func rgbToRGBA(src []byte, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, j := 0, 0; i+2 < len(src) && j+3 < len(img.Pix); i, j = i+3, j+4 {
		img.Pix[j] = src[i]
		img.Pix[j+1] = src[i+1]
		img.Pix[j+2] = src[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}
