package media

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRate(t *testing.T) {
	assert.InDelta(t, 29.97, parseRate("30000/1001"), 0.001)
	assert.Equal(t, 25.0, parseRate("25/1"))
	assert.Equal(t, 24.0, parseRate("24"))
	assert.Equal(t, 0.0, parseRate("0/0"))
	assert.Equal(t, 0.0, parseRate(""))
	assert.Equal(t, 0.0, parseRate("abc/1"))
}

func TestParseProbe(t *testing.T) {
	out := []byte(`{
		"streams": [{
			"codec_name": "h264",
			"width": 1920,
			"height": 1080,
			"r_frame_rate": "30000/1001",
			"avg_frame_rate": "30000/1001",
			"nb_frames": "1798",
			"duration": "60.000000"
		}],
		"format": {"duration": "60.021000"}
	}`)

	info, err := parseProbe(out)
	require.NoError(t, err)
	assert.Equal(t, 1920, info.Width)
	assert.Equal(t, 1080, info.Height)
	assert.Equal(t, "h264", info.Codec)
	assert.InDelta(t, 29.97, info.FPS, 0.001)
	assert.Equal(t, 1798, info.Frames)
	assert.Equal(t, 60.0, info.Duration)
}

func TestParseProbe_FrameCountFallback(t *testing.T) {
	// Matroska streams carry neither nb_frames nor a stream duration.
	out := []byte(`{
		"streams": [{"codec_name": "vp9", "width": 640, "height": 360, "r_frame_rate": "0/0", "avg_frame_rate": "25/1"}],
		"format": {"duration": "10.000000"}
	}`)

	info, err := parseProbe(out)
	require.NoError(t, err)
	assert.Equal(t, 25.0, info.FPS)
	assert.Equal(t, 10.0, info.Duration)
	assert.Equal(t, 250, info.Frames)
}

func TestParseProbe_Errors(t *testing.T) {
	_, err := parseProbe([]byte(`{"streams": []}`))
	assert.ErrorIs(t, err, ErrNoVideoStream)

	_, err = parseProbe([]byte(`not json`))
	assert.Error(t, err)
}

func TestPreviewSize(t *testing.T) {
	tests := []struct {
		srcW, srcH, max int
		w, h            int
	}{
		{1920, 1080, 160, 160, 90},
		{1280, 720, 1280, 1280, 720},
		{320, 240, 640, 320, 240},
		{1080, 1920, 100, 100, 178},
		{0, 0, 160, 160, 90},
		{1921, 1081, 1921, 1920, 1080},
	}
	for _, tt := range tests {
		w, h := PreviewSize(tt.srcW, tt.srcH, tt.max)
		assert.Equal(t, tt.w, w, "%dx%d@%d", tt.srcW, tt.srcH, tt.max)
		assert.Equal(t, tt.h, h, "%dx%d@%d", tt.srcW, tt.srcH, tt.max)
	}
}

func TestDecodeArgs(t *testing.T) {
	args := DecodeArgs("in.mkv", 2.5, 160, 90)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-ss 2.500 -i in.mkv")
	assert.Contains(t, joined, "-vf scale=160:90")
	assert.Contains(t, joined, "-f rawvideo -pix_fmt rgb24")
	assert.Equal(t, "-", args[len(args)-1])
}

func TestRGBToRGBA(t *testing.T) {
	img := rgbToRGBA([]byte{1, 2, 3, 4, 5, 6}, 2, 1)
	assert.Equal(t, []byte{1, 2, 3, 255, 4, 5, 6, 255}, img.Pix)
}

func fakeFfmpeg(t *testing.T, frames, frameBytes int) (bin, log string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script decoders need a POSIX shell")
	}
	dir := t.TempDir()
	bin = filepath.Join(dir, "ffmpeg")
	log = filepath.Join(dir, "calls.log")
	script := "#!/bin/sh\n" +
		"echo \"$@\" >> '" + log + "'\n" +
		"head -c " + strconv.Itoa(frames*frameBytes) + " /dev/zero\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin, log
}

func TestDecoder_ReadsUntilEOF(t *testing.T) {
	bin, log := fakeFfmpeg(t, 2, 2*2*3)
	d := NewDecoder(bin, "clip.mp4", Info{Width: 2, Height: 2, FPS: 10, Frames: 2}, 2, zerolog.Nop())
	defer d.Close()

	w, h := d.Size()
	require.Equal(t, 2, w)
	require.Equal(t, 2, h)

	for i := 0; i < 2; i++ {
		img, err := d.Read()
		require.NoError(t, err)
		assert.Equal(t, 2, img.Bounds().Dx())
		assert.Equal(t, uint8(255), img.Pix[3])
	}
	_, err := d.Read()
	assert.ErrorIs(t, err, io.EOF)

	calls, err := os.ReadFile(log)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(calls), "\n"))
	assert.Contains(t, string(calls), "-ss 0.000")
}

func TestDecoder_SeekRestartsAtTimestamp(t *testing.T) {
	bin, log := fakeFfmpeg(t, 3, 2*2*3)
	d := NewDecoder(bin, "clip.mp4", Info{Width: 2, Height: 2, FPS: 10, Frames: 100}, 2, zerolog.Nop())
	defer d.Close()

	_, err := d.Read()
	require.NoError(t, err)

	// Seeking to the frame that comes next keeps the running process.
	require.NoError(t, d.Seek(1))
	_, err = d.Read()
	require.NoError(t, err)

	require.NoError(t, d.Seek(25))
	_, err = d.Read()
	require.NoError(t, err)

	calls, err := os.ReadFile(log)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(calls)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "-ss 0.000")
	assert.Contains(t, lines[1], "-ss 2.500")

	assert.Error(t, d.Seek(-1))
}

func TestDecoder_SeekWithUnusableRateUsesDefault(t *testing.T) {
	bin, log := fakeFfmpeg(t, 1, 2*2*3)
	d := NewDecoder(bin, "clip.mp4", Info{Width: 2, Height: 2, FPS: 1e-4, Frames: 100}, 2, zerolog.Nop())
	defer d.Close()

	require.NoError(t, d.Seek(60))
	_, err := d.Read()
	require.NoError(t, err)

	calls, err := os.ReadFile(log)
	require.NoError(t, err)
	assert.Contains(t, string(calls), "-ss 2.000")
}
