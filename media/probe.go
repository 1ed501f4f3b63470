// Package media reads video metadata with ffprobe and decodes preview
// frames through an ffmpeg rawvideo pipe.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoVideoStream is returned when the file has no video stream.
var ErrNoVideoStream = errors.New("no video stream")

// Info is the probed metadata of the first video stream.
type Info struct {
	Width    int
	Height   int
	Codec    string
	FPS      float64
	Frames   int
	Duration float64 // seconds
}

// Probe runs ffprobe against path.
func Probe(ctx context.Context, ffprobeBin, path string) (Info, error) {
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}

	cmd := exec.CommandContext(ctx, ffprobeBin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name,width,height,r_frame_rate,avg_frame_rate,nb_frames,duration:format=duration",
		"-print_format", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Info{}, fmt.Errorf("ffprobe failed (exit %d): %s",
				exitErr.ExitCode(), truncateForLog(strings.TrimSpace(string(exitErr.Stderr)), 500))
		}
		return Info{}, fmt.Errorf("ffprobe: %w", err)
	}
	return parseProbe(out)
}

func parseProbe(out []byte) (Info, error) {
	var probeData struct {
		Streams []struct {
			CodecName    string `json:"codec_name"`
			Width        int    `json:"width"`
			Height       int    `json:"height"`
			RFrameRate   string `json:"r_frame_rate"`
			AvgFrameRate string `json:"avg_frame_rate"`
			NbFrames     string `json:"nb_frames"`
			Duration     string `json:"duration"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out, &probeData); err != nil {
		return Info{}, fmt.Errorf("ffprobe JSON parse failed: %w", err)
	}
	if len(probeData.Streams) == 0 {
		return Info{}, ErrNoVideoStream
	}

	s := probeData.Streams[0]
	info := Info{Width: s.Width, Height: s.Height, Codec: s.CodecName}

	info.FPS = parseRate(s.RFrameRate)
	if info.FPS <= 0 {
		info.FPS = parseRate(s.AvgFrameRate)
	}

	info.Duration = parseSeconds(s.Duration)
	if info.Duration <= 0 {
		info.Duration = parseSeconds(probeData.Format.Duration)
	}

	if n, err := strconv.Atoi(strings.TrimSpace(s.NbFrames)); err == nil && n > 0 {
		info.Frames = n
	} else if info.FPS > 0 && info.Duration > 0 {
		info.Frames = int(math.Round(info.Duration * info.FPS))
	}
	return info, nil
}

// parseRate parses an ffprobe rational such as "30000/1001". It returns 0
// for "0/0" and anything unparseable.
func parseRate(s string) float64 {
	s = strings.TrimSpace(s)
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func truncateForLog(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
