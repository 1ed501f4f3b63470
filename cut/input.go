package cut

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/user/vidcut-cli/pkg/timeutil"
)

// ErrInvalidNumber is returned when a field holds text that is not a number.
var ErrInvalidNumber = errors.New("invalid number")

// Text is the raw text of the cut form.
type Text struct {
	Start    string
	Duration string
	End      string
}

// ParseInput turns form text into an Input for mode. Only the fields the mode
// uses are parsed; empty fields stay nil so Resolve reports them missing.
// Start and End accept a frame index or a timecode such as 1:02.5, which is
// converted to the nearest frame at fps.
func ParseInput(mode Mode, text Text, unit Unit, fps float64) (Input, error) {
	in := Input{Mode: mode, Unit: unit}
	active := mode.Fields()

	if active.Start {
		v, err := parseFrame(text.Start, fps)
		if err != nil {
			return Input{}, fmt.Errorf("start: %w", err)
		}
		in.Start = v
	}
	if active.Duration {
		v, err := parseDuration(text.Duration)
		if err != nil {
			return Input{}, fmt.Errorf("duration: %w", err)
		}
		in.Duration = v
	}
	if active.End {
		v, err := parseFrame(text.End, fps)
		if err != nil {
			return Input{}, fmt.Errorf("end: %w", err)
		}
		in.End = v
	}
	return in, nil
}

func parseFrame(s string, fps float64) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.Contains(s, ":") {
		secs, err := timeutil.ParseTimeToSeconds(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
		}
		if fps <= 0 {
			return nil, ErrInvalidFPS
		}
		f := int(math.Round(secs * fps))
		return &f, nil
	}
	f, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return &f, nil
}

func parseDuration(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return &v, nil
}
