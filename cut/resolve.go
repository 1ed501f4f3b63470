// Package cut resolves a clip window from two of {start, duration, end} and
// exports it with an ffmpeg stream copy.
package cut

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrMissingFields is returned when a field required by the mode is empty.
	ErrMissingFields = errors.New("required fields missing")
	// ErrEndNotAfterStart is returned in Start+End mode when end <= start.
	ErrEndNotAfterStart = errors.New("End must exceed Start")
	// ErrNonPositiveDuration is returned when the duration converts to <= 0 frames.
	ErrNonPositiveDuration = errors.New("duration must be positive")
	// ErrInvalidRange is returned when the clamped window is empty.
	ErrInvalidRange = errors.New("invalid range after clamp")
	// ErrInvalidFPS is returned when the frame rate is not positive.
	ErrInvalidFPS = errors.New("frame rate must be positive")
	// ErrUnknownMode is returned for an unrecognised mode.
	ErrUnknownMode = errors.New("unknown cut mode")
)

// Mode selects which two quantities the user supplies.
type Mode int

const (
	// ModeStartDuration derives end from start and duration.
	ModeStartDuration Mode = iota
	// ModeDurationEnd derives start from duration and end.
	ModeDurationEnd
	// ModeStartEnd derives duration from start and end.
	ModeStartEnd
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeStartDuration, ModeDurationEnd, ModeStartEnd}

// Fields reports which inputs a mode reads.
type Fields struct {
	Start    bool
	Duration bool
	End      bool
}

// Fields returns the active inputs for the mode. Exactly two are true for
// every known mode.
func (m Mode) Fields() Fields {
	switch m {
	case ModeStartDuration:
		return Fields{Start: true, Duration: true}
	case ModeDurationEnd:
		return Fields{Duration: true, End: true}
	case ModeStartEnd:
		return Fields{Start: true, End: true}
	}
	return Fields{}
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	return Modes[(int(m)+1)%len(Modes)]
}

func (m Mode) String() string {
	switch m {
	case ModeStartDuration:
		return "start+duration"
	case ModeDurationEnd:
		return "duration+end"
	case ModeStartEnd:
		return "start+end"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts the String form or a short alias (sd, de, se).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start+duration", "sd", "start-duration":
		return ModeStartDuration, nil
	case "duration+end", "de", "duration-end":
		return ModeDurationEnd, nil
	case "start+end", "se", "start-end":
		return ModeStartEnd, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Unit is the unit of the duration field.
type Unit int

const (
	UnitSeconds Unit = iota
	UnitFrames
	UnitMinutes
)

// Units lists every unit in display order.
var Units = []Unit{UnitSeconds, UnitFrames, UnitMinutes}

// Next returns the unit after u, wrapping around.
func (u Unit) Next() Unit {
	return Units[(int(u)+1)%len(Units)]
}

func (u Unit) String() string {
	switch u {
	case UnitSeconds:
		return "seconds"
	case UnitFrames:
		return "frames"
	case UnitMinutes:
		return "minutes"
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// ParseUnit accepts seconds/frames/minutes and their common abbreviations.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seconds", "second", "sec", "s":
		return UnitSeconds, nil
	case "frames", "frame", "f":
		return UnitFrames, nil
	case "minutes", "minute", "min", "m":
		return UnitMinutes, nil
	}
	return 0, fmt.Errorf("unknown duration unit %q", s)
}

// ToFrames converts a duration in this unit to a whole number of frames,
// rounding to the nearest integer.
func (u Unit) ToFrames(value, fps float64) int {
	switch u {
	case UnitSeconds:
		return int(math.Round(value * fps))
	case UnitMinutes:
		return int(math.Round(value * 60 * fps))
	default:
		return int(math.Round(value))
	}
}

// Input holds the raw cut parameters. Nil means the field is empty.
// Fields the mode does not use are ignored.
type Input struct {
	Mode     Mode
	Start    *int
	Duration *float64
	Unit     Unit
	End      *int
}

// Window is a resolved clip in frames.
type Window struct {
	StartFrame     int
	DurationFrames int
}

// EndFrame returns the exclusive end frame.
func (w Window) EndFrame() int {
	return w.StartFrame + w.DurationFrames
}

// Seconds returns the start and duration in seconds at fps.
func (w Window) Seconds(fps float64) (start, duration float64) {
	if fps <= 0 {
		return 0, 0
	}
	return float64(w.StartFrame) / fps, float64(w.DurationFrames) / fps
}

// Resolve computes the clip window for in. The derived quantity is computed
// from the two active ones, then both endpoints are clamped into
// [0, totalFrames-1].
func Resolve(in Input, fps float64, totalFrames int) (Window, error) {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return Window{}, ErrInvalidFPS
	}

	var start, end int
	switch in.Mode {
	case ModeStartDuration:
		if in.Start == nil || in.Duration == nil {
			return Window{}, ErrMissingFields
		}
		d := in.Unit.ToFrames(*in.Duration, fps)
		if d <= 0 {
			return Window{}, ErrNonPositiveDuration
		}
		start = *in.Start
		end = start + d
	case ModeDurationEnd:
		if in.Duration == nil || in.End == nil {
			return Window{}, ErrMissingFields
		}
		d := in.Unit.ToFrames(*in.Duration, fps)
		if d <= 0 {
			return Window{}, ErrNonPositiveDuration
		}
		end = *in.End
		start = end - d
	case ModeStartEnd:
		if in.Start == nil || in.End == nil {
			return Window{}, ErrMissingFields
		}
		start, end = *in.Start, *in.End
		if end-start <= 0 {
			return Window{}, ErrEndNotAfterStart
		}
	default:
		return Window{}, fmt.Errorf("%w: %d", ErrUnknownMode, int(in.Mode))
	}

	last := totalFrames - 1
	if last < 0 {
		last = 0
	}
	start = clamp(start, 0, last)
	end = clamp(end, 0, last)
	if end <= start {
		return Window{}, ErrInvalidRange
	}
	return Window{StartFrame: start, DurationFrames: end - start}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
