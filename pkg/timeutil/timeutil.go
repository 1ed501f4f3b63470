package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// FormatClock formats seconds as MM:SS.mmm, letting minutes grow past 59
// (e.g. 00:05.250, 75:00.000).
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(seconds*1000 + 0.5)
	mins := millis / 60000
	rem := millis % 60000
	return fmt.Sprintf("%02d:%02d.%03d", mins, rem/1000, rem%1000)
}

// FrameSeconds converts a frame index to seconds at fps. Zero fps yields zero.
func FrameSeconds(frame int, fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frame) / fps
}

// ParseTimeToSeconds parses a time string in HH:MM:SS, MM:SS, or raw seconds format.
// The last component may carry a fraction (e.g. 1:02.5).
func ParseTimeToSeconds(timeStr string) (float64, error) {
	timeStr = strings.TrimSpace(timeStr)
	parts := strings.Split(timeStr, ":")
	if len(parts) > 3 || timeStr == "" {
		return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
	}

	var total float64
	for i, p := range parts {
		last := i == len(parts)-1
		if last {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil || v < 0 || (len(parts) > 1 && v >= 60) {
				return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
			}
			total = total*60 + v
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || (i > 0 && v >= 60) {
			return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
		}
		total = total*60 + float64(v)
	}
	return total, nil
}
