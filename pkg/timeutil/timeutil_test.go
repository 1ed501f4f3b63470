package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0:00:00", FormatTime(-3))
	assert.Equal(t, "0:01:30", FormatTime(90))
	assert.Equal(t, "1:11:22", FormatTime(4282.9))
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00.000"},
		{-1, "00:00.000"},
		{5.25, "00:05.250"},
		{61.0005, "01:01.001"},
		{4500, "75:00.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.seconds), "seconds=%v", tt.seconds)
	}
}

func TestFrameSeconds(t *testing.T) {
	assert.InDelta(t, 2.5, FrameSeconds(60, 24), 1e-9)
	assert.Zero(t, FrameSeconds(60, 0))
}

func TestParseTimeToSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"90", 90},
		{"2.5", 2.5},
		{"1:30", 90},
		{"1:02.5", 62.5},
		{"1:00:01", 3601},
	}
	for _, tt := range tests {
		got, err := ParseTimeToSeconds(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}

	for _, bad := range []string{"", "abc", "1:75", "1:2:3:4", "-5", "1:-2"} {
		_, err := ParseTimeToSeconds(bad)
		assert.Error(t, err, bad)
	}
}
