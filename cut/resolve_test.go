package cut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestModeFields_ExactlyTwoActive(t *testing.T) {
	for _, m := range Modes {
		f := m.Fields()
		n := 0
		for _, on := range []bool{f.Start, f.Duration, f.End} {
			if on {
				n++
			}
		}
		assert.Equal(t, 2, n, m.String())
	}
	assert.Equal(t, Fields{Start: true, Duration: true}, ModeStartDuration.Fields())
	assert.Equal(t, Fields{Duration: true, End: true}, ModeDurationEnd.Fields())
	assert.Equal(t, Fields{Start: true, End: true}, ModeStartEnd.Fields())
}

func TestModeNextAndParse(t *testing.T) {
	assert.Equal(t, ModeDurationEnd, ModeStartDuration.Next())
	assert.Equal(t, ModeStartEnd, ModeDurationEnd.Next())
	assert.Equal(t, ModeStartDuration, ModeStartEnd.Next())

	for _, m := range Modes {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMode("SE")
	require.NoError(t, err)
	assert.Equal(t, ModeStartEnd, got)

	_, err = ParseMode("middle")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestUnitToFrames(t *testing.T) {
	assert.Equal(t, 1800, UnitMinutes.ToFrames(1, 30))
	assert.Equal(t, 60, UnitSeconds.ToFrames(2.5, 24))
	assert.Equal(t, 50, UnitFrames.ToFrames(50, 30))
	assert.Equal(t, 3, UnitFrames.ToFrames(2.6, 30))
	assert.Equal(t, 30, UnitSeconds.ToFrames(1.001, 29.97))

	u, err := ParseUnit("min")
	require.NoError(t, err)
	assert.Equal(t, UnitMinutes, u)
	assert.Equal(t, UnitFrames, UnitSeconds.Next())
	_, err = ParseUnit("hours")
	assert.Error(t, err)
}

func TestResolve_ModesAgree(t *testing.T) {
	const fps, total = 30.0, 1000

	sd, err := Resolve(Input{Mode: ModeStartDuration, Start: intp(100), Duration: floatp(50), Unit: UnitFrames}, fps, total)
	require.NoError(t, err)
	de, err := Resolve(Input{Mode: ModeDurationEnd, Duration: floatp(50), Unit: UnitFrames, End: intp(150)}, fps, total)
	require.NoError(t, err)
	se, err := Resolve(Input{Mode: ModeStartEnd, Start: intp(100), End: intp(150)}, fps, total)
	require.NoError(t, err)

	want := Window{StartFrame: 100, DurationFrames: 50}
	assert.Equal(t, want, sd)
	assert.Equal(t, want, de)
	assert.Equal(t, want, se)
	assert.Equal(t, 150, sd.EndFrame())
}

func TestResolve_ClampsToSource(t *testing.T) {
	w, err := Resolve(Input{Mode: ModeStartDuration, Start: intp(90), Duration: floatp(30), Unit: UnitFrames}, 30, 100)
	require.NoError(t, err)
	assert.Equal(t, Window{StartFrame: 90, DurationFrames: 9}, w)

	w, err = Resolve(Input{Mode: ModeDurationEnd, Duration: floatp(2), Unit: UnitSeconds, End: intp(30)}, 30, 100)
	require.NoError(t, err)
	assert.Equal(t, Window{StartFrame: 0, DurationFrames: 30}, w)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		fps   float64
		total int
		want  error
	}{
		{"missing start", Input{Mode: ModeStartDuration, Duration: floatp(1)}, 30, 100, ErrMissingFields},
		{"missing duration", Input{Mode: ModeDurationEnd, End: intp(10)}, 30, 100, ErrMissingFields},
		{"missing end", Input{Mode: ModeStartEnd, Start: intp(10)}, 30, 100, ErrMissingFields},
		{"end equals start", Input{Mode: ModeStartEnd, Start: intp(10), End: intp(10)}, 30, 100, ErrEndNotAfterStart},
		{"end before start", Input{Mode: ModeStartEnd, Start: intp(10), End: intp(5)}, 30, 100, ErrEndNotAfterStart},
		{"zero duration", Input{Mode: ModeStartDuration, Start: intp(10), Duration: floatp(0), Unit: UnitSeconds}, 30, 100, ErrNonPositiveDuration},
		{"negative duration", Input{Mode: ModeDurationEnd, Duration: floatp(-3), Unit: UnitFrames, End: intp(50)}, 30, 100, ErrNonPositiveDuration},
		{"past the end", Input{Mode: ModeStartEnd, Start: intp(150), End: intp(200)}, 30, 100, ErrInvalidRange},
		{"before the start", Input{Mode: ModeDurationEnd, Duration: floatp(5), Unit: UnitFrames, End: intp(-1)}, 30, 100, ErrInvalidRange},
		{"empty source", Input{Mode: ModeStartEnd, Start: intp(0), End: intp(10)}, 30, 0, ErrInvalidRange},
		{"bad fps", Input{Mode: ModeStartEnd, Start: intp(0), End: intp(10)}, 0, 100, ErrInvalidFPS},
		{"unknown mode", Input{Mode: Mode(9), Start: intp(0), End: intp(10)}, 30, 100, ErrUnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.in, tt.fps, tt.total)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResolve_InactiveFieldsIgnored(t *testing.T) {
	w, err := Resolve(Input{Mode: ModeStartEnd, Start: intp(10), Duration: floatp(999), End: intp(20)}, 30, 100)
	require.NoError(t, err)
	assert.Equal(t, Window{StartFrame: 10, DurationFrames: 10}, w)
}

func TestResolve_WindowAlwaysInsideSource(t *testing.T) {
	const total = 240
	for start := -50; start <= 300; start += 17 {
		for dur := 1; dur <= 400; dur += 23 {
			for _, m := range Modes {
				in := Input{Mode: m, Start: intp(start), Duration: floatp(float64(dur)), Unit: UnitFrames, End: intp(start + dur)}
				w, err := Resolve(in, 25, total)
				if err != nil {
					continue
				}
				assert.Greater(t, w.DurationFrames, 0)
				assert.GreaterOrEqual(t, w.StartFrame, 0)
				assert.LessOrEqual(t, w.EndFrame(), total-1)
			}
		}
	}
}

func TestWindowSeconds(t *testing.T) {
	start, dur := Window{StartFrame: 48, DurationFrames: 12}.Seconds(24)
	assert.InDelta(t, 2.0, start, 1e-9)
	assert.InDelta(t, 0.5, dur, 1e-9)
}
