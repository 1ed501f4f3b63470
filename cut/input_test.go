package cut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput_ReadsOnlyActiveFields(t *testing.T) {
	in, err := ParseInput(ModeStartDuration, Text{Start: "100", Duration: "2.5", End: "garbage"}, UnitSeconds, 24)
	require.NoError(t, err)

	require.NotNil(t, in.Start)
	require.NotNil(t, in.Duration)
	assert.Nil(t, in.End)
	assert.Equal(t, 100, *in.Start)
	assert.InDelta(t, 2.5, *in.Duration, 1e-9)

	w, err := Resolve(in, 24, 1000)
	require.NoError(t, err)
	assert.Equal(t, Window{StartFrame: 100, DurationFrames: 60}, w)
}

func TestParseInput_EmptyFieldsStayNil(t *testing.T) {
	in, err := ParseInput(ModeStartEnd, Text{Start: "  ", End: "20"}, UnitFrames, 30)
	require.NoError(t, err)
	assert.Nil(t, in.Start)

	_, err = Resolve(in, 30, 100)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestParseInput_Timecodes(t *testing.T) {
	in, err := ParseInput(ModeStartEnd, Text{Start: "0:01", End: "0:02.5"}, UnitFrames, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, *in.Start)
	assert.Equal(t, 75, *in.End)
}

func TestParseInput_InvalidNumbers(t *testing.T) {
	_, err := ParseInput(ModeStartDuration, Text{Start: "ten", Duration: "1"}, UnitSeconds, 30)
	assert.ErrorIs(t, err, ErrInvalidNumber)

	_, err = ParseInput(ModeDurationEnd, Text{Duration: "1s", End: "10"}, UnitSeconds, 30)
	assert.ErrorIs(t, err, ErrInvalidNumber)

	_, err = ParseInput(ModeStartEnd, Text{Start: "1:99", End: "10"}, UnitSeconds, 30)
	assert.ErrorIs(t, err, ErrInvalidNumber)
}
