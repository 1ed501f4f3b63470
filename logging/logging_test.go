package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_ComponentLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf})

	l := WithComponent("playback")
	l.Debug().Int("frame", 42).Msg("seek")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "playback", entry["component"])
	assert.Equal(t, "vidcut", entry["service"])
	assert.Equal(t, "seek", entry["message"])
	assert.EqualValues(t, 42, entry["frame"])

	// Only the first Configure call takes effect.
	var other bytes.Buffer
	Configure(Config{Output: &other})
	base := Base()
	base.Info().Msg("still first writer")
	assert.Zero(t, other.Len())
}
