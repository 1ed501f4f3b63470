package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/vidcut-cli/config"
	"github.com/user/vidcut-cli/cut"
	"github.com/user/vidcut-cli/deps"
)

func TestResolveTarget(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "match.mp4")
	require.NoError(t, os.WriteFile(video, []byte("x"), 0o644))
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("x"), 0o644))

	d, f, err := resolveTarget([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, dir, d)
	assert.Empty(t, f)

	d, f, err = resolveTarget([]string{video})
	require.NoError(t, err)
	assert.Equal(t, dir, d)
	assert.Equal(t, video, f)

	_, _, err = resolveTarget([]string{notes})
	assert.ErrorContains(t, err, "not a supported video file")

	_, _, err = resolveTarget([]string{filepath.Join(dir, "missing.mp4")})
	assert.ErrorContains(t, err, "not found")
}

func TestApplyFlags_OnlyChangedFlagsOverride(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	c.Flags().String("db", "", "")
	c.Flags().String("ffmpeg", "", "")
	c.Flags().String("ffprobe", "", "")
	c.Flags().String("log-level", "", "")
	c.Flags().String("log-file", "", "")
	require.NoError(t, c.Flags().Parse([]string{"--db", "/tmp/s.db"}))

	cfg := config.Config{DBPath: "env.db", FfmpegBin: "/opt/ffmpeg", LogLevel: "info"}
	applyFlags(c, &cfg)

	assert.Equal(t, "/tmp/s.db", cfg.DBPath)
	assert.Equal(t, "/opt/ffmpeg", cfg.FfmpegBin)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestExportError(t *testing.T) {
	err := exportError(&deps.DependencyError{Name: "ffmpeg", InstallURL: deps.FfmpegInstallURL})
	assert.Contains(t, err.Error(), "VIDCUT_FFMPEG")

	err = exportError(&cut.EncoderError{ExitCode: 1, Output: "moov atom not found"})
	assert.Contains(t, err.Error(), "moov atom not found")
	var encErr *cut.EncoderError
	assert.True(t, errors.As(err, &encErr))

	plain := errors.New("boom")
	assert.Equal(t, plain, exportError(plain))
}

func TestConfirmOverwrite_Yes(t *testing.T) {
	ok, err := confirmOverwrite("/tmp/out.mp4", true)
	require.NoError(t, err)
	assert.True(t, ok)
}
