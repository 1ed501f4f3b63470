package deps

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookup(exeDir string, onPath map[string]string) lookup {
	return lookup{
		executable: func() (string, error) { return filepath.Join(exeDir, "vidcut"), nil },
		stat:       os.Stat,
		lookPath: func(name string) (string, error) {
			if p, ok := onPath[name]; ok {
				return p, nil
			}
			return "", fs.ErrNotExist
		},
	}
}

func writeStub(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0o755))
}

func TestFind_PrefersColocatedBinary(t *testing.T) {
	dir := t.TempDir()
	colocated := filepath.Join(dir, binaryName("ffmpeg"))
	writeStub(t, colocated)

	l := fakeLookup(dir, map[string]string{"ffmpeg": "/usr/bin/ffmpeg"})
	got, err := l.find("ffmpeg", "", ErrEncoderUnavailable)

	require.NoError(t, err)
	assert.Equal(t, colocated, got)
}

func TestFind_FallsBackToPath(t *testing.T) {
	l := fakeLookup(t.TempDir(), map[string]string{"ffmpeg": "/usr/bin/ffmpeg"})

	got, err := l.find("ffmpeg", "", ErrEncoderUnavailable)

	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/ffmpeg", got)
}

func TestFind_ExplicitOverride(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "my-ffmpeg")
	writeStub(t, custom)

	l := fakeLookup(t.TempDir(), nil)
	got, err := l.find("ffmpeg", custom, ErrEncoderUnavailable)
	require.NoError(t, err)
	assert.Equal(t, custom, got)

	_, err = l.find("ffmpeg", filepath.Join(dir, "missing"), ErrEncoderUnavailable)
	assert.ErrorIs(t, err, ErrEncoderUnavailable)
}

func TestFind_MissingIsDependencyError(t *testing.T) {
	l := fakeLookup(t.TempDir(), nil)

	_, err := l.find("ffprobe", "", ErrProberUnavailable)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProberUnavailable))
	assert.False(t, errors.Is(err, ErrEncoderUnavailable))

	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "ffprobe", depErr.Name)
	assert.Contains(t, depErr.Error(), FfmpegInstallURL)
	assert.Contains(t, depErr.Hint(), "PATH")
}

func TestFind_IgnoresColocatedDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, binaryName("ffmpeg")), 0o755))

	l := fakeLookup(dir, nil)
	_, err := l.find("ffmpeg", "", ErrEncoderUnavailable)

	assert.ErrorIs(t, err, ErrEncoderUnavailable)
}
