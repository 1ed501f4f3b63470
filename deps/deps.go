// Package deps locates the external ffmpeg and ffprobe binaries.
package deps

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

var (
	// ErrEncoderUnavailable is matched by any failure to locate or launch ffmpeg.
	ErrEncoderUnavailable = errors.New("encoder unavailable")
	// ErrProberUnavailable is matched by any failure to locate ffprobe.
	ErrProberUnavailable = errors.New("prober unavailable")
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
	kind       error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Unwrap lets errors.Is match ErrEncoderUnavailable or ErrProberUnavailable.
func (e *DependencyError) Unwrap() error {
	return e.kind
}

// Hint returns remediation text for the missing binary.
func (e *DependencyError) Hint() string {
	return fmt.Sprintf("%s is required to cut without re-encoding.\n\n"+
		"- Place %s next to the vidcut executable, or\n"+
		"- add %s to your PATH, or\n"+
		"- point VIDCUT_%s at it.",
		e.Name, binaryName(e.Name), e.Name, strings.ToUpper(e.Name))
}

// lookup holds the seams used to find binaries, replaced in tests.
type lookup struct {
	executable func() (string, error)
	stat       func(string) (os.FileInfo, error)
	lookPath   func(string) (string, error)
}

var defaultLookup = lookup{
	executable: os.Executable,
	stat:       os.Stat,
	lookPath:   exec.LookPath,
}

// FindFfmpeg returns the ffmpeg binary to use.
// Resolution order: explicit override, a binary next to the running
// executable, then PATH.
func FindFfmpeg(override string) (string, error) {
	return defaultLookup.find("ffmpeg", override, ErrEncoderUnavailable)
}

// FindFfprobe returns the ffprobe binary to use, resolved like FindFfmpeg.
func FindFfprobe(override string) (string, error) {
	return defaultLookup.find("ffprobe", override, ErrProberUnavailable)
}

func (l lookup) find(name, override string, kind error) (string, error) {
	missing := &DependencyError{Name: name, InstallURL: FfmpegInstallURL, kind: kind}

	if override = strings.TrimSpace(override); override != "" {
		if strings.ContainsRune(override, filepath.Separator) || strings.ContainsRune(override, '/') {
			if fi, err := l.stat(override); err == nil && !fi.IsDir() {
				return override, nil
			}
			return "", missing
		}
		if p, err := l.lookPath(override); err == nil {
			return p, nil
		}
		return "", missing
	}

	if exe, err := l.executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), binaryName(name))
		if fi, err := l.stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}
	}

	p, err := l.lookPath(name)
	if err != nil {
		return "", missing
	}
	return p, nil
}

func binaryName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// CheckAll checks all dependencies and returns a slice of errors for missing ones
func CheckAll(ffmpegOverride, ffprobeOverride string) []error {
	var errs []error

	if _, err := FindFfmpeg(ffmpegOverride); err != nil {
		errs = append(errs, err)
	}

	if _, err := FindFfprobe(ffprobeOverride); err != nil {
		errs = append(errs, err)
	}

	return errs
}
