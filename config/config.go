// Package config resolves runtime settings from the environment.
//
// There is no configuration file. Every value has a default, can be set
// through a VIDCUT_* environment variable, and is finally overridden by the
// matching command-line flag in package cmd.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Environment variable names.
const (
	EnvFfmpeg       = "VIDCUT_FFMPEG"
	EnvFfprobe      = "VIDCUT_FFPROBE"
	EnvDB           = "VIDCUT_DB"
	EnvLogLevel     = "VIDCUT_LOG_LEVEL"
	EnvLogFile      = "VIDCUT_LOG_FILE"
	EnvSuffix       = "VIDCUT_SUFFIX"
	EnvPreviewWidth = "VIDCUT_PREVIEW_WIDTH"
)

// Defaults.
const (
	DefaultSuffix       = "_cut"
	DefaultLogLevel     = "info"
	DefaultPreviewWidth = 160
	MinPreviewWidth     = 16
	MaxPreviewWidth     = 1280
)

// Config holds the effective settings.
type Config struct {
	// FfmpegBin overrides encoder discovery when set.
	FfmpegBin string
	// FfprobeBin overrides prober discovery when set.
	FfprobeBin string
	// DBPath enables the sqlite session store when set.
	DBPath string
	// LogLevel is a zerolog level name.
	LogLevel string
	// LogFile receives log output when set; otherwise logs are discarded in the TUI.
	LogFile string
	// Suffix is appended to the source stem to name exported clips.
	Suffix string
	// PreviewWidth is the decoded preview width in pixels.
	PreviewWidth int
}

// Load reads settings from the environment, falling back to defaults.
// The logger receives one debug entry per setting describing its source.
func Load(logger zerolog.Logger) Config {
	return Config{
		FfmpegBin:    parseString(logger, EnvFfmpeg, ""),
		FfprobeBin:   parseString(logger, EnvFfprobe, ""),
		DBPath:       parseString(logger, EnvDB, ""),
		LogLevel:     parseString(logger, EnvLogLevel, DefaultLogLevel),
		LogFile:      parseString(logger, EnvLogFile, ""),
		Suffix:       parseString(logger, EnvSuffix, DefaultSuffix),
		PreviewWidth: ClampPreviewWidth(parseInt(logger, EnvPreviewWidth, DefaultPreviewWidth)),
	}
}

// ClampPreviewWidth keeps a preview width inside the supported range.
func ClampPreviewWidth(w int) int {
	if w < MinPreviewWidth {
		return MinPreviewWidth
	}
	if w > MaxPreviewWidth {
		return MaxPreviewWidth
	}
	return w
}

func parseString(logger zerolog.Logger, key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	if !exists || value == "" {
		logger.Debug().
			Str("key", key).
			Str("default", defaultValue).
			Str("source", "default").
			Msg("using default value")
		return defaultValue
	}
	logger.Debug().
		Str("key", key).
		Str("value", value).
		Str("source", "environment").
		Msg("using environment variable")
	return value
}

func parseInt(logger zerolog.Logger, key string, defaultValue int) int {
	raw, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(raw) == "" {
		logger.Debug().
			Str("key", key).
			Int("default", defaultValue).
			Str("source", "default").
			Msg("using default value")
		return defaultValue
	}
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		logger.Warn().
			Str("key", key).
			Str("value", raw).
			Int("default", defaultValue).
			Err(err).
			Msg("invalid integer in environment, using default")
		return defaultValue
	}
	logger.Debug().
		Str("key", key).
		Int("value", i).
		Str("source", "environment").
		Msg("using environment variable")
	return i
}
