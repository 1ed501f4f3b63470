package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/user/vidcut-cli/bookmark"
	"github.com/user/vidcut-cli/config"
	"github.com/user/vidcut-cli/cut"
	"github.com/user/vidcut-cli/db"
	"github.com/user/vidcut-cli/deps"
	"github.com/user/vidcut-cli/library"
	"github.com/user/vidcut-cli/logging"
	"github.com/user/vidcut-cli/media"
	"github.com/user/vidcut-cli/tui"
)

var Version = "0.1.0"

// errNoDatabase is returned by commands that need the session database.
var errNoDatabase = errors.New("no session database configured (use --db or " + config.EnvDB + ")")

// settings is resolved once in PersistentPreRunE: environment first, then
// any persistent flag the user set.
var (
	settings config.Config
	logFile  io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "vidcut [folder|file]",
	Short: "Preview videos and cut clips without re-encoding",
	Long: `vidcut browses a folder of videos in the terminal, plays them frame by
frame and exports a trimmed copy with ffmpeg stream copy.

Features:
  - Half-block truecolor preview with frame stepping and speed control
  - Cut by start+duration, duration+end or start+end
  - Bookmarks and export history in an optional SQLite session database
  - Headless cutting for scripts with 'vidcut cut'`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logFile != nil {
			_ = logFile.Close()
		}
	},
	RunE: runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vidcut version %s\n", Version)
	},
}

func init() {
	// assigned here rather than in the literal: setup refers to rootCmd
	rootCmd.PersistentPreRunE = setup

	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "session database path (env "+config.EnvDB+")")
	flags.String("ffmpeg", "", "ffmpeg binary (env "+config.EnvFfmpeg+")")
	flags.String("ffprobe", "", "ffprobe binary (env "+config.EnvFfprobe+")")
	flags.String("log-level", "", "log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	flags.String("log-file", "", "append logs to this file (env "+config.EnvLogFile+")")

	rootCmd.AddCommand(versionCmd)
}

// setup resolves settings and configures logging. The TUI owns the
// terminal, so it only logs to a file; other commands log warnings to stderr.
func setup(cmd *cobra.Command, _ []string) error {
	// first pass only decides where logs go
	boot := config.Load(zerolog.Nop())
	applyFlags(cmd, &boot)

	out := io.Writer(io.Discard)
	if cmd != rootCmd {
		out = os.Stderr
	}
	if boot.LogFile != "" {
		f, err := logging.OpenFile(boot.LogFile)
		if err != nil {
			return err
		}
		logFile = f
		out = f
	}

	level := boot.LogLevel
	_, fromEnv := os.LookupEnv(config.EnvLogLevel)
	if cmd != rootCmd && boot.LogFile == "" && !fromEnv && !cmd.Flags().Changed("log-level") {
		level = "warn"
	}
	logging.Configure(logging.Config{Level: level, Output: out})

	settings = config.Load(logging.WithComponent("config"))
	applyFlags(cmd, &settings)
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	set := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	set("db", &cfg.DBPath)
	set("ffmpeg", &cfg.FfmpegBin)
	set("ffprobe", &cfg.FfprobeBin)
	set("log-level", &cfg.LogLevel)
	set("log-file", &cfg.LogFile)
}

// openDB opens the session database, or returns nil when none is configured.
func openDB() (*sql.DB, error) {
	if settings.DBPath == "" {
		return nil, nil
	}
	database, err := db.Open(settings.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// resolveTarget turns the optional argument into the folder to list and
// the file to open.
func resolveTarget(args []string) (dir, file string, err error) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return "", "", fmt.Errorf("not found: %s", abs)
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to access %s: %w", abs, err)
	}
	if info.IsDir() {
		return abs, "", nil
	}
	if !library.IsVideo(abs) {
		return "", "", fmt.Errorf("not a supported video file: %s", abs)
	}
	return filepath.Dir(abs), abs, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	dir, file, err := resolveTarget(args)
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	var store bookmark.Store
	if database != nil {
		defer database.Close()
		store = bookmark.DBStore{DB: database}
	}

	logger := logging.WithComponent("tui")
	if errs := deps.CheckAll(settings.FfmpegBin, settings.FfprobeBin); len(errs) > 0 {
		for _, e := range errs {
			logger.Warn().Err(e).Msg("dependency missing")
		}
	}

	return tui.Run(tui.Options{
		Dir:       dir,
		File:      file,
		Opener:    media.NewOpener(media.Binaries{Ffmpeg: settings.FfmpegBin, Ffprobe: settings.FfprobeBin}, settings.PreviewWidth, logging.WithComponent("media")),
		Exporter:  cut.NewExporter(settings.FfmpegBin, logging.WithComponent("cut")),
		Bookmarks: store,
		DB:        database,
		Suffix:    settings.Suffix,
		Logger:    logger,
		Watch:     true,
	})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
