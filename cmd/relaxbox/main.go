// Package main provides the relaxbox player entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/relaxbox/internal/app/playback"
	"github.com/osa030/relaxbox/internal/domain/playlist"
	"github.com/osa030/relaxbox/internal/domain/track"
	"github.com/osa030/relaxbox/internal/infra/config"
	"github.com/osa030/relaxbox/internal/infra/logger"
	"github.com/osa030/relaxbox/internal/infra/player"
	"github.com/osa030/relaxbox/internal/ui/tui"
)

const (
	defaultConfigPath = "config/relaxbox.yaml"
	defaultLogFile    = "relaxbox.log"
)

var (
	app        = kingpin.New("relaxbox", "Relaxation music player")
	configPath = app.Flag("config", "Path to config file (YAML or TOML)").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: "+defaultLogFile+")").String()
	playerType = app.Flag("player", "Player backend (mpd, simulated)").Envar("RELAXBOX_PLAYER").String()

	// list command
	listCmd      = app.Command("list", "Print the catalog and exit")
	listCategory = listCmd.Flag("category", "Only list tracks of this category").String()
)

func init() {
	// play command (default)
	app.Command("play", "Open the player (default)").Default()
}

func main() {
	os.Exit(realMain())
}

// realMain runs the selected command and returns the exit code, so deferred
// cleanup such as closing the log file runs before the process exits.
func realMain() int {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// The player owns the terminal, so logs go to a file unless told otherwise.
	loggerConfig := logger.Config{
		Output: defaultLogFile,
		Level:  "info",
	}
	if command == listCmd.FullCommand() {
		loggerConfig.Output = logger.OutputStderr
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	closer, err := logger.Init(loggerConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "relaxbox: failed to initialize logger: %v\n", err)
		return 1
	}
	defer closer.Close()

	cfg, err := loadConfig(*configPath, *playerType)
	if err != nil {
		return fail("Failed to load config", err)
	}

	pl, err := cfg.Playlist()
	if err != nil {
		return fail("Failed to build playlist", err)
	}

	if command == listCmd.FullCommand() {
		if err := printCatalog(os.Stdout, pl, *listCategory); err != nil {
			return fail("Failed to print catalog", err)
		}
		return 0
	}

	// Run player (defer ensures cleanup is called)
	if err := run(cfg, pl); err != nil {
		return fail("Player error", err)
	}
	return 0
}

// fail reports err to the log and the terminal and returns the exit code.
func fail(msg string, err error) int {
	zlog.Error().Msgf("%s: %v", msg, err)
	fmt.Fprintf(os.Stderr, "relaxbox: %v\n", err)
	return 1
}

// loadConfig loads the config file, falling back to built-in defaults when
// no path is given and the default file does not exist.
func loadConfig(path, playerOverride string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		zlog.Info().Msg("No config file found, using built-in defaults")
		cfg, err = config.Default()
	} else {
		zlog.Info().Msgf("Loading config from %s", path)
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, err
	}

	if playerOverride != "" {
		cfg.Player.Type = playerOverride
		if err := cfg.Validate(); err != nil {
			return nil, errors.Wrap(err, "invalid --player")
		}
	}
	return cfg, nil
}

// run executes the player. Using a separate function ensures defer
// statements are executed even when returning with an error.
func run(cfg *config.Config, pl *playlist.Playlist) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	widget, err := player.New(cfg.Player, pl)
	if err != nil {
		return errors.Wrap(err, "failed to create player")
	}
	defer widget.Close()

	ctrl := playback.NewController(pl, widget)
	defer ctrl.Close()

	if err := ctrl.Open(ctx); err != nil {
		return errors.Wrap(err, "failed to open player")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- widget.Run(runCtx, ctrl)
	}()

	model := tui.New(ctx, ctrl, tui.Options{
		Title:    cfg.UI.Title,
		SeekStep: time.Duration(cfg.UI.SeekStepSec) * time.Second,
	})
	defer model.Close()

	var opts []tea.ProgramOption
	if !cfg.UI.Inline {
		opts = append(opts, tea.WithAltScreen())
	}
	opts = append(opts, tea.WithContext(ctx))

	zlog.Info().Msgf("Starting player: type=%s tracks=%d", cfg.Player.Type, pl.Len())
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "ui error")
	}
	if m, ok := final.(tui.Model); ok && m.Back() {
		zlog.Info().Msg("Left the player")
	}

	cancel()
	if err := <-runErrCh; err != nil {
		zlog.Warn().Msgf("Player stopped with error: %v", err)
	}

	zlog.Info().Msg("Player stopped")
	return nil
}

// printCatalog writes the catalog as a table followed by its categories.
// A non-empty category limits the table to that category.
func printCatalog(w io.Writer, pl *playlist.Playlist, category string) error {
	categories := pl.Categories()
	if category != "" && !slices.Contains(categories, category) {
		return errors.Newf("unknown category %q (available: %s)", category, strings.Join(categories, ", "))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tARTIST\tDURATION\tCATEGORY")
	for i, t := range pl.Tracks() {
		if category != "" && t.Category != category {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, t.Title, t.Artist, displayDuration(t), t.Category)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "failed to write catalog")
	}

	if _, err := fmt.Fprintf(w, "\nCategories: %s\n", strings.Join(categories, ", ")); err != nil {
		return errors.Wrap(err, "failed to write catalog")
	}
	return nil
}

// displayDuration normalizes the catalog duration, keeping it as written
// when it cannot be parsed.
func displayDuration(t track.Track) string {
	d, err := track.ParseDisplayDuration(t.Duration)
	if err != nil {
		zlog.Debug().Msgf("unparsable duration for %q: %v", t.Title, err)
		return t.Duration
	}
	return playback.FormatTime(d.Seconds())
}
