// Package main provides the shuffleplay entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/stoned-ape/shuffleplay/internal/app/filter"
	"github.com/stoned-ape/shuffleplay/internal/app/library"
	"github.com/stoned-ape/shuffleplay/internal/app/playback"
	"github.com/stoned-ape/shuffleplay/internal/app/session"
	"github.com/stoned-ape/shuffleplay/internal/app/shuffle"
	"github.com/stoned-ape/shuffleplay/internal/domain/playlist"
	"github.com/stoned-ape/shuffleplay/internal/infra/config"
	"github.com/stoned-ape/shuffleplay/internal/infra/logger"
	"github.com/stoned-ape/shuffleplay/internal/infra/oserr"
	"github.com/stoned-ape/shuffleplay/internal/infra/player"
	"github.com/stoned-ape/shuffleplay/internal/infra/terminal"
)

var (
	app        = kingpin.New("shuffleplay", "Shuffled terminal music player")
	configPath = app.Flag("config", "Path to config file (optional)").Envar("SHUFFLEPLAY_CONFIG").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to JSON log file (default: stderr)").String()
	seed       = app.Flag("seed", "Shuffle seed (0 = current time)").Int64()
	playerType = app.Flag("player", "Player program").Enum(config.PlayerAfplay, config.PlayerMpv, config.PlayerFfplay, config.PlayerExec)
	alias      = app.Flag("library", "Play a configured library alias").Short('l').String()
	youtube    = app.Flag("youtube", "Play the \"youtube\" library alias").Short('y').Bool()
	spotify    = app.Flag("spotify", "Play the \"spotify\" library alias").Short('s').Bool()

	// play command (default)
	playCmd = app.Command("play", "Play a directory in shuffled order (default)").Default()
	playDir = playCmd.Arg("dir", "Directory to play").String()

	// list command
	listCmd = app.Command("list", "Print the shuffled order and exit")
	listDir = listCmd.Arg("dir", "Directory to list").String()

	// list-filters command
	listFiltersCmd = app.Command("list-filters", "List available track filters and exit")
)

var usage = []string{
	"usage: shuffleplay [flags] [play] [DIR]",
	"enter p to play/pause",
	"enter n to go to the next song",
	"enter b to go back to the previous song",
	"enter r to restart the current song",
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Handle list-filters command
	if command == listFiltersCmd.FullCommand() {
		printFilters()
		return
	}

	if err := run(command); err != nil {
		fmt.Fprintln(os.Stderr, oserr.Diagnostic(err))
		os.Exit(oserr.ExitCode(err))
	}
}

// run executes the selected command. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(command string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize logger
	loggerConfig := logger.Config{
		Output: "stderr",
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.File = *logfile
	}
	if loggerConfig.File != "" {
		loggerConfig.Output = "file"
	}
	if err := logger.Init(loggerConfig); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	dir := *playDir
	if command == listCmd.FullCommand() {
		dir = *listDir
	}
	pl, err := loadPlaylist(cfg, dir)
	if err != nil {
		return err
	}

	if command == listCmd.FullCommand() {
		for i, name := range pl.Names() {
			fmt.Printf("%3d  %s\n", i+1, name)
		}
		return nil
	}

	return play(cfg, pl)
}

// loadConfig loads the config file when one is given and applies flag overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	if *seed != 0 {
		cfg.Shuffle.Seed = *seed
	}
	if *playerType != "" && *playerType != cfg.Player.Type {
		cfg.Player.Type = *playerType
		cfg.Player.Settings = nil
	}
	return cfg, nil
}

// loadPlaylist lists and shuffles the selected directory.
func loadPlaylist(cfg *config.Config, dir string) (*playlist.Playlist, error) {
	name := *alias
	switch {
	case *youtube:
		name = "youtube"
	case *spotify:
		name = "spotify"
	}

	dir, err := cfg.ResolveDir(dir, name)
	if err != nil {
		return nil, err
	}

	chain, err := filter.NewChainFromConfig(cfg.Filters)
	if err != nil {
		return nil, errors.Wrap(err, "invalid filter config")
	}

	pl, err := library.NewLister(chain).List(dir)
	if err != nil {
		return nil, err
	}

	shuffle.New(cfg.Shuffle.Seed, cfg.Shuffle.Passes).Playlist(pl)
	return pl, nil
}

// play runs an interactive session until the playlist ends or a signal arrives.
func play(cfg *config.Config, pl *playlist.Playlist) error {
	runner, err := player.NewFromConfig(cfg.Player)
	if err != nil {
		return errors.Wrap(err, "failed to create player")
	}
	spawner := playback.SpawnerFunc(func(name string) (playback.Process, error) {
		p, err := runner.Spawn(name)
		if err != nil {
			return nil, err
		}
		return p, nil
	})

	console := terminal.NewConsole(os.Stdout)
	console.Banner("shuffleplay", usage...)

	if !terminal.IsInteractive(os.Stdin) {
		zlog.Warn().Msg("stdin is not a terminal: commands are read as lines until EOF")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mgr := session.NewManager(pl, spawner, console, terminal.NewLineReader(os.Stdin))
	zlog.Info().Str("session_id", mgr.SessionID()).Msgf("Playing %d tracks from %s with %s", pl.Len(), pl.Dir, cfg.Player.Type)
	return mgr.Run(ctx)
}

// printFilters prints available filters.
func printFilters() {
	registry := filter.GetRegistered()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available Filters:")
	for _, name := range names {
		f := registry[name]()
		codes := strings.Join(f.ReturnCodes(), ", ")
		fmt.Printf("  %-30s - %s [codes: %s]\n", f.Name(), f.Description(), codes)
	}
}
