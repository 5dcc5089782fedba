package play

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/tunes/cmd/common"
	"github.com/gigurra/tunes/cmd/jukebox"
	"github.com/gigurra/tunes/cmd/library"
	"github.com/spf13/cobra"
)

type Params struct {
	Dir      string  `pos:"true" optional:"true" help:"Music directory (default: music_dir from the config file)." default:""`
	Config   string  `short:"c" optional:"true" help:"Config file (default: ./tunes.yaml, $XDG_CONFIG_HOME/tunes/config.yaml, ~/.tunes.yaml)." default:""`
	Shuffle  bool    `short:"z" help:"Start in shuffle mode." default:"false"`
	Volume   float64 `optional:"true" help:"Initial volume between 0 and 1." default:"1"`
	FPS      int     `optional:"true" help:"Screen updates per second." default:"60"`
	Notify   bool    `short:"n" help:"Desktop notification when the track changes." default:"false"`
	Watch    bool    `short:"w" help:"Rescan automatically when files change." default:"false"`
	LogLevel string  `optional:"true" help:"Log level: debug, info, warn, error." default:"info"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "play [dir]",
		Short: "Play music from a directory",
		Long: `Scan a directory for mp3 and flac files and play them in a terminal UI.

Tracks are listed by artist, album and track number. Press enter to play the
selected track; playback continues with the next one. Press / to search,
z to toggle shuffle, s to rescan and q to quit.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			cfg, err := resolveConfig(params, cmd.Flags().Changed)
			if err == nil {
				err = run(cmd.Context(), cfg)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "play: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// resolveConfig loads the config file and applies flags that were set
// explicitly on the command line.
func resolveConfig(params *Params, changed func(name string) bool) (common.Config, error) {
	cfg, err := common.LoadConfigFile(params.Config)
	if err != nil {
		return cfg, err
	}

	if params.Dir != "" {
		cfg.MusicDir = params.Dir
	}
	if changed("shuffle") {
		cfg.Shuffle = params.Shuffle
	}
	if changed("volume") {
		cfg.Volume = params.Volume
	}
	if changed("fps") {
		cfg.FPS = params.FPS
	}
	if changed("notify") {
		cfg.Notify = params.Notify
	}
	if changed("watch") {
		cfg.Watch = params.Watch
	}
	if changed("log-level") {
		cfg.Log.Level = params.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg common.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logs, err := common.SetupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer logs.Close()

	engine, err := jukebox.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}
	defer engine.Close()
	engine.SetVolume(cfg.Volume)
	if !jukebox.AudioAvailable {
		slog.Warn("built without audio output, playback is silent")
	}

	opts := jukebox.Options{
		SeekForward:  cfg.SeekForward,
		SeekBackward: cfg.SeekBackward,
		Shuffle:      cfg.Shuffle,
	}
	if cfg.Notify {
		opts.OnTrackChange = notifyTrackChange
	}

	lib := library.New(cfg.MusicDir, library.NewTagReader())
	session := jukebox.NewSession(lib, engine, opts)
	seen, err := session.Rescan(ctx)
	if err != nil {
		return err
	}

	var watcher *library.Watcher
	if cfg.Watch {
		watcher, err = library.NewWatcher(lib.Root())
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", lib.Root(), err)
		}
		defer watcher.Close()
	}

	m := newModel(ctx, session, time.Second/time.Duration(cfg.FPS), watcher)
	m.status = scanStatus(seen, lib.Len())

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	slog.Info("player stopped")
	return nil
}

func scanStatus(seen, loaded int) string {
	switch {
	case seen == 0:
		return "no mp3 or flac files found"
	case loaded == 0:
		return fmt.Sprintf("%d files found, none with readable tags", seen)
	case loaded < seen:
		return fmt.Sprintf("%d tracks loaded, %d files skipped", loaded, seen-loaded)
	default:
		return fmt.Sprintf("%d tracks loaded", loaded)
	}
}
