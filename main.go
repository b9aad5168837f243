package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/redthread/internal/audio"
	"github.com/iburimskiy/redthread/internal/config"
	"github.com/iburimskiy/redthread/internal/game"
	"github.com/iburimskiy/redthread/internal/term"
)

const (
	backendAuto     = "auto"
	backendEbiten   = "ebiten"
	backendTerminal = "terminal"
)

func main() {
	log.SetFlags(log.Lshortfile | log.Ltime)

	var (
		configPath string
		backend    string
		sound      bool
		autoscroll bool
		debug      bool
		seed       int64
	)

	cmd := &cobra.Command{
		Use:          "redthread",
		Short:        "Scroll-driven red thread animation, in a window or a terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("sound") {
				cfg.Audio.Enabled = sound
			}
			if flags.Changed("autoscroll") {
				cfg.Autoscroll = autoscroll
			}
			if flags.Changed("debug") {
				cfg.Debug = debug
			}
			if flags.Changed("seed") {
				cfg.Seed = seed
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			switch resolveBackend(backend) {
			case backendEbiten:
				return runWindow(cfg, log.Default())
			case backendTerminal:
				return runTerminal(cmd.Context(), cfg)
			default:
				return fmt.Errorf("unknown backend %q (want auto, ebiten or terminal)", backend)
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file (defaults are compiled in)")
	cmd.Flags().StringVarP(&backend, "backend", "b", backendAuto, "renderer: auto, ebiten or terminal")
	cmd.Flags().BoolVar(&sound, "sound", false, "play a cue when the thread breaks and heals")
	cmd.Flags().BoolVar(&autoscroll, "autoscroll", false, "scroll through the page on start")
	cmd.Flags().BoolVar(&debug, "debug", false, "show the debug HUD and log state changes")
	cmd.Flags().Int64Var(&seed, "seed", 0, "particle seed (0 = from the clock)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveBackend picks the terminal when there is a TTY but no display.
func resolveBackend(name string) string {
	if name != backendAuto {
		return name
	}
	headless := runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
	if headless && isatty.IsTerminal(os.Stdout.Fd()) {
		return backendTerminal
	}
	return backendEbiten
}

// newPlayer returns nil when sound is off or no audio device is available.
func newPlayer(cfg config.Config, logger *log.Logger) *audio.Player {
	if !cfg.Audio.Enabled {
		return nil
	}
	p := audio.NewPlayer(cfg.Audio, logger)
	if err := p.Init(); err != nil {
		// Non-fatal, the animation runs without sound
		logger.Printf("audio disabled: %v", err)
		return nil
	}
	return p
}

func runWindow(cfg config.Config, logger *log.Logger) error {
	g, err := game.New(cfg, newPlayer(cfg, logger), logger)
	if err != nil {
		showError(err)
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		showError(err)
		return err
	}
	return nil
}

func showError(err error) {
	_ = zenity.Error(err.Error(), zenity.Title(config.WindowTitle), zenity.ErrorIcon)
}

func runTerminal(ctx context.Context, cfg config.Config) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("stdout is not a TTY (use --backend ebiten)")
	}

	// Log lines would tear the screen; hold them until it is closed.
	var logs bytes.Buffer
	logger := log.New(&logs, "", log.Flags())
	defer func() {
		if logs.Len() > 0 {
			_, _ = os.Stderr.Write(logs.Bytes())
		}
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return term.Run(ctx, screen, cfg, newPlayer(cfg, logger), logger)
}
