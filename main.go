// Copyright
// SPDX-License-Identifier: MIT
// proofdiff: proofread one document against another with character-level highlights
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"proofdiff/internal/backend"
	"proofdiff/internal/config"
	"proofdiff/internal/debounce"
	"proofdiff/internal/document"
	"proofdiff/internal/failure"
	"proofdiff/internal/ingest"
	"proofdiff/internal/logger"
	"proofdiff/internal/session"
	"proofdiff/internal/textdiff"
	"proofdiff/internal/tui"
)

// Version is set during build with -ldflags
var version = "0.1.0"

const spawnStartTimeout = 15 * time.Second

/* ---------- global flags ---------- */

type globalFlags struct {
	config     string
	logLevel   string
	backend    string
	backendURL string
	engine     string
}

var flags globalFlags

var rootCmd = &cobra.Command{
	Use:   "proofdiff [file1 [file2]]",
	Short: "Proofread two .txt/.docx documents side by side",
	Long: `proofdiff loads two documents, strips punctuation and whitespace, and
highlights every character that is missing, added or different between them.
Both panes are editable; the comparison reruns shortly after you stop typing.`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of proofdiff",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("proofdiff version %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "config file (default: $"+config.EnvConfigPath+", ./"+config.FileName+", user config dir)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace|debug|info|warn|error")
	pf.StringVar(&flags.backend, "backend", "", "backend mode: local|http|spawn")
	pf.StringVar(&flags.backendURL, "backend-url", "", "backend base URL for --backend http")
	pf.StringVar(&flags.engine, "engine", "", "diff engine: difflib|dmp")

	rootCmd.AddCommand(compareCmd(), serveCmd(), initCmd(), versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", failure.Message(err))
		os.Exit(1)
	}
}

/* ---------- shared setup ---------- */

// app carries what every command needs: the effective configuration and
// the logger built from it.
type app struct {
	cfg     *config.Config
	cfgPath string
	log     *logger.Logger
}

// setup loads the config, applies flag overrides and builds the logger.
// console adds a stderr writer; the TUI passes false since it owns the
// terminal.
func setup(console bool) (*app, error) {
	loaded, used, err := config.LoadOrDefault(flags.config)
	if err != nil {
		return nil, err
	}
	c := config.Clone(loaded)
	if flags.logLevel != "" {
		c.Log.Level = flags.logLevel
	}
	if flags.backend != "" {
		c.Backend.Mode = flags.backend
	}
	if flags.backendURL != "" {
		c.Backend.URL = flags.backendURL
	}
	if flags.engine != "" {
		c.Diff.Engine = flags.engine
	}
	if err := config.Validate(c); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	l, err := logger.New(c.Log, logger.Options{Console: console})
	if err != nil {
		return nil, err
	}
	l.Debug().Str("config", used).Str("backend", c.Backend.Mode).Str("engine", c.Diff.Engine).Msg("configuration loaded")
	return &app{cfg: c, cfgPath: used, log: l}, nil
}

func (a *app) close() { _ = a.log.Close() }

// local builds the in-process backend with the configured engine.
func (a *app) local() (*backend.Local, error) {
	eng, err := textdiff.New(a.cfg.Diff.Engine, textdiff.Options{
		SemanticCleanup: a.cfg.Diff.SemanticCleanup,
		Timeout:         a.cfg.Diff.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return backend.NewLocal(eng, document.Decoder{}, a.log.Logger), nil
}

// openBackend returns the configured backend and a func releasing it
// (stopping the child server in spawn mode).
func (a *app) openBackend(ctx context.Context) (backend.Backend, func(), error) {
	switch a.cfg.Backend.Mode {
	case config.BackendHTTP:
		a.log.Info().Str("url", a.cfg.Backend.URL).Msg("using remote backend")
		return backend.NewHTTP(a.cfg.Backend.URL, a.cfg.Backend.Timeout), func() {}, nil
	case config.BackendSpawn:
		sp, err := backend.Spawn(ctx, backend.SpawnOptions{
			Args:         a.childArgs(),
			StartTimeout: spawnStartTimeout,
			CallTimeout:  a.cfg.Backend.Timeout,
		}, a.log.Logger)
		if err != nil {
			return nil, nil, err
		}
		return sp, func() {
			if err := sp.Close(); err != nil {
				a.log.Warn().Err(err).Msg("stop spawned backend")
			}
		}, nil
	default:
		l, err := a.local()
		if err != nil {
			return nil, nil, err
		}
		return l, func() {}, nil
	}
}

// childArgs forwards the settings a spawned server needs.
func (a *app) childArgs() []string {
	args := []string{"--backend", config.BackendLocal, "--engine", a.cfg.Diff.Engine}
	if a.cfgPath != "" {
		args = append(args, "--config", a.cfgPath)
	}
	if a.cfg.Log.Level != "" {
		args = append(args, "--log-level", a.cfg.Log.Level)
	}
	return args
}

// orchestrator wires a fresh session to the backend using the configured
// debounce and load delays.
func (a *app) orchestrator(be backend.Backend) *session.Orchestrator {
	return session.NewOrchestrator(session.New(), be, debounce.New(a.cfg.Timing.Debounce), a.cfg.Timing.LoadDelay, a.log.Logger)
}

/* ---------- TUI ---------- */

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	be, release, err := a.openBackend(ctx)
	if err != nil {
		return err
	}
	defer release()

	err = tui.Run(ctx, tui.Options{
		Orchestrator: a.orchestrator(be),
		Ingester:     ingest.New(be, a.log.Logger),
		UI:           a.cfg.UI,
		Frame:        a.cfg.Timing.Frame,
		Files:        args,
		Logger:       a.log.Logger,
	})
	if err != nil && !(errors.Is(err, context.Canceled) || ctx.Err() != nil) {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}
