package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quocvuong92/ai-exec/internal/api"
	"github.com/quocvuong92/ai-exec/internal/config"
	"github.com/quocvuong92/ai-exec/internal/constants"
	"github.com/quocvuong92/ai-exec/internal/display"
	"github.com/quocvuong92/ai-exec/internal/executor"
	"github.com/quocvuong92/ai-exec/internal/logging"
	"github.com/quocvuong92/ai-exec/internal/session"
)

// App holds the application state
type App struct {
	cfg *config.Config
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
	}
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(NewApp()).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree around app
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ai-exec",
		Short: "Turn plain-language requests into shell commands",
		Long: `ai-exec translates what you want to do into a single shell command,
shows it to you, and runs it only after you press ENTER. ESC or any other
key cancels.

The working directory is kept between requests, so "go to the parent
folder" followed by "list files" behaves as you would expect.

Examples:
  ai-exec
  ai-exec --provider azure -m gpt-4o-mini
  ai-exec --shell /bin/bash -v`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.run(cmd.Context()); err != nil {
				display.ShowError(err.Error())
				return err
			}
			return nil
		},
	}

	// Persistent so "ai-exec status --provider azure" reports what a session would use
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.cfg.Provider, "provider", "",
		fmt.Sprintf("Translation provider: %s (default: auto-detect)", strings.Join(constants.SupportedProviders, ", ")))
	flags.StringVarP(&app.cfg.Model, "model", "m", "", "Model name (e.g., gemini-1.5-flash, gpt-4o-mini)")
	flags.StringVar(&app.cfg.Shell, "shell", "", "Shell used to run commands (default: /bin/sh, cmd on Windows)")
	flags.BoolVarP(&app.cfg.Verbose, "verbose", "v", false, "Enable debug logging to stderr")
	flags.StringVar(&app.cfg.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&app.cfg.LogFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(NewStatusCmd(app))
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

// configureLogging keeps logs silent unless a level or --verbose was given
func (app *App) configureLogging() {
	level := logging.LevelNone
	if app.cfg.LogLevel != "" {
		level = logging.ParseLevel(app.cfg.LogLevel)
	}
	if app.cfg.Verbose {
		level = logging.LevelDebug
	}
	logging.Configure(logging.Options{
		Level:  level,
		Format: logging.ParseFormat(app.cfg.LogFormat),
		Output: os.Stderr,
	})
}

// run starts a session in the directory the program was launched from
func (app *App) run(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	if err := app.cfg.Validate(); err != nil {
		return err
	}
	app.configureLogging()
	defer func() { _ = logging.Sync() }()

	startDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}
	sess, err := session.New(startDir)
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	runner := newRunner(app.cfg.Shell, interactive)
	ctx, stop := routeSignals(parent, runner)
	defer stop()

	translator, err := api.NewTranslator(ctx, app.cfg)
	if err != nil {
		return err
	}

	printer := display.NewPrinter(os.Stdout, interactive)

	logging.Info("session started", logging.Fields{
		"session":     sess.ID,
		"provider":    app.cfg.Provider,
		"model":       app.cfg.Model,
		"shell":       runner.Shell(),
		"wd":          sess.WorkingDirectory(),
		"interactive": interactive,
	})

	printer.Banner(app.cfg.ProviderName(), app.cfg.Model)

	if interactive {
		err = runInteractive(ctx, sess, translator, runner, printer)
	} else {
		err = runPlain(ctx, sess, translator, runner, printer, os.Stdin)
	}
	printer.Goodbye()

	if errors.Is(err, session.ErrInterrupted) {
		logging.Info("session interrupted", logging.Fields{"session": sess.ID})
		return nil
	}
	return err
}

// newRunner builds the command runner. In plain mode stdin carries the
// request stream, which is read ahead, so children get the null device
// instead.
func newRunner(shell string, interactive bool) *executor.ShellRunner {
	if interactive {
		return executor.NewShellRunner(shell)
	}
	return executor.NewShellRunner(shell, executor.WithStdio(nil, os.Stdout, os.Stderr))
}
