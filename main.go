package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/atomicstack/fsel/internal/app"
	"github.com/atomicstack/fsel/internal/config"
	"github.com/atomicstack/fsel/internal/exitcode"
	"github.com/atomicstack/fsel/internal/logging"
	"github.com/atomicstack/fsel/internal/logging/events"
	"github.com/atomicstack/fsel/internal/settings"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Environ(), os.Stdout, os.Stderr, pick))
}

// pickFunc runs one session for a loaded configuration.
type pickFunc func(ctx context.Context, cfg config.Config) (app.Result, error)

// execute parses args, runs the picker and returns the process exit code.
// The chosen path goes to stdout; the terminal UI never touches it.
func execute(args, environ []string, stdout, stderr io.Writer, run pickFunc) int {
	code := exitcode.Cancel
	cmd := newRootCommand(environ, stdout, run, &code)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if code == exitcode.Cancel {
			code = exitcode.CannotStart
		}
	}
	return code
}

func newRootCommand(environ []string, stdout io.Writer, run pickFunc, code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fsel [flags] [folder]",
		Short:         "Pick a path through side-by-side panes and print it",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromFlags(cmd.Flags(), args, environ)
			if err != nil {
				*code = exitcode.CannotStart
				return fmt.Errorf("configuration: %w", err)
			}
			logging.Configure(cfg.Logging.FilePath)
			logging.SetTraceEnabled(cfg.Logging.Trace)
			defer logging.Sync()
			traceStartup(cfg)

			res, err := run(cmd.Context(), cfg)
			*code = res.Code
			if err != nil {
				logging.Error(err)
				if res.Code == exitcode.Confirm {
					*code = exitcode.CannotStart
				}
				return err
			}
			if res.Printed {
				fmt.Fprintln(stdout, res.Text)
			}
			return nil
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

// pick wires the real terminal, settings directory and environment.
func pick(ctx context.Context, cfg config.Config) (app.Result, error) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	dir := cfg.App.SettingsDir
	if dir == "" {
		dir = settings.DefaultDir()
	}
	store, err := settings.OpenDir(dir)
	if err != nil {
		return app.Result{Code: exitcode.CannotStart}, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		logging.Error(fmt.Errorf("resolve home: %w", err))
	}
	cwd, err := os.Getwd()
	if err != nil {
		return app.Result{Code: exitcode.CannotStart}, fmt.Errorf("resolve working directory: %w", err)
	}
	return app.Pick(ctx, cfg.App, app.Deps{
		Surface: &app.TTYSurface{},
		Store:   store,
		Home:    home,
		Cwd:     cwd,
	})
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
