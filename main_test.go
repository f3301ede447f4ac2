package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/fsel/internal/app"
	"github.com/atomicstack/fsel/internal/config"
	"github.com/atomicstack/fsel/internal/exitcode"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Oracle:     "last",
			Width:      80,
			Height:     24,
			ShowFooter: true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"oracle": "last",
			"width":  "80",
			"height": "24",
			"footer": "true",
		},
		Args: []string{"src"},
		File: "/etc/fsel.yaml",
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["oracle"] != "last" {
		t.Fatalf("expected oracle flag %q, got %v", "last", flagsValue["oracle"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["configFile"] != "/etc/fsel.yaml" {
		t.Fatalf("expected config file in payload, got %v", payload["configFile"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func runExecute(t *testing.T, args []string, run pickFunc) (int, string, string) {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), "fsel.log")
	var stdout, stderr bytes.Buffer
	args = append([]string{"--log-file", logFile}, args...)
	code := execute(args, []string{"HOME=" + t.TempDir()}, &stdout, &stderr, run)
	return code, stdout.String(), stderr.String()
}

func TestExecutePrintsChosenPath(t *testing.T) {
	var got config.Config
	code, out, _ := runExecute(t, []string{"-f", "-R", "src"}, func(_ context.Context, cfg config.Config) (app.Result, error) {
		got = cfg
		return app.Result{Code: exitcode.F1, Printed: true, Text: "src/main.go"}, nil
	})
	if code != exitcode.F1 {
		t.Fatalf("expected exit code %d, got %d", exitcode.F1, code)
	}
	if out != "src/main.go\n" {
		t.Fatalf("unexpected stdout %q", out)
	}
	if !got.App.SelectFiles || !got.App.RelativeToRoot || got.App.Folder != "src" {
		t.Fatalf("unexpected config passed to picker: %+v", got.App)
	}
}

func TestExecuteCancelPrintsNothing(t *testing.T) {
	code, out, errOut := runExecute(t, nil, func(context.Context, config.Config) (app.Result, error) {
		return app.Result{Code: exitcode.Cancel}, nil
	})
	if code != exitcode.Cancel || out != "" || errOut != "" {
		t.Fatalf("expected silent cancel, got code %d stdout %q stderr %q", code, out, errOut)
	}
}

func TestExecuteReportsFailures(t *testing.T) {
	called := false
	run := func(context.Context, config.Config) (app.Result, error) {
		called = true
		return app.Result{Code: exitcode.CannotStart}, errors.New("acquire terminal: no tty")
	}

	code, out, errOut := runExecute(t, nil, run)
	if code != exitcode.CannotStart || out != "" || !strings.Contains(errOut, "no tty") {
		t.Fatalf("expected start failure on stderr, got code %d stdout %q stderr %q", code, out, errOut)
	}

	called = false
	code, _, errOut = runExecute(t, []string{"-r", "-R"}, run)
	if called {
		t.Fatalf("expected invalid configuration to stop before picking")
	}
	if code != exitcode.CannotStart || !strings.Contains(errOut, "mutually exclusive") {
		t.Fatalf("expected configuration error, got code %d stderr %q", code, errOut)
	}

	code, _, _ = runExecute(t, []string{"a", "b"}, run)
	if code != exitcode.CannotStart {
		t.Fatalf("expected extra folders to be rejected, got %d", code)
	}
}
