package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/fsel/internal/app"
	"github.com/atomicstack/fsel/internal/oracle"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
	// File is the config file that was read, empty when none was.
	File string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPrefix      = "FSEL_"
	flagConfig     = "config"
	defaultOracle  = "frequency"
	configFileName = "config.yaml"
)

// RegisterFlags defines every option on fs. The root command and LoadArgs
// share it.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolP("files", "f", false, "select files instead of folders")
	fs.BoolP("executables", "x", false, "only list executable files (implies -f)")
	fs.BoolP("dotfiles", "a", false, "show entries whose name starts with a dot")
	fs.BoolP("recent", "e", false, "pick from the recently chosen paths")
	fs.BoolP("relative", "r", false, "print the path relative to the working directory")
	fs.BoolP("relative-to-root", "R", false, "print the path relative to the project root")
	fs.String("json", "", "browse a JSON document instead of the filesystem")
	fs.String("oracle", defaultOracle, "how the initial selection is guessed: frequency|last")
	fs.String("settings-dir", "", "directory holding per-root settings")
	fs.String("log-file", "", "path to the log file")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
	fs.Bool("footer", false, "show the search status line")
	fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.String(flagConfig, "", "YAML file with option defaults (default ~/.config/fsel/config.yaml)")
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("fsel", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 1 {
		return Config{}, fmt.Errorf("expected at most one folder, got %d", fs.NArg())
	}
	return FromFlags(fs, fs.Args(), environ)
}

// FromFlags completes a parsed flag set and builds the configuration. Flags
// left unset on the command line take their value from the environment, then
// from the config file, then keep their default. args holds the positional
// arguments.
func FromFlags(fs *pflag.FlagSet, args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path, explicit := configPath(fs, env)
	fileValues, err := readFile(path, explicit)
	if err != nil {
		return Config{}, err
	}

	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == flagConfig || f.Name == "help" {
			return
		}
		value, ok := env[envName(f.Name)]
		source := "environment"
		if !ok {
			value, ok = fileValues[f.Name]
			source = path
		}
		if !ok {
			return
		}
		if err := fs.Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Errorf("%s from %s: %w", f.Name, source, err))
		}
	})
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Flags: make(map[string]string),
		Args:  append([]string(nil), args...),
	}
	if len(fileValues) > 0 || explicit {
		cfg.File = path
	}
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name != "help" {
			cfg.Flags[f.Name] = f.Value.String()
		}
	})

	files, _ := fs.GetBool("files")
	executables, _ := fs.GetBool("executables")
	dotfiles, _ := fs.GetBool("dotfiles")
	recent, _ := fs.GetBool("recent")
	relative, _ := fs.GetBool("relative")
	relativeToRoot, _ := fs.GetBool("relative-to-root")
	jsonFile, _ := fs.GetString("json")
	oracleKind, _ := fs.GetString("oracle")
	settingsDir, _ := fs.GetString("settings-dir")
	logFile, _ := fs.GetString("log-file")
	trace, _ := fs.GetBool("trace")
	footer, _ := fs.GetBool("footer")
	width, _ := fs.GetInt("width")
	height, _ := fs.GetInt("height")

	cfg.App = app.Config{
		SelectFiles:    files || executables,
		Executables:    executables,
		DotFiles:       dotfiles,
		Recents:        recent,
		RelativeToCwd:  relative,
		RelativeToRoot: relativeToRoot,
		JSONFile:       jsonFile,
		Oracle:         oracleKind,
		SettingsDir:    settingsDir,
		ShowFooter:     footer,
		Width:          width,
		Height:         height,
	}
	if len(args) > 0 {
		cfg.App.Folder = args[0]
	}
	cfg.Logging = Logging{FilePath: logFile, Trace: trace}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects option combinations that cannot run.
func Validate(cfg Config) error {
	if cfg.App.RelativeToCwd && cfg.App.RelativeToRoot {
		return errors.New("-r and -R are mutually exclusive")
	}
	if _, err := oracle.ParseKind(cfg.App.Oracle); err != nil {
		return err
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	return nil
}

func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// configPath returns the file to read and whether the user named it.
func configPath(fs *pflag.FlagSet, env map[string]string) (string, bool) {
	if f := fs.Lookup(flagConfig); f != nil && f.Changed {
		return f.Value.String(), true
	}
	if v, ok := env[envName(flagConfig)]; ok && v != "" {
		return v, true
	}
	base := env["XDG_CONFIG_HOME"]
	if base == "" {
		home := env["HOME"]
		if home == "" {
			return "", false
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "fsel", configFileName), false
}

// readFile decodes a flat YAML mapping of flag names to values. A missing
// default file is not an error.
func readFile(path string, explicit bool) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	values := make(map[string]string, len(raw))
	var nested []string
	for key, v := range raw {
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			nested = append(nested, key)
			continue
		case nil:
			continue
		}
		values[key] = fmt.Sprint(v)
	}
	if len(nested) > 0 {
		sort.Strings(nested)
		return nil, fmt.Errorf("config %s: options must be scalars: %s", path, strings.Join(nested, ", "))
	}
	return values, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}
