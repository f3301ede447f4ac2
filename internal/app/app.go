package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/fsel/internal/entry"
	"github.com/atomicstack/fsel/internal/exitcode"
	"github.com/atomicstack/fsel/internal/lister"
	"github.com/atomicstack/fsel/internal/logging"
	"github.com/atomicstack/fsel/internal/logging/events"
	"github.com/atomicstack/fsel/internal/oracle"
	"github.com/atomicstack/fsel/internal/settings"
	"github.com/atomicstack/fsel/internal/ui"
	uistate "github.com/atomicstack/fsel/internal/ui/state"
)

// Config describes user-provided application options.
type Config struct {
	Folder         string
	SelectFiles    bool
	Executables    bool
	DotFiles       bool
	Recents        bool
	RelativeToCwd  bool
	RelativeToRoot bool
	JSONFile       string
	Oracle         string
	SettingsDir    string
	ShowFooter     bool
	Width          int
	Height         int
}

// Deps are the collaborators Pick runs against.
type Deps struct {
	Surface Surface
	Store   settings.Store
	Home    string
	Cwd     string
}

// Result is how a picking session ended. Text is the formatted path and is
// only meaningful when Printed is set.
type Result struct {
	Code    int
	Printed bool
	Path    []entry.Entry
	Text    string
}

// Run drives dialog on the surface until it finishes. Width and height pin
// the layout when positive; otherwise the terminal size is used. The surface
// is always released.
func Run(ctx context.Context, surface Surface, dialog ui.Dialog, width, height int) (res Result, err error) {
	t, err := surface.Acquire()
	if err != nil {
		return Result{Code: exitcode.CannotStart}, fmt.Errorf("acquire terminal: %w", err)
	}
	defer func() {
		releaseErr := surface.Release()
		events.Session.Release(releaseErr)
		if releaseErr != nil && err == nil {
			err = fmt.Errorf("release terminal: %w", releaseErr)
		}
	}()

	termWidth, termHeight := t.Size()
	events.Session.Acquire(termWidth, termHeight)
	model := ui.NewModel(dialog, width, height)
	if termWidth > 0 || termHeight > 0 {
		model.Update(tea.WindowSizeMsg{Width: termWidth, Height: termHeight})
	}

	program := tea.NewProgram(model,
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return Result{Code: exitcode.CannotStart}, fmt.Errorf("run dialog: %w", err)
	}

	outcome := model.Outcome()
	res = Result{Code: exitcode.Cancel}
	if outcome.Done() {
		res.Code = outcome.ExitCode()
		res.Printed = outcome.Printed()
		res.Path = model.CommittedPath()
	}
	events.Session.Finish(exitcode.Signal(res.Code), entry.Names(res.Path))
	return res, nil
}

// Pick runs the whole picking flow: it anchors the session at a root, loads
// what was remembered there, lets the user choose and records the choice.
func Pick(ctx context.Context, cfg Config, deps Deps) (Result, error) {
	kind, err := oracle.ParseKind(cfg.Oracle)
	if err != nil {
		return Result{Code: exitcode.CannotStart}, err
	}

	var (
		root    string
		source  entry.Lister
		initial []string
	)
	if cfg.JSONFile != "" {
		root = absolute(deps.Cwd, cfg.JSONFile)
		doc, err := lister.LoadJSON(root)
		if err != nil {
			return Result{Code: exitcode.CannotStart}, err
		}
		source = doc
	} else {
		folder := absolute(deps.Cwd, cfg.Folder)
		root = settings.FindRoot(folder, deps.Home, deps.Store.Known)
		source = lister.FS{
			Root:        root,
			SelectFiles: cfg.SelectFiles,
			Executables: cfg.Executables,
			DotFiles:    cfg.DotFiles,
		}
		if rel := settings.Relative(root, folder); rel != "." {
			initial = strings.Split(filepath.ToSlash(rel), "/")
		}
		events.App.Root(folder, root)
	}

	known := deps.Store.Known(root)
	s, err := deps.Store.Load(root)
	if err != nil {
		logging.Error(err)
	}
	events.Settings.Load(root, known)

	o := oracle.New(kind, s.History, s.UsageStats)
	field := settings.RecentField(cfg.SelectFiles, cfg.Executables)
	recents := s.Recent(field)

	var dialog ui.Dialog
	if cfg.Recents {
		if len(recents) == 0 {
			return Result{Code: exitcode.CannotStart}, nil
		}
		// the current folder is the least useful recent to land on
		if len(recents) > 1 && recents[0] == settings.Relative(root, deps.Cwd) {
			recents = append([]string(nil), recents...)
			recents[0], recents[1] = recents[1], recents[0]
		}
		dialog = ui.NewListDialog(recentEntries(recents, field))
	} else {
		stack := uistate.NewStack(source, o, initial)
		if stack.IsEmpty() {
			return Result{Code: exitcode.CannotStart}, nil
		}
		dialog = ui.NewPathDialog(stack, cfg.ShowFooter)
	}

	res, err := Run(ctx, deps.Surface, dialog, cfg.Width, cfg.Height)
	if err != nil || !res.Printed {
		return res, err
	}

	rel := relativeChoice(res.Path, cfg.Recents)
	if rel == "" {
		res.Printed = false
		return res, nil
	}
	s.SetRecent(field, settings.UpdateRecents(recents, rel))
	switch o := o.(type) {
	case *oracle.Frequency:
		s.UsageStats = o.Stats()
		s.History = o.History()
	case *oracle.LastChoice:
		s.History = o.History()
	}
	if err := deps.Store.Save(root, s); err != nil {
		logging.Error(err)
	}
	events.Settings.Save(root, field, len(s.Recent(field)))

	res.Text = formatPath(cfg, deps.Cwd, root, rel)
	events.App.Output(res.Code, res.Text)
	return res, nil
}

// relativeChoice turns a committed path into the root-relative form stored
// in recents. A recents pick is already relative; an empty pane path is the
// root itself.
func relativeChoice(path []entry.Entry, recents bool) string {
	if recents {
		if len(path) == 0 {
			return ""
		}
		return path[0].Name
	}
	if len(path) == 0 {
		return "."
	}
	return strings.Join(entry.Names(path), "/")
}

func formatPath(cfg Config, cwd, root, rel string) string {
	if cfg.JSONFile != "" || cfg.RelativeToRoot {
		return rel
	}
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if cfg.RelativeToCwd {
		if r, err := filepath.Rel(cwd, abs); err == nil {
			return r
		}
	}
	return abs
}

func recentEntries(recents []string, field string) []entry.Entry {
	var attrs entry.Attr
	if field == settings.FieldRecentFolders {
		attrs = entry.Directory
	}
	out := make([]entry.Entry, len(recents))
	for i, name := range recents {
		out[i] = entry.Entry{Name: name, Attrs: attrs}
	}
	return out
}

func absolute(cwd, path string) string {
	if path == "" {
		path = "."
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return filepath.Clean(path)
}
