package app

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const defaultTTYPath = "/dev/tty"

// Terminal is an acquired screen: where keys come from, where frames go and
// how large it is. A zero size means unknown.
type Terminal struct {
	In     io.Reader
	Out    io.Writer
	Width  int
	Height int
}

// Size returns the terminal dimensions in cells.
func (t Terminal) Size() (width, height int) {
	return t.Width, t.Height
}

// Surface hands out exclusive access to a terminal.
type Surface interface {
	Acquire() (Terminal, error)
	Release() error
}

// TTYSurface renders on the controlling terminal so stdin and stdout stay free
// for the caller's data.
type TTYSurface struct {
	Path string

	tty *os.File
}

// Acquire opens the terminal, measures it and points lipgloss at its color
// profile. Output through a pipe would otherwise be detected as colorless.
func (s *TTYSurface) Acquire() (Terminal, error) {
	path := s.Path
	if path == "" {
		path = defaultTTYPath
	}
	tty, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return Terminal{}, fmt.Errorf("open %s: %w", path, err)
	}
	s.tty = tty
	t := Terminal{In: tty, Out: tty}
	if width, height, err := term.GetSize(int(tty.Fd())); err == nil {
		t.Width, t.Height = width, height
	}
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())
	return t, nil
}

// Release closes the terminal. It is safe to call more than once.
func (s *TTYSurface) Release() error {
	if s.tty == nil {
		return nil
	}
	err := s.tty.Close()
	s.tty = nil
	return err
}
