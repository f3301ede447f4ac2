package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	uistate "github.com/atomicstack/fsel/internal/ui/state"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
}

// View renders the panes side by side, scrolled horizontally so the focused
// pane is on screen, with the optional search footer underneath.
func (d *PathDialog) View() string {
	s := d.stack
	if s.IsEmpty() {
		return renderLines(applyWidth([]styledLine{{text: "(no entries)", style: styles.Info}}, d.width))
	}

	height := 0
	for _, pane := range s.Panes {
		if pane.Height > height {
			height = pane.Height
		}
	}
	columns := make([]string, 0, 2*len(s.Panes))
	gap := strings.TrimSuffix(strings.Repeat(" \n", height), "\n")
	for i, pane := range s.Panes {
		if i > 0 {
			columns = append(columns, gap)
		}
		columns = append(columns, d.renderPane(pane))
	}
	block := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	rows := strings.Split(block, "\n")
	if d.width > 0 {
		for i, row := range rows {
			rows[i] = ansi.Cut(row, d.offsetX, d.offsetX+d.width)
		}
	}
	if limit := d.paneAreaHeight(); limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	if d.showFooter {
		rows = append(rows, renderLines(applyWidth([]styledLine{d.footerLine()}, d.width)))
	}
	return strings.Join(rows, "\n")
}

func (d *PathDialog) footerLine() styledLine {
	s := d.stack
	switch {
	case s.SearchString == "":
		return styledLine{text: "type to search, tab picks the full path, enter the focused one", style: styles.FilterPlaceholder}
	case s.IsFullMatch():
		return styledLine{text: fmt.Sprintf("search: %s (%d matches)", s.SearchString, s.MatchCount()), style: styles.Footer}
	}
	return styledLine{text: fmt.Sprintf("search: %s (no match, showing %q)", s.SearchString, s.MatchString), style: styles.Footer}
}

// renderPane draws the visible rows of one pane, each padded to the pane
// width.
func (d *PathDialog) renderPane(pane *uistate.Pane) string {
	rows := pane.Rows()
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = renderRow(row, pane.Width, pane.Focused, d.stack.MatchString, d.stack.IsFullMatch())
	}
	return strings.Join(out, "\n")
}

// renderRow styles an entry, highlighting the first occurrence of match in
// its name. A match that lags behind the typed query is struck through.
func renderRow(row uistate.Row, width int, focusedPane bool, match string, fullMatch bool) string {
	e := row.Entry
	base := styles.Row(e, focusedPane, row.Current)
	var b strings.Builder
	name := e.Name
	at := -1
	if match != "" {
		at = strings.Index(name, match)
	}
	if at >= 0 {
		highlight := styles.Match
		if !fullMatch {
			highlight = styles.PartialMatch
		}
		writeStyled(&b, base, name[:at])
		writeStyled(&b, base.Inherit(*highlight), name[at:at+len(match)])
		writeStyled(&b, base, name[at+len(match):])
	} else {
		writeStyled(&b, base, name)
	}
	if e.Description != "" {
		writeStyled(&b, base, " ")
		writeStyled(&b, base.Foreground(styles.Description.GetForeground()), e.Description)
	}
	if pad := width - e.DisplayLength(); pad > 0 {
		writeStyled(&b, base, strings.Repeat(" ", pad))
	}
	return b.String()
}

func writeStyled(b *strings.Builder, style lipgloss.Style, text string) {
	if text == "" {
		return
	}
	b.WriteString(style.Render(text))
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = styledLine{text: truncateText(line.text, width), style: line.style}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.style != nil && line.text != "" {
			out[i] = line.style.Render(line.text)
			continue
		}
		out[i] = line.text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
