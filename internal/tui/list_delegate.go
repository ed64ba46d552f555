package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"datebook/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type entryItem struct {
	entry model.Entry
}

func (it entryItem) FilterValue() string { return it.entry.Title }

type entryDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	overdue  lipgloss.Style
}

func newEntryDelegate() entryDelegate {
	return entryDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		done:    lipgloss.NewStyle().Foreground(colorMuted),
		overdue: lipgloss.NewStyle().Foreground(colorOverdue),
	}
}

func (d entryDelegate) Height() int  { return 1 }
func (d entryDelegate) Spacing() int { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 8 {
		fmt.Fprint(w, "")
		return
	}

	it, ok := item.(entryItem)
	if !ok {
		fmt.Fprint(w, fmt.Sprint(item))
		return
	}
	e := it.entry

	style := d.normal
	switch {
	case index == m.Index():
		style = d.selected
	case e.Done:
		style = d.done
	case e.Overdue(time.Now()):
		style = d.overdue
	}

	marker := glyphBullet() + " "
	if e.Done {
		marker = glyphDone() + " "
	}
	left := marker + strings.TrimSpace(e.Title)
	right := entryWhenLabel(e)

	// Layout: marker + title, right-aligned schedule label.
	gap := 2
	leftW := xansi.StringWidth(left)
	rightW := xansi.StringWidth(right)
	availLeft := contentW
	if rightW > 0 {
		availLeft = contentW - gap - rightW
		if availLeft < 1 {
			availLeft = 1
		}
	}
	if leftW > availLeft {
		left = xansi.Cut(left, 0, availLeft)
		leftW = xansi.StringWidth(left)
	}

	line := left
	if rightW > 0 {
		if leftW < availLeft {
			line += strings.Repeat(" ", availLeft-leftW)
		}
		line += strings.Repeat(" ", gap) + right
	}

	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}

// entryWhenLabel is the short schedule label shown at the right edge of a row.
func entryWhenLabel(e model.Entry) string {
	if e.When == nil {
		return ""
	}
	t, ok := e.When.Resolve()
	if !ok {
		return ""
	}
	if e.When.Time == nil {
		return t.Format("02/01/2006")
	}
	return t.Format("02/01/2006 15:04")
}
