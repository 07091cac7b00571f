package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/sprout/internal/events"
	"github.com/sadopc/sprout/internal/store"
	"github.com/sadopc/sprout/internal/wizard"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewAnalyze
	viewHistory
	viewMeasure
	viewGuides
	viewSettings
)

var viewNames = []string{"Dashboard", "Analyze", "History", "Measure", "Guides", "Settings"}

// requiresUser reports whether v is behind the sign-in gate.
func (v viewState) requiresUser() bool {
	switch v {
	case viewAnalyze, viewHistory, viewMeasure:
		return true
	}
	return false
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// settledMsg is delivered when the simulated delay of op has elapsed. seq
// is the sequence number of the view that started it.
type settledMsg struct {
	op  wizard.Op
	seq int
}

type busEventMsg struct {
	event events.Event
}

type signedInMsg struct {
	user store.User
}

type signedOutMsg struct{}

// rerunMsg asks the analyze view to show recomputed recommendations.
type rerunMsg struct {
	ctx *wizard.Context
}

// --- Commands ---

func settleAfter(op wizard.Op, seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return settledMsg{op: op, seq: seq}
	})
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

func errorCmd(prefix string, err error) tea.Cmd {
	return statusCmd(fmt.Sprintf("%s: %v", prefix, err), true)
}

// waitForEvent blocks on the subscription and returns the next event. A
// closed subscription ends the loop.
func waitForEvent(sub *events.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-sub.C()
		if !ok {
			return nil
		}
		return busEventMsg{event: ev}
	}
}

// --- Helpers ---

func formatDate(t time.Time) string {
	return t.Local().Format("Jan 02, 2006")
}

func formatDateTime(t time.Time) string {
	return t.Local().Format("Jan 02 15:04")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	switch {
	case strings.HasSuffix(word, "is"):
		word = strings.TrimSuffix(word, "is") + "es"
	case strings.HasSuffix(word, "ch"):
		word += "es"
	default:
		word += "s"
	}
	return fmt.Sprintf("%d %s", n, word)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func bullets(items []string, style func(...string) string) []string {
	rows := make([]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, style("  • "+it))
	}
	return rows
}

func joinRows(rows ...string) string {
	return strings.Join(rows, "\n")
}

// expandHome resolves a leading ~ in a path typed into a form.
func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// cursorRow renders one row of a selectable list.
func cursorRow(selected bool, text string) string {
	if selected {
		return selectedItemStyle.Render("> " + text)
	}
	return normalItemStyle.Render("  " + text)
}
