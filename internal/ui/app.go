package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/diskusage/internal/config"
	"github.com/lumipallolabs/diskusage/internal/core"
	"github.com/lumipallolabs/diskusage/internal/logging"
	"github.com/lumipallolabs/diskusage/internal/model"
	"github.com/lumipallolabs/diskusage/internal/report"
)

// Tab identifies which result list is shown
type Tab int

const (
	TabLargeFiles Tab = iota
	TabRecommendations
	TabSummary
)

var tabNames = []string{"Large files", "Recommendations", "Summary"}

// pollInterval is how often the snapshot is re-read while scanning
const pollInterval = 100 * time.Millisecond

// pollMsg triggers a snapshot read
type pollMsg struct{}

// scanStartedMsg is sent once a scan has been started
type scanStartedMsg struct {
	err error
}

// deletedMsg is sent after a deletion attempt
type deletedMsg struct {
	path  string
	freed int64
	err   error
}

// pendingDelete is a deletion waiting for confirmation
type pendingDelete struct {
	path  string
	force bool
}

// App is the main Bubbletea model
type App struct {
	ctrl     *core.Controller
	settings *config.Settings
	keys     KeyMap
	spinner  spinner.Model

	state    core.AppState
	tab      Tab
	selected int
	confirm  *pendingDelete
	message  string
	err      error

	width  int
	height int
}

// NewApp creates the application model. The scan starts from Init.
func NewApp(ctrl *core.Controller, s *config.Settings) App {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)),
	)
	return App{
		ctrl:     ctrl,
		settings: s,
		keys:     DefaultKeyMap(),
		spinner:  sp,
		width:    100,
		height:   30,
	}
}

// Init starts the first scan and the spinner
func (a App) Init() tea.Cmd {
	return tea.Batch(a.startScan(), a.spinner.Tick)
}

// startScan asks the controller for a new scan
func (a App) startScan() tea.Cmd {
	ctrl, s := a.ctrl, a.settings
	return func() tea.Msg {
		_, err := ctrl.RunScan(context.Background(), s)
		return scanStartedMsg{err: err}
	}
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

// Update handles messages
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case scanStartedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.selected = 0
		a.state = a.ctrl.State()
		return a, poll()

	case pollMsg:
		a.state = a.ctrl.State()
		a.clampSelection()
		if a.state.Scanning {
			return a, poll()
		}
		logging.Debug.Printf("[TUI] scan finished: %s", a.state.Scan.Phase)
		return a, nil

	case deletedMsg:
		a.confirm = nil
		if msg.err != nil {
			a.message = ""
			a.err = msg.err
		} else {
			a.err = nil
			a.message = fmt.Sprintf("Freed %s (%s)", report.Size(msg.freed), msg.path)
		}
		a.state = a.ctrl.State()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		ctrl := a.ctrl
		return a, func() tea.Msg {
			ctrl.Stop()
			return tea.Quit()
		}
	}

	if a.confirm != nil {
		switch {
		case key.Matches(msg, a.keys.Confirm):
			return a, a.delete(*a.confirm)
		case key.Matches(msg, a.keys.Cancel):
			a.confirm = nil
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Up):
		if a.selected > 0 {
			a.selected--
		}
	case key.Matches(msg, a.keys.Down):
		a.selected++
		a.clampSelection()
	case key.Matches(msg, a.keys.Tab):
		a.tab = (a.tab + 1) % Tab(len(tabNames))
		a.selected = 0
	case key.Matches(msg, a.keys.Stop):
		if a.state.Scanning {
			ctrl := a.ctrl
			return a, func() tea.Msg {
				ctrl.Stop()
				return pollMsg{}
			}
		}
	case key.Matches(msg, a.keys.Rescan):
		if !a.state.Scanning {
			a.message = ""
			return a, a.startScan()
		}
	case key.Matches(msg, a.keys.Trash), key.Matches(msg, a.keys.Force):
		if path, ok := a.selectedPath(); ok && !a.state.Scanning {
			a.confirm = &pendingDelete{path: path, force: key.Matches(msg, a.keys.Force)}
		}
	}
	return a, nil
}

func (a App) delete(p pendingDelete) tea.Cmd {
	ctrl := a.ctrl
	return func() tea.Msg {
		freed, err := ctrl.Delete(p.path, p.force)
		return deletedMsg{path: p.path, freed: freed, err: err}
	}
}

// candidates returns the paths listed in the current tab
func (a App) candidates() []string {
	v := a.state.Scan
	switch a.tab {
	case TabLargeFiles:
		return model.Paths(v.Largest, nil)
	case TabRecommendations:
		return model.Paths(nil, v.Reclaimable)
	default:
		return nil
	}
}

func (a App) selectedPath() (string, bool) {
	paths := a.candidates()
	if a.selected < 0 || a.selected >= len(paths) {
		return "", false
	}
	return paths[a.selected], true
}

func (a *App) clampSelection() {
	n := len(a.candidates())
	if a.selected >= n {
		a.selected = n - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

// View renders the UI
func (a App) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Disk Usage Analyzer"))
	b.WriteString("\n")
	b.WriteString(a.renderStatus())
	b.WriteString("\n\n")

	if a.state.Scanning || !a.state.HasScan() {
		b.WriteString(a.renderHelp())
		return b.String()
	}

	b.WriteString(a.renderTabs())
	b.WriteString("\n")
	switch a.tab {
	case TabLargeFiles:
		b.WriteString(a.renderLargeFiles())
	case TabRecommendations:
		b.WriteString(a.renderRecommendations())
	case TabSummary:
		b.WriteString(a.renderSummary())
	}
	b.WriteString("\n")

	switch {
	case a.confirm != nil:
		verb := "Move to trash"
		if a.confirm.force {
			verb = "Permanently delete"
		}
		b.WriteString(ConfirmStyle.Render(fmt.Sprintf("%s %s? (y/n)", verb, a.confirm.path)))
		b.WriteString("\n")
	case a.err != nil:
		b.WriteString(ErrorStyle.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	case a.message != "":
		b.WriteString(SuccessStyle.Render(a.message))
		b.WriteString("\n")
	}

	b.WriteString(a.renderHelp())
	return b.String()
}

func (a App) renderStatus() string {
	v := a.state.Scan
	if a.err != nil && !a.state.HasScan() {
		return ErrorStyle.Render("Error: " + a.err.Error())
	}
	ignoring := ""
	if p := a.settings.IgnorePattern(); p != "" {
		ignoring = "Ignoring " + p
	}

	if !a.state.Scanning {
		line := StatsStyle.Render(report.Status(v))
		if a.state.Freed.Session > 0 {
			line += SuccessStyle.Render(fmt.Sprintf("  freed %s this session", report.Size(a.state.Freed.Session)))
		}
		if ignoring != "" {
			line += "\n" + HelpStyle.Render(ignoring)
		}
		return line
	}

	lines := []string{
		a.spinner.View() + " " + StatsStyle.Render(fmt.Sprintf("Scanning %s", v.Root)),
		fmt.Sprintf("Elapsed time: %s", report.Duration(v.Elapsed())),
		fmt.Sprintf("Usage (seen): %s in %d files", SizeStyle.Render(report.Size(v.TotalBytes)), v.FilesScanned),
	}
	if ignoring != "" {
		lines = append(lines, HelpStyle.Render(ignoring))
	}
	lines = append(lines, PathStyle.Render(truncatePath(v.CurrentFile, a.width-2)))
	return strings.Join(lines, "\n")
}

func (a App) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == a.tab {
			tabs[i] = TabActive.Render(name)
		} else {
			tabs[i] = TabInactive.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a App) renderLargeFiles() string {
	v := a.state.Scan
	if len(v.Largest) == 0 {
		return ItemStyle.Render(fmt.Sprintf("No large files detected (>= %s)", report.Size(a.settings.LargeThreshold())))
	}
	rows := make([]string, len(v.Largest))
	for i, f := range v.Largest {
		rows[i] = a.renderRow(i, f.Size, f.Path)
	}
	return a.window(rows)
}

func (a App) renderRecommendations() string {
	v := a.state.Scan
	var b strings.Builder
	b.WriteString(ItemStyle.Render(fmt.Sprintf("Directories matching %s can usually be deleted; they are re-created when needed.",
		a.settings.ReclaimablePattern())))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Detected %s\n", SizeStyle.Render(report.Size(v.ReclaimableTotal))))

	rows := make([]string, len(v.Reclaimable))
	for i, d := range v.Reclaimable {
		rows[i] = a.renderRow(i, d.Size, d.Path)
	}
	b.WriteString(a.window(rows))
	return b.String()
}

func (a App) renderSummary() string {
	v := a.state.Scan
	mapWidth := a.width - 4
	if mapWidth < 10 {
		mapWidth = 10
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		report.CategoryTable(v),
		PanelStyle.Render(renderCategoryMap(v.Categories, mapWidth, 6)),
	)
}

func (a App) renderRow(i int, size int64, path string) string {
	line := fmt.Sprintf("%10s  %s", report.Size(size), truncatePath(path, a.width-16))
	if i == a.selected {
		return ItemSelected.Render(line)
	}
	return ItemStyle.Render(line)
}

// window returns the rows that fit on screen around the selection
func (a App) window(rows []string) string {
	visible := a.height - 12
	if visible < 3 {
		visible = 3
	}
	start := 0
	if a.selected >= visible {
		start = a.selected - visible + 1
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}
	return strings.Join(rows[start:end], "\n")
}

func (a App) renderHelp() string {
	parts := make([]string, 0, len(a.keys.ShortHelp()))
	for _, k := range a.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, HelpKey.Render(h.Key)+" "+h.Desc)
	}
	return HelpStyle.Render(strings.Join(parts, "  "))
}

// truncatePath shortens a path from the left to fit width runes
func truncatePath(path string, width int) string {
	r := []rune(path)
	if width < 4 || len(r) <= width {
		return path
	}
	return "…" + string(r[len(r)-width+1:])
}
