// Package tui provides the interactive terminal status browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"repolens.dev/repolens/internal/git"
	"repolens.dev/repolens/internal/output"
	"repolens.dev/repolens/internal/resolve"
)

type fileKind int

const (
	kindStaged fileKind = iota
	kindModified
	kindUntracked
	kindDeleted
)

type fileEntry struct {
	path string
	kind fileKind
}

type browseStyles struct {
	header    lipgloss.Style
	cursor    lipgloss.Style
	staged    lipgloss.Style
	modified  lipgloss.Style
	untracked lipgloss.Style
	deleted   lipgloss.Style
	dim       lipgloss.Style
	errText   lipgloss.Style
}

func newBrowseStyles() browseStyles {
	return browseStyles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ccbf1")),
		cursor:    lipgloss.NewStyle().Bold(true),
		staged:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4dca7d")),
		modified:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f5c800")),
		untracked: lipgloss.NewStyle().Foreground(lipgloss.Color("#f89048")),
		deleted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f46251")),
		dim:       lipgloss.NewStyle().Faint(true),
		errText:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Messages flowing through the model
type (
	stateLoadedMsg struct {
		status   *git.Status
		unpushed []git.Commit
	}
	diffLoadedMsg struct{ diff string }
	actionDoneMsg struct{}
	errMsg        struct{ err error }
)

// BrowseModel is the bubbletea model for the interactive status browser
type BrowseModel struct {
	repo *git.Repo

	status   *git.Status
	unpushed []git.Commit
	files    []fileEntry
	cursor   int

	showDiff bool
	diffView viewport.Model

	committing bool
	message    textinput.Model

	width   int
	height  int
	lastErr error

	styles browseStyles
}

// NewBrowseModel creates the browser model for a repository
func NewBrowseModel(repo *git.Repo) BrowseModel {
	input := textinput.New()
	input.Placeholder = "Commit message"
	input.CharLimit = 200

	return BrowseModel{
		repo:     repo,
		diffView: viewport.New(0, 0),
		message:  input,
		styles:   newBrowseStyles(),
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return m.loadState()
}

func (m BrowseModel) loadState() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		status, err := m.repo.Status(ctx)
		if err != nil {
			return errMsg{err}
		}
		return stateLoadedMsg{status: status, unpushed: resolve.Resolve(ctx, m.repo)}
	}
}

func (m BrowseModel) loadDiff() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.files) {
		return nil
	}
	entry := m.files[m.cursor]
	return func() tea.Msg {
		patch, err := m.repo.Diff(context.Background(), git.DiffOptions{
			Staged: entry.kind == kindStaged,
			Paths:  []string{entry.path},
		})
		if err != nil {
			return errMsg{err}
		}
		return diffLoadedMsg{diff: output.HighlightDiff(patch)}
	}
}

func (m BrowseModel) stageCursor() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.files) {
		return nil
	}
	entry := m.files[m.cursor]
	return func() tea.Msg {
		var err error
		if entry.kind == kindStaged {
			err = m.repo.Unstage(context.Background(), entry.path)
		} else {
			err = m.repo.Stage(context.Background(), entry.path)
		}
		if err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{}
	}
}

func (m BrowseModel) commit() tea.Cmd {
	message := strings.TrimSpace(m.message.Value())
	return func() tea.Msg {
		if message == "" {
			return errMsg{fmt.Errorf("commit message is empty")}
		}
		ctx := context.Background()
		staged, err := m.repo.HasStagedChanges(ctx)
		if err != nil {
			return errMsg{err}
		}
		if !staged {
			return errMsg{fmt.Errorf("no files staged for commit")}
		}
		if err := m.repo.Commit(ctx, git.CommitOptions{Message: message}); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{}
	}
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.diffView.Width = msg.Width
		m.diffView.Height = msg.Height - 2
		return m, nil

	case stateLoadedMsg:
		m.status = msg.status
		m.unpushed = msg.unpushed
		m.files = flattenFiles(msg.status)
		if m.cursor >= len(m.files) {
			m.cursor = max(0, len(m.files)-1)
		}
		return m, nil

	case diffLoadedMsg:
		m.showDiff = true
		m.diffView.SetContent(msg.diff)
		m.diffView.GotoTop()
		return m, nil

	case actionDoneMsg:
		m.lastErr = nil
		m.committing = false
		m.message.Reset()
		return m, m.loadState()

	case errMsg:
		m.lastErr = msg.err
		m.committing = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.committing {
		switch msg.String() {
		case "enter":
			return m, m.commit()
		case "esc":
			m.committing = false
			m.message.Reset()
			return m, nil
		}
		var cmd tea.Cmd
		m.message, cmd = m.message.Update(msg)
		return m, cmd
	}

	if m.showDiff {
		switch msg.String() {
		case "q", "esc":
			m.showDiff = false
			return m, nil
		}
		var cmd tea.Cmd
		m.diffView, cmd = m.diffView.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.files)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "s", " ":
		return m, m.stageCursor()
	case "d", "enter":
		return m, m.loadDiff()
	case "c":
		m.committing = true
		m.message.Focus()
		return m, textinput.Blink
	case "r":
		return m, m.loadState()
	}
	return m, nil
}

func (m BrowseModel) View() string {
	if m.showDiff {
		return m.diffView.View() + "\n" + m.styles.dim.Render("q/esc back · arrows scroll")
	}

	var b strings.Builder

	if m.status != nil {
		header := m.styles.header.Render("◉ " + m.status.CurrentBranch)
		if m.status.TrackingRef != "" {
			header += m.styles.dim.Render(" → " + m.status.TrackingRef)
		}
		b.WriteString(header + "\n\n")
	}

	if len(m.files) == 0 {
		b.WriteString(m.styles.dim.Render("working tree clean") + "\n")
	}
	for i, entry := range m.files {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.cursor.Render("> ")
		}
		b.WriteString(cursor + m.renderEntry(entry) + "\n")
	}

	if len(m.unpushed) > 0 {
		b.WriteString("\n" + m.styles.dim.Render(fmt.Sprintf("%d unpushed commit(s)", len(m.unpushed))) + "\n")
	}

	if m.committing {
		b.WriteString("\n" + m.message.View() + "\n")
		b.WriteString(m.styles.dim.Render("enter commit · esc cancel") + "\n")
	} else {
		b.WriteString("\n" + m.styles.dim.Render("s stage/unstage · d diff · c commit · r refresh · q quit") + "\n")
	}

	if m.lastErr != nil {
		b.WriteString(m.styles.errText.Render(m.lastErr.Error()) + "\n")
	}

	return b.String()
}

func (m BrowseModel) renderEntry(entry fileEntry) string {
	switch entry.kind {
	case kindStaged:
		return m.styles.staged.Render("● " + entry.path)
	case kindModified:
		return m.styles.modified.Render("○ " + entry.path)
	case kindUntracked:
		return m.styles.untracked.Render("? " + entry.path)
	case kindDeleted:
		return m.styles.deleted.Render("✕ " + entry.path)
	}
	return entry.path
}

func flattenFiles(status *git.Status) []fileEntry {
	var files []fileEntry
	for _, path := range status.Staged {
		files = append(files, fileEntry{path: path, kind: kindStaged})
	}
	for _, ren := range status.Renamed {
		files = append(files, fileEntry{path: ren.To, kind: kindStaged})
	}
	for _, path := range status.Modified {
		files = append(files, fileEntry{path: path, kind: kindModified})
	}
	for _, path := range status.Deleted {
		files = append(files, fileEntry{path: path, kind: kindDeleted})
	}
	for _, path := range status.Untracked {
		files = append(files, fileEntry{path: path, kind: kindUntracked})
	}
	return files
}

// Run starts the interactive browser and blocks until the user quits
func Run(repo *git.Repo) error {
	program := tea.NewProgram(NewBrowseModel(repo), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
