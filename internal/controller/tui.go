package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	footerStyle  = lipgloss.NewStyle().Faint(true)
)

// reserved for the title and footer lines of the pager.
const pagerChromeLines = 4

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
	config StartConfig
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.config = newStartConfig(options...)

	return nil
}

// Close finalizes the UI.
func (p *TUI) Close(_ context.Context) {}

// Wait returns once the pager was closed. Pagers run in the foreground, so there is
// nothing left to wait for.
func (p *TUI) Wait(_ context.Context) {}

// DisplayEvents shows the events a command published and its outcome.
func (p *TUI) DisplayEvents(ctx context.Context, command string, events []m.Event, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var b strings.Builder

	for _, event := range events {
		line := DescribeEvent(event)
		if m.IsFailureEvent(event) {
			line = failureStyle.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	if err != nil {
		b.WriteString(failureStyle.Render(fmt.Sprintf("%s failed [%s]: %v", command, errorLabel(err), err)))
	} else {
		b.WriteString(okStyle.Render(fmt.Sprintf("%s ok (%d event(s))", command, len(events))))
	}

	b.WriteString("\n")

	_, writeErr := fmt.Fprint(p.output, b.String())

	return writeErr
}

// DisplayConfiguration shows the members of item.
func (p *TUI) DisplayConfiguration(ctx context.Context, item m.ConfigurationItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.page(item.ID().String(), renderConfigurationTable(item))
}

// DisplayHistory shows the stored events of root.
func (p *TUI) DisplayHistory(ctx context.Context, root string, entries []HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(entries) == 0 {
		return p.page(root, "No events recorded\n")
	}

	return p.page(root, renderHistoryTable(entries))
}

// DisplayFixtureItems shows the configured items of root.
func (p *TUI) DisplayFixtureItems(ctx context.Context, root string, items []FixtureItemSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(items) == 0 {
		return p.page(root, "No fixture items configured\n")
	}

	return p.page(root, renderFixtureItemsTable(items))
}

// page prints short content directly and opens a pager for anything taller than the terminal.
func (p *TUI) page(title, content string) error {
	model := newPagerModel(title, content)

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model = model.resize(width, height)
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.staticView())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// pagerModel scrolls rendered content inside a viewport.
type pagerModel struct {
	title    string
	content  string
	lines    int
	width    int
	height   int
	viewport viewport.Model
}

func newPagerModel(title, content string) pagerModel {
	content = strings.TrimRight(content, "\n")

	return pagerModel{
		title:   title,
		content: content,
		lines:   strings.Count(content, "\n") + 1,
	}
}

func (pm pagerModel) resize(width, height int) pagerModel {
	pm.width = width
	pm.height = height

	bodyHeight := max(height-pagerChromeLines, 1)
	pm.viewport = viewport.New(width, bodyHeight)
	pm.viewport.SetContent(pm.content)

	return pm
}

// needsPagination is false when the terminal size is unknown.
func (pm pagerModel) needsPagination() bool {
	if pm.height == 0 {
		return false
	}

	return pm.lines+pagerChromeLines > pm.height
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		offset := pm.viewport.YOffset
		pm = pm.resize(msg.Width, msg.Height)
		pm.viewport.SetYOffset(offset)

		return pm, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		case "g", "home":
			pm.viewport.GotoTop()
			return pm, nil
		case "G", "end":
			pm.viewport.GotoBottom()
			return pm, nil
		}
	}

	var cmd tea.Cmd

	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(pm.title))
	b.WriteString("\n\n")
	b.WriteString(pm.viewport.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf(
		"%d lines  %3.0f%%  ↑/↓ scroll  g/G top/bottom  q quit",
		pm.lines, pm.viewport.ScrollPercent()*100,
	)))

	return b.String()
}

func (pm pagerModel) staticView() string {
	return titleStyle.Render(pm.title) + "\n\n" + pm.content + "\n"
}
