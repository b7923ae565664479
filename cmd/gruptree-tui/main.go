// Command gruptree-tui is an interactive browser for the extracted
// group tree: pick a snapshot date on the left, inspect the forest and
// the edge rows on the right.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/gruptree/pkg/gruptree"
	"github.com/dd0wney/gruptree/pkg/logging"
	"github.com/dd0wney/gruptree/pkg/simfiles"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(1)

	selectedDateStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#FF00FF")).
				Padding(0, 1)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	treeBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2).
			MarginLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(1)
)

type pane int

const (
	treePane pane = iota
	rowsPane
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Tab   key.Binding
	Quit  key.Binding
	Help key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "earlier date"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "later date"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "tree/rows"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Tab, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Tab, k.Help, k.Quit},
	}
}

type model struct {
	deckName string
	result   *gruptree.Table
	dates    []string
	selected int
	pane     pane
	rows     table.Model
	help     help.Model
	keys     keyMap
	width    int
	height   int
}

func initialModel(deckName string, result *gruptree.Table) model {
	columns := []table.Column{
		{Title: "CHILD", Width: 12},
		{Title: "PARENT", Width: 12},
		{Title: "TYPE", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	t.SetStyles(s)

	var dates []string
	for _, d := range result.Dates() {
		dates = append(dates, d.Format("2006-01-02"))
	}

	m := model{
		deckName: deckName,
		result:   result,
		dates:    dates,
		rows:     t,
		help:     help.New(),
		keys:     keys,
	}
	m.reloadRows()
	return m
}

func (m *model) reloadRows() {
	if len(m.dates) == 0 {
		return
	}
	date := m.result.Dates()[m.selected]
	var rows []table.Row
	for _, r := range m.result.At(date) {
		rows = append(rows, table.Row{r.Child, r.Parent, string(r.Type)})
	}
	m.rows.SetRows(rows)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
				m.reloadRows()
			}

		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.dates)-1 {
				m.selected++
				m.reloadRows()
			}

		case key.Matches(msg, m.keys.Tab):
			if m.pane == treePane {
				m.pane = rowsPane
			} else {
				m.pane = treePane
			}

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("gruptree: " + m.deckName))
	b.WriteString("\n\n")

	if len(m.dates) == 0 {
		b.WriteString(" No group tree information in this deck.\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	var left strings.Builder
	for i, d := range m.dates {
		if i == m.selected {
			left.WriteString(selectedDateStyle.Render(d))
		} else {
			left.WriteString(dateStyle.Render(d))
		}
		left.WriteByte('\n')
	}

	date := m.result.Dates()[m.selected]
	var right string
	if m.pane == treePane {
		var trees strings.Builder
		for _, root := range m.result.ForestAt(date) {
			trees.WriteString(root.Render())
		}
		right = treeBoxStyle.Render(strings.TrimRight(trees.String(), "\n"))
	} else {
		right = m.rows.View()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left.String(), right))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func main() {
	startDate := flag.String("startdate", "", "First schedule date if not defined in input file, YYYY-MM-DD")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] DATAFILE\n", os.Args[0])
		os.Exit(2)
	}

	log := logging.Nop()
	files := simfiles.New(flag.Arg(0), log)
	d, err := files.Deck()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gruptree-tui: %v\n", err)
		os.Exit(1)
	}

	opts := gruptree.Options{Logger: log}
	if *startDate != "" {
		t, err := time.ParseInLocation("2006-01-02", *startDate, time.UTC)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gruptree-tui: bad --startdate: %v\n", err)
			os.Exit(1)
		}
		opts.StartDate = &t
	}
	result, err := gruptree.Extract(d, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gruptree-tui: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(flag.Arg(0), result), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "gruptree-tui: %v\n", err)
		os.Exit(1)
	}
}
