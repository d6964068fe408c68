// Package tui is the terminal rendition of the country/region form.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joshuafuller/stateprovince/internal/catalog"
	"github.com/joshuafuller/stateprovince/internal/filter"
)

type focus int

const (
	focusCountry focus = iota
	focusRegion
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	labelStyle = lipgloss.NewStyle().Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#02BA84"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF7CCB"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Model is the bubbletea model for the form.
type Model struct {
	country *filter.ListCountry
	region  *filter.ListRegion
	filter  *filter.Filter

	visible       []filter.Option // countries matching filterText
	cursor        int
	regionCursor  int
	focus         focus
	filtering     bool
	filterText    string
	status        string
	width, height int

	keys     keyMap
	help     help.Model
	quitting bool
	done     bool
}

// New builds the form over cat with country preselected (catalog default
// when empty). The region list is narrowed before the first frame.
func New(cat *catalog.Catalog, country string) Model {
	countries := filter.NewListCountry(cat.CountryOptions(country))
	regions := filter.NewListRegion(cat.RegionOptions(countries.SelectedValue(), ""))

	m := Model{
		country: countries,
		region:  regions,
		filter:  filter.New(countries, regions),
		keys:    keys,
		help:    help.New(),
		width:   80,
		height:  24,
	}
	m.filter.OnReady()
	m.updateFilter()
	m.cursor = m.indexOf(countries.SelectedValue())
	m.status = fmt.Sprintf("Loaded %d countries, %d regions", len(cat.Countries), cat.RegionCount())
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFiltering(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Search):
			m.focus = focusCountry
			m.filtering = true
			m.status = "Type to filter countries, Enter to choose"

		case key.Matches(msg, m.keys.Switch):
			m.toggleFocus()

		case key.Matches(msg, m.keys.Up):
			if m.focus == focusCountry && m.cursor > 0 {
				m.cursor--
			} else if m.focus == focusRegion && m.regionCursor > 0 {
				m.regionCursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.focus == focusCountry && m.cursor < len(m.visible)-1 {
				m.cursor++
			} else if m.focus == focusRegion && m.regionCursor < len(m.region.Options())-1 {
				m.regionCursor++
			}

		case key.Matches(msg, m.keys.Select):
			if m.focus == focusCountry {
				m.chooseCountry()
			} else {
				m.chooseRegion()
			}

		case key.Matches(msg, m.keys.Accept):
			if m.focus == focusCountry {
				m.chooseCountry()
				if m.filter.State() == filter.Visible {
					m.focus = focusRegion
					return m, nil
				}
			} else {
				m.chooseRegion()
			}
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.filtering = false
		m.filterText = ""
		m.status = "Search cancelled"
	case tea.KeyEnter:
		m.filtering = false
		m.chooseCountry()
		m.filterText = ""
	case tea.KeyBackspace:
		if len(m.filterText) > 0 {
			runes := []rune(m.filterText)
			m.filterText = string(runes[:len(runes)-1])
		}
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeySpace:
		m.filterText += " "
	case tea.KeyRunes:
		m.filterText += string(msg.Runes)
	}

	current := m.country.SelectedValue()
	m.updateFilter()
	if !m.filtering {
		m.cursor = m.indexOf(current)
	} else if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
	return m, nil
}

// updateFilter narrows the country list to names or codes containing filterText.
func (m *Model) updateFilter() {
	needle := strings.ToLower(m.filterText)
	m.visible = nil
	for _, opt := range m.country.Options() {
		if needle == "" ||
			strings.Contains(strings.ToLower(opt.Label), needle) ||
			strings.Contains(strings.ToLower(opt.Value), needle) {
			m.visible = append(m.visible, opt)
		}
	}
}

func (m *Model) indexOf(code string) int {
	for i, opt := range m.visible {
		if opt.Value == code {
			return i
		}
	}
	return 0
}

func (m *Model) toggleFocus() {
	if m.focus == focusRegion {
		m.focus = focusCountry
		return
	}
	if m.filter.State() != filter.Visible {
		m.status = "No states or provinces for this country"
		return
	}
	m.focus = focusRegion
}

func (m *Model) chooseCountry() {
	if len(m.visible) == 0 {
		m.status = "No country matches"
		return
	}
	opt := m.visible[m.cursor]
	if opt.Value == m.country.SelectedValue() && m.filter.Ready() {
		return
	}
	m.country.Select(opt.Value)
	m.filter.OnCountryChange()
	m.updateFilter()
	m.regionCursor = 0

	if m.filter.State() == filter.Visible {
		m.status = fmt.Sprintf("%s: %d regions", opt.Label, len(m.region.Options()))
	} else {
		m.status = fmt.Sprintf("%s has no states or provinces", opt.Label)
	}
	slog.Debug("country chosen", "country", opt.Value, "state", m.filter.State())
}

func (m *Model) chooseRegion() {
	opts := m.region.Options()
	if len(opts) == 0 || m.regionCursor >= len(opts) {
		return
	}
	m.region.Select(opts[m.regionCursor].Value)
	m.status = fmt.Sprintf("Selected: %s", opts[m.regionCursor].Label)
}

// Result is the chosen country and region. ok is false when the user quit.
func (m Model) Result() (country, region string, ok bool) {
	if !m.done {
		return "", "", false
	}
	if m.filter.State() == filter.Visible {
		region = m.region.SelectedValue()
	}
	return m.country.SelectedValue(), region, true
}

// RegionVisible reports whether the region field is shown.
func (m Model) RegionVisible() bool {
	return m.filter.State() == filter.Visible
}

func (m Model) View() string {
	if m.quitting {
		return "Goodbye! 👋\n"
	}

	titleBar := titleStyle.Width(m.width).Align(lipgloss.Center).Render("Country / State-Province")
	s := titleBar + "\n\n"

	// Reserve space for title, labels, status, help and the region field
	maxVisible := (m.height - 10) / 2
	if maxVisible < 5 {
		maxVisible = 5
	}

	s += labelStyle.Render("Country") + "\n"
	if m.filtering {
		s += fmt.Sprintf("Filter: %s█\n", m.filterText)
	}
	s += renderList(m.visible, m.cursor, m.focus == focusCountry, maxVisible)

	if m.filter.State() == filter.Visible {
		s += "\n" + labelStyle.Render("State/Province") + "\n"
		s += renderList(m.region.Options(), m.regionCursor, m.focus == focusRegion, maxVisible)
	}

	s += "\n" + m.status + "\n\n"
	s += m.help.View(m.keys)

	return s
}

// renderList draws a window of at most maxVisible options around the cursor.
func renderList(opts []filter.Option, cursor int, focused bool, maxVisible int) string {
	start, end := 0, len(opts)
	if len(opts) > maxVisible {
		start = cursor - maxVisible/2
		if start < 0 {
			start = 0
		}
		end = start + maxVisible
		if end > len(opts) {
			end = len(opts)
			start = end - maxVisible
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		opt := opts[i]

		prefix := "  "
		if focused && i == cursor {
			prefix = cursorStyle.Render("→ ")
		}

		mark := "○ "
		if opt.Selected {
			mark = selectedStyle.Render("● ")
		}

		label := opt.Label
		if flag := catalog.Flag(opt.Value); flag != "" && opt.Tag == "" {
			label = flag + " " + label
		}
		line := fmt.Sprintf("%s%s%s", prefix, mark, label)
		if focused && i == cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(opts) > maxVisible {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(opts))) + "\n")
	}
	return b.String()
}
