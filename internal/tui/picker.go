// Package tui provides terminal user interface components for forage-remote
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/address"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/port"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionRemove
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action  Action
	Address address.Address
}

// addressItem implements list.Item for address display
type addressItem struct {
	addr address.Address
}

func (i addressItem) Title() string {
	return i.addr.String()
}

func (i addressItem) Description() string {
	status := "●"
	if !port.Valid(i.addr.Port) {
		status = "⚠"
	}
	host := i.addr.Host
	if host == "" {
		host = "(any)"
	}
	return fmt.Sprintf("%s host %s | port %d", status, host, i.addr.Port)
}

func (i addressItem) FilterValue() string {
	return i.addr.String()
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the address picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new address picker
func NewPicker(title string, addrs []address.Address) Model {
	items := make([]list.Item, len(addrs))
	for i, a := range addrs {
		items[i] = addressItem{addr: a}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(addressItem); ok {
				m.result = PickerResult{Action: ActionSelect, Address: item.addr}
				m.quitting = true
				return m, tea.Quit
			}

		case "d":
			if item, ok := m.list.SelectedItem().(addressItem); ok {
				m.result = PickerResult{Action: ActionRemove, Address: item.addr}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Select  [d] Remove  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive address picker
func RunPicker(title string, addrs []address.Address) (PickerResult, error) {
	if len(addrs) == 0 {
		return PickerResult{Action: ActionNone}, nil
	}

	m := NewPicker(title, addrs)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimpleList is a non-interactive listing of an address set
func SimpleList(key string, addrs []address.Address) string {
	var sb strings.Builder

	sb.WriteString(key + "\n")
	sb.WriteString(strings.Repeat("─", 40) + "\n")

	if len(addrs) == 0 {
		sb.WriteString("No addresses stored.\n")
		sb.WriteString("Add one with: forage-remote addr add " + key + " <host:port>\n")
		return sb.String()
	}

	for i, a := range addrs {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, a))
	}

	return sb.String()
}
