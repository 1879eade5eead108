package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vvka-141/tenantload/pkg/tenantload"
)

var (
	// ErrNotInteractive is returned by PickKeys without a terminal.
	ErrNotInteractive = fmt.Errorf("key picker needs an interactive terminal: %w", tenantload.ErrInvalidConfig)

	// ErrCancelled is returned when the picker is quit without confirming.
	ErrCancelled = errors.New("key selection cancelled")
)

type pickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

func defaultPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

var (
	pickerTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1)
	pickerCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	pickerIdleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pickerDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(6)
	pickerHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// KeyOption is one trigger key offered by the picker.
type KeyOption struct {
	Key string
	// Detail lists what the key loads, e.g. "ref-data/groups → groups".
	Detail string
}

// KeyPicker is a multi-select over rule trigger keys.
type KeyPicker struct {
	options   []KeyOption
	checked   []bool
	cursor    int
	keyMap    pickerKeyMap
	submitted bool
	cancelled bool
}

// NewKeyPicker creates a picker with the keys enabled in current pre-checked.
func NewKeyPicker(options []KeyOption, current tenantload.Flags) KeyPicker {
	checked := make([]bool, len(options))
	for i, opt := range options {
		checked[i] = current.Enabled(opt.Key)
	}
	return KeyPicker{
		options: options,
		checked: checked,
		keyMap:  defaultPickerKeyMap(),
	}
}

// Init implements tea.Model.
func (p KeyPicker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p KeyPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch {
	case key.Matches(km, p.keyMap.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(km, p.keyMap.Down):
		if p.cursor < len(p.options)-1 {
			p.cursor++
		}
	case key.Matches(km, p.keyMap.Toggle):
		if len(p.checked) > 0 {
			p.checked = append([]bool(nil), p.checked...)
			p.checked[p.cursor] = !p.checked[p.cursor]
		}
	case key.Matches(km, p.keyMap.Confirm):
		p.submitted = true
		return p, tea.Quit
	case key.Matches(km, p.keyMap.Quit):
		p.cancelled = true
		return p, tea.Quit
	}
	return p, nil
}

// View implements tea.Model.
func (p KeyPicker) View() string {
	var b strings.Builder

	b.WriteString(pickerTitleStyle.Render("Select the data to load"))
	b.WriteString("\n\n")

	for i, opt := range p.options {
		box := "[ ]"
		if p.checked[i] {
			box = "[x]"
		}

		line := box + " " + opt.Key
		if i == p.cursor {
			b.WriteString(pickerCursorStyle.Render("> " + line))
		} else {
			b.WriteString(pickerIdleStyle.Render("  " + line))
		}
		b.WriteString("\n")

		if opt.Detail != "" {
			b.WriteString(pickerDetailStyle.Render(opt.Detail))
			b.WriteString("\n")
		}
	}

	b.WriteString(pickerHelpStyle.Render("\n↑/↓ navigate • space toggle • enter load • q quit"))
	return b.String()
}

// Flags returns every offered key as "true" or "false".
func (p KeyPicker) Flags() tenantload.Flags {
	selected := make(map[string]bool, len(p.options))
	for i, opt := range p.options {
		selected[opt.Key] = p.checked[i]
	}
	return tenantload.FlagsFromBools(selected)
}

// Submitted returns true if the user confirmed the selection.
func (p KeyPicker) Submitted() bool {
	return p.submitted
}

// Cancelled returns true if the user quit the picker.
func (p KeyPicker) Cancelled() bool {
	return p.cancelled
}

// OptionsForRules returns one option per distinct rule key, in rule order.
func OptionsForRules(rules []tenantload.LoadRule) []KeyOption {
	var options []KeyOption
	index := make(map[string]int)
	for _, r := range rules {
		detail := r.SourceDir() + " → " + r.URIPath
		if i, ok := index[r.Key]; ok {
			options[i].Detail += ", " + detail
			continue
		}
		index[r.Key] = len(options)
		options = append(options, KeyOption{Key: r.Key, Detail: detail})
	}
	return options
}

// PickKeys asks which rule keys to enable. Keys of current that are not
// rule keys are kept unchanged.
func PickKeys(rules []tenantload.LoadRule, current tenantload.Flags) (tenantload.Flags, error) {
	if !IsInteractive() {
		return nil, ErrNotInteractive
	}

	model, err := tea.NewProgram(NewKeyPicker(OptionsForRules(rules), current)).Run()
	if err != nil {
		return nil, fmt.Errorf("key picker failed: %w", err)
	}

	picker := model.(KeyPicker)
	if !picker.Submitted() {
		return nil, ErrCancelled
	}

	result := make(tenantload.Flags, len(current))
	for k, v := range current {
		result[k] = v
	}
	for k, v := range picker.Flags() {
		result[k] = v
	}
	return result, nil
}
