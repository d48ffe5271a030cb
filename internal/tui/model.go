// Package tui renders an address book as plain text or as an interactive
// Bubble Tea browser.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/QA-Droid/goit-pycore-hw-06/internal/book"
)

var (
	errNoContact = errors.New("no contact selected")
	errNoPhone   = errors.New("no phone selected")
)

// borderChrome is the number of cells consumed by a pane's two borders.
const borderChrome = 2

// Mode is the model's current interaction mode.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeAdd
	ModeEdit
	ModeConfirm
)

// Model is the Bubble Tea model for browsing and editing an address book.
// The book is shared: every change made here goes through the book's own
// operations and is visible to the caller after the program exits.
type Model struct {
	book        *book.AddressBook
	names       []string
	cursor      int
	phoneCursor int
	mode        Mode
	input       textinput.Model
	help        help.Model
	browseKeys  browseKeys
	inputKeys   inputKeys
	confirmKeys confirmKeys
	confirm     confirmState
	status      string
	statusErr   bool
	width       int
	height      int
	quitting    bool
}

// NewModel creates a Model in browse mode with the first contact selected.
func NewModel(b *book.AddressBook) Model {
	in := textinput.New()
	in.Placeholder = "10-digit phone"
	in.CharLimit = 32
	in.Prompt = "phone> "

	m := Model{
		book:        b,
		input:       in,
		help:        help.New(),
		browseKeys:  BrowseKeyMap(),
		inputKeys:   InputKeyMap(),
		confirmKeys: ConfirmKeyMap(),
	}
	return m.refresh()
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeBrowse:
			return m.handleBrowseKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		}
		return m.handleInputKey(msg)
	}

	if m.editing() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.browseKeys
	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.Up):
		if len(m.names) > 0 {
			m.cursor = (m.cursor - 1 + len(m.names)) % len(m.names)
			m.phoneCursor = 0
		}

	case key.Matches(msg, k.Down):
		if len(m.names) > 0 {
			m.cursor = (m.cursor + 1) % len(m.names)
			m.phoneCursor = 0
		}

	case key.Matches(msg, k.PrevPhone):
		if n := len(m.selectedPhones()); n > 0 {
			m.phoneCursor = (m.phoneCursor - 1 + n) % n
		}

	case key.Matches(msg, k.NextPhone):
		if n := len(m.selectedPhones()); n > 0 {
			m.phoneCursor = (m.phoneCursor + 1) % n
		}

	case key.Matches(msg, k.Add):
		if m.SelectedName() == "" {
			return m.setError(errNoContact), nil
		}
		return m.startInput(ModeAdd, "")

	case key.Matches(msg, k.Edit):
		phone, ok := m.SelectedPhone()
		if !ok {
			return m.setError(errNoPhone), nil
		}
		return m.startInput(ModeEdit, phone)

	case key.Matches(msg, k.Remove):
		return m.removeSelectedPhone(), nil

	case key.Matches(msg, k.Delete):
		return m.startConfirm(), nil

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.inputKeys.Cancel):
		m.mode = ModeBrowse
		m.input.Blur()
		m.status = ""
		return m, nil

	case key.Matches(msg, m.inputKeys.Submit):
		return m.submit(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.confirmKeys.Confirm):
		m.mode = ModeBrowse
		return m.deleteSelected(), nil

	case key.Matches(msg, m.confirmKeys.Cancel):
		m.mode = ModeBrowse
		m.status = ""
	}
	return m, nil
}

// startConfirm asks before deleting the selected contact.
func (m Model) startConfirm() Model {
	name := m.SelectedName()
	if name == "" {
		return m.setError(errNoContact)
	}
	m.mode = ModeConfirm
	m.status = ""
	m.confirm = confirmState{name: name, phones: len(m.selectedPhones())}
	return m
}

func (m Model) startInput(mode Mode, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.status = ""
	m.statusErr = false
	m.input.Reset()
	m.input.SetValue(value)
	return m, m.input.Focus()
}

// submit applies the typed phone. On a validation error the model stays in
// input mode so the value can be corrected.
func (m Model) submit() Model {
	rec, err := m.book.Find(m.SelectedName())
	if err != nil {
		m.mode = ModeBrowse
		m.input.Blur()
		return m.setError(err).refresh()
	}

	value := strings.TrimSpace(m.input.Value())
	switch m.mode {
	case ModeAdd:
		if err := rec.AddPhone(value); err != nil {
			return m.setError(err)
		}
		m.phoneCursor = len(rec.Phones()) - 1
		m = m.setOK(fmt.Sprintf("added %s to %s", value, rec.Name()))
	case ModeEdit:
		old, _ := m.SelectedPhone()
		if err := rec.EditPhone(old, value); err != nil {
			return m.setError(err)
		}
		m = m.setOK(fmt.Sprintf("changed %s to %s", old, value))
	}

	m.mode = ModeBrowse
	m.input.Blur()
	return m
}

func (m Model) removeSelectedPhone() Model {
	phone, ok := m.SelectedPhone()
	if !ok {
		return m.setError(errNoPhone)
	}
	rec, err := m.book.Find(m.SelectedName())
	if err != nil {
		return m.setError(err).refresh()
	}
	if err := rec.RemovePhone(phone); err != nil {
		return m.setError(err)
	}
	if m.phoneCursor >= len(rec.Phones()) && m.phoneCursor > 0 {
		m.phoneCursor--
	}
	return m.setOK(fmt.Sprintf("removed %s from %s", phone, rec.Name()))
}

func (m Model) deleteSelected() Model {
	name := m.SelectedName()
	if name == "" {
		return m.setError(errNoContact)
	}
	if err := m.book.Delete(name); err != nil {
		return m.setError(err).refresh()
	}
	m.phoneCursor = 0
	return m.setOK(fmt.Sprintf("deleted %s", name)).refresh()
}

// refresh reloads names from the book and clamps the cursors.
func (m Model) refresh() Model {
	m.names = m.book.Names()
	if m.cursor >= len(m.names) {
		m.cursor = len(m.names) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if n := len(m.selectedPhones()); m.phoneCursor >= n {
		m.phoneCursor = max(n-1, 0)
	}
	return m
}

func (m Model) setError(err error) Model {
	m.status = err.Error()
	m.statusErr = true
	return m
}

func (m Model) setOK(msg string) Model {
	m.status = msg
	m.statusErr = false
	return m
}

// SelectedName returns the contact name at the cursor, or "" if the book
// is empty.
func (m Model) SelectedName() string {
	if len(m.names) == 0 || m.cursor < 0 || m.cursor >= len(m.names) {
		return ""
	}
	return m.names[m.cursor]
}

// SelectedPhone returns the phone at the phone cursor of the selected contact.
func (m Model) SelectedPhone() (string, bool) {
	phones := m.selectedPhones()
	if m.phoneCursor < 0 || m.phoneCursor >= len(phones) {
		return "", false
	}
	return phones[m.phoneCursor].Value(), true
}

// Mode returns the current interaction mode.
func (m Model) Mode() Mode {
	return m.mode
}

func (m Model) editing() bool {
	return m.mode == ModeAdd || m.mode == ModeEdit
}

// Status returns the last status line and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

func (m Model) selectedPhones() []book.Phone {
	name := m.SelectedName()
	if name == "" {
		return nil
	}
	rec, err := m.book.Find(name)
	if err != nil {
		return nil
	}
	return rec.Phones()
}

// View renders the names pane, the selected record pane, the status line,
// the phone input when active, and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width == 0 {
		width = 80
	}
	leftWidth, rightWidth := PaneWidths(width)

	leftStyle, rightStyle := FocusedBorder(), UnfocusedBorder()
	if m.editing() {
		leftStyle, rightStyle = UnfocusedBorder(), FocusedBorder()
	}
	leftStyle = leftStyle.Width(max(leftWidth-borderChrome, 0))
	rightStyle = rightStyle.Width(max(rightWidth-borderChrome, 0))

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Render(m.viewNames()),
		rightStyle.Render(m.viewRecord()),
	)

	sections := []string{panes}
	if m.status != "" {
		if m.statusErr {
			sections = append(sections, errorText.Render(m.status))
		} else {
			sections = append(sections, okText.Render(m.status))
		}
	}
	switch {
	case m.editing():
		sections = append(sections, m.input.View(), m.help.View(m.inputKeys))
	case m.mode == ModeConfirm:
		sections = append(sections, m.confirm.View(), m.help.View(m.confirmKeys))
	default:
		sections = append(sections, m.help.View(m.browseKeys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewNames() string {
	if len(m.names) == 0 {
		return mutedText.Render("No contacts")
	}

	var b strings.Builder
	b.WriteString(titleText.Render("Contacts"))
	for i, name := range m.names {
		b.WriteByte('\n')
		if i == m.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		b.WriteString(name)
	}
	return b.String()
}

func (m Model) viewRecord() string {
	name := m.SelectedName()
	if name == "" {
		return mutedText.Render("Select a contact")
	}

	var b strings.Builder
	b.WriteString(titleText.Render(name))
	phones := m.selectedPhones()
	if len(phones) == 0 {
		b.WriteString("\n" + mutedText.Render("no phones"))
		return b.String()
	}
	for i, p := range phones {
		b.WriteByte('\n')
		if i == m.phoneCursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		b.WriteString(p.Value())
	}
	return b.String()
}
