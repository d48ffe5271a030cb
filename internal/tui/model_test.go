package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/QA-Droid/goit-pycore-hw-06/internal/book"
)

// sampleBook returns John (two phones) followed by Jane (one phone).
func sampleBook(t *testing.T) *book.AddressBook {
	t.Helper()
	b := book.New()
	for _, c := range []struct {
		name   string
		phones []string
	}{
		{"John", []string{"0937777777", "5555555555"}},
		{"Jane", []string{"9876543210"}},
	} {
		r, err := book.NewRecord(c.name)
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range c.phones {
			if err := r.AddPhone(p); err != nil {
				t.Fatal(err)
			}
		}
		b.AddRecord(r)
	}
	return b
}

// runeKey builds a KeyMsg for a printable key.
func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msgs in order and returns the resulting Model.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update() returned %T, want Model", next)
		}
	}
	return m
}

// typeText sends each rune of s as its own key press.
func typeText(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, runeKey(string(r)))
	}
	return msgs
}

func TestNewModel_SelectsFirstContact(t *testing.T) {
	m := NewModel(sampleBook(t))

	if m.SelectedName() != "John" {
		t.Errorf("SelectedName() = %q, want %q", m.SelectedName(), "John")
	}
	if p, ok := m.SelectedPhone(); !ok || p != "0937777777" {
		t.Errorf("SelectedPhone() = %q, %v; want 0937777777, true", p, ok)
	}
	if m.Mode() != ModeBrowse {
		t.Errorf("Mode() = %v, want ModeBrowse", m.Mode())
	}
}

func TestNewModel_EmptyBook(t *testing.T) {
	m := NewModel(book.New())

	if m.SelectedName() != "" {
		t.Errorf("SelectedName() = %q, want empty", m.SelectedName())
	}
	if !strings.Contains(m.View(), "No contacts") {
		t.Errorf("View() = %q, want to contain %q", m.View(), "No contacts")
	}
}

func TestModel_Init_ReturnsNil(t *testing.T) {
	if cmd := NewModel(book.New()).Init(); cmd != nil {
		t.Error("Init() should return nil")
	}
}

func TestModel_Navigation(t *testing.T) {
	m := NewModel(sampleBook(t))

	m = send(t, m, runeKey("j"))
	if m.SelectedName() != "Jane" {
		t.Errorf("after j: SelectedName() = %q, want Jane", m.SelectedName())
	}

	// Wraps around.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.SelectedName() != "John" {
		t.Errorf("after down: SelectedName() = %q, want John", m.SelectedName())
	}

	m = send(t, m, runeKey("l"))
	if p, _ := m.SelectedPhone(); p != "5555555555" {
		t.Errorf("after l: SelectedPhone() = %q, want 5555555555", p)
	}

	m = send(t, m, runeKey("k"))
	if m.SelectedName() != "Jane" {
		t.Errorf("after k: SelectedName() = %q, want Jane", m.SelectedName())
	}
	if p, _ := m.SelectedPhone(); p != "9876543210" {
		t.Errorf("phone cursor should reset on contact change, got %q", p)
	}
}

func TestModel_AddPhone(t *testing.T) {
	// Given the model on John
	b := sampleBook(t)
	m := NewModel(b)

	// When a is pressed, a valid phone typed, and enter pressed
	m = send(t, m, runeKey("a"))
	if m.Mode() != ModeAdd {
		t.Fatalf("Mode() = %v, want ModeAdd", m.Mode())
	}
	m = send(t, m, typeText("0501234567")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Then the phone is appended to John's record
	if m.Mode() != ModeBrowse {
		t.Errorf("Mode() = %v, want ModeBrowse", m.Mode())
	}
	john, _ := b.Find("John")
	if got, want := john.String(), "Contact name: John, phones: 0937777777; 5555555555; 0501234567"; got != want {
		t.Errorf("John = %q, want %q", got, want)
	}
	if p, _ := m.SelectedPhone(); p != "0501234567" {
		t.Errorf("SelectedPhone() = %q, want the new phone", p)
	}
}

func TestModel_AddInvalidPhoneStaysInInput(t *testing.T) {
	b := sampleBook(t)
	m := NewModel(b)

	m = send(t, m, runeKey("a"))
	m = send(t, m, typeText("123")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Mode() != ModeAdd {
		t.Errorf("Mode() = %v, want ModeAdd after invalid input", m.Mode())
	}
	status, isErr := m.Status()
	if !isErr || !strings.Contains(status, "10 digits") {
		t.Errorf("Status() = %q, %v; want length error", status, isErr)
	}
	john, _ := b.Find("John")
	if len(john.Phones()) != 2 {
		t.Errorf("John phones = %d, want 2 (unchanged)", len(john.Phones()))
	}

	// Esc leaves input mode without changes.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Mode() != ModeBrowse {
		t.Errorf("Mode() = %v, want ModeBrowse after esc", m.Mode())
	}
}

func TestModel_EditPhone(t *testing.T) {
	b := sampleBook(t)
	m := NewModel(b)

	// Edit prefills the current value; clear it first.
	m = send(t, m, runeKey("e"))
	if m.Mode() != ModeEdit {
		t.Fatalf("Mode() = %v, want ModeEdit", m.Mode())
	}
	for range len("0937777777") {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = send(t, m, typeText("0936666666")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	john, _ := b.Find("John")
	if got, want := john.String(), "Contact name: John, phones: 0936666666; 5555555555"; got != want {
		t.Errorf("John = %q, want %q", got, want)
	}
}

func TestModel_EditInvalidLeavesRecord(t *testing.T) {
	b := sampleBook(t)
	m := NewModel(b)

	m = send(t, m, runeKey("e"))
	m = send(t, m, typeText("x")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if _, isErr := m.Status(); !isErr {
		t.Error("Status() should report an error")
	}
	john, _ := b.Find("John")
	if got, want := john.String(), "Contact name: John, phones: 0937777777; 5555555555"; got != want {
		t.Errorf("John = %q, want unchanged %q", got, want)
	}
}

func TestModel_RemovePhone(t *testing.T) {
	b := sampleBook(t)
	m := NewModel(b)

	m = send(t, m, runeKey("l"), runeKey("x"))

	john, _ := b.Find("John")
	if got, want := john.String(), "Contact name: John, phones: 0937777777"; got != want {
		t.Errorf("John = %q, want %q", got, want)
	}
	if p, _ := m.SelectedPhone(); p != "0937777777" {
		t.Errorf("SelectedPhone() = %q, want cursor clamped to remaining phone", p)
	}

	// Removing the last phone leaves nothing to remove.
	m = send(t, m, runeKey("x"), runeKey("x"))
	if status, isErr := m.Status(); !isErr || status != errNoPhone.Error() {
		t.Errorf("Status() = %q, %v; want %q", status, isErr, errNoPhone)
	}
}

func TestModel_DeleteContact(t *testing.T) {
	// Given the model on Jane
	b := sampleBook(t)
	m := NewModel(b)
	m = send(t, m, runeKey("j"))

	// When d is pressed the deletion waits for confirmation
	m = send(t, m, runeKey("d"))
	if m.Mode() != ModeConfirm {
		t.Fatalf("Mode() = %v, want ModeConfirm", m.Mode())
	}
	if !strings.Contains(m.View(), "Delete Jane?") {
		t.Errorf("View() missing confirmation prompt:\n%s", m.View())
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d before confirm, want 2", b.Len())
	}

	// Then y deletes Jane and the cursor clamps to John
	m = send(t, m, runeKey("y"))
	if _, err := b.Find("Jane"); !errors.Is(err, book.ErrNotFound) {
		t.Errorf("Find(Jane) error = %v, want ErrNotFound", err)
	}
	if m.SelectedName() != "John" {
		t.Errorf("SelectedName() = %q, want cursor clamped to John", m.SelectedName())
	}

	m = send(t, m, runeKey("d"), tea.KeyMsg{Type: tea.KeyEnter}, runeKey("d"))
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
	if status, _ := m.Status(); status != errNoContact.Error() {
		t.Errorf("Status() = %q, want %q", status, errNoContact)
	}
	if m.Mode() != ModeBrowse {
		t.Errorf("Mode() = %v, want ModeBrowse on an empty book", m.Mode())
	}
}

func TestModel_DeleteCancelled(t *testing.T) {
	for _, cancel := range []tea.KeyMsg{runeKey("n"), {Type: tea.KeyEsc}} {
		t.Run(cancel.String(), func(t *testing.T) {
			b := sampleBook(t)
			m := NewModel(b)

			m = send(t, m, runeKey("d"), cancel)

			if m.Mode() != ModeBrowse {
				t.Errorf("Mode() = %v, want ModeBrowse", m.Mode())
			}
			if b.Len() != 2 {
				t.Errorf("Len() = %d, want 2 (nothing deleted)", b.Len())
			}
		})
	}
}

func TestConfirmState_View(t *testing.T) {
	tests := []struct {
		phones int
		want   string
	}{
		{0, "no phones"},
		{1, "Its 1 phone will"},
		{2, "Its 2 phones will"},
	}
	for _, tt := range tests {
		got := confirmState{name: "John", phones: tt.phones}.View()
		if !strings.HasPrefix(got, "Delete John?") || !strings.Contains(got, tt.want) {
			t.Errorf("View() with %d phones = %q, want to contain %q", tt.phones, got, tt.want)
		}
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := NewModel(sampleBook(t))
	m = send(t, m, runeKey("?"))
	if !m.help.ShowAll {
		t.Error("help.ShowAll = false after ?, want true")
	}
}

func TestModel_View(t *testing.T) {
	m := NewModel(sampleBook(t))
	m = send(t, m, tea.WindowSizeMsg{Width: 90, Height: 20})

	view := m.View()
	for _, want := range []string{"John", "Jane", "0937777777", "5555555555", CursorMarker} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModel_QuitClearsView(t *testing.T) {
	m := NewModel(sampleBook(t))
	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q should return tea.Quit")
	}
	if next.(Model).View() != "" {
		t.Error("View() should be empty after quit")
	}
}

// TestModel_Teatest_AddThenQuit drives a full session through teatest.
func TestModel_Teatest_AddThenQuit(t *testing.T) {
	b := sampleBook(t)
	tm := teatest.NewTestModel(t, NewModel(b), teatest.WithInitialTermSize(80, 24))

	tm.Send(runeKey("j"))
	tm.Send(runeKey("a"))
	tm.Type("0501234567")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(runeKey("q"))

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if final.SelectedName() != "Jane" {
		t.Errorf("SelectedName() = %q, want Jane", final.SelectedName())
	}
	jane, _ := b.Find("Jane")
	if got, want := jane.String(), "Contact name: Jane, phones: 9876543210; 0501234567"; got != want {
		t.Errorf("Jane = %q, want %q", got, want)
	}
}
