package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/QA-Droid/goit-pycore-hw-06/internal/book"
)

// Display presents an address book to the user.
type Display interface {
	Run(ctx context.Context, b *book.AddressBook) error
}

// DisplayOptions configures display creation.
type DisplayOptions struct {
	Writer     io.Writer // Output destination (default: os.Stdout).
	Input      io.Reader // Key input for the TUI (default: os.Stdin).
	ForcePlain bool      // Force plain text even if TTY.
}

// NewDisplay returns a TUI display when the writer is a TTY, or a plain text
// display otherwise. ForcePlain overrides TTY detection.
func NewDisplay(opts DisplayOptions) Display {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	if opts.ForcePlain || !isTTY(opts.Writer) {
		return &PlainDisplay{w: opts.Writer}
	}

	return &TUIDisplay{w: opts.Writer, in: opts.Input}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainDisplay prints every record on its own line in insertion order.
type PlainDisplay struct {
	w io.Writer
}

// Run prints the book once and returns.
func (d *PlainDisplay) Run(ctx context.Context, b *book.AddressBook) error {
	if b.Len() == 0 {
		_, err := fmt.Fprintln(d.w, "No contacts.")
		return err
	}
	for _, rec := range b.All() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(d.w, rec); err != nil {
			return err
		}
	}
	return nil
}

// TUIDisplay runs the interactive browser.
// Falls back to PlainDisplay if the TUI program fails to start.
type TUIDisplay struct {
	w  io.Writer
	in io.Reader
}

// Run starts the Bubble Tea program and blocks until the user quits.
func (d *TUIDisplay) Run(ctx context.Context, b *book.AddressBook) error {
	p := tea.NewProgram(NewModel(b),
		tea.WithContext(ctx),
		tea.WithOutput(d.w),
		tea.WithInput(d.in),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		plain := &PlainDisplay{w: d.w}
		return plain.Run(ctx, b)
	}
	return nil
}
