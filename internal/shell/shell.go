// Package shell implements a line-oriented command interpreter over an
// in-memory address book. Each input line is parsed with kong against a
// small command grammar; domain errors are reported and the loop continues.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/QA-Droid/goit-pycore-hw-06/internal/book"
)

// Shell executes commands against a book and writes results to out.
type Shell struct {
	book   *book.AddressBook
	out    io.Writer
	log    *zap.Logger
	parser *kong.Kong
	cli    grammar
	done   bool

	// Prompt is written before each line is read. Empty disables it.
	Prompt string
}

// New creates a Shell. A nil logger discards log output.
func New(b *book.AddressBook, out io.Writer, log *zap.Logger) (*Shell, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Shell{book: b, out: out, log: log}

	parser, err := kong.New(&s.cli,
		kong.Name("abook"),
		kong.Writers(out, out),
		kong.NoDefaultHelp(),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return nil, fmt.Errorf("shell: building parser: %w", err)
	}
	s.parser = parser
	return s, nil
}

// Run reads commands from in until EOF, an exit command, or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	s.printf("Welcome to the address book! Type help for commands.\n")

	scanner := bufio.NewScanner(in)
	for !s.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Prompt != "" {
			s.printf("%s", s.Prompt)
		}
		if !scanner.Scan() {
			break
		}
		if err := s.Exec(scanner.Text()); err != nil {
			s.printf("error: %s\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("shell: reading input: %w", err)
	}
	return nil
}

// Exec runs a single command line. Blank lines are ignored.
func (s *Shell) Exec(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	args[0] = strings.ToLower(args[0])

	kctx, err := s.parser.Parse(args)
	if err != nil {
		s.log.Debug("parse failed", zap.Strings("args", args), zap.Error(err))
		return fmt.Errorf("%w (type help for commands)", err)
	}

	s.log.Debug("command", zap.String("cmd", kctx.Command()))
	if err := kctx.Run(s); err != nil {
		s.log.Info("command failed", zap.String("cmd", kctx.Command()), zap.Error(err))
		return err
	}
	return nil
}

// Done reports whether an exit command has been executed.
func (s *Shell) Done() bool {
	return s.done
}

func (s *Shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// grammar is the per-line command set.
type grammar struct {
	Add    addCmd    `cmd:"" help:"Add a phone to a contact, creating the contact if needed."`
	Change changeCmd `cmd:"" help:"Replace one of a contact's phones."`
	Remove removeCmd `cmd:"" help:"Remove a phone from a contact."`
	Phone  phoneCmd  `cmd:"" help:"Show a contact's phones, or look up one of them."`
	Show   showCmd   `cmd:"" help:"Show a contact."`
	Delete deleteCmd `cmd:"" help:"Delete a contact."`
	All    allCmd    `cmd:"" help:"Show all contacts."`
	Help   helpCmd   `cmd:"" help:"Show this help."`
	Exit   exitCmd   `cmd:"" aliases:"quit,close" help:"Leave the shell."`
}

type addCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"10-digit phone."`
}

func (c *addCmd) Run(s *Shell) error {
	rec, err := s.book.Find(c.Name)
	created := false
	if errors.Is(err, book.ErrNotFound) {
		if rec, err = book.NewRecord(c.Name); err != nil {
			return err
		}
		created = true
	} else if err != nil {
		return err
	}

	if err := rec.AddPhone(c.Phone); err != nil {
		return err
	}
	if created {
		s.book.AddRecord(rec)
		s.printf("Contact added.\n")
		return nil
	}
	s.printf("Contact updated.\n")
	return nil
}

type changeCmd struct {
	Name     string `arg:"" help:"Contact name."`
	OldPhone string `arg:"" help:"Phone to replace."`
	NewPhone string `arg:"" help:"Replacement phone."`
}

func (c *changeCmd) Run(s *Shell) error {
	rec, err := s.book.Find(c.Name)
	if err != nil {
		return err
	}
	if err := rec.EditPhone(c.OldPhone, c.NewPhone); err != nil {
		return err
	}
	s.printf("Contact updated.\n")
	return nil
}

type removeCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone to remove."`
}

func (c *removeCmd) Run(s *Shell) error {
	rec, err := s.book.Find(c.Name)
	if err != nil {
		return err
	}
	if err := rec.RemovePhone(c.Phone); err != nil {
		return err
	}
	s.printf("Phone removed.\n")
	return nil
}

type phoneCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" optional:"" help:"Phone to look up."`
}

func (c *phoneCmd) Run(s *Shell) error {
	rec, err := s.book.Find(c.Name)
	if err != nil {
		return err
	}
	if c.Phone != "" {
		p, err := rec.FindPhone(c.Phone)
		if err != nil {
			return err
		}
		s.printf("%s: %s\n", rec.Name(), p)
		return nil
	}

	phones := rec.Phones()
	values := make([]string, len(phones))
	for i, p := range phones {
		values[i] = p.Value()
	}
	s.printf("%s: %s\n", rec.Name(), strings.Join(values, "; "))
	return nil
}

type showCmd struct {
	Name string `arg:"" help:"Contact name."`
}

func (c *showCmd) Run(s *Shell) error {
	rec, err := s.book.Find(c.Name)
	if err != nil {
		return err
	}
	s.printf("%s\n", rec)
	return nil
}

type deleteCmd struct {
	Name string `arg:"" help:"Contact name."`
}

func (c *deleteCmd) Run(s *Shell) error {
	if err := s.book.Delete(c.Name); err != nil {
		return err
	}
	s.printf("Contact deleted.\n")
	return nil
}

type allCmd struct{}

func (c *allCmd) Run(s *Shell) error {
	if s.book.Len() == 0 {
		s.printf("No contacts.\n")
		return nil
	}
	for _, rec := range s.book.All() {
		s.printf("%s\n", rec)
	}
	return nil
}

type helpCmd struct{}

func (c *helpCmd) Run(s *Shell) error {
	s.printf("Commands:\n")
	for _, n := range s.parser.Model.Children {
		s.printf("  %-36s %s\n", n.Summary(), n.Help)
	}
	return nil
}

type exitCmd struct{}

func (c *exitCmd) Run(s *Shell) error {
	s.done = true
	s.printf("Good bye!\n")
	return nil
}
