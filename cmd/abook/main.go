package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	abook "github.com/QA-Droid/goit-pycore-hw-06"
	"github.com/QA-Droid/goit-pycore-hw-06/internal/book"
	"github.com/QA-Droid/goit-pycore-hw-06/internal/config"
	"github.com/QA-Droid/goit-pycore-hw-06/internal/logging"
	"github.com/QA-Droid/goit-pycore-hw-06/internal/seed"
	"github.com/QA-Droid/goit-pycore-hw-06/internal/shell"
	"github.com/QA-Droid/goit-pycore-hw-06/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"Config file to load instead of the layered defaults." type:"path"`
	Seed     string `help:"YAML seed book to load instead of the embedded sample." type:"path"`
	Plain    bool   `help:"Force plain text output even if stdout is a TTY."`
	LogLevel string `help:"Log level (debug, info, warn, error)."`
}

// CLI is the top-level command structure for abook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Demo    DemoCmd          `cmd:"" help:"Run the built-in John and Jane walkthrough."`
	List    ListCmd          `cmd:"" help:"List every contact in the book."`
	Find    FindCmd          `cmd:"" help:"Show one contact."`
	Phone   PhoneCmd         `cmd:"" help:"Look up a phone on a contact."`
	Check   CheckCmd         `cmd:"" help:"Validate phone numbers."`
	Shell   ShellCmd         `cmd:"" help:"Edit the book with line commands on stdin."`
	Browse  BrowseCmd        `cmd:"" help:"Browse and edit the book in a terminal UI."`
}

// session is the loaded state a command runs against.
type session struct {
	cfg  *config.Config
	log  *zap.Logger
	book *book.AddressBook
}

func (s *session) close() {
	_ = s.log.Sync()
}

// setupError marks failures that happen before a command does its work.
type setupError struct {
	err error
}

func (e *setupError) Error() string { return e.err.Error() }
func (e *setupError) Unwrap() error { return e.err }

// loadConfig loads layered config from user and project paths, then applies
// env and flag overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.Config != "" {
		cfg, err = config.Load(g.Config)
	} else {
		cfg, err = config.LoadLayered(
			os.ExpandEnv("$HOME/.config/abook/config.yaml"),
			".abook/config.yaml",
		)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	// Apply CLI flag overrides.
	if g.Seed != "" {
		cfg.Book.Seed = g.Seed
	}
	if g.Plain {
		cfg.Display.Plain = true
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadBook builds the starting book from the configured seed file, or from
// the sample book (a local .abook/book.yaml shadows the embedded copy).
func loadBook(cfg *config.Config) (*book.AddressBook, error) {
	if cfg.Book.Seed != "" {
		return seed.LoadFile(cfg.Book.Seed)
	}
	return seed.Load(abook.OverlayFS(".abook", abook.Samples), abook.SampleFile)
}

// open loads config, logger, and book for a command.
func (g *Globals) open() (*session, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, &setupError{err}
	}
	log, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, &setupError{err}
	}
	b, err := loadBook(cfg)
	if err != nil {
		_ = log.Sync()
		return nil, &setupError{err}
	}

	source := cfg.Book.Seed
	if source == "" {
		source = "sample"
	}
	log.Debug("book loaded", zap.String("source", source), zap.Int("contacts", b.Len()))
	return &session{cfg: cfg, log: log, book: b}, nil
}

// DemoCmd replays the fixed walkthrough on a fresh book.
type DemoCmd struct{}

// Run executes the demo command.
func (c *DemoCmd) Run() error {
	if err := runDemo(os.Stdout); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	return nil
}

// runDemo builds John and Jane, edits and looks up a phone, deletes Jane,
// and prints the book at each step.
func runDemo(w io.Writer) error {
	b := book.New()

	john, err := book.NewRecord("John")
	if err != nil {
		return err
	}
	for _, p := range []string{"0937777777", "5555555555"} {
		if err := john.AddPhone(p); err != nil {
			return err
		}
	}
	b.AddRecord(john)

	jane, err := book.NewRecord("Jane")
	if err != nil {
		return err
	}
	if err := jane.AddPhone("9876543210"); err != nil {
		return err
	}
	b.AddRecord(jane)

	printAll(w, b)

	john, err = b.Find("John")
	if err != nil {
		return err
	}
	if err := john.EditPhone("0937777777", "0936666666"); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, john)

	found, err := john.FindPhone("5555555555")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", john.Name(), found)

	if err := b.Delete("Jane"); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "Jane's record deleted.")

	printAll(w, b)
	return nil
}

func printAll(w io.Writer, b *book.AddressBook) {
	for _, rec := range b.All() {
		_, _ = fmt.Fprintln(w, rec)
	}
}

// ListCmd prints every contact.
type ListCmd struct{}

// Run executes the list command.
func (c *ListCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer s.close()

	d := tui.NewDisplay(tui.DisplayOptions{Writer: os.Stdout, ForcePlain: true})
	return d.Run(context.Background(), s.book)
}

// FindCmd prints one contact.
type FindCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the find command.
func (c *FindCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	defer s.close()

	if err := runFind(os.Stdout, s.book, c.Name); err != nil {
		s.log.Info("find failed", zap.String("name", c.Name), zap.Error(err))
		return fmt.Errorf("find: %w", err)
	}
	return nil
}

func runFind(w io.Writer, b *book.AddressBook, name string) error {
	rec, err := b.Find(name)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, rec)
	return nil
}

// PhoneCmd looks up a single phone on a contact.
type PhoneCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone to look up."`
}

// Run executes the phone command.
func (c *PhoneCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("phone: %w", err)
	}
	defer s.close()

	if err := runPhone(os.Stdout, s.book, c.Name, c.Phone); err != nil {
		s.log.Info("phone lookup failed",
			zap.String("name", c.Name), zap.String("phone", c.Phone), zap.Error(err))
		return fmt.Errorf("phone: %w", err)
	}
	return nil
}

func runPhone(w io.Writer, b *book.AddressBook, name, phone string) error {
	rec, err := b.Find(name)
	if err != nil {
		return err
	}
	found, err := rec.FindPhone(phone)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", rec.Name(), found)
	return nil
}

// CheckCmd validates phone candidates without touching the book.
type CheckCmd struct {
	Phones []string `arg:"" help:"Phone numbers to validate."`
}

// Run executes the check command.
func (c *CheckCmd) Run() error {
	if err := runCheck(os.Stdout, c.Phones); err != nil {
		return fmt.Errorf("check: %w", err)
	}
	return nil
}

// runCheck prints one verdict per candidate and fails if any is invalid.
func runCheck(w io.Writer, phones []string) error {
	invalid := 0
	for _, p := range phones {
		_, err := book.NewPhone(p)
		var ve *book.ValidationError
		switch {
		case err == nil:
			_, _ = fmt.Fprintf(w, "%s: ok\n", p)
		case errors.As(err, &ve):
			invalid++
			_, _ = fmt.Fprintf(w, "%s: %s\n", p, ve.Reason)
		default:
			return err
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d invalid: %w", invalid, len(phones), book.ErrInvalidPhone)
	}
	return nil
}

// ShellCmd runs the line-command interpreter.
type ShellCmd struct{}

// Run executes the shell command.
func (c *ShellCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer s.close()

	sh, err := shell.New(s.book, os.Stdout, s.log)
	if err != nil {
		return &setupError{err}
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		sh.Prompt = "> "
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := sh.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shell: %w", err)
	}
	return nil
}

// BrowseCmd opens the interactive browser.
type BrowseCmd struct{}

// Run executes the browse command.
func (c *BrowseCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer s.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := tui.NewDisplay(tui.DisplayOptions{ForcePlain: s.cfg.Display.Plain})
	if err := d.Run(ctx, s.book); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitDomain  = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	// A seed file with a bad phone is a setup problem, not a lookup failure.
	var se *setupError
	if errors.As(err, &se) {
		return exitSetup
	}
	if errors.Is(err, book.ErrNotFound) ||
		errors.Is(err, book.ErrInvalidPhone) ||
		errors.Is(err, book.ErrEmptyName) {
		return exitDomain
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("abook"),
		kong.Description("In-memory address book."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
