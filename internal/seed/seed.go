// Package seed builds an address book from a YAML contact list.
//
// A seed document looks like:
//
//	contacts:
//	  - name: John
//	    phones: ["0937777777", "5555555555"]
//
// Contacts are added in document order through the book package's own
// operations, so a seed can never hold a phone that book would reject.
// Seeds are read-only input; nothing is written back.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/QA-Droid/goit-pycore-hw-06/internal/book"
)

// document is the YAML shape of a seed file.
type document struct {
	Contacts []contact `yaml:"contacts"`
}

type contact struct {
	Name   string   `yaml:"name"`
	Phones []string `yaml:"phones"`
}

// Parse decodes a seed document and builds the book it describes.
// Unknown fields are rejected. An empty document yields an empty book.
func Parse(r io.Reader) (*book.AddressBook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("seed: reading: %w", err)
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("seed: parsing: %w", err)
	}

	b := book.New()
	for i, c := range doc.Contacts {
		rec, err := book.NewRecord(c.Name)
		if err != nil {
			return nil, fmt.Errorf("seed: contact %d: %w", i+1, err)
		}
		for _, p := range c.Phones {
			if err := rec.AddPhone(p); err != nil {
				return nil, fmt.Errorf("seed: contact %q: %w", c.Name, err)
			}
		}
		b.AddRecord(rec)
	}
	return b, nil
}

// Load parses the seed file name from fsys.
func Load(fsys fs.FS, name string) (*book.AddressBook, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("seed: opening %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}

// LoadFile parses the seed file at path on disk.
func LoadFile(path string) (*book.AddressBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
