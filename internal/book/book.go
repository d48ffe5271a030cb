// Package book implements the in-memory address book: validated phone
// numbers, contact records, and a name-keyed, insertion-ordered collection
// of records.
package book

import (
	"iter"
	"slices"
	"sync"
)

// AddressBook maps contact names to records and remembers insertion order.
// A single mutex guards the mapping; the records it hands out are owned by
// the book but are not themselves locked.
type AddressBook struct {
	mu      sync.RWMutex
	order   []string
	records map[string]*Record
}

// New returns an empty AddressBook.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name. An existing record with the same name
// is replaced silently and keeps its original position.
func (b *AddressBook) AddRecord(r *Record) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.records[r.name]; !exists {
		b.order = append(b.order, r.name)
	}
	b.records[r.name] = r
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*Record, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, ok := b.records[name]
	if !ok {
		return nil, recordNotFound(name)
	}
	return r, nil
}

// Delete removes the record stored under name.
func (b *AddressBook) Delete(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.records[name]; !ok {
		return recordNotFound(name)
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
	return nil
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Names returns the record names in insertion order.
func (b *AddressBook) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.order)
}

// Records returns the records in insertion order.
func (b *AddressBook) Records() []*Record {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*Record, len(b.order))
	for i, name := range b.order {
		out[i] = b.records[name]
	}
	return out
}

// All yields (name, record) pairs in insertion order. It iterates over a
// snapshot taken when the loop starts, so the loop body may modify the book.
func (b *AddressBook) All() iter.Seq2[string, *Record] {
	return func(yield func(string, *Record) bool) {
		for _, r := range b.Records() {
			if !yield(r.name, r) {
				return
			}
		}
	}
}
