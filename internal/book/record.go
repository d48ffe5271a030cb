package book

import (
	"slices"
	"strings"
)

// Record is one contact: a name fixed at construction and an ordered list of
// phones. Duplicate phones are allowed. A Record is not safe for concurrent
// mutation.
type Record struct {
	name   string
	phones []Phone
}

// NewRecord creates a Record with no phones.
func NewRecord(name string) (*Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Record{name: name}, nil
}

// Name returns the contact name.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.phones)
}

// AddPhone validates candidate and appends it.
func (r *Record) AddPhone(candidate string) error {
	p, err := NewPhone(candidate)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// FindPhone returns the first phone equal to target.
func (r *Record) FindPhone(target string) (Phone, error) {
	i := r.indexOf(target)
	if i < 0 {
		return Phone{}, phoneNotFound(target)
	}
	return r.phones[i], nil
}

// RemovePhone removes the first phone equal to target, keeping the order of
// the remaining phones.
func (r *Record) RemovePhone(target string) error {
	i := r.indexOf(target)
	if i < 0 {
		return phoneNotFound(target)
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// EditPhone replaces the first phone equal to oldPhone with newPhone at the
// same position. The old phone is looked up before the new one is
// validated; on either failure the record is left unchanged.
func (r *Record) EditPhone(oldPhone, newPhone string) error {
	i := r.indexOf(oldPhone)
	if i < 0 {
		return phoneNotFound(oldPhone)
	}
	p, err := NewPhone(newPhone)
	if err != nil {
		return err
	}
	r.phones[i] = p
	return nil
}

// String renders the record as "Contact name: NAME, phones: P1; P2".
func (r *Record) String() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.value
	}
	return "Contact name: " + r.name + ", phones: " + strings.Join(values, "; ")
}

func (r *Record) indexOf(target string) int {
	return slices.IndexFunc(r.phones, func(p Phone) bool { return p.value == target })
}
