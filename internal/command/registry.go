// Package command holds the registry of line-selection commands a view can
// be generated with. The registry is built once from configuration and is
// read-only afterwards.
package command

import (
	"unicode/utf8"

	"peekd/internal/config"
	"peekd/internal/errors"
)

// HelpKey is the picker key reserved for the command help listing.
const HelpKey = '?'

// Descriptor describes a single registered command. Descriptors are
// immutable once the registry is built.
type Descriptor struct {
	Key            rune
	Program        string
	LineFlag       string
	ExtraArgs      []string
	SingleFileOnly bool
}

// Registry is the static key -> descriptor table.
type Registry struct {
	byKey map[rune]Descriptor
	order []Descriptor
}

// NewRegistry builds a registry from configuration entries. Key uniqueness,
// the reserved help key, and non-empty program/flag fields are enforced here
// even though config validation should have caught them already; the
// registry is the last line of defense before dispatch.
func NewRegistry(entries []config.CommandEntry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, errors.NewCommandError("empty command registry", 0, errors.InvalidConfig, nil)
	}

	r := &Registry{byKey: make(map[rune]Descriptor, len(entries))}
	for _, entry := range entries {
		if utf8.RuneCountInString(entry.Key) != 1 {
			return nil, errors.NewCommandError("command key must be a single character", 0, errors.InvalidConfig, nil)
		}
		key, _ := utf8.DecodeRuneInString(entry.Key)
		if key == HelpKey {
			return nil, errors.NewCommandError("key is reserved for help", key, errors.InvalidConfig, nil)
		}
		if _, dup := r.byKey[key]; dup {
			return nil, errors.NewCommandError("duplicate command key", key, errors.DuplicateCommandKey, nil)
		}
		if entry.Program == "" || entry.LineFlag == "" {
			return nil, errors.NewCommandError("command program and line flag are required", key, errors.InvalidConfig, nil)
		}

		d := Descriptor{
			Key:            key,
			Program:        entry.Program,
			LineFlag:       entry.LineFlag,
			ExtraArgs:      append([]string(nil), entry.ExtraArgs...),
			SingleFileOnly: entry.SingleFileOnly,
		}
		r.byKey[key] = d
		r.order = append(r.order, d)
	}

	return r, nil
}

// Lookup returns the descriptor bound to key.
func (r *Registry) Lookup(key rune) (Descriptor, bool) {
	d, ok := r.byKey[key]
	return d, ok
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	return append([]Descriptor(nil), r.order...)
}

// Keys returns the selector keys in registration order.
func (r *Registry) Keys() []rune {
	keys := make([]rune, len(r.order))
	for i, d := range r.order {
		keys[i] = d.Key
	}
	return keys
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.order)
}
