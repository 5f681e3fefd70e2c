// Package slot provides a typed value with explicit presence tracking.
//
// A Slot distinguishes "never set" from a legitimately zero value, so
// optional schema attributes can be skipped on output without relying on
// sentinel values such as 0 or NaN.
package slot

import (
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrUnsetField is returned by Get when the slot was never set.
var ErrUnsetField = errors.New("slot: field not set")

// Slot holds an optional value of type T. The zero Slot is unset.
type Slot[T any] struct {
	value T
	set   bool
}

// Of returns a slot already set to v.
func Of[T any](v T) Slot[T] {
	return Slot[T]{value: v, set: true}
}

// Set stores v and marks the slot set.
func (s *Slot[T]) Set(v T) {
	s.value = v
	s.set = true
}

// Clear marks the slot unset and drops its value.
func (s *Slot[T]) Clear() {
	var zero T
	s.value = zero
	s.set = false
}

// IsSet reports whether a value has been stored.
func (s Slot[T]) IsSet() bool {
	return s.set
}

// Get returns the stored value, or ErrUnsetField if the slot is unset.
func (s Slot[T]) Get() (T, error) {
	if !s.set {
		var zero T
		return zero, ErrUnsetField
	}
	return s.value, nil
}

// Lookup returns the stored value and whether it was set.
func (s Slot[T]) Lookup() (T, bool) {
	return s.value, s.set
}

// Value returns the raw stored value regardless of state. For an unset slot
// this is the zero value of T.
func (s Slot[T]) Value() T {
	return s.value
}

// Or returns the stored value, or def if the slot is unset.
func (s Slot[T]) Or(def T) T {
	if !s.set {
		return def
	}
	return s.value
}

// IsZero reports whether the slot is unset. yaml.v3 uses it for omitempty.
func (s Slot[T]) IsZero() bool {
	return !s.set
}

// UnmarshalYAML sets the slot from a YAML node. An explicit null leaves the
// slot unset.
func (s *Slot[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		s.Clear()
		return nil
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	s.Set(v)
	return nil
}

// MarshalYAML encodes the stored value, or null when unset.
func (s Slot[T]) MarshalYAML() (interface{}, error) {
	if !s.set {
		return nil, nil
	}
	return s.value, nil
}
