package utils

import "fmt"

// EnumEntry pairs an enum value with its wire description
type EnumEntry[T comparable] struct {
	Value       T
	Description string
}

// EnumTable is a bidirectional lookup between enum values and their wire
// descriptions.
type EnumTable[T comparable] struct {
	entries       []EnumEntry[T]
	byValue       map[T]string
	byDescription map[string]T
}

// NewEnumTable builds a lookup table. Duplicate values or descriptions panic
// since tables are declared at package level.
func NewEnumTable[T comparable](entries ...EnumEntry[T]) *EnumTable[T] {
	table := &EnumTable[T]{
		entries:       entries,
		byValue:       make(map[T]string, len(entries)),
		byDescription: make(map[string]T, len(entries)),
	}
	for _, entry := range entries {
		if _, exists := table.byValue[entry.Value]; exists {
			panic(fmt.Sprintf("duplicate enum value %v", entry.Value))
		}
		if _, exists := table.byDescription[entry.Description]; exists {
			panic(fmt.Sprintf("duplicate enum description %q", entry.Description))
		}
		table.byValue[entry.Value] = entry.Description
		table.byDescription[entry.Description] = entry.Value
	}
	return table
}

// Description returns the description for value
func (t *EnumTable[T]) Description(value T) (string, bool) {
	description, ok := t.byValue[value]
	return description, ok
}

// Value returns the value for description
func (t *EnumTable[T]) Value(description string) (T, bool) {
	value, ok := t.byDescription[description]
	return value, ok
}

// Entries returns the declared entries in declaration order
func (t *EnumTable[T]) Entries() []EnumEntry[T] {
	out := make([]EnumEntry[T], len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries
func (t *EnumTable[T]) Len() int {
	return len(t.entries)
}
