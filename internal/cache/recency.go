package cache

import "encoding/json"

// RecencyList is a small capacity-bounded list of values ordered from most to
// least recently used. It is the serializable structure inside a user's
// search-history file: items carry no separate key, the value is the key.
type RecencyList[T comparable] struct {
	capacity int
	items    []T
}

// NewRecencyList creates an empty list bounded to capacity items.
func NewRecencyList[T comparable](capacity int) *RecencyList[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &RecencyList[T]{capacity: capacity}
}

// Get promotes value to the front if present and reports whether it was.
func (l *RecencyList[T]) Get(value T) bool {
	for i, item := range l.items {
		if item == value {
			copy(l.items[1:i+1], l.items[:i])
			l.items[0] = value
			return true
		}
	}
	return false
}

// Put moves value to the front, inserting it if absent. The dropped
// least-recent value is returned when the insertion exceeds capacity.
func (l *RecencyList[T]) Put(value T) (T, bool) {
	var zero T
	if l.Get(value) {
		return zero, false
	}

	l.items = append([]T{value}, l.items...)
	if len(l.items) <= l.capacity {
		return zero, false
	}

	dropped := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	return dropped, true
}

// Contains reports presence without touching recency.
func (l *RecencyList[T]) Contains(value T) bool {
	for _, item := range l.items {
		if item == value {
			return true
		}
	}
	return false
}

// Len returns the number of stored values.
func (l *RecencyList[T]) Len() int {
	return len(l.items)
}

// clone returns an independent copy with the same capacity and contents.
func (l *RecencyList[T]) clone() *RecencyList[T] {
	out := &RecencyList[T]{capacity: l.capacity, items: make([]T, len(l.items))}
	copy(out.items, l.items)
	return out
}

// Items returns the values from most to least recent.
func (l *RecencyList[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

type recencyListFile[T comparable] struct {
	Capacity int `json:"capacity"`
	Data     []T `json:"data"`
}

// MarshalJSON keeps the on-disk shape {capacity, data} stable.
func (l *RecencyList[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(recencyListFile[T]{Capacity: l.capacity, Data: l.items})
}

// UnmarshalJSON restores the list, re-trimming if the stored data somehow
// exceeds the stored capacity.
func (l *RecencyList[T]) UnmarshalJSON(data []byte) error {
	var file recencyListFile[T]
	if err := json.Unmarshal(data, &file); err != nil {
		return err
	}
	if file.Capacity < 1 {
		file.Capacity = 1
	}
	if len(file.Data) > file.Capacity {
		file.Data = file.Data[:file.Capacity]
	}
	l.capacity = file.Capacity
	l.items = file.Data
	return nil
}
