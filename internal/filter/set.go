package filter

import (
	"fmt"
	"github.com/datasculptor/data-sculptor/internal/record"
	"slices"
)

// Set holds the active filters of all types.
//
// Filters of a type are kept in the order they were added and are identified by their ID.
// Set isn't safe for concurrent use, and the filter slices it returns must not be modified.
type Set struct {
	filters map[Type][]*Filter
}

// NewSet returns an empty filter Set.
func NewSet() *Set {
	return &Set{filters: make(map[Type][]*Filter)}
}

// Add compiles the given expression and adds it as a filter of the given type.
//
// If an equivalent filter already exists, i.e. one with the same ID, that one is returned instead.
func (s *Set) Add(t Type, title string) (*Filter, error) {
	f, err := New(t, title)
	if err != nil {
		return nil, err
	}

	if existing := s.Get(t, f.ID); existing != nil {
		return existing, nil
	}

	s.filters[t] = append(s.filters[t], f)

	return f, nil
}

// Get returns the filter of the given type and ID, or nil if there is no such filter.
func (s *Set) Get(t Type, id ID) *Filter {
	if i := s.index(t, id); i >= 0 {
		return s.filters[t][i]
	}

	return nil
}

// Remove deletes the filter of the given type and ID and reports whether it existed.
func (s *Set) Remove(t Type, id ID) bool {
	i := s.index(t, id)
	if i < 0 {
		return false
	}

	s.filters[t] = slices.Delete(slices.Clone(s.filters[t]), i, i+1)

	return true
}

// Edit replaces the filter of the given type and ID by one compiled from the given expression.
//
// The new filter takes the position of the old one. If the new expression doesn't compile or there
// is no filter with the given ID, the Set is left untouched. If the new expression is equivalent to
// another existing filter, the edited filter is just removed.
func (s *Set) Edit(t Type, id ID, title string) (*Filter, error) {
	i := s.index(t, id)
	if i < 0 {
		return nil, fmt.Errorf("there is no %s filter with ID %s", t, id)
	}

	f, err := New(t, title)
	if err != nil {
		return nil, err
	}

	filters := slices.Clone(s.filters[t])
	if existing := s.Get(t, f.ID); existing != nil && f.ID != id {
		s.filters[t] = slices.Delete(filters, i, i+1)
		return existing, nil
	}

	filters[i] = f
	s.filters[t] = filters

	return f, nil
}

// Filters returns all filters of the given type.
func (s *Set) Filters(t Type) []*Filter {
	return s.filters[t]
}

// Len returns the number of filters of the given type.
func (s *Set) Len(t Type) int {
	return len(s.filters[t])
}

// Day reports whether the given day passes the date and value filters of this Set.
func (s *Set) Day(day *record.Day) bool {
	return FilterDay(day, s.filters[Date], s.filters[Value])
}

// Key reports whether the given entry passes the key filters of this Set.
func (s *Set) Key(day *record.Day, entry record.Entry) bool {
	return FilterKey(day, entry, s.filters[Key])
}

func (s *Set) index(t Type, id ID) int {
	return slices.IndexFunc(s.filters[t], func(f *Filter) bool {
		return f.ID == id
	})
}
