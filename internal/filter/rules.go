package filter

import "github.com/datasculptor/data-sculptor/internal/record"

// FilterDay reports whether the given day is to be shown at all.
//
// The date of the day must satisfy all the date filters, which are evaluated against the first entry
// only since a date doesn't vary per entry. A day without entries isn't subject to date filters.
// Additionally, every single entry must satisfy all the value filters. Otherwise, the whole day is
// filtered out.
func FilterDay(day *record.Day, dateFilters, valueFilters []*Filter) bool {
	if first, ok := day.First(); ok {
		for _, f := range dateFilters {
			if !eval(f, day, first, Date) {
				return false
			}
		}
	}

	for _, entry := range day.Entries {
		for _, f := range valueFilters {
			if !eval(f, day, entry, Value) {
				return false
			}
		}
	}

	return true
}

// FilterKey reports whether the given entry of the day is to be shown.
//
// Key filters are inclusive: an entry is shown if there are no key filters at all or if at least
// one of them matches.
func FilterKey(day *record.Day, entry record.Entry, keyFilters []*Filter) bool {
	if len(keyFilters) == 0 {
		return true
	}

	for _, f := range keyFilters {
		if eval(f, day, entry, Key) {
			return true
		}
	}

	return false
}

func eval(f *Filter, day *record.Day, entry record.Entry, t Type) bool {
	return f.Expression.Eval(EvalData{Day: day, Entry: entry, Type: t})
}
