package record

import (
	"fmt"
	"go.uber.org/zap/zapcore"
	"slices"
	"time"
)

// DateFormat is the canonical layout of a record date (YYYY-MM-DD).
const DateFormat = "2006-01-02"

// Entry is a single key/value pair of a Day.
type Entry struct {
	Key   string
	Value string
}

// Unparsed holds the data of a single day as read from a Store, with the date still being a plain string.
type Unparsed struct {
	Date    string
	Entries []Entry
}

// Day is a date keyed collection of named text values.
//
// Entries keep the order in which they were read. All fields are read-only once the Day has been
// parsed, filters only ever look at them.
type Day struct {
	Date       time.Time
	DateString string
	Entries    []Entry
}

// First returns the first entry of the day, if there is any.
func (d *Day) First() (Entry, bool) {
	if len(d.Entries) == 0 {
		return Entry{}, false
	}

	return d.Entries[0], true
}

// Lookup returns the value stored under the given key.
func (d *Day) Lookup(key string) (string, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}

	return "", false
}

// WithEntries returns a shallow copy of this day holding only the given entries.
func (d *Day) WithEntries(entries []Entry) *Day {
	return &Day{Date: d.Date, DateString: d.DateString, Entries: entries}
}

// MarshalLogObject implements the zapcore.ObjectMarshaler interface.
func (d *Day) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("date", d.DateString)
	encoder.AddInt("entries", len(d.Entries))

	return nil
}

// InvalidDateError is returned when a day's date doesn't match DateFormat.
type InvalidDateError struct {
	Date string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("the date %q is unparsable", e.Date)
}

// DuplicateDateError is returned when the same date occurs more than once.
type DuplicateDateError struct {
	Date string
}

func (e *DuplicateDateError) Error() string {
	return fmt.Sprintf("the date %q is contained multiple times", e.Date)
}

// ParseDate parses the given string using DateFormat.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateFormat, date)
}

// Parse converts the given unparsed day into a Day.
func Parse(unparsed Unparsed) (*Day, error) {
	date, err := ParseDate(unparsed.Date)
	if err != nil {
		return nil, &InvalidDateError{Date: unparsed.Date}
	}

	return &Day{
		Date:       date,
		DateString: unparsed.Date,
		Entries:    slices.Clone(unparsed.Entries),
	}, nil
}

// ParseAndSort parses all the given days and sorts them by date in ascending order.
//
// Fails on the first unparsable or duplicate date.
func ParseAndSort(unparsed []Unparsed) ([]*Day, error) {
	days := make([]*Day, 0, len(unparsed))
	seen := make(map[string]struct{}, len(unparsed))

	for _, u := range unparsed {
		if _, ok := seen[u.Date]; ok {
			return nil, &DuplicateDateError{Date: u.Date}
		}
		seen[u.Date] = struct{}{}

		day, err := Parse(u)
		if err != nil {
			return nil, err
		}

		days = append(days, day)
	}

	slices.SortStableFunc(days, func(a, b *Day) int {
		return a.Date.Compare(b.Date)
	})

	return days, nil
}
