package record

import (
	"context"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"os"
)

// Store specifies a source days can be loaded from.
type Store interface {
	// Name returns a human-readable description of the source.
	Name() string
	// Load reads all days from the source.
	Load(ctx context.Context) ([]Unparsed, error)
}

// FileStore loads days from a JSON file.
type FileStore struct {
	Path string
}

// Name implements the Store interface.
func (s *FileStore) Name() string {
	return s.Path
}

// Load implements the Store interface.
func (s *FileStore) Load(context.Context) ([]Unparsed, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", s.Path)
	}
	defer func() { _ = f.Close() }()

	days, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode %s", s.Path)
	}

	return days, nil
}

// WriteFile writes the given days as JSON to the given path, truncating any existing file.
func WriteFile(path string, days []*Day) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", path)
	}

	if err := Encode(f, days); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "cannot write to %s", path)
	}

	return errors.Wrapf(f.Close(), "cannot close %s", path)
}

// row is a single key/value pair as stored in the database.
type row struct {
	Date  string `db:"date"`
	Key   string `db:"key"`
	Value string `db:"value"`
}

// DatabaseStore loads days from a table with one row per key/value pair.
//
// The table must provide the columns "date", "key", "value" and "position", the latter defining
// the order of the entries within a date. The date may be stored as DATE or as YYYY-MM-DD text,
// it's read back as text in both cases.
type DatabaseStore struct {
	DB    *sqlx.DB
	Table string
}

// Name implements the Store interface.
func (s *DatabaseStore) Name() string {
	return fmt.Sprintf("%s (%s)", s.Table, s.DB.DriverName())
}

// Load implements the Store interface.
func (s *DatabaseStore) Load(ctx context.Context) ([]Unparsed, error) {
	stmt := s.DB.Rebind(fmt.Sprintf(
		`SELECT CAST("date" AS CHAR(10)) AS "date", "key", "value" FROM "%s" ORDER BY "date", "position"`, s.Table,
	))

	var rows []row
	if err := s.DB.SelectContext(ctx, &rows, stmt); err != nil {
		return nil, errors.Wrapf(err, "cannot select records from %q", s.Table)
	}

	var days []Unparsed
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.Date]
		if !ok {
			i = len(days)
			index[r.Date] = i
			days = append(days, Unparsed{Date: r.Date})
		}

		days[i].Entries = append(days[i].Entries, Entry{Key: r.Key, Value: r.Value})
	}

	return days, nil
}

// Assert interface compliance.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*DatabaseStore)(nil)
)
