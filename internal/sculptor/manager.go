package sculptor

import (
	"context"
	"fmt"
	"github.com/datasculptor/data-sculptor/internal/filter"
	"github.com/datasculptor/data-sculptor/internal/record"
	"github.com/icinga/icinga-go-library/logging"
	"go.uber.org/zap"
	"io"
)

// Manager holds the loaded days together with the filters applied to them.
//
// Manager isn't safe for concurrent use.
type Manager struct {
	logger  *logging.Logger
	filters *filter.Set
	days    []*record.Day
}

// NewManager returns an empty Manager without any filters.
func NewManager(logger *logging.Logger) *Manager {
	return &Manager{logger: logger, filters: filter.NewSet()}
}

// Filters returns the filter set of this Manager.
func (m *Manager) Filters() *filter.Set {
	return m.filters
}

// Days returns all loaded days in ascending order, regardless of any filters.
func (m *Manager) Days() []*record.Day {
	return m.days
}

// Load replaces the loaded days by the ones read from the given store.
//
// The previously loaded days are kept if the store can't be read or contains invalid dates.
func (m *Manager) Load(ctx context.Context, store record.Store) error {
	m.logger.Infow("Loading records", zap.String("source", store.Name()))

	unparsed, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("cannot load records from %s: %w", store.Name(), err)
	}

	days, err := record.ParseAndSort(unparsed)
	if err != nil {
		return fmt.Errorf("cannot load records from %s: %w", store.Name(), err)
	}

	for _, day := range days {
		m.logger.Debugw("Loaded day", zap.Object("day", day))
	}

	m.days = days
	m.logger.Infof("Loaded %d days from %s", len(days), store.Name())

	return nil
}

// AddFilter compiles the given expression and adds it to the filters of the given type.
func (m *Manager) AddFilter(t filter.Type, title string) (*filter.Filter, error) {
	f, err := m.filters.Add(t, title)
	if err != nil {
		m.logger.Warnw("Rejected filter", zap.Stringer("type", t), zap.String("title", title))
		return nil, err
	}

	m.logger.Debugw("Added filter", zap.Object("filter", f))

	return f, nil
}

// Visible returns the days passing the date and value filters, each holding only the entries
// passing the key filters. The loaded days are never modified.
func (m *Manager) Visible() []*record.Day {
	var visible []*record.Day
	for _, day := range m.days {
		if !m.filters.Day(day) {
			continue
		}

		var entries []record.Entry
		for _, e := range day.Entries {
			if m.filters.Key(day, e) {
				entries = append(entries, e)
			}
		}

		visible = append(visible, day.WithEntries(entries))
	}

	return visible
}

// Export writes the visible days as JSON to w.
func (m *Manager) Export(w io.Writer) error {
	return record.Encode(w, m.Visible())
}

// ExportFile writes the visible days as JSON to the given file.
func (m *Manager) ExportFile(path string) error {
	visible := m.Visible()
	if err := record.WriteFile(path, visible); err != nil {
		return err
	}

	m.logger.Infof("Exported %d days to %s", len(visible), path)

	return nil
}
