package config

import (
	"errors"
	"fmt"
	"github.com/creasty/defaults"
	"github.com/datasculptor/data-sculptor/internal/filter"
	"github.com/goccy/go-yaml"
	libconfig "github.com/icinga/icinga-go-library/config"
	"github.com/icinga/icinga-go-library/database"
	"github.com/icinga/icinga-go-library/logging"
	"github.com/icinga/icinga-go-library/utils"
	"io"
	"os"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Version of data-sculptor printed by --version.
const Version = "0.1.0"

const (
	SourceFile     = "file"
	SourceDatabase = "database"
)

// OutputStdout as output writes the filtered records as JSON to stdout.
const OutputStdout = "-"

type ConfigFile struct {
	Source   string          `yaml:"source" default:"file"`
	Input    string          `yaml:"input"`
	Database database.Config `yaml:"database"`
	Table    string          `yaml:"table" default:"records"`
	Output   string          `yaml:"output"`
	Print    bool            `yaml:"print"`
	Filters  []FilterConfig  `yaml:"filters"`
	Logging  logging.Config  `yaml:"logging"`
}

// FilterConfig is a single filter expression of the given type, e.g. "date", "key" or "value".
type FilterConfig struct {
	Type       string `yaml:"type"`
	Expression string `yaml:"expression"`
}

// Validate implements the config.Validator interface.
func (f *FilterConfig) Validate() error {
	if _, err := filter.ParseType(f.Type); err != nil {
		return err
	}
	if f.Expression == "" {
		return fmt.Errorf("%s filter without an expression", f.Type)
	}

	return nil
}

// Validate implements the config.Validator interface.
func (c *ConfigFile) Validate() error {
	switch c.Source {
	case SourceFile:
		if c.Input == "" {
			return errors.New("an input file is required when reading from a file")
		}
	case SourceDatabase:
		if c.Table == "" {
			return errors.New("a table is required when reading from a database")
		}
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown source %q, expected %q or %q", c.Source, SourceFile, SourceDatabase)
	}

	for i := range c.Filters {
		if err := c.Filters[i].Validate(); err != nil {
			return fmt.Errorf("invalid filter #%d: %w", i+1, err)
		}
	}

	return c.Logging.Validate()
}

// Assert interface compliance.
var (
	_ libconfig.Validator = (*ConfigFile)(nil)
	_ libconfig.Validator = (*FilterConfig)(nil)
)

// Load decodes a ConfigFile from the given YAML on top of its defaults.
//
// The result isn't validated, as CLI flags may still complete it.
func Load(r io.Reader) (*ConfigFile, error) {
	var c ConfigFile
	if err := defaults.Set(&c); err != nil {
		return nil, err
	}

	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot parse YAML: %w", err)
	}

	return &c, nil
}

// FromFile loads the ConfigFile from the given path. An empty path results in the default configuration.
func FromFile(path string) (*ConfigFile, error) {
	if path == "" {
		var c ConfigFile
		if err := defaults.Set(&c); err != nil {
			return nil, err
		}

		return &c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", path, err)
	}

	return c, nil
}

// Flags defines the CLI flags supported by data-sculptor.
type Flags struct {
	// Version decides whether to just print the version and exit.
	Version bool `long:"version" description:"print version and exit"`
	// Config is the path to the config file
	Config string `short:"c" long:"config" description:"path to config file"`
	// Input overrides the input file of the config file and selects the file source.
	Input string `short:"i" long:"input" description:"path to the JSON file to read the records from"`
	// Output overrides the output file of the config file.
	Output string `short:"o" long:"output" description:"path to write the filtered records to, - for stdout"`
	// Print decides whether to print the filtered records to stdout.
	Print bool `long:"print" description:"print the filtered records"`

	Date  []string `long:"date" description:"add a date filter expression (repeatable)"`
	Key   []string `long:"key" description:"add a key filter expression (repeatable)"`
	Value []string `long:"value" description:"add a value filter expression (repeatable)"`
}

// apply merges the flags into the given config. Flag filters are added after the configured ones.
func (f *Flags) apply(c *ConfigFile) {
	if f.Input != "" {
		c.Source = SourceFile
		c.Input = f.Input
	}
	if f.Output != "" {
		c.Output = f.Output
	}
	if f.Print {
		c.Print = true
	}

	for _, t := range filter.Types {
		for _, expr := range f.expressions(t) {
			c.Filters = append(c.Filters, FilterConfig{Type: t.String(), Expression: expr})
		}
	}
}

func (f *Flags) expressions(t filter.Type) []string {
	switch t {
	case filter.Date:
		return f.Date
	case filter.Key:
		return f.Key
	case filter.Value:
		return f.Value
	default:
		return nil
	}
}

// ParseFlagsAndConfig parses the CLI flags provided to the executable and loads the config from the YAML file.
//
// Prints any error during parsing or config loading to os.Stderr and exits, otherwise returns the loaded ConfigFile.
func ParseFlagsAndConfig() *ConfigFile {
	var flags Flags
	if err := libconfig.ParseFlags(&flags); err != nil {
		if errors.Is(err, libconfig.ErrInvalidArgument) {
			panic(err)
		}

		utils.PrintErrorThenExit(err, ExitFailure)
	}

	if flags.Version {
		fmt.Println("data-sculptor version:", Version)
		os.Exit(ExitSuccess)
	}

	c, err := FromFile(flags.Config)
	if err != nil {
		utils.PrintErrorThenExit(err, ExitFailure)
	}

	flags.apply(c)
	if err := c.Validate(); err != nil {
		utils.PrintErrorThenExit(err, ExitFailure)
	}

	return c
}
