//Package config holds the run configuration of the simulation
//and loads it from TOML files
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"patternlife/src/pattern"
	"patternlife/src/universe"
)

var ErrInvalid = errors.New("invalid configuration")

//Pattern is a named pattern given inline or as a file path
type Pattern struct {
	Name string `toml:"name"`
	Text string `toml:"text"`
	File string `toml:"file"`
}

//Config is the run configuration
//Zero Backing means the padded size of Size
type Config struct {
	Size        int       `toml:"size"`
	Backing     int       `toml:"backing"`
	Engine      string    `toml:"engine"`
	Workers     int       `toml:"workers"`
	Interval    string    `toml:"interval"`
	MaxSteps    int       `toml:"maxSteps"`
	Seed        int64     `toml:"seed"`
	Interactive bool      `toml:"interactive"`
	Random      bool      `toml:"random"`
	Patterns    []Pattern `toml:"pattern"`

	dir string //directory relative pattern files are resolved against
}

//Default returns the configuration matching universe.DefaultUniverseOptions
func Default() *Config {
	o := universe.DefaultUniverseOptions
	return &Config{
		Size:     o.VisibleSize,
		Engine:   o.Engine,
		Interval: o.Interval.String(),
		MaxSteps: o.MaxSteps,
	}
}

//ParseError represents an error while parsing a configuration file
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

//Load reads the TOML file at path over the defaults
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	defer f.Close()
	c, err := LoadFromReader(path, f)
	if err != nil {
		return nil, err
	}
	c.dir = filepath.Dir(path)
	return c, nil
}

//LoadFromReader reads TOML from r over the defaults, source names r in errors
func LoadFromReader(source string, r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	c := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		var se *toml.StrictMissingError
		if errors.As(err, &se) {
			pe.Message = se.String()
		}
		return nil, pe
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return c, nil
}

//Validate checks the values a universe can't be built from
func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive", ErrInvalid)
	}
	if c.Backing != 0 && c.Backing < c.Size {
		return fmt.Errorf("%w: backing %d smaller than size %d", ErrInvalid, c.Backing, c.Size)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: maxSteps must not be negative", ErrInvalid)
	}
	if _, err := c.IntervalDuration(); err != nil {
		return err
	}
	for i, p := range c.Patterns {
		if p.Name == "" {
			return fmt.Errorf("%w: pattern %d has no name", ErrInvalid, i+1)
		}
		if (p.Text == "") == (p.File == "") {
			return fmt.Errorf("%w: pattern %s needs exactly one of text and file", ErrInvalid, p.Name)
		}
	}
	return nil
}

//IntervalDuration parses the interval between the simulation steps
func (c *Config) IntervalDuration() (time.Duration, error) {
	if c.Interval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Interval)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: bad interval %q", ErrInvalid, c.Interval)
	}
	return d, nil
}

//BackingSize returns the backing grid side
func (c *Config) BackingSize() int {
	if c.Backing != 0 {
		return c.Backing
	}
	return universe.PaddedSize(c.Size)
}

//UniverseOptions converts the configuration to the universe options
func (c *Config) UniverseOptions() (*universe.Options, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	interval, _ := c.IntervalDuration()
	o := universe.DefaultUniverseOptions
	o.Size = c.BackingSize()
	o.VisibleSize = c.Size
	o.Engine = c.Engine
	o.Workers = c.Workers
	o.Interval = interval
	o.MaxSteps = c.MaxSteps
	o.Seed = c.Seed
	o.Advanced = nil
	return &o, nil
}

//Library builds the built-in pattern library extended with the configured patterns
func (c *Config) Library() (*pattern.Library, error) {
	l := pattern.Builtin()
	for _, p := range c.Patterns {
		var err error
		if p.Text != "" {
			err = l.AddText(p.Name, p.Text)
		} else {
			path := p.File
			if !filepath.IsAbs(path) && c.dir != "" {
				path = filepath.Join(c.dir, path)
			}
			err = l.AddFile(p.Name, path)
		}
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", p.Name, err)
		}
	}
	return l, nil
}
