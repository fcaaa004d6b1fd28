// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package config provides the YAML configuration for suncapture.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/suncapture/capture"
	"cloudeng.io/suncapture/datetime"
	"cloudeng.io/suncapture/geospatial/astronomy"
	"cloudeng.io/suncapture/geospatial/timezone"
	"cloudeng.io/suncapture/geospatial/zipcode"
	"github.com/joho/godotenv"
)

// Location represents the observer's location.
type Location struct {
	Latitude  float64 `yaml:"latitude" cmd:"latitude in degrees, north is positive"`
	Longitude float64 `yaml:"longitude" cmd:"longitude in degrees, east is positive"`
	// Timezone is empty for the host's timezone, auto to determine it from
	// the coordinates or an IANA zone name.
	Timezone string `yaml:"timezone" cmd:"timezone: empty for the system zone, auto, or an IANA name"`
	// PostalCode, if set, is used to look up the coordinates in
	// PostalDatabase, it is of the form "<admin> <code>", eg. "CA 94102".
	PostalCode     string `yaml:"postal_code" cmd:"postal code, used instead of latitude and longitude"`
	PostalDatabase string `yaml:"postal_database" cmd:"geonames postal code file"`
}

// Capture represents the configuration of the capture commands.
type Capture struct {
	Directory        string         `yaml:"directory" cmd:"directory to write captures to"`
	PerYearDirectory bool           `yaml:"per_year_directory" cmd:"write captures to a per-year sub-directory"`
	Command          []string       `yaml:"command" cmd:"capture command line, each argument is a template"`
	AtCommand        []string       `yaml:"at_command" cmd:"command used to schedule each capture, none to wait in-process"`
	Window           capture.Window `yaml:",inline"`
}

// Archive represents the configuration for managing captured files.
type Archive struct {
	Pattern    string        `yaml:"pattern" cmd:"glob pattern for captured files"`
	LatestLink string        `yaml:"latest_link" cmd:"name of the symlink to the newest capture"`
	Keep       time.Duration `yaml:"keep" cmd:"captures older than this are purged, zero keeps all"`
}

// Config represents the suncapture configuration file.
type Config struct {
	Location Location `yaml:"location"`
	Event    string   `yaml:"event" cmd:"sunrise, noon or sunset"`
	Capture  Capture  `yaml:"capture"`
	Archive  Archive  `yaml:"archive"`
	Journal  string   `yaml:"journal" cmd:"sqlite database used to record scheduling runs"`
	Logging  Logging  `yaml:"logging"`
}

// Default returns a configuration with default values for everything
// but the location.
func Default() Config {
	return Config{
		Event: astronomy.Sunset.String(),
		Capture: Capture{
			PerYearDirectory: true,
			Command:          capture.DefaultCommand,
			AtCommand:        capture.DefaultAt,
			Window:           capture.DefaultWindow,
		},
		Archive: Archive{
			Pattern:    "*.jpg",
			LatestLink: "latest.jpg",
		},
		Logging: Logging{Level: 2, Format: "text"},
	}
}

// Environment variables that override the corresponding configuration
// values.
const (
	EnvLatitude  = "SUNCAPTURE_LATITUDE"
	EnvLongitude = "SUNCAPTURE_LONGITUDE"
	EnvEvent     = "SUNCAPTURE_EVENT"
	EnvTimezone  = "SUNCAPTURE_TIMEZONE"
	EnvDirectory = "SUNCAPTURE_DIRECTORY"
)

// Parse parses the yaml in spec, applying it on top of Default.
func Parse(spec []byte) (Config, error) {
	cfg := Default()
	if err := ParseYAML(spec, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration from filename, which may be empty for
// defaults only, applies any environment overrides from the process
// environment and the supplied .env files and then validates it.
func Load(ctx context.Context, filename string, envFiles ...string) (Config, error) {
	cfg := Default()
	if len(filename) > 0 {
		if err := ParseYAMLFile(ctx, filename, &cfg); err != nil {
			return Config{}, err
		}
	}
	lookup, err := EnvLookup(envFiles...)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Override(lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EnvLookup returns a function that looks up environment variables in the
// process environment and then in the specified .env files. As with
// godotenv.Load, values in the process environment take precedence.
func EnvLookup(filenames ...string) (func(string) (string, bool), error) {
	dotenv := map[string]string{}
	if len(filenames) > 0 {
		var err error
		if dotenv, err = godotenv.Read(filenames...); err != nil {
			return nil, err
		}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// Override applies any values found via lookup.
func (c *Config) Override(lookup func(string) (string, bool)) error {
	errs := &errors.M{}
	float := func(key string, v *float64) {
		s, ok := lookup(key)
		if !ok || len(s) == 0 {
			return
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			errs.Append(fmt.Errorf("%v: %w", key, err))
			return
		}
		*v = f
	}
	str := func(key string, v *string) {
		if s, ok := lookup(key); ok && len(s) > 0 {
			*v = s
		}
	}
	float(EnvLatitude, &c.Location.Latitude)
	float(EnvLongitude, &c.Location.Longitude)
	str(EnvEvent, &c.Event)
	str(EnvTimezone, &c.Location.Timezone)
	str(EnvDirectory, &c.Capture.Directory)
	return errs.Err()
}

// Validate returns all of the problems found with the configuration.
func (c Config) Validate() error {
	errs := &errors.M{}
	if len(c.Location.PostalCode) == 0 {
		errs.Append(c.Location.Coordinates().Validate())
	} else if len(c.Location.PostalDatabase) == 0 {
		errs.Append(fmt.Errorf("postal_code %q requires a postal_database", c.Location.PostalCode))
	}
	if _, err := astronomy.ParseEvent(c.Event); err != nil {
		errs.Append(err)
	}
	if len(c.Capture.Command) == 0 {
		errs.Append(fmt.Errorf("capture: no command specified"))
	}
	errs.Append(c.Capture.Window.Validate())
	if len(c.Archive.Pattern) > 0 {
		if _, err := filepath.Match(c.Archive.Pattern, ""); err != nil {
			errs.Append(fmt.Errorf("archive: pattern %q: %w", c.Archive.Pattern, err))
		}
	}
	if c.Archive.Keep < 0 {
		errs.Append(fmt.Errorf("archive: keep must not be negative: %v", c.Archive.Keep))
	}
	errs.Append(c.Logging.Validate())
	return errs.Err()
}

// EventType returns the configured event.
func (c Config) EventType() (astronomy.Event, error) {
	return astronomy.ParseEvent(c.Event)
}

// CaptureSpec returns the capture.Spec for the configured event.
func (c Config) CaptureSpec() capture.Spec {
	return capture.Spec{
		Event:            c.Event,
		Directory:        c.Capture.Directory,
		PerYearDirectory: c.Capture.PerYearDirectory,
		Command:          c.Capture.Command,
		At:               c.Capture.AtCommand,
	}
}

// Coordinates returns the configured latitude and longitude.
func (l Location) Coordinates() astronomy.Coordinates {
	return astronomy.Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Resolve returns the datetime.Place for the location, looking up the
// coordinates from the postal code if one is specified and then the
// timezone.
func (l Location) Resolve(ctx context.Context) (datetime.Place, error) {
	coords := l.Coordinates()
	if len(l.PostalCode) > 0 {
		zdb := zipcode.NewDB()
		if err := zdb.LoadFile(l.PostalDatabase); err != nil {
			return datetime.Place{}, err
		}
		ll, ok := zdb.Lookup(l.PostalCode)
		if !ok {
			return datetime.Place{}, fmt.Errorf("postal code %q not found in %v", l.PostalCode, l.PostalDatabase)
		}
		coords = astronomy.Coordinates{Latitude: ll.Lat, Longitude: ll.Long}
		ctxlog.Logger(ctx).Debug("postal code", "code", l.PostalCode, "coordinates", coords.String())
	}
	if err := coords.Validate(); err != nil {
		return datetime.Place{}, err
	}
	loc, err := timezone.Resolve(l.Timezone, coords.Latitude, coords.Longitude)
	if err != nil {
		return datetime.Place{}, err
	}
	ctxlog.Logger(ctx).Debug("location", "coordinates", coords.String(), "timezone", loc.String())
	return datetime.Place{
		TimeLocation: loc,
		Latitude:     coords.Latitude,
		Longitude:    coords.Longitude,
	}, nil
}
