// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package zipcode provides postal code to location lookups using the
// tab separated data files published by www.geonames.org.
package zipcode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DB is an in-memory postal code database.
type DB struct {
	lookup map[string]LatLong
}

// NewDB returns a new, empty, DB.
func NewDB() *DB {
	return &DB{lookup: make(map[string]LatLong)}
}

// LatLong represents the estimated location of a postal code.
type LatLong struct {
	Lat  float64 // Estimated latitude (wgs84)
	Long float64 // Estimated longitude (wgs84)
}

// Option represents an option to Load.
type Option func(o *options)

// WithCountry restricts the entries loaded to those for the
// specified ISO country codes, eg. US, GB or FI.
func WithCountry(countries ...string) Option {
	return func(o *options) {
		for _, c := range countries {
			o.countries[strings.ToUpper(c)] = true
		}
	}
}

type options struct {
	countries map[string]bool
}

// Len returns the number of postal codes in the database.
func (zdb *DB) Len() int {
	return len(zdb.lookup)
}

// LatLong returns the latitude and longitude for the
// specified postal code and admin code (eg. AK 99553).
// GB and CA postal codes come in two formats, either the
// short form or long form:
//
//	GB: Eng BN91, or Eng "BN91 9AA".
//	CA: AB T0A, or AB "T0A 0A0".
func (zdb *DB) LatLong(admin, postal string) (LatLong, bool) {
	ll, ok := zdb.lookup[admin+" "+postal]
	return ll, ok
}

// Lookup is like LatLong but accepts a single string of the form
// "<admin> <postal code>", eg. "AK 99553" or "ENG AL3 8QE".
func (zdb *DB) Lookup(code string) (LatLong, bool) {
	admin, postal, ok := strings.Cut(strings.TrimSpace(code), " ")
	if !ok {
		return LatLong{}, false
	}
	return zdb.LatLong(admin, strings.TrimSpace(postal))
}

// Load parses geonames postal code data, which has 12 tab separated
// fields per line, and adds it to the database.
func (zdb *DB) Load(data []byte, opts ...Option) error {
	return zdb.read(bytes.NewReader(data), opts)
}

// LoadFile is like Load but reads the data from the named file.
func (zdb *DB) LoadFile(filename string, opts ...Option) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := zdb.read(f, opts); err != nil {
		return fmt.Errorf("%v: %w", filename, err)
	}
	return nil
}

func (zdb *DB) read(rd io.Reader, opts []Option) error {
	o := options{countries: map[string]bool{}}
	for _, fn := range opts {
		fn(&o)
	}
	scanner := bufio.NewScanner(rd)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Text()) == 0 {
			continue
		}
		parts := strings.Split(scanner.Text(), "\t")
		if len(parts) != 12 {
			return fmt.Errorf("line %v: invalid line, wrong number of fields: (%v != 12) %v", line, len(parts), scanner.Text())
		}
		if len(o.countries) > 0 && !o.countries[parts[0]] {
			continue
		}
		latStr, longStr := parts[9], parts[10]
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return fmt.Errorf("line %v: invalid latitude: %v: %v", line, latStr, err)
		}
		long, err := strconv.ParseFloat(longStr, 64)
		if err != nil {
			return fmt.Errorf("line %v: invalid longitude: %v: %v", line, longStr, err)
		}
		key := parts[4] + " " + parts[1]
		zdb.lookup[key] = LatLong{Lat: lat, Long: long}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read data: %v", err)
	}
	return nil
}
