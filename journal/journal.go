// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package journal records each scheduling run in a sqlite database.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Run represents a single scheduling run.
type Run struct {
	ID        uuid.UUID
	Created   time.Time
	Event     string
	Latitude  float64
	Longitude float64
	Timezone  string
	EventTime time.Time
	Commands  []string
	DryRun    bool
}

func (r Run) String() string {
	dry := ""
	if r.DryRun {
		dry = " (dry run)"
	}
	return fmt.Sprintf("%v %v: %v at %.4f,%.4f: %v, %d commands%v",
		r.Created.Format(time.RFC3339), r.ID, r.Event, r.Latitude, r.Longitude,
		r.EventTime.Format(time.RFC3339), len(r.Commands), dry)
}

// Journal is a sqlite database of runs.
type Journal struct {
	db *sql.DB
}

// Open opens, creating if necessary, the journal at path.
func Open(ctx context.Context, path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

const (
	timeFormat = time.RFC3339Nano
	// Fixed width so that creation times sort lexically.
	createdFormat = "2006-01-02T15:04:05.000000000Z"
)

// Record adds run to the journal, assigning it an ID and creation
// time if they are not already set.
func (j *Journal) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.Created.IsZero() {
		run.Created = time.Now()
	}
	cmds, err := json.Marshal(run.Commands)
	if err != nil {
		return Run{}, err
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, event, latitude, longitude, timezone, event_time, commands, dry_run)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(),
		run.Created.UTC().Format(createdFormat),
		run.Event,
		run.Latitude,
		run.Longitude,
		run.Timezone,
		run.EventTime.Format(timeFormat),
		string(cmds),
		run.DryRun,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

const selectRuns = `SELECT id, created_at, event, latitude, longitude, timezone, event_time, commands, dry_run FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r                 Run
		id, created, when string
		cmds              string
	)
	if err := s.Scan(&id, &created, &r.Event, &r.Latitude, &r.Longitude, &r.Timezone, &when, &cmds, &r.DryRun); err != nil {
		return Run{}, err
	}
	var err error
	if r.ID, err = uuid.Parse(id); err != nil {
		return Run{}, fmt.Errorf("run id %q: %w", id, err)
	}
	if r.Created, err = time.Parse(createdFormat, created); err != nil {
		return Run{}, fmt.Errorf("run %v: %w", id, err)
	}
	if r.EventTime, err = time.Parse(timeFormat, when); err != nil {
		return Run{}, fmt.Errorf("run %v: %w", id, err)
	}
	if loc, err := time.LoadLocation(r.Timezone); err == nil {
		r.EventTime = r.EventTime.In(loc)
	}
	if err := json.Unmarshal([]byte(cmds), &r.Commands); err != nil {
		return Run{}, fmt.Errorf("run %v: %w", id, err)
	}
	return r, nil
}

// Get returns the run with the specified ID.
func (j *Journal) Get(ctx context.Context, id uuid.UUID) (Run, error) {
	r, err := scanRun(j.db.QueryRowContext(ctx, selectRuns+" WHERE id = ?", id.String()))
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// Recent returns, at most, limit runs, most recent first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, selectRuns+" ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
