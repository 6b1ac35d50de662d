// Package store persists evaluated scenarios of analysis runs so they can be
// served later without recomputation.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/co2path/core/factory"
	"github.com/kilianp07/co2path/pkg/export"
)

// Record is one evaluated scenario of one analysis run.
type Record struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	export.Scenario
}

// Query filters stored records. Zero fields match everything. Latest keeps
// only the records of the most recent run.
type Query struct {
	RunID      string
	BuildingID string
	Start      time.Time
	End        time.Time
	Latest     bool
}

// ResultStore persists Records and supports querying.
type ResultStore interface {
	Append(ctx context.Context, recs ...Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

var backends = factory.NewRegistry[ResultStore]()

func init() {
	_ = backends.Register("jsonl", func(conf map[string]any) (ResultStore, error) {
		var c pathConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewJSONLStore(c.Path)
	})
	_ = backends.Register("sqlite", func(conf map[string]any) (ResultStore, error) {
		var c pathConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSQLiteStore(c.Path)
	})
}

type pathConf struct {
	Path string `json:"path"`
}

// Backends lists the available store backends.
func Backends() []string { return backends.Types() }

// Open creates the store for backend ("jsonl" or "sqlite") at path.
func Open(backend, path string) (ResultStore, error) {
	st, err := backends.Create(factory.ModuleConfig{Type: backend, Conf: map[string]any{"path": path}})
	if err != nil {
		return nil, fmt.Errorf("store backend: %w", err)
	}
	return st, nil
}

func (q Query) match(r Record) bool {
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	if q.BuildingID != "" && r.BuildingID != q.BuildingID {
		return false
	}
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	return true
}

// latestRun keeps the records of the run with the newest timestamp.
func latestRun(recs []Record) []Record {
	if len(recs) == 0 {
		return recs
	}
	last := recs[0]
	for _, r := range recs[1:] {
		if !r.Timestamp.Before(last.Timestamp) {
			last = r
		}
	}
	out := recs[:0]
	for _, r := range recs {
		if r.RunID == last.RunID {
			out = append(out, r)
		}
	}
	return out
}
