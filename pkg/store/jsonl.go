package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/Sternrassler/player-stats-etl/pkg/normalize"
)

// JSONLines is a sink that writes each record as one JSON object per line.
// The job uses it for dry runs that skip PostgreSQL.
type JSONLines struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONLines creates a sink writing to w.
func NewJSONLines(w io.Writer) *JSONLines {
	return &JSONLines{w: w}
}

// Load writes records in order and returns how many were written.
func (j *JSONLines) Load(ctx context.Context, records []normalize.FlatPlayerRecord) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	enc := json.NewEncoder(j.w)
	var n int64
	for i := range records {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := enc.Encode(&records[i]); err != nil {
			return n, fmt.Errorf("write record %d: %w", i, err)
		}
		n++
	}
	return n, nil
}
