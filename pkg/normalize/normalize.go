// Package normalize flattens raw api-sports player records into
// FlatPlayerRecord rows using the declared Columns table.
//
// Normalization is pure: it performs no I/O, does not modify its input and
// returns equal output for equal input. Records that cannot be flattened are
// reported as Skipped and left for the caller to log.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Sternrassler/player-stats-etl/pkg/apifootball"
)

// Skip reasons.
const (
	ReasonMalformed       = "malformed"
	ReasonMissingIdentity = "missing_identity"
	ReasonNoStatistics    = "no_statistics"
)

var (
	// ErrMalformed is returned for records that are not valid JSON or carry a non-numeric leaf.
	ErrMalformed = errors.New("malformed player record")

	// ErrMissingIdentity is returned when player or player.id is absent.
	ErrMissingIdentity = errors.New("player record has no player id")

	// ErrNoStatistics is returned when the statistics array is empty.
	ErrNoStatistics = errors.New("player record has no statistics")
)

// Skipped describes a raw record that produced no output row.
type Skipped struct {
	// Index is the position of the record in the input
	Index int

	// PlayerID is set when the identity could be decoded
	PlayerID int

	Reason string
	Err    error
}

// Normalize flattens every raw record. Output order follows input order with
// skipped records omitted.
func Normalize(raw []apifootball.RawPlayerRecord) ([]FlatPlayerRecord, []Skipped) {
	records := make([]FlatPlayerRecord, 0, len(raw))
	var skipped []Skipped

	for i, r := range raw {
		rec, err := NormalizeOne(r)
		if err != nil {
			skipped = append(skipped, Skipped{
				Index:    i,
				PlayerID: playerIDHint(r),
				Reason:   reasonFor(err),
				Err:      err,
			})
			continue
		}
		records = append(records, rec)
	}

	return records, skipped
}

// NormalizeOne flattens a single raw record. Only statistics[0] is read.
func NormalizeOne(raw apifootball.RawPlayerRecord) (FlatPlayerRecord, error) {
	entry, err := apifootball.DecodePlayerEntry(raw)
	if err != nil {
		return FlatPlayerRecord{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if entry.Player == nil || !entry.Player.ID.Valid {
		return FlatPlayerRecord{}, ErrMissingIdentity
	}
	if len(entry.Statistics) == 0 {
		return FlatPlayerRecord{}, fmt.Errorf("player %d: %w", entry.Player.ID.Get(), ErrNoStatistics)
	}

	var rec FlatPlayerRecord
	for _, col := range Columns {
		col.set(&rec, entry.Player, &entry.Statistics[0])
	}
	return rec, nil
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, ErrMissingIdentity):
		return ReasonMissingIdentity
	case errors.Is(err, ErrNoStatistics):
		return ReasonNoStatistics
	default:
		return ReasonMalformed
	}
}

// playerIDHint recovers player.id from a record that failed to normalize, or 0.
func playerIDHint(raw apifootball.RawPlayerRecord) int {
	var probe struct {
		Player *struct {
			ID apifootball.Int `json:"id"`
		} `json:"player"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.Player == nil {
		return 0
	}
	return probe.Player.ID.Get()
}
