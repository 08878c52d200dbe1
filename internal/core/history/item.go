package history

import (
	"time"
	"unicode/utf8"
)

const (
	// MaxItems is the number of entries kept, most recent first.
	MaxItems = 50
	// MaxFieldLength is the per-field cap in characters.
	MaxFieldLength = 1000
	// TruncationMarker is appended to fields cut at MaxFieldLength.
	TruncationMarker = "... [truncated]"
)

// Kind tells whether an entry came from encoding or decoding.
type Kind string

const (
	Encode Kind = "encode"
	Decode Kind = "decode"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == Encode || k == Decode
}

// Item is one stored conversion.
type Item struct {
	ID        string
	Timestamp time.Time
	Input     string
	Output    string
	Type      Kind
}

// Entry is what callers hand to Store.Add; ID and Timestamp are assigned there.
type Entry struct {
	Input  string
	Output string
	Type   Kind
}

// record is the persisted form of Item. Timestamps are unix milliseconds.
type record struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	Type      Kind   `json:"type"`
}

func toRecord(it Item) record {
	return record{
		ID:        it.ID,
		Timestamp: it.Timestamp.UnixMilli(),
		Input:     it.Input,
		Output:    it.Output,
		Type:      it.Type,
	}
}

func (r record) item() Item {
	return Item{
		ID:        r.ID,
		Timestamp: time.UnixMilli(r.Timestamp),
		Input:     r.Input,
		Output:    r.Output,
		Type:      r.Type,
	}
}

// Truncate cuts s to MaxFieldLength characters and appends TruncationMarker.
// Strings within the limit are returned unchanged.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxFieldLength {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxFieldLength {
			return s[:i] + TruncationMarker
		}
		n++
	}
	return s
}
