package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Fecha is a calendar date (no time-of-day, always UTC). On the wire it
// marshals as "YYYY-MM-DD" but unmarshals from either that string or a
// [year, month, day] triple — the dashboard historically received both
// shapes and parses both defensively, so the API accepts both too.
type Fecha struct {
	time.Time
}

// NewFecha builds a Fecha from a timestamp, truncating to midnight UTC.
func NewFecha(t time.Time) Fecha {
	tt := t.UTC()
	return Fecha{time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseFecha parses a "YYYY-MM-DD" string.
func ParseFecha(s string) (Fecha, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return Fecha{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return Fecha{t}, nil
}

func (f Fecha) String() string { return f.Format("2006-01-02") }

// AddDays returns the date n days later.
func (f Fecha) AddDays(n int) Fecha { return Fecha{f.AddDate(0, 0, n)} }

// DaysSince returns the whole days elapsed from other to f. Negative when
// other is in the future relative to f.
func (f Fecha) DaysSince(other Fecha) int {
	return int(f.Sub(other.Time) / (24 * time.Hour))
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Fecha) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, perr := ParseFecha(s)
		if perr != nil {
			return perr
		}
		*f = parsed
		return nil
	}
	var ymd [3]int
	if err := json.Unmarshal(data, &ymd); err == nil {
		*f = Fecha{time.Date(ymd[0], time.Month(ymd[1]), ymd[2], 0, 0, 0, 0, time.UTC)}
		return nil
	}
	return fmt.Errorf("fecha: expected \"YYYY-MM-DD\" or [y,m,d], got %s", string(data))
}

// MarshalBSONValue stores the date as a BSON datetime so Mongo range
// queries over fecha keep working.
func (f Fecha) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(f.Time)
}

func (f *Fecha) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var tt time.Time
	raw := bson.RawValue{Type: t, Value: data}
	if err := raw.Unmarshal(&tt); err != nil {
		return err
	}
	*f = NewFecha(tt)
	return nil
}
