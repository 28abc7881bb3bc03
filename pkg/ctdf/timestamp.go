package ctdf

import (
	"fmt"
	"time"
)

// Timestamp is a local wall clock time within the service day. It carries no date.
type Timestamp struct {
	Hour   int
	Minute int
}

func (t Timestamp) After(other Timestamp) bool {
	return t.Hour > other.Hour || (t.Hour == other.Hour && t.Minute > other.Minute)
}

func (t Timestamp) Before(other Timestamp) bool {
	return other.After(t)
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// OnDate places the timestamp on the calendar day of date, in date's location.
func (t Timestamp) OnDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Timestamp) UnmarshalText(text []byte) error {
	_, err := fmt.Sscanf(string(text), "%d:%d", &t.Hour, &t.Minute)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", string(text), err)
	}

	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid timestamp %s", string(data))
	}

	return t.UnmarshalText(data[1 : len(data)-1])
}
