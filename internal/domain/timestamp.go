package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// localDateTime описывает ISO-время без смещения; такие значения считаются UTC.
const localDateTime = "2006-01-02T15:04:05.999999999"

// Timestamp хранит момент времени события в формате ISO 8601.
type Timestamp struct {
	time.Time
}

// ParseTimestamp разбирает RFC 3339 (с долями секунды или без), отбрасывая
// суффикс зоны вида "[Europe/Berlin]", а также локальное время без смещения.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	if i := strings.IndexByte(s, '['); i > 0 && strings.HasSuffix(s, "]") {
		s = s[:i]
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{t}, nil
	}
	if t, err := time.ParseInLocation(localDateTime, s, time.UTC); err == nil {
		return Timestamp{t}, nil
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// At оборачивает time.Time.
func At(t time.Time) Timestamp {
	return Timestamp{t}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
