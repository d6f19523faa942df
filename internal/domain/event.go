package domain

import (
	"encoding/json"
	"errors"
	"maps"
)

// ErrMissingID возвращается при декодировании события без идентификатора.
var ErrMissingID = errors.New("event has no id")

// Level задаёт уровень важности события.
type Level string

const (
	LevelOK       Level = "OK"
	LevelUnknown  Level = "UNKNOWN"
	LevelDisabled Level = "DISABLED"
	LevelInfo     Level = "INFO"
	LevelWarn     Level = "WARN"
	LevelError    Level = "ERROR"
)

// Rank возвращает вес уровня для упорядочивания уведомлений.
// Нераспознанный уровень весит как UNKNOWN.
func (l Level) Rank() int {
	switch l {
	case LevelError:
		return 5
	case LevelWarn:
		return 4
	case LevelInfo:
		return 3
	case LevelDisabled:
		return 1
	case LevelOK:
		return 0
	default:
		return 2
	}
}

// EventType различает виды событий на проводе (поле eventType).
type EventType string

const (
	TypeStatus     EventType = "STATUS"
	TypeHealth     EventType = "HEALTH"
	TypeJob        EventType = "JOB"
	TypeFigure     EventType = "FIGURE"
	TypeQuote      EventType = "QUOTE"
	TypePercentage EventType = "PERCENTAGE"
	TypeStatistics EventType = "STATISTICS"
	TypeWeather    EventType = "WEATHER"
	TypeList       EventType = "LIST"
	TypeImage      EventType = "IMAGE"
	TypeCountdown  EventType = "COUNTDOWN"
	TypeUnknown    EventType = "UNKNOWN"
)

// Event представляет статусное событие, полученное от бэкенда.
// Событие неизменяемо: новое сообщение с тем же ID полностью заменяет старое.
type Event struct {
	ID    string
	Type  EventType
	Level Level
	Name  string
	Time  Timestamp
	// Payload содержит поля, специфичные для типа события.
	Payload Payload
}

// Accept передаёт полезную нагрузку события соответствующему методу посетителя.
func (e Event) Accept(v PayloadVisitor) {
	if e.Payload == nil {
		v.VisitUnknown(UnknownPayload{})
		return
	}
	e.Payload.accept(v)
}

type eventHeader struct {
	ID    string    `json:"id"`
	Type  EventType `json:"eventType,omitempty"`
	Level Level     `json:"level"`
	Name  string    `json:"name"`
	Time  Timestamp `json:"time"`
}

var headerFields = []string{"id", "eventType", "level", "name", "time"}

// UnmarshalJSON читает заголовок события, затем полезную нагрузку по eventType.
// Неизвестный или отсутствующий eventType даёт UnknownPayload, как и нагрузка,
// поля которой не ложатся на типизированную структуру. Ошибкой считаются только
// неразбираемый JSON и отсутствие id.
func (e *Event) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var h eventHeader
	lenient(fields["id"], &h.ID)
	if h.ID == "" {
		return ErrMissingID
	}
	lenient(fields["eventType"], &h.Type)
	lenient(fields["level"], &h.Level)
	lenient(fields["name"], &h.Name)
	lenient(fields["time"], &h.Time)
	if h.Level == "" {
		h.Level = LevelOK
	}
	*e = Event{
		ID:      h.ID,
		Type:    h.Type,
		Level:   h.Level,
		Name:    h.Name,
		Time:    h.Time,
		Payload: decodePayload(h.Type, data, fields),
	}
	return nil
}

// lenient декодирует поле заголовка; значение неподходящего вида оставляет dst нулевым.
func lenient[T any](raw json.RawMessage, dst *T) {
	if len(raw) == 0 {
		return
	}
	var v T
	if json.Unmarshal(raw, &v) == nil {
		*dst = v
	}
}

// MarshalJSON собирает плоское представление: заголовок плюс поля нагрузки.
func (e Event) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage)
	switch p := e.Payload.(type) {
	case nil:
	case UnknownPayload:
		maps.Copy(fields, p.Fields)
	default:
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
	}
	raw, err := json.Marshal(eventHeader{ID: e.ID, Type: e.Type, Level: e.Level, Name: e.Name, Time: e.Time})
	if err != nil {
		return nil, err
	}
	var header map[string]json.RawMessage
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, err
	}
	maps.Copy(fields, header)
	return json.Marshal(fields)
}

func decodePayload(t EventType, data []byte, fields map[string]json.RawMessage) Payload {
	var (
		p   Payload
		err error
	)
	switch t {
	case TypeStatus:
		p, err = decodeAs[StatusPayload](data)
	case TypeHealth:
		p, err = decodeAs[HealthPayload](data)
	case TypeJob:
		p, err = decodeAs[JobPayload](data)
	case TypeFigure:
		p, err = decodeAs[FigurePayload](data)
	case TypeQuote:
		p, err = decodeAs[QuotePayload](data)
	case TypePercentage:
		p, err = decodeAs[PercentagePayload](data)
	case TypeStatistics:
		p, err = decodeAs[StatisticsPayload](data)
	case TypeWeather:
		p, err = decodeAs[WeatherPayload](data)
	case TypeList:
		p, err = decodeAs[ListPayload](data)
	case TypeImage:
		p, err = decodeAs[ImagePayload](data)
	case TypeCountdown:
		p, err = decodeAs[CountdownPayload](data)
	default:
		err = errUntyped
	}
	if err == nil {
		return p
	}
	rest := maps.Clone(fields)
	for _, k := range headerFields {
		delete(rest, k)
	}
	return UnknownPayload{Fields: rest}
}

var errUntyped = errors.New("untyped payload")

func decodeAs[T Payload](data []byte) (Payload, error) {
	var p T
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}
