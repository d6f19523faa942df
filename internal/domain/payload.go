package domain

import "encoding/json"

// Payload объединяет все полезные нагрузки событий.
type Payload interface {
	EventType() EventType
	accept(v PayloadVisitor)
}

// PayloadVisitor обходит все варианты Payload. Новый вариант добавляет сюда метод,
// и каждый потребитель перестаёт компилироваться, пока его не обработает.
type PayloadVisitor interface {
	VisitStatus(StatusPayload)
	VisitHealth(HealthPayload)
	VisitJob(JobPayload)
	VisitFigure(FigurePayload)
	VisitQuote(QuotePayload)
	VisitPercentage(PercentagePayload)
	VisitStatistics(StatisticsPayload)
	VisitWeather(WeatherPayload)
	VisitList(ListPayload)
	VisitImage(ImagePayload)
	VisitCountdown(CountdownPayload)
	VisitUnknown(UnknownPayload)
}

// StatusPayload несёт состояние сервиса.
type StatusPayload struct {
	Status     string `json:"status"`
	StatusText string `json:"statusText,omitempty"`
	Continuous bool   `json:"continuous,omitempty"`
}

// HealthPayload несёт результат проверки здоровья.
type HealthPayload struct {
	Status string `json:"status"`
}

// JobStatus задаёт состояние сборки для событий JOB.
type JobStatus string

const (
	JobUnknown    JobStatus = "UNKNOWN"
	JobDisabled   JobStatus = "DISABLED"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobSuccess    JobStatus = "SUCCESS"
	JobFailure    JobStatus = "FAILURE"
)

// JobPayload описывает запуск задачи сборки.
type JobPayload struct {
	Status JobStatus `json:"status"`
	URL    string    `json:"url,omitempty"`
}

// FigurePayload хранит значение как есть: бэкенд присылает и числа, и строки.
type FigurePayload struct {
	Value any `json:"value"`
}

// QuotePayload содержит цитату.
type QuotePayload struct {
	Quote  string `json:"quote"`
	Author string `json:"author,omitempty"`
}

// PercentagePayload содержит процентное значение.
type PercentagePayload struct {
	Value float64 `json:"value"`
}

// Statistic это одно именованное значение.
type Statistic struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StatisticsPayload содержит набор значений.
type StatisticsPayload struct {
	Statistics []Statistic `json:"statistics"`
}

// WeatherPayload описывает погоду.
type WeatherPayload struct {
	Temperature     float64 `json:"temperature"`
	TemperatureUnit string  `json:"temperatureUnit"`
	Condition       string  `json:"condition"`
}

// Section это именованный список строк.
type Section struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// ListPayload содержит секции списка.
type ListPayload struct {
	Sections []Section `json:"sections"`
}

// ImagePayload ссылается на изображение.
type ImagePayload struct {
	URL string `json:"url"`
}

// CountdownPayload задаёт момент, до которого идёт обратный отсчёт.
type CountdownPayload struct {
	CountdownTime Timestamp `json:"countdownTime"`
}

// UnknownPayload хранит поля события, кроме заголовка, когда тип не распознан
// или поля не подошли к типизированной нагрузке.
type UnknownPayload struct {
	Fields map[string]json.RawMessage `json:"-"`
}

func (StatusPayload) EventType() EventType     { return TypeStatus }
func (HealthPayload) EventType() EventType     { return TypeHealth }
func (JobPayload) EventType() EventType        { return TypeJob }
func (FigurePayload) EventType() EventType     { return TypeFigure }
func (QuotePayload) EventType() EventType      { return TypeQuote }
func (PercentagePayload) EventType() EventType { return TypePercentage }
func (StatisticsPayload) EventType() EventType { return TypeStatistics }
func (WeatherPayload) EventType() EventType    { return TypeWeather }
func (ListPayload) EventType() EventType       { return TypeList }
func (ImagePayload) EventType() EventType      { return TypeImage }
func (CountdownPayload) EventType() EventType  { return TypeCountdown }
func (UnknownPayload) EventType() EventType    { return TypeUnknown }

func (p StatusPayload) accept(v PayloadVisitor)     { v.VisitStatus(p) }
func (p HealthPayload) accept(v PayloadVisitor)     { v.VisitHealth(p) }
func (p JobPayload) accept(v PayloadVisitor)        { v.VisitJob(p) }
func (p FigurePayload) accept(v PayloadVisitor)     { v.VisitFigure(p) }
func (p QuotePayload) accept(v PayloadVisitor)      { v.VisitQuote(p) }
func (p PercentagePayload) accept(v PayloadVisitor) { v.VisitPercentage(p) }
func (p StatisticsPayload) accept(v PayloadVisitor) { v.VisitStatistics(p) }
func (p WeatherPayload) accept(v PayloadVisitor)    { v.VisitWeather(p) }
func (p ListPayload) accept(v PayloadVisitor)       { v.VisitList(p) }
func (p ImagePayload) accept(v PayloadVisitor)      { v.VisitImage(p) }
func (p CountdownPayload) accept(v PayloadVisitor)  { v.VisitCountdown(p) }
func (p UnknownPayload) accept(v PayloadVisitor)    { v.VisitUnknown(p) }
