package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wrongjunior/radiator/internal/domain"
)

// Summarize возвращает однострочное описание события для журнала.
// Просроченный отсчёт показывается как ERROR независимо от присланного уровня.
func Summarize(event domain.Event, now time.Time) string {
	s := &summarizer{now: now, level: event.Level}
	event.Accept(s)
	return fmt.Sprintf("[%s] %s: %s", s.level, strings.ToUpper(event.Name), s.text)
}

type summarizer struct {
	now   time.Time
	level domain.Level
	text  string
}

func (s *summarizer) VisitStatus(p domain.StatusPayload) {
	s.text = p.Status
	if p.StatusText != "" {
		s.text += " (" + p.StatusText + ")"
	}
}

func (s *summarizer) VisitHealth(p domain.HealthPayload) {
	s.text = p.Status
}

func (s *summarizer) VisitJob(p domain.JobPayload) {
	s.text = strings.ReplaceAll(strings.ToLower(string(p.Status)), "_", " ")
}

func (s *summarizer) VisitFigure(p domain.FigurePayload) {
	s.text = fmt.Sprint(p.Value)
}

func (s *summarizer) VisitQuote(p domain.QuotePayload) {
	s.text = fmt.Sprintf("%q", p.Quote)
	if p.Author != "" {
		s.text += " - " + p.Author
	}
}

func (s *summarizer) VisitPercentage(p domain.PercentagePayload) {
	s.text = fmt.Sprintf("%.0f%%", p.Value)
}

func (s *summarizer) VisitStatistics(p domain.StatisticsPayload) {
	parts := make([]string, 0, len(p.Statistics))
	for _, st := range p.Statistics {
		parts = append(parts, fmt.Sprintf("%s=%g", st.Name, st.Value))
	}
	s.text = strings.Join(parts, ", ")
}

func (s *summarizer) VisitWeather(p domain.WeatherPayload) {
	s.text = fmt.Sprintf("%g° %s, %s", p.Temperature, p.TemperatureUnit, p.Condition)
}

func (s *summarizer) VisitList(p domain.ListPayload) {
	n := 0
	for _, sec := range p.Sections {
		n += len(sec.Items)
	}
	s.text = fmt.Sprintf("%d items in %d sections", n, len(p.Sections))
}

func (s *summarizer) VisitImage(p domain.ImagePayload) {
	s.text = p.URL
}

func (s *summarizer) VisitCountdown(p domain.CountdownPayload) {
	if p.CountdownTime.IsZero() {
		s.text = "no deadline"
		return
	}
	left := p.CountdownTime.Sub(s.now)
	if left < 0 {
		s.level = domain.LevelError
		s.text = "overdue by " + (-left).Truncate(time.Second).String()
		return
	}
	s.text = left.Truncate(time.Second).String() + " left"
}

func (s *summarizer) VisitUnknown(p domain.UnknownPayload) {
	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s.text = "unknown event (" + strings.Join(keys, ", ") + ")"
}
