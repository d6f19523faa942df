package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// HealthPath задаёт путь проверки доступности бэкенда.
	HealthPath = "/actuator/health"
	// EventPath задаёт путь канала событий.
	EventPath = "/event"
	// DevEventURL задаёт фиксированный адрес канала в режиме разработки.
	DevEventURL = "ws://localhost:8080/event"
)

// Prober проверяет доступность бэкенда.
type Prober interface {
	Healthy(ctx context.Context) bool
}

// HTTPProber считает бэкенд доступным, если HealthPath отвечает 200.
// Любой другой статус или сетевая ошибка означают «недоступен».
type HTTPProber struct {
	URL    string
	Client *http.Client
}

// NewHTTPProber создаёт проверку для бэкенда по адресу baseURL.
// При client == nil используется http.DefaultClient.
func NewHTTPProber(baseURL string, client *http.Client) *HTTPProber {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProber{URL: strings.TrimRight(baseURL, "/") + HealthPath, Client: client}
}

// Healthy выполняет один GET HealthPath.
func (p *HTTPProber) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return false
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// EventURL возвращает адрес канала событий. В режиме разработки это devURL
// (или DevEventURL), иначе схема ws/wss и хост берутся из baseURL.
func EventURL(baseURL string, dev bool, devURL string) (string, error) {
	if dev {
		if devURL == "" {
			devURL = DevEventURL
		}
		return devURL, nil
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("base url %q has no host", baseURL)
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{Scheme: scheme, Host: u.Host, Path: EventPath}).String(), nil
}
