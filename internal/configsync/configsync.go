// Package configsync загружает и сохраняет конфигурацию радиатора через HTTP API бэкенда.
package configsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/wrongjunior/radiator/internal/domain"
)

// Path задаёт путь ресурса конфигурации на бэкенде.
const Path = "/api/radiator/configuration"

// SaveError описывает отказ бэкенда сохранить конфигурацию. Ошибка повторяемая:
// буфер редактора сохраняется и может быть отправлен снова.
type SaveError struct {
	StatusCode int
	Body       string
}

func (e *SaveError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("configuration save rejected: status %d", e.StatusCode)
	}
	return fmt.Sprintf("configuration save rejected: status %d: %s", e.StatusCode, e.Body)
}

// Client реализует клиент API конфигурации. Помнит последнюю известную конфигурацию.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	mu   sync.Mutex
	last *domain.Configuration
}

// NewHTTPClient создаёт http.Client с ограниченными таймаутами соединения.
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// NewClient создаёт клиент для бэкенда по адресу baseURL.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// Load запрашивает конфигурацию у бэкенда.
func (c *Client) Load(ctx context.Context) (domain.Configuration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+Path, nil)
	if err != nil {
		return domain.Configuration{}, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Configuration{}, fmt.Errorf("load configuration: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.Configuration{}, fmt.Errorf("load configuration: unexpected status %d", resp.StatusCode)
	}
	var cfg domain.Configuration
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return domain.Configuration{}, fmt.Errorf("decode configuration: %w", err)
	}
	c.remember(cfg)
	c.logger.Info("Configuration fetched", "name", cfg.Name, "pages", len(cfg.Pages))
	return cfg, nil
}

// Save отправляет конфигурацию целиком. Отказ бэкенда возвращается как *SaveError.
func (c *Client) Save(ctx context.Context, cfg domain.Configuration) error {
	body, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+Path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("save configuration: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &SaveError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	c.remember(cfg)
	c.logger.Info("Configuration saved", "name", cfg.Name, "pages", len(cfg.Pages))
	return nil
}

// Last возвращает последнюю загруженную или сохранённую конфигурацию.
func (c *Client) Last() (domain.Configuration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return domain.Configuration{}, false
	}
	return c.last.Clone(), true
}

func (c *Client) remember(cfg domain.Configuration) {
	cfg = cfg.Clone()
	c.mu.Lock()
	c.last = &cfg
	c.mu.Unlock()
}
