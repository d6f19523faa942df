package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wrongjunior/radiator/internal/domain"
	"gopkg.in/yaml.v3"
	"log/slog"
)

// Config содержит настройки для бэкенда и клиента радиатора.
type Config struct {
	ServerAddr  string `json:"server_addr" yaml:"server_addr"`     // адрес HTTP-сервера (например, ":8080")
	WSPath      string `json:"ws_path" yaml:"ws_path"`             // путь канала событий (например, "/event")
	DBPath      string `json:"db_path" yaml:"db_path"`             // путь к SQLite БД бэкенда
	LogLevel    string `json:"log_level" yaml:"log_level"`         // уровень логирования (например, "INFO")
	BaseURL     string `json:"base_url" yaml:"base_url"`           // адрес бэкенда для клиента
	DevEventURL string `json:"dev_event_url" yaml:"dev_event_url"` // канал событий в режиме разработки
	MetricsAddr string `json:"metrics_addr" yaml:"metrics_addr"`   // адрес /metrics клиента; пустая строка выключает
	SeedPath    string `json:"seed_configuration" yaml:"seed_configuration"`

	RotationInterval Duration `json:"rotation_interval" yaml:"rotation_interval"`
	ProbeInterval    Duration `json:"probe_interval" yaml:"probe_interval"`
	RequestTimeout   Duration `json:"request_timeout" yaml:"request_timeout"`
}

// Duration принимает строки вида "30s" и в JSON, и в YAML.
type Duration time.Duration

// Std возвращает значение как time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) set(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.set(s)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.set(node.Value)
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	return &Config{
		ServerAddr:       ":8080",
		WSPath:           "/event",
		DBPath:           "radiator.db",
		LogLevel:         "INFO",
		BaseURL:          "http://localhost:8080",
		DevEventURL:      "ws://localhost:8080/event",
		RotationInterval: Duration(30 * time.Second),
		ProbeInterval:    Duration(30 * time.Second),
		RequestTimeout:   Duration(10 * time.Second),
	}
}

// LoadConfig загружает конфигурацию из файла поверх значений по умолчанию.
// Файлы .yaml и .yml читаются как YAML, остальные как JSON.
// Пустой путь означает конфигурацию по умолчанию.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadSeed возвращает начальную конфигурацию радиатора для бэкенда.
// Без SeedPath это одна пустая страница.
func (c *Config) LoadSeed() (domain.Configuration, error) {
	if c.SeedPath == "" {
		return domain.Configuration{Name: "Radiator", Pages: []domain.Page{domain.NewPage()}}, nil
	}
	data, err := os.ReadFile(c.SeedPath)
	if err != nil {
		return domain.Configuration{}, err
	}
	var seed domain.Configuration
	switch strings.ToLower(filepath.Ext(c.SeedPath)) {
	case ".yaml", ".yml":
		// Плитки декодируются только из JSON.
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.Configuration{}, fmt.Errorf("parse seed %s: %w", c.SeedPath, err)
		}
		if data, err = json.Marshal(raw); err != nil {
			return domain.Configuration{}, fmt.Errorf("parse seed %s: %w", c.SeedPath, err)
		}
	}
	if err := json.Unmarshal(data, &seed); err != nil {
		return domain.Configuration{}, fmt.Errorf("parse seed %s: %w", c.SeedPath, err)
	}
	if seed.Pages == nil {
		seed.Pages = []domain.Page{}
	}
	return seed, nil
}

// NewLogger создаёт текстовый логгер с указанным уровнем.
// Неизвестный уровень трактуется как INFO.
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
