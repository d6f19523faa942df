package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/wrongjunior/radiator/internal/domain"
)

// configurationKey задаёт ключ единственного документа конфигурации.
const configurationKey = "radiator"

// ConfigurationRepository хранит документ конфигурации радиатора.
type ConfigurationRepository interface {
	Init() error
	Get() (domain.Configuration, bool, error)
	Set(cfg domain.Configuration) error
}

// ConfigurationStore реализует ConfigurationRepository на базе SQLite.
type ConfigurationStore struct {
	DB *sql.DB
}

// NewConfigurationStore создаёт хранилище конфигурации поверх db.
func NewConfigurationStore(db *sql.DB) *ConfigurationStore {
	return &ConfigurationStore{DB: db}
}

// Init создаёт таблицу документов конфигурации, если её ещё нет.
func (s *ConfigurationStore) Init() error {
	query := `
        CREATE TABLE IF NOT EXISTS configuration (
            key TEXT PRIMARY KEY,
            document TEXT NOT NULL,
            updated_at DATETIME
        );
    `
	_, err := s.DB.Exec(query)
	return err
}

// Get возвращает сохранённую конфигурацию; ok == false, если её ещё нет.
func (s *ConfigurationStore) Get() (domain.Configuration, bool, error) {
	var doc string
	err := s.DB.QueryRow(`SELECT document FROM configuration WHERE key = ?;`, configurationKey).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Configuration{}, false, nil
	}
	if err != nil {
		return domain.Configuration{}, false, err
	}
	var cfg domain.Configuration
	if err := json.Unmarshal([]byte(doc), &cfg); err != nil {
		return domain.Configuration{}, false, err
	}
	return cfg, true, nil
}

// Set сохраняет конфигурацию целиком (последняя запись побеждает).
func (s *ConfigurationStore) Set(cfg domain.Configuration) error {
	doc, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO configuration (key, document, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at;
    `
	_, err = s.DB.Exec(query, configurationKey, string(doc), time.Now().UTC())
	return err
}

// SeedIfMissing сохраняет seed, если конфигурация ещё ни разу не сохранялась.
// Возвращает true, если seed был записан.
func SeedIfMissing(repo ConfigurationRepository, seed domain.Configuration) (bool, error) {
	_, ok, err := repo.Get()
	if err != nil || ok {
		return false, err
	}
	return true, repo.Set(seed)
}
