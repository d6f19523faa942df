package repository

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/wrongjunior/radiator/internal/domain"
)

// EventRepository хранит последнее значение каждого события.
type EventRepository interface {
	Init() error
	Save(event domain.Event) error
	Get(id string) (domain.Event, bool, error)
	List() ([]domain.Event, error)
}

// SQLiteRepository реализует репозиторий событий на базе SQLite.
type SQLiteRepository struct {
	DB *sql.DB
}

// NewSQLiteRepository создаёт новый экземпляр репозитория.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

// Init создаёт таблицу для хранения событий, если её ещё нет.
func (repo *SQLiteRepository) Init() error {
	query := `
        CREATE TABLE IF NOT EXISTS events (
            id TEXT PRIMARY KEY,
            type TEXT,
            level TEXT,
            document TEXT NOT NULL,
            timestamp DATETIME
        );
    `
	_, err := repo.DB.Exec(query)
	return err
}

// Save сохраняет событие, целиком заменяя предыдущее значение с тем же ID.
func (repo *SQLiteRepository) Save(event domain.Event) error {
	doc, err := json.Marshal(event)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO events (id, type, level, document, timestamp) VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            type = excluded.type,
            level = excluded.level,
            document = excluded.document,
            timestamp = excluded.timestamp;
    `
	_, err = repo.DB.Exec(query, event.ID, string(event.Type), string(event.Level), string(doc), event.Time.Time)
	return err
}

// Get возвращает событие по ID.
func (repo *SQLiteRepository) Get(id string) (domain.Event, bool, error) {
	var doc string
	err := repo.DB.QueryRow(`SELECT document FROM events WHERE id = ?;`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, false, nil
	}
	if err != nil {
		return domain.Event{}, false, err
	}
	var event domain.Event
	if err := json.Unmarshal([]byte(doc), &event); err != nil {
		return domain.Event{}, false, err
	}
	return event, true, nil
}

// List возвращает все события в порядке ID.
func (repo *SQLiteRepository) List() ([]domain.Event, error) {
	rows, err := repo.DB.Query(`SELECT document FROM events ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var event domain.Event
		if err := json.Unmarshal([]byte(doc), &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
