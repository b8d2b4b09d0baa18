// Package snapshot persists evaluation results so score movement stays
// visible across runs.
package snapshot

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/engine"
)

// Record is one persisted evaluation, the comparable unit of history.
type Record struct {
	ID              string    `json:"id"`
	AppID           string    `json:"app_id"`
	Name            string    `json:"name,omitempty"`
	Locale          string    `json:"locale"`
	Platform        string    `json:"platform"`
	EngineVersion   int       `json:"engine_version"`
	RankingScore    float64   `json:"ranking_score"`
	ConversionScore float64   `json:"conversion_score"`
	KPIOverall      float64   `json:"kpi_overall"`
	Vector          []float64 `json:"vector"`
	CreatedAt       time.Time `json:"created_at"`
}

// Store handles SQLite persistence. All methods are safe for
// concurrent use via an internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// DefaultPath returns the per-user snapshot database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".asolint")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return filepath.Join(dir, "snapshots.db"), nil
}

// Open creates the store, migrating the schema if needed. WAL mode is
// enabled for file-backed databases; :memory: gets a single shared
// connection instead.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		app_id TEXT NOT NULL,
		name TEXT,
		locale TEXT NOT NULL,
		platform TEXT NOT NULL,
		engine_version INTEGER NOT NULL,
		ranking_score REAL NOT NULL,
		conversion_score REAL NOT NULL,
		kpi_overall REAL NOT NULL,
		vector TEXT NOT NULL,
		evaluation TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_app ON snapshots(app_id, created_at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Save persists one evaluation and returns its record.
func (s *Store) Save(ev *engine.Evaluation) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vector, err := json.Marshal(ev.KPIs.Vector)
	if err != nil {
		return Record{}, fmt.Errorf("marshal vector: %w", err)
	}
	full, err := json.Marshal(ev)
	if err != nil {
		return Record{}, fmt.Errorf("marshal evaluation: %w", err)
	}

	rec := Record{
		ID:              uuid.NewString(),
		AppID:           ev.AppID,
		Name:            ev.Name,
		Locale:          ev.Locale,
		Platform:        string(ev.Platform),
		EngineVersion:   ev.EngineVersion,
		RankingScore:    ev.RankingScore,
		ConversionScore: ev.ConversionScore,
		KPIOverall:      ev.KPIs.Overall,
		Vector:          ev.KPIs.Vector,
		CreatedAt:       ev.EvaluatedAt,
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (
			id, app_id, name, locale, platform, engine_version,
			ranking_score, conversion_score, kpi_overall,
			vector, evaluation, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID, rec.AppID, rec.Name, rec.Locale, rec.Platform, rec.EngineVersion,
		rec.RankingScore, rec.ConversionScore, rec.KPIOverall,
		string(vector), string(full), rec.CreatedAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert snapshot: %w", err)
	}
	return rec, nil
}

// History returns an app's snapshots, newest first.
func (s *Store) History(appID string, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, app_id, name, locale, platform, engine_version,
			ranking_score, conversion_score, kpi_overall, vector, created_at
		FROM snapshots
		WHERE app_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, appID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var vector string
		if err := rows.Scan(
			&rec.ID, &rec.AppID, &rec.Name, &rec.Locale, &rec.Platform,
			&rec.EngineVersion, &rec.RankingScore, &rec.ConversionScore,
			&rec.KPIOverall, &vector, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(vector), &rec.Vector); err != nil {
			return nil, fmt.Errorf("decode vector: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Latest returns an app's newest snapshot, ok false when none exists.
func (s *Store) Latest(appID string) (Record, bool, error) {
	records, err := s.History(appID, 1)
	if err != nil {
		return Record{}, false, err
	}
	if len(records) == 0 {
		return Record{}, false, nil
	}
	return records[0], true, nil
}

// Evaluation loads the full persisted result for one snapshot id.
func (s *Store) Evaluation(id string) (*engine.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var full string
	err := s.db.QueryRow(`SELECT evaluation FROM snapshots WHERE id = ?`, id).Scan(&full)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %s: not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	var ev engine.Evaluation
	if err := json.Unmarshal([]byte(full), &ev); err != nil {
		return nil, fmt.Errorf("decode evaluation: %w", err)
	}
	return &ev, nil
}
