package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/ffufai/internal/model"
)

// DBFileName is the name of the database file inside the data directory.
const DBFileName = "ffufai.db"

// timestampLayout is fixed width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// SuggestionDB stores extension suggestions in SQLite.
type SuggestionDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// now returns the current time; replaced in tests.
	now func() time.Time
}

// Options configures SuggestionDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a SuggestionDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*SuggestionDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &SuggestionDB{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *SuggestionDB) Close() error {
	return sdb.db.Close()
}

// Path returns the database file path.
func (sdb *SuggestionDB) Path() string {
	return sdb.dbPath
}

func (sdb *SuggestionDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS suggestions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cache_key TEXT NOT NULL,
		url TEXT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		extensions TEXT NOT NULL,
		cached INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_suggestions_key ON suggestions(cache_key, created_at);
	CREATE INDEX IF NOT EXISTS idx_suggestions_url ON suggestions(url);
	CREATE INDEX IF NOT EXISTS idx_suggestions_created ON suggestions(created_at);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveSuggestion stores a suggestion and returns its ID.
// A zero CreatedAt is replaced with the current time.
func (sdb *SuggestionDB) SaveSuggestion(ctx context.Context, s *model.Suggestion) (int64, error) {
	exts := s.Extensions
	if exts == nil {
		exts = model.Extensions{}
	}
	extJSON, err := json.Marshal(exts)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize extensions: %w", err)
	}

	if s.CreatedAt.IsZero() {
		s.CreatedAt = sdb.now()
	}

	query := `
	INSERT INTO suggestions (cache_key, url, provider, model, extensions, cached, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := sdb.db.ExecContext(ctx, query,
		s.CacheKey,
		s.URL,
		s.Provider,
		s.Model,
		string(extJSON),
		boolToInt(s.Cached),
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert suggestion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get suggestion ID: %w", err)
	}
	s.ID = id
	return id, nil
}

// LookupSuggestion returns the newest model-produced suggestion for key that
// is younger than ttl. Rows that were themselves served from the cache are
// ignored so that reuse never extends an entry's lifetime.
// It returns nil with no error when nothing fresh is stored or ttl <= 0.
func (sdb *SuggestionDB) LookupSuggestion(ctx context.Context, key string, ttl time.Duration) (*model.Suggestion, error) {
	if ttl <= 0 {
		return nil, nil
	}

	query := `
	SELECT id, cache_key, url, provider, model, extensions, cached, created_at
	FROM suggestions
	WHERE cache_key = ? AND cached = 0 AND created_at > ?
	ORDER BY created_at DESC, id DESC
	LIMIT 1
	`

	cutoff := formatTimestamp(sdb.now().Add(-ttl))
	row := sdb.db.QueryRowContext(ctx, query, key, cutoff)

	s, err := scanSuggestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up suggestion: %w", err)
	}
	return s, nil
}

// ListSuggestions returns stored suggestions, newest first.
// An empty url lists every target; limit <= 0 means no limit.
func (sdb *SuggestionDB) ListSuggestions(ctx context.Context, url string, limit int) ([]model.Suggestion, error) {
	query := `
	SELECT id, cache_key, url, provider, model, extensions, cached, created_at
	FROM suggestions
	`
	args := []any{}
	if url != "" {
		query += " WHERE url = ?"
		args = append(args, url)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	var results []model.Suggestion
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		results = append(results, *s)
	}

	return results, rows.Err()
}

// DeleteSuggestionsBefore removes suggestions created before t and
// returns how many were removed.
func (sdb *SuggestionDB) DeleteSuggestionsBefore(ctx context.Context, t time.Time) (int64, error) {
	result, err := sdb.db.ExecContext(ctx, "DELETE FROM suggestions WHERE created_at < ?", formatTimestamp(t))
	if err != nil {
		return 0, fmt.Errorf("failed to delete suggestions: %w", err)
	}
	return result.RowsAffected()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSuggestion(row rowScanner) (*model.Suggestion, error) {
	var (
		s         model.Suggestion
		extJSON   string
		cached    int
		createdAt string
	)
	if err := row.Scan(&s.ID, &s.CacheKey, &s.URL, &s.Provider, &s.Model, &extJSON, &cached, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(extJSON), &s.Extensions); err != nil {
		return nil, fmt.Errorf("failed to parse extensions: %w", err)
	}
	s.Cached = cached != 0
	s.CreatedAt = parseTimestamp(createdAt)

	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp returns the zero time for malformed values.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
