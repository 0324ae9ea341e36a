package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/bogoseo/internal/models"
)

// SQLiteStore implements Store backed by a SQLite database. Sections and
// template snapshots are stored as JSON columns; insertion order is rowid.
type SQLiteStore struct {
	db        *sql.DB
	templates *sqliteTemplates
	reports   *sqliteReports
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{
		db:        db,
		templates: &sqliteTemplates{db: db},
		reports:   &sqliteReports{db: db},
	}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS templates (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		type TEXT NOT NULL,
		content TEXT NOT NULL,
		sections TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		title TEXT,
		template TEXT NOT NULL,
		content TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		completed_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

func (s *SQLiteStore) Templates() TemplateRegistry { return s.templates }
func (s *SQLiteStore) Reports() ReportRegistry     { return s.reports }
func (s *SQLiteStore) Close() error                { return s.db.Close() }

type sqliteTemplates struct {
	db *sql.DB
}

func (s *sqliteTemplates) Put(ctx context.Context, t *models.Template) (string, error) {
	if err := ValidateTemplate(t); err != nil {
		return "", err
	}
	id := uuid.New().String()
	if err := s.insert(ctx, id, t, false); err != nil {
		return "", err
	}
	return id, nil
}

func (s *sqliteTemplates) PutWithID(ctx context.Context, id string, t *models.Template) error {
	if id == "" {
		return fmt.Errorf("template id cannot be empty")
	}
	if err := ValidateTemplate(t); err != nil {
		return err
	}
	return s.insert(ctx, id, t, true)
}

func (s *sqliteTemplates) insert(ctx context.Context, id string, t *models.Template, replace bool) error {
	sectionsJSON, err := json.Marshal(t.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	stmt := `INSERT INTO templates (id, filename, type, content, sections, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`
	if replace {
		stmt = `INSERT OR REPLACE INTO templates (id, filename, type, content, sections, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`
	}
	_, err = s.db.ExecContext(ctx, stmt, id, t.Filename, string(t.Type), t.Content, string(sectionsJSON), createdAt)
	return err
}

func (s *sqliteTemplates) Get(ctx context.Context, id string) (*models.Template, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, type, content, sections, created_at FROM templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return t, err
}

func (s *sqliteTemplates) List(ctx context.Context) ([]*models.Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, type, content, sections, created_at FROM templates ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *sqliteTemplates) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return nil
}

func (s *sqliteTemplates) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM templates`).Scan(&n)
	return n, err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*models.Template, error) {
	var t models.Template
	var docType, sectionsJSON string
	if err := row.Scan(&t.ID, &t.Filename, &docType, &t.Content, &sectionsJSON, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Type = models.DocType(docType)
	if err := json.Unmarshal([]byte(sectionsJSON), &t.Sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
	}
	return &t, nil
}

type sqliteReports struct {
	db *sql.DB
}

func (s *sqliteReports) Put(ctx context.Context, r *models.Report) (string, error) {
	if err := validateReport(r); err != nil {
		return "", err
	}
	id := r.ID
	if id == "" {
		id = uuid.New().String()
	}
	templateJSON, err := json.Marshal(r.Template)
	if err != nil {
		return "", fmt.Errorf("failed to marshal template snapshot: %w", err)
	}
	var completedAt interface{}
	if r.CompletedAt != nil {
		completedAt = *r.CompletedAt
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, title, template, content, status, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, r.Title, string(templateJSON), r.Content, string(r.Status), r.CreatedAt, completedAt)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *sqliteReports) Get(ctx context.Context, id string) (*models.Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, template, content, status, created_at, completed_at FROM reports WHERE id = ?`, id)
	r, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	return r, err
}

func (s *sqliteReports) List(ctx context.Context) ([]*models.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, template, content, status, created_at, completed_at FROM reports ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*models.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteReports) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&n)
	return n, err
}

func scanReport(row rowScanner) (*models.Report, error) {
	var r models.Report
	var templateJSON, status string
	var completedAt sql.NullTime
	if err := row.Scan(&r.ID, &r.Title, &templateJSON, &r.Content, &status, &r.CreatedAt, &completedAt); err != nil {
		return nil, err
	}
	r.Status = models.ReportStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		r.CompletedAt = &t
	}
	if err := json.Unmarshal([]byte(templateJSON), &r.Template); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template snapshot: %w", err)
	}
	return &r, nil
}

// DiskUsageBytes returns the size in bytes of the database file at dbPath.
// Missing paths contribute 0.
func DiskUsageBytes(dbPath string) (int64, error) {
	if dbPath == "" {
		return 0, nil
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return info.Size(), nil
}
