package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/iconidentify/vidseo/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const interruptedError = "interrupted by restart"

// SQLiteRunRepository implements RunRepository on an SQLite database.
type SQLiteRunRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (creating if needed) the database at path, applies
// migrations and fails any run left in flight by a previous process.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteRunRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	repo := &SQLiteRunRepository{db: db, logger: logger}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if n, err := repo.failInterrupted(); err != nil {
		logger.Warn("failed to mark interrupted runs", "error", err)
	} else if n > 0 {
		logger.Info("marked interrupted runs as failed", "count", n)
	}
	return repo, nil
}

// Close closes the database.
func (r *SQLiteRunRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRunRepository) migrate() error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if r.migrationApplied(name) {
			continue
		}
		content, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.Exec(string(content)); err != nil {
			return fmt.Errorf("execute migration %s: %w", name, err)
		}
		if _, err := r.db.Exec("INSERT INTO _migrations (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		r.logger.Info("applied migration", "name", name)
	}
	return nil
}

func (r *SQLiteRunRepository) migrationApplied(name string) bool {
	var applied int
	err := r.db.QueryRow("SELECT 1 FROM _migrations WHERE name = ?", name).Scan(&applied)
	return err == nil && applied == 1
}

func (r *SQLiteRunRepository) failInterrupted() (int64, error) {
	res, err := r.db.Exec(
		`UPDATE runs SET status = ?, error = ?, completed_at = ? WHERE status NOT IN (?, ?)`,
		domain.RunStatusFailed, interruptedError, time.Now().UnixNano(),
		domain.RunStatusCompleted, domain.RunStatusFailed,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Create stores a new run.
func (r *SQLiteRunRepository) Create(ctx context.Context, run *domain.Run) error {
	row, err := encodeRun(run)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO runs (id, session_id, video_url, language, status, metadata, result, error, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SessionID, run.VideoURL, run.Language, run.Status,
		row.metadata, row.result, run.Error, run.CreatedAt.UnixNano(), row.completedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// Update replaces the stored state of an existing run.
func (r *SQLiteRunRepository) Update(ctx context.Context, run *domain.Run) error {
	row, err := encodeRun(run)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE runs SET session_id = ?, video_url = ?, language = ?, status = ?, metadata = ?, result = ?, error = ?, completed_at = ?
		 WHERE id = ?`,
		run.SessionID, run.VideoURL, run.Language, run.Status,
		row.metadata, row.result, run.Error, row.completedAt, run.ID,
	)
	if err != nil {
		return fmt.Errorf("update run %s: %w", run.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}

const selectRun = `SELECT id, session_id, video_url, language, status, metadata, result, error, created_at, completed_at FROM runs`

// Get retrieves a run by ID.
func (r *SQLiteRunRepository) Get(ctx context.Context, id domain.RunID) (*domain.Run, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, selectRun+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// List returns runs newest first.
func (r *SQLiteRunRepository) List(ctx context.Context, opts ListOptions) ([]*domain.Run, error) {
	var (
		where []string
		args  []any
	)
	if opts.Session != "" {
		where = append(where, "session_id = ?")
		args = append(args, opts.Session)
	}
	if opts.Status != nil {
		where = append(where, "status = ?")
		args = append(args, *opts.Status)
	}

	query := selectRun
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if opts.Limit > 0 || opts.Offset > 0 {
		limit := opts.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, max(opts.Offset, 0))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Count returns the number of runs, optionally filtered by status.
func (r *SQLiteRunRepository) Count(ctx context.Context, status *domain.RunStatus) (int, error) {
	var n int
	var err error
	if status == nil {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE status = ?", *status).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

type encodedRun struct {
	metadata    string
	result      sql.NullString
	completedAt sql.NullInt64
}

func encodeRun(run *domain.Run) (encodedRun, error) {
	var row encodedRun
	meta, err := json.Marshal(run.Metadata)
	if err != nil {
		return row, fmt.Errorf("encode metadata: %w", err)
	}
	row.metadata = string(meta)

	if run.Result != nil {
		res, err := json.Marshal(run.Result)
		if err != nil {
			return row, fmt.Errorf("encode result: %w", err)
		}
		row.result = sql.NullString{String: string(res), Valid: true}
	}
	if run.CompletedAt != nil {
		row.completedAt = sql.NullInt64{Int64: run.CompletedAt.UnixNano(), Valid: true}
	}
	return row, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(s rowScanner) (*domain.Run, error) {
	var (
		run         domain.Run
		metadata    string
		result      sql.NullString
		createdAt   int64
		completedAt sql.NullInt64
	)
	if err := s.Scan(&run.ID, &run.SessionID, &run.VideoURL, &run.Language, &run.Status,
		&metadata, &result, &run.Error, &createdAt, &completedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(metadata), &run.Metadata); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if result.Valid {
		var res domain.PipelineResult
		if err := json.Unmarshal([]byte(result.String), &res); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		run.Result = &res
	}
	run.CreatedAt = time.Unix(0, createdAt)
	if completedAt.Valid {
		t := time.Unix(0, completedAt.Int64)
		run.CompletedAt = &t
	}
	return &run, nil
}
