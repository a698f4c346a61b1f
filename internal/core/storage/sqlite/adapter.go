// Package sqlite implements storage.Store on an embedded SQLite database for
// single-node deployments.
//
// Write transactions begin IMMEDIATE (via the _txlock DSN option), so SQLite
// serializes allocation attempts and a conflict can only come from the
// parts_ipn_unique index, e.g. when an IPN is set through CreatePart.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	v1 "github.com/still-asking/sapn-generator/internal/api/v1"
	"github.com/still-asking/sapn-generator/internal/core/storage"
)

const (
	queryInsertPart = `
		INSERT INTO parts (name, description, ipn, parameters, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	queryGetPart = `
		SELECT id, name, description, ipn, parameters, created_at, updated_at
		FROM parts WHERE id = ?
	`
	queryUpdatePart = `
		UPDATE parts SET name = ?, description = ?, parameters = ?, updated_at = ?
		WHERE id = ?
	`
	queryListPartsWithoutIdentifier = `
		SELECT id, name, description, ipn, parameters, created_at, updated_at
		FROM parts
		WHERE ipn = '' AND id > ?
		ORDER BY id ASC
		LIMIT ?
	`
	querySelectIdentifier       = `SELECT ipn FROM parts WHERE id = ?`
	querySelectIdentifiersLike  = `SELECT ipn FROM parts WHERE ipn LIKE ? ESCAPE '\'`
	queryAssignIdentifier       = `UPDATE parts SET ipn = ?, updated_at = ? WHERE id = ?`
	queryCheckPartsTableExists  = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'parts'`
	defaultConnectionParameters = "_txlock=immediate&_busy_timeout=5000&_foreign_keys=on"
)

var _ storage.Store = (*Adapter)(nil)

// Adapter implements storage.Store for SQLite.
type Adapter struct {
	db    *sql.DB
	nowFn func() time.Time
}

// Open opens the database file at path (or a full "file:" DSN) with the
// connection parameters the adapter relies on.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", withDefaults(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return db, nil
}

// NewAdapter opens path and checks that migrations created the parts table.
func NewAdapter(path string) (*Adapter, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	a, err := NewAdapterFromDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// NewAdapterFromDB wraps an open database. The adapter takes ownership of db.
func NewAdapterFromDB(db *sql.DB) (*Adapter, error) {
	var n int
	if err := db.QueryRow(queryCheckPartsTableExists).Scan(&n); err != nil {
		return nil, fmt.Errorf("failed to check schema: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("schema validation failed - did you run migrations?: parts table does not exist")
	}

	slog.Info("[SQLite] Adapter initialized")
	return &Adapter{
		db:    db,
		nowFn: func() time.Time { return time.Now().UTC() },
	}, nil
}

func withDefaults(path string) string {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + defaultConnectionParameters
}

func (a *Adapter) CreatePart(ctx context.Context, part *v1.Part) error {
	paramsJSON, err := marshalParameters(part.Parameters)
	if err != nil {
		return err
	}

	now := a.nowFn()
	res, err := a.db.ExecContext(ctx, queryInsertPart,
		part.Name, part.Description, part.IPN, paramsJSON, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert part: %w", mapError(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read part id: %w", err)
	}

	part.ID = id
	part.CreatedAt = now
	part.UpdatedAt = now
	return nil
}

func (a *Adapter) GetPart(ctx context.Context, id int64) (*v1.Part, error) {
	p, err := scanPart(a.db.QueryRowContext(ctx, queryGetPart, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrPartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get part %d: %w", id, err)
	}
	return p, nil
}

func (a *Adapter) UpdatePart(ctx context.Context, part *v1.Part) error {
	paramsJSON, err := marshalParameters(part.Parameters)
	if err != nil {
		return err
	}

	now := a.nowFn()
	res, err := a.db.ExecContext(ctx, queryUpdatePart,
		part.Name, part.Description, paramsJSON, now, part.ID)
	if err != nil {
		return fmt.Errorf("failed to update part %d: %w", part.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to update part %d: %w", part.ID, err)
	} else if n == 0 {
		return storage.ErrPartNotFound
	}

	stored, err := a.GetPart(ctx, part.ID)
	if err != nil {
		return err
	}
	part.IPN = stored.IPN
	part.CreatedAt = stored.CreatedAt
	part.UpdatedAt = stored.UpdatedAt
	return nil
}

func (a *Adapter) ListPartsWithoutIdentifier(ctx context.Context, afterID int64, limit int) ([]*v1.Part, error) {
	rows, err := a.db.QueryContext(ctx, queryListPartsWithoutIdentifier, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query parts without identifier: %w", err)
	}
	defer rows.Close()

	var parts []*v1.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan part row: %w", err)
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (a *Adapter) RunInTx(ctx context.Context, fn func(ctx context.Context, tx storage.IdentifierTx) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(ctx, &identifierTx{tx: tx, nowFn: a.nowFn}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", mapError(err))
	}
	return nil
}

func (a *Adapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *Adapter) DB() *sql.DB {
	return a.db
}

func (a *Adapter) Close() error {
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	slog.Info("[SQLite] Adapter closed")
	return nil
}

type identifierTx struct {
	tx    *sql.Tx
	nowFn func() time.Time
}

func (t *identifierTx) CurrentIdentifier(ctx context.Context, partID int64) (string, error) {
	var ipn string
	err := t.tx.QueryRowContext(ctx, querySelectIdentifier, partID).Scan(&ipn)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrPartNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read part %d: %w", partID, err)
	}
	return ipn, nil
}

// IdentifiersWithPrefix filters in Go as well: SQLite LIKE is ASCII
// case-insensitive, so the SQL predicate alone would admit "sapn-elc-11-".
func (t *identifierTx) IdentifiersWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := t.tx.QueryContext(ctx, querySelectIdentifiersLike, likeEscaper.Replace(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("scan prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var ipn string
		if err := rows.Scan(&ipn); err != nil {
			return nil, fmt.Errorf("scan prefix %q: scan row: %w", prefix, err)
		}
		if strings.HasPrefix(ipn, prefix) {
			ids = append(ids, ipn)
		}
	}
	return ids, rows.Err()
}

func (t *identifierTx) AssignIdentifier(ctx context.Context, partID int64, ipn string) error {
	res, err := t.tx.ExecContext(ctx, queryAssignIdentifier, ipn, t.nowFn(), partID)
	if err != nil {
		return fmt.Errorf("assign %s to part %d: %w", ipn, partID, mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign %s to part %d: check rows: %w", ipn, partID, err)
	}
	if n == 0 {
		return storage.ErrPartNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func mapError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %w", storage.ErrConflict, err)
	}
	return err
}

func marshalParameters(params map[string]string) ([]byte, error) {
	if len(params) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parameters: %w", err)
	}
	return b, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPart(row scanner) (*v1.Part, error) {
	var p v1.Part
	var paramsJSON []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.IPN, &paramsJSON, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if len(paramsJSON) > 0 {
		if err := json.Unmarshal(paramsJSON, &p.Parameters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal parameters: %w", err)
		}
	}
	return &p, nil
}
