package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	embedsql "github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/sql"
)

// Load statuses recorded in hms.visit_loads.
const (
	LoadPending = "pending"
	LoadStaging = "staging"
	LoadDone    = "loaded"
	LoadFailed  = "failed"
)

// RegisterLoadParams describes a visit file about to be loaded.
type RegisterLoadParams struct {
	BatchID        uuid.UUID
	SourceFileName string
	SHA256         string
	FileSizeBytes  int64
}

// LoadRecord is an existing hms.visit_loads row.
type LoadRecord struct {
	LoadID int64
	Status string
}

// ErrLoadExists is returned by RegisterLoad when the file hash is already registered.
var ErrLoadExists = errors.New("visit file already registered")

// RegisterLoad inserts a visit_loads row and returns its id.
func (q *Queries) RegisterLoad(ctx context.Context, p RegisterLoadParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, embedsql.RegisterLoad,
		p.BatchID, p.SourceFileName, p.SHA256, p.FileSizeBytes,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		// ON CONFLICT DO NOTHING returned no row
		return 0, ErrLoadExists
	}
	if err != nil {
		return 0, fmt.Errorf("register load: %w", err)
	}
	return id, nil
}

// LookupLoad finds the load registered for a file hash.
func (q *Queries) LookupLoad(ctx context.Context, sha256 string) (LoadRecord, error) {
	var r LoadRecord
	if err := q.db.QueryRow(ctx, embedsql.LookupLoad, sha256).Scan(&r.LoadID, &r.Status); err != nil {
		return LoadRecord{}, fmt.Errorf("lookup load: %w", err)
	}
	return r, nil
}

// UpdateLoadStatus sets a load's status and loaded row count.
func (q *Queries) UpdateLoadStatus(ctx context.Context, loadID int64, status string, rows int64) error {
	if _, err := q.db.Exec(ctx, embedsql.UpdateLoadStatus, loadID, status, rows); err != nil {
		return fmt.Errorf("update load status: %w", err)
	}
	return nil
}

// DeleteLoadVisits removes the visits inserted by a load, for re-imports.
func (q *Queries) DeleteLoadVisits(ctx context.Context, loadID int64) (int64, error) {
	tag, err := q.db.Exec(ctx, embedsql.DeleteLoadVisits, loadID)
	if err != nil {
		return 0, fmt.Errorf("delete load visits: %w", err)
	}
	return tag.RowsAffected(), nil
}
