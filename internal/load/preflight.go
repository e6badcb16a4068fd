package load

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/normalize"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/parquetio"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/store"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	FilePath   string
	FileSHA256 string
	FileSize   int64
	// LoadID is the hms.visit_loads key for this file, new or existing.
	LoadID int64
	// BatchID tags this run in hms.visit_loads.
	BatchID uuid.UUID
	NumRows int64
	// AlreadyLoaded is true when the file was fully loaded before and force
	// mode is off.
	AlreadyLoaded bool
}

// Preflight hashes the file, validates its schema and registers the load.
// With force set, a previously loaded file has its visits removed so the
// reload does not double count.
func Preflight(ctx context.Context, q *store.Queries, log zerolog.Logger, filePath string, force bool) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}
	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	reader, err := parquetio.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight open: %w", err)
	}
	defer reader.Close()

	if err := parquetio.ValidateSchema(reader.Schema()); err != nil {
		return nil, fmt.Errorf("preflight validate: %w", err)
	}

	pf := &PreflightResult{
		FilePath:   filePath,
		FileSHA256: sha,
		FileSize:   stat.Size(),
		BatchID:    uuid.New(),
		NumRows:    reader.NumRows(),
	}

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int64("rows", pf.NumRows).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	pf.LoadID, err = q.RegisterLoad(ctx, store.RegisterLoadParams{
		BatchID:        pf.BatchID,
		SourceFileName: filepath.Base(filePath),
		SHA256:         sha,
		FileSizeBytes:  pf.FileSize,
	})
	if err == nil {
		return pf, nil
	}
	if !errors.Is(err, store.ErrLoadExists) {
		return nil, fmt.Errorf("preflight register: %w", err)
	}

	existing, err := q.LookupLoad(ctx, sha)
	if err != nil {
		return nil, fmt.Errorf("preflight lookup: %w", err)
	}
	pf.LoadID = existing.LoadID
	if existing.Status == store.LoadDone && !force {
		pf.AlreadyLoaded = true
		return pf, nil
	}

	// Re-import: drop whatever a previous (possibly partial) run inserted.
	deleted, err := q.DeleteLoadVisits(ctx, existing.LoadID)
	if err != nil {
		return nil, fmt.Errorf("preflight reset: %w", err)
	}
	if err := q.UpdateLoadStatus(ctx, existing.LoadID, store.LoadPending, 0); err != nil {
		return nil, fmt.Errorf("preflight reset: %w", err)
	}
	log.Info().Int64("load_id", existing.LoadID).Int64("visits_deleted", deleted).Msg("previous load reset")
	return pf, nil
}
