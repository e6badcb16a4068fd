package load

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/db"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/normalize"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/parquetio"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/split"
)

const readBatchSize = 1024

// StageResult holds metrics from the staging phase.
type StageResult struct {
	RowsRead       int64
	RowsLoaded     int64
	RowsRejected   int64
	DoctorsMatched int64
	Duration       time.Duration
}

// rowReader is the batch-reading side of parquetio.Reader.
type rowReader interface {
	Read(rows []model.VisitRow) (int, error)
}

// Stage streams rows from the Parquet file, normalizes them, resolves their
// doctor against the snapshot, and COPY-loads them into hms.visits via a
// channel-backed CopyFromSource. The COPY is a single statement, so a read
// error part way through the file leaves no rows of this load behind.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, doctors *split.DoctorIndex, loc *time.Location) (*StageResult, error) {
	reader, err := parquetio.Open(pf.FilePath)
	if err != nil {
		return nil, fmt.Errorf("stage open: %w", err)
	}
	defer reader.Close()

	return stageRows(ctx, pool, log, pf, reader, doctors, loc)
}

func stageRows(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, reader rowReader, doctors *split.DoctorIndex, loc *time.Location) (*StageResult, error) {
	start := time.Now()

	ch := make(chan *model.StagedVisit, readBatchSize)
	errCh := make(chan error, 1)
	source := db.NewChannelSource(ch)

	var rowsRead, rowsRejected, matched int64

	// Producer goroutine: read Parquet → normalize → push to channel
	go func() {
		defer close(ch)
		buf := make([]model.VisitRow, readBatchSize)
		var rowNum int64

		for {
			n, readErr := reader.Read(buf)
			for i := 0; i < n; i++ {
				rowNum++
				rowsRead++

				staged, normErr := normalize.ToStagedVisit(&buf[i], pf.LoadID, rowNum, loc)
				if normErr != nil {
					rowsRejected++
					log.Warn().Err(normErr).Int64("row", rowNum).Msg("row rejected")
					continue
				}
				if !staged.DoctorID.Valid {
					if idx, ok := doctors.MatchName(staged.DoctorName); ok {
						staged.DoctorID.UUID = doctors.Doctor(idx).ID
						staged.DoctorID.Valid = true
					}
				}
				if staged.DoctorID.Valid {
					matched++
				}

				select {
				case ch <- staged:
				case <-ctx.Done():
					source.Fail(ctx.Err())
					errCh <- ctx.Err()
					return
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				err := fmt.Errorf("read parquet at row %d: %w", rowNum, readErr)
				source.Fail(err)
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()

	rowsLoaded, err := pool.CopyFrom(ctx,
		pgx.Identifier{"hms", "visits"},
		model.VisitCopyColumns(),
		source,
	)
	if err != nil {
		// Unblock the producer if COPY stopped consuming early.
		go func() {
			for range ch {
			}
		}()
	}

	prodErr := <-errCh
	if prodErr != nil {
		return nil, fmt.Errorf("stage producer: %w", prodErr)
	}
	if err != nil {
		return nil, fmt.Errorf("stage copy: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_read", rowsRead).
		Int64("rows_loaded", rowsLoaded).
		Int64("rows_rejected", rowsRejected).
		Int64("doctors_matched", matched).
		Str("duration", dur.String()).
		Msg("staging complete")

	return &StageResult{
		RowsRead:       rowsRead,
		RowsLoaded:     rowsLoaded,
		RowsRejected:   rowsRejected,
		DoctorsMatched: matched,
		Duration:       dur,
	}, nil
}
