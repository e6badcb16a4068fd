// Package load bulk-loads visit records from Parquet files into hms.visits.
package load

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/config"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/split"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/store"
)

// Phases reported in PipelineError.
const (
	PhasePreflight = "preflight"
	PhaseDoctors   = "doctors"
	PhaseStage     = "stage"
	PhaseFinalize  = "finalize"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the load pipeline: preflight → doctor snapshot → stage →
// finalize. A failed stage marks the load failed so a rerun resets it.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.LoadSummary, error) {
	totalStart := time.Now()
	q := store.New(pool)

	log.Info().Str("file", cfg.FilePath).Msg("starting preflight")
	pf, err := Preflight(ctx, q, log, cfg.FilePath, cfg.Force)
	if err != nil {
		return nil, &PipelineError{Phase: PhasePreflight, Err: err}
	}

	summary := &model.LoadSummary{
		FilePath:    pf.FilePath,
		FileSHA256:  pf.FileSHA256,
		LoadID:      pf.LoadID,
		LoadBatchID: pf.BatchID.String(),
	}

	if pf.AlreadyLoaded {
		log.Info().
			Int64("load_id", pf.LoadID).
			Str("sha256", pf.FileSHA256).
			Msg("file already loaded, skipping (use --force to re-load)")
		summary.AlreadyLoaded = true
		summary.DurationTotal = time.Since(totalStart)
		return summary, nil
	}

	doctors, err := q.ListDoctors(ctx)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseDoctors, Err: err}
	}
	index := split.NewDoctorIndex(doctors)
	log.Info().Int("doctors", index.Len()).Msg("doctor snapshot loaded")

	if err := q.UpdateLoadStatus(ctx, pf.LoadID, store.LoadStaging, 0); err != nil {
		return nil, &PipelineError{Phase: PhaseStage, Err: err}
	}

	stageResult, err := Stage(ctx, pool, log, pf, index, cfg.Location())
	if err != nil {
		// Use a fresh context: ctx may be the reason staging failed.
		_ = q.UpdateLoadStatus(context.WithoutCancel(ctx), pf.LoadID, store.LoadFailed, 0)
		return nil, &PipelineError{Phase: PhaseStage, Err: err}
	}

	if err := q.UpdateLoadStatus(ctx, pf.LoadID, store.LoadDone, stageResult.RowsLoaded); err != nil {
		return nil, &PipelineError{Phase: PhaseFinalize, Err: err}
	}

	summary.RowsRead = stageResult.RowsRead
	summary.RowsLoaded = stageResult.RowsLoaded
	summary.RowsRejected = stageResult.RowsRejected
	summary.DoctorsMatched = stageResult.DoctorsMatched
	summary.DurationStage = stageResult.Duration
	summary.DurationTotal = time.Since(totalStart)

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_loaded", summary.RowsLoaded).
		Int64("rows_rejected", summary.RowsRejected).
		Int64("doctors_matched", summary.DoctorsMatched).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("load pipeline complete")

	return summary, nil
}
