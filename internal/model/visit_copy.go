package model

import (
	"math/big"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// StagedVisit is a normalized, DB-ready visit produced by a Parquet load.
type StagedVisit struct {
	Visit
	LoadID    int64
	SourceRow int64
}

// VisitCopyColumns returns the ordered column names for COPY into hms.visits.
func VisitCopyColumns() []string {
	cols := []string{"id", "patient_name", "doctor_id", "doctor_name", "visited_at"}
	cols = append(cols, FeeColumns()...)
	return append(cols, "load_id", "source_row")
}

// CopyValues returns the row values in the same order as VisitCopyColumns(),
// suitable for pgx CopyFromSource.
func (v *StagedVisit) CopyValues() []any {
	var doctorID any
	if v.DoctorID.Valid {
		doctorID = v.DoctorID.UUID
	}
	id := v.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	vals := []any{id, v.PatientName, doctorID, nilIfEmpty(v.DoctorName), v.VisitedAt}
	for _, minor := range v.Fees {
		vals = append(vals, MinorToNumeric(minor))
	}
	return append(vals, v.LoadID, v.SourceRow)
}

// MinorToNumeric encodes a minor-unit amount as a two-decimal numeric.
func MinorToNumeric(minor int64) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(minor), Exp: -2, Valid: true}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
