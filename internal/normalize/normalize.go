package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
)

// ToStagedVisit converts a Parquet-read VisitRow into a normalized StagedVisit.
// Visit dates without an offset are read in loc. Rows without a patient name
// or with an unparseable date are rejected.
func ToStagedVisit(row *model.VisitRow, loadID, rowNum int64, loc *time.Location) (*model.StagedVisit, error) {
	patient := strings.TrimSpace(row.PatientName)
	if patient == "" {
		return nil, fmt.Errorf("row %d: empty patient_name", rowNum)
	}
	visitedAt := ParseDate(row.VisitDate, loc)
	if visitedAt == nil {
		return nil, fmt.Errorf("row %d: unparseable visit_date %q", rowNum, row.VisitDate)
	}

	s := &model.StagedVisit{
		Visit: model.Visit{
			PatientName: patient,
			DoctorName:  strings.TrimSpace(derefStr(row.DoctorName)),
			VisitedAt:   *visitedAt,
		},
		LoadID:    loadID,
		SourceRow: rowNum,
	}

	if id := strings.TrimSpace(derefStr(row.VisitID)); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("row %d: visit_id: %w", rowNum, err)
		}
		s.ID = parsed
	}

	for c, fee := range row.FeeValues() {
		s.Fees[c] = DollarsToCents(fee)
	}
	return s, nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
