package split

import (
	"github.com/google/uuid"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
)

// Summary is a running fold of visit splits.
type Summary struct {
	Fees     model.Amounts
	Doctor   model.Amounts
	Hospital model.Amounts

	FeeTotal      int64
	DoctorTotal   int64
	HospitalTotal int64
	Visits        int64
}

// Add folds one visit split into the summary.
func (s *Summary) Add(v VisitSplit) {
	s.Fees = s.Fees.Add(v.Fees)
	s.Doctor = s.Doctor.Add(v.Doctor)
	s.Hospital = s.Hospital.Add(v.Hospital)
	s.FeeTotal += v.FeeTotal
	s.DoctorTotal += v.DoctorTotal
	s.HospitalTotal += v.HospitalTotal
	s.Visits++
}

// Merge folds another summary into s.
func (s *Summary) Merge(o Summary) {
	s.Fees = s.Fees.Add(o.Fees)
	s.Doctor = s.Doctor.Add(o.Doctor)
	s.Hospital = s.Hospital.Add(o.Hospital)
	s.FeeTotal += o.FeeTotal
	s.DoctorTotal += o.DoctorTotal
	s.HospitalTotal += o.HospitalTotal
	s.Visits += o.Visits
}

// DoctorSummary is the fold of all visits attributed to one doctor.
type DoctorSummary struct {
	DoctorID   uuid.UUID
	DoctorName string
	Summary
}

// GrandSummary is the fold across every doctor plus unattributed visits.
type GrandSummary = Summary
