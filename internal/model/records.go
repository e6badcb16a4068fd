package model

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a doctor record as read from hms.doctors.
type Doctor struct {
	ID             uuid.UUID
	Name           string
	Specialization string
	Percentages    Percentages
	// MissingPercent marks categories whose percentage column was NULL.
	// Those read as 0 in Percentages.
	MissingPercent CategorySet
	IsActive       bool
}

// Visit is a patient visit with its itemized fees as read from hms.visits.
type Visit struct {
	ID          uuid.UUID
	PatientName string
	DoctorID    uuid.NullUUID
	DoctorName  string
	VisitedAt   time.Time
	Fees        Amounts
}

// Expense is a hospital expense; salaries are recorded with category "salary".
type Expense struct {
	ID          uuid.UUID
	Category    string
	Description string
	Amount      int64
	SpentAt     time.Time
}

// Window is a half-open [From, To) reporting window.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// VisitFilter narrows a visit query. Zero values mean "no filter".
type VisitFilter struct {
	Window Window
	// Search matches patient or doctor names case-insensitively.
	Search string
	// DoctorID restricts to visits stored with this doctor id.
	DoctorID uuid.NullUUID
}
