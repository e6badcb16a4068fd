package split

import (
	"fmt"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
)

// WarningKind classifies a data-quality finding on an input record.
type WarningKind string

const (
	// NegativeFee: a fee below zero was clamped to zero.
	NegativeFee WarningKind = "negative_fee"
	// PercentOutOfRange: a percentage outside [0, 100] was clamped.
	PercentOutOfRange WarningKind = "percent_out_of_range"
	// MissingPercent: a doctor has no percentage stored for a category and
	// receives nothing from it.
	MissingPercent WarningKind = "missing_percent"
)

// Warning describes one normalization applied to an input record.
type Warning struct {
	Kind     WarningKind
	Subject  string // visit id or doctor name
	Category model.Category
	Got      int64 // minor units or basis points, as stored
	Used     int64 // value used for the split
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s %s: got %d, used %d", w.Kind, w.Subject, w.Category, w.Got, w.Used)
}

// SanitizeVisit clamps negative fees to zero.
func SanitizeVisit(v model.Visit) (model.Visit, []Warning) {
	var warns []Warning
	for _, c := range model.AllCategories {
		if v.Fees[c] < 0 {
			warns = append(warns, Warning{
				Kind:     NegativeFee,
				Subject:  v.ID.String(),
				Category: c,
				Got:      v.Fees[c],
			})
			v.Fees[c] = 0
		}
	}
	return v, warns
}

// SanitizeDoctor clamps percentages to [0, 100] and reports categories with
// no stored percentage.
func SanitizeDoctor(d model.Doctor) (model.Doctor, []Warning) {
	var warns []Warning
	for _, c := range model.AllCategories {
		if d.MissingPercent.Has(c) {
			warns = append(warns, Warning{Kind: MissingPercent, Subject: d.Name, Category: c})
		}
		p := d.Percentages[c]
		clamped := p
		if clamped < 0 {
			clamped = 0
		}
		if clamped > FullShare {
			clamped = FullShare
		}
		if clamped != p {
			warns = append(warns, Warning{
				Kind:     PercentOutOfRange,
				Subject:  d.Name,
				Category: c,
				Got:      int64(p),
				Used:     int64(clamped),
			})
			d.Percentages[c] = clamped
		}
	}
	return d, warns
}
