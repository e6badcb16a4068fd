// Package split computes how each visit's fees divide between the treating
// doctor and the hospital, and folds those splits into per-doctor and grand
// summaries.
//
// All money is int64 minor units and all percentages are basis points, so
// doctor + hospital == fee holds exactly for every category and every total.
package split

import "github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"

// FullShare is 100% in basis points.
const FullShare = 10000

// VisitSplit is the doctor/hospital allocation of one visit's fees.
type VisitSplit struct {
	Fees     model.Amounts
	Doctor   model.Amounts
	Hospital model.Amounts

	FeeTotal      int64
	DoctorTotal   int64
	HospitalTotal int64
}

// ComputeVisitSplit splits a visit's fees using the doctor's percentages.
// It never fails: missing categories are zero and inputs are used as given.
// Clamp degenerate records with Sanitize before calling it.
func ComputeVisitSplit(v *model.Visit, d *model.Doctor) VisitSplit {
	return ComputeFees(v.Fees, d.Percentages)
}

// HospitalOnly is the split of fees that no doctor shares in.
func HospitalOnly(fees model.Amounts) VisitSplit {
	return ComputeFees(fees, model.Percentages{})
}

// ComputeFees splits fees category by category using pct.
func ComputeFees(fees model.Amounts, pct model.Percentages) VisitSplit {
	var s VisitSplit
	for _, c := range model.AllCategories {
		fee := fees[c]
		doc := share(fee, pct[c])
		s.Fees[c] = fee
		s.Doctor[c] = doc
		s.Hospital[c] = fee - doc

		s.FeeTotal += fee
		s.DoctorTotal += doc
		s.HospitalTotal += fee - doc
	}
	return s
}

// share returns fee*bps/10000 rounded half away from zero.
func share(fee int64, bps int32) int64 {
	p := fee * int64(bps)
	if p < 0 {
		return -((-p + FullShare/2) / FullShare)
	}
	return (p + FullShare/2) / FullShare
}
