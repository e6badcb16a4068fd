package split

import (
	"fmt"
	"strings"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
)

// Policy decides what happens to a visit whose doctor cannot be resolved.
type Policy int

const (
	// AttributeToHospital books unmatched visits 100% to the hospital, so the
	// grand fee total always reconciles with the visits' fees.
	AttributeToHospital Policy = iota
	// Skip leaves unmatched visits out of every summary.
	Skip
)

func (p Policy) String() string {
	switch p {
	case AttributeToHospital:
		return "attribute_to_hospital"
	case Skip:
		return "skip"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses a configured policy name.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "attribute_to_hospital", "hospital":
		return AttributeToHospital, nil
	case "skip":
		return Skip, nil
	}
	return 0, fmt.Errorf("unknown unmatched doctor policy %q (want attribute_to_hospital or skip)", s)
}

// Line is one visit's outcome within an aggregation pass.
type Line struct {
	Visit   model.Visit
	Doctor  int // index into Result.Doctors, -1 when unmatched
	Skipped bool
	Split   VisitSplit
}

// Result is the outcome of one aggregation pass.
type Result struct {
	Policy       Policy
	Doctors      []DoctorSummary
	Unattributed Summary
	Grand        GrandSummary
	Lines        []Line

	Matched   int64
	Unmatched int64
	Skipped   int64
	Warnings  []Warning
}

// Aggregator folds visits into per-doctor and grand summaries against one
// snapshot of doctor records.
type Aggregator struct {
	index  *DoctorIndex
	result *Result
}

// NewAggregator sanitizes the doctor snapshot and prepares a zeroed summary
// per doctor, in snapshot order.
func NewAggregator(doctors []model.Doctor, policy Policy) *Aggregator {
	res := &Result{Policy: policy}
	clean := make([]model.Doctor, len(doctors))
	res.Doctors = make([]DoctorSummary, len(doctors))
	for i, d := range doctors {
		var warns []Warning
		clean[i], warns = SanitizeDoctor(d)
		res.Warnings = append(res.Warnings, warns...)
		res.Doctors[i] = DoctorSummary{DoctorID: d.ID, DoctorName: d.Name}
	}
	return &Aggregator{index: NewDoctorIndex(clean), result: res}
}

// Index exposes the sanitized doctor snapshot.
func (a *Aggregator) Index() *DoctorIndex { return a.index }

// Add resolves, splits and folds one visit.
func (a *Aggregator) Add(v model.Visit) {
	v, warns := SanitizeVisit(v)
	res := a.result
	res.Warnings = append(res.Warnings, warns...)

	line := Line{Visit: v, Doctor: -1}
	if i, ok := a.index.Resolve(&v); ok {
		line.Doctor = i
		line.Split = ComputeVisitSplit(&v, a.index.Doctor(i))
		res.Doctors[i].Add(line.Split)
		res.Grand.Add(line.Split)
		res.Matched++
	} else {
		res.Unmatched++
		switch res.Policy {
		case Skip:
			line.Skipped = true
			res.Skipped++
		default:
			line.Split = HospitalOnly(v.Fees)
			res.Unattributed.Add(line.Split)
			res.Grand.Add(line.Split)
		}
	}
	res.Lines = append(res.Lines, line)
}

// Result returns the accumulated result.
func (a *Aggregator) Result() *Result { return a.result }

// Aggregate folds visits against a single doctor snapshot.
func Aggregate(doctors []model.Doctor, visits []model.Visit, policy Policy) *Result {
	a := NewAggregator(doctors, policy)
	for _, v := range visits {
		a.Add(v)
	}
	return a.Result()
}

// Merge folds another pass over the same doctor snapshot into r.
// Doctors are matched by id, falling back to name; unknown doctors are appended.
func (r *Result) Merge(o *Result) {
	pos := make(map[string]int, len(r.Doctors))
	for i, d := range r.Doctors {
		pos[doctorKey(d)] = i
	}
	offset := make([]int, len(o.Doctors))
	for j, d := range o.Doctors {
		i, ok := pos[doctorKey(d)]
		if !ok {
			i = len(r.Doctors)
			r.Doctors = append(r.Doctors, DoctorSummary{DoctorID: d.DoctorID, DoctorName: d.DoctorName})
			pos[doctorKey(d)] = i
		}
		r.Doctors[i].Merge(d.Summary)
		offset[j] = i
	}
	for _, l := range o.Lines {
		if l.Doctor >= 0 {
			l.Doctor = offset[l.Doctor]
		}
		r.Lines = append(r.Lines, l)
	}
	r.Unattributed.Merge(o.Unattributed)
	r.Grand.Merge(o.Grand)
	r.Matched += o.Matched
	r.Unmatched += o.Unmatched
	r.Skipped += o.Skipped
	r.Warnings = append(r.Warnings, o.Warnings...)
}

func doctorKey(d DoctorSummary) string {
	return d.DoctorID.String() + "|" + d.DoctorName
}

