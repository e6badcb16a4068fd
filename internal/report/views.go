package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/normalize"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/split"
)

// Kind selects the layout of a range report.
type Kind string

const (
	KindSummary  Kind = "summary"  // one row per doctor
	KindCategory Kind = "category" // one row per fee category
	KindVisits   Kind = "visits"   // one row per visit
)

// ParseKind validates a report type name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindSummary, nil
	case KindSummary, KindCategory, KindVisits:
		return k, nil
	}
	return "", fmt.Errorf("unknown report type %q (want summary, category or visits)", s)
}

// Daily runs the pass for one calendar day in opts.Location. opts.Window is ignored.
func Daily(ctx context.Context, src Source, log zerolog.Logger, day time.Time, opts Options) (*Pass, error) {
	opts.Window.From, opts.Window.To = normalize.DayBounds(day, locOf(opts))
	return Collect(ctx, src, log, opts)
}

// Range runs the pass over the calendar days from through to inclusive.
func Range(ctx context.Context, src Source, log zerolog.Logger, from, to time.Time, opts Options) (*Pass, error) {
	start, end, err := normalize.RangeBounds(from, to, locOf(opts))
	if err != nil {
		return nil, err
	}
	opts.Window = model.Window{From: start, To: end}
	return Collect(ctx, src, log, opts)
}

func locOf(opts Options) *time.Location {
	if opts.Location == nil {
		return time.UTC
	}
	return opts.Location
}

// DayPoint is one day of the dashboard series.
type DayPoint struct {
	Date string // YYYY-MM-DD in the reporting timezone
	split.Summary
}

// Dashboard is the revenue dashboard view of a pass.
type Dashboard struct {
	Pass       *Pass
	Series     []DayPoint
	TopDoctors []split.DoctorSummary
}

// BuildDashboard derives the per-day series and the top doctors by fee
// total. Skipped visits are not part of any series point.
func BuildDashboard(p *Pass, top int) *Dashboard {
	days := normalize.Days(p.Window.From, p.Window.To, p.Location)
	pos := make(map[string]int, len(days))
	series := make([]DayPoint, len(days))
	for i, d := range days {
		pos[d] = i
		series[i].Date = d
	}
	for _, l := range p.Result.Lines {
		if l.Skipped {
			continue
		}
		if i, ok := pos[normalize.IsoDateOnly(l.Visit.VisitedAt, p.Location)]; ok {
			series[i].Add(l.Split)
		}
	}

	ranked := make([]split.DoctorSummary, 0, len(p.Result.Doctors))
	for _, d := range p.Result.Doctors {
		if d.Visits > 0 {
			ranked = append(ranked, d)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].FeeTotal != ranked[j].FeeTotal {
			return ranked[i].FeeTotal > ranked[j].FeeTotal
		}
		return ranked[i].DoctorName < ranked[j].DoctorName
	})
	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}

	return &Dashboard{Pass: p, Series: series, TopDoctors: ranked}
}

// PreviewResult is the split of an unsaved visit.
type PreviewResult struct {
	Doctor   *model.Doctor // nil when no doctor matched
	Split    split.VisitSplit
	Warnings []split.Warning
}

// ShareOverrides replaces a doctor's stored share for some categories, in
// basis points. Overridden values go through the same sanitization as
// stored ones.
type ShareOverrides map[model.Category]int32

// Preview splits fees for a prospective visit with doctorName, using the
// current doctor snapshot, the same sanitization, and the same
// unmatched-doctor policy as every report. shares applies to the matched
// doctor only and is ignored when no doctor matches.
func Preview(ctx context.Context, src Source, doctorName string, fees model.Amounts, policy split.Policy, shares ShareOverrides) (*PreviewResult, error) {
	doctors, err := src.ListDoctors(ctx)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseDoctors, Err: err}
	}
	if len(shares) > 0 {
		if i, ok := split.NewDoctorIndex(doctors).MatchName(doctorName); ok {
			doctors = append([]model.Doctor(nil), doctors...)
			d := &doctors[i]
			for c, bps := range shares {
				d.Percentages[c] = bps
				d.MissingPercent &^= model.CategorySet(0).With(c)
			}
		}
	}

	agg := split.NewAggregator(doctors, policy)
	agg.Add(model.Visit{PatientName: "preview", DoctorName: doctorName, Fees: fees})
	res := agg.Result()
	line := res.Lines[0]

	out := &PreviewResult{Split: line.Split}
	if line.Doctor >= 0 {
		d := *agg.Index().Doctor(line.Doctor)
		out.Doctor = &d
		// Only warnings about this visit and its doctor are relevant.
		for _, w := range res.Warnings {
			if w.Subject == d.Name || w.Kind == split.NegativeFee {
				out.Warnings = append(out.Warnings, w)
			}
		}
		return out, nil
	}
	if line.Skipped {
		return nil, &PhaseError{Phase: PhaseDoctors, Err: fmt.Errorf("%w: %q", ErrDoctorNotFound, doctorName)}
	}
	for _, w := range res.Warnings {
		if w.Kind == split.NegativeFee {
			out.Warnings = append(out.Warnings, w)
		}
	}
	return out, nil
}

// ExportRows flattens a pass into one row per doctor, the unattributed
// bucket and the grand total.
func ExportRows(p *Pass) []model.SummaryRow {
	from := normalize.IsoDateOnly(p.Window.From, p.Location)
	// Window.To is exclusive; export the last included day.
	to := normalize.IsoDateOnly(p.Window.To.Add(-time.Nanosecond), p.Location)

	row := func(kind string, s split.Summary) model.SummaryRow {
		r := model.SummaryRow{
			Kind:          kind,
			WindowFrom:    from,
			WindowTo:      to,
			Visits:        s.Visits,
			FeeTotal:      s.FeeTotal,
			DoctorTotal:   s.DoctorTotal,
			HospitalTotal: s.HospitalTotal,
		}
		r.SetCategories(s.Fees, s.Doctor)
		return r
	}

	rows := make([]model.SummaryRow, 0, len(p.Result.Doctors)+2)
	for _, d := range p.Result.Doctors {
		r := row("doctor", d.Summary)
		r.DoctorID = d.DoctorID.String()
		r.DoctorName = d.DoctorName
		rows = append(rows, r)
	}
	if p.Result.Policy == split.AttributeToHospital {
		rows = append(rows, row("unattributed", p.Result.Unattributed))
	}
	return append(rows, row("grand", p.Result.Grand))
}
