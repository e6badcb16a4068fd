package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/normalize"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/split"
)

// Renderer writes views as aligned text tables.
type Renderer struct {
	W     io.Writer
	Money normalize.MoneyFormat
}

// table returns a writer for one left-aligned table; every cell must end in a tab.
func (r Renderer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(r.W, 0, 0, 2, ' ', 0)
}

func (r Renderer) window(p *Pass) string {
	from := normalize.IsoDateOnly(p.Window.From, p.Location)
	to := normalize.IsoDateOnly(p.Window.To.Add(-time.Nanosecond), p.Location)
	if from == to {
		return from
	}
	return from + " .. " + to
}

// Daily renders the daily summary: per-doctor split, unattributed visits,
// totals, expenses and net hospital income.
func (r Renderer) Daily(p *Pass) error {
	fmt.Fprintf(r.W, "=== Daily summary %s (%s) ===\n\n", r.window(p), p.Location)
	if err := r.doctorTable(p); err != nil {
		return err
	}
	return r.footer(p)
}

// Report renders a range report of the given kind.
func (r Renderer) Report(p *Pass, kind Kind) error {
	title := "Report"
	if p.Doctor != nil {
		title += " for " + p.Doctor.Name
	}
	fmt.Fprintf(r.W, "=== %s %s (%s) ===\n\n", title, r.window(p), kind)

	var err error
	switch kind {
	case KindCategory:
		err = r.categoryTable(p.Result.Grand)
	case KindVisits:
		err = r.visitTable(p)
	default:
		err = r.doctorTable(p)
	}
	if err != nil {
		return err
	}
	return r.footer(p)
}

// Dashboard renders the revenue dashboard.
func (r Renderer) Dashboard(d *Dashboard) error {
	p := d.Pass
	g := p.Result.Grand
	fmt.Fprintf(r.W, "=== Revenue dashboard %s ===\n\n", r.window(p))
	fmt.Fprintf(r.W, "Visits:           %d\n", g.Visits)
	fmt.Fprintf(r.W, "Total fees:       %s\n", r.Money.Format(g.FeeTotal))
	fmt.Fprintf(r.W, "Doctor share:     %s\n", r.Money.Format(g.DoctorTotal))
	fmt.Fprintf(r.W, "Hospital share:   %s\n", r.Money.Format(g.HospitalTotal))
	fmt.Fprintf(r.W, "Expenses:         %s\n", r.Money.Format(p.ExpenseTotal))
	fmt.Fprintf(r.W, "Net revenue:      %s\n\n", r.Money.Format(p.NetHospital()))

	fmt.Fprintln(r.W, "By category:")
	if err := r.categoryTable(g); err != nil {
		return err
	}

	fmt.Fprintln(r.W, "\nDaily:")
	tw := r.table()
	fmt.Fprintln(tw, "Date\tVisits\tFees\tDoctor\tHospital\t")
	for _, pt := range d.Series {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t\n", pt.Date, pt.Visits,
			r.Money.Format(pt.FeeTotal), r.Money.Format(pt.DoctorTotal), r.Money.Format(pt.HospitalTotal))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(r.W, "\nTop doctors:")
	tw = r.table()
	fmt.Fprintln(tw, "Doctor\tVisits\tFees\tDoctor share\t")
	for _, ds := range d.TopDoctors {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t\n", ds.DoctorName, ds.Visits,
			r.Money.Format(ds.FeeTotal), r.Money.Format(ds.DoctorTotal))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return r.expenses(p)
}

// Preview renders the split of an unsaved visit.
func (r Renderer) Preview(res *PreviewResult) error {
	name := "(no matching doctor: attributed to hospital)"
	var pct model.Percentages
	if res.Doctor != nil {
		name = res.Doctor.Name
		pct = res.Doctor.Percentages
	}
	fmt.Fprintf(r.W, "=== New visit preview: %s ===\n\n", name)

	tw := r.table()
	fmt.Fprintln(tw, "Category\tFee\tDoctor %\tDoctor\tHospital\t")
	s := res.Split
	for _, c := range model.AllCategories {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", c, r.Money.Format(s.Fees[c]),
			normalize.FormatPercent(pct[c]), r.Money.Format(s.Doctor[c]), r.Money.Format(s.Hospital[c]))
	}
	fmt.Fprintf(tw, "TOTAL\t%s\t\t%s\t%s\t\n", r.Money.Format(s.FeeTotal),
		r.Money.Format(s.DoctorTotal), r.Money.Format(s.HospitalTotal))
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(r.W, "warning: %s\n", w)
	}
	return nil
}

func (r Renderer) doctorTable(p *Pass) error {
	tw := r.table()
	fmt.Fprintln(tw, "Doctor\tVisits\tFees\tDoctor share\tHospital share\t")
	for _, d := range p.Result.Doctors {
		r.summaryRow(tw, d.DoctorName, d.Summary)
	}
	if p.Result.Policy == split.AttributeToHospital && p.Result.Unattributed.Visits > 0 {
		r.summaryRow(tw, "(unattributed)", p.Result.Unattributed)
	}
	r.summaryRow(tw, "TOTAL", p.Result.Grand)
	return tw.Flush()
}

func (r Renderer) summaryRow(w io.Writer, label string, s split.Summary) {
	fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t\n", label, s.Visits,
		r.Money.Format(s.FeeTotal), r.Money.Format(s.DoctorTotal), r.Money.Format(s.HospitalTotal))
}

func (r Renderer) categoryTable(s split.Summary) error {
	tw := r.table()
	fmt.Fprintln(tw, "Category\tFees\tDoctor share\tHospital share\t")
	for _, c := range model.AllCategories {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", c,
			r.Money.Format(s.Fees[c]), r.Money.Format(s.Doctor[c]), r.Money.Format(s.Hospital[c]))
	}
	fmt.Fprintf(tw, "TOTAL\t%s\t%s\t%s\t\n",
		r.Money.Format(s.FeeTotal), r.Money.Format(s.DoctorTotal), r.Money.Format(s.HospitalTotal))
	return tw.Flush()
}

func (r Renderer) visitTable(p *Pass) error {
	tw := r.table()
	fmt.Fprintln(tw, "Date\tPatient\tDoctor\tFees\tDoctor share\tHospital share\t")
	for _, l := range p.Result.Lines {
		doctor := "(unattributed)"
		switch {
		case l.Skipped:
			doctor = "(skipped)"
		case l.Doctor >= 0:
			doctor = p.Result.Doctors[l.Doctor].DoctorName
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			normalize.IsoDateOnly(l.Visit.VisitedAt, p.Location), l.Visit.PatientName, doctor,
			r.Money.Format(l.Split.FeeTotal), r.Money.Format(l.Split.DoctorTotal), r.Money.Format(l.Split.HospitalTotal))
	}
	return tw.Flush()
}

func (r Renderer) footer(p *Pass) error {
	if p.Result.Skipped > 0 {
		fmt.Fprintf(r.W, "\n%d visit(s) with no matching doctor were skipped.\n", p.Result.Skipped)
	}
	if n := len(p.Result.Warnings); n > 0 {
		fmt.Fprintf(r.W, "%d data-quality warning(s); see log.\n", n)
	}
	return r.expenses(p)
}

func (r Renderer) expenses(p *Pass) error {
	if len(p.Expenses) == 0 {
		fmt.Fprintf(r.W, "\nNet hospital income: %s\n", r.Money.Format(p.NetHospital()))
		return nil
	}
	fmt.Fprintln(r.W, "\nExpenses:")
	tw := r.table()
	for _, e := range p.Expenses {
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", e.Category, e.Count, r.Money.Format(e.Amount))
	}
	fmt.Fprintf(tw, "TOTAL\t\t%s\t\n", r.Money.Format(p.ExpenseTotal))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(r.W, "\nNet hospital income: %s\n", r.Money.Format(p.NetHospital()))
	return nil
}
