// Package report runs aggregation passes over the hosted database and
// shapes their results into the daily summary, range reports, the revenue
// dashboard and the new-visit preview.
package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/split"
)

// Source supplies the records a pass reads. *store.Queries implements it.
type Source interface {
	ListDoctors(ctx context.Context) ([]model.Doctor, error)
	ListVisits(ctx context.Context, f model.VisitFilter) ([]model.Visit, error)
	ListExpenses(ctx context.Context, w model.Window) ([]model.Expense, error)
}

// Pass phases, reported in PhaseError.
const (
	PhaseDoctors  = "doctors"
	PhaseVisits   = "visits"
	PhaseExpenses = "expenses"
)

// ErrDoctorNotFound is returned when a doctor name matches no stored doctor.
var ErrDoctorNotFound = errors.New("no doctor matches")

// PhaseError wraps an error with the phase where it occurred.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Options scope one aggregation pass.
type Options struct {
	Window   model.Window
	Location *time.Location
	Policy   split.Policy
	// Doctor restricts the pass to the doctor matching this name.
	Doctor string
	// Search restricts visits by patient or doctor name.
	Search string
	// SkipExpenses leaves expenses out of the pass. Passes narrowed by
	// Doctor or Search never include expenses, which belong to the whole
	// hospital.
	SkipExpenses bool
}

// ExpenseLine is the total for one expense category.
type ExpenseLine struct {
	Category string
	Amount   int64
	Count    int64
}

// Pass is the outcome of one aggregation over a window.
type Pass struct {
	Window   model.Window
	Location *time.Location
	Doctor   *model.Doctor // set when the pass was filtered to one doctor
	Result   *split.Result

	Expenses     []ExpenseLine
	ExpenseTotal int64

	Duration time.Duration
}

// NetHospital is the hospital's share of fees less expenses.
func (p *Pass) NetHospital() int64 {
	return p.Result.Grand.HospitalTotal - p.ExpenseTotal
}

// Collect fetches one doctor snapshot, the window's visits and expenses,
// and folds every visit through the split engine against that snapshot.
func Collect(ctx context.Context, src Source, log zerolog.Logger, opts Options) (*Pass, error) {
	start := time.Now()
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	doctors, err := src.ListDoctors(ctx)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseDoctors, Err: err}
	}
	log.Debug().Int("doctors", len(doctors)).Msg("doctor snapshot loaded")

	visits, err := src.ListVisits(ctx, model.VisitFilter{Window: opts.Window, Search: opts.Search})
	if err != nil {
		return nil, &PhaseError{Phase: PhaseVisits, Err: err}
	}

	pass := &Pass{Window: opts.Window, Location: loc}
	if opts.Doctor != "" {
		pass.Result, pass.Doctor, err = aggregateForDoctor(doctors, visits, opts)
		if err != nil {
			return nil, &PhaseError{Phase: PhaseDoctors, Err: err}
		}
	} else {
		pass.Result = split.Aggregate(doctors, visits, opts.Policy)
	}

	if !opts.SkipExpenses && opts.Doctor == "" && opts.Search == "" {
		expenses, err := src.ListExpenses(ctx, opts.Window)
		if err != nil {
			return nil, &PhaseError{Phase: PhaseExpenses, Err: err}
		}
		pass.Expenses, pass.ExpenseTotal = groupExpenses(expenses)
	}

	pass.Duration = time.Since(start)
	logWarnings(log, pass.Result.Warnings)
	log.Info().
		Str("from", pass.Window.From.In(loc).Format(time.RFC3339)).
		Str("to", pass.Window.To.In(loc).Format(time.RFC3339)).
		Int("visits", len(visits)).
		Int64("matched", pass.Result.Matched).
		Int64("unmatched", pass.Result.Unmatched).
		Int64("skipped", pass.Result.Skipped).
		Str("policy", opts.Policy.String()).
		Dur("duration", pass.Duration).
		Msg("aggregation pass complete")

	return pass, nil
}

// aggregateForDoctor narrows a pass to one doctor. Visits are resolved
// against the full snapshot so a visit never lands on a doctor it would not
// match in an unfiltered pass.
func aggregateForDoctor(doctors []model.Doctor, visits []model.Visit, opts Options) (*split.Result, *model.Doctor, error) {
	full := split.NewDoctorIndex(doctors)
	i, ok := full.MatchName(opts.Doctor)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrDoctorNotFound, opts.Doctor)
	}
	doctor := doctors[i]

	var mine []model.Visit
	for _, v := range visits {
		if j, ok := full.Resolve(&v); ok && j == i {
			mine = append(mine, v)
		}
	}
	return split.Aggregate([]model.Doctor{doctor}, mine, opts.Policy), &doctor, nil
}

func groupExpenses(expenses []model.Expense) ([]ExpenseLine, int64) {
	byCat := make(map[string]*ExpenseLine)
	var total int64
	for _, e := range expenses {
		line, ok := byCat[e.Category]
		if !ok {
			line = &ExpenseLine{Category: e.Category}
			byCat[e.Category] = line
		}
		line.Amount += e.Amount
		line.Count++
		total += e.Amount
	}
	out := make([]ExpenseLine, 0, len(byCat))
	for _, l := range byCat {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out, total
}

const maxLoggedWarnings = 20

func logWarnings(log zerolog.Logger, warns []split.Warning) {
	for i, w := range warns {
		if i == maxLoggedWarnings {
			log.Warn().Int("suppressed", len(warns)-i).Msg("more data-quality warnings")
			break
		}
		log.Warn().
			Str("kind", string(w.Kind)).
			Str("subject", w.Subject).
			Str("category", w.Category.String()).
			Int64("got", w.Got).
			Int64("used", w.Used).
			Msg("data-quality warning")
	}
}
