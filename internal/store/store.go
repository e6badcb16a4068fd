// Package store reads doctor, visit and expense records from the hosted
// database and records visit loads. It is read-only with respect to
// doctors, visits and expenses.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/normalize"
	embedsql "github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/sql"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries runs the embedded queries against a DBTX.
type Queries struct {
	db DBTX
}

// New returns Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// ListDoctors returns every doctor, active or not, ordered by name. Callers
// take one snapshot per aggregation pass.
func (q *Queries) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	rows, err := q.db.Query(ctx, embedsql.ListDoctors)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		var d model.Doctor
		var pct [model.NumCategories]pgtype.Numeric
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialization,
			&pct[model.OPD], &pct[model.LAB], &pct[model.OT],
			&pct[model.Ultrasound], &pct[model.ECG],
			&d.IsActive); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		for _, c := range model.AllCategories {
			bps, ok := normalize.NumericToBasisPoints(pct[c])
			if !ok {
				d.MissingPercent = d.MissingPercent.With(c)
			}
			d.Percentages[c] = bps
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return out, nil
}

// ListVisits returns the visits matching f, ordered by visit time.
func (q *Queries) ListVisits(ctx context.Context, f model.VisitFilter) ([]model.Visit, error) {
	var doctorID any
	if f.DoctorID.Valid {
		doctorID = f.DoctorID.UUID
	}
	rows, err := q.db.Query(ctx, embedsql.ListVisits, f.Window.From, f.Window.To, f.Search, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var out []model.Visit
	for rows.Next() {
		var v model.Visit
		var doctorID pgtype.UUID
		var fees [model.NumCategories]pgtype.Numeric
		if err := rows.Scan(&v.ID, &v.PatientName, &doctorID, &v.DoctorName, &v.VisitedAt,
			&fees[model.OPD], &fees[model.LAB], &fees[model.OT],
			&fees[model.Ultrasound], &fees[model.ECG]); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		if doctorID.Valid {
			v.DoctorID = uuid.NullUUID{UUID: uuid.UUID(doctorID.Bytes), Valid: true}
		}
		for _, c := range model.AllCategories {
			v.Fees[c] = normalize.NumericToMinor(fees[c])
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return out, nil
}

// ListExpenses returns the expenses recorded inside w.
func (q *Queries) ListExpenses(ctx context.Context, w model.Window) ([]model.Expense, error) {
	rows, err := q.db.Query(ctx, embedsql.ListExpenses, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []model.Expense
	for rows.Next() {
		var e model.Expense
		var amount pgtype.Numeric
		if err := rows.Scan(&e.ID, &e.Category, &e.Description, &amount, &e.SpentAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Amount = normalize.NumericToMinor(amount)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return out, nil
}
