package load_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/config"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/db"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/load"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/logging"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/normalize"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/parquetio"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/report"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/split"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/store"
)

const (
	testPort     = 15433
	testDB       = "revsplittest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testDSN string

func TestMain(m *testing.M) {
	if os.Getenv("REVSPLIT_INTEGRATION") != "1" {
		fmt.Fprintln(os.Stderr, "SKIP: set REVSPLIT_INTEGRATION=1 to run database tests")
		os.Exit(0)
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30*time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB recreates the hms schema and seeds two doctors.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN, true)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS hms CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}

	log := logging.Setup("text")
	n, err := db.ApplyMigrations(ctx, pool, log)
	if err != nil {
		t.Fatalf("migrations: %v", err)
	}
	if n == 0 {
		t.Fatal("expected migrations to apply on a fresh schema")
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO hms.doctors (name, opd_percentage, lab_percentage, ot_percentage, ultrasound_percentage, ecg_percentage)
		VALUES ('Dr. Ayesha Khan', 70.00, 60.00, NULL, 50.00, 0),
		       ('Dr. John Smith', 50.00, 0, 40.00, 0, 0)`)
	if err != nil {
		t.Fatalf("seed doctors: %v", err)
	}
	return pool
}

func strp(s string) *string { return &s }
func fee(v float64) *float64 { return &v }

// writeFixture writes a small visits file: three valid rows and one with no patient.
func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "visits.parquet")
	rows := []model.VisitRow{
		{PatientName: "Bilal", DoctorName: strp("Dr. Ayesha Khan"), VisitDate: "2024-03-05", OPDFee: fee(1000), LABFee: fee(500)},
		{PatientName: "Sana", DoctorName: strp("smith"), VisitDate: "2024-03-05", OTFee: fee(3000)},
		{PatientName: "Omar", DoctorName: strp("Dr. Unknown"), VisitDate: "2024-03-05", ECGFee: fee(150)},
		{PatientName: "  ", DoctorName: strp("Dr. Ayesha Khan"), VisitDate: "2024-03-05", OPDFee: fee(99)},
	}
	if err := parquetio.WriteFile(path, rows); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func newConfig(t *testing.T, path string) *config.Config {
	t.Helper()
	cfg := &config.Config{DSN: testDSN, FilePath: path, LogFormat: "text"}
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	return cfg
}

func countVisits(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()
	var n int64
	if err := pool.QueryRow(context.Background(), "SELECT count(*) FROM hms.visits").Scan(&n); err != nil {
		t.Fatalf("count visits: %v", err)
	}
	return n
}

func TestMigrations_Idempotent(t *testing.T) {
	pool := setupDB(t)
	n, err := db.ApplyMigrations(context.Background(), pool, logging.Setup("text"))
	if err != nil {
		t.Fatalf("second ApplyMigrations: %v", err)
	}
	if n != 0 {
		t.Errorf("second run applied %d migrations, want 0", n)
	}
}

func TestListDoctors_ConvertsPercentages(t *testing.T) {
	pool := setupDB(t)
	doctors, err := store.New(pool).ListDoctors(context.Background())
	if err != nil {
		t.Fatalf("ListDoctors: %v", err)
	}
	if len(doctors) != 2 {
		t.Fatalf("got %d doctors, want 2", len(doctors))
	}
	khan := doctors[0]
	if khan.Name != "Dr. Ayesha Khan" {
		t.Fatalf("first doctor = %q, want ordering by name", khan.Name)
	}
	want := model.Percentages{model.OPD: 7000, model.LAB: 6000, model.Ultrasound: 5000}
	if khan.Percentages != want {
		t.Errorf("percentages = %v, want %v", khan.Percentages, want)
	}
	if !khan.MissingPercent.Has(model.OT) || khan.MissingPercent.Has(model.ECG) {
		t.Errorf("MissingPercent = %b, want only OT", khan.MissingPercent)
	}
	if !khan.IsActive {
		t.Error("expected active doctor")
	}
}

func TestRun_LoadsAndResolvesDoctors(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	cfg := newConfig(t, writeFixture(t))

	summary, err := load.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("load.Run: %v", err)
	}

	t.Run("summary_metrics", func(t *testing.T) {
		if summary.RowsRead != 4 {
			t.Errorf("RowsRead = %d, want 4", summary.RowsRead)
		}
		if summary.RowsLoaded != 3 {
			t.Errorf("RowsLoaded = %d, want 3", summary.RowsLoaded)
		}
		if summary.RowsRejected != 1 {
			t.Errorf("RowsRejected = %d, want 1", summary.RowsRejected)
		}
		if summary.DoctorsMatched != 2 {
			t.Errorf("DoctorsMatched = %d, want 2", summary.DoctorsMatched)
		}
	})

	t.Run("load_status", func(t *testing.T) {
		var status string
		var rows int64
		err := pool.QueryRow(ctx,
			"SELECT status, rows_loaded FROM hms.visit_loads WHERE load_id = $1", summary.LoadID,
		).Scan(&status, &rows)
		if err != nil {
			t.Fatalf("query load: %v", err)
		}
		if status != store.LoadDone || rows != 3 {
			t.Errorf("load = (%s, %d), want (%s, 3)", status, rows, store.LoadDone)
		}
	})

	t.Run("visits_round_trip", func(t *testing.T) {
		day, err := normalize.ParseDay("2024-03-05", cfg.Location())
		if err != nil {
			t.Fatal(err)
		}
		start, end := normalize.DayBounds(day, cfg.Location())
		visits, err := store.New(pool).ListVisits(ctx, model.VisitFilter{Window: model.Window{From: start, To: end}})
		if err != nil {
			t.Fatalf("ListVisits: %v", err)
		}
		if len(visits) != 3 {
			t.Fatalf("got %d visits, want 3", len(visits))
		}
		var total int64
		withDoctor := 0
		for _, v := range visits {
			total += v.Fees.Total()
			if v.DoctorID.Valid {
				withDoctor++
			}
		}
		if total != 465000 {
			t.Errorf("fee total = %d, want 465000", total)
		}
		if withDoctor != 2 {
			t.Errorf("visits with doctor id = %d, want 2", withDoctor)
		}
	})

	t.Run("daily_report", func(t *testing.T) {
		day, _ := normalize.ParseDay("2024-03-05", cfg.Location())
		p, err := report.Daily(ctx, store.New(pool), log, day, report.Options{
			Location: cfg.Location(),
			Policy:   split.AttributeToHospital,
		})
		if err != nil {
			t.Fatalf("Daily: %v", err)
		}
		g := p.Result.Grand
		// Khan: 700 + 300; Smith: 40% of 3000.
		if g.DoctorTotal != 220000 {
			t.Errorf("doctor total = %d, want 220000", g.DoctorTotal)
		}
		if g.FeeTotal != g.DoctorTotal+g.HospitalTotal {
			t.Errorf("conservation broken: %+v", g)
		}
		if p.Result.Unmatched != 1 {
			t.Errorf("Unmatched = %d, want 1", p.Result.Unmatched)
		}
	})
}

func TestRun_SkipsAlreadyLoaded(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	cfg := newConfig(t, writeFixture(t))

	first, err := load.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	second, err := load.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.AlreadyLoaded {
		t.Error("expected second run to report AlreadyLoaded")
	}
	if second.LoadID != first.LoadID {
		t.Errorf("LoadID = %d, want %d", second.LoadID, first.LoadID)
	}
	if n := countVisits(t, pool); n != 3 {
		t.Errorf("visits after skip = %d, want 3", n)
	}

	cfg.Force = true
	forced, err := load.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("forced run: %v", err)
	}
	if forced.AlreadyLoaded || forced.RowsLoaded != 3 {
		t.Errorf("forced run = %+v", forced)
	}
	if n := countVisits(t, pool); n != 3 {
		t.Errorf("visits after forced reload = %d, want 3 (no double count)", n)
	}
}

// failingReader returns its rows in one batch, then fails.
type failingReader struct {
	rows []model.VisitRow
	err  error
	done bool
}

func (r *failingReader) Read(buf []model.VisitRow) (int, error) {
	if r.done {
		return 0, r.err
	}
	r.done = true
	return copy(buf, r.rows), nil
}

func TestStage_ReadErrorLeavesNoVisits(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	q := store.New(pool)

	batch := uuid.New()
	loadID, err := q.RegisterLoad(ctx, store.RegisterLoadParams{
		BatchID:        batch,
		SourceFileName: "corrupt.parquet",
		SHA256:         "corrupt-file-hash",
		FileSizeBytes:  1,
	})
	if err != nil {
		t.Fatalf("RegisterLoad: %v", err)
	}
	pf := &load.PreflightResult{LoadID: loadID, BatchID: batch}

	readErr := errors.New("corrupt page")
	reader := &failingReader{
		rows: []model.VisitRow{
			{PatientName: "Bilal", DoctorName: strp("Dr. Ayesha Khan"), VisitDate: "2024-03-05", OPDFee: fee(1000)},
			{PatientName: "Sana", DoctorName: strp("smith"), VisitDate: "2024-03-05", OTFee: fee(3000)},
		},
		err: readErr,
	}
	doctors, err := q.ListDoctors(ctx)
	if err != nil {
		t.Fatalf("ListDoctors: %v", err)
	}

	_, err = load.StageRows(ctx, pool, log, pf, reader, split.NewDoctorIndex(doctors), time.UTC)
	if !errors.Is(err, readErr) {
		t.Fatalf("err = %v, want the read error", err)
	}

	var n int64
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM hms.visits WHERE load_id = $1", loadID).Scan(&n); err != nil {
		t.Fatalf("count visits: %v", err)
	}
	if n != 0 {
		t.Errorf("visits for failed load = %d, want 0", n)
	}
}

func TestRun_PreflightErrors(t *testing.T) {
	pool := setupDB(t)
	cfg := newConfig(t, filepath.Join(t.TempDir(), "missing.parquet"))

	_, err := load.Run(context.Background(), pool, logging.Setup("text"), cfg)
	pe, ok := err.(*load.PipelineError)
	if !ok {
		t.Fatalf("err = %v, want *PipelineError", err)
	}
	if pe.Phase != load.PhasePreflight {
		t.Errorf("phase = %s, want %s", pe.Phase, load.PhasePreflight)
	}
}
