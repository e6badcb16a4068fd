// mkfixture writes a synthetic visits Parquet file for local load and
// report testing. Rows are deterministic for a given seed and include a few
// rows the loader must reject.
// Usage: go run ./cmd/mkfixture --out testdata/visits.parquet --rows 200 --from 2024-03-01 --days 14
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/normalize"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/parquetio"
)

// Name spellings vary on purpose so the loader's doctor matching is exercised.
var doctorNames = []string{
	"Dr. Ayesha Khan", "ayesha khan", "Dr Khan",
	"Dr. John Smith", "Smith",
	"Dr. Imran Qureshi", "Imran",
	"Dr. Walk-in",
}

var patientNames = []string{
	"Bilal Ahmed", "Sana Javed", "Omar Farooq", "Hina Malik",
	"Usman Tariq", "Zara Sheikh", "Ali Raza", "Fatima Noor",
}

// feeSteps are realistic fee amounts in major units per category.
var feeSteps = [model.NumCategories][]float64{
	model.OPD:        {500, 800, 1000, 1500},
	model.LAB:        {300, 650, 1200, 2500},
	model.OT:         {15000, 30000, 45000},
	model.Ultrasound: {1500, 2500, 3500},
	model.ECG:        {400, 700},
}

// odds is the chance (in percent) that a visit carries each category.
var odds = [model.NumCategories]int{model.OPD: 90, model.LAB: 45, model.OT: 8, model.Ultrasound: 20, model.ECG: 15}

func main() {
	out := flag.String("out", "testdata/visits.parquet", "output parquet")
	rows := flag.Int("rows", 200, "rows to write")
	from := flag.String("from", "2024-03-01", "first visit day, YYYY-MM-DD")
	days := flag.Int("days", 14, "number of days to spread visits over")
	seed := flag.Uint64("seed", 1, "random seed")
	bad := flag.Int("bad", 2, "rows with no patient name, rejected on load")
	flag.Parse()

	start, err := normalize.ParseDay(*from, time.UTC)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --from: %v\n", err)
		os.Exit(1)
	}
	if *days < 1 || *rows < 1 {
		fmt.Fprintln(os.Stderr, "--rows and --days must be positive")
		os.Exit(1)
	}

	r := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	visits := make([]model.VisitRow, 0, *rows)
	var fees model.Amounts

	for i := 0; i < *rows; i++ {
		row := model.VisitRow{
			VisitDate:   start.AddDate(0, 0, r.IntN(*days)).Format(normalize.DateLayout),
			PatientName: patientNames[r.IntN(len(patientNames))],
		}
		if i < *bad {
			row.PatientName = ""
		}
		if r.IntN(10) > 0 {
			name := doctorNames[r.IntN(len(doctorNames))]
			row.DoctorName = &name
		}
		if r.IntN(4) == 0 {
			id := uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "visit-%d-%d", *seed, i)).String()
			row.VisitID = &id
		}

		var amounts [model.NumCategories]*float64
		for _, c := range model.AllCategories {
			if r.IntN(100) >= odds[c] {
				continue
			}
			v := feeSteps[c][r.IntN(len(feeSteps[c]))]
			amounts[c] = &v
			if i >= *bad {
				fees[c] += normalize.DollarsToCents(&v)
			}
		}
		row.OPDFee, row.LABFee, row.OTFee = amounts[model.OPD], amounts[model.LAB], amounts[model.OT]
		row.UltrasoundFee, row.ECGFee = amounts[model.Ultrasound], amounts[model.ECG]

		visits = append(visits, row)
	}

	if err := parquetio.WriteFile(*out, visits); err != nil {
		fmt.Fprintf(os.Stderr, "write parquet: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows to %s (%d to be rejected)\n", len(visits), *out, min(*bad, len(visits)))
	for _, c := range model.AllCategories {
		fmt.Printf("  %-10s %s\n", c, normalize.FormatMoney(fees[c]))
	}
	fmt.Printf("  %-10s %s\n", "TOTAL", normalize.FormatMoney(fees.Total()))
}
