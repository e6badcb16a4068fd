package split

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
)

func visit(doctor string, fees model.Amounts) model.Visit {
	return model.Visit{ID: uuid.New(), DoctorName: doctor, VisitedAt: time.Unix(0, 0), Fees: fees}
}

func TestAggregate_SameDoctorTwoVisits(t *testing.T) {
	docs := []model.Doctor{{Name: "Dr. Khan", Percentages: model.Percentages{model.OPD: pct(50)}}}
	visits := []model.Visit{
		visit("Khan", model.Amounts{model.OPD: major(100)}),
		visit("Dr. Khan", model.Amounts{model.OPD: major(200)}),
	}

	res := Aggregate(docs, visits, AttributeToHospital)

	ds := res.Doctors[0]
	if ds.Doctor[model.OPD] != major(150) || ds.Hospital[model.OPD] != major(150) || ds.FeeTotal != major(300) {
		t.Errorf("doctor summary = %+v", ds.Summary)
	}
	if ds.Visits != 2 || res.Matched != 2 || res.Unmatched != 0 {
		t.Errorf("visits=%d matched=%d unmatched=%d", ds.Visits, res.Matched, res.Unmatched)
	}
	if res.Grand != ds.Summary {
		t.Errorf("grand %+v != doctor %+v", res.Grand, ds.Summary)
	}
}

func TestAggregate_TitlePrefixMatches(t *testing.T) {
	docs := []model.Doctor{{Name: "Smith", Percentages: model.Percentages{model.OPD: pct(40)}}}
	res := Aggregate(docs, []model.Visit{visit("Dr. Smith", model.Amounts{model.OPD: major(100)})}, Skip)
	if res.Matched != 1 || res.Doctors[0].DoctorTotal != major(40) {
		t.Errorf("matched=%d doctor total=%d", res.Matched, res.Doctors[0].DoctorTotal)
	}
}

func TestAggregate_UnmatchedPolicies(t *testing.T) {
	docs := []model.Doctor{{Name: "Dr. Khan", Percentages: model.Percentages{model.OPD: pct(50)}}}
	visits := []model.Visit{
		visit("Khan", model.Amounts{model.OPD: major(100)}),
		visit("Dr. Nobody", model.Amounts{model.OPD: major(80), model.LAB: major(20)}),
	}

	t.Run("attribute_to_hospital", func(t *testing.T) {
		res := Aggregate(docs, visits, AttributeToHospital)
		if res.Unmatched != 1 || res.Skipped != 0 {
			t.Fatalf("unmatched=%d skipped=%d", res.Unmatched, res.Skipped)
		}
		if res.Unattributed.HospitalTotal != major(100) || res.Unattributed.DoctorTotal != 0 {
			t.Errorf("unattributed = %+v", res.Unattributed)
		}
		if res.Grand.FeeTotal != major(200) {
			t.Errorf("grand fee total = %d, want %d", res.Grand.FeeTotal, major(200))
		}
		if res.Grand.HospitalTotal != major(150) || res.Grand.DoctorTotal != major(50) {
			t.Errorf("grand = %+v", res.Grand)
		}
	})

	t.Run("skip", func(t *testing.T) {
		res := Aggregate(docs, visits, Skip)
		if res.Skipped != 1 || res.Unattributed.Visits != 0 {
			t.Fatalf("skipped=%d unattributed=%d", res.Skipped, res.Unattributed.Visits)
		}
		if res.Grand.FeeTotal != major(100) {
			t.Errorf("grand fee total = %d, want %d", res.Grand.FeeTotal, major(100))
		}
		if !res.Lines[1].Skipped || res.Lines[1].Doctor != -1 {
			t.Errorf("line = %+v", res.Lines[1])
		}
	})
}

func TestAggregate_ZeroedSummaryPerDoctor(t *testing.T) {
	docs := testDoctors()
	res := Aggregate(docs, nil, AttributeToHospital)
	if len(res.Doctors) != len(docs) {
		t.Fatalf("got %d summaries, want %d", len(res.Doctors), len(docs))
	}
	for i, d := range res.Doctors {
		if d.DoctorID != docs[i].ID || d.Visits != 0 || d.FeeTotal != 0 {
			t.Errorf("summary %d = %+v", i, d)
		}
	}
}

func TestAggregate_ClampsAtBoundary(t *testing.T) {
	docs := []model.Doctor{{Name: "Khan", Percentages: model.Percentages{model.OPD: 15000}}}
	visits := []model.Visit{visit("Khan", model.Amounts{model.OPD: major(100), model.LAB: -major(50)})}
	res := Aggregate(docs, visits, AttributeToHospital)
	if res.Grand.DoctorTotal != major(100) || res.Grand.FeeTotal != major(100) {
		t.Errorf("grand = %+v", res.Grand)
	}
	if len(res.Warnings) != 2 {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestAggregate_GrandEqualsSumOfParts(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	docs := testDoctors()
	for i := range docs {
		_, docs[i].Percentages = randomInputs(r)
	}
	names := []string{"Dr. Ayesha Khan", "smith", "Imran", "Unknown Person", ""}
	var visits []model.Visit
	var feeSum int64
	for n := 0; n < 300; n++ {
		fees, _ := randomInputs(r)
		feeSum += fees.Total()
		visits = append(visits, visit(names[r.Intn(len(names))], fees))
	}

	res := Aggregate(docs, visits, AttributeToHospital)

	if res.Grand.FeeTotal != feeSum {
		t.Errorf("grand fee total %d != input fee sum %d", res.Grand.FeeTotal, feeSum)
	}
	var sum Summary
	for _, d := range res.Doctors {
		sum.Merge(d.Summary)
	}
	sum.Merge(res.Unattributed)
	if sum != res.Grand {
		t.Errorf("sum of doctors + unattributed %+v != grand %+v", sum, res.Grand)
	}
	for _, c := range model.AllCategories {
		if res.Grand.Doctor[c]+res.Grand.Hospital[c] != res.Grand.Fees[c] {
			t.Errorf("category %s does not conserve", c)
		}
	}
}

func TestAggregate_Additivity(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	docs := testDoctors()
	for i := range docs {
		_, docs[i].Percentages = randomInputs(r)
	}
	names := []string{"Ayesha", "Dr. Smith", "Qureshi", "nobody"}
	var visits []model.Visit
	for n := 0; n < 200; n++ {
		fees, _ := randomInputs(r)
		visits = append(visits, visit(names[r.Intn(len(names))], fees))
	}

	for _, policy := range []Policy{AttributeToHospital, Skip} {
		whole := Aggregate(docs, visits, policy)
		cut := r.Intn(len(visits))
		left := Aggregate(docs, visits[:cut], policy)
		left.Merge(Aggregate(docs, visits[cut:], policy))

		if left.Grand != whole.Grand {
			t.Errorf("%s: merged grand %+v != whole %+v", policy, left.Grand, whole.Grand)
		}
		for i := range whole.Doctors {
			if left.Doctors[i].Summary != whole.Doctors[i].Summary {
				t.Errorf("%s: doctor %d differs after merge", policy, i)
			}
		}
		if left.Unattributed != whole.Unattributed || left.Skipped != whole.Skipped {
			t.Errorf("%s: unattributed/skipped differ after merge", policy)
		}
		if len(left.Lines) != len(whole.Lines) {
			t.Errorf("%s: %d lines, want %d", policy, len(left.Lines), len(whole.Lines))
		}
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{
		"":                      AttributeToHospital,
		"attribute_to_hospital": AttributeToHospital,
		"SKIP":                  Skip,
	} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = (%v, %v), want %v", in, got, err, want)
		}
	}
	if _, err := ParsePolicy("drop"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
