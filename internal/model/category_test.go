package model

import (
	"testing"
	"time"
)

func TestCategoryOrder(t *testing.T) {
	want := []string{"OPD", "LAB", "OT", "ULTRASOUND", "ECG"}
	if len(AllCategories) != NumCategories {
		t.Fatalf("AllCategories has %d entries, want %d", len(AllCategories), NumCategories)
	}
	for i, c := range AllCategories {
		if c.String() != want[i] {
			t.Errorf("AllCategories[%d] = %s, want %s", i, c, want[i])
		}
	}
	if got := Category(9).String(); got != "UNKNOWN" {
		t.Errorf("out of range category = %q", got)
	}
	if got := FeeColumns(); got[Ultrasound] != "ultrasound_fee" || Ultrasound.Key() != "ultrasound" {
		t.Errorf("ultrasound columns = %v / %s", got, Ultrasound.Key())
	}
}

func TestAmounts(t *testing.T) {
	a := Amounts{OPD: 100, ECG: 5}
	b := Amounts{OPD: 1, LAB: 2}
	sum := a.Add(b)
	if sum != (Amounts{OPD: 101, LAB: 2, ECG: 5}) {
		t.Errorf("Add = %v", sum)
	}
	if a[OPD] != 100 {
		t.Error("Add must not modify its receiver")
	}
	if sum.Total() != 108 {
		t.Errorf("Total = %d, want 108", sum.Total())
	}
}

func TestCategorySet(t *testing.T) {
	var s CategorySet
	s = s.With(OT).With(ECG)
	for _, c := range AllCategories {
		want := c == OT || c == ECG
		if s.Has(c) != want {
			t.Errorf("Has(%s) = %v, want %v", c, s.Has(c), want)
		}
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{From: mustTime(t, "2024-03-05T00:00:00Z"), To: mustTime(t, "2024-03-06T00:00:00Z")}
	if !w.Contains(w.From) {
		t.Error("window must include its start")
	}
	if w.Contains(w.To) {
		t.Error("window must exclude its end")
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}
