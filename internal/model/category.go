package model

// Category is one of the billable fee categories tracked per visit.
type Category int

const (
	OPD Category = iota
	LAB
	OT
	Ultrasound
	ECG

	NumCategories = 5
)

// categoryInfo describes the storage columns backing a Category.
type categoryInfo struct {
	Name      string // e.g. "OPD"
	Key       string // lowercase key used for CLI flags, e.g. "opd"
	FeeColumn string // hms.visits column, e.g. "opd_fee"
}

var categoryTable = [NumCategories]categoryInfo{
	{Name: "OPD", Key: "opd", FeeColumn: "opd_fee"},
	{Name: "LAB", Key: "lab", FeeColumn: "lab_fee"},
	{Name: "OT", Key: "ot", FeeColumn: "ot_fee"},
	{Name: "ULTRASOUND", Key: "ultrasound", FeeColumn: "ultrasound_fee"},
	{Name: "ECG", Key: "ecg", FeeColumn: "ecg_fee"},
}

// AllCategories lists the fee categories in canonical display and summation order.
var AllCategories = []Category{OPD, LAB, OT, Ultrasound, ECG}

func (c Category) String() string {
	if c < 0 || int(c) >= NumCategories {
		return "UNKNOWN"
	}
	return categoryTable[c].Name
}

// FeeColumn returns the visits table column holding this category's fee.
func (c Category) FeeColumn() string { return categoryTable[c].FeeColumn }

// Key returns the lowercase category key, e.g. "ultrasound".
func (c Category) Key() string { return categoryTable[c].Key }

// FeeColumns returns the fee column names for all categories in canonical order.
func FeeColumns() []string {
	cols := make([]string, NumCategories)
	for i, c := range AllCategories {
		cols[i] = c.FeeColumn()
	}
	return cols
}

// Amounts holds one money value per category, in minor units (paisa).
// Categories that were never set are zero.
type Amounts [NumCategories]int64

// Total sums the amounts across all categories.
func (a Amounts) Total() int64 {
	var t int64
	for _, v := range a {
		t += v
	}
	return t
}

// Add returns the category-wise sum of a and b.
func (a Amounts) Add(b Amounts) Amounts {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Percentages holds a doctor's share per category in basis points
// (7000 = 70%). The hospital keeps 10000 minus this value.
type Percentages [NumCategories]int32

// CategorySet is a small bitset of categories.
type CategorySet uint8

// With returns the set with c added.
func (s CategorySet) With(c Category) CategorySet { return s | 1<<uint(c) }

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool { return s&(1<<uint(c)) != 0 }
