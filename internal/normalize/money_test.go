package normalize

import (
	"math"
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestDollarsToCents(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		in   *float64
		want int64
	}{
		{nil, 0},
		{f(0), 0},
		{f(1500), 150000},
		{f(12.34), 1234},
		{f(0.1 + 0.2), 30},
	}
	for _, tt := range tests {
		if got := DollarsToCents(tt.in); got != tt.want {
			t.Errorf("DollarsToCents(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecimalToMinor_RoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"10.005", 1001},
		{"10.004", 1000},
		{"-10.005", -1001},
		{"1250.75", 125075},
	}
	for _, tt := range tests {
		if got := DecimalToMinor(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("DecimalToMinor(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNumericToMinor(t *testing.T) {
	n := pgtype.Numeric{Int: big.NewInt(123456), Exp: -2, Valid: true}
	if got := NumericToMinor(n); got != 123456 {
		t.Errorf("NumericToMinor = %d, want 123456", got)
	}
	if got := NumericToMinor(pgtype.Numeric{}); got != 0 {
		t.Errorf("NULL numeric = %d, want 0", got)
	}
	if got := NumericToMinor(pgtype.Numeric{NaN: true, Valid: true}); got != 0 {
		t.Errorf("NaN numeric = %d, want 0", got)
	}
}

func TestNumericToBasisPoints(t *testing.T) {
	bps, ok := NumericToBasisPoints(pgtype.Numeric{Int: big.NewInt(625), Exp: -1, Valid: true})
	if !ok || bps != 6250 {
		t.Errorf("62.5%% = (%d, %v), want (6250, true)", bps, ok)
	}
	if _, ok := NumericToBasisPoints(pgtype.Numeric{}); ok {
		t.Error("NULL percentage should report ok=false")
	}
}

func TestParseMoney(t *testing.T) {
	got, err := ParseMoney("1,250.75")
	if err != nil {
		t.Fatalf("ParseMoney: %v", err)
	}
	if got != 125075 {
		t.Errorf("got %d, want 125075", got)
	}
	if _, err := ParseMoney("abc"); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}

func TestParsePercent(t *testing.T) {
	got, err := ParsePercent("62.5")
	if err != nil {
		t.Fatalf("ParsePercent: %v", err)
	}
	if got != 6250 {
		t.Errorf("got %d, want 6250", got)
	}
	if _, err := ParsePercent("seventy"); err == nil {
		t.Error("expected error for non-numeric percentage")
	}
}

func TestDecimalToBasisPoints_Saturates(t *testing.T) {
	tests := []struct {
		in   string
		want int32
	}{
		{"70", 7000},
		{"12.345", 1235},
		{"-0.005", -1},
		{"42949673", math.MaxInt32},
		{"99999999999999999999", math.MaxInt32},
		{"-42949673", math.MinInt32},
	}
	for _, tt := range tests {
		got, err := ParsePercent(tt.in)
		if err != nil {
			t.Fatalf("ParsePercent(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePercent(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}

	huge := pgtype.Numeric{Int: big.NewInt(42949673), Exp: 0, Valid: true}
	if bps, ok := NumericToBasisPoints(huge); !ok || bps != math.MaxInt32 {
		t.Errorf("NumericToBasisPoints(42949673) = (%d, %v), want saturated", bps, ok)
	}
}

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		symbol string
		in     int64
		want   string
	}{
		{"Rs", 0, "Rs 0.00"},
		{"Rs", 5, "Rs 0.05"},
		{"Rs", 123450, "Rs 1,234.50"},
		{"Rs", 123456789, "Rs 1,234,567.89"},
		{"Rs", -150000, "-Rs 1,500.00"},
		{"", 70000, "700.00"},
	}
	for _, tt := range tests {
		if got := (MoneyFormat{Symbol: tt.symbol}).Format(tt.in); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := FormatMoney(100); got != "Rs 1.00" {
		t.Errorf("FormatMoney(100) = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(7000); got != "70%" {
		t.Errorf("got %q, want 70%%", got)
	}
	if got := FormatPercent(6250); got != "62.5%" {
		t.Errorf("got %q, want 62.5%%", got)
	}
}
