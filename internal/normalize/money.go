package normalize

import (
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MinorPerMajor is the number of minor units (paisa) in one currency unit.
const MinorPerMajor = 100

// DollarsToCents converts a nullable float64 major-unit amount to int64 minor units.
// Uses math.Round to avoid truncation bias. A nil amount is 0.
func DollarsToCents(v *float64) int64 {
	if v == nil {
		return 0
	}
	return int64(math.Round(*v * MinorPerMajor))
}

// DecimalToBasisPoints converts a percentage decimal to basis points,
// rounding half away from zero (12.34 → 1234). Values outside the int32
// range saturate so later range checks still see them as out of range.
func DecimalToBasisPoints(d decimal.Decimal) int32 {
	bps := d.Shift(2).Round(0)
	switch {
	case bps.GreaterThan(decimal.NewFromInt(math.MaxInt32)):
		return math.MaxInt32
	case bps.LessThan(decimal.NewFromInt(math.MinInt32)):
		return math.MinInt32
	}
	return int32(bps.IntPart())
}

// DecimalToMinor converts a major-unit decimal to minor units, rounding half
// away from zero.
func DecimalToMinor(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// NumericToMinor converts a Postgres numeric money column to minor units.
// NULL, NaN and infinities read as 0.
func NumericToMinor(n pgtype.Numeric) int64 {
	d, ok := numericDecimal(n)
	if !ok {
		return 0
	}
	return DecimalToMinor(d)
}

// NumericToBasisPoints converts a Postgres numeric percentage column to basis
// points. ok is false when the column is NULL or not a finite number.
func NumericToBasisPoints(n pgtype.Numeric) (bps int32, ok bool) {
	d, ok := numericDecimal(n)
	if !ok {
		return 0, false
	}
	return DecimalToBasisPoints(d), true
}

func numericDecimal(n pgtype.Numeric) (decimal.Decimal, bool) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return decimal.Zero, false
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), true
}

// ParseMoney parses a major-unit amount such as "1500" or "1,250.75" into
// minor units.
func ParseMoney(s string) (int64, error) {
	d, err := decimal.NewFromString(stripGrouping(s))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return DecimalToMinor(d), nil
}

// ParsePercent parses a percentage such as "70" or "62.5" into basis points.
func ParsePercent(s string) (int32, error) {
	d, err := decimal.NewFromString(stripGrouping(s))
	if err != nil {
		return 0, fmt.Errorf("parse percentage %q: %w", s, err)
	}
	return DecimalToBasisPoints(d), nil
}

func stripGrouping(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ',' && s[i] != ' ' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// DefaultCurrencySymbol is used when no symbol is configured.
const DefaultCurrencySymbol = "Rs"

var grouping = message.NewPrinter(language.English)

// MoneyFormat renders minor-unit amounts as currency strings.
type MoneyFormat struct {
	Symbol string
}

// Format renders minor as e.g. "Rs 1,234.50". Amounts are exact minor units,
// so no rounding happens here and displayed parts always add up to displayed totals.
func (f MoneyFormat) Format(minor int64) string {
	sign := ""
	u := uint64(minor)
	if minor < 0 {
		sign = "-"
		u = uint64(-(minor + 1)) + 1
	}
	major := grouping.Sprintf("%d", u/MinorPerMajor)
	if f.Symbol == "" {
		return fmt.Sprintf("%s%s.%02d", sign, major, u%MinorPerMajor)
	}
	return fmt.Sprintf("%s%s %s.%02d", sign, f.Symbol, major, u%MinorPerMajor)
}

// FormatMoney renders minor with the default currency symbol.
func FormatMoney(minor int64) string {
	return MoneyFormat{Symbol: DefaultCurrencySymbol}.Format(minor)
}

// FormatPercent renders basis points as a percentage, e.g. 6250 → "62.5%".
func FormatPercent(bps int32) string {
	return decimal.New(int64(bps), -2).String() + "%"
}
