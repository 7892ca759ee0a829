package domain

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ForecastYears is the number of projected years.
const ForecastYears = 3

// Forecast holds three years of revenue and expense projections as the
// strings the user typed. Profit is derived on read and never stored.
type Forecast struct {
	Year1Revenue  string `json:"year1Revenue"`
	Year1Expenses string `json:"year1Expenses"`
	Year2Revenue  string `json:"year2Revenue"`
	Year2Expenses string `json:"year2Expenses"`
	Year3Revenue  string `json:"year3Revenue"`
	Year3Expenses string `json:"year3Expenses"`
	Assumptions   string `json:"assumptions"`
}

// ForecastYear is one year's projection.
type ForecastYear struct {
	Revenue  string
	Expenses string
}

// Profit is revenue minus expenses. Unparseable or empty amounts count as 0.
func (y ForecastYear) Profit() float64 {
	return ParseAmount(y.Revenue) - ParseAmount(y.Expenses)
}

// Year returns the projection for year n (1-based).
func (f Forecast) Year(n int) ForecastYear {
	switch n {
	case 1:
		return ForecastYear{Revenue: f.Year1Revenue, Expenses: f.Year1Expenses}
	case 2:
		return ForecastYear{Revenue: f.Year2Revenue, Expenses: f.Year2Expenses}
	case 3:
		return ForecastYear{Revenue: f.Year3Revenue, Expenses: f.Year3Expenses}
	}
	return ForecastYear{}
}

// SetYear replaces the projection for year n (1-based).
func (f *Forecast) SetYear(n int, y ForecastYear) error {
	for _, v := range []string{y.Revenue, y.Expenses} {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return &ValidationError{Field: "amount", Message: "must be a number, got " + strconv.Quote(v)}
		}
	}
	switch n {
	case 1:
		f.Year1Revenue, f.Year1Expenses = y.Revenue, y.Expenses
	case 2:
		f.Year2Revenue, f.Year2Expenses = y.Revenue, y.Expenses
	case 3:
		f.Year3Revenue, f.Year3Expenses = y.Revenue, y.Expenses
	default:
		return &ValidationError{Field: "year", Message: "must be 1, 2 or 3"}
	}
	return nil
}

// ForecastTotals sums the three years.
type ForecastTotals struct {
	Revenue  float64
	Expenses float64
	Profit   float64
}

func (f Forecast) Totals() ForecastTotals {
	var t ForecastTotals
	for n := 1; n <= ForecastYears; n++ {
		y := f.Year(n)
		t.Revenue += ParseAmount(y.Revenue)
		t.Expenses += ParseAmount(y.Expenses)
		t.Profit += y.Profit()
	}
	return t
}

// ParseAmount reads a typed amount. Unparseable or empty input is 0.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a value with locale digit grouping, e.g. 60000 ->
// "60,000". Fractions are kept to at most two places.
func FormatAmount(v float64) string {
	if v == math.Trunc(v) {
		return amountPrinter.Sprintf("%d", int64(v))
	}
	return amountPrinter.Sprintf("%.2f", v)
}
