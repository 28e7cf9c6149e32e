package calculator

import (
	"fmt"
	"salesforecast/internal/domain"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const Currency = "USD"

// ForecastSummary aggregates predicted revenue over a batch. Amounts are
// rounded to cents.
type ForecastSummary struct {
	Count    int             `json:"count"`
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	Mean     decimal.Decimal `json:"mean"`
	Median   decimal.Decimal `json:"median"`
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
	Stdev    decimal.Decimal `json:"stdev"`
	P90      decimal.Decimal `json:"p90"`
}

// RoundCurrency rounds a predicted amount to cents
func RoundCurrency(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

func Summarize(predictions []float64) (*ForecastSummary, error) {
	if len(predictions) == 0 {
		return nil, fmt.Errorf("cannot summarize 0 predictions")
	}

	total := decimal.Zero
	for _, p := range predictions {
		total = total.Add(decimal.NewFromFloat(p))
	}

	mean, err := stats.Mean(predictions)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := stats.Median(predictions)
	if err != nil {
		return nil, fmt.Errorf("failed to compute median: %w", err)
	}
	minimum, err := stats.Min(predictions)
	if err != nil {
		return nil, fmt.Errorf("failed to compute min: %w", err)
	}
	maximum, err := stats.Max(predictions)
	if err != nil {
		return nil, fmt.Errorf("failed to compute max: %w", err)
	}
	stdev, err := stats.StandardDeviationPopulation(predictions)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stdev: %w", err)
	}
	p90, err := stats.Percentile(predictions, 90)
	if err != nil {
		return nil, fmt.Errorf("failed to compute p90: %w", err)
	}

	return &ForecastSummary{
		Count:    len(predictions),
		Currency: Currency,
		Total:    total.Round(2),
		Mean:     RoundCurrency(mean),
		Median:   RoundCurrency(median),
		Min:      RoundCurrency(minimum),
		Max:      RoundCurrency(maximum),
		Stdev:    RoundCurrency(stdev),
		P90:      RoundCurrency(p90),
	}, nil
}

type TrendPoint struct {
	Date              string          `json:"date"`
	Revenue           decimal.Decimal `json:"revenue"`
	CumulativeRevenue decimal.Decimal `json:"cumulativeRevenue"`
}

// CumulativeTrend groups predictions by order day and accumulates them
// in date order. The day comes from the derived year, month and day
// fields; records without them are skipped.
func CumulativeTrend(records []domain.Record, predictions []float64) ([]TrendPoint, error) {
	if len(records) != len(predictions) {
		return nil, fmt.Errorf("got %d records but %d predictions", len(records), len(predictions))
	}

	byDay := map[time.Time]decimal.Decimal{}
	for i, r := range records {
		day, ok := recordDay(r)
		if !ok {
			continue
		}
		byDay[day] = byDay[day].Add(decimal.NewFromFloat(predictions[i]))
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	out := []TrendPoint{}
	cumulative := decimal.Zero
	for _, d := range days {
		cumulative = cumulative.Add(byDay[d])
		out = append(out, TrendPoint{
			Date:              d.Format(time.DateOnly),
			Revenue:           byDay[d].Round(2),
			CumulativeRevenue: cumulative.Round(2),
		})
	}

	return out, nil
}

func recordDay(r domain.Record) (time.Time, bool) {
	year, ok := r.Numeric(domain.ColumnYear)
	if !ok {
		return time.Time{}, false
	}
	month, ok := r.Numeric(domain.ColumnMonth)
	if !ok {
		return time.Time{}, false
	}
	day, ok := r.Numeric(domain.ColumnDay)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(int(year), time.Month(int(month)), int(day), 0, 0, 0, 0, time.UTC), true
}
