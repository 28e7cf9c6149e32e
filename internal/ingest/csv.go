package ingest

import (
	"fmt"
	"io"
	"salesforecast/internal/domain"
	"strings"

	"github.com/gocarina/gocsv"
)

// ReadRecords reads a delimited file with a header row into raw records.
// Empty cells become nil, the same as a null in a json request, and
// columns missing from the header are simply absent from every record.
func ReadRecords(r io.Reader) ([]domain.RawRecord, error) {
	rows, err := gocsv.CSVToMaps(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	out := make([]domain.RawRecord, 0, len(rows))
	for _, row := range rows {
		record := domain.RawRecord{}
		for k, v := range row {
			key := strings.TrimSpace(strings.TrimPrefix(k, "\ufeff"))
			if strings.TrimSpace(v) == "" {
				record[key] = nil
				continue
			}
			record[key] = v
		}
		out = append(out, record)
	}
	return out, nil
}

// PredictionRow is one normalized record with its prediction, as
// written to the predictions csv
type PredictionRow struct {
	UnitPrice            float64 `csv:"unit_price"`
	Quantity             float64 `csv:"quantity"`
	Age                  float64 `csv:"age"`
	Discount             float64 `csv:"discount"`
	CustomerRating       float64 `csv:"customer_rating"`
	Stock                float64 `csv:"stock"`
	CategoryID           float64 `csv:"category_id"`
	CategoryAvgPrice     float64 `csv:"category_avg_price"`
	CategoryTotalRevenue float64 `csv:"category_total_revenue"`
	CategoryPopularity   float64 `csv:"category_popularity"`
	Year                 float64 `csv:"year"`
	Month                float64 `csv:"month"`
	Day                  float64 `csv:"day"`
	Weekday              float64 `csv:"weekday"`
	Color                string  `csv:"color"`
	Size                 string  `csv:"size"`
	Category             string  `csv:"category"`
	HolidayType          string  `csv:"holiday_type"`
	PredictedRevenue     float64 `csv:"predicted_revenue"`
}

func NewPredictionRows(forecast domain.Forecast) ([]PredictionRow, error) {
	if len(forecast.Records) != len(forecast.Predictions) {
		return nil, fmt.Errorf("got %d records but %d predictions", len(forecast.Records), len(forecast.Predictions))
	}

	out := make([]PredictionRow, len(forecast.Records))
	for i, r := range forecast.Records {
		num := func(column string) float64 {
			v, _ := r.Numeric(column)
			return v
		}
		cat := func(column string) string {
			v, _ := r.Categorical(column)
			return v
		}
		out[i] = PredictionRow{
			UnitPrice:            num(domain.ColumnUnitPrice),
			Quantity:             num(domain.ColumnQuantity),
			Age:                  num(domain.ColumnAge),
			Discount:             num(domain.ColumnDiscount),
			CustomerRating:       num(domain.ColumnCustomerRating),
			Stock:                num(domain.ColumnStock),
			CategoryID:           num(domain.ColumnCategoryID),
			CategoryAvgPrice:     num(domain.ColumnCategoryAvgPrice),
			CategoryTotalRevenue: num(domain.ColumnCategoryTotalRevenue),
			CategoryPopularity:   num(domain.ColumnCategoryPopularity),
			Year:                 num(domain.ColumnYear),
			Month:                num(domain.ColumnMonth),
			Day:                  num(domain.ColumnDay),
			Weekday:              num(domain.ColumnWeekday),
			Color:                cat(domain.ColumnColor),
			Size:                 cat(domain.ColumnSize),
			Category:             cat(domain.ColumnCategory),
			HolidayType:          cat(domain.ColumnHolidayType),
			PredictedRevenue:     forecast.Predictions[i],
		}
	}
	return out, nil
}

// WritePredictions writes the forecast as csv, one row per input row
func WritePredictions(w io.Writer, forecast domain.Forecast) error {
	rows, err := NewPredictionRows(forecast)
	if err != nil {
		return err
	}
	err = gocsv.Marshal(rows, w)
	if err != nil {
		return fmt.Errorf("failed to write predictions csv: %w", err)
	}
	return nil
}
