package service

import (
	"salesforecast/internal/domain"
	"salesforecast/internal/util"
)

// NormalizeRecords derives the calendar features from order_date and
// fills missing base numerics with 0. The input is not modified, and
// normalizing an already normalized record returns it unchanged.
func NormalizeRecords(records []domain.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		out[i] = NormalizeRecord(r)
	}
	return out
}

func NormalizeRecord(r domain.Record) domain.Record {
	if r.OrderDate != nil {
		d := *r.OrderDate
		r.SetNumeric(domain.ColumnYear, float64(d.Year()))
		r.SetNumeric(domain.ColumnMonth, float64(d.Month()))
		r.SetNumeric(domain.ColumnDay, float64(d.Day()))
		r.SetNumeric(domain.ColumnWeekday, float64(util.IsoWeekday(d)))
		r.OrderDate = nil
	}

	// imputation is exactly 0, never a fitted mean or median
	for _, column := range domain.BaseNumericColumns {
		if _, ok := r.Numeric(column); !ok {
			r.SetNumeric(column, 0)
		}
	}

	return r
}
