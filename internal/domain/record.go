package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"salesforecast/internal/util"
	"strconv"
	"strings"
	"time"
)

const (
	ColumnUnitPrice            = "unit_price"
	ColumnQuantity             = "quantity"
	ColumnAge                  = "age"
	ColumnDiscount             = "discount"
	ColumnCustomerRating       = "customer_rating"
	ColumnStock                = "stock"
	ColumnCategoryID           = "category_id"
	ColumnCategoryAvgPrice     = "category_avg_price"
	ColumnCategoryTotalRevenue = "category_total_revenue"
	ColumnCategoryPopularity   = "category_popularity"

	ColumnOrderDate = "order_date"
	ColumnYear      = "year"
	ColumnMonth     = "month"
	ColumnDay       = "day"
	ColumnWeekday   = "weekday"

	ColumnColor       = "color"
	ColumnSize        = "size"
	ColumnCategory    = "category"
	ColumnHolidayType = "holiday_type"
)

// BaseNumericColumns are defaulted to 0 when missing
var BaseNumericColumns = []string{
	ColumnUnitPrice,
	ColumnQuantity,
	ColumnAge,
	ColumnDiscount,
	ColumnCustomerRating,
	ColumnStock,
	ColumnCategoryID,
	ColumnCategoryAvgPrice,
	ColumnCategoryTotalRevenue,
	ColumnCategoryPopularity,
}

// DateColumns are derived from order_date, or supplied directly
var DateColumns = []string{
	ColumnYear,
	ColumnMonth,
	ColumnDay,
	ColumnWeekday,
}

var CategoricalColumns = []string{
	ColumnColor,
	ColumnSize,
	ColumnCategory,
	ColumnHolidayType,
}

// NumericColumns returns the base numeric columns followed by the
// derived date columns, which is the order the scaler is fitted with
func NumericColumns() []string {
	out := make([]string, 0, len(BaseNumericColumns)+len(DateColumns))
	out = append(out, BaseNumericColumns...)
	out = append(out, DateColumns...)
	return out
}

// RawRecord is a loosely typed row, as decoded from a JSON object or
// read from a CSV line. Values may be missing or nil.
type RawRecord map[string]any

// Record is one observation. Every field is optional at the boundary;
// the schema normalizer decides which absences are filled and which
// are errors.
type Record struct {
	UnitPrice            *float64 `json:"unit_price"`
	Quantity             *float64 `json:"quantity"`
	Age                  *float64 `json:"age"`
	Discount             *float64 `json:"discount"`
	CustomerRating       *float64 `json:"customer_rating"`
	Stock                *float64 `json:"stock"`
	CategoryID           *float64 `json:"category_id"`
	CategoryAvgPrice     *float64 `json:"category_avg_price"`
	CategoryTotalRevenue *float64 `json:"category_total_revenue"`
	CategoryPopularity   *float64 `json:"category_popularity"`

	OrderDate *time.Time `json:"order_date,omitempty"`
	Year      *float64   `json:"year"`
	Month     *float64   `json:"month"`
	Day       *float64   `json:"day"`
	Weekday   *float64   `json:"weekday"`

	Color       *string `json:"color"`
	Size        *string `json:"size"`
	Category    *string `json:"category"`
	HolidayType *string `json:"holiday_type"`
}

func (r *Record) numericField(column string) (**float64, bool) {
	switch column {
	case ColumnUnitPrice:
		return &r.UnitPrice, true
	case ColumnQuantity:
		return &r.Quantity, true
	case ColumnAge:
		return &r.Age, true
	case ColumnDiscount:
		return &r.Discount, true
	case ColumnCustomerRating:
		return &r.CustomerRating, true
	case ColumnStock:
		return &r.Stock, true
	case ColumnCategoryID:
		return &r.CategoryID, true
	case ColumnCategoryAvgPrice:
		return &r.CategoryAvgPrice, true
	case ColumnCategoryTotalRevenue:
		return &r.CategoryTotalRevenue, true
	case ColumnCategoryPopularity:
		return &r.CategoryPopularity, true
	case ColumnYear:
		return &r.Year, true
	case ColumnMonth:
		return &r.Month, true
	case ColumnDay:
		return &r.Day, true
	case ColumnWeekday:
		return &r.Weekday, true
	}
	return nil, false
}

func (r *Record) categoricalField(column string) (**string, bool) {
	switch column {
	case ColumnColor:
		return &r.Color, true
	case ColumnSize:
		return &r.Size, true
	case ColumnCategory:
		return &r.Category, true
	case ColumnHolidayType:
		return &r.HolidayType, true
	}
	return nil, false
}

// Numeric returns the value of a numeric column. ok is false when the
// record has no such column or the value is absent.
func (r Record) Numeric(column string) (value float64, ok bool) {
	field, known := r.numericField(column)
	if !known || *field == nil {
		return 0, false
	}
	return **field, true
}

// SetNumeric sets a numeric column, returning false for unknown columns
func (r *Record) SetNumeric(column string, value float64) bool {
	field, known := r.numericField(column)
	if !known {
		return false
	}
	*field = &value
	return true
}

// Categorical returns the value of a categorical column. ok is false
// when the record has no such column or the value is absent.
func (r Record) Categorical(column string) (value string, ok bool) {
	field, known := r.categoricalField(column)
	if !known || *field == nil {
		return "", false
	}
	return **field, true
}

// ParseRecord converts a raw row into a Record, rejecting values whose
// type cannot represent the column. row is only used for error messages.
func ParseRecord(row int, raw RawRecord) (Record, error) {
	out := Record{}

	for _, column := range NumericColumns() {
		v, present := raw[column]
		if !present {
			continue
		}
		f, err := parseNumber(v)
		if err != nil {
			return Record{}, InvalidInputError{Row: row, Field: column, Reason: err.Error()}
		}
		if f != nil {
			out.SetNumeric(column, *f)
		}
	}

	if v, present := raw[ColumnOrderDate]; present {
		t, err := parseDate(v)
		if err != nil {
			return Record{}, InvalidInputError{Row: row, Field: ColumnOrderDate, Reason: err.Error()}
		}
		out.OrderDate = t
	}

	for _, column := range CategoricalColumns {
		v, present := raw[column]
		if !present {
			continue
		}
		s, err := parseString(v)
		if err != nil {
			return Record{}, InvalidInputError{Row: row, Field: column, Reason: err.Error()}
		}
		if s != nil {
			field, _ := out.categoricalField(column)
			*field = s
		}
	}

	return out, nil
}

// ParseRecords parses every row, failing on the first bad one
func ParseRecords(raw []RawRecord) ([]Record, error) {
	out := make([]Record, 0, len(raw))
	for i, r := range raw {
		record, err := ParseRecord(i, r)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func parseNumber(v any) (*float64, error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil, nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", x.String())
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", x)
		}
		f = parsed
	default:
		return nil, fmt.Errorf("expected a number, got %T", v)
	}
	// NaN is how a null travels through a numeric column
	if math.IsNaN(f) {
		return nil, nil
	}
	return &f, nil
}

func parseString(v any) (*string, error) {
	var s string
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		s = strconv.Itoa(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	case json.Number:
		s = x.String()
	case bool:
		s = strconv.FormatBool(x)
	default:
		return nil, fmt.Errorf("expected a string, got %T", v)
	}
	return &s, nil
}

func parseDate(v any) (*time.Time, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &x, nil
	case string:
		if strings.TrimSpace(x) == "" {
			return nil, nil
		}
		t, err := util.ParseDate(x)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	return nil, fmt.Errorf("expected a date string, got %T", v)
}
