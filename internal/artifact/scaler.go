package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Scaler applies a fitted per-column transform to numeric columns. The
// output has the same columns as the input.
type Scaler interface {
	// Columns are the numeric columns, in fitted order
	Columns() []string
	Transform(rows [][]float64) ([][]float64, error)
}

const (
	ScalerKindStandard = "standard"
	ScalerKindMinMax   = "minmax"
)

type scalerFile struct {
	Kind    string    `json:"kind"`
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Min     []float64 `json:"min"`
	Scale   []float64 `json:"scale"`
}

// FittedScaler is either a standard scaler, (x - mean) / scale, or a
// min-max scaler, x * scale + min, using the fitted attributes as
// exported from training.
type FittedScaler struct {
	kind    string
	columns []string
	offset  []float64
	scale   []float64
}

func NewStandardScaler(columns []string, mean, scale []float64) (*FittedScaler, error) {
	if mean == nil {
		mean = make([]float64, len(columns))
	}
	if scale == nil {
		scale = make([]float64, len(columns))
	}
	if err := checkScalerShape(columns, mean, scale); err != nil {
		return nil, err
	}

	fixedScale := make([]float64, len(scale))
	for i, s := range scale {
		// zero variance columns are left unscaled
		if s == 0 {
			s = 1
		}
		fixedScale[i] = s
	}

	return &FittedScaler{
		kind:    ScalerKindStandard,
		columns: append([]string{}, columns...),
		offset:  append([]float64{}, mean...),
		scale:   fixedScale,
	}, nil
}

func NewMinMaxScaler(columns []string, min, scale []float64) (*FittedScaler, error) {
	if err := checkScalerShape(columns, min, scale); err != nil {
		return nil, err
	}
	return &FittedScaler{
		kind:    ScalerKindMinMax,
		columns: append([]string{}, columns...),
		offset:  append([]float64{}, min...),
		scale:   append([]float64{}, scale...),
	}, nil
}

func checkScalerShape(columns []string, offset, scale []float64) error {
	if len(columns) == 0 {
		return fmt.Errorf("scaler has no columns")
	}
	if len(offset) != len(columns) || len(scale) != len(columns) {
		return fmt.Errorf("scaler has %d columns but %d offsets and %d scales", len(columns), len(offset), len(scale))
	}
	return nil
}

// LoadScaler reads a scaler exported as json. kind is "standard" (uses
// mean and scale) or "minmax" (uses min and scale).
func LoadScaler(path string) (*FittedScaler, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scaler file: %w", err)
	}

	in := scalerFile{}
	err = json.Unmarshal(f, &in)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scaler file %s: %w", path, err)
	}

	switch strings.ToLower(in.Kind) {
	case ScalerKindStandard, "":
		return NewStandardScaler(in.Columns, in.Mean, in.Scale)
	case ScalerKindMinMax:
		return NewMinMaxScaler(in.Columns, in.Min, in.Scale)
	}
	return nil, fmt.Errorf("unsupported scaler kind %q", in.Kind)
}

func (s *FittedScaler) Kind() string {
	return s.kind
}

func (s *FittedScaler) Columns() []string {
	return append([]string{}, s.columns...)
}

func (s *FittedScaler) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for r, row := range rows {
		if len(row) != len(s.columns) {
			return nil, fmt.Errorf("row %d has %d numeric values, scaler expects %d", r, len(row), len(s.columns))
		}
		scaled := make([]float64, len(row))
		for i, x := range row {
			if s.kind == ScalerKindMinMax {
				scaled[i] = x*s.scale[i] + s.offset[i]
			} else {
				scaled[i] = (x - s.offset[i]) / s.scale[i]
			}
		}
		out[r] = scaled
	}
	return out, nil
}
