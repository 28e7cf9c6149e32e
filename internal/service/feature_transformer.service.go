package service

import (
	"fmt"
	"salesforecast/internal/artifact"
	"salesforecast/internal/domain"
)

// FeatureTransformer applies the fitted encoder and scaler to normalized
// records
type FeatureTransformer interface {
	// Transform returns the encoded categorical matrix and the scaled
	// numeric matrix, both with one row per record in record order
	Transform(records []domain.Record) (categorical domain.FeatureMatrix, numeric domain.FeatureMatrix, err error)
}

type featureTransformerHandler struct {
	Encoder artifact.Encoder
	Scaler  artifact.Scaler
}

func NewFeatureTransformer(encoder artifact.Encoder, scaler artifact.Scaler) FeatureTransformer {
	return featureTransformerHandler{
		Encoder: encoder,
		Scaler:  scaler,
	}
}

func (h featureTransformerHandler) Transform(records []domain.Record) (domain.FeatureMatrix, domain.FeatureMatrix, error) {
	categorical, err := h.encode(records)
	if err != nil {
		return domain.FeatureMatrix{}, domain.FeatureMatrix{}, err
	}
	numeric, err := h.scale(records)
	if err != nil {
		return domain.FeatureMatrix{}, domain.FeatureMatrix{}, err
	}
	return categorical, numeric, nil
}

func (h featureTransformerHandler) encode(records []domain.Record) (domain.FeatureMatrix, error) {
	columns := h.Encoder.InputColumns()
	input := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(columns))
		for j, column := range columns {
			v, ok := r.Categorical(column)
			if !ok {
				return domain.FeatureMatrix{}, domain.MissingFeatureError{Row: i, Column: column}
			}
			row[j] = v
		}
		input[i] = row
	}

	encoded, err := h.Encoder.Transform(input)
	if err != nil {
		return domain.FeatureMatrix{}, fmt.Errorf("failed to encode categorical features: %w", err)
	}

	out := domain.FeatureMatrix{
		Columns: h.Encoder.FeatureNames(),
		Rows:    encoded,
	}
	if err := checkShape(out, len(records)); err != nil {
		return domain.FeatureMatrix{}, fmt.Errorf("encoder output: %w", err)
	}
	return out, nil
}

func (h featureTransformerHandler) scale(records []domain.Record) (domain.FeatureMatrix, error) {
	columns := h.Scaler.Columns()
	input := make([][]float64, len(records))
	for i, r := range records {
		row := make([]float64, len(columns))
		for j, column := range columns {
			v, ok := r.Numeric(column)
			if !ok {
				return domain.FeatureMatrix{}, domain.MissingFeatureError{Row: i, Column: column}
			}
			row[j] = v
		}
		input[i] = row
	}

	scaled, err := h.Scaler.Transform(input)
	if err != nil {
		return domain.FeatureMatrix{}, fmt.Errorf("failed to scale numeric features: %w", err)
	}

	out := domain.FeatureMatrix{
		Columns: columns,
		Rows:    scaled,
	}
	if err := checkShape(out, len(records)); err != nil {
		return domain.FeatureMatrix{}, fmt.Errorf("scaler output: %w", err)
	}
	return out, nil
}

func checkShape(m domain.FeatureMatrix, expectedRows int) error {
	if m.NumRows() != expectedRows {
		return fmt.Errorf("got %d rows, expected %d", m.NumRows(), expectedRows)
	}
	return m.Validate()
}
