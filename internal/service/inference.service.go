package service

import (
	"fmt"
	"salesforecast/internal/artifact"
	"salesforecast/internal/domain"
)

type InferenceService interface {
	// Predict calls the model once for the whole aligned matrix and
	// returns one prediction per row, in row order
	Predict(aligned domain.FeatureMatrix) ([]float64, error)
}

type inferenceServiceHandler struct {
	Model artifact.Model
}

func NewInferenceService(model artifact.Model) InferenceService {
	return inferenceServiceHandler{
		Model: model,
	}
}

func (h inferenceServiceHandler) Predict(aligned domain.FeatureMatrix) ([]float64, error) {
	// a shape mismatch here is a bug in alignment, not bad user input
	expected := h.Model.FeatureNames()
	if len(aligned.Columns) != len(expected) {
		return nil, fmt.Errorf("aligned matrix has %d columns, model expects %d", len(aligned.Columns), len(expected))
	}
	if err := aligned.Validate(); err != nil {
		return nil, fmt.Errorf("aligned matrix is not rectangular: %w", err)
	}

	predictions, err := h.Model.Predict(aligned.Rows)
	if err != nil {
		return nil, domain.ModelInvocationError{Err: err}
	}
	if len(predictions) != aligned.NumRows() {
		return nil, domain.ModelInvocationError{
			Err: fmt.Errorf("model returned %d predictions for %d rows", len(predictions), aligned.NumRows()),
		}
	}

	return predictions, nil
}
