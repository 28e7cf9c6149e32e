package service

import (
	"context"
	"fmt"
	"salesforecast/internal/artifact"
	"salesforecast/internal/domain"
	"salesforecast/internal/logger"
)

// ForecastService runs the whole pipeline: parse, normalize, transform,
// align and infer. Every entry point (single record, batch, csv upload,
// cli) goes through Predict, so they all behave the same.
type ForecastService interface {
	Predict(ctx context.Context, records []domain.RawRecord) (*domain.Forecast, error)
	PredictRecords(ctx context.Context, records []domain.Record) (*domain.Forecast, error)
	Schema() FeatureSchema
}

// FeatureSchema describes what the loaded artifacts expect
type FeatureSchema struct {
	ModelFeatures      []string `json:"modelFeatures"`
	CategoricalColumns []string `json:"categoricalColumns"`
	NumericColumns     []string `json:"numericColumns"`
	ZeroFilledFeatures []string `json:"zeroFilledFeatures"`
	DroppedFeatures    []string `json:"droppedFeatures"`
}

type forecastServiceHandler struct {
	Store              *artifact.Store
	FeatureTransformer FeatureTransformer
	InferenceService   InferenceService
}

func NewForecastService(
	store *artifact.Store,
	featureTransformer FeatureTransformer,
	inferenceService InferenceService,
) ForecastService {
	return forecastServiceHandler{
		Store:              store,
		FeatureTransformer: featureTransformer,
		InferenceService:   inferenceService,
	}
}

// NewForecastServiceFromStore wires the default transformer and
// inference service over the artifacts in store
func NewForecastServiceFromStore(store *artifact.Store) ForecastService {
	return NewForecastService(
		store,
		NewFeatureTransformer(store.Encoder, store.Scaler),
		NewInferenceService(store.Model),
	)
}

func (h forecastServiceHandler) Predict(ctx context.Context, raw []domain.RawRecord) (*domain.Forecast, error) {
	profile, endProfile := domain.GetProfile(ctx)
	defer endProfile()

	_, endSpan := profile.StartNewSpan("parse records")
	records, err := domain.ParseRecords(raw)
	endSpan()
	if err != nil {
		return nil, err
	}

	return h.PredictRecords(ctx, records)
}

func (h forecastServiceHandler) PredictRecords(ctx context.Context, records []domain.Record) (*domain.Forecast, error) {
	log := logger.FromContext(ctx)
	profile, endProfile := domain.GetProfile(ctx)
	defer endProfile()

	if len(records) == 0 {
		return nil, domain.InvalidInputError{Row: 0, Reason: "no records to predict"}
	}

	_, endSpan := profile.StartNewSpan("normalize")
	normalized := NormalizeRecords(records)
	endSpan()

	_, endSpan = profile.StartNewSpan("transform")
	categorical, numeric, err := h.FeatureTransformer.Transform(normalized)
	endSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to transform features: %w", err)
	}

	expected := h.Store.Model.FeatureNames()
	_, endSpan = profile.StartNewSpan("align")
	aligned, err := AlignFeatures(numeric, categorical, expected)
	endSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to align features: %w", err)
	}

	_, endSpan = profile.StartNewSpan("inference")
	predictions, err := h.InferenceService.Predict(aligned)
	endSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to run inference: %w", err)
	}

	log.Debugw("forecast complete", "rows", len(predictions), "features", len(expected))

	return &domain.Forecast{
		Predictions:  predictions,
		Records:      normalized,
		FeaturesUsed: aligned.Columns,
	}, nil
}

func (h forecastServiceHandler) Schema() FeatureSchema {
	return FeatureSchema{
		ModelFeatures:      h.Store.Model.FeatureNames(),
		CategoricalColumns: h.Store.Encoder.InputColumns(),
		NumericColumns:     h.Store.Scaler.Columns(),
		ZeroFilledFeatures: h.Store.MissingFeatures(),
		DroppedFeatures:    h.Store.UnusedFeatures(),
	}
}
