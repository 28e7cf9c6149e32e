package artifact

import (
	"fmt"
)

// Store holds the fitted artifacts. It is built once at startup and
// only read afterwards, so it is shared across requests without locks.
type Store struct {
	Encoder Encoder
	Scaler  Scaler
	Model   Model
}

type Paths struct {
	EncoderPath string `json:"encoderPath"`
	ScalerPath  string `json:"scalerPath"`
	ModelPath   string `json:"modelPath"`
}

func NewStore(encoder Encoder, scaler Scaler, model Model) (*Store, error) {
	if encoder == nil || scaler == nil || model == nil {
		return nil, fmt.Errorf("encoder, scaler and model are all required")
	}
	if len(model.FeatureNames()) == 0 {
		return nil, fmt.Errorf("model declares no features")
	}
	return &Store{
		Encoder: encoder,
		Scaler:  scaler,
		Model:   model,
	}, nil
}

func LoadStore(paths Paths) (*Store, error) {
	encoder, err := LoadOneHotEncoder(paths.EncoderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoder: %w", err)
	}
	scaler, err := LoadScaler(paths.ScalerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scaler: %w", err)
	}
	model, err := LoadLightGBMModel(paths.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	return NewStore(encoder, scaler, model)
}

// UnusedFeatures lists transformed columns the model does not consume.
// They are dropped during alignment; this is only for diagnostics.
func (s *Store) UnusedFeatures() []string {
	expected := map[string]bool{}
	for _, f := range s.Model.FeatureNames() {
		expected[f] = true
	}
	out := []string{}
	for _, f := range append(s.Scaler.Columns(), s.Encoder.FeatureNames()...) {
		if !expected[f] {
			out = append(out, f)
		}
	}
	return out
}

// MissingFeatures lists model features no transformer produces. They
// are zero-filled during alignment.
func (s *Store) MissingFeatures() []string {
	produced := map[string]bool{}
	for _, f := range append(s.Scaler.Columns(), s.Encoder.FeatureNames()...) {
		produced[f] = true
	}
	out := []string{}
	for _, f := range s.Model.FeatureNames() {
		if !produced[f] {
			out = append(out, f)
		}
	}
	return out
}
