package artifact

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitryikh/leaves"
)

// Model is a fitted regression model over a fixed, ordered feature list
type Model interface {
	FeatureNames() []string
	// Predict returns one prediction per row. Every row must have
	// len(FeatureNames()) values, in FeatureNames() order.
	Predict(rows [][]float64) ([]float64, error)
}

// LightGBMModel evaluates a LightGBM model saved in its text format
type LightGBMModel struct {
	ensemble     *leaves.Ensemble
	featureNames []string
}

func LoadLightGBMModel(path string) (*LightGBMModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()

	featureNames, err := readFeatureNames(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read feature names from %s: %w", path, err)
	}

	ensemble, err := leaves.LGEnsembleFromFile(path, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load lightgbm model %s: %w", path, err)
	}

	if ensemble.NFeatures() != len(featureNames) {
		return nil, fmt.Errorf("model has %d features but %d feature names", ensemble.NFeatures(), len(featureNames))
	}
	if ensemble.NOutputGroups() != 1 {
		return nil, fmt.Errorf("expected a regression model with 1 output group, got %d", ensemble.NOutputGroups())
	}

	return &LightGBMModel{
		ensemble:     ensemble,
		featureNames: featureNames,
	}, nil
}

// readFeatureNames scans the model header for the feature_names line
func readFeatureNames(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "Tree=") {
			break
		}
		if names, ok := strings.CutPrefix(line, "feature_names="); ok {
			out := strings.Fields(names)
			if len(out) == 0 {
				return nil, fmt.Errorf("empty feature_names")
			}
			return out, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("no feature_names line in model header")
}

func (m *LightGBMModel) FeatureNames() []string {
	return append([]string{}, m.featureNames...)
}

// Predict evaluates every tree for every row in one dense call
func (m *LightGBMModel) Predict(rows [][]float64) ([]float64, error) {
	if len(rows) == 0 {
		return []float64{}, nil
	}
	ncols := len(m.featureNames)
	vals := make([]float64, 0, len(rows)*ncols)
	for i, row := range rows {
		if len(row) != ncols {
			return nil, fmt.Errorf("row %d has %d values, model expects %d", i, len(row), ncols)
		}
		vals = append(vals, row...)
	}

	predictions := make([]float64, len(rows))
	err := m.ensemble.PredictDense(vals, len(rows), ncols, predictions, 0, 1)
	if err != nil {
		return nil, err
	}
	return predictions, nil
}
