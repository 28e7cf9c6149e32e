package service

import (
	"fmt"
	"salesforecast/internal/domain"
)

// AlignFeatures joins the numeric and categorical matrices and lays the
// result out in exactly the order of expected. Expected columns that
// neither matrix has are filled with 0, and columns not in expected are
// dropped, so the output depends only on expected and never on the
// input column order.
func AlignFeatures(numeric, categorical domain.FeatureMatrix, expected []string) (domain.FeatureMatrix, error) {
	if numeric.NumRows() != categorical.NumRows() {
		return domain.FeatureMatrix{}, fmt.Errorf("cannot align %d numeric rows with %d categorical rows", numeric.NumRows(), categorical.NumRows())
	}

	type source struct {
		matrix *domain.FeatureMatrix
		index  int
	}
	// numeric columns come first, so they win on duplicate names
	sources := map[string]source{}
	for _, m := range []*domain.FeatureMatrix{&numeric, &categorical} {
		for i, column := range m.Columns {
			if _, ok := sources[column]; !ok {
				sources[column] = source{matrix: m, index: i}
			}
		}
	}

	out := domain.NewFeatureMatrix(expected, numeric.NumRows())
	for j, column := range expected {
		src, ok := sources[column]
		if !ok {
			continue
		}
		for i := range out.Rows {
			out.Rows[i][j] = src.matrix.Rows[i][src.index]
		}
	}

	return out, nil
}
