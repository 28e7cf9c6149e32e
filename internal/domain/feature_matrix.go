package domain

import "fmt"

// FeatureMatrix is a rows x named columns table of model inputs. Rows
// are in input order and every row has len(Columns) values.
type FeatureMatrix struct {
	Columns []string
	Rows    [][]float64
}

func NewFeatureMatrix(columns []string, numRows int) FeatureMatrix {
	rows := make([][]float64, numRows)
	for i := range rows {
		rows[i] = make([]float64, len(columns))
	}
	return FeatureMatrix{
		Columns: append([]string{}, columns...),
		Rows:    rows,
	}
}

func (m FeatureMatrix) NumRows() int {
	return len(m.Rows)
}

// ColumnIndex maps each column name to its first position
func (m FeatureMatrix) ColumnIndex() map[string]int {
	out := make(map[string]int, len(m.Columns))
	for i, c := range m.Columns {
		if _, ok := out[c]; !ok {
			out[c] = i
		}
	}
	return out
}

// Column returns a copy of the named column's values
func (m FeatureMatrix) Column(name string) ([]float64, error) {
	idx, ok := m.ColumnIndex()[name]
	if !ok {
		return nil, fmt.Errorf("column %s not in matrix", name)
	}
	out := make([]float64, len(m.Rows))
	for i, row := range m.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Validate checks that the matrix is rectangular
func (m FeatureMatrix) Validate() error {
	for i, row := range m.Rows {
		if len(row) != len(m.Columns) {
			return fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(m.Columns))
		}
	}
	return nil
}
