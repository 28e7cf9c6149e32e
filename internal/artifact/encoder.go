package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"salesforecast/internal/domain"
	"strings"
)

// Encoder turns categorical columns into one-of-K indicator columns
type Encoder interface {
	// InputColumns are the categorical columns, in fitted order
	InputColumns() []string
	// FeatureNames are the indicator columns Transform produces
	FeatureNames() []string
	// Transform expects one value per input column for every row
	Transform(rows [][]string) ([][]float64, error)
}

const (
	HandleUnknownIgnore = "ignore"
	HandleUnknownError  = "error"
)

type oneHotEncoderFile struct {
	Columns       []string   `json:"columns"`
	Categories    [][]string `json:"categories"`
	HandleUnknown string     `json:"handle_unknown"`
}

type OneHotEncoder struct {
	columns       []string
	handleUnknown string

	// offsets[i] is where column i's indicator block starts
	offsets      []int
	index        []map[string]int
	featureNames []string
}

func NewOneHotEncoder(columns []string, categories [][]string, handleUnknown string) (*OneHotEncoder, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("encoder has no columns")
	}
	if len(columns) != len(categories) {
		return nil, fmt.Errorf("encoder has %d columns but %d category lists", len(columns), len(categories))
	}
	if handleUnknown == "" {
		handleUnknown = HandleUnknownIgnore
	}
	if handleUnknown != HandleUnknownIgnore && handleUnknown != HandleUnknownError {
		return nil, fmt.Errorf("unsupported handle_unknown %q", handleUnknown)
	}

	e := &OneHotEncoder{
		columns:       append([]string{}, columns...),
		handleUnknown: handleUnknown,
		offsets:       make([]int, len(columns)),
		index:         make([]map[string]int, len(columns)),
	}
	offset := 0
	for i, cats := range categories {
		e.offsets[i] = offset
		e.index[i] = make(map[string]int, len(cats))
		for j, c := range cats {
			if _, ok := e.index[i][c]; ok {
				return nil, fmt.Errorf("duplicate category %q in column %s", c, columns[i])
			}
			e.index[i][c] = j
			e.featureNames = append(e.featureNames, columns[i]+"_"+c)
		}
		offset += len(cats)
	}

	return e, nil
}

// LoadOneHotEncoder reads an encoder exported as json:
// {"columns": [...], "categories": [[...], ...], "handle_unknown": "ignore"}
func LoadOneHotEncoder(path string) (*OneHotEncoder, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encoder file: %w", err)
	}

	in := oneHotEncoderFile{}
	err = json.Unmarshal(f, &in)
	if err != nil {
		return nil, fmt.Errorf("failed to parse encoder file %s: %w", path, err)
	}

	return NewOneHotEncoder(in.Columns, in.Categories, strings.ToLower(in.HandleUnknown))
}

func (e *OneHotEncoder) InputColumns() []string {
	return append([]string{}, e.columns...)
}

func (e *OneHotEncoder) FeatureNames() []string {
	return append([]string{}, e.featureNames...)
}

// Transform one-hot encodes rows. Unseen values produce an all-zero
// block for that column when handle_unknown is "ignore".
func (e *OneHotEncoder) Transform(rows [][]string) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for r, row := range rows {
		if len(row) != len(e.columns) {
			return nil, fmt.Errorf("row %d has %d categorical values, encoder expects %d", r, len(row), len(e.columns))
		}
		encoded := make([]float64, len(e.featureNames))
		for i, v := range row {
			j, ok := e.index[i][v]
			if !ok {
				if e.handleUnknown == HandleUnknownError {
					return nil, domain.InvalidInputError{
						Row:    r,
						Field:  e.columns[i],
						Reason: fmt.Sprintf("unknown category %q", v),
					}
				}
				continue
			}
			encoded[e.offsets[i]+j] = 1
		}
		out[r] = encoded
	}
	return out, nil
}
