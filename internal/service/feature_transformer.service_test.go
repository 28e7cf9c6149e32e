package service

import (
	"errors"
	"fmt"
	mock_artifact "salesforecast/internal/artifact/mocks"
	"salesforecast/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string {
	return &s
}

func completeRecord() domain.Record {
	r := domain.Record{
		Color:       strPtr("red"),
		Size:        strPtr("S"),
		Category:    strPtr("shoes"),
		HolidayType: strPtr("none"),
	}
	for i, column := range domain.NumericColumns() {
		r.SetNumeric(column, float64(i+1))
	}
	return r
}

func Test_featureTransformerHandler_Transform(t *testing.T) {
	t.Run("two disjoint matrices with input row order", func(t *testing.T) {
		h := NewFeatureTransformer(newTestEncoder(t), newIdentityScaler(t))

		first := completeRecord()
		second := completeRecord()
		second.Color = strPtr("blue")
		second.SetNumeric(domain.ColumnUnitPrice, 99)

		categorical, numeric, err := h.Transform([]domain.Record{first, second})
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff(
			domain.FeatureMatrix{
				Columns: []string{
					"color_blue", "color_red",
					"size_M", "size_S",
					"category_electronics", "category_shoes",
					"holiday_type_christmas", "holiday_type_none",
				},
				Rows: [][]float64{
					{0, 1, 0, 1, 0, 1, 0, 1},
					{1, 0, 0, 1, 0, 1, 0, 1},
				},
			},
			categorical,
		))

		require.Equal(t, domain.NumericColumns(), numeric.Columns)
		require.Equal(t, 2, numeric.NumRows())
		require.Equal(t, float64(1), numeric.Rows[0][0])
		require.Equal(t, float64(99), numeric.Rows[1][0])
		require.Equal(t, float64(14), numeric.Rows[1][13])
	})

	t.Run("unknown category maps to zeros", func(t *testing.T) {
		h := NewFeatureTransformer(newTestEncoder(t), newIdentityScaler(t))

		r := completeRecord()
		r.Color = strPtr("ultraviolet")

		categorical, _, err := h.Transform([]domain.Record{r})
		require.NoError(t, err)
		require.Equal(t, []float64{0, 0, 0, 1, 0, 1, 0, 1}, categorical.Rows[0])
	})

	t.Run("missing categorical column", func(t *testing.T) {
		h := NewFeatureTransformer(newTestEncoder(t), newIdentityScaler(t))

		r := completeRecord()
		r.Color = nil

		_, _, err := h.Transform([]domain.Record{completeRecord(), r})
		require.Equal(t, domain.MissingFeatureError{Row: 1, Column: "color"}, err)
	})

	t.Run("missing derived date column", func(t *testing.T) {
		h := NewFeatureTransformer(newTestEncoder(t), newIdentityScaler(t))

		r := completeRecord()
		r.Month = nil

		_, _, err := h.Transform([]domain.Record{r})
		require.Equal(t, domain.MissingFeatureError{Row: 0, Column: "month"}, err)
	})

	t.Run("encoder failure aborts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		encoder := mock_artifact.NewMockEncoder(ctrl)
		scaler := mock_artifact.NewMockScaler(ctrl)

		encoder.EXPECT().InputColumns().Return([]string{"color"})
		encoder.EXPECT().Transform([][]string{{"red"}}).Return(nil, fmt.Errorf("boom"))

		h := NewFeatureTransformer(encoder, scaler)
		_, _, err := h.Transform([]domain.Record{completeRecord()})
		require.ErrorContains(t, err, "boom")
	})

	t.Run("scaler dropping a row is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		scaler := mock_artifact.NewMockScaler(ctrl)

		scaler.EXPECT().Columns().Return([]string{"stock"})
		scaler.EXPECT().Transform(gomock.Any()).Return([][]float64{{1}}, nil)

		h := NewFeatureTransformer(newTestEncoder(t), scaler)
		_, _, err := h.Transform([]domain.Record{completeRecord(), completeRecord()})
		require.Error(t, err)

		missing := domain.MissingFeatureError{}
		require.False(t, errors.As(err, &missing))
	})
}
