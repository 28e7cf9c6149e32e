package ingest

import (
	"bytes"
	"salesforecast/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	t.Run("empty cells are null and missing columns are absent", func(t *testing.T) {
		in := "unit_price,stock,order_date,color\n" +
			"10.5,50,2024-01-10,red\n" +
			"12,,2024-01-11,\n"

		records, err := ReadRecords(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, records, 2)

		require.Equal(t, "10.5", records[0]["unit_price"])
		require.Equal(t, "red", records[0]["color"])

		v, present := records[1]["stock"]
		require.True(t, present)
		require.Nil(t, v)
		require.Nil(t, records[1]["color"])

		_, present = records[0]["size"]
		require.False(t, present)
	})

	t.Run("byte order mark on the header", func(t *testing.T) {
		records, err := ReadRecords(strings.NewReader("\ufeffunit_price\n3\n"))
		require.NoError(t, err)
		require.Equal(t, "3", records[0]["unit_price"])
	})

	t.Run("header only", func(t *testing.T) {
		records, err := ReadRecords(strings.NewReader("unit_price,stock\n"))
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("ragged rows", func(t *testing.T) {
		_, err := ReadRecords(strings.NewReader("a,b\n1,2,3\n"))
		require.Error(t, err)
	})

	t.Run("rows parse into records", func(t *testing.T) {
		raw, err := ReadRecords(strings.NewReader("quantity,size\n2,42\n"))
		require.NoError(t, err)

		records, err := domain.ParseRecords(raw)
		require.NoError(t, err)

		q, ok := records[0].Numeric(domain.ColumnQuantity)
		require.True(t, ok)
		require.Equal(t, float64(2), q)
		size, _ := records[0].Categorical(domain.ColumnSize)
		require.Equal(t, "42", size)
	})
}

func TestWritePredictions(t *testing.T) {
	color := "red"
	r := domain.Record{Color: &color}
	r.SetNumeric(domain.ColumnStock, 7)

	buf := &bytes.Buffer{}
	err := WritePredictions(buf, domain.Forecast{
		Records:     []domain.Record{r, {}},
		Predictions: []float64{12.5, 3},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "unit_price,quantity,"))
	require.True(t, strings.HasSuffix(lines[0], ",holiday_type,predicted_revenue"))
	require.Contains(t, lines[1], "red")
	require.True(t, strings.HasSuffix(lines[1], "12.5"))

	err = WritePredictions(buf, domain.Forecast{
		Records:     []domain.Record{r},
		Predictions: []float64{},
	})
	require.Error(t, err)
}
