package api

import (
	"bytes"
	"fmt"
	"net/http"
	"salesforecast/internal/calculator"
	"salesforecast/internal/domain"
	"salesforecast/internal/ingest"
	"time"

	"github.com/gin-gonic/gin"
)

type uploadCsvResponse struct {
	Status      string                      `json:"status"`
	Rows        int                         `json:"rows"`
	Predictions []float64                   `json:"predictions"`
	Summary     *calculator.ForecastSummary `json:"summary"`
	Trend       []calculator.TrendPoint     `json:"trend"`
}

// uploadCsv predicts every row of the uploaded file. With ?format=csv
// the rows come back as a csv download with a predicted_revenue column.
func (m ApiHandler) uploadCsv(c *gin.Context) {
	start := time.Now()
	fileHeader, err := c.FormFile("file")
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read uploaded file: %w", err), c, bindErrorCode(err))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to open uploaded file: %w", err), c, http.StatusBadRequest)
		return
	}
	defer f.Close()

	raw, err := ingest.ReadRecords(f)
	if err != nil {
		returnErrorJson(domain.InvalidInputError{Reason: err.Error()}, c)
		return
	}

	forecast, err := m.ForecastService.Predict(c.Request.Context(), raw)
	m.observe("/upload-csv", len(raw), start, err)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	if c.Query("format") == "csv" {
		buf := &bytes.Buffer{}
		err = ingest.WritePredictions(buf, *forecast)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="predictions.csv"`)
		c.Data(200, "text/csv", buf.Bytes())
		return
	}

	summary, err := calculator.Summarize(forecast.Predictions)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	trend, err := calculator.CumulativeTrend(forecast.Records, forecast.Predictions)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, uploadCsvResponse{
		Status:      "success",
		Rows:        len(forecast.Predictions),
		Predictions: forecast.Predictions,
		Summary:     summary,
		Trend:       trend,
	})
}
