package api

import (
	"fmt"
	"salesforecast/internal/calculator"
	"salesforecast/internal/domain"
	"time"

	"github.com/gin-gonic/gin"
)

type predictBatchResponse struct {
	Status      string                      `json:"status"`
	Predictions []float64                   `json:"predictions"`
	Records     int                         `json:"records"`
	Summary     *calculator.ForecastSummary `json:"summary"`
}

func (m ApiHandler) predictBatch(c *gin.Context) {
	start := time.Now()
	var requestBody []domain.RawRecord
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, bindErrorCode(err))
		return
	}

	forecast, err := m.ForecastService.Predict(c.Request.Context(), requestBody)
	m.observe("/predict-batch", len(requestBody), start, err)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	summary, err := calculator.Summarize(forecast.Predictions)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, predictBatchResponse{
		Status:      "success",
		Predictions: forecast.Predictions,
		Records:     len(forecast.Predictions),
		Summary:     summary,
	})
}
