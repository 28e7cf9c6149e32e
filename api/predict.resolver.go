package api

import (
	"fmt"
	"net/http"
	"salesforecast/internal/calculator"
	"salesforecast/internal/domain"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type predictResponse struct {
	Status            string          `json:"status"`
	Prediction        float64         `json:"prediction"`
	Currency          string          `json:"currency"`
	RoundedPrediction decimal.Decimal `json:"roundedPrediction"`
	InputFeatures     domain.Record   `json:"input_features"`
	ModelFeaturesUsed []string        `json:"model_features_used"`
}

// bindErrorCode keeps 413 for oversized bodies and reports every other
// decode failure as bad input
func bindErrorCode(err error) int {
	if code := statusCodeForError(err); code == http.StatusRequestEntityTooLarge {
		return code
	}
	return http.StatusBadRequest
}

func (m ApiHandler) predict(c *gin.Context) {
	start := time.Now()
	var requestBody domain.RawRecord
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, bindErrorCode(err))
		return
	}

	forecast, err := m.ForecastService.Predict(c.Request.Context(), []domain.RawRecord{requestBody})
	m.observe("/predict", 1, start, err)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, predictResponse{
		Status:            "success",
		Prediction:        forecast.Predictions[0],
		Currency:          calculator.Currency,
		RoundedPrediction: calculator.RoundCurrency(forecast.Predictions[0]),
		InputFeatures:     forecast.Records[0],
		ModelFeaturesUsed: forecast.FeaturesUsed,
	})
}
