package api

import (
	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status        string `json:"status"`
	ModelFeatures int    `json:"modelFeatures"`
}

func (m ApiHandler) health(c *gin.Context) {
	c.JSON(200, healthResponse{
		Status:        "ok",
		ModelFeatures: len(m.ForecastService.Schema().ModelFeatures),
	})
}

func (m ApiHandler) features(c *gin.Context) {
	c.JSON(200, m.ForecastService.Schema())
}
