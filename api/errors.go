package api

import (
	"errors"
	"net/http"
	"salesforecast/internal/domain"
	"salesforecast/internal/logger"

	"github.com/gin-gonic/gin"
)

func statusCodeForError(err error) int {
	var (
		invalidInput   domain.InvalidInputError
		missingFeature domain.MissingFeatureError
		tooLarge       *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &invalidInput), errors.As(err, &missingFeature):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, statusCodeForError(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	log := logger.FromContext(c.Request.Context())
	if code >= 500 {
		log.Errorw("request failed", "status", code, "error", err)
	} else {
		log.Infow("request rejected", "status", code, "error", err)
	}
	c.AbortWithStatusJSON(code, gin.H{
		"status": "error",
		"error":  err.Error(),
	})
}
