package api

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"salesforecast/internal/db/models/postgres/public/model"
	"salesforecast/internal/domain"
	"salesforecast/internal/logger"
	"salesforecast/internal/metrics"
	"salesforecast/internal/repository"
	"salesforecast/internal/service"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader     = "X-Request-ID"
	requestIDKey        = "requestID"
	maxLoggedBodyBytes  = 4 << 10
	defaultUploadBytes  = 10 << 20
	truncatedBodySuffix = "...(truncated)"
)

type ApiHandler struct {
	// Db is nil when the request log is disabled
	Db                           *sql.DB
	ForecastService              service.ForecastService
	ApiRequestRepository         repository.ApiRequestRepository
	LatencencyTrackingRepository repository.LatencyTrackingRepository
	Metrics                      *metrics.Registry
	JwtDecodeToken               string
	MaxUploadBytes               int64
	Port                         int
}

func int64Ptr(i int64) *int64 {
	return &i
}
func int32Ptr(i int32) *int32 {
	return &i
}
func strPtr(s string) *string {
	return &s
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.requestContextMiddleware)
	router.Use(m.logRequestMiddleware)
	router.Use(m.limitBodyMiddleware)
	if m.Db != nil && m.ApiRequestRepository != nil {
		router.Use(m.recordRequestMiddleware)
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "sales forecast api is live"})
	})
	router.GET("/health", m.health)
	router.GET("/features", m.features)
	if m.Metrics != nil {
		router.GET("/metrics", gin.WrapH(m.Metrics.Handler()))
	}

	predictions := router.Group("/")
	if m.JwtDecodeToken != "" {
		predictions.Use(authMiddleware(m.JwtDecodeToken))
	}
	predictions.POST("/predict", m.predict)
	predictions.POST("/predict-batch", m.predictBatch)
	predictions.POST("/upload-csv", m.uploadCsv)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	logger.FromContext(context.Background()).Infow("starting api", "port", port)
	return router.Run(fmt.Sprintf(":%d", port))
}

func (m ApiHandler) observe(route string, rows int, start time.Time, err error) {
	if m.Metrics == nil {
		return
	}
	m.Metrics.Observe(route, rows, time.Since(start), err)
}

// requestContextMiddleware assigns the request id and puts a request
// scoped logger and performance profile on the request context
func (m ApiHandler) requestContextMiddleware(c *gin.Context) {
	requestID, err := uuid.Parse(c.GetHeader(requestIDHeader))
	if err != nil {
		requestID = uuid.New()
	}
	c.Set(requestIDKey, requestID)
	c.Header(requestIDHeader, requestID.String())

	log := logger.FromContext(c.Request.Context()).With("requestID", requestID.String())
	profile, endProfile := domain.NewProfile()
	defer endProfile()

	ctx := logger.WithContext(c.Request.Context(), log)
	ctx = context.WithValue(ctx, domain.ContextProfileKey, profile)
	c.Request = c.Request.WithContext(ctx)
	c.Set(domain.ContextProfileKey, profile)

	c.Next()
}

func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	logger.FromContext(c.Request.Context()).Infow(
		"request",
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"elapsedMs", time.Since(start).Milliseconds(),
	)
}

func (m ApiHandler) limitBodyMiddleware(c *gin.Context) {
	limit := m.MaxUploadBytes
	if limit <= 0 {
		limit = defaultUploadBytes
	}
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}
	c.Next()
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func truncateBody(b []byte) string {
	if len(b) <= maxLoggedBodyBytes {
		return string(b)
	}
	return string(b[:maxLoggedBodyBytes]) + truncatedBodySuffix
}

// recordRequestMiddleware writes the request and its stage timings to
// postgres. Failures are logged and never fail the request.
func (m ApiHandler) recordRequestMiddleware(ctx *gin.Context) {
	log := logger.FromContext(ctx.Request.Context())
	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	body, err := ctx.GetRawData()
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to read request body: %w", err), ctx)
		return
	}
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

	requestID, _ := ctx.Value(requestIDKey).(uuid.UUID)

	start := time.Now().UTC()
	req, err := m.ApiRequestRepository.Add(m.Db, model.APIRequest{
		RequestID:   requestID,
		IPAddress:   strPtr(ctx.ClientIP()),
		Method:      ctx.Request.Method,
		Route:       ctx.Request.URL.Path,
		RequestBody: strPtr(truncateBody(body)),
		StartTs:     start,
	})
	if err != nil {
		log.Warnw("failed to record api request", "error", err)
	}

	ctx.Next()

	if req == nil {
		return
	}
	req.DurationMs = int64Ptr(time.Since(start).Milliseconds())
	req.StatusCode = int32Ptr(int32(ctx.Writer.Status()))
	req.ResponseBody = strPtr(truncateBody(w.body.Bytes()))

	err = m.ApiRequestRepository.Update(m.Db, *req)
	if err != nil {
		log.Warnw("failed to update api request", "error", err)
	}

	if m.LatencencyTrackingRepository == nil {
		return
	}
	profile, ok := ctx.Value(domain.ContextProfileKey).(*domain.Profile)
	if !ok || len(profile.Spans) == 0 {
		return
	}
	err = m.LatencencyTrackingRepository.Add(*profile, &req.RequestID)
	if err != nil {
		log.Warnw("failed to record latency", "error", err)
	}
}
