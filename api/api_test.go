package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"salesforecast/internal/db/models/postgres/public/model"
	"salesforecast/internal/domain"
	"salesforecast/internal/metrics"
	mock_repository "salesforecast/internal/repository/mocks"
	"salesforecast/internal/service"
	mock_service "salesforecast/internal/service/mocks"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func oneRowForecast(prediction float64) *domain.Forecast {
	color := "red"
	r := domain.Record{Color: &color}
	r.SetNumeric(domain.ColumnUnitPrice, 10)
	return &domain.Forecast{
		Predictions:  []float64{prediction},
		Records:      []domain.Record{r},
		FeaturesUsed: []string{"unit_price", "color_red"},
	}
}

func TestPredict(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		forecastService := mock_service.NewMockForecastService(ctrl)
		handler := ApiHandler{ForecastService: forecastService}

		forecastService.EXPECT().
			Predict(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, records []domain.RawRecord) (*domain.Forecast, error) {
				require.Len(t, records, 1)
				require.Equal(t, 10.0, records[0]["unit_price"])
				_, ok := ctx.Value(domain.ContextProfileKey).(*domain.Profile)
				require.True(t, ok)
				return oneRowForecast(12.345), nil
			})

		rec := doRequest(handler.InitializeRouterEngine(), jsonRequest("POST", "/predict", `{"unit_price": 10, "color": "red"}`))
		require.Equal(t, 200, rec.Code)
		require.NotEmpty(t, rec.Header().Get(requestIDHeader))

		body := decodeBody(t, rec)
		require.Equal(t, "success", body["status"])
		require.Equal(t, 12.345, body["prediction"])
		require.Equal(t, "USD", body["currency"])
		require.Equal(t, "12.35", body["roundedPrediction"])
		require.Equal(t, []any{"unit_price", "color_red"}, body["model_features_used"])
		inputFeatures := body["input_features"].(map[string]any)
		require.Equal(t, "red", inputFeatures["color"])
	})

	t.Run("malformed json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := ApiHandler{ForecastService: mock_service.NewMockForecastService(ctrl)}

		rec := doRequest(handler.InitializeRouterEngine(), jsonRequest("POST", "/predict", `{"unit_price": `))
		require.Equal(t, 400, rec.Code)
		require.Equal(t, "error", decodeBody(t, rec)["status"])
	})

	t.Run("error kinds map to status codes", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{domain.MissingFeatureError{Column: "color"}, 400},
			{fmt.Errorf("failed to transform features: %w", domain.InvalidInputError{Field: "size", Reason: "unknown category"}), 400},
			{fmt.Errorf("failed to run inference: %w", domain.ModelInvocationError{Err: fmt.Errorf("boom")}), 500},
			{fmt.Errorf("something else"), 500},
		}
		for _, tc := range cases {
			ctrl := gomock.NewController(t)
			forecastService := mock_service.NewMockForecastService(ctrl)
			forecastService.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(nil, tc.err)
			handler := ApiHandler{ForecastService: forecastService}

			rec := doRequest(handler.InitializeRouterEngine(), jsonRequest("POST", "/predict", `{}`))
			require.Equal(t, tc.code, rec.Code, tc.err.Error())
			require.Equal(t, tc.err.Error(), decodeBody(t, rec)["error"])
		}
	})

	t.Run("body over the limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := ApiHandler{
			ForecastService: mock_service.NewMockForecastService(ctrl),
			MaxUploadBytes:  16,
		}
		rec := doRequest(handler.InitializeRouterEngine(), jsonRequest("POST", "/predict", `{"color": "a very long colour name"}`))
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestPredictBatch(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		forecastService := mock_service.NewMockForecastService(ctrl)
		registry := metrics.NewRegistry()
		handler := ApiHandler{ForecastService: forecastService, Metrics: registry}

		forecastService.EXPECT().
			Predict(gomock.Any(), gomock.Len(3)).
			Return(&domain.Forecast{
				Predictions: []float64{10, 20, 30},
				Records:     make([]domain.Record, 3),
			}, nil)

		rec := doRequest(handler.InitializeRouterEngine(), jsonRequest("POST", "/predict-batch", `[{}, {}, {}]`))
		require.Equal(t, 200, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, []any{10.0, 20.0, 30.0}, body["predictions"])
		require.Equal(t, 3.0, body["records"])
		summary := body["summary"].(map[string]any)
		require.Equal(t, "60", summary["total"])
		require.Equal(t, "20", summary["mean"])

		metricsRec := doRequest(handler.InitializeRouterEngine(), httptest.NewRequest("GET", "/metrics", nil))
		require.Contains(t, metricsRec.Body.String(), "forecast_rows_predicted_total 3")
	})

	t.Run("object instead of array", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := ApiHandler{ForecastService: mock_service.NewMockForecastService(ctrl)}
		rec := doRequest(handler.InitializeRouterEngine(), jsonRequest("POST", "/predict-batch", `{"unit_price": 1}`))
		require.Equal(t, 400, rec.Code)
	})

	t.Run("empty batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		forecastService := mock_service.NewMockForecastService(ctrl)
		forecastService.EXPECT().
			Predict(gomock.Any(), gomock.Len(0)).
			Return(nil, domain.InvalidInputError{Reason: "no records to predict"})
		handler := ApiHandler{ForecastService: forecastService}

		rec := doRequest(handler.InitializeRouterEngine(), jsonRequest("POST", "/predict-batch", `[]`))
		require.Equal(t, 400, rec.Code)
	})
}

func multipartUpload(t *testing.T, path, contents string) *http.Request {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "rows.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadCsv(t *testing.T) {
	csvContents := "unit_price,order_date,color\n10,2024-01-10,red\n12,2024-01-11,\n"
	uploadForecast := func() *domain.Forecast {
		records := make([]domain.Record, 2)
		for i := range records {
			records[i].SetNumeric(domain.ColumnYear, 2024)
			records[i].SetNumeric(domain.ColumnMonth, 1)
			records[i].SetNumeric(domain.ColumnDay, float64(10+i))
		}
		return &domain.Forecast{
			Predictions: []float64{5, 7.5},
			Records:     records,
		}
	}

	t.Run("json response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		forecastService := mock_service.NewMockForecastService(ctrl)
		handler := ApiHandler{ForecastService: forecastService}

		forecastService.EXPECT().
			Predict(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, records []domain.RawRecord) (*domain.Forecast, error) {
				require.Len(t, records, 2)
				require.Equal(t, "10", records[0]["unit_price"])
				require.Nil(t, records[1]["color"])
				return uploadForecast(), nil
			})

		rec := doRequest(handler.InitializeRouterEngine(), multipartUpload(t, "/upload-csv", csvContents))
		require.Equal(t, 200, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, 2.0, body["rows"])
		trend := body["trend"].([]any)
		require.Len(t, trend, 2)
		require.Equal(t, "12.5", trend[1].(map[string]any)["cumulativeRevenue"])
	})

	t.Run("csv download", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		forecastService := mock_service.NewMockForecastService(ctrl)
		forecastService.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(uploadForecast(), nil)
		handler := ApiHandler{ForecastService: forecastService}

		rec := doRequest(handler.InitializeRouterEngine(), multipartUpload(t, "/upload-csv?format=csv", csvContents))
		require.Equal(t, 200, rec.Code)
		require.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))

		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		require.Len(t, lines, 3)
		require.True(t, strings.HasSuffix(lines[0], "predicted_revenue"))
		require.True(t, strings.HasSuffix(lines[2], "7.5"))
	})

	t.Run("missing file field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := ApiHandler{ForecastService: mock_service.NewMockForecastService(ctrl)}
		rec := doRequest(handler.InitializeRouterEngine(), jsonRequest("POST", "/upload-csv", `{}`))
		require.Equal(t, 400, rec.Code)
	})

	t.Run("ragged csv", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := ApiHandler{ForecastService: mock_service.NewMockForecastService(ctrl)}
		rec := doRequest(handler.InitializeRouterEngine(), multipartUpload(t, "/upload-csv", "a,b\n1,2,3\n"))
		require.Equal(t, 400, rec.Code)
	})
}

func TestHealthAndFeatures(t *testing.T) {
	ctrl := gomock.NewController(t)
	forecastService := mock_service.NewMockForecastService(ctrl)
	forecastService.EXPECT().Schema().Return(service.FeatureSchema{
		ModelFeatures:      []string{"unit_price", "color_red"},
		CategoricalColumns: []string{"color"},
	}).Times(2)
	engine := ApiHandler{ForecastService: forecastService}.InitializeRouterEngine()

	rec := doRequest(engine, httptest.NewRequest("GET", "/health", nil))
	require.Equal(t, 200, rec.Code)
	require.Equal(t, "ok", decodeBody(t, rec)["status"])
	require.Equal(t, 2.0, decodeBody(t, rec)["modelFeatures"])

	rec = doRequest(engine, httptest.NewRequest("GET", "/features", nil))
	require.Equal(t, 200, rec.Code)
	require.Equal(t, []any{"color"}, decodeBody(t, rec)["categoricalColumns"])

	rec = doRequest(engine, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, "sales forecast api is live", decodeBody(t, rec)["message"])
}

func signedToken(t *testing.T, secret string, exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "analyst",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	secret := "test-secret"

	t.Run("missing token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := ApiHandler{ForecastService: mock_service.NewMockForecastService(ctrl), JwtDecodeToken: secret}
		rec := doRequest(handler.InitializeRouterEngine(), jsonRequest("POST", "/predict", `{}`))
		require.Equal(t, 401, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := ApiHandler{ForecastService: mock_service.NewMockForecastService(ctrl), JwtDecodeToken: secret}
		req := jsonRequest("POST", "/predict", `{}`)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "other", time.Now().Add(time.Hour)))
		require.Equal(t, 401, doRequest(handler.InitializeRouterEngine(), req).Code)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := parseJWT(signedToken(t, secret, time.Now().Add(-time.Hour)), secret)
		require.Error(t, err)
	})

	t.Run("valid token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		forecastService := mock_service.NewMockForecastService(ctrl)
		forecastService.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(oneRowForecast(1), nil)
		handler := ApiHandler{ForecastService: forecastService, JwtDecodeToken: secret}

		req := jsonRequest("POST", "/predict", `{}`)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, secret, time.Now().Add(time.Hour)))
		require.Equal(t, 200, doRequest(handler.InitializeRouterEngine(), req).Code)
	})

	t.Run("health stays open", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		forecastService := mock_service.NewMockForecastService(ctrl)
		forecastService.EXPECT().Schema().Return(service.FeatureSchema{})
		handler := ApiHandler{ForecastService: forecastService, JwtDecodeToken: secret}
		require.Equal(t, 200, doRequest(handler.InitializeRouterEngine(), httptest.NewRequest("GET", "/health", nil)).Code)
	})
}

func TestRecordRequestMiddleware(t *testing.T) {
	db, err := sql.Open("postgres", "host=localhost sslmode=disable")
	require.NoError(t, err)

	t.Run("records request, response and timings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		forecastService := mock_service.NewMockForecastService(ctrl)
		apiRequestRepository := mock_repository.NewMockApiRequestRepository(ctrl)
		latencyTrackingRepository := mock_repository.NewMockLatencyTrackingRepository(ctrl)
		handler := ApiHandler{
			Db:                           db,
			ForecastService:              forecastService,
			ApiRequestRepository:         apiRequestRepository,
			LatencencyTrackingRepository: latencyTrackingRepository,
		}
		requestID := uuid.New()

		forecastService.EXPECT().
			Predict(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, records []domain.RawRecord) (*domain.Forecast, error) {
				profile, _ := domain.GetProfile(ctx)
				_, endSpan := profile.StartNewSpan("inference")
				endSpan()
				return oneRowForecast(3), nil
			})
		apiRequestRepository.EXPECT().
			Add(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, ar model.APIRequest) (*model.APIRequest, error) {
				require.Equal(t, requestID, ar.RequestID)
				require.Equal(t, "/predict", ar.Route)
				require.Equal(t, `{"unit_price": 10}`, *ar.RequestBody)
				return &ar, nil
			})
		apiRequestRepository.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, ar model.APIRequest) error {
				require.Equal(t, int32(200), *ar.StatusCode)
				require.Contains(t, *ar.ResponseBody, `"status":"success"`)
				return nil
			})
		latencyTrackingRepository.EXPECT().
			Add(gomock.Any(), &requestID).
			DoAndReturn(func(profile domain.Profile, _ *uuid.UUID) error {
				require.Equal(t, "inference", profile.Spans[0].Name)
				return nil
			})

		req := jsonRequest("POST", "/predict", `{"unit_price": 10}`)
		req.Header.Set(requestIDHeader, requestID.String())
		rec := doRequest(handler.InitializeRouterEngine(), req)
		require.Equal(t, 200, rec.Code)
		require.Equal(t, requestID.String(), rec.Header().Get(requestIDHeader))
	})

	t.Run("log failures do not fail the request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		forecastService := mock_service.NewMockForecastService(ctrl)
		apiRequestRepository := mock_repository.NewMockApiRequestRepository(ctrl)
		handler := ApiHandler{
			Db:                   db,
			ForecastService:      forecastService,
			ApiRequestRepository: apiRequestRepository,
		}

		apiRequestRepository.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("db down"))
		forecastService.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(oneRowForecast(3), nil)

		rec := doRequest(handler.InitializeRouterEngine(), jsonRequest("POST", "/predict", `{}`))
		require.Equal(t, 200, rec.Code)
	})
}

func TestTruncateBody(t *testing.T) {
	require.Equal(t, "abc", truncateBody([]byte("abc")))

	long := bytes.Repeat([]byte("x"), maxLoggedBodyBytes+10)
	out := truncateBody(long)
	require.True(t, strings.HasSuffix(out, truncatedBodySuffix))
	require.Len(t, out, maxLoggedBodyBytes+len(truncatedBodySuffix))
}
