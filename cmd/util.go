package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"salesforecast/api"
	"salesforecast/internal/artifact"
	"salesforecast/internal/logger"
	"salesforecast/internal/metrics"
	"salesforecast/internal/repository"
	"salesforecast/internal/service"
	"salesforecast/internal/util"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	if handler.Db == nil {
		return
	}
	err := handler.Db.Close()
	if err != nil {
		logger.FromContext(context.Background()).Errorw("failed to close db", "error", err)
	}
}

// InitializeForecastService loads the artifacts once and wires the
// pipeline over them. The api, the lambda and the cli all share it.
func InitializeForecastService(paths artifact.Paths) (service.ForecastService, error) {
	store, err := artifact.LoadStore(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifacts: %w", err)
	}

	log := logger.FromContext(context.Background())
	log.Infow(
		"loaded artifacts",
		"modelFeatures", len(store.Model.FeatureNames()),
		"zeroFilled", store.MissingFeatures(),
		"dropped", store.UnusedFeatures(),
	)

	return service.NewForecastServiceFromStore(store), nil
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	forecastService, err := InitializeForecastService(artifact.Paths{
		EncoderPath: secrets.Artifacts.EncoderPath,
		ScalerPath:  secrets.Artifacts.ScalerPath,
		ModelPath:   secrets.Artifacts.ModelPath,
	})
	if err != nil {
		return nil, err
	}

	apiHandler := &api.ApiHandler{
		ForecastService: forecastService,
		Metrics:         metrics.NewRegistry(),
		JwtDecodeToken:  secrets.Jwt,
		MaxUploadBytes:  secrets.MaxUploadBytes,
		Port:            secrets.Port,
	}

	if secrets.Db != nil {
		dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		apiHandler.Db = dbConn
		apiHandler.ApiRequestRepository = repository.NewApiRequestRepository()
		apiHandler.LatencencyTrackingRepository = repository.NewLatencyTrackingRepository(dbConn)
	}

	return apiHandler, nil
}
