package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"salesforecast/cmd"
	"salesforecast/internal/artifact"
	"salesforecast/internal/calculator"
	"salesforecast/internal/domain"
	"salesforecast/internal/ingest"
	"salesforecast/internal/service"
	"salesforecast/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagInput   string
	flagOutput  string
	flagSummary bool

	flagEncoder string
	flagScaler  string
	flagModel   string
)

var rootCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Sales revenue forecasting",
	Long:  "Run the revenue forecast pipeline locally against csv files.",
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict revenue for every row of a csv file",
	RunE:  runPredict,
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Print the features the model expects",
	RunE:  runFeatures,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEncoder, "encoder", "", "Encoder artifact path (defaults to the secrets file)")
	rootCmd.PersistentFlags().StringVar(&flagScaler, "scaler", "", "Scaler artifact path (defaults to the secrets file)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "Model artifact path (defaults to the secrets file)")

	predictCmd.Flags().StringVarP(&flagInput, "input", "i", "", "Input csv")
	predictCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output csv, stdout when empty")
	predictCmd.Flags().BoolVar(&flagSummary, "summary", false, "Print a summary of the predictions to stderr")
	predictCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(predictCmd, featuresCmd)
}

func artifactPaths() (artifact.Paths, error) {
	paths := artifact.Paths{
		EncoderPath: flagEncoder,
		ScalerPath:  flagScaler,
		ModelPath:   flagModel,
	}
	if paths.EncoderPath != "" && paths.ScalerPath != "" && paths.ModelPath != "" {
		return paths, nil
	}

	secrets, err := util.LoadSecrets()
	if err != nil {
		return artifact.Paths{}, fmt.Errorf("failed to load secrets: %w", err)
	}
	if paths.EncoderPath == "" {
		paths.EncoderPath = secrets.Artifacts.EncoderPath
	}
	if paths.ScalerPath == "" {
		paths.ScalerPath = secrets.Artifacts.ScalerPath
	}
	if paths.ModelPath == "" {
		paths.ModelPath = secrets.Artifacts.ModelPath
	}
	return paths, nil
}

func loadForecastService() (service.ForecastService, error) {
	paths, err := artifactPaths()
	if err != nil {
		return nil, err
	}
	return cmd.InitializeForecastService(paths)
}

func runPredict(c *cobra.Command, _ []string) error {
	forecastService, err := loadForecastService()
	if err != nil {
		return err
	}

	in, err := os.Open(flagInput)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", flagInput, err)
	}
	defer in.Close()

	raw, err := ingest.ReadRecords(in)
	if err != nil {
		return err
	}

	profile, endProfile := domain.NewProfile()
	ctx := context.WithValue(context.Background(), domain.ContextProfileKey, profile)
	forecast, err := forecastService.Predict(ctx, raw)
	endProfile()
	if err != nil {
		return err
	}

	var out io.Writer = c.OutOrStdout()
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", flagOutput, err)
		}
		defer f.Close()
		out = f
	}
	err = ingest.WritePredictions(out, *forecast)
	if err != nil {
		return err
	}

	if flagSummary {
		summary, err := calculator.Summarize(forecast.Predictions)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(c.ErrOrStderr())
		enc.SetIndent("", "    ")
		return enc.Encode(map[string]any{
			"summary": summary,
			"timings": profile.Spans,
		})
	}
	return nil
}

func runFeatures(c *cobra.Command, _ []string) error {
	forecastService, err := loadForecastService()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.OutOrStdout())
	enc.SetIndent("", "    ")
	return enc.Encode(forecastService.Schema())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
