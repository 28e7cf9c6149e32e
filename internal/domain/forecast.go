package domain

// Forecast is the output of one pipeline run. Predictions[i] belongs to
// Records[i], which is the normalized form of the i-th input row.
type Forecast struct {
	Predictions  []float64
	Records      []Record
	FeaturesUsed []string
}
