package churn

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// LogisticModel is the serialized artifact deposited by the offline training
// job: an intercept, one coefficient per numeric field, and one weight per
// known categorical value. Unknown categorical values contribute zero weight;
// rejecting them is not this service's job.
type LogisticModel struct {
	Intercept   float64                       `json:"intercept"`
	Numeric     map[string]float64            `json:"numeric"`
	Categorical map[string]map[string]float64 `json:"categorical"`
}

// LoadLogisticModel reads and validates a model artifact. Called once at
// process start; the returned model is read-only afterwards.
func LoadLogisticModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact %s: %w", path, err)
	}

	var model LogisticModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact %s: %w", path, err)
	}

	if len(model.Numeric) == 0 && len(model.Categorical) == 0 {
		return nil, fmt.Errorf("model artifact %s has no coefficients", path)
	}

	return &model, nil
}

// PredictProbability returns the positive-class probability for the record.
func (m *LogisticModel) PredictProbability(record CustomerRecord) (float64, error) {
	return sigmoid(m.score(record)), nil
}

// PredictLabel returns 1 when the churn probability reaches the 0.5 decision
// threshold, 0 otherwise.
func (m *LogisticModel) PredictLabel(record CustomerRecord) (int, error) {
	if sigmoid(m.score(record)) >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

func (m *LogisticModel) score(record CustomerRecord) float64 {
	score := m.Intercept
	score += m.Numeric[FieldTenureMonths] * record.TenureMonths
	score += m.Numeric[FieldMonthlyCharges] * record.MonthlyCharges
	score += m.Numeric[FieldTotalCharges] * record.TotalCharges
	score += m.Categorical[FieldGender][record.Gender]
	score += m.Categorical[FieldInternetService][record.InternetService]
	score += m.Categorical[FieldStreamingMovies][record.StreamingMovies]
	return score
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
