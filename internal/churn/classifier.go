package churn

import (
	"fmt"
	"math"
)

// Classifier is the pre-trained binary churn classifier. Implementations must be
// safe for unbounded concurrent use; the service never mutates a loaded model.
type Classifier interface {
	// PredictLabel returns the predicted class, 1 for churn and 0 for stay.
	PredictLabel(record CustomerRecord) (int, error)
	// PredictProbability returns the positive-class probability in [0, 1].
	PredictProbability(record CustomerRecord) (float64, error)
}

// Label values on the wire.
const (
	LabelYes = "Yes"
	LabelNo  = "No"
)

// InferenceResult is the normalized classifier output. Probability is rounded
// to 4 places and RiskPercent is derived from the rounded probability, so the
// two never disagree in a response.
type InferenceResult struct {
	Prediction  string  `json:"prediction"`
	Probability float64 `json:"probability"`
	RiskPercent float64 `json:"risk_percent"`
}

// NewInferenceResult normalizes a raw classifier output. A label outside
// {0, 1} or a probability outside [0, 1] means the model integration is
// broken, not the request.
func NewInferenceResult(label int, rawProbability float64) (InferenceResult, error) {
	var prediction string
	switch label {
	case 1:
		prediction = LabelYes
	case 0:
		prediction = LabelNo
	default:
		return InferenceResult{}, fmt.Errorf("classifier returned out-of-domain label %d", label)
	}

	if rawProbability < 0 || rawProbability > 1 || math.IsNaN(rawProbability) {
		return InferenceResult{}, fmt.Errorf("classifier returned out-of-range probability %v", rawProbability)
	}

	probability := roundTo(rawProbability, 4)
	return InferenceResult{
		Prediction:  prediction,
		Probability: probability,
		RiskPercent: roundTo(probability*100, 2),
	}, nil
}

func roundTo(value float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(value*shift) / shift
}
