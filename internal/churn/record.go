package churn

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// External field names carry literal spaces; they are part of the wire format
// consumed by clients and by the trained model, so they are never renamed.
const (
	FieldGender          = "Gender"
	FieldTenureMonths    = "Tenure Months"
	FieldInternetService = "Internet Service"
	FieldStreamingMovies = "Streaming Movies"
	FieldMonthlyCharges  = "Monthly Charges"
	FieldTotalCharges    = "Total Charges"
)

// RequiredFields lists every field a payload must carry, in canonical order.
var RequiredFields = []string{
	FieldGender,
	FieldTenureMonths,
	FieldInternetService,
	FieldStreamingMovies,
	FieldMonthlyCharges,
	FieldTotalCharges,
}

// CustomerRecord is the fixed schema the classifier requires. It is only ever
// built from a payload that passed Validate and coercion.
type CustomerRecord struct {
	Gender          string
	TenureMonths    float64
	InternetService string
	StreamingMovies string
	MonthlyCharges  float64
	TotalCharges    float64
}

// MissingFieldsError reports every absent required field at once.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// CoercionError reports a field whose value could not be converted to the
// type the classifier expects. It is a client error, never a server fault.
type CoercionError struct {
	Field string
	Cause error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Cause)
}

func (e *CoercionError) Unwrap() error {
	return e.Cause
}

// Validate checks that every required field is present in the payload. The
// returned error carries all missing names, not just the first.
func Validate(payload map[string]interface{}) error {
	var missing []string
	for _, field := range RequiredFields {
		if _, ok := payload[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// BuildRecord coerces a validated payload into a CustomerRecord. Numeric
// fields accept JSON numbers and numeric strings; categorical fields are
// passed through opaquely with no value-set checks (the classifier decides
// what it recognizes).
func BuildRecord(payload map[string]interface{}) (CustomerRecord, error) {
	var record CustomerRecord
	var err error

	if record.Gender, err = toString(FieldGender, payload[FieldGender]); err != nil {
		return CustomerRecord{}, err
	}
	if record.TenureMonths, err = toFloat(FieldTenureMonths, payload[FieldTenureMonths]); err != nil {
		return CustomerRecord{}, err
	}
	if record.InternetService, err = toString(FieldInternetService, payload[FieldInternetService]); err != nil {
		return CustomerRecord{}, err
	}
	if record.StreamingMovies, err = toString(FieldStreamingMovies, payload[FieldStreamingMovies]); err != nil {
		return CustomerRecord{}, err
	}
	if record.MonthlyCharges, err = toFloat(FieldMonthlyCharges, payload[FieldMonthlyCharges]); err != nil {
		return CustomerRecord{}, err
	}
	if record.TotalCharges, err = toFloat(FieldTotalCharges, payload[FieldTotalCharges]); err != nil {
		return CustomerRecord{}, err
	}

	return record, nil
}

func toFloat(field string, value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, &CoercionError{Field: field, Cause: err}
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, &CoercionError{Field: field, Cause: err}
		}
		return f, nil
	default:
		return 0, &CoercionError{Field: field, Cause: fmt.Errorf("cannot convert %v (%T) to float", value, value)}
	}
}

func toString(field string, value interface{}) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", &CoercionError{Field: field, Cause: fmt.Errorf("expected string, got %T", value)}
	}
	return s, nil
}
