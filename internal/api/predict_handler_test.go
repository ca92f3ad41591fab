package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/churn-insight/api-server/internal/churn"
	"github.com/churn-insight/api-server/internal/repository"
	"github.com/churn-insight/api-server/internal/services"
)

// Mock prediction service for testing
type mockPredictionService struct {
	outcome *services.PredictOutcome
	err     error
	records []repository.PredictionRecord
	listErr error
	calls   int
}

func (m *mockPredictionService) Predict(ctx context.Context, payload map[string]interface{}) (*services.PredictOutcome, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	outcome := *m.outcome
	outcome.Response.CustomerInput = payload
	return &outcome, nil
}

func (m *mockPredictionService) ListPredictions(ctx context.Context) ([]repository.PredictionRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

func setupPredictRouter(service services.PredictionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/predict", NewPredictHandler(service).Predict)
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/predict", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

const validBody = `{"Gender":"Female","Tenure Months":12,"Internet Service":"DSL","Streaming Movies":"No","Monthly Charges":55.5,"Total Charges":666.0}`

var (
	errInvalidSyntax = errors.New(`strconv.ParseFloat: parsing "abc": invalid syntax`)
	errBoom          = errors.New("boom")
)

func TestPredictHandler_SuccessWithoutPersistence(t *testing.T) {
	service := &mockPredictionService{
		outcome: &services.PredictOutcome{
			Response: services.PredictResponse{
				LogisticRegression: churn.InferenceResult{Prediction: "Yes", Probability: 0.8765, RiskPercent: 87.65},
			},
		},
	}
	router := setupPredictRouter(service)

	resp := postJSON(router, validBody)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	input, ok := response["customer_input"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected customer_input object in response")
	}
	if input["Gender"] != "Female" || input["Tenure Months"] != 12.0 {
		t.Errorf("Expected raw payload echoed back, got %v", input)
	}

	lr, ok := response["logistic_regression"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected logistic_regression object in response")
	}
	if lr["prediction"] != "Yes" {
		t.Errorf("Expected prediction Yes, got %v", lr["prediction"])
	}
	if lr["probability"] != 0.8765 {
		t.Errorf("Expected probability 0.8765, got %v", lr["probability"])
	}
	if lr["risk_percent"] != 87.65 {
		t.Errorf("Expected risk_percent 87.65, got %v", lr["risk_percent"])
	}
	if _, exists := response["warning"]; exists {
		t.Error("Expected no warning field on clean response")
	}
}

func TestPredictHandler_PersistedReturns201(t *testing.T) {
	service := &mockPredictionService{
		outcome: &services.PredictOutcome{
			Persisted: true,
			Response: services.PredictResponse{
				LogisticRegression: churn.InferenceResult{Prediction: "No", Probability: 0.1, RiskPercent: 10},
			},
		},
	}
	router := setupPredictRouter(service)

	resp := postJSON(router, validBody)
	if resp.Code != http.StatusCreated {
		t.Errorf("Expected status 201 for persisted prediction, got %d", resp.Code)
	}
}

func TestPredictHandler_InvalidBody(t *testing.T) {
	service := &mockPredictionService{}
	router := setupPredictRouter(service)

	for _, body := range []string{"", "not json", "null", "[]", "{}"} {
		resp := postJSON(router, body)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for body %q, got %d", body, resp.Code)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["error"] != "Invalid or missing JSON body" {
			t.Errorf("Expected invalid body error for %q, got %v", body, response["error"])
		}
	}

	if service.calls != 0 {
		t.Errorf("Expected service not to be invoked for invalid bodies, got %d calls", service.calls)
	}
}

func TestPredictHandler_MissingFields(t *testing.T) {
	service := &mockPredictionService{
		err: &churn.MissingFieldsError{Fields: []string{
			"Tenure Months", "Internet Service", "Streaming Movies", "Monthly Charges", "Total Charges",
		}},
	}
	router := setupPredictRouter(service)

	resp := postJSON(router, `{"Gender":"Male"}`)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["error"] != "Missing fields" {
		t.Errorf("Expected Missing fields error, got %v", response["error"])
	}

	fields, ok := response["fields"].([]interface{})
	if !ok {
		t.Fatal("Expected fields list in response")
	}
	if len(fields) != 5 {
		t.Errorf("Expected 5 missing fields, got %d", len(fields))
	}
}

func TestPredictHandler_CoercionFailure(t *testing.T) {
	service := &mockPredictionService{
		err: &churn.CoercionError{Field: "Monthly Charges", Cause: errInvalidSyntax},
	}
	router := setupPredictRouter(service)

	resp := postJSON(router, `{"Gender":"F","Tenure Months":1,"Internet Service":"DSL","Streaming Movies":"No","Monthly Charges":"abc","Total Charges":1}`)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for coercion failure, got %d", resp.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["error"] != "Invalid field types" {
		t.Errorf("Expected Invalid field types error, got %v", response["error"])
	}
	if response["message"] == nil || response["message"] == "" {
		t.Error("Expected conversion message in response")
	}
}

func TestPredictHandler_InternalErrorLeaksNothing(t *testing.T) {
	service := &mockPredictionService{err: errBoom}
	router := setupPredictRouter(service)

	resp := postJSON(router, validBody)
	if resp.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", resp.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["error"] != "Internal server error" {
		t.Errorf("Expected generic error message, got %v", response["error"])
	}
}
