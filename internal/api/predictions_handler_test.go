package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/churn-insight/api-server/internal/churn"
	"github.com/churn-insight/api-server/internal/repository"
	"github.com/churn-insight/api-server/internal/services"
)

func setupPredictionsRouter(service services.PredictionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/predictions", NewPredictionsHandler(service).List)
	return router
}

func TestPredictionsHandler_List(t *testing.T) {
	service := &mockPredictionService{
		records: []repository.PredictionRecord{
			{
				ID:            uuid.New(),
				CustomerInput: map[string]interface{}{"Gender": "Male"},
				Inference:     churn.InferenceResult{Prediction: "Yes", Probability: 0.9, RiskPercent: 90},
				CreatedAt:     time.Now(),
			},
			{
				ID:            uuid.New(),
				CustomerInput: map[string]interface{}{"Gender": "Female"},
				Inference:     churn.InferenceResult{Prediction: "No", Probability: 0.1, RiskPercent: 10},
				CreatedAt:     time.Now().Add(-time.Minute),
			},
		},
	}
	router := setupPredictionsRouter(service)

	req, _ := http.NewRequest("GET", "/predictions", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}

	var response []map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(response))
	}

	// Store ordering is passed through: newest first
	first, _ := response[0]["customer_input"].(map[string]interface{})
	if first["Gender"] != "Male" {
		t.Errorf("Expected newest record first, got %v", response[0])
	}

	// Store-internal fields never appear on the wire
	for _, record := range response {
		if _, exists := record["id"]; exists {
			t.Error("Expected store id to be stripped from response")
		}
		if _, exists := record["created_at"]; exists {
			t.Error("Expected store timestamp to be stripped from response")
		}
		if _, exists := record["logistic_regression"]; !exists {
			t.Error("Expected logistic_regression in each record")
		}
	}
}

func TestPredictionsHandler_Empty(t *testing.T) {
	service := &mockPredictionService{records: []repository.PredictionRecord{}}
	router := setupPredictionsRouter(service)

	req, _ := http.NewRequest("GET", "/predictions", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != "[]" {
		t.Errorf("Expected empty JSON array, got %s", body)
	}
}

func TestPredictionsHandler_StoreError(t *testing.T) {
	service := &mockPredictionService{listErr: errBoom}
	router := setupPredictionsRouter(service)

	req, _ := http.NewRequest("GET", "/predictions", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500 for store error, got %d", resp.Code)
	}
}
