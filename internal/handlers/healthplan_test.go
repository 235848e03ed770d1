package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"healthcare-plus/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTextModel struct {
	completion string
	err        error
	gotPrompt  string
}

func (s *stubTextModel) CreateCompletion(_ context.Context, prompt string) (string, error) {
	s.gotPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.completion, nil
}

func newHealthPlanRouter(model *stubTextModel) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewHealthPlanHandler(model)
	router := gin.New()
	router.POST("/api/HealthPlans", handler.GeneratePlan)
	router.GET("/api/HealthPlans", handler.GeneratePlanQuery)
	return router
}

const fencedPlan = "```json\n{\"dietPlan\":[\"Breakfast: oats\"],\"sleepRoutine\":[\"Bedtime routine: read\"]}\n```"

func TestGeneratePlan(t *testing.T) {
	model := &stubTextModel{completion: fencedPlan}
	router := newHealthPlanRouter(model)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/HealthPlans",
		strings.NewReader(`{"age":45,"weight":82,"height":180,"activityLevel":"sedentary","dietaryRestrictions":"vegetarian","sleepIssues":"frequent waking"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message    string                 `json:"message"`
		HealthPlan map[string]interface{} `json:"healthPlan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Health plan generated successfully", resp.Message)
	assert.Contains(t, resp.HealthPlan, "dietPlan")
	assert.Contains(t, resp.HealthPlan, "sleepRoutine")

	assert.Contains(t, model.gotPrompt, "45-year-old")
	assert.Contains(t, model.gotPrompt, "vegetarian")
}

func TestGeneratePlanDefaultsOnEmptyBody(t *testing.T) {
	model := &stubTextModel{completion: fencedPlan}
	router := newHealthPlanRouter(model)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/HealthPlans", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, model.gotPrompt, "30-year-old")
	assert.Contains(t, model.gotPrompt, "insomnia")
}

func TestGeneratePlanQueryVariant(t *testing.T) {
	model := &stubTextModel{completion: fencedPlan}
	router := newHealthPlanRouter(model)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/HealthPlans?age=52&activityLevel=active", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, model.gotPrompt, "52-year-old")
	assert.Contains(t, model.gotPrompt, "activity level is active")
}

func TestGeneratePlanMalformedModelOutput(t *testing.T) {
	model := &stubTextModel{completion: "here is your plan: eat well and sleep more"}
	router := newHealthPlanRouter(model)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/HealthPlans", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An error occurred while generating the health plan"}`, w.Body.String())
}

func TestGeneratePlanUpstreamFailure(t *testing.T) {
	model := &stubTextModel{err: services.ErrUpstream}
	router := newHealthPlanRouter(model)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/HealthPlans", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
