package handlers

import (
	"net/http"

	"healthcare-plus/internal/logger"
	"healthcare-plus/internal/models"
	"healthcare-plus/internal/services"

	"github.com/gin-gonic/gin"
)

const healthPlanFailureMessage = "An error occurred while generating the health plan"

type HealthPlanHandler struct {
	ai services.TextGenerator
}

func NewHealthPlanHandler(ai services.TextGenerator) *HealthPlanHandler {
	return &HealthPlanHandler{ai: ai}
}

// GeneratePlan handles the JSON body variant of /api/HealthPlans.
func (h *HealthPlanHandler) GeneratePlan(c *gin.Context) {
	var req models.HealthPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A missing or unreadable body falls back to the intake defaults.
		req = models.HealthPlanRequest{}
	}
	h.generate(c, req)
}

// GeneratePlanQuery handles the query-parameter variant of the endpoint.
func (h *HealthPlanHandler) GeneratePlanQuery(c *gin.Context) {
	var req models.HealthPlanRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		req = models.HealthPlanRequest{}
	}
	h.generate(c, req)
}

func (h *HealthPlanHandler) generate(c *gin.Context, req models.HealthPlanRequest) {
	prompt := services.BuildPlanPrompt(req)

	completion, err := h.ai.CreateCompletion(c.Request.Context(), prompt)
	if err != nil {
		logger.WithError(err).Error("Health plan completion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": healthPlanFailureMessage})
		return
	}

	plan, err := services.DecodePlan(completion)
	if err != nil {
		logger.WithError(err).Error("Health plan response was not valid JSON")
		c.JSON(http.StatusInternalServerError, gin.H{"error": healthPlanFailureMessage})
		return
	}

	c.JSON(http.StatusOK, models.HealthPlanResponse{
		Message:    "Health plan generated successfully",
		HealthPlan: plan,
	})
}
