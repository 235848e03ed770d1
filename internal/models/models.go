package models

import "time"

// DiagnosisResult is the structured record extracted from the model's
// free-text analysis. Every field has a default; extraction never fails.
type DiagnosisResult struct {
	PrimaryDiagnosis   string   `json:"primaryDiagnosis"`
	ConfidenceLevel    int      `json:"confidenceLevel"`
	AdditionalFindings []string `json:"additionalFindings"`
	RecommendedActions string   `json:"recommendedActions"`
	AIAnalysis         string   `json:"aiAnalysis"`
}

// HealthPlanRequest carries the intake fields for plan generation. All
// fields are optional; zero values are replaced with defaults before the
// prompt is built.
type HealthPlanRequest struct {
	Age                 int    `json:"age" form:"age"`
	Weight              int    `json:"weight" form:"weight"`
	Height              int    `json:"height" form:"height"`
	ActivityLevel       string `json:"activityLevel" form:"activityLevel"`
	DietaryRestrictions string `json:"dietaryRestrictions" form:"dietaryRestrictions"`
	SleepIssues         string `json:"sleepIssues" form:"sleepIssues"`
}

type HealthPlanResponse struct {
	Message    string                 `json:"message"`
	HealthPlan map[string]interface{} `json:"healthPlan"`
}

type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Appointment is the in-memory CRUD stub entity. Fields mirror what the
// scheduling form submits; the server does no validation of its own.
type Appointment struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Doctor          string    `json:"doctor"`
	AppointmentType string    `json:"appointmentType"`
	Reason          string    `json:"reason"`
	Symptoms        string    `json:"symptoms"`
	MedicalHistory  string    `json:"medicalHistory"`
	CreatedAt       time.Time `json:"createdAt"`
}
