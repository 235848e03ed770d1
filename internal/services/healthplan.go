package services

import (
	"encoding/json"
	"fmt"

	"healthcare-plus/internal/models"
)

const planPromptTemplate = `Generate a personalized health plan for a %d-year-old individual weighing %d kg and %d cm tall. Their activity level is %s, and they have the following dietary restrictions: %s. They also report the following sleep issues: %s. Provide a diet plan and sleep routine in the following JSON format:
{
  "dietPlan": [
    "Breakfast: ...",
    "Lunch: ...",
    "Dinner: ...",
    "Snacks: ..."
  ],
  "sleepRoutine": [
    "Bedtime routine: ...",
    "Recommended sleep duration: ...",
    "Sleep environment tips: ...",
    "Morning routine: ..."
  ]
}`

// BuildPlanPrompt renders the health-plan prompt, substituting defaults
// for any intake field the client left empty.
func BuildPlanPrompt(req models.HealthPlanRequest) string {
	age := req.Age
	if age <= 0 {
		age = 30
	}
	weight := req.Weight
	if weight <= 0 {
		weight = 70
	}
	height := req.Height
	if height <= 0 {
		height = 170
	}
	activity := req.ActivityLevel
	if activity == "" {
		activity = "moderate"
	}
	dietary := req.DietaryRestrictions
	if dietary == "" {
		dietary = "none"
	}
	sleep := req.SleepIssues
	if sleep == "" {
		sleep = "insomnia"
	}

	return fmt.Sprintf(planPromptTemplate, age, weight, height, activity, dietary, sleep)
}

// DecodePlan strips any code fence from the model output and parses it as
// JSON. Unlike diagnosis extraction, a parse failure here is loud: the
// caller gets ErrMalformedPlan rather than a defaulted record.
func DecodePlan(raw string) (map[string]interface{}, error) {
	var plan map[string]interface{}
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	return plan, nil
}
