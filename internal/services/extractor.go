package services

import (
	"regexp"
	"strconv"
	"strings"

	"healthcare-plus/internal/models"
)

const defaultRecommendedActions = "Consult with a specialist for further evaluation."

var digitRun = regexp.MustCompile(`\d+`)

// ParseDiagnosis extracts the labeled fields from the model's free-text
// analysis. It scans lines for keyword-labeled patterns and is total: any
// field without a matching line resolves to its default, never an error.
func ParseDiagnosis(text string) models.DiagnosisResult {
	result := models.DiagnosisResult{
		PrimaryDiagnosis:   "Unspecified",
		ConfidenceLevel:    0,
		AdditionalFindings: []string{},
		RecommendedActions: defaultRecommendedActions,
		AIAnalysis:         text,
	}

	var diagnosisSeen, confidenceSet, findingsSeen, actionsSeen bool

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)

		if !diagnosisSeen && strings.Contains(lower, "diagnosis") {
			diagnosisSeen = true
			if value := afterColon(line); value != "" {
				result.PrimaryDiagnosis = value
			}
		}

		// Confidence is the one field allowed to fall through: a labeled
		// line without digits keeps scanning later labeled lines.
		if !confidenceSet && strings.Contains(lower, "confidence") {
			if match := digitRun.FindString(line); match != "" {
				if n, err := strconv.Atoi(match); err == nil {
					result.ConfidenceLevel = n
					confidenceSet = true
				}
			}
		}

		if !findingsSeen && strings.Contains(lower, "additional findings") {
			findingsSeen = true
			if value := afterColon(line); value != "" {
				result.AdditionalFindings = splitFindings(value)
			}
		}

		if !actionsSeen && strings.Contains(lower, "recommended actions") {
			actionsSeen = true
			if value := afterColon(line); value != "" {
				result.RecommendedActions = value
			}
		}
	}

	return result
}

// afterColon returns the trimmed segment after the first colon, or "" when
// the line has no colon.
func afterColon(line string) string {
	_, rest, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}

func splitFindings(value string) []string {
	parts := strings.Split(value, ",")
	findings := make([]string, 0, len(parts))
	for _, p := range parts {
		if item := strings.TrimSpace(p); item != "" {
			findings = append(findings, item)
		}
	}
	return findings
}

// StripCodeFence removes a surrounding markdown code fence (with an
// optional "json" tag) from the model's output. Text without a fence is
// returned verbatim, so the operation is idempotent.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
