package handlers

import (
	"errors"
	"net/http"

	"healthcare-plus/internal/logger"
	"healthcare-plus/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const diagnosisFailureMessage = "An error occurred while processing the diagnosis"

type DiagnosisHandler struct {
	intake *services.FileIntake
	ai     services.ImageAnalyzer
}

func NewDiagnosisHandler(intake *services.FileIntake, ai services.ImageAnalyzer) *DiagnosisHandler {
	return &DiagnosisHandler{intake: intake, ai: ai}
}

// XrayDiagnosis accepts an "image" and/or "file" multipart part. A PDF
// under "file" is rasterized (first page) and takes precedence over the
// image part.
func (h *DiagnosisHandler) XrayDiagnosis(c *gin.Context) {
	var stored []string
	defer func() { h.intake.Remove(stored...) }()

	imageFH, _ := c.FormFile("image")
	docFH, _ := c.FormFile("file")
	if imageFH == nil && docFH == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	var imagePath, docPath string
	var err error
	if imageFH != nil {
		if imagePath, err = h.intake.SaveUpload(imageFH); err != nil {
			h.fail(c, err)
			return
		}
		stored = append(stored, imagePath)
	}
	if docFH != nil {
		if docPath, err = h.intake.SaveUpload(docFH); err != nil {
			h.fail(c, err)
			return
		}
		stored = append(stored, docPath)
	}

	effective, extra, err := h.intake.Resolve(imagePath, docPath)
	stored = append(stored, extra...)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.analyze(c, effective)
}

// AnalyzeImage accepts a single "file" part, either a raster image or a
// PDF, and returns the same diagnosis record shape as XrayDiagnosis.
func (h *DiagnosisHandler) AnalyzeImage(c *gin.Context) {
	var stored []string
	defer func() { h.intake.Remove(stored...) }()

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	docPath, err := h.intake.SaveUpload(fh)
	if err != nil {
		h.fail(c, err)
		return
	}
	stored = append(stored, docPath)

	effective, extra, err := h.intake.Resolve("", docPath)
	stored = append(stored, extra...)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.analyze(c, effective)
}

func (h *DiagnosisHandler) analyze(c *gin.Context, imagePath string) {
	dataURI, err := h.intake.EncodeDataURI(imagePath)
	if err != nil {
		h.fail(c, err)
		return
	}

	analysis, err := h.ai.AnalyzeImage(c.Request.Context(), dataURI)
	if err != nil {
		h.fail(c, err)
		return
	}

	result := services.ParseDiagnosis(analysis)
	logger.WithFields(logrus.Fields{
		"primaryDiagnosis": result.PrimaryDiagnosis,
		"confidenceLevel":  result.ConfidenceLevel,
	}).Info("Diagnosis completed")

	c.JSON(http.StatusOK, result)
}

func (h *DiagnosisHandler) fail(c *gin.Context, err error) {
	logger.WithError(err).Error("Diagnosis request failed")
	switch {
	case errors.Is(err, services.ErrNoFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
	case errors.Is(err, services.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid image or PDF file provided"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": diagnosisFailureMessage})
	}
}
