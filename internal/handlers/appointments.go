package handlers

import (
	"errors"
	"net/http"

	"healthcare-plus/internal/models"
	"healthcare-plus/internal/storage"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler wraps the in-memory CRUD stub. No AI involvement and
// no server-side validation beyond JSON decoding.
type AppointmentHandler struct {
	store *storage.AppointmentStore
}

func NewAppointmentHandler(store *storage.AppointmentStore) *AppointmentHandler {
	return &AppointmentHandler{store: store}
}

func (h *AppointmentHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.List())
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var appt models.Appointment
	if err := c.ShouldBindJSON(&appt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment body"})
		return
	}
	c.JSON(http.StatusCreated, h.store.Create(appt))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	appt, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var appt models.Appointment
	if err := c.ShouldBindJSON(&appt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment body"})
		return
	}

	updated, err := h.store.Update(c.Param("id"), appt)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}

func (h *AppointmentHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrAppointmentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
}
