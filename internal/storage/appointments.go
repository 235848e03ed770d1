package storage

import (
	"errors"
	"sync"
	"time"

	"healthcare-plus/internal/models"

	"github.com/google/uuid"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentStore is the in-memory CRUD stub behind /api/appointments.
// Nothing is persisted; the list lives for the life of the process.
type AppointmentStore struct {
	mu           sync.RWMutex
	appointments []models.Appointment
}

func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{}
}

func (s *AppointmentStore) Create(appt models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt.ID = uuid.NewString()
	appt.CreatedAt = time.Now().UTC()
	s.appointments = append(s.appointments, appt)
	return appt
}

func (s *AppointmentStore) List() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

func (s *AppointmentStore) Get(id string) (models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, appt := range s.appointments {
		if appt.ID == id {
			return appt, nil
		}
	}
	return models.Appointment{}, ErrAppointmentNotFound
}

// Update replaces the client-supplied fields of an existing appointment,
// keeping its id and creation timestamp.
func (s *AppointmentStore) Update(id string, appt models.Appointment) (models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appointments {
		if s.appointments[i].ID == id {
			appt.ID = id
			appt.CreatedAt = s.appointments[i].CreatedAt
			s.appointments[i] = appt
			return appt, nil
		}
	}
	return models.Appointment{}, ErrAppointmentNotFound
}

func (s *AppointmentStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appointments {
		if s.appointments[i].ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			return nil
		}
	}
	return ErrAppointmentNotFound
}
