package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/medibook/clinic-booking/model"
	"github.com/medibook/clinic-booking/util"
)

var (
	// ErrStorage wraps any read/write failure of the backing database.
	ErrStorage = errors.New("storage failure")
	// ErrNotFound is returned when a field update targets a row that does not exist.
	ErrNotFound = errors.New("appointment not found")
	// ErrFieldNotAllowed is returned when a field update names a column outside
	// model.UpdatableColumns.
	ErrFieldNotAllowed = errors.New("field not allowed")
)

// AppointmentStore owns the appointments table and its CRUD operations.
// Construct it once at startup and share it; it adds no locking of its own,
// single-statement durability comes from SQLite.
type AppointmentStore struct {
	*gorm.DB
}

func NewAppointmentStore(db *gorm.DB) *AppointmentStore {
	return &AppointmentStore{DB: db}
}

// AutoMigrate idempotently ensures the appointments table exists.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Appointment{})
}

// Create inserts a new appointment row and fills in its assigned ID.
func (s *AppointmentStore) Create(appt *model.Appointment) error {
	if err := s.DB.Create(appt).Error; err != nil {
		return fmt.Errorf("%w: create appointment: %v", ErrStorage, err)
	}
	return nil
}

// List returns every appointment ordered by appointment_time descending.
// appointment_time is free text, so this is plain string comparison:
// "2024-1-5" sorts after "2024-10-2". Known limitation, kept on purpose.
func (s *AppointmentStore) List() ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := s.DB.Order("appointment_time DESC").Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("%w: list appointments: %v", ErrStorage, err)
	}
	return appts, nil
}

// Get fetches a single appointment by ID.
func (s *AppointmentStore) Get(id uint) (model.Appointment, error) {
	var appt model.Appointment
	err := s.DB.First(&appt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Appointment{}, ErrNotFound
	}
	if err != nil {
		return model.Appointment{}, fmt.Errorf("%w: get appointment %d: %v", ErrStorage, id, err)
	}
	return appt, nil
}

// UpdateField overwrites exactly one column of exactly one row. The column
// name must come from model.UpdatableColumns and is handed to GORM as a
// column reference, never interpolated into SQL text. Updating a missing row
// reports ErrNotFound rather than silently succeeding.
func (s *AppointmentStore) UpdateField(id uint, column, value string) error {
	if !util.Contains(column, model.UpdatableColumns) {
		return fmt.Errorf("%w: %q", ErrFieldNotAllowed, column)
	}

	res := s.DB.Model(&model.Appointment{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("%w: update %s on appointment %d: %v", ErrStorage, column, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the appointment with the given ID. Deleting a row that is
// already gone is not an error.
func (s *AppointmentStore) Delete(id uint) error {
	if err := s.DB.Delete(&model.Appointment{}, id).Error; err != nil {
		return fmt.Errorf("%w: delete appointment %d: %v", ErrStorage, id, err)
	}
	return nil
}
