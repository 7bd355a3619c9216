package model

import "time"

// Appointment is a single booking submitted through the web form.
// Rows are hard-deleted, so the entity carries its own primary key
// instead of gorm.Model (whose DeletedAt would turn deletes soft).
type Appointment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Symptoms        string    `json:"symptoms"`
	AppointmentTime string    `json:"appointment_time" gorm:"column:appointment_time"`
	ReportPath      string    `json:"report_path"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UpdatableColumns is the closed set of columns a field-level update may
// touch. Anything else, id and the timestamps included, is rejected before
// a statement is ever built.
var UpdatableColumns = []string{
	"name",
	"email",
	"phone",
	"symptoms",
	"appointment_time",
	"report_path",
}
