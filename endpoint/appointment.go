package endpoint

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medibook/clinic-booking/middleware"
	"github.com/medibook/clinic-booking/model"
	"github.com/medibook/clinic-booking/store"
	"github.com/medibook/clinic-booking/upload"
	"github.com/medibook/clinic-booking/util"
)

// ensureDB fetches the injected database handle or responds with a server error.
func ensureDB(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return nil, false
	}
	return db, true
}

func parseAppointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid appointment ID",
			Err: err,
		})
		return 0, false
	}
	return uint(id), true
}

// CreateAppointment handles the booking form submission: multipart text
// fields plus an optional "report" attachment. The attachment is written
// before the row that references it; if the insert then fails the file is
// removed again so no orphan is left behind.
func CreateAppointment(sink *upload.Sink) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		email := c.PostForm("email")
		phone := c.PostForm("phone")
		symptoms := c.PostForm("symptoms")
		appointmentTime := c.PostForm("appointment_time")

		if name == "" || email == "" || phone == "" || symptoms == "" || appointmentTime == "" {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Appointment payload is empty or missing required fields",
				Err: fmt.Errorf("invalid payload"),
			})
			return
		}

		db, ok := ensureDB(c)
		if !ok {
			return
		}

		reportPath := ""
		if file, err := c.FormFile("report"); err == nil {
			reportPath, err = sink.Store(c, file)
			if err != nil {
				util.CallServerError(c, util.APIErrorParams{
					Msg: "Failed to store medical report",
					Err: err,
				})
				return
			}
		}

		appt := model.Appointment{
			Name:            name,
			Email:           email,
			Phone:           phone,
			Symptoms:        symptoms,
			AppointmentTime: appointmentTime,
			ReportPath:      reportPath,
		}
		if err := store.NewAppointmentStore(db).Create(&appt); err != nil {
			// The attachment landed but the row did not; clean it up.
			if rmErr := sink.Remove(reportPath); rmErr != nil {
				fmt.Printf("orphan report cleanup failed: %v\n", rmErr)
			}
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Failed to create appointment",
				Err: err,
			})
			return
		}

		c.HTML(http.StatusOK, "confirmation.html", gin.H{
			"name": appt.Name,
		})
	}
}

// ListAppointmentsPage renders the editable HTML table of all appointments.
func ListAppointmentsPage(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	appts, err := store.NewAppointmentStore(db).List()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error retrieving appointments.")
		return
	}

	c.HTML(http.StatusOK, "appointments.html", gin.H{
		"appointments": appts,
	})
}

// ListAppointments returns all appointments as JSON, newest appointment
// time first.
func ListAppointments(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	appts, err := store.NewAppointmentStore(db).List()
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve appointments",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments retrieved",
		Data: map[string]interface{}{"total": len(appts), "appointments": appts},
	})
}

type updateFieldRequest struct {
	Field string `json:"field" example:"name"`
	Value string `json:"value" example:"Jane Doe"`
}

// UpdateAppointmentField overwrites one column of one row. The field name is
// checked against the closed column set; anything else is rejected before a
// statement is built.
func UpdateAppointmentField(c *gin.Context) {
	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	req := updateFieldRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	db, ok := ensureDB(c)
	if !ok {
		return
	}

	err := store.NewAppointmentStore(db).UpdateField(id, req.Field, req.Value)
	switch {
	case errors.Is(err, store.ErrFieldNotAllowed):
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Field cannot be updated",
			Err: err,
		})
	case errors.Is(err, store.ErrNotFound):
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Appointment not found",
			Err: err,
		})
	case err != nil:
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update appointment",
			Err: err,
		})
	default:
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg: "Appointment updated",
		})
	}
}

// DeleteAppointment removes a row. Deleting an id that is already gone is
// treated as success.
func DeleteAppointment(c *gin.Context) {
	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	db, ok := ensureDB(c)
	if !ok {
		return
	}

	if err := store.NewAppointmentStore(db).Delete(id); err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete appointment",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Appointment deleted",
	})
}
