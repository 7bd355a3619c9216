package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/medibook/clinic-booking/middleware"
	"github.com/medibook/clinic-booking/store"
	"github.com/medibook/clinic-booking/upload"
)

// setupEndpointTestDB opens a uniquely named in-memory SQLite database with
// the appointments table migrated.
func setupEndpointTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:endpointdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test DB: %v", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

// setupEndpointTest wires a test router with all appointment routes, backed
// by an in-memory database and a temp-dir upload sink.
func setupEndpointTest(t *testing.T) (*gin.Engine, *store.AppointmentStore, *upload.Sink) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupEndpointTestDB(t)
	sink := upload.NewSink(filepath.Join(t.TempDir(), "uploads"))

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	r.LoadHTMLGlob("../templates/*")

	r.POST("/appointment", CreateAppointment(sink))
	r.GET("/appointments", ListAppointmentsPage)
	r.PUT("/appointments/:id", UpdateAppointmentField)
	r.DELETE("/appointments/:id", DeleteAppointment)
	r.GET("/api/appointments", ListAppointments)

	return r, store.NewAppointmentStore(db), sink
}

// bookingForm is the set of multipart text fields a booking submission carries.
type bookingForm struct {
	Name            string
	Email           string
	Phone           string
	Symptoms        string
	AppointmentTime string
}

func validBookingForm() bookingForm {
	return bookingForm{
		Name:            "A",
		Email:           "a@x.com",
		Phone:           "1",
		Symptoms:        "cough",
		AppointmentTime: "2024-05-01",
	}
}

// multipartBooking builds a multipart/form-data request for the booking
// route; report may be nil for a submission without an attachment.
func multipartBooking(t *testing.T, form bookingForm, reportName string, report []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fields := map[string]string{
		"name":             form.Name,
		"email":            form.Email,
		"phone":            form.Phone,
		"symptoms":         form.Symptoms,
		"appointment_time": form.AppointmentTime,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write form field %s: %v", key, err)
		}
	}
	if report != nil {
		part, err := writer.CreateFormFile("report", reportName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(report); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/appointment", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return response
}
