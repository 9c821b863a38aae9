package model

import "time"

// Appointment status constants
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment represents a scheduled doctor visit
type Appointment struct {
	Base
	PatientID       int64     `json:"patient_id" db:"patient_id"`
	DoctorID        int64     `json:"doctor_id" db:"doctor_id"`
	AppointmentDate time.Time `json:"appointment_date" db:"appointment_date"`
	AppointmentTime string    `json:"appointment_time" db:"appointment_time"`
	Department      string    `json:"department" db:"department"`
	Status          string    `json:"status" db:"status"`
}

// AppointmentDetail joins the names shown on appointment listings
type AppointmentDetail struct {
	Appointment
	PatientName string `json:"patient_name" db:"patient_name"`
	PatientCode string `json:"patient_code" db:"patient_code"`
	DoctorName  string `json:"doctor_name" db:"doctor_name"`
}

// CreateAppointmentRequest represents booking parameters
type CreateAppointmentRequest struct {
	PatientID       int64  `json:"patient_id" binding:"required"`
	DoctorID        int64  `json:"doctor_id" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
	Department      string `json:"department"`
}

// UpdateAppointmentRequest represents reschedule parameters. The past-date
// rule applies on create only.
type UpdateAppointmentRequest struct {
	PatientID       *int64  `json:"patient_id"`
	DoctorID        *int64  `json:"doctor_id"`
	AppointmentDate *string `json:"appointment_date" binding:"omitempty,datetime=2006-01-02"`
	AppointmentTime *string `json:"appointment_time"`
	Department      *string `json:"department"`
}

// AppointmentFilter represents appointment listing parameters
type AppointmentFilter struct {
	Status   string `json:"status" form:"status"`
	DoctorID int64  `json:"doctor_id" form:"doctor_id"`
	Date     string `json:"date" form:"date"`
	Pagination
}
