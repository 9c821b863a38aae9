package model

import "time"

// Prescription status constants
const (
	PrescriptionStatusPending   = "pending"
	PrescriptionStatusDispensed = "dispensed"
)

// Prescription represents a doctor's prescription with its items
type Prescription struct {
	Base
	PatientID int64               `json:"patient_id" db:"patient_id"`
	DoctorID  int64               `json:"doctor_id" db:"doctor_id"`
	VisitDate time.Time           `json:"visit_date" db:"visit_date"`
	Symptoms  string              `json:"symptoms" db:"symptoms"`
	Diagnosis string              `json:"diagnosis" db:"diagnosis"`
	Advice    string              `json:"advice" db:"advice"`
	Status    string              `json:"status" db:"status"`
	Items     []*PrescriptionItem `json:"items,omitempty" db:"-"`
}

// PrescriptionItem is a single prescribed medicine line
type PrescriptionItem struct {
	ID             int64  `json:"id" db:"id"`
	PrescriptionID int64  `json:"prescription_id" db:"prescription_id"`
	MedicineName   string `json:"medicine_name" db:"medicine_name"`
	Dosage         string `json:"dosage" db:"dosage"`
	Frequency      string `json:"frequency" db:"frequency"`
	Duration       string `json:"duration" db:"duration"`
}

// PrescriptionDetail joins the names shown on prescription listings
type PrescriptionDetail struct {
	Prescription
	PatientName string `json:"patient_name" db:"patient_name"`
	PatientCode string `json:"patient_code" db:"patient_code"`
	DoctorName  string `json:"doctor_name" db:"doctor_name"`
}

// PrescriptionItemInput is one medicine line on the create form
type PrescriptionItemInput struct {
	MedicineName string `json:"medicine_name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
}

// CreatePrescriptionRequest creates a prescription and its items atomically
type CreatePrescriptionRequest struct {
	PatientID int64                   `json:"patient_id" binding:"required"`
	Symptoms  string                  `json:"symptoms"`
	Diagnosis string                  `json:"diagnosis" binding:"required"`
	Advice    string                  `json:"advice"`
	Items     []PrescriptionItemInput `json:"items"`
}

// PrescriptionFilter represents prescription listing parameters
type PrescriptionFilter struct {
	Status   string `json:"status" form:"status"`
	DoctorID int64  `json:"doctor_id" form:"doctor_id"`
	Pagination
}
