package model

import "time"

// Admission status constants. The only transition is admitted -> discharged.
const (
	AdmissionStatusAdmitted   = "admitted"
	AdmissionStatusDischarged = "discharged"
)

// Admission represents a patient's stay in a ward bed
type Admission struct {
	Base
	PatientID     int64      `json:"patient_id" db:"patient_id"`
	DoctorID      int64      `json:"doctor_id" db:"doctor_id"`
	WardID        int64      `json:"ward_id" db:"ward_id"`
	BedNumber     string     `json:"bed_number" db:"bed_number"`
	AdmissionDate time.Time  `json:"admission_date" db:"admission_date"`
	DischargeDate *time.Time `json:"discharge_date" db:"discharge_date"`
	Diagnosis     string     `json:"diagnosis" db:"diagnosis"`
	Notes         string     `json:"notes" db:"notes"`
	Status        string     `json:"status" db:"status"`
}

// AdmissionDetail joins the names shown on admission listings
type AdmissionDetail struct {
	Admission
	PatientName string `json:"patient_name" db:"patient_name"`
	PatientCode string `json:"patient_code" db:"patient_code"`
	WardName    string `json:"ward_name" db:"ward_name"`
	DoctorName  string `json:"doctor_name" db:"doctor_name"`
}

// CreateAdmissionRequest represents admission parameters
type CreateAdmissionRequest struct {
	PatientID int64  `json:"patient_id" binding:"required"`
	DoctorID  int64  `json:"doctor_id" binding:"required"`
	WardID    int64  `json:"ward_id" binding:"required"`
	BedNumber string `json:"bed_number" binding:"required"`
	Diagnosis string `json:"diagnosis"`
	Notes     string `json:"notes"`
}

// UpdateAdmissionRequest updates assignment fields only; status and the
// admission/discharge dates are owned by the state machine.
type UpdateAdmissionRequest struct {
	DoctorID  *int64  `json:"doctor_id"`
	WardID    *int64  `json:"ward_id"`
	BedNumber *string `json:"bed_number"`
	Diagnosis *string `json:"diagnosis"`
	Notes     *string `json:"notes"`
}

// AdmissionFilter represents admission listing parameters
type AdmissionFilter struct {
	Status string `json:"status" form:"status"`
	WardID int64  `json:"ward_id" form:"ward_id"`
	Pagination
}
