package model

import "time"

// Lab test status constants. Transitions are forward-only:
// requested -> in-progress -> completed.
const (
	LabStatusRequested  = "requested"
	LabStatusInProgress = "in-progress"
	LabStatusCompleted  = "completed"
)

var labStatusRank = map[string]int{
	LabStatusRequested:  0,
	LabStatusInProgress: 1,
	LabStatusCompleted:  2,
}

// ValidLabStatus reports whether s is a known lab test status
func ValidLabStatus(s string) bool {
	_, ok := labStatusRank[s]
	return ok
}

// LabStatusRegresses reports whether moving from current to next would
// walk the lifecycle backwards.
func LabStatusRegresses(current, next string) bool {
	return labStatusRank[next] < labStatusRank[current]
}

// LabTest represents a requested lab test and its result lifecycle
type LabTest struct {
	Base
	PatientID     int64      `json:"patient_id" db:"patient_id"`
	DoctorID      int64      `json:"doctor_id" db:"doctor_id"`
	TestName      string     `json:"test_name" db:"test_name"`
	RequestedDate time.Time  `json:"requested_date" db:"requested_date"`
	Status        string     `json:"status" db:"status"`
	Result        string     `json:"result" db:"result"`
	ReportFile    string     `json:"report_file" db:"report_file"`
	ResultDate    *time.Time `json:"result_date" db:"result_date"`
}

// LabTestDetail joins the names shown on lab test listings
type LabTestDetail struct {
	LabTest
	PatientName string `json:"patient_name" db:"patient_name"`
	PatientCode string `json:"patient_code" db:"patient_code"`
	DoctorName  string `json:"doctor_name" db:"doctor_name"`
}

// CreateLabTestRequest represents a doctor's test request
type CreateLabTestRequest struct {
	PatientID int64  `json:"patient_id" binding:"required"`
	TestName  string `json:"test_name" binding:"required"`
}

// UpdateLabResultRequest carries the lab technician's result update.
// The report file travels separately as a multipart upload.
type UpdateLabResultRequest struct {
	Status string `form:"status" binding:"required"`
	Result string `form:"result"`
}

// LabTestFilter represents lab test listing parameters
type LabTestFilter struct {
	Status   string `json:"status" form:"status"`
	DoctorID int64  `json:"doctor_id" form:"doctor_id"`
	Pagination
}
