package model

// Patient represents a registered patient
type Patient struct {
	Base
	PatientCode      string `json:"patient_code" db:"patient_code"`
	Name             string `json:"name" db:"name"`
	Age              int    `json:"age" db:"age"`
	Gender           string `json:"gender" db:"gender"`
	BloodGroup       string `json:"blood_group" db:"blood_group"`
	Phone            string `json:"phone" db:"phone"`
	Address          string `json:"address" db:"address"`
	EmergencyContact string `json:"emergency_contact" db:"emergency_contact"`
	MedicalHistory   string `json:"medical_history" db:"medical_history"`
}

// CreatePatientRequest represents patient registration parameters
type CreatePatientRequest struct {
	Name             string `json:"name" binding:"required"`
	Age              int    `json:"age" binding:"min=0,max=150"`
	Gender           string `json:"gender" binding:"required,oneof=male female other"`
	BloodGroup       string `json:"blood_group" binding:"omitempty,bloodgroup"`
	Phone            string `json:"phone" binding:"required,phone"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact" binding:"omitempty,phone"`
	MedicalHistory   string `json:"medical_history"`
}

// UpdatePatientRequest represents patient update parameters
type UpdatePatientRequest struct {
	Name             *string `json:"name"`
	Age              *int    `json:"age" binding:"omitempty,min=0,max=150"`
	Gender           *string `json:"gender" binding:"omitempty,oneof=male female other"`
	BloodGroup       *string `json:"blood_group" binding:"omitempty,bloodgroup"`
	Phone            *string `json:"phone" binding:"omitempty,phone"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergency_contact" binding:"omitempty,phone"`
	MedicalHistory   *string `json:"medical_history"`
}

// PatientFilter represents patient search parameters
type PatientFilter struct {
	SearchTerm string `json:"search_term" form:"search"`
	Pagination
}

// PatientSummary aggregates a patient's recent activity for the detail view
type PatientSummary struct {
	Patient       *Patient        `json:"patient"`
	Appointments  []*Appointment  `json:"appointments"`
	Admissions    []*Admission    `json:"admissions"`
	Prescriptions []*Prescription `json:"prescriptions"`
	LabTests      []*LabTest      `json:"lab_tests"`
}
