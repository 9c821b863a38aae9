package repository

import (
	"context"
	"time"

	"github.com/medicore/hospital-api/internal/model"
)

// All repository interfaces in one file
type (
	// UserRepository handles staff account rows
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filter *model.UserFilter) ([]*model.User, error)
		ListByRole(ctx context.Context, role model.Role) ([]*model.User, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filter *model.PatientFilter) ([]*model.Patient, error)
		CountCreatedInYear(ctx context.Context, year int) (int64, error)
		HasDependents(ctx context.Context, id int64) (bool, error)
	}

	WardRepository interface {
		Create(ctx context.Context, ward *model.Ward) error
		Get(ctx context.Context, id int64) (*model.Ward, error)
		Update(ctx context.Context, ward *model.Ward) error
		Delete(ctx context.Context, id int64) error
		ListWithOccupancy(ctx context.Context) ([]*model.WardOccupancy, error)
		OccupiedBeds(ctx context.Context, wardID int64) (int, error)
	}

	AdmissionRepository interface {
		Create(ctx context.Context, admission *model.Admission) error
		Get(ctx context.Context, id int64) (*model.Admission, error)
		Update(ctx context.Context, admission *model.Admission) error
		UpdateNotes(ctx context.Context, id int64, notes string) error
		// Discharge stamps the discharge date iff the row is still admitted;
		// returns the number of rows transitioned.
		Discharge(ctx context.Context, id int64, dischargedAt time.Time) (int64, error)
		List(ctx context.Context, filter *model.AdmissionFilter) ([]*model.AdmissionDetail, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Admission, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.AppointmentDetail, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error)
	}

	PrescriptionRepository interface {
		// CreateWithItems writes the prescription and its items in one transaction
		CreateWithItems(ctx context.Context, prescription *model.Prescription, items []*model.PrescriptionItem) error
		Get(ctx context.Context, id int64) (*model.Prescription, error)
		GetItems(ctx context.Context, prescriptionID int64) ([]*model.PrescriptionItem, error)
		// Dispense marks the row dispensed iff it is still pending; returns
		// the number of rows transitioned.
		Dispense(ctx context.Context, id int64) (int64, error)
		List(ctx context.Context, filter *model.PrescriptionFilter) ([]*model.PrescriptionDetail, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error)
	}

	LabTestRepository interface {
		Create(ctx context.Context, test *model.LabTest) error
		Get(ctx context.Context, id int64) (*model.LabTest, error)
		UpdateResult(ctx context.Context, test *model.LabTest) error
		List(ctx context.Context, filter *model.LabTestFilter) ([]*model.LabTestDetail, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.LabTest, error)
	}

	MedicineRepository interface {
		Create(ctx context.Context, medicine *model.Medicine) error
		Get(ctx context.Context, id int64) (*model.Medicine, error)
		Update(ctx context.Context, medicine *model.Medicine) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filter *model.MedicineFilter) ([]*model.Medicine, error)
	}

	BillRepository interface {
		// CreateWithItems writes the bill and its items in one transaction
		CreateWithItems(ctx context.Context, bill *model.Bill, items []*model.BillItem) error
		// ReplaceWithItems updates the bill and swaps its full item set in
		// one transaction (delete-all-then-reinsert)
		ReplaceWithItems(ctx context.Context, bill *model.Bill, items []*model.BillItem) error
		Get(ctx context.Context, id int64) (*model.Bill, error)
		GetItems(ctx context.Context, billID int64) ([]*model.BillItem, error)
		UpdateStatus(ctx context.Context, id int64, status string) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filter *model.BillFilter) ([]*model.BillDetail, error)
	}

	StatsRepository interface {
		CountPatients(ctx context.Context) (int64, error)
		CountUsers(ctx context.Context) (int64, error)
		CountAppointmentsOn(ctx context.Context, date time.Time, doctorID int64) (int64, error)
		CountActiveAdmissions(ctx context.Context) (int64, error)
		CountLabTestsByStatus(ctx context.Context, status string, doctorID int64) (int64, error)
		CountPrescriptionsByStatus(ctx context.Context, status string) (int64, error)
		CountLowStockMedicines(ctx context.Context) (int64, error)
		CountExpiringMedicines(ctx context.Context, within time.Duration) (int64, error)
		CountBillsByStatus(ctx context.Context, status string) (int64, error)
		BedTotals(ctx context.Context) (occupied, total int64, err error)
	}
)
