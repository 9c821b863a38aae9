package model

// DashboardStats carries the per-role landing page counters. Fields not
// relevant to the requesting role are omitted from the JSON payload.
type DashboardStats struct {
	TotalPatients     *int64 `json:"total_patients,omitempty"`
	TotalStaff        *int64 `json:"total_staff,omitempty"`
	TodayAppointments *int64 `json:"today_appointments,omitempty"`
	ActiveAdmissions  *int64 `json:"active_admissions,omitempty"`
	PendingLabTests   *int64 `json:"pending_lab_tests,omitempty"`
	PendingDispense   *int64 `json:"pending_dispense,omitempty"`
	LowStockMedicines *int64 `json:"low_stock_medicines,omitempty"`
	ExpiringMedicines *int64 `json:"expiring_medicines,omitempty"`
	UnpaidBills       *int64 `json:"unpaid_bills,omitempty"`
	OccupiedBeds      *int64 `json:"occupied_beds,omitempty"`
	TotalBeds         *int64 `json:"total_beds,omitempty"`
}
