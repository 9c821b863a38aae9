package model

// Bill status constants
const (
	BillStatusUnpaid = "unpaid"
	BillStatusPaid   = "paid"
)

// DefaultTaxRate applies when a save request names no tax rate
const DefaultTaxRate = 5.0

// Bill represents an invoice; TotalAmount is the item subtotal and
// TaxAmount the tax computed at save time. The tax rate itself is not
// persisted.
type Bill struct {
	Base
	PatientID   int64       `json:"patient_id" db:"patient_id"`
	AdmissionID *int64      `json:"admission_id" db:"admission_id"`
	TotalAmount float64     `json:"total_amount" db:"total_amount"`
	TaxAmount   float64     `json:"tax_amount" db:"tax_amount"`
	Status      string      `json:"status" db:"status"`
	Items       []*BillItem `json:"items,omitempty" db:"-"`
}

// GrandTotal is the displayed payable amount
func (b Bill) GrandTotal() float64 {
	return b.TotalAmount + b.TaxAmount
}

// BillItem is a single charge line on a bill
type BillItem struct {
	ID          int64   `json:"id" db:"id"`
	BillID      int64   `json:"bill_id" db:"bill_id"`
	Description string  `json:"description" db:"description"`
	Amount      float64 `json:"amount" db:"amount"`
}

// BillDetail joins the patient shown on bill listings and the invoice view
type BillDetail struct {
	Bill
	PatientName string `json:"patient_name" db:"patient_name"`
	PatientCode string `json:"patient_code" db:"patient_code"`
}

// BillItemInput is one charge line on the bill form. Lines with an empty
// description are skipped at save time.
type BillItemInput struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// SaveBillRequest creates or replaces a bill and its items atomically.
// TaxRate is a save-time input, defaulted when nil.
type SaveBillRequest struct {
	PatientID   int64           `json:"patient_id" binding:"required"`
	AdmissionID *int64          `json:"admission_id"`
	TaxRate     *float64        `json:"tax_rate" binding:"omitempty,min=0"`
	Items       []BillItemInput `json:"items" binding:"required,min=1"`
}

// UpdateBillStatusRequest toggles paid/unpaid
type UpdateBillStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=paid unpaid"`
}

// BillFilter represents bill listing parameters
type BillFilter struct {
	Status    string `json:"status" form:"status"`
	PatientID int64  `json:"patient_id" form:"patient_id"`
	Pagination
}
