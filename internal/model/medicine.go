package model

import "time"

// Derived stock classification thresholds
const (
	LowStockThreshold  = 20
	ExpiringSoonWindow = 30 * 24 * time.Hour
)

// Medicine represents a pharmacy inventory item
type Medicine struct {
	Base
	Name          string     `json:"name" db:"name"`
	BatchNo       string     `json:"batch_no" db:"batch_no"`
	Quantity      int        `json:"quantity" db:"quantity"`
	ExpiryDate    *time.Time `json:"expiry_date" db:"expiry_date"`
	PurchasePrice float64    `json:"purchase_price" db:"purchase_price"`
	SellingPrice  float64    `json:"selling_price" db:"selling_price"`
}

// LowStock is a read-time classification, not a stored flag
func (m Medicine) LowStock() bool {
	return m.Quantity < LowStockThreshold
}

// ExpiringSoon reports whether the expiry date falls within the window of now
func (m Medicine) ExpiringSoon(now time.Time) bool {
	if m.ExpiryDate == nil {
		return false
	}
	return !m.ExpiryDate.After(now.Add(ExpiringSoonWindow))
}

// MedicineView annotates a medicine with its derived classifications
type MedicineView struct {
	Medicine
	LowStock     bool `json:"low_stock"`
	ExpiringSoon bool `json:"expiring_soon"`
}

// SaveMedicineRequest represents medicine create/update parameters
type SaveMedicineRequest struct {
	Name          string  `json:"name" binding:"required"`
	BatchNo       string  `json:"batch_no"`
	Quantity      int     `json:"quantity" binding:"min=0"`
	ExpiryDate    string  `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
	PurchasePrice float64 `json:"purchase_price" binding:"min=0"`
	SellingPrice  float64 `json:"selling_price" binding:"min=0"`
}

// MedicineFilter represents inventory listing parameters
type MedicineFilter struct {
	SearchTerm string `json:"search_term" form:"search"`
	Pagination
}
