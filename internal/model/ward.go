package model

// Ward represents a hospital ward with a fixed bed count
type Ward struct {
	Base
	WardName  string `json:"ward_name" db:"ward_name"`
	TotalBeds int    `json:"total_beds" db:"total_beds"`
}

// WardOccupancy is the read-time occupancy view of a ward
type WardOccupancy struct {
	Ward
	OccupiedBeds int `json:"occupied_beds" db:"occupied_beds"`
}

// AvailableBeds returns the number of free beds
func (w WardOccupancy) AvailableBeds() int {
	return w.TotalBeds - w.OccupiedBeds
}

// OccupancyPercent returns occupied/total rounded to the nearest integer
func (w WardOccupancy) OccupancyPercent() int {
	if w.TotalBeds <= 0 {
		return 0
	}
	return int(float64(w.OccupiedBeds)/float64(w.TotalBeds)*100 + 0.5)
}

// OccupancyBand maps the percentage to a display severity band
func (w WardOccupancy) OccupancyBand() string {
	percent := w.OccupancyPercent()
	switch {
	case percent > 80:
		return "danger"
	case percent > 50:
		return "warning"
	default:
		return "success"
	}
}

// SaveWardRequest represents ward create/update parameters
type SaveWardRequest struct {
	WardName  string `json:"ward_name" binding:"required"`
	TotalBeds int    `json:"total_beds" binding:"required,min=1"`
}
