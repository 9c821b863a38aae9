package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWardOccupancy(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		occupied    int
		wantPercent int
		wantBand    string
	}{
		{"empty ward", 10, 0, 0, "success"},
		{"half full", 10, 5, 50, "success"},
		{"just over half", 10, 6, 60, "warning"},
		{"exactly eighty", 10, 8, 80, "warning"},
		{"over eighty", 10, 9, 90, "danger"},
		{"full", 10, 10, 100, "danger"},
		{"rounding up", 3, 2, 67, "warning"},
		{"zero beds", 0, 0, 0, "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WardOccupancy{
				Ward:         Ward{TotalBeds: tt.total},
				OccupiedBeds: tt.occupied,
			}
			assert.Equal(t, tt.wantPercent, w.OccupancyPercent())
			assert.Equal(t, tt.wantBand, w.OccupancyBand())
			assert.Equal(t, tt.total-tt.occupied, w.AvailableBeds())
		})
	}
}

func TestDashboardRoute(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", DashboardRoute(RoleAdmin))
	assert.Equal(t, "/reception/dashboard", DashboardRoute(RoleReceptionist))
	assert.Equal(t, "/pharmacy/dashboard", DashboardRoute(RolePharmacist))

	// Unknown roles land on the login page rather than panicking
	assert.Equal(t, LoginRoute, DashboardRoute(Role("janitor")))
	assert.Equal(t, LoginRoute, DashboardRoute(Role("")))
}

func TestLabStatusTransitions(t *testing.T) {
	assert.False(t, LabStatusRegresses(LabStatusRequested, LabStatusInProgress))
	assert.False(t, LabStatusRegresses(LabStatusInProgress, LabStatusCompleted))
	assert.False(t, LabStatusRegresses(LabStatusRequested, LabStatusCompleted))
	assert.False(t, LabStatusRegresses(LabStatusCompleted, LabStatusCompleted))

	assert.True(t, LabStatusRegresses(LabStatusCompleted, LabStatusInProgress))
	assert.True(t, LabStatusRegresses(LabStatusInProgress, LabStatusRequested))
	assert.True(t, LabStatusRegresses(LabStatusCompleted, LabStatusRequested))

	assert.True(t, ValidLabStatus(LabStatusRequested))
	assert.False(t, ValidLabStatus("cancelled"))
}

func TestPaginationNormalize(t *testing.T) {
	p := Pagination{}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = Pagination{Page: 3, PageSize: 10}
	p.Normalize()
	assert.Equal(t, 20, p.Offset())

	p = Pagination{Page: -1, PageSize: 10000}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
}
