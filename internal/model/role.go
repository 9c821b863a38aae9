package model

// Role gates page access. The set is fixed at compile time.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
	RoleLab          Role = "lab"
	RolePharmacist   Role = "pharmacist"
)

// Roles lists every valid staff role
var Roles = []Role{
	RoleAdmin,
	RoleDoctor,
	RoleNurse,
	RoleReceptionist,
	RoleLab,
	RolePharmacist,
}

// Valid reports whether r is a known staff role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist, RoleLab, RolePharmacist:
		return true
	}
	return false
}

// DisplayName returns the human-readable role name
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleDoctor:
		return "Doctor"
	case RoleNurse:
		return "Nurse"
	case RoleReceptionist:
		return "Receptionist"
	case RoleLab:
		return "Lab Technician"
	case RolePharmacist:
		return "Pharmacist"
	}
	return string(r)
}

// Client-side landing routes
const (
	LoginRoute        = "/login"
	AccessDeniedRoute = "/access-denied"
)

var dashboardRoutes = map[Role]string{
	RoleAdmin:        "/admin/dashboard",
	RoleDoctor:       "/doctor/dashboard",
	RoleNurse:        "/nurse/dashboard",
	RoleReceptionist: "/reception/dashboard",
	RoleLab:          "/lab/dashboard",
	RolePharmacist:   "/pharmacy/dashboard",
}

// DashboardRoute maps a role to its default landing route. Unmapped
// roles fall back to the login route.
func DashboardRoute(r Role) string {
	if route, ok := dashboardRoutes[r]; ok {
		return route
	}
	return LoginRoute
}
