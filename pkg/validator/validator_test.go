package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patientForm struct {
	Phone      string `validate:"required,phone"`
	BloodGroup string `validate:"omitempty,bloodgroup"`
	Role       string `validate:"omitempty,staffrole"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, v.RegisterValidation("phone", Phone))
	require.NoError(t, v.RegisterValidation("bloodgroup", BloodGroup))
	require.NoError(t, v.RegisterValidation("staffrole", StaffRole))
	return v
}

func TestPhoneValidation(t *testing.T) {
	v := newValidate(t)

	assert.NoError(t, v.Struct(patientForm{Phone: "9876543210"}))
	assert.NoError(t, v.Struct(patientForm{Phone: "919876543210"}))

	assert.Error(t, v.Struct(patientForm{Phone: "12345"}))
	assert.Error(t, v.Struct(patientForm{Phone: "98765-43210"}))
	assert.Error(t, v.Struct(patientForm{Phone: "+919876543210"}))
}

func TestBloodGroupValidation(t *testing.T) {
	v := newValidate(t)

	for _, group := range []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"} {
		assert.NoError(t, v.Struct(patientForm{Phone: "9876543210", BloodGroup: group}), group)
	}

	assert.Error(t, v.Struct(patientForm{Phone: "9876543210", BloodGroup: "C+"}))
	assert.Error(t, v.Struct(patientForm{Phone: "9876543210", BloodGroup: "a+"}))
}

func TestStaffRoleValidation(t *testing.T) {
	v := newValidate(t)

	for _, role := range []string{"admin", "doctor", "nurse", "receptionist", "lab", "pharmacist"} {
		assert.NoError(t, v.Struct(patientForm{Phone: "9876543210", Role: role}), role)
	}
	assert.Error(t, v.Struct(patientForm{Phone: "9876543210", Role: "janitor"}))
}
