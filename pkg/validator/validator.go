package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/medicore/hospital-api/internal/model"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

var bloodGroups = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"AB+": true, "AB-": true,
	"O+": true, "O-": true,
}

// Phone validates a 10-15 digit phone number
func Phone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// BloodGroup validates one of the eight ABO/Rh groups
func BloodGroup(fl validator.FieldLevel) bool {
	return bloodGroups[fl.Field().String()]
}

// StaffRole validates a known staff role name
func StaffRole(fl validator.FieldLevel) bool {
	return model.Role(fl.Field().String()).Valid()
}

// RegisterCustom registers the custom validations on gin's binding engine.
// Call once at startup before routes are served.
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("phone", Phone); err != nil {
		return err
	}
	if err := v.RegisterValidation("bloodgroup", BloodGroup); err != nil {
		return err
	}
	return v.RegisterValidation("staffrole", StaffRole)
}
