package model

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestCreatePrescriptionRequestRequiredFields(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	req := CreatePrescriptionRequest{PatientID: 7, Symptoms: "fever"}
	assert.Error(t, v.Struct(req), "diagnosis must be present")

	req.Diagnosis = "viral fever"
	assert.NoError(t, v.Struct(req), "items stay optional")

	req.PatientID = 0
	assert.Error(t, v.Struct(req), "patient id must be present")
}
