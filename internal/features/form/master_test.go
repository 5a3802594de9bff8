package form

import (
	"testing"
	"time"

	common_models "agency-forms/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasterTemplateShape(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tmpl := BuildMasterTemplate("", now)

	require.NoError(t, CheckDefinition(tmpl))
	assert.Equal(t, MasterTemplateName, tmpl.Name)
	assert.True(t, tmpl.IsMaster)
	assert.True(t, tmpl.IsActive)
	assert.Len(t, tmpl.LineOfBusiness, 4)
	assert.Len(t, tmpl.Sections, 8)
	assert.GreaterOrEqual(t, len(tmpl.Fields()), 100)

	for _, s := range tmpl.Sections {
		assert.Equal(t, now, s.CreatedAt)
		assert.NotEmpty(t, s.Fields, s.Name)
	}
}

func TestMasterTemplateDefinesExportKeys(t *testing.T) {
	tmpl := BuildMasterTemplate("Custom", time.Now())
	assert.Equal(t, "Custom", tmpl.Name)

	for _, name := range []string{
		FieldApplicantFirstName, FieldApplicantLastName, FieldEffectiveDate, FieldVehicleVIN,
		FieldBILimit, FieldPDLimit, FieldConstructionType, FieldDwellingCoverage, FieldHomeDeductible,
		FieldHasLosses, FieldLossDescription, FieldDriverLicenseNumber, FieldBurglarAlarm,
	} {
		_, ok := tmpl.FieldByName(name)
		assert.True(t, ok, name)
	}
}

func TestMasterTemplateScoping(t *testing.T) {
	tmpl := BuildMasterTemplate("", time.Now())
	auto := lobs(common_models.LOBAuto)
	home := lobs(common_models.LOBHome)

	autoSections := map[string]bool{}
	for _, s := range Render(tmpl, auto, map[string]interface{}{}, nil) {
		autoSections[s.Name] = true
	}
	assert.True(t, autoSections["vehicles"])
	assert.False(t, autoSections["property"])

	homeSections := map[string]bool{}
	for _, s := range Render(tmpl, home, map[string]interface{}{}, nil) {
		homeSections[s.Name] = true
	}
	assert.True(t, homeSections["property"])
	assert.False(t, homeSections["drivers"])

	errs := Validate(tmpl, home, map[string]interface{}{})
	assert.NotContains(t, errs, FieldVehicleVIN)
	assert.NotContains(t, errs, FieldBusinessName)
	assert.Contains(t, errs, FieldYearBuilt)
}
