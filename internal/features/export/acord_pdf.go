package export

import (
	"strings"
	"time"

	"agency-forms/internal/config"
	"agency-forms/internal/features/form"
)

const signatureThreshold = 150.0

type Agency struct {
	Name    string
	Phone   string
	Address string
}

// PDFGenerator renders a submission as a printable ACORD application.
type PDFGenerator struct {
	Agency Agency
	Now    Clock
}

func NewPDFGenerator(cfg *config.Config) *PDFGenerator {
	return &PDFGenerator{
		Agency: Agency{Name: cfg.AgencyName, Phone: cfg.AgencyPhone, Address: cfg.AgencyAddress},
		Now:    time.Now,
	}
}

func (g *PDFGenerator) Generate(src Source) ([]byte, error) {
	return Rasterize(g.Layout(src), documentTitle(src), g.Now())
}

// Layout places every section of the application without drawing anything.
func (g *PDFGenerator) Layout(src Source) *Layout {
	l := NewLayout()
	l.Title("ACORD APPLICATION", "Generated: "+g.Now().Format("January 2, 2006"))

	agent := ""
	agentEmail := ""
	if src.Policy != nil {
		agent = src.Policy.AgentName()
		agentEmail = src.Policy.AgentEmail
	}
	l.SectionHeader("Agency Information")
	l.Field("Agency", g.Agency.Name)
	l.Field("Phone", g.Agency.Phone)
	l.Field("Address", g.Agency.Address)
	l.Field("Agent", agent)
	l.Field("Agent Email", agentEmail)
	l.Field("Policy Number", src.PolicyNumber())
	l.Field("Form", templateName(src))

	l.SectionHeader("Applicant Information")
	l.Field("Name", joinNonEmpty(" ", src.text(form.FieldApplicantFirstName), src.text(form.FieldApplicantLastName)))
	l.Field("Business Name", src.text(form.FieldBusinessName))
	l.Field("Date of Birth", formatDate(src.text(form.FieldApplicantDOB)))
	l.Field("Gender", src.text(form.FieldApplicantGender))
	l.Field("Marital Status", src.text(form.FieldApplicantMarital))
	l.Field("Email", src.text(form.FieldApplicantEmail))
	l.Field("Phone", src.text(form.FieldApplicantPhone))
	l.Field("Address", src.text(form.FieldApplicantAddress))
	l.Field("City/State/Zip", joinNonEmpty(", ",
		src.text(form.FieldApplicantCity),
		joinNonEmpty(" ", src.text(form.FieldApplicantState), src.text(form.FieldApplicantZip))))
	l.Field("Effective Date", src.dateOrPolicyExpiration(form.FieldEffectiveDate))
	l.Field("Expiration Date", src.dateOrPolicyExpiration(form.FieldExpirationDate))
	l.Field("Prior Carrier", src.text(form.FieldPriorCarrier))

	if src.HasAuto() {
		l.SectionHeader("Vehicle Information")
		l.Field("Year/Make/Model", joinNonEmpty(" ",
			src.text(form.FieldVehicleYear), src.text(form.FieldVehicleMake), src.text(form.FieldVehicleModel)))
		l.Field("VIN", src.text(form.FieldVehicleVIN))
		l.Field("Usage", src.text(form.FieldVehicleUsage))
		l.Field("Annual Miles", src.text(form.FieldVehicleAnnualMiles))
		l.Field("Driver", joinNonEmpty(" ", src.text(form.FieldDriverFirstName), src.text(form.FieldDriverLastName)))
		l.Field("Driver Date of Birth", formatDate(src.text(form.FieldDriverDOB)))
		l.Field("License", joinNonEmpty(" / ", src.text(form.FieldDriverLicenseNumber), src.text(form.FieldDriverLicenseState)))

		l.SectionHeader("Auto Coverage")
		l.Field("Bodily Injury Limit", formatCurrency(src.textOr(form.FieldBILimit, defaultBILimit)))
		l.Field("Property Damage Limit", formatCurrency(src.textOr(form.FieldPDLimit, defaultPDLimit)))
		l.Field("Comprehensive Deductible", formatCurrency(src.textOr(form.FieldCompDeductible, defaultCompDeductible)))
		l.Field("Collision Deductible", formatCurrency(src.textOr(form.FieldCollDeductible, defaultCollDeductible)))
	}

	if src.HasHome() {
		l.SectionHeader("Property Information")
		l.Field("Year Built", src.text(form.FieldYearBuilt))
		l.Field("Stories", src.textOr(form.FieldNumStories, defaultNumStories))
		l.Field("Square Feet", src.text(form.FieldSquareFeet))
		l.Field("Construction", src.textOr(form.FieldConstructionType, defaultConstruction))
		l.Field("Roof", src.textOr(form.FieldRoofType, defaultRoof))
		l.Field("Foundation", src.textOr(form.FieldFoundationType, defaultFoundation))
		l.Field("Heating", src.textOr(form.FieldHeatingType, defaultHeating))
		l.Field("Plumbing", src.textOr(form.FieldPlumbingType, defaultPlumbing))
		l.Field("Electrical", src.textOr(form.FieldElectricalType, defaultElectrical))
		var devices []string
		for _, device := range protectionDevices {
			if src.flag(device.field) {
				devices = append(devices, device.label)
			}
		}
		l.Field("Protection Devices", strings.Join(devices, ", "))

		l.SectionHeader("Home Coverage")
		l.Field("Dwelling", formatCurrency(src.textOr(form.FieldDwellingCoverage, defaultDwellingCoverage)))
		l.Field("Other Structures", formatCurrency(src.textOr(form.FieldOtherStructuresCoverage, defaultOtherStructuresCoverage)))
		l.Field("Personal Property", formatCurrency(src.textOr(form.FieldPersonalPropertyCoverage, defaultPersonalPropertyCoverage)))
		l.Field("Loss of Use", formatCurrency(src.textOr(form.FieldLossOfUseCoverage, defaultLossOfUseCoverage)))
		l.Field("Personal Liability", formatCurrency(src.textOr(form.FieldPersonalLiabilityCoverage, defaultPersonalLiabilityCoverage)))
		l.Field("Deductible", formatCurrency(src.textOr(form.FieldHomeDeductible, defaultHomeDeductible)))
	}

	l.SectionHeader("Underwriting Questions")
	hasLosses := src.flag(form.FieldHasLosses)
	l.Field("Losses in the past 5 years", yesNo(hasLosses))
	if hasLosses {
		l.Field("Loss Description", src.text(form.FieldLossDescription))
	}
	cancelled := src.flag(form.FieldCancelledDeclined)
	l.Field("Cancelled or declined", yesNo(cancelled))
	if cancelled {
		l.Field("Explanation", src.text(form.FieldCancelledExplained))
	}

	l.Signatures(signatureThreshold, "Applicant Signature", "Agent Signature")
	l.Footer("Submission ID: " + src.SubmissionID())
	return l
}

func templateName(src Source) string {
	if src.Template == nil {
		return ""
	}
	return src.Template.Name
}

func documentTitle(src Source) string {
	return "ACORD Application " + shortID(src.SubmissionID())
}

func PDFFilename(submissionID string) string {
	return "ACORD_Application_" + shortID(submissionID) + ".pdf"
}

func XMLFilename(submissionID string) string {
	return "ACORD_Application_" + shortID(submissionID) + ".xml"
}
