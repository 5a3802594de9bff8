package export

import (
	"strings"
	"time"

	common_models "agency-forms/internal/common/models"
	"agency-forms/internal/features/form"

	"github.com/google/uuid"
)

const (
	signonOrg     = "AgencyForms"
	signonApp     = "AgencyForms Form Engine"
	signonVersion = "1.0"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeXML escapes markup characters and strips what XML 1.0 cannot carry:
// control characters other than tab, newline and carriage return are dropped,
// invalid UTF-8 becomes U+FFFD.
func escapeXML(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
	return xmlEscaper.Replace(s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// XMLGenerator renders a submission as an ACORD quote inquiry.
// Output is fully determined by the Source, NewID and Now.
type XMLGenerator struct {
	NewID IDFunc
	Now   Clock
}

func NewXMLGenerator() *XMLGenerator {
	return &XMLGenerator{NewID: uuid.NewString, Now: time.Now}
}

func (g *XMLGenerator) Generate(src Source) string {
	today := g.Now().Format(dateLayout)
	w := &xmlWriter{}

	w.line(`<?xml version="1.0" encoding="UTF-8"?>`)
	w.open("ACORD")

	w.open("SignonRq")
	w.open("SignonPswd")
	w.open("CustId")
	w.leaf("SPName", signonOrg)
	w.leaf("CustLoginId", signonApp)
	w.close("CustId")
	w.close("SignonPswd")
	w.leaf("ClientDt", today)
	w.leaf("CustLangPref", "en-US")
	w.open("ClientApp")
	w.leaf("Org", signonOrg)
	w.leaf("Name", signonApp)
	w.leaf("Version", signonVersion)
	w.close("ClientApp")
	w.close("SignonRq")

	w.open("InsuranceSvcRq")
	w.leaf("RqUID", g.NewID())
	if src.HasAuto() {
		g.autoBlock(w, src, today)
	}
	if src.HasHome() {
		g.homeBlock(w, src, today)
	}
	w.close("InsuranceSvcRq")

	w.close("ACORD")
	return w.String()
}

func (g *XMLGenerator) autoBlock(w *xmlWriter, src Source, today string) {
	w.open("PersAutoPolicyQuoteInqRq")
	w.leaf("RqUID", g.NewID())
	w.leaf("TransactionRequestDt", today)
	w.leaf("CurCd", "USD")
	insuredOrPrincipal(w, src)
	persPolicy(w, src, "AUTOP")

	w.open("PersAutoLineBusiness")
	w.leaf("LOBCd", "AUTOP")

	w.open("PersDriver", `id="D1"`)
	w.open("GeneralPartyInfo")
	w.open("NameInfo")
	w.personName(src.text(form.FieldDriverLastName), src.text(form.FieldDriverFirstName))
	w.close("NameInfo")
	w.close("GeneralPartyInfo")
	w.open("DriverInfo")
	w.open("PersonInfo")
	w.leaf("GenderCd", src.text(form.FieldDriverGender))
	w.leaf("BirthDt", formatDate(src.text(form.FieldDriverDOB)))
	w.leaf("MaritalStatusCd", src.text(form.FieldDriverMarital))
	w.close("PersonInfo")
	w.open("License")
	w.leaf("LicensePermitNumber", src.text(form.FieldDriverLicenseNumber))
	w.leaf("StateProvCd", src.text(form.FieldDriverLicenseState))
	w.close("License")
	w.close("DriverInfo")
	w.close("PersDriver")

	w.open("PersVeh", `id="V1"`, `RatedDriverRef="D1"`)
	w.leaf("Manufacturer", src.text(form.FieldVehicleMake))
	w.leaf("Model", src.text(form.FieldVehicleModel))
	w.leaf("ModelYear", src.text(form.FieldVehicleYear))
	w.leaf("VehIdentificationNumber", src.text(form.FieldVehicleVIN))
	w.leaf("VehUseCd", src.text(form.FieldVehicleUsage))
	w.open("EstimatedAnnualDistance")
	w.leaf("NumUnits", amount(src.text(form.FieldVehicleAnnualMiles)))
	w.leaf("UnitMeasurementCd", "SMI")
	w.close("EstimatedAnnualDistance")
	w.coverage("BI", amount(src.textOr(form.FieldBILimit, defaultBILimit)), "")
	w.coverage("PD", amount(src.textOr(form.FieldPDLimit, defaultPDLimit)), "")
	w.coverage("COMP", "", amount(src.textOr(form.FieldCompDeductible, defaultCompDeductible)))
	w.coverage("COLL", "", amount(src.textOr(form.FieldCollDeductible, defaultCollDeductible)))
	w.close("PersVeh")

	w.close("PersAutoLineBusiness")
	w.close("PersAutoPolicyQuoteInqRq")
}

func (g *XMLGenerator) homeBlock(w *xmlWriter, src Source, today string) {
	lobCd := "HOME"
	if !src.LinesOfBusiness().Has(common_models.LOBHome) {
		lobCd = "DFIRE"
	}

	w.open("HomePolicyQuoteInqRq")
	w.leaf("RqUID", g.NewID())
	w.leaf("TransactionRequestDt", today)
	w.leaf("CurCd", "USD")
	insuredOrPrincipal(w, src)
	persPolicy(w, src, lobCd)

	w.open("Location", `id="L1"`)
	address(w, src)
	w.close("Location")

	w.open("HomeLineBusiness")
	w.leaf("LOBCd", lobCd)
	w.open("Dwell", `LocationRef="L1"`)

	w.open("Construction")
	w.leaf("ConstructionCd", src.textOr(form.FieldConstructionType, defaultConstruction))
	w.leaf("YearBuilt", src.text(form.FieldYearBuilt))
	w.leaf("NumStories", src.textOr(form.FieldNumStories, defaultNumStories))
	w.open("BldgArea")
	w.leaf("NumUnits", amount(src.text(form.FieldSquareFeet)))
	w.leaf("UnitMeasurementCd", "SQFT")
	w.close("BldgArea")
	w.open("RoofingMaterial")
	w.leaf("RoofMaterialCd", src.textOr(form.FieldRoofType, defaultRoof))
	w.close("RoofingMaterial")
	w.leaf("FoundationCd", src.textOr(form.FieldFoundationType, defaultFoundation))
	w.close("Construction")

	w.open("DwellInspectionValuation")
	w.leaf("HeatSourcePrimaryCd", src.textOr(form.FieldHeatingType, defaultHeating))
	w.leaf("PlumbingCd", src.textOr(form.FieldPlumbingType, defaultPlumbing))
	w.leaf("ElectricalPanelCd", src.textOr(form.FieldElectricalType, defaultElectrical))
	w.close("DwellInspectionValuation")

	w.open("BldgProtection")
	for _, device := range protectionDevices {
		if src.flag(device.field) {
			w.leaf(device.element, "1")
		}
	}
	w.close("BldgProtection")

	w.coverage("DWELL", amount(src.textOr(form.FieldDwellingCoverage, defaultDwellingCoverage)),
		amount(src.textOr(form.FieldHomeDeductible, defaultHomeDeductible)))
	w.coverage("OS", amount(src.textOr(form.FieldOtherStructuresCoverage, defaultOtherStructuresCoverage)), "")
	w.coverage("PP", amount(src.textOr(form.FieldPersonalPropertyCoverage, defaultPersonalPropertyCoverage)), "")
	w.coverage("LOU", amount(src.textOr(form.FieldLossOfUseCoverage, defaultLossOfUseCoverage)), "")
	w.coverage("PL", amount(src.textOr(form.FieldPersonalLiabilityCoverage, defaultPersonalLiabilityCoverage)), "")

	w.close("Dwell")
	w.close("HomeLineBusiness")
	w.close("HomePolicyQuoteInqRq")
}

var protectionDevices = []struct {
	field   string
	element string
	label   string
}{
	{form.FieldBurglarAlarm, "BurglarAlarmInd", "Burglar Alarm"},
	{form.FieldFireAlarm, "FireAlarmInd", "Fire Alarm"},
	{form.FieldSprinklers, "SprinklerInd", "Sprinklers"},
	{form.FieldDeadbolts, "DeadboltInd", "Deadbolts"},
	{form.FieldFireExtinguisher, "FireExtinguisherInd", "Fire Extinguisher"},
}

func insuredOrPrincipal(w *xmlWriter, src Source) {
	w.open("InsuredOrPrincipal")
	w.open("GeneralPartyInfo")
	w.open("NameInfo")
	w.personName(src.text(form.FieldApplicantLastName), src.text(form.FieldApplicantFirstName))
	w.open("CommlName")
	w.leaf("CommercialName", src.text(form.FieldBusinessName))
	w.close("CommlName")
	w.close("NameInfo")
	address(w, src)
	w.open("Communications")
	w.open("PhoneInfo")
	w.leaf("PhoneTypeCd", "Phone")
	w.leaf("PhoneNumber", src.text(form.FieldApplicantPhone))
	w.close("PhoneInfo")
	w.open("EmailInfo")
	w.leaf("EmailAddr", src.text(form.FieldApplicantEmail))
	w.close("EmailInfo")
	w.close("Communications")
	w.close("GeneralPartyInfo")

	w.open("InsuredOrPrincipalInfo")
	w.leaf("InsuredOrPrincipalRoleCd", "Insured")
	w.open("PersonInfo")
	w.leaf("GenderCd", src.text(form.FieldApplicantGender))
	w.leaf("BirthDt", formatDate(src.text(form.FieldApplicantDOB)))
	w.leaf("MaritalStatusCd", src.text(form.FieldApplicantMarital))
	w.close("PersonInfo")
	w.close("InsuredOrPrincipalInfo")
	w.close("InsuredOrPrincipal")
}

func address(w *xmlWriter, src Source) {
	w.open("Addr")
	w.leaf("AddrTypeCd", "MailingAddress")
	w.leaf("Addr1", src.text(form.FieldApplicantAddress))
	w.leaf("City", src.text(form.FieldApplicantCity))
	w.leaf("StateProvCd", src.text(form.FieldApplicantState))
	w.leaf("PostalCode", src.text(form.FieldApplicantZip))
	w.close("Addr")
}

func persPolicy(w *xmlWriter, src Source, lobCd string) {
	w.open("PersPolicy")
	w.leaf("PolicyNumber", src.PolicyNumber())
	w.leaf("LOBCd", lobCd)
	w.open("ContractTerm")
	w.leaf("EffectiveDt", src.dateOrPolicyExpiration(form.FieldEffectiveDate))
	w.leaf("ExpirationDt", src.dateOrPolicyExpiration(form.FieldExpirationDate))
	w.close("ContractTerm")
	w.open("OtherOrPriorPolicy")
	w.leaf("InsurerName", src.text(form.FieldPriorCarrier))
	w.leaf("PolicyNumber", src.text(form.FieldPriorPolicyNumber))
	w.close("OtherOrPriorPolicy")
	w.close("PersPolicy")
}

// xmlWriter emits two-space indented elements. Leaf values are escaped, tags are trusted.
type xmlWriter struct {
	b     strings.Builder
	depth int
}

func (w *xmlWriter) line(s string) {
	for i := 0; i < w.depth; i++ {
		w.b.WriteString("  ")
	}
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *xmlWriter) open(tag string, attrs ...string) {
	if len(attrs) > 0 {
		w.line("<" + tag + " " + strings.Join(attrs, " ") + ">")
	} else {
		w.line("<" + tag + ">")
	}
	w.depth++
}

func (w *xmlWriter) close(tag string) {
	w.depth--
	w.line("</" + tag + ">")
}

// leaf writes <tag>value</tag>. An empty value still produces the element.
func (w *xmlWriter) leaf(tag, value string) {
	w.line("<" + tag + ">" + escapeXML(value) + "</" + tag + ">")
}

func (w *xmlWriter) personName(surname, given string) {
	w.line("<PersonName><Surname>" + escapeXML(surname) + "</Surname><GivenName>" + escapeXML(given) + "</GivenName></PersonName>")
}

func (w *xmlWriter) coverage(code, limit, deductible string) {
	w.open("Coverage")
	w.leaf("CoverageCd", code)
	if limit != "" {
		w.open("Limit")
		w.leaf("FormatInteger", limit)
		w.close("Limit")
	}
	if deductible != "" {
		w.open("Deductible")
		w.leaf("FormatInteger", deductible)
		w.close("Deductible")
	}
	w.close("Coverage")
}

func (w *xmlWriter) String() string { return w.b.String() }
