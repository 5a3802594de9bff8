package form

import (
	"time"

	common_models "agency-forms/internal/common/models"
	"agency-forms/pkg/condition"
)

// Submission-data keys shared by the master form and the ACORD generators.
const (
	FieldApplicantFirstName = "applicant_first_name"
	FieldApplicantLastName  = "applicant_last_name"
	FieldApplicantDOB       = "applicant_dob"
	FieldApplicantGender    = "applicant_gender"
	FieldApplicantMarital   = "applicant_marital_status"
	FieldApplicantEmail     = "applicant_email"
	FieldApplicantPhone     = "applicant_phone"
	FieldApplicantAddress   = "applicant_address"
	FieldApplicantCity      = "applicant_city"
	FieldApplicantState     = "applicant_state"
	FieldApplicantZip       = "applicant_zip"
	FieldBusinessName       = "business_name"
	FieldEffectiveDate      = "effective_date"
	FieldExpirationDate     = "expiration_date"
	FieldPriorCarrier       = "prior_carrier"
	FieldPriorPolicyNumber  = "prior_policy_number"

	FieldDriverFirstName     = "driver1_first_name"
	FieldDriverLastName      = "driver1_last_name"
	FieldDriverDOB           = "driver1_dob"
	FieldDriverGender        = "driver1_gender"
	FieldDriverMarital       = "driver1_marital_status"
	FieldDriverLicenseNumber = "driver1_license_number"
	FieldDriverLicenseState  = "driver1_license_state"

	FieldVehicleVIN         = "veh1_vin"
	FieldVehicleYear        = "veh1_year"
	FieldVehicleMake        = "veh1_make"
	FieldVehicleModel       = "veh1_model"
	FieldVehicleUsage       = "veh1_usage"
	FieldVehicleAnnualMiles = "veh1_annual_miles"

	FieldBILimit        = "bi_limit"
	FieldPDLimit        = "pd_limit"
	FieldCompDeductible = "comp_deductible"
	FieldCollDeductible = "coll_deductible"

	FieldYearBuilt        = "year_built"
	FieldNumStories       = "num_stories"
	FieldSquareFeet       = "square_feet"
	FieldConstructionType = "construction_type"
	FieldRoofType         = "roof_type"
	FieldFoundationType   = "foundation_type"
	FieldHeatingType      = "heating_type"
	FieldPlumbingType     = "plumbing_type"
	FieldElectricalType   = "electrical_type"
	FieldBurglarAlarm     = "burglar_alarm"
	FieldFireAlarm        = "fire_alarm"
	FieldSprinklers       = "sprinklers"
	FieldDeadbolts        = "deadbolts"
	FieldFireExtinguisher = "fire_extinguisher"

	FieldDwellingCoverage          = "dwelling_coverage"
	FieldOtherStructuresCoverage   = "other_structures_coverage"
	FieldPersonalPropertyCoverage  = "personal_property_coverage"
	FieldLossOfUseCoverage         = "loss_of_use_coverage"
	FieldPersonalLiabilityCoverage = "personal_liability_coverage"
	FieldHomeDeductible            = "home_deductible"

	FieldHasLosses          = "has_losses"
	FieldLossDescription    = "loss_description"
	FieldCancelledDeclined  = "cancelled_declined"
	FieldCancelledExplained = "cancelled_declined_explanation"
)

const (
	MasterTemplateName = "Master Insurance Application"

	vinPattern   = `^[A-HJ-NPR-Z0-9]{17}$`
	zipPattern   = `^\d{5}(-\d{4})?$`
	ssnPattern   = `^\d{3}-?\d{2}-?\d{4}$`
	emailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`
	phonePattern = `^\+?[\d\s().-]{10,}$`
	feinPattern  = `^\d{2}-?\d{7}$`
)

var (
	autoOnly     = []common_models.LineOfBusiness{common_models.LOBAuto}
	propertyOnly = []common_models.LineOfBusiness{common_models.LOBHome, common_models.LOBDwelling}
)

// BuildMasterTemplate synthesizes the comprehensive application spanning every line of business.
func BuildMasterTemplate(name string, now time.Time) *FormTemplate {
	if name == "" {
		name = MasterTemplateName
	}

	sections := []FormSection{
		section("applicant", "Applicant Information", nil,
			field(FieldApplicantFirstName, "First Name", FieldTypeText, required(), maxLen(50), cols(4), ezlynx("Applicant.FirstName")),
			field("applicant_middle_name", "Middle Name", FieldTypeText, maxLen(50), cols(4)),
			field(FieldApplicantLastName, "Last Name", FieldTypeText, required(), maxLen(50), cols(4), ezlynx("Applicant.LastName")),
			field(FieldApplicantDOB, "Date of Birth", FieldTypeDate, required(), cols(4), ezlynx("Applicant.DateOfBirth")),
			field(FieldApplicantGender, "Gender", FieldTypeSelect, choices("Male", "Female", "Not Specified"), cols(4)),
			field(FieldApplicantMarital, "Marital Status", FieldTypeSelect, choices("Single", "Married", "Divorced", "Widowed"), cols(4)),
			field("applicant_ssn", "SSN", FieldTypeSSN, pattern(ssnPattern, "SSN must be 9 digits"), cols(4), help("Used for insurance scoring only")),
			field(FieldApplicantEmail, "Email", FieldTypeEmail, pattern(emailPattern, "Enter a valid email address"), cols(4)),
			field(FieldApplicantPhone, "Phone", FieldTypePhone, required(), pattern(phonePattern, "Enter a valid phone number"), cols(4)),
			field(FieldApplicantAddress, "Mailing Address", FieldTypeText, required(), cols(6)),
			field(FieldApplicantCity, "City", FieldTypeText, required(), cols(3)),
			field(FieldApplicantState, "State", FieldTypeText, required(), minLen(2), maxLen(2), placeholder("TX"), cols(1)),
			field(FieldApplicantZip, "ZIP", FieldTypeText, required(), pattern(zipPattern, "ZIP must be 5 digits"), cols(2)),
			field("applicant_occupation", "Occupation", FieldTypeText, cols(6)),
			field("years_at_address", "Years at Address", FieldTypeNumber, minVal(0), cols(3)),
			field("prior_address", "Prior Address", FieldTypeText, showWhen("years_at_address", condition.OpLessThan, 3), cols(6)),
			field(FieldBusinessName, "Business Name", FieldTypeText, required(), lob(common_models.LOBCommercial), cols(6)),
			field("business_fein", "FEIN", FieldTypeText, pattern(feinPattern, "FEIN must be 9 digits"), lob(common_models.LOBCommercial), cols(3)),
			field("business_type", "Business Type", FieldTypeSelect, choices("Sole Proprietor", "Partnership", "LLC", "Corporation"), lob(common_models.LOBCommercial), cols(3)),
			field("years_in_business", "Years in Business", FieldTypeNumber, minVal(0), lob(common_models.LOBCommercial), cols(3)),
			field("annual_revenue", "Annual Revenue", FieldTypeCurrency, minVal(0), lob(common_models.LOBCommercial), cols(3)),
			field("employee_count", "Number of Employees", FieldTypeNumber, minVal(0), lob(common_models.LOBCommercial), cols(3)),
		),
		section("policy", "Policy Information", nil,
			field(FieldEffectiveDate, "Effective Date", FieldTypeDate, required(), cols(4)),
			field(FieldExpirationDate, "Expiration Date", FieldTypeDate, cols(4)),
			field("policy_term", "Policy Term", FieldTypeSelect, opts(opt("6 Months", "6"), opt("12 Months", "12")), defaultValue("12"), cols(4)),
			field(FieldPriorCarrier, "Prior Carrier", FieldTypeText, cols(4)),
			field(FieldPriorPolicyNumber, "Prior Policy Number", FieldTypeText, cols(4)),
			field("prior_expiration_date", "Prior Expiration Date", FieldTypeDate, cols(4)),
			field("years_with_prior_carrier", "Years with Prior Carrier", FieldTypeNumber, minVal(0), cols(4)),
			field("current_premium", "Current Premium", FieldTypeCurrency, minVal(0), cols(4)),
			field("referral_source", "Referral Source", FieldTypeSelect, choices("Existing Client", "Website", "Referral", "Other"), cols(4)),
			field("agent_notes", "Agent Notes", FieldTypeTextArea, maxLen(2000)),
		),
		section("drivers", "Driver Information", autoOnly,
			field(FieldDriverFirstName, "Driver First Name", FieldTypeText, required(), cols(4)),
			field(FieldDriverLastName, "Driver Last Name", FieldTypeText, required(), cols(4)),
			field(FieldDriverDOB, "Driver Date of Birth", FieldTypeDate, required(), cols(4)),
			field(FieldDriverGender, "Driver Gender", FieldTypeSelect, choices("Male", "Female", "Not Specified"), cols(4)),
			field(FieldDriverMarital, "Driver Marital Status", FieldTypeSelect, choices("Single", "Married", "Divorced", "Widowed"), cols(4)),
			field(FieldDriverLicenseNumber, "License Number", FieldTypeText, required(), maxLen(20), cols(4)),
			field(FieldDriverLicenseState, "License State", FieldTypeText, required(), minLen(2), maxLen(2), cols(2)),
			field("driver1_license_date", "Date Licensed", FieldTypeDate, cols(4)),
			field("driver1_relationship", "Relationship to Applicant", FieldTypeSelect, choices("Self", "Spouse", "Child", "Other"), defaultValue("Self"), cols(4)),
			field("driver1_good_student", "Good Student", FieldTypeCheckbox, cols(3)),
			field("driver1_defensive_course", "Defensive Driving Course", FieldTypeCheckbox, cols(3)),
			field("driver1_sr22", "SR-22 Required", FieldTypeCheckbox, cols(3)),
			field("driver1_violations", "Violations (3 years)", FieldTypeNumber, minVal(0), cols(3)),
			field("additional_drivers", "Additional Drivers", FieldTypeTextArea, help("Name, date of birth and license number for each")),
		),
		section("vehicles", "Vehicle Information", autoOnly,
			field(FieldVehicleVIN, "VIN", FieldTypeVIN, required(), pattern(vinPattern, "VIN must be exactly 17 characters"), cols(6)),
			field(FieldVehicleYear, "Year", FieldTypeNumber, required(), minVal(1900), maxVal(2100), cols(2)),
			field(FieldVehicleMake, "Make", FieldTypeText, required(), cols(2)),
			field(FieldVehicleModel, "Model", FieldTypeText, required(), cols(2)),
			field("veh1_body_type", "Body Type", FieldTypeSelect, choices("Sedan", "SUV", "Truck", "Van", "Coupe"), cols(4)),
			field(FieldVehicleUsage, "Usage", FieldTypeRadio, choices("Pleasure", "Commute", "Business"), defaultValue("Pleasure"), cols(4)),
			field(FieldVehicleAnnualMiles, "Annual Miles", FieldTypeNumber, minVal(0), cols(4)),
			field("veh1_ownership", "Ownership", FieldTypeRadio, choices("Owned", "Financed", "Leased"), cols(4)),
			field("veh1_lienholder", "Lienholder", FieldTypeText, showWhen("veh1_ownership", condition.OpNotEquals, "Owned"), cols(8)),
			field("veh1_garaging_zip", "Garaging ZIP", FieldTypeText, pattern(zipPattern, "ZIP must be 5 digits"), cols(4)),
			field("veh1_anti_theft", "Anti-Theft Device", FieldTypeCheckbox, cols(4)),
			field("veh1_safety_features", "Safety Features", FieldTypeMultiSelect, choices("Airbags", "ABS", "Daytime Running Lights", "Lane Assist"), cols(4)),
		),
		section("auto_coverage", "Auto Coverage", autoOnly,
			field(FieldBILimit, "Bodily Injury Limit", FieldTypeSelect, opts(opt("$25,000", "25000"), opt("$50,000", "50000"), opt("$100,000", "100000"), opt("$250,000", "250000"), opt("$500,000", "500000")), cols(4)),
			field(FieldPDLimit, "Property Damage Limit", FieldTypeSelect, opts(opt("$25,000", "25000"), opt("$50,000", "50000"), opt("$100,000", "100000")), cols(4)),
			field("med_pay_limit", "Medical Payments", FieldTypeCurrency, minVal(0), cols(4)),
			field("um_bi_limit", "Uninsured Motorist BI", FieldTypeCurrency, minVal(0), cols(4)),
			field("uim_bi_limit", "Underinsured Motorist BI", FieldTypeCurrency, minVal(0), cols(4)),
			field(FieldCompDeductible, "Comprehensive Deductible", FieldTypeSelect, opts(opt("$250", "250"), opt("$500", "500"), opt("$1,000", "1000")), cols(4)),
			field(FieldCollDeductible, "Collision Deductible", FieldTypeSelect, opts(opt("$250", "250"), opt("$500", "500"), opt("$1,000", "1000")), cols(4)),
			field("rental_reimbursement", "Rental Reimbursement", FieldTypeCheckbox, cols(4)),
			field("towing", "Towing & Labor", FieldTypeCheckbox, cols(4)),
			field("gap_coverage", "GAP Coverage", FieldTypeCheckbox, showWhen("veh1_ownership", condition.OpNotEquals, "Owned"), cols(4)),
		),
		section("property", "Property Information", propertyOnly,
			field("property_same_as_mailing", "Property Address Same as Mailing", FieldTypeCheckbox, defaultValue(true)),
			field("property_address", "Property Address", FieldTypeText, required(), showWhen("property_same_as_mailing", condition.OpNotEquals, true), cols(6)),
			field("property_city", "Property City", FieldTypeText, showWhen("property_same_as_mailing", condition.OpNotEquals, true), cols(3)),
			field("property_zip", "Property ZIP", FieldTypeText, pattern(zipPattern, "ZIP must be 5 digits"), showWhen("property_same_as_mailing", condition.OpNotEquals, true), cols(3)),
			field("occupancy", "Occupancy", FieldTypeSelect, choices("Owner Occupied", "Tenant Occupied", "Vacant", "Seasonal"), cols(4)),
			field(FieldYearBuilt, "Year Built", FieldTypeNumber, required(), minVal(1800), maxVal(2100), cols(4)),
			field(FieldSquareFeet, "Square Feet", FieldTypeNumber, minVal(100), cols(4)),
			field(FieldNumStories, "Stories", FieldTypeSelect, choices("1", "1.5", "2", "3"), cols(3)),
			field(FieldConstructionType, "Construction", FieldTypeSelect, choices("Frame", "Masonry", "Masonry Veneer", "Fire Resistive"), cols(3)),
			field(FieldRoofType, "Roof Type", FieldTypeSelect, choices("Composition", "Tile", "Metal", "Wood Shake", "Slate"), cols(3)),
			field("roof_year", "Roof Year", FieldTypeNumber, minVal(1900), maxVal(2100), cols(3)),
			field(FieldFoundationType, "Foundation", FieldTypeSelect, choices("Slab", "Crawl Space", "Basement", "Pier"), cols(3)),
			field(FieldHeatingType, "Heating", FieldTypeSelect, choices("Central", "Heat Pump", "Wall Unit", "Wood Stove"), cols(3)),
			field(FieldPlumbingType, "Plumbing", FieldTypeSelect, choices("Copper", "PVC", "PEX", "Galvanized", "Polybutylene"), cols(3)),
			field(FieldElectricalType, "Electrical", FieldTypeSelect, choices("Circuit Breaker", "Fuses"), cols(3)),
			field("distance_to_hydrant", "Distance to Hydrant (ft)", FieldTypeNumber, minVal(0), cols(4)),
			field(FieldBurglarAlarm, "Burglar Alarm", FieldTypeCheckbox, cols(3)),
			field(FieldFireAlarm, "Fire Alarm", FieldTypeCheckbox, cols(3)),
			field(FieldSprinklers, "Sprinklers", FieldTypeCheckbox, cols(3)),
			field(FieldDeadbolts, "Deadbolts", FieldTypeCheckbox, cols(3)),
			field(FieldFireExtinguisher, "Fire Extinguisher", FieldTypeCheckbox, cols(3)),
			field("swimming_pool", "Swimming Pool", FieldTypeCheckbox, cols(3)),
			field("trampoline", "Trampoline", FieldTypeCheckbox, cols(3)),
			field("has_dog", "Dog on Premises", FieldTypeCheckbox, cols(3)),
			field("dog_breed", "Dog Breed", FieldTypeText, required(), showWhen("has_dog", condition.OpEquals, true), cols(6)),
		),
		section("home_coverage", "Home Coverage", propertyOnly,
			field(FieldDwellingCoverage, "Dwelling (Coverage A)", FieldTypeCurrency, minVal(0), cols(4)),
			field(FieldOtherStructuresCoverage, "Other Structures (Coverage B)", FieldTypeCurrency, minVal(0), cols(4)),
			field(FieldPersonalPropertyCoverage, "Personal Property (Coverage C)", FieldTypeCurrency, minVal(0), cols(4)),
			field(FieldLossOfUseCoverage, "Loss of Use (Coverage D)", FieldTypeCurrency, minVal(0), cols(4)),
			field(FieldPersonalLiabilityCoverage, "Personal Liability (Coverage E)", FieldTypeCurrency, minVal(0), cols(4)),
			field("medical_payments_coverage", "Medical Payments (Coverage F)", FieldTypeCurrency, minVal(0), cols(4)),
			field(FieldHomeDeductible, "All Perils Deductible", FieldTypeSelect, opts(opt("$500", "500"), opt("$1,000", "1000"), opt("$2,500", "2500"), opt("$5,000", "5000")), cols(4)),
			field("wind_hail_deductible", "Wind/Hail Deductible", FieldTypeSelect, choices("1%", "2%", "5%"), cols(4)),
			field("replacement_cost", "Replacement Cost on Contents", FieldTypeCheckbox, cols(4)),
			field("water_backup", "Water Backup", FieldTypeCheckbox, cols(4)),
			field("scheduled_property", "Scheduled Personal Property", FieldTypeTextArea, help("Jewelry, art or collectibles with appraised values")),
		),
		section("underwriting", "Underwriting Questions", nil,
			field(FieldHasLosses, "Any losses in the past 5 years?", FieldTypeCheckbox),
			field("loss_date", "Loss Date", FieldTypeDate, required(), showWhen(FieldHasLosses, condition.OpEquals, true), cols(4)),
			field("loss_type", "Loss Type", FieldTypeSelect, choices("Collision", "Comprehensive", "Liability", "Water", "Fire", "Theft", "Wind/Hail"), showWhen(FieldHasLosses, condition.OpEquals, true), cols(4)),
			field("loss_amount", "Loss Amount", FieldTypeCurrency, minVal(0), showWhen(FieldHasLosses, condition.OpEquals, true), cols(4)),
			field(FieldLossDescription, "Loss Description", FieldTypeTextArea, required(), showWhen(FieldHasLosses, condition.OpEquals, true)),
			field(FieldCancelledDeclined, "Any policy cancelled, declined or non-renewed?", FieldTypeCheckbox),
			field(FieldCancelledExplained, "Explanation", FieldTypeTextArea, required(), showWhen(FieldCancelledDeclined, condition.OpEquals, true)),
			field("bankruptcy", "Bankruptcy in the past 5 years?", FieldTypeCheckbox),
			field("business_on_premises", "Business conducted on premises?", FieldTypeCheckbox, lob(propertyOnly...)),
			field("business_on_premises_description", "Describe the business", FieldTypeTextArea, lob(propertyOnly...), showWhen("business_on_premises", condition.OpEquals, true)),
			field("additional_info", "Additional Information", FieldTypeTextArea, maxLen(2000)),
		),
	}

	for i := range sections {
		sections[i].SortOrder = (i + 1) * 10
		sections[i].IsCollapsible = true
		sections[i].IsExpandedDefault = i == 0
		sections[i].CreatedAt = now
		for j := range sections[i].Fields {
			sections[i].Fields[j].SortOrder = (j + 1) * 10
			sections[i].Fields[j].CreatedAt = now
		}
	}

	return &FormTemplate{
		Name:           name,
		Description:    "Comprehensive application covering auto, home, dwelling and commercial lines",
		LineOfBusiness: common_models.NewLOBSet(common_models.AllLinesOfBusiness...),
		IsActive:       true,
		IsMaster:       true,
		Sections:       sections,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

type fieldOpt func(*FormField)

func section(name, label string, scope []common_models.LineOfBusiness, fields ...FormField) FormSection {
	return FormSection{
		Name:           name,
		Label:          label,
		LineOfBusiness: common_models.NewLOBSet(scope...),
		Fields:         fields,
	}
}

func field(name, label string, ft FieldType, o ...fieldOpt) FormField {
	f := FormField{
		Name:           name,
		Label:          label,
		FieldType:      ft,
		LineOfBusiness: common_models.NewLOBSet(),
		Options:        []SelectOption{},
		GridCols:       12,
	}
	for _, apply := range o {
		apply(&f)
	}
	return f
}

func required() fieldOpt { return func(f *FormField) { f.IsRequired = true } }

func cols(n int) fieldOpt { return func(f *FormField) { f.GridCols = n } }

func placeholder(s string) fieldOpt { return func(f *FormField) { f.Placeholder = s } }

func help(s string) fieldOpt { return func(f *FormField) { f.HelpText = s } }

func ezlynx(s string) fieldOpt { return func(f *FormField) { f.EzlynxMapping = s } }

func defaultValue(v interface{}) fieldOpt { return func(f *FormField) { f.DefaultValue = v } }

func lob(l ...common_models.LineOfBusiness) fieldOpt {
	return func(f *FormField) { f.LineOfBusiness = common_models.NewLOBSet(l...) }
}

func opt(label, value string) SelectOption { return SelectOption{Label: label, Value: value} }

func opts(o ...SelectOption) fieldOpt { return func(f *FormField) { f.Options = o } }

// options uses each label as its own value.
func choices(labels ...string) fieldOpt {
	return func(f *FormField) {
		for _, l := range labels {
			f.Options = append(f.Options, opt(l, l))
		}
	}
}

func pattern(p, msg string) fieldOpt {
	return func(f *FormField) {
		f.ValidationRules.Pattern = p
		f.ValidationRules.PatternMessage = msg
	}
}

func minLen(n int) fieldOpt { return func(f *FormField) { f.ValidationRules.MinLength = &n } }

func maxLen(n int) fieldOpt { return func(f *FormField) { f.ValidationRules.MaxLength = &n } }

func minVal(n float64) fieldOpt { return func(f *FormField) { f.ValidationRules.Min = &n } }

func maxVal(n float64) fieldOpt { return func(f *FormField) { f.ValidationRules.Max = &n } }

func showWhen(source string, op condition.Operator, value interface{}) fieldOpt {
	return func(f *FormField) {
		f.ConditionalLogic = &ConditionalLogic{Field: source, Operator: op, Value: value}
	}
}
