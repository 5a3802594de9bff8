package export

// Values used when the submission leaves a coverage or property detail blank.
// The XML and PDF generators share them so both documents agree.
const (
	defaultBILimit        = "100000"
	defaultPDLimit        = "50000"
	defaultCompDeductible = "500"
	defaultCollDeductible = "500"

	defaultConstruction = "Frame"
	defaultNumStories   = "1"
	defaultRoof         = "Composition"
	defaultFoundation   = "Slab"
	defaultHeating      = "Central"
	defaultPlumbing     = "Copper"
	defaultElectrical   = "Circuit Breaker"

	defaultDwellingCoverage          = "250000"
	defaultOtherStructuresCoverage   = "25000"
	defaultPersonalPropertyCoverage  = "125000"
	defaultLossOfUseCoverage         = "50000"
	defaultPersonalLiabilityCoverage = "100000"
	defaultHomeDeductible            = "1000"
)
