package constvars

type ResourceType string

const (
	ResourcePatient        = "Patient"
	ResourceObservation    = "Observation"
	ResourceCondition      = "Condition"
	ResourceRiskAssessment = "RiskAssessment"
	ResourceBundle         = "Bundle"

	ResourceOperationOutcome    = "OperationOutcome"
	ResourceCapabilityStatement = "CapabilityStatement"
)

const (
	FhirBundleTypeSearchset = "searchset"
)

const (
	FhirObservationStatusRegistered     = "registered"
	FhirObservationStatusPreliminary    = "preliminary"
	FhirObservationStatusFinal          = "final"
	FhirObservationStatusAmended        = "amended"
	FhirObservationStatusCorrected      = "corrected"
	FhirObservationStatusCancelled      = "cancelled"
	FhirObservationStatusEnteredInError = "entered-in-error"
	FhirObservationStatusUnknown        = "unknown"
)

const (
	FhirConditionClinicalStatusActive     = "active"
	FhirConditionClinicalStatusRecurrence = "recurrence"
	FhirConditionClinicalStatusRelapse    = "relapse"
	FhirConditionClinicalStatusInactive   = "inactive"
	FhirConditionClinicalStatusRemission  = "remission"
	FhirConditionClinicalStatusResolved   = "resolved"
)

// OperationOutcome issue codes used by this service.
const (
	FhirIssueCodeInvalid      = "invalid"
	FhirIssueCodeNotFound     = "not-found"
	FhirIssueCodeException    = "exception"
	FhirIssueCodeNotSupported = "not-supported"
)

const (
	FhirIssueSeverityError = "error"
)

const (
	CodingSystemLOINC               = "http://loinc.org"
	CodingSystemSNOMED              = "http://snomed.info/sct"
	CodingSystemICD10               = "http://hl7.org/fhir/sid/icd-10"
	CodingSystemObservationCategory = "http://terminology.hl7.org/CodeSystem/observation-category"
	CodingSystemConditionClinical   = "http://terminology.hl7.org/CodeSystem/condition-clinical"
	CodingSystemRiskProbability     = "http://terminology.hl7.org/CodeSystem/risk-probability"
	CodingSystemMaritalStatus       = "http://terminology.hl7.org/CodeSystem/v3-MaritalStatus"

	ExtensionURLWorkType = "http://strokewatch.local/fhir/StructureDefinition/work-type"
)

// Clinical codes recognized by feature extraction and bulk import.
const (
	CodeHypertensionSNOMED = "38341003"
	CodeHypertensionICD10  = "I10"
	CodeHeartDiseaseSNOMED = "56265001"
	CodeHeartDiseaseICD10  = "I51.9"
	CodeStrokeSNOMED       = "230690007"

	CodeBMILOINC           = "39156-5"
	CodeGlucoseLOINC       = "2339-0"
	CodeSmokingStatusLOINC = "72166-2"
)

// Marital status codes counted as "ever married".
const (
	MaritalStatusMarried          = "M"
	MaritalStatusWidowed          = "W"
	MaritalStatusDivorced         = "D"
	MaritalStatusLegallySeparated = "L"
	MaritalStatusAnnulled         = "A"
	MaritalStatusNeverMarried     = "S"
)

// Storage-only document fields, stripped before a resource leaves the store.
const (
	MongoFieldObjectID  = "_id"
	MongoFieldRevision  = "_revision"
	MongoFieldCreatedAt = "_createdAt"
)

const (
	RiskBandHigh     = "high"
	RiskBandModerate = "moderate"
	RiskBandLow      = "low"
)

const (
	FallbackModelName = "fallback-random"
)
