package constvars

// URL path parameters.
const (
	URLParamResourceType = "resourceType"
	URLParamResourceID   = "resourceID"
	URLParamPatientID    = "patientID"
)

// Search parameters shared by every resource type.
const (
	SearchParamID     = "_id"
	SearchParamCount  = "_count"
	SearchParamOffset = "_offset"
	SearchParamSort   = "_sort"
)

// Per-type search parameters.
const (
	SearchParamGender         = "gender"
	SearchParamBirthdate      = "birthdate"
	SearchParamName           = "name"
	SearchParamIdentifier     = "identifier"
	SearchParamPatient        = "patient"
	SearchParamSubject        = "subject"
	SearchParamCode           = "code"
	SearchParamCategory       = "category"
	SearchParamStatus         = "status"
	SearchParamClinicalStatus = "clinical-status"

	SearchSortValueDate = "date"
)

const (
	DefaultSearchPageSize = 50
	MaxSearchPageSize     = 1000
)

const (
	UploadFormFileField = "file"
)
