package dataset

// Query carries the school-search filters as received on /api/schools.
type Query struct {
	Name     string
	Level    string
	Location string
	Sort     string
}

// School is a normalized row of the general-information dataset. Structured
// filter searches only populate the contact-card subset of fields.
type School struct {
	ID               int    `json:"id"`
	SchoolName       string `json:"school_name"`
	URLAddress       string `json:"url_address"`
	Address          string `json:"address"`
	PostalCode       string `json:"postal_code"`
	PhoneNo          string `json:"phone_no"`
	EmailAddress     string `json:"email_address"`
	MOEProgrammeDesc string `json:"moe_programme_desc"`
	MainlevelCode    string `json:"mainlevel_code"`
	TypeCode         string `json:"type_code"`
	NatureCode       string `json:"nature_code"`
	SessionCode      string `json:"session_code"`
	ZoneCode         string `json:"zone_code"`
	ClusterCode      string `json:"cluster_code"`
	DGPCode          string `json:"dgp_code"`
	SAPInd           string `json:"sap_ind"`
}

// CCA is a normalized co-curricular activity row.
type CCA struct {
	ID                int    `json:"id"`
	SchoolName        string `json:"school_name"`
	SchoolSection     string `json:"school_section"`
	Category          string `json:"category"`
	CCAName           string `json:"cca_name"`
	CCACustomizedName string `json:"cca_customized_name"`
}

// DistrictProgramme is a normalized ALP/LLP programme row.
type DistrictProgramme struct {
	ID         int    `json:"id"`
	SchoolName string `json:"school_name"`
	Category   string `json:"category"`
	ProgName   string `json:"prog_name"`
	Category1  string `json:"category_1"`
	ProgName1  string `json:"prog_name_1"`
}

// MOEProgramme is a normalized MOE programme row.
type MOEProgramme struct {
	ID         int    `json:"id"`
	SchoolName string `json:"school_name"`
	Category   string `json:"category"`
}

// Subject is a normalized subject-offering row.
type Subject struct {
	ID         int    `json:"id"`
	SchoolName string `json:"school_name"`
	Level      string `json:"level"`
	Subject    string `json:"subject"`
}

// Result is the envelope returned to /api/schools. All five keys are always
// present; a failed source contributes an empty collection.
type Result struct {
	Schools   []School            `json:"schools"`
	CCAs      []CCA               `json:"ccas"`
	DistProgs []DistrictProgramme `json:"distProgs"`
	Subjects  []Subject           `json:"subjects"`
	MOEProgs  []MOEProgramme      `json:"moeprog"`
}
