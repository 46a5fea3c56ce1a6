package dataset

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Upstream resource ids on data.gov.sg.
const (
	resourceSchools   = "d_688b934f82c1059ed0a6993d2a829089" // General Information of Schools
	resourceCCAs      = "d_9aba12b5527843afb0b2e8e4ed6ac6bd"
	resourceDistProgs = "d_db1faeea02c646fa3abccfa5aba99214"
	resourceMOEProgs  = "d_b0697d22a7837a4eddf72efb66a36fc2"
	resourceSubjects  = "d_0166018b072b9d8e06f4f0f3b89bd87b"
)

// Per-source call timeouts. The CCA dataset is the flakiest and gets the
// shortest budget so it fails fast.
const (
	timeoutSchools   = 15 * time.Second
	timeoutCCAs      = 8 * time.Second
	timeoutDistProgs = 10 * time.Second
	timeoutMOEProgs  = 10 * time.Second
)

// fetchSchools queries the school directory. A usable name selects partial
// free-text search; otherwise an exact-match filter object is built from
// level and location. The two modes are mutually exclusive per call.
func fetchSchools(ctx context.Context, client *Client, query Query) ([]School, error) {
	name := strings.TrimSpace(query.Name)

	if len(name) >= 2 {
		records, err := client.Search(ctx, resourceSchools, name, timeoutSchools)
		if err != nil {
			return nil, err
		}

		schools := make([]School, 0, len(records))
		for i, rec := range records {
			schools = append(schools, School{
				ID:               i + 1,
				SchoolName:       strOr(rec, "Unknown School", "school_name"),
				URLAddress:       str(rec, "url_address"),
				Address:          str(rec, "address"),
				PostalCode:       str(rec, "postal_code"),
				PhoneNo:          str(rec, "phone_no"),
				EmailAddress:     str(rec, "email_address"),
				MOEProgrammeDesc: str(rec, "moe_programme_desc"),
				MainlevelCode:    str(rec, "mainlevel_code"),
				TypeCode:         str(rec, "type_code"),
				NatureCode:       str(rec, "nature_code"),
				SessionCode:      str(rec, "session_code"),
				ZoneCode:         str(rec, "zone_code"),
				ClusterCode:      str(rec, "cluster_code"),
				DGPCode:          str(rec, "dgp_code"),
				SAPInd:           str(rec, "sap_ind"),
			})
		}
		sortSchools(schools, query.Sort)
		return schools, nil
	}

	filter := map[string]string{}
	if level := strings.TrimSpace(query.Level); level != "" {
		filter["mainlevel_code"] = level
	}
	if location := strings.TrimSpace(query.Location); location != "" {
		filter["zone_code"] = location
	}
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, err
	}

	records, err := client.Search(ctx, resourceSchools, string(filterJSON), timeoutSchools)
	if err != nil {
		return nil, err
	}

	schools := make([]School, 0, len(records))
	for i, rec := range records {
		schools = append(schools, School{
			ID:         i + 1,
			SchoolName: strOr(rec, "Unknown School", "school_name"),
			URLAddress: str(rec, "url_address"),
			Address:    str(rec, "address"),
			PostalCode: str(rec, "postal_code"),
		})
	}
	sortSchools(schools, query.Sort)
	return schools, nil
}

func sortSchools(schools []School, order string) {
	switch order {
	case "name-asc":
		sort.SliceStable(schools, func(i, j int) bool {
			return schools[i].SchoolName < schools[j].SchoolName
		})
	case "name-desc":
		sort.SliceStable(schools, func(i, j int) bool {
			return schools[i].SchoolName > schools[j].SchoolName
		})
	}
}

// fetchCCAs queries co-curricular activities by cleaned free text. Queries
// shorter than two characters after cleaning never reach upstream.
func fetchCCAs(ctx context.Context, client *Client, rawQuery string) ([]CCA, error) {
	cleaned := CleanQuery(rawQuery)
	if !usableQuery(cleaned) {
		return []CCA{}, nil
	}

	records, err := client.Search(ctx, resourceCCAs, cleaned, timeoutCCAs)
	if err != nil {
		return nil, err
	}

	ccas := make([]CCA, 0, len(records))
	for i, rec := range records {
		ccas = append(ccas, CCA{
			ID:                i + 1,
			SchoolName:        str(rec, "School_name", "school_name"),
			SchoolSection:     str(rec, "school_section"),
			Category:          str(rec, "cca_grouping_desc"),
			CCAName:           str(rec, "cca_generic_name"),
			CCACustomizedName: str(rec, "cca_customized_name"),
		})
	}
	return ccas, nil
}

// fetchDistProgs queries ALP/LLP district programmes by exact school name.
func fetchDistProgs(ctx context.Context, client *Client, rawQuery string) ([]DistrictProgramme, error) {
	name := strings.TrimSpace(rawQuery)
	if name == "" {
		return []DistrictProgramme{}, nil
	}

	filterJSON, err := json.Marshal(map[string]string{"school_name": name})
	if err != nil {
		return nil, err
	}

	records, err := client.Search(ctx, resourceDistProgs, string(filterJSON), timeoutDistProgs)
	if err != nil {
		return nil, err
	}

	progs := make([]DistrictProgramme, 0, len(records))
	for i, rec := range records {
		progs = append(progs, DistrictProgramme{
			ID:         i + 1,
			SchoolName: str(rec, "school_name"),
			Category:   str(rec, "alp_domain"),
			ProgName:   str(rec, "alp_title"),
			Category1:  str(rec, "llp_domain1"),
			ProgName1:  str(rec, "llp_title1"),
		})
	}
	return progs, nil
}

// fetchMOEProgs queries MOE programmes by exact school name.
func fetchMOEProgs(ctx context.Context, client *Client, rawQuery string) ([]MOEProgramme, error) {
	name := strings.TrimSpace(rawQuery)
	if name == "" {
		return []MOEProgramme{}, nil
	}

	filterJSON, err := json.Marshal(map[string]string{"school_name": name})
	if err != nil {
		return nil, err
	}

	records, err := client.Search(ctx, resourceMOEProgs, string(filterJSON), timeoutMOEProgs)
	if err != nil {
		return nil, err
	}

	progs := make([]MOEProgramme, 0, len(records))
	for i, rec := range records {
		progs = append(progs, MOEProgramme{
			ID:         i + 1,
			SchoolName: str(rec, "School_name", "school_name"),
			Category:   str(rec, "moe_programme_desc"),
		})
	}
	return progs, nil
}

// fetchSubjects would query subject offerings, but the published resource id
// currently 404s upstream. The source stays wired so the envelope keeps its
// subjects key; it contributes an empty collection until the id is fixed.
// TODO: restore the upstream call once data.gov.sg republishes the dataset.
func fetchSubjects(_ context.Context, _ *Client, _ string) ([]Subject, error) {
	_ = resourceSubjects
	return []Subject{}, nil
}

// strOr is str with a fallback for records missing the field entirely.
func strOr(rec Record, fallback string, keys ...string) string {
	if val := str(rec, keys...); val != "" {
		return val
	}
	return fallback
}
