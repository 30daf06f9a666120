// Package casetypes holds the static catalogue of litigation categories shown
// on the public site and offered in the evaluation form.
package casetypes

import "strings"

// CaseType is one predefined litigation category.
type CaseType struct {
	Slug            string   `json:"slug"`
	Name            string   `json:"name"`
	Summary         string   `json:"summary"`
	Description     string   `json:"description"`
	Qualifications  []string `json:"qualifications"`
	ExposurePeriods []string `json:"exposurePeriods"`
}

var catalogue = []CaseType{
	{
		Slug:        "roundup",
		Name:        "Roundup",
		Summary:     "Non-Hodgkin lymphoma linked to glyphosate-based weed killers.",
		Description: "Farm workers, landscapers and home gardeners who used Roundup regularly and were later diagnosed with non-Hodgkin lymphoma may be entitled to compensation.",
		Qualifications: []string{
			"Regular use of Roundup or another glyphosate herbicide",
			"Diagnosis of non-Hodgkin lymphoma or a related blood cancer",
		},
		ExposurePeriods: []string{"Less than 1 year", "1-5 years", "5-10 years", "More than 10 years"},
	},
	{
		Slug:        "camp-lejeune",
		Name:        "Camp Lejeune",
		Summary:     "Illness after drinking contaminated water at Marine Corps Base Camp Lejeune.",
		Description: "Veterans, family members and civilian workers who lived or worked at Camp Lejeune for at least 30 days between August 1953 and December 1987 may qualify under the Camp Lejeune Justice Act.",
		Qualifications: []string{
			"At least 30 days at Camp Lejeune between 1953 and 1987",
			"Diagnosis of a qualifying illness such as kidney cancer, bladder cancer or Parkinson's disease",
		},
		ExposurePeriods: []string{"30 days - 1 year", "1-3 years", "More than 3 years"},
	},
	{
		Slug:        "hair-relaxer",
		Name:        "Hair Relaxer",
		Summary:     "Uterine and ovarian cancer associated with chemical hair straighteners.",
		Description: "Long-term users of chemical hair relaxers who developed uterine, endometrial or ovarian cancer may be eligible to file a claim.",
		Qualifications: []string{
			"Use of chemical hair relaxer products several times a year",
			"Diagnosis of uterine, endometrial or ovarian cancer",
		},
		ExposurePeriods: []string{"1-5 years", "5-10 years", "More than 10 years"},
	},
	{
		Slug:        "paraquat",
		Name:        "Paraquat",
		Summary:     "Parkinson's disease linked to the herbicide paraquat.",
		Description: "Agricultural workers and people living near treated fields who were exposed to paraquat and later developed Parkinson's disease may be entitled to compensation.",
		Qualifications: []string{
			"Mixing, loading or spraying paraquat, or living near treated fields",
			"Diagnosis of Parkinson's disease",
		},
		ExposurePeriods: []string{"Less than 1 year", "1-5 years", "More than 5 years"},
	},
	{
		Slug:        "talcum-powder",
		Name:        "Talcum Powder",
		Summary:     "Ovarian cancer and mesothelioma associated with talc products.",
		Description: "Regular users of talc-based powders who were diagnosed with ovarian cancer or mesothelioma may qualify for a claim.",
		Qualifications: []string{
			"Regular use of talc-based body or baby powder",
			"Diagnosis of ovarian cancer or mesothelioma",
		},
		ExposurePeriods: []string{"1-5 years", "5-10 years", "More than 10 years"},
	},
}

// All returns a copy of the catalogue in display order.
func All() []CaseType {
	out := make([]CaseType, len(catalogue))
	copy(out, catalogue)
	return out
}

// BySlug looks a case type up by its URL slug.
func BySlug(slug string) (CaseType, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, ct := range catalogue {
		if ct.Slug == slug {
			return ct, true
		}
	}
	return CaseType{}, false
}

// DisplayName resolves a stored case-type identifier to its display name,
// returning the identifier unchanged when it is not in the catalogue.
func DisplayName(id string) string {
	if ct, ok := BySlug(id); ok {
		return ct.Name
	}
	return id
}
