package types

// CandidateProfile is the normalized view of a résumé used for scoring
type CandidateProfile struct {
	Skills          []string `json:"skills"`                     // lowercased, unique, sorted
	ExperienceYears *int     `json:"experience_years,omitempty"` // nil when no "N years" phrase was found
	PrefersRemote   bool     `json:"prefers_remote"`
	Raw             string   `json:"-"`
	Source          string   `json:"source,omitempty"` // path the résumé was read from
}

// HasSkill reports whether the exact token is in the profile's skill set.
func (p *CandidateProfile) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
