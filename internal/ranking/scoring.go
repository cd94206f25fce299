package ranking

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/job-discovery/internal/types"
)

// Sub-score caps
const (
	SkillsWeight     = 40.0
	ExperienceWeight = 25.0
	LocationWeight   = 15.0
	BonusCap         = 20.0
)

// DefaultSalaryThreshold is the annualized minimum that earns the salary bonus
const DefaultSalaryThreshold = 150000.0

var (
	requiredYearsPattern = regexp.MustCompile(`(\d+)\+?\s*years?`)
	juniorPattern        = regexp.MustCompile(`\bjunior\b|\bentry[\s-]level\b`)

	seniorityLevels = []struct {
		pattern *regexp.Regexp
		years   int
	}{
		{regexp.MustCompile(`\bsenior\b`), 5},
		{regexp.MustCompile(`\blead\b`), 7},
		{regexp.MustCompile(`\bprincipal\b|\bdirector\b`), 10},
	}

	// each group is worth 2 bonus points when any of its phrases appears
	bonusPhrases = [][]string{
		{"startup", "venture backed", "venture-backed"},
		{"equity", "stock options"},
		{"modern", "cutting edge", "cutting-edge"},
	}
)

// Options configures a Scorer
type Options struct {
	Extractor       SkillExtractor      // defaults to a VocabularyExtractor over DefaultVocabulary
	Synonyms        map[string][]string // defaults to DefaultSynonyms
	SalaryThreshold float64             // defaults to DefaultSalaryThreshold
}

// Scorer computes MatchScores. It holds no per-call state and is safe for
// concurrent use when its extractor is.
type Scorer struct {
	extractor       SkillExtractor
	synonyms        *SynonymTable
	salaryThreshold float64
}

// NewScorer builds a Scorer, filling unset options with defaults
func NewScorer(opts Options) *Scorer {
	if opts.Extractor == nil {
		opts.Extractor = NewVocabularyExtractor(nil)
	}
	if opts.Synonyms == nil {
		opts.Synonyms = DefaultSynonyms
	}
	if opts.SalaryThreshold <= 0 {
		opts.SalaryThreshold = DefaultSalaryThreshold
	}
	return &Scorer{
		extractor:       opts.Extractor,
		synonyms:        NewSynonymTable(opts.Synonyms),
		salaryThreshold: opts.SalaryThreshold,
	}
}

// Score rates job against profile. It never fails; missing data lowers the
// affected sub-scores to zero.
func (s *Scorer) Score(ctx context.Context, job *types.JobPosting, profile *types.CandidateProfile) types.MatchScore {
	if job == nil {
		return types.MatchScore{
			MatchedSkills:  []string{},
			MissingSkills:  []string{},
			Recommendation: TierFor(0),
		}
	}
	if profile == nil {
		profile = &types.CandidateProfile{}
	}
	desc := strings.ToLower(job.Description)

	jobSkills := s.extractor.ExtractSkills(ctx, job.Description)
	matched, missing := s.matchSkills(jobSkills, profile.Skills)

	var b types.ScoreBreakdown
	if len(jobSkills) > 0 {
		b.Skills = float64(len(matched)) / float64(len(jobSkills)) * SkillsWeight
	}

	expMatch := experienceMatches(desc, profile.ExperienceYears)
	if expMatch {
		b.Experience = ExperienceWeight
	}

	locMatch := job.IsRemote() || !profile.PrefersRemote
	if locMatch {
		b.Location = LocationWeight
	}

	b.Bonus = s.bonus(job, desc, profile)

	total := int(math.Round(clamp(b.Skills+b.Experience+b.Location+b.Bonus, 0, 100)))

	return types.MatchScore{
		JobID:           job.ID,
		Score:           total,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		ExperienceMatch: expMatch,
		LocationMatch:   locMatch,
		Recommendation:  TierFor(total),
		Breakdown:       b,
	}
}

func (s *Scorer) matchSkills(jobSkills, profileSkills []string) (matched, missing []string) {
	matched, missing = []string{}, []string{}
	for _, js := range jobSkills {
		if s.skillMatched(js, profileSkills) {
			matched = append(matched, js)
		} else {
			missing = append(missing, js)
		}
	}
	return matched, missing
}

// skillMatched: exact, substring either way, or same synonym group
func (s *Scorer) skillMatched(jobSkill string, profileSkills []string) bool {
	for _, ps := range profileSkills {
		if ps == "" {
			continue
		}
		if ps == jobSkill ||
			strings.Contains(ps, jobSkill) ||
			strings.Contains(jobSkill, ps) ||
			s.synonyms.Equivalent(ps, jobSkill) {
			return true
		}
	}
	return false
}

// experienceMatches gives unknown years the benefit of the doubt. Otherwise
// junior/entry-level postings fail, and the profile must satisfy at least
// one stated requirement (explicit years or seniority word) if any exist.
func experienceMatches(desc string, years *int) bool {
	if years == nil {
		return true
	}
	if juniorPattern.MatchString(desc) {
		return false
	}

	var required []int
	for _, m := range requiredYearsPattern.FindAllStringSubmatch(desc, -1) {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 && n <= 30 {
			required = append(required, n)
			break
		}
	}
	for _, lvl := range seniorityLevels {
		if lvl.pattern.MatchString(desc) {
			required = append(required, lvl.years)
		}
	}

	if len(required) == 0 {
		return true
	}
	for _, n := range required {
		if *years >= n {
			return true
		}
	}
	return false
}

func (s *Scorer) bonus(job *types.JobPosting, desc string, profile *types.CandidateProfile) float64 {
	bonus := 0.0
	if job.Salary != nil && job.Salary.Min > 0 && job.Salary.Annualized() >= s.salaryThreshold {
		bonus += 5
	}
	if profile.PrefersRemote && job.IsRemote() {
		bonus += 5
	}
	for _, group := range bonusPhrases {
		for _, phrase := range group {
			if strings.Contains(desc, phrase) {
				bonus += 2
				break
			}
		}
	}
	return math.Min(bonus, BonusCap)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
