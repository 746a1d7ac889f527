package match

import (
	"math"
	"strings"

	"jobbridge/internal/domain/candidate"
	"jobbridge/internal/domain/job"
)

// Sub-score weights. They sum to 100.
const (
	industryFullWeight   = 30.0
	industryPartWeight   = 15.0
	skillsWeight         = 30.0
	experienceWeight     = 25.0
	locationCityWeight   = 15.0
	locationRegionWeight = 5.0

	// Experience outside the posting's range decays linearly to zero over
	// this many years beyond either bound.
	experienceDecayYears = 5.0
)

// Score rates how well a candidate fits a posting on a 0..100 scale.
// Pure and deterministic: no I/O, no clock, absent fields contribute zero.
func Score(c candidate.Profile, j job.Posting) int {
	total := industryScore(c, j) + skillScore(c, j) + experienceScore(c, j) + locationScore(c, j)
	rounded := int(math.Round(total))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func industryScore(c candidate.Profile, j job.Posting) float64 {
	if !equalFold(c.Industry, j.Industry) {
		return 0
	}
	if equalFold(c.Subcategory, j.Subcategory) && c.Subcategory != "" {
		return industryFullWeight
	}
	return industryPartWeight
}

func skillScore(c candidate.Profile, j job.Posting) float64 {
	required := make(map[string]struct{}, len(j.RequiredSkills))
	for _, skill := range j.RequiredSkills {
		normalized := normalize(skill)
		if normalized != "" {
			required[normalized] = struct{}{}
		}
	}
	if len(required) == 0 {
		return 0
	}
	overlap := 0
	seen := make(map[string]struct{}, len(c.Skills))
	for _, skill := range c.Skills {
		normalized := normalize(skill)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		if _, ok := required[normalized]; ok {
			overlap++
		}
	}
	score := skillsWeight * float64(overlap) / float64(len(required))
	if score > skillsWeight {
		return skillsWeight
	}
	return score
}

func experienceScore(c candidate.Profile, j job.Posting) float64 {
	if j.MinExperience == 0 && j.MaxExperience == 0 {
		return 0
	}
	years := float64(c.YearsOfExperience)
	min := float64(j.MinExperience)
	max := float64(j.MaxExperience)
	if max < min {
		max = min
	}
	if years >= min && years <= max {
		return experienceWeight
	}
	var distance float64
	if years < min {
		distance = min - years
	} else {
		distance = years - max
	}
	if distance >= experienceDecayYears {
		return 0
	}
	return experienceWeight * (1 - distance/experienceDecayYears)
}

func locationScore(c candidate.Profile, j job.Posting) float64 {
	if c.Location != "" && equalFold(c.Location, j.Location) {
		return locationCityWeight
	}
	if c.Region != "" && equalFold(c.Region, j.Region) {
		return locationRegionWeight
	}
	return 0
}

func equalFold(a, b string) bool {
	return normalize(a) != "" && normalize(a) == normalize(b)
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
