package match

import (
	"testing"

	"jobbridge/internal/domain/candidate"
	"jobbridge/internal/domain/job"
)

func baseJob() job.Posting {
	return job.Posting{
		Industry:       "engineering",
		Subcategory:    "backend",
		RequiredSkills: []string{"go", "postgres", "redis", "docker"},
		MinExperience:  2,
		MaxExperience:  6,
		Location:       "Berlin",
		Region:         "Brandenburg",
	}
}

func TestScoreFullMatch(t *testing.T) {
	c := candidate.Profile{
		Industry:          "engineering",
		Subcategory:       "backend",
		Skills:            []string{"go", "postgres", "redis", "docker"},
		YearsOfExperience: 4,
		Location:          "Berlin",
	}
	if got := Score(c, baseJob()); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestScorePartialSkillsMidRangeExperience(t *testing.T) {
	// Industry and subcategory match (30), 2 of 4 skills (15),
	// experience mid-range (25), same city (15) = 85.
	c := candidate.Profile{
		Industry:          "engineering",
		Subcategory:       "backend",
		Skills:            []string{"go", "postgres"},
		YearsOfExperience: 4,
		Location:          "Berlin",
	}
	if got := Score(c, baseJob()); got != 85 {
		t.Fatalf("expected 85, got %d", got)
	}
}

func TestScoreIndustryOnly(t *testing.T) {
	c := candidate.Profile{
		Industry:    "engineering",
		Subcategory: "frontend",
	}
	j := baseJob()
	j.RequiredSkills = nil
	j.MinExperience = 0
	j.MaxExperience = 0
	if got := Score(c, j); got != 15 {
		t.Fatalf("expected 15, got %d", got)
	}
}

func TestScoreExperienceDecay(t *testing.T) {
	tests := []struct {
		name  string
		years int
		want  int
	}{
		{"at lower bound", 2, 25},
		{"at upper bound", 6, 25},
		{"one year short", 1, 20},
		{"three years over", 9, 10},
		{"five years over", 11, 0},
		{"far out", 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidate.Profile{YearsOfExperience: tt.years}
			j := baseJob()
			j.Industry = ""
			j.Subcategory = ""
			j.RequiredSkills = nil
			j.Location = ""
			j.Region = ""
			if got := Score(c, j); got != tt.want {
				t.Fatalf("years=%d: expected %d, got %d", tt.years, tt.want, got)
			}
		})
	}
}

func TestScoreRegionFallback(t *testing.T) {
	c := candidate.Profile{Location: "Potsdam", Region: "Brandenburg"}
	j := baseJob()
	j.Industry = ""
	j.Subcategory = ""
	j.RequiredSkills = nil
	j.MinExperience = 0
	j.MaxExperience = 0
	if got := Score(c, j); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestScoreEmptyInputsContributeZero(t *testing.T) {
	if got := Score(candidate.Profile{}, job.Posting{}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestScoreSkillCaseAndDuplicates(t *testing.T) {
	c := candidate.Profile{Skills: []string{"Go", "go", "GO", "Postgres"}}
	j := job.Posting{RequiredSkills: []string{"go", "postgres"}}
	if got := Score(c, j); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
}

func TestScoreDeterministicAndBounded(t *testing.T) {
	c := candidate.Profile{
		Industry:          "sales",
		Skills:            []string{"crm"},
		YearsOfExperience: 1,
		Location:          "Hamburg",
	}
	j := baseJob()
	first := Score(c, j)
	for i := 0; i < 10; i++ {
		if got := Score(c, j); got != first {
			t.Fatalf("score is not deterministic: %d vs %d", first, got)
		}
	}
	if first < 0 || first > 100 {
		t.Fatalf("score out of bounds: %d", first)
	}
}
