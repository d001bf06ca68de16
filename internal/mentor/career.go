package mentor

import "github.com/exam-sensei/mentor/internal/student"

// careerTierTable enumerates the per-tier lookup data for a score-driven
// career path. Kept as configuration rather than branches so the bands can be
// recalibrated without touching scoring code.
type careerTierTable struct {
	colleges  [tierCount]string
	nextSteps [tierCount]string
}

var engineeringTiers = careerTierTable{
	colleges: [tierCount]string{
		"Tier 3: State colleges",
		"Tier 2: NITs, IIITs",
		"Tier 2: BITS Pilani, VIT",
		"Tier 1: IITs, IIIT Hyderabad",
		"Tier 1: IIT Bombay, IIT Delhi",
	},
	nextSteps: [tierCount]string{
		"Consider diploma + lateral entry",
		"Focus on state CET exams",
		"Apply to private universities",
		"Secure IIT seat",
		"Top IITs - research opportunities",
	},
}

var medicalTiers = careerTierTable{
	colleges: [tierCount]string{
		"Private medical colleges",
		"State government colleges",
		"AIIMS, JIPMER",
		"Top AIIMS institutes",
		"AIIMS Delhi, PGIMER",
	},
}

var medicalSpecializations = []string{"General Medicine", "Surgery", "Pediatrics", "Gynecology"}

// FixedConfidenceScore is carried on every bundle. It is a contractual
// placeholder, not a computed confidence.
const FixedConfidenceScore = 0.85

// RecommendCareer builds a ranked list of career-path recommendations from
// the profile's interests and exam scores. Categories are checked in a fixed
// order (engineering, medical, commerce) and do not compete for score; the
// first match becomes the primary recommendation. Missing scores default
// to 0.
func RecommendCareer(profile student.Profile, examScores map[string]float64) RecommendationBundle {
	var recs []CareerRecommendation

	if profile.HasInterest("engineering") || profile.HasInterest("technology") {
		recs = append(recs, engineeringRecommendation(examScores["jee_main"]))
	}
	if profile.HasInterest("medical") || profile.HasInterest("biology") {
		recs = append(recs, medicalRecommendation(examScores["neet"]))
	}
	if profile.HasInterest("commerce") || profile.HasInterest("business") {
		recs = append(recs, commerceRecommendation())
	}

	bundle := RecommendationBundle{
		AlternativePaths: []CareerRecommendation{},
		ConfidenceScore:  FixedConfidenceScore,
	}
	if len(recs) > 0 {
		bundle.Primary = &recs[0]
		bundle.AlternativePaths = recs[1:]
	}
	return bundle
}

func engineeringRecommendation(jeeScore float64) CareerRecommendation {
	percentile := Percentile(jeeScore, EngineeringScoreDivisor)
	tier := TierIndex(percentile)

	alignment := "low"
	switch {
	case percentile > 80:
		alignment = "high"
	case percentile > 50:
		alignment = "medium"
	}

	timeline := "4 years undergraduate"
	if percentile > 90 {
		timeline = "4 years undergraduate + 2 years masters"
	}

	return CareerRecommendation{
		CareerPath:      "engineering",
		Percentile:      percentile,
		RecommendedTier: engineeringTiers.colleges[tier],
		NextSteps:       engineeringTiers.nextSteps[tier],
		BudgetAlignment: alignment,
		Timeline:        timeline,
	}
}

func medicalRecommendation(neetScore float64) CareerRecommendation {
	percentile := Percentile(neetScore, MedicalScoreDivisor)
	tier := TierIndex(percentile)

	return CareerRecommendation{
		CareerPath:      "medical",
		Percentile:      percentile,
		RecommendedTier: medicalTiers.colleges[tier],
		Specializations: medicalSpecializations[:tier+1],
		Timeline:        "5.5 years MBBS + 3 years MD/MS",
	}
}

func commerceRecommendation() CareerRecommendation {
	return CareerRecommendation{
		CareerPath:       "commerce",
		RecommendedExams: []string{"cat", "mat", "cuet"},
		Colleges:         []string{"Delhi University", "SRCC", "LBSIM"},
		Reasoning:        "Strong foundation in commerce subjects, good analytical skills",
	}
}
