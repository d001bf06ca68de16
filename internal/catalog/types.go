package catalog

// Topic represents one examinable subject area with its historical weightage data.
type Topic struct {
	Subject                string             `yaml:"subject" json:"subject"`
	Name                   string             `yaml:"name" json:"name"`
	WeightageHistory       []float64          `yaml:"weightage_history" json:"weightage_history"`
	AvgQuestions           float64            `yaml:"avg_questions" json:"avg_questions"`
	DifficultyDistribution map[string]float64 `yaml:"difficulty_distribution" json:"difficulty_distribution"`
	MarksPerHour           float64            `yaml:"marks_per_hour" json:"marks_per_hour"`
	CorrelationTopics      []string           `yaml:"correlation_topics" json:"correlation_topics"`
}

// CurrentWeightage returns the most recent weightage percentage, or 0 if no
// history has been recorded. Scoring applies its own default for missing data.
func (t Topic) CurrentWeightage() (float64, bool) {
	if len(t.WeightageHistory) == 0 {
		return 0, false
	}
	return t.WeightageHistory[len(t.WeightageHistory)-1], true
}

// Exam represents a catalogued entrance exam and its topics.
type Exam struct {
	Code      string   `yaml:"code" json:"code"`
	Name      string   `yaml:"name" json:"name"`
	Body      string   `yaml:"body" json:"body"`
	ExamType  string   `yaml:"exam_type" json:"exam_type"`
	ExamDates []string `yaml:"exam_dates" json:"exam_dates"`
	Subjects  []string `yaml:"subjects" json:"subjects"`
	// ScoreDivisor maps a raw score onto the 0-100 percentile band
	// (3 for 300-point exams, 7.2 for 720-point exams).
	ScoreDivisor float64 `yaml:"score_divisor" json:"score_divisor"`
	Topics       []Topic `yaml:"topics" json:"topics"`
}
