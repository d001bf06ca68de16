package mentor

import "fmt"

// DailyStudyHours is the fixed per-day hours carried on every day assignment.
// It is a display figure, independent of EstimateDays.
const DailyStudyHours = 6.0

// BuildWeeklyPlan packs prioritized topics into a day-by-day schedule, one
// topic per day in rank order, until topics or days run out. Days beyond the
// topic list are left unfilled.
//
// totalDays is split into ceil(totalDays/7) weeks with the final week
// truncated to the remainder, so every available day is schedulable.
func BuildWeeklyPlan(prioritized []PrioritizedTopic, totalDays int) StudyPlan {
	plan := StudyPlan{TotalDays: totalDays, Weeks: []Week{}}
	if totalDays <= 0 {
		return plan
	}

	weeks := (totalDays + 6) / 7
	topicIndex := 0

	for week := 1; week <= weeks; week++ {
		weekDays := 7
		if week == weeks && totalDays%7 != 0 {
			weekDays = totalDays % 7
		}

		w := Week{Number: week, Days: []DayAssignment{}}
		for day := 1; day <= weekDays; day++ {
			if topicIndex >= len(prioritized) {
				break
			}
			pt := prioritized[topicIndex]
			w.Days = append(w.Days, DayAssignment{
				Day:            fmt.Sprintf("Week %d, Day %d", week, day),
				Topic:          pt.Topic.Name,
				FocusArea:      fmt.Sprintf("High-weightage (%g%%)", pt.Weightage),
				EstimatedHours: DailyStudyHours,
				Difficulty:     pt.Difficulty,
			})
			topicIndex++
		}
		plan.Weeks = append(plan.Weeks, w)
	}

	return plan
}
