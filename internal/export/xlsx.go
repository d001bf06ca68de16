// Package export renders study plans as downloadable workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/exam-sensei/mentor/internal/mentor"
)

const (
	scheduleSheet   = "Schedule"
	prioritiesSheet = "Priorities"
)

// StudyPlanWorkbook writes a two-sheet XLSX rendering of a study plan: the
// day-by-day schedule and the prioritized topic list.
func StudyPlanWorkbook(w io.Writer, result mentor.StudyPlanResult) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), scheduleSheet)
	if _, err := f.NewSheet(prioritiesSheet); err != nil {
		return fmt.Errorf("create priorities sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeSchedule(f, header, result); err != nil {
		return err
	}
	if err := writePriorities(f, header, result.PrioritizedTopics); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSchedule(f *excelize.File, header int, result mentor.StudyPlanResult) error {
	rows := [][]any{
		{"Exam", result.ExamCode},
		{"Total days", result.TotalDays},
		{"Estimated completion", result.EstimatedCompletion},
		{"Success probability", result.SuccessProbability},
		{},
		{"Day", "Topic", "Focus area", "Hours", "Difficulty"},
	}
	for _, week := range result.WeeklyPlan.Weeks {
		for _, day := range week.Days {
			rows = append(rows, []any{day.Day, day.Topic, day.FocusArea, day.EstimatedHours, string(day.Difficulty)})
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("schedule row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(scheduleSheet, cell, &row); err != nil {
			return fmt.Errorf("schedule row %d: %w", i+1, err)
		}
	}

	if err := f.SetCellStyle(scheduleSheet, "A6", "E6", header); err != nil {
		return fmt.Errorf("style schedule header: %w", err)
	}
	if err := f.SetColWidth(scheduleSheet, "A", "C", 24); err != nil {
		return fmt.Errorf("size schedule columns: %w", err)
	}
	return nil
}

func writePriorities(f *excelize.File, header int, topics []mentor.PrioritizedTopic) error {
	rows := [][]any{
		{"Rank", "Topic", "Subject", "Priority score", "Weightage", "Estimated days", "Difficulty"},
	}
	for i, pt := range topics {
		rows = append(rows, []any{
			i + 1,
			pt.Topic.Name,
			pt.Topic.Subject,
			pt.PriorityScore,
			pt.Weightage,
			pt.EstimatedDays,
			string(pt.Difficulty),
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("priorities row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(prioritiesSheet, cell, &row); err != nil {
			return fmt.Errorf("priorities row %d: %w", i+1, err)
		}
	}

	if err := f.SetCellStyle(prioritiesSheet, "A1", "G1", header); err != nil {
		return fmt.Errorf("style priorities header: %w", err)
	}
	if err := f.SetColWidth(prioritiesSheet, "B", "C", 24); err != nil {
		return fmt.Errorf("size priorities columns: %w", err)
	}
	return nil
}
